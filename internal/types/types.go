// Package types holds request and response shapes shared across the
// HTTP surface.
package types

import (
	"github.com/scamradar/scamradar/internal/history"
	"github.com/scamradar/scamradar/internal/scoring"
)

// AnalyzeRequest is the request body for the analyze endpoint.
type AnalyzeRequest struct {
	Description string `json:"description" binding:"required"`
}

// AnalyzeResponse wraps a scoring result with its assigned analysis ID.
type AnalyzeResponse struct {
	ID      string         `json:"id"`
	Result  scoring.Result `json:"result"`
	Message string         `json:"message"`
}

// HistoryResponse is the response body for the history endpoint. The
// analyses list is the most recent page; TotalCount covers everything
// still held.
type HistoryResponse struct {
	Analyses   []history.Entry `json:"analyses"`
	TotalCount int             `json:"total_count"`
}

// HealthResponse is the response body for the health endpoint.
type HealthResponse struct {
	Status      string                 `json:"status"`
	ModelLoaded bool                   `json:"model_loaded"`
	Timestamp   string                 `json:"timestamp"`
	Version     string                 `json:"version"`
	Redis       string                 `json:"redis"`
	RateLimiter map[string]interface{} `json:"rate_limiter,omitempty"`
	Database    map[string]interface{} `json:"database,omitempty"`
}
