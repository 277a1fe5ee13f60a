package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamradar/scamradar/internal/cache"
	"github.com/scamradar/scamradar/internal/config"
	"github.com/scamradar/scamradar/internal/history"
	"github.com/scamradar/scamradar/internal/monitoring"
	"github.com/scamradar/scamradar/internal/ratelimit"
	"github.com/scamradar/scamradar/internal/scoring"
	"github.com/scamradar/scamradar/internal/security"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.New()
	appMetrics := monitoring.NewManager()
	appLogger := monitoring.NewLogger("error")

	historyService := history.NewService(history.NewRing(cfg.HistorySize), nil)
	engine := scoring.NewEngine(nil)

	redisClient, err := ratelimit.NewRedisClient("", "", 0)
	require.NoError(t, err)
	limiter := ratelimit.NewLimiter(redisClient, ratelimit.Config{
		IPLimitPerMin:   1000,
		BurstMultiplier: 2,
	}, appMetrics)

	securityMiddleware := security.NewMiddleware(security.Config{
		MaxInputLength: cfg.MaxDescriptionLength,
		TrustedProxies: security.DefaultConfig().TrustedProxies,
		RequestTimeout: 5 * time.Second,
	})

	return newRouter(cfg, engine, historyService, nil, limiter, redisClient,
		securityMiddleware, cache.New(time.Minute), appMetrics, appLogger)
}

// analysisResult pulls the nested result object out of an analyze response.
func analysisResult(t *testing.T, resp map[string]interface{}) map[string]interface{} {
	t.Helper()
	result, ok := resp["result"].(map[string]interface{})
	require.True(t, ok, "response should nest the analysis under a result key")
	return result
}

func postAnalyze(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyzeCleanPosting(t *testing.T) {
	router := newTestRouter(t)

	w := postAnalyze(router, `{"description": "We are seeking a senior backend engineer with 5 years of experience in distributed systems."}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, "Analysis completed successfully", resp["message"])

	result := analysisResult(t, resp)
	assert.Equal(t, false, result["is_scam"])
	assert.InDelta(t, 0.1, result["confidence"], 1e-9)
	assert.Equal(t, "Very Low", result["risk_level"])
	assert.Equal(t, "rule-only", result["confidence_source"])
}

func TestAnalyzeScamPosting(t *testing.T) {
	router := newTestRouter(t)

	w := postAnalyze(router, `{"description": "URGENT hiring! Work from home, no experience needed. Wire transfer your registration fee today and earn $5000 per week guaranteed!"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	result := analysisResult(t, resp)
	assert.Equal(t, true, result["is_scam"])
	assert.Greater(t, result["confidence"].(float64), 0.5)
	assert.NotEmpty(t, result["reasons"])
}

func TestAnalyzeShortInput(t *testing.T) {
	router := newTestRouter(t)

	w := postAnalyze(router, `{"description": "Job!"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	result := analysisResult(t, resp)
	assert.Equal(t, true, result["is_scam"])
	assert.InDelta(t, 0.9, result["confidence"], 1e-9)
	assert.Equal(t, "High", result["risk_level"])
}

func TestAnalyzeMissingDescription(t *testing.T) {
	router := newTestRouter(t)

	w := postAnalyze(router, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeWhitespaceDescription(t *testing.T) {
	router := newTestRouter(t)

	w := postAnalyze(router, `{"description": "   \n\t  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeRejectsOversizedInput(t *testing.T) {
	router := newTestRouter(t)

	huge := strings.Repeat("a", 50_001)
	w := postAnalyze(router, `{"description": "`+huge+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeResponseIsCached(t *testing.T) {
	router := newTestRouter(t)

	body := `{"description": "We are seeking a senior backend engineer with 5 years of experience in distributed systems."}`
	first := postAnalyze(router, body)
	second := postAnalyze(router, body)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	// The cached response is byte-identical, same analysis ID included.
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestHistoryEndpoint(t *testing.T) {
	router := newTestRouter(t)

	postAnalyze(router, `{"description": "First posting under analysis, a perfectly ordinary engineering role."}`)
	postAnalyze(router, `{"description": "Second posting under analysis, another ordinary engineering role."}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["total_count"])
	assert.Len(t, resp["analyses"], 2)
}

func TestHistoryTotalCountExceedsPage(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 60; i++ {
		body := fmt.Sprintf(`{"description": "Ordinary engineering posting number %d for a mid-size product company."}`, i)
		w := postAnalyze(router, body)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// The page is capped at 50; the count reports everything held.
	assert.Len(t, resp["analyses"], 50)
	assert.Equal(t, float64(60), resp["total_count"])
}

func TestStatsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	postAnalyze(router, `{"description": "An unremarkable posting for a software engineer in a mid-size company."}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["total_analyses"])
	assert.Equal(t, float64(0), resp["scam_count"])
	assert.Equal(t, float64(1), resp["legitimate_count"])
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, false, resp["model_loaded"])
	assert.Equal(t, "disabled", resp["redis"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	postAnalyze(router, `{"description": "A posting to make sure the analysis counters have something to say."}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "scamradar_analyses_total")
}

func TestContentTypeRejected(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("<desc/>"))
	req.Header.Set("Content-Type", "application/xml")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestSecurityHeadersPresent(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
}
