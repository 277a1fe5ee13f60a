// Package monitoring provides Prometheus metrics, structured logging,
// and the gin middleware that feeds them.
package monitoring

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager holds all Prometheus metrics for the service.
type Manager struct {
	registry *prometheus.Registry

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Core business metrics
	analysesTotal   *prometheus.CounterVec
	analyzeDuration prometheus.Histogram

	// Model health metrics
	modelFallbacks prometheus.Counter

	// Response cache metrics
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// Rate limit metrics
	rateLimitBlocks      prometheus.Counter
	rateLimitRedisErrors prometheus.Counter

	// History metrics
	historySize prometheus.Gauge
}

// NewManager creates a metrics manager on its own registry so the
// default Go collector noise stays out of /metrics.
func NewManager() *Manager {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	m := &Manager{registry: registry}

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scamradar",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method, and status code",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scamradar",
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	m.analysesTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scamradar",
			Name:      "analyses_total",
			Help:      "Total number of job postings analyzed by risk level and confidence source",
		},
		[]string{"risk_level", "source"},
	)

	m.analyzeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "scamradar",
		Name:      "analyze_duration_milliseconds",
		Help:      "Scoring pipeline latency in milliseconds",
		Buckets:   prometheus.DefBuckets,
	})

	m.modelFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: "scamradar",
		Name:      "model_fallbacks_total",
		Help:      "Total number of analyses that fell back to rule-only scoring after a model error",
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: "scamradar",
		Name:      "cache_hits_total",
		Help:      "Total number of analyze responses served from the response cache",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: "scamradar",
		Name:      "cache_misses_total",
		Help:      "Total number of analyze requests that missed the response cache",
	})

	m.rateLimitBlocks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: "scamradar",
		Name:      "rate_limit_blocks_total",
		Help:      "Total number of requests rejected by the per-IP rate limiter",
	})

	m.rateLimitRedisErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: "scamradar",
		Name:      "rate_limit_redis_errors_total",
		Help:      "Total number of Redis errors that pushed the limiter onto its local fallback",
	})

	m.historySize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: "scamradar",
		Name:      "history_size",
		Help:      "Current number of analyses retained in the in-memory history ring",
	})

	return m
}

// RecordHTTPRequest records one completed HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
}

// RecordAnalysis records one completed analysis.
func (m *Manager) RecordAnalysis(riskLevel, source string, durationMs float64) {
	m.analysesTotal.WithLabelValues(riskLevel, source).Inc()
	m.analyzeDuration.Observe(durationMs)
}

// RecordModelFallback increments the rule-only fallback counter.
func (m *Manager) RecordModelFallback() {
	m.modelFallbacks.Inc()
}

// IncrementCacheHit increments the response cache hit counter.
func (m *Manager) IncrementCacheHit() {
	m.cacheHits.Inc()
}

// IncrementCacheMiss increments the response cache miss counter.
func (m *Manager) IncrementCacheMiss() {
	m.cacheMisses.Inc()
}

// RecordRateLimitBlock increments the rate limit rejection counter.
func (m *Manager) RecordRateLimitBlock() {
	m.rateLimitBlocks.Inc()
}

// RecordRateLimitRedisError increments the Redis limiter error counter.
func (m *Manager) RecordRateLimitRedisError() {
	m.rateLimitRedisErrors.Inc()
}

// SetHistorySize updates the history ring gauge.
func (m *Manager) SetHistorySize(n int) {
	m.historySize.Set(float64(n))
}

// Handler returns the /metrics HTTP handler for this manager's registry.
func (m *Manager) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
