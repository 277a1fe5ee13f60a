// Package config defines service configuration and its loading order.
//
// Precedence (low -> high): defaults, optional YAML file pointed at by
// SCAMRADAR_CONFIG, then environment variables with the SCAMRADAR_ prefix.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir holds mutable state (the sqlite history database).
	// Empty disables persistence; history is then memory-only.
	DataDir string `koanf:"data_dir"`

	// ModelDir points at the ML bundle directory (manifest.yaml plus
	// model files). Empty or missing falls back to rule-only scoring.
	ModelDir string `koanf:"model_dir"`

	// HistorySize bounds the in-memory analysis ring.
	HistorySize int `koanf:"history_size"`

	// MaxDescriptionLength caps the analyze request payload in runes.
	MaxDescriptionLength int `koanf:"max_description_length"`

	// CacheTTL controls how long identical analyze responses are served
	// from the response cache.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// RequestTimeout bounds a single analyze request.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// IPLimitPerMinute is the per-client rate limit on /api/analyze.
	IPLimitPerMinute int `koanf:"ip_limit_per_minute"`

	// RedisAddr enables Redis-backed rate limiting when non-empty.
	// When empty the limiter degrades to an in-process token bucket.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// AllowedOrigins lists CORS origins for the browser frontend.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":8080",
		DataDir:              "./data",
		ModelDir:             "./model",
		HistorySize:          1000,
		MaxDescriptionLength: 50_000,
		CacheTTL:             5 * time.Minute,
		RequestTimeout:       10 * time.Second,
		IPLimitPerMinute:     60,
		AllowedOrigins:       []string{"http://localhost:3000", "http://localhost:5173"},
	}
}
