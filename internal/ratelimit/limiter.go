package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"golang.org/x/time/rate"

	"github.com/scamradar/scamradar/internal/monitoring"
)

// Config holds rate limiter configuration.
type Config struct {
	IPLimitPerMin   int
	BurstMultiplier int
}

// DefaultConfig returns the default rate limiting configuration.
func DefaultConfig() Config {
	return Config{
		IPLimitPerMin:   60,
		BurstMultiplier: 2,
	}
}

// Result is the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter provides distributed per-IP rate limiting with an in-memory
// fallback when Redis is unavailable.
type Limiter struct {
	redisLimiter *redis_rate.Limiter
	redisClient  *RedisClient
	config       Config
	metrics      *monitoring.Manager

	fallbackLimiters map[string]*rate.Limiter
	fallbackMutex    sync.Mutex
}

// NewLimiter creates a rate limiter over the given Redis client.
func NewLimiter(redisClient *RedisClient, config Config, metrics *monitoring.Manager) *Limiter {
	l := &Limiter{
		redisClient:      redisClient,
		config:           config,
		metrics:          metrics,
		fallbackLimiters: make(map[string]*rate.Limiter),
	}

	if redisClient.IsEnabled() {
		l.redisLimiter = redis_rate.NewLimiter(redisClient.GetClient())
		slog.Info("Redis rate limiter initialized")
	} else {
		slog.Warn("Redis unavailable, using in-memory rate limiting only")
	}

	go l.cleanupFallbackLimiters()

	return l
}

// AllowIP checks whether an IP may make a request under the per-minute
// limit.
func (l *Limiter) AllowIP(ctx context.Context, ip string) (*Result, error) {
	key := fmt.Sprintf("ratelimit:ip:%s", ip)
	return l.allow(ctx, key, l.config.IPLimitPerMin, time.Minute)
}

func (l *Limiter) allow(ctx context.Context, key string, limit int, period time.Duration) (*Result, error) {
	if l.redisClient.IsEnabled() && l.redisLimiter != nil {
		result, err := l.allowRedis(ctx, key, limit, period)
		if err != nil {
			slog.Warn("Redis rate limit check failed, using fallback", "key", key, "error", err)
			if l.metrics != nil {
				l.metrics.RecordRateLimitRedisError()
			}
			return l.allowFallback(key, limit, period), nil
		}
		return result, nil
	}

	return l.allowFallback(key, limit, period), nil
}

// allowRedis uses a Redis sliding-window counter shared across
// instances.
func (l *Limiter) allowRedis(ctx context.Context, key string, limit int, period time.Duration) (*Result, error) {
	res, err := l.redisLimiter.Allow(ctx, key, redis_rate.Limit{
		Rate:   limit,
		Burst:  limit,
		Period: period,
	})
	if err != nil {
		return nil, fmt.Errorf("redis rate limit check failed: %w", err)
	}

	return &Result{
		Allowed:    res.Allowed > 0,
		Limit:      res.Limit.Rate,
		Remaining:  res.Remaining,
		ResetAt:    time.Now().Add(res.ResetAfter),
		RetryAfter: res.RetryAfter,
	}, nil
}

// allowFallback uses an in-process token bucket per key.
func (l *Limiter) allowFallback(key string, limit int, period time.Duration) *Result {
	l.fallbackMutex.Lock()
	limiter, exists := l.fallbackLimiters[key]
	if !exists {
		rps := rate.Limit(float64(limit) / period.Seconds())
		burst := limit * l.config.BurstMultiplier
		if burst < 5 {
			burst = 5
		}
		limiter = rate.NewLimiter(rps, burst)
		l.fallbackLimiters[key] = limiter
	}
	l.fallbackMutex.Unlock()

	allowed := limiter.Allow()

	remaining := int(limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}

	result := &Result{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(period),
	}
	if !allowed {
		result.RetryAfter = time.Until(result.ResetAt)
	}
	return result
}

// cleanupFallbackLimiters bounds fallback limiter memory. Keys are
// per-IP, so an abusive scan could otherwise grow the map unbounded.
func (l *Limiter) cleanupFallbackLimiters() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		l.fallbackMutex.Lock()
		if len(l.fallbackLimiters) > 1000 {
			slog.Info("Cleaning up fallback rate limiters", "count", len(l.fallbackLimiters))
			l.fallbackLimiters = make(map[string]*rate.Limiter)
		}
		l.fallbackMutex.Unlock()
	}
}

// Stats returns rate limiter state for the health endpoint.
func (l *Limiter) Stats() map[string]interface{} {
	l.fallbackMutex.Lock()
	fallbackCount := len(l.fallbackLimiters)
	l.fallbackMutex.Unlock()

	return map[string]interface{}{
		"redis_enabled":     l.redisClient.IsEnabled(),
		"fallback_limiters": fallbackCount,
	}
}
