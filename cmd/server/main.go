// ScamRadar scores job postings for scam risk over a JSON API.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/scamradar/scamradar/docs"
	"github.com/scamradar/scamradar/internal/cache"
	"github.com/scamradar/scamradar/internal/config"
	"github.com/scamradar/scamradar/internal/errors"
	"github.com/scamradar/scamradar/internal/history"
	"github.com/scamradar/scamradar/internal/model"
	"github.com/scamradar/scamradar/internal/monitoring"
	"github.com/scamradar/scamradar/internal/ratelimit"
	"github.com/scamradar/scamradar/internal/scoring"
	"github.com/scamradar/scamradar/internal/security"
	"github.com/scamradar/scamradar/internal/types"
)

const version = "1.0.0"

// @title ScamRadar API
// @version 1.0.0
// @description Job posting scam risk scoring service.
// @BasePath /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	appMetrics := monitoring.NewManager()
	appLogger := monitoring.NewLogger(cfg.LogLevel)

	// Optional sqlite persistence. Scoring still works without it.
	var repo *history.Repository
	if cfg.DataDir != "" {
		repo, err = history.NewRepository(cfg.DataDir)
		if err != nil {
			slog.Warn("History persistence disabled", "error", err)
			repo = nil
		} else {
			defer repo.Close()
		}
	}

	historyService := history.NewService(history.NewRing(cfg.HistorySize), repo)
	if err := historyService.Restore(); err != nil {
		slog.Warn("Failed to restore history from database", "error", err)
	}
	appMetrics.SetHistorySize(historyService.Total())

	// Model bundle is optional. A missing or broken bundle means every
	// result is rule-only.
	var adapter *scoring.Adapter
	bundle, err := model.Load(cfg.ModelDir)
	if err != nil {
		slog.Warn("ML model unavailable, scoring is rule-only", "dir", cfg.ModelDir, "error", err)
	} else {
		defer bundle.Close()
		adapter = bundle.Adapter
		slog.Info("ML model loaded", "kind", bundle.Manifest.Kind, "version", bundle.Manifest.Version)
	}

	engine := scoring.NewEngine(adapter)

	redisClient, err := ratelimit.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		slog.Warn("Redis unavailable, rate limiting degrades to in-memory", "error", err)
	}
	defer redisClient.Close()

	limiterCfg := ratelimit.DefaultConfig()
	limiterCfg.IPLimitPerMin = cfg.IPLimitPerMinute
	limiter := ratelimit.NewLimiter(redisClient, limiterCfg, appMetrics)

	securityMiddleware := security.NewMiddleware(security.Config{
		MaxInputLength: cfg.MaxDescriptionLength,
		TrustedProxies: security.DefaultConfig().TrustedProxies,
		RequestTimeout: cfg.RequestTimeout,
	})

	responseCache := cache.New(cfg.CacheTTL)

	r := newRouter(cfg, engine, historyService, repo, limiter, redisClient,
		securityMiddleware, responseCache, appMetrics, appLogger)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		appLogger.SystemLogger("server_start", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	appLogger.SystemLogger("server_stop", "graceful shutdown complete")
}

// newRouter assembles the middleware chain and API routes.
func newRouter(
	cfg *config.Config,
	engine *scoring.Engine,
	historyService *history.Service,
	repo *history.Repository,
	limiter *ratelimit.Limiter,
	redisClient *ratelimit.RedisClient,
	securityMiddleware *security.Middleware,
	responseCache *cache.Cache,
	appMetrics *monitoring.Manager,
	appLogger *monitoring.Logger,
) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(security.DefaultConfig().TrustedProxies); err != nil {
		slog.Error("Failed to set trusted proxies", "error", err)
	}

	r.Use(monitoring.Middleware(appMetrics, appLogger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(securityMiddleware.SecurityHeaders)
	r.Use(securityMiddleware.RequestTimeout)
	r.Use(securityMiddleware.ValidateContentType)
	r.Use(limiter.IPMiddleware())
	r.Use(responseCache.Middleware("/api/analyze", appMetrics))

	api := r.Group("/api")

	api.POST("/analyze", analyzeHandler(engine, historyService, securityMiddleware, appMetrics, appLogger))

	api.GET("/history", func(c *gin.Context) {
		c.JSON(http.StatusOK, types.HistoryResponse{
			Analyses:   historyService.Recent(50),
			TotalCount: historyService.Total(),
		})
	})

	api.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, historyService.Stats())
	})

	api.GET("/health", func(c *gin.Context) {
		redisStatus := "disabled"
		if redisClient.IsEnabled() {
			if err := redisClient.HealthCheck(c.Request.Context()); err != nil {
				redisStatus = "unavailable"
			} else {
				redisStatus = "ok"
			}
		}

		resp := types.HealthResponse{
			Status:      "healthy",
			ModelLoaded: engine.HasModel(),
			Timestamp:   time.Now().Format(time.RFC3339),
			Version:     version,
			Redis:       redisStatus,
			RateLimiter: limiter.Stats(),
		}
		if repo != nil {
			resp.Database = repo.PoolStats()
		}
		c.JSON(http.StatusOK, resp)
	})

	r.GET("/metrics", appMetrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// modelContributed reports whether the model ran for this result. The
// engine notes the model confidence in reasons whenever inference
// succeeded, including a legitimate zero.
func modelContributed(result scoring.Result) bool {
	for _, reason := range result.Reasons {
		if strings.HasPrefix(reason, "ML model confidence:") {
			return true
		}
	}
	return false
}

// analyzeHandler scores one posting and records it in the history.
//
// @Summary Analyze a job posting
// @Accept json
// @Produce json
// @Param request body types.AnalyzeRequest true "Job posting to analyze"
// @Success 200 {object} types.AnalyzeResponse
// @Failure 400 {object} errors.AppError
// @Router /analyze [post]
func analyzeHandler(
	engine *scoring.Engine,
	historyService *history.Service,
	securityMiddleware *security.Middleware,
	appMetrics *monitoring.Manager,
	appLogger *monitoring.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req types.AnalyzeRequest
		if err := c.BindJSON(&req); err != nil {
			appErr := errors.NewValidationError("description field is required")
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		if err := securityMiddleware.ValidateInput(req.Description); err != nil {
			appErr := errors.NewValidationError(err.Error())
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		result, err := engine.Score(req.Description)
		if err != nil {
			appErr := errors.NewValidationError("description cannot be empty")
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		duration := time.Since(start)
		appMetrics.RecordAnalysis(string(result.RiskLevel), string(result.ConfidenceSource),
			float64(duration.Milliseconds()))
		if engine.HasModel() && !scoring.TooShort(req.Description) && !modelContributed(result) {
			appMetrics.RecordModelFallback()
		}
		appLogger.AnalysisLogger(len(req.Description), string(result.RiskLevel),
			string(result.ConfidenceSource), result.Confidence, duration)

		entry := history.Entry{
			ID:          uuid.NewString(),
			Description: req.Description,
			Result:      result,
			ClientIP:    c.ClientIP(),
			Timestamp:   time.Now().UTC(),
		}
		historyService.Record(entry)
		appMetrics.SetHistorySize(historyService.Total())

		c.JSON(http.StatusOK, types.AnalyzeResponse{
			ID:      entry.ID,
			Result:  result,
			Message: "Analysis completed successfully",
		})
	}
}
