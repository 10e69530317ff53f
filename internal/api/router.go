package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/stockcharts/internal/middleware"
)

// RouterConfig tunes the request pipeline.
//
// Fields:
//   - RateLimit: requests allowed per client IP within RateWindow.
//   - RateWindow: length of the rate limit window.
//   - Timeout: per-request deadline attached to the request context.
type RouterConfig struct {
	RateLimit  int
	RateWindow time.Duration
	Timeout    time.Duration
}

// DefaultRouterConfig allows 60 requests per minute per IP and gives each
// request 30 seconds, enough to render the largest chart.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{RateLimit: 60, RateWindow: time.Minute, Timeout: 30 * time.Second}
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds request timeout handling.
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//
// Parameters:
//   - handler (*Handler): The HTTP handler with business logic.
//   - cfg (RouterConfig): rate limit and timeout settings.
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(cfg.RateLimit, cfg.RateWindow),
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/series", handler.GetSeries)
		v1.GET("/charts/:kind", handler.GetChart)
		v1.POST("/charts/render", handler.RenderAll)
	}

	return router
}
