package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/social-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/social-quotes/internal/adapters/http/middleware"
	"github.com/jsamuelsen/social-quotes/internal/platform/config"
	"github.com/jsamuelsen/social-quotes/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds each request, and with it every store
// call made on the request context.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AuthConfig carries the shared secret and read-protection flag.
	AuthConfig *config.AuthConfig

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// CORSConfig carries the allowed client origin.
	CORSConfig *config.CORSConfig

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// QuoteHandler handles the quote resource endpoints.
	QuoteHandler *handlers.QuoteHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips health endpoints)
//  6. CORS - client origin allowance
//  7. Timeout - request deadline on the resource routes
//
// Route groups:
//   - /-/ (internal): health endpoints, no auth
//   - /quotes (resource): the five quote operations, bearer-JWT gated
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Middleware(cfg.AppConfig.Name),
		middleware.Logging(cfg.Logger),
	)

	if cfg.CORSConfig != nil && cfg.CORSConfig.ClientOrigin != "" {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:  []string{cfg.CORSConfig.ClientOrigin},
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Authorization", "Content-Type"},
			ExposeHeaders: []string{middleware.HeaderRequestID},
			MaxAge:        12 * time.Hour,
		}))
	}

	// Health endpoints stay open and untimed for probes.
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	resource := engine.Group("")
	if cfg.Timeout > 0 {
		resource.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.QuoteHandler != nil {
		requireAuth := middleware.RequireAuth(cfg.AuthConfig)
		cfg.QuoteHandler.RegisterQuoteRoutes(resource, requireAuth, cfg.AuthConfig.RequireAuthForRead)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with sensible defaults.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	authCfg *config.AuthConfig,
	corsCfg *config.CORSConfig,
	healthHandler *handlers.HealthHandler,
	quoteHandler *handlers.QuoteHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AuthConfig:    authCfg,
		AppConfig:     appCfg,
		CORSConfig:    corsCfg,
		HealthHandler: healthHandler,
		QuoteHandler:  quoteHandler,
		Timeout:       DefaultRequestTimeout,
	}
}
