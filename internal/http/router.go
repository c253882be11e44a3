package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/reconciliation-service/internal/metrics"
	"github.com/guttosm/reconciliation-service/internal/middleware"
)

// DefaultCORSOrigins are always allowed.
var DefaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// RouterConfig holds router configuration options.
type RouterConfig struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	SwaggerUser    string
	SwaggerPass    string
	// AsyncLogger receives request-log entries. Nil disables the request-log store.
	AsyncLogger *middleware.AsyncLogger
	// Routes are mounted under /api.
	Routes []RouteGroup
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RequestTimeout: 30 * time.Second,
	}
}

// NewRouter creates and configures the Gin router for the reconciliation service.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.TimeoutWithDuration(cfg.RequestTimeout))
	}
	for _, routes := range cfg.Routes {
		routes.RegisterRoutes(api)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := append(append([]string{}, DefaultCORSOrigins...), cfg.CORSOrigins...)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression("/metrics"),
		middleware.RequestLogger(cfg.AsyncLogger),
		middleware.ErrorHandler(),
	)
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docs := ginSwagger.WrapHandler(swaggerFiles.Handler)
	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		router.Group("/swagger", gin.BasicAuth(gin.Accounts{cfg.SwaggerUser: cfg.SwaggerPass})).GET("/*any", docs)
		return
	}
	router.GET("/swagger/*any", docs)
}
