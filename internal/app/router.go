// Package app provides router configuration.
package app

import (
	"github.com/guttosm/reconciliation-service/config"
	"github.com/guttosm/reconciliation-service/internal/http"
	"github.com/guttosm/reconciliation-service/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
	// AsyncLogger is nil when the request-log store is disabled.
	AsyncLogger *middleware.AsyncLogger
}

// InitializeRouter initializes HTTP handlers and router configuration.
// The logs endpoint is only mounted when the request-log store is available.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.ServerConfig) *RouterComponents {
	healthHandler := http.NewHealthHandler()

	var asyncLogger *middleware.AsyncLogger
	if db != nil {
		asyncLogger = middleware.NewAsyncLogger(db.LoggingService, middleware.DefaultAsyncLoggerConfig())
		healthHandler.RegisterChecker("mongodb", db.DB)
		healthHandler.RegisterCircuitBreaker("mongodb_logs", db.LogsCircuitBreaker)
	}

	handler := http.NewHandler(
		services.Reconciler,
		http.WithDefaults(services.Defaults),
		http.WithAuditLogger(asyncLogger),
	)
	routes := []http.RouteGroup{http.NewReconcileRoutes(handler)}
	if db != nil {
		routes = append(routes, http.NewLogsRoutes(http.NewLogsHandler(db.LoggingService)))
	}

	return &RouterComponents{
		HealthHandler: healthHandler,
		AsyncLogger:   asyncLogger,
		Config: http.RouterConfig{
			CORSOrigins:    cfg.CORSOrigins,
			RequestTimeout: cfg.RequestTimeout,
			SwaggerUser:    cfg.SwaggerUser,
			SwaggerPass:    cfg.SwaggerPass,
			AsyncLogger:    asyncLogger,
			Routes:         routes,
		},
	}
}
