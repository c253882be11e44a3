package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// ReconcileRoutes registers the reconciliation endpoint.
type ReconcileRoutes struct {
	handler *Handler
}

// NewReconcileRoutes creates a new ReconcileRoutes instance.
func NewReconcileRoutes(handler *Handler) *ReconcileRoutes {
	return &ReconcileRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *ReconcileRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reconcile", r.handler.Reconcile)
}

// LogsRoutes registers the request-log query endpoint.
type LogsRoutes struct {
	handler *LogsHandler
}

// NewLogsRoutes creates a new LogsRoutes instance.
func NewLogsRoutes(handler *LogsHandler) *LogsRoutes {
	return &LogsRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *LogsRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/logs", r.handler.QueryLogs)
}
