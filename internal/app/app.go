// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/reconciliation-service/config"
	"github.com/guttosm/reconciliation-service/internal/http"
	"github.com/guttosm/reconciliation-service/internal/middleware"
)

// App holds the wired router and the resources released on shutdown.
type App struct {
	Router *gin.Engine

	database    *DatabaseComponents
	asyncLogger *middleware.AsyncLogger
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	// Logger first, every other component logs during setup.
	InitializeLogger(cfg.Log)

	services := InitializeServices(cfg.Reconcile)
	database := InitializeDatabase(cfg.Database)
	components := InitializeRouter(services, database, cfg.Server)

	return &App{
		Router:      http.NewRouter(components.HealthHandler, components.Config),
		database:    database,
		asyncLogger: components.AsyncLogger,
	}
}

// Close flushes pending request-log entries and disconnects from MongoDB.
func (a *App) Close(ctx context.Context) error {
	a.asyncLogger.Stop()

	var err error
	if a.database != nil {
		err = errors.Join(err, a.database.Close(ctx))
	}
	return err
}
