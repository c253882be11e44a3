// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/reconciliation-service/config"
	"github.com/guttosm/reconciliation-service/internal/logger"
)

// InitializeLogger initializes the global zerolog logger.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(logger.Config{
		Level:  cfg.Level,
		Pretty: cfg.Pretty,
	})
}
