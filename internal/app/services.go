// Package app provides service initialization.
package app

import (
	"github.com/guttosm/reconciliation-service/config"
	"github.com/guttosm/reconciliation-service/internal/domain/dto"
	"github.com/guttosm/reconciliation-service/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Reconciler service.Reconciler
	Defaults   dto.ReconcileDefaults
}

// InitializeServices initializes the reconciliation engine and its request defaults.
func InitializeServices(cfg config.ReconcileConfig) *ServiceComponents {
	reconciler := service.NewReconcilerService(
		service.WithSearchTimeout(cfg.SearchTimeout),
		service.WithGreedyOnEmpty(cfg.GreedyOnEmpty),
	)

	return &ServiceComponents{
		Reconciler: reconciler,
		Defaults:   reconcileDefaults(cfg),
	}
}

func reconcileDefaults(cfg config.ReconcileConfig) dto.ReconcileDefaults {
	defaults := dto.DefaultReconcileDefaults()
	if !cfg.DefaultTolerance.IsNegative() {
		defaults.Tolerance = cfg.DefaultTolerance
	}
	if cfg.BacktrackingThreshold >= 0 {
		defaults.BacktrackingThreshold = cfg.BacktrackingThreshold
	}
	if cfg.SolutionLimit >= 0 {
		defaults.SolutionLimit = cfg.SolutionLimit
	}
	defaults.MaxSolutionLimit = cfg.MaxSolutionLimit
	return defaults
}
