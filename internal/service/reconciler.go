package service

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/reconciliation-service/internal/domain/model"
	"github.com/guttosm/reconciliation-service/internal/logger"
	"github.com/guttosm/reconciliation-service/internal/metrics"
)

const (
	// DefaultSearchTimeout bounds the exhaustive search when no option overrides it.
	DefaultSearchTimeout = 10 * time.Second

	// InputFileLabel is reported as the input file of API requests.
	InputFileLabel = "payload-data"
)

// Reconciler defines the interface for reconciliation operations.
type Reconciler interface {
	Reconcile(ctx context.Context, input model.ReconcileInput) model.Report
}

// ReconcilerOption configures a ReconcilerService.
type ReconcilerOption func(*ReconcilerService)

// ReconcilerService chooses between the exhaustive search and the greedy selector and
// assembles the report.
type ReconcilerService struct {
	searchTimeout time.Duration
	greedyOnEmpty bool
	now           func() time.Time
}

// NewReconcilerService creates a new ReconcilerService with the given options.
func NewReconcilerService(opts ...ReconcilerOption) *ReconcilerService {
	s := &ReconcilerService{
		searchTimeout: DefaultSearchTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithSearchTimeout bounds the exhaustive search. Zero or negative disables the bound.
func WithSearchTimeout(d time.Duration) ReconcilerOption {
	return func(s *ReconcilerService) {
		s.searchTimeout = d
	}
}

// WithGreedyOnEmpty attaches a greedy result when the exhaustive search finds nothing.
func WithGreedyOnEmpty(enabled bool) ReconcilerOption {
	return func(s *ReconcilerService) {
		s.greedyOnEmpty = enabled
	}
}

// WithClock overrides the clock used for the execution timestamp.
func WithClock(now func() time.Time) ReconcilerOption {
	return func(s *ReconcilerService) {
		if now != nil {
			s.now = now
		}
	}
}

// Reconcile runs the engine for one request. It never fails: a search that exceeds its
// deadline, or whose ctx ends, is replaced by the greedy selector.
func (s *ReconcilerService) Reconcile(ctx context.Context, input model.ReconcileInput) model.Report {
	start := time.Now()
	log := logger.WithComponent("reconciler")

	ts := input.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	meta := model.Metadata{
		InputFile:             InputFileLabel,
		TargetAmount:          model.CentsToAmount(input.TargetCents),
		BacktrackingThreshold: input.BacktrackingThreshold,
		Tolerance:             model.CentsToAmount(max(input.ToleranceCents, 0)),
		SolutionLimit:         input.SolutionLimit,
		ExecutionTimestamp:    ts.UTC().Format(time.RFC3339),
		TargetCents:           input.TargetCents,
	}

	var (
		solutions []model.Solution
		greedy    *model.GreedySolution
	)

	if len(input.Invoices) <= input.BacktrackingThreshold {
		meta.Mode = model.ModeBacktracking

		searchCtx := ctx
		if s.searchTimeout > 0 {
			var cancel context.CancelFunc
			searchCtx, cancel = context.WithTimeout(ctx, s.searchTimeout)
			defer cancel()
		}

		found, err := findSolutions(searchCtx, input.Invoices, input.TargetCents, input.ToleranceCents, input.SolutionLimit)
		switch {
		case err != nil:
			reason := "deadline"
			if errors.Is(err, context.Canceled) {
				reason = "canceled"
			}
			log.Warn().
				Err(err).
				Int("invoices", len(input.Invoices)).
				Dur("search_timeout", s.searchTimeout).
				Msg("exhaustive search interrupted, falling back to greedy selection")
			metrics.RecordSearchFallback(reason)
			meta.Mode = model.ModeGreedyFallback
			g := SelectGreedy(input.Invoices, input.TargetCents)
			greedy = &g
		default:
			solutions = found
			metrics.RecordSolutionsFound(len(found))
			if len(found) == 0 && s.greedyOnEmpty {
				g := SelectGreedy(input.Invoices, input.TargetCents)
				greedy = &g
			}
		}
	} else {
		meta.Mode = model.ModeGreedy
		g := SelectGreedy(input.Invoices, input.TargetCents)
		greedy = &g
	}

	report := BuildReport(meta, solutions, greedy, NewRand(input.Seed))

	duration := time.Since(start)
	metrics.RecordReconciliation(duration, meta.Mode, string(report.StatusCode()))
	log.Info().
		Str("mode", meta.Mode).
		Str("status", report.Status).
		Int("invoices", len(input.Invoices)).
		Int("solutions", len(solutions)).
		Dur("duration", duration).
		Msg("reconciliation completed")

	return report
}
