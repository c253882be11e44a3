package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/reconciliation-service/internal/domain/model"
)

// TestNewReconcilerService tests the constructor and options.
func TestNewReconcilerService(t *testing.T) {
	fixed := func() time.Time { return time.Date(2025, time.January, 28, 10, 0, 0, 0, time.UTC) }

	tests := []struct {
		name     string
		options  []ReconcilerOption
		validate func(*testing.T, *ReconcilerService)
	}{
		{
			name: "uses defaults when no options",
			validate: func(t *testing.T, svc *ReconcilerService) {
				assert.Equal(t, DefaultSearchTimeout, svc.searchTimeout)
				assert.False(t, svc.greedyOnEmpty)
				assert.NotNil(t, svc.now)
			},
		},
		{
			name:    "sets search timeout",
			options: []ReconcilerOption{WithSearchTimeout(time.Second)},
			validate: func(t *testing.T, svc *ReconcilerService) {
				assert.Equal(t, time.Second, svc.searchTimeout)
			},
		},
		{
			name:    "enables greedy on empty",
			options: []ReconcilerOption{WithGreedyOnEmpty(true)},
			validate: func(t *testing.T, svc *ReconcilerService) {
				assert.True(t, svc.greedyOnEmpty)
			},
		},
		{
			name:    "overrides clock",
			options: []ReconcilerOption{WithClock(fixed)},
			validate: func(t *testing.T, svc *ReconcilerService) {
				assert.Equal(t, fixed(), svc.now())
			},
		},
		{
			name:    "ignores nil clock",
			options: []ReconcilerOption{WithClock(nil)},
			validate: func(t *testing.T, svc *ReconcilerService) {
				assert.NotNil(t, svc.now)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, NewReconcilerService(tt.options...))
		})
	}
}

func TestReconcilerService_Reconcile(t *testing.T) {
	ts := time.Date(2025, time.January, 28, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		options    []ReconcilerOption
		input      model.ReconcileInput
		wantMode   string
		wantStatus string
		validate   func(*testing.T, model.Report)
	}{
		{
			name: "exhaustive search below threshold",
			input: model.ReconcileInput{
				Invoices:              []model.Invoice{inv("1", 500), inv("2", 500), inv("3", 1000)},
				TargetCents:           1000,
				BacktrackingThreshold: 40,
				SolutionLimit:         10,
				Timestamp:             ts,
			},
			wantMode:   model.ModeBacktracking,
			wantStatus: "AMBIGUITY_DETECTED (2 unique solutions found)",
		},
		{
			name: "greedy above threshold",
			input: model.ReconcileInput{
				Invoices:              []model.Invoice{inv("a", 800), inv("b", 300)},
				TargetCents:           1000,
				BacktrackingThreshold: 1,
				SolutionLimit:         10,
				Timestamp:             ts,
			},
			wantMode:   model.ModeGreedy,
			wantStatus: "GREEDY_SOLUTION_FOUND",
		},
		{
			name: "nothing found without greedy on empty",
			input: model.ReconcileInput{
				Invoices:              []model.Invoice{inv("a", 800), inv("b", 300)},
				TargetCents:           1000,
				BacktrackingThreshold: 40,
				SolutionLimit:         10,
				Timestamp:             ts,
			},
			wantMode:   model.ModeBacktracking,
			wantStatus: "NO_SOLUTION_FOUND",
		},
		{
			name:    "greedy on empty attaches greedy result",
			options: []ReconcilerOption{WithGreedyOnEmpty(true)},
			input: model.ReconcileInput{
				Invoices:              []model.Invoice{inv("a", 800), inv("b", 300)},
				TargetCents:           1000,
				BacktrackingThreshold: 40,
				SolutionLimit:         10,
				Timestamp:             ts,
			},
			wantMode:   model.ModeBacktracking,
			wantStatus: "GREEDY_SOLUTION_FOUND",
		},
		{
			name: "metadata echoes parameters",
			input: model.ReconcileInput{
				Invoices:              []model.Invoice{inv("7", 205100)},
				TargetCents:           205100,
				ToleranceCents:        200,
				BacktrackingThreshold: 15,
				SolutionLimit:         3,
				Timestamp:             ts,
			},
			wantMode:   model.ModeBacktracking,
			wantStatus: "UNIQUE_SOLUTION_FOUND",
			validate: func(t *testing.T, r model.Report) {
				assert.Equal(t, InputFileLabel, r.Metadata.InputFile)
				assert.InDelta(t, 2051.0, r.Metadata.TargetAmount, 1e-9)
				assert.InDelta(t, 2.0, r.Metadata.Tolerance, 1e-9)
				assert.Equal(t, 15, r.Metadata.BacktrackingThreshold)
				assert.Equal(t, 3, r.Metadata.SolutionLimit)
				assert.Equal(t, "2025-01-28T10:00:00Z", r.Metadata.ExecutionTimestamp)
				assert.Equal(t, int64(205100), r.Metadata.TargetCents)
			},
		},
		{
			name:    "clock fills missing timestamp",
			options: []ReconcilerOption{WithClock(func() time.Time { return ts.Add(time.Hour) })},
			input: model.ReconcileInput{
				TargetCents:           1000,
				BacktrackingThreshold: 40,
				SolutionLimit:         10,
			},
			wantMode:   model.ModeBacktracking,
			wantStatus: "NO_SOLUTION_FOUND",
			validate: func(t *testing.T, r model.Report) {
				assert.Equal(t, "2025-01-28T11:00:00Z", r.Metadata.ExecutionTimestamp)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewReconcilerService(tt.options...)

			report := svc.Reconcile(context.Background(), tt.input)

			assert.Equal(t, tt.wantMode, report.Metadata.Mode)
			assert.Equal(t, tt.wantStatus, report.Status)
			assert.Len(t, report.SolutionsByStrategy, len(model.ReportOrder))
			if tt.validate != nil {
				tt.validate(t, report)
			}
		})
	}
}

func TestReconcilerService_Reconcile_FallsBackWhenSearchInterrupted(t *testing.T) {
	svc := NewReconcilerService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := svc.Reconcile(ctx, model.ReconcileInput{
		Invoices:              []model.Invoice{inv("a", 800), inv("b", 300)},
		TargetCents:           1000,
		BacktrackingThreshold: 40,
		SolutionLimit:         10,
	})

	assert.Equal(t, model.ModeGreedyFallback, report.Metadata.Mode)
	assert.Equal(t, "GREEDY_SOLUTION_FOUND", report.Status)
	greedy, ok := report.SolutionsByStrategy.Get(model.StrategyGreedy)
	require.True(t, ok)
	assert.Equal(t, 1, greedy.PaidInvoicesCount)
}

func TestReconcilerService_Reconcile_SeedMakesRandomSlotReproducible(t *testing.T) {
	invoices := []model.Invoice{
		inv("1", 100), inv("2", 200), inv("3", 300), inv("4", 400),
		inv("5", 500), inv("6", 600), inv("7", 700), inv("8", 800),
	}
	seed := uint64(2024)
	input := model.ReconcileInput{
		Invoices:              invoices,
		TargetCents:           1000,
		BacktrackingThreshold: 40,
		SolutionLimit:         20,
		Seed:                  &seed,
		Timestamp:             time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	svc := NewReconcilerService()

	assert.Equal(t, svc.Reconcile(context.Background(), input), svc.Reconcile(context.Background(), input))
}

// Reconcile must be safe for concurrent use.
func TestReconcilerService_Reconcile_Concurrent(t *testing.T) {
	svc := NewReconcilerService()
	input := model.ReconcileInput{
		Invoices:              []model.Invoice{inv("1", 500), inv("2", 500), inv("3", 1000)},
		TargetCents:           1000,
		BacktrackingThreshold: 40,
		SolutionLimit:         10,
		Timestamp:             time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	done := make(chan model.Report, 8)
	for range 8 {
		go func() {
			done <- svc.Reconcile(context.Background(), input)
		}()
	}
	for range 8 {
		report := <-done
		assert.Equal(t, "AMBIGUITY_DETECTED (2 unique solutions found)", report.Status)
	}
}
