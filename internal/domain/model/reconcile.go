package model

import "time"

// ReconcileInput is a normalized reconciliation request. All amounts are in cents.
type ReconcileInput struct {
	Invoices              []Invoice
	TargetCents           int64
	ToleranceCents        int64
	BacktrackingThreshold int
	SolutionLimit         int
	// Seed drives the random strategy when set; otherwise a fresh seed is drawn.
	Seed      *uint64
	Timestamp time.Time
}

// Reconciliation modes recorded in the report metadata.
const (
	ModeBacktracking   = "backtracking"
	ModeGreedy         = "greedy"
	ModeGreedyFallback = "greedy_fallback"
)
