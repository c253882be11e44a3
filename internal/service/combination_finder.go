package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/guttosm/reconciliation-service/internal/domain/model"
)

// FindSolutions returns every subset of invoices whose cent sum lies within
// toleranceCents of targetCents, up to limit subsets.
//
// Candidates are invoices with a positive amount, explored largest first with input order
// breaking ties, so the result sequence is deterministic for a given input. A matching
// branch keeps being extended, which means supersets that stay inside the window are
// reported as separate solutions. A non-positive limit yields nil; a negative tolerance is
// treated as zero.
func FindSolutions(invoices []model.Invoice, targetCents, toleranceCents int64, limit int) []model.Solution {
	solutions, _ := findSolutions(context.Background(), invoices, targetCents, toleranceCents, limit)
	return solutions
}

// findSolutions is FindSolutions bounded by ctx. When ctx is done the search stops and
// the context error is returned together with the solutions recorded so far.
func findSolutions(ctx context.Context, invoices []model.Invoice, targetCents, toleranceCents int64, limit int) ([]model.Solution, error) {
	if limit <= 0 {
		return nil, nil
	}
	if toleranceCents < 0 {
		toleranceCents = 0
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := &finder{
		candidates: sortedCandidates(invoices),
		tolerance:  toleranceCents,
		limit:      limit,
		done:       ctx.Done(),
	}
	f.path = make([]model.Invoice, 0, len(f.candidates))
	f.search(0, targetCents)
	if f.aborted {
		return f.solutions, ctx.Err()
	}
	return f.solutions, nil
}

// cancelCheckInterval is the number of visited nodes between two context checks.
const cancelCheckInterval = 1 << 12

// finder holds the state of one backtracking search. path is owned by the search and
// copied whenever a match is recorded.
type finder struct {
	candidates []model.Invoice
	tolerance  int64
	limit      int

	path      []model.Invoice
	solutions []model.Solution

	done    <-chan struct{}
	visited int
	aborted bool
}

func (f *finder) stopped() bool {
	if f.aborted || len(f.solutions) >= f.limit {
		return true
	}
	if f.done == nil {
		return false
	}
	f.visited++
	if f.visited%cancelCheckInterval != 0 {
		return false
	}
	select {
	case <-f.done:
		f.aborted = true
		return true
	default:
		return false
	}
}

func (f *finder) search(start int, remaining int64) {
	if f.stopped() {
		return
	}
	if remaining >= -f.tolerance && remaining <= f.tolerance {
		f.record()
	}
	if start >= len(f.candidates) || remaining < -f.tolerance {
		return
	}

	for i := start; i < len(f.candidates); i++ {
		if f.aborted || len(f.solutions) >= f.limit {
			return
		}
		amount := f.candidates[i].AmountCents
		if amount > remaining+f.tolerance {
			continue
		}
		f.path = append(f.path, f.candidates[i])
		f.search(i+1, remaining-amount)
		f.path = f.path[:len(f.path)-1]
	}
}

func (f *finder) record() {
	if len(f.solutions) >= f.limit {
		return
	}
	f.solutions = append(f.solutions, model.NewSolution(slices.Clone(f.path)))
}

// sortedCandidates returns the invoices with a positive amount ordered by amount
// descending. The sort is stable so equal amounts keep their input order.
func sortedCandidates(invoices []model.Invoice) []model.Invoice {
	candidates := make([]model.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.AmountCents > 0 {
			candidates = append(candidates, inv)
		}
	}
	slices.SortStableFunc(candidates, func(a, b model.Invoice) int {
		return cmp.Compare(b.AmountCents, a.AmountCents)
	})
	return candidates
}
