package service

import (
	"github.com/guttosm/reconciliation-service/internal/domain/model"
)

// MaxSuggestions caps the discrepancy suggestions attached to a greedy solution.
const MaxSuggestions = 5

// SelectGreedy builds one solution in a single pass over the positive invoices, largest
// first, taking each invoice that keeps the running sum at or below targetCents.
//
// The remaining gap is returned as DiscrepancyCents. When it is positive, up to
// MaxSuggestions unused invoices that fit inside the gap are attached, largest first.
func SelectGreedy(invoices []model.Invoice, targetCents int64) model.GreedySolution {
	candidates := sortedCandidates(invoices)

	used := make(map[string]struct{}, len(candidates))
	picked := make([]model.Invoice, 0, len(candidates))
	var sum int64
	for _, inv := range candidates {
		if sum+inv.AmountCents <= targetCents {
			sum += inv.AmountCents
			picked = append(picked, inv)
			used[inv.ID] = struct{}{}
		}
	}

	result := model.GreedySolution{
		Solution:         model.Solution{Invoices: picked, SumCents: sum},
		DiscrepancyCents: targetCents - sum,
	}
	if result.DiscrepancyCents <= 0 {
		return result
	}

	for _, inv := range candidates {
		if len(result.Suggestions) == MaxSuggestions {
			break
		}
		if _, ok := used[inv.ID]; ok {
			continue
		}
		if inv.AmountCents <= result.DiscrepancyCents {
			result.Suggestions = append(result.Suggestions, inv)
		}
	}
	return result
}
