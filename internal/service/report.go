package service

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/guttosm/reconciliation-service/internal/domain/model"
	"github.com/guttosm/reconciliation-service/internal/logger"
)

// BuildReport assigns a distinct solution to each strategy slot and computes the status.
//
// Strategies pick in model.DraftOrder from the solutions whose identity has not been
// claimed yet. The greedy slot is filled last and only with a non-empty greedy solution
// whose identity is still unclaimed. Slots left open hold model.EmptySolution.
func BuildReport(meta model.Metadata, solutions []model.Solution, greedy *model.GreedySolution, rng *rand.Rand) model.Report {
	log := logger.WithComponent("report")

	filled := make(map[model.Strategy]model.FormattedSolution, len(model.ReportOrder))
	claimed := make(map[model.SolutionID]struct{}, len(model.DraftOrder))

	if len(solutions) > 0 {
		available := make([]model.Solution, 0, len(solutions))
		for _, strategy := range model.DraftOrder {
			available = available[:0]
			for _, sol := range solutions {
				if _, taken := claimed[sol.Identity()]; !taken {
					available = append(available, sol)
				}
			}
			if len(available) == 0 {
				log.Debug().Str("strategy", string(strategy)).Msg("no unclaimed solution left")
				continue
			}

			best, ok := SelectByStrategy(available, strategy, rng)
			if !ok {
				continue
			}
			claimed[best.Identity()] = struct{}{}
			filled[strategy] = FormatSolution(best, meta.TargetCents, nil)
			log.Debug().
				Str("strategy", string(strategy)).
				Int("invoices", best.Len()).
				Uint64("id_hash", idSetHash(best.SortedIDs())).
				Msg("strategy claimed solution")
		}
	}

	hasGreedy := greedy != nil && !greedy.IsEmpty()
	if hasGreedy {
		if _, taken := claimed[greedy.Identity()]; taken {
			log.Debug().Msg("greedy solution already claimed, discarding")
		} else {
			filled[model.StrategyGreedy] = FormatSolution(greedy.Solution, meta.TargetCents, greedy.Suggestions)
			log.Debug().Int("invoices", greedy.Len()).Msg("greedy claimed its solution")
		}
	}

	slots := make(model.StrategySolutions, 0, len(model.ReportOrder))
	for _, strategy := range model.ReportOrder {
		sol, ok := filled[strategy]
		if !ok {
			sol = model.EmptySolution(meta.TargetCents)
		}
		slots = append(slots, model.StrategySlot{Strategy: strategy, Solution: sol})
	}

	unique := countIdentities(solutions)
	return model.Report{
		Metadata:            meta,
		Status:              model.FormatStatus(status(len(solutions), unique, hasGreedy), unique),
		UniqueSolutions:     unique,
		SolutionsByStrategy: slots,
	}
}

func status(found, unique int, hasGreedy bool) model.StatusCode {
	switch {
	case found == 0 && !hasGreedy:
		return model.StatusNoSolution
	case unique > 1:
		return model.StatusAmbiguity
	case unique == 1:
		return model.StatusUniqueSolution
	default:
		return model.StatusGreedySolution
	}
}

func countIdentities(solutions []model.Solution) int {
	seen := make(map[model.SolutionID]struct{}, len(solutions))
	for _, sol := range solutions {
		seen[sol.Identity()] = struct{}{}
	}
	return len(seen)
}

// FormatSolution renders a solution for the report. The audit trail is ordered by amount,
// largest first, and at most MaxSuggestions suggestions are kept.
func FormatSolution(sol model.Solution, targetCents int64, suggestions []model.Invoice) model.FormattedSolution {
	invoices := slices.Clone(sol.Invoices)
	slices.SortStableFunc(invoices, byAmountDesc)

	trail := make([]model.AuditEntry, len(invoices))
	for i, inv := range invoices {
		trail[i] = model.AuditEntry{
			ID:       inv.ID,
			Amount:   model.CentsToAmount(inv.AmountCents),
			Date:     inv.Date.Format(model.AuditDateLayout),
			Customer: inv.Customer,
			Supplier: inv.Supplier,
		}
	}

	out := model.FormattedSolution{
		TotalSum:           model.CentsToAmount(sol.SumCents),
		Discrepancy:        model.CentsToAmount(targetCents - sol.SumCents),
		PaidInvoicesCount:  len(sol.Invoices),
		InvoicesAuditTrail: trail,
	}

	if len(suggestions) > 0 {
		sorted := slices.Clone(suggestions)
		slices.SortStableFunc(sorted, byAmountDesc)
		if len(sorted) > MaxSuggestions {
			sorted = sorted[:MaxSuggestions]
		}
		out.DiscrepancySuggestions = make([]model.SuggestionEntry, len(sorted))
		for i, inv := range sorted {
			out.DiscrepancySuggestions[i] = model.SuggestionEntry{
				ID:     inv.ID,
				Amount: model.CentsToAmount(inv.AmountCents),
			}
		}
	}
	return out
}

func byAmountDesc(a, b model.Invoice) int {
	return cmp.Compare(b.AmountCents, a.AmountCents)
}
