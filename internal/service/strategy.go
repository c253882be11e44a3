package service

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/guttosm/reconciliation-service/internal/domain/model"
)

// maxAverageDate is the average date of a solution without dated invoices.
var maxAverageDate = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)

// SelectByStrategy picks one solution from candidates according to strategy.
//
// Every ordering ends with the id-set hash and then the sorted identifiers themselves, so
// two solutions with different identities never compare equal and the choice does not
// depend on the order of candidates. The random strategy draws from rng; an unknown
// strategy returns the first candidate. The boolean is false only when candidates is empty.
func SelectByStrategy(candidates []model.Solution, strategy model.Strategy, rng *rand.Rand) (model.Solution, bool) {
	switch len(candidates) {
	case 0:
		return model.Solution{}, false
	case 1:
		return candidates[0], true
	}

	var compare func(a, b *rankedSolution) int
	switch strategy {
	case model.StrategyLargestFirst:
		compare = func(a, b *rankedSolution) int {
			return -cmpChain(
				cmp.Compare(a.count, b.count),
				cmp.Compare(a.sum, b.sum),
				a.compareIdentity(b),
			)
		}
	case model.StrategySmallestFirst:
		compare = func(a, b *rankedSolution) int {
			return cmpChain(
				cmp.Compare(a.count, b.count),
				cmp.Compare(a.sum, b.sum),
				a.compareIdentity(b),
			)
		}
	case model.StrategyOldestFirst:
		compare = func(a, b *rankedSolution) int {
			return cmpChain(
				a.avgDate.Compare(b.avgDate),
				-cmp.Compare(a.count, b.count),
				a.compareIdentity(b),
			)
		}
	case model.StrategyYoungestFirst:
		compare = func(a, b *rankedSolution) int {
			return -cmpChain(
				a.avgDate.Compare(b.avgDate),
				cmp.Compare(a.count, b.count),
				a.compareIdentity(b),
			)
		}
	case model.StrategyRandom:
		if rng == nil {
			rng = NewRand(nil)
		}
		return candidates[rng.IntN(len(candidates))], true
	default:
		return candidates[0], true
	}

	best := rank(candidates[0])
	for _, sol := range candidates[1:] {
		next := rank(sol)
		if compare(&next, &best) < 0 {
			best = next
		}
	}
	return best.solution, true
}

// rankedSolution caches the sort keys of a solution.
type rankedSolution struct {
	solution model.Solution
	count    int
	sum      int64
	avgDate  time.Time
	hash     uint64
	ids      []string
}

func rank(sol model.Solution) rankedSolution {
	ids := sol.SortedIDs()
	return rankedSolution{
		solution: sol,
		count:    sol.Len(),
		sum:      sol.SumCents,
		avgDate:  averageDate(sol.Invoices),
		hash:     idSetHash(ids),
		ids:      ids,
	}
}

func (r *rankedSolution) compareIdentity(other *rankedSolution) int {
	if c := cmp.Compare(r.hash, other.hash); c != 0 {
		return c
	}
	return slices.Compare(r.ids, other.ids)
}

func cmpChain(results ...int) int {
	for _, c := range results {
		if c != 0 {
			return c
		}
	}
	return 0
}

// idSetHash hashes the sorted identifiers, NUL separated. It is stable across processes.
func idSetHash(sortedIDs []string) uint64 {
	if len(sortedIDs) == 0 {
		return 0
	}
	d := xxhash.New()
	for _, id := range sortedIDs {
		_, _ = d.WriteString(id)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}

// averageDate returns the mean of the non-zero invoice dates, at second precision.
func averageDate(invoices []model.Invoice) time.Time {
	var total, n int64
	for _, inv := range invoices {
		if inv.Date.IsZero() {
			continue
		}
		total += inv.Date.Unix()
		n++
	}
	if n == 0 {
		return maxAverageDate
	}
	return time.Unix(total/n, 0).UTC()
}
