// Package model defines the core domain entities for the reconciliation service.
package model

import (
	"slices"
	"time"
)

// Invoice is a normalized invoice record. AmountCents is the authoritative amount;
// every comparison made by the engine uses it.
type Invoice struct {
	ID          string    `json:"ID"`
	AmountCents int64     `json:"Amount_Cents"`
	Date        time.Time `json:"Date"`
	Customer    string    `json:"Customer"`
	Supplier    string    `json:"Supplier"`
}

// Solution is a set of distinct invoices together with their cent sum.
type Solution struct {
	Invoices []Invoice
	SumCents int64
}

// NewSolution builds a Solution from the given invoices, computing the sum.
func NewSolution(invoices []Invoice) Solution {
	var sum int64
	for _, inv := range invoices {
		sum += inv.AmountCents
	}
	return Solution{Invoices: invoices, SumCents: sum}
}

// Len returns the number of invoices in the solution.
func (s Solution) Len() int {
	return len(s.Invoices)
}

// IsEmpty reports whether the solution contains no invoices.
func (s Solution) IsEmpty() bool {
	return len(s.Invoices) == 0
}

// SortedIDs returns the distinct invoice identifiers in ascending order.
func (s Solution) SortedIDs() []string {
	ids := make([]string, len(s.Invoices))
	for i, inv := range s.Invoices {
		ids[i] = inv.ID
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Identity returns a key that is equal for two solutions iff they contain the same
// set of invoice identifiers, regardless of order.
func (s Solution) Identity() SolutionID {
	ids := s.SortedIDs()
	size := 0
	for _, id := range ids {
		size += len(id) + 1
	}
	buf := make([]byte, 0, size)
	for _, id := range ids {
		buf = append(buf, id...)
		buf = append(buf, 0)
	}
	return SolutionID(buf)
}

// SolutionID is the order-independent identity of a Solution.
type SolutionID string

// GreedySolution is the result of the greedy selector: a solution, the remaining
// discrepancy to the target and invoices that could help close that gap.
type GreedySolution struct {
	Solution
	DiscrepancyCents int64
	Suggestions      []Invoice
}
