package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// AuditDateLayout is the textual layout of invoice dates in the audit trail.
const AuditDateLayout = "2006-01-02 15:04:05"

// StatusCode classifies the overall outcome of a reconciliation.
type StatusCode string

const (
	StatusNoSolution     StatusCode = "NO_SOLUTION_FOUND"
	StatusAmbiguity      StatusCode = "AMBIGUITY_DETECTED"
	StatusUniqueSolution StatusCode = "UNIQUE_SOLUTION_FOUND"
	StatusGreedySolution StatusCode = "GREEDY_SOLUTION_FOUND"
)

// Metadata describes the parameters a report was produced with.
type Metadata struct {
	InputFile             string  `json:"input_file" example:"payload-data"`
	TargetAmount          float64 `json:"target_amount" example:"2051"`
	BacktrackingThreshold int     `json:"backtracking_threshold" example:"40"`
	Tolerance             float64 `json:"set_tolerance" example:"2"`
	SolutionLimit         int     `json:"solution_limit" example:"10"`
	Mode                  string  `json:"mode,omitempty" example:"backtracking"`
	ExecutionTimestamp    string  `json:"execution_timestamp" example:"2025-01-28T10:00:00Z"`

	// TargetCents is the authoritative target used for discrepancies.
	TargetCents int64 `json:"-"`
}

// AuditEntry is one invoice listed in a formatted solution.
type AuditEntry struct {
	ID       string  `json:"ID"`
	Amount   float64 `json:"Amount"`
	Date     string  `json:"Date"`
	Customer string  `json:"Customer"`
	Supplier string  `json:"Supplier"`
}

// SuggestionEntry is an unused invoice that could help close a greedy discrepancy.
type SuggestionEntry struct {
	ID     string  `json:"ID"`
	Amount float64 `json:"Amount"`
}

// FormattedSolution is the report representation of a solution.
type FormattedSolution struct {
	TotalSum               float64           `json:"total_sum"`
	Discrepancy            float64           `json:"discrepancy"`
	PaidInvoicesCount      int               `json:"paid_invoices_count"`
	InvoicesAuditTrail     []AuditEntry      `json:"invoices_audit_trail"`
	DiscrepancySuggestions []SuggestionEntry `json:"discrepancy_suggestions,omitempty"`
}

// EmptySolution returns the placeholder used for slots without a distinct solution.
func EmptySolution(targetCents int64) FormattedSolution {
	return FormattedSolution{
		TotalSum:           0,
		Discrepancy:        CentsToAmount(targetCents),
		PaidInvoicesCount:  0,
		InvoicesAuditTrail: []AuditEntry{},
	}
}

// StrategySlot binds one strategy to its formatted solution.
type StrategySlot struct {
	Strategy Strategy
	Solution FormattedSolution
}

// StrategySolutions is an ordered strategy → solution mapping. It serializes as a
// JSON object whose keys keep the slice order.
type StrategySolutions []StrategySlot

// Get returns the solution bound to the given strategy.
func (s StrategySolutions) Get(strategy Strategy) (FormattedSolution, bool) {
	for _, slot := range s {
		if slot.Strategy == strategy {
			return slot.Solution, true
		}
	}
	return FormattedSolution{}, false
}

// MarshalJSON implements json.Marshaler.
func (s StrategySolutions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, slot := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(slot.Strategy))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(slot.Solution)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, preserving key order.
func (s *StrategySolutions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("solutions_by_strategy: expected object, got %v", tok)
	}

	slots := StrategySolutions{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("solutions_by_strategy: expected key, got %v", tok)
		}
		var sol FormattedSolution
		if err := dec.Decode(&sol); err != nil {
			return fmt.Errorf("solutions_by_strategy[%s]: %w", key, err)
		}
		slots = append(slots, StrategySlot{Strategy: Strategy(key), Solution: sol})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = slots
	return nil
}

// Report is the complete reconciliation result.
type Report struct {
	Metadata            Metadata          `json:"metadata"`
	Status              string            `json:"status" example:"AMBIGUITY_DETECTED (2 unique solutions found)"`
	UniqueSolutions     int               `json:"unique_solutions" example:"2"`
	SolutionsByStrategy StrategySolutions `json:"solutions_by_strategy"`
}

// StatusCode returns the status classification without its detail suffix.
func (r Report) StatusCode() StatusCode {
	for _, code := range []StatusCode{StatusNoSolution, StatusAmbiguity, StatusUniqueSolution, StatusGreedySolution} {
		if len(r.Status) >= len(code) && r.Status[:len(code)] == string(code) {
			return code
		}
	}
	return StatusCode(r.Status)
}

// FormatStatus renders a status code, adding the solution count for ambiguity.
func FormatStatus(code StatusCode, uniqueSolutions int) string {
	if code == StatusAmbiguity {
		return fmt.Sprintf("%s (%d unique solutions found)", code, uniqueSolutions)
	}
	return string(code)
}

// CentsToAmount converts minor units to a currency amount rounded to two places.
func CentsToAmount(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}
