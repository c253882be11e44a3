// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model. The reconcile request also carries
// the invoice normalizer that turns raw payload records into cent-denominated invoices.
package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/reconciliation-service/internal/domain/model"
)

// Defaults applied to invoice fields missing from the payload.
const (
	DefaultInvoiceID = "0"
	DefaultCustomer  = "0"
	DefaultSupplier  = "N/A"
)

// MaxAmountCents bounds every amount accepted from a payload so that sums of large
// invoice lists stay far from int64 overflow.
const MaxAmountCents int64 = 10_000_000_000_000

// DateLayouts are tried in order when parsing an invoice date.
var DateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

var (
	// ErrMissingTargetAmount is returned when target_amount is absent or null.
	ErrMissingTargetAmount = &ValidationError{
		Field:   "target_amount",
		Message: "is required",
	}
	// ErrMissingInvoices is returned when the invoices list is absent or null.
	ErrMissingInvoices = &ValidationError{
		Field:   "invoices",
		Message: "must be a list",
	}
	// ErrAmountOutOfRange is wrapped by every amount that exceeds MaxAmountCents.
	ErrAmountOutOfRange = errors.New("amount out of range")
	// ErrInvalidBody is wrapped around request body decoding failures.
	ErrInvalidBody = errors.New("invalid request body")
	// ErrInvalidQuery is wrapped around query string binding failures.
	ErrInvalidQuery = errors.New("invalid query parameters")
)

// Scalar is an identifier-like JSON value. It accepts strings and numbers; numbers keep
// their literal text so that 1 and 1.0 stay distinct identifiers.
type Scalar string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty value")
	}
	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*s = Scalar(strconv.FormatBool(b))
		return nil
	case 'n':
		return nil
	case '{', '[':
		return fmt.Errorf("expected string or number, got %s", data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*s = Scalar(n.String())
		return nil
	}
}

func (s *Scalar) orDefault(def string) string {
	if s == nil {
		return def
	}
	return string(*s)
}

// InvoiceInput is a raw invoice record as sent by clients.
type InvoiceInput struct {
	ID       *Scalar `json:"ID"`
	Customer *Scalar `json:"Customer"`
	Supplier *Scalar `json:"Supplier"`
	// Amount is in currency units. It takes precedence over AmountCents; with neither
	// set the invoice is worth zero and never selected.
	Amount      *decimal.Decimal `json:"Amount"`
	AmountCents *int64           `json:"Amount_Cents,omitempty"`
	Date        *string          `json:"Date"`
}

// ReconcileRequest is the JSON body of POST /api/reconcile.
//
// target_amount and invoices are required; the remaining fields fall back to the
// server defaults.
type ReconcileRequest struct {
	TargetAmount          *decimal.Decimal `json:"target_amount"`
	Tolerance             *decimal.Decimal `json:"tolerance,omitempty"`
	BacktrackingThreshold *int             `json:"backtracking_threshold,omitempty"`
	SolutionLimit         *int             `json:"solution_limit,omitempty"`
	Seed                  *uint64          `json:"seed,omitempty"`
	Invoices              []InvoiceInput   `json:"invoices"`
}

// ReconcileDefaults are the server-side values used for omitted request parameters.
type ReconcileDefaults struct {
	Tolerance             decimal.Decimal
	BacktrackingThreshold int
	SolutionLimit         int
	// MaxSolutionLimit caps solution_limit. Zero or less disables the cap.
	MaxSolutionLimit int
}

// DefaultReconcileDefaults returns the stock request defaults.
func DefaultReconcileDefaults() ReconcileDefaults {
	return ReconcileDefaults{
		Tolerance:             decimal.RequireFromString("2.00"),
		BacktrackingThreshold: 40,
		SolutionLimit:         10,
		MaxSolutionLimit:      100,
	}
}

// Validate checks the required fields.
func (r *ReconcileRequest) Validate() error {
	if r.TargetAmount == nil {
		return ErrMissingTargetAmount
	}
	if r.Invoices == nil {
		return ErrMissingInvoices
	}
	return nil
}

// Normalize validates the request and converts it into a model.ReconcileInput.
// now stamps the input and replaces every absent or unparseable invoice date.
func (r *ReconcileRequest) Normalize(now time.Time, defaults ReconcileDefaults) (model.ReconcileInput, error) {
	if err := r.Validate(); err != nil {
		return model.ReconcileInput{}, err
	}

	target, err := ToCents(*r.TargetAmount)
	if err != nil {
		return model.ReconcileInput{}, &ValidationError{Field: "target_amount", Message: err.Error(), Err: err}
	}

	tolerance := defaults.Tolerance
	if r.Tolerance != nil {
		tolerance = *r.Tolerance
	}
	toleranceCents, err := ToCents(tolerance)
	if err != nil {
		return model.ReconcileInput{}, &ValidationError{Field: "tolerance", Message: err.Error(), Err: err}
	}

	threshold := defaults.BacktrackingThreshold
	if r.BacktrackingThreshold != nil {
		threshold = *r.BacktrackingThreshold
	}

	limit := defaults.SolutionLimit
	if r.SolutionLimit != nil {
		limit = *r.SolutionLimit
	}
	if defaults.MaxSolutionLimit > 0 {
		limit = min(limit, defaults.MaxSolutionLimit)
	}

	invoices := make([]model.Invoice, len(r.Invoices))
	for i := range r.Invoices {
		inv, err := r.Invoices[i].normalize(now)
		if err != nil {
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				vErr.Field = fmt.Sprintf("invoices[%d].%s", i, vErr.Field)
			}
			return model.ReconcileInput{}, err
		}
		invoices[i] = inv
	}

	return model.ReconcileInput{
		Invoices:              invoices,
		TargetCents:           target,
		ToleranceCents:        max(toleranceCents, 0),
		BacktrackingThreshold: max(threshold, 0),
		SolutionLimit:         max(limit, 0),
		Seed:                  r.Seed,
		Timestamp:             now,
	}, nil
}

func (in *InvoiceInput) normalize(now time.Time) (model.Invoice, error) {
	var cents int64
	switch {
	case in.Amount != nil:
		c, err := ToCents(*in.Amount)
		if err != nil {
			return model.Invoice{}, &ValidationError{Field: "Amount", Message: err.Error(), Err: err}
		}
		cents = c
	case in.AmountCents != nil:
		if *in.AmountCents > MaxAmountCents || *in.AmountCents < -MaxAmountCents {
			return model.Invoice{}, &ValidationError{Field: "Amount_Cents", Message: ErrAmountOutOfRange.Error(), Err: ErrAmountOutOfRange}
		}
		cents = *in.AmountCents
	}

	date := now
	if in.Date != nil {
		if parsed, ok := ParseDate(*in.Date); ok {
			date = parsed
		}
	}

	return model.Invoice{
		ID:          in.ID.orDefault(DefaultInvoiceID),
		AmountCents: cents,
		Date:        date,
		Customer:    in.Customer.orDefault(DefaultCustomer),
		Supplier:    in.Supplier.orDefault(DefaultSupplier),
	}, nil
}

// ToCents converts an amount in currency units to integer cents, rounding half away
// from zero.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Shift(2).Round(0)
	if cents.Abs().GreaterThan(decimal.NewFromInt(MaxAmountCents)) {
		return 0, fmt.Errorf("%w: %s", ErrAmountOutOfRange, amount.String())
	}
	return cents.IntPart(), nil
}

// ParseDate parses s with the first matching layout in DateLayouts.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LogsQueryRequest is bound from the GET /api/logs query string.
type LogsQueryRequest struct {
	RequestID string    `form:"request_id"`
	Kind      string    `form:"kind"`
	Level     string    `form:"level"`
	Method    string    `form:"method"`
	Path      string    `form:"path"`
	Since     time.Time `form:"since" time_format:"2006-01-02T15:04:05Z07:00"`
	Until     time.Time `form:"until" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit     int       `form:"limit" binding:"omitempty,min=0"`
	Skip      int       `form:"skip" binding:"omitempty,min=0"`
}

// ToQueryOptions converts the request into model query options.
func (r LogsQueryRequest) ToQueryOptions() model.LogQueryOptions {
	opts := model.LogQueryOptions{
		RequestID: r.RequestID,
		Kind:      r.Kind,
		Level:     r.Level,
		Method:    r.Method,
		Path:      r.Path,
		Limit:     r.Limit,
		Skip:      r.Skip,
	}
	if !r.Since.IsZero() {
		since := r.Since
		opts.StartTime = &since
	}
	if !r.Until.IsZero() {
		until := r.Until
		opts.EndTime = &until
	}
	return opts
}
