package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/reconciliation-service/internal/domain/model"
)

func inv(id string, cents int64) model.Invoice {
	return model.Invoice{
		ID:          id,
		AmountCents: cents,
		Date:        time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Customer:    "0",
		Supplier:    "N/A",
	}
}

func datedInv(id string, cents int64, date time.Time) model.Invoice {
	i := inv(id, cents)
	i.Date = date
	return i
}

func identities(solutions []model.Solution) [][]string {
	out := make([][]string, len(solutions))
	for i, sol := range solutions {
		out[i] = sol.SortedIDs()
	}
	return out
}

// TestFindSolutions tests the exhaustive combination search.
func TestFindSolutions(t *testing.T) {
	tests := []struct {
		name      string
		invoices  []model.Invoice
		target    int64
		tolerance int64
		limit     int
		want      [][]string
	}{
		{
			name:     "finds single and pair combinations",
			invoices: []model.Invoice{inv("1", 500), inv("2", 500), inv("3", 1000)},
			target:   1000,
			limit:    10,
			want:     [][]string{{"3"}, {"1", "2"}},
		},
		{
			name:     "single exact invoice",
			invoices: []model.Invoice{inv("7", 1000)},
			target:   1000,
			limit:    10,
			want:     [][]string{{"7"}},
		},
		{
			name:     "no combination reaches the target",
			invoices: []model.Invoice{inv("1", 300), inv("2", 500)},
			target:   1000,
			limit:    10,
			want:     [][]string{},
		},
		{
			name:     "empty invoice list",
			invoices: nil,
			target:   1000,
			limit:    10,
			want:     [][]string{},
		},
		{
			name:      "tolerance accepts near matches",
			invoices:  []model.Invoice{inv("a", 999), inv("b", 1003)},
			target:    1000,
			tolerance: 2,
			limit:     10,
			want:      [][]string{{"a"}},
		},
		{
			name:      "matching branch keeps extending",
			invoices:  []model.Invoice{inv("a", 1000), inv("b", 1)},
			target:    1000,
			tolerance: 1,
			limit:     10,
			want:      [][]string{{"a"}, {"a", "b"}},
		},
		{
			name:     "non-positive amounts are ignored",
			invoices: []model.Invoice{inv("z", 0), inv("n", -100), inv("p", 1000)},
			target:   1000,
			limit:    10,
			want:     [][]string{{"p"}},
		},
		{
			name:     "limit is global",
			invoices: []model.Invoice{inv("1", 100), inv("2", 100), inv("3", 100), inv("4", 100)},
			target:   200,
			limit:    2,
			want:     [][]string{{"1", "2"}, {"1", "3"}},
		},
		{
			name:     "zero limit finds nothing",
			invoices: []model.Invoice{inv("7", 1000)},
			target:   1000,
			limit:    0,
			want:     [][]string{},
		},
		{
			name:      "negative tolerance means exact match",
			invoices:  []model.Invoice{inv("a", 999), inv("b", 1000)},
			target:    1000,
			tolerance: -5,
			limit:     10,
			want:      [][]string{{"b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSolutions(tt.invoices, tt.target, tt.tolerance, tt.limit)
			assert.Equal(t, tt.want, identities(got))
		})
	}
}

func TestFindSolutions_Properties(t *testing.T) {
	invoices := []model.Invoice{
		inv("1", 1250), inv("2", 750), inv("3", 500), inv("4", 500),
		inv("5", 250), inv("6", 1000), inv("7", 1500), inv("8", 2000),
		inv("9", 125), inv("10", 875),
	}
	const (
		target    = int64(2000)
		tolerance = int64(125)
		limit     = 25
	)

	first := FindSolutions(invoices, target, tolerance, limit)
	second := FindSolutions(invoices, target, tolerance, limit)

	require.NotEmpty(t, first)
	assert.LessOrEqual(t, len(first), limit)
	assert.Equal(t, first, second)

	for _, sol := range first {
		var sum int64
		for _, i := range sol.Invoices {
			sum += i.AmountCents
		}
		assert.Equal(t, sum, sol.SumCents)
		diff := target - sol.SumCents
		assert.LessOrEqual(t, diff, tolerance)
		assert.GreaterOrEqual(t, diff, -tolerance)
	}
}

func TestFindSolutions_TiesKeepInputOrder(t *testing.T) {
	got := FindSolutions([]model.Invoice{inv("b", 500), inv("a", 500)}, 500, 0, 10)

	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Invoices[0].ID)
	assert.Equal(t, "a", got[1].Invoices[0].ID)
}

func TestFindSolutions_DoesNotAliasPath(t *testing.T) {
	got := FindSolutions([]model.Invoice{inv("1", 500), inv("2", 300), inv("3", 200)}, 500, 0, 10)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"1"}, got[0].SortedIDs())
	assert.Equal(t, []string{"2", "3"}, got[1].SortedIDs())
}

func TestFindSolutions_CanceledContext(t *testing.T) {
	invoices := make([]model.Invoice, 40)
	for i := range invoices {
		invoices[i] = inv(string(rune('A'+i)), int64(1000+i))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := findSolutions(ctx, invoices, 20000, 0, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, got)
}
