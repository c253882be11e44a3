package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/reconciliation-service/internal/domain/dto"
)

func TestRead(t *testing.T) {
	input := "1;100;ACME;1000.50;2024-01-15 10:30:00\n" +
		"2; 200 ;;1050.505;2024-01-16\n"

	invoices, err := Read(strings.NewReader(input), "transfer.csv")
	require.NoError(t, err)
	require.Len(t, invoices, 2)

	first := invoices[0]
	assert.Equal(t, dto.Scalar("1"), *first.ID)
	assert.Equal(t, dto.Scalar("100"), *first.Customer)
	assert.Equal(t, dto.Scalar("ACME"), *first.Supplier)
	assert.Equal(t, "1000.5", first.Amount.String())
	assert.Equal(t, int64(100050), *first.AmountCents)
	assert.Equal(t, "2024-01-15 10:30:00", *first.Date)

	second := invoices[1]
	assert.Equal(t, dto.Scalar("200"), *second.Customer)
	assert.Nil(t, second.Supplier)
	assert.Equal(t, int64(105051), *second.AmountCents)
	assert.Equal(t, "2024-01-16 00:00:00", *second.Date)
}

func TestRead_StripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBF7;1;S;10;2024-01-01\n"

	invoices, err := Read(strings.NewReader(input), "bom.csv")
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, dto.Scalar("7"), *invoices[0].ID)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantRow int
		wantCol string
		wantMsg string
	}{
		{
			name:    "bad amount",
			input:   "1;1;S;10;2024-01-01\n2;1;S;ten;2024-01-01\n",
			wantRow: 2,
			wantCol: "Amount",
			wantMsg: `data.csv:2: Amount: invalid amount "ten"`,
		},
		{
			name:    "bad date",
			input:   "1;1;S;10;yesterday\n",
			wantRow: 1,
			wantCol: "Date",
		},
		{
			name:    "missing id",
			input:   "1;1;S;10;2024-01-01\n\n;1;S;10;2024-01-01\n",
			wantRow: 3,
			wantCol: "ID",
		},
		{
			name:    "wrong column count",
			input:   "1;1;S;10;2024-01-01\n2;1;10;2024-01-01\n",
			wantRow: 2,
		},
		{
			name:    "amount out of range",
			input:   "1;1;S;1e20;2024-01-01\n",
			wantRow: 1,
			wantCol: "Amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), "data.csv")

			var rowErr *RowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, "data.csv", rowErr.File)
			assert.Equal(t, tt.wantRow, rowErr.Row)
			assert.Equal(t, tt.wantCol, rowErr.Column)
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}
}

func TestRead_AmountOutOfRangeWrapsSentinel(t *testing.T) {
	_, err := Read(strings.NewReader("1;1;S;1e20;2024-01-01\n"), "data.csv")

	assert.ErrorIs(t, err, dto.ErrAmountOutOfRange)
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader("\n\n"), "empty.csv")

	assert.ErrorIs(t, err, ErrNoInvoices)
	assert.Contains(t, err.Error(), "empty.csv")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.csv")
	require.NoError(t, os.WriteFile(path, []byte("1;1;S;10;2024-01-01\n"), 0o600))

	invoices, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, invoices, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
