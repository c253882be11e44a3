// Package loader reads invoice files for the reconciliation client.
//
// Files are `;`-separated, carry no header and hold one invoice per row:
//
//	ID;Customer;Supplier;Amount;Date
package loader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/guttosm/reconciliation-service/internal/domain/dto"
	"github.com/guttosm/reconciliation-service/internal/domain/model"
)

const (
	// Separator is the column separator of invoice files.
	Separator = ';'
	// Columns is the number of columns of every row.
	Columns = 5
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrNoInvoices is returned when a file holds no rows.
var ErrNoInvoices = errors.New("no invoices found")

// RowError reports a malformed row. Row is 1-based.
type RowError struct {
	File   string
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Row, e.Err)
	}
	return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// LoadFile reads the invoice file at path.
func LoadFile(path string) ([]dto.InvoiceInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open invoice file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, path)
}

// Read parses invoice rows from r. name identifies the source in errors.
//
// Amounts are decimal currency values; the cent amount is derived with the same rounding
// the service applies. Dates must use one of dto.DateLayouts and are sent in
// model.AuditDateLayout. An empty Supplier column is left for the service to default.
func Read(r io.Reader, name string) ([]dto.InvoiceInput, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.Comma = Separator
	reader.FieldsPerRecord = Columns
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	var invoices []dto.InvoiceInput
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &RowError{File: name, Row: parseErr.Line, Err: parseErr.Err}
			}
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		line, _ := reader.FieldPos(0)
		inv, rowErr := parseRecord(record)
		if rowErr != nil {
			rowErr.File, rowErr.Row = name, line
			return nil, rowErr
		}
		invoices = append(invoices, inv)
	}

	if len(invoices) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoInvoices)
	}
	return invoices, nil
}

func parseRecord(record []string) (dto.InvoiceInput, *RowError) {
	field := func(i int) string { return strings.TrimSpace(record[i]) }

	id := field(0)
	if id == "" {
		return dto.InvoiceInput{}, &RowError{Column: "ID", Err: errors.New("is empty")}
	}

	amount, err := decimal.NewFromString(field(3))
	if err != nil {
		return dto.InvoiceInput{}, &RowError{Column: "Amount", Err: fmt.Errorf("invalid amount %q", field(3))}
	}
	cents, err := dto.ToCents(amount)
	if err != nil {
		return dto.InvoiceInput{}, &RowError{Column: "Amount", Err: err}
	}

	date, ok := dto.ParseDate(field(4))
	if !ok {
		return dto.InvoiceInput{}, &RowError{Column: "Date", Err: fmt.Errorf("invalid date %q", field(4))}
	}
	dateText := date.Format(model.AuditDateLayout)

	inv := dto.InvoiceInput{
		ID:          scalar(id),
		Amount:      &amount,
		AmountCents: &cents,
		Date:        &dateText,
	}
	if customer := field(1); customer != "" {
		inv.Customer = scalar(customer)
	}
	if supplier := field(2); supplier != "" {
		inv.Supplier = scalar(supplier)
	}
	return inv, nil
}

func scalar(s string) *dto.Scalar {
	v := dto.Scalar(s)
	return &v
}
