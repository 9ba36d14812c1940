// Package ledger imports spending history from bank ledger exports.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrTooFewRows indicates a ledger without a header and at least one data row.
	ErrTooFewRows = errors.New("ledger: CSV file must have a header row and at least one data row")
	// ErrMissingColumns indicates the header lacks a date, description or amount column.
	ErrMissingColumns = errors.New("ledger: could not find required columns; expected headers like 'Date', 'Description' and 'Amount' (or 'Debit'/'Credit')")
	// ErrNoSpending indicates a ledger whose rows contain no outflows.
	ErrNoSpending = errors.New("ledger: no spending transactions found")
)

// Transaction is one outflow from a ledger. Amount is always positive.
type Transaction struct {
	Date        string          `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
}

type columns struct {
	date        int
	description int
	amount      int
	debit       int
	credit      int
}

var amountCleaner = strings.NewReplacer(",", "", "£", "", "$", "", "€", "", " ", "")

// ParseCSV reads a ledger export and returns its spending transactions.
// Columns are located by header name; a single signed amount column is
// preferred, otherwise separate debit and credit columns are used.
func ParseCSV(r io.Reader) ([]Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ledger: reading CSV: %w", err)
	}

	records = dropBlankRecords(records)
	if len(records) < 2 {
		return nil, ErrTooFewRows
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.Trim(strings.TrimSpace(h), `"`))
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var transactions []Transaction
	for _, record := range records[1:] {
		if len(record) < len(header) {
			continue
		}
		values := make([]string, len(record))
		for i, v := range record {
			values[i] = strings.Trim(strings.TrimSpace(v), `"`)
		}

		amount, ok := rowAmount(values, cols)
		if !ok || !amount.IsNegative() {
			continue
		}

		transactions = append(transactions, Transaction{
			Date:        values[cols.date],
			Description: values[cols.description],
			Amount:      amount.Abs(),
		})
	}

	if len(transactions) == 0 {
		return nil, ErrNoSpending
	}
	return transactions, nil
}

func locateColumns(header []string) (columns, error) {
	cols := columns{
		date:        findColumn(header, "date"),
		description: findColumn(header, "description", "details", "narrative"),
		amount:      findColumn(header, "amount", "value"),
		debit:       findColumn(header, "debit", "out"),
		credit:      findColumn(header, "credit", "in"),
	}

	if cols.date == -1 || cols.description == -1 ||
		(cols.amount == -1 && (cols.debit == -1 || cols.credit == -1)) {
		return cols, ErrMissingColumns
	}
	return cols, nil
}

// findColumn returns the index of the first header containing any of keys.
func findColumn(header []string, keys ...string) int {
	for i, h := range header {
		for _, key := range keys {
			if strings.Contains(h, key) {
				return i
			}
		}
	}
	return -1
}

// rowAmount returns the signed amount of a row, negative for outflows.
func rowAmount(values []string, cols columns) (decimal.Decimal, bool) {
	if cols.amount != -1 {
		amount, err := parseAmount(values[cols.amount])
		if err != nil {
			return decimal.Zero, false
		}
		return amount, true
	}

	debit, debitErr := parseAmount(values[cols.debit])
	if debitErr == nil && !debit.IsZero() {
		return debit.Abs().Neg(), true
	}
	credit, err := parseAmount(values[cols.credit])
	if err != nil {
		return decimal.Zero, false
	}
	return credit, true
}

func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := amountCleaner.Replace(raw)
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + strings.Trim(cleaned, "()")
	}
	return decimal.NewFromString(cleaned)
}

func dropBlankRecords(records [][]string) [][]string {
	kept := records[:0]
	for _, record := range records {
		blank := true
		for _, field := range record {
			if strings.TrimSpace(field) != "" {
				blank = false
				break
			}
		}
		if !blank {
			kept = append(kept, record)
		}
	}
	return kept
}
