// Package records loads expense records from delimited tabular files.
package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tricount-tools/tricount-sync/internal/scraper/tricount"
)

// Column names the input file's header must provide, in any order.
const (
	colDescription = "description"
	colAmount      = "amount"
	colDate        = "date"
	colPayerName   = "payer_name"
	colPaidForUser = "paid_for_user"
)

var requiredColumns = []string{colDescription, colAmount, colDate, colPayerName, colPaidForUser}

// Load reads expense records from the file at path. The delimiter is
// configurable because the input format has flipped between comma and
// semicolon over time.
func Load(path string, delimiter rune) ([]tricount.Expense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening record file: %w", err)
	}
	defer f.Close()

	recs, err := Read(f, delimiter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Read parses delimited expense records from r. The first row is a header;
// column order is free as long as every required column is present.
func Read(r io.Reader, delimiter rune) ([]tricount.Expense, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing required column %q in header %v", col, header)
		}
	}

	var expenses []tricount.Expense
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		expense := tricount.Expense{
			Description: strings.TrimSpace(row[index[colDescription]]),
			Amount:      strings.TrimSpace(row[index[colAmount]]),
			Date:        strings.TrimSpace(row[index[colDate]]),
			PayerName:   strings.TrimSpace(row[index[colPayerName]]),
			PaidForUser: strings.TrimSpace(row[index[colPaidForUser]]),
		}
		if expense == (tricount.Expense{}) {
			continue
		}

		// Fail on malformed dates at load time, before a browser ever
		// starts: the form would accept the text and save a bogus entry.
		if _, err := tricount.NormalizeDate(expense.Date); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		expenses = append(expenses, expense)
	}
	return expenses, nil
}
