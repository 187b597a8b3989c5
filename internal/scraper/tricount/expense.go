package tricount

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaidForAll is the sentinel meaning the expense is split across everybody,
// so nobody gets deselected on the form.
const PaidForAll = "all"

// Expense is one shared-expense entry. Values come either from the input
// record file (already normalized) or from scraped markup (raw). Never
// mutated after construction; compared through Equivalent, not field by
// field, because the two sources format dates and amounts differently.
type Expense struct {
	Description string
	Amount      string
	Date        string
	PayerName   string
	// PaidForUser is a comma-separated retained-user list, or PaidForAll.
	PaidForUser string
	// CurrentUsersPart only exists on scraped entries; it never takes part
	// in equivalence.
	CurrentUsersPart string
}

// EquivalenceOptions tunes how loose the equivalence relation is.
type EquivalenceOptions struct {
	// Strict includes paid_for_user in the comparison. Historical versions
	// of this flow disagreed on whether it should; the scraped cell
	// collapses multi-user splits into one token, so strict matching can
	// produce false negatives on split expenses.
	Strict bool
}

// NormalizeDate validates a D/M/Y date string and returns its canonical
// DD/MM/YY form. Day and month are zero-padded, the year keeps its last two
// digits, so "3/4/2021" and "03/04/21" normalize identically.
func NormalizeDate(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 3 {
		return "", &FieldParseError{Field: "date", Value: value, Cause: errors.New("want three /-separated components")}
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return "", &FieldParseError{Field: "date", Value: value, Cause: err}
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1 {
		return "", &FieldParseError{Field: "date", Value: value, Cause: errors.New("day, month or year out of range")}
	}

	return fmt.Sprintf("%02d/%02d/%02d", day, month, year%100), nil
}

// amountValue parses an amount string into an exact decimal, tolerating a
// trailing currency or qualifier suffix ("12.50 EUR").
func amountValue(value string) (decimal.Decimal, error) {
	dec, err := decimal.NewFromString(firstToken(value))
	if err != nil {
		return decimal.Decimal{}, &FieldParseError{Field: "amount", Value: value, Cause: err}
	}
	return dec, nil
}

// firstToken returns the first whitespace-separated token of s.
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Equivalent reports whether a and b denote the same real-world payment.
// Description and payer compare exactly; the amount compares by decimal
// value ("8" matches "8.00 EUR"); the date compares by normalized triple.
// Malformed amount or date text on either side is an error, not a mismatch.
func Equivalent(a, b Expense, opts EquivalenceOptions) (bool, error) {
	amountA, err := amountValue(a.Amount)
	if err != nil {
		return false, err
	}
	amountB, err := amountValue(b.Amount)
	if err != nil {
		return false, err
	}
	dateA, err := NormalizeDate(a.Date)
	if err != nil {
		return false, err
	}
	dateB, err := NormalizeDate(b.Date)
	if err != nil {
		return false, err
	}

	if a.Description != b.Description || a.PayerName != b.PayerName {
		return false, nil
	}
	if opts.Strict && a.PaidForUser != b.PaidForUser {
		return false, nil
	}
	return amountA.Equal(amountB) && dateA == dateB, nil
}

// IsSubmitted reports whether any scraped entry is equivalent to record.
// Scraped rows that fail to parse are logged and skipped so one garbled row
// cannot hide a genuine match further down the list.
func IsSubmitted(record Expense, scraped []Expense, opts EquivalenceOptions, log *zap.Logger) bool {
	for i, entry := range scraped {
		match, err := Equivalent(record, entry, opts)
		if err != nil {
			log.Warn("skipping unparseable scraped entry",
				zap.Int("entry", i),
				zap.Error(err))
			continue
		}
		if match {
			return true
		}
	}
	return false
}
