package tricount

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// expenseFieldCount is how many offsets of a field group actually map to
// Expense fields. Layouts with wider groups carry trailing cells (balance
// column) that the extractor ignores.
const expenseFieldCount = 6

// Extractor slices the expenses-list markup into structured records.
type Extractor struct {
	cat *Catalog
	log *zap.Logger
}

func NewExtractor(cat *Catalog, log *zap.Logger) *Extractor {
	return &Extractor{cat: cat, log: log}
}

// Expenses parses the flat run of field nodes into expense records,
// ExpenseGroupSize nodes per record. A node count that is not a multiple of
// the group size is a data-quality warning, not an error: complete groups
// are still extracted. A group with missing text stops the walk and returns
// whatever was already collected.
func (e *Extractor) Expenses(html string) ([]Expense, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing expenses markup: %w", err)
	}

	size := e.cat.ExpenseGroupSize
	if size < expenseFieldCount {
		return nil, fmt.Errorf("expense group size %d is smaller than the %d mapped fields", size, expenseFieldCount)
	}

	var texts []string
	doc.Find(e.cat.ExpenseFields).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})

	if len(texts)%size != 0 {
		e.log.Warn("expense field count is not a multiple of the group size, some entries may fail to be parsed",
			zap.Int("fields", len(texts)),
			zap.Int("group_size", size))
	} else {
		e.log.Debug("retrieved expense fields", zap.Int("fields", len(texts)))
	}

	expenses := make([]Expense, 0, len(texts)/size)
	for i := 0; i+size <= len(texts); i += size {
		expense, err := expenseFromGroup(texts[i : i+size])
		if err != nil {
			e.log.Error("failed to parse expense entry, stopping extraction",
				zap.Int("entry", i/size),
				zap.Error(err))
			break
		}
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

// expenseFromGroup maps the offsets of one field group onto an Expense.
// Amount and paid-for cells carry a currency or qualifier suffix that gets
// stripped down to the first token.
func expenseFromGroup(group []string) (Expense, error) {
	for offset, text := range group[:expenseFieldCount] {
		if text == "" {
			return Expense{}, fmt.Errorf("missing text content at group offset %d", offset)
		}
	}
	return Expense{
		PayerName:        group[0],
		Amount:           firstToken(group[1]),
		Description:      group[2],
		Date:             group[3],
		PaidForUser:      firstToken(group[4]),
		CurrentUsersPart: group[5],
	}, nil
}

// Users scrapes the ordered roster of display names from the users-list
// markup. Tricount identifies users by display name only.
func (e *Extractor) Users(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing users markup: %w", err)
	}

	var users []string
	doc.Find(e.cat.UserNames).Each(func(_ int, s *goquery.Selection) {
		if name := strings.TrimSpace(s.Text()); name != "" {
			users = append(users, name)
		}
	})

	if len(users) == 0 {
		return nil, fmt.Errorf("no user labels found with selector %q", e.cat.UserNames)
	}
	return users, nil
}
