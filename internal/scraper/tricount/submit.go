package tricount

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Workflow submits one expense record and can re-scrape the list to confirm
// it landed. It owns no browser state of its own; everything goes through
// the Navigator and the Driver it is handed.
type Workflow struct {
	nav        *Navigator
	cat        *Catalog
	ext        *Extractor
	log        *zap.Logger
	timeout    time.Duration
	stepBudget int
	opts       EquivalenceOptions
}

func NewWorkflow(nav *Navigator, cat *Catalog, ext *Extractor, stepBudget int, timeout time.Duration, opts EquivalenceOptions, log *zap.Logger) *Workflow {
	if stepBudget <= 0 {
		stepBudget = DefaultStepBudget
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Workflow{
		nav:        nav,
		cat:        cat,
		ext:        ext,
		log:        log,
		timeout:    timeout,
		stepBudget: stepBudget,
		opts:       opts,
	}
}

// Submit fills out and saves the expense form for record. An unreachable
// form returns ErrFormUnreachable, which callers must treat as run-fatal:
// silently skipping a financial entry is worse than stopping. Fill, deselect
// and save failures come back as *SubmissionError; the submission is then
// incomplete and the caller has to re-verify before retrying.
func (w *Workflow) Submit(d Driver, baseURL string, record Expense, roster []string) error {
	w.log.Info("working on expense",
		zap.String("description", record.Description),
		zap.String("amount", record.Amount),
		zap.String("payer", record.PayerName),
		zap.String("date", record.Date))

	if !w.nav.BrowseTo(d, baseURL, ScreenExpenseForm, w.stepBudget) {
		return fmt.Errorf("%w: target %s", ErrFormUnreachable, ScreenExpenseForm)
	}

	if err := w.fill(d, record); err != nil {
		w.log.Error("failed filling out the expense form", zap.Error(err))
		return &SubmissionError{Op: "fill", Cause: err}
	}

	if record.PaidForUser != PaidForAll {
		if err := w.deselect(d, record, roster); err != nil {
			// Saving a half-adjusted split would corrupt the entry, so the
			// save never happens.
			w.log.Error("failed adjusting the paid-for selection, not saving", zap.Error(err))
			return &SubmissionError{Op: "deselect", Cause: err}
		}
	}

	w.log.Info("saving the expense")
	if err := d.Click(w.cat.Save, w.timeout); err != nil {
		w.log.Error("failed saving the expense", zap.Error(err))
		return &SubmissionError{Op: "save", Cause: err}
	}
	return nil
}

func (w *Workflow) fill(d Driver, record Expense) error {
	fields := []struct {
		loc  Locator
		text string
	}{
		{w.cat.Description, record.Description},
		{w.cat.Date, record.Date},
		{w.cat.Amount, record.Amount},
	}
	for _, f := range fields {
		if err := d.Type(f.loc, f.text, w.timeout); err != nil {
			return err
		}
	}
	return nil
}

// deselect unticks every roster user that is not in the record's retained
// set. The retained set is the comma-split of paid_for_user.
func (w *Workflow) deselect(d Driver, record Expense, roster []string) error {
	retained := make(map[string]bool)
	for _, name := range strings.Split(record.PaidForUser, ",") {
		retained[strings.TrimSpace(name)] = true
	}

	for _, name := range roster {
		if retained[name] {
			continue
		}
		w.log.Debug("deselecting user", zap.String("user", name))
		if err := d.Click(w.cat.DeselectUser(name), w.timeout); err != nil {
			return fmt.Errorf("deselecting %q: %w", name, err)
		}
	}
	return nil
}

// VerifySubmitted re-scrapes the expenses list and reports whether any
// entry is equivalent to record. The new row is expected to be present by
// the time the list re-renders; there is no retry loop, so a slow UI shows
// up as a false negative rather than a hang.
func (w *Workflow) VerifySubmitted(d Driver, baseURL string, record Expense) (bool, error) {
	scraped, err := w.CurrentExpenses(d, baseURL)
	if err != nil {
		return false, err
	}
	return IsSubmitted(record, scraped, w.opts, w.log), nil
}

// CurrentExpenses navigates to the expenses list and extracts every entry
// currently displayed.
func (w *Workflow) CurrentExpenses(d Driver, baseURL string) ([]Expense, error) {
	if !w.nav.BrowseTo(d, baseURL, ScreenExpensesList, w.stepBudget) {
		return nil, fmt.Errorf("expenses list unreachable within %d steps", w.stepBudget)
	}
	html, err := d.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading expenses list markup: %w", err)
	}
	return w.ext.Expenses(html)
}

// Roster navigates to the users list and scrapes the ordered roster of
// display names.
func (w *Workflow) Roster(d Driver, baseURL string) ([]string, error) {
	if !w.nav.BrowseTo(d, baseURL, ScreenUsersList, w.stepBudget) {
		return nil, fmt.Errorf("users list unreachable within %d steps", w.stepBudget)
	}
	html, err := d.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading users list markup: %w", err)
	}
	return w.ext.Users(html)
}
