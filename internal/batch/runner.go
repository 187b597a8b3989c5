// Package batch drives a sequence of expense submissions through one
// browser session, strictly one record at a time. The target site's edit
// semantics are not safe for concurrent mutation from the same user, so
// there is deliberately no parallelism here.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/tricount-tools/tricount-sync/internal/scraper/tricount"
)

// ConfirmFunc decides whether a record that already appears on the site
// should be submitted again. Interactive and non-interactive front ends
// plug in different implementations of the same workflow core.
type ConfirmFunc func(record tricount.Expense) bool

// AlwaysSkip never resubmits an already-present record.
func AlwaysSkip(tricount.Expense) bool { return false }

// AlwaysConfirm resubmits without asking. For non-interactive runs that
// knowingly replay the same file.
func AlwaysConfirm(tricount.Expense) bool { return true }

// PromptConfirm asks the operator on the given streams. This is the
// human-in-the-loop throttle for interactive runs, not a performance
// feature.
func PromptConfirm(in io.Reader, out io.Writer) ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(record tricount.Expense) bool {
		fmt.Fprintf(out, "An equivalent expense already exists: %q %s by %s on %s. Submit anyway? [y/N] ",
			record.Description, record.Amount, record.PayerName, record.Date)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}
}

// Runner iterates the input records, submitting each through the workflow.
type Runner struct {
	Driver   tricount.Driver
	Workflow *tricount.Workflow
	BaseURL  string
	Confirm  ConfirmFunc
	// Verify re-scrapes the expenses list after each submission and fails
	// the run when the new entry cannot be found.
	Verify bool
	Opts   tricount.EquivalenceOptions
	Log    *zap.Logger
}

// Run processes the records in order. Duplicate-detection failures are
// logged and the record is submitted anyway; submission and verification
// failures stop the run, since silently continuing past an unconfirmed
// financial entry is judged worse than stopping.
func (r *Runner) Run(records []tricount.Expense, roster []string) error {
	for i, record := range records {
		existing, err := r.Workflow.CurrentExpenses(r.Driver, r.BaseURL)
		switch {
		case err != nil:
			r.Log.Warn("could not check for a pre-existing entry",
				zap.Int("record", i),
				zap.Error(err))
		case tricount.IsSubmitted(record, existing, r.Opts, r.Log):
			if !r.Confirm(record) {
				r.Log.Info("skipping already-present expense",
					zap.Int("record", i),
					zap.String("description", record.Description))
				continue
			}
			r.Log.Info("resubmission confirmed",
				zap.Int("record", i),
				zap.String("description", record.Description))
		}

		if err := r.Workflow.Submit(r.Driver, r.BaseURL, record, roster); err != nil {
			return fmt.Errorf("record %d (%s): %w", i, record.Description, err)
		}

		if !r.Verify {
			continue
		}
		submitted, err := r.Workflow.VerifySubmitted(r.Driver, r.BaseURL, record)
		if err != nil {
			return fmt.Errorf("record %d (%s): verification: %w", i, record.Description, err)
		}
		if !submitted {
			return fmt.Errorf("record %d (%s): submitted expense not found on re-scrape", i, record.Description)
		}
		r.Log.Info("expense verified on the site",
			zap.Int("record", i),
			zap.String("description", record.Description))
	}
	return nil
}
