package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tricount-tools/tricount-sync/internal/batch"
	"github.com/tricount-tools/tricount-sync/internal/records"
	"github.com/tricount-tools/tricount-sync/internal/scraper/tricount"
)

var (
	flagInput        string
	flagDelimiter    string
	flagVerify       bool
	flagYes          bool
	flagSkipExisting bool
	flagStrict       bool
)

var putCmd = &cobra.Command{
	Use:   "put",
	Short: "Submit every expense record from the input file",
	RunE:  runPut,
}

func init() {
	f := putCmd.Flags()
	f.StringVarP(&flagInput, "input", "i", "", "delimited record file (required)")
	f.StringVar(&flagDelimiter, "delimiter", ",", "input field delimiter (\",\" or \";\")")
	f.BoolVar(&flagVerify, "verify", false, "re-scrape the expenses list after each submission and fail if the entry is missing")
	f.BoolVarP(&flagYes, "yes", "y", false, "resubmit already-present records without asking")
	f.BoolVar(&flagSkipExisting, "skip-existing", false, "never resubmit already-present records")
	f.BoolVar(&flagStrict, "strict", false, "include paid_for_user when matching against existing entries")
	_ = putCmd.MarkFlagRequired("input")
	putCmd.MarkFlagsMutuallyExclusive("yes", "skip-existing")
}

func runPut(cmd *cobra.Command, _ []string) error {
	if len([]rune(flagDelimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", flagDelimiter)
	}
	delimiter := []rune(flagDelimiter)[0]

	opts := tricount.EquivalenceOptions{Strict: flagStrict}

	recs, err := records.Load(flagInput, delimiter)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("no records in %s", flagInput)
	}

	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	a.log.Info("loaded records", zap.Int("count", len(recs)), zap.String("file", flagInput))

	roster, err := a.wf.Roster(a.driver, a.baseURL)
	if err != nil {
		return fmt.Errorf("resolving user roster: %w", err)
	}
	a.log.Info("resolved roster", zap.Strings("users", roster))

	confirm := batch.PromptConfirm(os.Stdin, os.Stdout)
	switch {
	case flagYes:
		confirm = batch.AlwaysConfirm
	case flagSkipExisting:
		confirm = batch.AlwaysSkip
	}

	runner := &batch.Runner{
		Driver:   a.driver,
		Workflow: a.wf,
		BaseURL:  a.baseURL,
		Confirm:  confirm,
		Verify:   flagVerify,
		Opts:     opts,
		Log:      a.log,
	}
	return runner.Run(recs, roster)
}
