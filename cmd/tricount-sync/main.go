// tricount-sync submits shared-expense records to a Tricount and optionally
// re-scrapes the site to confirm they landed.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tricount-tools/tricount-sync/internal/config"
	"github.com/tricount-tools/tricount-sync/internal/logging"
	"github.com/tricount-tools/tricount-sync/internal/scraper/browser"
	"github.com/tricount-tools/tricount-sync/internal/scraper/tricount"
)

var (
	flagURL      string
	flagUser     string
	flagLogLevel string
	flagHeadless bool
)

var rootCmd = &cobra.Command{
	Use:           "tricount-sync",
	Short:         "Batch-submit and verify shared expenses on a Tricount",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagURL, "url", "", "Tricount URL (default: TRICOUNT_URL env)")
	pf.StringVar(&flagUser, "user", "", "display name of the submitting user (default: USER_NAME env)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (default: LOGLEVEL env or info)")
	pf.BoolVar(&flagHeadless, "headless", true, "run the browser headless")

	rootCmd.AddCommand(putCmd, listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app wires the browser session, catalog and workflow for one run. The
// session is owned here and released on every exit path.
type app struct {
	conf    *config.Config
	log     *zap.Logger
	driver  *browser.Driver
	wf      *tricount.Workflow
	baseURL string
}

func newApp(cmd *cobra.Command, opts tricount.EquivalenceOptions) (*app, error) {
	conf, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Flags override the env defaults.
	if flagURL != "" {
		conf.URL = flagURL
	}
	if flagUser != "" {
		conf.Username = flagUser
	}
	if flagLogLevel != "" {
		conf.LogLevel = flagLogLevel
	}
	if cmd.Flags().Changed("headless") {
		conf.Headless = flagHeadless
	}

	if conf.URL == "" {
		return nil, errors.New("no Tricount URL: pass --url or set TRICOUNT_URL")
	}
	if conf.Username == "" {
		return nil, errors.New("no username: pass --user or set USER_NAME")
	}

	log, err := logging.New(conf.LogLevel)
	if err != nil {
		return nil, err
	}

	driver, err := browser.New(browser.Options{
		Headless:    conf.Headless,
		HumanTyping: conf.HumanTyping,
	})
	if err != nil {
		return nil, err
	}

	cat := tricount.DefaultCatalog(conf.Username)
	classifier := tricount.NewClassifier(cat, conf.ProbeTimeout, log)
	navigator := tricount.NewNavigator(classifier, cat, conf.ProbeTimeout, log)
	extractor := tricount.NewExtractor(cat, log)
	workflow := tricount.NewWorkflow(navigator, cat, extractor, conf.StepBudget, conf.ProbeTimeout, opts, log)

	return &app{
		conf:    conf,
		log:     log,
		driver:  driver,
		wf:      workflow,
		baseURL: conf.URL,
	}, nil
}

func (a *app) Close() {
	if err := a.driver.Close(); err != nil {
		a.log.Warn("closing browser", zap.Error(err))
	}
	_ = a.log.Sync()
}
