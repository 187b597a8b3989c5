package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tricount-tools/tricount-sync/internal/scraper/tricount"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Scrape and print the expenses currently on the site",
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, tricount.EquivalenceOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	expenses, err := a.wf.CurrentExpenses(a.driver, a.baseURL)
	if err != nil {
		return fmt.Errorf("scraping expenses: %w", err)
	}
	a.log.Info("expenses retrieved", zap.Int("count", len(expenses)))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PAYER\tAMOUNT\tDESCRIPTION\tDATE\tPAID FOR\tPART")
	for _, e := range expenses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.PayerName, e.Amount, e.Description, e.Date, e.PaidForUser, e.CurrentUsersPart)
	}
	return w.Flush()
}
