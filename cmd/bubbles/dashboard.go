package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the aggregate spending summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := newStore()
			summary, err := store.Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "Total budget\t%s\n", summary.TotalBudget.StringFixed(2))
			fmt.Fprintf(w, "Total spent\t%s\n", summary.TotalSpent.StringFixed(2))
			fmt.Fprintf(w, "Remaining\t%s\n", summary.RemainingBudget.StringFixed(2))
			fmt.Fprintf(w, "Categories\t%d\n", summary.CategoriesCount)
			fmt.Fprintf(w, "Transactions\t%d\n", summary.TransactionsCount)
			fmt.Fprintf(w, "Budget used\t%s%%\n", summary.PercentageUsed.StringFixed(1))
			return nil
		},
	}
}
