package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dafeb/budget-bubbles/internal/client"
	"github.com/dafeb/budget-bubbles/internal/ledger"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var categoryID, sortBy string
	var descending bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := newStore()
			if _, err := store.LoadCategories(cmd.Context()); err != nil {
				return err
			}
			transactions, err := store.LoadTransactions(cmd.Context(), "")
			if err != nil {
				return err
			}

			order := ledger.Ascending
			if descending {
				order = ledger.Descending
			}
			sorted := ledger.FilterSort(transactions, categoryID, ledger.SortField(sortBy), order)

			if len(sorted) == 0 {
				fmt.Println("No transactions found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tDate\tDescription\tCategory\tAmount")
			for _, transaction := range sorted {
				categoryName := transaction.CategoryID
				if category, ok := store.CategoryByID(transaction.CategoryID); ok {
					categoryName = category.Name
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					transaction.ID,
					transaction.Date.Format("2006-01-02"),
					transaction.Description,
					categoryName,
					transaction.Amount.StringFixed(2))
			}
			fmt.Fprintf(w, "\t\t\tTotal\t%s\n", ledger.Total(sorted).StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "only show transactions for this category id")
	cmd.Flags().StringVar(&sortBy, "sort", "date", "sort field: date, amount or description")
	cmd.Flags().BoolVar(&descending, "desc", false, "sort descending")

	return cmd
}

func addTransactionCmd() *cobra.Command {
	var categoryID, amount, description, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			amountValue, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			when := time.Now()
			if date != "" {
				when, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
				}
			}

			store := newStore()
			transaction, err := store.CreateTransaction(cmd.Context(), client.TransactionInput{
				CategoryID:  categoryID,
				Amount:      amountValue,
				Description: description,
				Date:        when,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Recorded %s (%s) on %s\n",
				transaction.Description, transaction.Amount.StringFixed(2),
				transaction.Date.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "category id (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount spent (required)")
	cmd.Flags().StringVar(&description, "description", "", "what the money went to (required)")
	cmd.Flags().StringVar(&date, "date", "", "calendar date, YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore()
			if err := store.DeleteTransaction(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted transaction %s\n", args[0])
			return nil
		},
	}
}
