package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dafeb/budget-bubbles/internal/client"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage budget categories",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories with their spending",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := newStore()
			categories, err := store.LoadCategories(cmd.Context())
			if err != nil {
				return err
			}

			if len(categories) == 0 {
				fmt.Println("No categories found. Use 'bubbles categories add' to create one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tName\tBudget\tSpent\tRemaining\tUsed")
			for _, category := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s%%\n",
					category.ID,
					category.Name,
					category.BudgetAmount.StringFixed(2),
					category.TotalSpent.StringFixed(2),
					category.RemainingBudget.StringFixed(2),
					category.PercentageUsed.StringFixed(1))
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var budget, color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			budgetAmount, err := decimal.NewFromString(budget)
			if err != nil {
				return fmt.Errorf("invalid budget %q: %w", budget, err)
			}

			store := newStore()
			category, err := store.CreateCategory(cmd.Context(), client.CategoryInput{
				Name:         args[0],
				BudgetAmount: budgetAmount,
				Color:        color,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created category %s (%s) with budget %s\n",
				category.Name, category.ID, category.BudgetAmount.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&budget, "budget", "", "planned spend for the category (required)")
	cmd.Flags().StringVar(&color, "color", "", "display color token")
	_ = cmd.MarkFlagRequired("budget")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var name, budget, color string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category's name, budget or color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore()

			// Start from the current record so unset flags keep their value
			if _, err := store.LoadCategories(cmd.Context()); err != nil {
				return err
			}
			current, ok := store.CategoryByID(args[0])
			if !ok {
				return fmt.Errorf("category %s not found", args[0])
			}

			input := client.CategoryInput{
				Name:         current.Name,
				BudgetAmount: current.BudgetAmount,
				Color:        current.Color,
			}
			if name != "" {
				input.Name = name
			}
			if budget != "" {
				budgetAmount, err := decimal.NewFromString(budget)
				if err != nil {
					return fmt.Errorf("invalid budget %q: %w", budget, err)
				}
				input.BudgetAmount = budgetAmount
			}
			if color != "" {
				input.Color = color
			}

			category, err := store.UpdateCategory(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}

			fmt.Printf("Updated category %s (%s)\n", category.Name, category.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&budget, "budget", "", "new planned spend")
	cmd.Flags().StringVar(&color, "color", "", "new display color token")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a category and all its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore()
			if err := store.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted category %s and its transactions\n", args[0])
			return nil
		},
	}
}
