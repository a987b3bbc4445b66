// Package ledger holds the pure view computations: running balances for
// ad-hoc cash-flow rows, filter/sort of transaction lists and aggregate
// summaries over the category cache. Nothing here touches the network or
// mutates its inputs.
package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/dafeb/budget-bubbles/internal/domain"
	"github.com/shopspring/decimal"
)

// Row is a transient cash-flow ledger entry. Rows come straight from form
// input and are never persisted, so Amount is free text: blank or
// non-numeric amounts fold as zero.
type Row struct {
	Date        string
	Description string
	Amount      string
	CategoryID  string
	Cleared     bool
}

// AmountValue parses the row's amount, treating anything unparsable as zero
func (r Row) AmountValue() decimal.Decimal {
	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// RunningBalance returns, for each row, the sum of the amounts up to and
// including that row.
func RunningBalance(rows []Row) []decimal.Decimal {
	balances := make([]decimal.Decimal, len(rows))
	sum := decimal.Zero
	for i, row := range rows {
		sum = sum.Add(row.AmountValue())
		balances[i] = sum
	}
	return balances
}

// Balance returns the final running balance over all rows
func Balance(rows []Row) decimal.Decimal {
	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(row.AmountValue())
	}
	return sum
}

// SortField selects the transaction attribute to sort by
type SortField string

const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByDescription SortField = "description"
)

// SortOrder selects the sort direction
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// FilterSort returns a new slice of transactions filtered by category (an
// empty categoryID keeps everything) and stably sorted by the given field.
// Ties keep their input order. An unknown field sorts by date.
func FilterSort(transactions []domain.Transaction, categoryID string, field SortField, order SortOrder) []domain.Transaction {
	filtered := make([]domain.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		if categoryID != "" && transaction.CategoryID != categoryID {
			continue
		}
		filtered = append(filtered, transaction)
	}

	less := lessFunc(filtered, field)
	if order == Descending {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(filtered, less)
	return filtered
}

func lessFunc(transactions []domain.Transaction, field SortField) func(i, j int) bool {
	switch field {
	case SortByAmount:
		return func(i, j int) bool {
			return transactions[i].Amount.LessThan(transactions[j].Amount)
		}
	case SortByDescription:
		return func(i, j int) bool {
			return strings.ToLower(transactions[i].Description) < strings.ToLower(transactions[j].Description)
		}
	default:
		return func(i, j int) bool {
			return calendarDate(transactions[i].Date).Before(calendarDate(transactions[j].Date))
		}
	}
}

// calendarDate strips the time of day so ordering compares dates only
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Total sums the amounts of the given transactions
func Total(transactions []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, transaction := range transactions {
		sum = sum.Add(transaction.Amount)
	}
	return sum
}

// Summary aggregates the category cache
type Summary struct {
	TotalBudget           decimal.Decimal
	TotalSpent            decimal.Decimal
	AveragePercentageUsed decimal.Decimal
}

// Summarize reduces the category collection to its aggregate metrics.
// An empty collection yields all zeros rather than a division error.
func Summarize(categories []domain.Category) Summary {
	summary := Summary{
		TotalBudget:           decimal.Zero,
		TotalSpent:            decimal.Zero,
		AveragePercentageUsed: decimal.Zero,
	}
	if len(categories) == 0 {
		return summary
	}

	percentageSum := decimal.Zero
	for _, category := range categories {
		summary.TotalBudget = summary.TotalBudget.Add(category.BudgetAmount)
		summary.TotalSpent = summary.TotalSpent.Add(category.TotalSpent)
		percentageSum = percentageSum.Add(category.PercentageUsed)
	}
	summary.AveragePercentageUsed = percentageSum.Div(decimal.NewFromInt(int64(len(categories))))
	return summary
}
