package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafeb/budget-bubbles/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func txn(id, categoryID, description string, amount int64, date time.Time) domain.Transaction {
	return domain.Transaction{
		ID:          id,
		CategoryID:  categoryID,
		Description: description,
		Amount:      decimal.NewFromInt(amount),
		Date:        date,
	}
}

func TestRunningBalance(t *testing.T) {
	rows := []Row{
		{Description: "Paycheck", Amount: "1000"},
		{Description: "Rent", Amount: "-600"},
		{Description: "Groceries", Amount: "-120.50"},
	}

	balances := RunningBalance(rows)
	require.Len(t, balances, 3)

	assert.True(t, balances[0].Equal(decimal.NewFromInt(1000)))
	assert.True(t, balances[1].Equal(decimal.NewFromInt(400)))
	assert.True(t, balances[2].Equal(decimal.RequireFromString("279.50")))
}

func TestRunningBalance_PrefixProperty(t *testing.T) {
	rows := []Row{
		{Amount: "10"}, {Amount: "-3"}, {Amount: "7.25"}, {Amount: "0"},
	}

	balances := RunningBalance(rows)
	require.Len(t, balances, len(rows))

	sum := decimal.Zero
	for i, row := range rows {
		sum = sum.Add(row.AmountValue())
		assert.True(t, balances[i].Equal(sum), "prefix sum mismatch at %d", i)
	}
	assert.True(t, Balance(rows).Equal(balances[len(balances)-1]))
}

func TestRunningBalance_Empty(t *testing.T) {
	assert.Empty(t, RunningBalance(nil))
	assert.True(t, Balance(nil).IsZero())
}

func TestAmountValue_UnparsableIsZero(t *testing.T) {
	assert.True(t, Row{Amount: ""}.AmountValue().IsZero())
	assert.True(t, Row{Amount: "   "}.AmountValue().IsZero())
	assert.True(t, Row{Amount: "abc"}.AmountValue().IsZero())
	assert.True(t, Row{Amount: " 12.50 "}.AmountValue().Equal(decimal.RequireFromString("12.50")))
}

func TestFilterSort_ByCategory(t *testing.T) {
	transactions := []domain.Transaction{
		txn("txn-1", "cat-1", "Weekly shop", 120, day(1)),
		txn("txn-2", "cat-2", "Bus pass", 30, day(2)),
		txn("txn-3", "cat-1", "Top-up shop", 45, day(3)),
	}

	result := FilterSort(transactions, "cat-1", SortByDate, Ascending)
	require.Len(t, result, 2)
	assert.Equal(t, "txn-1", result[0].ID)
	assert.Equal(t, "txn-3", result[1].ID)

	all := FilterSort(transactions, "", SortByDate, Ascending)
	assert.Len(t, all, 3)
}

func TestFilterSort_ByAmountDescending(t *testing.T) {
	transactions := []domain.Transaction{
		txn("txn-1", "cat-1", "a", 30, day(1)),
		txn("txn-2", "cat-1", "b", 120, day(2)),
		txn("txn-3", "cat-1", "c", 45, day(3)),
	}

	asc := FilterSort(transactions, "", SortByAmount, Ascending)
	desc := FilterSort(transactions, "", SortByAmount, Descending)

	require.Len(t, asc, 3)
	assert.Equal(t, "txn-1", asc[0].ID)
	assert.Equal(t, "txn-3", asc[1].ID)
	assert.Equal(t, "txn-2", asc[2].ID)

	// Descending is the exact reverse when there are no ties
	for i := range asc {
		assert.Equal(t, asc[len(asc)-1-i].ID, desc[i].ID)
	}
}

func TestFilterSort_DescriptionCaseInsensitive(t *testing.T) {
	transactions := []domain.Transaction{
		txn("txn-1", "cat-1", "zebra", 1, day(1)),
		txn("txn-2", "cat-1", "Apple", 2, day(2)),
		txn("txn-3", "cat-1", "banana", 3, day(3)),
	}

	result := FilterSort(transactions, "", SortByDescription, Ascending)
	require.Len(t, result, 3)
	assert.Equal(t, "Apple", result[0].Description)
	assert.Equal(t, "banana", result[1].Description)
	assert.Equal(t, "zebra", result[2].Description)
}

func TestFilterSort_StableOnTies(t *testing.T) {
	sameDay := day(5)
	transactions := []domain.Transaction{
		txn("txn-1", "cat-1", "first", 10, sameDay),
		txn("txn-2", "cat-1", "second", 20, sameDay),
		txn("txn-3", "cat-1", "third", 30, sameDay),
	}

	result := FilterSort(transactions, "", SortByDate, Ascending)
	require.Len(t, result, 3)
	assert.Equal(t, "txn-1", result[0].ID)
	assert.Equal(t, "txn-2", result[1].ID)
	assert.Equal(t, "txn-3", result[2].ID)

	// Ties keep input order in descending direction too
	result = FilterSort(transactions, "", SortByDate, Descending)
	assert.Equal(t, "txn-1", result[0].ID)
	assert.Equal(t, "txn-2", result[1].ID)
	assert.Equal(t, "txn-3", result[2].ID)
}

func TestFilterSort_DateIgnoresTimeOfDay(t *testing.T) {
	transactions := []domain.Transaction{
		{ID: "txn-1", CategoryID: "cat-1", Amount: decimal.NewFromInt(1),
			Date: time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC)},
		{ID: "txn-2", CategoryID: "cat-1", Amount: decimal.NewFromInt(2),
			Date: time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC)},
	}

	// Same calendar day means a tie, so input order is kept
	result := FilterSort(transactions, "", SortByDate, Ascending)
	assert.Equal(t, "txn-1", result[0].ID)
	assert.Equal(t, "txn-2", result[1].ID)
}

func TestFilterSort_UnknownFieldSortsByDate(t *testing.T) {
	transactions := []domain.Transaction{
		txn("txn-2", "cat-1", "later", 1, day(9)),
		txn("txn-1", "cat-1", "earlier", 1, day(2)),
	}

	result := FilterSort(transactions, "", SortField("bogus"), Ascending)
	require.Len(t, result, 2)
	assert.Equal(t, "txn-1", result[0].ID)
}

func TestFilterSort_DoesNotMutateInput(t *testing.T) {
	transactions := []domain.Transaction{
		txn("txn-2", "cat-1", "b", 2, day(2)),
		txn("txn-1", "cat-1", "a", 1, day(1)),
	}

	_ = FilterSort(transactions, "", SortByDate, Ascending)
	assert.Equal(t, "txn-2", transactions[0].ID)
	assert.Equal(t, "txn-1", transactions[1].ID)
}

func TestTotal(t *testing.T) {
	transactions := []domain.Transaction{
		txn("txn-1", "cat-1", "a", 120, day(1)),
		txn("txn-2", "cat-1", "b", 30, day(2)),
	}

	assert.True(t, Total(transactions).Equal(decimal.NewFromInt(150)))
	assert.True(t, Total(nil).IsZero())
}

func TestSummarize(t *testing.T) {
	categories := []domain.Category{
		{
			ID:             "cat-1",
			BudgetAmount:   decimal.NewFromInt(500),
			TotalSpent:     decimal.NewFromInt(120),
			PercentageUsed: decimal.NewFromInt(24),
		},
		{
			ID:             "cat-2",
			BudgetAmount:   decimal.NewFromInt(300),
			TotalSpent:     decimal.NewFromInt(150),
			PercentageUsed: decimal.NewFromInt(50),
		},
	}

	summary := Summarize(categories)
	assert.True(t, summary.TotalBudget.Equal(decimal.NewFromInt(800)))
	assert.True(t, summary.TotalSpent.Equal(decimal.NewFromInt(270)))
	assert.True(t, summary.AveragePercentageUsed.Equal(decimal.NewFromInt(37)))
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)
	assert.True(t, summary.TotalBudget.IsZero())
	assert.True(t, summary.TotalSpent.IsZero())
	assert.True(t, summary.AveragePercentageUsed.IsZero())
}
