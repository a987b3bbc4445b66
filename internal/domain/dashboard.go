package domain

import "github.com/shopspring/decimal"

// DashboardSummary contains the aggregate spending metrics shown on the
// dashboard. All values are computed service-side from raw records.
type DashboardSummary struct {
	TotalBudget       decimal.Decimal `json:"total_budget"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
	RemainingBudget   decimal.Decimal `json:"remaining_budget"`
	CategoriesCount   int64           `json:"categories_count"`
	TransactionsCount int64           `json:"transactions_count"`
	PercentageUsed    decimal.Decimal `json:"percentage_used"`
}
