package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is a named budget bucket with a planned spend limit.
// TotalSpent, RemainingBudget and PercentageUsed are derived from the
// category's transactions and are only ever computed service-side;
// clients treat them as read-only.
type Category struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	BudgetAmount    decimal.Decimal `json:"budget_amount"`
	Color           string          `json:"color"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	PercentageUsed  decimal.Decimal `json:"percentage_used"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id string) (*Category, error)
	GetAll() ([]*Category, error)
	Update(id string, name string, budgetAmount decimal.Decimal, color string) (*Category, error)
	Delete(id string) error
	Count() (int64, error)
}
