package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single recorded expense against a category. Date carries
// calendar-date semantics; the time of day is not used.
type Transaction struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransactionFilters narrows transaction listings. A nil CategoryID means
// all transactions.
type TransactionFilters struct {
	CategoryID *string
}

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(id string) (*Transaction, error)
	GetAll(filters *TransactionFilters) ([]*Transaction, error)
	Update(id string, transaction *Transaction) (*Transaction, error)
	Delete(id string) error
	Count() (int64, error)
	SumAmounts() (decimal.Decimal, error)
}
