package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafeb/budget-bubbles/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `
SELECT id, category_id, amount, description, date, created_at, updated_at
FROM transactions
`

// Create inserts a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (id, category_id, amount, description, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, category_id, amount, description, date, created_at, updated_at`,
		uuid.NewString(), transaction.CategoryID, transaction.Amount, transaction.Description, transaction.Date)

	created, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return created, nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(id string) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, transactionColumns+`WHERE id = $1`, id)

	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return transaction, nil
}

// GetAll retrieves transactions ordered by date descending, optionally
// scoped to one category.
func (r *TransactionRepository) GetAll(filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	ctx := context.Background()

	var (
		rows pgx.Rows
		err  error
	)
	if filters != nil && filters.CategoryID != nil {
		rows, err = r.pool.Query(ctx, transactionColumns+`WHERE category_id = $1 ORDER BY date DESC, created_at DESC`, *filters.CategoryID)
	} else {
		rows, err = r.pool.Query(ctx, transactionColumns+`ORDER BY date DESC, created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

// Update replaces a transaction's user-supplied fields
func (r *TransactionRepository) Update(id string, transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE transactions
		SET category_id = $2, amount = $3, description = $4, date = $5, updated_at = now()
		WHERE id = $1
		RETURNING id, category_id, amount, description, date, created_at, updated_at`,
		id, transaction.CategoryID, transaction.Amount, transaction.Description, transaction.Date)

	updated, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return updated, nil
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// Count returns the number of transactions
func (r *TransactionRepository) Count() (int64, error) {
	ctx := context.Background()
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// SumAmounts returns the sum of every transaction amount
func (r *TransactionRepository) SumAmounts() (decimal.Decimal, error) {
	ctx := context.Background()
	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM transactions`).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum transactions: %w", err)
	}
	return sum, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	transaction := &domain.Transaction{}
	err := row.Scan(&transaction.ID, &transaction.CategoryID, &transaction.Amount,
		&transaction.Description, &transaction.Date, &transaction.CreatedAt, &transaction.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return transaction, nil
}
