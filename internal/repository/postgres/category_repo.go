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

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// categoryColumns selects a category together with its aggregated spending.
const categoryColumns = `
SELECT c.id, c.name, c.budget_amount, c.color, c.created_at, c.updated_at,
       COALESCE(SUM(t.amount), 0) AS total_spent
FROM budget_categories c
LEFT JOIN transactions t ON t.category_id = c.id
`

// Create inserts a new category and returns it with a zero spent total
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO budget_categories (id, name, budget_amount, color)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, budget_amount, color, created_at, updated_at`,
		uuid.NewString(), category.Name, category.BudgetAmount, category.Color)

	created := &domain.Category{}
	if err := row.Scan(&created.ID, &created.Name, &created.BudgetAmount, &created.Color, &created.CreatedAt, &created.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	created.TotalSpent = decimal.Zero
	return created, nil
}

// GetByID retrieves a category by its ID, including aggregated spending
func (r *CategoryRepository) GetByID(id string) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, categoryColumns+`WHERE c.id = $1 GROUP BY c.id`, id)

	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// GetAll retrieves every category with aggregated spending, oldest first
func (r *CategoryRepository) GetAll() ([]*domain.Category, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, categoryColumns+`GROUP BY c.id ORDER BY c.created_at`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update replaces a category's name, budget and color
func (r *CategoryRepository) Update(id string, name string, budgetAmount decimal.Decimal, color string) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE budget_categories
		SET name = $2, budget_amount = $3, color = $4, updated_at = now()
		WHERE id = $1
		RETURNING id, name, budget_amount, color, created_at, updated_at`,
		id, name, budgetAmount, color)

	updated := &domain.Category{}
	if err := row.Scan(&updated.ID, &updated.Name, &updated.BudgetAmount, &updated.Color, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	if err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE category_id = $1`, id,
	).Scan(&updated.TotalSpent); err != nil {
		return nil, fmt.Errorf("sum category spending: %w", err)
	}
	return updated, nil
}

// Delete removes a category and all transactions referencing it in one
// database transaction.
func (r *CategoryRepository) Delete(id string) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete category: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE category_id = $1`, id); err != nil {
		return fmt.Errorf("delete category transactions: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM budget_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return tx.Commit(ctx)
}

// Count returns the number of categories
func (r *CategoryRepository) Count() (int64, error) {
	ctx := context.Background()
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM budget_categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	category := &domain.Category{}
	err := row.Scan(&category.ID, &category.Name, &category.BudgetAmount, &category.Color,
		&category.CreatedAt, &category.UpdatedAt, &category.TotalSpent)
	if err != nil {
		return nil, err
	}
	return category, nil
}
