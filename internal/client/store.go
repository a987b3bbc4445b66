package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dafeb/budget-bubbles/internal/domain"
	"github.com/shopspring/decimal"
)

// Store is the shared client-side snapshot of categories and transactions.
// Every read of cached state is local; every mutation writes through to the
// service and then re-fetches the dependent collections before it returns,
// so a resolved mutation always implies a cache that matches the service.
//
// The store keeps one loading flag and one error slot for all operations.
// Concurrent operations share both signals; the last operation to finish
// wins. Mutations against the same collection issued concurrently are not
// serialized either - callers wanting strict ordering must await each
// operation before starting the next.
type Store struct {
	api *Client

	mu           sync.RWMutex
	categories   []domain.Category
	transactions []domain.Transaction
	loading      bool
	errMsg       string
	subs         []chan struct{}
}

// NewStore creates a Store backed by the given API client
func NewStore(api *Client) *Store {
	return &Store{api: api}
}

// Loading reports whether any store operation is in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the message of the most recent failed operation, or "" after
// the last attempted operation succeeded.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Subscribe returns a channel that receives a hint whenever a cached
// collection is replaced. Sends never block; a slow consumer misses hints
// rather than stalling the store.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := s.subs
	s.mu.RUnlock()
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// begin marks an operation as started: loading is raised and the shared
// error slot is cleared.
func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
}

// fail records an operation failure in the shared error slot and returns
// the wrapped error. The cache is never touched on failure.
func (s *Store) fail(msg string, err error) error {
	s.mu.Lock()
	s.loading = false
	s.errMsg = msg
	s.mu.Unlock()
	return fmt.Errorf("%s: %w", msg, err)
}

// LoadCategories replaces the cached category collection with a fresh fetch
func (s *Store) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	s.begin()
	categories, err := s.api.Categories(ctx)
	if err != nil {
		return nil, s.fail("failed to fetch categories", err)
	}

	s.mu.Lock()
	s.categories = categories
	s.loading = false
	s.mu.Unlock()
	s.notify()
	return copyCategories(categories), nil
}

// LoadTransactions replaces the cached transaction collection with a fresh
// fetch, scoped to one category when categoryID is non-empty.
func (s *Store) LoadTransactions(ctx context.Context, categoryID string) ([]domain.Transaction, error) {
	s.begin()
	transactions, err := s.api.Transactions(ctx, categoryID)
	if err != nil {
		return nil, s.fail("failed to fetch transactions", err)
	}

	s.mu.Lock()
	s.transactions = transactions
	s.loading = false
	s.mu.Unlock()
	s.notify()
	return copyTransactions(transactions), nil
}

// CreateCategory validates the input, writes through to the service and
// refreshes the category cache before returning the created record.
func (s *Store) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}

	s.begin()
	created, err := s.api.CreateCategory(ctx, input)
	if err != nil {
		return nil, s.fail("failed to create category", err)
	}
	if _, err := s.LoadCategories(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateCategory validates the input, writes through to the service and
// refreshes the category cache before returning the updated record.
func (s *Store) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}

	s.begin()
	updated, err := s.api.UpdateCategory(ctx, id, input)
	if err != nil {
		return nil, s.fail("failed to update category", err)
	}
	if _, err := s.LoadCategories(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCategory deletes a category on the service. The service cascades
// the delete to the category's transactions, so both caches are refreshed
// before the call resolves.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.begin()
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		return s.fail("failed to delete category", err)
	}
	if _, err := s.LoadCategories(ctx); err != nil {
		return err
	}
	if _, err := s.LoadTransactions(ctx, ""); err != nil {
		return err
	}
	return nil
}

// CreateTransaction validates the input, writes through to the service and
// refreshes both caches (category derived fields change) before returning.
func (s *Store) CreateTransaction(ctx context.Context, input TransactionInput) (*domain.Transaction, error) {
	if err := validateTransactionInput(input); err != nil {
		return nil, err
	}

	s.begin()
	created, err := s.api.CreateTransaction(ctx, input)
	if err != nil {
		return nil, s.fail("failed to create transaction", err)
	}
	if err := s.refreshAfterTransactionWrite(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateTransaction validates the input, writes through to the service and
// refreshes both caches before returning.
func (s *Store) UpdateTransaction(ctx context.Context, id string, input TransactionInput) (*domain.Transaction, error) {
	if err := validateTransactionInput(input); err != nil {
		return nil, err
	}

	s.begin()
	updated, err := s.api.UpdateTransaction(ctx, id, input)
	if err != nil {
		return nil, s.fail("failed to update transaction", err)
	}
	if err := s.refreshAfterTransactionWrite(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTransaction deletes a transaction on the service and refreshes both
// caches before returning.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.begin()
	if err := s.api.DeleteTransaction(ctx, id); err != nil {
		return s.fail("failed to delete transaction", err)
	}
	return s.refreshAfterTransactionWrite(ctx)
}

// refreshAfterTransactionWrite reloads categories first (their derived
// fields changed) and then the transaction collection. The two fetches are
// strictly sequential after the write that triggered them.
func (s *Store) refreshAfterTransactionWrite(ctx context.Context) error {
	if _, err := s.LoadCategories(ctx); err != nil {
		return err
	}
	if _, err := s.LoadTransactions(ctx, ""); err != nil {
		return err
	}
	return nil
}

// Dashboard fetches the aggregate summary. The result is not cached; the
// service recomputes it on every call.
func (s *Store) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	s.begin()
	summary, err := s.api.Dashboard(ctx)
	if err != nil {
		return nil, s.fail("failed to fetch dashboard data", err)
	}

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	return summary, nil
}

// Categories returns a copy of the cached category collection
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCategories(s.categories)
}

// Transactions returns a copy of the cached transaction collection
func (s *Store) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTransactions(s.transactions)
}

// CategoryByID looks up a cached category. It never touches the network;
// ok is false when the id is not in the cache.
func (s *Store) CategoryByID(id string) (domain.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, category := range s.categories {
		if category.ID == id {
			return category, true
		}
	}
	return domain.Category{}, false
}

// TransactionsByCategory returns the cached transactions referencing the
// given category. It never touches the network.
func (s *Store) TransactionsByCategory(categoryID string) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]domain.Transaction, 0)
	for _, transaction := range s.transactions {
		if transaction.CategoryID == categoryID {
			matches = append(matches, transaction)
		}
	}
	return matches
}

func validateCategoryInput(input CategoryInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domain.ErrNameRequired
	}
	if input.BudgetAmount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidBudgetAmount
	}
	return nil
}

func validateTransactionInput(input TransactionInput) error {
	if input.CategoryID == "" {
		return domain.ErrCategoryRequired
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if strings.TrimSpace(input.Description) == "" {
		return domain.ErrDescriptionRequired
	}
	if input.Date.IsZero() {
		return domain.ErrDateRequired
	}
	return nil
}

func copyCategories(categories []domain.Category) []domain.Category {
	return append([]domain.Category(nil), categories...)
}

func copyTransactions(transactions []domain.Transaction) []domain.Transaction {
	return append([]domain.Transaction(nil), transactions...)
}
