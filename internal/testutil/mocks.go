package testutil

import (
	"fmt"
	"time"

	"github.com/dafeb/budget-bubbles/internal/domain"
	"github.com/shopspring/decimal"
)

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[string]*domain.Category
	Order      []string
	Spent      map[string]decimal.Decimal
	NextID     int
	FailWith   error
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[string]*domain.Category),
		Spent:      make(map[string]decimal.Decimal),
		NextID:     1,
	}
}

// SetSpent sets the aggregated spending reported for a category
func (m *MockCategoryRepository) SetSpent(id string, spent decimal.Decimal) {
	m.Spent[id] = spent
}

func (m *MockCategoryRepository) withSpent(category *domain.Category) *domain.Category {
	clone := *category
	if spent, ok := m.Spent[category.ID]; ok {
		clone.TotalSpent = spent
	} else {
		clone.TotalSpent = decimal.Zero
	}
	return &clone
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	stored := *category
	stored.ID = fmt.Sprintf("cat-%d", m.NextID)
	m.NextID++
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.Categories[stored.ID] = &stored
	m.Order = append(m.Order, stored.ID)
	return m.withSpent(&stored), nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id string) (*domain.Category, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if category, ok := m.Categories[id]; ok {
		return m.withSpent(category), nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves all categories in insertion order
func (m *MockCategoryRepository) GetAll() ([]*domain.Category, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	result := make([]*domain.Category, 0, len(m.Order))
	for _, id := range m.Order {
		result = append(result, m.withSpent(m.Categories[id]))
	}
	return result, nil
}

// Update updates a category
func (m *MockCategoryRepository) Update(id string, name string, budgetAmount decimal.Decimal, color string) (*domain.Category, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	category, ok := m.Categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	category.Name = name
	category.BudgetAmount = budgetAmount
	category.Color = color
	category.UpdatedAt = time.Now()
	return m.withSpent(category), nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(id string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	for i, existing := range m.Order {
		if existing == id {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of categories
func (m *MockCategoryRepository) Count() (int64, error) {
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	return int64(len(m.Categories)), nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.Categories[category.ID] = category
	m.Order = append(m.Order, category.ID)
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[string]*domain.Transaction
	Order        []string
	NextID       int
	FailWith     error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[string]*domain.Transaction),
		NextID:       1,
	}
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	stored := *transaction
	stored.ID = fmt.Sprintf("txn-%d", m.NextID)
	m.NextID++
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.Transactions[stored.ID] = &stored
	m.Order = append(m.Order, stored.ID)
	clone := stored
	return &clone, nil
}

// GetByID retrieves a transaction by ID
func (m *MockTransactionRepository) GetByID(id string) (*domain.Transaction, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if transaction, ok := m.Transactions[id]; ok {
		clone := *transaction
		return &clone, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// GetAll retrieves transactions, optionally filtered by category
func (m *MockTransactionRepository) GetAll(filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	result := make([]*domain.Transaction, 0, len(m.Order))
	for _, id := range m.Order {
		transaction := m.Transactions[id]
		if filters != nil && filters.CategoryID != nil && transaction.CategoryID != *filters.CategoryID {
			continue
		}
		clone := *transaction
		result = append(result, &clone)
	}
	return result, nil
}

// Update updates a transaction
func (m *MockTransactionRepository) Update(id string, transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	existing, ok := m.Transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	existing.CategoryID = transaction.CategoryID
	existing.Amount = transaction.Amount
	existing.Description = transaction.Description
	existing.Date = transaction.Date
	existing.UpdatedAt = time.Now()
	clone := *existing
	return &clone, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(id string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.Transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	for i, existing := range m.Order {
		if existing == id {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of transactions
func (m *MockTransactionRepository) Count() (int64, error) {
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	return int64(len(m.Transactions)), nil
}

// SumAmounts returns the sum of all transaction amounts
func (m *MockTransactionRepository) SumAmounts() (decimal.Decimal, error) {
	if m.FailWith != nil {
		return decimal.Zero, m.FailWith
	}
	sum := decimal.Zero
	for _, transaction := range m.Transactions {
		sum = sum.Add(transaction.Amount)
	}
	return sum, nil
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	m.Transactions[transaction.ID] = transaction
	m.Order = append(m.Order, transaction.ID)
}
