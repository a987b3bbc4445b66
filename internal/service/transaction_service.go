package service

import (
	"strings"
	"time"

	"github.com/dafeb/budget-bubbles/internal/domain"
	"github.com/dafeb/budget-bubbles/internal/websocket"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	eventPublisher  websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository, eventPublisher websocket.EventPublisher) *TransactionService {
	if eventPublisher == nil {
		eventPublisher = &websocket.NoOpPublisher{}
	}
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		eventPublisher:  eventPublisher,
	}
}

// TransactionInput holds the user-supplied fields of a transaction
type TransactionInput struct {
	CategoryID  string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

func (s *TransactionService) validate(input *TransactionInput) error {
	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" {
		return domain.ErrDescriptionRequired
	}
	if len(input.Description) > domain.MaxTransactionDescriptionLength {
		return domain.ErrDescriptionTooLong
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if input.CategoryID == "" {
		return domain.ErrCategoryRequired
	}
	if input.Date.IsZero() {
		return domain.ErrDateRequired
	}
	// The referenced category must exist
	if _, err := s.categoryRepo.GetByID(input.CategoryID); err != nil {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// CreateTransaction creates a new transaction with validation
func (s *TransactionService) CreateTransaction(input TransactionInput) (*domain.Transaction, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	transaction, err := s.transactionRepo.Create(&domain.Transaction{
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Description: input.Description,
		Date:        input.Date,
	})
	if err != nil {
		return nil, err
	}

	s.eventPublisher.Publish(websocket.TransactionCreated(transaction))
	return transaction, nil
}

// GetTransactions retrieves transactions, optionally scoped to one category,
// ordered by date descending.
func (s *TransactionService) GetTransactions(categoryID *string) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetAll(&domain.TransactionFilters{CategoryID: categoryID})
}

// GetTransactionByID retrieves a single transaction
func (s *TransactionService) GetTransactionByID(id string) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(id)
}

// UpdateTransaction replaces a transaction's user-supplied fields
func (s *TransactionService) UpdateTransaction(id string, input TransactionInput) (*domain.Transaction, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	transaction, err := s.transactionRepo.Update(id, &domain.Transaction{
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Description: input.Description,
		Date:        input.Date,
	})
	if err != nil {
		return nil, err
	}

	s.eventPublisher.Publish(websocket.TransactionUpdated(transaction))
	return transaction, nil
}

// DeleteTransaction removes a transaction
func (s *TransactionService) DeleteTransaction(id string) error {
	if _, err := s.transactionRepo.GetByID(id); err != nil {
		return err
	}
	if err := s.transactionRepo.Delete(id); err != nil {
		return err
	}

	s.eventPublisher.Publish(websocket.TransactionDeleted(map[string]string{"id": id}))
	return nil
}
