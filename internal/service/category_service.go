package service

import (
	"strings"

	"github.com/dafeb/budget-bubbles/internal/domain"
	"github.com/dafeb/budget-bubbles/internal/websocket"
	"github.com/shopspring/decimal"
)

// DefaultCategoryColor is used when no color is supplied on create.
const DefaultCategoryColor = "#3B82F6"

var oneHundred = decimal.NewFromInt(100)

// CategoryService handles budget category business logic
type CategoryService struct {
	categoryRepo   domain.CategoryRepository
	eventPublisher websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, eventPublisher websocket.EventPublisher) *CategoryService {
	if eventPublisher == nil {
		eventPublisher = &websocket.NoOpPublisher{}
	}
	return &CategoryService{
		categoryRepo:   categoryRepo,
		eventPublisher: eventPublisher,
	}
}

// CreateCategory creates a new category after validating its name and budget
func (s *CategoryService) CreateCategory(name string, budgetAmount decimal.Decimal, color string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrNameTooLong
	}
	if budgetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidBudgetAmount
	}
	if strings.TrimSpace(color) == "" {
		color = DefaultCategoryColor
	}

	category, err := s.categoryRepo.Create(&domain.Category{
		Name:         name,
		BudgetAmount: budgetAmount,
		Color:        color,
	})
	if err != nil {
		return nil, err
	}
	applyDerivedFields(category)

	s.eventPublisher.Publish(websocket.CategoryCreated(category))
	return category, nil
}

// GetCategories retrieves all categories with their derived spending fields
func (s *CategoryService) GetCategories() ([]*domain.Category, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		applyDerivedFields(category)
	}
	return categories, nil
}

// GetCategoryByID retrieves a single category by ID
func (s *CategoryService) GetCategoryByID(id string) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	applyDerivedFields(category)
	return category, nil
}

// UpdateCategory updates a category's name, budget and color
func (s *CategoryService) UpdateCategory(id string, name string, budgetAmount decimal.Decimal, color string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrNameTooLong
	}
	if budgetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidBudgetAmount
	}
	if strings.TrimSpace(color) == "" {
		color = DefaultCategoryColor
	}

	category, err := s.categoryRepo.Update(id, name, budgetAmount, color)
	if err != nil {
		return nil, err
	}
	applyDerivedFields(category)

	s.eventPublisher.Publish(websocket.CategoryUpdated(category))
	return category, nil
}

// DeleteCategory removes a category and, transitively, every transaction
// referencing it.
func (s *CategoryService) DeleteCategory(id string) error {
	// Verify the category exists before deleting
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}

	s.eventPublisher.Publish(websocket.CategoryDeleted(map[string]string{"id": id}))
	return nil
}

// applyDerivedFields fills RemainingBudget and PercentageUsed from the raw
// budget and spent amounts. A non-positive budget yields zero percent used
// rather than a division error.
func applyDerivedFields(c *domain.Category) {
	c.RemainingBudget = c.BudgetAmount.Sub(c.TotalSpent)
	if c.BudgetAmount.IsPositive() {
		c.PercentageUsed = c.TotalSpent.Div(c.BudgetAmount).Mul(oneHundred)
	} else {
		c.PercentageUsed = decimal.Zero
	}
}
