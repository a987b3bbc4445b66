package service

import (
	"github.com/dafeb/budget-bubbles/internal/domain"
	"github.com/shopspring/decimal"
)

// DashboardService computes the aggregate spending summary
type DashboardService struct {
	categoryRepo    domain.CategoryRepository
	transactionRepo domain.TransactionRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(categoryRepo domain.CategoryRepository, transactionRepo domain.TransactionRepository) *DashboardService {
	return &DashboardService{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// GetSummary aggregates totals across every category and transaction.
// An empty dataset yields all-zero metrics, never a division error.
func (s *DashboardService) GetSummary() (*domain.DashboardSummary, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}

	totalBudget := decimal.Zero
	for _, category := range categories {
		totalBudget = totalBudget.Add(category.BudgetAmount)
	}

	totalSpent, err := s.transactionRepo.SumAmounts()
	if err != nil {
		return nil, err
	}

	transactionsCount, err := s.transactionRepo.Count()
	if err != nil {
		return nil, err
	}

	percentageUsed := decimal.Zero
	if totalBudget.IsPositive() {
		percentageUsed = totalSpent.Div(totalBudget).Mul(oneHundred)
	}

	return &domain.DashboardSummary{
		TotalBudget:       totalBudget,
		TotalSpent:        totalSpent,
		RemainingBudget:   totalBudget.Sub(totalSpent),
		CategoriesCount:   int64(len(categories)),
		TransactionsCount: transactionsCount,
		PercentageUsed:    percentageUsed,
	}, nil
}
