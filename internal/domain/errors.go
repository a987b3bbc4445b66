package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalError       = errors.New("internal error")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name exceeds maximum length")
	ErrDescriptionRequired = errors.New("description is required")
	ErrDescriptionTooLong  = errors.New("description exceeds maximum length")
	ErrInvalidBudgetAmount = errors.New("budget amount must be greater than zero")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrCategoryRequired    = errors.New("category is required")
	ErrDateRequired        = errors.New("date is required")
)

// Validation constants
const (
	MaxCategoryNameLength           = 100
	MaxTransactionDescriptionLength = 255
)
