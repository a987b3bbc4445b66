package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/dafeb/budget-bubbles/internal/domain"
	"github.com/dafeb/budget-bubbles/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the create/update transaction request body
type TransactionRequest struct {
	CategoryID  string          `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

func (r TransactionRequest) toInput() service.TransactionInput {
	return service.TransactionInput{
		CategoryID:  r.CategoryID,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date,
	}
}

// transactionValidationResponse maps a validation error to a ProblemDetails
// response, or returns false when the error is not a validation failure.
func transactionValidationResponse(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrDescriptionRequired):
		return NewValidationError(c, "Description is required", []ValidationError{
			{Field: "description", Message: "Description cannot be empty"},
		}), true
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 255 characters or less"},
		}), true
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be greater than zero"},
		}), true
	case errors.Is(err, domain.ErrCategoryRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category_id", Message: "Category is required"},
		}), true
	case errors.Is(err, domain.ErrDateRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date is required"},
		}), true
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category_id", Message: "Category does not exist"},
		}), true
	}
	return nil, false
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	transaction, err := h.transactionService.CreateTransaction(req.toInput())
	if err != nil {
		if resp, ok := transactionValidationResponse(c, err); ok {
			return resp
		}
		log.Error().Err(err).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	log.Info().Str("transaction_id", transaction.ID).Str("category_id", transaction.CategoryID).Msg("Transaction created")
	return c.JSON(http.StatusCreated, transaction)
}

// GetTransactions handles GET /api/transactions?category_id=
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	var categoryID *string
	if raw := c.QueryParam("category_id"); raw != "" {
		categoryID = &raw
	}

	transactions, err := h.transactionService.GetTransactions(categoryID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get transactions")
		return NewInternalError(c, "Failed to get transactions")
	}
	return c.JSON(http.StatusOK, transactions)
}

// UpdateTransaction handles PUT /api/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id := c.Param("id")

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	transaction, err := h.transactionService.UpdateTransaction(id, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		if resp, ok := transactionValidationResponse(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("transaction_id", id).Msg("Failed to update transaction")
		return NewInternalError(c, "Failed to update transaction")
	}

	log.Info().Str("transaction_id", transaction.ID).Msg("Transaction updated")
	return c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE /api/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id := c.Param("id")

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	log.Info().Str("transaction_id", id).Msg("Transaction deleted")
	return c.NoContent(http.StatusNoContent)
}
