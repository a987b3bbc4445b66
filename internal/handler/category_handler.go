package handler

import (
	"errors"
	"net/http"

	"github.com/dafeb/budget-bubbles/internal/domain"
	"github.com/dafeb/budget-bubbles/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CategoryHandler handles budget category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents the create/update category request body
type CategoryRequest struct {
	Name         string          `json:"name"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
	Color        string          `json:"color"`
}

// categoryValidationResponse maps a validation error to a ProblemDetails
// response, or returns false when the error is not a validation failure.
func categoryValidationResponse(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Category name is required", []ValidationError{
			{Field: "name", Message: "Name cannot be empty"},
		}), true
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 100 characters or less"},
		}), true
	case errors.Is(err, domain.ErrInvalidBudgetAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "budget_amount", Message: "Budget amount must be greater than zero"},
		}), true
	}
	return nil, false
}

// CreateCategory handles POST /api/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(req.Name, req.BudgetAmount, req.Color)
	if err != nil {
		if resp, ok := categoryValidationResponse(c, err); ok {
			return resp
		}
		log.Error().Err(err).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	log.Info().Str("category_id", category.ID).Str("name", category.Name).Msg("Category created")
	return c.JSON(http.StatusCreated, category)
}

// GetCategories handles GET /api/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get categories")
		return NewInternalError(c, "Failed to get categories")
	}
	return c.JSON(http.StatusOK, categories)
}

// UpdateCategory handles PUT /api/categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id := c.Param("id")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.UpdateCategory(id, req.Name, req.BudgetAmount, req.Color)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if resp, ok := categoryValidationResponse(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("category_id", id).Msg("Failed to update category")
		return NewInternalError(c, "Failed to update category")
	}

	log.Info().Str("category_id", category.ID).Str("name", category.Name).Msg("Category updated")
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id := c.Param("id")

	if err := h.categoryService.DeleteCategory(id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Str("category_id", id).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category")
	}

	log.Info().Str("category_id", id).Msg("Category deleted with its transactions")
	return c.NoContent(http.StatusNoContent)
}
