package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dafeb/budget-bubbles/internal/domain"
	"github.com/dafeb/budget-bubbles/internal/service"
	"github.com/dafeb/budget-bubbles/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newCategoryHandlerFixture() (*echo.Echo, *CategoryHandler, *testutil.MockCategoryRepository) {
	e := echo.New()
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := service.NewCategoryService(categoryRepo, nil)
	return e, NewCategoryHandler(categoryService), categoryRepo
}

func TestCreateCategoryHandler_Success(t *testing.T) {
	e, handler, _ := newCategoryHandlerFixture()

	reqBody := `{"name": "Groceries", "budget_amount": "500.00", "color": "#FF5733"}`
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response domain.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Name != "Groceries" {
		t.Errorf("Expected name 'Groceries', got %s", response.Name)
	}

	if !response.BudgetAmount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected budget 500, got %s", response.BudgetAmount)
	}

	if !response.RemainingBudget.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected remaining budget 500, got %s", response.RemainingBudget)
	}

	if response.ID == "" {
		t.Error("Expected generated ID, got empty string")
	}
}

func TestCreateCategoryHandler_EmptyName(t *testing.T) {
	e, handler, _ := newCategoryHandlerFixture()

	reqBody := `{"name": "", "budget_amount": "500.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}

	if problem.Status != http.StatusBadRequest {
		t.Errorf("Expected problem status 400, got %d", problem.Status)
	}
}

func TestCreateCategoryHandler_InvalidBudget(t *testing.T) {
	e, handler, _ := newCategoryHandlerFixture()

	reqBody := `{"name": "Groceries", "budget_amount": "0"}`
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetCategoriesHandler_IncludesSpending(t *testing.T) {
	e, handler, categoryRepo := newCategoryHandlerFixture()

	category, err := categoryRepo.Create(&domain.Category{
		Name:         "Groceries",
		BudgetAmount: decimal.NewFromInt(500),
		Color:        "#FF5733",
	})
	if err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	categoryRepo.SetSpent(category.ID, decimal.NewFromInt(120))

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetCategories(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response []domain.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(response))
	}

	if !response[0].TotalSpent.Equal(decimal.NewFromInt(120)) {
		t.Errorf("Expected total spent 120, got %s", response[0].TotalSpent)
	}

	if !response[0].RemainingBudget.Equal(decimal.NewFromInt(380)) {
		t.Errorf("Expected remaining budget 380, got %s", response[0].RemainingBudget)
	}
}

func TestUpdateCategoryHandler_NotFound(t *testing.T) {
	e, handler, _ := newCategoryHandlerFixture()

	reqBody := `{"name": "Groceries", "budget_amount": "500.00"}`
	req := httptest.NewRequest(http.MethodPut, "/api/categories/cat-missing", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("cat-missing")

	if err := handler.UpdateCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestUpdateCategoryHandler_Success(t *testing.T) {
	e, handler, categoryRepo := newCategoryHandlerFixture()

	category, err := categoryRepo.Create(&domain.Category{
		Name:         "Groceries",
		BudgetAmount: decimal.NewFromInt(500),
		Color:        "#FF5733",
	})
	if err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}

	reqBody := `{"name": "Food", "budget_amount": "600.00", "color": "#00FF00"}`
	req := httptest.NewRequest(http.MethodPut, "/api/categories/"+category.ID, strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(category.ID)

	if err := handler.UpdateCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response domain.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Name != "Food" {
		t.Errorf("Expected name 'Food', got %s", response.Name)
	}
}

func TestDeleteCategoryHandler_Success(t *testing.T) {
	e, handler, categoryRepo := newCategoryHandlerFixture()

	category, err := categoryRepo.Create(&domain.Category{
		Name:         "Groceries",
		BudgetAmount: decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/categories/"+category.ID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(category.ID)

	if err := handler.DeleteCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}

func TestDeleteCategoryHandler_NotFound(t *testing.T) {
	e, handler, _ := newCategoryHandlerFixture()

	req := httptest.NewRequest(http.MethodDelete, "/api/categories/cat-missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("cat-missing")

	if err := handler.DeleteCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
