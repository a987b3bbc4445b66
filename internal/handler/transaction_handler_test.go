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

func newTransactionHandlerFixture(t *testing.T) (*echo.Echo, *TransactionHandler, *testutil.MockTransactionRepository, string) {
	t.Helper()

	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	transactionService := service.NewTransactionService(transactionRepo, categoryRepo, nil)

	category, err := categoryRepo.Create(&domain.Category{
		Name:         "Groceries",
		BudgetAmount: decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}

	return e, NewTransactionHandler(transactionService), transactionRepo, category.ID
}

func TestCreateTransactionHandler_Success(t *testing.T) {
	e, handler, _, categoryID := newTransactionHandlerFixture(t)

	reqBody := `{"category_id": "` + categoryID + `", "amount": "120.00", "description": "Weekly shop", "date": "2024-03-15T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.CategoryID != categoryID {
		t.Errorf("Expected category %s, got %s", categoryID, response.CategoryID)
	}

	if !response.Amount.Equal(decimal.NewFromInt(120)) {
		t.Errorf("Expected amount 120, got %s", response.Amount)
	}
}

func TestCreateTransactionHandler_UnknownCategory(t *testing.T) {
	e, handler, _, _ := newTransactionHandlerFixture(t)

	reqBody := `{"category_id": "cat-missing", "amount": "120.00", "description": "Weekly shop", "date": "2024-03-15T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateTransactionHandler_MissingDescription(t *testing.T) {
	e, handler, _, categoryID := newTransactionHandlerFixture(t)

	reqBody := `{"category_id": "` + categoryID + `", "amount": "120.00", "description": "", "date": "2024-03-15T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetTransactionsHandler_All(t *testing.T) {
	e, handler, transactionRepo, categoryID := newTransactionHandlerFixture(t)

	transactionRepo.AddTransaction(&domain.Transaction{
		ID:          "txn-1",
		CategoryID:  categoryID,
		Amount:      decimal.NewFromInt(120),
		Description: "Weekly shop",
	})
	transactionRepo.AddTransaction(&domain.Transaction{
		ID:          "txn-2",
		CategoryID:  "cat-other",
		Amount:      decimal.NewFromInt(30),
		Description: "Bus pass",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response []domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response) != 2 {
		t.Errorf("Expected 2 transactions, got %d", len(response))
	}
}

func TestGetTransactionsHandler_FilteredByCategory(t *testing.T) {
	e, handler, transactionRepo, categoryID := newTransactionHandlerFixture(t)

	transactionRepo.AddTransaction(&domain.Transaction{
		ID:          "txn-1",
		CategoryID:  categoryID,
		Amount:      decimal.NewFromInt(120),
		Description: "Weekly shop",
	})
	transactionRepo.AddTransaction(&domain.Transaction{
		ID:          "txn-2",
		CategoryID:  "cat-other",
		Amount:      decimal.NewFromInt(30),
		Description: "Bus pass",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/transactions?category_id="+categoryID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response []domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(response))
	}

	if response[0].Description != "Weekly shop" {
		t.Errorf("Expected 'Weekly shop', got %s", response[0].Description)
	}
}

func TestUpdateTransactionHandler_NotFound(t *testing.T) {
	e, handler, _, categoryID := newTransactionHandlerFixture(t)

	reqBody := `{"category_id": "` + categoryID + `", "amount": "95.00", "description": "Smaller shop", "date": "2024-03-15T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPut, "/api/transactions/txn-missing", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("txn-missing")

	if err := handler.UpdateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteTransactionHandler_Success(t *testing.T) {
	e, handler, transactionRepo, categoryID := newTransactionHandlerFixture(t)

	transactionRepo.AddTransaction(&domain.Transaction{
		ID:          "txn-1",
		CategoryID:  categoryID,
		Amount:      decimal.NewFromInt(120),
		Description: "Weekly shop",
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/transactions/txn-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("txn-1")

	if err := handler.DeleteTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}
