// Package client implements the Budget Bubbles finance store: a thin HTTP
// client for the REST API plus an in-memory snapshot of categories and
// transactions that is refreshed from the service after every write.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dafeb/budget-bubbles/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8001"

// APIError is returned for any non-success HTTP status. All failures are
// uniform from the store's point of view; Status is informational only.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Detail)
}

// CategoryInput holds the user-supplied fields of a category
type CategoryInput struct {
	Name         string          `json:"name"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
	Color        string          `json:"color"`
}

// TransactionInput holds the user-supplied fields of a transaction
type TransactionInput struct {
	CategoryID  string          `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// Client is a thin HTTP client for the Budget Bubbles REST API
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL. An empty baseURL falls back
// to DefaultBaseURL.
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: 30 * time.Second})
}

// NewWithHTTPClient creates a Client using the supplied http.Client
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// Categories fetches every category with its derived spending fields
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category and returns the service's record
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	created := &domain.Category{}
	if err := c.do(ctx, http.MethodPost, "/api/categories", input, created); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateCategory updates a category and returns the service's record
func (c *Client) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	updated := &domain.Category{}
	if err := c.do(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), input, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCategory deletes a category and, transitively, its transactions
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, nil)
}

// Transactions fetches transactions, optionally scoped to one category
func (c *Client) Transactions(ctx context.Context, categoryID string) ([]domain.Transaction, error) {
	path := "/api/transactions"
	if categoryID != "" {
		path += "?category_id=" + url.QueryEscape(categoryID)
	}
	var transactions []domain.Transaction
	if err := c.do(ctx, http.MethodGet, path, nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// CreateTransaction creates a transaction and returns the service's record
func (c *Client) CreateTransaction(ctx context.Context, input TransactionInput) (*domain.Transaction, error) {
	created := &domain.Transaction{}
	if err := c.do(ctx, http.MethodPost, "/api/transactions", input, created); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateTransaction updates a transaction and returns the service's record
func (c *Client) UpdateTransaction(ctx context.Context, id string, input TransactionInput) (*domain.Transaction, error) {
	updated := &domain.Transaction{}
	if err := c.do(ctx, http.MethodPut, "/api/transactions/"+url.PathEscape(id), input, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTransaction deletes a transaction
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/transactions/"+url.PathEscape(id), nil, nil)
}

// Dashboard fetches the aggregate spending summary
func (c *Client) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	summary := &domain.DashboardSummary{}
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// do performs one request. Any non-2xx response becomes an *APIError
// carrying the ProblemDetails detail when the body has one.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{Status: resp.StatusCode}
		var problem struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&problem); decodeErr == nil {
			apiErr.Detail = problem.Detail
			if apiErr.Detail == "" {
				apiErr.Detail = problem.Title
			}
		}
		if apiErr.Detail == "" {
			apiErr.Detail = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
