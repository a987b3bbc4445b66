package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5) // 10 per minute, burst of 5
	defer rl.Stop()

	ip := "192.0.2.1"

	// First 5 requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		if !rl.Allow(ip) {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 6th request should be rate limited (exceeded burst)
	if rl.Allow(ip) {
		t.Error("Request 6 should be rate limited")
	}
}

func TestRateLimiter_DifferentClients(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	first := "192.0.2.1"
	second := "192.0.2.2"

	// Exhaust the first client's burst
	for i := 0; i < 3; i++ {
		if !rl.Allow(first) {
			t.Errorf("First client request %d should be allowed", i+1)
		}
	}

	if rl.Allow(first) {
		t.Error("First client should be rate limited")
	}

	// The second client still has its full burst
	for i := 0; i < 3; i++ {
		if !rl.Allow(second) {
			t.Errorf("Second client request %d should be allowed", i+1)
		}
	}
}

func TestRateLimitMiddleware_AllowsWithinLimit(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(60, 5)
	defer rl.Stop()

	handlerCalled := false
	handler := func(c echo.Context) error {
		handlerCalled = true
		return c.String(http.StatusOK, "OK")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("X-Real-IP", "192.0.2.1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := rl.Middleware()(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !handlerCalled {
		t.Error("Handler should be called within the limit")
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestRateLimitMiddleware_RejectsOverLimit(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(1, 1)
	defer rl.Stop()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	newContext := func() (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		req.Header.Set("X-Real-IP", "192.0.2.1")
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	c, rec := newContext()
	if err := rl.Middleware()(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	c, rec = newContext()
	if err := rl.Middleware()(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", rec.Code)
	}
}

func TestRateLimiter_RemoveStale(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5)
	defer rl.Stop()

	rl.Allow("192.0.2.1")

	rl.mu.Lock()
	entry := rl.limiters["192.0.2.1"]
	entry.lastSeen = entry.lastSeen.Add(-2 * LimiterTTL)
	rl.mu.Unlock()

	rl.removeStale()

	rl.mu.RLock()
	_, exists := rl.limiters["192.0.2.1"]
	rl.mu.RUnlock()

	if exists {
		t.Error("Expected stale limiter to be removed")
	}
}
