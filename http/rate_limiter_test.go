package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, capacity int, refill time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	limiter := NewRateLimiter(capacity, refill)
	t.Cleanup(limiter.Stop)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	return limiter, &now
}

func TestRateLimiter_BurstThenRefill(t *testing.T) {
	limiter, now := newTestLimiter(t, 2, time.Minute)

	for i := 0; i < 2; i++ {
		if ok, _ := limiter.Allow("10.0.0.1"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, wait := limiter.Allow("10.0.0.1")
	if ok {
		t.Fatal("third request should be limited")
	}
	if wait != 30*time.Second {
		t.Errorf("expected 30s wait, got %s", wait)
	}

	if ok, _ := limiter.Allow("10.0.0.2"); !ok {
		t.Error("other clients have their own bucket")
	}

	*now = now.Add(30 * time.Second)
	if ok, _ := limiter.Allow("10.0.0.1"); !ok {
		t.Error("a token should be back after 30s")
	}
	if ok, _ := limiter.Allow("10.0.0.1"); ok {
		t.Error("only one token should have been refilled")
	}
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	limiter, now := newTestLimiter(t, 1, time.Minute)

	limiter.Allow("10.0.0.1")
	*now = now.Add(idleBucketTTL + time.Second)
	limiter.evictIdle()

	if len(limiter.clients) != 0 {
		t.Errorf("expected idle bucket to be evicted, %d left", len(limiter.clients))
	}

	limiter.Stop()
	limiter.Stop()
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)
	router := newTestRouter(t, limiter)

	first := do(t, router, http.MethodGet, "/careers", "")
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	second := do(t, router, http.MethodGet, "/careers", "")
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") != "60" {
		t.Errorf("expected Retry-After 60, got %q", second.Header().Get("Retry-After"))
	}

	if health := do(t, router, http.MethodGet, "/health", ""); health.Code != http.StatusOK {
		t.Errorf("health must not be rate limited, got %d", health.Code)
	}
}

func TestRequestMiddleware(t *testing.T) {
	panicking := RequestMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "req-42")
	w := httptest.NewRecorder()
	panicking.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-42" {
		t.Errorf("expected request id to be echoed, got %q", w.Header().Get(requestIDHeader))
	}
}
