package sociavault

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tickersocial/tickersocial/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		APIBaseURL:       baseURL,
		SociaVaultAPIKey: "sv_test_key",
		RequestTimeout:   5 * time.Second,
		MaxRetries:       3,
		RetryBaseDelay:   1 * time.Millisecond,
	}
}

func TestGetSendsAPIKeyHeader(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	if _, err := client.Get(context.Background(), "/scrape/reddit/subreddit", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotKey != "sv_test_key" {
		t.Errorf("expected API key header, got %q", gotKey)
	}
}

func TestGetRetriesRateLimitThenSucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	body, err := client.Get(context.Background(), "/scrape/reddit/subreddit", nil)
	if err != nil {
		t.Fatalf("Get after retries: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if len(body) == 0 {
		t.Error("expected response body")
	}
}

func TestGetRateLimitExhaustion(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.Get(context.Background(), "/scrape/reddit/subreddit", nil)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	// Initial attempt plus MaxRetries retries.
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected wrapped *APIError, got %T: %v", err, err)
	}
	if apiErr.Kind != KindRateLimited {
		t.Errorf("expected rate limited kind, got %v", apiErr.Kind)
	}
}

func TestGetFatalStatusesNotRetried(t *testing.T) {
	cases := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusUnauthorized, KindAuthFailed},
		{http.StatusPaymentRequired, KindInsufficientQuota},
		{http.StatusForbidden, KindForbidden},
		{http.StatusInternalServerError, KindHTTP},
	}

	for _, tc := range cases {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(tc.status)
		}))

		client := NewClient(testConfig(srv.URL))
		_, err := client.Get(context.Background(), "/scrape/reddit/subreddit", nil)
		srv.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", tc.status)
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: expected *APIError, got %v", tc.status, err)
		}
		if apiErr.Kind != tc.kind {
			t.Errorf("status %d: expected kind %v, got %v", tc.status, tc.kind, apiErr.Kind)
		}
		if apiErr.Retryable() {
			t.Errorf("status %d: must not be retryable", tc.status)
		}
		if calls != 1 {
			t.Errorf("status %d: expected single call, got %d", tc.status, calls)
		}
	}
}

func TestBackoffMonotonicAndBounded(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 3, BaseDelay: 2 * time.Second}

	var prev time.Duration
	for attempt := 0; attempt < cfg.MaxRetries; attempt++ {
		d := backoffDelay(cfg, attempt)
		if d < prev {
			t.Errorf("delay decreased at attempt %d: %v < %v", attempt, d, prev)
		}
		prev = d
	}

	max := backoffDelay(cfg, cfg.MaxRetries-1)
	if max != cfg.BaseDelay<<uint(cfg.MaxRetries-1) {
		t.Errorf("max delay should be base*2^(maxRetries-1), got %v", max)
	}
}

func TestCheckCredits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/account/credits" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"credits":42}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	credits, err := client.CheckCredits(context.Background())
	if err != nil {
		t.Fatalf("CheckCredits: %v", err)
	}
	if credits.Credits != 42 {
		t.Errorf("expected 42 credits, got %d", credits.Credits)
	}
}
