// Package sociavault is a client for the SociaVault social-media scraping API.
// It covers authenticated requests, rate-limit aware retries and cursor
// pagination; per-platform payload handling lives in the callers.
package sociavault

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/tickersocial/tickersocial/config"
)

// ErrorKind classifies one failed API request.
type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindTimeout
	KindRateLimited
	KindAuthFailed
	KindInsufficientQuota
	KindForbidden
	KindHTTP
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport error"
	case KindTimeout:
		return "request timeout"
	case KindRateLimited:
		return "rate limited"
	case KindAuthFailed:
		return "authentication failed"
	case KindInsufficientQuota:
		return "insufficient credits"
	case KindForbidden:
		return "access forbidden"
	case KindHTTP:
		return "http error"
	}
	return "unknown"
}

// APIError is the typed outcome of a failed SociaVault request.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("sociavault: %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("sociavault: %s: %s", e.Kind, e.Message)
}

// Retryable reports whether the request may be retried with backoff.
// Only rate limiting and timeouts qualify; everything else is terminal.
func (e *APIError) Retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindTimeout
}

// Fatal reports outcomes that should abort the whole run rather than just a
// single source: credential and quota problems.
func (e *APIError) Fatal() bool {
	switch e.Kind {
	case KindAuthFailed, KindInsufficientQuota, KindForbidden:
		return true
	}
	return false
}

// RetryConfig configures retry behavior for retryable outcomes.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
	}
}

// backoffDelay returns the delay before retry attempt n (0-based):
// BaseDelay * 2^n.
func backoffDelay(cfg RetryConfig, attempt int) time.Duration {
	return cfg.BaseDelay << uint(attempt)
}

// Client handles SociaVault API operations.
type Client struct {
	client  *resty.Client
	limiter *rate.Limiter
	retry   RetryConfig
}

// NewClient creates an authenticated SociaVault client. Requests are spaced by
// a politeness limiter because the API rate-limits per key.
func NewClient(cfg *config.Config) *Client {
	rc := resty.New()
	rc.SetBaseURL(cfg.APIBaseURL)
	rc.SetTimeout(cfg.RequestTimeout)
	rc.SetHeader("X-API-Key", cfg.SociaVaultAPIKey)
	rc.SetHeader("Content-Type", "application/json")

	return &Client{
		client:  rc,
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		retry: RetryConfig{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  cfg.RetryBaseDelay,
		},
	}
}

// Get performs an authenticated GET with retry on rate-limit and timeout
// outcomes. Fatal outcomes (401/402/403 and other HTTP errors) return
// immediately as *APIError.
func (c *Client) Get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	var lastErr *APIError

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(c.retry, attempt-1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, err := c.do(ctx, path, params)
		if err == nil {
			return body, nil
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return nil, err
		}
		if !apiErr.Retryable() {
			return nil, apiErr
		}
		lastErr = apiErr
	}

	return nil, fmt.Errorf("retries exhausted after %d attempts: %w", c.retry.MaxRetries+1, lastErr)
}

// do issues a single request and classifies the outcome.
func (c *Client) do(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			return nil, &APIError{Kind: KindTimeout, Message: err.Error()}
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &APIError{Kind: KindTimeout, Message: err.Error()}
		}
		return nil, &APIError{Kind: KindTransport, Message: err.Error()}
	}

	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		return resp.Body(), nil
	}

	kind := KindHTTP
	switch status {
	case 401:
		kind = KindAuthFailed
	case 402:
		kind = KindInsufficientQuota
	case 403:
		kind = KindForbidden
	case 429:
		kind = KindRateLimited
	}

	return nil, &APIError{Kind: kind, Status: status, Message: truncate(resp.String(), 200)}
}

// Credits is the response of the zero-cost quota probe.
type Credits struct {
	Credits int `json:"credits"`
}

// CheckCredits returns the remaining API credits (the call itself is free).
func (c *Client) CheckCredits(ctx context.Context) (*Credits, error) {
	body, err := c.Get(ctx, "/account/credits", nil)
	if err != nil {
		return nil, err
	}
	var credits Credits
	if err := unmarshal(body, &credits); err != nil {
		return nil, fmt.Errorf("parse credits response: %w", err)
	}
	return &credits, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
