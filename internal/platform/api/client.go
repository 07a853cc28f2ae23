// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api implements the authenticated HTTP client for the storefront API.

Every remote call in Velora flows through this package. It owns the concerns
that are identical across endpoints so that domain clients stay declarative:

  - Auth: Injects the bearer access token from the token store.
  - Normalization: Every failure surfaces as a single [apperr.AppError] kind.
  - Resilience: Bounded, jittered retry on transient failures only, plus an
    optional outbound rate limiter.
  - Tracing: Stamps each logical request with a time-ordered X-Request-ID.

The client never refreshes tokens, never queues requests, and performs no
schema validation on responses — the server contract is trusted.
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/velora/internal/platform/apperr"
	"github.com/taibuivan/velora/internal/platform/tokenstore"
	"github.com/taibuivan/velora/pkg/uuid"
)

// Prefix is the versioned path root every endpoint lives under.
const Prefix = "/api/v1"

// retryBaseDelay is the backoff unit for attempt n (full jitter over
// retryBaseDelay * 2^n).
const retryBaseDelay = 250 * time.Millisecond

// # Client Construction

// Client issues authenticated JSON requests against a configured base URL.
//
// # Concurrency
//
// Client is safe for concurrent use; it holds no per-request state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     tokenstore.Store
	limiter    *rate.Limiter
	maxRetries int
	logger     *slog.Logger
}

// Option customizes a [Client] at construction time.
type Option func(*Client)

// WithTimeout bounds each individual HTTP attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithMaxRetries caps additional attempts after a transient failure.
// Zero disables retrying entirely.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithRateLimit throttles outbound requests to rps per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithHTTPClient swaps the underlying transport (tests, instrumentation).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient constructs a [Client] for the given base URL and token store.
func NewClient(baseURL string, tokens tokenstore.Store, logger *slog.Logger, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokens:     tokens,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// # Per-Request Options

// requestConfig carries per-call customization.
type requestConfig struct {
	headers http.Header
}

// RequestOption customizes a single request.
type RequestOption func(*requestConfig)

// WithHeader adds a header to the request. Caller-supplied headers are merged
// after the defaults but can never override the Authorization header.
func WithHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		if rc.headers == nil {
			rc.headers = http.Header{}
		}
		rc.headers.Set(key, value)
	}
}

// WithIdempotencyKey stamps the request with an Idempotency-Key so the server
// can de-duplicate retried mutations.
func WithIdempotencyKey(key string) RequestOption {
	return WithHeader("Idempotency-Key", key)
}

// # Verb Sugar

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues a POST request with a JSON body, decoding the response into out
// (out may be nil when the response body is irrelevant).
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, path, body, out, opts...)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, opts...)
}

// # Request Execution

/*
Do executes one logical API request.

Description: Builds baseURL+path, injects default headers and the bearer
token, then runs up to 1+maxRetries attempts. Only transport errors and
502/503/504 responses are retried; 4xx application errors fail immediately.

Parameters:
  - ctx: context.Context for cancellation/deadline of the whole sequence
  - method: HTTP verb
  - path: Endpoint path (prefixed with [Prefix] by the caller)
  - body: Optional value marshaled to JSON
  - out: Optional pointer receiving the decoded 2xx response body
  - opts: Per-request customization

Returns:
  - error: *apperr.AppError for every failure mode
*/
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	rc := &requestConfig{}
	for _, opt := range opts {
		opt(rc)
	}

	// Marshal the body once; each attempt re-reads the same bytes.
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return apperr.Internal(fmt.Errorf("api_encode_failed: %w", err))
		}
	}

	// One request ID per logical call, shared across its retries, so the
	// server can correlate the attempts.
	requestID := uuid.New()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.backoff(ctx, attempt); err != nil {
				return apperr.Transport(err)
			}
		}

		lastErr = c.once(ctx, method, path, payload, out, rc, requestID)
		if lastErr == nil {
			return nil
		}
		if !apperr.IsRetryable(lastErr) {
			return lastErr
		}

		c.logger.Debug("api_retrying",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("attempt", attempt+1),
			slog.String("request_id", requestID),
		)
	}

	return lastErr
}

// once performs a single HTTP attempt.
func (c *Client) once(ctx context.Context, method, path string, payload []byte, out any, rc *requestConfig, requestID string) error {

	// Respect the outbound rate limit before spending a connection.
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return apperr.Transport(err)
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperr.Internal(fmt.Errorf("api_build_request_failed: %w", err))
	}

	// Default headers first, then caller headers, then auth last so that a
	// caller-supplied Authorization can never shadow the session token.
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-Request-ID", requestID)
	for key, values := range rc.headers {
		for _, value := range values {
			request.Header.Set(key, value)
		}
	}

	pair, err := c.tokens.Load(ctx)
	if err == nil && pair.AccessToken != "" {
		request.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	}

	start := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		return apperr.Transport(err)
	}
	defer func() { _ = response.Body.Close() }()

	c.logger.Debug("api_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
		slog.String("request_id", requestID),
	)

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return apperr.Transport(err)
	}

	// Non-2xx: surface the server's own message when one can be parsed.
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return apperr.Request(response.StatusCode, errorMessage(response.StatusCode, raw))
	}

	// 2xx with no consumer, or an intentionally empty body.
	if out == nil || len(raw) == 0 || response.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return apperr.Internal(fmt.Errorf("api_decode_failed: %w", err))
	}

	return nil
}

// backoff sleeps for a full-jitter delay before retry attempt n, respecting
// context cancellation.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	ceiling := retryBaseDelay << (attempt - 1)
	delay := time.Duration(rand.Int63n(int64(ceiling)) + 1)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// # Error Body Parsing

// errorBody is the upstream error envelope ({"detail": "..."}).
type errorBody struct {
	Detail string `json:"detail"`
}

// errorMessage extracts a human-readable message from a non-2xx body,
// falling back to a generic message carrying the status code.
func errorMessage(status int, raw []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return fmt.Sprintf("HTTP %d", status)
}
