// Package api implements the HTTP request client that is the sole egress
// point for all backend calls. It owns auth header injection, per-attempt
// timeouts, retry with exponential backoff, and the typed error taxonomy;
// payloads themselves are opaque JSON to this layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/botdesk/botdesk/internal/config"
	"github.com/botdesk/botdesk/internal/token"
)

// Client issues requests against the backend base URL. All resource clients
// share one instance so token state, interceptors, and transport are
// process-wide.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     token.Source
	log        *slog.Logger
	debug      bool

	timeout        time.Duration
	maxRetries     int
	retryBaseDelay time.Duration

	reqInterceptors  []RequestInterceptor
	respInterceptors []ResponseInterceptor
}

// New creates a Client from the API config. The transport is wrapped with
// otelhttp so spans are emitted when a trace provider is installed.
func New(cfg config.API, tokens token.Source, log *slog.Logger) *Client {
	c := &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			// No client-level timeout: each attempt is bounded by its own
			// context deadline so retries get a fresh budget.
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens:         tokens,
		log:            log,
		debug:          cfg.Debug,
		timeout:        cfg.Timeout,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
	}
	c.Use(RequestIDInterceptor())
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do issues one logical request, retrying retryable failures up to the
// configured bound. The returned envelope always has Success set; every
// failure is a typed *Error.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Envelope, error) {
	o := requestOptions{
		timeout:        c.timeout,
		maxRetries:     c.maxRetries,
		retryBaseDelay: c.retryBaseDelay,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		env, err := c.attempt(ctx, method, path, payload, &o, attempt)
		if err == nil {
			return env, nil
		}
		lastErr = err

		// A canceled caller context is final regardless of classification.
		if ctx.Err() != nil {
			return nil, lastErr
		}

		apiErr, ok := AsError(err)
		if !ok || !apiErr.Retryable() || attempt == o.maxRetries {
			return nil, lastErr
		}

		delay := o.retryBaseDelay << attempt
		if c.debug {
			c.log.Debug("retrying request",
				"method", method, "path", path,
				"attempt", attempt+1, "delay", delay, "error", err)
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// attempt performs a single bounded attempt of the request.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, o *requestOptions, attempt int) (*Envelope, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range o.headers {
		req.Header.Set(k, v)
	}

	for _, in := range c.reqInterceptors {
		if err := in(req); err != nil {
			return nil, fmt.Errorf("request interceptor: %w", err)
		}
	}

	// Auth runs after user interceptors so SkipAuth stays authoritative.
	if !o.skipAuth {
		if tok := c.tokens.AccessToken(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The attempt deadline expiring is a timeout; anything else that
		// never produced a response is a network failure.
		if attemptCtx.Err() != nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			c.logAttempt(method, path, http.StatusRequestTimeout, attempt, err)
			return nil, timeoutError()
		}
		c.logAttempt(method, path, 0, attempt, err)
		return nil, networkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	for _, in := range c.respInterceptors {
		if err := in(resp); err != nil {
			return nil, networkError(err)
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		// The deadline can also expire mid-body, after headers arrived.
		if attemptCtx.Err() != nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			c.logAttempt(method, path, http.StatusRequestTimeout, attempt, err)
			return nil, timeoutError()
		}
		return nil, networkError(err)
	}

	c.logAttempt(method, path, resp.StatusCode, attempt, nil)

	if resp.StatusCode >= 400 {
		return nil, c.failure(resp.StatusCode, data)
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &Error{
			Status:  resp.StatusCode,
			Kind:    KindUnknown,
			Message: "invalid response body",
			Body:    data,
		}
	}
	if !env.Success {
		return nil, &Error{
			Status:  resp.StatusCode,
			Kind:    KindUnknown,
			Message: env.failureMessage(),
			Code:    env.Code,
			Body:    data,
		}
	}
	return &env, nil
}

// failure builds the typed error for a non-2xx response, pulling the message
// and code from the failure envelope when the body parses as one.
func (c *Client) failure(status int, body []byte) *Error {
	apiErr := &Error{
		Status:  status,
		Kind:    classify(status),
		Message: http.StatusText(status),
		Body:    body,
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if msg := env.failureMessage(); msg != "" {
			apiErr.Message = msg
		}
		apiErr.Code = env.Code
	}
	return apiErr
}

// logAttempt emits one debug record per attempt when debug logging is on.
// Tokens are never logged.
func (c *Client) logAttempt(method, path string, status, attempt int, err error) {
	if !c.debug {
		return
	}
	if err != nil {
		c.log.Debug("request attempt failed",
			"method", method, "path", path, "attempt", attempt, "error", err)
		return
	}
	c.log.Debug("request attempt",
		"method", method, "path", path, "attempt", attempt, "status", status)
}

// Call issues a request and decodes the envelope's data payload into T.
func Call[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) (T, error) {
	var out T
	env, err := c.Do(ctx, method, path, body, opts...)
	if err != nil {
		return out, err
	}
	if err := env.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
