package api

import "time"

// requestOptions holds the per-request knobs, seeded from the client
// defaults before options are applied.
type requestOptions struct {
	timeout        time.Duration
	maxRetries     int
	retryBaseDelay time.Duration
	skipAuth       bool
	headers        map[string]string
}

// RequestOption customizes a single request.
type RequestOption func(*requestOptions)

// WithTimeout bounds each attempt of the request. Defaults to the client's
// configured timeout.
func WithTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) { o.timeout = d }
}

// WithMaxRetries caps reattempts of retryable failures. Zero disables
// retrying entirely.
func WithMaxRetries(n int) RequestOption {
	return func(o *requestOptions) { o.maxRetries = n }
}

// WithRetryBaseDelay sets the base of the exponential backoff between
// reattempts.
func WithRetryBaseDelay(d time.Duration) RequestOption {
	return func(o *requestOptions) { o.retryBaseDelay = d }
}

// WithSkipAuth suppresses the Authorization header even when a token is
// stored. Used by login, refresh, and health probes.
func WithSkipAuth() RequestOption {
	return func(o *requestOptions) { o.skipAuth = true }
}

// WithHeader sets an extra request header, overriding any default of the
// same name.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = map[string]string{}
		}
		o.headers[key] = value
	}
}
