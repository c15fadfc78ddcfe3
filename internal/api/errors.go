package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a request failure. Classification is client-side and a pure
// function of the HTTP status (or the transport failure mode); the backend
// never dictates it.
type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindAuthentication Kind = "AUTHENTICATION_ERROR"
	KindAuthorization  Kind = "AUTHORIZATION_ERROR"
	KindNotFound       Kind = "NOT_FOUND_ERROR"
	KindTimeout        Kind = "TIMEOUT_ERROR"
	KindServer         Kind = "SERVER_ERROR"
	KindNetwork        Kind = "NETWORK_ERROR"
	KindUnknown        Kind = "UNKNOWN_ERROR"
)

// Error is the typed failure surfaced for every non-2xx response or transport
// failure. Status is the HTTP status, or a synthetic one for failures that
// never produced a response (408 for timeouts, 500 otherwise).
type Error struct {
	Status  int
	Kind    Kind
	Message string
	Code    string
	Body    []byte // original response payload, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%d)", e.Kind, e.Status)
}

// Retryable reports whether the failure may succeed on a reattempt.
// Only server, timeout, and network failures qualify; every 4xx is terminal.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindServer, KindTimeout, KindNetwork:
		return true
	}
	return false
}

// classify maps an HTTP status to an error Kind.
func classify(status int) Kind {
	switch {
	case status == http.StatusBadRequest:
		return KindValidation
	case status == http.StatusUnauthorized:
		return KindAuthentication
	case status == http.StatusForbidden:
		return KindAuthorization
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// timeoutError builds the synthetic error for an attempt that hit its
// per-attempt deadline.
func timeoutError() *Error {
	return &Error{
		Status:  http.StatusRequestTimeout,
		Kind:    KindTimeout,
		Message: "request timed out",
	}
}

// networkError builds the synthetic error for a transport failure that never
// produced a response.
func networkError(err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Kind:    KindNetwork,
		Message: err.Error(),
	}
}

// AsError unwraps err into the typed *Error, if it is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is a typed error of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == kind
}
