// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNoSession indicates no authenticated session is available.
var ErrNoSession = errors.New("no active session")
