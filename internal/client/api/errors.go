package api

import "errors"

var (
	// ErrUnavailable wraps transport-level failures (connection refused,
	// DNS, timeout). The underlying cause is preserved in the wrapped text.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is returned for HTTP 401: a missing, invalid, or
	// expired bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned for HTTP 404.
	ErrNotFound = errors.New("not found")
)
