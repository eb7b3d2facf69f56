package rest

import "errors"

// Domain-specific errors for Core REST operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrRequestFailed is returned when the HTTP request could not complete
	// (connection refused, timeout, DNS failure).
	ErrRequestFailed = errors.New("rest: request failed")

	// ErrBadStatus is returned when Core answers with a non-2xx status.
	ErrBadStatus = errors.New("rest: unexpected status")

	// ErrBadResponse is returned when a response body cannot be decoded.
	ErrBadResponse = errors.New("rest: malformed response")
)
