// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across client layers.
var (
	// ErrNoSession indicates no signed-in user is available; the caller
	// should point the user at the login command.
	ErrNoSession = errors.New("no session (login required)")

	// ErrUnauthorized indicates the backend rejected the session token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDecode indicates a response body that did not match the expected schema.
	ErrDecode = errors.New("malformed response")

	// ErrValidation indicates a required form field is missing or unusable.
	ErrValidation = errors.New("validation failed")
)
