package domain

import "errors"

var (
	// ErrNotFound is returned when an event (or the event a speaker is added to) does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput wraps validation failures of event or speaker input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned by a TokenVerifier for a missing, malformed or expired token.
	ErrUnauthorized = errors.New("unauthorized")
)
