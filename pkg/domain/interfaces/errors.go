package interfaces

import "errors"

// Sentinel errors shared by every Backend implementation
var (
	// ErrConflict is returned when the backend refuses a request pending
	// user confirmation, such as a second claim against the same lender
	ErrConflict = errors.New("conflict")

	// ErrNotFound is returned for unknown resource IDs
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when the backend rejects a request body
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedResponse is returned when a response body cannot be decoded
	// into the expected shape
	ErrMalformedResponse = errors.New("malformed response")
)
