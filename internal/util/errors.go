package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrMalformed indicates a note export file could not be decoded
	ErrMalformed = errors.New("malformed export")

	// ErrNotFound indicates a required resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrLookupFailed indicates a music catalog lookup failed
	ErrLookupFailed = errors.New("lookup failed")
)
