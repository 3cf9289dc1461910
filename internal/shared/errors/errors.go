package errors

import "errors"

// Domain errors
var (
	// Input errors
	ErrInvalidURL = errors.New("invalid URL format")
	ErrMissingURL = errors.New("URL is required")
)
