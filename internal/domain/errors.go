package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when an uploaded file is not a .json document
	ErrUnsupportedFormat = errors.New("unsupported file format, expected a .json document")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrSearchFailed is returned when query dispatch to the search backend fails
	ErrSearchFailed = errors.New("search request failed")

	// ErrBackendUnavailable is returned when the search backend cannot be reached
	ErrBackendUnavailable = errors.New("search backend unavailable")
)

// ParseError reports malformed catalog content, carrying the decoder message.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid catalog JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError rejects a catalog batch whose records are missing required
// fields. It reports how many records were invalid, not which ones.
type SchemaError struct {
	Invalid int
	Total   int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%d of %d products missing required fields", e.Invalid, e.Total)
}
