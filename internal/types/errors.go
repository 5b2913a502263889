package types

import "fmt"

// InputError reports missing or invalid request parameters. It is surfaced
// before any fetch happens so the caller can fix the filters and retry.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// NewInputError creates an InputError for the given parameter
func NewInputError(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}

// DataFetchError wraps a record-store failure. The engine propagates it
// untouched and performs no retry; retry policy belongs to the store layer.
type DataFetchError struct {
	Err error
}

func (e *DataFetchError) Error() string {
	return fmt.Sprintf("record store fetch failed: %v", e.Err)
}

func (e *DataFetchError) Unwrap() error { return e.Err }
