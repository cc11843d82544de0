// Package errors defines error types and utilities for the Tabular driver
package errors

import (
	"errors"
	"fmt"
)

// Common errors that can occur while building and dispatching queries
var (
	// ErrInvalidQuery is returned when a query cannot be serialized
	ErrInvalidQuery = errors.New("invalid query")

	// ErrEmptyGroup is returned when a logic group has no children
	ErrEmptyGroup = errors.New("logic group has no children")

	// ErrSequenceValue is returned when a sequence operator is given a
	// scalar value or an empty sequence
	ErrSequenceValue = errors.New("operator requires a non-empty sequence value")

	// ErrScalarValue is returned when a scalar operator is given a sequence
	ErrScalarValue = errors.New("operator requires a single scalar value")

	// ErrTransport is returned when the HTTP round-trip itself fails
	ErrTransport = errors.New("transport failure")

	// ErrDecode is returned when a response body does not match the
	// expected shape for its query type
	ErrDecode = errors.New("response decode failed")

	// ErrNoSlot is returned when a multi-response handle is out of range
	ErrNoSlot = errors.New("no response slot for handle")
)

// InvalidQueryError reports a malformed filter tree or a mismatched
// operator/value arity. It is raised at serialization time and never sent
// over the wire.
type InvalidQueryError struct {
	Field string // offending field name, if any
	Op    string // offending operator token, if any
	Err   error  // underlying sentinel
}

func (e *InvalidQueryError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("tabular: invalid query: field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("tabular: invalid query: %v", e.Err)
}

func (e *InvalidQueryError) Unwrap() error { return e.Err }

// Is matches both the underlying sentinel and ErrInvalidQuery
func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery || errors.Is(e.Err, target)
}

// NewInvalidQuery creates an InvalidQueryError for the given field and operator
func NewInvalidQuery(field, op string, err error) *InvalidQueryError {
	return &InvalidQueryError{Field: field, Op: op, Err: err}
}

// APIError reports a non-ok response from the service. A response was
// received, which distinguishes it from TransportError.
type APIError struct {
	StatusCode    int    // HTTP status code, e.g. 401
	StatusMessage string // HTTP status message, e.g. "Unauthorized"
	ErrorType     string // service error type token, if present
	Message       string // service error message, if present
	URL           string // the exact request URL attempted
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tabular: api error %d %s: %s", e.StatusCode, e.StatusMessage, e.Message)
	}
	return fmt.Sprintf("tabular: api error %d %s", e.StatusCode, e.StatusMessage)
}

// TransportError reports a network/connection failure before any response
// was received.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("tabular: transport error for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport || errors.Is(e.Err, target)
}

// DecodeError reports a response body that did not match the expected shape.
// In batched mode it applies per-slot.
type DecodeError struct {
	Shape string // expected shape tag
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tabular: decode error for shape %q: %v", e.Shape, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode || errors.Is(e.Err, target)
}

// NewDecode creates a DecodeError for the given shape tag
func NewDecode(shape string, err error) *DecodeError {
	return &DecodeError{Shape: shape, Err: err}
}

// IsInvalidQuery checks if an error was raised at serialization time
func IsInvalidQuery(err error) bool {
	return errors.Is(err, ErrInvalidQuery)
}

// IsTransport checks if an error indicates a network-level failure
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsDecode checks if an error indicates a shape mismatch
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

// AsAPIError extracts an APIError if the error chain carries one
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
