package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Noten error code.
type ErrorCode string

const (
	ErrAmbiguousAddressing    ErrorCode = "AMBIGUOUS_ADDRESSING"    // 400
	ErrInvalidRequest         ErrorCode = "INVALID_REQUEST"         // 400
	ErrIndexOutOfRange        ErrorCode = "INDEX_OUT_OF_RANGE"      // 404
	ErrNotFound               ErrorCode = "NOT_FOUND"               // 404
	ErrNoActiveEdit           ErrorCode = "NO_ACTIVE_EDIT"          // 409
	ErrInternal               ErrorCode = "INTERNAL"                // 500
	ErrPersistenceUnavailable ErrorCode = "PERSISTENCE_UNAVAILABLE" // 503
)

// NotenError represents a structured error with code, status, and details.
type NotenError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any

	cause error
}

// Error implements the error interface.
func (e *NotenError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *NotenError) Unwrap() error {
	return e.cause
}

// NewAmbiguousAddressing creates a 400 error for when both id and index are provided.
func NewAmbiguousAddressing() *NotenError {
	return &NotenError{
		Code:    ErrAmbiguousAddressing,
		Status:  400,
		Message: "cannot specify both id and index; use one addressing mode",
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *NotenError {
	return &NotenError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewIndexOutOfRange creates a 404 error for a list index outside [0, length).
func NewIndexOutOfRange(index, length int) *NotenError {
	return &NotenError{
		Code:    ErrIndexOutOfRange,
		Status:  404,
		Message: fmt.Sprintf("note not found: index %d out of range (length %d)", index, length),
		Details: map[string]any{"index": index, "length": length},
	}
}

// NewNotFound creates a 404 error for when a note cannot be found by id.
func NewNotFound(id string) *NotenError {
	return &NotenError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("note not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewNoActiveEdit creates a 409 error when an edit is committed without being begun.
func NewNoActiveEdit() *NotenError {
	return &NotenError{
		Code:    ErrNoActiveEdit,
		Status:  409,
		Message: "no edit in progress",
	}
}

// NewPersistenceUnavailable wraps a key-value store failure.
func NewPersistenceUnavailable(err error) *NotenError {
	msg := "persistence unavailable"
	if err != nil {
		msg = fmt.Sprintf("persistence unavailable: %v", err)
	}
	return &NotenError{
		Code:    ErrPersistenceUnavailable,
		Status:  503,
		Message: msg,
		cause:   err,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *NotenError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &NotenError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		cause:   err,
	}
}

// Is checks if err (or anything it wraps) is a NotenError with the given code.
func Is(err error, code ErrorCode) bool {
	var nErr *NotenError
	if stderrors.As(err, &nErr) {
		return nErr.Code == code
	}
	return false
}

// As is a convenience around errors.As for *NotenError.
func As(err error) (*NotenError, bool) {
	var nErr *NotenError
	if stderrors.As(err, &nErr) {
		return nErr, true
	}
	return nil, false
}
