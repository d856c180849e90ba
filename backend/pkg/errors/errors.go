package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents bad or missing input fields; reported to the
	// caller before any store is touched
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNotFound represents an unknown identity
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeConflict represents duplicate email, duplicate review or self-action errors
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeSync represents a graph-store operation failing mid-orchestration
	ErrorTypeSync ErrorType = "sync"
	// ErrorTypeStore represents a store transport or timeout failure
	ErrorTypeStore ErrorType = "store"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// NewValidation creates a validation error for a rejected input field
func NewValidation(message string) *BaseError {
	return NewBaseError(ErrorTypeValidation, message, nil)
}

// NewValidationf creates a validation error with a formatted message
func NewValidationf(format string, args ...interface{}) *BaseError {
	return NewBaseError(ErrorTypeValidation, fmt.Sprintf(format, args...), nil)
}

// NewNotFound creates a not-found error for an unknown identity
func NewNotFound(resource, id string) *BaseError {
	return NewBaseError(ErrorTypeNotFound, fmt.Sprintf("%s not found: %s", resource, id), nil)
}

// NewConflict creates a conflict error
func NewConflict(message string) *BaseError {
	return NewBaseError(ErrorTypeConflict, message, nil)
}

// NewSyncFailure creates a sync error for a cross-store operation that failed
// mid-flight. The operation name identifies which orchestration step broke.
func NewSyncFailure(operation string, err error) *BaseError {
	return NewBaseError(ErrorTypeSync, fmt.Sprintf("store synchronization failed during %s", operation), err)
}

// NewStoreUnavailable creates a store error for transport or timeout failures
func NewStoreUnavailable(store string, err error) *BaseError {
	return NewBaseError(ErrorTypeStore, fmt.Sprintf("%s store unavailable", store), err)
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	if baseErr, ok := err.(*BaseError); ok {
		return baseErr.Type == errType
	}
	// Check wrapped errors
	if wrapped, ok := err.(interface{ Unwrap() error }); ok {
		if inner := wrapped.Unwrap(); inner != nil {
			return IsErrorType(inner, errType)
		}
	}
	return false
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool { return IsErrorType(err, ErrorTypeValidation) }

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool { return IsErrorType(err, ErrorTypeNotFound) }

// IsConflict reports whether err is a conflict error
func IsConflict(err error) bool { return IsErrorType(err, ErrorTypeConflict) }

// IsSyncFailure reports whether err is a sync failure. Store unavailability is
// treated as a sync failure for orchestration purposes.
func IsSyncFailure(err error) bool {
	return IsErrorType(err, ErrorTypeSync) || IsErrorType(err, ErrorTypeStore)
}
