package junction

import "fmt"

// ErrorCode represents specific validation failures at the controller boundary
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Direction label is not one of N, E, S, W
	ErrCodeInvalidDirection
	// Queue value is negative or not an integer
	ErrCodeInvalidCount
	// Configured duration is zero or negative
	ErrCodeInvalidDuration
	// Mode is not a known scheduling policy
	ErrCodeInvalidMode
	// Control action is not start, pause or reset
	ErrCodeInvalidAction
)

// ValidationError represents a rejected boundary input
type ValidationError struct {
	Code    ErrorCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s", e.Field, e.Message)
}

// NewInvalidDirectionError creates an error for an unknown direction label
func NewInvalidDirectionError(label string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidDirection,
		Field:   "direction",
		Message: fmt.Sprintf("unknown direction '%s'", label),
	}
}

// NewInvalidCountError creates an error for a negative queue value
func NewInvalidCountError(d Direction, value int) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidCount,
		Field:   d.String(),
		Message: fmt.Sprintf("queue count %d must be non-negative", value),
	}
}

// NewInvalidDurationError creates an error for a non-positive duration setting
func NewInvalidDurationError(field string, value float64) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidDuration,
		Field:   field,
		Message: fmt.Sprintf("duration %v must be positive", value),
	}
}

// NewInvalidModeError creates an error for an unknown scheduling mode
func NewInvalidModeError(value string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidMode,
		Field:   "mode",
		Message: fmt.Sprintf("unknown mode '%s'", value),
	}
}

// NewInvalidActionError creates an error for an unknown control action
func NewInvalidActionError(value string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidAction,
		Field:   "action",
		Message: fmt.Sprintf("unknown action '%s'", value),
	}
}

// CodeOf returns the ErrorCode carried by err, or ErrCodeNone
func CodeOf(err error) ErrorCode {
	verr, ok := err.(*ValidationError)
	if !ok {
		return ErrCodeNone
	}
	return verr.Code
}
