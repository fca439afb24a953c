package model

import "fmt"

// ValidationError reports the first structural defect of an invoice.
// Error returns Message unchanged: callers match on the text.
type ValidationError struct {
	Field   string
	Line    int // 1-based line number for line-level failures, 0 otherwise
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new invoice-level validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewLineValidationError creates a validation error for the 1-based line n
func NewLineValidationError(n int, field, message string) *ValidationError {
	return &ValidationError{
		Field:   fmt.Sprintf("lines[%d].%s", n-1, field),
		Line:    n,
		Message: fmt.Sprintf("Line %d: %s", n, message),
	}
}

// ParseError represents input that could not be decoded or converted
type ParseError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(field, message string, cause error) *ParseError {
	return &ParseError{
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}
