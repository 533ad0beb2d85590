package queryir

import (
	"errors"
	"fmt"
)

// Error represents a search compilation error.
//
// Compilation errors are programming or query-construction errors detected
// at compile time. None of them is transient:
//   - Unmappable field: no configured registry knows the field
//   - Invalid operand: a constant cannot be encoded for its column
//   - Malformed term: wrong operand count, empty composite, missing column
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Field is the logical field involved, if any.
	Field Field

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause (optional).
	Err error
}

// ErrorCode categorizes compilation errors.
type ErrorCode string

const (
	// ErrCodeUnmappableField indicates a field absent from every configured registry.
	ErrCodeUnmappableField ErrorCode = "UNMAPPABLE_FIELD"

	// ErrCodeInvalidOperand indicates a constant that cannot be encoded for its column.
	ErrCodeInvalidOperand ErrorCode = "INVALID_OPERAND"

	// ErrCodeMalformedTerm indicates a structural violation in the term tree.
	ErrCodeMalformedTerm ErrorCode = "MALFORMED_TERM"
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, msg, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewUnmappableFieldError creates an Error for an unknown field.
func NewUnmappableFieldError(field Field) *Error {
	return &Error{
		Code:    ErrCodeUnmappableField,
		Field:   field,
		Message: "field is not known to any configured registry",
	}
}

// NewInvalidOperandError creates an Error for a constant that cannot be encoded.
func NewInvalidOperandError(field Field, err error) *Error {
	return &Error{
		Code:    ErrCodeInvalidOperand,
		Field:   field,
		Message: "cannot encode operand",
		Err:     err,
	}
}

// NewMalformedTermError creates an Error for a structural violation.
func NewMalformedTermError(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeMalformedTerm,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsUnmappableField returns true if the error is an unmappable field error.
// Uses errors.As to handle wrapped errors.
func IsUnmappableField(err error) bool {
	return hasCode(err, ErrCodeUnmappableField)
}

// IsInvalidOperand returns true if the error is an invalid operand error.
func IsInvalidOperand(err error) bool {
	return hasCode(err, ErrCodeInvalidOperand)
}

// IsMalformedTerm returns true if the error is a malformed term error.
func IsMalformedTerm(err error) bool {
	return hasCode(err, ErrCodeMalformedTerm)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
