package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// CodedError is an error that knows which HTTP status it maps to.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string { return e.msg }

func (e *CodedError) Code() int { return e.code }

var (
	ErrInvalidInput       = NewCodedError(http.StatusBadRequest, "invalid input")
	ErrCareerNotFound     = NewCodedError(http.StatusNotFound, "career not found")
	ErrEducationNotFound  = NewCodedError(http.StatusNotFound, "education path not found")
	ErrNoEducationOptions = NewCodedError(http.StatusUnprocessableEntity, "career has no education paths")
)

// ValidationError reports which input field was malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
