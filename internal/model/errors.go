package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by the store, importer, quiz engine and UI layers.
var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrSessionComplete = errors.New("quiz session is complete")
	ErrImport          = errors.New("import failed")
	ErrEmptyQuiz       = errors.New("quiz needs at least one word")
	ErrNotEnoughWords  = errors.New("not enough words for this quiz mode")
	ErrUnknownMode     = errors.New("unknown quiz mode")
)

// FieldError describes a validation problem with a single input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects field-level validation problems.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}
