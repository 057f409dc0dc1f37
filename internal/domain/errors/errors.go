package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds. Handlers map them to HTTP status with errors.Is.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrBusinessRule     = errors.New("business rule violated")
	ErrConflict         = errors.New("conflict")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidOperation = errors.New("invalid operation")
)

// NotFoundError reports a missing entity by kind and id.
type NotFoundError struct {
	Entity string
	ID     string
}

// NotFound builds a NotFoundError.
func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field errors. The zero value has no errors.
type ValidationError struct {
	Errors []FieldError
}

// Add records a failure for field.
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// Merge appends every error of other, prefixing fields with prefix (e.g. "positions[2]").
func (e *ValidationError) Merge(prefix string, other *ValidationError) {
	if other == nil {
		return
	}
	for _, fe := range other.Errors {
		field := fe.Field
		if prefix != "" {
			field = prefix + "." + fe.Field
		}
		e.Add(field, fe.Message)
	}
}

// HasErrors reports whether any field error was recorded.
func (e *ValidationError) HasErrors() bool { return e != nil && len(e.Errors) > 0 }

// Err returns e when it has errors and nil otherwise, so callers can `return v.Err()`.
func (e *ValidationError) Err() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid returns a ValidationError with a single field failure.
func Invalid(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

// kindError carries a message and one of the sentinel kinds.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

func (e *kindError) Unwrap() error { return e.kind }

// BusinessRule reports a violated domain rule.
func BusinessRule(format string, args ...any) error {
	return &kindError{kind: ErrBusinessRule, msg: fmt.Sprintf(format, args...)}
}

// Conflict reports a state conflict, typically a duplicate key.
func Conflict(format string, args ...any) error {
	return &kindError{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

// InvalidArgument reports a malformed argument that is not tied to a single field.
func InvalidArgument(format string, args ...any) error {
	return &kindError{kind: ErrInvalidArgument, msg: fmt.Sprintf(format, args...)}
}

// InvalidOperation reports an operation not allowed in the current state.
func InvalidOperation(format string, args ...any) error {
	return &kindError{kind: ErrInvalidOperation, msg: fmt.Sprintf(format, args...)}
}
