package errors

import (
	"net/http"
	"strings"
)

// FieldViolation pairs a field name with the constraint it violated.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every constraint violation of one input, in the
// order the fields are declared on the input struct. It implements AppError.
type ValidationError struct {
	violations []FieldViolation
}

// NewValidationError creates a ValidationError from an ordered violation list.
func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{violations: violations}
}

// Violations returns the ordered list of field violations.
func (e *ValidationError) Violations() []FieldViolation {
	return e.violations
}

// Error renders all violations as ['field1' -> msg1,'field2' -> msg2].
func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range e.violations {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('\'')
		sb.WriteString(v.Field)
		sb.WriteString("' -> ")
		sb.WriteString(v.Message)
	}
	sb.WriteByte(']')

	return sb.String()
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the user-friendly error message
func (e *ValidationError) Message() string {
	return "input validation failed"
}

// Details returns the rendered violation list.
func (e *ValidationError) Details() string {
	return e.Error()
}
