package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_RendersViolationsInOrder(t *testing.T) {
	err := NewValidationError(
		FieldViolation{Field: "username", Message: "is required"},
		FieldViolation{Field: "email", Message: "must be a valid email address"},
	)

	assert.Equal(t, "['username' -> is required,'email' -> must be a valid email address]", err.Error())
	assert.Equal(t, err.Error(), err.Details())
}

func TestValidationError_SingleViolation(t *testing.T) {
	err := NewValidationError(FieldViolation{Field: "title", Message: "is required"})

	assert.Equal(t, "['title' -> is required]", err.Error())
}

func TestValidationError_ImplementsAppError(t *testing.T) {
	var appErr AppError = NewValidationError()

	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}
