package usecase

import (
	"testing"

	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidationError(t *testing.T, err error) *domainerrors.ValidationError {
	t.Helper()

	var vErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)

	return vErr
}

func TestValidateInput_RegisterValid(t *testing.T) {
	err := ValidateInput(&RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})

	require.NoError(t, err)
}

func TestValidateInput_PasswordlessRegisterValid(t *testing.T) {
	err := ValidateInput(&RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
	})

	require.NoError(t, err)
}

func TestValidateInput_AggregatesAllViolationsInDeclarationOrder(t *testing.T) {
	err := ValidateInput(&RegisterUserInput{
		Username: "ab",
		Email:    "not-an-email",
		Password: "short",
	})

	vErr := requireValidationError(t, err)
	violations := vErr.Violations()
	require.Len(t, violations, 3)
	assert.Equal(t, "username", violations[0].Field)
	assert.Equal(t, "email", violations[1].Field)
	assert.Equal(t, "password", violations[2].Field)
	assert.Equal(t, "must be at least 3 characters", violations[0].Message)
}

func TestValidateInput_LoginByUsernameOrEmail(t *testing.T) {
	require.NoError(t, ValidateInput(&LoginInput{
		Username: "alice",
		Password: "supersecret",
	}))

	require.NoError(t, ValidateInput(&LoginInput{
		Email:    "alice@example.com",
		Password: "supersecret",
	}))
}

func TestValidateInput_LoginWithoutIdentifierFails(t *testing.T) {
	err := ValidateInput(&LoginInput{Password: "supersecret"})

	vErr := requireValidationError(t, err)
	violations := vErr.Violations()
	require.Len(t, violations, 2)
	assert.Equal(t, "username", violations[0].Field)
	assert.Equal(t, "email", violations[1].Field)
}

func TestValidateInput_EmptyUpdateFails(t *testing.T) {
	err := ValidateInput(&UpdateUserInput{UserID: uuid.New().String()})

	vErr := requireValidationError(t, err)
	violations := vErr.Violations()
	require.Len(t, violations, 1)
	assert.Equal(t, "name", violations[0].Field)
	assert.Equal(t, "is required when no other field is provided", violations[0].Message)
}

func TestValidateInput_UpdateWithSingleFieldPasses(t *testing.T) {
	username := "newname"
	require.NoError(t, ValidateInput(&UpdateUserInput{
		UserID:   uuid.New().String(),
		Username: &username,
	}))
}

func TestValidateInput_MalformedTargetID(t *testing.T) {
	err := ValidateInput(&GetUserInput{UserID: "not-a-uuid"})

	vErr := requireValidationError(t, err)
	violations := vErr.Violations()
	require.Len(t, violations, 1)
	assert.Equal(t, "user_id", violations[0].Field)
	assert.Equal(t, "must be a valid UUID", violations[0].Message)
}

func TestValidateInput_EmptyTaskUpdateFails(t *testing.T) {
	err := ValidateInput(&UpdateTaskInput{ID: uuid.New().String()})

	vErr := requireValidationError(t, err)
	violations := vErr.Violations()
	require.Len(t, violations, 1)
	assert.Equal(t, "title", violations[0].Field)
}

func TestValidateInput_TaskCompletedAloneIsEnough(t *testing.T) {
	completed := true
	require.NoError(t, ValidateInput(&UpdateTaskInput{
		ID:        uuid.New().String(),
		Completed: &completed,
	}))
}
