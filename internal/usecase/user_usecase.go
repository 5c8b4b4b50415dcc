// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"tasknest/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---
// Each input is a schema-validated, ephemeral carrier of one request's data.
// Validation tags are checked by ValidateInput before any business logic runs;
// violation order follows field declaration order.

// RegisterUserInput defines the data required to register a new user.
// Password is optional: accounts provisioned through Google sign-in have none.
type RegisterUserInput struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}

// LoginInput defines the data required for a user to log in. Either username
// or email identifies the account; the password is always required.
type LoginInput struct {
	Username string `json:"username" validate:"required_without=Email,omitempty,min=3"`
	Email    string `json:"email" validate:"required_without=Username,omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// GoogleLoginInput carries the Google ID token sent by the client.
type GoogleLoginInput struct {
	IDToken string `json:"id_token" validate:"required"`
}

// GetUserInput identifies the target account of a read or delete.
type GetUserInput struct {
	UserID string `param:"id" json:"user_id" validate:"required,uuid"`
}

// UpdateUserInput defines a partial account update. At least one field must be
// provided; absent fields keep their current values.
type UpdateUserInput struct {
	UserID   string  `param:"id" json:"user_id" validate:"required,uuid"`
	Name     *string `json:"name" validate:"required_without_all=Username Email,omitempty,max=100"`
	Username *string `json:"username" validate:"omitempty,min=3,max=30"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// ChangePasswordInput defines a password rotation for a local account.
type ChangePasswordInput struct {
	UserID      string `param:"id" json:"user_id" validate:"required,uuid"`
	OldPassword string `json:"old_password" validate:"required,min=8"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// --- Output DTOs ---

// UserView is the response shape for account operations. It never exposes the
// password hash.
type UserView struct {
	ID       string `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
}

// AuthOutput is returned by register, login and Google sign-in.
type AuthOutput struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"` // seconds until the token expires
	User      *UserView `json:"user"`
}

// NewUserView maps a user entity to its response shape.
func NewUserView(user *entity.User) *UserView {
	return &UserView{
		ID:       user.ID.String(),
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
	}
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
// Operations taking an actingUserID re-verify that the acting identity matches
// the target account; a mismatch fails with an unauthorized error.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterUserInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	GoogleLogin(ctx context.Context, input *GoogleLoginInput) (*AuthOutput, error)
	Get(ctx context.Context, actingUserID uuid.UUID, input *GetUserInput) (*UserView, error)
	Update(ctx context.Context, actingUserID uuid.UUID, input *UpdateUserInput) (*UserView, error)
	ChangePassword(ctx context.Context, actingUserID uuid.UUID, input *ChangePasswordInput) (*UserView, error)
	Delete(ctx context.Context, actingUserID uuid.UUID, input *GetUserInput) (*UserView, error)
}
