// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"tasknest/internal/delivery/http/middleware"
	"tasknest/internal/delivery/http/response"
	"tasknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// actingUserID extracts the authenticated user's ID set by the auth middleware.
func actingUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(middleware.KeyUserID).(uuid.UUID)

	return userID, ok
}

// Register handles the account registration request.
func (h *UserHandler) Register(c echo.Context) error {
	input := new(usecase.RegisterUserInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "User registered successfully")
}

// Login handles the password login request.
func (h *UserHandler) Login(c echo.Context) error {
	input := new(usecase.LoginInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// GoogleLogin handles the Google ID token sign-in request.
func (h *UserHandler) GoogleLogin(c echo.Context) error {
	input := new(usecase.GoogleLoginInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid Google sign-in input")
	}

	output, err := h.uc.GoogleLogin(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Google sign-in successful")
}

// Get handles the request to fetch an account.
func (h *UserHandler) Get(c echo.Context) error {
	userID, ok := actingUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := new(usecase.GetUserInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}

	output, err := h.uc.Get(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "User retrieved successfully")
}

// Update handles the partial account update request.
func (h *UserHandler) Update(c echo.Context) error {
	userID, ok := actingUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := new(usecase.UpdateUserInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update input")
	}

	output, err := h.uc.Update(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "User updated successfully")
}

// ChangePassword handles the password rotation request.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, ok := actingUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := new(usecase.ChangePasswordInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password change input")
	}

	output, err := h.uc.ChangePassword(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Password changed successfully")
}

// Delete handles the account deletion request.
func (h *UserHandler) Delete(c echo.Context) error {
	userID, ok := actingUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := new(usecase.GetUserInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}

	output, err := h.uc.Delete(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "User deleted successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
