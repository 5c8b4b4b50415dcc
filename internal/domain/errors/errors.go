// Package errors defines the closed set of domain error kinds shared by
// repositories, services and the HTTP delivery layer. Every expected failure
// in the application is expressed as one of these kinds; raw storage or
// transport errors never cross the domain boundary.
package errors

import (
	"net/http"

	"tasknest/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error kinds. The set is closed: services and repositories must
// express every expected failure through one of these values (possibly
// wrapped), so the delivery layer's status mapping stays total.
var (
	// Not-found kinds
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	ErrTaskNotFound = NewBaseError(
		http.StatusNotFound,
		"TASK_NOT_FOUND",
		"task not found",
		"",
	)

	// Already-exists kinds. The error code names the colliding field so the
	// client can surface it next to the right input.
	ErrUsernameTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_TAKEN",
		"username already exists",
		"",
	)

	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"email already exists",
		"",
	)

	ErrAlreadyExists = NewBaseError(
		http.StatusConflict,
		"ALREADY_EXISTS",
		"resource already exists",
		"",
	)

	// Authorization kinds
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"access denied",
		"",
	)

	// ErrInvalidCredentials is deliberately vague: it never discloses which
	// factor (identifier or password) failed.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid credentials",
		"",
	)

	// Invalid-operation kinds
	ErrInvalidOperation = NewBaseError(
		http.StatusBadRequest,
		"INVALID_OPERATION",
		"operation not supported",
		"",
	)

	// ErrUseGoogleLogin is returned for password operations on accounts
	// provisioned through Google sign-in. Distinct from ErrInvalidCredentials
	// so clients can direct the user to the external login instead of a
	// pointless retry.
	ErrUseGoogleLogin = NewBaseError(
		http.StatusBadRequest,
		"USE_GOOGLE_LOGIN",
		"account uses Google sign-in",
		"",
	)

	// External / generic kinds
	ErrExternalService = NewBaseError(
		http.StatusInternalServerError,
		"EXTERNAL_SERVICE_FAILURE",
		"external service failure",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
