package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"tasknest/internal/delivery/http/middleware"
	domainerrors "tasknest/internal/domain/errors"
	mockRepo "tasknest/internal/mocks/repository"
	mockSvc "tasknest/internal/mocks/service"
	"tasknest/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUserHandler(t *testing.T) *UserHandler {
	svc := impl.NewUserService(impl.UserServiceParams{
		TxManager:         mockRepo.NewMockTransactionManager(t),
		UserRepo:          mockRepo.NewMockUserRepository(t),
		Hasher:            mockSvc.NewMockPasswordHasher(t),
		TokenService:      mockSvc.NewMockTokenService(t),
		GoogleAuthService: mockSvc.NewMockOAuthAuthService(t),
		Logger:            discardLogger(),
	})

	return NewUserHandler(svc, discardLogger())
}

// An empty request body leaves the input at its zero value; the failure must
// surface as a 400 validation error, never an internal one.
func TestUserHandler_Register_EmptyBodyIsValidationFailure(t *testing.T) {
	h := newTestUserHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)

	require.Error(t, err)
	var vErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)

	middleware.NewErrorMiddleware(discardLogger()).HandleHTTPError(err, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Login_EmptyBodyIsValidationFailure(t *testing.T) {
	h := newTestUserHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)

	require.Error(t, err)
	var vErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
}
