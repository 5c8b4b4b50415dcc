package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tasknest/internal/delivery/http/middleware"
	domainerrors "tasknest/internal/domain/errors"
	mockRepo "tasknest/internal/mocks/repository"
	"tasknest/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTaskHandler(t *testing.T) *TaskHandler {
	svc := impl.NewTaskService(impl.TaskServiceParams{
		TxManager: mockRepo.NewMockTransactionManager(t),
		TaskRepo:  mockRepo.NewMockTaskRepository(t),
		Logger:    discardLogger(),
	})

	return NewTaskHandler(svc, discardLogger())
}

func TestTaskHandler_Create_EmptyBodyIsValidationFailure(t *testing.T) {
	h := newTestTaskHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.KeyUserID, uuid.New())

	err := h.Create(c)

	require.Error(t, err)
	var vErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)

	middleware.NewErrorMiddleware(discardLogger()).HandleHTTPError(err, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
