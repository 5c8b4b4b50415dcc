package handler

import (
	"log/slog"
	"net/http"

	"tasknest/internal/delivery/http/response"
	"tasknest/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TaskHandler holds dependencies for task-related handlers.
type TaskHandler struct {
	uc     usecase.TaskUsecase
	logger *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler, injected by Fx.
func NewTaskHandler(uc usecase.TaskUsecase, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles the task creation request.
func (h *TaskHandler) Create(c echo.Context) error {
	userID, ok := actingUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := new(usecase.NewTaskInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	output, err := h.uc.Create(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Task created successfully")
}

// Get handles the request to fetch a single task.
func (h *TaskHandler) Get(c echo.Context) error {
	userID, ok := actingUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := new(usecase.FetchTaskInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	output, err := h.uc.Get(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Task retrieved successfully")
}

// Update handles the partial task update request.
func (h *TaskHandler) Update(c echo.Context) error {
	userID, ok := actingUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := new(usecase.UpdateTaskInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task update input")
	}

	output, err := h.uc.Update(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Task updated successfully")
}

// Delete handles the task deletion request.
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, ok := actingUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := new(usecase.FetchTaskInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	output, err := h.uc.Delete(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Task deleted successfully")
}

// List handles the paginated task listing request.
func (h *TaskHandler) List(c echo.Context) error {
	userID, ok := actingUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := new(usecase.ListTasksInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid listing input")
	}

	output, err := h.uc.List(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Tasks retrieved successfully")
}
