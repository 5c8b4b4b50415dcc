// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"tasknest/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// NewTaskInput defines the data required to create a task.
type NewTaskInput struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// FetchTaskInput identifies the target task of a read or delete.
type FetchTaskInput struct {
	ID string `param:"id" json:"id" validate:"required,uuid"`
}

// UpdateTaskInput defines a partial task update. At least one field must be
// provided; absent fields keep their current values.
type UpdateTaskInput struct {
	ID          string  `param:"id" json:"id" validate:"required,uuid"`
	Title       *string `json:"title" validate:"required_without_all=Description Completed,omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Completed   *bool   `json:"completed"`
}

// ListTasksInput selects one page of the acting user's tasks. Page is
// 1-indexed; values below 1 are clamped to the first page.
type ListTasksInput struct {
	Page int `query:"page" json:"page"`
}

// --- Output DTOs ---

// TaskView is the response shape for task operations.
type TaskView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTaskView maps a task entity to its response shape.
func NewTaskView(task *entity.Task) *TaskView {
	return &TaskView{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		UserID:      task.UserID.String(),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// NewTaskViews maps a slice of task entities, preserving order.
func NewTaskViews(tasks []*entity.Task) []*TaskView {
	views := make([]*TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, NewTaskView(task))
	}

	return views
}

// TaskUsecase defines the interface for task-related business operations.
// Every operation takes the acting user's ID; reads and mutations of an
// existing task verify ownership and fail with an unauthorized error when the
// task belongs to someone else.
type TaskUsecase interface {
	Create(ctx context.Context, actingUserID uuid.UUID, input *NewTaskInput) (*TaskView, error)
	Get(ctx context.Context, actingUserID uuid.UUID, input *FetchTaskInput) (*TaskView, error)
	Update(ctx context.Context, actingUserID uuid.UUID, input *UpdateTaskInput) (*TaskView, error)
	Delete(ctx context.Context, actingUserID uuid.UUID, input *FetchTaskInput) (*TaskView, error)
	List(ctx context.Context, actingUserID uuid.UUID, input *ListTasksInput) ([]*TaskView, error)
}
