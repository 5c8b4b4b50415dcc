// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"tasknest/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTaskNotFound is a domain-specific error returned when a task is not found.
var ErrTaskNotFound = errors.New("task not found")

// TaskPageSize is the fixed page size for per-user task listings.
const TaskPageSize = 10

// TaskRepository defines the standard operations for task persistence.
type TaskRepository interface {
	// FindByID retrieves a single task by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)

	// Create persists a new task entity to the storage.
	Create(ctx context.Context, task *entity.Task) error

	// Update modifies an existing task entity in the storage.
	Update(ctx context.Context, task *entity.Task) error

	// DeleteByID removes a task and returns the deleted entity.
	DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)

	// FindByUserID retrieves one page of a user's tasks, newest first.
	// Pages are 1-indexed with a fixed size of TaskPageSize; page < 1 is
	// clamped to 1. An empty page is a valid empty slice, not an error.
	FindByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*entity.Task, error)

	// FindAll is deliberately unsupported, mirroring UserRepository.FindAll.
	FindAll(ctx context.Context) ([]*entity.Task, error)
}
