package entity

import (
	"time"

	"github.com/google/uuid"
)

// Task is a single TODO item. UserID is a back-reference to the owning user,
// fixed at creation: ownership cannot be transferred.
type Task struct {
	ID          uuid.UUID // Unique identifier, fixed at creation.
	Title       string    // Non-empty short description.
	Description string    // Optional free-form body.
	Completed   bool      // Plain done flag, no transition restrictions.
	UserID      uuid.UUID // Owning user, immutable after creation.
	CreatedAt   time.Time // Set once at creation, never changes afterwards.
	UpdatedAt   time.Time // Advances strictly on every applied mutation.
}

// TaskSnapshot is the serialized form of a Task.
type TaskSnapshot struct {
	ID          uuid.UUID
	Title       string
	Description string
	Completed   bool
	UserID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask constructs a fresh task owned by userID with a generated identifier
// and CreatedAt == UpdatedAt == now. Completed starts false.
func NewTask(title, description string, userID uuid.UUID) *Task {
	now := time.Now()

	return &Task{
		ID:          NewID(),
		Title:       title,
		Description: description,
		Completed:   false,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TaskFromSnapshot reconstructs a task from its serialized form.
func TaskFromSnapshot(s TaskSnapshot) *Task {
	return &Task{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Completed:   s.Completed,
		UserID:      s.UserID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// Snapshot serializes the task. Inverse of TaskFromSnapshot.
func (t *Task) Snapshot() TaskSnapshot {
	return TaskSnapshot{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ApplySnapshot merges the snapshot's business fields into the task and
// reports whether anything changed. Identity, owner and CreatedAt are never
// touched; UpdatedAt advances strictly past its previous value when a change
// applies.
func (t *Task) ApplySnapshot(s TaskSnapshot) bool {
	changed := t.Title != s.Title ||
		t.Description != s.Description ||
		t.Completed != s.Completed
	if !changed {
		return false
	}

	t.Title = s.Title
	t.Description = s.Description
	t.Completed = s.Completed
	t.UpdatedAt = nextTimestamp(t.UpdatedAt)

	return true
}
