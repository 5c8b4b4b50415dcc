// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"tasknest/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence. The application layer handles
// these without depending on database-specific errors.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameExists is returned when an insert or update would collide on username.
	ErrUsernameExists = errors.New("username already exists")
	// ErrEmailExists is returned when an insert or update would collide on email.
	ErrEmailExists = errors.New("email already exists")
)

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by their unique username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity. Username and email uniqueness are
	// pre-checked before writing; a collision returns ErrUsernameExists or
	// ErrEmailExists, username checked first when both collide.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// DeleteByID removes a user and returns the deleted entity.
	DeleteByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindAll is deliberately unsupported: unauthenticated bulk enumeration
	// of accounts is not an offered capability. It always fails with an
	// invalid-operation error.
	FindAll(ctx context.Context) ([]*entity.User, error)
}
