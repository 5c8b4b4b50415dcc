// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"

	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/repository"
	"tasknest/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByUsername retrieves a single user by their unique username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where("username = ?", username).First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where("email = ?", email).First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity. Uniqueness is pre-checked so collisions
// name the colliding field, username before email when both collide. The
// unique indexes remain the authority under concurrent writes.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := repo.checkAvailability(ctx, user); err != nil {
		return err
	}

	userM := fromUserDomain(user)
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repo.uniquenessSentinel(err)
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInternalError.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	return nil
}

// checkAvailability verifies username and email are free before an insert.
func (repo *userRepository) checkAvailability(ctx context.Context, user *entity.User) error {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check username availability")
	}
	if count > 0 {
		return repository.ErrUsernameExists
	}

	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check email availability")
	}
	if count > 0 {
		return repository.ErrEmailExists
	}

	return nil
}

// uniquenessSentinel picks the sentinel matching the violated unique index.
func (repo *userRepository) uniquenessSentinel(err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "username") {
		return repository.ErrUsernameExists
	}

	return repository.ErrEmailExists
}

// Update modifies an existing user entity in the database.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ?", userM.ID).
		Updates(map[string]any{
			"username":      userM.Username,
			"email":         userM.Email,
			"name":          userM.Name,
			"password_hash": userM.PasswordHash,
			"provider":      userM.Provider,
			"updated_at":    userM.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repo.uniquenessSentinel(result.Error)
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// DeleteByID removes a user and returns the deleted entity.
func (repo *userRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserModel{}).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to delete user")
	}

	return user, nil
}

// FindAll always fails: bulk account enumeration is not an offered capability.
func (repo *userRepository) FindAll(_ context.Context) ([]*entity.User, error) {
	return nil, errors.Wrap(domainerrors.ErrInvalidOperation, "listing all users is not supported")
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return entity.UserFromSnapshot(entity.UserSnapshot{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		Name:         data.Name,
		PasswordHash: data.PasswordHash,
		Provider:     entity.Provider(data.Provider),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	})
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		Name:         data.Name,
		PasswordHash: data.PasswordHash,
		Provider:     string(data.Provider),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
