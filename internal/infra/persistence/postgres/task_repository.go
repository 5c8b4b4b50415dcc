package postgres

import (
	"context"

	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/repository"
	"tasknest/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// taskRepository implements the domain.TaskRepository interface using GORM.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

// FindByID retrieves a single task by its unique ID.
func (repo *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	var taskM model.TaskModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&taskM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task by id")
	}

	return toTaskDomain(&taskM), nil
}

// Create persists a new task entity to the database.
func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)
	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInternalError.WrapMessage("missing required task information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create task")
	}

	return nil
}

// Update modifies an existing task entity in the database. The owner column is
// never written; ownership is fixed at creation.
func (repo *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)
	result := repo.db.WithContext(ctx).Model(&model.TaskModel{}).
		Where("id = ?", taskM.ID).
		Updates(map[string]any{
			"title":       taskM.Title,
			"description": taskM.Description,
			"completed":   taskM.Completed,
			"updated_at":  taskM.UpdatedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// DeleteByID removes a task and returns the deleted entity.
func (repo *taskRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	task, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TaskModel{}).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to delete task")
	}

	return task, nil
}

// FindByUserID retrieves one page of a user's tasks, newest first.
func (repo *taskRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*entity.Task, error) {
	var taskMs []model.TaskModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(repository.TaskPageSize).
		Offset(pageOffset(page)).
		Find(&taskMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find tasks by user id")
	}

	tasks := make([]*entity.Task, 0, len(taskMs))
	for i := range taskMs {
		tasks = append(tasks, toTaskDomain(&taskMs[i]))
	}

	return tasks, nil
}

// FindAll always fails, mirroring the user repository.
func (repo *taskRepository) FindAll(_ context.Context) ([]*entity.Task, error) {
	return nil, errors.Wrap(domainerrors.ErrInvalidOperation, "listing all tasks is not supported")
}

// pageOffset converts a 1-indexed page number into a row offset, clamping
// values below 1 to the first page.
func pageOffset(page int) int {
	if page < 1 {
		page = 1
	}

	return (page - 1) * repository.TaskPageSize
}

// toTaskDomain converts a GORM TaskModel to a domain Task entity.
func toTaskDomain(data *model.TaskModel) *entity.Task {
	if data == nil {
		return nil
	}

	return entity.TaskFromSnapshot(entity.TaskSnapshot{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
		UserID:      data.UserID,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	})
}

// fromTaskDomain converts a domain Task entity to a GORM TaskModel for persistence.
func fromTaskDomain(data *entity.Task) *model.TaskModel {
	if data == nil {
		return nil
	}

	return &model.TaskModel{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
		UserID:      data.UserID,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
