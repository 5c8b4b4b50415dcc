package impl

import (
	"context"
	"log/slog"

	deliverycontext "tasknest/internal/delivery/context"
	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/repository"
	"tasknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// taskService implements the TaskUsecase interface.
type taskService struct {
	txManager repository.TransactionManager
	taskRepo  repository.TaskRepository
	logger    *slog.Logger
}

// TaskServiceParams holds dependencies for TaskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	TaskRepo  repository.TaskRepository
	Logger    *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		txManager: params.TxManager,
		taskRepo:  params.TaskRepo,
		logger:    params.Logger,
	}
}

func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create adds a new task owned by the acting user.
func (srv *taskService) Create(ctx context.Context, actingUserID uuid.UUID, input *usecase.NewTaskInput) (*usecase.TaskView, error) {
	if err := usecase.ValidateInput(input); err != nil {
		return nil, err
	}

	task := entity.NewTask(input.Title, input.Description, actingUserID)
	if err := srv.taskRepo.Create(ctx, task); err != nil {
		srv.log(ctx).Error("Failed to create task", slog.Any("userID", actingUserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create task")
	}

	srv.log(ctx).Debug("Task created", slog.Any("taskID", task.ID), slog.Any("userID", actingUserID))

	return usecase.NewTaskView(task), nil
}

// Get returns one task after verifying the acting user owns it.
func (srv *taskService) Get(ctx context.Context, actingUserID uuid.UUID, input *usecase.FetchTaskInput) (*usecase.TaskView, error) {
	if err := usecase.ValidateInput(input); err != nil {
		return nil, err
	}

	taskID, err := entity.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	task, err := srv.findOwnedTask(ctx, srv.taskRepo, actingUserID, taskID)
	if err != nil {
		return nil, err
	}

	return usecase.NewTaskView(task), nil
}

// Update applies a partial update to an owned task. The fetch, ownership check
// and write run in one transaction.
func (srv *taskService) Update(ctx context.Context, actingUserID uuid.UUID, input *usecase.UpdateTaskInput) (*usecase.TaskView, error) {
	if err := usecase.ValidateInput(input); err != nil {
		return nil, err
	}

	taskID, err := entity.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	var updated *entity.Task
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		taskRepo := repoFactory.TaskRepo()

		task, findErr := srv.findOwnedTask(ctx, taskRepo, actingUserID, taskID)
		if findErr != nil {
			return findErr
		}

		snap := task.Snapshot()
		if input.Title != nil {
			snap.Title = *input.Title
		}
		if input.Description != nil {
			snap.Description = *input.Description
		}
		if input.Completed != nil {
			snap.Completed = *input.Completed
		}

		if task.ApplySnapshot(snap) {
			if updateErr := taskRepo.Update(ctx, task); updateErr != nil {
				return errors.Wrap(updateErr, "failed to update task")
			}
		}
		updated = task

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Task update failed", slog.Any("taskID", taskID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Task updated", slog.Any("taskID", taskID))

	return usecase.NewTaskView(updated), nil
}

// Delete removes an owned task and returns its last view.
func (srv *taskService) Delete(ctx context.Context, actingUserID uuid.UUID, input *usecase.FetchTaskInput) (*usecase.TaskView, error) {
	if err := usecase.ValidateInput(input); err != nil {
		return nil, err
	}

	taskID, err := entity.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	var deleted *entity.Task
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		taskRepo := repoFactory.TaskRepo()

		if _, findErr := srv.findOwnedTask(ctx, taskRepo, actingUserID, taskID); findErr != nil {
			return findErr
		}

		task, deleteErr := taskRepo.DeleteByID(ctx, taskID)
		if deleteErr != nil {
			return errors.Wrap(deleteErr, "failed to delete task")
		}
		deleted = task

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Task delete failed", slog.Any("taskID", taskID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Task deleted", slog.Any("taskID", taskID))

	return usecase.NewTaskView(deleted), nil
}

// List returns one page of the acting user's tasks, newest first. A page past
// the end yields an empty list, not an error.
func (srv *taskService) List(ctx context.Context, actingUserID uuid.UUID, input *usecase.ListTasksInput) ([]*usecase.TaskView, error) {
	if err := usecase.ValidateInput(input); err != nil {
		return nil, err
	}

	tasks, err := srv.taskRepo.FindByUserID(ctx, actingUserID, input.Page)
	if err != nil {
		srv.log(ctx).Error("Failed to list tasks", slog.Any("userID", actingUserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return usecase.NewTaskViews(tasks), nil
}

// findOwnedTask fetches a task and verifies ownership. A task owned by someone
// else is reported as unauthorized and its payload is never returned.
func (srv *taskService) findOwnedTask(ctx context.Context, taskRepo repository.TaskRepository, actingUserID, taskID uuid.UUID) (*entity.Task, error) {
	task, err := taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTaskNotFound, "task not found")
		}

		return nil, errors.Wrap(err, "task lookup failed")
	}

	if task.UserID != actingUserID {
		srv.log(ctx).Warn("Task access denied", slog.Any("taskID", taskID), slog.Any("userID", actingUserID))

		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "task does not belong to acting user")
	}

	return task, nil
}
