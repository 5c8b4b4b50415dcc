package mocks

import (
	"context"

	"tasknest/internal/domain/entity"
	"tasknest/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTaskRepository is a mock implementation of repository.TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

// NewMockTaskRepository creates a mock wired to the test's cleanup and assertions.
func NewMockTaskRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTaskRepository {
	m := &MockTaskRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*entity.Task)

	return task, args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	args := m.Called(ctx, task)

	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *entity.Task) error {
	args := m.Called(ctx, task)

	return args.Error(0)
}

func (m *MockTaskRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*entity.Task)

	return task, args.Error(1)
}

func (m *MockTaskRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*entity.Task, error) {
	args := m.Called(ctx, userID, page)
	tasks, _ := args.Get(0).([]*entity.Task)

	return tasks, args.Error(1)
}

func (m *MockTaskRepository) FindAll(ctx context.Context) ([]*entity.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]*entity.Task)

	return tasks, args.Error(1)
}

var _ repository.TaskRepository = (*MockTaskRepository)(nil)
