package mocks

import (
	"context"

	"tasknest/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager is a mock implementation of repository.TransactionManager.
// An expectation returning an error short-circuits Execute with that error; an
// expectation returning a RepositoryFactory runs the callback against it and
// propagates the callback's error, mirroring a real commit or rollback.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a mock wired to the test's cleanup and assertions.
func NewMockTransactionManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	switch ret := args.Get(0).(type) {
	case repository.RepositoryFactory:
		return fn(ret)
	case error:
		return ret
	default:
		return nil
	}
}

// ExpectExecute registers a passthrough Execute expectation bound to factory.
func (m *MockTransactionManager) ExpectExecute(factory repository.RepositoryFactory) *mock.Call {
	return m.On("Execute", mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(factory)
}

var _ repository.TransactionManager = (*MockTransactionManager)(nil)

// MockRepositoryFactory is a mock implementation of repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates a mock wired to the test's cleanup and assertions.
func NewMockRepositoryFactory(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) UserRepo() repository.UserRepository {
	args := m.Called()
	repo, _ := args.Get(0).(repository.UserRepository)

	return repo
}

func (m *MockRepositoryFactory) TaskRepo() repository.TaskRepository {
	args := m.Called()
	repo, _ := args.Get(0).(repository.TaskRepository)

	return repo
}

var _ repository.RepositoryFactory = (*MockRepositoryFactory)(nil)
