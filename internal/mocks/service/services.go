// Package mocks provides testify mocks for the domain service interfaces.
package mocks

import (
	"context"
	"time"

	"tasknest/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock wired to the test's cleanup and assertions.
func NewMockPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

var _ service.PasswordHasher = (*MockPasswordHasher)(nil)

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock wired to the test's cleanup and assertions.
func NewMockTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateToken(userID uuid.UUID) (string, time.Duration, error) {
	args := m.Called(userID)
	ttl, _ := args.Get(1).(time.Duration)

	return args.String(0), ttl, args.Error(2)
}

func (m *MockTokenService) ValidateToken(tokenString string) (uuid.UUID, error) {
	args := m.Called(tokenString)
	userID, _ := args.Get(0).(uuid.UUID)

	return userID, args.Error(1)
}

var _ service.TokenService = (*MockTokenService)(nil)

// MockOAuthAuthService is a mock implementation of service.OAuthAuthService.
type MockOAuthAuthService struct {
	mock.Mock
}

// NewMockOAuthAuthService creates a mock wired to the test's cleanup and assertions.
func NewMockOAuthAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOAuthAuthService {
	m := &MockOAuthAuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOAuthAuthService) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	args := m.Called(ctx, idToken)
	user, _ := args.Get(0).(*service.OAuthUser)

	return user, args.Error(1)
}

var _ service.OAuthAuthService = (*MockOAuthAuthService)(nil)
