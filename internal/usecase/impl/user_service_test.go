package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/repository"
	"tasknest/internal/domain/service"
	mockRepo "tasknest/internal/mocks/repository"
	mockSvc "tasknest/internal/mocks/service"
	"tasknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	googleAuth   *mockSvc.MockOAuthAuthService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	googleAuth := mockSvc.NewMockOAuthAuthService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewUserService(UserServiceParams{
		TxManager:         txManager,
		UserRepo:          userRepo,
		Hasher:            hasher,
		TokenService:      tokenService,
		GoogleAuthService: googleAuth,
		Logger:            logger,
	})

	return userServiceFixtures{
		service:      svc,
		txManager:    txManager,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		googleAuth:   googleAuth,
	}
}

// txFactory wires a factory mock returning the given repos for passthrough transactions.
func txFactory(t *testing.T, userRepo repository.UserRepository, taskRepo repository.TaskRepository) *mockRepo.MockRepositoryFactory {
	factory := mockRepo.NewMockRepositoryFactory(t)
	if userRepo != nil {
		factory.On("UserRepo").Return(userRepo).Maybe()
	}
	if taskRepo != nil {
		factory.On("TaskRepo").Return(taskRepo).Maybe()
	}

	return factory
}

func localUser(username, email, hash string) *entity.User {
	return entity.NewUser(username, email, "", hash, entity.ProviderLocal)
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	txUserRepo := mockRepo.NewMockUserRepository(t)
	fx.txManager.ExpectExecute(txFactory(t, txUserRepo, nil))

	fx.hasher.On("Hash", "supersecret").Return("bcrypt-hash", nil)
	txUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	fx.tokenService.On("GenerateToken", mock.AnythingOfType("uuid.UUID")).Return("token-123", time.Hour, nil)

	output, err := fx.service.Register(ctx, &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-123", output.Token)
	assert.Equal(t, int64(3600), output.ExpiresIn)
	assert.Equal(t, "alice", output.User.Username)

	created := txUserRepo.Calls[0].Arguments.Get(1).(*entity.User)
	assert.Equal(t, entity.ProviderLocal, created.Provider)
	assert.Equal(t, "bcrypt-hash", created.PasswordHash)
}

func TestUserService_Register_InvalidInputSkipsPersistence(t *testing.T) {
	fx := createTestUserService(t)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterUserInput{
		Username: "ab",
		Email:    "not-an-email",
	})

	var vErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestUserService_Register_UsernameTaken(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	txUserRepo := mockRepo.NewMockUserRepository(t)
	fx.txManager.ExpectExecute(txFactory(t, txUserRepo, nil))

	fx.hasher.On("Hash", "supersecret").Return("bcrypt-hash", nil)
	txUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Return(repository.ErrUsernameExists)

	_, err := fx.service.Register(ctx, &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
	fx.tokenService.AssertNotCalled(t, "GenerateToken", mock.Anything)
}

func TestUserService_Login_ByUsername(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := localUser("alice", "alice@example.com", "bcrypt-hash")

	fx.userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
	fx.hasher.On("Check", "supersecret", "bcrypt-hash").Return(true)
	fx.tokenService.On("GenerateToken", user.ID).Return("token-123", time.Hour, nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Username: "alice",
		Password: "supersecret",
	})

	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), output.User.ID)
}

func TestUserService_Login_FallsBackToEmail(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := localUser("alice", "alice@example.com", "bcrypt-hash")

	fx.userRepo.On("FindByUsername", mock.Anything, "alice@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	fx.hasher.On("Check", "supersecret", "bcrypt-hash").Return(true)
	fx.tokenService.On("GenerateToken", user.ID).Return("token-123", time.Hour, nil)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "supersecret",
	})

	require.NoError(t, err)
}

func TestUserService_Login_WrongPasswordIsGeneric(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := localUser("alice", "alice@example.com", "bcrypt-hash")

	fx.userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
	fx.hasher.On("Check", "wrongpassword", "bcrypt-hash").Return(false)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Username: "alice",
		Password: "wrongpassword",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_UnknownIdentifierIsGeneric(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.On("FindByEmail", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Username: "ghost",
		Password: "supersecret",
	})

	require.Error(t, err)
	// The response never discloses whether the account exists.
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.False(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_Login_GoogleAccountDirectsToExternalLogin(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := entity.NewUser("alice", "alice@example.com", "Alice", "", entity.ProviderGoogle)

	fx.userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Username: "alice",
		Password: "supersecret",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUseGoogleLogin))
	fx.hasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestUserService_GoogleLogin_ProvisionsNewAccount(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.googleAuth.On("VerifyIDToken", mock.Anything, "google-id-token").Return(&service.OAuthUser{
		Subject:       "google-sub",
		Email:         "newbie@example.com",
		Name:          "New Bee",
		EmailVerified: true,
	}, nil)

	txUserRepo := mockRepo.NewMockUserRepository(t)
	fx.txManager.ExpectExecute(txFactory(t, txUserRepo, nil))

	txUserRepo.On("FindByEmail", mock.Anything, "newbie@example.com").
		Return(nil, repository.ErrUserNotFound)
	txUserRepo.On("FindByUsername", mock.Anything, "newbie").
		Return(nil, repository.ErrUserNotFound)
	txUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	fx.tokenService.On("GenerateToken", mock.AnythingOfType("uuid.UUID")).Return("token-123", time.Hour, nil)

	output, err := fx.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{IDToken: "google-id-token"})

	require.NoError(t, err)
	assert.Equal(t, "newbie", output.User.Username)

	created := txUserRepo.Calls[len(txUserRepo.Calls)-1].Arguments.Get(1).(*entity.User)
	assert.Equal(t, entity.ProviderGoogle, created.Provider)
	assert.False(t, created.HasPassword())
}

func TestUserService_GoogleLogin_ExistingAccountByEmail(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := entity.NewUser("alice", "alice@example.com", "Alice", "", entity.ProviderGoogle)

	fx.googleAuth.On("VerifyIDToken", mock.Anything, "google-id-token").Return(&service.OAuthUser{
		Subject:       "google-sub",
		Email:         "alice@example.com",
		Name:          "Alice",
		EmailVerified: true,
	}, nil)

	txUserRepo := mockRepo.NewMockUserRepository(t)
	fx.txManager.ExpectExecute(txFactory(t, txUserRepo, nil))
	txUserRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	fx.tokenService.On("GenerateToken", user.ID).Return("token-123", time.Hour, nil)

	output, err := fx.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{IDToken: "google-id-token"})

	require.NoError(t, err)
	assert.Equal(t, "alice", output.User.Username)
}

func TestUserService_GoogleLogin_VerificationFailure(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.googleAuth.On("VerifyIDToken", mock.Anything, "bad-token").
		Return(nil, errors.New("invalid ID token"))

	_, err := fx.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{IDToken: "bad-token"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrExternalService))
}

func TestUserService_Get_ForeignTargetIsUnauthorized(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	_, err := fx.service.Get(ctx, uuid.New(), &usecase.GetUserInput{
		UserID: uuid.New().String(),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	fx.userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUserService_Get_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := localUser("alice", "alice@example.com", "bcrypt-hash")

	fx.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	output, err := fx.service.Get(ctx, user.ID, &usecase.GetUserInput{UserID: user.ID.String()})

	require.NoError(t, err)
	assert.Equal(t, "alice", output.Username)
	assert.Equal(t, "alice@example.com", output.Email)
}

func TestUserService_Update_MergesProvidedFieldsOnly(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := entity.NewUser("alice", "alice@example.com", "Alice", "bcrypt-hash", entity.ProviderLocal)

	txUserRepo := mockRepo.NewMockUserRepository(t)
	fx.txManager.ExpectExecute(txFactory(t, txUserRepo, nil))

	txUserRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	txUserRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)

	newName := "Alice B"
	output, err := fx.service.Update(ctx, user.ID, &usecase.UpdateUserInput{
		UserID: user.ID.String(),
		Name:   &newName,
	})

	require.NoError(t, err)
	assert.Equal(t, "Alice B", output.Name)
	assert.Equal(t, "alice", output.Username) // untouched
	assert.Equal(t, "alice@example.com", output.Email)
}

func TestUserService_Update_NewUsernameMustBeFree(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := localUser("alice", "alice@example.com", "bcrypt-hash")
	other := localUser("bob", "bob@example.com", "bcrypt-hash")

	txUserRepo := mockRepo.NewMockUserRepository(t)
	fx.txManager.ExpectExecute(txFactory(t, txUserRepo, nil))

	txUserRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	txUserRepo.On("FindByUsername", mock.Anything, "bob").Return(other, nil)

	newUsername := "bob"
	_, err := fx.service.Update(ctx, user.ID, &usecase.UpdateUserInput{
		UserID:   user.ID.String(),
		Username: &newUsername,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
	txUserRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_ChangePassword_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := localUser("alice", "alice@example.com", "old-hash")

	fx.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	fx.hasher.On("Check", "oldpassword", "old-hash").Return(true)
	fx.hasher.On("Hash", "newpassword").Return("new-hash", nil)
	fx.userRepo.On("Update", mock.Anything, user).Return(nil)

	_, err := fx.service.ChangePassword(ctx, user.ID, &usecase.ChangePasswordInput{
		UserID:      user.ID.String(),
		OldPassword: "oldpassword",
		NewPassword: "newpassword",
	})

	require.NoError(t, err)
	assert.Equal(t, "new-hash", user.PasswordHash)
}

func TestUserService_ChangePassword_WrongOldPassword(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := localUser("alice", "alice@example.com", "old-hash")

	fx.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	fx.hasher.On("Check", "wrongpassword", "old-hash").Return(false)

	_, err := fx.service.ChangePassword(ctx, user.ID, &usecase.ChangePasswordInput{
		UserID:      user.ID.String(),
		OldPassword: "wrongpassword",
		NewPassword: "newpassword",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.Equal(t, "old-hash", user.PasswordHash)
}

func TestUserService_ChangePassword_GoogleAccount(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := entity.NewUser("alice", "alice@example.com", "Alice", "", entity.ProviderGoogle)

	fx.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	_, err := fx.service.ChangePassword(ctx, user.ID, &usecase.ChangePasswordInput{
		UserID:      user.ID.String(),
		OldPassword: "oldpassword",
		NewPassword: "newpassword",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUseGoogleLogin))
}

func TestUserService_Delete_ReturnsLastView(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := localUser("alice", "alice@example.com", "bcrypt-hash")

	txUserRepo := mockRepo.NewMockUserRepository(t)
	fx.txManager.ExpectExecute(txFactory(t, txUserRepo, nil))
	txUserRepo.On("DeleteByID", mock.Anything, user.ID).Return(user, nil)

	output, err := fx.service.Delete(ctx, user.ID, &usecase.GetUserInput{UserID: user.ID.String()})

	require.NoError(t, err)
	assert.Equal(t, "alice", output.Username)
}

func TestUserService_Delete_MissingAccount(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	txUserRepo := mockRepo.NewMockUserRepository(t)
	fx.txManager.ExpectExecute(txFactory(t, txUserRepo, nil))
	txUserRepo.On("DeleteByID", mock.Anything, userID).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Delete(ctx, userID, &usecase.GetUserInput{UserID: userID.String()})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
