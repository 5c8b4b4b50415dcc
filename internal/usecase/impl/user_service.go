// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "tasknest/internal/delivery/context"
	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/repository"
	"tasknest/internal/domain/service"
	"tasknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	googleAuthService service.OAuthAuthService
	logger            *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	UserRepo          repository.UserRepository
	Hasher            service.PasswordHasher
	TokenService      service.TokenService
	GoogleAuthService service.OAuthAuthService
	Logger            *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		googleAuthService: params.GoogleAuthService,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new local account and issues an auth token for it.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.AuthOutput, error) {
	if err := usecase.ValidateInput(input); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	// bcrypt is CPU-bound; hash before entering the transaction.
	hash := ""
	if input.Password != "" {
		var err error
		hash, err = srv.hasher.Hash(input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to hash password")
		}
	}

	user := entity.NewUser(input.Username, input.Email, input.Name, hash, entity.ProviderLocal)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Create(ctx, user)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, srv.mapUniquenessError(err, "failed to create user")
	}

	output, err := srv.issueToken(user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", user.ID))

	return output, nil
}

// Login authenticates a local account by username or email and password.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if err := usecase.ValidateInput(input); err != nil {
		return nil, err
	}

	identifier := input.Username
	if identifier == "" {
		identifier = input.Email
	}

	srv.log(ctx).Debug("Starting login", slog.String("identifier", identifier))

	user, err := srv.resolveByIdentifier(ctx, identifier)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("identifier", identifier), slog.Any("error", err))

		return nil, err
	}

	// Accounts provisioned via Google carry no password hash. Tell the caller
	// to use the external login instead of reporting bad credentials.
	if !user.HasPassword() {
		srv.log(ctx).Warn("Password login on external account", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrUseGoogleLogin, "account has no password")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("identifier", identifier))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	output, err := srv.issueToken(user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("User logged in", slog.Any("userID", user.ID))

	return output, nil
}

// resolveByIdentifier looks the account up by username first, falling back to
// email. A miss on both is reported as invalid credentials so the response
// does not disclose which factor failed.
func (srv *userService) resolveByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	user, err := srv.userRepo.FindByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by username")
	}

	user, err = srv.userRepo.FindByEmail(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
}

// GoogleLogin verifies a Google ID token and logs the matching account in,
// provisioning a new passwordless account on first sign-in.
func (srv *userService) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.AuthOutput, error) {
	if err := usecase.ValidateInput(input); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Handling Google sign-in")

	oauthUser, err := srv.googleAuthService.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		srv.log(ctx).Warn("Google ID token verification failed", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrExternalService, "failed to verify Google ID token")
	}

	var user *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, findErr := srv.findOrCreateGoogleUser(ctx, repoFactory.UserRepo(), oauthUser)
		if findErr != nil {
			return findErr
		}
		user = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Google sign-in failed", slog.String("email", oauthUser.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute Google sign-in transaction")
	}

	output, err := srv.issueToken(user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Google sign-in completed", slog.Any("userID", user.ID))

	return output, nil
}

// findOrCreateGoogleUser resolves the verified Google identity to an account,
// creating a passwordless one on first sign-in.
func (srv *userService) findOrCreateGoogleUser(ctx context.Context, userRepo repository.UserRepository, oauthUser *service.OAuthUser) (*entity.User, error) {
	user, err := userRepo.FindByEmail(ctx, oauthUser.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	srv.log(ctx).Info("Provisioning account from Google identity", slog.String("email", oauthUser.Email))

	username, err := srv.availableUsername(ctx, userRepo, oauthUser.Email)
	if err != nil {
		return nil, err
	}

	newUser := entity.NewUser(username, oauthUser.Email, oauthUser.Name, "", entity.ProviderGoogle)
	if err := userRepo.Create(ctx, newUser); err != nil {
		return nil, errors.Wrap(err, "failed to create user from Google identity")
	}

	return newUser, nil
}

// availableUsername derives a username from the email local part, suffixing it
// with a fragment of a fresh ID when the plain form is taken.
func (srv *userService) availableUsername(ctx context.Context, userRepo repository.UserRepository, email string) (string, error) {
	base, _, _ := strings.Cut(email, "@")
	if len(base) < 3 {
		base = base + "-user"
	}

	_, err := userRepo.FindByUsername(ctx, base)
	if errors.Is(err, repository.ErrUserNotFound) {
		return base, nil
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to check username availability")
	}

	return base + "-" + entity.NewID().String()[:8], nil
}

// Get returns the account view after re-verifying the acting identity.
func (srv *userService) Get(ctx context.Context, actingUserID uuid.UUID, input *usecase.GetUserInput) (*usecase.UserView, error) {
	targetID, err := srv.authorizeTarget(actingUserID, input, input.UserID)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, srv.mapUserLookupError(err)
	}

	return usecase.NewUserView(user), nil
}

// Update applies a partial account update, re-checking username and email
// uniqueness when those fields change.
func (srv *userService) Update(ctx context.Context, actingUserID uuid.UUID, input *usecase.UpdateUserInput) (*usecase.UserView, error) {
	targetID, err := srv.authorizeTarget(actingUserID, input, input.UserID)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Updating account", slog.Any("userID", targetID))

	var updated *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByID(ctx, targetID)
		if findErr != nil {
			return srv.mapUserLookupError(findErr)
		}

		// Merge provided fields over the current snapshot; absent fields keep
		// their prior values.
		snap := user.Snapshot()
		if input.Name != nil {
			snap.Name = *input.Name
		}
		if input.Username != nil {
			snap.Username = *input.Username
		}
		if input.Email != nil {
			snap.Email = *input.Email
		}

		if checkErr := srv.checkIdentifierUniqueness(ctx, userRepo, user, snap); checkErr != nil {
			return checkErr
		}

		if user.ApplySnapshot(snap) {
			if updateErr := userRepo.Update(ctx, user); updateErr != nil {
				return srv.mapUniquenessError(updateErr, "failed to update user")
			}
		}
		updated = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Account update failed", slog.Any("userID", targetID), slog.Any("error", err))

		return nil, err
	}

	return usecase.NewUserView(updated), nil
}

// checkIdentifierUniqueness re-validates username and email uniqueness when an
// update changes them, username first.
func (srv *userService) checkIdentifierUniqueness(ctx context.Context, userRepo repository.UserRepository, current *entity.User, snap entity.UserSnapshot) error {
	if snap.Username != current.Username {
		_, err := userRepo.FindByUsername(ctx, snap.Username)
		if err == nil {
			return errors.Wrap(domainerrors.ErrUsernameTaken, "username already in use")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check username uniqueness")
		}
	}

	if snap.Email != current.Email {
		_, err := userRepo.FindByEmail(ctx, snap.Email)
		if err == nil {
			return errors.Wrap(domainerrors.ErrEmailTaken, "email already in use")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email uniqueness")
		}
	}

	return nil
}

// ChangePassword rotates a local account's password after verifying the old one.
func (srv *userService) ChangePassword(ctx context.Context, actingUserID uuid.UUID, input *usecase.ChangePasswordInput) (*usecase.UserView, error) {
	targetID, err := srv.authorizeTarget(actingUserID, input, input.UserID)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Changing password", slog.Any("userID", targetID))

	user, err := srv.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, srv.mapUserLookupError(err)
	}

	if !user.HasPassword() {
		srv.log(ctx).Warn("Password change on external account", slog.Any("userID", targetID))

		return nil, errors.Wrap(domainerrors.ErrUseGoogleLogin, "account has no password")
	}

	if !srv.hasher.Check(input.OldPassword, user.PasswordHash) {
		srv.log(ctx).Warn("Password change with wrong old password", slog.Any("userID", targetID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "old password mismatch")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to hash password")
	}

	user.SetPasswordHash(newHash)
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, srv.mapUniquenessError(err, "failed to persist new password")
	}

	return usecase.NewUserView(user), nil
}

// Delete removes the account and returns its last view.
func (srv *userService) Delete(ctx context.Context, actingUserID uuid.UUID, input *usecase.GetUserInput) (*usecase.UserView, error) {
	targetID, err := srv.authorizeTarget(actingUserID, input, input.UserID)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Deleting account", slog.Any("userID", targetID))

	var deleted *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, deleteErr := repoFactory.UserRepo().DeleteByID(ctx, targetID)
		if deleteErr != nil {
			return srv.mapUserLookupError(deleteErr)
		}
		deleted = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	return usecase.NewUserView(deleted), nil
}

// authorizeTarget validates the input, parses the target account ID and
// re-verifies that it matches the acting identity.
func (srv *userService) authorizeTarget(actingUserID uuid.UUID, input any, rawTargetID string) (uuid.UUID, error) {
	if err := usecase.ValidateInput(input); err != nil {
		return uuid.Nil, err
	}

	targetID, err := entity.ParseID("user_id", rawTargetID)
	if err != nil {
		return uuid.Nil, err
	}

	if targetID != actingUserID {
		return uuid.Nil, errors.Wrap(domainerrors.ErrUnauthorized, "account does not belong to acting user")
	}

	return targetID, nil
}

// issueToken builds the auth response for a resolved account.
func (srv *userService) issueToken(user *entity.User) (*usecase.AuthOutput, error) {
	token, expiresIn, err := srv.tokenService.GenerateToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to generate token")
	}

	return &usecase.AuthOutput{
		Token:     token,
		ExpiresIn: int64(expiresIn.Seconds()),
		User:      usecase.NewUserView(user),
	}, nil
}

// mapUserLookupError converts repository lookup failures to domain kinds.
func (srv *userService) mapUserLookupError(err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
	}

	return errors.Wrap(err, "user lookup failed")
}

// mapUniquenessError converts repository uniqueness collisions to domain
// kinds, leaving other failures wrapped as-is.
func (srv *userService) mapUniquenessError(err error, msg string) error {
	switch {
	case errors.Is(err, repository.ErrUsernameExists):
		return errors.Wrap(domainerrors.ErrUsernameTaken, msg)
	case errors.Is(err, repository.ErrEmailExists):
		return errors.Wrap(domainerrors.ErrEmailTaken, msg)
	case errors.Is(err, repository.ErrUserNotFound):
		return errors.Wrap(domainerrors.ErrUserNotFound, msg)
	default:
		return errors.Wrap(err, msg)
	}
}
