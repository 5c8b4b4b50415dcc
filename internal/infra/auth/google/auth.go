// Package google verifies Google ID tokens for the external sign-in flow.
package google

import (
	"context"
	"log/slog"

	"tasknest/config"
	"tasknest/internal/domain/service"

	"github.com/pkg/errors"
	"google.golang.org/api/idtoken"
)

// AuthServiceImpl implements service.OAuthAuthService for Google Identity.
type AuthServiceImpl struct {
	clientID string
	logger   *slog.Logger
}

// NewAuthService creates a new Google AuthService.
func NewAuthService(cfg *config.Config, logger *slog.Logger) service.OAuthAuthService {
	return &AuthServiceImpl{
		clientID: cfg.GoogleOAuth.ClientID,
		logger:   logger,
	}
}

// VerifyIDToken validates the token signature and audience against Google's
// public keys and extracts the identity claims.
func (s *AuthServiceImpl) VerifyIDToken(ctx context.Context, idTokenString string) (*service.OAuthUser, error) {
	payload, err := idtoken.Validate(ctx, idTokenString, s.clientID)
	if err != nil {
		s.logger.Warn("Google ID token validation failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "invalid ID token")
	}

	oauthUser := &service.OAuthUser{
		Subject:       payload.Subject,
		Email:         claimString(payload.Claims, "email"),
		Name:          claimString(payload.Claims, "name"),
		EmailVerified: claimBool(payload.Claims, "email_verified"),
	}

	if oauthUser.Email == "" {
		return nil, errors.New("ID token carries no email claim")
	}
	if !oauthUser.EmailVerified {
		return nil, errors.New("email not verified")
	}

	s.logger.Info("Google ID token verified",
		slog.String("subject", oauthUser.Subject),
		slog.String("email", oauthUser.Email))

	return oauthUser, nil
}

func claimString(claims map[string]any, key string) string {
	value, _ := claims[key].(string)

	return value
}

func claimBool(claims map[string]any, key string) bool {
	value, _ := claims[key].(bool)

	return value
}
