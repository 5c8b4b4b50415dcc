package auth

import (
	"testing"
	"time"

	"tasknest/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *jwtService {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-secret"
	cfg.Auth = &config.AuthConfig{TokenTTL: time.Hour}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})

	require.Error(t, err)
}

func TestJWTService_GenerateAndValidateRoundTrip(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	token, expiresIn, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, time.Hour, expiresIn)

	parsedID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := newTestJWTService(t)

	token, _, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	require.Error(t, err)
}

func TestJWTService_RejectsTokenFromOtherSecret(t *testing.T) {
	svc := newTestJWTService(t)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.Access = "other-secret"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, _, err := other.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}
