package auth

import (
	"testing"

	"tasknest/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}} // low cost keeps the test fast
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)

	assert.True(t, hasher.Check("supersecret", hash))
	assert.False(t, hasher.Check("wrongpassword", hash))
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}
	hasher := NewBcryptHasher(cfg)

	first, err := hasher.Hash("supersecret")
	require.NoError(t, err)
	second, err := hasher.Hash("supersecret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_DefaultsOnMissingConfig(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	hash, err := hasher.Hash("supersecret")
	require.NoError(t, err)
	assert.True(t, hasher.Check("supersecret", hash))
}
