package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_GeneratesIdentityAndTimestamps(t *testing.T) {
	before := time.Now()
	user := NewUser("alice", "alice@example.com", "Alice", "hashed", ProviderLocal)

	assert.NotEqual(t, user.ID.String(), NewUser("bob", "bob@example.com", "", "", ProviderLocal).ID.String())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.False(t, user.CreatedAt.Before(before))
	assert.True(t, user.HasPassword())
}

func TestUser_SnapshotRoundTrip(t *testing.T) {
	user := NewUser("alice", "alice@example.com", "Alice", "hashed", ProviderLocal)

	restored := UserFromSnapshot(user.Snapshot())

	assert.Equal(t, user, restored)
}

func TestUser_ApplySnapshot_MergesBusinessFields(t *testing.T) {
	user := NewUser("alice", "alice@example.com", "Alice", "hashed", ProviderLocal)
	createdAt := user.CreatedAt
	previousUpdatedAt := user.UpdatedAt

	snap := user.Snapshot()
	snap.Name = "Alice B"
	snap.Email = "alice.b@example.com"

	changed := user.ApplySnapshot(snap)

	require.True(t, changed)
	assert.Equal(t, "Alice B", user.Name)
	assert.Equal(t, "alice.b@example.com", user.Email)
	assert.Equal(t, createdAt, user.CreatedAt)
	assert.True(t, user.UpdatedAt.After(previousUpdatedAt))
}

func TestUser_ApplySnapshot_NoChangeKeepsUpdatedAt(t *testing.T) {
	user := NewUser("alice", "alice@example.com", "Alice", "hashed", ProviderLocal)
	previousUpdatedAt := user.UpdatedAt

	changed := user.ApplySnapshot(user.Snapshot())

	assert.False(t, changed)
	assert.Equal(t, previousUpdatedAt, user.UpdatedAt)
}

func TestUser_ApplySnapshot_UpdatedAtStrictlyMonotonic(t *testing.T) {
	user := NewUser("alice", "alice@example.com", "Alice", "hashed", ProviderLocal)

	// Rapid successive mutations must still produce strictly increasing
	// timestamps even when the wall clock has not advanced.
	previous := user.UpdatedAt
	for i := 0; i < 50; i++ {
		snap := user.Snapshot()
		snap.Name = user.Name + "x"
		require.True(t, user.ApplySnapshot(snap))
		require.True(t, user.UpdatedAt.After(previous))
		previous = user.UpdatedAt
	}
}

func TestUser_SetPasswordHash(t *testing.T) {
	user := NewUser("alice", "alice@example.com", "Alice", "", ProviderGoogle)
	previousUpdatedAt := user.UpdatedAt

	assert.False(t, user.HasPassword())

	user.SetPasswordHash("newhash")

	assert.True(t, user.HasPassword())
	assert.True(t, user.UpdatedAt.After(previousUpdatedAt))
}
