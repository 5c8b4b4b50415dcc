package entity

import (
	"time"

	"github.com/google/uuid"
)

// Provider identifies how an account authenticates.
type Provider string

const (
	// ProviderLocal indicates a username/email + password account.
	ProviderLocal Provider = "local"
	// ProviderGoogle indicates an account provisioned via Google sign-in.
	// Such accounts carry no password hash.
	ProviderGoogle Provider = "google"
)

// User is the account entity. Username and email are unique across all users;
// PasswordHash is empty for Google-provisioned accounts and otherwise always a
// bcrypt hash, never plaintext.
type User struct {
	ID           uuid.UUID // Unique identifier, fixed at creation.
	Username     string    // Unique login handle, at least 3 characters.
	Email        string    // Unique contact email.
	Name         string    // Optional display name.
	PasswordHash string    // bcrypt hash, empty when Provider is google.
	Provider     Provider  // How the account authenticates.
	CreatedAt    time.Time // Set once at creation, never changes afterwards.
	UpdatedAt    time.Time // Advances strictly on every applied mutation.
}

// UserSnapshot is the serialized form of a User: the shape persisted by
// repositories and merged over by services applying partial updates.
type UserSnapshot struct {
	ID           uuid.UUID
	Username     string
	Email        string
	Name         string
	PasswordHash string
	Provider     Provider
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser constructs a fresh user with a generated identifier and
// CreatedAt == UpdatedAt == now.
func NewUser(username, email, name, passwordHash string, provider Provider) *User {
	now := time.Now()

	return &User{
		ID:           NewID(),
		Username:     username,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Provider:     provider,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// UserFromSnapshot reconstructs a user from its serialized form. Used by
// repositories mapping rows back to entities; the snapshot's timestamps are
// taken as-is.
func UserFromSnapshot(s UserSnapshot) *User {
	return &User{
		ID:           s.ID,
		Username:     s.Username,
		Email:        s.Email,
		Name:         s.Name,
		PasswordHash: s.PasswordHash,
		Provider:     s.Provider,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// Snapshot serializes the user. Inverse of UserFromSnapshot.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Provider:     u.Provider,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ApplySnapshot merges the snapshot's business fields into the user and
// reports whether anything changed. Identity and CreatedAt are never touched;
// UpdatedAt advances strictly past its previous value when a change applies.
func (u *User) ApplySnapshot(s UserSnapshot) bool {
	changed := u.Username != s.Username ||
		u.Email != s.Email ||
		u.Name != s.Name ||
		u.PasswordHash != s.PasswordHash
	if !changed {
		return false
	}

	u.Username = s.Username
	u.Email = s.Email
	u.Name = s.Name
	u.PasswordHash = s.PasswordHash
	u.UpdatedAt = nextTimestamp(u.UpdatedAt)

	return true
}

// SetPasswordHash replaces the stored hash and advances UpdatedAt.
func (u *User) SetPasswordHash(hash string) {
	if u.PasswordHash == hash {
		return
	}
	u.PasswordHash = hash
	u.UpdatedAt = nextTimestamp(u.UpdatedAt)
}

// HasPassword reports whether the account can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
