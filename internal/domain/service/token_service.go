package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenService defines the interface for issuing and validating auth tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken creates a signed token bound to the given user ID and
	// returns it together with its time-to-live.
	GenerateToken(userID uuid.UUID) (token string, expiresIn time.Duration, err error)

	// ValidateToken checks the validity of a token string and returns the
	// user ID it is bound to.
	ValidateToken(tokenString string) (uuid.UUID, error)
}
