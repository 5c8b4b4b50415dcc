package service

import "context"

// OAuthUser represents the verified identity returned by an OAuth provider.
type OAuthUser struct {
	Subject       string // Provider-specific user ID (e.g., Google's 'sub' claim)
	Email         string // User's email address
	Name          string // User's display name
	EmailVerified bool   // Whether the email is verified by the provider
}

// OAuthAuthService defines the interface for OAuth ID-token verification
// (like Google ID tokens sent directly by the client).
type OAuthAuthService interface {
	// VerifyIDToken verifies an OAuth ID token and returns the user identity.
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)
}
