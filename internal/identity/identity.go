// File: internal/identity/identity.go
package identity

import (
	"context"
	"strings"

	"homequest_backend/internal/common"
)

const (
	// AuthorizationTypeBearer is the expected credential scheme.
	AuthorizationTypeBearer = "Bearer"
)

// Identity is a resolved, authenticated caller, distinct from the raw
// bearer credential used to obtain it.
type Identity struct {
	ID            string
	Email         string
	Name          string
	UserType      string
	EmailVerified bool
}

// Verifier validates a bearer credential against the external identity
// provider and resolves it to an Identity.
type Verifier interface {
	// Verify takes the raw Authorization header value. A missing or
	// malformed header is rejected without any provider call; an unknown
	// or expired token, or a provider failure, is also an authentication
	// failure. The provider call is bounded by a timeout.
	Verify(ctx context.Context, authorizationHeader string) (*Identity, error)
}

// Provider creates accounts in the external identity provider.
type Provider interface {
	// SignUp registers a new account and returns the provider-issued user ID.
	SignUp(ctx context.Context, email, password, name, userType string) (string, error)
}

// ParseBearerToken extracts the token segment from an Authorization header
// of the form "Bearer <token>". It never touches the provider, so callers
// can fail fast on malformed credentials.
func ParseBearerToken(authorizationHeader string) (string, error) {
	if authorizationHeader == "" {
		return "", common.ErrUnauthorized.WithDetails("Authorization header is required.")
	}
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
		return "", common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'.")
	}
	return parts[1], nil
}
