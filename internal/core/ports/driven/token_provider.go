package driven

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle token refresh transparently.
//
// This interface is designed to work alongside the Scheduler's proactive refresh:
//   - Scheduler: Proactive refresh every 45min (prevents refresh token expiry)
//   - TokenProvider: Reactive refresh if token expired when connector needs it
type TokenProvider interface {
	// GetToken returns a valid access token.
	// If the current token is expired, it will be refreshed automatically.
	// Returns empty string for no-auth sources.
	GetToken(ctx context.Context) (string, error)

	// CredentialsID returns the credentials ID being used.
	// Returns empty string for no-auth sources.
	CredentialsID() string

	// AuthMethod returns the authentication method (oauth, pat, none).
	AuthMethod() domain.AuthMethod

	// IsAuthenticated returns true if valid authentication is available.
	// Always true for no-auth sources (NullTokenProvider).
	IsAuthenticated() bool
}
