package driven

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// SourceBuilder creates a Source from a SourceConnection with auth support.
// TokenProvider may be nil for sources that don't require authentication.
type SourceBuilder func(conn domain.SourceConnection, tokenProvider TokenProvider) (Source, error)

// OAuthDefaults provides default OAuth configuration for a source type.
// Used when creating auth providers to suggest default URLs and scopes.
type OAuthDefaults struct {
	// AuthURL is the default authorization endpoint.
	AuthURL string
	// TokenURL is the default token exchange endpoint.
	TokenURL string
	// Scopes are the default OAuth scopes to request.
	Scopes []string
}

// SourceFactory creates sources from source connection configuration.
// It maintains a registry of source types and their builders.
// Also provides OAuth operations for source types that support OAuth.
type SourceFactory interface {
	// Create returns a Source for the given connection.
	// Resolves TokenProvider from conn.CredentialsID internally.
	// Returns ErrUnsupportedType if the source type is unknown.
	Create(ctx context.Context, conn domain.SourceConnection) (Source, error)

	// Register adds a source builder for the given type.
	Register(sourceType string, builder SourceBuilder)

	// SupportedTypes returns all registered source types.
	SupportedTypes() []string

	// === OAuth Methods ===

	// BuildAuthURL constructs the OAuth authorization URL for a source type.
	// Includes provider-specific parameters (e.g., access_type=offline for Google).
	// Returns error if the source type doesn't support OAuth.
	BuildAuthURL(sourceType string, authProvider *domain.AuthProvider, redirectURI, state, codeVerifier string) (string, error)

	// ExchangeCode exchanges an authorization code for tokens.
	// Returns error if the source type doesn't support OAuth.
	ExchangeCode(ctx context.Context, sourceType string, authProvider *domain.AuthProvider, code, redirectURI, codeVerifier string) (*domain.OAuthToken, error)

	// RefreshToken refreshes an expired access token using a refresh token.
	// Returns error if the source type doesn't support OAuth.
	RefreshToken(ctx context.Context, sourceType string, authProvider *domain.AuthProvider, refreshToken string) (*domain.OAuthToken, error)

	// GetUserInfo fetches the account identifier (email/username) for a source type.
	// Used to identify which account was authenticated.
	// Returns error if the source type doesn't support OAuth.
	GetUserInfo(ctx context.Context, sourceType string, accessToken string) (string, error)

	// GetDefaultOAuthConfig returns default OAuth URLs and scopes for a source type.
	// Returns nil if the source type doesn't support OAuth.
	GetDefaultOAuthConfig(sourceType string) *OAuthDefaults

	// SupportsOAuth returns true if the source type supports OAuth authentication.
	SupportsOAuth(sourceType string) bool

	// GetSetupHint returns guidance text for setting up OAuth/PAT with a provider.
	// Returns empty string if no hint is available.
	GetSetupHint(sourceType string) string
}
