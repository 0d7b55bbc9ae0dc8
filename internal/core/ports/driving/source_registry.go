package driving

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// OAuthDefaults provides default OAuth configuration for a source type, for
// suggesting auth provider URLs/scopes in the CLI's add-source flow.
type OAuthDefaults struct {
	AuthURL  string
	TokenURL string
	Scopes   []string
}

// SourceRegistry describes the source types a deployment knows how to build,
// backing the CLI's "add source" / "list source types" surface (§6). This is
// distinct from driven.SourceFactory: the registry speaks in
// domain.ConnectorType metadata for display and validation, while the
// factory actually constructs a driven.Source.
type SourceRegistry interface {
	// List returns all available source types.
	List() []domain.ConnectorType

	// Get returns a specific source type by ID.
	Get(id string) (*domain.ConnectorType, error)

	// ValidateConfig validates configuration against a source type's ConfigKeys.
	ValidateConfig(sourceType string, config map[string]string) error

	// GetOAuthDefaults returns default OAuth URLs/scopes for a source type,
	// or nil if it doesn't support OAuth.
	GetOAuthDefaults(sourceType string) *OAuthDefaults

	// SupportsOAuth reports whether a source type supports OAuth.
	SupportsOAuth(sourceType string) bool

	// BuildAuthURL constructs the OAuth authorization URL for a source type.
	BuildAuthURL(sourceType string, authProvider *domain.AuthProvider, redirectURI, state, codeChallenge string) (string, error)

	// GetUserInfo fetches the account identifier for a source type.
	GetUserInfo(ctx context.Context, sourceType string, accessToken string) (string, error)

	// GetSetupHint returns guidance text for setting up auth with a provider.
	GetSetupHint(sourceType string) string
}
