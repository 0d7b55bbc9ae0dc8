package domain

// ProviderType identifies an authentication provider a source connection's
// AuthProvider credentials belong to (google, github, slack, notion, etc.).
// One ProviderType may back several connector types (e.g. Google backs
// gmail/drive/calendar).
type ProviderType string

const (
	// ProviderLocal is the no-auth pseudo-provider for local sources
	// (filesystem) that need no AuthProvider at all.
	ProviderLocal ProviderType = "local"

	ProviderGitHub  ProviderType = "github"
	ProviderGoogle  ProviderType = "google"
	ProviderSlack   ProviderType = "slack"
	ProviderNotion  ProviderType = "notion"
	ProviderDropbox ProviderType = "dropbox"
)
