package services

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/connectors/dropbox"
	"github.com/airweave-ai/airweave-core/internal/connectors/filesystem"
	"github.com/airweave-ai/airweave-core/internal/connectors/github"
	"github.com/airweave-ai/airweave-core/internal/connectors/google/calendar"
	"github.com/airweave-ai/airweave-core/internal/connectors/google/drive"
	"github.com/airweave-ai/airweave-core/internal/connectors/google/gmail"
	"github.com/airweave-ai/airweave-core/internal/core/domain"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driven"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driving"
)

// Ensure SourceRegistry implements the interface.
var _ driving.SourceRegistry = (*SourceRegistry)(nil)

// SourceRegistry provides information about the source types a deployment
// knows how to build.
type SourceRegistry struct {
	sources       map[string]domain.ConnectorType
	sourceFactory driven.SourceFactory
}

// NewSourceRegistry creates a new source registry with built-in sources.
func NewSourceRegistry(sourceFactory driven.SourceFactory) *SourceRegistry {
	r := &SourceRegistry{
		sources:       make(map[string]domain.ConnectorType),
		sourceFactory: sourceFactory,
	}
	r.registerBuiltinSources()
	return r
}

func (r *SourceRegistry) registerBuiltinSources() {
	r.registerFilesystem()
	r.registerGitHub()
	r.registerGoogleDrive()
	r.registerGmail()
	r.registerGoogleCalendar()
	r.registerDropbox()
}

func (r *SourceRegistry) registerFilesystem() {
	r.sources["filesystem"] = domain.ConnectorType{
		ID:             "filesystem",
		Name:           "Local Filesystem",
		Description:    "Index files from a local directory",
		ProviderType:   domain.ProviderLocal,
		AuthCapability: domain.AuthCapNone,
		AuthMethod:     domain.AuthMethodNone,
		ConfigKeys:     filesystemConfigKeys(),
		WebURLResolver: filesystem.ResolveWebURL,
	}
}

func filesystemConfigKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         "path",
			Label:       "Directory Path",
			Description: "Path to the directory to index",
			Required:    true,
		},
		{
			Key:         "patterns",
			Label:       "File Patterns",
			Description: "Glob patterns to match (e.g., *.md,*.txt)",
		},
	}
}

func (r *SourceRegistry) registerGitHub() {
	r.sources["github"] = domain.ConnectorType{
		ID:             "github",
		Name:           "GitHub",
		Description:    "Index repositories, issues, PRs, and wikis from GitHub",
		ProviderType:   domain.ProviderGitHub,
		AuthCapability: domain.AuthCapPAT | domain.AuthCapOAuth,
		AuthMethod:     domain.AuthMethodPAT,
		ConfigKeys:     githubConfigKeys(),
		WebURLResolver: github.ResolveWebURL,
	}
}

func githubConfigKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         "content_types",
			Label:       "Content Types",
			Description: "Content to index: files,issues,prs,wikis",
			Default:     "files",
		},
		{
			Key:         "file_patterns",
			Label:       "File Patterns",
			Description: "Glob patterns for files to include",
			Default:     "*",
		},
	}
}

func (r *SourceRegistry) registerGoogleDrive() {
	r.sources["google-drive"] = domain.ConnectorType{
		ID:             "google-drive",
		Name:           "Google Drive",
		Description:    "Index documents from Google Drive",
		ProviderType:   domain.ProviderGoogle,
		AuthCapability: domain.AuthCapOAuth,
		AuthMethod:     domain.AuthMethodOAuth,
		ConfigKeys:     driveConfigKeys(),
		WebURLResolver: drive.ResolveWebURL,
	}
}

func driveConfigKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         "content_types",
			Label:       "Content Types",
			Description: "Content to sync: files,docs,sheets",
			Default:     "files,docs,sheets",
		},
		{
			Key:         "folder_ids",
			Label:       "Folder IDs",
			Description: "Specific folder IDs to sync (optional)",
		},
		{
			Key:         "mime_types",
			Label:       "MIME Types",
			Description: "Filter by MIME types (optional)",
		},
	}
}

func (r *SourceRegistry) registerGmail() {
	r.sources["gmail"] = domain.ConnectorType{
		ID:             "gmail",
		Name:           "Gmail",
		Description:    "Index emails from Gmail",
		ProviderType:   domain.ProviderGoogle,
		AuthCapability: domain.AuthCapOAuth,
		AuthMethod:     domain.AuthMethodOAuth,
		ConfigKeys:     gmailConfigKeys(),
		WebURLResolver: gmail.ResolveWebURL,
	}
}

func gmailConfigKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         "label_ids",
			Label:       "Label IDs",
			Description: "Labels to sync: INBOX,SENT,etc",
			Default:     "INBOX",
		},
		{
			Key:         "query",
			Label:       "Search Query",
			Description: "Gmail search query to filter emails",
		},
		{
			Key:         "include_spam_trash",
			Label:       "Include Spam/Trash",
			Description: "Include spam and trash (true/false)",
			Default:     "false",
		},
	}
}

func (r *SourceRegistry) registerGoogleCalendar() {
	r.sources["google-calendar"] = domain.ConnectorType{
		ID:             "google-calendar",
		Name:           "Google Calendar",
		Description:    "Index events from Google Calendar",
		ProviderType:   domain.ProviderGoogle,
		AuthCapability: domain.AuthCapOAuth,
		AuthMethod:     domain.AuthMethodOAuth,
		ConfigKeys:     calendarConfigKeys(),
		WebURLResolver: calendar.ResolveWebURL,
	}
}

func calendarConfigKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         "calendar_ids",
			Label:       "Calendar IDs",
			Description: "Specific calendar IDs to sync (optional)",
		},
		{
			Key:         "single_events",
			Label:       "Expand Recurring",
			Description: "Expand recurring events (true/false)",
			Default:     "true",
		},
	}
}

func (r *SourceRegistry) registerDropbox() {
	r.sources["dropbox"] = domain.ConnectorType{
		ID:             "dropbox",
		Name:           "Dropbox",
		Description:    "Index files from Dropbox",
		ProviderType:   domain.ProviderDropbox,
		AuthCapability: domain.AuthCapOAuth,
		AuthMethod:     domain.AuthMethodOAuth,
		ConfigKeys:     dropboxConfigKeys(),
		WebURLResolver: dropbox.ResolveWebURL,
	}
}

func dropboxConfigKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         "path",
			Label:       "Folder Path",
			Description: "Dropbox folder to sync (empty for root)",
		},
		{
			Key:         "file_patterns",
			Label:       "File Patterns",
			Description: "Glob patterns for files to include",
			Default:     "*",
		},
	}
}

// List returns all available source types.
func (r *SourceRegistry) List() []domain.ConnectorType {
	result := make([]domain.ConnectorType, 0, len(r.sources))
	for _, c := range r.sources {
		result = append(result, c)
	}
	return result
}

// Get returns a specific source type by ID.
func (r *SourceRegistry) Get(id string) (*domain.ConnectorType, error) {
	c, ok := r.sources[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// ValidateConfig validates configuration for a source type.
func (r *SourceRegistry) ValidateConfig(sourceType string, config map[string]string) error {
	source, ok := r.sources[sourceType]
	if !ok {
		return domain.ErrNotFound
	}

	for _, key := range source.ConfigKeys {
		if key.Required {
			val, exists := config[key.Key]
			if !exists || val == "" {
				return domain.ErrInvalidInput
			}
		}
	}
	return nil
}

// GetOAuthDefaults returns default OAuth URLs and scopes for a source type.
// Returns nil if the source type doesn't support OAuth.
func (r *SourceRegistry) GetOAuthDefaults(sourceType string) *driving.OAuthDefaults {
	if r.sourceFactory == nil {
		return nil
	}
	defaults := r.sourceFactory.GetDefaultOAuthConfig(sourceType)
	if defaults == nil {
		return nil
	}
	return &driving.OAuthDefaults{
		AuthURL:  defaults.AuthURL,
		TokenURL: defaults.TokenURL,
		Scopes:   defaults.Scopes,
	}
}

// SupportsOAuth returns true if the source type supports OAuth authentication.
func (r *SourceRegistry) SupportsOAuth(sourceType string) bool {
	if r.sourceFactory == nil {
		return false
	}
	return r.sourceFactory.SupportsOAuth(sourceType)
}

// BuildAuthURL constructs the OAuth authorization URL for a source type.
// Includes provider-specific parameters (e.g., access_type=offline for Google).
func (r *SourceRegistry) BuildAuthURL(
	sourceType string,
	authProvider *domain.AuthProvider,
	redirectURI, state, codeChallenge string,
) (string, error) {
	if r.sourceFactory == nil {
		return "", domain.ErrNotFound
	}
	return r.sourceFactory.BuildAuthURL(sourceType, authProvider, redirectURI, state, codeChallenge)
}

// GetUserInfo fetches the account identifier (email/username) for a source type.
func (r *SourceRegistry) GetUserInfo(
	ctx context.Context,
	sourceType string,
	accessToken string,
) (string, error) {
	if r.sourceFactory == nil {
		return "", domain.ErrNotFound
	}
	return r.sourceFactory.GetUserInfo(ctx, sourceType, accessToken)
}

// GetSetupHint returns guidance text for setting up OAuth/PAT with a provider.
func (r *SourceRegistry) GetSetupHint(sourceType string) string {
	if r.sourceFactory == nil {
		return ""
	}
	return r.sourceFactory.GetSetupHint(sourceType)
}
