package driving

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// CredentialsService manages user-specific authentication credentials.
// Credentials store OAuth tokens or PAT along with the account identifier.
type CredentialsService interface {
	// Save creates or updates credentials.
	Save(ctx context.Context, creds domain.Credentials) error

	// Get retrieves credentials by ID.
	Get(ctx context.Context, id string) (*domain.Credentials, error)

	// GetByConnectionID retrieves credentials for a specific source connection.
	// Returns nil if no credentials exist for the connection.
	GetByConnectionID(ctx context.Context, sourceConnectionID string) (*domain.Credentials, error)

	// Delete removes credentials by ID.
	Delete(ctx context.Context, id string) error
}
