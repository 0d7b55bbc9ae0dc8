package driving

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// SourceConnectionService manages source connection configurations.
type SourceConnectionService interface {
	// Add creates a new source connection.
	Add(ctx context.Context, conn domain.SourceConnection) error

	// Get retrieves a source connection by ID.
	Get(ctx context.Context, id string) (*domain.SourceConnection, error)

	// List returns all configured source connections.
	List(ctx context.Context) ([]domain.SourceConnection, error)

	// Update modifies an existing source connection configuration.
	Update(ctx context.Context, conn domain.SourceConnection) error

	// Remove deletes a source connection and its indexed data (§4.8 step 5
	// self-destruct: any queued or running job for this connection's sync
	// exits gracefully without being marked Failed).
	Remove(ctx context.Context, id string) error

	// ValidateConfig validates source configuration for a source type.
	// Returns an error if required fields are missing or invalid.
	ValidateConfig(ctx context.Context, sourceType string, config map[string]string) error
}
