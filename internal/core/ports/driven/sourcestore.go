package driven

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// SourceConnectionStore persists source connection configurations.
type SourceConnectionStore interface {
	// Save stores or updates a source connection.
	Save(ctx context.Context, conn domain.SourceConnection) error

	// Get retrieves a source connection by ID.
	Get(ctx context.Context, id string) (*domain.SourceConnection, error)

	// Delete removes a source connection.
	Delete(ctx context.Context, id string) error

	// List returns all configured source connections.
	List(ctx context.Context) ([]domain.SourceConnection, error)

	// ListByCollection returns source connections feeding a given Collection.
	ListByCollection(ctx context.Context, collectionID string) ([]domain.SourceConnection, error)
}

// CollectionStore persists Collection groupings.
type CollectionStore interface {
	Save(ctx context.Context, c domain.Collection) error
	Get(ctx context.Context, id string) (*domain.Collection, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Collection, error)
}
