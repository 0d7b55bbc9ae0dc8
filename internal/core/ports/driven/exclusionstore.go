package driven

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// ExclusionStore persists entity exclusions.
// Excluded entities are skipped during re-sync operations.
type ExclusionStore interface {
	// Add creates a new exclusion.
	Add(ctx context.Context, exclusion *domain.Exclusion) error

	// Remove deletes an exclusion by ID.
	Remove(ctx context.Context, id string) error

	// GetByConnection returns all exclusions for a source connection.
	GetByConnection(ctx context.Context, sourceConnectionID string) ([]domain.Exclusion, error)

	// IsExcluded checks if a URI is excluded for a source connection.
	IsExcluded(ctx context.Context, sourceConnectionID, uri string) (bool, error)

	// List returns all exclusions.
	List(ctx context.Context) ([]domain.Exclusion, error)
}
