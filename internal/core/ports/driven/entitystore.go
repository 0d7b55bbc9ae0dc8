package driven

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// EntityStore persists entities and chunks for the relational destination
// handler (§4.5's "relational handler"). Backed by SQLite for metadata
// storage.
type EntityStore interface {
	// SaveEntity stores or updates a base entity record.
	SaveEntity(ctx context.Context, entity domain.Entity) error

	// SaveChunks stores chunks produced for an entity.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetEntity retrieves an entity by its original_entity_id.
	GetEntity(ctx context.Context, originalEntityID string) (domain.Entity, error)

	// GetChunks retrieves all chunks for an entity.
	GetChunks(ctx context.Context, originalEntityID string) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by its deterministic ID.
	GetChunk(ctx context.Context, chunkID string) (*domain.Chunk, error)

	// DeleteEntity removes an entity and its chunks.
	DeleteEntity(ctx context.Context, originalEntityID string) error

	// ListEntities returns entities ingested by a sync.
	ListEntities(ctx context.Context, syncID string) ([]domain.Entity, error)

	// ContentHash returns the stored content hash for an entity, for
	// skip-detection during incremental syncs, or empty string if unknown.
	ContentHash(ctx context.Context, originalEntityID string) (string, error)
}
