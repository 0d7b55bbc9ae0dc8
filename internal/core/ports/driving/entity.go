package driving

import (
	"context"
	"time"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// EntityService manages ingested entities within source connections, for the
// relational destination's CLI/admin surface.
type EntityService interface {
	// ListByConnection returns all entities ingested by a source connection.
	ListByConnection(ctx context.Context, sourceConnectionID string) ([]domain.Entity, error)

	// Get retrieves an entity by its original_entity_id.
	Get(ctx context.Context, originalEntityID string) (domain.Entity, error)

	// GetContent returns the concatenated content of all chunks.
	GetContent(ctx context.Context, originalEntityID string) (string, error)

	// GetDetails returns source-agnostic metadata for display.
	GetDetails(ctx context.Context, originalEntityID string) (*EntityDetails, error)

	// Exclude removes an entity and marks it to skip during re-sync.
	Exclude(ctx context.Context, originalEntityID, reason string) error

	// Refresh re-syncs a single entity from its source.
	Refresh(ctx context.Context, originalEntityID string) error

	// Open opens the entity's original location in the default application.
	Open(ctx context.Context, originalEntityID string) error
}

// EntityDetails provides a standardised view of entity metadata.
type EntityDetails struct {
	// ID is the unique entity identifier.
	ID string

	// SourceConnectionID links to the parent source connection.
	SourceConnectionID string

	// SourceConnectionName is the human-readable connection name.
	SourceConnectionName string

	// SourceType is the connector type (e.g., "filesystem").
	SourceType string

	// Title is the entity title.
	Title string

	// URI is the original location.
	URI string

	// ChunkCount is the number of chunks.
	ChunkCount int

	// CreatedAt is when the entity was first indexed.
	CreatedAt time.Time

	// UpdatedAt is when the entity was last updated.
	UpdatedAt time.Time

	// Metadata contains flattened key-value pairs for display.
	Metadata map[string]string
}
