package driven

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// DestinationHandler fans an ActionBatch out to one concrete destination
// (vector index, raw snapshot, access-control store, ...). The orchestrator
// drives every configured handler with the same batch; a handler that has
// nothing to do for an action type (e.g. the snapshot handler seeing a
// Skip) is a no-op for it (§4.5, §4.6).
type DestinationHandler interface {
	// Name identifies the handler for logging and the destination-slot
	// wiring that decides which handlers apply to which SyncConnection.
	Name() string

	// Handle applies every action in the batch to this destination.
	Handle(ctx context.Context, batch *domain.ActionBatch) error
}

// BlobStore persists opaque byte payloads under a path, for the raw-data
// snapshot handler's manifest.json / entities/*.json / files/* tree (§4.5).
type BlobStore interface {
	Write(ctx context.Context, path string, data []byte) error
	Read(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
}

// AccessControlStore persists membership rows a source reports through
// Entity.Meta().Access, for query-time principal filtering (§4.5's
// access-control handler, domain.SearchOptions.Principals).
type AccessControlStore interface {
	Apply(ctx context.Context, actions []domain.MembershipAction) error
	// PrincipalsFor returns the principals (plus "public" sentinel) allowed
	// to see a given entity.
	PrincipalsFor(ctx context.Context, entityID string) ([]string, error)
}
