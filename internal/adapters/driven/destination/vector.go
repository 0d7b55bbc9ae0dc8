// Package destination implements the §4.5 destination handlers: concrete
// fan-out targets an ActionBatch is dispatched to after the pipeline
// classifies and post-processes an entity.
package destination

import (
	"context"
	"crypto/sha1" //nolint:gosec // content-addressing, not a security boundary
	"encoding/hex"
	"fmt"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driven"
	"github.com/airweave-ai/airweave-core/internal/logging"
)

var vectorLog = logging.Component("destination-vector")

// Ensure VectorHandler implements the interface.
var _ driven.DestinationHandler = (*VectorHandler)(nil)

// VectorHandler bulk-upserts embedded chunks into a vector index and keyword
// search engine, and removes them on delete. Chunk doc ids are deterministic
// (sha1 of sync_id||original_entity_id||chunk_index) so replaying the same
// batch twice is idempotent rather than creating duplicate vectors.
type VectorHandler struct {
	vectorIndex driven.VectorIndex
	searchIndex driven.SearchEngine
}

// NewVectorHandler creates a handler. Either dependency may be nil to skip
// that sub-index.
func NewVectorHandler(vectorIndex driven.VectorIndex, searchIndex driven.SearchEngine) *VectorHandler {
	return &VectorHandler{vectorIndex: vectorIndex, searchIndex: searchIndex}
}

// Name identifies the handler.
func (h *VectorHandler) Name() string { return "vector" }

// DocID computes the deterministic chunk document id for a sync/entity/chunk
// triple (§4.5).
func DocID(syncID, originalEntityID string, chunkIndex int) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s%s%d", syncID, originalEntityID, chunkIndex))) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// Handle applies every action in the batch to the vector and search indexes.
func (h *VectorHandler) Handle(ctx context.Context, batch *domain.ActionBatch) error {
	if h.vectorIndex == nil && h.searchIndex == nil {
		return nil
	}
	for _, action := range batch.Actions {
		switch action.Type {
		case domain.ActionInsert, domain.ActionUpdate:
			if err := h.upsert(ctx, batch.SyncID, action); err != nil {
				return err
			}
		case domain.ActionDelete:
			if err := h.delete(ctx, batch.SyncID, action); err != nil {
				return err
			}
		case domain.ActionSkip:
			// nothing to do
		}
	}
	return nil
}

func (h *VectorHandler) upsert(ctx context.Context, syncID string, action domain.Action) error {
	for _, chunk := range action.Chunks {
		chunk.ID = DocID(syncID, action.Entity.ID(), chunk.Position)
		if h.vectorIndex != nil && chunk.Embedding != nil {
			if err := h.vectorIndex.Add(ctx, chunk.ID, chunk.Embedding); err != nil {
				return fmt.Errorf("vector upsert %s: %w", chunk.ID, err)
			}
		}
		if h.searchIndex != nil {
			if err := h.searchIndex.Index(ctx, chunk); err != nil {
				return fmt.Errorf("search index %s: %w", chunk.ID, err)
			}
		}
	}
	return nil
}

// delete removes every chunk id carried on the action. Callers that build a
// Delete action (orphan cleanup, exclusion) are expected to have populated
// Chunks from the entity store's last-known chunk list so the deterministic
// ids here match what upsert originally wrote.
func (h *VectorHandler) delete(ctx context.Context, syncID string, action domain.Action) error {
	for _, chunk := range action.Chunks {
		id := chunk.ID
		if id == "" {
			id = DocID(syncID, action.Entity.ID(), chunk.Position)
		}
		if h.vectorIndex != nil {
			if err := h.vectorIndex.Delete(ctx, id); err != nil {
				vectorLog.Debugf("vector delete %s: %v (may not exist, ignoring)", id, err)
			}
		}
		if h.searchIndex != nil {
			if err := h.searchIndex.Delete(ctx, id); err != nil {
				vectorLog.Debugf("search delete %s: %v (may not exist, ignoring)", id, err)
			}
		}
	}
	return nil
}
