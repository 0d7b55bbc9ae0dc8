package destination

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driven"
)

// Ensure SnapshotHandler implements the interface.
var _ driven.DestinationHandler = (*SnapshotHandler)(nil)

// SnapshotHandler captures the raw, pre-normalisation entity payload for
// replay (§4.5, §4.7's ReplayTargetDestID): one manifest.json summarising the
// run plus one entities/{entity_id}.json envelope per captured entity.
type SnapshotHandler struct {
	blobs           driven.BlobStore
	sourceShortName func(syncID string) string
}

// NewSnapshotHandler creates a handler over a BlobStore. sourceShortName
// resolves a sync id to the source's short name for the manifest; pass nil
// to leave it blank.
func NewSnapshotHandler(blobs driven.BlobStore, sourceShortName func(syncID string) string) *SnapshotHandler {
	return &SnapshotHandler{blobs: blobs, sourceShortName: sourceShortName}
}

// Name identifies the handler.
func (h *SnapshotHandler) Name() string { return "snapshot" }

// Handle writes a manifest and one entity envelope per Insert/Update action.
// Delete actions remove the entity's prior envelope; Skip is a no-op.
func (h *SnapshotHandler) Handle(ctx context.Context, batch *domain.ActionBatch) error {
	if h.blobs == nil {
		return nil
	}

	captured := 0
	for _, action := range batch.Actions {
		switch action.Type {
		case domain.ActionInsert, domain.ActionUpdate:
			if err := h.captureEntity(ctx, batch.SyncID, action.Entity); err != nil {
				return err
			}
			captured++
		case domain.ActionDelete:
			path := entityPath(batch.SyncID, action.Entity.ID())
			// Best-effort: a missing envelope for a deleted entity is not
			// an error (it may never have been captured).
			if exists, _ := h.blobs.Exists(ctx, path); exists {
				if err := h.blobs.Delete(ctx, path); err != nil {
					return fmt.Errorf("delete snapshot envelope %s: %w", path, err)
				}
			}
		case domain.ActionSkip:
			// nothing to capture
		}
	}

	if captured == 0 {
		return nil
	}

	shortName := ""
	if h.sourceShortName != nil {
		shortName = h.sourceShortName(batch.SyncID)
	}
	manifest := domain.SnapshotManifest{
		SyncID:          batch.SyncID,
		SourceShortName: shortName,
		EntityCount:     captured,
		CreatedAt:       time.Now(),
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return h.blobs.Write(ctx, manifestPath(batch.SyncID), data)
}

func (h *SnapshotHandler) captureEntity(ctx context.Context, syncID string, entity domain.Entity) error {
	raw, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal entity %s: %w", entity.ID(), err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("flatten entity %s: %w", entity.ID(), err)
	}

	envelope := domain.CapturedEntityEnvelope{
		EntityClass:  string(entity.Kind()),
		EntityModule: "domain",
		CapturedAt:   time.Now(),
		Data:         fields,
	}
	if file, ok := entity.(*domain.FileEntity); ok && file.LocalPath != "" {
		envelope.StoredFile = file.LocalPath
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal envelope %s: %w", entity.ID(), err)
	}
	return h.blobs.Write(ctx, entityPath(syncID, entity.ID()), data)
}

func manifestPath(syncID string) string {
	return fmt.Sprintf("raw/%s/manifest.json", syncID)
}

func entityPath(syncID, entityID string) string {
	return fmt.Sprintf("raw/%s/entities/%s.json", syncID, entityID)
}
