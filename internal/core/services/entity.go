package services

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driven"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driving"
)

// Ensure EntityService implements the interface.
var _ driving.EntityService = (*EntityService)(nil)

// ErrRefreshNotImplemented is returned by Refresh until single-entity
// refresh is wired into the sync orchestrator.
var ErrRefreshNotImplemented = errors.New("entity refresh not yet implemented")

// EntityService manages ingested entities within source connections.
type EntityService struct {
	entityStore        driven.EntityStore
	connectionStore     driven.SourceConnectionStore
	exclusionStore      driven.ExclusionStore
	sourceRegistry      driving.SourceRegistry
}

// NewEntityService creates a new entity service.
func NewEntityService(
	entityStore driven.EntityStore,
	connectionStore driven.SourceConnectionStore,
	exclusionStore driven.ExclusionStore,
	sourceRegistry driving.SourceRegistry,
) *EntityService {
	return &EntityService{
		entityStore:     entityStore,
		connectionStore: connectionStore,
		exclusionStore:  exclusionStore,
		sourceRegistry:  sourceRegistry,
	}
}

// ListByConnection returns all entities ingested by a source connection.
func (s *EntityService) ListByConnection(ctx context.Context, sourceConnectionID string) ([]domain.Entity, error) {
	if s.entityStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.entityStore.ListEntities(ctx, sourceConnectionID)
}

// Get retrieves an entity by its original_entity_id.
func (s *EntityService) Get(ctx context.Context, originalEntityID string) (domain.Entity, error) {
	if s.entityStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.entityStore.GetEntity(ctx, originalEntityID)
}

// GetContent returns the concatenated content of all chunks, ordered by position.
func (s *EntityService) GetContent(ctx context.Context, originalEntityID string) (string, error) {
	if s.entityStore == nil {
		return "", domain.ErrNotImplemented
	}

	if _, err := s.entityStore.GetEntity(ctx, originalEntityID); err != nil {
		return "", err
	}

	chunks, err := s.entityStore.GetChunks(ctx, originalEntityID)
	if err != nil {
		return "", err
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Position < chunks[j].Position
	})

	var builder strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(chunk.Content)
	}

	return builder.String(), nil
}

// GetDetails returns source-agnostic metadata for display.
func (s *EntityService) GetDetails(ctx context.Context, originalEntityID string) (*driving.EntityDetails, error) {
	if s.entityStore == nil {
		return nil, domain.ErrNotImplemented
	}

	entity, err := s.entityStore.GetEntity(ctx, originalEntityID)
	if err != nil {
		return nil, err
	}
	meta := entity.Meta()

	var connName, connType string
	if s.connectionStore != nil {
		conn, err := s.connectionStore.Get(ctx, meta.SourceConnectionID)
		if err == nil && conn != nil {
			connName = conn.Name
			connType = conn.ShortName
		}
	}

	chunks, err := s.entityStore.GetChunks(ctx, originalEntityID)
	chunkCount := 0
	if err == nil {
		chunkCount = len(chunks)
	}

	title, uri := entityTitleAndURI(entity)

	var createdAt, updatedAt time.Time
	base := baseOf(entity)
	if base != nil {
		if base.CreatedAt != nil {
			createdAt = *base.CreatedAt
		}
		if base.UpdatedAt != nil {
			updatedAt = *base.UpdatedAt
		}
	}

	return &driving.EntityDetails{
		ID:                   originalEntityID,
		SourceConnectionID:   meta.SourceConnectionID,
		SourceConnectionName: connName,
		SourceType:           connType,
		Title:                title,
		URI:                  uri,
		ChunkCount:           chunkCount,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
		Metadata:             map[string]string{"entity_type": meta.EntityType},
	}, nil
}

// Exclude removes an entity and marks it to skip during re-sync.
func (s *EntityService) Exclude(ctx context.Context, originalEntityID, reason string) error {
	if s.entityStore == nil {
		return domain.ErrNotImplemented
	}

	entity, err := s.entityStore.GetEntity(ctx, originalEntityID)
	if err != nil {
		return err
	}
	meta := entity.Meta()
	_, uri := entityTitleAndURI(entity)

	if s.exclusionStore != nil {
		exclusion := &domain.Exclusion{
			ID:                 fmt.Sprintf("excl-%s", originalEntityID),
			SourceConnectionID: meta.SourceConnectionID,
			EntityID:           originalEntityID,
			URI:                uri,
			Reason:             reason,
			ExcludedAt:         time.Now(),
		}
		if err := s.exclusionStore.Add(ctx, exclusion); err != nil {
			return fmt.Errorf("failed to add exclusion: %w", err)
		}
	}

	return s.entityStore.DeleteEntity(ctx, originalEntityID)
}

// Refresh re-syncs a single entity from its source.
// TODO: implement once the sync orchestrator exposes a single-entity replay path.
func (s *EntityService) Refresh(_ context.Context, _ string) error {
	return ErrRefreshNotImplemented
}

// Open opens the entity's original location in the default application.
func (s *EntityService) Open(ctx context.Context, originalEntityID string) error {
	if s.entityStore == nil {
		return domain.ErrNotImplemented
	}

	entity, err := s.entityStore.GetEntity(ctx, originalEntityID)
	if err != nil {
		return err
	}

	return openURL(s.resolveWebURL(ctx, entity))
}

// resolveWebURL converts an entity's URI to an openable URL using the
// source type's resolver, falling back to generic URI conversion.
func (s *EntityService) resolveWebURL(ctx context.Context, entity domain.Entity) string {
	if resolved := s.trySourceResolver(ctx, entity); resolved != "" {
		return resolved
	}
	_, uri := entityTitleAndURI(entity)
	return convertToOpenableURL(uri)
}

func (s *EntityService) trySourceResolver(ctx context.Context, entity domain.Entity) string {
	if s.connectionStore == nil || s.sourceRegistry == nil {
		return ""
	}
	meta := entity.Meta()
	conn, err := s.connectionStore.Get(ctx, meta.SourceConnectionID)
	if err != nil || conn == nil {
		return ""
	}
	sourceType, err := s.sourceRegistry.Get(conn.ShortName)
	if err != nil || sourceType == nil || sourceType.WebURLResolver == nil {
		return ""
	}
	_, uri := entityTitleAndURI(entity)
	return sourceType.WebURLResolver(uri, nil)
}

// baseOf unwraps the embedded BaseEntity common to every Entity variant.
func baseOf(e domain.Entity) *domain.BaseEntity {
	switch v := e.(type) {
	case *domain.BaseEntity:
		return v
	case *domain.ChunkEntity:
		return &v.BaseEntity
	case *domain.FileEntity:
		return &v.BaseEntity
	default:
		return nil
	}
}

// entityTitleAndURI extracts a display title and original-location URI. URI
// isn't part of the BaseEntity shape (§3 leaves source-specific location
// fields to the subclass); FileEntity's DownloadURL is the closest analogue,
// source-specific entities otherwise surface it through their own fields.
func entityTitleAndURI(e domain.Entity) (title, uri string) {
	base := baseOf(e)
	if base != nil {
		title = base.Name
	}
	if f, ok := e.(*domain.FileEntity); ok {
		uri = f.DownloadURL
	}
	return title, uri
}

// openURL opens a URL/path using the system default handler.
func openURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// convertToOpenableURL converts internal URIs to browser-openable URLs.
func convertToOpenableURL(uri string) string {
	if strings.HasPrefix(uri, "github://") {
		return "https://github.com/" + strings.TrimPrefix(uri, "github://")
	}

	if strings.HasPrefix(uri, "file://") {
		return strings.TrimPrefix(uri, "file://")
	}

	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return uri
	}

	return uri
}
