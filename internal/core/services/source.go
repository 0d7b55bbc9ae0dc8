package services

import (
	"context"
	"fmt"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driven"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driving"
)

// Ensure SourceConnectionService implements the interface.
var _ driving.SourceConnectionService = (*SourceConnectionService)(nil)

// SourceConnectionService manages source connection configurations.
type SourceConnectionService struct {
	connectionStore driven.SourceConnectionStore
	syncStore       driven.SyncStore
	entityStore     driven.EntityStore
	sourceRegistry  driving.SourceRegistry
}

// NewSourceConnectionService creates a new source connection service.
func NewSourceConnectionService(
	connectionStore driven.SourceConnectionStore,
	syncStore driven.SyncStore,
	entityStore driven.EntityStore,
) *SourceConnectionService {
	return &SourceConnectionService{
		connectionStore: connectionStore,
		syncStore:       syncStore,
		entityStore:     entityStore,
	}
}

// SetSourceRegistry sets the source registry for config validation.
func (s *SourceConnectionService) SetSourceRegistry(registry driving.SourceRegistry) {
	s.sourceRegistry = registry
}

// Add creates a new source connection.
func (s *SourceConnectionService) Add(ctx context.Context, conn domain.SourceConnection) error {
	if s.connectionStore == nil {
		return domain.ErrNotImplemented
	}
	if conn.ID == "" {
		return domain.ErrInvalidInput
	}
	existing, err := s.connectionStore.Get(ctx, conn.ID)
	if err == nil && existing != nil {
		return domain.ErrAlreadyExists
	}
	return s.connectionStore.Save(ctx, conn)
}

// Get retrieves a source connection by ID.
func (s *SourceConnectionService) Get(ctx context.Context, id string) (*domain.SourceConnection, error) {
	if s.connectionStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.connectionStore.Get(ctx, id)
}

// List returns all configured source connections.
func (s *SourceConnectionService) List(ctx context.Context) ([]domain.SourceConnection, error) {
	if s.connectionStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.connectionStore.List(ctx)
}

// Update modifies an existing source connection configuration.
func (s *SourceConnectionService) Update(ctx context.Context, conn domain.SourceConnection) error {
	if s.connectionStore == nil {
		return domain.ErrNotImplemented
	}
	if conn.ID == "" {
		return domain.ErrInvalidInput
	}
	if _, err := s.connectionStore.Get(ctx, conn.ID); err != nil {
		return domain.ErrNotFound
	}
	return s.connectionStore.Save(ctx, conn)
}

// Remove deletes a source connection and its indexed data (§4.8 step 5:
// any running job for this connection's sync is left to exit gracefully —
// this only tears down the connection's own records).
func (s *SourceConnectionService) Remove(ctx context.Context, id string) error {
	if s.connectionStore == nil {
		return domain.ErrNotImplemented
	}
	if s.entityStore != nil {
		entities, err := s.entityStore.ListEntities(ctx, id)
		if err == nil {
			for i := range entities {
				//nolint:errcheck // best-effort cleanup, continue regardless
				_ = s.entityStore.DeleteEntity(ctx, entities[i].ID())
			}
		}
	}
	if s.syncStore != nil {
		//nolint:errcheck // best-effort cleanup, continue regardless
		_ = s.syncStore.DeleteSync(ctx, id)
	}
	return s.connectionStore.Delete(ctx, id)
}

// ValidateConfig validates source configuration for a source type.
func (s *SourceConnectionService) ValidateConfig(_ context.Context, sourceType string, config map[string]string) error {
	if s.sourceRegistry == nil {
		return domain.ErrNotImplemented
	}

	connType, err := s.sourceRegistry.Get(sourceType)
	if err != nil {
		return fmt.Errorf("unknown source type %q: %w", sourceType, err)
	}

	var missingKeys []string
	for _, key := range connType.ConfigKeys {
		if key.Required {
			value, exists := config[key.Key]
			if !exists || value == "" {
				missingKeys = append(missingKeys, key.Key)
			}
		}
	}

	if len(missingKeys) > 0 {
		return fmt.Errorf("missing required config keys: %v", missingKeys)
	}

	return nil
}
