package memory

import (
	"context"
	"sync"
	"time"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driven"
)

// Ensure CursorStore implements the interface.
var _ driven.CursorStore = (*CursorStore)(nil)

// CursorStore is an in-memory implementation of driven.CursorStore.
type CursorStore struct {
	mu      sync.RWMutex
	cursors map[string]domain.SyncCursor
}

// NewCursorStore creates a new in-memory cursor store.
func NewCursorStore() *CursorStore {
	return &CursorStore{cursors: make(map[string]domain.SyncCursor)}
}

// GetCursor returns the full cursor record for a sync.
func (c *CursorStore) GetCursor(_ context.Context, syncID string) (*domain.SyncCursor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cursor, ok := c.cursors[syncID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cursor, nil
}

// GetCursorData returns the opaque cursor payload for a sync, or nil if none
// exists yet.
func (c *CursorStore) GetCursorData(_ context.Context, syncID string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cursor, ok := c.cursors[syncID]
	if !ok {
		return nil, nil
	}
	return cursor.CursorData, nil
}

// GetCursorField returns the configured cursor field name for a sync.
func (c *CursorStore) GetCursorField(_ context.Context, syncID string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cursors[syncID].CursorField, nil
}

// CreateOrUpdate upserts the full cursor for a sync.
func (c *CursorStore) CreateOrUpdate(_ context.Context, cursor domain.SyncCursor) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursors[cursor.SyncID] = cursor
	return nil
}

// UpdateCursorData replaces only the opaque payload, preserving CursorField
// and bumping UpdatedAt to now.
func (c *CursorStore) UpdateCursorData(_ context.Context, syncID string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cursor := c.cursors[syncID]
	cursor.SyncID = syncID
	cursor.CursorData = data
	cursor.UpdatedAt = time.Now()
	c.cursors[syncID] = cursor
	return nil
}

// Delete removes a sync's cursor entirely.
func (c *CursorStore) Delete(_ context.Context, syncID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cursors, syncID)
	return nil
}

// Summary returns a short diagnostic string for CLI/log output.
func (c *CursorStore) Summary(_ context.Context, syncID string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cursor, ok := c.cursors[syncID]
	if !ok {
		return "no cursor", nil
	}
	return "field=" + cursor.CursorField + " updated_at=" + cursor.UpdatedAt.String(), nil
}
