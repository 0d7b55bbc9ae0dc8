package driven

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// SyncStore persists Sync configuration, destination slots, and SyncJob
// execution history.
type SyncStore interface {
	SaveSync(ctx context.Context, sync domain.Sync) error
	GetSync(ctx context.Context, id string) (*domain.Sync, error)
	DeleteSync(ctx context.Context, id string) error
	ListSyncs(ctx context.Context) ([]domain.Sync, error)

	// SaveJob stores or updates a SyncJob.
	SaveJob(ctx context.Context, job domain.SyncJob) error

	// GetJob retrieves a SyncJob by ID.
	GetJob(ctx context.Context, id string) (*domain.SyncJob, error)

	// GetActiveJob returns the single active job for a sync, if any
	// (enforces the at-most-one-job-per-sync invariant at the read path;
	// the store's uniqueness constraint enforces it at the write path).
	GetActiveJob(ctx context.Context, syncID string) (*domain.SyncJob, error)

	// ListJobs returns job history for a sync, most recent first.
	ListJobs(ctx context.Context, syncID string, limit int) ([]domain.SyncJob, error)
}

// CursorStore persists SyncCursor state (§4.7's get_cursor_data,
// get_cursor_field, create_or_update, update_cursor_data, delete, summary).
type CursorStore interface {
	// GetCursor returns the full cursor record, including UpdatedAt, so
	// callers can evaluate staleness (domain.SyncCursor.IsExpired,
	// NeedsPeriodicFullSync). Returns domain.ErrNotFound if none exists yet.
	GetCursor(ctx context.Context, syncID string) (*domain.SyncCursor, error)

	// GetCursorData returns the opaque cursor payload for a sync, or nil if
	// none exists yet.
	GetCursorData(ctx context.Context, syncID string) ([]byte, error)

	// GetCursorField returns the configured cursor field name for a sync.
	GetCursorField(ctx context.Context, syncID string) (string, error)

	// CreateOrUpdate upserts the full cursor for a sync.
	CreateOrUpdate(ctx context.Context, cursor domain.SyncCursor) error

	// UpdateCursorData replaces only the opaque payload, leaving CursorField
	// and UpdatedAt semantics to the store.
	UpdateCursorData(ctx context.Context, syncID string, data []byte) error

	// Delete removes a sync's cursor entirely (e.g. on force-full-sync reset).
	Delete(ctx context.Context, syncID string) error

	// Summary returns a short diagnostic string for CLI/log output.
	Summary(ctx context.Context, syncID string) (string, error)
}
