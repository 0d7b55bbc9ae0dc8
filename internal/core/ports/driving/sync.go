package driving

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// SyncOrchestrator drives a sync job end-to-end: build context, stream,
// dispatch, finalize, emit progress, handle cancellation and self-destruct
// (§4.8). Pins the CLI admin surface's "run a sync" / "cancel a sync" shape
// (§6) without implementing the HTTP/API surface itself.
type SyncOrchestrator interface {
	// Run starts a new SyncJob for the given sync. forceFull bypasses the
	// stored cursor and re-fetches the full universe of entities.
	// Fails fast with domain.ErrSyncJobConflict if a job is already active.
	Run(ctx context.Context, syncID string, forceFull bool) (*domain.SyncJob, error)

	// RunAll triggers Run for every configured sync.
	RunAll(ctx context.Context) error

	// Cancel requests cooperative cancellation of a sync's active job.
	Cancel(ctx context.Context, syncID string) error

	// Status returns the current SyncStatus for a sync.
	Status(ctx context.Context, syncID string) (*SyncStatus, error)
}

// SyncStatus represents the current state of a sync operation.
type SyncStatus struct {
	// SyncID identifies the sync.
	SyncID string

	// JobStatus is the active (or most recent) job's status.
	JobStatus domain.JobStatus

	// EntitiesProcessed is the count of entities processed so far.
	EntitiesProcessed int

	// ErrorCount is the number of errors encountered.
	ErrorCount int
}

// DestinationRegistry manages a sync's destination slots: attach, promote,
// switch active/shadow roles, and enforce the at-most-one-Active invariant
// (§4.6). Pins the CLI admin surface's "fork/switch/set-role on a
// destination slot" shape (§6).
type DestinationRegistry interface {
	// Fork attaches a new destination slot to a sync as a Shadow. It does
	// not replay the sync's snapshot or cursor into the new slot.
	Fork(ctx context.Context, syncID string, conn domain.SyncConnection) (*domain.SyncConnection, error)

	// Switch promotes a Shadow slot to Active and demotes the previous
	// Active slot to Deprecated, atomically.
	Switch(ctx context.Context, syncID, slotID string) error

	// SetRole directly sets a slot's role, enforcing ValidateInvariants.
	SetRole(ctx context.Context, syncID, slotID string, role domain.SlotRole) error

	// Remove detaches a destination slot. Returns domain.ErrCannotRemoveActive
	// if the slot is Active.
	Remove(ctx context.Context, syncID, slotID string) error

	// ListSlots returns all destination slots for a sync.
	ListSlots(ctx context.Context, syncID string) ([]domain.SyncConnection, error)
}
