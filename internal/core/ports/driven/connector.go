package driven

import (
	"context"
	"errors"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// Source produces entities from a data source. Each source type (filesystem,
// gmail, github, notion, etc.) implements this interface.
type Source interface {
	// Type returns the connector type identifier.
	Type() string

	// ConnectionID returns the configured source connection ID.
	ConnectionID() string

	// Capabilities returns what this source supports.
	Capabilities() SourceCapabilities

	// Validate checks if the source is properly configured and authenticated.
	// Performs a lightweight check to verify the source is ready to sync.
	// For API sources, this typically makes a test API call.
	// For filesystem, this checks the path exists and is readable.
	// Returns nil if ready to sync, error describing the problem otherwise.
	Validate(ctx context.Context) error

	// Produce streams entities from the source. If cursor is empty, or
	// forceFull is true, it emits the full universe of entities; if cursor
	// is non-empty and the source supports continuous sync, it emits only
	// entities changed since the cursor's position.
	//
	// A successful completion sends SyncComplete on the error channel,
	// carrying the updated cursor to persist for the next run. Sources that
	// do not support continuous sync (SupportsContinuous == false) ignore
	// the supplied cursor and always emit SyncComplete with an empty cursor.
	Produce(ctx context.Context, cursor domain.SyncCursor, forceFull bool) (<-chan domain.Entity, <-chan error)

	// Search performs a federated search directly against the source's own
	// API, bypassing the vector/relational destinations entirely. Only
	// available if SupportsFederatedSearch is true; mutually exclusive with
	// Produce per source (a source advertises one or the other, never both).
	Search(ctx context.Context, query string, limit int) ([]domain.ExecutionResult, error)

	// Watch listens for real-time changes.
	// Only available if SupportsWatch is true.
	Watch(ctx context.Context) (<-chan domain.Entity, error)

	// GetAccountIdentifier fetches the user's email or username from the provider.
	// Called after OAuth completion to identify the account for display.
	// Returns the account identifier (e.g., "user@gmail.com", "octocat") or empty string.
	// Returns empty string for no-auth sources (filesystem).
	GetAccountIdentifier(ctx context.Context, accessToken string) (string, error)

	// Close releases resources.
	Close() error
}

// SourceCapabilities describes what a source supports.
type SourceCapabilities struct {
	// === Core Sync Capabilities ===

	// SupportsContinuous indicates the source can fetch only changes since a
	// cursor (spec's "supports_continuous").
	SupportsContinuous bool

	// SupportsFederatedSearch indicates the source answers Search() directly,
	// instead of Produce()-ing entities for a destination to index.
	// Mutually exclusive with SupportsContinuous/Produce being meaningful.
	SupportsFederatedSearch bool

	// SupportsWatch indicates the source can push real-time events.
	SupportsWatch bool

	// SupportsHierarchy indicates the source has nested structure
	// (folders, threads) reflected in entity breadcrumbs.
	SupportsHierarchy bool

	// SupportsBinary indicates the source produces FileEntity content.
	SupportsBinary bool

	// === Authentication ===

	// RequiresAuth indicates the source needs authentication.
	// False for local sources like filesystem.
	RequiresAuth bool

	// === Validation & Health ===

	// SupportsValidation indicates Validate() performs actual validation.
	// When true, Validate() makes a real check (e.g., API call, path check).
	SupportsValidation bool

	// === Sync Behaviour ===

	// SupportsPartialSync indicates the source can resume interrupted syncs.
	// When true, sync progress should be saved incrementally.
	SupportsPartialSync bool

	// === API Characteristics (informational) ===

	// SupportsRateLimiting indicates the source handles rate limiting internally.
	// Helps the orchestrator understand source behaviour.
	SupportsRateLimiting bool

	// SupportsPagination indicates the source handles paginated APIs.
	// Sources handle pagination internally; this is informational.
	SupportsPagination bool
}

// SyncComplete is sent on the error channel when Produce completes
// successfully. Carries the new cursor state for incremental sync.
type SyncComplete struct {
	NewCursorData  []byte
	NewCursorField string
}

// Error implements the error interface.
// This allows SyncComplete to be sent on the error channel.
func (SyncComplete) Error() string {
	return "sync complete"
}

// IsSyncComplete checks if an error is actually a successful completion.
// Returns the SyncComplete and true if it is, nil and false otherwise.
// Callers must send &SyncComplete{...} (a pointer) on the error channel —
// errors.As only matches the pointer type here.
func IsSyncComplete(err error) (*SyncComplete, bool) {
	var sc *SyncComplete
	if errors.As(err, &sc) {
		return sc, true
	}
	return nil, false
}
