package domain

import (
	"fmt"
	"strings"
	"time"
)

// ConnectionAuthState is the authentication lifecycle of a SourceConnection
// (§3, §4.8 step 2).
type ConnectionAuthState string

const (
	ConnAuthPending    ConnectionAuthState = "pending"
	ConnAuthActive     ConnectionAuthState = "active"
	ConnAuthInactive   ConnectionAuthState = "inactive"
	ConnAuthSyncing    ConnectionAuthState = "syncing"
	ConnAuthError      ConnectionAuthState = "error"
	ConnAuthPendingAuth ConnectionAuthState = "pending_auth"
)

// SourceConnection represents a configured integration: source short name,
// credentials, authentication state, optional schedule, optional cursor
// field for continuous syncs, and a reference to a Collection (§3).
type SourceConnection struct {
	// ID is the unique identifier for the source connection.
	ID string

	// ShortName identifies the connector type (e.g., "filesystem", "gmail", "github").
	ShortName string

	// Name is the human-readable name for this connection.
	Name string

	// Config contains connector-specific configuration.
	Config map[string]string

	// AuthProviderID references the AuthProvider (OAuth app or PAT provider config).
	// Empty string for no-auth connectors (filesystem).
	AuthProviderID string

	// CredentialsID references this connection's Credentials (tokens + account info).
	// Empty string for no-auth connectors.
	CredentialsID string

	// AuthState is the current authentication lifecycle state.
	AuthState ConnectionAuthState

	// Schedule is an optional cron expression driving the scheduler (§4.8).
	Schedule string

	// CursorField names the source field the cursor tracks, for continuous
	// syncs (§3's "opaque JSON payload ... plus a first-class cursor_field").
	CursorField string

	// CollectionID references the Collection this connection feeds.
	CollectionID string

	// CreatedAt is when the connection was created.
	CreatedAt time.Time

	// UpdatedAt is when the connection was last updated.
	UpdatedAt time.Time
}

// DisplayName returns the connection name with account identifier if provided.
// Used for display in CLI output where the account context helps identify the
// connection. If the account identifier is already present in the name, it is
// not appended again.
func (sc *SourceConnection) DisplayName(accountIdentifier string) string {
	if accountIdentifier != "" && !strings.Contains(sc.Name, accountIdentifier) {
		return fmt.Sprintf("%s - %s", sc.Name, accountIdentifier)
	}
	return sc.Name
}

// SupportsContinuous reports whether this connection tracks a cursor field,
// i.e. its source can run incremental syncs rather than only full ones.
func (sc *SourceConnection) SupportsContinuous() bool {
	return sc.CursorField != ""
}

// IsUsable reports whether the connection's auth state permits starting a
// sync job.
func (sc *SourceConnection) IsUsable() bool {
	return sc.AuthState == ConnAuthActive
}
