package domain

import (
	"encoding/json"
	"time"
)

// SyncCursor is per-sync durable state for incremental continuation (§3, §4.7).
// CursorData's shape is owned by the source class; the orchestrator treats it
// as opaque JSON and only reasons about CursorField and the timestamps.
type SyncCursor struct {
	SyncID      string
	CursorField string
	CursorData  json.RawMessage
	UpdatedAt   time.Time
}

// overlapEnvelope is the minimal shape the cursor service understands inside
// CursorData: a primary advance value plus an opaque lagging partner. Per
// §9's open question, the "_overlap" suffix is never interpreted beyond
// pass-through — the service does not reorder or compare it.
type overlapEnvelope struct {
	Overlap json.RawMessage `json:"_overlap,omitempty"`
}

// HasOverlap reports whether the cursor payload carries a dual-cursor
// "_overlap" partner.
func (c *SyncCursor) HasOverlap() bool {
	if len(c.CursorData) == 0 {
		return false
	}
	var env overlapEnvelope
	if err := json.Unmarshal(c.CursorData, &env); err != nil {
		return false
	}
	return len(env.Overlap) > 0
}

// IsExpired reports staleness per the source's own max-age policy (e.g.
// change tokens expiring after ~55 days). A zero UpdatedAt is always
// expired.
func (c *SyncCursor) IsExpired(maxAge time.Duration) bool {
	if c.UpdatedAt.IsZero() {
		return true
	}
	return time.Since(c.UpdatedAt) > maxAge
}

// NeedsPeriodicFullSync reports whether enough time has elapsed since the
// last update to force an occasional full cleanup pass, independent of
// expiry.
func (c *SyncCursor) NeedsPeriodicFullSync(interval time.Duration) bool {
	if c.UpdatedAt.IsZero() {
		return true
	}
	return time.Since(c.UpdatedAt) > interval
}

// EmptyCursor returns the cursor materialized for a run when
// execution_config.skip_cursor_load or force_full_sync is set (§4.7).
func EmptyCursor(syncID, cursorField string) SyncCursor {
	return SyncCursor{SyncID: syncID, CursorField: cursorField}
}
