package domain

import "time"

// SnapshotManifest summarizes a captured sync at `raw/{sync_id}/manifest.json`.
type SnapshotManifest struct {
	SyncID           string    `json:"sync_id"`
	SourceShortName  string    `json:"source_short_name"`
	EntityCount      int       `json:"entity_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// CapturedEntityEnvelope is the on-disk shape of one
// `raw/{sync_id}/entities/{entity_id}.json` file: the serialized entity plus
// replay metadata. Restored files are re-attached under __stored_file__.
type CapturedEntityEnvelope struct {
	EntityClass  string          `json:"__entity_class__"`
	EntityModule string          `json:"__entity_module__"`
	CapturedAt   time.Time       `json:"__captured_at__"`
	StoredFile   string          `json:"__stored_file__,omitempty"`
	Data         map[string]any  `json:"data"`
}
