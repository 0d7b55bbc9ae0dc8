package domain

import "time"

// EntityKind identifies which variant of the closed Entity sum type a value is.
// Source-specific entities (message, ticket, recording, ...) are small structs
// that embed one of these three base shapes; EntityKind records which one so
// the pipeline can type-switch without reflection.
type EntityKind string

const (
	// EntityKindBase is a metadata-only record with no embeddable content.
	EntityKindBase EntityKind = "base"
	// EntityKindChunk carries a textual representation to be chunked and embedded.
	EntityKindChunk EntityKind = "chunk"
	// EntityKindFile is a downloadable blob, converted then chunked.
	EntityKindFile EntityKind = "file"
)

// Breadcrumb is one ancestor reference in an entity's hierarchy path.
// Breadcrumbs form an ordered list, never a pointer graph (§9 "no cycles").
type Breadcrumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// AccessControl carries source-reported visibility for an entity.
type AccessControl struct {
	// IsPublic marks the entity visible to every principal in the org.
	IsPublic bool `json:"is_public"`
	// Viewers lists principal IDs explicitly granted access.
	Viewers []string `json:"viewers,omitempty"`
}

// SystemMetadata is the envelope the pipeline populates on every entity; it
// is never set by the source connector itself.
type SystemMetadata struct {
	SyncID             string         `json:"sync_id"`
	SourceConnectionID string         `json:"source_connection_id"`
	EntityType         string         `json:"entity_type"`
	SourceName         string         `json:"source_name"`
	ContentHash        string         `json:"content_hash,omitempty"`
	OriginalEntityID   string         `json:"original_entity_id"`
	ChunkIndex         *int           `json:"chunk_index,omitempty"`
	Access             *AccessControl `json:"access,omitempty"`
}

// FieldRole annotates a struct field's role for the pipeline, the way §9
// describes "field-level annotations ... this is the entity id / a
// timestamp / should be embedded" instead of reflection-free special-casing.
// Source-specific entity structs set this via the `entity:"..."` struct tag;
// RoleOf reads it back.
type FieldRole string

const (
	FieldRoleID        FieldRole = "id"
	FieldRoleTimestamp FieldRole = "timestamp"
	FieldRoleEmbed     FieldRole = "embed"
	FieldRoleTitle     FieldRole = "title"
)

// BaseEntity is a metadata-only record: the minimal shape every entity
// variant embeds.
type BaseEntity struct {
	EntityID    string       `json:"entity_id" entity:"id"`
	Breadcrumbs []Breadcrumb `json:"breadcrumbs"`
	Name        string       `json:"name" entity:"title"`
	CreatedAt   *time.Time   `json:"created_at,omitempty" entity:"timestamp"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty" entity:"timestamp"`

	SystemMetadata SystemMetadata `json:"system_metadata"`
}

// Kind reports the entity variant. BaseEntity values are always EntityKindBase;
// ChunkEntity and FileEntity override this by embedding BaseEntity and
// implementing their own Kind() (Go has no virtual dispatch on embedding, so
// callers type-switch on the concrete type instead — see entity.go's Entity
// interface).
func (b *BaseEntity) Kind() EntityKind { return EntityKindBase }

// ID returns the stable source-issued identifier.
func (b *BaseEntity) ID() string { return b.EntityID }

// Meta returns a pointer to the pipeline-owned metadata envelope so stages
// can mutate it in place (content hash, chunk index, ...).
func (b *BaseEntity) Meta() *SystemMetadata { return &b.SystemMetadata }

// ChunkEntity carries a textual representation to be chunked and embedded.
type ChunkEntity struct {
	BaseEntity
	// Content is the embeddable surface: the full text before chunking.
	Content string `json:"content" entity:"embed"`
}

// Kind reports EntityKindChunk.
func (c *ChunkEntity) Kind() EntityKind { return EntityKindChunk }

// FileEntity is a downloadable blob, converted then chunked.
type FileEntity struct {
	BaseEntity
	DownloadURL string `json:"download_url"`
	MimeType    string `json:"mime_type"`

	// Populated by the file handler after download.
	LocalPath   string `json:"local_path,omitempty"`
	TotalSize   int64  `json:"total_size,omitempty"`
	ShouldSkip  bool   `json:"should_skip"`
	SkipReason  string `json:"skip_reason,omitempty"`
}

// Kind reports EntityKindFile.
func (f *FileEntity) Kind() EntityKind { return EntityKindFile }

// Entity is the common interface over the closed BaseEntity/ChunkEntity/
// FileEntity sum type. Source-specific subclasses (message, document,
// ticket, recording, transcript, ...) satisfy it by embedding one of the
// three base shapes.
type Entity interface {
	Kind() EntityKind
	ID() string
	Meta() *SystemMetadata
}

var (
	_ Entity = (*BaseEntity)(nil)
	_ Entity = (*ChunkEntity)(nil)
	_ Entity = (*FileEntity)(nil)
)

// EmbeddableText returns the text surface a pipeline should hash and embed,
// or "" for entities with none (a bare BaseEntity).
func EmbeddableText(e Entity) string {
	switch v := e.(type) {
	case *ChunkEntity:
		return v.Content
	case *FileEntity:
		return "" // populated post-conversion by the transform stage
	default:
		return ""
	}
}

// Chunk is a searchable unit produced by splitting an Entity's embeddable
// text. It is what the destination handlers actually store and embed.
type Chunk struct {
	ID         string         `json:"id"`
	EntityID   string         `json:"entity_id"` // = SystemMetadata.OriginalEntityID
	Content    string         `json:"content"`
	Position   int            `json:"position"`
	TokenCount int            `json:"token_count"`
	Embedding  []float32      `json:"embedding,omitempty"`
	Sparse     map[int]float32 `json:"sparse,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}
