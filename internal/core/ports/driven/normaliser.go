package driven

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// Normaliser extracts embeddable text from a FileEntity's binary payload.
// Each normaliser handles specific MIME types (e.g., PDF, Markdown).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// SupportedConnectorTypes returns source types for specialised handling.
	// Empty slice means all sources.
	SupportedConnectorTypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Source-specific normalisers should return 90-100.
	// Generic MIME normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts text content from a file entity's binary payload.
	Normalise(ctx context.Context, file *domain.FileEntity) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Note: Normalisation only produces extracted text; chunking is handled by
// the PostProcessor pipeline.
type NormaliseResult struct {
	// Text is the extracted, embeddable text content.
	Text string

	// Metadata holds any structured fields the normaliser pulled out of the
	// payload (e.g., PDF page count, email headers), merged into the
	// entity's SystemMetadata by the pipeline.
	Metadata map[string]any
}
