package driven

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a file entity.
// It maintains a priority-ordered list of normalisers and dispatches
// based on MIME type and source type.
type NormaliserRegistry interface {
	// Normalise transforms a file entity using the best matching normaliser.
	// Selection priority: source-specific > MIME-specific > fallback.
	Normalise(ctx context.Context, file *domain.FileEntity) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
