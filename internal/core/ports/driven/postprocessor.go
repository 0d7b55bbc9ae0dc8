package driven

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// PostProcessor processes an entity's embeddable text to produce chunks.
// PostProcessors are chained in a pipeline (e.g., chunking, stemming, expansion).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes an entity and returns chunks.
	// If the processor modifies chunks (e.g., stemming), it receives and returns chunks.
	// If the processor creates chunks (e.g., chunker), it receives nil and returns new chunks.
	Process(ctx context.Context, entity domain.Entity, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the entity through all processors in order.
	// Returns the final chunks after all processing.
	Process(ctx context.Context, entity domain.Entity) ([]domain.Chunk, error)
}
