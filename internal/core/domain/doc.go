// Package domain defines the core business entities for Airweave.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Entity: the closed BaseEntity/ChunkEntity/FileEntity sum type ingested from sources
//   - Action / ActionBatch: per-entity sync decisions
//   - SourceConnection / Collection / Sync / SyncJob: sync configuration and execution state
//   - SyncCursor: per-sync durable incremental-continuation state
//   - SearchPlan / Judgement: agentic search loop state
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
