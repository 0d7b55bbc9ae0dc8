package mcp

import (
	"github.com/airweave-ai/airweave-core/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search drives the agentic search loop (§4.9).
	Search driving.SearchService

	// Source manages source connection configurations.
	Source driving.SourceConnectionService

	// Entity manages entities ingested by source connections.
	Entity driving.EntityService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Source and Entity are optional: a deployment may expose search only.
	return nil
}
