// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the agentic search loop. It enables AI assistants to run the search and
// submit_answer tools against a collection over stdio or streamable HTTP.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
