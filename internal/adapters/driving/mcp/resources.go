package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for resources exposed by this server.
	uriScheme = "airweave://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing source connections.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "List of all configured source connections",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	// Template for entities ingested by a source connection.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sources/{sourceId}/entities",
		Name:        "source-entities",
		Description: "Entities ingested from a specific source connection",
		MIMEType:    "application/json",
	}, s.handleEntitiesResource)

	// Template for entity content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "entities/{entityId}",
		Name:        "entity-content",
		Description: "Content of a specific entity",
		MIMEType:    "text/plain",
	}, s.handleEntityContentResource)
}

// handleSourcesResource returns a list of all configured source connections.
func (s *Server) handleSourcesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Source == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	sources, err := s.ports.Source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing source connections: %w", err)
	}

	// Build simplified source list.
	type sourceInfo struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
		URI  string `json:"uri"`
	}

	infos := make([]sourceInfo, len(sources))
	for i, src := range sources {
		// Get path from config if available (filesystem sources).
		uri := src.Config["path"]
		infos[i] = sourceInfo{
			ID:   src.ID,
			Name: src.Name,
			Type: src.ShortName,
			URI:  uri,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sources: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleEntitiesResource returns entities ingested by a specific source connection.
func (s *Server) handleEntitiesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Entity == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract sourceId from URI: airweave://sources/{sourceId}/entities
	sourceID := extractSourceID(req.Params.URI)
	if sourceID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entities, err := s.ports.Entity.ListByConnection(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}

	// Build simplified entity list; title/URI come from GetDetails since the
	// common domain.Entity interface doesn't expose display fields directly.
	type entityInfo struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		URI   string `json:"uri"`
	}

	infos := make([]entityInfo, 0, len(entities))
	for _, e := range entities {
		info := entityInfo{ID: e.ID()}
		if details, err := s.ports.Entity.GetDetails(ctx, e.ID()); err == nil && details != nil {
			info.Title = details.Title
			info.URI = details.URI
		}
		infos = append(infos, info)
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling entities: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleEntityContentResource returns the concatenated chunk content of a specific entity.
func (s *Server) handleEntityContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Entity == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract entityId from URI: airweave://entities/{entityId}
	entityID := extractEntityID(req.Params.URI)
	if entityID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Entity.GetContent(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("getting entity content: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     content,
		}},
	}, nil
}

// extractSourceID extracts the source ID from a URI like airweave://sources/{sourceId}/entities.
func extractSourceID(uri string) string {
	const prefix = uriScheme + "sources/"
	const suffix = "/entities"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}

// extractEntityID extracts the entity ID from a URI like airweave://entities/{entityId}.
func extractEntityID(uri string) string {
	const prefix = uriScheme + "entities/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
