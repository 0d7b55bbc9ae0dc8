package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// resultByteBudget caps the total snippet bytes returned by one search call,
// so a tool-calling composer never blows its context window on a single
// turn (§4.10 "context-window budget fraction"). Snippets are truncated,
// never dropped, so the caller always sees every hit's existence.
const resultByteBudget = 8000

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find entities"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results   []SearchResultOutput `json:"results"`
	Count     int                  `json:"count"`
	Truncated bool                 `json:"truncated,omitempty"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	EntityID   string   `json:"entity_id"`
	Title      string   `json:"title"`
	Score      float64  `json:"score"`
	Highlights []string `json:"highlights,omitempty"`
	Snippet    string   `json:"snippet,omitempty"`
}

// SubmitAnswerInput is the input schema for the submit_answer terminal tool.
// A composer calls this to end its thinking/searching loop once it has
// enough context to answer (§4.10's "done" event).
type SubmitAnswerInput struct {
	Answer     string   `json:"answer" jsonschema:"the final answer to the user's question"`
	EntityIDs  []string `json:"entity_ids,omitempty" jsonschema:"entity ids cited as evidence for the answer"`
}

// SubmitAnswerOutput acknowledges a submitted answer.
type SubmitAnswerOutput struct {
	Accepted bool `json:"accepted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search across all indexed entities in the collection",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "submit_answer",
		Description: "Submit the final answer once enough evidence has been gathered via search; ends the search loop",
	}, s.handleSubmitAnswer)
}

// handleSearch handles the search tool invocation, capping the total
// snippet bytes returned so a single turn never exceeds the composer's
// context-window budget.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.SearchOptions{Limit: limit}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	spent := 0
	for i := range results {
		snippet := results[i].Snippet
		if spent >= resultByteBudget {
			snippet = ""
			output.Truncated = true
		} else if remaining := resultByteBudget - spent; len(snippet) > remaining {
			snippet = snippet[:remaining]
			output.Truncated = true
		}
		spent += len(snippet)

		output.Results[i] = SearchResultOutput{
			EntityID:   results[i].OriginalEntityID,
			Title:      results[i].Title,
			Score:      results[i].Score,
			Highlights: results[i].Highlights,
			Snippet:    snippet,
		}
	}

	return nil, output, nil
}

// handleSubmitAnswer handles the submit_answer terminal tool. It performs no
// side effects beyond acknowledging receipt — the composer driving the tool
// loop is responsible for surfacing the answer to the caller and stopping.
func (s *Server) handleSubmitAnswer(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ SubmitAnswerInput,
) (*mcp.CallToolResult, SubmitAnswerOutput, error) {
	return nil, SubmitAnswerOutput{Accepted: true}, nil
}
