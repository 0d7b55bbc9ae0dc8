package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driving"
)

// Tool names mirror the mcp package's external tool surface (§4.10), so a
// transcript produced by Compose reads the same whether the loop was driven
// by an external MCP client or in-process here.
const (
	toolNameSearch       = "search"
	toolNameSubmitAnswer = "submit_answer"

	// maxComposerTurns bounds the native tool-calling loop the way
	// domain.MaxSearchIterations bounds the JSON-prompted planner/judge loop.
	maxComposerTurns = 6
)

// ComposerResult is the composer's terminal output: either the model
// answered directly, or called submit_answer with cited evidence.
type ComposerResult struct {
	Answer    string
	EntityIDs []string
}

// composerSearchInput mirrors mcp.SearchInput's wire shape.
type composerSearchInput struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// composerSubmitAnswerInput mirrors mcp.SubmitAnswerInput's wire shape.
type composerSubmitAnswerInput struct {
	Answer    string   `json:"answer"`
	EntityIDs []string `json:"entity_ids,omitempty"`
}

// Compose runs a provider-native tool-calling loop: Claude is given the
// search/submit_answer tools directly (Anthropic tool-use content blocks)
// instead of being JSON-prompted the way services.AgenticSearchService's
// planner/judge are, and drives its own search calls until it submits an
// answer or the turn budget is exhausted. events receives a
// thinking/searching/done notification per turn (§4.10) and is closed
// before Compose returns.
func (s *LLMService) Compose(
	ctx context.Context, question string, search driving.SearchService, events chan<- domain.SearchEvent,
) (*ComposerResult, error) {
	defer emitClose(events)

	tools := []anthropic.ToolUnionParam{
		anthropic.ToolUnionParamOfTool(anthropic.ToolParam{
			Name:        toolNameSearch,
			Description: anthropic.String("Search across all indexed entities in the collection"),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: map[string]any{
					"query": map[string]any{"type": "string", "description": "the search query to find entities"},
					"limit": map[string]any{"type": "integer", "description": "maximum number of results to return (default 10)"},
				},
			},
		}),
		anthropic.ToolUnionParamOfTool(anthropic.ToolParam{
			Name:        toolNameSubmitAnswer,
			Description: anthropic.String("Submit the final answer once enough evidence has been gathered via search; ends the search loop"),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: map[string]any{
					"answer":     map[string]any{"type": "string", "description": "the final answer to the user's question"},
					"entity_ids": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "entity ids cited as evidence for the answer"},
				},
			},
		}),
	}

	messages := []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(question))}

	for turn := 0; turn < maxComposerTurns; turn++ {
		emitEvent(events, domain.SearchEventThinking, turn, "asking the model for the next step")

		resp, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(s.model),
			MaxTokens: 1024,
			Messages:  messages,
			Tools:     tools,
		})
		if err != nil {
			return nil, fmt.Errorf("composer turn %d: %w", turn, err)
		}
		messages = append(messages, resp.ToParam())

		toolUses := toolUseBlocks(resp)
		if len(toolUses) == 0 {
			emitEvent(events, domain.SearchEventDone, turn, "model answered without citing evidence")
			return &ComposerResult{Answer: textOf(resp)}, nil
		}

		result, resultBlocks := s.runTools(ctx, toolUses, search, events, turn)
		if result != nil {
			emitEvent(events, domain.SearchEventDone, turn, "answer submitted")
			return result, nil
		}
		messages = append(messages, anthropic.NewUserMessage(resultBlocks...))
	}

	return nil, fmt.Errorf("composer: exceeded %d turns without an answer", maxComposerTurns)
}

// runTools executes every tool-use block from one turn, returning a non-nil
// ComposerResult only once submit_answer was among them.
func (s *LLMService) runTools(
	ctx context.Context,
	toolUses []anthropic.ToolUseBlock,
	search driving.SearchService,
	events chan<- domain.SearchEvent,
	turn int,
) (*ComposerResult, []anthropic.ContentBlockParamUnion) {
	var resultBlocks []anthropic.ContentBlockParamUnion
	var result *ComposerResult

	for _, tu := range toolUses {
		switch tu.Name {
		case toolNameSearch:
			emitEvent(events, domain.SearchEventSearching, turn, "running search tool call")
			resultBlocks = append(resultBlocks, s.runSearchTool(ctx, tu, search))
		case toolNameSubmitAnswer:
			var in composerSubmitAnswerInput
			_ = json.Unmarshal(tu.Input, &in)
			result = &ComposerResult{Answer: in.Answer, EntityIDs: in.EntityIDs}
			resultBlocks = append(resultBlocks, anthropic.NewToolResultBlock(tu.ID, "acknowledged", false))
		default:
			resultBlocks = append(resultBlocks, anthropic.NewToolResultBlock(tu.ID, fmt.Sprintf("unknown tool %q", tu.Name), true))
		}
	}
	return result, resultBlocks
}

func (s *LLMService) runSearchTool(ctx context.Context, tu anthropic.ToolUseBlock, search driving.SearchService) anthropic.ContentBlockParamUnion {
	var in composerSearchInput
	if err := json.Unmarshal(tu.Input, &in); err != nil {
		return anthropic.NewToolResultBlock(tu.ID, fmt.Sprintf("invalid search input: %v", err), true)
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 10
	}

	results, err := search.Search(ctx, in.Query, domain.SearchOptions{Limit: limit})
	if err != nil {
		return anthropic.NewToolResultBlock(tu.ID, fmt.Sprintf("search failed: %v", err), true)
	}

	encoded, err := json.Marshal(results)
	if err != nil {
		return anthropic.NewToolResultBlock(tu.ID, fmt.Sprintf("encode results: %v", err), true)
	}
	return anthropic.NewToolResultBlock(tu.ID, string(encoded), false)
}

func toolUseBlocks(message *anthropic.Message) []anthropic.ToolUseBlock {
	var out []anthropic.ToolUseBlock
	for _, block := range message.Content {
		if tu, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			out = append(out, tu)
		}
	}
	return out
}

func emitEvent(events chan<- domain.SearchEvent, stage domain.SearchEventStage, iteration int, message string) {
	if events == nil {
		return
	}
	events <- domain.SearchEvent{Stage: stage, Iteration: iteration, Message: message}
}

func emitClose(events chan<- domain.SearchEvent) {
	if events != nil {
		close(events)
	}
}
