package domain

// SearchOptions parameterizes a one-shot call into the agentic search loop
// from the tool surface or CLI (§4.10, §6 "search a collection (one-shot or
// streamed)").
type SearchOptions struct {
	CollectionID  string
	Principals    []string
	MaxIterations int
	RetrievalHint RetrievalStrategy // "" lets the planner choose
	Limit         int               // caller-requested result cap; <= 0 lets the planner choose
}

// SearchResult is the caller-facing hit after the loop terminates: an
// ExecutionResult plus the highlight snippets the teacher's SearchService
// used to compute inline.
type SearchResult struct {
	ExecutionResult
	Highlights []string
}
