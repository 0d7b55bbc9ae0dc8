package domain

// RetrievalStrategy selects the Builder's ranking clause (§4.9 step 1/3).
type RetrievalStrategy string

const (
	RetrievalSemantic RetrievalStrategy = "semantic"
	RetrievalKeyword  RetrievalStrategy = "keyword"
	RetrievalHybrid   RetrievalStrategy = "hybrid"
)

// RankingProfile names are part of the wire contract with the vector DB (§6).
const (
	RankingSemanticOnly = "semantic-only"
	RankingKeywordOnly  = "keyword-only"
	RankingHybridRRF    = "hybrid-rrf"
)

// FilterOperator is one of the closed set of predicate operators (§4.9 step 1).
type FilterOperator string

const (
	OpEq     FilterOperator = "eq"
	OpNe     FilterOperator = "ne"
	OpGt     FilterOperator = "gt"
	OpLt     FilterOperator = "lt"
	OpGe     FilterOperator = "ge"
	OpLe     FilterOperator = "le"
	OpContains FilterOperator = "contains"
	OpIn     FilterOperator = "in"
	OpNotIn  FilterOperator = "not_in"
)

// FilterPredicate is one (field, operator, value) clause.
type FilterPredicate struct {
	Field    string
	Operator FilterOperator
	Value    any
}

// FilterGroup is an AND of predicates; a SearchPlan's FilterGroups are ORed
// together.
type FilterGroup struct {
	Predicates []FilterPredicate
}

// SearchPlan is the Planner LLM's output for one iteration (§4.9 step 1).
type SearchPlan struct {
	Queries           []string
	RetrievalStrategy RetrievalStrategy
	Limit             int
	Offset            int
	FilterGroups      []FilterGroup
	Reasoning         string
}

// QueryEmbedding holds the dense/sparse vectors computed for one plan (§4.9 step 2).
type QueryEmbedding struct {
	Dense  [][]float32      // one dense vector per query variation
	Sparse map[int]float32  // sparse embedding for the primary query, if applicable
}

// CompiledQuery is the vector-DB query compiled from a plan + embeddings
// (§4.9 step 3, §6 "compiled object {yql, params}").
type CompiledQuery struct {
	YQL            string
	Params         map[string]any
	RankingProfile string
	CollectionID   string
}

// ExecutionResult is one retrieved hit, hydrated enough for the Judge to
// reason about and for the tool surface to render.
type ExecutionResult struct {
	ChunkID          string
	OriginalEntityID string
	Title            string
	Snippet          string
	Score            float64
	Metadata         map[string]any
}

// Judgement is the Judge LLM's verdict for one iteration (§4.9 step 5).
type Judgement struct {
	ShouldContinue  bool
	Reasoning       string
	UsefulResultIDs []string
	Advice          string
	AnswerSnippet   string
	ErrorAnalysis   string
}

// IterationState captures one loop iteration's artifacts, forming the
// compact history the Planner/Judge are shown on the next turn (§4.9's
// state `S`).
type IterationState struct {
	Iteration int
	Plan      *SearchPlan
	Embedding *QueryEmbedding
	Query     *CompiledQuery
	Results   []ExecutionResult
	Judgement *Judgement
	Err       error
}

// SearchLoopState is the full agentic-search state `S` (§4.9).
type SearchLoopState struct {
	OriginalQuery  string
	CollectionID   string
	CollectionInfo string // computed once, cached
	Principals     []string
	Iterations     []IterationState
	FinalResults   []ExecutionResult
}

// MaxSearchIterations bounds the agentic loop (§4.9, default 3).
const MaxSearchIterations = 3

// SearchEventStage names one stage of the streamed search surface (§4.10,
// §6 "search a collection (one-shot or streamed)"): a client watching the
// stream sees a run move through these in order, possibly looping back to
// Thinking/Searching across iterations before the final Done.
type SearchEventStage string

const (
	SearchEventThinking SearchEventStage = "thinking"
	SearchEventSearching SearchEventStage = "searching"
	SearchEventDone      SearchEventStage = "done"
)

// SearchEvent is one progress notification emitted while a search loop
// runs. Message is human-readable, for a CLI/MCP client to render directly.
type SearchEvent struct {
	Stage     SearchEventStage
	Iteration int
	Message   string
}
