package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driven"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driving"
	"github.com/airweave-ai/airweave-core/internal/logging"
)

var searchLog = logging.Component("agentic-search")

var _ driving.SearchService = (*AgenticSearchService)(nil)
var _ driving.StreamingSearchService = (*AgenticSearchService)(nil)
var _ driven.PromptStoreAware = (*AgenticSearchService)(nil)

// scoredChunk holds intermediate search results before hydration.
type scoredChunk struct {
	chunkID string
	score   float64
}

// AgenticSearchService drives the planner/embedder/builder/executor/judge
// loop of one collection search. Every dependency is optional except
// entityStore; the loop degrades to a single keyword-only iteration when
// the LLM or vector stack is unavailable, the way the teacher's
// SearchService degraded effectiveMode when services were nil.
type AgenticSearchService struct {
	llmService       driven.LLMService
	embeddingService driven.EmbeddingService
	searchIndex      driven.SearchEngine
	vectorIndex      driven.VectorIndex
	entityStore      driven.EntityStore
	promptStore      driven.PromptStore
}

// NewAgenticSearchService creates a new search service. All arguments but
// entityStore may be nil; the loop degrades accordingly.
func NewAgenticSearchService(
	llmService driven.LLMService,
	embeddingService driven.EmbeddingService,
	searchIndex driven.SearchEngine,
	vectorIndex driven.VectorIndex,
	entityStore driven.EntityStore,
) *AgenticSearchService {
	return &AgenticSearchService{
		llmService:       llmService,
		embeddingService: embeddingService,
		searchIndex:      searchIndex,
		vectorIndex:      vectorIndex,
		entityStore:      entityStore,
	}
}

// SetPromptStore injects customisable planner/judge prompt templates.
func (s *AgenticSearchService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Search runs the bounded planner -> embed -> build -> execute -> judge
// loop and returns the final, hydrated result set.
func (s *AgenticSearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return s.runLoop(ctx, query, opts, nil)
}

// SearchStream is the streamed variant (§4.10): the same loop as Search,
// additionally emitting a domain.SearchEvent on events at each
// thinking (plan/judge) and searching (execute) transition. events is
// closed once the final result set is ready, before returning.
func (s *AgenticSearchService) SearchStream(
	ctx context.Context, query string, opts domain.SearchOptions, events chan<- domain.SearchEvent,
) ([]domain.SearchResult, error) {
	defer close(events)
	return s.runLoop(ctx, query, opts, events)
}

func (s *AgenticSearchService) runLoop(
	ctx context.Context, query string, opts domain.SearchOptions, events chan<- domain.SearchEvent,
) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}

	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = domain.MaxSearchIterations
	}

	searchLog.Infof("search start: collection=%s query=%q max_iterations=%d", opts.CollectionID, query, maxIter)

	state := &domain.SearchLoopState{
		OriginalQuery: query,
		CollectionID:  opts.CollectionID,
		Principals:    opts.Principals,
	}

	for iter := 0; iter < maxIter; iter++ {
		it := domain.IterationState{Iteration: iter}

		emit(events, domain.SearchEventThinking, iter, "planning next query")
		plan, err := s.plan(ctx, state, opts)
		it.Plan = plan
		if err != nil {
			it.Err = err
			searchLog.Warnf("plan failed on iteration %d: %v", iter, err)
		}

		if plan != nil {
			embedding, err := s.embed(ctx, plan)
			it.Embedding = embedding
			if err != nil {
				it.Err = err
				searchLog.Warnf("embed failed on iteration %d: %v", iter, err)
			}

			compiled := s.build(plan, embedding, state, opts)
			it.Query = compiled

			emit(events, domain.SearchEventSearching, iter, fmt.Sprintf("running %s query", compiled.RankingProfile))
			results, err := s.execute(ctx, compiled)
			it.Results = results
			if err != nil {
				it.Err = err
				searchLog.Warnf("execute failed on iteration %d: %v", iter, err)
			}
		}

		emit(events, domain.SearchEventThinking, iter, "judging results")
		judgement := s.judge(ctx, state, it)
		it.Judgement = judgement
		state.Iterations = append(state.Iterations, it)

		if !judgement.ShouldContinue || iter == maxIter-1 {
			state.FinalResults = selectFinalResults(it, judgement)
			break
		}
	}

	hydrated, err := s.hydrate(ctx, state.FinalResults, query)
	if err != nil {
		return nil, fmt.Errorf("hydrate results: %w", err)
	}

	searchLog.Infof("search done: collection=%s iterations=%d results=%d", opts.CollectionID, len(state.Iterations), len(hydrated))
	emit(events, domain.SearchEventDone, len(state.Iterations)-1, fmt.Sprintf("%d results", len(hydrated)))
	return hydrated, nil
}

// emit sends a progress event on a possibly-nil channel without blocking a
// caller that isn't listening (Search's events channel is always nil).
func emit(events chan<- domain.SearchEvent, stage domain.SearchEventStage, iteration int, message string) {
	if events == nil {
		return
	}
	events <- domain.SearchEvent{Stage: stage, Iteration: iteration, Message: message}
}

// selectFinalResults picks the judge's useful_result_ids, or all results of
// the terminal iteration if the judge named none (§4.9 step 5).
func selectFinalResults(it domain.IterationState, j *domain.Judgement) []domain.ExecutionResult {
	if j == nil || len(j.UsefulResultIDs) == 0 {
		return it.Results
	}
	want := make(map[string]bool, len(j.UsefulResultIDs))
	for _, id := range j.UsefulResultIDs {
		want[id] = true
	}
	out := make([]domain.ExecutionResult, 0, len(j.UsefulResultIDs))
	for _, r := range it.Results {
		if want[r.ChunkID] {
			out = append(out, r)
		}
	}
	return out
}

// plan asks the planner LLM for the next SearchPlan. With no LLM service,
// it degrades to a single hybrid plan over the original query verbatim.
func (s *AgenticSearchService) plan(ctx context.Context, state *domain.SearchLoopState, opts domain.SearchOptions) (*domain.SearchPlan, error) {
	strategy := opts.RetrievalHint
	if strategy == "" {
		strategy = domain.RetrievalHybrid
	}

	limit := 20
	if opts.Limit > 0 {
		limit = opts.Limit
	}

	if s.llmService == nil {
		return &domain.SearchPlan{
			Queries:           []string{state.OriginalQuery},
			RetrievalStrategy: strategy,
			Limit:             limit,
			Reasoning:         "no planner LLM configured, using original query",
		}, nil
	}

	prompt := s.plannerPrompt(state)
	raw, err := s.llmService.Generate(ctx, prompt, driven.GenerateOptions{MaxTokens: 1024, Temperature: 0.2})
	if err != nil {
		return nil, fmt.Errorf("planner generate: %w", err)
	}

	var plan domain.SearchPlan
	if err := json.Unmarshal([]byte(extractJSON(raw)), &plan); err != nil {
		searchLog.Warnf("planner returned unparsable output, falling back to original query: %v", err)
		return &domain.SearchPlan{
			Queries:           []string{state.OriginalQuery},
			RetrievalStrategy: strategy,
			Limit:             limit,
		}, nil
	}
	if len(plan.Queries) == 0 {
		plan.Queries = []string{state.OriginalQuery}
	}
	if plan.RetrievalStrategy == "" {
		plan.RetrievalStrategy = strategy
	}
	if plan.Limit <= 0 {
		plan.Limit = limit
	}
	return &plan, nil
}

func (s *AgenticSearchService) plannerPrompt(state *domain.SearchLoopState) string {
	template := "Propose a search plan for: %s\nHistory: %s"
	if s.promptStore != nil {
		if tmpl, err := s.promptStore.Load(driven.PromptSearchPlanner); err == nil && tmpl != "" {
			template = tmpl
		}
	}
	return fmt.Sprintf(template, state.OriginalQuery, summarizeHistory(state.Iterations))
}

func summarizeHistory(iterations []domain.IterationState) string {
	if len(iterations) == 0 {
		return "(none)"
	}
	var b strings.Builder
	for _, it := range iterations {
		fmt.Fprintf(&b, "iter %d: %d results", it.Iteration, len(it.Results))
		if it.Judgement != nil {
			fmt.Fprintf(&b, ", judge=%q", it.Judgement.Reasoning)
		}
		b.WriteString("; ")
	}
	return b.String()
}

// extractJSON trims leading/trailing prose an LLM may wrap around its JSON
// answer, returning the first top-level {...} object found.
func extractJSON(raw string) string {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}

// embed computes dense vectors for semantic/hybrid plans. Sparse embedding
// is left to the keyword engine's own BM25 tokenizer (§4.9 step 2).
func (s *AgenticSearchService) embed(ctx context.Context, plan *domain.SearchPlan) (*domain.QueryEmbedding, error) {
	if s.embeddingService == nil || plan.RetrievalStrategy == domain.RetrievalKeyword {
		return nil, nil
	}

	dense, err := s.embeddingService.EmbedBatch(ctx, plan.Queries)
	if err != nil {
		return nil, fmt.Errorf("embed queries: %w", err)
	}
	return &domain.QueryEmbedding{Dense: dense}, nil
}

// build compiles the plan and embeddings into a query descriptor. There is
// no literal Vespa YQL compiler here; CompiledQuery carries the same shape
// so the executor and a future vector-DB adapter share one contract.
func (s *AgenticSearchService) build(
	plan *domain.SearchPlan, embedding *domain.QueryEmbedding, state *domain.SearchLoopState, opts domain.SearchOptions,
) *domain.CompiledQuery {
	limit := plan.Limit
	rerankCount := limit + plan.Offset
	if rerankCount < 100 {
		rerankCount = 100
	}

	params := map[string]any{
		"queries":      plan.Queries,
		"limit":        limit,
		"offset":       plan.Offset,
		"rerank_count": rerankCount,
		"filters":      plan.FilterGroups,
		"principals":   opts.Principals,
	}

	var profile string
	switch plan.RetrievalStrategy {
	case domain.RetrievalSemantic:
		profile = domain.RankingSemanticOnly
	case domain.RetrievalKeyword:
		profile = domain.RankingKeywordOnly
	default:
		profile = domain.RankingHybridRRF
	}

	return &domain.CompiledQuery{
		YQL:            strings.Join(plan.Queries, " "),
		Params:         params,
		RankingProfile: profile,
		CollectionID:   state.CollectionID,
	}
}

// execute runs the compiled query against the configured keyword/vector
// backends per its ranking profile, merging hybrid results with RRF, then
// hydrates chunk IDs into ExecutionResults and applies the access filter.
func (s *AgenticSearchService) execute(ctx context.Context, q *domain.CompiledQuery) ([]domain.ExecutionResult, error) {
	limit, _ := q.Params["limit"].(int)
	if limit <= 0 {
		limit = 20
	}
	rerank, _ := q.Params["rerank_count"].(int)
	if rerank <= 0 {
		rerank = 100
	}

	var chunks []scoredChunk
	var err error

	switch q.RankingProfile {
	case domain.RankingSemanticOnly:
		chunks, err = s.vectorSearch(ctx, q, rerank)
	case domain.RankingKeywordOnly:
		chunks, err = s.keywordSearch(ctx, q.YQL, rerank)
	default:
		chunks, err = s.hybridSearch(ctx, q, rerank)
	}
	if err != nil {
		return nil, err
	}

	if len(chunks) > limit {
		chunks = chunks[:limit]
	}

	principals, _ := q.Params["principals"].([]string)
	return s.toExecutionResults(ctx, chunks, principals)
}

func (s *AgenticSearchService) keywordSearch(ctx context.Context, query string, limit int) ([]scoredChunk, error) {
	if s.searchIndex == nil {
		return nil, errors.New("keyword search engine unavailable")
	}
	hits, err := s.searchIndex.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	out := make([]scoredChunk, len(hits))
	for i, h := range hits {
		out[i] = scoredChunk{chunkID: h.ChunkID, score: h.Score}
	}
	return out, nil
}

func (s *AgenticSearchService) vectorSearch(ctx context.Context, q *domain.CompiledQuery, limit int) ([]scoredChunk, error) {
	if s.vectorIndex == nil {
		return nil, errors.New("vector index unavailable")
	}
	queries, _ := q.Params["queries"].([]string)
	if s.embeddingService == nil || len(queries) == 0 {
		return nil, errors.New("no query embedding available for vector search")
	}
	primary, err := s.embeddingService.Embed(ctx, queries[0])
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	hits, err := s.vectorIndex.Search(ctx, primary, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	out := make([]scoredChunk, len(hits))
	for i, h := range hits {
		out[i] = scoredChunk{chunkID: h.ChunkID, score: h.Similarity}
	}
	return out, nil
}

// hybridSearch fans keyword and vector search out in parallel and merges
// with Reciprocal Rank Fusion, degrading to whichever side succeeds if the
// other errors.
func (s *AgenticSearchService) hybridSearch(ctx context.Context, q *domain.CompiledQuery, limit int) ([]scoredChunk, error) {
	var kw, vec []scoredChunk
	var kwErr, vecErr error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		kw, kwErr = s.keywordSearch(ctx, q.YQL, limit)
	}()
	go func() {
		defer wg.Done()
		vec, vecErr = s.vectorSearch(ctx, q, limit)
	}()
	wg.Wait()

	if kwErr != nil && vecErr != nil {
		return nil, fmt.Errorf("hybrid search: keyword=%w, vector=%w", kwErr, vecErr)
	}
	if kwErr != nil {
		return vec, nil
	}
	if vecErr != nil {
		return kw, nil
	}
	return reciprocalRankFusion(kw, vec, 60), nil
}

// reciprocalRankFusion merges two ranked lists with RRF; k (typically 60)
// discounts how much low ranks can dominate.
func reciprocalRankFusion(list1, list2 []scoredChunk, k int) []scoredChunk {
	scores := make(map[string]float64)
	seen := make(map[string]bool)

	for rank, c := range list1 {
		scores[c.chunkID] += 1.0 / float64(k+rank+1)
		seen[c.chunkID] = true
	}
	for rank, c := range list2 {
		scores[c.chunkID] += 1.0 / float64(k+rank+1)
		seen[c.chunkID] = true
	}

	out := make([]scoredChunk, 0, len(seen))
	for id := range seen {
		out = append(out, scoredChunk{chunkID: id, score: scores[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}

// toExecutionResults hydrates chunk IDs against the entity store and
// applies the access filter: visible if IsPublic or the caller's
// principals overlap the entity's viewers (§4.9 "access control").
func (s *AgenticSearchService) toExecutionResults(ctx context.Context, chunks []scoredChunk, principals []string) ([]domain.ExecutionResult, error) {
	if s.entityStore == nil {
		return nil, errors.New("entity store unavailable")
	}

	out := make([]domain.ExecutionResult, 0, len(chunks))
	for _, sc := range chunks {
		chunk, err := s.entityStore.GetChunk(ctx, sc.chunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get chunk %s: %w", sc.chunkID, err)
		}

		entity, err := s.entityStore.GetEntity(ctx, chunk.EntityID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get entity %s: %w", chunk.EntityID, err)
		}

		if !accessAllows(entity.Meta().Access, principals) {
			continue
		}

		out = append(out, domain.ExecutionResult{
			ChunkID:          chunk.ID,
			OriginalEntityID: chunk.EntityID,
			Snippet:          chunk.Content,
			Score:            sc.score,
		})
	}
	return out, nil
}

func accessAllows(access *domain.AccessControl, principals []string) bool {
	if access == nil || access.IsPublic {
		return true
	}
	for _, v := range access.Viewers {
		for _, p := range principals {
			if v == p {
				return true
			}
		}
	}
	return len(access.Viewers) == 0
}

// judge asks the judge LLM whether the loop should continue. With no LLM
// service it stops after the first iteration, using all of that
// iteration's results.
func (s *AgenticSearchService) judge(ctx context.Context, state *domain.SearchLoopState, it domain.IterationState) *domain.Judgement {
	if s.llmService == nil {
		return &domain.Judgement{ShouldContinue: false, Reasoning: "no judge LLM configured"}
	}

	prompt := s.judgePrompt(state, it)
	raw, err := s.llmService.Generate(ctx, prompt, driven.GenerateOptions{MaxTokens: 512, Temperature: 0.0})
	if err != nil {
		searchLog.Warnf("judge failed: %v", err)
		return &domain.Judgement{ShouldContinue: false, ErrorAnalysis: err.Error()}
	}

	var j domain.Judgement
	if err := json.Unmarshal([]byte(extractJSON(raw)), &j); err != nil {
		searchLog.Warnf("judge returned unparsable output, stopping loop: %v", err)
		return &domain.Judgement{ShouldContinue: false, Reasoning: "unparsable judge output"}
	}
	return &j
}

func (s *AgenticSearchService) judgePrompt(state *domain.SearchLoopState, it domain.IterationState) string {
	template := "Judge whether these %d results answer %q. History: %s"
	if s.promptStore != nil {
		if tmpl, err := s.promptStore.Load(driven.PromptSearchJudge); err == nil && tmpl != "" {
			template = tmpl
		}
	}
	return fmt.Sprintf(template, len(it.Results), state.OriginalQuery, summarizeHistory(state.Iterations))
}

// hydrate converts final ExecutionResults into caller-facing SearchResults,
// adding query-term highlight snippets (the teacher's hydrateResults /
// generateHighlights, generalized off Document+Chunk onto ExecutionResult).
func (s *AgenticSearchService) hydrate(_ context.Context, results []domain.ExecutionResult, query string) ([]domain.SearchResult, error) {
	out := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, domain.SearchResult{
			ExecutionResult: r,
			Highlights:      generateHighlights(r.Snippet, query),
		})
	}
	return out, nil
}

// generateHighlights creates text snippets around matched query terms.
func generateHighlights(content, query string) []string {
	queryTerms := strings.Fields(strings.ToLower(query))
	if len(queryTerms) == 0 {
		return nil
	}

	var highlights []string
	for _, sentence := range splitSentences(content) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, term := range queryTerms {
			if strings.Contains(lower, term) {
				highlight := sentence
				if len(highlight) > 200 {
					highlight = highlight[:200] + "..."
				}
				highlights = append(highlights, highlight)
				break
			}
		}
		if len(highlights) >= 3 {
			break
		}
	}
	return highlights
}

// splitSentences splits content into sentences on common terminators.
func splitSentences(content string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range content {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
