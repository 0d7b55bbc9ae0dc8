package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driven"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driving"
	"github.com/airweave-ai/airweave-core/internal/logging"
	"github.com/airweave-ai/airweave-core/internal/pipeline/stream"
	"github.com/airweave-ai/airweave-core/internal/pipeline/workerpool"
)

var syncLog = logging.Component("sync-orchestrator")

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

const (
	// defaultCursorMaxAge forces a full resync once a source's change-token
	// style cursor is old enough that the provider would likely have
	// expired it server-side (§4.7).
	defaultCursorMaxAge = 55 * 24 * time.Hour

	// defaultFullSyncInterval forces an occasional full resync even for a
	// healthy, non-expired cursor, to catch drift an incremental diff can't
	// see (deletes the source forgot to report, for example).
	defaultFullSyncInterval = 30 * 24 * time.Hour
)

// SyncOrchestrator coordinates entity synchronisation: build a Source from a
// SourceConnection, stream entities through a bounded queue, dispatch them
// across a bounded worker pool, classify each into an Action per
// content-hash comparison, run the post-processor pipeline, embed and fan
// out to the destination handlers, clean up orphans, then persist the new
// cursor (§4.8).
type SyncOrchestrator struct {
	syncStore        driven.SyncStore
	connectionStore  driven.SourceConnectionStore
	cursorStore      driven.CursorStore
	entityStore      driven.EntityStore
	exclusionStore   driven.ExclusionStore
	factory          driven.SourceFactory
	registry         driven.NormaliserRegistry
	pipeline         driven.PostProcessorPipeline
	searchIndex      driven.SearchEngine
	vectorIndex      driven.VectorIndex
	embeddingService driven.EmbeddingService

	handlers        []driven.DestinationHandler
	maxWorkers      int
	streamCapacity  int
	cursorMaxAge    time.Duration
	fullSyncInterval time.Duration

	mu      sync.RWMutex
	running map[string]context.CancelFunc // syncID -> cancel, while a job is active
}

// NewSyncOrchestrator creates a new sync orchestrator. searchIndex,
// vectorIndex and embeddingService are optional; when embeddingService is
// nil, chunks are saved without an embedding. searchIndex/vectorIndex are
// kept on the orchestrator for callers that still reach them directly (e.g.
// Search passthroughs); destination fan-out itself goes through
// AddHandler — the composition root wires a destination.VectorHandler (and
// any snapshot/access-control handlers) from these same dependencies after
// construction, keeping this package free of adapter imports.
func NewSyncOrchestrator(
	syncStore driven.SyncStore,
	connectionStore driven.SourceConnectionStore,
	cursorStore driven.CursorStore,
	entityStore driven.EntityStore,
	exclusionStore driven.ExclusionStore,
	factory driven.SourceFactory,
	registry driven.NormaliserRegistry,
	pipeline driven.PostProcessorPipeline,
	searchIndex driven.SearchEngine,
	vectorIndex driven.VectorIndex,
	embeddingService driven.EmbeddingService,
) *SyncOrchestrator {
	o := &SyncOrchestrator{
		syncStore:        syncStore,
		connectionStore:  connectionStore,
		cursorStore:      cursorStore,
		entityStore:      entityStore,
		exclusionStore:   exclusionStore,
		factory:          factory,
		registry:         registry,
		pipeline:         pipeline,
		searchIndex:      searchIndex,
		vectorIndex:      vectorIndex,
		embeddingService: embeddingService,
		maxWorkers:       domain.DefaultExecutionConfig().MaxWorkers,
		streamCapacity:   stream.DefaultCapacity,
		cursorMaxAge:     defaultCursorMaxAge,
		fullSyncInterval: defaultFullSyncInterval,
		running:          make(map[string]context.CancelFunc),
	}
	return o
}

// AddHandler registers an additional destination handler (e.g. a snapshot or
// access-control handler) to run after every dispatch.
func (o *SyncOrchestrator) AddHandler(h driven.DestinationHandler) {
	o.handlers = append(o.handlers, h)
}

// SetExecutionConfig overrides the worker-pool size from the defaults
// (§4.8); a zero MaxWorkers is ignored and no other field is read.
func (o *SyncOrchestrator) SetExecutionConfig(cfg domain.ExecutionConfig) {
	if cfg.MaxWorkers > 0 {
		o.maxWorkers = cfg.MaxWorkers
	}
}

// Run starts a new SyncJob for the given sync.
//
//nolint:gocyclo // orchestration function with necessary sequential steps
func (o *SyncOrchestrator) Run(ctx context.Context, syncID string, forceFull bool) (*domain.SyncJob, error) {
	syncCfg, err := o.syncStore.GetSync(ctx, syncID)
	if err != nil {
		return nil, fmt.Errorf("get sync: %w", err)
	}

	if active, err := o.syncStore.GetActiveJob(ctx, syncID); err == nil && active != nil {
		return nil, domain.ErrSyncJobConflict
	}

	conn, err := o.connectionStore.Get(ctx, syncCfg.SourceConnectionID)
	if err != nil {
		return nil, fmt.Errorf("get source connection: %w", err)
	}

	if o.factory == nil {
		return nil, fmt.Errorf("create source: source factory not configured")
	}
	src, err := o.factory.Create(ctx, *conn)
	if err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}
	defer src.Close()

	caps := src.Capabilities()
	if caps.SupportsValidation {
		if err := src.Validate(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrConnectorValidation, err)
		}
	}

	cursor, effectiveForceFull, err := o.loadCursor(ctx, syncID, conn.CursorField, forceFull)
	if err != nil {
		return nil, fmt.Errorf("load cursor: %w", err)
	}

	job := domain.SyncJob{
		ID:        fmt.Sprintf("job-%s-%d", syncID, time.Now().UnixNano()),
		SyncID:    syncID,
		Status:    domain.JobRunning,
		StartedAt: time.Now(),
	}
	if err := o.syncStore.SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("save job: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	o.setRunning(syncID, cancel)
	defer o.clearRunning(syncID)
	defer cancel()

	syncLog.Infof("Starting sync job %s for sync %s (forceFull=%v)", job.ID, syncID, effectiveForceFull)

	entitiesCh, errsCh := src.Produce(runCtx, cursor, effectiveForceFull)
	newCursorData, newCursorField, runErr := o.drain(runCtx, syncCfg, conn, entitiesCh, errsCh, &job)

	job.EndedAt = time.Now()
	switch {
	case errors.Is(runErr, context.Canceled):
		job.Status = domain.JobCancelled
	case runErr != nil:
		job.Status = domain.JobFailed
		job.ErrorMessage = runErr.Error()
	default:
		job.Status = domain.JobCompleted
		if err := o.saveCursor(ctx, syncID, newCursorField, newCursorData); err != nil {
			syncLog.Warnf("Failed to persist cursor for sync %s: %v", syncID, err)
		}
	}

	if err := o.syncStore.SaveJob(ctx, job); err != nil {
		syncLog.Warnf("Failed to save final job state for %s: %v", job.ID, err)
	}

	syncLog.Infof("Sync job %s finished: %s (inserted=%d updated=%d deleted=%d skipped=%d failed=%d)",
		job.ID, job.Status, job.EntitiesInserted, job.EntitiesUpdated, job.EntitiesDeleted, job.EntitiesSkipped, job.EntitiesFailed)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return &job, runErr
	}
	return &job, nil
}

// RunAll triggers Run for every configured sync, collecting per-sync errors.
func (o *SyncOrchestrator) RunAll(ctx context.Context) error {
	syncs, err := o.syncStore.ListSyncs(ctx)
	if err != nil {
		return fmt.Errorf("list syncs: %w", err)
	}

	var errs []error
	for _, s := range syncs {
		if _, err := o.Run(ctx, s.ID, false); err != nil {
			if errors.Is(err, domain.ErrSyncJobConflict) {
				continue
			}
			errs = append(errs, fmt.Errorf("sync %s: %w", s.ID, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Cancel requests cooperative cancellation of a sync's active job.
func (o *SyncOrchestrator) Cancel(ctx context.Context, syncID string) error {
	o.mu.RLock()
	cancel, ok := o.running[syncID]
	o.mu.RUnlock()
	if !ok {
		return domain.ErrNotFound
	}

	job, err := o.syncStore.GetActiveJob(ctx, syncID)
	if err == nil && job != nil {
		job.Status = domain.JobCancelling
		job.CancelReason = "cancelled by request"
		//nolint:errcheck // best-effort status update before the cancel takes effect
		_ = o.syncStore.SaveJob(ctx, *job)
	}

	cancel()
	return nil
}

// Status returns the current SyncStatus for a sync.
func (o *SyncOrchestrator) Status(ctx context.Context, syncID string) (*driving.SyncStatus, error) {
	job, err := o.syncStore.GetActiveJob(ctx, syncID)
	if err != nil || job == nil {
		jobs, listErr := o.syncStore.ListJobs(ctx, syncID, 1)
		if listErr != nil || len(jobs) == 0 {
			return &driving.SyncStatus{SyncID: syncID, JobStatus: domain.JobPending}, nil
		}
		job = &jobs[0]
	}

	processed := job.EntitiesInserted + job.EntitiesUpdated + job.EntitiesDeleted + job.EntitiesSkipped
	return &driving.SyncStatus{
		SyncID:            syncID,
		JobStatus:         job.Status,
		EntitiesProcessed: processed,
		ErrorCount:        job.EntitiesFailed,
	}, nil
}

// loadCursor materializes the cursor a run should start from, honouring
// force-full-sync and cursor staleness (§4.7): an expired cursor, or one due
// for its periodic full-sync pass, forces a full resync even if the caller
// didn't ask for one.
func (o *SyncOrchestrator) loadCursor(ctx context.Context, syncID, cursorField string, forceFull bool) (domain.SyncCursor, bool, error) {
	if forceFull || o.cursorStore == nil {
		return domain.EmptyCursor(syncID, cursorField), true, nil
	}

	cursor, err := o.cursorStore.GetCursor(ctx, syncID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.EmptyCursor(syncID, cursorField), true, nil
		}
		return domain.SyncCursor{}, false, err
	}

	if cursor.IsExpired(o.cursorMaxAge) {
		syncLog.Infof("Cursor for sync %s expired (max age %s); forcing full sync", syncID, o.cursorMaxAge)
		return domain.EmptyCursor(syncID, cursorField), true, nil
	}
	if cursor.NeedsPeriodicFullSync(o.fullSyncInterval) {
		syncLog.Infof("Cursor for sync %s due for periodic full sync (interval %s)", syncID, o.fullSyncInterval)
		return domain.EmptyCursor(syncID, cursorField), true, nil
	}

	return *cursor, false, nil
}

// saveCursor persists the cursor a run produced, if the source returned one.
func (o *SyncOrchestrator) saveCursor(ctx context.Context, syncID, cursorField string, data []byte) error {
	if o.cursorStore == nil || len(data) == 0 {
		return nil
	}
	return o.cursorStore.CreateOrUpdate(ctx, domain.SyncCursor{
		SyncID:      syncID,
		CursorField: cursorField,
		CursorData:  data,
		UpdatedAt:   time.Now(),
	})
}

// jobCounters accumulates per-run statistics across concurrent workers.
type jobCounters struct {
	mu                                         sync.Mutex
	inserted, updated, deleted, skipped, failed int
}

func (c *jobCounters) add(field *int, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*field += n
}

func (c *jobCounters) applyTo(job *domain.SyncJob) {
	c.mu.Lock()
	defer c.mu.Unlock()
	job.EntitiesInserted += c.inserted
	job.EntitiesUpdated += c.updated
	job.EntitiesDeleted += c.deleted
	job.EntitiesSkipped += c.skipped
	job.EntitiesFailed += c.failed
}

// drain pumps the source's entity/error channels through a bounded stream
// (§4.2) and dispatches each entity across a bounded worker pool (§4.3),
// classifying and routing it to the destination handlers as it arrives.
// Once the source closes, entities seen during the run are diffed against
// the entity store's prior membership for this sync and any orphan gets a
// delete action (§4.8.3).
func (o *SyncOrchestrator) drain(
	ctx context.Context,
	syncCfg *domain.Sync,
	conn *domain.SourceConnection,
	entitiesCh <-chan domain.Entity,
	errsCh <-chan error,
	job *domain.SyncJob,
) (cursorData []byte, cursorField string, err error) {
	st := stream.New(o.streamCapacity)
	go st.Pump(ctx, entitiesCh, errsCh)
	defer func() {
		st.Cancel()
		st.Drain()
	}()

	pool := workerpool.New(o.maxWorkers)
	counters := &jobCounters{}

	var seenMu sync.Mutex
	seen := make(map[string]struct{})

	streamEntities := st.Entities()
	streamErrs := st.Errors()

loop:
	for {
		select {
		case <-ctx.Done():
			pool.Wait()
			return cursorData, cursorField, ctx.Err()

		case runErr, ok := <-streamErrs:
			if !ok {
				streamErrs = nil
				if streamEntities == nil {
					break loop
				}
				continue
			}
			if sc, isComplete := driven.IsSyncComplete(runErr); isComplete {
				cursorData = sc.NewCursorData
				cursorField = sc.NewCursorField
				continue
			}
			pool.Wait()
			return cursorData, cursorField, fmt.Errorf("source error: %w", runErr)

		case entity, ok := <-streamEntities:
			if !ok {
				streamEntities = nil
				if streamErrs == nil {
					break loop
				}
				continue
			}
			seenMu.Lock()
			seen[entity.ID()] = struct{}{}
			seenMu.Unlock()

			e := entity
			if err := pool.Submit(ctx, func(workCtx context.Context) error {
				if err := o.dispatchOne(workCtx, syncCfg, conn, e, counters); err != nil {
					counters.add(&counters.failed, 1)
					syncLog.Debugf("Failed to process %s: %v", e.ID(), err)
				}
				return nil
			}); err != nil {
				pool.Wait()
				return cursorData, cursorField, err
			}
		}
	}

	pool.Wait()
	counters.applyTo(job)

	if err := o.cleanupOrphans(ctx, syncCfg, conn, seen, job); err != nil {
		syncLog.Warnf("Orphan cleanup failed for sync %s: %v", syncCfg.ID, err)
	}

	return cursorData, cursorField, nil
}

// cleanupOrphans deletes entities the entity store still has for this sync
// but that didn't appear in the current run (§4.8.3): the source stopped
// reporting them, so they're gone upstream.
func (o *SyncOrchestrator) cleanupOrphans(
	ctx context.Context,
	syncCfg *domain.Sync,
	conn *domain.SourceConnection,
	seen map[string]struct{},
	job *domain.SyncJob,
) error {
	if o.entityStore == nil {
		return nil
	}

	existing, err := o.entityStore.ListEntities(ctx, syncCfg.ID)
	if err != nil {
		return fmt.Errorf("list existing entities: %w", err)
	}

	batch := domain.NewActionBatch(syncCfg.ID, conn.ID)
	for _, e := range existing {
		if _, ok := seen[e.ID()]; ok {
			continue
		}
		chunks, _ := o.entityStore.GetChunks(ctx, e.ID())
		if !batch.Add(domain.Action{Type: domain.ActionDelete, Entity: e, Chunks: chunks, Reason: "missing from current run"}) {
			continue
		}
	}

	if len(batch.Actions) == 0 {
		return nil
	}

	for _, handler := range o.handlers {
		if err := handler.Handle(ctx, batch); err != nil {
			return fmt.Errorf("handler %s: %w", handler.Name(), err)
		}
	}

	for _, action := range batch.Actions {
		if err := o.entityStore.DeleteEntity(ctx, action.Entity.ID()); err != nil {
			syncLog.Warnf("Failed to delete orphan %s: %v", action.Entity.ID(), err)
			continue
		}
		job.EntitiesDeleted++
	}

	syncLog.Infof("Sync %s: removed %d orphaned entities", syncCfg.ID, len(batch.Actions))
	return nil
}

// dispatchOne runs the single-entity pipeline: exclusion check,
// classification against the stored content hash, normalise/post-process,
// embed, save, and fan out to the destination handlers. counters records
// outcome tallies safely across concurrent worker-pool invocations.
func (o *SyncOrchestrator) dispatchOne(
	ctx context.Context,
	syncCfg *domain.Sync,
	conn *domain.SourceConnection,
	entity domain.Entity,
	counters *jobCounters,
) error {
	meta := entity.Meta()
	meta.SyncID = syncCfg.ID
	meta.SourceConnectionID = conn.ID
	meta.OriginalEntityID = entity.ID()

	if o.exclusionStore != nil {
		excluded, err := o.exclusionStore.IsExcluded(ctx, conn.ID, entity.ID())
		if err != nil {
			return fmt.Errorf("check exclusion: %w", err)
		}
		if excluded {
			counters.add(&counters.skipped, 1)
			return nil
		}
	}

	processable := entity
	if file, ok := entity.(*domain.FileEntity); ok {
		if file.ShouldSkip {
			counters.add(&counters.skipped, 1)
			return nil
		}
		if o.registry != nil {
			result, err := o.registry.Normalise(ctx, file)
			if err != nil {
				return fmt.Errorf("normalise: %w", err)
			}
			chunkEntity := &domain.ChunkEntity{BaseEntity: file.BaseEntity, Content: result.Text}
			*chunkEntity.Meta() = *meta
			processable = chunkEntity
		}
	}

	existingHash := ""
	if o.entityStore != nil {
		existingHash, _ = o.entityStore.ContentHash(ctx, entity.ID())
	}

	chunks, err := o.pipeline.Process(ctx, processable)
	if err != nil {
		return fmt.Errorf("post-process: %w", err)
	}

	isUpdate := existingHash != ""
	if isUpdate && existingHash == meta.ContentHash && meta.ContentHash != "" {
		counters.add(&counters.skipped, 1)
		return nil
	}

	if o.embeddingService != nil {
		for i := range chunks {
			embedding, err := o.embeddingService.Embed(ctx, chunks[i].Content)
			if err != nil {
				return fmt.Errorf("embed chunk: %w", err)
			}
			chunks[i].Embedding = embedding
		}
	}

	if o.entityStore != nil {
		if err := o.entityStore.SaveEntity(ctx, processable); err != nil {
			return fmt.Errorf("save entity: %w", err)
		}
		if err := o.entityStore.SaveChunks(ctx, chunks); err != nil {
			return fmt.Errorf("save chunks: %w", err)
		}
	}

	actionType := domain.ActionInsert
	if isUpdate {
		actionType = domain.ActionUpdate
	}
	batch := domain.NewActionBatch(syncCfg.ID, conn.ID)
	batch.Add(domain.Action{Type: actionType, Entity: processable, Chunks: chunks})
	for _, handler := range o.handlers {
		if err := handler.Handle(ctx, batch); err != nil {
			return fmt.Errorf("handler %s: %w", handler.Name(), err)
		}
	}

	if isUpdate {
		counters.add(&counters.updated, 1)
	} else {
		counters.add(&counters.inserted, 1)
	}
	return nil
}

func (o *SyncOrchestrator) setRunning(syncID string, cancel context.CancelFunc) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.running[syncID] = cancel
}

func (o *SyncOrchestrator) clearRunning(syncID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.running, syncID)
}
