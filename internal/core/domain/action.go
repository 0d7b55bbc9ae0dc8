package domain

// ActionType is the pipeline's decision for one entity in a given job.
type ActionType string

const (
	ActionInsert ActionType = "insert"
	ActionUpdate ActionType = "update"
	ActionDelete ActionType = "delete"
	ActionSkip   ActionType = "skip"
)

// Action binds an ActionType to the entity (and, for Insert/Update, the
// chunks) a worker produced for it.
type Action struct {
	Type     ActionType
	Entity   Entity
	Chunks   []Chunk
	Reason   string // set for Skip (e.g. "content hash unchanged")
}

// ActionBatch groups the actions produced by one worker invocation of the
// pipeline. Handlers bulk-operate over a batch. The pipeline guarantees
// that within a single batch an entity_id appears at most once (§3, §8.3) —
// enforced by routing every entity to exactly one worker and by
// NewActionBatch rejecting duplicates.
type ActionBatch struct {
	SyncID             string
	SourceConnectionID string
	Actions            []Action

	seen map[string]struct{}
}

// NewActionBatch creates an empty batch for one sync/source-connection pair.
func NewActionBatch(syncID, sourceConnectionID string) *ActionBatch {
	return &ActionBatch{
		SyncID:             syncID,
		SourceConnectionID: sourceConnectionID,
		seen:               make(map[string]struct{}),
	}
}

// Add appends an action, enforcing entity_id uniqueness within the batch
// (§8, invariant 3). Returns false if the entity_id was already present —
// callers should treat that as a programming error (critical, per §7), not
// retry the add.
func (b *ActionBatch) Add(a Action) bool {
	id := a.Entity.ID()
	if _, dup := b.seen[id]; dup {
		return false
	}
	b.seen[id] = struct{}{}
	b.Actions = append(b.Actions, a)
	return true
}

// MembershipActionType is the parallel action taxonomy for access-control
// membership records (§3).
type MembershipActionType string

const (
	MembershipUpsert        MembershipActionType = "upsert"
	MembershipDelete        MembershipActionType = "delete"
	MembershipDeleteByMember MembershipActionType = "delete_by_member"
	MembershipDeleteByGroup MembershipActionType = "delete_by_group"
)

// MembershipAction is one access-control row mutation.
type MembershipAction struct {
	Type   MembershipActionType
	Member string
	MemberType string
	Group  string
}
