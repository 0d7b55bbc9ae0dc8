package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown connector or normaliser type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrSyncInProgress indicates a sync is already running.
	ErrSyncInProgress = errors.New("sync in progress")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Features requiring LLM (query rewriting, summarisation) are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Vector/semantic search is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrSearchUnavailable indicates the search engine is not configured.
	// Full-text/keyword search is disabled.
	ErrSearchUnavailable = errors.New("search engine unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	// Semantic similarity search is disabled.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// Authentication Errors.

	// ErrAuthRequired indicates the connector requires authentication but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates the authentication has expired and refresh failed.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrAuthInvalid indicates the authentication credentials are invalid.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrTokenRefreshFailed indicates token refresh operation failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// Connector Errors.

	// ErrConnectorValidation indicates connector validation failed.
	// The source is misconfigured or credentials are invalid.
	ErrConnectorValidation = errors.New("connector validation failed")

	// ErrConnectorClosed indicates the connector has been closed.
	ErrConnectorClosed = errors.New("connector closed")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthProviderInUse indicates an auth provider cannot be deleted because sources depend on it.
	ErrAuthProviderInUse = errors.New("auth provider is in use by one or more sources")

	// Sync/Destination Errors.

	// ErrInvariantViolation indicates an invariant of §3/§8 was violated
	// (e.g. more than one Active destination slot). Critical, per §7.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrNoActiveDestination indicates a sync has destination slots but none is Active.
	ErrNoActiveDestination = errors.New("sync has no active destination")

	// ErrCannotRemoveSource indicates an attempt to remove a sync's source slot.
	ErrCannotRemoveSource = errors.New("cannot remove source slot")

	// ErrCannotRemoveActive indicates an Active destination must be demoted before removal.
	ErrCannotRemoveActive = errors.New("cannot remove active destination; demote first")

	// ErrCannotDemoteSoleActive indicates the only remaining Active slot cannot be demoted.
	ErrCannotDemoteSoleActive = errors.New("cannot demote the sole remaining active destination")

	// ErrSyncJobConflict indicates a job is already active for this sync (§5, §8 invariant 1).
	ErrSyncJobConflict = errors.New("a job is already active for this sync")

	// ErrEmptyChunk indicates the chunker produced a zero-length chunk (critical, §7).
	ErrEmptyChunk = errors.New("empty chunk")

	// ErrChunkTooLarge indicates a chunk exceeded the hard token limit after
	// the safety-net fallback (critical, §7).
	ErrChunkTooLarge = errors.New("chunk exceeds maximum token limit")

	// ErrFileSkipped is a benign, non-error signal from a file handler (§4.1, §7 "Expected").
	ErrFileSkipped = errors.New("file skipped")

	// ErrDownloadFailure indicates a retryable/operational file download error (§4.1, §7).
	ErrDownloadFailure = errors.New("file download failed")

	// ErrSourceConnectionDeleted signals the self-destruct path of §4.8 step 5.
	ErrSourceConnectionDeleted = errors.New("source connection deleted")

	// ErrFederatedSearchExclusive indicates a source advertised both produce
	// and federated_search, which §9's open question treats as mutually
	// exclusive.
	ErrFederatedSearchExclusive = errors.New("federated_search is mutually exclusive with produce")
)
