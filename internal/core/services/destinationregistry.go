package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driven"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driving"
	"github.com/airweave-ai/airweave-core/internal/logging"
)

var destRegistryLog = logging.Component("destination-registry")

// Ensure DestinationRegistry implements the interface.
var _ driving.DestinationRegistry = (*DestinationRegistry)(nil)

// DestinationRegistry implements driving.DestinationRegistry over a
// driven.SyncStore, enforcing the at-most-one-Active invariant (§4.6,
// §8 invariant 2) on every mutation.
type DestinationRegistry struct {
	syncStore driven.SyncStore
}

// NewDestinationRegistry creates a registry backed by a SyncStore.
func NewDestinationRegistry(syncStore driven.SyncStore) *DestinationRegistry {
	return &DestinationRegistry{syncStore: syncStore}
}

// Fork attaches a new destination slot to a sync as a Shadow. It does not
// replay the sync's snapshot into the new slot.
func (r *DestinationRegistry) Fork(ctx context.Context, syncID string, conn domain.SyncConnection) (*domain.SyncConnection, error) {
	sync, err := r.syncStore.GetSync(ctx, syncID)
	if err != nil {
		return nil, fmt.Errorf("get sync: %w", err)
	}

	if conn.ID == "" {
		conn.ID = uuid.NewString()
	}
	conn.SyncID = syncID
	conn.IsSource = false
	if conn.Role == domain.RoleSource || conn.Role == "" {
		conn.Role = domain.RoleShadow
	}

	sync.Slots = append(sync.Slots, conn)
	if err := sync.ValidateInvariants(); err != nil {
		return nil, err
	}
	if err := r.syncStore.SaveSync(ctx, *sync); err != nil {
		return nil, fmt.Errorf("save sync: %w", err)
	}

	destRegistryLog.Infof("forked destination slot %s (role=%s) onto sync %s", conn.ID, conn.Role, syncID)
	return &conn, nil
}

// Switch promotes a Shadow slot to Active and demotes the previous Active
// slot to Deprecated, atomically within a single SaveSync call (§4.6, §8
// invariant 2). Each call deprecates whichever slot was Active before it,
// so switching to a and then to b leaves a Deprecated, while switching to
// b directly leaves a as a Shadow; either way exactly one slot is Active.
func (r *DestinationRegistry) Switch(ctx context.Context, syncID, slotID string) error {
	sync, err := r.syncStore.GetSync(ctx, syncID)
	if err != nil {
		return fmt.Errorf("get sync: %w", err)
	}

	target := -1
	for i := range sync.Slots {
		if sync.Slots[i].ID == slotID && !sync.Slots[i].IsSource {
			target = i
			break
		}
	}
	if target == -1 {
		return fmt.Errorf("%w: slot %s on sync %s", domain.ErrNotFound, slotID, syncID)
	}

	for i := range sync.Slots {
		if sync.Slots[i].IsSource {
			continue
		}
		switch {
		case i == target:
			sync.Slots[i].Role = domain.RoleActive
		case sync.Slots[i].Role == domain.RoleActive:
			sync.Slots[i].Role = domain.RoleDeprecated
		}
	}

	if err := sync.ValidateInvariants(); err != nil {
		return err
	}
	if err := r.syncStore.SaveSync(ctx, *sync); err != nil {
		return fmt.Errorf("save sync: %w", err)
	}

	destRegistryLog.Infof("switched sync %s active slot to %s", syncID, slotID)
	return nil
}

// SetRole directly sets a slot's role, enforcing ValidateInvariants.
func (r *DestinationRegistry) SetRole(ctx context.Context, syncID, slotID string, role domain.SlotRole) error {
	sync, err := r.syncStore.GetSync(ctx, syncID)
	if err != nil {
		return fmt.Errorf("get sync: %w", err)
	}

	found := false
	for i := range sync.Slots {
		if sync.Slots[i].ID == slotID && !sync.Slots[i].IsSource {
			sync.Slots[i].Role = role
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: slot %s on sync %s", domain.ErrNotFound, slotID, syncID)
	}

	if err := sync.ValidateInvariants(); err != nil {
		return err
	}
	return r.syncStore.SaveSync(ctx, *sync)
}

// Remove detaches a destination slot. Returns domain.ErrCannotRemoveActive
// if the slot is Active.
func (r *DestinationRegistry) Remove(ctx context.Context, syncID, slotID string) error {
	sync, err := r.syncStore.GetSync(ctx, syncID)
	if err != nil {
		return fmt.Errorf("get sync: %w", err)
	}

	kept := make([]domain.SyncConnection, 0, len(sync.Slots))
	removed := false
	for _, slot := range sync.Slots {
		if slot.ID == slotID && !slot.IsSource {
			if slot.Role == domain.RoleActive {
				return domain.ErrCannotRemoveActive
			}
			removed = true
			continue
		}
		kept = append(kept, slot)
	}
	if !removed {
		return fmt.Errorf("%w: slot %s on sync %s", domain.ErrNotFound, slotID, syncID)
	}

	sync.Slots = kept
	return r.syncStore.SaveSync(ctx, *sync)
}

// ListSlots returns all destination slots for a sync.
func (r *DestinationRegistry) ListSlots(ctx context.Context, syncID string) ([]domain.SyncConnection, error) {
	sync, err := r.syncStore.GetSync(ctx, syncID)
	if err != nil {
		return nil, fmt.Errorf("get sync: %w", err)
	}
	return sync.DestinationSlots(), nil
}
