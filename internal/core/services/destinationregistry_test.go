package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

func newTestSyncWithActiveSlot(syncID string) domain.Sync {
	s := newTestSync(syncID, "conn-1")
	s.Slots = []domain.SyncConnection{
		{ID: "slot-active", SyncID: syncID, ConnectionID: "dest-1", Role: domain.RoleActive},
	}
	return s
}

func TestDestinationRegistry_Fork_DefaultsToShadow(t *testing.T) {
	store := newFakeSyncStore()
	ctx := context.Background()
	require.NoError(t, store.SaveSync(ctx, newTestSyncWithActiveSlot("sync-1")))

	reg := NewDestinationRegistry(store)
	slot, err := reg.Fork(ctx, "sync-1", domain.SyncConnection{ID: "slot-shadow", ConnectionID: "dest-2"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleShadow, slot.Role)

	slots, err := reg.ListSlots(ctx, "sync-1")
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestDestinationRegistry_Switch_DemotesPreviousActive(t *testing.T) {
	store := newFakeSyncStore()
	ctx := context.Background()
	sync := newTestSyncWithActiveSlot("sync-1")
	sync.Slots = append(sync.Slots, domain.SyncConnection{ID: "slot-shadow", SyncID: "sync-1", ConnectionID: "dest-2", Role: domain.RoleShadow})
	require.NoError(t, store.SaveSync(ctx, sync))

	reg := NewDestinationRegistry(store)
	require.NoError(t, reg.Switch(ctx, "sync-1", "slot-shadow"))

	slots, err := reg.ListSlots(ctx, "sync-1")
	require.NoError(t, err)

	roles := map[string]domain.SlotRole{}
	for _, s := range slots {
		roles[s.ID] = s.Role
	}
	assert.Equal(t, domain.RoleActive, roles["slot-shadow"])
	assert.Equal(t, domain.RoleDeprecated, roles["slot-active"])
}

func TestDestinationRegistry_Switch_TwiceDeprecatesEachPriorActive(t *testing.T) {
	store1 := newFakeSyncStore()
	store2 := newFakeSyncStore()
	ctx := context.Background()

	baseSync := func() domain.Sync {
		s := newTestSyncWithActiveSlot("sync-1")
		s.Slots = append(s.Slots,
			domain.SyncConnection{ID: "slot-b", SyncID: "sync-1", ConnectionID: "dest-2", Role: domain.RoleShadow},
			domain.SyncConnection{ID: "slot-c", SyncID: "sync-1", ConnectionID: "dest-3", Role: domain.RoleShadow},
		)
		return s
	}
	require.NoError(t, store1.SaveSync(ctx, baseSync()))
	require.NoError(t, store2.SaveSync(ctx, baseSync()))

	reg1 := NewDestinationRegistry(store1)
	require.NoError(t, reg1.Switch(ctx, "sync-1", "slot-b"))
	require.NoError(t, reg1.Switch(ctx, "sync-1", "slot-c"))

	reg2 := NewDestinationRegistry(store2)
	require.NoError(t, reg2.Switch(ctx, "sync-1", "slot-c"))

	slots1, err := reg1.ListSlots(ctx, "sync-1")
	require.NoError(t, err)
	slots2, err := reg2.ListSlots(ctx, "sync-1")
	require.NoError(t, err)

	roles1, roles2 := map[string]domain.SlotRole{}, map[string]domain.SlotRole{}
	for _, s := range slots1 {
		roles1[s.ID] = s.Role
	}
	for _, s := range slots2 {
		roles2[s.ID] = s.Role
	}
	assert.Equal(t, map[string]domain.SlotRole{
		"slot-active": domain.RoleDeprecated,
		"slot-b":      domain.RoleDeprecated,
		"slot-c":      domain.RoleActive,
	}, roles1)
	assert.Equal(t, map[string]domain.SlotRole{
		"slot-active": domain.RoleDeprecated,
		"slot-b":      domain.RoleShadow,
		"slot-c":      domain.RoleActive,
	}, roles2)
}

func TestDestinationRegistry_Remove_ActiveReturnsError(t *testing.T) {
	store := newFakeSyncStore()
	ctx := context.Background()
	require.NoError(t, store.SaveSync(ctx, newTestSyncWithActiveSlot("sync-1")))

	reg := NewDestinationRegistry(store)
	err := reg.Remove(ctx, "sync-1", "slot-active")
	assert.ErrorIs(t, err, domain.ErrCannotRemoveActive)
}

func TestDestinationRegistry_Remove_ShadowSucceeds(t *testing.T) {
	store := newFakeSyncStore()
	ctx := context.Background()
	sync := newTestSyncWithActiveSlot("sync-1")
	sync.Slots = append(sync.Slots, domain.SyncConnection{ID: "slot-shadow", SyncID: "sync-1", Role: domain.RoleShadow})
	require.NoError(t, store.SaveSync(ctx, sync))

	reg := NewDestinationRegistry(store)
	require.NoError(t, reg.Remove(ctx, "sync-1", "slot-shadow"))

	slots, err := reg.ListSlots(ctx, "sync-1")
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestDestinationRegistry_SetRole_RejectsSecondActive(t *testing.T) {
	store := newFakeSyncStore()
	ctx := context.Background()
	sync := newTestSyncWithActiveSlot("sync-1")
	sync.Slots = append(sync.Slots, domain.SyncConnection{ID: "slot-shadow", SyncID: "sync-1", Role: domain.RoleShadow})
	require.NoError(t, store.SaveSync(ctx, sync))

	reg := NewDestinationRegistry(store)
	err := reg.SetRole(ctx, "sync-1", "slot-shadow", domain.RoleActive)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
}
