package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

func TestCursorStore_CreateOrUpdateAndGetCursor(t *testing.T) {
	store := NewCursorStore()
	ctx := context.Background()

	now := time.Now()
	err := store.CreateOrUpdate(ctx, domain.SyncCursor{
		SyncID:      "sync-1",
		CursorField: "updated_at",
		CursorData:  []byte(`{"v":1}`),
		UpdatedAt:   now,
	})
	require.NoError(t, err)

	cursor, err := store.GetCursor(ctx, "sync-1")
	require.NoError(t, err)
	assert.Equal(t, "updated_at", cursor.CursorField)
	assert.Equal(t, []byte(`{"v":1}`), []byte(cursor.CursorData))
}

func TestCursorStore_GetCursor_NotFound(t *testing.T) {
	store := NewCursorStore()
	_, err := store.GetCursor(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCursorStore_UpdateCursorDataPreservesField(t *testing.T) {
	store := NewCursorStore()
	ctx := context.Background()

	_ = store.CreateOrUpdate(ctx, domain.SyncCursor{
		SyncID: "sync-1", CursorField: "updated_at", CursorData: []byte("old"),
	})
	err := store.UpdateCursorData(ctx, "sync-1", []byte("new"))
	require.NoError(t, err)

	cursor, err := store.GetCursor(ctx, "sync-1")
	require.NoError(t, err)
	assert.Equal(t, "updated_at", cursor.CursorField)
	assert.Equal(t, []byte("new"), []byte(cursor.CursorData))
}

func TestCursorStore_Delete(t *testing.T) {
	store := NewCursorStore()
	ctx := context.Background()

	_ = store.CreateOrUpdate(ctx, domain.SyncCursor{SyncID: "sync-1"})
	require.NoError(t, store.Delete(ctx, "sync-1"))

	_, err := store.GetCursor(ctx, "sync-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCursorStore_Summary(t *testing.T) {
	store := NewCursorStore()
	ctx := context.Background()

	summary, err := store.Summary(ctx, "sync-1")
	require.NoError(t, err)
	assert.Equal(t, "no cursor", summary)

	_ = store.CreateOrUpdate(ctx, domain.SyncCursor{SyncID: "sync-1", CursorField: "cursor"})
	summary, err = store.Summary(ctx, "sync-1")
	require.NoError(t, err)
	assert.Contains(t, summary, "field=cursor")
}
