package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

func TestWatermarkStore_GetBeforeFirstSet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewWatermarkStore(pool)

	_, err := store.Get(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWatermarkStore_SetAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewWatermarkStore(pool)
	ctx := context.Background()

	err := store.Set(ctx, 1739487600)
	require.NoError(t, err)

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1739487600), got)

	// Second Set overwrites the single row
	err = store.Set(ctx, 1739491200)
	require.NoError(t, err)

	got, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1739491200), got)
}
