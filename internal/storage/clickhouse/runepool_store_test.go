package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

func TestRunePoolStore_InsertMany_NullableDepth(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRunePoolStore(conn)
	ctx := context.Background()

	samples := []*domain.RunePoolSample{
		{StartTime: 0, EndTime: 3600, Depth: ptr(123.45), Count: 10, Units: 1000},
		{StartTime: 3600, EndTime: 7200, Depth: nil, Count: 11, Units: 1100},
	}

	res, err := store.InsertMany(ctx, samples)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)

	got, err := store.Scan(ctx, storage.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Depth)
	assert.Equal(t, 123.45, *got[0].Depth)
	assert.Nil(t, got[1].Depth)
	assert.Equal(t, 11.0, got[1].Count)
}

func TestRunePoolStore_CountAndWindow(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRunePoolStore(conn)
	ctx := context.Background()

	samples := []*domain.RunePoolSample{
		{StartTime: 0, EndTime: 3600, Count: 1, Units: 1},
		{StartTime: 3600, EndTime: 7200, Count: 2, Units: 2},
		{StartTime: 7200, EndTime: 10800, Count: 3, Units: 3},
	}
	_, err := store.InsertMany(ctx, samples)
	require.NoError(t, err)

	count, err := store.Count(ctx, storage.Filter{StartTimeGTE: ptr(int64(3600))})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	got, err := store.Scan(ctx, storage.Filter{EndTimeLTE: ptr(int64(7200))})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3600), got[1].StartTime)
}
