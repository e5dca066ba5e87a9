package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

func TestDepthStore_InsertAndScan(t *testing.T) {
	store := NewDepthStore()
	ctx := context.Background()

	result, err := store.InsertMany(ctx, []*domain.DepthSample{
		{Pool: "BTC.BTC", StartTime: 0, EndTime: 3600, AssetDepth: 100},
		{Pool: "ETH.ETH", StartTime: 0, EndTime: 3600, AssetDepth: 200},
		nil,
		{Pool: "", StartTime: 0, EndTime: 3600},
		{Pool: "BTC.BTC", StartTime: 3600, EndTime: 3600},
	})
	if err != nil {
		t.Fatalf("InsertMany failed: %v", err)
	}
	if result.Inserted != 2 {
		t.Errorf("Expected 2 inserted, got %d", result.Inserted)
	}
	if len(result.Errors) != 3 {
		t.Fatalf("Expected 3 record errors, got %d", len(result.Errors))
	}
	for _, re := range result.Errors {
		if !errors.Is(re.Err, storage.ErrInvalidInput) {
			t.Errorf("Record %d: expected ErrInvalidInput, got %v", re.Index, re.Err)
		}
	}

	samples, err := store.Scan(ctx, storage.Filter{Pool: "BTC.BTC"})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(samples) != 1 || samples[0].Pool != "BTC.BTC" {
		t.Fatalf("Pool filter failed: %+v", samples)
	}

	// Mutating the returned sample must not leak into the store.
	samples[0].AssetDepth = -1
	again, _ := store.Scan(ctx, storage.Filter{Pool: "BTC.BTC"})
	if again[0].AssetDepth != 100 {
		t.Errorf("Scan returned aliased storage, got depth %v", again[0].AssetDepth)
	}
}

func TestDepthStore_WindowFilter(t *testing.T) {
	store := NewDepthStore()
	ctx := context.Background()

	_, _ = store.InsertMany(ctx, []*domain.DepthSample{
		{Pool: "BTC.BTC", StartTime: 0, EndTime: 3600},
		{Pool: "BTC.BTC", StartTime: 3600, EndTime: 7200},
		{Pool: "BTC.BTC", StartTime: 7200, EndTime: 10800},
	})

	from, to := int64(3600), int64(7200)
	samples, err := store.Scan(ctx, storage.Filter{StartTimeGTE: &from, EndTimeLTE: &to})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("Expected 1 sample in window, got %d", len(samples))
	}
	if samples[0].StartTime != 3600 {
		t.Errorf("Wrong sample selected: %+v", samples[0])
	}

	count, err := store.Count(ctx, storage.Filter{StartTimeGTE: &from})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected count 2, got %d", count)
	}
}

func TestDepthStore_DuplicatesTolerated(t *testing.T) {
	store := NewDepthStore()
	ctx := context.Background()

	sample := &domain.DepthSample{Pool: "BTC.BTC", StartTime: 0, EndTime: 3600}
	_, _ = store.InsertMany(ctx, []*domain.DepthSample{sample})
	result, err := store.InsertMany(ctx, []*domain.DepthSample{sample})
	if err != nil {
		t.Fatalf("Re-insert failed: %v", err)
	}
	if result.Inserted != 1 || len(result.Errors) != 0 {
		t.Errorf("Duplicate insert should succeed: %+v", result)
	}

	count, _ := store.Count(ctx, storage.Filter{})
	if count != 2 {
		t.Errorf("Expected both rows kept, got %d", count)
	}
}

func TestEarningsStore_ParentChildren(t *testing.T) {
	store := NewEarningsStore()
	ctx := context.Background()

	result, err := store.InsertMany(ctx, []*domain.EarningsSample{
		{
			StartTime: 0, EndTime: 3600, BlockRewards: 10,
			Pools: []*domain.PoolEarnings{
				{Pool: "BTC.BTC", Rewards: 1},
				{Pool: "", Rewards: 2}, // invalid child, parent survives
				{Pool: "ETH.ETH", Rewards: 3},
			},
		},
	})
	if err != nil {
		t.Fatalf("InsertMany failed: %v", err)
	}
	if result.Inserted != 1 {
		t.Errorf("Expected 1 parent inserted, got %d", result.Inserted)
	}
	if len(result.Errors) != 1 {
		t.Errorf("Expected 1 child error, got %d", len(result.Errors))
	}

	samples, err := store.Scan(ctx, storage.Filter{})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("Expected 1 parent, got %d", len(samples))
	}
	parent := samples[0]
	if parent.ID == "" {
		t.Fatal("Parent should have been assigned an ID")
	}
	if parent.Pools != nil {
		t.Errorf("Scan must not load children, got %+v", parent.Pools)
	}

	pools, err := store.PoolsByEarningsID(ctx, parent.ID)
	if err != nil {
		t.Fatalf("PoolsByEarningsID failed: %v", err)
	}
	if len(pools) != 2 {
		t.Fatalf("Expected 2 valid children, got %d", len(pools))
	}
	for _, pool := range pools {
		if pool.EarningsID != parent.ID {
			t.Errorf("Child does not reference parent: %+v", pool)
		}
	}

	missing, err := store.PoolsByEarningsID(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("PoolsByEarningsID failed: %v", err)
	}
	if missing == nil || len(missing) != 0 {
		t.Errorf("Expected empty non-nil slice for unknown ID, got %v", missing)
	}
}

func TestEarningsStore_FreshIDPerInsert(t *testing.T) {
	store := NewEarningsStore()
	ctx := context.Background()

	sample := &domain.EarningsSample{StartTime: 0, EndTime: 3600}
	_, _ = store.InsertMany(ctx, []*domain.EarningsSample{sample})
	_, _ = store.InsertMany(ctx, []*domain.EarningsSample{sample})

	samples, _ := store.Scan(ctx, storage.Filter{})
	if len(samples) != 2 {
		t.Fatalf("Expected 2 parents, got %d", len(samples))
	}
	if samples[0].ID == samples[1].ID {
		t.Errorf("Re-ingestion must assign a fresh ID, both got %s", samples[0].ID)
	}
}

func TestWatermarkStore(t *testing.T) {
	store := NewWatermarkStore()
	ctx := context.Background()

	_, err := store.Get(ctx)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound before first Set, got %v", err)
	}

	if err := store.Set(ctx, 1739487600); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	ts, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ts != 1739487600 {
		t.Errorf("Expected 1739487600, got %d", ts)
	}

	if err := store.Set(ctx, 1739491200); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}
	ts, _ = store.Get(ctx)
	if ts != 1739491200 {
		t.Errorf("Expected overwritten value, got %d", ts)
	}
}
