package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage/memory"
)

type testStores struct {
	depth    *memory.DepthStore
	swaps    *memory.SwapsStore
	earnings *memory.EarningsStore
	runepool *memory.RunePoolStore
}

func newTestEngine(now int64) (*Engine, *testStores) {
	stores := &testStores{
		depth:    memory.NewDepthStore(),
		swaps:    memory.NewSwapsStore(),
		earnings: memory.NewEarningsStore(),
		runepool: memory.NewRunePoolStore(),
	}
	engine := NewEngine(EngineOptions{
		Depth:    stores.depth,
		Swaps:    stores.swaps,
		Earnings: stores.earnings,
		RunePool: stores.runepool,
		Now:      func() time.Time { return time.Unix(now, 0) },
	})
	return engine, stores
}

func depthAt(pool string, start, end int64, price float64) *domain.DepthSample {
	return &domain.DepthSample{
		Pool:       pool,
		StartTime:  start,
		EndTime:    end,
		AssetPrice: price,
		AssetDepth: price * 10,
		Units:      1000,
	}
}

func TestDepthHistory_BoundaryEndTimesShareBucket(t *testing.T) {
	engine, stores := newTestEngine(100_000)
	ctx := context.Background()

	// 3599 and 3600 both close the [0, 3600) bucket; 7199 closes [3600, 7200).
	_, err := stores.depth.InsertMany(ctx, []*domain.DepthSample{
		depthAt("BTC.BTC", 0, 3599, 1.0),
		depthAt("BTC.BTC", 0, 3600, 2.0),
		depthAt("BTC.BTC", 3600, 7199, 3.0),
	})
	if err != nil {
		t.Fatalf("InsertMany failed: %v", err)
	}

	resp, err := engine.DepthHistory(ctx, "BTC.BTC", Params{From: i64(0)})
	if err != nil {
		t.Fatalf("DepthHistory failed: %v", err)
	}

	if len(resp.Intervals) != 2 {
		t.Fatalf("Expected 2 buckets, got %d", len(resp.Intervals))
	}
	first := resp.Intervals[0]
	if first.StartTime != 0 || first.EndTime != 3600 {
		t.Errorf("Unexpected first bucket [%d, %d)", first.StartTime, first.EndTime)
	}
	// The sample ending at 3600 was ingested later, so it wins the bucket
	if first.AssetPrice != 2.0 {
		t.Errorf("Expected last-ingested sample to win, got price %v", first.AssetPrice)
	}
	second := resp.Intervals[1]
	if second.StartTime != 3600 || second.EndTime != 7200 {
		t.Errorf("Unexpected second bucket [%d, %d)", second.StartTime, second.EndTime)
	}
	if second.AssetPrice != 3.0 {
		t.Errorf("Expected price 3.0, got %v", second.AssetPrice)
	}

	if resp.Pagination.TotalRecords != 2 || resp.Pagination.TotalPages != 1 {
		t.Errorf("Unexpected pagination: %+v", resp.Pagination)
	}
}

func TestDepthHistory_ReingestionIsIdempotentAtQueryTime(t *testing.T) {
	engine, stores := newTestEngine(100_000)
	ctx := context.Background()

	// The same upstream interval ingested twice: duplicate rows in storage,
	// one bucket in the response, the newer row winning.
	_, _ = stores.depth.InsertMany(ctx, []*domain.DepthSample{depthAt("BTC.BTC", 0, 3600, 1.0)})
	_, _ = stores.depth.InsertMany(ctx, []*domain.DepthSample{depthAt("BTC.BTC", 0, 3600, 1.5)})

	resp, err := engine.DepthHistory(ctx, "BTC.BTC", Params{From: i64(0)})
	if err != nil {
		t.Fatalf("DepthHistory failed: %v", err)
	}
	if len(resp.Intervals) != 1 {
		t.Fatalf("Expected 1 bucket, got %d", len(resp.Intervals))
	}
	if resp.Intervals[0].AssetPrice != 1.5 {
		t.Errorf("Expected re-ingested value 1.5, got %v", resp.Intervals[0].AssetPrice)
	}
}

func TestDepthHistory_Meta(t *testing.T) {
	engine, stores := newTestEngine(100_000)
	ctx := context.Background()

	first := depthAt("BTC.BTC", 0, 3600, 5.0)
	first.Luvi = 0.001
	last := depthAt("BTC.BTC", 3600, 7200, 3.0)
	last.Luvi = 0.004
	_, _ = stores.depth.InsertMany(ctx, []*domain.DepthSample{first, last})

	resp, err := engine.DepthHistory(ctx, "BTC.BTC", Params{From: i64(0)})
	if err != nil {
		t.Fatalf("DepthHistory failed: %v", err)
	}

	meta := resp.Meta
	if meta.StartTime != 0 || meta.EndTime != 7200 {
		t.Errorf("Unexpected meta window [%d, %d]", meta.StartTime, meta.EndTime)
	}
	if meta.PriceShiftLoss != 2.0 { // first price - last price
		t.Errorf("Expected priceShiftLoss 2.0, got %v", meta.PriceShiftLoss)
	}
	if meta.LuviIncrease != 0.003 {
		t.Errorf("Expected luviIncrease 0.003, got %v", meta.LuviIncrease)
	}
	if meta.StartAssetDepth != "50" || meta.EndAssetDepth != "30" {
		t.Errorf("Unexpected string depths: %s / %s", meta.StartAssetDepth, meta.EndAssetDepth)
	}
	if meta.StartLPUnits != "1000" {
		t.Errorf("Expected startLPUnits 1000, got %s", meta.StartLPUnits)
	}
}

func TestDepthHistory_ImplicitWindowExcludesOldSamples(t *testing.T) {
	now := int64(1_000_000)
	engine, stores := newTestEngine(now)
	ctx := context.Background()

	// interval=hour count=10: window starts at now - 36000
	inWindow := depthAt("BTC.BTC", now-7200, now-3600, 1.0)
	outOfWindow := depthAt("BTC.BTC", now-50_000, now-46_400, 2.0)
	_, _ = stores.depth.InsertMany(ctx, []*domain.DepthSample{outOfWindow, inWindow})

	resp, err := engine.DepthHistory(ctx, "BTC.BTC", Params{Interval: str("hour"), Count: i64(10)})
	if err != nil {
		t.Fatalf("DepthHistory failed: %v", err)
	}
	if len(resp.Intervals) != 1 {
		t.Fatalf("Expected 1 bucket, got %d", len(resp.Intervals))
	}
	if resp.Intervals[0].AssetPrice != 1.0 {
		t.Errorf("Out-of-window sample leaked into response")
	}
}

func TestDepthHistory_NoResults(t *testing.T) {
	engine, stores := newTestEngine(100_000)
	ctx := context.Background()

	_, _ = stores.depth.InsertMany(ctx, []*domain.DepthSample{depthAt("BTC.BTC", 0, 3600, 1.0)})

	// Far-future window
	_, err := engine.DepthHistory(ctx, "BTC.BTC", Params{From: i64(9_000_000)})
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("Expected ErrNoResults, got %v", err)
	}

	// Wrong pool
	_, err = engine.DepthHistory(ctx, "ETH.ETH", Params{From: i64(0)})
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("Expected ErrNoResults for unknown pool, got %v", err)
	}

	// Page past the end
	_, err = engine.DepthHistory(ctx, "BTC.BTC", Params{From: i64(0), Page: i64(99)})
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("Expected ErrNoResults for page past end, got %v", err)
	}
}

func TestDepthHistory_PaginationAndOrder(t *testing.T) {
	engine, stores := newTestEngine(1_000_000)
	ctx := context.Background()

	var samples []*domain.DepthSample
	for i := int64(0); i < 5; i++ {
		samples = append(samples, depthAt("BTC.BTC", i*3600, (i+1)*3600, float64(i)))
	}
	_, _ = stores.depth.InsertMany(ctx, samples)

	// Page 2 of limit 2, ascending
	resp, err := engine.DepthHistory(ctx, "BTC.BTC", Params{From: i64(0), Limit: i64(2), Page: i64(2)})
	if err != nil {
		t.Fatalf("DepthHistory failed: %v", err)
	}
	if resp.Pagination.TotalRecords != 5 || resp.Pagination.TotalPages != 3 {
		t.Errorf("Unexpected pagination: %+v", resp.Pagination)
	}
	if resp.Pagination.CurrentPage != 2 || resp.Pagination.Limit != 2 {
		t.Errorf("Unexpected page/limit: %+v", resp.Pagination)
	}
	if len(resp.Intervals) != 2 {
		t.Fatalf("Expected 2 buckets, got %d", len(resp.Intervals))
	}
	if resp.Intervals[0].StartTime != 2*3600 {
		t.Errorf("Expected page 2 to start at bucket 2, got %d", resp.Intervals[0].StartTime)
	}

	// Descending order reverses the page contents
	resp, err = engine.DepthHistory(ctx, "BTC.BTC", Params{From: i64(0), Limit: i64(2), Order: str("desc")})
	if err != nil {
		t.Fatalf("DepthHistory failed: %v", err)
	}
	if resp.Intervals[0].StartTime != 4*3600 || resp.Intervals[1].StartTime != 3*3600 {
		t.Errorf("Descending sort wrong: %d, %d", resp.Intervals[0].StartTime, resp.Intervals[1].StartTime)
	}
	if resp.Pagination.Order != "desc" {
		t.Errorf("Pagination should echo order, got %s", resp.Pagination.Order)
	}
}

func TestDepthHistory_DayBuckets(t *testing.T) {
	engine, stores := newTestEngine(1_000_000)
	ctx := context.Background()

	// Two hourly samples on the same day collapse into one day bucket.
	_, _ = stores.depth.InsertMany(ctx, []*domain.DepthSample{
		depthAt("BTC.BTC", 0, 3600, 1.0),
		depthAt("BTC.BTC", 82800, 86400, 2.0),
	})

	resp, err := engine.DepthHistory(ctx, "BTC.BTC", Params{From: i64(0), Interval: str("day"), Count: i64(10)})
	if err != nil {
		t.Fatalf("DepthHistory failed: %v", err)
	}
	if len(resp.Intervals) != 1 {
		t.Fatalf("Expected 1 day bucket, got %d", len(resp.Intervals))
	}
	b := resp.Intervals[0]
	if b.StartTime != 0 || b.EndTime != 86400 {
		t.Errorf("Unexpected bucket [%d, %d)", b.StartTime, b.EndTime)
	}
	if b.AssetPrice != 2.0 {
		t.Errorf("Expected last sample of the day to win, got %v", b.AssetPrice)
	}
}

func TestSwapsHistory_MetaMirrorsFirstBucket(t *testing.T) {
	engine, stores := newTestEngine(1_000_000)
	ctx := context.Background()

	_, _ = stores.swaps.InsertMany(ctx, []*domain.SwapSample{
		{StartTime: 0, EndTime: 3600, TotalCount: 12, TotalVolume: 100, RunePriceUSD: 4.5},
		{StartTime: 3600, EndTime: 7200, TotalCount: 7, TotalVolume: 50, RunePriceUSD: 4.6},
	})

	resp, err := engine.SwapsHistory(ctx, Params{From: i64(0)})
	if err != nil {
		t.Fatalf("SwapsHistory failed: %v", err)
	}
	if len(resp.Intervals) != 2 {
		t.Fatalf("Expected 2 buckets, got %d", len(resp.Intervals))
	}
	if resp.Meta.TotalCount != 12 {
		t.Errorf("Expected meta.totalCount 12, got %d", resp.Meta.TotalCount)
	}
	if resp.Meta.TotalVolume != 100 || resp.Meta.RunePriceUSD != 4.5 {
		t.Errorf("Meta should mirror first bucket: %+v", resp.Meta)
	}
}

func TestEarningsHistory_MetaSumsAndAverages(t *testing.T) {
	engine, stores := newTestEngine(1_000_000)
	ctx := context.Background()

	_, _ = stores.earnings.InsertMany(ctx, []*domain.EarningsSample{
		{
			StartTime: 0, EndTime: 3600,
			BlockRewards: 10, AvgNodeCount: 100, LiquidityFees: 5, RunePriceUSD: 4,
			Pools: []*domain.PoolEarnings{
				{Pool: "BTC.BTC", Rewards: 1, StartTime: 0, EndTime: 3600},
			},
		},
		{
			StartTime: 3600, EndTime: 7200,
			BlockRewards: 20, AvgNodeCount: 110, LiquidityFees: 7, RunePriceUSD: 6,
		},
	})

	resp, err := engine.EarningsHistory(ctx, Params{From: i64(0)})
	if err != nil {
		t.Fatalf("EarningsHistory failed: %v", err)
	}

	if resp.Meta.BlockRewards != 30 || resp.Meta.LiquidityFees != 12 {
		t.Errorf("Expected summed earnings, got %+v", resp.Meta)
	}
	if resp.Meta.AvgNodeCount != 105 {
		t.Errorf("Expected averaged avgNodeCount 105, got %v", resp.Meta.AvgNodeCount)
	}
	if resp.Meta.RunePriceUSD != 5 {
		t.Errorf("Expected averaged runePriceUSD 5, got %v", resp.Meta.RunePriceUSD)
	}
	if resp.Meta.StartTime != 0 || resp.Meta.EndTime != 7200 {
		t.Errorf("Unexpected meta window [%d, %d]", resp.Meta.StartTime, resp.Meta.EndTime)
	}

	// Pool breakdown rides along with its bucket
	if len(resp.Intervals[0].Pools) != 1 || resp.Intervals[0].Pools[0].Pool != "BTC.BTC" {
		t.Errorf("Expected pool breakdown on first bucket, got %+v", resp.Intervals[0].Pools)
	}
	if len(resp.Intervals[1].Pools) != 0 {
		t.Errorf("Second bucket should have no pools, got %+v", resp.Intervals[1].Pools)
	}
}

func TestEarningsHistory_SingleBucketSkipsAveraging(t *testing.T) {
	engine, stores := newTestEngine(1_000_000)
	ctx := context.Background()

	_, _ = stores.earnings.InsertMany(ctx, []*domain.EarningsSample{
		{StartTime: 0, EndTime: 3600, AvgNodeCount: 100, RunePriceUSD: 4},
	})

	resp, err := engine.EarningsHistory(ctx, Params{From: i64(0)})
	if err != nil {
		t.Fatalf("EarningsHistory failed: %v", err)
	}
	if resp.Meta.AvgNodeCount != 100 || resp.Meta.RunePriceUSD != 4 {
		t.Errorf("Single bucket must not be averaged: %+v", resp.Meta)
	}
}

func TestRunePoolHistory_MetaStrings(t *testing.T) {
	engine, stores := newTestEngine(1_000_000)
	ctx := context.Background()

	depth := 500.25
	_, _ = stores.runepool.InsertMany(ctx, []*domain.RunePoolSample{
		{StartTime: 0, EndTime: 3600, Count: 10, Units: 1000, Depth: &depth},
		{StartTime: 3600, EndTime: 7200, Count: 12, Units: 1250},
	})

	resp, err := engine.RunePoolHistory(ctx, Params{From: i64(0)})
	if err != nil {
		t.Fatalf("RunePoolHistory failed: %v", err)
	}

	if resp.Meta.StartCount != "10" || resp.Meta.EndCount != "12" {
		t.Errorf("Unexpected meta counts: %s / %s", resp.Meta.StartCount, resp.Meta.EndCount)
	}
	if resp.Meta.StartUnits != "1000" || resp.Meta.EndUnits != "1250" {
		t.Errorf("Unexpected meta units: %s / %s", resp.Meta.StartUnits, resp.Meta.EndUnits)
	}
	if resp.Intervals[0].Depth == nil || *resp.Intervals[0].Depth != 500.25 {
		t.Errorf("Expected depth 500.25, got %v", resp.Intervals[0].Depth)
	}
	if resp.Intervals[1].Depth != nil {
		t.Errorf("Expected nil depth on second bucket")
	}
}
