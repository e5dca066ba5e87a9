package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SaiAdithya3/midgaurdapi/internal/midgard"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage/memory"
)

func TestDepthSource_IngestPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/history/depths/BTC.BTC" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"meta": {"startTime": "0", "endTime": "7200"},
			"intervals": [
				{"startTime": "0", "endTime": "3600", "assetDepth": "100", "runeDepth": "2000"},
				{"startTime": "3600", "endTime": "7200", "assetDepth": "101", "runeDepth": "bad-value"}
			]
		}`))
	}))
	defer server.Close()

	store := memory.NewDepthStore()
	client := midgard.NewClient(midgard.WithBaseURL(server.URL))
	source := NewDepthSource(client, "BTC.BTC", store)

	stats, err := source.IngestPage(context.Background(), 0)
	if err != nil {
		t.Fatalf("IngestPage failed: %v", err)
	}

	if stats.Empty {
		t.Fatal("Page should not be empty")
	}
	if stats.Intervals != 2 || stats.Stored != 2 {
		t.Errorf("Expected 2 intervals stored, got intervals=%d stored=%d", stats.Intervals, stats.Stored)
	}
	if stats.FieldErrors != 1 {
		t.Errorf("Expected 1 coerced field, got %d", stats.FieldErrors)
	}
	if stats.EndTime != 7200 {
		t.Errorf("Expected cursor 7200, got %d", stats.EndTime)
	}

	samples, err := store.Scan(context.Background(), storage.Filter{Pool: "BTC.BTC"})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("Expected 2 stored samples, got %d", len(samples))
	}
	if samples[1].RuneDepth != 0.0 {
		t.Errorf("Expected coerced rune depth, got %v", samples[1].RuneDepth)
	}
}

func TestEarningsSource_IngestPage_StoresChildren(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"meta": {"startTime": "0", "endTime": "3600"},
			"intervals": [
				{
					"startTime": "0", "endTime": "3600",
					"blockRewards": "10", "avgNodeCount": "100",
					"pools": [
						{"pool": "BTC.BTC", "assetLiquidityFees": "1", "rewards": "2"},
						{"pool": "ETH.ETH", "assetLiquidityFees": "3", "rewards": "4"}
					]
				}
			]
		}`))
	}))
	defer server.Close()

	store := memory.NewEarningsStore()
	client := midgard.NewClient(midgard.WithBaseURL(server.URL))
	source := NewEarningsSource(client, store)

	stats, err := source.IngestPage(context.Background(), 0)
	if err != nil {
		t.Fatalf("IngestPage failed: %v", err)
	}
	if stats.Stored != 1 {
		t.Errorf("Expected 1 stored parent, got %d", stats.Stored)
	}

	ctx := context.Background()
	parents, err := store.Scan(ctx, storage.Filter{})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(parents) != 1 {
		t.Fatalf("Expected 1 parent, got %d", len(parents))
	}

	pools, err := store.PoolsByEarningsID(ctx, parents[0].ID)
	if err != nil {
		t.Fatalf("PoolsByEarningsID failed: %v", err)
	}
	if len(pools) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(pools))
	}
	if pools[0].EarningsID != parents[0].ID {
		t.Errorf("Child does not reference its parent: %s vs %s", pools[0].EarningsID, parents[0].ID)
	}
}

func TestSwapsSource_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meta": {"startTime": "0", "endTime": "0"}, "intervals": []}`))
	}))
	defer server.Close()

	store := memory.NewSwapsStore()
	client := midgard.NewClient(midgard.WithBaseURL(server.URL))
	source := NewSwapsSource(client, store)

	stats, err := source.IngestPage(context.Background(), 0)
	if err != nil {
		t.Fatalf("IngestPage failed: %v", err)
	}
	if !stats.Empty {
		t.Error("Expected empty page")
	}
}
