// Package storage defines the persistence contracts for the mirrored
// history families. Stores are append-only: ingestion inserts, the query
// engine scans and counts, nothing updates or deletes.
package storage

import (
	"context"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
)

// Filter narrows a Scan or Count to a time window and, for pool-scoped
// families, a single pool. Nil bounds are unconstrained.
type Filter struct {
	Pool         string // equality match; empty means any pool
	StartTimeGTE *int64 // inclusive lower bound on start_time
	EndTimeLTE   *int64 // inclusive upper bound on end_time
}

// RecordError reports a single failed record within an InsertMany batch.
type RecordError struct {
	Index int
	Err   error
}

// BatchResult summarizes an InsertMany call. One bad record never aborts
// the batch; failures are collected here for logging.
type BatchResult struct {
	Inserted int
	Errors   []RecordError
}

// DepthStore provides access to depth_history storage.
type DepthStore interface {
	// InsertMany attempts each sample independently and collects failures.
	InsertMany(ctx context.Context, samples []*domain.DepthSample) (*BatchResult, error)

	// Scan retrieves matching samples in natural storage order.
	Scan(ctx context.Context, f Filter) ([]*domain.DepthSample, error)

	// Count returns the number of matching samples.
	Count(ctx context.Context, f Filter) (int64, error)
}

// SwapsStore provides access to swaps_history storage.
type SwapsStore interface {
	InsertMany(ctx context.Context, samples []*domain.SwapSample) (*BatchResult, error)
	Scan(ctx context.Context, f Filter) ([]*domain.SwapSample, error)
	Count(ctx context.Context, f Filter) (int64, error)
}

// EarningsStore provides access to earnings_history storage plus the
// per-pool breakdown children.
type EarningsStore interface {
	// InsertMany assigns each parent a fresh ID, inserts it, then inserts
	// its Pools children referencing that ID. A child failure is reported
	// in the result but does not roll back its parent.
	InsertMany(ctx context.Context, samples []*domain.EarningsSample) (*BatchResult, error)

	Scan(ctx context.Context, f Filter) ([]*domain.EarningsSample, error)
	Count(ctx context.Context, f Filter) (int64, error)

	// PoolsByEarningsID retrieves the children attached to one parent.
	PoolsByEarningsID(ctx context.Context, earningsID string) ([]*domain.PoolEarnings, error)
}

// RunePoolStore provides access to runepool_history storage.
type RunePoolStore interface {
	InsertMany(ctx context.Context, samples []*domain.RunePoolSample) (*BatchResult, error)
	Scan(ctx context.Context, f Filter) ([]*domain.RunePoolSample, error)
	Count(ctx context.Context, f Filter) (int64, error)
}

// WatermarkStore persists the shared ingestion cursor: the start time of
// the last completed scheduler tick. Get returns ErrNotFound until the
// first tick has been recorded.
type WatermarkStore interface {
	Get(ctx context.Context) (int64, error)
	Set(ctx context.Context, ts int64) error
}
