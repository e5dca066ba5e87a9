// Package ingestion mirrors the upstream history endpoints into local
// storage. One parameterized walker drives each family source page by
// page; the scheduler runs all four sources on an hourly cadence.
package ingestion

import (
	"context"
	"fmt"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
	"github.com/SaiAdithya3/midgaurdapi/internal/midgard"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

// IngestInterval is the upstream granularity mirrored into storage.
// Coarser read-side buckets are derived at query time, so only the
// finest mirrored granularity is fetched.
const IngestInterval = "hour"

// PageStats summarizes one ingested page.
type PageStats struct {
	Intervals   int   // raw intervals on the page
	Stored      int   // samples accepted by the store
	Dropped     int   // records dropped for unparsable start/end time
	FieldErrors int   // numeric fields coerced to 0.0
	StoreErrors int   // per-record insert failures
	EndTime     int64 // page's reported end time, the next cursor
	Empty       bool  // page carried no intervals
}

// Source fetches, normalizes and stores one page for a metric family.
type Source interface {
	Family() domain.Family
	IngestPage(ctx context.Context, from int64) (*PageStats, error)
}

// DepthSource ingests depth/price history for one pool.
type DepthSource struct {
	client *midgard.Client
	pool   string
	store  storage.DepthStore
}

// NewDepthSource creates a depth/price source for the given pool.
func NewDepthSource(client *midgard.Client, pool string, store storage.DepthStore) *DepthSource {
	return &DepthSource{client: client, pool: pool, store: store}
}

// Family returns the metric family this source feeds.
func (s *DepthSource) Family() domain.Family { return domain.FamilyDepth }

// IngestPage fetches one page starting at from and stores it.
func (s *DepthSource) IngestPage(ctx context.Context, from int64) (*PageStats, error) {
	page, err := s.client.DepthHistory(ctx, s.pool, IngestInterval, from)
	if err != nil {
		return nil, err
	}
	if len(page.Intervals) == 0 {
		return &PageStats{Empty: true}, nil
	}

	endTime, err := page.Meta.EndTimeUnix()
	if err != nil {
		return nil, &midgard.DecodeError{Err: err}
	}

	samples, dropped, fieldErrs := normalizeDepth(s.pool, page.Intervals)
	result, err := s.store.InsertMany(ctx, samples)
	if err != nil {
		return nil, fmt.Errorf("store depth page: %w", err)
	}

	return &PageStats{
		Intervals:   len(page.Intervals),
		Stored:      result.Inserted,
		Dropped:     dropped,
		FieldErrors: fieldErrs,
		StoreErrors: len(result.Errors),
		EndTime:     endTime,
	}, nil
}

// SwapsSource ingests network-wide swaps history.
type SwapsSource struct {
	client *midgard.Client
	store  storage.SwapsStore
}

// NewSwapsSource creates a swaps source.
func NewSwapsSource(client *midgard.Client, store storage.SwapsStore) *SwapsSource {
	return &SwapsSource{client: client, store: store}
}

// Family returns the metric family this source feeds.
func (s *SwapsSource) Family() domain.Family { return domain.FamilySwaps }

// IngestPage fetches one page starting at from and stores it.
func (s *SwapsSource) IngestPage(ctx context.Context, from int64) (*PageStats, error) {
	page, err := s.client.SwapsHistory(ctx, IngestInterval, from)
	if err != nil {
		return nil, err
	}
	if len(page.Intervals) == 0 {
		return &PageStats{Empty: true}, nil
	}

	endTime, err := page.Meta.EndTimeUnix()
	if err != nil {
		return nil, &midgard.DecodeError{Err: err}
	}

	samples, dropped, fieldErrs := normalizeSwaps(page.Intervals)
	result, err := s.store.InsertMany(ctx, samples)
	if err != nil {
		return nil, fmt.Errorf("store swaps page: %w", err)
	}

	return &PageStats{
		Intervals:   len(page.Intervals),
		Stored:      result.Inserted,
		Dropped:     dropped,
		FieldErrors: fieldErrs,
		StoreErrors: len(result.Errors),
		EndTime:     endTime,
	}, nil
}

// EarningsSource ingests network earnings history with per-pool breakdowns.
type EarningsSource struct {
	client *midgard.Client
	store  storage.EarningsStore
}

// NewEarningsSource creates an earnings source.
func NewEarningsSource(client *midgard.Client, store storage.EarningsStore) *EarningsSource {
	return &EarningsSource{client: client, store: store}
}

// Family returns the metric family this source feeds.
func (s *EarningsSource) Family() domain.Family { return domain.FamilyEarnings }

// IngestPage fetches one page starting at from and stores it.
func (s *EarningsSource) IngestPage(ctx context.Context, from int64) (*PageStats, error) {
	page, err := s.client.EarningsHistory(ctx, IngestInterval, from)
	if err != nil {
		return nil, err
	}
	if len(page.Intervals) == 0 {
		return &PageStats{Empty: true}, nil
	}

	endTime, err := page.Meta.EndTimeUnix()
	if err != nil {
		return nil, &midgard.DecodeError{Err: err}
	}

	samples, dropped, fieldErrs := normalizeEarnings(page.Intervals)
	result, err := s.store.InsertMany(ctx, samples)
	if err != nil {
		return nil, fmt.Errorf("store earnings page: %w", err)
	}

	return &PageStats{
		Intervals:   len(page.Intervals),
		Stored:      result.Inserted,
		Dropped:     dropped,
		FieldErrors: fieldErrs,
		StoreErrors: len(result.Errors),
		EndTime:     endTime,
	}, nil
}

// RunePoolSource ingests rune-pool membership history.
type RunePoolSource struct {
	client *midgard.Client
	store  storage.RunePoolStore
}

// NewRunePoolSource creates a rune-pool source.
func NewRunePoolSource(client *midgard.Client, store storage.RunePoolStore) *RunePoolSource {
	return &RunePoolSource{client: client, store: store}
}

// Family returns the metric family this source feeds.
func (s *RunePoolSource) Family() domain.Family { return domain.FamilyRunePool }

// IngestPage fetches one page starting at from and stores it.
func (s *RunePoolSource) IngestPage(ctx context.Context, from int64) (*PageStats, error) {
	page, err := s.client.RunePoolHistory(ctx, IngestInterval, from)
	if err != nil {
		return nil, err
	}
	if len(page.Intervals) == 0 {
		return &PageStats{Empty: true}, nil
	}

	endTime, err := page.Meta.EndTimeUnix()
	if err != nil {
		return nil, &midgard.DecodeError{Err: err}
	}

	samples, dropped, fieldErrs := normalizeRunePool(page.Intervals)
	result, err := s.store.InsertMany(ctx, samples)
	if err != nil {
		return nil, fmt.Errorf("store runepool page: %w", err)
	}

	return &PageStats{
		Intervals:   len(page.Intervals),
		Stored:      result.Inserted,
		Dropped:     dropped,
		FieldErrors: fieldErrs,
		StoreErrors: len(result.Errors),
		EndTime:     endTime,
	}, nil
}
