package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

// EarningsStore is an in-memory implementation of storage.EarningsStore.
type EarningsStore struct {
	mu      sync.RWMutex
	samples []*domain.EarningsSample
	pools   map[string][]*domain.PoolEarnings // keyed by parent EarningsID
}

// NewEarningsStore creates a new in-memory earnings store.
func NewEarningsStore() *EarningsStore {
	return &EarningsStore{
		pools: make(map[string][]*domain.PoolEarnings),
	}
}

// Compile-time interface check.
var _ storage.EarningsStore = (*EarningsStore)(nil)

// InsertMany assigns each parent a fresh ID, inserts it, then inserts its
// Pools children referencing that ID. A child failure is reported but
// does not roll back its parent.
func (s *EarningsStore) InsertMany(_ context.Context, samples []*domain.EarningsSample) (*storage.BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &storage.BatchResult{}
	for i, sample := range samples {
		if sample == nil || sample.StartTime >= sample.EndTime {
			result.Errors = append(result.Errors, storage.RecordError{Index: i, Err: storage.ErrInvalidInput})
			continue
		}

		cp := *sample
		cp.ID = uuid.NewString()
		cp.Pools = nil
		s.samples = append(s.samples, &cp)
		result.Inserted++

		for _, pool := range sample.Pools {
			if pool == nil || pool.Pool == "" {
				result.Errors = append(result.Errors, storage.RecordError{Index: i, Err: storage.ErrInvalidInput})
				continue
			}
			pcp := *pool
			pcp.EarningsID = cp.ID
			s.pools[cp.ID] = append(s.pools[cp.ID], &pcp)
		}
	}
	return result, nil
}

// Scan retrieves matching samples in insertion order. Pools are not
// loaded; use PoolsByEarningsID.
func (s *EarningsStore) Scan(_ context.Context, f storage.Filter) ([]*domain.EarningsSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.EarningsSample
	for _, sample := range s.samples {
		if !matchWindow(f, sample.StartTime, sample.EndTime) {
			continue
		}
		cp := *sample
		result = append(result, &cp)
	}
	return result, nil
}

// Count returns the number of matching samples.
func (s *EarningsStore) Count(ctx context.Context, f storage.Filter) (int64, error) {
	samples, err := s.Scan(ctx, f)
	if err != nil {
		return 0, err
	}
	return int64(len(samples)), nil
}

// PoolsByEarningsID retrieves the children attached to one parent.
func (s *EarningsStore) PoolsByEarningsID(_ context.Context, earningsID string) ([]*domain.PoolEarnings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	children := s.pools[earningsID]
	result := make([]*domain.PoolEarnings, 0, len(children))
	for _, pool := range children {
		cp := *pool
		result = append(result, &cp)
	}
	return result, nil
}
