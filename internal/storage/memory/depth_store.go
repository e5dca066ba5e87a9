package memory

import (
	"context"
	"sync"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

// DepthStore is an in-memory implementation of storage.DepthStore.
type DepthStore struct {
	mu      sync.RWMutex
	samples []*domain.DepthSample
}

// NewDepthStore creates a new in-memory depth store.
func NewDepthStore() *DepthStore {
	return &DepthStore{}
}

// Compile-time interface check.
var _ storage.DepthStore = (*DepthStore)(nil)

// InsertMany attempts each sample independently and collects failures.
func (s *DepthStore) InsertMany(_ context.Context, samples []*domain.DepthSample) (*storage.BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &storage.BatchResult{}
	for i, sample := range samples {
		if sample == nil || sample.Pool == "" || sample.StartTime >= sample.EndTime {
			result.Errors = append(result.Errors, storage.RecordError{Index: i, Err: storage.ErrInvalidInput})
			continue
		}
		cp := *sample
		s.samples = append(s.samples, &cp)
		result.Inserted++
	}
	return result, nil
}

// Scan retrieves matching samples in insertion order.
func (s *DepthStore) Scan(_ context.Context, f storage.Filter) ([]*domain.DepthSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.DepthSample
	for _, sample := range s.samples {
		if f.Pool != "" && sample.Pool != f.Pool {
			continue
		}
		if !matchWindow(f, sample.StartTime, sample.EndTime) {
			continue
		}
		cp := *sample
		result = append(result, &cp)
	}
	return result, nil
}

// Count returns the number of matching samples.
func (s *DepthStore) Count(ctx context.Context, f storage.Filter) (int64, error) {
	samples, err := s.Scan(ctx, f)
	if err != nil {
		return 0, err
	}
	return int64(len(samples)), nil
}
