package memory

import (
	"context"
	"sync"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

// RunePoolStore is an in-memory implementation of storage.RunePoolStore.
type RunePoolStore struct {
	mu      sync.RWMutex
	samples []*domain.RunePoolSample
}

// NewRunePoolStore creates a new in-memory rune-pool store.
func NewRunePoolStore() *RunePoolStore {
	return &RunePoolStore{}
}

// Compile-time interface check.
var _ storage.RunePoolStore = (*RunePoolStore)(nil)

// InsertMany attempts each sample independently and collects failures.
func (s *RunePoolStore) InsertMany(_ context.Context, samples []*domain.RunePoolSample) (*storage.BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &storage.BatchResult{}
	for i, sample := range samples {
		if sample == nil || sample.StartTime >= sample.EndTime {
			result.Errors = append(result.Errors, storage.RecordError{Index: i, Err: storage.ErrInvalidInput})
			continue
		}
		cp := *sample
		if sample.Depth != nil {
			depth := *sample.Depth
			cp.Depth = &depth
		}
		s.samples = append(s.samples, &cp)
		result.Inserted++
	}
	return result, nil
}

// Scan retrieves matching samples in insertion order.
func (s *RunePoolStore) Scan(_ context.Context, f storage.Filter) ([]*domain.RunePoolSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.RunePoolSample
	for _, sample := range s.samples {
		if !matchWindow(f, sample.StartTime, sample.EndTime) {
			continue
		}
		cp := *sample
		if sample.Depth != nil {
			depth := *sample.Depth
			cp.Depth = &depth
		}
		result = append(result, &cp)
	}
	return result, nil
}

// Count returns the number of matching samples.
func (s *RunePoolStore) Count(ctx context.Context, f storage.Filter) (int64, error) {
	samples, err := s.Scan(ctx, f)
	if err != nil {
		return 0, err
	}
	return int64(len(samples)), nil
}
