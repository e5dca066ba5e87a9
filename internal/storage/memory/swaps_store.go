package memory

import (
	"context"
	"sync"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

// SwapsStore is an in-memory implementation of storage.SwapsStore.
type SwapsStore struct {
	mu      sync.RWMutex
	samples []*domain.SwapSample
}

// NewSwapsStore creates a new in-memory swaps store.
func NewSwapsStore() *SwapsStore {
	return &SwapsStore{}
}

// Compile-time interface check.
var _ storage.SwapsStore = (*SwapsStore)(nil)

// InsertMany attempts each sample independently and collects failures.
func (s *SwapsStore) InsertMany(_ context.Context, samples []*domain.SwapSample) (*storage.BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &storage.BatchResult{}
	for i, sample := range samples {
		if sample == nil || sample.StartTime >= sample.EndTime {
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
func (s *SwapsStore) Scan(_ context.Context, f storage.Filter) ([]*domain.SwapSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.SwapSample
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
func (s *SwapsStore) Count(ctx context.Context, f storage.Filter) (int64, error) {
	samples, err := s.Scan(ctx, f)
	if err != nil {
		return 0, err
	}
	return int64(len(samples)), nil
}
