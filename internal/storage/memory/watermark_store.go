package memory

import (
	"context"
	"sync"

	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

// WatermarkStore is an in-memory implementation of storage.WatermarkStore.
// State does not survive a restart; production uses the Postgres store.
type WatermarkStore struct {
	mu  sync.RWMutex
	ts  int64
	set bool
}

// NewWatermarkStore creates a new in-memory watermark store.
func NewWatermarkStore() *WatermarkStore {
	return &WatermarkStore{}
}

// Compile-time interface check.
var _ storage.WatermarkStore = (*WatermarkStore)(nil)

// Get returns the recorded watermark, or ErrNotFound if none was set.
func (s *WatermarkStore) Get(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return 0, storage.ErrNotFound
	}
	return s.ts, nil
}

// Set records the watermark.
func (s *WatermarkStore) Set(_ context.Context, ts int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ts = ts
	s.set = true
	return nil
}
