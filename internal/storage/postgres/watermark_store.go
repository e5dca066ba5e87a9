package postgres

import (
	"context"

	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

// WatermarkStore is a PostgreSQL implementation of storage.WatermarkStore.
// The cursor lives in a single row of ingest_watermark.
type WatermarkStore struct {
	pool *Pool
}

// NewWatermarkStore creates a new PostgreSQL watermark store.
func NewWatermarkStore(pool *Pool) *WatermarkStore {
	return &WatermarkStore{pool: pool}
}

// Compile-time interface check.
var _ storage.WatermarkStore = (*WatermarkStore)(nil)

// Get returns the start time of the last completed tick, or ErrNotFound
// if no tick has been recorded yet.
func (s *WatermarkStore) Get(ctx context.Context) (int64, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT last_tick
		FROM ingest_watermark
		LIMIT 1
	`)

	var ts int64
	if err := row.Scan(&ts); err != nil {
		if isNotFoundError(err) {
			return 0, storage.ErrNotFound
		}
		return 0, err
	}

	return ts, nil
}

// Set saves the cursor. Uses upsert to handle initial insert and
// subsequent updates.
func (s *WatermarkStore) Set(ctx context.Context, ts int64) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO ingest_watermark (id, last_tick, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE
		SET last_tick = EXCLUDED.last_tick,
		    updated_at = NOW()
	`, ts)

	return err
}
