package clickhouse

import (
	"context"
	"fmt"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

// RunePoolStore implements storage.RunePoolStore using ClickHouse.
type RunePoolStore struct {
	conn *Conn
}

// NewRunePoolStore creates a new RunePoolStore.
func NewRunePoolStore(conn *Conn) *RunePoolStore {
	return &RunePoolStore{conn: conn}
}

// Compile-time interface check.
var _ storage.RunePoolStore = (*RunePoolStore)(nil)

// InsertMany appends samples to runepool_history. Invalid samples are
// skipped and reported; the rest of the batch still goes through.
func (s *RunePoolStore) InsertMany(ctx context.Context, samples []*domain.RunePoolSample) (*storage.BatchResult, error) {
	result := &storage.BatchResult{}
	if len(samples) == 0 {
		return result, nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO runepool_history (
			start_time, end_time, depth, count, units
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare batch: %w", err)
	}

	for i, r := range samples {
		if r == nil || r.StartTime >= r.EndTime {
			result.Errors = append(result.Errors, storage.RecordError{Index: i, Err: storage.ErrInvalidInput})
			continue
		}
		err = batch.Append(r.StartTime, r.EndTime, r.Depth, r.Count, r.Units)
		if err != nil {
			return nil, fmt.Errorf("append to batch: %w", err)
		}
		result.Inserted++
	}

	if err := batch.Send(); err != nil {
		return nil, fmt.Errorf("send batch: %w", err)
	}

	return result, nil
}

// Scan retrieves matching samples in natural storage order.
func (s *RunePoolStore) Scan(ctx context.Context, f storage.Filter) ([]*domain.RunePoolSample, error) {
	where, args := windowClause(f)
	query := `
		SELECT start_time, end_time, depth, count, units
		FROM runepool_history
	` + where + `
		ORDER BY end_time ASC, ingested_at ASC
	`

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runepool history: %w", err)
	}
	defer rows.Close()

	var samples []*domain.RunePoolSample
	for rows.Next() {
		var r domain.RunePoolSample
		err := rows.Scan(&r.StartTime, &r.EndTime, &r.Depth, &r.Count, &r.Units)
		if err != nil {
			return nil, fmt.Errorf("scan runepool history row: %w", err)
		}
		samples = append(samples, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runepool history rows: %w", err)
	}

	return samples, nil
}

// Count returns the number of matching samples.
func (s *RunePoolStore) Count(ctx context.Context, f storage.Filter) (int64, error) {
	return countRows(ctx, s.conn, "runepool_history", f)
}
