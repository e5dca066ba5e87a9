package clickhouse

import (
	"context"
	"fmt"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

// DepthStore implements storage.DepthStore using ClickHouse.
type DepthStore struct {
	conn *Conn
}

// NewDepthStore creates a new DepthStore.
func NewDepthStore(conn *Conn) *DepthStore {
	return &DepthStore{conn: conn}
}

// Compile-time interface check.
var _ storage.DepthStore = (*DepthStore)(nil)

// InsertMany appends samples to depth_history. Invalid samples are skipped
// and reported; the rest of the batch still goes through.
func (s *DepthStore) InsertMany(ctx context.Context, samples []*domain.DepthSample) (*storage.BatchResult, error) {
	result := &storage.BatchResult{}
	if len(samples) == 0 {
		return result, nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO depth_history (
			pool, start_time, end_time,
			asset_depth, rune_depth, asset_price, asset_price_usd,
			liquidity_units, members_count, synth_units, synth_supply,
			units, luvi
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare batch: %w", err)
	}

	for i, d := range samples {
		if d == nil || d.StartTime >= d.EndTime {
			result.Errors = append(result.Errors, storage.RecordError{Index: i, Err: storage.ErrInvalidInput})
			continue
		}
		err = batch.Append(
			d.Pool, d.StartTime, d.EndTime,
			d.AssetDepth, d.RuneDepth, d.AssetPrice, d.AssetPriceUSD,
			d.LiquidityUnits, d.MembersCount, d.SynthUnits, d.SynthSupply,
			d.Units, d.Luvi,
		)
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

// Scan retrieves matching samples in natural storage order: end_time
// ascending, insertion order within a tie.
func (s *DepthStore) Scan(ctx context.Context, f storage.Filter) ([]*domain.DepthSample, error) {
	where, args := windowClause(f)
	query := `
		SELECT pool, start_time, end_time,
			asset_depth, rune_depth, asset_price, asset_price_usd,
			liquidity_units, members_count, synth_units, synth_supply,
			units, luvi
		FROM depth_history
	` + where + `
		ORDER BY end_time ASC, ingested_at ASC
	`

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query depth history: %w", err)
	}
	defer rows.Close()

	return scanDepthSamples(rows)
}

// Count returns the number of matching samples.
func (s *DepthStore) Count(ctx context.Context, f storage.Filter) (int64, error) {
	return countRows(ctx, s.conn, "depth_history", f)
}

func scanDepthSamples(rows chRows) ([]*domain.DepthSample, error) {
	var samples []*domain.DepthSample

	for rows.Next() {
		var d domain.DepthSample
		err := rows.Scan(
			&d.Pool, &d.StartTime, &d.EndTime,
			&d.AssetDepth, &d.RuneDepth, &d.AssetPrice, &d.AssetPriceUSD,
			&d.LiquidityUnits, &d.MembersCount, &d.SynthUnits, &d.SynthSupply,
			&d.Units, &d.Luvi,
		)
		if err != nil {
			return nil, fmt.Errorf("scan depth history row: %w", err)
		}
		samples = append(samples, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate depth history rows: %w", err)
	}

	return samples, nil
}
