package clickhouse

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

// EarningsStore implements storage.EarningsStore using ClickHouse. Parents
// live in earnings_history, per-pool children in earnings_history_pools
// keyed by the parent's id.
type EarningsStore struct {
	conn *Conn
}

// NewEarningsStore creates a new EarningsStore.
func NewEarningsStore(conn *Conn) *EarningsStore {
	return &EarningsStore{conn: conn}
}

// Compile-time interface check.
var _ storage.EarningsStore = (*EarningsStore)(nil)

// InsertMany assigns each parent a fresh ID, inserts it, then inserts its
// Pools children referencing that ID. A child failure is reported but does
// not roll back its parent.
func (s *EarningsStore) InsertMany(ctx context.Context, samples []*domain.EarningsSample) (*storage.BatchResult, error) {
	result := &storage.BatchResult{}
	if len(samples) == 0 {
		return result, nil
	}

	parents, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO earnings_history (
			id, start_time, end_time,
			block_rewards, avg_node_count, bonding_earnings,
			liquidity_earnings, liquidity_fees, rune_price_usd
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare parent batch: %w", err)
	}
	children, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO earnings_history_pools (
			earnings_id, pool,
			asset_liquidity_fees, rune_liquidity_fees, total_liquidity_fees_rune,
			saver_earning, rewards, start_time, end_time
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare child batch: %w", err)
	}

	for i, e := range samples {
		if e == nil || e.StartTime >= e.EndTime {
			result.Errors = append(result.Errors, storage.RecordError{Index: i, Err: storage.ErrInvalidInput})
			continue
		}

		id := uuid.NewString()
		err = parents.Append(
			id, e.StartTime, e.EndTime,
			e.BlockRewards, e.AvgNodeCount, e.BondingEarnings,
			e.LiquidityEarnings, e.LiquidityFees, e.RunePriceUSD,
		)
		if err != nil {
			return nil, fmt.Errorf("append parent to batch: %w", err)
		}
		result.Inserted++

		for _, p := range e.Pools {
			if p == nil || p.Pool == "" {
				result.Errors = append(result.Errors, storage.RecordError{Index: i, Err: storage.ErrInvalidInput})
				continue
			}
			err = children.Append(
				id, p.Pool,
				p.AssetLiquidityFees, p.RuneLiquidityFees, p.TotalLiquidityFeesRune,
				p.SaverEarning, p.Rewards, p.StartTime, p.EndTime,
			)
			if err != nil {
				return nil, fmt.Errorf("append child to batch: %w", err)
			}
		}
	}

	if err := parents.Send(); err != nil {
		return nil, fmt.Errorf("send parent batch: %w", err)
	}
	if err := children.Send(); err != nil {
		return nil, fmt.Errorf("send child batch: %w", err)
	}

	return result, nil
}

// Scan retrieves matching parents in natural storage order. Pools are not
// loaded; use PoolsByEarningsID.
func (s *EarningsStore) Scan(ctx context.Context, f storage.Filter) ([]*domain.EarningsSample, error) {
	where, args := windowClause(f)
	query := `
		SELECT id, start_time, end_time,
			block_rewards, avg_node_count, bonding_earnings,
			liquidity_earnings, liquidity_fees, rune_price_usd
		FROM earnings_history
	` + where + `
		ORDER BY end_time ASC, ingested_at ASC
	`

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query earnings history: %w", err)
	}
	defer rows.Close()

	var samples []*domain.EarningsSample
	for rows.Next() {
		var e domain.EarningsSample
		err := rows.Scan(
			&e.ID, &e.StartTime, &e.EndTime,
			&e.BlockRewards, &e.AvgNodeCount, &e.BondingEarnings,
			&e.LiquidityEarnings, &e.LiquidityFees, &e.RunePriceUSD,
		)
		if err != nil {
			return nil, fmt.Errorf("scan earnings history row: %w", err)
		}
		samples = append(samples, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate earnings history rows: %w", err)
	}

	return samples, nil
}

// Count returns the number of matching parents.
func (s *EarningsStore) Count(ctx context.Context, f storage.Filter) (int64, error) {
	return countRows(ctx, s.conn, "earnings_history", f)
}

// PoolsByEarningsID retrieves the children attached to one parent, in
// insertion order.
func (s *EarningsStore) PoolsByEarningsID(ctx context.Context, earningsID string) ([]*domain.PoolEarnings, error) {
	query := `
		SELECT earnings_id, pool,
			asset_liquidity_fees, rune_liquidity_fees, total_liquidity_fees_rune,
			saver_earning, rewards, start_time, end_time
		FROM earnings_history_pools
		WHERE earnings_id = ?
		ORDER BY ingested_at ASC
	`

	rows, err := s.conn.Query(ctx, query, earningsID)
	if err != nil {
		return nil, fmt.Errorf("query earnings pools: %w", err)
	}
	defer rows.Close()

	pools := make([]*domain.PoolEarnings, 0)
	for rows.Next() {
		var p domain.PoolEarnings
		err := rows.Scan(
			&p.EarningsID, &p.Pool,
			&p.AssetLiquidityFees, &p.RuneLiquidityFees, &p.TotalLiquidityFeesRune,
			&p.SaverEarning, &p.Rewards, &p.StartTime, &p.EndTime,
		)
		if err != nil {
			return nil, fmt.Errorf("scan earnings pool row: %w", err)
		}
		pools = append(pools, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate earnings pool rows: %w", err)
	}

	return pools, nil
}
