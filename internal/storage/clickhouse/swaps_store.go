package clickhouse

import (
	"context"
	"fmt"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

// SwapsStore implements storage.SwapsStore using ClickHouse.
type SwapsStore struct {
	conn *Conn
}

// NewSwapsStore creates a new SwapsStore.
func NewSwapsStore(conn *Conn) *SwapsStore {
	return &SwapsStore{conn: conn}
}

// Compile-time interface check.
var _ storage.SwapsStore = (*SwapsStore)(nil)

const swapsColumns = `
	start_time, end_time,
	to_asset_count, to_rune_count, to_trade_count, from_trade_count,
	synth_mint_count, synth_redeem_count, total_count,
	to_asset_volume, to_rune_volume, to_trade_volume, from_trade_volume,
	synth_mint_volume, synth_redeem_volume, total_volume,
	to_asset_volume_usd, to_rune_volume_usd, to_trade_volume_usd, from_trade_volume_usd,
	synth_mint_volume_usd, synth_redeem_volume_usd, total_volume_usd,
	to_asset_fees, to_rune_fees, to_trade_fees, from_trade_fees,
	synth_mint_fees, synth_redeem_fees, total_fees,
	to_asset_average_slip, to_rune_average_slip, to_trade_average_slip, from_trade_average_slip,
	synth_mint_average_slip, synth_redeem_average_slip, average_slip,
	rune_price_usd
`

// InsertMany appends samples to swaps_history. Invalid samples are skipped
// and reported; the rest of the batch still goes through.
func (s *SwapsStore) InsertMany(ctx context.Context, samples []*domain.SwapSample) (*storage.BatchResult, error) {
	result := &storage.BatchResult{}
	if len(samples) == 0 {
		return result, nil
	}

	batch, err := s.conn.PrepareBatch(ctx, "INSERT INTO swaps_history ("+swapsColumns+")")
	if err != nil {
		return nil, fmt.Errorf("prepare batch: %w", err)
	}

	for i, sw := range samples {
		if sw == nil || sw.StartTime >= sw.EndTime {
			result.Errors = append(result.Errors, storage.RecordError{Index: i, Err: storage.ErrInvalidInput})
			continue
		}
		err = batch.Append(
			sw.StartTime, sw.EndTime,
			sw.ToAssetCount, sw.ToRuneCount, sw.ToTradeCount, sw.FromTradeCount,
			sw.SynthMintCount, sw.SynthRedeemCount, sw.TotalCount,
			sw.ToAssetVolume, sw.ToRuneVolume, sw.ToTradeVolume, sw.FromTradeVolume,
			sw.SynthMintVolume, sw.SynthRedeemVolume, sw.TotalVolume,
			sw.ToAssetVolumeUSD, sw.ToRuneVolumeUSD, sw.ToTradeVolumeUSD, sw.FromTradeVolumeUSD,
			sw.SynthMintVolumeUSD, sw.SynthRedeemVolumeUSD, sw.TotalVolumeUSD,
			sw.ToAssetFees, sw.ToRuneFees, sw.ToTradeFees, sw.FromTradeFees,
			sw.SynthMintFees, sw.SynthRedeemFees, sw.TotalFees,
			sw.ToAssetAverageSlip, sw.ToRuneAverageSlip, sw.ToTradeAverageSlip, sw.FromTradeAverageSlip,
			sw.SynthMintAverageSlip, sw.SynthRedeemAverageSlip, sw.AverageSlip,
			sw.RunePriceUSD,
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

// Scan retrieves matching samples in natural storage order.
func (s *SwapsStore) Scan(ctx context.Context, f storage.Filter) ([]*domain.SwapSample, error) {
	where, args := windowClause(f)
	query := "SELECT " + swapsColumns + " FROM swaps_history" + where +
		" ORDER BY end_time ASC, ingested_at ASC"

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query swaps history: %w", err)
	}
	defer rows.Close()

	return scanSwapSamples(rows)
}

// Count returns the number of matching samples.
func (s *SwapsStore) Count(ctx context.Context, f storage.Filter) (int64, error) {
	return countRows(ctx, s.conn, "swaps_history", f)
}

func scanSwapSamples(rows chRows) ([]*domain.SwapSample, error) {
	var samples []*domain.SwapSample

	for rows.Next() {
		var sw domain.SwapSample
		err := rows.Scan(
			&sw.StartTime, &sw.EndTime,
			&sw.ToAssetCount, &sw.ToRuneCount, &sw.ToTradeCount, &sw.FromTradeCount,
			&sw.SynthMintCount, &sw.SynthRedeemCount, &sw.TotalCount,
			&sw.ToAssetVolume, &sw.ToRuneVolume, &sw.ToTradeVolume, &sw.FromTradeVolume,
			&sw.SynthMintVolume, &sw.SynthRedeemVolume, &sw.TotalVolume,
			&sw.ToAssetVolumeUSD, &sw.ToRuneVolumeUSD, &sw.ToTradeVolumeUSD, &sw.FromTradeVolumeUSD,
			&sw.SynthMintVolumeUSD, &sw.SynthRedeemVolumeUSD, &sw.TotalVolumeUSD,
			&sw.ToAssetFees, &sw.ToRuneFees, &sw.ToTradeFees, &sw.FromTradeFees,
			&sw.SynthMintFees, &sw.SynthRedeemFees, &sw.TotalFees,
			&sw.ToAssetAverageSlip, &sw.ToRuneAverageSlip, &sw.ToTradeAverageSlip, &sw.FromTradeAverageSlip,
			&sw.SynthMintAverageSlip, &sw.SynthRedeemAverageSlip, &sw.AverageSlip,
			&sw.RunePriceUSD,
		)
		if err != nil {
			return nil, fmt.Errorf("scan swaps history row: %w", err)
		}
		samples = append(samples, &sw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate swaps history rows: %w", err)
	}

	return samples, nil
}
