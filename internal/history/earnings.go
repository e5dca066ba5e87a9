package history

import (
	"context"
	"fmt"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
)

// PoolEarningsEntry is one per-pool breakdown row inside an earnings bucket.
type PoolEarningsEntry struct {
	Pool                   string  `json:"pool"`
	AssetLiquidityFees     float64 `json:"assetLiquidityFees"`
	RuneLiquidityFees      float64 `json:"runeLiquidityFees"`
	TotalLiquidityFeesRune float64 `json:"totalLiquidityFeesRune"`
	SaverEarning           float64 `json:"saverEarning"`
	Rewards                float64 `json:"rewards"`
}

// EarningsBucket is one grouped earnings interval with its pool breakdown.
type EarningsBucket struct {
	StartTime         int64               `json:"startTime"`
	EndTime           int64               `json:"endTime"`
	BlockRewards      float64             `json:"blockRewards"`
	AvgNodeCount      float64             `json:"avgNodeCount"`
	BondingEarnings   float64             `json:"bondingEarnings"`
	LiquidityEarnings float64             `json:"liquidityEarnings"`
	LiquidityFees     float64             `json:"liquidityFees"`
	RunePriceUSD      float64             `json:"runePriceUSD"`
	Pools             []PoolEarningsEntry `json:"pools"`
}

// EarningsMeta aggregates the returned page: earnings fields are summed,
// avgNodeCount and runePriceUSD are averaged when more than one bucket
// was returned.
type EarningsMeta struct {
	StartTime         int64   `json:"startTime"`
	EndTime           int64   `json:"endTime"`
	BlockRewards      float64 `json:"blockRewards"`
	AvgNodeCount      float64 `json:"avgNodeCount"`
	BondingEarnings   float64 `json:"bondingEarnings"`
	LiquidityEarnings float64 `json:"liquidityEarnings"`
	LiquidityFees     float64 `json:"liquidityFees"`
	RunePriceUSD      float64 `json:"runePriceUSD"`
}

type EarningsResponse struct {
	Intervals  []EarningsBucket `json:"intervals"`
	Meta       EarningsMeta     `json:"meta"`
	Pagination Pagination       `json:"pagination"`
}

// EarningsHistory serves network earnings history. Each bucket carries the
// per-pool breakdown rows joined through the winning sample's ID.
func (e *Engine) EarningsHistory(ctx context.Context, p Params) (*EarningsResponse, error) {
	pl, err := p.resolve(e.now())
	if err != nil {
		return nil, err
	}

	samples, err := e.earnings.Scan(ctx, e.windowFilter("", pl))
	if err != nil {
		return nil, fmt.Errorf("scan earnings history: %w", err)
	}

	buckets := groupLast(samples, func(s *domain.EarningsSample) int64 { return s.EndTime }, pl.seconds)
	page, total := paginate(buckets, pl)
	if len(page) == 0 {
		return nil, ErrNoResults
	}

	var meta EarningsMeta
	intervals := make([]EarningsBucket, len(page))
	for i, b := range page {
		s := b.sample

		pools, err := e.earnings.PoolsByEarningsID(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("load pools for earnings %s: %w", s.ID, err)
		}
		entries := make([]PoolEarningsEntry, len(pools))
		for j, pe := range pools {
			entries[j] = PoolEarningsEntry{
				Pool:                   pe.Pool,
				AssetLiquidityFees:     pe.AssetLiquidityFees,
				RuneLiquidityFees:      pe.RuneLiquidityFees,
				TotalLiquidityFeesRune: pe.TotalLiquidityFeesRune,
				SaverEarning:           pe.SaverEarning,
				Rewards:                pe.Rewards,
			}
		}

		intervals[i] = EarningsBucket{
			StartTime:         b.start,
			EndTime:           b.end,
			BlockRewards:      s.BlockRewards,
			AvgNodeCount:      s.AvgNodeCount,
			BondingEarnings:   s.BondingEarnings,
			LiquidityEarnings: s.LiquidityEarnings,
			LiquidityFees:     s.LiquidityFees,
			RunePriceUSD:      s.RunePriceUSD,
			Pools:             entries,
		}

		meta.BlockRewards += s.BlockRewards
		meta.AvgNodeCount += s.AvgNodeCount
		meta.BondingEarnings += s.BondingEarnings
		meta.LiquidityEarnings += s.LiquidityEarnings
		meta.LiquidityFees += s.LiquidityFees
		meta.RunePriceUSD += s.RunePriceUSD
	}

	if n := len(page); n > 1 {
		meta.AvgNodeCount /= float64(n)
		meta.RunePriceUSD /= float64(n)
	}
	meta.StartTime = page[0].start
	meta.EndTime = page[len(page)-1].end

	return &EarningsResponse{
		Intervals:  intervals,
		Meta:       meta,
		Pagination: newPagination(pl, total),
	}, nil
}
