package history

import (
	"context"
	"fmt"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
)

// DepthBucket is one grouped depth interval as served to clients.
type DepthBucket struct {
	StartTime      int64   `json:"startTime"`
	EndTime        int64   `json:"endTime"`
	AssetDepth     float64 `json:"assetDepth"`
	AssetPrice     float64 `json:"assetPrice"`
	AssetPriceUSD  float64 `json:"assetPriceUSD"`
	LiquidityUnits float64 `json:"liquidityUnits"`
	Luvi           float64 `json:"luvi"`
	MembersCount   float64 `json:"membersCount"`
	RuneDepth      float64 `json:"runeDepth"`
	SynthSupply    float64 `json:"synthSupply"`
	SynthUnits     float64 `json:"synthUnits"`
	Units          float64 `json:"units"`
}

// DepthMeta summarizes the first and last bucket of the returned page.
// Start/end values are string-typed to match the upstream response shape.
type DepthMeta struct {
	StartTime          int64   `json:"startTime"`
	EndTime            int64   `json:"endTime"`
	StartAssetDepth    string  `json:"startAssetDepth"`
	EndAssetDepth      string  `json:"endAssetDepth"`
	StartRuneDepth     string  `json:"startRuneDepth"`
	EndRuneDepth       string  `json:"endRuneDepth"`
	StartLPUnits       string  `json:"startLPUnits"`
	EndLPUnits         string  `json:"endLPUnits"`
	StartMemberCount   int64   `json:"startMemberCount"`
	EndMemberCount     int64   `json:"endMemberCount"`
	StartSynthUnits    string  `json:"startSynthUnits"`
	EndSynthUnits      string  `json:"endSynthUnits"`
	PriceShiftLoss     float64 `json:"priceShiftLoss"`
	LuviIncrease       float64 `json:"luviIncrease"`
}

type DepthResponse struct {
	Intervals  []DepthBucket `json:"intervals"`
	Meta       DepthMeta     `json:"meta"`
	Pagination Pagination    `json:"pagination"`
}

// DepthHistory serves the depth/price history of a single pool.
func (e *Engine) DepthHistory(ctx context.Context, pool string, p Params) (*DepthResponse, error) {
	pl, err := p.resolve(e.now())
	if err != nil {
		return nil, err
	}

	samples, err := e.depth.Scan(ctx, e.windowFilter(pool, pl))
	if err != nil {
		return nil, fmt.Errorf("scan depth history: %w", err)
	}

	buckets := groupLast(samples, func(s *domain.DepthSample) int64 { return s.EndTime }, pl.seconds)
	page, total := paginate(buckets, pl)
	if len(page) == 0 {
		return nil, ErrNoResults
	}

	intervals := make([]DepthBucket, len(page))
	for i, b := range page {
		s := b.sample
		intervals[i] = DepthBucket{
			StartTime:      b.start,
			EndTime:        b.end,
			AssetDepth:     s.AssetDepth,
			AssetPrice:     s.AssetPrice,
			AssetPriceUSD:  s.AssetPriceUSD,
			LiquidityUnits: s.LiquidityUnits,
			Luvi:           s.Luvi,
			MembersCount:   s.MembersCount,
			RuneDepth:      s.RuneDepth,
			SynthSupply:    s.SynthSupply,
			SynthUnits:     s.SynthUnits,
			Units:          s.Units,
		}
	}

	first := page[0].sample
	last := page[len(page)-1].sample
	meta := DepthMeta{
		StartTime:        page[0].start,
		EndTime:          page[len(page)-1].end,
		StartAssetDepth:  fstr(first.AssetDepth),
		EndAssetDepth:    fstr(last.AssetDepth),
		StartRuneDepth:   fstr(first.RuneDepth),
		EndRuneDepth:     fstr(last.RuneDepth),
		StartLPUnits:     fstr(first.Units),
		EndLPUnits:       fstr(last.Units),
		StartMemberCount: int64(first.MembersCount),
		EndMemberCount:   int64(last.MembersCount),
		StartSynthUnits:  fstr(first.SynthUnits),
		EndSynthUnits:    fstr(last.SynthUnits),
		PriceShiftLoss:   first.AssetPrice - last.AssetPrice,
		LuviIncrease:     last.Luvi - first.Luvi,
	}

	return &DepthResponse{
		Intervals:  intervals,
		Meta:       meta,
		Pagination: newPagination(pl, total),
	}, nil
}
