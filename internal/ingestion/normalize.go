package ingestion

import (
	"strconv"
	"strings"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
	"github.com/SaiAdithya3/midgaurdapi/internal/midgard"
)

// fieldParser converts upstream decimal strings to float64. A malformed
// value is coerced to 0.0 and counted rather than failing the record;
// one bad field must never sink a whole batch.
type fieldParser struct {
	errs int
}

func (p *fieldParser) float(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0.0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.errs++
		return 0.0
	}
	return v
}

// parseKey parses a required identifying timestamp. Unlike numeric
// payload fields there is no usable fallback: a record without a valid
// start/end time is dropped.
func parseKey(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// normalizeDepth converts raw depth intervals for one pool into domain
// samples. Returns the samples, the number of dropped records (bad
// start/end time) and the number of coerced numeric fields.
func normalizeDepth(pool string, intervals []midgard.DepthInterval) ([]*domain.DepthSample, int, int) {
	p := &fieldParser{}
	samples := make([]*domain.DepthSample, 0, len(intervals))
	dropped := 0

	for _, in := range intervals {
		start, err := parseKey(in.StartTime)
		if err != nil {
			dropped++
			continue
		}
		end, err := parseKey(in.EndTime)
		if err != nil {
			dropped++
			continue
		}

		samples = append(samples, &domain.DepthSample{
			Pool:           pool,
			StartTime:      start,
			EndTime:        end,
			AssetDepth:     p.float(in.AssetDepth),
			RuneDepth:      p.float(in.RuneDepth),
			AssetPrice:     p.float(in.AssetPrice),
			AssetPriceUSD:  p.float(in.AssetPriceUSD),
			LiquidityUnits: p.float(in.LiquidityUnits),
			MembersCount:   p.float(in.MembersCount),
			SynthUnits:     p.float(in.SynthUnits),
			SynthSupply:    p.float(in.SynthSupply),
			Units:          p.float(in.Units),
			Luvi:           p.float(in.Luvi),
		})
	}

	return samples, dropped, p.errs
}

// normalizeSwaps converts raw swaps intervals into domain samples.
func normalizeSwaps(intervals []midgard.SwapsInterval) ([]*domain.SwapSample, int, int) {
	p := &fieldParser{}
	samples := make([]*domain.SwapSample, 0, len(intervals))
	dropped := 0

	for _, in := range intervals {
		start, err := parseKey(in.StartTime)
		if err != nil {
			dropped++
			continue
		}
		end, err := parseKey(in.EndTime)
		if err != nil {
			dropped++
			continue
		}

		samples = append(samples, &domain.SwapSample{
			StartTime: start,
			EndTime:   end,

			ToAssetCount:     p.float(in.ToAssetCount),
			ToRuneCount:      p.float(in.ToRuneCount),
			ToTradeCount:     p.float(in.ToTradeCount),
			FromTradeCount:   p.float(in.FromTradeCount),
			SynthMintCount:   p.float(in.SynthMintCount),
			SynthRedeemCount: p.float(in.SynthRedeemCount),
			TotalCount:       p.float(in.TotalCount),

			ToAssetVolume:     p.float(in.ToAssetVolume),
			ToRuneVolume:      p.float(in.ToRuneVolume),
			ToTradeVolume:     p.float(in.ToTradeVolume),
			FromTradeVolume:   p.float(in.FromTradeVolume),
			SynthMintVolume:   p.float(in.SynthMintVolume),
			SynthRedeemVolume: p.float(in.SynthRedeemVolume),
			TotalVolume:       p.float(in.TotalVolume),

			ToAssetVolumeUSD:     p.float(in.ToAssetVolumeUSD),
			ToRuneVolumeUSD:      p.float(in.ToRuneVolumeUSD),
			ToTradeVolumeUSD:     p.float(in.ToTradeVolumeUSD),
			FromTradeVolumeUSD:   p.float(in.FromTradeVolumeUSD),
			SynthMintVolumeUSD:   p.float(in.SynthMintVolumeUSD),
			SynthRedeemVolumeUSD: p.float(in.SynthRedeemVolumeUSD),
			TotalVolumeUSD:       p.float(in.TotalVolumeUSD),

			ToAssetFees:     p.float(in.ToAssetFees),
			ToRuneFees:      p.float(in.ToRuneFees),
			ToTradeFees:     p.float(in.ToTradeFees),
			FromTradeFees:   p.float(in.FromTradeFees),
			SynthMintFees:   p.float(in.SynthMintFees),
			SynthRedeemFees: p.float(in.SynthRedeemFees),
			TotalFees:       p.float(in.TotalFees),

			ToAssetAverageSlip:     p.float(in.ToAssetAverageSlip),
			ToRuneAverageSlip:      p.float(in.ToRuneAverageSlip),
			ToTradeAverageSlip:     p.float(in.ToTradeAverageSlip),
			FromTradeAverageSlip:   p.float(in.FromTradeAverageSlip),
			SynthMintAverageSlip:   p.float(in.SynthMintAverageSlip),
			SynthRedeemAverageSlip: p.float(in.SynthRedeemAverageSlip),
			AverageSlip:            p.float(in.AverageSlip),

			RunePriceUSD: p.float(in.RunePriceUSD),
		})
	}

	return samples, dropped, p.errs
}

// normalizeEarnings converts raw earnings intervals, including their
// per-pool breakdown children, into domain samples.
func normalizeEarnings(intervals []midgard.EarningsInterval) ([]*domain.EarningsSample, int, int) {
	p := &fieldParser{}
	samples := make([]*domain.EarningsSample, 0, len(intervals))
	dropped := 0

	for _, in := range intervals {
		start, err := parseKey(in.StartTime)
		if err != nil {
			dropped++
			continue
		}
		end, err := parseKey(in.EndTime)
		if err != nil {
			dropped++
			continue
		}

		sample := &domain.EarningsSample{
			StartTime:         start,
			EndTime:           end,
			BlockRewards:      p.float(in.BlockRewards),
			AvgNodeCount:      p.float(in.AvgNodeCount),
			BondingEarnings:   p.float(in.BondingEarnings),
			LiquidityEarnings: p.float(in.LiquidityEarnings),
			LiquidityFees:     p.float(in.LiquidityFees),
			RunePriceUSD:      p.float(in.RunePriceUSD),
		}

		for _, pool := range in.Pools {
			sample.Pools = append(sample.Pools, &domain.PoolEarnings{
				Pool:                   pool.Pool,
				AssetLiquidityFees:     p.float(pool.AssetLiquidityFees),
				RuneLiquidityFees:      p.float(pool.RuneLiquidityFees),
				TotalLiquidityFeesRune: p.float(pool.TotalLiquidityFeesRune),
				SaverEarning:           p.float(pool.SaverEarning),
				Rewards:                p.float(pool.Rewards),
				StartTime:              start,
				EndTime:                end,
			})
		}

		samples = append(samples, sample)
	}

	return samples, dropped, p.errs
}

// normalizeRunePool converts raw rune-pool intervals into domain samples.
// A missing depth stays nil; a present but malformed depth is coerced like
// any other numeric field.
func normalizeRunePool(intervals []midgard.RunePoolInterval) ([]*domain.RunePoolSample, int, int) {
	p := &fieldParser{}
	samples := make([]*domain.RunePoolSample, 0, len(intervals))
	dropped := 0

	for _, in := range intervals {
		start, err := parseKey(in.StartTime)
		if err != nil {
			dropped++
			continue
		}
		end, err := parseKey(in.EndTime)
		if err != nil {
			dropped++
			continue
		}

		sample := &domain.RunePoolSample{
			StartTime: start,
			EndTime:   end,
			Count:     p.float(in.Count),
			Units:     p.float(in.Units),
		}
		if in.Depth != nil {
			depth := p.float(*in.Depth)
			sample.Depth = &depth
		}

		samples = append(samples, sample)
	}

	return samples, dropped, p.errs
}
