package history

import (
	"context"
	"fmt"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
)

// SwapsBucket is one grouped swaps interval as served to clients.
type SwapsBucket struct {
	StartTime int64 `json:"startTime"`
	EndTime   int64 `json:"endTime"`

	ToAssetCount     float64 `json:"toAssetCount"`
	ToRuneCount      float64 `json:"toRuneCount"`
	ToTradeCount     float64 `json:"toTradeCount"`
	FromTradeCount   float64 `json:"fromTradeCount"`
	SynthMintCount   float64 `json:"synthMintCount"`
	SynthRedeemCount float64 `json:"synthRedeemCount"`
	TotalCount       float64 `json:"totalCount"`

	ToAssetVolume     float64 `json:"toAssetVolume"`
	ToRuneVolume      float64 `json:"toRuneVolume"`
	ToTradeVolume     float64 `json:"toTradeVolume"`
	FromTradeVolume   float64 `json:"fromTradeVolume"`
	SynthMintVolume   float64 `json:"synthMintVolume"`
	SynthRedeemVolume float64 `json:"synthRedeemVolume"`
	TotalVolume       float64 `json:"totalVolume"`

	ToAssetVolumeUSD     float64 `json:"toAssetVolumeUSD"`
	ToRuneVolumeUSD      float64 `json:"toRuneVolumeUSD"`
	ToTradeVolumeUSD     float64 `json:"toTradeVolumeUSD"`
	FromTradeVolumeUSD   float64 `json:"fromTradeVolumeUSD"`
	SynthMintVolumeUSD   float64 `json:"synthMintVolumeUSD"`
	SynthRedeemVolumeUSD float64 `json:"synthRedeemVolumeUSD"`
	TotalVolumeUSD       float64 `json:"totalVolumeUSD"`

	ToAssetFees     float64 `json:"toAssetFees"`
	ToRuneFees      float64 `json:"toRuneFees"`
	ToTradeFees     float64 `json:"toTradeFees"`
	FromTradeFees   float64 `json:"fromTradeFees"`
	SynthMintFees   float64 `json:"synthMintFees"`
	SynthRedeemFees float64 `json:"synthRedeemFees"`
	TotalFees       float64 `json:"totalFees"`

	ToAssetAverageSlip     float64 `json:"toAssetAverageSlip"`
	ToRuneAverageSlip      float64 `json:"toRuneAverageSlip"`
	ToTradeAverageSlip     float64 `json:"toTradeAverageSlip"`
	FromTradeAverageSlip   float64 `json:"fromTradeAverageSlip"`
	SynthMintAverageSlip   float64 `json:"synthMintAverageSlip"`
	SynthRedeemAverageSlip float64 `json:"synthRedeemAverageSlip"`
	AverageSlip            float64 `json:"averageSlip"`

	RunePriceUSD float64 `json:"runePriceUSD"`
}

// SwapsMeta mirrors the first bucket of the page, with the count fields
// truncated to integers.
type SwapsMeta struct {
	ToAssetCount     int64 `json:"toAssetCount"`
	ToRuneCount      int64 `json:"toRuneCount"`
	ToTradeCount     int64 `json:"toTradeCount"`
	FromTradeCount   int64 `json:"fromTradeCount"`
	SynthMintCount   int64 `json:"synthMintCount"`
	SynthRedeemCount int64 `json:"synthRedeemCount"`
	TotalCount       int64 `json:"totalCount"`

	ToAssetVolume     float64 `json:"toAssetVolume"`
	ToRuneVolume      float64 `json:"toRuneVolume"`
	ToTradeVolume     float64 `json:"toTradeVolume"`
	FromTradeVolume   float64 `json:"fromTradeVolume"`
	SynthMintVolume   float64 `json:"synthMintVolume"`
	SynthRedeemVolume float64 `json:"synthRedeemVolume"`
	TotalVolume       float64 `json:"totalVolume"`

	ToAssetVolumeUSD     float64 `json:"toAssetVolumeUSD"`
	ToRuneVolumeUSD      float64 `json:"toRuneVolumeUSD"`
	ToTradeVolumeUSD     float64 `json:"toTradeVolumeUSD"`
	FromTradeVolumeUSD   float64 `json:"fromTradeVolumeUSD"`
	SynthMintVolumeUSD   float64 `json:"synthMintVolumeUSD"`
	SynthRedeemVolumeUSD float64 `json:"synthRedeemVolumeUSD"`
	TotalVolumeUSD       float64 `json:"totalVolumeUSD"`

	ToAssetFees     float64 `json:"toAssetFees"`
	ToRuneFees      float64 `json:"toRuneFees"`
	ToTradeFees     float64 `json:"toTradeFees"`
	FromTradeFees   float64 `json:"fromTradeFees"`
	SynthMintFees   float64 `json:"synthMintFees"`
	SynthRedeemFees float64 `json:"synthRedeemFees"`
	TotalFees       float64 `json:"totalFees"`

	ToAssetAverageSlip     float64 `json:"toAssetAverageSlip"`
	ToRuneAverageSlip      float64 `json:"toRuneAverageSlip"`
	ToTradeAverageSlip     float64 `json:"toTradeAverageSlip"`
	FromTradeAverageSlip   float64 `json:"fromTradeAverageSlip"`
	SynthMintAverageSlip   float64 `json:"synthMintAverageSlip"`
	SynthRedeemAverageSlip float64 `json:"synthRedeemAverageSlip"`
	AverageSlip            float64 `json:"averageSlip"`

	RunePriceUSD float64 `json:"runePriceUSD"`
}

type SwapsResponse struct {
	Intervals  []SwapsBucket `json:"intervals"`
	Meta       SwapsMeta     `json:"meta"`
	Pagination Pagination    `json:"pagination"`
}

// SwapsHistory serves network-wide swap activity history.
func (e *Engine) SwapsHistory(ctx context.Context, p Params) (*SwapsResponse, error) {
	pl, err := p.resolve(e.now())
	if err != nil {
		return nil, err
	}

	samples, err := e.swaps.Scan(ctx, e.windowFilter("", pl))
	if err != nil {
		return nil, fmt.Errorf("scan swaps history: %w", err)
	}

	buckets := groupLast(samples, func(s *domain.SwapSample) int64 { return s.EndTime }, pl.seconds)
	page, total := paginate(buckets, pl)
	if len(page) == 0 {
		return nil, ErrNoResults
	}

	intervals := make([]SwapsBucket, len(page))
	for i, b := range page {
		intervals[i] = swapsBucket(b)
	}

	return &SwapsResponse{
		Intervals:  intervals,
		Meta:       swapsMeta(page[0].sample),
		Pagination: newPagination(pl, total),
	}, nil
}

func swapsBucket(b bucket[*domain.SwapSample]) SwapsBucket {
	s := b.sample
	return SwapsBucket{
		StartTime: b.start,
		EndTime:   b.end,

		ToAssetCount:     s.ToAssetCount,
		ToRuneCount:      s.ToRuneCount,
		ToTradeCount:     s.ToTradeCount,
		FromTradeCount:   s.FromTradeCount,
		SynthMintCount:   s.SynthMintCount,
		SynthRedeemCount: s.SynthRedeemCount,
		TotalCount:       s.TotalCount,

		ToAssetVolume:     s.ToAssetVolume,
		ToRuneVolume:      s.ToRuneVolume,
		ToTradeVolume:     s.ToTradeVolume,
		FromTradeVolume:   s.FromTradeVolume,
		SynthMintVolume:   s.SynthMintVolume,
		SynthRedeemVolume: s.SynthRedeemVolume,
		TotalVolume:       s.TotalVolume,

		ToAssetVolumeUSD:     s.ToAssetVolumeUSD,
		ToRuneVolumeUSD:      s.ToRuneVolumeUSD,
		ToTradeVolumeUSD:     s.ToTradeVolumeUSD,
		FromTradeVolumeUSD:   s.FromTradeVolumeUSD,
		SynthMintVolumeUSD:   s.SynthMintVolumeUSD,
		SynthRedeemVolumeUSD: s.SynthRedeemVolumeUSD,
		TotalVolumeUSD:       s.TotalVolumeUSD,

		ToAssetFees:     s.ToAssetFees,
		ToRuneFees:      s.ToRuneFees,
		ToTradeFees:     s.ToTradeFees,
		FromTradeFees:   s.FromTradeFees,
		SynthMintFees:   s.SynthMintFees,
		SynthRedeemFees: s.SynthRedeemFees,
		TotalFees:       s.TotalFees,

		ToAssetAverageSlip:     s.ToAssetAverageSlip,
		ToRuneAverageSlip:      s.ToRuneAverageSlip,
		ToTradeAverageSlip:     s.ToTradeAverageSlip,
		FromTradeAverageSlip:   s.FromTradeAverageSlip,
		SynthMintAverageSlip:   s.SynthMintAverageSlip,
		SynthRedeemAverageSlip: s.SynthRedeemAverageSlip,
		AverageSlip:            s.AverageSlip,

		RunePriceUSD: s.RunePriceUSD,
	}
}

func swapsMeta(s *domain.SwapSample) SwapsMeta {
	return SwapsMeta{
		ToAssetCount:     int64(s.ToAssetCount),
		ToRuneCount:      int64(s.ToRuneCount),
		ToTradeCount:     int64(s.ToTradeCount),
		FromTradeCount:   int64(s.FromTradeCount),
		SynthMintCount:   int64(s.SynthMintCount),
		SynthRedeemCount: int64(s.SynthRedeemCount),
		TotalCount:       int64(s.TotalCount),

		ToAssetVolume:     s.ToAssetVolume,
		ToRuneVolume:      s.ToRuneVolume,
		ToTradeVolume:     s.ToTradeVolume,
		FromTradeVolume:   s.FromTradeVolume,
		SynthMintVolume:   s.SynthMintVolume,
		SynthRedeemVolume: s.SynthRedeemVolume,
		TotalVolume:       s.TotalVolume,

		ToAssetVolumeUSD:     s.ToAssetVolumeUSD,
		ToRuneVolumeUSD:      s.ToRuneVolumeUSD,
		ToTradeVolumeUSD:     s.ToTradeVolumeUSD,
		FromTradeVolumeUSD:   s.FromTradeVolumeUSD,
		SynthMintVolumeUSD:   s.SynthMintVolumeUSD,
		SynthRedeemVolumeUSD: s.SynthRedeemVolumeUSD,
		TotalVolumeUSD:       s.TotalVolumeUSD,

		ToAssetFees:     s.ToAssetFees,
		ToRuneFees:      s.ToRuneFees,
		ToTradeFees:     s.ToTradeFees,
		FromTradeFees:   s.FromTradeFees,
		SynthMintFees:   s.SynthMintFees,
		SynthRedeemFees: s.SynthRedeemFees,
		TotalFees:       s.TotalFees,

		ToAssetAverageSlip:     s.ToAssetAverageSlip,
		ToRuneAverageSlip:      s.ToRuneAverageSlip,
		ToTradeAverageSlip:     s.ToTradeAverageSlip,
		FromTradeAverageSlip:   s.FromTradeAverageSlip,
		SynthMintAverageSlip:   s.SynthMintAverageSlip,
		SynthRedeemAverageSlip: s.SynthRedeemAverageSlip,
		AverageSlip:            s.AverageSlip,

		RunePriceUSD: s.RunePriceUSD,
	}
}
