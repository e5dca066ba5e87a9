package domain

// SwapSample is one raw swaps interval with per-category counters,
// volumes, fees and slippage. Corresponds to the swaps_history table.
type SwapSample struct {
	StartTime int64 // unix seconds
	EndTime   int64 // unix seconds

	ToAssetCount     float64
	ToRuneCount      float64
	ToTradeCount     float64
	FromTradeCount   float64
	SynthMintCount   float64
	SynthRedeemCount float64
	TotalCount       float64

	ToAssetVolume     float64
	ToRuneVolume      float64
	ToTradeVolume     float64
	FromTradeVolume   float64
	SynthMintVolume   float64
	SynthRedeemVolume float64
	TotalVolume       float64

	ToAssetVolumeUSD     float64
	ToRuneVolumeUSD      float64
	ToTradeVolumeUSD     float64
	FromTradeVolumeUSD   float64
	SynthMintVolumeUSD   float64
	SynthRedeemVolumeUSD float64
	TotalVolumeUSD       float64

	ToAssetFees     float64
	ToRuneFees      float64
	ToTradeFees     float64
	FromTradeFees   float64
	SynthMintFees   float64
	SynthRedeemFees float64
	TotalFees       float64

	ToAssetAverageSlip     float64
	ToRuneAverageSlip      float64
	ToTradeAverageSlip     float64
	FromTradeAverageSlip   float64
	SynthMintAverageSlip   float64
	SynthRedeemAverageSlip float64
	AverageSlip            float64

	RunePriceUSD float64
}
