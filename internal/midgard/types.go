package midgard

// Upstream delivers every numeric field as a decimal string. These types
// mirror the wire shape exactly; conversion to float64 happens during
// ingestion normalization and strings never reach the domain model.

// PageMeta is the meta block common to every history response. Only the
// reported end time matters to the walker; it is the next page's cursor.
type PageMeta struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DepthPage is one page of /history/depths/{pool}.
type DepthPage struct {
	Meta      PageMeta        `json:"meta"`
	Intervals []DepthInterval `json:"intervals"`
}

// DepthInterval is one raw depth/price interval.
type DepthInterval struct {
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	AssetDepth     string `json:"assetDepth"`
	RuneDepth      string `json:"runeDepth"`
	AssetPrice     string `json:"assetPrice"`
	AssetPriceUSD  string `json:"assetPriceUSD"`
	LiquidityUnits string `json:"liquidityUnits"`
	MembersCount   string `json:"membersCount"`
	SynthUnits     string `json:"synthUnits"`
	SynthSupply    string `json:"synthSupply"`
	Units          string `json:"units"`
	Luvi           string `json:"luvi"`
}

// SwapsPage is one page of /history/swaps.
type SwapsPage struct {
	Meta      PageMeta        `json:"meta"`
	Intervals []SwapsInterval `json:"intervals"`
}

// SwapsInterval is one raw swaps interval.
type SwapsInterval struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	ToAssetCount     string `json:"toAssetCount"`
	ToRuneCount      string `json:"toRuneCount"`
	ToTradeCount     string `json:"toTradeCount"`
	FromTradeCount   string `json:"fromTradeCount"`
	SynthMintCount   string `json:"synthMintCount"`
	SynthRedeemCount string `json:"synthRedeemCount"`
	TotalCount       string `json:"totalCount"`

	ToAssetVolume     string `json:"toAssetVolume"`
	ToRuneVolume      string `json:"toRuneVolume"`
	ToTradeVolume     string `json:"toTradeVolume"`
	FromTradeVolume   string `json:"fromTradeVolume"`
	SynthMintVolume   string `json:"synthMintVolume"`
	SynthRedeemVolume string `json:"synthRedeemVolume"`
	TotalVolume       string `json:"totalVolume"`

	ToAssetVolumeUSD     string `json:"toAssetVolumeUSD"`
	ToRuneVolumeUSD      string `json:"toRuneVolumeUSD"`
	ToTradeVolumeUSD     string `json:"toTradeVolumeUSD"`
	FromTradeVolumeUSD   string `json:"fromTradeVolumeUSD"`
	SynthMintVolumeUSD   string `json:"synthMintVolumeUSD"`
	SynthRedeemVolumeUSD string `json:"synthRedeemVolumeUSD"`
	TotalVolumeUSD       string `json:"totalVolumeUSD"`

	ToAssetFees     string `json:"toAssetFees"`
	ToRuneFees      string `json:"toRuneFees"`
	ToTradeFees     string `json:"toTradeFees"`
	FromTradeFees   string `json:"fromTradeFees"`
	SynthMintFees   string `json:"synthMintFees"`
	SynthRedeemFees string `json:"synthRedeemFees"`
	TotalFees       string `json:"totalFees"`

	ToAssetAverageSlip     string `json:"toAssetAverageSlip"`
	ToRuneAverageSlip      string `json:"toRuneAverageSlip"`
	ToTradeAverageSlip     string `json:"toTradeAverageSlip"`
	FromTradeAverageSlip   string `json:"fromTradeAverageSlip"`
	SynthMintAverageSlip   string `json:"synthMintAverageSlip"`
	SynthRedeemAverageSlip string `json:"synthRedeemAverageSlip"`
	AverageSlip            string `json:"averageSlip"`

	RunePriceUSD string `json:"runePriceUSD"`
}

// EarningsPage is one page of /history/earnings.
type EarningsPage struct {
	Meta      PageMeta           `json:"meta"`
	Intervals []EarningsInterval `json:"intervals"`
}

// EarningsInterval is one raw earnings interval with its per-pool breakdown.
type EarningsInterval struct {
	StartTime         string              `json:"startTime"`
	EndTime           string              `json:"endTime"`
	BlockRewards      string              `json:"blockRewards"`
	AvgNodeCount      string              `json:"avgNodeCount"`
	BondingEarnings   string              `json:"bondingEarnings"`
	LiquidityEarnings string              `json:"liquidityEarnings"`
	LiquidityFees     string              `json:"liquidityFees"`
	RunePriceUSD      string              `json:"runePriceUSD"`
	Pools             []PoolEarningsEntry `json:"pools"`
}

// PoolEarningsEntry is one per-pool breakdown row within an earnings interval.
type PoolEarningsEntry struct {
	Pool                   string `json:"pool"`
	AssetLiquidityFees     string `json:"assetLiquidityFees"`
	RuneLiquidityFees      string `json:"runeLiquidityFees"`
	TotalLiquidityFeesRune string `json:"totalLiquidityFeesRune"`
	SaverEarning           string `json:"saverEarning"`
	Rewards                string `json:"rewards"`
}

// RunePoolPage is one page of /history/runepool.
type RunePoolPage struct {
	Meta      PageMeta           `json:"meta"`
	Intervals []RunePoolInterval `json:"intervals"`
}

// RunePoolInterval is one raw rune-pool membership interval.
// Depth is absent in older upstream data.
type RunePoolInterval struct {
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Depth     *string `json:"depth"`
	Count     string  `json:"count"`
	Units     string  `json:"units"`
}
