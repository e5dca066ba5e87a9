package domain

// DepthSample is one raw depth/price interval for a pool.
// Corresponds to the depth_history table.
type DepthSample struct {
	Pool           string
	StartTime      int64 // unix seconds
	EndTime        int64 // unix seconds
	AssetDepth     float64
	RuneDepth      float64
	AssetPrice     float64
	AssetPriceUSD  float64
	LiquidityUnits float64
	MembersCount   float64
	SynthUnits     float64
	SynthSupply    float64
	Units          float64
	Luvi           float64
}
