package domain

// EarningsSample is one raw network earnings interval.
// Corresponds to the earnings_history table. ID is assigned by the store
// at insert time; Pools reference their parent through EarningsID.
type EarningsSample struct {
	ID                string
	StartTime         int64 // unix seconds
	EndTime           int64 // unix seconds
	BlockRewards      float64
	AvgNodeCount      float64
	BondingEarnings   float64
	LiquidityEarnings float64
	LiquidityFees     float64
	RunePriceUSD      float64

	// Pools holds the per-pool breakdown delivered with this interval.
	// Populated by ingestion before insert; not loaded by Scan.
	Pools []*PoolEarnings
}

// PoolEarnings is the per-pool breakdown attached to an earnings interval.
// Corresponds to the earnings_history_pools table.
type PoolEarnings struct {
	EarningsID             string
	Pool                   string
	AssetLiquidityFees     float64
	RuneLiquidityFees      float64
	TotalLiquidityFeesRune float64
	SaverEarning           float64
	Rewards                float64
	StartTime              int64
	EndTime                int64
}
