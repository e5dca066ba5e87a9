package domain

// RunePoolSample is one raw rune-pool membership interval.
// Corresponds to the runepool_history table. Depth is nullable upstream.
type RunePoolSample struct {
	StartTime int64 // unix seconds
	EndTime   int64 // unix seconds
	Depth     *float64
	Count     float64
	Units     float64
}
