// Package memory provides in-memory store implementations. They preserve
// insertion order, which is the natural storage order the query engine's
// last-value-wins grouping relies on. Used by tests and --use-memory mode.
package memory

import "github.com/SaiAdithya3/midgaurdapi/internal/storage"

// matchWindow applies the time-window part of a filter.
func matchWindow(f storage.Filter, startTime, endTime int64) bool {
	if f.StartTimeGTE != nil && startTime < *f.StartTimeGTE {
		return false
	}
	if f.EndTimeLTE != nil && endTime > *f.EndTimeLTE {
		return false
	}
	return true
}
