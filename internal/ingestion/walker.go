package ingestion

import (
	"context"
	"log"
	"time"
)

// Default walker configuration.
const (
	DefaultPageDelay = 1 * time.Second
)

// Walker drives one family's backfill: it walks the upstream pages from a
// cursor forward to "now", storing each page as it goes. A walk is safe
// to re-run from any historical cursor; overlapping pages produce
// duplicate rows that the read path absorbs with last-value-wins.
type Walker struct {
	source    Source
	pageDelay time.Duration
	logger    *log.Logger
	now       func() time.Time
}

// WalkerOptions contains configuration for creating a Walker.
type WalkerOptions struct {
	Source    Source
	PageDelay time.Duration // courtesy delay between pages
	Logger    *log.Logger
	Now       func() time.Time // injectable clock for tests
}

// NewWalker creates a walker for one family source.
func NewWalker(opts WalkerOptions) *Walker {
	pageDelay := opts.PageDelay
	if pageDelay == 0 {
		pageDelay = DefaultPageDelay
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Walker{
		source:    opts.Source,
		pageDelay: pageDelay,
		logger:    logger,
		now:       now,
	}
}

// WalkResult contains statistics from one walk.
type WalkResult struct {
	Pages       int
	Stored      int
	Dropped     int
	FieldErrors int
	StoreErrors int
	Cursor      int64 // last cursor reached
	Duration    time.Duration
}

// Run walks from the given cursor until the upstream returns an empty
// page or the page end time reaches now. Pages are strictly sequential:
// each cursor comes from the previous page's reported end time. A fetch
// or decode failure stops this walk and is returned to the caller; it
// never takes down sibling families.
func (w *Walker) Run(ctx context.Context, from int64) (*WalkResult, error) {
	start := w.now()
	result := &WalkResult{Cursor: from}
	cursor := from

	for {
		stats, err := w.source.IngestPage(ctx, cursor)
		if err != nil {
			result.Duration = w.now().Sub(start)
			return result, err
		}

		if stats.Empty {
			break
		}

		result.Pages++
		result.Stored += stats.Stored
		result.Dropped += stats.Dropped
		result.FieldErrors += stats.FieldErrors
		result.StoreErrors += stats.StoreErrors

		if stats.Dropped > 0 || stats.FieldErrors > 0 || stats.StoreErrors > 0 {
			w.logger.Printf("[%s] page at %d: %d stored, %d dropped, %d field errors, %d store errors",
				w.source.Family(), cursor, stats.Stored, stats.Dropped, stats.FieldErrors, stats.StoreErrors)
		}

		result.Cursor = stats.EndTime
		if stats.EndTime >= w.now().Unix() {
			break
		}
		cursor = stats.EndTime

		select {
		case <-ctx.Done():
			result.Duration = w.now().Sub(start)
			return result, ctx.Err()
		case <-time.After(w.pageDelay):
		}
	}

	result.Duration = w.now().Sub(start)
	w.logger.Printf("[%s] walk complete: %d pages, %d stored, %d dropped, %d field errors, %d store errors in %v",
		w.source.Family(), result.Pages, result.Stored, result.Dropped,
		result.FieldErrors, result.StoreErrors, result.Duration)

	return result, nil
}
