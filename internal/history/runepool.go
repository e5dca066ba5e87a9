package history

import (
	"context"
	"fmt"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
)

// RunePoolBucket is one grouped rune-pool interval. Depth is null when the
// upstream interval carried no depth value.
type RunePoolBucket struct {
	StartTime int64    `json:"startTime"`
	EndTime   int64    `json:"endTime"`
	Count     float64  `json:"count"`
	Units     float64  `json:"units"`
	Depth     *float64 `json:"depth"`
}

// RunePoolMeta reports the first and last bucket of the page, with the
// count and unit values string-typed to match the upstream response shape.
type RunePoolMeta struct {
	StartTime  int64  `json:"startTime"`
	EndTime    int64  `json:"endTime"`
	StartCount string `json:"startCount"`
	EndCount   string `json:"endCount"`
	StartUnits string `json:"startUnits"`
	EndUnits   string `json:"endUnits"`
}

type RunePoolResponse struct {
	Intervals  []RunePoolBucket `json:"intervals"`
	Meta       RunePoolMeta     `json:"meta"`
	Pagination Pagination       `json:"pagination"`
}

// RunePoolHistory serves rune-pool membership and unit history.
func (e *Engine) RunePoolHistory(ctx context.Context, p Params) (*RunePoolResponse, error) {
	pl, err := p.resolve(e.now())
	if err != nil {
		return nil, err
	}

	samples, err := e.runepool.Scan(ctx, e.windowFilter("", pl))
	if err != nil {
		return nil, fmt.Errorf("scan runepool history: %w", err)
	}

	buckets := groupLast(samples, func(s *domain.RunePoolSample) int64 { return s.EndTime }, pl.seconds)
	page, total := paginate(buckets, pl)
	if len(page) == 0 {
		return nil, ErrNoResults
	}

	intervals := make([]RunePoolBucket, len(page))
	for i, b := range page {
		s := b.sample
		intervals[i] = RunePoolBucket{
			StartTime: b.start,
			EndTime:   b.end,
			Count:     s.Count,
			Units:     s.Units,
			Depth:     s.Depth,
		}
	}

	first := page[0].sample
	last := page[len(page)-1].sample
	meta := RunePoolMeta{
		StartTime:  page[0].start,
		EndTime:    page[len(page)-1].end,
		StartCount: fstr(first.Count),
		EndCount:   fstr(last.Count),
		StartUnits: fstr(first.Units),
		EndUnits:   fstr(last.Units),
	}

	return &RunePoolResponse{
		Intervals:  intervals,
		Meta:       meta,
		Pagination: newPagination(pl, total),
	}, nil
}
