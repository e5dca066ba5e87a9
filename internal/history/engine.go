package history

import (
	"errors"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/SaiAdithya3/midgaurdapi/internal/interval"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

// ErrNoResults signals that the resolved window and page contain no buckets.
// Handlers map it to a 404 response.
var ErrNoResults = errors.New("history: no results for query")

// Engine answers history queries against the sample stores. It groups raw
// samples into fixed-width buckets in memory so the same logic runs against
// any storage backend.
type Engine struct {
	depth    storage.DepthStore
	swaps    storage.SwapsStore
	earnings storage.EarningsStore
	runepool storage.RunePoolStore
	logger   *log.Logger
	now      func() time.Time
}

// EngineOptions configures an Engine. All store fields are required for the
// corresponding query family; Now defaults to time.Now.
type EngineOptions struct {
	Depth    storage.DepthStore
	Swaps    storage.SwapsStore
	Earnings storage.EarningsStore
	RunePool storage.RunePoolStore
	Logger   *log.Logger
	Now      func() time.Time
}

func NewEngine(opts EngineOptions) *Engine {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		depth:    opts.Depth,
		swaps:    opts.Swaps,
		earnings: opts.Earnings,
		runepool: opts.RunePool,
		logger:   logger,
		now:      now,
	}
}

// Pagination describes the page of buckets a response carries.
type Pagination struct {
	CurrentPage  int64  `json:"currentPage"`
	TotalPages   int64  `json:"totalPages"`
	TotalRecords int64  `json:"totalRecords"`
	Limit        int64  `json:"limit"`
	SortBy       string `json:"sortBy"`
	Order        string `json:"order"`
}

func newPagination(pl *plan, total int64) Pagination {
	pages := (total + pl.limit - 1) / pl.limit
	return Pagination{
		CurrentPage:  pl.page,
		TotalPages:   pages,
		TotalRecords: total,
		Limit:        pl.limit,
		SortBy:       pl.sortBy,
		Order:        pl.order,
	}
}

// bucket pairs an interval boundary with the sample that won it.
type bucket[T any] struct {
	start, end int64
	sample     T
}

// groupLast assigns every sample to the bucket its end time falls in and
// keeps the last sample seen per bucket. Samples must arrive in natural
// store order for last-wins to mean latest-ingested.
func groupLast[T any](samples []T, endTime func(T) int64, seconds int64) []bucket[T] {
	byStart := make(map[int64]T)
	for _, s := range samples {
		byStart[interval.BucketStart(endTime(s), seconds)] = s
	}
	out := make([]bucket[T], 0, len(byStart))
	for start, s := range byStart {
		out = append(out, bucket[T]{start: start, end: start + seconds, sample: s})
	}
	return out
}

func sortBuckets[T any](buckets []bucket[T], sortBy, order string) {
	less := func(i, j int) bool { return buckets[i].start < buckets[j].start }
	if sortBy == "endTime" {
		less = func(i, j int) bool { return buckets[i].end < buckets[j].end }
	}
	if order == "desc" {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(buckets, less)
}

// paginate sorts buckets per the plan and slices out the requested page,
// returning the page and the total bucket count.
func paginate[T any](buckets []bucket[T], pl *plan) ([]bucket[T], int64) {
	sortBuckets(buckets, pl.sortBy, pl.order)
	total := int64(len(buckets))
	if pl.skip >= total {
		return nil, total
	}
	end := pl.skip + pl.limit
	if end > total {
		end = total
	}
	return buckets[pl.skip:end], total
}

func (e *Engine) windowFilter(pool string, pl *plan) storage.Filter {
	from := pl.from
	return storage.Filter{Pool: pool, StartTimeGTE: &from, EndTimeLTE: pl.to}
}

// fstr renders a float the way the upstream API does for string-typed meta
// values: shortest decimal form, no exponent for typical magnitudes.
func fstr(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
