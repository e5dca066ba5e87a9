package history

import (
	"fmt"
	"time"

	"github.com/SaiAdithya3/midgaurdapi/internal/interval"
)

const (
	// DefaultLimit is the page size used when the caller does not ask for one.
	DefaultLimit = 50
	// MaxLimit caps the page size regardless of what the caller asked for.
	MaxLimit = 400
	// DefaultCount is the implicit window width, in buckets, applied when the
	// caller supplies neither count nor an explicit from.
	DefaultCount = 400
)

// Params carries the raw query parameters of a history request. Pointer
// fields distinguish "absent" from "zero".
type Params struct {
	Interval *string
	Count    *int64
	From     *int64
	To       *int64
	Page     *int64
	Limit    *int64
	SortBy   *string
	Order    *string
}

// ValidationError marks a request the caller can fix. Handlers map it to a
// 400 response.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// plan is a fully resolved query: defaults applied, bounds clamped, window
// computed.
type plan struct {
	seconds  int64
	interval string
	from     int64
	to       *int64
	page     int64
	limit    int64
	skip     int64
	sortBy   string
	order    string
}

// resolve validates p and fills in defaults. now anchors the implicit window
// when the caller gave no explicit from.
func (p Params) resolve(now time.Time) (*plan, error) {
	if (p.Interval != nil) != (p.Count != nil) {
		return nil, validationf("Both interval and count must be provided together")
	}
	if p.Count != nil && (*p.Count < 1 || *p.Count > DefaultCount) {
		return nil, validationf("count must be between 1 and %d", DefaultCount)
	}

	name := string(interval.Hour)
	if p.Interval != nil && interval.Valid(*p.Interval) {
		name = *p.Interval
	}
	seconds := interval.Seconds(name)

	limit := int64(DefaultLimit)
	if p.Limit != nil {
		limit = *p.Limit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	page := int64(1)
	if p.Page != nil && *p.Page > 1 {
		page = *p.Page
	}

	sortBy := "startTime"
	if p.SortBy != nil && *p.SortBy == "endTime" {
		sortBy = "endTime"
	}

	order := "asc"
	if p.Order != nil && *p.Order == "desc" {
		order = "desc"
	}

	from := int64(0)
	if p.From != nil {
		from = *p.From
	} else {
		count := int64(DefaultCount)
		if p.Count != nil {
			count = *p.Count
		}
		from = now.Unix() - count*seconds
	}

	return &plan{
		seconds:  seconds,
		interval: name,
		from:     from,
		to:       p.To,
		page:     page,
		limit:    limit,
		skip:     (page - 1) * limit,
		sortBy:   sortBy,
		order:    order,
	}, nil
}
