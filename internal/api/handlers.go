package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
	"github.com/SaiAdithya3/midgaurdapi/internal/history"
)

// parseParams reads the history query parameters from the URL. Values that
// fail to parse as numbers are rejected here; semantic validation happens
// in the engine.
func parseParams(r *http.Request) (history.Params, error) {
	var p history.Params
	q := r.URL.Query()

	if v := q.Get("interval"); v != "" {
		p.Interval = &v
	}
	for name, dst := range map[string]**int64{
		"count": &p.Count,
		"from":  &p.From,
		"to":    &p.To,
		"page":  &p.Page,
		"limit": &p.Limit,
	} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return p, &history.ValidationError{Msg: "invalid " + name + " parameter"}
		}
		*dst = &n
	}
	if v := q.Get("sortBy"); v != "" {
		p.SortBy = &v
	}
	if v := q.Get("order"); v != "" {
		p.Order = &v
	}

	return p, nil
}

// HandleDepthHistory serves the depth/price history of one pool.
// Endpoint: GET /api/history/depths/{pool}
func (s *Server) HandleDepthHistory(w http.ResponseWriter, r *http.Request) {
	s.serveHistory(w, r, domain.FamilyDepth, "No depth history found",
		func(ctx context.Context, pool string, p history.Params) (interface{}, error) {
			return s.engine.DepthHistory(ctx, pool, p)
		})
}

// HandleSwapsHistory serves network-wide swap history.
// Endpoint: GET /api/history/swaps
func (s *Server) HandleSwapsHistory(w http.ResponseWriter, r *http.Request) {
	s.serveHistory(w, r, domain.FamilySwaps, "No swaps history found",
		func(ctx context.Context, _ string, p history.Params) (interface{}, error) {
			return s.engine.SwapsHistory(ctx, p)
		})
}

// HandleEarningsHistory serves network earnings history.
// Endpoint: GET /api/history/earnings
func (s *Server) HandleEarningsHistory(w http.ResponseWriter, r *http.Request) {
	s.serveHistory(w, r, domain.FamilyEarnings, "No earnings history found",
		func(ctx context.Context, _ string, p history.Params) (interface{}, error) {
			return s.engine.EarningsHistory(ctx, p)
		})
}

// HandleRunePoolHistory serves rune-pool membership history.
// Endpoint: GET /api/history/runepool
func (s *Server) HandleRunePoolHistory(w http.ResponseWriter, r *http.Request) {
	s.serveHistory(w, r, domain.FamilyRunePool, "No runepool history found",
		func(ctx context.Context, _ string, p history.Params) (interface{}, error) {
			return s.engine.RunePoolHistory(ctx, p)
		})
}

// serveHistory runs one history query and maps its outcome onto the HTTP
// response: ValidationError is a 400, ErrNoResults a 404, anything else an
// opaque 500. Pool-scoped families take the pool from the route path.
func (s *Server) serveHistory(w http.ResponseWriter, r *http.Request, family domain.Family, notFoundMsg string, query func(context.Context, string, history.Params) (interface{}, error)) {
	start := time.Now()

	var pool string
	if family.PoolScoped() {
		pool = mux.Vars(r)["pool"]
		if pool == "" {
			writeError(w, http.StatusBadRequest, "missing pool")
			return
		}
	}

	params, err := parseParams(r)
	if err == nil {
		var resp interface{}
		resp, err = query(r.Context(), pool, params)
		if err == nil {
			s.recordQuery(family, http.StatusOK, start)
			writeJSON(w, http.StatusOK, resp)
			return
		}
	}

	var verr *history.ValidationError
	switch {
	case errors.As(err, &verr):
		s.recordQuery(family, http.StatusBadRequest, start)
		writeError(w, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, history.ErrNoResults):
		s.recordQuery(family, http.StatusNotFound, start)
		writeError(w, http.StatusNotFound, notFoundMsg)
	default:
		s.logger.Printf("history query failed: family=%s err=%v", family, err)
		s.recordQuery(family, http.StatusInternalServerError, start)
		writeError(w, http.StatusInternalServerError, "Failed to fetch "+string(family)+" history")
	}
}

func (s *Server) recordQuery(family domain.Family, status int, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.QueryRequests.WithLabelValues(string(family), strconv.Itoa(status)).Inc()
	s.metrics.QueryDuration.WithLabelValues(string(family)).Observe(time.Since(start).Seconds())
}
