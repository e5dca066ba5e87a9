// Package api exposes the history query engine over HTTP.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/SaiAdithya3/midgaurdapi/internal/history"
	"github.com/SaiAdithya3/midgaurdapi/internal/ingestion"
	"github.com/SaiAdithya3/midgaurdapi/internal/observability"
)

// Server wires the history engine and scheduler status into an HTTP router.
type Server struct {
	engine    *history.Engine
	scheduler *ingestion.Scheduler
	metrics   *observability.Metrics
	logger    *log.Logger
}

// ServerOptions configures a Server. Engine is required; Scheduler and
// Metrics may be nil (status reports accordingly, metrics are skipped).
type ServerOptions struct {
	Engine    *history.Engine
	Scheduler *ingestion.Scheduler
	Metrics   *observability.Metrics
	Logger    *log.Logger
}

func NewServer(opts ServerOptions) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		engine:    opts.Engine,
		scheduler: opts.Scheduler,
		metrics:   opts.Metrics,
		logger:    logger,
	}
}

// NewRouter returns a router with all API routes registered.
func (s *Server) NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.HandleHealth).Methods("GET")
	r.HandleFunc("/status", s.HandleStatus).Methods("GET")
	r.Handle("/metrics", observability.Handler()).Methods("GET")

	r.HandleFunc("/api/history/depths/{pool}", s.HandleDepthHistory).Methods("GET")
	r.HandleFunc("/api/history/swaps", s.HandleSwapsHistory).Methods("GET")
	r.HandleFunc("/api/history/earnings", s.HandleEarningsHistory).Methods("GET")
	r.HandleFunc("/api/history/runepool", s.HandleRunePoolHistory).Methods("GET")

	return r
}

// HandleHealth reports liveness.
// Endpoint: GET /health
func (s *Server) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleStatus reports the ingestion scheduler's progress.
// Endpoint: GET /status
func (s *Server) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]interface{}{
		"scheduler": "disabled",
	}
	if s.scheduler != nil {
		lastTick, ticks := s.scheduler.LastTick()
		resp["scheduler"] = "running"
		resp["ticks"] = ticks
		if !lastTick.IsZero() {
			resp["lastTick"] = lastTick.UTC().Format(time.RFC3339)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the error envelope used by every non-2xx response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error":  msg,
		"status": status,
	})
}
