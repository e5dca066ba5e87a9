package ingestion

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/SaiAdithya3/midgaurdapi/internal/observability"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
)

// CronSpec fires at the top of every hour, matching the upstream's own
// hourly interval boundaries.
const CronSpec = "0 * * * *"

// Scheduler runs all family walkers on a fixed hourly cadence from a
// shared persisted watermark. Families run concurrently and fail
// independently; the watermark advances to the tick's start time once
// the tick completes, so a family that failed re-walks the same window
// on the next tick and the duplicates are absorbed at read time.
type Scheduler struct {
	sources      []Source
	watermarks   storage.WatermarkStore
	initialStart int64
	pageDelay    time.Duration
	logger       *log.Logger
	metrics      *observability.Metrics
	now          func() time.Time

	cron *cron.Cron

	mu       sync.Mutex
	lastTick time.Time
	ticks    int
}

// SchedulerOptions contains configuration for creating a Scheduler.
type SchedulerOptions struct {
	Sources      []Source
	Watermarks   storage.WatermarkStore
	InitialStart int64 // cursor used before the first tick is recorded
	PageDelay    time.Duration
	Logger       *log.Logger
	Metrics      *observability.Metrics
	Now          func() time.Time
}

// NewScheduler creates the hourly ingestion scheduler.
func NewScheduler(opts SchedulerOptions) *Scheduler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Scheduler{
		sources:      opts.Sources,
		watermarks:   opts.Watermarks,
		initialStart: opts.InitialStart,
		pageDelay:    opts.PageDelay,
		logger:       logger,
		metrics:      opts.Metrics,
		now:          now,
	}
}

// Start registers the hourly tick and begins scheduling. It does not
// block; Stop halts the cadence.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(CronSpec, func() {
		s.Tick(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Printf("Ingestion scheduler started (cron %q)", CronSpec)
	return nil
}

// Stop halts the cadence. A tick in flight finishes on its own.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// LastTick returns the start time of the most recent tick and the total
// tick count.
func (s *Scheduler) LastTick() (time.Time, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTick, s.ticks
}

// Tick runs one full ingestion pass: all family walkers concurrently
// from the shared watermark, then the watermark advances to this tick's
// start time.
func (s *Scheduler) Tick(ctx context.Context) {
	tickStart := s.now()
	s.logger.Printf("Starting ingestion tick at %d", tickStart.Unix())

	from, err := s.watermarks.Get(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			// Leave the watermark alone; the next tick retries the read.
			s.logger.Printf("Read watermark: %v; skipping tick", err)
			return
		}
		from = s.initialStart
	}

	var wg sync.WaitGroup
	for _, source := range s.sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			s.runWalker(ctx, src, from)
		}(source)
	}
	wg.Wait()

	if err := s.watermarks.Set(ctx, tickStart.Unix()); err != nil {
		s.logger.Printf("Persist watermark: %v", err)
	} else if s.metrics != nil {
		s.metrics.WatermarkTimestamp.Set(float64(tickStart.Unix()))
	}

	s.mu.Lock()
	s.lastTick = tickStart
	s.ticks++
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.TicksTotal.Inc()
		s.metrics.LastTickTimestamp.Set(float64(tickStart.Unix()))
	}
	s.logger.Printf("Completed ingestion tick started at %d", tickStart.Unix())
}

// runWalker runs one family's walk and records its outcome. Failures are
// logged, never propagated: one family cannot cancel its siblings.
func (s *Scheduler) runWalker(ctx context.Context, src Source, from int64) {
	walker := NewWalker(WalkerOptions{
		Source:    src,
		PageDelay: s.pageDelay,
		Logger:    s.logger,
		Now:       s.now,
	})

	family := src.Family().String()
	result, err := walker.Run(ctx, from)

	if s.metrics != nil {
		s.metrics.PagesIngested.WithLabelValues(family).Add(float64(result.Pages))
		s.metrics.SamplesStored.WithLabelValues(family).Add(float64(result.Stored))
		s.metrics.SamplesDropped.WithLabelValues(family).Add(float64(result.Dropped))
		s.metrics.FieldParseErrors.WithLabelValues(family).Add(float64(result.FieldErrors))
		s.metrics.StoreWriteErrors.WithLabelValues(family).Add(float64(result.StoreErrors))
		s.metrics.WalkDuration.WithLabelValues(family).Observe(result.Duration.Seconds())
		if err != nil {
			s.metrics.WalkFailures.WithLabelValues(family).Inc()
		}
	}

	if err != nil {
		s.logger.Printf("[%s] walk from %d failed: %v", family, from, err)
	}
}
