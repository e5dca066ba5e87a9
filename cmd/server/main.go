// Package main provides the unified mirror service:
// - Ingestion (scheduled): hourly backfill-then-follow of upstream history
// - Query API (continuous): bucketed history endpoints over local storage
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SaiAdithya3/midgaurdapi/internal/api"
	"github.com/SaiAdithya3/midgaurdapi/internal/history"
	"github.com/SaiAdithya3/midgaurdapi/internal/ingestion"
	"github.com/SaiAdithya3/midgaurdapi/internal/midgard"
	"github.com/SaiAdithya3/midgaurdapi/internal/observability"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage"
	chstore "github.com/SaiAdithya3/midgaurdapi/internal/storage/clickhouse"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage/memory"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage/migrations"
	pgstore "github.com/SaiAdithya3/midgaurdapi/internal/storage/postgres"
)

// defaultInitialStart is the cursor used when no watermark has been
// persisted yet: the first interval the mirror is expected to carry.
const defaultInitialStart = 1739487600

// allStores holds all storage implementations.
type allStores struct {
	depth      storage.DepthStore
	swaps      storage.SwapsStore
	earnings   storage.EarningsStore
	runepool   storage.RunePoolStore
	watermarks storage.WatermarkStore
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	listenAddr := flag.String("listen-addr", envOr("LISTEN_ADDR", ":8080"), "HTTP listen address")
	midgardURL := flag.String("midgard-url", envOr("MIDGARD_BASE_URL", midgard.DefaultBaseURL), "Upstream Midgard base URL")
	pool := flag.String("pool", envOr("POOL", "BTC.BTC"), "Pool whose depth history is mirrored")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of ClickHouse/PostgreSQL")
	initialStart := flag.Int64("initial-start", defaultInitialStart, "Unix time the first backfill starts from")
	pageDelay := flag.Duration("page-delay", ingestion.DefaultPageDelay, "Delay between upstream page fetches")
	noIngest := flag.Bool("no-ingest", false, "Serve queries only, without the ingestion scheduler")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create stores
	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	metrics := observability.NewMetrics("")

	// Ingestion scheduler
	var scheduler *ingestion.Scheduler
	if !*noIngest {
		client := midgard.NewClient(midgard.WithBaseURL(*midgardURL))
		scheduler = ingestion.NewScheduler(ingestion.SchedulerOptions{
			Sources: []ingestion.Source{
				ingestion.NewDepthSource(client, *pool, stores.depth),
				ingestion.NewSwapsSource(client, stores.swaps),
				ingestion.NewEarningsSource(client, stores.earnings),
				ingestion.NewRunePoolSource(client, stores.runepool),
			},
			Watermarks:   stores.watermarks,
			InitialStart: *initialStart,
			PageDelay:    *pageDelay,
			Logger:       logger,
			Metrics:      metrics,
		})
		if err := scheduler.Start(ctx); err != nil {
			logger.Fatalf("Failed to start scheduler: %v", err)
		}
		defer scheduler.Stop()

		// First tick immediately so a fresh deployment backfills without
		// waiting for the top of the hour.
		go scheduler.Tick(ctx)
	}

	// Query engine and HTTP server
	engine := history.NewEngine(history.EngineOptions{
		Depth:    stores.depth,
		Swaps:    stores.swaps,
		Earnings: stores.earnings,
		RunePool: stores.runepool,
		Logger:   logger,
	})

	server := api.NewServer(api.ServerOptions{
		Engine:    engine,
		Scheduler: scheduler,
		Metrics:   metrics,
		Logger:    logger,
	})

	httpServer := &http.Server{
		Addr:              *listenAddr,
		Handler:           server.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle shutdown signals with graceful timeout
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("HTTP shutdown error: %v", err)
		}
	}()

	logger.Printf("Serving on %s (pool=%s, upstream=%s)", *listenAddr, *pool, *midgardURL)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("HTTP server error: %v", err)
	}
	logger.Println("Shutdown complete")
}

// createStores builds either the in-memory stores or the ClickHouse and
// PostgreSQL backed ones, running migrations first.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		return &allStores{
			depth:      memory.NewDepthStore(),
			swaps:      memory.NewSwapsStore(),
			earnings:   memory.NewEarningsStore(),
			runepool:   memory.NewRunePoolStore(),
			watermarks: memory.NewWatermarkStore(),
		}, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	stores := &allStores{
		depth:      chstore.NewDepthStore(conn),
		swaps:      chstore.NewSwapsStore(conn),
		earnings:   chstore.NewEarningsStore(conn),
		runepool:   chstore.NewRunePoolStore(conn),
		watermarks: pgstore.NewWatermarkStore(pool),
	}
	cleanup := func() {
		conn.Close()
		pool.Close()
	}
	return stores, cleanup, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
