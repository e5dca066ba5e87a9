// Package main provides a one-shot backfill: walk every history family
// from a start time to now, store the samples, and exit. Useful for
// seeding a database before running the server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaiAdithya3/midgaurdapi/internal/ingestion"
	"github.com/SaiAdithya3/midgaurdapi/internal/midgard"
	chstore "github.com/SaiAdithya3/midgaurdapi/internal/storage/clickhouse"
	"github.com/SaiAdithya3/midgaurdapi/internal/storage/migrations"
	pgstore "github.com/SaiAdithya3/midgaurdapi/internal/storage/postgres"
)

func main() {
	midgardURL := flag.String("midgard-url", midgard.DefaultBaseURL, "Upstream Midgard base URL")
	pool := flag.String("pool", "BTC.BTC", "Pool whose depth history is mirrored")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	from := flag.Int64("from", 1739487600, "Unix time the walk starts from")
	pageDelay := flag.Duration("page-delay", ingestion.DefaultPageDelay, "Delay between upstream page fetches")
	setWatermark := flag.Bool("set-watermark", true, "Persist the walk start as the ingestion watermark")

	flag.Parse()

	logger := log.New(os.Stdout, "[backfill] ", log.LstdFlags|log.Lshortfile)

	if *postgresDSN == "" || *clickhouseDSN == "" {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, stopping...", sig)
		cancel()
	}()

	pgPool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pgPool.Close()
	if err := migrations.RunPostgresMigrations(ctx, pgPool); err != nil {
		logger.Fatalf("Failed to run postgres migrations: %v", err)
	}

	conn, err := migrations.RunClickhouseMigrations(ctx, *clickhouseDSN)
	if err != nil {
		logger.Fatalf("Failed to run clickhouse migrations: %v", err)
	}
	defer conn.Close()

	client := midgard.NewClient(midgard.WithBaseURL(*midgardURL))
	sources := []ingestion.Source{
		ingestion.NewDepthSource(client, *pool, chstore.NewDepthStore(conn)),
		ingestion.NewSwapsSource(client, chstore.NewSwapsStore(conn)),
		ingestion.NewEarningsSource(client, chstore.NewEarningsStore(conn)),
		ingestion.NewRunePoolSource(client, chstore.NewRunePoolStore(conn)),
	}

	start := time.Now()
	for _, source := range sources {
		walker := ingestion.NewWalker(ingestion.WalkerOptions{
			Source:    source,
			PageDelay: *pageDelay,
			Logger:    logger,
		})

		result, err := walker.Run(ctx, *from)
		if err != nil {
			logger.Fatalf("Walk failed: family=%s err=%v", source.Family(), err)
		}
		logger.Printf("Walk done: family=%s pages=%d stored=%d dropped=%d fieldErrs=%d cursor=%d duration=%s",
			source.Family(), result.Pages, result.Stored, result.Dropped,
			result.FieldErrors, result.Cursor, result.Duration)
	}

	if *setWatermark {
		watermarks := pgstore.NewWatermarkStore(pgPool)
		if err := watermarks.Set(ctx, start.Unix()); err != nil {
			logger.Fatalf("Failed to persist watermark: %v", err)
		}
		logger.Printf("Watermark set to %d", start.Unix())
	}
}
