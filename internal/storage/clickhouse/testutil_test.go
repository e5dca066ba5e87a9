package clickhouse

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a ClickHouse container and returns a connection.
// Returns a cleanup function that must be called when done.
func setupTestDB(t *testing.T) (*Conn, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start ClickHouse container
	req := testcontainers.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.1-alpine",
		ExposedPorts: []string{"9000/tcp", "8123/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Application: Ready for connections").
				WithStartupTimeout(60 * time.Second),
			wait.ForListeningPort("9000/tcp"),
		),
		Env: map[string]string{
			"CLICKHOUSE_DB":       "test",
			"CLICKHOUSE_USER":     "default",
			"CLICKHOUSE_PASSWORD": "",
		},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	// Get native port (9000)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "9000")
	require.NoError(t, err)

	dsn := fmt.Sprintf("clickhouse://%s:%s/test", host, port.Port())

	// Connect to ClickHouse
	conn, err := NewConn(ctx, dsn)
	require.NoError(t, err)

	createHistoryTables(t, conn)

	cleanup := func() {
		conn.Close()
		_ = container.Terminate(ctx)
	}

	return conn, cleanup
}

// createHistoryTables applies the history table DDL directly so the tests
// do not depend on the migrations package.
func createHistoryTables(t *testing.T, conn *Conn) {
	t.Helper()
	ctx := context.Background()

	err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS depth_history (
			pool            String,
			start_time      Int64,
			end_time        Int64,
			asset_depth     Float64,
			rune_depth      Float64,
			asset_price     Float64,
			asset_price_usd Float64,
			liquidity_units Float64,
			members_count   Float64,
			synth_units     Float64,
			synth_supply    Float64,
			units           Float64,
			luvi            Float64,
			ingested_at     DateTime64(3) DEFAULT now64(3)
		) ENGINE = MergeTree()
		ORDER BY (end_time, ingested_at)
		SETTINGS index_granularity = 8192
	`)
	require.NoError(t, err)

	err = conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS swaps_history (
			start_time                Int64,
			end_time                  Int64,
			to_asset_count            Float64,
			to_rune_count             Float64,
			to_trade_count            Float64,
			from_trade_count          Float64,
			synth_mint_count          Float64,
			synth_redeem_count        Float64,
			total_count               Float64,
			to_asset_volume           Float64,
			to_rune_volume            Float64,
			to_trade_volume           Float64,
			from_trade_volume         Float64,
			synth_mint_volume         Float64,
			synth_redeem_volume       Float64,
			total_volume              Float64,
			to_asset_volume_usd       Float64,
			to_rune_volume_usd        Float64,
			to_trade_volume_usd       Float64,
			from_trade_volume_usd     Float64,
			synth_mint_volume_usd     Float64,
			synth_redeem_volume_usd   Float64,
			total_volume_usd          Float64,
			to_asset_fees             Float64,
			to_rune_fees              Float64,
			to_trade_fees             Float64,
			from_trade_fees           Float64,
			synth_mint_fees           Float64,
			synth_redeem_fees         Float64,
			total_fees                Float64,
			to_asset_average_slip     Float64,
			to_rune_average_slip      Float64,
			to_trade_average_slip     Float64,
			from_trade_average_slip   Float64,
			synth_mint_average_slip   Float64,
			synth_redeem_average_slip Float64,
			average_slip              Float64,
			rune_price_usd            Float64,
			ingested_at               DateTime64(3) DEFAULT now64(3)
		) ENGINE = MergeTree()
		ORDER BY (end_time, ingested_at)
		SETTINGS index_granularity = 8192
	`)
	require.NoError(t, err)

	err = conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS earnings_history (
			id                 String,
			start_time         Int64,
			end_time           Int64,
			block_rewards      Float64,
			avg_node_count     Float64,
			bonding_earnings   Float64,
			liquidity_earnings Float64,
			liquidity_fees     Float64,
			rune_price_usd     Float64,
			ingested_at        DateTime64(3) DEFAULT now64(3)
		) ENGINE = MergeTree()
		ORDER BY (end_time, ingested_at)
		SETTINGS index_granularity = 8192
	`)
	require.NoError(t, err)

	err = conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS earnings_history_pools (
			earnings_id               String,
			pool                      String,
			asset_liquidity_fees      Float64,
			rune_liquidity_fees       Float64,
			total_liquidity_fees_rune Float64,
			saver_earning             Float64,
			rewards                   Float64,
			start_time                Int64,
			end_time                  Int64,
			ingested_at               DateTime64(3) DEFAULT now64(3)
		) ENGINE = MergeTree()
		ORDER BY (earnings_id, ingested_at)
		SETTINGS index_granularity = 8192
	`)
	require.NoError(t, err)

	err = conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS runepool_history (
			start_time  Int64,
			end_time    Int64,
			depth       Nullable(Float64),
			count       Float64,
			units       Float64,
			ingested_at DateTime64(3) DEFAULT now64(3)
		) ENGINE = MergeTree()
		ORDER BY (end_time, ingested_at)
		SETTINGS index_granularity = 8192
	`)
	require.NoError(t, err)
}

// ptr is a helper to create pointers for test values
func ptr[T any](v T) *T {
	return &v
}
