package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// Quick ClickHouse inspector: snapshot counts plus the odds timeline for one
// match. Usage: debug_ch [match_id]
func main() {
	ctx := context.Background()

	dsn := os.Getenv("CLICKHOUSE_URL")
	if dsn == "" {
		dsn = "clickhouse://default:@localhost:9000/quantfoot"
	}
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		log.Fatal(err)
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		log.Fatal(err)
	}

	var snaps, clvs uint64
	if err := conn.QueryRow(ctx, "SELECT count() FROM odds_snapshots").Scan(&snaps); err != nil {
		log.Fatal(err)
	}
	if err := conn.QueryRow(ctx, "SELECT count() FROM clv_tracking").Scan(&clvs); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Odds snapshots: %d\nCLV rows: %d\n", snaps, clvs)

	if len(os.Args) < 2 {
		return
	}
	matchID := os.Args[1]

	rows, err := conn.Query(ctx, `
		SELECT bookmaker, odds_home, odds_draw, odds_away,
		       odds_over25, odds_under25, created_at
		FROM odds_snapshots
		WHERE match_id = ?
		ORDER BY created_at`, matchID)
	if err != nil {
		log.Fatal(err)
	}
	defer rows.Close()

	fmt.Printf("Timeline for %s:\n", matchID)
	for rows.Next() {
		var bookmaker string
		var home, draw, away, over25, under25 float64
		var createdAt time.Time
		if err := rows.Scan(&bookmaker, &home, &draw, &away, &over25, &under25, &createdAt); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("  %s  1=%.2f X=%.2f 2=%.2f O2.5=%.2f U2.5=%.2f  %s\n",
			bookmaker, home, draw, away, over25, under25, createdAt.Format(time.RFC3339))
	}
}
