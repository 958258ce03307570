// Seeder loads the scenario and strategy catalogs into Postgres. Upserts are
// idempotent, so rerunning after a catalog edit refreshes rows in place.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/catalog"
	"github.com/quantfoot/analytics-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		log.Fatal("POSTGRES_URL is required")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("ping postgres", zap.Error(err))
	}

	catalogStore := store.NewCatalogStore(pool, logger.Sugar())

	scenarios := catalog.Scenarios()
	for _, sc := range scenarios {
		if err := catalogStore.UpsertScenario(ctx, sc); err != nil {
			logger.Fatal("upsert scenario", zap.String("code", sc.Code), zap.Error(err))
		}
	}
	logger.Info("scenarios seeded", zap.Int("count", len(scenarios)))

	strategies := catalog.Strategies()
	for _, st := range strategies {
		if err := catalogStore.UpsertStrategy(ctx, st); err != nil {
			logger.Fatal("upsert strategy", zap.String("code", st.Code), zap.Error(err))
		}
	}
	logger.Info("strategies seeded", zap.Int("count", len(strategies)))
}
