package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/config"
	"github.com/quantfoot/analytics-api/internal/engine"
	"github.com/quantfoot/analytics-api/internal/feed"
	"github.com/quantfoot/analytics-api/internal/handlers"
	"github.com/quantfoot/analytics-api/internal/kelly"
	"github.com/quantfoot/analytics-api/internal/matcher"
	"github.com/quantfoot/analytics-api/internal/store"
	"github.com/quantfoot/analytics-api/internal/tracker"
	"github.com/quantfoot/analytics-api/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		logger.Fatal("ping postgres", zap.Error(err))
	}

	ch, err := openClickHouse(ctx, cfg.ClickHouseURL)
	if err != nil {
		logger.Fatal("connect clickhouse", zap.Error(err))
	}
	defer ch.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal("parse redis url", zap.Error(err))
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("ping redis", zap.Error(err))
	}

	// Stores
	teamStore := store.NewTeamStore(pg, rdb, sugar)
	frictionStore := store.NewFrictionStore(pg, sugar)
	oddsStore := store.NewOddsStore(ch, sugar)
	recStore := store.NewRecommendationStore(pg, rdb, sugar)
	catalogStore := store.NewCatalogStore(pg, sugar)
	adjStore := store.NewAdjustmentStore(pg, sugar)

	// Pipeline pool: batched inserts for recommendations and odds snapshots.
	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.WorkerCount,
		QueueSize:     cfg.QueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		Recs:          recStore,
		Snapshots:     oddsStore,
		Logger:        logger,
	})
	pool.Start(context.Background())

	// Analysis pipeline
	frictionSvc := engine.NewService(teamStore, frictionStore, sugar)
	board := tracker.NewStatusBoard()
	sizer := kelly.NewSizer(kelly.Config{
		Fraction: cfg.KellyFraction,
		MaxStake: cfg.MaxStakePct,
		Bankroll: cfg.Bankroll,
	})
	m := matcher.New(board, sugar)
	analyzer := matcher.NewAnalyzer(teamStore, frictionStore, oddsStore, catalogStore, adjStore, m, sizer, sugar)

	// Phase drivers
	oppsFeed := feed.NewOpportunitiesClient(cfg.OpportunitiesURL, cfg.FeedTimeout, sugar)
	resultsFeed := feed.NewResultsClient(cfg.ResultsURL, cfg.FeedTimeout, sugar)
	collector := tracker.NewCollector(oppsFeed, analyzer, pool, recStore, sugar)
	resolver := tracker.NewResolver(recStore, resultsFeed, sugar)
	adjuster := tracker.NewAdjuster(adjStore, "diagnose", sugar)
	diagnoser := tracker.NewDiagnoser(recStore, adjuster, sugar)

	h := handlers.New(handlers.Config{
		Pipeline:        pool,
		Postgres:        pg,
		ClickHouse:      ch,
		Redis:           rdb,
		Logger:          logger,
		Teams:           teamStore,
		Friction:        frictionSvc,
		Recommendations: recStore,
		CLV:             oddsStore,
		Diagnostics:     diagnoser,
		Adjustments:     adjStore,
		Collect:         collector,
		Resolve:         resolver,
		DiagnosisWindow: cfg.DiagnosisWindow,
	})

	var wg sync.WaitGroup
	runPhase := func(interval time.Duration, name string, fn func(context.Context) (int, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					n, err := fn(ctx)
					if err != nil {
						sugar.Errorw("phase failed", "phase", name, "error", err)
						continue
					}
					sugar.Infow("phase complete", "phase", name, "processed", n)
				}
			}
		}()
	}

	runPhase(cfg.CollectInterval, "collect", collector.Run)
	runPhase(cfg.ResolveInterval, "resolve", resolver.Run)
	runPhase(cfg.DiagnoseInterval, "diagnose", func(ctx context.Context) (int, error) {
		report, err := diagnoser.Run(ctx, cfg.DiagnosisWindow)
		if err != nil {
			return 0, err
		}
		board.Update(report)
		return len(report.ByStrategy), nil
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Routes(cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("server shutdown", "error", err)
	}

	wg.Wait()
	pool.Stop()
	sugar.Info("shutdown complete")
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func openClickHouse(ctx context.Context, dsn string) (driver.Conn, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}
	return conn, nil
}
