package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

// DefaultBookmaker is the sharp book every probability model is priced
// against.
const DefaultBookmaker = "pinnacle"

// OddsStore reads and writes odds and CLV snapshots in ClickHouse. Odds are
// append-only time series; "current odds" is always the latest snapshot.
type OddsStore struct {
	ch     driver.Conn
	logger *zap.SugaredLogger
}

func NewOddsStore(ch driver.Conn, logger *zap.SugaredLogger) *OddsStore {
	return &OddsStore{ch: ch, logger: logger}
}

// GetRealMarketOdds returns the most recent snapshot for a match. An empty
// bookmaker defaults to Pinnacle. A snapshot missing any of the three 1X2
// prices is unusable and yields (nil, nil): sizing on partial odds is
// worse than abstaining.
func (s *OddsStore) GetRealMarketOdds(ctx context.Context, matchID, bookmaker string) (*models.MarketOdds, error) {
	if bookmaker == "" {
		bookmaker = DefaultBookmaker
	}

	rows, err := s.ch.Query(ctx, `
		SELECT match_id, bookmaker, odds_home, odds_draw, odds_away,
		       odds_over25, odds_under25, created_at
		FROM odds_snapshots
		WHERE match_id = ? AND bookmaker = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, matchID, bookmaker)
	if err != nil {
		return nil, fmt.Errorf("load odds %s: %w", matchID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}
	var o models.MarketOdds
	if err := rows.Scan(&o.MatchID, &o.Bookmaker, &o.Home, &o.Draw, &o.Away,
		&o.Over25, &o.Under25, &o.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan odds %s: %w", matchID, err)
	}
	if o.Home <= 1 || o.Draw <= 1 || o.Away <= 1 {
		s.logger.Debugw("Incomplete 1X2 snapshot skipped",
			"match", matchID, "bookmaker", bookmaker)
		return nil, nil
	}
	o.HasTotals = o.Over25 > 1 && o.Under25 > 1
	return &o, nil
}

// InsertOddsSnapshots appends a batch of snapshots.
func (s *OddsStore) InsertOddsSnapshots(ctx context.Context, snaps []models.MarketOdds) error {
	if len(snaps) == 0 {
		return nil
	}
	batch, err := s.ch.PrepareBatch(ctx, `
		INSERT INTO odds_snapshots
			(match_id, bookmaker, odds_home, odds_draw, odds_away,
			 odds_over25, odds_under25, created_at)
	`)
	if err != nil {
		return fmt.Errorf("prepare odds batch: %w", err)
	}
	for _, o := range snaps {
		created := o.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}
		if err := batch.Append(o.MatchID, o.Bookmaker, o.Home, o.Draw, o.Away,
			o.Over25, o.Under25, created); err != nil {
			return fmt.Errorf("append odds %s: %w", o.MatchID, err)
		}
	}
	return batch.Send()
}

// GetCLVData returns the CLV row with the longest tracking horizon for a
// match, or (nil, nil) when the match was never tracked.
func (s *OddsStore) GetCLVData(ctx context.Context, matchID string) (*models.CLVData, error) {
	rows, err := s.ch.Query(ctx, `
		SELECT match_id, clv_home, clv_draw, clv_away, hours_tracked, created_at
		FROM clv_tracking
		WHERE match_id = ?
		ORDER BY hours_tracked DESC
		LIMIT 1
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("load clv %s: %w", matchID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}
	var c models.CLVData
	if err := rows.Scan(&c.MatchID, &c.HomeCLV, &c.DrawCLV, &c.AwayCLV,
		&c.HoursTracked, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan clv %s: %w", matchID, err)
	}
	return &c, nil
}

// InsertCLV appends one CLV observation.
func (s *OddsStore) InsertCLV(ctx context.Context, c models.CLVData) error {
	created := c.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	err := s.ch.Exec(ctx, `
		INSERT INTO clv_tracking
			(match_id, clv_home, clv_draw, clv_away, hours_tracked, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.MatchID, c.HomeCLV, c.DrawCLV, c.AwayCLV, c.HoursTracked, created)
	if err != nil {
		return fmt.Errorf("insert clv %s: %w", c.MatchID, err)
	}
	return nil
}

// ComputeCLV derives the movement between an opening snapshot and the
// current one, in percentage points of implied probability. Positive means
// the market moved toward the outcome after the opening price.
func ComputeCLV(opening, current *models.MarketOdds, hoursTracked float64) models.CLVData {
	pp := func(open, cur float64) float64 {
		return (models.ImpliedProb(cur) - models.ImpliedProb(open)) * 100
	}
	return models.CLVData{
		MatchID:      current.MatchID,
		HomeCLV:      pp(opening.Home, current.Home),
		DrawCLV:      pp(opening.Draw, current.Draw),
		AwayCLV:      pp(opening.Away, current.Away),
		HoursTracked: hoursTracked,
		CreatedAt:    current.CreatedAt,
	}
}
