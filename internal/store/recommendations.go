package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

// trackedSetKey is the Redis set warm-caching tracked match ids. It is an
// acceleration only: the recommendations table is the source of truth.
const trackedSetKey = "tracked_matches"

const recommendationColumns = `
	id, match_id, home_team, away_team, league, market_type,
	prediction, odds_taken, probability, kelly_pct, diamond_score,
	value_rating, factors, is_top3, source,
	home_xg, away_xg, total_xg, poisson_prob, predicted_prob,
	is_resolved, is_winner, profit_loss, score_home, score_away,
	created_at, resolved_at`

// RecommendationStore persists recommendations in PostgreSQL with a Redis
// warm cache for the tracked-match set.
type RecommendationStore struct {
	pg     PgPool
	redis  RedisClient
	logger *zap.SugaredLogger
}

func NewRecommendationStore(pg PgPool, rdb RedisClient, logger *zap.SugaredLogger) *RecommendationStore {
	return &RecommendationStore{pg: pg, redis: rdb, logger: logger}
}

// InsertBatch writes a batch of recommendations in one statement. The
// UNIQUE (match_id, market_type, source) constraint makes replays inert:
// conflicting rows are skipped, never overwritten.
func (s *RecommendationStore) InsertBatch(ctx context.Context, recs []*models.Recommendation) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO recommendations (
			id, match_id, home_team, away_team, league, market_type,
			prediction, odds_taken, probability, kelly_pct, diamond_score,
			value_rating, factors, is_top3, source,
			home_xg, away_xg, total_xg, poisson_prob, predicted_prob, created_at
		) VALUES `)

	args := make([]any, 0, len(recs)*21)
	for i, r := range recs {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 21
		placeholders := make([]string, 21)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		sb.WriteString("(" + strings.Join(placeholders, ", ") + ")")

		factors, err := json.Marshal(r.Factors)
		if err != nil {
			return 0, fmt.Errorf("encode factors %s: %w", r.ID, err)
		}
		created := r.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}
		args = append(args,
			r.ID, r.MatchID, r.HomeTeam, r.AwayTeam, r.League, string(r.MarketType),
			r.Prediction, r.OddsTaken, r.Probability, r.KellyPct, r.DiamondScore,
			string(r.ValueRating), factors, r.IsTop3, r.Source,
			r.HomeXG, r.AwayXG, r.TotalXG, r.PoissonProb, r.PredictedProb, created)
	}
	sb.WriteString(" ON CONFLICT (match_id, market_type, source) DO NOTHING")

	tag, err := s.pg.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, fmt.Errorf("insert recommendations (%d rows): %w", len(recs), err)
	}

	s.warmTrackedSet(ctx, recs)
	return int(tag.RowsAffected()), nil
}

func (s *RecommendationStore) warmTrackedSet(ctx context.Context, recs []*models.Recommendation) {
	if s.redis == nil {
		return
	}
	members := make([]any, 0, len(recs))
	seen := map[string]bool{}
	for _, r := range recs {
		if !seen[r.MatchID] {
			seen[r.MatchID] = true
			members = append(members, r.MatchID)
		}
	}
	if err := s.redis.SAdd(ctx, trackedSetKey, members...).Err(); err != nil {
		s.logger.Warnw("Tracked-set cache write failed", "error", err)
	}
}

// TrackedMatchIDs returns every match id with at least one recommendation.
// The Redis set answers when populated; PostgreSQL is the fallback and the
// authority.
func (s *RecommendationStore) TrackedMatchIDs(ctx context.Context) ([]string, error) {
	if s.redis != nil {
		ids, err := s.redis.SMembers(ctx, trackedSetKey).Result()
		if err == nil && len(ids) > 0 {
			return ids, nil
		}
	}

	rows, err := s.pg.Query(ctx, `SELECT DISTINCT match_id FROM recommendations`)
	if err != nil {
		return nil, fmt.Errorf("list tracked matches: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan match id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RecommendationFilter narrows ListRecent. Zero values mean "any".
type RecommendationFilter struct {
	MatchID  string
	Market   models.MarketType
	Source   string
	Top3Only bool
	Limit    int
}

// ListRecent returns the newest recommendations matching the filter.
func (s *RecommendationStore) ListRecent(ctx context.Context, f RecommendationFilter) ([]models.Recommendation, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + recommendationColumns + ` FROM recommendations WHERE 1=1`)
	var args []any
	add := func(clause string, v any) {
		args = append(args, v)
		fmt.Fprintf(&sb, " AND %s = $%d", clause, len(args))
	}
	if f.MatchID != "" {
		add("match_id", f.MatchID)
	}
	if f.Market != "" {
		add("market_type", string(f.Market))
	}
	if f.Source != "" {
		add("source", string(f.Source))
	}
	if f.Top3Only {
		sb.WriteString(" AND is_top3 = TRUE")
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	args = append(args, limit)
	fmt.Fprintf(&sb, " ORDER BY created_at DESC LIMIT $%d", len(args))

	return s.list(ctx, sb.String(), args...)
}

// ListUnresolved returns every pick still waiting on a result.
func (s *RecommendationStore) ListUnresolved(ctx context.Context) ([]models.Recommendation, error) {
	return s.list(ctx, `
		SELECT `+recommendationColumns+`
		FROM recommendations
		WHERE is_resolved = FALSE
		ORDER BY created_at
	`)
}

// ListResolvedSince returns resolved picks for the diagnostics window.
func (s *RecommendationStore) ListResolvedSince(ctx context.Context, since time.Time) ([]models.Recommendation, error) {
	return s.list(ctx, `
		SELECT `+recommendationColumns+`
		FROM recommendations
		WHERE is_resolved = TRUE AND resolved_at >= $1
		ORDER BY resolved_at
	`, since)
}

func (s *RecommendationStore) list(ctx context.Context, query string, args ...any) ([]models.Recommendation, error) {
	rows, err := s.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	defer rows.Close()

	var out []models.Recommendation
	for rows.Next() {
		var r models.Recommendation
		var factors []byte
		if err := rows.Scan(&r.ID, &r.MatchID, &r.HomeTeam, &r.AwayTeam,
			&r.League, &r.MarketType,
			&r.Prediction, &r.OddsTaken, &r.Probability, &r.KellyPct,
			&r.DiamondScore, &r.ValueRating, &factors, &r.IsTop3, &r.Source,
			&r.HomeXG, &r.AwayXG, &r.TotalXG, &r.PoissonProb, &r.PredictedProb,
			&r.IsResolved, &r.IsWinner, &r.ProfitLoss, &r.ScoreHome, &r.ScoreAway,
			&r.CreatedAt, &r.ResolvedAt); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		if len(factors) > 0 {
			if err := json.Unmarshal(factors, &r.Factors); err != nil {
				s.logger.Warnw("Malformed factors JSON", "id", r.ID, "error", err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MarkResolved writes the outcome onto one pick.
func (s *RecommendationStore) MarkResolved(ctx context.Context, id string, res models.Resolution) error {
	_, err := s.pg.Exec(ctx, `
		UPDATE recommendations SET
			is_resolved = TRUE,
			is_winner = $2,
			profit_loss = $3,
			score_home = $4,
			score_away = $5,
			resolved_at = $6
		WHERE id = $1
	`, id, res.IsWinner, res.ProfitLoss, res.ScoreHome, res.ScoreAway, res.ResolvedAt)
	if err != nil {
		return fmt.Errorf("mark resolved %s: %w", id, err)
	}
	return nil
}
