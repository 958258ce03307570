package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

// aliasHashKey is the Redis hash mapping feed spellings to canonical names.
const aliasHashKey = "team_name_aliases"

// TeamStore loads DNA profiles and strategy history from PostgreSQL, with
// Redis-backed name normalization in front of every lookup.
type TeamStore struct {
	pg     PgPool
	redis  RedisClient
	logger *zap.SugaredLogger

	mu      sync.RWMutex
	aliases map[string]string
	primed  bool
}

func NewTeamStore(pg PgPool, rdb RedisClient, logger *zap.SugaredLogger) *TeamStore {
	return &TeamStore{pg: pg, redis: rdb, logger: logger, aliases: map[string]string{}}
}

// NormalizeTeamName maps a feed spelling onto the canonical name used as
// the profile key. Unknown names pass through trimmed: an absent alias is
// not an error.
func (s *TeamStore) NormalizeTeamName(ctx context.Context, name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return trimmed
	}
	key := strings.ToLower(trimmed)

	s.primeAliases(ctx)

	s.mu.RLock()
	canonical, ok := s.aliases[key]
	s.mu.RUnlock()
	if ok {
		return canonical
	}
	return trimmed
}

// primeAliases loads the full alias hash once per process. Redis being down
// degrades to pass-through naming, never to an error.
func (s *TeamStore) primeAliases(ctx context.Context) {
	s.mu.RLock()
	done := s.primed
	s.mu.RUnlock()
	if done || s.redis == nil {
		return
	}

	all, err := s.redis.HGetAll(ctx, aliasHashKey).Result()
	if err != nil {
		s.logger.Warnw("Alias cache unavailable, using raw names", "error", err)
		return
	}

	s.mu.Lock()
	for alias, canonical := range all {
		s.aliases[strings.ToLower(alias)] = canonical
	}
	s.primed = true
	s.mu.Unlock()
	s.logger.Infow("Team alias cache loaded", "aliases", len(all))
}

// RegisterAlias persists one alias and updates the in-process cache.
func (s *TeamStore) RegisterAlias(ctx context.Context, alias, canonical string) error {
	key := strings.ToLower(strings.TrimSpace(alias))
	if key == "" || canonical == "" {
		return errors.New("empty alias or canonical name")
	}
	if s.redis != nil {
		if err := s.redis.HSet(ctx, aliasHashKey, key, canonical).Err(); err != nil {
			return fmt.Errorf("persist alias: %w", err)
		}
	}
	s.mu.Lock()
	s.aliases[key] = canonical
	s.mu.Unlock()
	return nil
}

// GetTeamDNA loads the full eleven-vector profile. A missing team returns
// (nil, nil); a malformed sub-vector falls back to its safe default so one
// bad column never voids the whole profile.
func (s *TeamStore) GetTeamDNA(ctx context.Context, teamName string) (*models.TeamDNA, error) {
	canonical := s.NormalizeTeamName(ctx, teamName)

	var tier string
	raw := make([][]byte, 11)
	err := s.pg.QueryRow(ctx, `
		SELECT tier,
		       market_dna, context_dna, risk_dna, temporal_dna, nemesis_dna,
		       psyche_dna, sentiment_dna, roster_dna, physical_dna, luck_dna,
		       chameleon_dna
		FROM team_dna_profiles
		WHERE team_name = $1
	`, canonical).Scan(&tier,
		&raw[0], &raw[1], &raw[2], &raw[3], &raw[4],
		&raw[5], &raw[6], &raw[7], &raw[8], &raw[9], &raw[10])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load team dna %q: %w", canonical, err)
	}

	dna := models.DefaultTeamDNA(canonical)
	if t := models.Tier(tier); t == models.TierElite || t == models.TierGold ||
		t == models.TierSilver || t == models.TierBronze {
		dna.Tier = t
	}

	s.loadVector(canonical, "market_dna", raw[0], &dna.Market)
	s.loadVector(canonical, "context_dna", raw[1], &dna.Context)
	s.loadVector(canonical, "risk_dna", raw[2], &dna.Risk)
	s.loadVector(canonical, "temporal_dna", raw[3], &dna.Temporal)
	s.loadVector(canonical, "nemesis_dna", raw[4], &dna.Nemesis)
	s.loadVector(canonical, "psyche_dna", raw[5], &dna.Psyche)
	s.loadVector(canonical, "sentiment_dna", raw[6], &dna.Sentiment)
	s.loadVector(canonical, "roster_dna", raw[7], &dna.Roster)
	s.loadVector(canonical, "physical_dna", raw[8], &dna.Physical)
	s.loadVector(canonical, "luck_dna", raw[9], &dna.Luck)
	s.loadVector(canonical, "chameleon_dna", raw[10], &dna.Chameleon)
	return dna, nil
}

// loadVector overlays one JSONB sub-vector onto its default. dst keeps its
// default value on empty or malformed payloads.
func (s *TeamStore) loadVector(team, column string, raw []byte, dst any) {
	if len(raw) == 0 {
		return
	}
	if err := models.FlexUnmarshal(raw, dst); err != nil {
		s.logger.Warnw("Malformed DNA sub-vector, default kept",
			"team", team, "column", column, "error", err)
	}
}

// GetTeamStrategies returns the team's historical strategy lines, best
// first, then by ROI.
func (s *TeamStore) GetTeamStrategies(ctx context.Context, teamName string) ([]models.TeamStrategy, error) {
	canonical := s.NormalizeTeamName(ctx, teamName)

	rows, err := s.pg.Query(ctx, `
		SELECT team_name, strategy_name, is_best, bets, wins, losses,
		       win_rate, profit, roi, COALESCE(parameters, '{}'::jsonb)
		FROM team_strategies
		WHERE team_name = $1
		ORDER BY is_best DESC, roi DESC
	`, canonical)
	if err != nil {
		return nil, fmt.Errorf("load strategies %q: %w", canonical, err)
	}
	defer rows.Close()

	var out []models.TeamStrategy
	for rows.Next() {
		var st models.TeamStrategy
		var params []byte
		if err := rows.Scan(&st.TeamName, &st.StrategyName, &st.IsBest,
			&st.Bets, &st.Wins, &st.Losses, &st.WinRate, &st.Profit, &st.ROI,
			&params); err != nil {
			return nil, fmt.Errorf("scan strategy: %w", err)
		}
		if len(params) > 0 {
			if err := models.FlexUnmarshal(params, &st.Parameters); err != nil {
				s.logger.Warnw("Malformed strategy parameters",
					"team", canonical, "strategy", st.StrategyName, "error", err)
			}
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// UpsertTeamDNA writes the full profile; the seeder and the enrichment
// pipeline are the only writers.
func (s *TeamStore) UpsertTeamDNA(ctx context.Context, dna *models.TeamDNA) error {
	vectors := []any{
		dna.Market, dna.Context, dna.Risk, dna.Temporal, dna.Nemesis,
		dna.Psyche, dna.Sentiment, dna.Roster, dna.Physical, dna.Luck,
		dna.Chameleon,
	}
	args := make([]any, 0, 13)
	args = append(args, dna.TeamName, string(dna.Tier))
	for _, v := range vectors {
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode dna %q: %w", dna.TeamName, err)
		}
		args = append(args, payload)
	}

	_, err := s.pg.Exec(ctx, `
		INSERT INTO team_dna_profiles (
			team_name, tier,
			market_dna, context_dna, risk_dna, temporal_dna, nemesis_dna,
			psyche_dna, sentiment_dna, roster_dna, physical_dna, luck_dna,
			chameleon_dna, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (team_name) DO UPDATE SET
			tier = EXCLUDED.tier,
			market_dna = EXCLUDED.market_dna,
			context_dna = EXCLUDED.context_dna,
			risk_dna = EXCLUDED.risk_dna,
			temporal_dna = EXCLUDED.temporal_dna,
			nemesis_dna = EXCLUDED.nemesis_dna,
			psyche_dna = EXCLUDED.psyche_dna,
			sentiment_dna = EXCLUDED.sentiment_dna,
			roster_dna = EXCLUDED.roster_dna,
			physical_dna = EXCLUDED.physical_dna,
			luck_dna = EXCLUDED.luck_dna,
			chameleon_dna = EXCLUDED.chameleon_dna,
			updated_at = NOW()
	`, args...)
	if err != nil {
		return fmt.Errorf("upsert team dna %q: %w", dna.TeamName, err)
	}
	return nil
}
