package models

import "time"

// ValueRating buckets edge quality for display.
type ValueRating string

const (
	ValueDiamond ValueRating = "DIAMOND"
	ValueGold    ValueRating = "GOLD"
	ValueSilver  ValueRating = "SILVER"
	ValueBronze  ValueRating = "BRONZE"
)

// Recommendation is one persisted bet recommendation. Created once per
// (match, market, source) triple; immutable except for its resolution
// fields. The store enforces uniqueness on (match_id, market_type, source).
type Recommendation struct {
	ID         string     `json:"id"`
	MatchID    string     `json:"match_id"`
	HomeTeam   string     `json:"home_team"`
	AwayTeam   string     `json:"away_team"`
	League     string     `json:"league"`
	MarketType MarketType `json:"market_type"`

	Prediction   string         `json:"prediction"`
	OddsTaken    float64        `json:"odds_taken"`
	Probability  float64        `json:"probability"`
	KellyPct     float64        `json:"kelly_pct"`
	DiamondScore float64        `json:"diamond_score"`
	ValueRating  ValueRating    `json:"value_rating"`
	Factors      map[string]any `json:"factors"`
	IsTop3       bool           `json:"is_top3"`
	Source       string         `json:"source"`

	HomeXG        float64 `json:"home_xg"`
	AwayXG        float64 `json:"away_xg"`
	TotalXG       float64 `json:"total_xg"`
	PoissonProb   float64 `json:"poisson_prob"`
	PredictedProb float64 `json:"predicted_prob"`

	IsResolved bool       `json:"is_resolved"`
	IsWinner   *bool      `json:"is_winner"` // nil after a push (DNB draw)
	ProfitLoss float64    `json:"profit_loss"`
	ScoreHome  *int       `json:"score_home"`
	ScoreAway  *int       `json:"score_away"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
}

// SourceLive marks recommendations surfaced to the user; SourcePaper marks
// shadow-mode picks that are persisted and resolved for diagnostics but
// never staked.
const (
	SourceLive  = "live"
	SourcePaper = "paper"
)

// Resolution carries the outcome applied to a recommendation.
type Resolution struct {
	IsWinner   *bool
	ProfitLoss float64
	ScoreHome  int
	ScoreAway  int
	ResolvedAt time.Time
}
