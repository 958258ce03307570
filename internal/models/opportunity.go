package models

import "time"

// Opportunity is one upcoming match surfaced by the opportunities feed.
type Opportunity struct {
	MatchID   string    `json:"match_id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	League    string    `json:"league"`
	KickoffAt time.Time `json:"kickoff_at"`
}

// MarketPick is one market's analysis inside a full match analysis.
type MarketPick struct {
	Market       MarketType     `json:"market"`
	Prediction   string         `json:"prediction"`
	Odds         float64        `json:"odds"`
	Probability  float64        `json:"probability"`
	KellyPct     float64        `json:"kelly_pct"`
	DiamondScore float64        `json:"diamond_score"`
	ValueRating  ValueRating    `json:"value_rating"`
	Factors      map[string]any `json:"factors"`
	IsTop3       bool           `json:"is_top3"`

	HomeXG      float64 `json:"home_xg"`
	AwayXG      float64 `json:"away_xg"`
	PoissonProb float64 `json:"poisson_prob"`

	// Shadowed picks are persisted as paper trades: tracked for
	// diagnostics, never staked or surfaced.
	Shadowed bool `json:"shadowed"`
}

// MatchAnalysis is the full multi-market analysis for one opportunity.
type MatchAnalysis struct {
	Opportunity Opportunity  `json:"opportunity"`
	Picks       []MarketPick `json:"picks"`
	GeneratedAt time.Time    `json:"generated_at"`
}
