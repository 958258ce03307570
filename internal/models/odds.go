package models

import "time"

// MarketOdds is the most recent odds snapshot for a match: 1X2 plus the
// 2.5 totals line when the bookmaker posted one.
type MarketOdds struct {
	MatchID   string    `json:"match_id"`
	Bookmaker string    `json:"bookmaker"`
	Home      float64   `json:"home"`
	Draw      float64   `json:"draw"`
	Away      float64   `json:"away"`
	Over25    float64   `json:"over25"`
	Under25   float64   `json:"under25"`
	HasTotals bool      `json:"has_totals"`
	CreatedAt time.Time `json:"created_at"`
}

// ImpliedProb converts decimal odds to implied probability.
func ImpliedProb(odds float64) float64 {
	if odds <= 1 {
		return 0
	}
	return 1 / odds
}

// CLVSignal classifies closing-line movement strength.
type CLVSignal string

const (
	CLVSweetSpot CLVSignal = "SWEET_SPOT"
	CLVGood      CLVSignal = "GOOD"
	CLVDanger    CLVSignal = "DANGER"
	CLVNoSignal  CLVSignal = "NO_SIGNAL"
)

// CLVSide is the outcome carrying the strongest closing-line movement.
type CLVSide string

const (
	CLVSideHome CLVSide = "home"
	CLVSideDraw CLVSide = "draw"
	CLVSideAway CLVSide = "away"
	CLVSideNone CLVSide = "NONE"
)

// CLVData is the most recent closing-line-value snapshot for a match.
type CLVData struct {
	MatchID      string    `json:"match_id"`
	HomeCLV      float64   `json:"home_clv"`
	DrawCLV      float64   `json:"draw_clv"`
	AwayCLV      float64   `json:"away_clv"`
	HoursTracked float64   `json:"hours_tracked"`
	CreatedAt    time.Time `json:"created_at"`
}

// clvSideMinimum is the floor below which no side is reported.
const clvSideMinimum = 2.0

// Signal classifies the strongest CLV movement across the three outcomes.
func (c *CLVData) Signal() CLVSignal {
	m := c.MaxCLV()
	switch {
	case m >= 5 && m <= 10:
		return CLVSweetSpot
	case m >= 2 && m < 5:
		return CLVGood
	case m > 10:
		return CLVDanger
	default:
		return CLVNoSignal
	}
}

// MaxCLV returns the largest of the three outcome CLVs.
func (c *CLVData) MaxCLV() float64 {
	m := c.HomeCLV
	if c.DrawCLV > m {
		m = c.DrawCLV
	}
	if c.AwayCLV > m {
		m = c.AwayCLV
	}
	return m
}

// Side returns the outcome carrying the maximum CLV, provided it clears the
// 2.0 minimum; otherwise NONE.
func (c *CLVData) Side() CLVSide {
	m := c.MaxCLV()
	if m < clvSideMinimum {
		return CLVSideNone
	}
	switch m {
	case c.HomeCLV:
		return CLVSideHome
	case c.DrawCLV:
		return CLVSideDraw
	default:
		return CLVSideAway
	}
}
