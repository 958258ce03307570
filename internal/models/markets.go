package models

import "fmt"

// MarketType is the closed enumeration of betting markets the platform
// produces recommendations for. Parsers at the boundary map raw strings to
// this enumeration or reject.
type MarketType string

const (
	MarketBTTSYes  MarketType = "btts_yes"
	MarketBTTSNo   MarketType = "btts_no"
	MarketOver15   MarketType = "over15"
	MarketOver25   MarketType = "over25"
	MarketOver35   MarketType = "over35"
	MarketUnder15  MarketType = "under15"
	MarketUnder25  MarketType = "under25"
	MarketUnder35  MarketType = "under35"
	MarketDC1X     MarketType = "dc_1x"
	MarketDCX2     MarketType = "dc_x2"
	MarketDC12     MarketType = "dc_12"
	MarketDNBHome  MarketType = "dnb_home"
	MarketDNBAway  MarketType = "dnb_away"
	MarketHomeWin  MarketType = "home"
	MarketAwayWin  MarketType = "away"
	MarketDrawFlat MarketType = "draw"
)

// AllMarketTypes lists every valid market, in the order the collect phase
// requests them from the analysis feed (the 13 tracked markets first).
var AllMarketTypes = []MarketType{
	MarketBTTSYes, MarketBTTSNo,
	MarketOver15, MarketUnder15,
	MarketOver25, MarketUnder25,
	MarketOver35, MarketUnder35,
	MarketDC1X, MarketDCX2, MarketDC12,
	MarketDNBHome, MarketDNBAway,
	MarketHomeWin, MarketAwayWin, MarketDrawFlat,
}

// TrackedMarkets are the markets the collect phase persists for every match.
var TrackedMarkets = AllMarketTypes[:13]

var validMarkets = func() map[MarketType]bool {
	m := make(map[MarketType]bool, len(AllMarketTypes))
	for _, mt := range AllMarketTypes {
		m[mt] = true
	}
	return m
}()

// ParseMarketType validates a raw market string against the enumeration.
func ParseMarketType(raw string) (MarketType, error) {
	mt := MarketType(raw)
	if !validMarkets[mt] {
		return "", fmt.Errorf("unknown market type: %q", raw)
	}
	return mt, nil
}

// IsValid reports whether the market belongs to the closed enumeration.
func (m MarketType) IsValid() bool { return validMarkets[m] }

// Outcome is the final 1X2 result of a finished match.
type Outcome string

const (
	OutcomeHome Outcome = "home"
	OutcomeDraw Outcome = "draw"
	OutcomeAway Outcome = "away"
)

// MatchResult is the finished-match row the resolve phase consumes.
type MatchResult struct {
	MatchID    string  `json:"match_id"`
	ScoreHome  int     `json:"score_home"`
	ScoreAway  int     `json:"score_away"`
	Outcome    Outcome `json:"outcome"`
	IsFinished bool    `json:"is_finished"`
}
