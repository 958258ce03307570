package tracker

import (
	"sync"

	"github.com/quantfoot/analytics-api/internal/models"
)

// StatusBoard is the point-in-time view of strategy health the matcher
// consults before surfacing a candidate. A factor is either visible or
// not; the board swaps atomically on each diagnosis.
type StatusBoard struct {
	mu            sync.RWMutex
	shadowMarkets map[models.MarketType]bool
	shadowTiers   map[models.Tier]bool
	multipliers   map[models.MarketType]float64
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{
		shadowMarkets: map[models.MarketType]bool{},
		shadowTiers:   map[models.Tier]bool{},
		multipliers:   map[models.MarketType]float64{},
	}
}

// Update replaces the board's view from a fresh diagnostics report.
func (b *StatusBoard) Update(report *models.DiagnosticsReport) {
	markets := map[models.MarketType]bool{}
	tiers := map[models.Tier]bool{}
	mults := map[models.MarketType]float64{}

	for key, diag := range report.ByMarket {
		mt := models.MarketType(key)
		if !mt.IsValid() {
			continue
		}
		if diag.Status == models.StatusShadow {
			markets[mt] = true
		}
		mults[mt] = diag.StakeMultiplier
	}
	for key, diag := range report.ByTier {
		if diag.Status == models.StatusShadow {
			tiers[models.Tier(key)] = true
		}
	}

	b.mu.Lock()
	b.shadowMarkets = markets
	b.shadowTiers = tiers
	b.multipliers = mults
	b.mu.Unlock()
}

// IsShadowed reports whether a (tier, market) pair is paper-trade only:
// either side of the pair in SHADOW status shadows the candidate.
func (b *StatusBoard) IsShadowed(tier models.Tier, market models.MarketType) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.shadowMarkets[market] || b.shadowTiers[tier]
}

// StakeMultiplier returns the status-driven multiplier for a market,
// defaulting to 1 when no diagnosis exists yet.
func (b *StatusBoard) StakeMultiplier(market models.MarketType) float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if m, ok := b.multipliers[market]; ok {
		return m
	}
	return 1
}
