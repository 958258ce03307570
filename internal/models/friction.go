package models

import "time"

// MatchProfile is the single tag summarizing the expected shape of a match.
type MatchProfile string

const (
	ProfileBoaConstrictor      MatchProfile = "BOA_CONSTRICTOR"
	ProfileChaosFest           MatchProfile = "CHAOS_FEST"
	ProfileTacticalChess       MatchProfile = "TACTICAL_CHESS"
	ProfileGoalFest            MatchProfile = "GOAL_FEST"
	ProfileTrenchWarfare       MatchProfile = "TRENCH_WARFARE"
	ProfileExplosiveSecondHalf MatchProfile = "EXPLOSIVE_SECOND_HALF"
	ProfileFrontLoaded         MatchProfile = "FRONT_LOADED"
	ProfileDavidVsGoliath      MatchProfile = "DAVID_VS_GOLIATH"
)

// ConfidenceLevel grades how much non-default data backed a friction cell.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// FrictionInput is the lightweight per-team view the friction engine needs.
// It is a projection of TeamDNA; both inputs are loaded before any
// computation so the engine always sees a consistent snapshot.
type FrictionInput struct {
	TeamName string
	Style    Style
	Tier     Tier

	DieselFactor float64
	FastStarter  float64
	Goals1HAvg   float64
	Goals2HAvg   float64

	PressingIntensity float64
	StaminaProfile    StaminaProfile
	LateGameDominance float64

	Psyche  PsycheDNA
	Context ContextDNA
}

// FrictionView projects a full TeamDNA onto the engine's input.
func (d *TeamDNA) FrictionView() FrictionInput {
	return FrictionInput{
		TeamName:          d.TeamName,
		Style:             d.Nemesis.StylePrimary,
		Tier:              d.Tier,
		DieselFactor:      d.Temporal.DieselFactor,
		FastStarter:       d.Temporal.SprinterFactor,
		Goals1HAvg:        firstHalfShare(d.Temporal.Periods),
		Goals2HAvg:        1 - firstHalfShare(d.Temporal.Periods),
		PressingIntensity: d.Physical.PressingIntensity,
		StaminaProfile:    d.Physical.StaminaProfile,
		LateGameDominance: d.Physical.LateGameDominance,
		Psyche:            d.Psyche,
		Context:           d.Context,
	}
}

func firstHalfShare(periods map[string]float64) float64 {
	if len(periods) == 0 {
		return 0.5
	}
	share := periods["0-15"] + periods["16-30"] + periods["31-45"]
	if share <= 0 {
		return 0.5
	}
	return share
}

// FrictionCell is the persisted ordered-pair friction row. The home/away
// roles are structural: the cell for (A, B) is not the cell for (B, A).
type FrictionCell struct {
	TeamHome string `json:"team_home"`
	TeamAway string `json:"team_away"`

	FrictionScore float64 `json:"friction_score"`
	Friction1H    float64 `json:"friction_1h"`
	Friction2H    float64 `json:"friction_2h"`

	StyleClash    float64 `json:"style_clash"`
	TempoClash    float64 `json:"tempo_clash"`
	MentalClash   float64 `json:"mental_clash"`
	PhysicalClash float64 `json:"physical_clash"`

	ChaosPotential    float64 `json:"chaos_potential"`
	PsychologicalEdge float64 `json:"psychological_edge"`

	PredictedGoals      float64 `json:"predicted_goals"`
	PredictedBTTSProb   float64 `json:"predicted_btts_prob"`
	PredictedOver25Prob float64 `json:"predicted_over25_prob"`

	MatchProfile    MatchProfile    `json:"match_profile"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`

	// Swapped marks a cell returned from a reverse lookup: the caller asked
	// for (A, B) but the stored row is (B, A) and must be re-oriented.
	Swapped bool `json:"-"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Reorient flips a swapped cell into the requested (home, away) frame.
// Friction magnitude, chaos and goal predictions are frame-independent;
// the signed psychological edge is not. Unswapped cells pass through.
func (c *FrictionCell) Reorient() *FrictionCell {
	if c == nil || !c.Swapped {
		return c
	}
	out := *c
	out.TeamHome, out.TeamAway = c.TeamAway, c.TeamHome
	out.PsychologicalEdge = -c.PsychologicalEdge
	out.Swapped = false
	return &out
}
