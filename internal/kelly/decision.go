package kelly

import "fmt"

// DecisionType tags the structural read of a match, orthogonal to the Kelly
// math. The decision narrows which market the stake targets.
type DecisionType string

const (
	DecisionChaosPlay    DecisionType = "CHAOS_PLAY"
	DecisionValueSecure  DecisionType = "VALUE_SECURE"
	DecisionTacticalLock DecisionType = "TACTICAL_LOCK"
	DecisionShootout     DecisionType = "SHOOTOUT"
	DecisionPureValue    DecisionType = "PURE_VALUE"
	DecisionNoEdge       DecisionType = "NO_EDGE"
)

// DecisionInput is the structural context the taxonomy reads.
type DecisionInput struct {
	ZEdge    float64
	Chaos    float64
	Friction float64
	XGTotal  float64
}

// Decision couples the type with the narrowed market and a display note.
type Decision struct {
	Type   DecisionType `json:"type"`
	Market string       `json:"market"`
	Note   string       `json:"note"`
}

// Classify applies the decision taxonomy in priority order.
func Classify(in DecisionInput) Decision {
	switch {
	case in.Chaos > 80:
		return Decision{
			Type:   DecisionChaosPlay,
			Market: "Over 3.0",
			Note:   fmt.Sprintf("CHAOS play: chaos potential %.0f, volatility priced in", in.Chaos),
		}
	case in.ZEdge > 2 && in.Friction < 60:
		return Decision{
			Type:   DecisionValueSecure,
			Market: "match-winner",
			Note:   fmt.Sprintf("Value secure: z=%.2f in a controlled match (friction %.0f)", in.ZEdge, in.Friction),
		}
	case in.Friction > 70 && in.XGTotal < 2.5:
		return Decision{
			Type:   DecisionTacticalLock,
			Market: "Under 2.5",
			Note:   fmt.Sprintf("Tactical lock: friction %.0f with only %.1f xG", in.Friction, in.XGTotal),
		}
	case in.XGTotal > 3.5:
		return Decision{
			Type:   DecisionShootout,
			Market: "Over 3.0",
			Note:   fmt.Sprintf("Shootout: %.1f combined xG", in.XGTotal),
		}
	case in.ZEdge > 1:
		return Decision{
			Type:   DecisionPureValue,
			Market: "match-winner",
			Note:   fmt.Sprintf("Pure value: z=%.2f", in.ZEdge),
		}
	case in.ZEdge < 0.5:
		return Decision{
			Type:   DecisionNoEdge,
			Market: "",
			Note:   fmt.Sprintf("No edge: z=%.2f below threshold", in.ZEdge),
		}
	default:
		return Decision{
			Type:   DecisionPureValue,
			Market: "match-winner",
			Note:   fmt.Sprintf("Marginal value: z=%.2f", in.ZEdge),
		}
	}
}
