package agents

import (
	"tradedesk/models"
)

// IncrementDebateCount advances the applicable investment debate
// counter by exactly one and returns the state. Call it once per
// debate-participant invocation; the routing ceilings assume that
// arithmetic. In portfolio mode the first ticker's debate state is
// the one that drives routing, so that is the counter advanced here.
// A state with no debate sub-state is left untouched.
func IncrementDebateCount(state *models.TraversalState) *models.TraversalState {
	if state == nil {
		return state
	}
	if st := state.ActiveInvestDebate(); st != nil {
		st.Count++
	}
	return state
}

// IncrementRiskCount mirrors IncrementDebateCount for the risk
// discussion counter.
func IncrementRiskCount(state *models.TraversalState) *models.TraversalState {
	if state == nil {
		return state
	}
	if st := state.ActiveRiskDebate(); st != nil {
		st.Count++
	}
	return state
}

// RoundInfo is a human-readable view of debate progress, used for
// labels and logs only. Routing re-derives its own cycle position.
type RoundInfo struct {
	Round      int    `json:"round"`
	Step       int    `json:"step"`
	TotalSteps int    `json:"total_steps"`
	StepName   string `json:"step_name"`
}

var debateStepNames = [4]string{"Bull", "Bear", "Bull Cross", "Bear Cross"}

// DebateRoundInfo derives round and step labels from a debate counter
// without mutating anything. Pass a ticker to inspect that ticker's
// debate in portfolio mode; an empty ticker falls back to the state
// that drives routing. A state with no matching debate reports round 0.
func DebateRoundInfo(state *models.TraversalState, ticker string) RoundInfo {
	var st *models.InvestDebateState
	if state != nil {
		if ticker != "" && state.InvestmentDebates != nil {
			st = state.InvestmentDebates[ticker]
		} else {
			st = state.ActiveInvestDebate()
		}
	}
	if st == nil {
		return RoundInfo{StepName: debateStepNames[0]}
	}
	return RoundInfo{
		Round:      st.Count/4 + 1,
		Step:       st.Count % 4,
		TotalSteps: st.Count,
		StepName:   debateStepNames[st.Count%4],
	}
}
