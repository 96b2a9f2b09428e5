package graph

import (
	"strings"

	"tradedesk/consts"
	"tradedesk/models"
)

// ConditionalLogic decides which node runs next at every branch point
// of the trading graph. It is pure: it reads counters and report
// fields off the traversal state and returns a node name, nothing
// else. Missing sub-states never panic; every lookup degrades to the
// "not started" case.
type ConditionalLogic struct {
	MaxDebateRounds      int
	MaxRiskDiscussRounds int
}

// NewConditionalLogic builds the router. Round limits below 1 are
// raised to 1 so the ceilings stay positive.
func NewConditionalLogic(maxDebateRounds, maxRiskDiscussRounds int) *ConditionalLogic {
	if maxDebateRounds < 1 {
		maxDebateRounds = 1
	}
	if maxRiskDiscussRounds < 1 {
		maxRiskDiscussRounds = 1
	}
	return &ConditionalLogic{
		MaxDebateRounds:      maxDebateRounds,
		MaxRiskDiscussRounds: maxRiskDiscussRounds,
	}
}

// debateSequence is one investment debate round: four speakers, in order.
var debateSequence = [4]string{
	consts.BullResearcher,
	consts.BearResearcher,
	consts.BullCrossexResearcher,
	consts.BearCrossexResearcher,
}

// riskSequence is one risk discussion round: three postures, in order.
var riskSequence = [3]string{
	consts.RiskyAnalyst,
	consts.SafeAnalyst,
	consts.NeutralAnalyst,
}

// NextAfterToolCall closes an analyst's tool loop. If the most recent
// message still carries pending tool calls the role's tool node runs
// next, otherwise its message-clear node does. Purely reactive on the
// last message's shape; no counter involved.
func (cl *ConditionalLogic) NextAfterToolCall(state *models.TraversalState, role string) string {
	if lastMessageHasToolCalls(state) {
		return "tools_" + role
	}
	return "Msg Clear " + clearTitle(role)
}

// NextDebateNode advances the investment debate. The ceiling check
// runs before the cyclic dispatch, so any count at or past
// 4*MaxDebateRounds terminates no matter how far it overshot.
func (cl *ConditionalLogic) NextDebateNode(state *models.TraversalState) string {
	count := debateCount(state)
	if count >= 4*cl.MaxDebateRounds {
		return consts.ResearchManager
	}
	return debateSequence[count%4]
}

// NextRiskNode advances the risk discussion, same shape as the
// investment debate with a cycle of three.
func (cl *ConditionalLogic) NextRiskNode(state *models.TraversalState) string {
	count := riskCount(state)
	if count >= 3*cl.MaxRiskDiscussRounds {
		return consts.RiskJudge
	}
	return riskSequence[count%3]
}

// NextPortfolioFlow routes into the optimization phase. Once an
// optimization result is on the state the flow ends; before that a
// run with more than one ticker gets the multi-ticker optimizer and
// everything else, including the degenerate empty-list case, falls
// back to the single-ticker one.
func (cl *ConditionalLogic) NextPortfolioFlow(state *models.TraversalState) string {
	if state == nil {
		return consts.PortfolioOptimizer
	}
	if state.PortfolioOptimization != nil {
		return consts.End
	}
	if len(state.Tickers) > 1 {
		return consts.MultiTickerPortfolioOptimizer
	}
	return consts.PortfolioOptimizer
}

// NextTickerAnalysis drives the per-ticker iteration of a portfolio
// run: keep analyzing the current ticker until its seven reports are
// filled, then advance, and hand over to portfolio optimization once
// the cursor walks off the end.
func (cl *ConditionalLogic) NextTickerAnalysis(state *models.TraversalState) string {
	if state == nil {
		return consts.PortfolioOptimization
	}
	idx := state.CurrentTickerIndex
	if idx >= len(state.Tickers) {
		return consts.PortfolioOptimization
	}
	reports := state.ReportsFor(state.Tickers[idx])
	if !reports.Complete() {
		return consts.ContinueAnalysis
	}
	if idx == len(state.Tickers)-1 {
		return consts.PortfolioOptimization
	}
	return consts.NextTicker
}

// debateCount reads the routing-relevant debate counter: the first
// ticker's in portfolio mode, the global one in single mode, zero
// when neither exists.
func debateCount(state *models.TraversalState) int {
	if state == nil {
		return 0
	}
	if st := state.ActiveInvestDebate(); st != nil {
		return st.Count
	}
	return 0
}

func riskCount(state *models.TraversalState) int {
	if state == nil {
		return 0
	}
	if st := state.ActiveRiskDebate(); st != nil {
		return st.Count
	}
	return 0
}

func lastMessageHasToolCalls(state *models.TraversalState) bool {
	if state == nil || len(state.Messages) == 0 {
		return false
	}
	last := state.Messages[len(state.Messages)-1]
	return last != nil && len(last.ToolCalls) > 0
}

// clearTitle maps a role key onto its message-clear node suffix:
// "market" -> "Market", "Risk Judge" -> "Risk Judge".
func clearTitle(role string) string {
	words := strings.Fields(role)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
