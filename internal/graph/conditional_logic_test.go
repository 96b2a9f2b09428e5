package graph

import (
	"testing"

	"github.com/cloudwego/eino/schema"

	"tradedesk/consts"
	"tradedesk/models"
)

func singleStateWithDebateCount(count int) *models.TraversalState {
	state := NewPropagator().CreateSingleState("AAPL", "2024-01-15")
	state.InvestmentDebate.Count = count
	return state
}

func singleStateWithRiskCount(count int) *models.TraversalState {
	state := NewPropagator().CreateSingleState("AAPL", "2024-01-15")
	state.RiskDebate.Count = count
	return state
}

func TestNextDebateNodeCycle(t *testing.T) {
	cl := NewConditionalLogic(2, 1)
	want := []string{
		consts.BullResearcher,
		consts.BearResearcher,
		consts.BullCrossexResearcher,
		consts.BearCrossexResearcher,
	}

	for count := 0; count < 4*cl.MaxDebateRounds; count++ {
		got := cl.NextDebateNode(singleStateWithDebateCount(count))
		if got != want[count%4] {
			t.Errorf("count=%d: got %q, want %q", count, got, want[count%4])
		}
	}
}

func TestNextDebateNodeTerminates(t *testing.T) {
	for _, rounds := range []int{1, 2, 3, 5} {
		cl := NewConditionalLogic(rounds, 1)
		ceiling := 4 * rounds
		for count := ceiling; count <= 1000; count++ {
			got := cl.NextDebateNode(singleStateWithDebateCount(count))
			if got != consts.ResearchManager {
				t.Fatalf("rounds=%d count=%d: got %q, want %q", rounds, count, got, consts.ResearchManager)
			}
		}
	}
}

func TestNextDebateNodeOffCycleCountsStillTerminate(t *testing.T) {
	// Counts past the ceiling that are not multiples of 4 must not
	// re-enter the cycle.
	cl := NewConditionalLogic(1, 1)
	for _, count := range []int{4, 5, 6, 7, 9, 13, 101, 1000} {
		if got := cl.NextDebateNode(singleStateWithDebateCount(count)); got != consts.ResearchManager {
			t.Errorf("count=%d: got %q, want %q", count, got, consts.ResearchManager)
		}
	}
}

func TestNextDebateNodeMissingStateDefaultsToZero(t *testing.T) {
	cl := NewConditionalLogic(1, 1)
	if got := cl.NextDebateNode(&models.TraversalState{}); got != consts.BullResearcher {
		t.Fatalf("empty state: got %q, want %q", got, consts.BullResearcher)
	}
	if got := cl.NextDebateNode(nil); got != consts.BullResearcher {
		t.Fatalf("nil state: got %q, want %q", got, consts.BullResearcher)
	}
}

func TestNextDebateNodePortfolioUsesFirstTicker(t *testing.T) {
	cl := NewConditionalLogic(1, 1)
	state := NewPropagator().CreatePortfolioState([]string{"SPY", "AAPL"}, "2024-01-15")

	state.InvestmentDebates["SPY"].Count = 1
	state.InvestmentDebates["AAPL"].Count = 3

	if got := cl.NextDebateNode(state); got != consts.BearResearcher {
		t.Fatalf("got %q, want %q (first ticker drives the count)", got, consts.BearResearcher)
	}
}

func TestNextRiskNodeCycle(t *testing.T) {
	cl := NewConditionalLogic(1, 3)
	want := []string{
		consts.RiskyAnalyst,
		consts.SafeAnalyst,
		consts.NeutralAnalyst,
	}

	for count := 0; count < 3*cl.MaxRiskDiscussRounds; count++ {
		got := cl.NextRiskNode(singleStateWithRiskCount(count))
		if got != want[count%3] {
			t.Errorf("count=%d: got %q, want %q", count, got, want[count%3])
		}
	}
}

func TestNextRiskNodeTerminates(t *testing.T) {
	cl := NewConditionalLogic(1, 1)
	for _, count := range []int{3, 4, 5, 10, 100, 200, 500, 1000} {
		if got := cl.NextRiskNode(singleStateWithRiskCount(count)); got != consts.RiskJudge {
			t.Errorf("count=%d: got %q, want %q", count, got, consts.RiskJudge)
		}
	}
}

func TestNextRiskNodeTwoRoundScenario(t *testing.T) {
	// With two discussion rounds the three-way cycle repeats twice
	// before the judge takes over at count 6.
	cl := NewConditionalLogic(1, 2)
	want := []string{
		consts.RiskyAnalyst, consts.SafeAnalyst, consts.NeutralAnalyst,
		consts.RiskyAnalyst, consts.SafeAnalyst, consts.NeutralAnalyst,
	}
	for count, node := range want {
		if got := cl.NextRiskNode(singleStateWithRiskCount(count)); got != node {
			t.Errorf("count=%d: got %q, want %q", count, got, node)
		}
	}
	if got := cl.NextRiskNode(singleStateWithRiskCount(6)); got != consts.RiskJudge {
		t.Errorf("count=6: got %q, want %q", got, consts.RiskJudge)
	}
}

func TestNextPortfolioFlow(t *testing.T) {
	cl := NewConditionalLogic(1, 1)

	tests := []struct {
		name  string
		state *models.TraversalState
		want  string
	}{
		{"single ticker", &models.TraversalState{Tickers: []string{"SPY"}}, consts.PortfolioOptimizer},
		{"multi ticker", &models.TraversalState{Tickers: []string{"SPY", "AAPL", "TSLA"}}, consts.MultiTickerPortfolioOptimizer},
		{"empty ticker list", &models.TraversalState{Tickers: []string{}}, consts.PortfolioOptimizer},
		{"no tickers at all", &models.TraversalState{}, consts.PortfolioOptimizer},
		{"nil state", nil, consts.PortfolioOptimizer},
		{
			"optimization already ran",
			&models.TraversalState{
				Tickers:               []string{"SPY", "AAPL"},
				PortfolioOptimization: &models.PortfolioOptimizationState{Method: "equal_weight"},
			},
			consts.End,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cl.NextPortfolioFlow(tt.state); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func fillReports(r *models.TickerReports) {
	r.MarketReport = "market"
	r.FundamentalsReport = "fundamentals"
	r.SentimentReport = "sentiment"
	r.NewsReport = "news"
	r.InvestmentPlan = "plan"
	r.TraderInvestmentPlan = "trader plan"
	r.FinalTradeDecision = "BUY"
}

func TestNextTickerAnalysis(t *testing.T) {
	cl := NewConditionalLogic(1, 1)
	tickers := []string{"SPY", "AAPL", "TSLA"}

	t.Run("current ticker incomplete", func(t *testing.T) {
		state := NewPropagator().CreatePortfolioState(tickers, "2024-01-15")
		if got := cl.NextTickerAnalysis(state); got != consts.ContinueAnalysis {
			t.Fatalf("got %q, want %q", got, consts.ContinueAnalysis)
		}
	})

	t.Run("current ticker complete, more remain", func(t *testing.T) {
		state := NewPropagator().CreatePortfolioState(tickers, "2024-01-15")
		fillReports(state.Reports["SPY"])
		if got := cl.NextTickerAnalysis(state); got != consts.NextTicker {
			t.Fatalf("got %q, want %q", got, consts.NextTicker)
		}
	})

	t.Run("partially filled reports still count as incomplete", func(t *testing.T) {
		state := NewPropagator().CreatePortfolioState(tickers, "2024-01-15")
		state.Reports["SPY"].MarketReport = "market"
		state.Reports["SPY"].InvestmentPlan = "plan"
		if got := cl.NextTickerAnalysis(state); got != consts.ContinueAnalysis {
			t.Fatalf("got %q, want %q", got, consts.ContinueAnalysis)
		}
	})

	t.Run("last ticker complete", func(t *testing.T) {
		state := NewPropagator().CreatePortfolioState(tickers, "2024-01-15")
		state.CurrentTickerIndex = 2
		fillReports(state.Reports["TSLA"])
		if got := cl.NextTickerAnalysis(state); got != consts.PortfolioOptimization {
			t.Fatalf("got %q, want %q", got, consts.PortfolioOptimization)
		}
	})

	t.Run("cursor beyond last ticker", func(t *testing.T) {
		state := NewPropagator().CreatePortfolioState(tickers, "2024-01-15")
		state.CurrentTickerIndex = 3
		if got := cl.NextTickerAnalysis(state); got != consts.PortfolioOptimization {
			t.Fatalf("got %q, want %q", got, consts.PortfolioOptimization)
		}
	})

	t.Run("missing report entry never panics", func(t *testing.T) {
		state := &models.TraversalState{Tickers: []string{"SPY"}}
		if got := cl.NextTickerAnalysis(state); got != consts.ContinueAnalysis {
			t.Fatalf("got %q, want %q", got, consts.ContinueAnalysis)
		}
	})
}

func TestNextAfterToolCall(t *testing.T) {
	cl := NewConditionalLogic(1, 1)

	pending := &models.TraversalState{
		Messages: []*schema.Message{
			{
				Role: schema.Assistant,
				ToolCalls: []schema.ToolCall{
					{ID: "call-1", Function: schema.FunctionCall{Name: "get_market_data"}},
				},
			},
		},
	}
	done := &models.TraversalState{
		Messages: []*schema.Message{
			{Role: schema.Assistant, Content: "analysis finished"},
		},
	}

	tests := []struct {
		role      string
		wantTools string
		wantClear string
	}{
		{consts.RoleMarket, consts.ToolsMarket, consts.MsgClearMarket},
		{consts.RoleSocial, consts.ToolsSocial, consts.MsgClearSocial},
		{consts.RoleNews, consts.ToolsNews, consts.MsgClearNews},
		{consts.RoleFundamentals, consts.ToolsFundamentals, consts.MsgClearFundamentals},
		{consts.RiskJudge, consts.ToolsRiskJudge, consts.MsgClearRiskJudge},
	}

	for _, tt := range tests {
		if got := cl.NextAfterToolCall(pending, tt.role); got != tt.wantTools {
			t.Errorf("role=%q pending: got %q, want %q", tt.role, got, tt.wantTools)
		}
		if got := cl.NextAfterToolCall(done, tt.role); got != tt.wantClear {
			t.Errorf("role=%q done: got %q, want %q", tt.role, got, tt.wantClear)
		}
	}

	if got := cl.NextAfterToolCall(&models.TraversalState{}, consts.RoleMarket); got != consts.MsgClearMarket {
		t.Errorf("no messages: got %q, want %q", got, consts.MsgClearMarket)
	}
}

func TestNewConditionalLogicClampsRounds(t *testing.T) {
	cl := NewConditionalLogic(0, -3)
	if cl.MaxDebateRounds != 1 || cl.MaxRiskDiscussRounds != 1 {
		t.Fatalf("got %d/%d, want 1/1", cl.MaxDebateRounds, cl.MaxRiskDiscussRounds)
	}
}

func TestRouterIsReadOnly(t *testing.T) {
	cl := NewConditionalLogic(2, 2)
	state := NewPropagator().CreatePortfolioState([]string{"SPY", "AAPL"}, "2024-01-15")
	state.InvestmentDebates["SPY"].Count = 3
	state.RiskDebates["SPY"].Count = 2

	for i := 0; i < 5; i++ {
		cl.NextDebateNode(state)
		cl.NextRiskNode(state)
		cl.NextTickerAnalysis(state)
		cl.NextPortfolioFlow(state)
	}

	if state.InvestmentDebates["SPY"].Count != 3 {
		t.Errorf("debate count mutated: %d", state.InvestmentDebates["SPY"].Count)
	}
	if state.RiskDebates["SPY"].Count != 2 {
		t.Errorf("risk count mutated: %d", state.RiskDebates["SPY"].Count)
	}
	if state.CurrentTickerIndex != 0 {
		t.Errorf("ticker cursor mutated: %d", state.CurrentTickerIndex)
	}
}
