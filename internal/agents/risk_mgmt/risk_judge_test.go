package risk_mgmt

import (
	"testing"

	"tradedesk/config"
	"tradedesk/models"
)

func TestParseAction(t *testing.T) {
	cases := []struct {
		content string
		want    string
	}{
		{"BUY: the setup is clean", "BUY"},
		{"Final verdict: SELL into strength", "SELL"},
		{"HOLD until earnings clear", "HOLD"},
		{"I would sell, not buy, at these levels", "SELL"},
		{"no verdict word at all", "HOLD"},
		{"", "HOLD"},
	}
	for _, tc := range cases {
		if got := ParseAction(tc.content); got != tc.want {
			t.Errorf("ParseAction(%q) = %q, want %q", tc.content, got, tc.want)
		}
	}
}

func TestFinalizeRiskJudgeDecision(t *testing.T) {
	cfg := config.DefaultConfigWithRoot(t.TempDir())
	state := &models.TraversalState{
		Mode:       models.ModeSingle,
		Ticker:     "AAPL",
		TradeDate:  "2026-03-16",
		RiskDebate: models.NewRiskDebateState(),
		Reports: map[string]*models.TickerReports{
			"AAPL": {},
		},
	}

	FinalizeRiskJudgeDecision(cfg)(state, "BUY: risk is manageable")

	if state.RiskDebate.JudgeDecision != "BUY: risk is manageable" {
		t.Errorf("judge decision = %q", state.RiskDebate.JudgeDecision)
	}
	reports := state.ReportsFor("AAPL")
	if reports.FinalTradeDecision != "BUY: risk is manageable" {
		t.Errorf("final trade decision = %q", reports.FinalTradeDecision)
	}
	if !reports.AnalysisComplete {
		t.Error("AnalysisComplete not set")
	}
	if state.Decision == nil {
		t.Fatal("no trading decision recorded")
	}
	if state.Decision.Action != "BUY" || state.Decision.Symbol != "AAPL" {
		t.Errorf("decision = %+v", state.Decision)
	}
}

func TestFinalizeRiskJudgeDecisionToleratesMissingSubStates(t *testing.T) {
	cfg := config.DefaultConfigWithRoot(t.TempDir())
	state := &models.TraversalState{
		Mode:      models.ModeSingle,
		Ticker:    "AAPL",
		TradeDate: "2026-03-16",
	}

	// Must not panic with no risk debate and no report entry.
	FinalizeRiskJudgeDecision(cfg)(state, "HOLD")

	if state.Decision == nil || state.Decision.Action != "HOLD" {
		t.Fatalf("decision = %+v", state.Decision)
	}
}
