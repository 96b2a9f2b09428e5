package graph

import (
	"testing"

	"tradedesk/consts"
	"tradedesk/models"
)

func TestCreateSingleState(t *testing.T) {
	state := NewPropagator().CreateSingleState("NVDA", "2024-03-01")

	if state.Mode != models.ModeSingle {
		t.Fatalf("mode = %q, want %q", state.Mode, models.ModeSingle)
	}
	if state.Ticker != "NVDA" || state.TradeDate != "2024-03-01" {
		t.Fatalf("ticker/date = %q/%q", state.Ticker, state.TradeDate)
	}
	if state.InvestmentDebate == nil || state.InvestmentDebate.Count != 0 {
		t.Fatalf("investment debate not zeroed: %+v", state.InvestmentDebate)
	}
	if state.RiskDebate == nil || state.RiskDebate.Count != 0 {
		t.Fatalf("risk debate not zeroed: %+v", state.RiskDebate)
	}
	if len(state.InvestmentDebate.History) != 0 || len(state.RiskDebate.History) != 0 {
		t.Fatalf("histories not empty")
	}
	reports := state.ReportsFor("NVDA")
	if reports == nil {
		t.Fatalf("no report bundle for symbol")
	}
	if reports.Complete() {
		t.Fatalf("fresh reports must not be complete")
	}
	if len(state.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(state.Messages))
	}
	if state.Goto != consts.MarketAnalyst {
		t.Fatalf("goto = %q, want %q", state.Goto, consts.MarketAnalyst)
	}
	for _, role := range consts.AnalystRoles {
		if done := state.AnalystCompletion[role]["NVDA"]; done {
			t.Errorf("analyst %q initialized done", role)
		}
	}
}

func TestCreatePortfolioStateShapeConsistency(t *testing.T) {
	tickers := []string{"SPY", "AAPL", "TSLA", "QQQ"}
	state := NewPropagator().CreatePortfolioState(tickers, "2024-03-01")

	if state.Mode != models.ModePortfolio {
		t.Fatalf("mode = %q, want %q", state.Mode, models.ModePortfolio)
	}
	if state.CurrentTickerIndex != 0 {
		t.Fatalf("cursor = %d, want 0", state.CurrentTickerIndex)
	}

	for _, ticker := range tickers {
		debate, ok := state.InvestmentDebates[ticker]
		if !ok || debate.Count != 0 {
			t.Errorf("%s: investment debate missing or not zeroed", ticker)
		}
		risk, ok := state.RiskDebates[ticker]
		if !ok || risk.Count != 0 {
			t.Errorf("%s: risk debate missing or not zeroed", ticker)
		}
		reports, ok := state.Reports[ticker]
		if !ok {
			t.Errorf("%s: report bundle missing", ticker)
			continue
		}
		if reports.AnalysisComplete || reports.Complete() {
			t.Errorf("%s: reports not empty", ticker)
		}
	}

	completionMaps := map[string]map[string]map[string]bool{
		"analyst":    state.AnalystCompletion,
		"researcher": state.ResearcherCompletion,
		"risk":       state.RiskCompletion,
	}
	roleSets := map[string][]string{
		"analyst":    consts.AnalystRoles,
		"researcher": consts.ResearcherRoles,
		"risk":       consts.RiskRoles,
	}
	for team, completion := range completionMaps {
		for _, role := range roleSets[team] {
			byTicker, ok := completion[role]
			if !ok {
				t.Errorf("%s completion missing role %q", team, role)
				continue
			}
			if len(byTicker) != len(tickers) {
				t.Errorf("%s/%s: %d entries, want %d", team, role, len(byTicker), len(tickers))
			}
			for _, ticker := range tickers {
				done, ok := byTicker[ticker]
				if !ok {
					t.Errorf("%s/%s: missing ticker %q", team, role, ticker)
				}
				if done {
					t.Errorf("%s/%s/%s: initialized true", team, role, ticker)
				}
			}
		}
	}
}

func TestCreatePortfolioStateEmptyTickerList(t *testing.T) {
	state := NewPropagator().CreatePortfolioState(nil, "2024-03-01")
	if len(state.Tickers) != 0 {
		t.Fatalf("tickers = %v, want empty", state.Tickers)
	}
	cl := NewConditionalLogic(1, 1)
	if got := cl.NextTickerAnalysis(state); got != consts.PortfolioOptimization {
		t.Fatalf("empty portfolio: got %q, want %q", got, consts.PortfolioOptimization)
	}
	if got := cl.NextPortfolioFlow(state); got != consts.PortfolioOptimizer {
		t.Fatalf("empty portfolio flow: got %q, want %q", got, consts.PortfolioOptimizer)
	}
}

func TestCreatePortfolioStateNoAliasing(t *testing.T) {
	tickers := []string{"SPY", "AAPL"}
	p := NewPropagator()
	a := p.CreatePortfolioState(tickers, "2024-03-01")
	b := p.CreatePortfolioState(tickers, "2024-03-01")

	a.InvestmentDebates["SPY"].Count = 7
	a.RiskDebates["SPY"].Count = 5
	a.Reports["SPY"].MarketReport = "mutated"
	a.AnalystCompletion[consts.RoleMarket]["SPY"] = true
	a.Tickers[0] = "XXX"

	if b.InvestmentDebates["SPY"].Count != 0 {
		t.Errorf("debate state aliased across calls")
	}
	if b.RiskDebates["SPY"].Count != 0 {
		t.Errorf("risk state aliased across calls")
	}
	if b.Reports["SPY"].MarketReport != "" {
		t.Errorf("report bundle aliased across calls")
	}
	if b.AnalystCompletion[consts.RoleMarket]["SPY"] {
		t.Errorf("completion map aliased across calls")
	}
	if b.Tickers[0] != "SPY" {
		t.Errorf("ticker slice aliased across calls")
	}
}

func TestCreatePortfolioStateCopiesCallerSlice(t *testing.T) {
	tickers := []string{"SPY", "AAPL"}
	state := NewPropagator().CreatePortfolioState(tickers, "2024-03-01")
	tickers[0] = "MUTATED"
	if state.Tickers[0] != "SPY" {
		t.Fatalf("state shares caller's ticker slice")
	}
}
