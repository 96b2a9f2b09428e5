package agents

import (
	"testing"

	"tradedesk/models"
)

func singleState() *models.TraversalState {
	return &models.TraversalState{
		Mode:             models.ModeSingle,
		Ticker:           "AAPL",
		InvestmentDebate: models.NewInvestDebateState(),
		RiskDebate:       models.NewRiskDebateState(),
	}
}

func portfolioState(tickers ...string) *models.TraversalState {
	state := &models.TraversalState{
		Mode:              models.ModePortfolio,
		Tickers:           tickers,
		InvestmentDebates: make(map[string]*models.InvestDebateState),
		RiskDebates:       make(map[string]*models.RiskDebateState),
	}
	for _, ticker := range tickers {
		state.InvestmentDebates[ticker] = models.NewInvestDebateState()
		state.RiskDebates[ticker] = models.NewRiskDebateState()
	}
	return state
}

func TestIncrementDebateCountSingle(t *testing.T) {
	state := singleState()
	for i := 1; i <= 5; i++ {
		IncrementDebateCount(state)
		if state.InvestmentDebate.Count != i {
			t.Fatalf("after %d increments count = %d", i, state.InvestmentDebate.Count)
		}
	}
}

func TestIncrementDebateCountPortfolioFirstTicker(t *testing.T) {
	state := portfolioState("SPY", "AAPL")
	IncrementDebateCount(state)
	IncrementDebateCount(state)

	if state.InvestmentDebates["SPY"].Count != 2 {
		t.Fatalf("first ticker count = %d, want 2", state.InvestmentDebates["SPY"].Count)
	}
	if state.InvestmentDebates["AAPL"].Count != 0 {
		t.Fatalf("other ticker count = %d, want 0", state.InvestmentDebates["AAPL"].Count)
	}
}

func TestIncrementDebateCountMissingStateIsNoop(t *testing.T) {
	state := &models.TraversalState{}
	// Must not panic and must not invent a debate state.
	IncrementDebateCount(state)
	IncrementRiskCount(state)
	if state.InvestmentDebate != nil || state.RiskDebate != nil {
		t.Fatalf("no-op increment allocated state")
	}
	IncrementDebateCount(nil)
}

func TestIncrementRiskCount(t *testing.T) {
	state := singleState()
	IncrementRiskCount(state)
	IncrementRiskCount(state)
	IncrementRiskCount(state)
	if state.RiskDebate.Count != 3 {
		t.Fatalf("risk count = %d, want 3", state.RiskDebate.Count)
	}
	if state.InvestmentDebate.Count != 0 {
		t.Fatalf("risk increment touched debate count")
	}
}

func TestDebateRoundInfo(t *testing.T) {
	tests := []struct {
		count    int
		round    int
		step     int
		stepName string
	}{
		{0, 1, 0, "Bull"},
		{1, 1, 1, "Bear"},
		{2, 1, 2, "Bull Cross"},
		{3, 1, 3, "Bear Cross"},
		{4, 2, 0, "Bull"},
		{7, 2, 3, "Bear Cross"},
		{8, 3, 0, "Bull"},
	}

	for _, tt := range tests {
		state := singleState()
		state.InvestmentDebate.Count = tt.count
		info := DebateRoundInfo(state, "")
		if info.Round != tt.round || info.Step != tt.step || info.StepName != tt.stepName {
			t.Errorf("count=%d: got %+v, want round=%d step=%d name=%q",
				tt.count, info, tt.round, tt.step, tt.stepName)
		}
		if info.TotalSteps != tt.count {
			t.Errorf("count=%d: total steps = %d", tt.count, info.TotalSteps)
		}
	}
}

func TestDebateRoundInfoIdempotent(t *testing.T) {
	state := singleState()
	state.InvestmentDebate.Count = 5

	first := DebateRoundInfo(state, "")
	second := DebateRoundInfo(state, "")
	if first != second {
		t.Fatalf("round info drifted without an increment: %+v vs %+v", first, second)
	}
	if state.InvestmentDebate.Count != 5 {
		t.Fatalf("round info mutated the count")
	}
}

func TestDebateRoundInfoPortfolioTicker(t *testing.T) {
	state := portfolioState("SPY", "AAPL")
	state.InvestmentDebates["AAPL"].Count = 6

	info := DebateRoundInfo(state, "AAPL")
	if info.Round != 2 || info.Step != 2 || info.StepName != "Bull Cross" {
		t.Fatalf("got %+v", info)
	}

	// Default lookup follows the routing-relevant first ticker.
	info = DebateRoundInfo(state, "")
	if info.Round != 1 || info.Step != 0 {
		t.Fatalf("default lookup: got %+v", info)
	}
}

func TestDebateRoundInfoMissingState(t *testing.T) {
	info := DebateRoundInfo(&models.TraversalState{}, "")
	if info.Round != 0 || info.Step != 0 || info.StepName != "Bull" {
		t.Fatalf("missing state: got %+v", info)
	}
	info = DebateRoundInfo(portfolioState("SPY"), "UNKNOWN")
	if info.Round != 0 {
		t.Fatalf("unknown ticker: got %+v", info)
	}
}
