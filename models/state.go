package models

import (
	"github.com/cloudwego/eino/schema"
	"github.com/shopspring/decimal"
)

// Mode tags a TraversalState as a single-ticker or portfolio run.
// The conditional logic and the propagator switch on the tag instead
// of probing for field presence.
type Mode string

const (
	ModeSingle    Mode = "single"
	ModePortfolio Mode = "portfolio"
)

// InvestDebateState tracks one bull/bear investment debate.
// Count increases by exactly 1 each time a debate participant finishes;
// histories are append-only.
type InvestDebateState struct {
	History             []string `json:"history"`
	BullHistory         []string `json:"bull_history"`
	BearHistory         []string `json:"bear_history"`
	BullCrossexHistory  []string `json:"bull_crossex_history"`
	BearCrossexHistory  []string `json:"bear_crossex_history"`
	CurrentResponse     string   `json:"current_response"`
	JudgeDecision       string   `json:"judge_decision"`
	Count               int      `json:"count"`
}

// NewInvestDebateState returns a zeroed debate state with empty logs.
func NewInvestDebateState() *InvestDebateState {
	return &InvestDebateState{
		History:            []string{},
		BullHistory:        []string{},
		BearHistory:        []string{},
		BullCrossexHistory: []string{},
		BearCrossexHistory: []string{},
	}
}

// RiskDebateState tracks one risky/safe/neutral risk discussion.
type RiskDebateState struct {
	History                []string `json:"history"`
	RiskyHistory           []string `json:"risky_history"`
	SafeHistory            []string `json:"safe_history"`
	NeutralHistory         []string `json:"neutral_history"`
	LatestSpeaker          string   `json:"latest_speaker"`
	CurrentRiskyResponse   string   `json:"current_risky_response"`
	CurrentSafeResponse    string   `json:"current_safe_response"`
	CurrentNeutralResponse string   `json:"current_neutral_response"`
	JudgeDecision          string   `json:"judge_decision"`
	Count                  int      `json:"count"`
}

// NewRiskDebateState returns a zeroed risk debate state with empty logs.
func NewRiskDebateState() *RiskDebateState {
	return &RiskDebateState{
		History:        []string{},
		RiskyHistory:   []string{},
		SafeHistory:    []string{},
		NeutralHistory: []string{},
	}
}

// TickerReports bundles every report an agent produces for one ticker.
// A ticker counts as fully analyzed once all seven report fields are
// non-empty.
type TickerReports struct {
	MarketReport         string `json:"market_report"`
	FundamentalsReport   string `json:"fundamentals_report"`
	SentimentReport      string `json:"sentiment_report"`
	NewsReport           string `json:"news_report"`
	InvestmentPlan       string `json:"investment_plan"`
	TraderInvestmentPlan string `json:"trader_investment_plan"`
	FinalTradeDecision   string `json:"final_trade_decision"`
	AnalysisComplete     bool   `json:"analysis_complete"`
}

// Complete reports whether every report field has been filled in.
func (r *TickerReports) Complete() bool {
	if r == nil {
		return false
	}
	return r.MarketReport != "" &&
		r.FundamentalsReport != "" &&
		r.SentimentReport != "" &&
		r.NewsReport != "" &&
		r.InvestmentPlan != "" &&
		r.TraderInvestmentPlan != "" &&
		r.FinalTradeDecision != ""
}

// PortfolioOptimizationState holds the optimizer's output. Its mere
// presence on the traversal state means optimization has run.
type PortfolioOptimizationState struct {
	Method      string                     `json:"method"`
	Weights     map[string]decimal.Decimal `json:"weights"`
	Summary     string                     `json:"summary"`
	OptimizedAt string                     `json:"optimized_at"`
}

// TraversalState is the single mutable object threaded through the
// whole agent graph. Each node mutates only its own role's sub-state
// and advances at most one count or completion flag per invocation;
// the conditional logic only ever reads.
type TraversalState struct {
	Mode      Mode              `json:"mode"`
	Messages  []*schema.Message `json:"messages"`
	TradeDate string            `json:"trade_date"`

	// Single-ticker run
	Ticker           string             `json:"ticker,omitempty"`
	InvestmentDebate *InvestDebateState `json:"investment_debate_state,omitempty"`
	RiskDebate       *RiskDebateState   `json:"risk_debate_state,omitempty"`

	// Portfolio run
	Tickers            []string                      `json:"tickers,omitempty"`
	CurrentTickerIndex int                           `json:"current_ticker_index"`
	InvestmentDebates  map[string]*InvestDebateState `json:"investment_debate_states,omitempty"`
	RiskDebates        map[string]*RiskDebateState   `json:"risk_debate_states,omitempty"`

	// Per-ticker report bundles, keyed by symbol in both modes.
	Reports map[string]*TickerReports `json:"individual_reports,omitempty"`

	// role -> ticker -> done, never reset during a run.
	AnalystCompletion    map[string]map[string]bool `json:"analyst_completion,omitempty"`
	ResearcherCompletion map[string]map[string]bool `json:"researcher_completion,omitempty"`
	RiskCompletion       map[string]map[string]bool `json:"risk_completion,omitempty"`

	PortfolioOptimization *PortfolioOptimizationState `json:"portfolio_optimization_state,omitempty"`
	Decision              *TradingDecision            `json:"decision,omitempty"`

	// Entry node of the run, seeded by the propagator.
	Goto string `json:"goto"`
}

// CurrentTicker returns the symbol the run is working on right now.
// In portfolio mode that is the ticker under the iteration cursor;
// past the end it falls back to the last ticker.
func (s *TraversalState) CurrentTicker() string {
	if s.Mode == ModePortfolio || len(s.Tickers) > 0 {
		if len(s.Tickers) == 0 {
			return ""
		}
		idx := s.CurrentTickerIndex
		if idx >= len(s.Tickers) {
			idx = len(s.Tickers) - 1
		}
		return s.Tickers[idx]
	}
	return s.Ticker
}

// ReportsFor returns the report bundle for a ticker, or nil if the
// state has no entry for it. Callers must treat nil as "not complete".
func (s *TraversalState) ReportsFor(ticker string) *TickerReports {
	if s.Reports == nil {
		return nil
	}
	return s.Reports[ticker]
}

// ActiveInvestDebate resolves the debate state that drives routing:
// the global one in single mode, the first ticker's in portfolio mode.
// Returns nil when no debate state exists; callers treat that as count 0.
func (s *TraversalState) ActiveInvestDebate() *InvestDebateState {
	if len(s.Tickers) > 0 && s.InvestmentDebates != nil {
		return s.InvestmentDebates[s.Tickers[0]]
	}
	return s.InvestmentDebate
}

// ActiveRiskDebate mirrors ActiveInvestDebate for the risk discussion.
func (s *TraversalState) ActiveRiskDebate() *RiskDebateState {
	if len(s.Tickers) > 0 && s.RiskDebates != nil {
		return s.RiskDebates[s.Tickers[0]]
	}
	return s.RiskDebate
}

// MarkAnalystDone flips the completion flag for one analyst role and
// ticker. Missing maps are tolerated so partial states stay safe.
func (s *TraversalState) MarkAnalystDone(role, ticker string) {
	if s.AnalystCompletion == nil {
		return
	}
	if byTicker, ok := s.AnalystCompletion[role]; ok {
		byTicker[ticker] = true
	}
}

// MarkResearcherDone flips the completion flag for one researcher role.
func (s *TraversalState) MarkResearcherDone(role, ticker string) {
	if s.ResearcherCompletion == nil {
		return
	}
	if byTicker, ok := s.ResearcherCompletion[role]; ok {
		byTicker[ticker] = true
	}
}

// MarkRiskDone flips the completion flag for one risk debator role.
func (s *TraversalState) MarkRiskDone(role, ticker string) {
	if s.RiskCompletion == nil {
		return
	}
	if byTicker, ok := s.RiskCompletion[role]; ok {
		byTicker[ticker] = true
	}
}
