package graph

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"tradedesk/consts"
	"tradedesk/models"
)

// Propagator builds the initial traversal state for a run. Every call
// allocates fresh sub-states so concurrent runs can never share a
// debate counter or report bundle.
type Propagator struct{}

func NewPropagator() *Propagator {
	return &Propagator{}
}

// CreateSingleState builds the state for a single-ticker run: one
// global investment debate, one global risk debate, one report bundle
// keyed by the symbol, everything zeroed.
func (p *Propagator) CreateSingleState(symbol, tradeDate string) *models.TraversalState {
	owned := []string{symbol}
	return &models.TraversalState{
		Mode: models.ModeSingle,
		Messages: []*schema.Message{
			schema.UserMessage(symbol),
		},
		Ticker:           symbol,
		TradeDate:        tradeDate,
		InvestmentDebate: models.NewInvestDebateState(),
		RiskDebate:       models.NewRiskDebateState(),
		Reports: map[string]*models.TickerReports{
			symbol: {},
		},
		AnalystCompletion:    emptyCompletion(consts.AnalystRoles, owned),
		ResearcherCompletion: emptyCompletion(consts.ResearcherRoles, owned),
		RiskCompletion:       emptyCompletion(consts.RiskRoles, owned),
		Goto:                 consts.MarketAnalyst,
	}
}

// CreatePortfolioState builds the state for a multi-ticker run. The
// returned state is self-consistent: every ticker in the list has
// exactly one entry in every per-ticker map, with counts at 0 and all
// completion flags false. The conditional logic relies on that and
// never guards lookups for tickers it got from the list itself.
func (p *Propagator) CreatePortfolioState(tickers []string, tradeDate string) *models.TraversalState {
	owned := append([]string(nil), tickers...)

	state := &models.TraversalState{
		Mode: models.ModePortfolio,
		Messages: []*schema.Message{
			schema.UserMessage(fmt.Sprintf("Portfolio analysis for: %s", strings.Join(owned, ", "))),
		},
		Tickers:              owned,
		TradeDate:            tradeDate,
		CurrentTickerIndex:   0,
		InvestmentDebates:    make(map[string]*models.InvestDebateState, len(owned)),
		RiskDebates:          make(map[string]*models.RiskDebateState, len(owned)),
		Reports:              make(map[string]*models.TickerReports, len(owned)),
		AnalystCompletion:    emptyCompletion(consts.AnalystRoles, owned),
		ResearcherCompletion: emptyCompletion(consts.ResearcherRoles, owned),
		RiskCompletion:       emptyCompletion(consts.RiskRoles, owned),
		Goto:                 consts.MarketAnalyst,
	}

	for _, ticker := range owned {
		state.InvestmentDebates[ticker] = models.NewInvestDebateState()
		state.RiskDebates[ticker] = models.NewRiskDebateState()
		state.Reports[ticker] = &models.TickerReports{}
	}

	return state
}

func emptyCompletion(roles, tickers []string) map[string]map[string]bool {
	completion := make(map[string]map[string]bool, len(roles))
	for _, role := range roles {
		byTicker := make(map[string]bool, len(tickers))
		for _, ticker := range tickers {
			byTicker[ticker] = false
		}
		completion[role] = byTicker
	}
	return completion
}
