package analysts

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"tradedesk/config"
	"tradedesk/consts"
	"tradedesk/internal/tools"
	"tradedesk/models"
)

func NewMarketAnalystNode[I, O any](ctx context.Context, cfg *config.Config, tk *tools.Toolkit) *compose.Graph[I, O] {
	return newAnalystNode[I, O](ctx, cfg, "analysts/market_analyst", tk)
}

// FinalizeMarketReport stores the market analyst's final reply as the
// ticker's market report and flips its completion flag.
func FinalizeMarketReport(cfg *config.Config) func(*models.TraversalState, string) {
	return func(state *models.TraversalState, content string) {
		ticker := state.CurrentTicker()
		if r := state.ReportsFor(ticker); r != nil {
			r.MarketReport = content
		}
		state.MarkAnalystDone(consts.RoleMarket, ticker)
		writeReport(cfg, state, "market_report.md", content)
	}
}
