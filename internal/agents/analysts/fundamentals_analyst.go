package analysts

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"tradedesk/config"
	"tradedesk/consts"
	"tradedesk/internal/tools"
	"tradedesk/models"
)

func NewFundamentalsAnalystNode[I, O any](ctx context.Context, cfg *config.Config, tk *tools.Toolkit) *compose.Graph[I, O] {
	return newAnalystNode[I, O](ctx, cfg, "analysts/fundamentals_analyst", tk)
}

func FinalizeFundamentalsReport(cfg *config.Config) func(*models.TraversalState, string) {
	return func(state *models.TraversalState, content string) {
		ticker := state.CurrentTicker()
		if r := state.ReportsFor(ticker); r != nil {
			r.FundamentalsReport = content
		}
		state.MarkAnalystDone(consts.RoleFundamentals, ticker)
		writeReport(cfg, state, "fundamentals_report.md", content)
	}
}
