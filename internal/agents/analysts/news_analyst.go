package analysts

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"tradedesk/config"
	"tradedesk/consts"
	"tradedesk/internal/tools"
	"tradedesk/models"
)

func NewNewsAnalystNode[I, O any](ctx context.Context, cfg *config.Config, tk *tools.Toolkit) *compose.Graph[I, O] {
	return newAnalystNode[I, O](ctx, cfg, "analysts/news_analyst", tk)
}

func FinalizeNewsReport(cfg *config.Config) func(*models.TraversalState, string) {
	return func(state *models.TraversalState, content string) {
		ticker := state.CurrentTicker()
		if r := state.ReportsFor(ticker); r != nil {
			r.NewsReport = content
		}
		state.MarkAnalystDone(consts.RoleNews, ticker)
		writeReport(cfg, state, "news_report.md", content)
	}
}
