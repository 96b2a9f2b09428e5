package analysts

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"tradedesk/config"
	"tradedesk/consts"
	"tradedesk/internal/tools"
	"tradedesk/models"
)

func NewSocialAnalystNode[I, O any](ctx context.Context, cfg *config.Config, tk *tools.Toolkit) *compose.Graph[I, O] {
	return newAnalystNode[I, O](ctx, cfg, "analysts/social_analyst", tk)
}

func FinalizeSentimentReport(cfg *config.Config) func(*models.TraversalState, string) {
	return func(state *models.TraversalState, content string) {
		ticker := state.CurrentTicker()
		if r := state.ReportsFor(ticker); r != nil {
			r.SentimentReport = content
		}
		state.MarkAnalystDone(consts.RoleSocial, ticker)
		writeReport(cfg, state, "sentiment_report.md", content)
	}
}
