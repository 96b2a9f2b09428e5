package researchers

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"tradedesk/config"
	"tradedesk/consts"
	"tradedesk/models"
)

func NewBearResearcherNode[I, O any](ctx context.Context, cfg *config.Config) *compose.Graph[I, O] {
	return newResearcherNode[I, O](ctx, cfg,
		"researchers/bear_researcher", "Bear Analyst", consts.RoleBear, "bear_researcher_report.md",
		func(st *models.InvestDebateState, labeled string) {
			st.BearHistory = append(st.BearHistory, labeled)
		})
}
