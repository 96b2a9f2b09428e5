package researchers

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"tradedesk/config"
	"tradedesk/consts"
	"tradedesk/models"
)

func NewBullResearcherNode[I, O any](ctx context.Context, cfg *config.Config) *compose.Graph[I, O] {
	return newResearcherNode[I, O](ctx, cfg,
		"researchers/bull_researcher", "Bull Analyst", consts.RoleBull, "bull_researcher_report.md",
		func(st *models.InvestDebateState, labeled string) {
			st.BullHistory = append(st.BullHistory, labeled)
		})
}
