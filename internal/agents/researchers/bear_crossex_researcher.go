package researchers

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"tradedesk/config"
	"tradedesk/consts"
	"tradedesk/models"
)

func NewBearCrossexResearcherNode[I, O any](ctx context.Context, cfg *config.Config) *compose.Graph[I, O] {
	return newResearcherNode[I, O](ctx, cfg,
		"researchers/bear_crossex_researcher", "Bear Cross-Examiner", consts.RoleBearCrossex, "bear_crossex_report.md",
		func(st *models.InvestDebateState, labeled string) {
			st.BearCrossexHistory = append(st.BearCrossexHistory, labeled)
		})
}
