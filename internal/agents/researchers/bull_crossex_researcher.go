package researchers

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"tradedesk/config"
	"tradedesk/consts"
	"tradedesk/models"
)

// The bull cross-examiner rebuts the bear case rather than restating
// the bull one; its prompt sees the same debate history.
func NewBullCrossexResearcherNode[I, O any](ctx context.Context, cfg *config.Config) *compose.Graph[I, O] {
	return newResearcherNode[I, O](ctx, cfg,
		"researchers/bull_crossex_researcher", "Bull Cross-Examiner", consts.RoleBullCrossex, "bull_crossex_report.md",
		func(st *models.InvestDebateState, labeled string) {
			st.BullCrossexHistory = append(st.BullCrossexHistory, labeled)
		})
}
