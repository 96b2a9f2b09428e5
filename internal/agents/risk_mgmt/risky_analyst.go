package risk_mgmt

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"tradedesk/config"
	"tradedesk/consts"
	"tradedesk/models"
)

func NewRiskyAnalystNode[I, O any](ctx context.Context, cfg *config.Config) *compose.Graph[I, O] {
	return newRiskAnalystNode[I, O](ctx, cfg,
		"risk_mgmt/risky_analyst", "Risky Analyst", consts.RiskyAnalyst, consts.RoleAggressive, "risky_analyst_report.md",
		func(st *models.RiskDebateState, labeled string) {
			st.RiskyHistory = append(st.RiskyHistory, labeled)
			st.CurrentRiskyResponse = labeled
		})
}
