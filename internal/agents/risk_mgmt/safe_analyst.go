package risk_mgmt

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"tradedesk/config"
	"tradedesk/consts"
	"tradedesk/models"
)

func NewSafeAnalystNode[I, O any](ctx context.Context, cfg *config.Config) *compose.Graph[I, O] {
	return newRiskAnalystNode[I, O](ctx, cfg,
		"risk_mgmt/safe_analyst", "Safe Analyst", consts.SafeAnalyst, consts.RoleConservative, "safe_analyst_report.md",
		func(st *models.RiskDebateState, labeled string) {
			st.SafeHistory = append(st.SafeHistory, labeled)
			st.CurrentSafeResponse = labeled
		})
}
