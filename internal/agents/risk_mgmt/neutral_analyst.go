package risk_mgmt

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"tradedesk/config"
	"tradedesk/consts"
	"tradedesk/models"
)

func NewNeutralAnalystNode[I, O any](ctx context.Context, cfg *config.Config) *compose.Graph[I, O] {
	return newRiskAnalystNode[I, O](ctx, cfg,
		"risk_mgmt/neutral_analyst", "Neutral Analyst", consts.NeutralAnalyst, consts.RoleNeutral, "neutral_analyst_report.md",
		func(st *models.RiskDebateState, labeled string) {
			st.NeutralHistory = append(st.NeutralHistory, labeled)
			st.CurrentNeutralResponse = labeled
		})
}
