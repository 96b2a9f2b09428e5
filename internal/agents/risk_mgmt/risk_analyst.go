package risk_mgmt

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"tradedesk/config"
	"tradedesk/internal/agents"
	"tradedesk/internal/utils"
	"tradedesk/models"
)

// newRiskAnalystNode wires one risk-discussion participant. Same
// shape as a researcher node, but it records onto the risk debate
// state and advances the risk counter.
func newRiskAnalystNode[I, O any](ctx context.Context, cfg *config.Config, promptPath, label, nodeName, roleKey, reportFile string,
	record func(*models.RiskDebateState, string)) *compose.Graph[I, O] {

	g := compose.NewGraph[I, O]()

	load := func(ctx context.Context, input I, opts ...any) (output []*schema.Message, err error) {
		err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
			ptl, err := utils.LoadPrompt(promptPath)
			if err != nil {
				return err
			}

			reports := state.ReportsFor(state.CurrentTicker())
			if reports == nil {
				reports = &models.TickerReports{}
			}
			var history string
			if st := state.ActiveRiskDebate(); st != nil {
				history = strings.Join(st.History, "\n")
			}

			template := prompt.FromMessages(schema.FString, schema.UserMessage(ptl))
			output, err = template.Format(ctx, map[string]any{
				"ticker":                 state.CurrentTicker(),
				"trade_date":             state.TradeDate,
				"trader_investment_plan": reports.TraderInvestmentPlan,
				"market_research_report": reports.MarketReport,
				"sentiment_report":       reports.SentimentReport,
				"news_report":            reports.NewsReport,
				"fundamentals_report":    reports.FundamentalsReport,
				"history":                history,
			})
			return err
		})
		return output, err
	}

	router := func(ctx context.Context, input *schema.Message, opts ...any) (output string, err error) {
		err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
			if input == nil {
				return nil
			}
			argument := strings.TrimSpace(input.Content)
			if argument == "" {
				argument = "(no argument provided)"
			}
			labeled := label + ": " + argument

			if st := state.ActiveRiskDebate(); st != nil {
				st.History = append(st.History, labeled)
				record(st, labeled)
				st.LatestSpeaker = nodeName
			}
			agents.IncrementRiskCount(state)
			state.MarkRiskDone(roleKey, state.CurrentTicker())

			dir := filepath.Join(cfg.ResultsDir, state.CurrentTicker(), state.TradeDate)
			if err := utils.WriteMarkdown(dir, reportFile, labeled); err != nil {
				log.Printf("[RiskMgmt] failed to write %s: %v", reportFile, err)
			}
			return nil
		})
		return "ok", err
	}

	_ = g.AddLambdaNode("load", compose.InvokableLambdaWithOption(load))
	_ = g.AddChatModelNode("agent", agents.ChatModel)
	_ = g.AddLambdaNode("router", compose.InvokableLambdaWithOption(router))

	_ = g.AddEdge(compose.START, "load")
	_ = g.AddEdge("load", "agent")
	_ = g.AddEdge("agent", "router")
	_ = g.AddEdge("router", compose.END)

	return g
}
