package trader

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

// NewTraderNode wires the trader: it turns the research manager's
// investment plan into a concrete trading plan for the ticker.
func NewTraderNode[I, O any](ctx context.Context, cfg *config.Config) *compose.Graph[I, O] {
	g := compose.NewGraph[I, O]()

	load := func(ctx context.Context, input I, opts ...any) (output []*schema.Message, err error) {
		err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
			ptl, err := utils.LoadPrompt("trader/trader")
			if err != nil {
				return err
			}

			reports := state.ReportsFor(state.CurrentTicker())
			if reports == nil {
				reports = &models.TickerReports{}
			}

			template := prompt.FromMessages(schema.FString, schema.UserMessage(ptl))
			output, err = template.Format(ctx, map[string]any{
				"ticker":                 state.CurrentTicker(),
				"trade_date":             state.TradeDate,
				"investment_plan":        reports.InvestmentPlan,
				"market_research_report": reports.MarketReport,
				"sentiment_report":       reports.SentimentReport,
				"news_report":            reports.NewsReport,
				"fundamentals_report":    reports.FundamentalsReport,
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
			plan := strings.TrimSpace(input.Content)
			if r := state.ReportsFor(state.CurrentTicker()); r != nil {
				r.TraderInvestmentPlan = plan
			}

			dir := filepath.Join(cfg.ResultsDir, state.CurrentTicker(), state.TradeDate)
			if err := utils.WriteMarkdown(dir, "trader_plan.md", plan); err != nil {
				log.Printf("[Trader] failed to write trader plan: %v", err)
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
