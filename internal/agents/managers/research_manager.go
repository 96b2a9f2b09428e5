package managers

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

// NewResearchManagerNode wires the debate judge. It reads the full
// bull/bear exchange, rules on it, and turns the ruling into the
// ticker's investment plan.
func NewResearchManagerNode[I, O any](ctx context.Context, cfg *config.Config) *compose.Graph[I, O] {
	g := compose.NewGraph[I, O]()

	load := func(ctx context.Context, input I, opts ...any) (output []*schema.Message, err error) {
		err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
			ptl, err := utils.LoadPrompt("managers/research_manager")
			if err != nil {
				return err
			}

			reports := state.ReportsFor(state.CurrentTicker())
			if reports == nil {
				reports = &models.TickerReports{}
			}
			var history string
			if st := state.ActiveInvestDebate(); st != nil {
				history = strings.Join(st.History, "\n")
			}

			template := prompt.FromMessages(schema.FString, schema.UserMessage(ptl))
			output, err = template.Format(ctx, map[string]any{
				"ticker":                 state.CurrentTicker(),
				"trade_date":             state.TradeDate,
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
			decision := strings.TrimSpace(input.Content)

			if st := state.ActiveInvestDebate(); st != nil {
				st.JudgeDecision = decision
			}
			if r := state.ReportsFor(state.CurrentTicker()); r != nil {
				r.InvestmentPlan = decision
			}

			dir := filepath.Join(cfg.ResultsDir, state.CurrentTicker(), state.TradeDate)
			if err := utils.WriteMarkdown(dir, "investment_plan.md", decision); err != nil {
				log.Printf("[Managers] failed to write investment plan: %v", err)
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
