package researchers

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

// newResearcherNode wires one debate participant: load the stance
// prompt with the reports and debate history, run the model, and
// record the argument. The debate counter advances exactly once per
// invocation; the cycle position is derived from it by the branch
// that follows this node.
func newResearcherNode[I, O any](ctx context.Context, cfg *config.Config, promptPath, label, roleKey, reportFile string,
	record func(*models.InvestDebateState, string)) *compose.Graph[I, O] {

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
			var history, currentResponse string
			if st := state.ActiveInvestDebate(); st != nil {
				history = strings.Join(st.History, "\n")
				currentResponse = st.CurrentResponse
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
				"current_response":       currentResponse,
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

			if st := state.ActiveInvestDebate(); st != nil {
				st.History = append(st.History, labeled)
				record(st, labeled)
				st.CurrentResponse = labeled
			}
			agents.IncrementDebateCount(state)
			state.MarkResearcherDone(roleKey, state.CurrentTicker())

			info := agents.DebateRoundInfo(state, "")
			log.Printf("[Researchers] %s spoke, debate round %d step %d (%s)",
				label, info.Round, info.Step, info.StepName)

			dir := filepath.Join(cfg.ResultsDir, state.CurrentTicker(), state.TradeDate)
			if err := utils.WriteMarkdown(dir, reportFile, labeled); err != nil {
				log.Printf("[Researchers] failed to write %s: %v", reportFile, err)
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
