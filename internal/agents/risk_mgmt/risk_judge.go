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
	"tradedesk/internal/tools"
	"tradedesk/internal/utils"
	"tradedesk/models"
)

// NewRiskJudgeNode wires the risk judge. The judge can consult market
// tools before ruling, so its reply is only appended here; the
// verdict is lifted off the message log by the message-clear node
// once no tool calls remain.
func NewRiskJudgeNode[I, O any](ctx context.Context, cfg *config.Config, tk *tools.Toolkit) *compose.Graph[I, O] {
	g := compose.NewGraph[I, O]()

	chatModel, err := agents.NewToolCallingModel(ctx, cfg, tk.Infos())
	if err != nil {
		log.Printf("[RiskMgmt] tool model unavailable, using shared model: %v", err)
		chatModel = agents.ChatModel
	}

	load := func(ctx context.Context, input I, opts ...any) (output []*schema.Message, err error) {
		err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
			ptl, err := utils.LoadPrompt("risk_mgmt/risk_judge")
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

			template := prompt.FromMessages(schema.FString,
				schema.SystemMessage(ptl),
				schema.MessagesPlaceholder("conversation", true),
			)
			output, err = template.Format(ctx, map[string]any{
				"ticker":                 state.CurrentTicker(),
				"trade_date":             state.TradeDate,
				"trader_investment_plan": reports.TraderInvestmentPlan,
				"history":                history,
				"conversation":           state.Messages,
			})
			return err
		})
		return output, err
	}

	router := func(ctx context.Context, input *schema.Message, opts ...any) (output string, err error) {
		err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
			if input != nil {
				state.Messages = append(state.Messages, input)
			}
			return nil
		})
		return "ok", err
	}

	_ = g.AddLambdaNode("load", compose.InvokableLambdaWithOption(load))
	_ = g.AddChatModelNode("agent", chatModel)
	_ = g.AddLambdaNode("router", compose.InvokableLambdaWithOption(router))

	_ = g.AddEdge(compose.START, "load")
	_ = g.AddEdge("load", "agent")
	_ = g.AddEdge("agent", "router")
	_ = g.AddEdge("router", compose.END)

	return g
}

// FinalizeRiskJudgeDecision records the judge's ruling: it becomes
// the risk debate's judge decision, the ticker's final trade decision,
// and the run's trading decision. The ticker is marked fully analyzed.
func FinalizeRiskJudgeDecision(cfg *config.Config) func(*models.TraversalState, string) {
	return func(state *models.TraversalState, content string) {
		ticker := state.CurrentTicker()

		if st := state.ActiveRiskDebate(); st != nil {
			st.JudgeDecision = content
		}
		if r := state.ReportsFor(ticker); r != nil {
			r.FinalTradeDecision = content
			r.AnalysisComplete = true
		}
		state.Decision = &models.TradingDecision{
			Symbol:    ticker,
			Date:      state.TradeDate,
			Action:    ParseAction(content),
			Reasoning: content,
		}

		dir := filepath.Join(cfg.ResultsDir, ticker, state.TradeDate)
		if err := utils.WriteMarkdown(dir, "final_trade_decision.md", content); err != nil {
			log.Printf("[RiskMgmt] failed to write final decision: %v", err)
		}
	}
}

// ParseAction extracts the BUY/SELL/HOLD verdict from a ruling. The
// first action word wins; an unreadable ruling defaults to HOLD.
func ParseAction(content string) string {
	upper := strings.ToUpper(content)
	best := -1
	action := "HOLD"
	for _, candidate := range []string{"BUY", "SELL", "HOLD"} {
		if idx := strings.Index(upper, candidate); idx >= 0 && (best == -1 || idx < best) {
			best = idx
			action = candidate
		}
	}
	return action
}
