package graph

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/compose"

	"tradedesk/config"
	"tradedesk/consts"
	"tradedesk/internal/agents"
	"tradedesk/internal/agents/analysts"
	"tradedesk/internal/agents/managers"
	"tradedesk/internal/agents/researchers"
	"tradedesk/internal/agents/risk_mgmt"
	"tradedesk/internal/agents/trader"
	"tradedesk/internal/tools"
	"tradedesk/models"
)

// orchestratorBuilder holds what the branch functions close over.
type orchestratorBuilder struct {
	cfg *config.Config
	cl  *ConditionalLogic
}

// NewTradingOrchestrator compiles the full desk graph around a state
// generator. All routing runs through the conditional logic; the
// per-node payload is a plain string because every decision reads the
// shared traversal state instead.
func NewTradingOrchestrator(ctx context.Context, cfg *config.Config, genFunc compose.GenLocalState[*models.TraversalState]) (compose.Runnable[string, string], error) {
	b := &orchestratorBuilder{
		cfg: cfg,
		cl:  NewConditionalLogic(cfg.MaxDebateRounds, cfg.MaxRiskDiscussRounds),
	}

	marketTk, err := tools.MarketToolkit(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("market toolkit: %w", err)
	}
	newsTk, err := tools.NewsToolkit(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("news toolkit: %w", err)
	}

	g := compose.NewGraph[string, string](
		compose.WithGenLocalState(genFunc),
	)

	// Analyst team: each analyst has a tool node and a msg-clear node
	// closing its loop.
	_ = g.AddGraphNode(consts.MarketAnalyst, analysts.NewMarketAnalystNode[string, string](ctx, cfg, marketTk), compose.WithNodeName(consts.MarketAnalyst))
	_ = g.AddGraphNode(consts.ToolsMarket, agents.NewToolsNode[string, string](ctx, marketTk), compose.WithNodeName(consts.ToolsMarket))
	_ = g.AddGraphNode(consts.MsgClearMarket, agents.NewMsgClearNode[string, string](ctx, analysts.FinalizeMarketReport(cfg)), compose.WithNodeName(consts.MsgClearMarket))

	_ = g.AddGraphNode(consts.SocialAnalyst, analysts.NewSocialAnalystNode[string, string](ctx, cfg, newsTk), compose.WithNodeName(consts.SocialAnalyst))
	_ = g.AddGraphNode(consts.ToolsSocial, agents.NewToolsNode[string, string](ctx, newsTk), compose.WithNodeName(consts.ToolsSocial))
	_ = g.AddGraphNode(consts.MsgClearSocial, agents.NewMsgClearNode[string, string](ctx, analysts.FinalizeSentimentReport(cfg)), compose.WithNodeName(consts.MsgClearSocial))

	_ = g.AddGraphNode(consts.NewsAnalyst, analysts.NewNewsAnalystNode[string, string](ctx, cfg, newsTk), compose.WithNodeName(consts.NewsAnalyst))
	_ = g.AddGraphNode(consts.ToolsNews, agents.NewToolsNode[string, string](ctx, newsTk), compose.WithNodeName(consts.ToolsNews))
	_ = g.AddGraphNode(consts.MsgClearNews, agents.NewMsgClearNode[string, string](ctx, analysts.FinalizeNewsReport(cfg)), compose.WithNodeName(consts.MsgClearNews))

	_ = g.AddGraphNode(consts.FundamentalsAnalyst, analysts.NewFundamentalsAnalystNode[string, string](ctx, cfg, marketTk), compose.WithNodeName(consts.FundamentalsAnalyst))
	_ = g.AddGraphNode(consts.ToolsFundamentals, agents.NewToolsNode[string, string](ctx, marketTk), compose.WithNodeName(consts.ToolsFundamentals))
	_ = g.AddGraphNode(consts.MsgClearFundamentals, agents.NewMsgClearNode[string, string](ctx, analysts.FinalizeFundamentalsReport(cfg)), compose.WithNodeName(consts.MsgClearFundamentals))

	// Research team.
	_ = g.AddGraphNode(consts.BullResearcher, researchers.NewBullResearcherNode[string, string](ctx, cfg), compose.WithNodeName(consts.BullResearcher))
	_ = g.AddGraphNode(consts.BearResearcher, researchers.NewBearResearcherNode[string, string](ctx, cfg), compose.WithNodeName(consts.BearResearcher))
	_ = g.AddGraphNode(consts.BullCrossexResearcher, researchers.NewBullCrossexResearcherNode[string, string](ctx, cfg), compose.WithNodeName(consts.BullCrossexResearcher))
	_ = g.AddGraphNode(consts.BearCrossexResearcher, researchers.NewBearCrossexResearcherNode[string, string](ctx, cfg), compose.WithNodeName(consts.BearCrossexResearcher))
	_ = g.AddGraphNode(consts.ResearchManager, managers.NewResearchManagerNode[string, string](ctx, cfg), compose.WithNodeName(consts.ResearchManager))

	// Trading and risk teams.
	_ = g.AddGraphNode(consts.Trader, trader.NewTraderNode[string, string](ctx, cfg), compose.WithNodeName(consts.Trader))
	_ = g.AddGraphNode(consts.RiskyAnalyst, risk_mgmt.NewRiskyAnalystNode[string, string](ctx, cfg), compose.WithNodeName(consts.RiskyAnalyst))
	_ = g.AddGraphNode(consts.SafeAnalyst, risk_mgmt.NewSafeAnalystNode[string, string](ctx, cfg), compose.WithNodeName(consts.SafeAnalyst))
	_ = g.AddGraphNode(consts.NeutralAnalyst, risk_mgmt.NewNeutralAnalystNode[string, string](ctx, cfg), compose.WithNodeName(consts.NeutralAnalyst))
	_ = g.AddGraphNode(consts.RiskJudge, risk_mgmt.NewRiskJudgeNode[string, string](ctx, cfg, marketTk), compose.WithNodeName(consts.RiskJudge))
	_ = g.AddGraphNode(consts.ToolsRiskJudge, agents.NewToolsNode[string, string](ctx, marketTk), compose.WithNodeName(consts.ToolsRiskJudge))
	_ = g.AddGraphNode(consts.MsgClearRiskJudge, agents.NewMsgClearNode[string, string](ctx, risk_mgmt.FinalizeRiskJudgeDecision(cfg)), compose.WithNodeName(consts.MsgClearRiskJudge))

	// Portfolio phase.
	_ = g.AddGraphNode(consts.NextTicker, b.newNextTickerNode(ctx), compose.WithNodeName(consts.NextTicker))
	_ = g.AddGraphNode(consts.PortfolioOptimizer, managers.NewPortfolioOptimizerNode[string, string](ctx, cfg), compose.WithNodeName(consts.PortfolioOptimizer))
	_ = g.AddGraphNode(consts.MultiTickerPortfolioOptimizer, managers.NewMultiTickerPortfolioOptimizerNode[string, string](ctx, cfg), compose.WithNodeName(consts.MultiTickerPortfolioOptimizer))

	// Analyst tool loops: analyst -> tools -> analyst until no tool
	// calls remain, then the msg-clear node hands over.
	_ = g.AddBranch(consts.MarketAnalyst, compose.NewGraphBranch(b.toolHandOff(consts.RoleMarket), toolOutMap(consts.ToolsMarket, consts.MsgClearMarket)))
	_ = g.AddEdge(consts.ToolsMarket, consts.MarketAnalyst)
	_ = g.AddBranch(consts.SocialAnalyst, compose.NewGraphBranch(b.toolHandOff(consts.RoleSocial), toolOutMap(consts.ToolsSocial, consts.MsgClearSocial)))
	_ = g.AddEdge(consts.ToolsSocial, consts.SocialAnalyst)
	_ = g.AddBranch(consts.NewsAnalyst, compose.NewGraphBranch(b.toolHandOff(consts.RoleNews), toolOutMap(consts.ToolsNews, consts.MsgClearNews)))
	_ = g.AddEdge(consts.ToolsNews, consts.NewsAnalyst)
	_ = g.AddBranch(consts.FundamentalsAnalyst, compose.NewGraphBranch(b.toolHandOff(consts.RoleFundamentals), toolOutMap(consts.ToolsFundamentals, consts.MsgClearFundamentals)))
	_ = g.AddEdge(consts.ToolsFundamentals, consts.FundamentalsAnalyst)

	// Analysis phase runs in a fixed order; the last msg-clear opens
	// the investment debate at whatever the counter says.
	_ = g.AddEdge(compose.START, consts.MarketAnalyst)
	_ = g.AddEdge(consts.MsgClearMarket, consts.SocialAnalyst)
	_ = g.AddEdge(consts.MsgClearSocial, consts.NewsAnalyst)
	_ = g.AddEdge(consts.MsgClearNews, consts.FundamentalsAnalyst)

	debateOutMap := map[string]bool{
		consts.BullResearcher:        true,
		consts.BearResearcher:        true,
		consts.BullCrossexResearcher: true,
		consts.BearCrossexResearcher: true,
		consts.ResearchManager:       true,
	}
	_ = g.AddBranch(consts.MsgClearFundamentals, compose.NewGraphBranch(b.debateHandOff, debateOutMap))
	_ = g.AddBranch(consts.BullResearcher, compose.NewGraphBranch(b.debateHandOff, debateOutMap))
	_ = g.AddBranch(consts.BearResearcher, compose.NewGraphBranch(b.debateHandOff, debateOutMap))
	_ = g.AddBranch(consts.BullCrossexResearcher, compose.NewGraphBranch(b.debateHandOff, debateOutMap))
	_ = g.AddBranch(consts.BearCrossexResearcher, compose.NewGraphBranch(b.debateHandOff, debateOutMap))

	_ = g.AddEdge(consts.ResearchManager, consts.Trader)

	riskOutMap := map[string]bool{
		consts.RiskyAnalyst:   true,
		consts.SafeAnalyst:    true,
		consts.NeutralAnalyst: true,
		consts.RiskJudge:      true,
	}
	_ = g.AddBranch(consts.Trader, compose.NewGraphBranch(b.riskHandOff, riskOutMap))
	_ = g.AddBranch(consts.RiskyAnalyst, compose.NewGraphBranch(b.riskHandOff, riskOutMap))
	_ = g.AddBranch(consts.SafeAnalyst, compose.NewGraphBranch(b.riskHandOff, riskOutMap))
	_ = g.AddBranch(consts.NeutralAnalyst, compose.NewGraphBranch(b.riskHandOff, riskOutMap))

	// The judge gets the same tool loop as the analysts.
	_ = g.AddBranch(consts.RiskJudge, compose.NewGraphBranch(b.toolHandOff(consts.RiskJudge), toolOutMap(consts.ToolsRiskJudge, consts.MsgClearRiskJudge)))
	_ = g.AddEdge(consts.ToolsRiskJudge, consts.RiskJudge)

	// After the judge rules, either iterate tickers or optimize.
	tickerOutMap := map[string]bool{
		consts.MarketAnalyst:                 true,
		consts.NextTicker:                    true,
		consts.PortfolioOptimizer:            true,
		consts.MultiTickerPortfolioOptimizer: true,
		compose.END:                          true,
	}
	_ = g.AddBranch(consts.MsgClearRiskJudge, compose.NewGraphBranch(b.tickerHandOff, tickerOutMap))
	_ = g.AddEdge(consts.NextTicker, consts.MarketAnalyst)

	portfolioOutMap := map[string]bool{
		consts.PortfolioOptimizer:            true,
		consts.MultiTickerPortfolioOptimizer: true,
		compose.END:                          true,
	}
	_ = g.AddBranch(consts.PortfolioOptimizer, compose.NewGraphBranch(b.portfolioHandOff, portfolioOutMap))
	_ = g.AddBranch(consts.MultiTickerPortfolioOptimizer, compose.NewGraphBranch(b.portfolioHandOff, portfolioOutMap))

	return g.Compile(ctx,
		compose.WithGraphName("tradedesk"),
		compose.WithNodeTriggerMode(compose.AnyPredecessor),
	)
}

func toolOutMap(toolsNode, msgClearNode string) map[string]bool {
	return map[string]bool{toolsNode: true, msgClearNode: true}
}

// toolHandOff closes one role's tool loop.
func (b *orchestratorBuilder) toolHandOff(role string) func(context.Context, string) (string, error) {
	return func(ctx context.Context, input string) (next string, err error) {
		err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
			next = b.cl.NextAfterToolCall(state, role)
			return nil
		})
		return next, err
	}
}

// debateHandOff advances the investment debate cycle.
func (b *orchestratorBuilder) debateHandOff(ctx context.Context, input string) (next string, err error) {
	err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
		next = b.cl.NextDebateNode(state)
		return nil
	})
	return next, err
}

// riskHandOff advances the risk discussion cycle.
func (b *orchestratorBuilder) riskHandOff(ctx context.Context, input string) (next string, err error) {
	err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
		next = b.cl.NextRiskNode(state)
		return nil
	})
	return next, err
}

// tickerHandOff runs after the judge's verdict is recorded. Single
// runs go straight to the portfolio flow; portfolio runs iterate the
// ticker list first.
func (b *orchestratorBuilder) tickerHandOff(ctx context.Context, input string) (next string, err error) {
	err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
		if state.Mode != models.ModePortfolio {
			next = endAware(b.cl.NextPortfolioFlow(state))
			return nil
		}
		switch b.cl.NextTickerAnalysis(state) {
		case consts.ContinueAnalysis:
			next = consts.MarketAnalyst
		case consts.NextTicker:
			next = consts.NextTicker
		default:
			next = endAware(b.cl.NextPortfolioFlow(state))
		}
		return nil
	})
	return next, err
}

// portfolioHandOff runs after an optimizer; with the optimization
// state filled it always ends the run.
func (b *orchestratorBuilder) portfolioHandOff(ctx context.Context, input string) (next string, err error) {
	err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
		next = endAware(b.cl.NextPortfolioFlow(state))
		return nil
	})
	return next, err
}

// endAware maps the router's END sentinel onto the framework's.
func endAware(node string) string {
	if node == consts.End {
		return compose.END
	}
	return node
}

// newNextTickerNode advances the portfolio cursor to the next symbol.
func (b *orchestratorBuilder) newNextTickerNode(ctx context.Context) *compose.Graph[string, string] {
	g := compose.NewGraph[string, string]()

	run := func(ctx context.Context, input string, opts ...any) (output string, err error) {
		err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
			state.CurrentTickerIndex++
			if state.CurrentTickerIndex < len(state.Tickers) {
				log.Printf("[Graph] moving on to ticker %s (%d/%d)",
					state.Tickers[state.CurrentTickerIndex], state.CurrentTickerIndex+1, len(state.Tickers))
			}
			return nil
		})
		return "advanced", err
	}

	_ = g.AddLambdaNode("run", compose.InvokableLambdaWithOption(run))
	_ = g.AddEdge(compose.START, "run")
	_ = g.AddEdge("run", compose.END)

	return g
}
