package managers

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/shopspring/decimal"

	"tradedesk/config"
	"tradedesk/internal/agents/risk_mgmt"
	"tradedesk/internal/utils"
	"tradedesk/models"
)

// NewPortfolioOptimizerNode wires the single-asset optimizer: the
// whole allocation goes to the one analyzed ticker, and the run's
// optimization state is filled so the flow can terminate.
func NewPortfolioOptimizerNode[I, O any](ctx context.Context, cfg *config.Config) *compose.Graph[I, O] {
	g := compose.NewGraph[I, O]()

	run := func(ctx context.Context, input I, opts ...any) (output string, err error) {
		err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
			ticker := state.CurrentTicker()
			weights := map[string]decimal.Decimal{}
			if ticker != "" {
				weights[ticker] = decimal.NewFromInt(1)
			}
			state.PortfolioOptimization = &models.PortfolioOptimizationState{
				Method:      "single_asset",
				Weights:     weights,
				Summary:     summarizeWeights(weights, state),
				OptimizedAt: time.Now().Format(time.RFC3339),
			}
			writeOptimizationReport(cfg, state)
			return nil
		})
		return "optimized", err
	}

	_ = g.AddLambdaNode("run", compose.InvokableLambdaWithOption(run))
	_ = g.AddEdge(compose.START, "run")
	_ = g.AddEdge("run", compose.END)

	return g
}

// NewMultiTickerPortfolioOptimizerNode wires the portfolio optimizer
// for runs with several tickers. Weights come from the per-ticker
// trade decisions; tickers the desk would sell get no allocation.
func NewMultiTickerPortfolioOptimizerNode[I, O any](ctx context.Context, cfg *config.Config) *compose.Graph[I, O] {
	g := compose.NewGraph[I, O]()

	run := func(ctx context.Context, input I, opts ...any) (output string, err error) {
		err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
			weights, method := ComputePortfolioWeights(state)
			state.PortfolioOptimization = &models.PortfolioOptimizationState{
				Method:      method,
				Weights:     weights,
				Summary:     summarizeWeights(weights, state),
				OptimizedAt: time.Now().Format(time.RFC3339),
			}
			writeOptimizationReport(cfg, state)
			return nil
		})
		return "optimized", err
	}

	_ = g.AddLambdaNode("run", compose.InvokableLambdaWithOption(run))
	_ = g.AddEdge(compose.START, "run")
	_ = g.AddEdge("run", compose.END)

	return g
}

// ComputePortfolioWeights scores each ticker by its final trade
// decision (BUY 2, HOLD 1, SELL 0) and normalizes the scores into
// weights. When every score is zero it falls back to equal weights.
func ComputePortfolioWeights(state *models.TraversalState) (map[string]decimal.Decimal, string) {
	weights := map[string]decimal.Decimal{}
	if state == nil || len(state.Tickers) == 0 {
		return weights, "equal_weight"
	}

	scores := map[string]decimal.Decimal{}
	total := decimal.Zero
	for _, ticker := range state.Tickers {
		score := decimal.NewFromInt(1)
		if r := state.ReportsFor(ticker); r != nil {
			switch risk_mgmt.ParseAction(r.FinalTradeDecision) {
			case "BUY":
				score = decimal.NewFromInt(2)
			case "SELL":
				score = decimal.Zero
			}
		}
		scores[ticker] = score
		total = total.Add(score)
	}

	if total.IsZero() {
		equal := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(len(state.Tickers))))
		for _, ticker := range state.Tickers {
			weights[ticker] = equal
		}
		return weights, "equal_weight"
	}

	for _, ticker := range state.Tickers {
		weights[ticker] = scores[ticker].Div(total)
	}
	return weights, "decision_weighted"
}

func summarizeWeights(weights map[string]decimal.Decimal, state *models.TraversalState) string {
	if len(weights) == 0 {
		return "no positions allocated"
	}
	tickers := make([]string, 0, len(weights))
	for ticker := range weights {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Portfolio allocation for %s:\n", state.TradeDate))
	for _, ticker := range tickers {
		b.WriteString(fmt.Sprintf("- %s: %s\n", ticker, weights[ticker].Round(4).String()))
	}
	return b.String()
}

func writeOptimizationReport(cfg *config.Config, state *models.TraversalState) {
	opt := state.PortfolioOptimization
	if opt == nil {
		return
	}
	dir := filepath.Join(cfg.ResultsDir, "portfolio", state.TradeDate)
	if err := utils.WriteMarkdown(dir, "portfolio_optimization.md", opt.Summary); err != nil {
		log.Printf("[Managers] failed to write optimization report: %v", err)
	}
}
