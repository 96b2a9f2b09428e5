package graph

import (
	"context"
	"fmt"
	"log"
	"time"

	"tradedesk/config"
	"tradedesk/internal/agents"
	"tradedesk/internal/debug"
	"tradedesk/models"
)

// TradingAgentsGraph is the entry point for running the desk: it owns
// the config, builds fresh traversal state per run, and drives the
// compiled orchestrator over it.
type TradingAgentsGraph struct {
	config     *config.Config
	propagator *Propagator
	debugger   *debug.GraphDebugger
}

func NewTradingAgentsGraph(cfg *config.Config) (*TradingAgentsGraph, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	if agents.ChatModel == nil {
		if err := agents.InitChatModel(context.Background(), cfg); err != nil {
			return nil, fmt.Errorf("init chat model: %w", err)
		}
	}

	return &TradingAgentsGraph{
		config:     cfg,
		propagator: NewPropagator(),
	}, nil
}

// Propagate runs a full single-ticker analysis and returns the final
// state plus the desk's trading decision.
func (g *TradingAgentsGraph) Propagate(ctx context.Context, symbol, date string) (*models.TraversalState, *models.TradingDecision, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, nil, fmt.Errorf("invalid date format %q: %v", date, err)
	}
	if symbol == "" {
		return nil, nil, fmt.Errorf("symbol cannot be empty")
	}

	state := g.propagator.CreateSingleState(symbol, date)
	if err := g.run(ctx, state, symbol); err != nil {
		return nil, nil, err
	}
	return state, state.Decision, nil
}

// PropagatePortfolio runs the per-ticker pipeline over every symbol
// and finishes with portfolio optimization.
func (g *TradingAgentsGraph) PropagatePortfolio(ctx context.Context, tickers []string, date string) (*models.TraversalState, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date format %q: %v", date, err)
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("ticker list cannot be empty")
	}

	state := g.propagator.CreatePortfolioState(tickers, date)
	if err := g.run(ctx, state, "portfolio"); err != nil {
		return nil, err
	}
	return state, nil
}

func (g *TradingAgentsGraph) run(ctx context.Context, state *models.TraversalState, label string) error {
	orchestrator, err := NewTradingOrchestrator(ctx, g.config, func(ctx context.Context) *models.TraversalState {
		return state
	})
	if err != nil {
		return fmt.Errorf("build orchestrator: %w", err)
	}

	if g.config.Debug {
		log.Printf("[TradingGraph] starting %s run for %s", state.Mode, label)
	}
	if _, err := orchestrator.Invoke(ctx, label); err != nil {
		return fmt.Errorf("orchestrator failed: %w", err)
	}
	if g.config.Debug {
		log.Printf("[TradingGraph] %s run finished for %s", state.Mode, label)
	}
	return nil
}

// StartDebugServer brings up the eino devops debugger if enabled.
func (g *TradingAgentsGraph) StartDebugServer() error {
	if g.debugger != nil {
		return fmt.Errorf("debug server is already running")
	}
	g.debugger = debug.NewGraphDebugger(g.config)
	return g.debugger.Initialize()
}

func (g *TradingAgentsGraph) IsDebugRunning() bool {
	return g.debugger != nil && g.debugger.IsEnabled()
}
