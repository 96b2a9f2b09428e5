package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradedesk/config"
	"tradedesk/internal/graph"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "tradedesk",
		Short: "tradedesk - multi-agent trading analysis",
		Long: `tradedesk runs a multi-agent trading desk: analysts gather market,
sentiment, news and fundamentals reports, researchers debate the
investment case, a trader drafts the plan, and a risk team rules on it.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
			}
			return cfg.EnsureDirectories()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveSession(cfg)
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(cfg))
	rootCmd.AddCommand(newPortfolioCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return rootCmd
}

func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [SYMBOL]",
		Short: "Run the full desk pipeline for one stock symbol",
		Long: `Run a complete analysis for one ticker.
Example: tradedesk analyze AAPL --date=2026-03-16`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			return runAnalyze(cfg, args[0], date)
		},
	}

	cmd.Flags().String("date", "", "Trading date in YYYY-MM-DD format (today if not provided)")
	return cmd
}

func newPortfolioCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio [SYMBOL...]",
		Short: "Analyze several symbols and optimize the allocation",
		Long: `Run the per-ticker pipeline over every symbol and finish with
portfolio optimization.
Example: tradedesk portfolio AAPL MSFT NVDA --date=2026-03-16`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			return runPortfolio(cfg, args, date)
		},
	}

	cmd.Flags().String("date", "", "Trading date in YYYY-MM-DD format (today if not provided)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("tradedesk v0.1.0")
		},
	}
}

func runAnalyze(cfg *config.Config, symbol, date string) error {
	tg, err := graph.NewTradingAgentsGraph(cfg)
	if err != nil {
		return err
	}
	if cfg.GraphDebugEnabled {
		if err := tg.StartDebugServer(); err != nil {
			return err
		}
	}

	PrintRunHeader(symbol, date)
	state, decision, err := tg.Propagate(cmdContext(), symbol, date)
	if err != nil {
		return err
	}
	PrintSingleResult(state, decision)
	return nil
}

func runPortfolio(cfg *config.Config, tickers []string, date string) error {
	tg, err := graph.NewTradingAgentsGraph(cfg)
	if err != nil {
		return err
	}
	if cfg.GraphDebugEnabled {
		if err := tg.StartDebugServer(); err != nil {
			return err
		}
	}

	PrintRunHeader(fmt.Sprintf("%d tickers", len(tickers)), date)
	state, err := tg.PropagatePortfolio(cmdContext(), tickers, date)
	if err != nil {
		return err
	}
	PrintPortfolioResult(state)
	return nil
}
