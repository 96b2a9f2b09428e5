package cli

import (
	"context"
	"fmt"

	"tradedesk/config"
)

func cmdContext() context.Context {
	return context.Background()
}

// runInteractiveSession drives the prompt-based flow used when the
// binary is started without a subcommand.
func runInteractiveSession(cfg *config.Config) error {
	PrintWelcome()

	for {
		mode, err := askRunMode()
		if err != nil {
			return err
		}

		switch mode {
		case "Single ticker analysis":
			ticker, err := askTicker()
			if err != nil {
				return err
			}
			date, err := askDate()
			if err != nil {
				return err
			}
			ok, err := askConfirm(fmt.Sprintf("Run the desk on %s for %s?", ticker, date))
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := runAnalyze(cfg, ticker, date); err != nil {
				PrintError(err)
			}

		case "Portfolio analysis":
			tickers, err := askTickers()
			if err != nil {
				return err
			}
			date, err := askDate()
			if err != nil {
				return err
			}
			ok, err := askConfirm(fmt.Sprintf("Run the desk on %d tickers for %s?", len(tickers), date))
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := runPortfolio(cfg, tickers, date); err != nil {
				PrintError(err)
			}

		default:
			return nil
		}
	}
}
