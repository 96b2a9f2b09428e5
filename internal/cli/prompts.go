package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
)

func askRunMode() (string, error) {
	var mode string
	prompt := &survey.Select{
		Message: "What do you want to run?",
		Options: []string{"Single ticker analysis", "Portfolio analysis", "Exit"},
		Default: "Single ticker analysis",
	}
	err := survey.AskOne(prompt, &mode)
	return mode, err
}

func askTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Ticker symbol:",
		Help:    "For example AAPL or MSFT",
	}
	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		s, ok := val.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return fmt.Errorf("ticker cannot be empty")
		}
		return nil
	}))
	return strings.ToUpper(strings.TrimSpace(ticker)), err
}

func askTickers() ([]string, error) {
	var raw string
	prompt := &survey.Input{
		Message: "Ticker symbols (comma separated):",
		Help:    "For example AAPL,MSFT,NVDA",
	}
	err := survey.AskOne(prompt, &raw, survey.WithValidator(func(val interface{}) error {
		s, ok := val.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return fmt.Errorf("ticker list cannot be empty")
		}
		return nil
	}))
	if err != nil {
		return nil, err
	}

	var tickers []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.ToUpper(strings.TrimSpace(part)); t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("ticker list cannot be empty")
	}
	return tickers, nil
}

func askDate() (string, error) {
	var dateStr string
	prompt := &survey.Input{
		Message: "Trading date (YYYY-MM-DD):",
		Default: time.Now().Format("2006-01-02"),
	}
	err := survey.AskOne(prompt, &dateStr, survey.WithValidator(func(val interface{}) error {
		s, ok := val.(string)
		if !ok {
			return fmt.Errorf("invalid input")
		}
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD")
		}
		return nil
	}))
	return strings.TrimSpace(dateStr), err
}

func askConfirm(message string) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: true,
	}
	err := survey.AskOne(prompt, &confirmed)
	return confirmed, err
}
