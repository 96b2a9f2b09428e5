package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"tradedesk/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	buyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	sellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))

	holdStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(1, 2).
			Width(80)
)

func PrintWelcome() {
	fmt.Println(boxStyle.Render(
		titleStyle.Render("tradedesk") + "\n" +
			"Multi-agent trading analysis: analysts, researchers, trader, risk team."))
}

func PrintRunHeader(subject, date string) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Analyzing %s for %s", subject, date)))
}

func PrintError(err error) {
	fmt.Println(errorStyle.Render("error: " + err.Error()))
}

func actionStyle(action string) lipgloss.Style {
	switch action {
	case "BUY":
		return buyStyle
	case "SELL":
		return sellStyle
	default:
		return holdStyle
	}
}

// PrintSingleResult renders the outcome of a single-ticker run.
func PrintSingleResult(state *models.TraversalState, decision *models.TradingDecision) {
	if decision != nil {
		fmt.Println(boxStyle.Render(
			sectionStyle.Render("Decision for "+decision.Symbol) + "\n\n" +
				"Action: " + actionStyle(decision.Action).Render(decision.Action)))
	}

	if reports := state.ReportsFor(state.CurrentTicker()); reports != nil {
		printSection("Investment plan", reports.InvestmentPlan)
		printSection("Trader plan", reports.TraderInvestmentPlan)
		printSection("Final trade decision", reports.FinalTradeDecision)
	}
}

// PrintPortfolioResult renders the optimized allocation of a
// portfolio run.
func PrintPortfolioResult(state *models.TraversalState) {
	for _, ticker := range state.Tickers {
		if reports := state.ReportsFor(ticker); reports != nil && reports.FinalTradeDecision != "" {
			fmt.Println(sectionStyle.Render(ticker) + ": " + firstLine(reports.FinalTradeDecision))
		}
	}

	opt := state.PortfolioOptimization
	if opt == nil {
		fmt.Println(holdStyle.Render("no portfolio optimization result"))
		return
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Portfolio weights ("+opt.Method+")") + "\n\n")
	for _, line := range weightLines(opt.Weights) {
		b.WriteString(line + "\n")
	}
	fmt.Println(boxStyle.Render(strings.TrimRight(b.String(), "\n")))
}

func weightLines(weights map[string]decimal.Decimal) []string {
	tickers := make([]string, 0, len(weights))
	for ticker := range weights {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	lines := make([]string, 0, len(tickers))
	for _, ticker := range tickers {
		pct := weights[ticker].Mul(decimal.NewFromInt(100)).Round(2)
		lines = append(lines, fmt.Sprintf("%-8s %6s%%", ticker, pct.String()))
	}
	return lines
}

func printSection(title, content string) {
	if content == "" {
		return
	}
	fmt.Println()
	fmt.Println(sectionStyle.Render(title))
	fmt.Println(content)
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
