package tools

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/tool"
	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/shopspring/decimal"

	"tradedesk/config"
	"tradedesk/internal/dataflows"
	"tradedesk/models"
)

// NewMarketDataTool builds the get_market_data tool. It prefers the
// Longport feed when credentials are configured and falls back to
// Yahoo Finance otherwise.
func NewMarketDataTool(cfg *config.Config) tool.InvokableTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_market_data",
			Desc: "Get daily OHLCV market data for a stock symbol",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The stock symbol",
					Required: true,
				},
				"count": {
					Type:     "integer",
					Desc:     "Number of days to retrieve (default: 30)",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.MarketDataInput) (*models.MarketDataOutput, error) {
			if input.Symbol == "" {
				return nil, fmt.Errorf("symbol parameter is required")
			}
			count := input.Count
			if count <= 0 {
				count = 30
			}

			if bars, err := longportBars(ctx, cfg, input.Symbol, count); err == nil && len(bars) > 0 {
				return &models.MarketDataOutput{Data: bars}, nil
			} else if err != nil {
				log.Printf("[Tools] longport data unavailable for %s: %v", input.Symbol, err)
			}

			yf := dataflows.NewYahooFinanceClient(cfg)
			bars, err := yf.GetHistoricalDataWindow(input.Symbol, count)
			if err != nil {
				return nil, fmt.Errorf("failed to get market data for %s: %w", input.Symbol, err)
			}
			return &models.MarketDataOutput{Data: bars}, nil
		},
	)
}

func longportBars(ctx context.Context, cfg *config.Config, symbol string, count int) ([]*models.MarketData, error) {
	client, err := dataflows.NewLongportClient(cfg)
	if err != nil {
		return nil, err
	}
	sticks, err := client.GetSticksWithDay(ctx, symbol, count)
	if err != nil {
		return nil, err
	}

	bars := make([]*models.MarketData, 0, len(sticks))
	for _, stick := range sticks {
		ts := time.Unix(stick.Timestamp, 0)
		open, _ := stick.Open.Float64()
		high, _ := stick.High.Float64()
		low, _ := stick.Low.Float64()
		closePrice, _ := stick.Close.Float64()
		bars = append(bars, &models.MarketData{
			Symbol:    symbol,
			Date:      ts.Format("2006-01-02"),
			Open:      decimal.NewFromFloat(open),
			High:      decimal.NewFromFloat(high),
			Low:       decimal.NewFromFloat(low),
			Close:     decimal.NewFromFloat(closePrice),
			Volume:    stick.Volume,
			Timestamp: ts,
		})
	}
	return bars, nil
}

// NewQuoteTool builds the get_quote tool for a single latest quote.
func NewQuoteTool(cfg *config.Config) tool.InvokableTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_quote",
			Desc: "Get the latest quote for a stock symbol",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The stock symbol",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, input models.MarketDataInput) (*models.MarketDataOutput, error) {
			if input.Symbol == "" {
				return nil, fmt.Errorf("symbol parameter is required")
			}
			yf := dataflows.NewYahooFinanceClient(cfg)
			bar, err := yf.GetQuote(input.Symbol)
			if err != nil {
				return nil, err
			}
			return &models.MarketDataOutput{Data: []*models.MarketData{bar}}, nil
		},
	)
}

// MarketToolkit bundles the market-data tools for the market analyst.
func MarketToolkit(ctx context.Context, cfg *config.Config) (*Toolkit, error) {
	return NewToolkit(ctx, NewMarketDataTool(cfg), NewQuoteTool(cfg))
}

// FormatBars renders OHLCV bars into a compact table for prompts.
func FormatBars(bars []*models.MarketData) string {
	var b strings.Builder
	b.WriteString("date,open,high,low,close,volume\n")
	for _, bar := range bars {
		b.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%d\n",
			bar.Date, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume))
	}
	return b.String()
}
