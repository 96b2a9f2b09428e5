package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/tool"
	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"tradedesk/config"
	"tradedesk/internal/dataflows"
	"tradedesk/models"
)

// NewCompanyNewsTool builds the get_company_news tool backed by the
// Finnhub API.
func NewCompanyNewsTool(cfg *config.Config) tool.InvokableTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_company_news",
			Desc: "Get recent news articles for a stock symbol",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "The stock symbol to fetch news for",
					Required: true,
				},
				"days": {
					Type:     "integer",
					Desc:     "How many days back to search (default: 7)",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.NewsInput) (*models.NewsOutput, error) {
			if input.Query == "" {
				return nil, fmt.Errorf("query parameter is required")
			}
			days := input.Days
			if days <= 0 {
				days = 7
			}
			to := time.Now()
			from := to.AddDate(0, 0, -days)

			fc := dataflows.NewFinnhubClient(cfg)
			articles, err := fc.GetCompanyNews(input.Query, from, to)
			if err != nil {
				return nil, err
			}
			return &models.NewsOutput{Articles: articles}, nil
		},
	)
}

// NewGoogleNewsTool builds the search_google_news tool, a scraper
// fallback that needs no API key.
func NewGoogleNewsTool(cfg *config.Config) tool.InvokableTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "search_google_news",
			Desc: "Search Google News for articles matching a query",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "Free-text search query",
					Required: true,
				},
				"days": {
					Type:     "integer",
					Desc:     "Unused, kept for payload symmetry",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.NewsInput) (*models.NewsOutput, error) {
			if input.Query == "" {
				return nil, fmt.Errorf("query parameter is required")
			}
			ns := dataflows.NewNewsScraperClient(cfg)
			articles, err := ns.GetGoogleNews(input.Query, 20)
			if err != nil {
				return nil, err
			}
			return &models.NewsOutput{Articles: articles}, nil
		},
	)
}

// NewsToolkit bundles the news tools for the news and social analysts.
func NewsToolkit(ctx context.Context, cfg *config.Config) (*Toolkit, error) {
	return NewToolkit(ctx, NewCompanyNewsTool(cfg), NewGoogleNewsTool(cfg))
}
