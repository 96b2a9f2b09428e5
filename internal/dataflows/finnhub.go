package dataflows

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"tradedesk/config"
	"tradedesk/models"
)

// FinnhubClient fetches company news from the Finnhub REST API.
type FinnhubClient struct {
	client *resty.Client
	cache  *CacheManager
	apiKey string
}

func NewFinnhubClient(cfg *config.Config) *FinnhubClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "finnhub")
	cache := NewCacheManager(cacheDir, 6*time.Hour, cfg.CacheEnabled)

	client := resty.New()
	client.SetBaseURL("https://finnhub.io/api/v1")
	client.SetTimeout(30 * time.Second)

	return &FinnhubClient{
		client: client,
		cache:  cache,
		apiKey: cfg.FinnhubAPIKey,
	}
}

type finnhubNews struct {
	DateTime int64  `json:"datetime"`
	Headline string `json:"headline"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// GetCompanyNews returns news articles for a symbol in a date range.
func (fc *FinnhubClient) GetCompanyNews(symbol string, from, to time.Time) ([]*models.NewsArticle, error) {
	if fc.apiKey == "" {
		return nil, fmt.Errorf("finnhub API key not configured")
	}
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol cannot be empty")
	}

	cacheKey := map[string]any{
		"symbol": symbol,
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
	}
	var cached []*models.NewsArticle
	if fc.cache.Get("finnhub", "company_news", cacheKey, &cached) {
		return cached, nil
	}

	var result []*models.NewsArticle
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := fc.client.R().
			SetQueryParams(map[string]string{
				"symbol": symbol,
				"from":   from.Format("2006-01-02"),
				"to":     to.Format("2006-01-02"),
				"token":  fc.apiKey,
			}).
			Get("/company-news")
		if err != nil {
			return fmt.Errorf("failed to fetch news for %s: %w", symbol, err)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
		}

		var items []finnhubNews
		if err := json.Unmarshal(resp.Body(), &items); err != nil {
			return fmt.Errorf("failed to parse news response: %w", err)
		}

		result = make([]*models.NewsArticle, 0, len(items))
		for _, item := range items {
			result = append(result, &models.NewsArticle{
				Title:       item.Headline,
				Summary:     item.Summary,
				URL:         item.URL,
				Source:      item.Source,
				PublishedAt: time.Unix(item.DateTime, 0),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fc.cache.Set("finnhub", "company_news", cacheKey, result)
	return result, nil
}
