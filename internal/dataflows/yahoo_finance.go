package dataflows

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"

	"tradedesk/config"
	"tradedesk/models"
)

// YahooFinanceClient fetches quotes and daily bars from Yahoo Finance.
type YahooFinanceClient struct {
	cache *CacheManager
}

func NewYahooFinanceClient(cfg *config.Config) *YahooFinanceClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "yahoo_finance")
	return &YahooFinanceClient{
		cache: NewCacheManager(cacheDir, 24*time.Hour, cfg.CacheEnabled),
	}
}

// GetQuote returns the latest quote for a symbol as a single bar.
func (yf *YahooFinanceClient) GetQuote(symbol string) (*models.MarketData, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol cannot be empty")
	}

	var cached models.MarketData
	if yf.cache.Get("yahoo", "quote", symbol, &cached) {
		return &cached, nil
	}

	var result *models.MarketData
	err := WithRetry(DefaultRetryConfig(), func() error {
		q, err := quote.Get(symbol)
		if err != nil {
			return fmt.Errorf("failed to get quote for %s: %w", symbol, err)
		}
		result = &models.MarketData{
			Symbol:    symbol,
			Date:      time.Now().Format("2006-01-02"),
			Open:      decimal.NewFromFloat(q.RegularMarketOpen),
			High:      decimal.NewFromFloat(q.RegularMarketDayHigh),
			Low:       decimal.NewFromFloat(q.RegularMarketDayLow),
			Close:     decimal.NewFromFloat(q.RegularMarketPrice),
			Volume:    int64(q.RegularMarketVolume),
			Timestamp: time.Now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	yf.cache.Set("yahoo", "quote", symbol, result)
	return result, nil
}

// GetHistoricalData returns daily bars between start and end.
func (yf *YahooFinanceClient) GetHistoricalData(symbol string, start, end time.Time) ([]*models.MarketData, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol cannot be empty")
	}

	cacheKey := map[string]any{
		"symbol": symbol,
		"start":  start.Format("2006-01-02"),
		"end":    end.Format("2006-01-02"),
	}
	var cached []*models.MarketData
	if yf.cache.Get("yahoo", "historical", cacheKey, &cached) {
		return cached, nil
	}

	var result []*models.MarketData
	err := WithRetry(DefaultRetryConfig(), func() error {
		params := &chart.Params{
			Symbol:   symbol,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		}
		iter := chart.Get(params)

		result = make([]*models.MarketData, 0)
		for iter.Next() {
			bar := iter.Bar()
			result = append(result, &models.MarketData{
				Symbol:    symbol,
				Date:      time.Unix(int64(bar.Timestamp), 0).Format("2006-01-02"),
				Open:      bar.Open,
				High:      bar.High,
				Low:       bar.Low,
				Close:     bar.Close,
				Volume:    int64(bar.Volume),
				Timestamp: time.Now(),
			})
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to get historical data for %s: %w", symbol, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	yf.cache.Set("yahoo", "historical", cacheKey, result)
	return result, nil
}

// GetHistoricalDataWindow returns the last n days of daily bars.
func (yf *YahooFinanceClient) GetHistoricalDataWindow(symbol string, days int) ([]*models.MarketData, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return yf.GetHistoricalData(symbol, start, end)
}

// NormalizeSymbol upper-cases and trims a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
