package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketData is one OHLCV bar.
type MarketData struct {
	Symbol    string          `json:"symbol"`
	Date      string          `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    int64           `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewsArticle is one fetched news item.
type NewsArticle struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// MarketDataInput is the tool-call payload for the market data tool.
type MarketDataInput struct {
	Symbol string `json:"symbol"`
	Count  int    `json:"count"`
}

// MarketDataOutput is the market data tool's response.
type MarketDataOutput struct {
	Data []*MarketData `json:"data"`
}

// NewsInput is the tool-call payload for the news tool.
type NewsInput struct {
	Query string `json:"query"`
	Days  int    `json:"days"`
}

// NewsOutput is the news tool's response.
type NewsOutput struct {
	Articles []*NewsArticle `json:"articles"`
}
