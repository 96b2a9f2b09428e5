package models

// TradingDecision is the desk's final call for one symbol.
type TradingDecision struct {
	Symbol     string  `json:"symbol"`
	Date       string  `json:"date"`
	Action     string  `json:"action"` // BUY, SELL or HOLD
	Quantity   float64 `json:"quantity"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}
