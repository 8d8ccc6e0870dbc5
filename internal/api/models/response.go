package models

import "stock-backtest/internal/backtest"

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine code plus a readable message.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// SimulateResponse is the result of one simulation run.
type SimulateResponse struct {
	Days    int               `json:"days"`
	Tickers []string          `json:"tickers"`
	Seed    int64             `json:"seed"`
	Results []backtest.Result `json:"results"`
	Ranked  []backtest.Result `json:"ranked"`
}

// StrategyInfo describes one catalog entry for GET /api/v1/strategies.
type StrategyInfo struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Parameters  map[string][]any `json:"parameters,omitempty"`
}

// StrategiesResponse lists the available catalog.
type StrategiesResponse struct {
	Strategies []StrategyInfo `json:"strategies"`
}
