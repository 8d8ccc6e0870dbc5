package models

// SimulateRequest is the payload for POST /api/v1/simulate.
type SimulateRequest struct {
	// Tickers selects the CSV datasets to load from the server's data dir.
	Tickers []string `json:"tickers" binding:"required"`

	InitialDeposit float64 `json:"initial_deposit"`
	DailyDeposit   float64 `json:"daily_deposit"`
	MonthlyDeposit float64 `json:"monthly_deposit"`

	TransactionCostRate float64 `json:"transaction_cost_rate"`
	SlippagePct         float64 `json:"slippage_pct"`

	Benchmark   string `json:"benchmark"`
	PenaltyRate float64 `json:"penalty_rate"`
	Seed        int64  `json:"seed"`

	// StartDate/EndDate trim the price history, YYYY-MM-DD.
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	// Strategies selects catalog entries; empty runs the whole catalog.
	Strategies []StrategySelection `json:"strategies"`
}

// StrategySelection enables one strategy with optional parameter sweep
// overrides.
type StrategySelection struct {
	Name   string           `json:"name"`
	Params map[string][]any `json:"params,omitempty"`
}
