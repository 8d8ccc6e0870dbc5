package backtest

// Result is the immutable end-of-run snapshot for one strategy/parameter
// combination. Created once from a completed ledger, never mutated.
type Result struct {
	Strategy string         `json:"strategy"`
	Params   map[string]any `json:"parameters,omitempty"`

	CAGR                float64 `json:"cagr"`
	MaxDrawdown         float64 `json:"max_drawdown"`
	Volatility          float64 `json:"volatility"`
	SharpeRatio         float64 `json:"sharpe_ratio"`
	TradeCount          int     `json:"trade_count"`
	TotalFees           float64 `json:"total_fees"`
	SlippageCost        float64 `json:"slippage_cost"`
	TrackingError       float64 `json:"tracking_error"`
	TimeInMarketRatio   float64 `json:"time_in_market_ratio"`
	TimeInMarketPenalty float64 `json:"time_in_market_penalty"`
}
