package analysis

import (
	"sort"

	"stock-backtest/internal/backtest"
)

// Score is a cost-adjusted growth figure for comparing strategies: CAGR plus
// the time-in-market penalty. The penalty keeps cash-heavy strategies from
// ranking purely on low volatility.
func Score(r backtest.Result) float64 {
	return r.CAGR + r.TimeInMarketPenalty
}

// RankResults orders results best-first by Score, breaking ties on Sharpe
// ratio. The input slice is not modified.
func RankResults(results []backtest.Result) []backtest.Result {
	ranked := append([]backtest.Result(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := Score(ranked[i]), Score(ranked[j])
		if si != sj {
			return si > sj
		}
		return ranked[i].SharpeRatio > ranked[j].SharpeRatio
	})
	return ranked
}
