package backtest

import (
	"math"

	"stock-backtest/internal/model"
)

// tradingDaysPerYear annualizes daily return statistics.
const tradingDaysPerYear = 252

// computeMetrics derives the normalized performance metrics from a completed
// ledger. Ledgers with fewer than two valid days degrade to zeros instead of
// failing.
func computeMetrics(l *Ledger, benchmark string, penaltyRate float64) Result {
	res := Result{
		TotalFees:    l.TotalFees,
		SlippageCost: l.TotalSlippage,
	}
	rows := l.Rows()
	if len(rows) == 0 {
		return res
	}

	values := l.PortfolioValueSeries()
	returns := dailyReturns(values)

	years := rows[len(rows)-1].Date.Sub(rows[0].Date).Hours() / 24 / 365
	if years > 0 && values[0] > 0 {
		res.CAGR = math.Pow(values[len(values)-1]/values[0], 1/years) - 1
	}

	for _, dd := range l.DrawdownSeries() {
		if dd < res.MaxDrawdown {
			res.MaxDrawdown = dd
		}
	}

	res.Volatility = sampleStd(returns) * math.Sqrt(tradingDaysPerYear)
	if res.Volatility != 0 {
		res.SharpeRatio = mean(returns) * tradingDaysPerYear / res.Volatility
	}

	res.TradeCount = tradeCount(rows, l.Tickers())

	invested := 0
	for _, row := range rows {
		for _, pos := range row.Positions {
			if pos != 0 {
				invested++
				break
			}
		}
	}
	res.TimeInMarketRatio = float64(invested) / float64(len(rows))
	res.TimeInMarketPenalty = -res.TimeInMarketRatio * penaltyRate

	res.TrackingError = trackingError(l, values, benchmark)
	return res
}

// tradeCount counts day-over-day position changes across tickers; any
// nonzero diff is one trade event. The first day has no prior row and never
// counts.
func tradeCount(rows []Row, tickers []string) int {
	count := 0
	for i := 1; i < len(rows); i++ {
		for _, t := range tickers {
			if rows[i].Positions[t] != rows[i-1].Positions[t] {
				count++
			}
		}
	}
	return count
}

// trackingError is the annualized stdev of (portfolio return - benchmark
// return), aligned by day. The benchmark close is forward-filled across
// gaps; days where either side has no defined return are skipped.
func trackingError(l *Ledger, values []float64, benchmark string) float64 {
	window := l.Window()
	if window == nil || benchmark == "" || !window.HasTicker(benchmark) {
		return 0
	}
	bench := forwardFill(window.Series(benchmark, model.FieldClose))
	n := len(values)
	if len(bench) < n {
		n = len(bench)
	}

	diffs := make([]float64, 0, n)
	for i := 1; i < n; i++ {
		if values[i-1] == 0 {
			continue
		}
		if math.IsNaN(bench[i-1]) || math.IsNaN(bench[i]) || bench[i-1] == 0 {
			continue
		}
		pr := values[i]/values[i-1] - 1
		br := bench[i]/bench[i-1] - 1
		diffs = append(diffs, pr-br)
	}
	return sampleStd(diffs) * math.Sqrt(tradingDaysPerYear)
}

// dailyReturns computes value[i]/value[i-1] - 1, skipping days with an
// undefined base.
func dailyReturns(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		out = append(out, values[i]/values[i-1]-1)
	}
	return out
}

func forwardFill(series []float64) []float64 {
	out := make([]float64, len(series))
	last := math.NaN()
	for i, v := range series {
		if !math.IsNaN(v) {
			last = v
		}
		out[i] = last
	}
	return out
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// sampleStd is the n-1 normalized standard deviation.
func sampleStd(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	m := mean(data)
	sum := 0.0
	for _, v := range data {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(data)-1))
}
