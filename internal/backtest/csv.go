package backtest

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"time"
)

// WriteLedgerCSV exports a ledger's day rows: date, cash, one position
// column per ticker, the deposit, and the derived portfolio value.
func WriteLedgerCSV(path string, l *Ledger) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeLedger(f, l)
}

func writeLedger(out io.Writer, l *Ledger) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	tickers := l.Tickers()
	header := []string{"date", "bank_account"}
	header = append(header, tickers...)
	header = append(header, "money_invested", "portfolio_value")
	if err := w.Write(header); err != nil {
		return err
	}

	values := l.PortfolioValueSeries()
	for i, r := range l.Rows() {
		row := []string{fmtDate(r.Date), fmtFloat(r.Cash)}
		for _, t := range tickers {
			row = append(row, fmtFloat(r.Positions[t]))
		}
		row = append(row, fmtFloat(r.Deposited), fmtFloat(values[i]))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteResultsCSV exports the normalized per-strategy results table.
func WriteResultsCSV(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"strategy",
		"parameters",
		"cagr",
		"max_drawdown",
		"volatility",
		"sharpe_ratio",
		"trade_count",
		"total_fees",
		"slippage_cost",
		"tracking_error",
		"time_in_market_ratio",
		"time_in_market_penalty",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		params := "{}"
		if len(r.Params) > 0 {
			if raw, err := json.Marshal(r.Params); err == nil {
				params = string(raw)
			}
		}
		row := []string{
			r.Strategy,
			params,
			fmtFloat(r.CAGR),
			fmtFloat(r.MaxDrawdown),
			fmtFloat(r.Volatility),
			fmtFloat(r.SharpeRatio),
			strconv.Itoa(r.TradeCount),
			fmtFloat(r.TotalFees),
			fmtFloat(r.SlippageCost),
			fmtFloat(r.TrackingError),
			fmtFloat(r.TimeInMarketRatio),
			fmtFloat(r.TimeInMarketPenalty),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
