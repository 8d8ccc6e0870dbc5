package model

import (
	"math"
	"time"
)

// Window is the price history visible "as of today": the first n calendar
// days of a PriceTable. It is handed to every ledger each simulated day, and
// it is the only price access a strategy gets, so no future data can leak
// into trade decisions.
type Window struct {
	table *PriceTable
	n     int
}

// Days returns the number of visible calendar days.
func (w *Window) Days() int { return w.n }

// Today returns the last visible date.
func (w *Window) Today() time.Time {
	return w.table.dates[w.n-1]
}

// Dates returns the visible calendar.
func (w *Window) Dates() []time.Time { return w.table.dates[:w.n] }

// Tickers returns the tracked symbols.
func (w *Window) Tickers() []string { return w.table.tickers }

// HasTicker reports whether the underlying table tracks the symbol.
func (w *Window) HasTicker(ticker string) bool { return w.table.HasTicker(ticker) }

// Price returns the observation for day i of the window, if present.
func (w *Window) Price(ticker string, field Field, i int) (float64, bool) {
	if i >= w.n {
		return 0, false
	}
	return w.table.Price(ticker, field, i)
}

// Series returns the visible column for ticker/field, gaps as NaN.
func (w *Window) Series(ticker string, field Field) []float64 {
	col := w.table.Series(ticker, field)
	if col == nil {
		return nil
	}
	return col[:w.n]
}

// ValidSeries returns the visible column with gaps dropped, oldest first.
func (w *Window) ValidSeries(ticker string, field Field) []float64 {
	col := w.Series(ticker, field)
	out := make([]float64, 0, len(col))
	for _, v := range col {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// LastValidAt returns the most recent non-missing observation at or before
// day i. The second return is false when no valid observation exists yet.
func (w *Window) LastValidAt(ticker string, field Field, i int) (float64, bool) {
	if i >= w.n {
		i = w.n - 1
	}
	for ; i >= 0; i-- {
		if v, ok := w.table.Price(ticker, field, i); ok {
			return v, true
		}
	}
	return 0, false
}

// LastValid returns the most recent non-missing observation as of today.
func (w *Window) LastValid(ticker string, field Field) (float64, bool) {
	return w.LastValidAt(ticker, field, w.n-1)
}
