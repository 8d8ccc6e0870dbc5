package model

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Field names one series of an OHLC bar.
type Field string

const (
	FieldOpen   Field = "Open"
	FieldClose  Field = "Close"
	FieldHigh   Field = "High"
	FieldLow    Field = "Low"
	FieldVolume Field = "Volume"
)

// Fields lists every series a PriceTable carries, in bar order.
var Fields = []Field{FieldOpen, FieldClose, FieldHigh, FieldLow, FieldVolume}

// Bar is one ticker-day observation. Optional fields may be NaN.
type Bar struct {
	Open   float64
	Close  float64
	High   float64
	Low    float64
	Volume float64
}

// PriceTable is a date-indexed, multi-ticker OHLC table on a shared daily
// calendar. The calendar runs every calendar day from the earliest to the
// latest observed date, so non-trading days appear as NaN gaps rather than
// being absent. Dates are strictly increasing with no duplicates.
type PriceTable struct {
	dates   []time.Time
	tickers []string
	series  map[string]map[Field][]float64
}

// NewPriceTable builds a table from per-ticker date->bar observations,
// reindexed onto the union daily calendar. Missing days hold NaN.
func NewPriceTable(tickers []string, bars map[string]map[time.Time]Bar) (*PriceTable, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers")
	}
	var first, last time.Time
	seen := false
	for _, ticker := range tickers {
		obs, ok := bars[ticker]
		if !ok || len(obs) == 0 {
			return nil, fmt.Errorf("no observations for ticker %q", ticker)
		}
		for d := range obs {
			d = midnight(d)
			if !seen {
				first, last = d, d
				seen = true
				continue
			}
			if d.Before(first) {
				first = d
			}
			if d.After(last) {
				last = d
			}
		}
	}

	days := int(last.Sub(first).Hours()/24) + 1
	dates := make([]time.Time, days)
	index := make(map[time.Time]int, days)
	for i := 0; i < days; i++ {
		d := first.AddDate(0, 0, i)
		dates[i] = d
		index[d] = i
	}

	series := make(map[string]map[Field][]float64, len(tickers))
	for _, ticker := range tickers {
		byField := make(map[Field][]float64, len(Fields))
		for _, f := range Fields {
			col := make([]float64, days)
			for i := range col {
				col[i] = math.NaN()
			}
			byField[f] = col
		}
		for d, bar := range bars[ticker] {
			i := index[midnight(d)]
			byField[FieldOpen][i] = bar.Open
			byField[FieldClose][i] = bar.Close
			byField[FieldHigh][i] = bar.High
			byField[FieldLow][i] = bar.Low
			byField[FieldVolume][i] = bar.Volume
		}
		series[ticker] = byField
	}

	ordered := append([]string(nil), tickers...)
	sort.Strings(ordered)
	return &PriceTable{dates: dates, tickers: ordered, series: series}, nil
}

// Len returns the number of calendar days in the table.
func (t *PriceTable) Len() int { return len(t.dates) }

// Dates returns the shared calendar.
func (t *PriceTable) Dates() []time.Time { return t.dates }

// Tickers returns the tracked symbols in stable order.
func (t *PriceTable) Tickers() []string { return t.tickers }

// HasTicker reports whether the table tracks the given symbol.
func (t *PriceTable) HasTicker(ticker string) bool {
	_, ok := t.series[ticker]
	return ok
}

// Price returns the observation for ticker/field on calendar day i.
// The second return is false for gaps and unknown tickers.
func (t *PriceTable) Price(ticker string, field Field, i int) (float64, bool) {
	byField, ok := t.series[ticker]
	if !ok || i < 0 || i >= len(t.dates) {
		return 0, false
	}
	v := byField[field][i]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Series returns the full column for ticker/field, gaps as NaN. The slice is
// shared; callers must not mutate it.
func (t *PriceTable) Series(ticker string, field Field) []float64 {
	byField, ok := t.series[ticker]
	if !ok {
		return nil
	}
	return byField[field]
}

// LimitTimeframe trims the table to [start, end]. Zero bounds keep the
// existing edge.
func (t *PriceTable) LimitTimeframe(start, end time.Time) {
	lo, hi := 0, len(t.dates)
	if !start.IsZero() {
		s := midnight(start)
		for lo < hi && t.dates[lo].Before(s) {
			lo++
		}
	}
	if !end.IsZero() {
		e := midnight(end)
		for hi > lo && t.dates[hi-1].After(e) {
			hi--
		}
	}
	t.dates = t.dates[lo:hi]
	for _, byField := range t.series {
		for f, col := range byField {
			byField[f] = col[lo:hi]
		}
	}
}

// Window returns the read-only prefix view covering the first n days.
func (t *PriceTable) Window(n int) *Window {
	if n < 0 {
		n = 0
	}
	if n > len(t.dates) {
		n = len(t.dates)
	}
	return &Window{table: t, n: n}
}

func midnight(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
