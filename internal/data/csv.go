package data

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"stock-backtest/internal/model"
)

var requiredColumns = []string{"Date", "Close", "Open"}
var optionalColumns = []string{"High", "Low", "Volume"}

var dateLayouts = []string{"2006-01-02", "01/02/2006"}

// LoadTickerCSV reads one ticker's OHLC history from a CSV file. The header
// must carry Date, Close, and Open; High, Low, and Volume are back-filled
// with NaN when absent. Dates must be strictly increasing with no
// duplicates.
func LoadTickerCSV(path string) (map[time.Time]model.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", path, required)
		}
	}

	bars := make(map[time.Time]model.Bar, len(records)-1)
	var prev time.Time
	for line, rec := range records[1:] {
		date, err := parseDate(rec[cols["Date"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, line+2, err)
		}
		if _, dup := bars[date]; dup {
			return nil, fmt.Errorf("%s: duplicate date %s", path, date.Format("2006-01-02"))
		}
		if !prev.IsZero() && !date.After(prev) {
			return nil, fmt.Errorf("%s: dates must be strictly increasing at %s", path, date.Format("2006-01-02"))
		}
		prev = date

		bar := model.Bar{
			Close: parseField(rec, cols, "Close"),
			Open:  parseField(rec, cols, "Open"),
		}
		bar.High = parseOptional(rec, cols, "High")
		bar.Low = parseOptional(rec, cols, "Low")
		bar.Volume = parseOptional(rec, cols, "Volume")
		bars[date] = bar
	}
	return bars, nil
}

// LoadTickers reads <dir>/<ticker>.csv for every ticker and assembles the
// calendar-reindexed price table.
func LoadTickers(dir string, tickers []string) (*model.PriceTable, error) {
	bars := make(map[string]map[time.Time]model.Bar, len(tickers))
	for _, ticker := range tickers {
		path := filepath.Join(dir, ticker+".csv")
		b, err := LoadTickerCSV(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", ticker, err)
		}
		bars[ticker] = b
	}
	return model.NewPriceTable(tickers, bars)
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

func parseField(rec []string, cols map[string]int, name string) float64 {
	raw := strings.TrimSpace(rec[cols[name]])
	raw = strings.TrimPrefix(raw, "$")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseOptional(rec []string, cols map[string]int, name string) float64 {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return math.NaN()
	}
	return parseField(rec, cols, name)
}
