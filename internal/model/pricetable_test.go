package model

import (
	"math"
	"testing"
	"time"
)

func day(i int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
}

// table with AAA on days 0,1,3 (gap on day 2) and BBB on day 3 only.
func gapTable(t *testing.T) *PriceTable {
	t.Helper()
	bars := map[string]map[time.Time]Bar{
		"AAA": {
			day(0): {Open: 9.5, Close: 10},
			day(1): {Open: 10.5, Close: 11},
			day(3): {Open: 11.5, Close: 12},
		},
		"BBB": {
			day(3): {Open: 99, Close: 100},
		},
	}
	table, err := NewPriceTable([]string{"AAA", "BBB"}, bars)
	if err != nil {
		t.Fatalf("NewPriceTable: %v", err)
	}
	return table
}

func TestPriceTableReindexesCalendar(t *testing.T) {
	table := gapTable(t)
	if table.Len() != 4 {
		t.Fatalf("len = %d, want 4 calendar days", table.Len())
	}
	dates := table.Dates()
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			t.Fatalf("dates not strictly increasing at %d", i)
		}
	}

	// Day 2 is a gap for AAA, represented as missing, not zero.
	if _, ok := table.Price("AAA", FieldClose, 2); ok {
		t.Error("expected day 2 to be a gap for AAA")
	}
	if v := table.Series("AAA", FieldClose)[2]; !math.IsNaN(v) {
		t.Errorf("gap should be NaN, got %v", v)
	}
	if v, ok := table.Price("AAA", FieldClose, 3); !ok || v != 12 {
		t.Errorf("day 3 close = %v/%v, want 12/true", v, ok)
	}
}

func TestWindowLastValidLookback(t *testing.T) {
	table := gapTable(t)
	w := table.Window(3) // days 0..2 visible

	// Day 2 has no AAA price; lookback lands on day 1.
	if v, ok := w.LastValid("AAA", FieldClose); !ok || v != 11 {
		t.Errorf("LastValid = %v/%v, want 11/true", v, ok)
	}
	// BBB has never traded inside the window.
	if _, ok := w.LastValid("BBB", FieldClose); ok {
		t.Error("expected no valid BBB price before day 3")
	}
	if got := w.Today(); !got.Equal(day(2)) {
		t.Errorf("Today = %v, want %v", got, day(2))
	}
}

func TestWindowValidSeriesDropsGaps(t *testing.T) {
	table := gapTable(t)
	closes := table.Window(4).ValidSeries("AAA", FieldClose)
	want := []float64{10, 11, 12}
	if len(closes) != len(want) {
		t.Fatalf("len = %d, want %d", len(closes), len(want))
	}
	for i := range want {
		if closes[i] != want[i] {
			t.Errorf("closes[%d] = %v, want %v", i, closes[i], want[i])
		}
	}
}

func TestWindowHidesFuture(t *testing.T) {
	table := gapTable(t)
	w := table.Window(2)
	if w.Days() != 2 {
		t.Fatalf("Days = %d, want 2", w.Days())
	}
	if _, ok := w.Price("AAA", FieldClose, 3); ok {
		t.Error("window must not expose prices past its horizon")
	}
	if got := len(w.Series("AAA", FieldClose)); got != 2 {
		t.Errorf("series length = %d, want 2", got)
	}
}

func TestLimitTimeframe(t *testing.T) {
	table := gapTable(t)
	table.LimitTimeframe(day(1), day(2))
	if table.Len() != 2 {
		t.Fatalf("len after trim = %d, want 2", table.Len())
	}
	if v, ok := table.Price("AAA", FieldClose, 0); !ok || v != 11 {
		t.Errorf("first day after trim = %v/%v, want 11/true", v, ok)
	}
}

func TestNewPriceTableRejectsMissingTicker(t *testing.T) {
	_, err := NewPriceTable([]string{"AAA"}, map[string]map[time.Time]Bar{})
	if err == nil {
		t.Fatal("expected error for ticker without observations")
	}
}

func TestStockDataDepositSchedule(t *testing.T) {
	// Calendar spanning a month boundary: Jan 30 .. Feb 2.
	start := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	bars := map[time.Time]Bar{}
	for i := 0; i < 4; i++ {
		bars[start.AddDate(0, 0, i)] = Bar{Open: 10, Close: 10}
	}
	table, err := NewPriceTable([]string{"AAA"}, map[string]map[time.Time]Bar{"AAA": bars})
	if err != nil {
		t.Fatalf("NewPriceTable: %v", err)
	}

	stock := NewStockData(table, 100, 1)
	if stock.TotalDays() != 4 {
		t.Fatalf("TotalDays = %d, want 4", stock.TotalDays())
	}

	for n := 1; n <= 4; n++ {
		w, money := stock.DaySlice(n)
		if w.Days() != n {
			t.Fatalf("slice %d: window has %d days", n, w.Days())
		}
		want := 1.0
		if w.Today().Day() == 1 {
			want += 100
		}
		if money != want {
			t.Errorf("slice %d (%s): money = %v, want %v", n, w.Today().Format("2006-01-02"), money, want)
		}
	}

	// Feb 1 is the third slice.
	w, money := stock.DaySlice(3)
	if w.Today().Day() != 1 || money != 101 {
		t.Errorf("month boundary: today=%v money=%v, want day 1 and 101", w.Today(), money)
	}
}
