package recorder

import (
	"path/filepath"
	"testing"

	"stock-backtest/internal/backtest"
)

func TestSQLiteRecorderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	results := []backtest.Result{
		{Strategy: "buy_and_hold", Params: map[string]any{"ticker": "VOO"}, CAGR: 0.08, TradeCount: 1},
		{Strategy: "no_investment"},
	}
	if err := r.RecordRun(42, 10000, results); err != nil {
		t.Fatal(err)
	}
	// Recording twice must append, not conflict.
	if err := r.RecordRun(43, 10000, results[:1]); err != nil {
		t.Fatal(err)
	}

	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM strategy_results`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("stored %d rows, want 3", count)
	}

	var params string
	err = r.db.QueryRow(
		`SELECT parameters FROM strategy_results WHERE strategy = 'buy_and_hold' LIMIT 1`,
	).Scan(&params)
	if err != nil {
		t.Fatal(err)
	}
	if params != `{"ticker":"VOO"}` {
		t.Errorf("parameters = %s", params)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = Noop{}
	if err := r.RecordRun(1, 0, nil); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
}
