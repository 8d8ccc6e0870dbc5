package recorder

import "stock-backtest/internal/backtest"

// Recorder persists completed simulation runs for later analysis.
type Recorder interface {
	RecordRun(seed int64, initialDeposit float64, results []backtest.Result) error
	Close() error
}

// Noop discards everything. Used when no database is configured.
type Noop struct{}

func (Noop) RecordRun(int64, float64, []backtest.Result) error { return nil }
func (Noop) Close() error                                      { return nil }
