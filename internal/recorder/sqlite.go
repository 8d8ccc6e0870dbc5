package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"stock-backtest/internal/backtest"
)

// SQLiteRecorder persists strategy results to a SQLite database, one row per
// strategy/parameter combination per run.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS strategy_results (
			id                     INTEGER PRIMARY KEY AUTOINCREMENT,
			run_at                 INTEGER NOT NULL,
			seed                   INTEGER NOT NULL,
			initial_deposit        REAL,
			strategy               TEXT NOT NULL,
			parameters             TEXT,
			cagr                   REAL,
			max_drawdown           REAL,
			volatility             REAL,
			sharpe_ratio           REAL,
			trade_count            INTEGER,
			total_fees             REAL,
			slippage_cost          REAL,
			tracking_error         REAL,
			time_in_market_ratio   REAL,
			time_in_market_penalty REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run_at ON strategy_results(run_at)`,
		`CREATE INDEX IF NOT EXISTS idx_results_strategy ON strategy_results(strategy)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun writes one row per result, all stamped with the same run time.
func (r *SQLiteRecorder) RecordRun(seed int64, initialDeposit float64, results []backtest.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, res := range results {
		params := "{}"
		if len(res.Params) > 0 {
			if raw, err := json.Marshal(res.Params); err == nil {
				params = string(raw)
			}
		}
		_, err := tx.Exec(
			`INSERT INTO strategy_results (
				run_at, seed, initial_deposit, strategy, parameters,
				cagr, max_drawdown, volatility, sharpe_ratio, trade_count,
				total_fees, slippage_cost, tracking_error,
				time_in_market_ratio, time_in_market_penalty
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			now, seed, initialDeposit, res.Strategy, params,
			res.CAGR, res.MaxDrawdown, res.Volatility, res.SharpeRatio, res.TradeCount,
			res.TotalFees, res.SlippageCost, res.TrackingError,
			res.TimeInMarketRatio, res.TimeInMarketPenalty,
		)
		if err != nil {
			return fmt.Errorf("insert result for %s: %w", res.Strategy, err)
		}
	}
	return tx.Commit()
}

// Close releases the database handle.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
