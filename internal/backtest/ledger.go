package backtest

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"stock-backtest/internal/model"
)

// StrategyFunc is a bound per-day trading rule. It is invoked once per
// simulated day, after the day's deposit has been posted, and may call the
// ledger's buy/sell operations using only the visible price window. An error
// aborts the ledger's run.
type StrategyFunc func(*Ledger) error

// Row is one finalized trading day: cash on hand, shares held per ticker,
// and the money deposited that day. Rows are appended once per AdvanceDay
// and never mutated afterwards.
type Row struct {
	Date      time.Time
	Cash      float64
	Positions map[string]float64
	Deposited float64
}

func (r Row) clone() Row {
	positions := make(map[string]float64, len(r.Positions))
	for k, v := range r.Positions {
		positions[k] = v
	}
	return Row{Date: r.Date, Cash: r.Cash, Positions: positions, Deposited: r.Deposited}
}

// LedgerOptions carries the friction model for a ledger.
type LedgerOptions struct {
	// TransactionCostRate is the proportional fee per trade, >= 0.
	TransactionCostRate float64
	// SlippagePct worsens the execution price on both sides, in [0, 1).
	SlippagePct float64
}

// Ledger is the per-strategy running state of one simulation: an append-only
// row per trading day plus friction accumulators. Trade execution happens on
// the current day's row while AdvanceDay is running the bound strategy; the
// row is finalized and appended when the strategy returns.
type Ledger struct {
	Name string

	tickers   []string
	principal float64
	costRate  float64
	slippage  float64
	strat     StrategyFunc

	rows    []Row
	current *Row
	window  *model.Window
	rng     *rand.Rand

	TotalFees     float64
	TotalSlippage float64
}

// NewLedger builds an empty ledger bound to a strategy. The principal is
// credited once, on the first AdvanceDay call.
func NewLedger(name string, tickers []string, principal float64, strat StrategyFunc, opts LedgerOptions) (*Ledger, error) {
	if opts.TransactionCostRate < 0 {
		return nil, fmt.Errorf("transaction cost rate must be >= 0, got %g", opts.TransactionCostRate)
	}
	if opts.SlippagePct < 0 || opts.SlippagePct >= 1 {
		return nil, fmt.Errorf("slippage pct must be in [0, 1), got %g", opts.SlippagePct)
	}
	return &Ledger{
		Name:      name,
		tickers:   append([]string(nil), tickers...),
		principal: principal,
		costRate:  opts.TransactionCostRate,
		slippage:  opts.SlippagePct,
		strat:     strat,
	}, nil
}

// Len returns the number of days processed.
func (l *Ledger) Len() int { return len(l.rows) }

// Rows exposes the finalized day records, read-only, for reporting.
func (l *Ledger) Rows() []Row { return l.rows }

// Tickers returns the symbols this ledger tracks.
func (l *Ledger) Tickers() []string { return l.tickers }

// Window returns the latest visible price history.
func (l *Ledger) Window() *model.Window { return l.window }

// Rand returns the ledger's own RNG seeded by the engine, for strategies
// that randomize. Nil when the ledger is driven outside an engine run.
func (l *Ledger) Rand() *rand.Rand { return l.rng }

// SetRand installs the run-scoped RNG. Called once by the engine.
func (l *Ledger) SetRand(rng *rand.Rand) { l.rng = rng }

// AdvanceDay processes one trading day. The new row copies forward the prior
// day's cash and positions (zeros on the first day), credits the deposit
// (plus the principal on day one) before the strategy runs, then invokes the
// bound strategy. A strategy error aborts the day: the row is not appended
// and the error propagates to the caller.
func (l *Ledger) AdvanceDay(window *model.Window, moneyToAdd float64) error {
	if window == nil || window.Days() == 0 {
		return fmt.Errorf("ledger %s: empty price window", l.Name)
	}
	l.window = window

	var row Row
	deposit := moneyToAdd
	if len(l.rows) == 0 {
		row = Row{Date: window.Today(), Positions: make(map[string]float64, len(l.tickers))}
		for _, t := range l.tickers {
			row.Positions[t] = 0
		}
		deposit += l.principal
	} else {
		row = l.rows[len(l.rows)-1].clone()
		row.Date = window.Today()
	}
	row.Deposited = deposit
	row.Cash += deposit

	l.current = &row
	defer func() { l.current = nil }()

	if l.strat != nil {
		if err := l.strat(l); err != nil {
			return fmt.Errorf("ledger %s day %s: %w", l.Name, row.Date.Format("2006-01-02"), err)
		}
	}

	l.rows = append(l.rows, row)
	return nil
}

// Today returns the in-progress day row, or nil outside an AdvanceDay call.
func (l *Ledger) Today() *Row { return l.current }

// BuyAllShares spends as much of today's cash as whole shares allow at the
// most recent valid price for ticker/field, worsened by slippage and charged
// the transaction cost. No valid price, no cash, or a zero share count make
// it a no-op.
func (l *Ledger) BuyAllShares(ticker string, field model.Field) {
	row := l.current
	if row == nil || l.window == nil {
		return
	}
	base, ok := l.window.LastValid(ticker, field)
	if !ok || base <= 0 || row.Cash <= 0 {
		return
	}

	effective := base * (1 + l.slippage)
	perShare := effective * (1 + l.costRate)
	shares := math.Floor(row.Cash / perShare)
	if shares <= 0 {
		return
	}

	tradeValue := shares * effective
	fee := tradeValue * l.costRate
	row.Cash = math.Max(0, row.Cash-tradeValue-fee)
	row.Positions[ticker] += shares
	l.TotalFees += fee
	l.TotalSlippage += math.Max(0, shares*(effective-base))
}

// SellAllShares liquidates today's position in ticker at the most recent
// valid price for field, worsened by slippage and charged the transaction
// cost. No position or no valid price make it a no-op.
func (l *Ledger) SellAllShares(ticker string, field model.Field) {
	row := l.current
	if row == nil || l.window == nil {
		return
	}
	shares := row.Positions[ticker]
	if shares <= 0 {
		return
	}
	base, ok := l.window.LastValid(ticker, field)
	if !ok {
		return
	}

	effective := base * (1 - l.slippage)
	tradeValue := shares * effective
	fee := tradeValue * l.costRate
	row.Cash = math.Max(0, row.Cash+tradeValue-fee)
	row.Positions[ticker] = 0
	l.TotalFees += fee
	l.TotalSlippage += math.Max(0, shares*(base-effective))
}

// PortfolioValueAt values day i: cash plus each position at the last valid
// close at or before that day. A ticker with no valid price yet contributes
// zero.
func (l *Ledger) PortfolioValueAt(i int) float64 {
	row := l.rows[i]
	total := row.Cash
	for _, t := range l.tickers {
		pos := row.Positions[t]
		if pos == 0 {
			continue
		}
		if price, ok := l.window.LastValidAt(t, model.FieldClose, i); ok {
			total += price * pos
		}
	}
	return total
}

// PortfolioValueSeries returns one portfolio value per processed day.
func (l *Ledger) PortfolioValueSeries() []float64 {
	out := make([]float64, len(l.rows))
	for i := range l.rows {
		out[i] = l.PortfolioValueAt(i)
	}
	return out
}

// DrawdownSeries returns value[i]/runningMax(value[0..i]) - 1 per day, so
// every element is <= 0 and peak days read exactly 0.
func (l *Ledger) DrawdownSeries() []float64 {
	values := l.PortfolioValueSeries()
	out := make([]float64, len(values))
	runningMax := math.Inf(-1)
	for i, v := range values {
		if v > runningMax {
			runningMax = v
		}
		if runningMax == 0 {
			out[i] = 0
			continue
		}
		out[i] = v/runningMax - 1
	}
	return out
}

// Summary renders the end-of-run state the way the CLI reports it.
func (l *Ledger) Summary() string {
	if len(l.rows) == 0 {
		return fmt.Sprintf("strat %s: no days processed", l.Name)
	}
	last := l.rows[len(l.rows)-1]
	s := fmt.Sprintf("strat %s:\n", l.Name)
	for _, t := range l.tickers {
		if last.Positions[t] != 0 {
			s += fmt.Sprintf("  shares of %s owned: %g\n", t, last.Positions[t])
		}
	}
	s += fmt.Sprintf("  bank account left over: %.2f\n", last.Cash)
	s += fmt.Sprintf("  total value: %.2f", l.PortfolioValueAt(len(l.rows)-1))
	return s
}
