package backtest

import (
	"fmt"
	"math/rand"

	"stock-backtest/internal/model"
)

// PriceProvider supplies the shared trading calendar: the total day count,
// the tracked tickers, and for each day index the cumulative price window
// plus the deposit due that day.
type PriceProvider interface {
	TotalDays() int
	Tickers() []string
	DaySlice(n int) (*model.Window, float64)
}

// Run is one strategy/parameter combination to simulate. Func must be
// stateless across runs so the same Run can back independent seeds.
type Run struct {
	Strategy string
	Params   map[string]any
	Func     StrategyFunc
}

// Label renders the run the way reports name it.
func (r Run) Label() string {
	if len(r.Params) == 0 {
		return r.Strategy
	}
	return fmt.Sprintf("%s %v", r.Strategy, r.Params)
}

// EngineOptions configures a simulation engine.
type EngineOptions struct {
	TransactionCostRate float64
	SlippagePct         float64
	// BenchmarkTicker anchors the tracking error metric. Empty selects the
	// first tracked ticker.
	BenchmarkTicker string
	// PenaltyRate scales the time-in-market penalty. Zero selects the
	// default of 0.01.
	PenaltyRate float64
}

// Engine drives simulation runs: one ledger per requested run, a single
// shared day loop, and normalized metrics per ledger afterwards. All ledgers
// advance in lockstep on the same window and deposit, so runs stay
// comparable and reproducible.
type Engine struct {
	provider PriceProvider
	opts     EngineOptions
}

// Output bundles the finished ledgers with their normalized results.
type Output struct {
	Results []Result
	Ledgers []*Ledger
}

// New builds an engine over a price provider.
func New(provider PriceProvider, opts EngineOptions) (*Engine, error) {
	if provider == nil {
		return nil, fmt.Errorf("price provider is nil")
	}
	if opts.PenaltyRate == 0 {
		opts.PenaltyRate = 0.01
	}
	if opts.BenchmarkTicker != "" {
		found := false
		for _, t := range provider.Tickers() {
			if t == opts.BenchmarkTicker {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("benchmark ticker %q is not tracked", opts.BenchmarkTicker)
		}
	}
	return &Engine{provider: provider, opts: opts}, nil
}

// RunOnce executes one deterministic simulation: it builds one ledger per
// run, each with its own RNG derived from the seed and the run's position,
// walks every calendar day once with all ledgers in lockstep, and computes a
// Result per ledger. A strategy error aborts the whole run.
func (e *Engine) RunOnce(initialDeposit float64, runs []Run, seed int64) (*Output, error) {
	if len(runs) == 0 {
		return nil, fmt.Errorf("no strategy runs requested")
	}
	if e.provider.TotalDays() == 0 {
		return nil, fmt.Errorf("price provider has no days")
	}

	tickers := e.provider.Tickers()

	ledgers := make([]*Ledger, 0, len(runs))
	for i, run := range runs {
		ledger, err := NewLedger(run.Label(), tickers, initialDeposit, run.Func, LedgerOptions{
			TransactionCostRate: e.opts.TransactionCostRate,
			SlippagePct:         e.opts.SlippagePct,
		})
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", run.Label(), err)
		}
		// Each ledger draws from its own source so a randomized strategy's
		// sequence does not shift when other runs are added or removed.
		ledger.SetRand(rand.New(rand.NewSource(seed + int64(i))))
		ledgers = append(ledgers, ledger)
	}

	// All ledgers must finish day n before any starts day n+1: the day's
	// window and deposit are computed once and shared.
	for n := 1; n <= e.provider.TotalDays(); n++ {
		window, moneyToAdd := e.provider.DaySlice(n)
		for _, ledger := range ledgers {
			if err := ledger.AdvanceDay(window, moneyToAdd); err != nil {
				return nil, err
			}
		}
	}

	benchmark := e.opts.BenchmarkTicker
	if benchmark == "" && len(tickers) > 0 {
		benchmark = tickers[0]
	}

	results := make([]Result, 0, len(ledgers))
	for i, ledger := range ledgers {
		res := computeMetrics(ledger, benchmark, e.opts.PenaltyRate)
		res.Strategy = runs[i].Strategy
		res.Params = runs[i].Params
		results = append(results, res)
	}
	return &Output{Results: results, Ledgers: ledgers}, nil
}

// RunBatch repeats RunOnce once per seed, fully independently, for
// Monte-Carlo style repetition of randomized strategies.
func (e *Engine) RunBatch(initialDeposit float64, runs []Run, seeds []int64) ([]*Output, error) {
	outputs := make([]*Output, 0, len(seeds))
	for _, seed := range seeds {
		out, err := e.RunOnce(initialDeposit, runs, seed)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", seed, err)
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}
