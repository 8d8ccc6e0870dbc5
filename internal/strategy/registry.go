package strategy

import (
	"fmt"
	"sort"

	"stock-backtest/internal/backtest"
	"stock-backtest/internal/model"
)

// Definition describes one strategy in the catalog: its metadata, its
// default parameter grid, and the builder that binds concrete parameters
// into a per-day StrategyFunc.
type Definition struct {
	Name           string
	Description    string
	RequiredFields []model.Field
	// Parameters maps each parameter name to its default sweep values.
	Parameters map[string][]any
	// Validate rejects parameter assignments before a run is built.
	Validate func(Params) error
	Build    func(Params) backtest.StrategyFunc
}

// ExpandParameters produces the cartesian product of the parameter grid,
// with per-parameter overrides replacing the default sweep values. An empty
// grid yields one empty assignment. Expansion order is deterministic.
func (d Definition) ExpandParameters(overrides map[string][]any) []Params {
	if len(d.Parameters) == 0 {
		return []Params{{}}
	}

	keys := make([]string, 0, len(d.Parameters))
	for k := range d.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	assignments := []Params{{}}
	for _, key := range keys {
		values := d.Parameters[key]
		if ov, ok := overrides[key]; ok {
			values = ov
		}
		next := make([]Params, 0, len(assignments)*len(values))
		for _, base := range assignments {
			for _, v := range values {
				combo := make(Params, len(base)+1)
				for bk, bv := range base {
					combo[bk] = bv
				}
				combo[key] = v
				next = append(next, combo)
			}
		}
		assignments = next
	}
	return assignments
}

// Registry holds the strategy catalog in registration order.
type Registry struct {
	order []string
	defs  map[string]Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds or replaces a strategy definition.
func (r *Registry) Register(def Definition) {
	if _, exists := r.defs[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.defs[def.Name] = def
}

// Available lists the registered strategy names in registration order.
func (r *Registry) Available() []string {
	return append([]string(nil), r.order...)
}

// Get looks up one definition by name.
func (r *Registry) Get(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Expand resolves the requested strategies into concrete engine runs: every
// strategy/parameter combination, with overrides applied. A nil enabled list
// selects the whole catalog. Unknown strategy names and invalid parameter
// assignments are configuration errors.
func (r *Registry) Expand(enabled []string, overrides map[string]map[string][]any) ([]backtest.Run, error) {
	names := enabled
	if len(names) == 0 {
		names = r.order
	}

	var runs []backtest.Run
	for _, name := range names {
		def, ok := r.defs[name]
		if !ok {
			return nil, fmt.Errorf("unknown strategy %q", name)
		}
		for _, params := range def.ExpandParameters(overrides[name]) {
			if def.Validate != nil {
				if err := def.Validate(params); err != nil {
					return nil, fmt.Errorf("strategy %s: %w", name, err)
				}
			}
			runs = append(runs, backtest.Run{
				Strategy: name,
				Params:   map[string]any(params),
				Func:     def.Build(params),
			})
		}
	}
	return runs, nil
}

// DefaultRegistry builds the reference catalog over the tracked tickers.
func DefaultRegistry(tickers []string) *Registry {
	tickerValues := make([]any, len(tickers))
	for i, t := range tickers {
		tickerValues[i] = t
	}
	validTicker := func(p Params) error {
		name := p.Str("ticker", "")
		for _, t := range tickers {
			if t == name {
				return nil
			}
		}
		return fmt.Errorf("ticker %q is not tracked", name)
	}

	r := NewRegistry()
	r.Register(Definition{
		Name:        "no_investment",
		Description: "Hold cash with no trades.",
		Build:       func(Params) backtest.StrategyFunc { return NoInvestment() },
	})
	r.Register(Definition{
		Name:           "buy_and_hold",
		Description:    "Buy all shares in a ticker and hold.",
		RequiredFields: []model.Field{model.FieldClose},
		Parameters:     map[string][]any{"ticker": tickerValues},
		Validate:       validTicker,
		Build: func(p Params) backtest.StrategyFunc {
			return BuyAndHold(p.Str("ticker", ""), model.FieldClose)
		},
	})
	r.Register(Definition{
		Name:           "open_close",
		Description:    "Buy or sell at the open based on the previous close.",
		RequiredFields: []model.Field{model.FieldOpen, model.FieldClose},
		Parameters:     map[string][]any{"ticker": tickerValues},
		Validate:       validTicker,
		Build: func(p Params) backtest.StrategyFunc {
			return OpenClose(p.Str("ticker", ""))
		},
	})
	r.Register(Definition{
		Name:           "maf_crossover",
		Description:    "No-delay moving average crossover with slope checks.",
		RequiredFields: []model.Field{model.FieldClose},
		Parameters: map[string][]any{
			"ticker":       tickerValues,
			"short_window": {10, 20},
			"long_window":  {100, 200},
		},
		Validate: validTicker,
		Build: func(p Params) backtest.StrategyFunc {
			return MAFCrossover(p.Str("ticker", ""), p.Int("short_window", 10), p.Int("long_window", 100))
		},
	})
	r.Register(Definition{
		Name:        "marcus_interest",
		Description: "Cash-only savings account accrual, no market exposure.",
		Parameters:  map[string][]any{"interest_rate": {2.25}},
		Build: func(p Params) backtest.StrategyFunc {
			return MarcusInterest(p.Num("interest_rate", 2.25))
		},
	})
	return r
}
