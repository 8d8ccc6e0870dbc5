package backtest

import "math"

// TimeWeightedReturn compounds day-over-day returns with each day's return
// computed against the prior value plus that day's deposit, which removes
// the effect of cash flows from the result. With annualize the holding
// period return is converted to an annual rate over the ledger's calendar
// span.
func (l *Ledger) TimeWeightedReturn(annualize bool) float64 {
	if len(l.rows) < 2 {
		return 0
	}
	values := l.PortfolioValueSeries()
	holding := 1.0
	for i := 1; i < len(values); i++ {
		base := values[i-1] + l.rows[i].Deposited
		if base <= 0 {
			continue
		}
		holding *= values[i] / base
	}
	twr := holding - 1
	return l.annualized(twr, annualize)
}

// MoneyWeightedReturn solves for the internal rate of return of the cash
// flow series {-deposit per day, +final portfolio value} via Newton's
// method. A non-finite result degrades to 0 rather than propagating.
func (l *Ledger) MoneyWeightedReturn(annualize bool) float64 {
	if len(l.rows) == 0 {
		return 0
	}
	flows := make([]float64, 0, len(l.rows)+1)
	for _, r := range l.rows {
		flows = append(flows, -r.Deposited)
	}
	flows = append(flows, l.PortfolioValueAt(len(l.rows)-1))

	irr := internalRate(flows, 0.1)
	if math.IsNaN(irr) || math.IsInf(irr, 0) {
		return 0
	}
	return l.annualized(irr, annualize)
}

// annualized converts a holding period return to an annual rate over the
// ledger's calendar span. Spans under a day return the rate unchanged.
func (l *Ledger) annualized(r float64, annualize bool) float64 {
	days := l.rows[len(l.rows)-1].Date.Sub(l.rows[0].Date).Hours() / 24
	if !annualize || days <= 0 {
		return r
	}
	years := days / 365
	return math.Pow(1+r, 1/years) - 1
}

// internalRate runs Newton's method on the NPV of the period cash flows:
// up to 100 iterations, convergence at 1e-6 on successive rate changes.
func internalRate(flows []float64, guess float64) float64 {
	rate := guess
	for iter := 0; iter < 100; iter++ {
		npv := 0.0
		derivative := 0.0
		for i, cf := range flows {
			npv += cf / math.Pow(1+rate, float64(i))
			derivative += -float64(i) * cf / math.Pow(1+rate, float64(i+1))
		}
		if math.Abs(derivative) < 1e-12 {
			break
		}
		next := rate - npv/derivative
		if math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		if math.Abs(next-rate) < 1e-6 {
			return next
		}
		rate = next
	}
	return rate
}
