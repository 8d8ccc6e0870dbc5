package strategy

import (
	"stock-backtest/internal/backtest"
	"stock-backtest/internal/indicators"
	"stock-backtest/internal/model"
)

// NoInvestment never trades; the deposits just accumulate as cash.
func NoInvestment() backtest.StrategyFunc {
	return func(*backtest.Ledger) error { return nil }
}

// BuyAndHold attempts to buy all affordable shares of one ticker every day.
func BuyAndHold(ticker string, field model.Field) backtest.StrategyFunc {
	return func(l *backtest.Ledger) error {
		l.BuyAllShares(ticker, field)
		return nil
	}
}

// MarcusInterest accrues daily interest on the cash balance at the given
// annual percentage rate. A savings-account baseline with no market
// exposure.
func MarcusInterest(annualRate float64) backtest.StrategyFunc {
	daily := annualRate / 100 / 365
	return func(l *backtest.Ledger) error {
		if row := l.Today(); row != nil {
			row.Cash += daily * row.Cash
		}
		return nil
	}
}

// MAFCrossover trades one ticker on no-delay moving average signals: buy
// when the price dips below the short average while the long average is
// still rising, sell when the short average is above the long one, rolling
// over, with the price extended above it. Days with fewer than
// max(short, long) valid closes are a no-op.
func MAFCrossover(ticker string, shortWindow, longWindow int) backtest.StrategyFunc {
	need := shortWindow
	if longWindow > need {
		need = longWindow
	}
	return func(l *backtest.Ledger) error {
		closes := l.Window().ValidSeries(ticker, model.FieldClose)
		if len(closes) < need {
			return nil
		}
		yesterday := closes[:len(closes)-1]

		mafShort := indicators.NoDelayMovingAverage(closes, shortWindow)
		mafShortPrev := indicators.NoDelayMovingAverage(yesterday, shortWindow)
		mafLong := indicators.NoDelayMovingAverage(closes, longWindow)
		mafLongPrev := indicators.NoDelayMovingAverage(yesterday, longWindow)

		slopeShort := indicators.Slope([]float64{mafShortPrev, mafShort}, 2)
		slopeLong := indicators.Slope([]float64{mafLongPrev, mafLong}, 2)
		price := closes[len(closes)-1]

		// Temporary dip in a rising long-term trend.
		if price < mafShort && slopeLong > 0 {
			l.BuyAllShares(ticker, model.FieldClose)
		}
		// Momentum rolling over after being extended.
		if mafShort > mafLong && slopeShort < 0 && price > mafShort {
			l.SellAllShares(ticker, model.FieldClose)
		}
		return nil
	}
}

// OpenClose is a mean-reversion rule on the overnight gap: buy at today's
// open when yesterday's close was at or above it, otherwise sell at the
// open. Days without both a prior close and a current open are a no-op.
func OpenClose(ticker string) backtest.StrategyFunc {
	return func(l *backtest.Ledger) error {
		w := l.Window()
		closes := w.ValidSeries(ticker, model.FieldClose)
		opens := w.ValidSeries(ticker, model.FieldOpen)
		if len(closes) < 2 || len(opens) == 0 {
			return nil
		}
		prevClose := closes[len(closes)-2]
		todayOpen := opens[len(opens)-1]
		if prevClose >= todayOpen {
			l.BuyAllShares(ticker, model.FieldOpen)
		} else {
			l.SellAllShares(ticker, model.FieldOpen)
		}
		return nil
	}
}
