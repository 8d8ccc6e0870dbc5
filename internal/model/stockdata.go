package model

import "time"

// StockData pairs a PriceTable with the recurring deposit schedule. It is the
// engine's price history provider: one day slice plus the money to add on
// that day.
type StockData struct {
	table          *PriceTable
	dailyDeposit   float64
	monthlyDeposit float64
}

// NewStockData wraps a price table with a deposit schedule.
func NewStockData(table *PriceTable, monthlyDeposit, dailyDeposit float64) *StockData {
	return &StockData{table: table, monthlyDeposit: monthlyDeposit, dailyDeposit: dailyDeposit}
}

// SetDeposits replaces the recurring deposit amounts.
func (s *StockData) SetDeposits(monthlyDeposit, dailyDeposit float64) {
	s.monthlyDeposit = monthlyDeposit
	s.dailyDeposit = dailyDeposit
}

// TotalDays returns the calendar length of the underlying table.
func (s *StockData) TotalDays() int { return s.table.Len() }

// Tickers returns the tracked symbols in stable order.
func (s *StockData) Tickers() []string { return s.table.Tickers() }

// Table exposes the underlying price table for reporting collaborators.
func (s *StockData) Table() *PriceTable { return s.table }

// DaySlice returns the window covering the first n days together with the
// deposit due on the window's last day: the daily amount, plus the monthly
// amount when that day is the first of a calendar month.
func (s *StockData) DaySlice(n int) (*Window, float64) {
	w := s.table.Window(n)
	money := s.dailyDeposit
	if w.Days() > 0 && w.Today().Day() == 1 {
		money += s.monthlyDeposit
	}
	return w, money
}

// LimitTimeframe trims the table to [start, end] before a simulation starts.
func (s *StockData) LimitTimeframe(start, end time.Time) {
	s.table.LimitTimeframe(start, end)
}
