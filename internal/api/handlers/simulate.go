package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stock-backtest/internal/analysis"
	"stock-backtest/internal/api/models"
	"stock-backtest/internal/backtest"
	"stock-backtest/internal/data"
	"stock-backtest/internal/model"
	"stock-backtest/internal/strategy"
)

// SimulateHandler runs simulations over CSV datasets under a fixed data
// directory.
type SimulateHandler struct {
	DataDir string
}

// NewSimulateHandler creates a simulate handler rooted at dataDir.
func NewSimulateHandler(dataDir string) *SimulateHandler {
	return &SimulateHandler{DataDir: dataDir}
}

// Simulate handles POST /api/v1/simulate.
func (h *SimulateHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	table, err := data.LoadTickers(h.DataDir, req.Tickers)
	if err != nil {
		badRequest(c, "DATA_LOAD_ERROR", err.Error())
		return
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		badRequest(c, "INVALID_DATE_RANGE", err.Error())
		return
	}
	if !start.IsZero() || !end.IsZero() {
		table.LimitTimeframe(start, end)
	}

	stock := model.NewStockData(table, req.MonthlyDeposit, req.DailyDeposit)
	engine, err := backtest.New(stock, backtest.EngineOptions{
		TransactionCostRate: req.TransactionCostRate,
		SlippagePct:         req.SlippagePct,
		BenchmarkTicker:     req.Benchmark,
		PenaltyRate:         req.PenaltyRate,
	})
	if err != nil {
		badRequest(c, "INVALID_CONFIG", err.Error())
		return
	}

	registry := strategy.DefaultRegistry(stock.Tickers())
	enabled := make([]string, 0, len(req.Strategies))
	overrides := make(map[string]map[string][]any, len(req.Strategies))
	for _, sel := range req.Strategies {
		enabled = append(enabled, sel.Name)
		if len(sel.Params) > 0 {
			overrides[sel.Name] = sel.Params
		}
	}
	runs, err := registry.Expand(enabled, overrides)
	if err != nil {
		badRequest(c, "INVALID_STRATEGY", err.Error())
		return
	}

	out, err := engine.RunOnce(req.InitialDeposit, runs, req.Seed)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "SIMULATION_FAILED", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.SimulateResponse{
		Days:    stock.TotalDays(),
		Tickers: stock.Tickers(),
		Seed:    req.Seed,
		Results: out.Results,
		Ranked:  analysis.RankResults(out.Results),
	})
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: message},
	})
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	var s, e time.Time
	var err error
	if start != "" {
		if s, err = time.Parse("2006-01-02", start); err != nil {
			return s, e, err
		}
	}
	if end != "" {
		if e, err = time.Parse("2006-01-02", end); err != nil {
			return s, e, err
		}
	}
	return s, e, nil
}
