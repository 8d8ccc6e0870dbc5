package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stock-backtest/internal/api/models"
	"stock-backtest/internal/strategy"
)

// StrategyHandler serves the strategy catalog.
type StrategyHandler struct{}

// NewStrategyHandler creates a strategy handler.
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// List handles GET /api/v1/strategies. The catalog is built without tickers,
// so ticker sweeps show as empty; their values depend on the dataset chosen
// at simulate time.
func (h *StrategyHandler) List(c *gin.Context) {
	registry := strategy.DefaultRegistry(nil)
	infos := make([]models.StrategyInfo, 0)
	for _, name := range registry.Available() {
		def, _ := registry.Get(name)
		infos = append(infos, models.StrategyInfo{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  def.Parameters,
		})
	}
	c.JSON(http.StatusOK, models.StrategiesResponse{Strategies: infos})
}
