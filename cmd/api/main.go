package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"stock-backtest/internal/api/handlers"
	"stock-backtest/internal/api/middleware"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	dataDir := os.Getenv("STOCKS_DATA_DIR")
	if dataDir == "" {
		dataDir = "raw_data"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middleware.Recovery())

	simulateHandler := handlers.NewSimulateHandler(dataDir)
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/simulate", simulateHandler.Simulate)
		v1.GET("/strategies", strategyHandler.List)
	}

	handler := cors.Default().Handler(router)

	log.Printf("[INFO] api listening on :%s (data dir %s)", port, dataDir)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
