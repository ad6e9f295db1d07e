package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jktraffic/traffic-backend-go/internal/config"
	"github.com/jktraffic/traffic-backend-go/internal/handler"
	"github.com/jktraffic/traffic-backend-go/internal/middleware"
)

// Handlers bundles the handler set wired by main.
type Handlers struct {
	Analytics  *handler.AnalyticsHandler
	Traffic    *handler.TrafficHandler
	Simulation *handler.SimulationHandler
	Admin      *handler.AdminHandler
}

// SetupRouter builds the HTTP surface.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS for the dashboard frontend
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Traffic Analytics API is running",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := middleware.NewRateLimiter(120, time.Minute)

	api := r.Group("/api/v1")
	api.Use(limiter.Middleware())
	{
		stats := api.Group("/stats")
		{
			stats.GET("/overall", h.Analytics.GetOverallStats)
			stats.GET("/hourly", h.Analytics.GetHourlyPattern)
			stats.GET("/rain-correlation", h.Analytics.GetRainCorrelation)
			stats.GET("/locations", h.Analytics.GetLocationComparison)
			stats.GET("/weekday-weekend", h.Analytics.GetWeekdayWeekend)
			stats.GET("/top-congestion", h.Analytics.GetTopCongestion)
			stats.GET("/current", h.Analytics.GetCurrentStatus)
		}

		api.GET("/predict", h.Analytics.GetPrediction)
		api.GET("/locations", h.Analytics.GetMonitoredLocations)
		api.GET("/traffic/latest", h.Traffic.GetLatestTraffic)
		api.GET("/weather/latest", h.Traffic.GetLatestWeather)
		api.GET("/datasets", h.Traffic.GetDatasetCounts)

		api.POST("/simulate", h.Simulation.RunCycle)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin(cfg.JWTSecret))
		{
			admin.POST("/backfill", h.Admin.Backfill)
			admin.DELETE("/data", h.Admin.Reset)
		}
	}

	return r
}
