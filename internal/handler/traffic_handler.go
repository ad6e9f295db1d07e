package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jktraffic/traffic-backend-go/internal/repository"
	"github.com/jktraffic/traffic-backend-go/pkg/response"
)

// TrafficHandler handles HTTP requests for raw readings
type TrafficHandler struct {
	trafficRepo *repository.TrafficRepository
	weatherRepo *repository.WeatherRepository
}

// NewTrafficHandler creates a new traffic handler
func NewTrafficHandler(trafficRepo *repository.TrafficRepository, weatherRepo *repository.WeatherRepository) *TrafficHandler {
	return &TrafficHandler{trafficRepo: trafficRepo, weatherRepo: weatherRepo}
}

// GetLatestTraffic handles GET /api/v1/traffic/latest
func (h *TrafficHandler) GetLatestTraffic(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(c, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	readings, err := h.trafficRepo.Latest(limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, readings)
}

// GetLatestWeather handles GET /api/v1/weather/latest
func (h *TrafficHandler) GetLatestWeather(c *gin.Context) {
	readings, err := h.weatherRepo.LatestPerLocation()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, readings)
}

// GetDatasetCounts handles GET /api/v1/datasets, reporting the number of
// persisted rows per record set.
func (h *TrafficHandler) GetDatasetCounts(c *gin.Context) {
	trafficCount, err := h.trafficRepo.Count()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	weatherCount, err := h.weatherRepo.Count()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"traffic_rows": trafficCount,
		"weather_rows": weatherCount,
	})
}
