package handler

import (
	"errors"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jktraffic/traffic-backend-go/internal/analytics"
	"github.com/jktraffic/traffic-backend-go/internal/config"
	"github.com/jktraffic/traffic-backend-go/pkg/response"
)

// AnalyticsHandler handles HTTP requests for the aggregate views
type AnalyticsHandler struct {
	engine *analytics.Engine
	tables *config.Tables
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(engine *analytics.Engine, tables *config.Tables) *AnalyticsHandler {
	return &AnalyticsHandler{engine: engine, tables: tables}
}

// respondAnalytics maps the analytics error taxonomy onto HTTP statuses: an
// empty dataset or empty slice is a friendly 404 payload, not a fault.
func respondAnalytics(c *gin.Context, data interface{}, err error) {
	if err != nil {
		if errors.Is(err, analytics.ErrEmptyDataset) || errors.Is(err, analytics.ErrNoSamples) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, data)
}

// GetOverallStats handles GET /api/v1/stats/overall
func (h *AnalyticsHandler) GetOverallStats(c *gin.Context) {
	stats, err := h.engine.OverallStats()
	respondAnalytics(c, stats, err)
}

// GetHourlyPattern handles GET /api/v1/stats/hourly
func (h *AnalyticsHandler) GetHourlyPattern(c *gin.Context) {
	location := c.Query("location")
	if location != "" && !h.tables.HasLocation(location) {
		response.BadRequest(c, "Unknown location")
		return
	}

	pattern, err := h.engine.HourlyPattern(location)
	respondAnalytics(c, pattern, err)
}

// GetRainCorrelation handles GET /api/v1/stats/rain-correlation
func (h *AnalyticsHandler) GetRainCorrelation(c *gin.Context) {
	correlation, err := h.engine.RainCorrelation()
	respondAnalytics(c, correlation, err)
}

// GetLocationComparison handles GET /api/v1/stats/locations
func (h *AnalyticsHandler) GetLocationComparison(c *gin.Context) {
	comparison, err := h.engine.LocationComparison()
	respondAnalytics(c, comparison, err)
}

// GetPrediction handles GET /api/v1/predict
func (h *AnalyticsHandler) GetPrediction(c *gin.Context) {
	location := c.Query("location")
	if location == "" || !h.tables.HasLocation(location) {
		response.BadRequest(c, "Unknown or missing location parameter")
		return
	}

	hour, err := strconv.Atoi(c.Query("hour"))
	if err != nil || hour < 0 || hour > 23 {
		response.BadRequest(c, "Invalid hour parameter, expected 0-23")
		return
	}

	prediction, err := h.engine.PredictTraffic(location, hour)
	respondAnalytics(c, prediction, err)
}

// GetWeekdayWeekend handles GET /api/v1/stats/weekday-weekend
func (h *AnalyticsHandler) GetWeekdayWeekend(c *gin.Context) {
	comparison, err := h.engine.WeekdayVsWeekend()
	respondAnalytics(c, comparison, err)
}

// GetTopCongestion handles GET /api/v1/stats/top-congestion
func (h *AnalyticsHandler) GetTopCongestion(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(c, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	top, err := h.engine.TopCongestion(limit)
	respondAnalytics(c, top, err)
}

// GetCurrentStatus handles GET /api/v1/stats/current
func (h *AnalyticsHandler) GetCurrentStatus(c *gin.Context) {
	status, err := h.engine.CurrentStatus()
	respondAnalytics(c, status, err)
}

// monitoredLocation describes one configured measurement point.
type monitoredLocation struct {
	Name               string  `json:"name"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	DistanceFromCenter float64 `json:"distance_from_center_km"`
}

// GetMonitoredLocations handles GET /api/v1/locations
func (h *AnalyticsHandler) GetMonitoredLocations(c *gin.Context) {
	center := h.tables.Locations[0]
	locations := make([]monitoredLocation, 0, len(h.tables.Locations))
	for _, loc := range h.tables.Locations {
		locations = append(locations, monitoredLocation{
			Name:               loc.Name,
			Latitude:           loc.LatLng.Lat.Degrees(),
			Longitude:          loc.LatLng.Lng.Degrees(),
			DistanceFromCenter: roundKM(loc.DistanceKM(center)),
		})
	}
	response.Success(c, locations)
}

func roundKM(v float64) float64 {
	return math.Round(v*100) / 100
}
