package handler

import (
	"database/sql"
	"math/rand"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jktraffic/traffic-backend-go/internal/config"
	"github.com/jktraffic/traffic-backend-go/internal/generator"
	"github.com/jktraffic/traffic-backend-go/internal/repository"
	"github.com/jktraffic/traffic-backend-go/pkg/response"
)

// AdminHandler handles the destructive and heavy operator endpoints.
type AdminHandler struct {
	db          *sql.DB
	cfg         *config.Config
	tables      *config.Tables
	trafficRepo *repository.TrafficRepository
	weatherRepo *repository.WeatherRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *sql.DB, cfg *config.Config, tables *config.Tables,
	trafficRepo *repository.TrafficRepository, weatherRepo *repository.WeatherRepository) *AdminHandler {
	return &AdminHandler{
		db:          db,
		cfg:         cfg,
		tables:      tables,
		trafficRepo: trafficRepo,
		weatherRepo: weatherRepo,
	}
}

// Backfill handles POST /api/v1/admin/backfill. The run is synchronous; it
// has no cancellation and is expected to run to completion.
func (h *AdminHandler) Backfill(c *gin.Context) {
	days := h.cfg.HistoricalDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(c, "Invalid days parameter")
			return
		}
		days = parsed
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	gen := generator.New(h.tables, rng, h.trafficRepo, h.weatherRepo, days, h.cfg.DataInterval)

	summary, err := gen.Backfill(time.Now())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, summary)
}

// Reset handles DELETE /api/v1/admin/data. Destructive: clears both record
// sets.
func (h *AdminHandler) Reset(c *gin.Context) {
	if err := repository.ClearAll(h.db); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
