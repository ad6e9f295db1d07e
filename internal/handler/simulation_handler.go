package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jktraffic/traffic-backend-go/internal/simulation"
	"github.com/jktraffic/traffic-backend-go/pkg/response"
)

// SimulationHandler handles HTTP requests for real-time simulation
type SimulationHandler struct {
	engine *simulation.Engine
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(engine *simulation.Engine) *SimulationHandler {
	return &SimulationHandler{engine: engine}
}

// RunCycle handles POST /api/v1/simulate. It fetches live weather, produces
// one reading per location and returns them for immediate display.
func (h *SimulationHandler) RunCycle(c *gin.Context) {
	readings, err := h.engine.RunCycle(c.Request.Context(), time.Now())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, readings)
}
