// Package simulation produces one fresh traffic reading per location for the
// current instant, using live weather where available. The condition and
// speed formulas are shared with the historical generator so both data
// sources stay comparable.
package simulation

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jktraffic/traffic-backend-go/internal/config"
	"github.com/jktraffic/traffic-backend-go/internal/models"
	"github.com/jktraffic/traffic-backend-go/internal/traffic"
)

var cyclesRun = promauto.NewCounter(prometheus.CounterOpts{
	Name: "traffic_backend_simulation_cycles_total",
	Help: "Total number of completed real-time simulation cycles.",
})

// Source supplies current weather for the configured locations. A partial or
// empty result means some or all locations fall back to dry conditions.
type Source interface {
	CurrentAll(ctx context.Context) []models.WeatherReading
}

// TrafficStore persists traffic reading batches.
type TrafficStore interface {
	InsertBatch([]models.TrafficReading) error
}

// WeatherStore persists weather reading batches.
type WeatherStore interface {
	InsertBatch([]models.WeatherReading) error
}

// Engine runs real-time simulation cycles.
type Engine struct {
	tables  *config.Tables
	rng     *rand.Rand
	source  Source
	traffic TrafficStore
	weather WeatherStore
}

// New creates a simulation engine.
func New(tables *config.Tables, rng *rand.Rand, source Source, trafficStore TrafficStore, weatherStore WeatherStore) *Engine {
	return &Engine{
		tables:  tables,
		rng:     rng,
		source:  source,
		traffic: trafficStore,
		weather: weatherStore,
	}
}

// SimulateLocation produces one reading for a location at the given instant.
// When weather is nil the rain factor defaults to 1.0: losing weather must
// never block traffic simulation.
func (e *Engine) SimulateLocation(now time.Time, location string, weather *models.WeatherReading) models.TrafficReading {
	hour := now.Hour()

	base := e.tables.VehiclePattern[hour]
	locationVariance := 0.8 + e.rng.Float64()*0.4
	vehicles := int(float64(base) * locationVariance)

	rainFactor := 1.0
	if weather != nil {
		if factor, ok := e.tables.RainImpact[weather.RainCategory]; ok {
			rainFactor = factor
		}
		vehicles = int(float64(vehicles) * rainFactor)
	}

	return models.TrafficReading{
		Timestamp:    now,
		Location:     location,
		VehicleCount: vehicles,
		Condition:    traffic.ClassifyCondition(e.tables.ConditionBands, vehicles),
		SpeedKMH:     traffic.ComputeSpeed(e.rng, vehicles, rainFactor),
		Hour:         hour,
		IsPeak:       traffic.IsPeakHour(hour),
		RainFactor:   rainFactor,
		DataSource:   models.SourceRealTime,
	}
}

// RunCycle fetches weather for every location, simulates all locations and
// persists the results as one batch. The produced readings are returned for
// immediate display.
func (e *Engine) RunCycle(ctx context.Context, now time.Time) ([]models.TrafficReading, error) {
	fetched := e.source.CurrentAll(ctx)
	if len(fetched) > 0 {
		if err := e.weather.InsertBatch(fetched); err != nil {
			return nil, fmt.Errorf("failed to persist weather readings: %w", err)
		}
	}

	weatherByLocation := make(map[string]*models.WeatherReading, len(fetched))
	for i := range fetched {
		weatherByLocation[fetched[i].Location] = &fetched[i]
	}

	readings := make([]models.TrafficReading, 0, len(e.tables.Locations))
	for _, loc := range e.tables.Locations {
		reading := e.SimulateLocation(now, loc.Name, weatherByLocation[loc.Name])
		readings = append(readings, reading)
		log.Printf("simulated %s: %d vehicles, %s, %.1f km/h",
			loc.Name, reading.VehicleCount, reading.Condition, reading.SpeedKMH)
	}

	if err := e.traffic.InsertBatch(readings); err != nil {
		return nil, fmt.Errorf("failed to persist traffic readings: %w", err)
	}

	cyclesRun.Inc()
	return readings, nil
}
