// Package generator produces the historical synthetic dataset: one traffic
// reading per location per interval over a trailing window of days, with
// hourly simulated weather. The point of the exercise is volume, so rows are
// buffered and persisted in large batches.
package generator

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jktraffic/traffic-backend-go/internal/config"
	"github.com/jktraffic/traffic-backend-go/internal/models"
	"github.com/jktraffic/traffic-backend-go/internal/traffic"
)

const (
	trafficFlushThreshold = 5000
	weatherChunkSize      = 1000
	progressEvery         = 10000
)

var rowsGenerated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "traffic_backend_rows_generated_total",
	Help: "Total number of synthetic traffic readings generated.",
})

// TrafficStore persists traffic reading batches.
type TrafficStore interface {
	InsertBatch([]models.TrafficReading) error
	Count() (int64, error)
}

// WeatherStore persists weather reading batches.
type WeatherStore interface {
	InsertBatch([]models.WeatherReading) error
	Count() (int64, error)
}

// Summary reports what a backfill run produced.
type Summary struct {
	TrafficRows int `json:"traffic_rows"`
	WeatherRows int `json:"weather_rows"`
}

// Generator backfills historical readings.
type Generator struct {
	tables   *config.Tables
	rng      *rand.Rand
	traffic  TrafficStore
	weather  WeatherStore
	days     int
	interval time.Duration
}

// New creates a generator. The random source is injected so backfill runs
// are reproducible under test.
func New(tables *config.Tables, rng *rand.Rand, trafficStore TrafficStore, weatherStore WeatherStore, days int, interval time.Duration) *Generator {
	return &Generator{
		tables:   tables,
		rng:      rng,
		traffic:  trafficStore,
		weather:  weatherStore,
		days:     days,
		interval: interval,
	}
}

// hourWeather is the simulated weather for one hour of one day, cached so
// every sub-slot within the hour sees identical conditions.
type hourWeather struct {
	precipitation float64
	rainCategory  models.RainCategory
	temperature   float64
}

// simulateWeather draws weather for an hour of day. Rain is most likely in
// the morning and late-afternoon windows, with a wet-season bias applied on
// top of every band.
func (g *Generator) simulateWeather(hour, dayOfWeek int) hourWeather {
	rainProbability := 0.15
	switch {
	case hour >= 6 && hour <= 10:
		rainProbability = 0.45
	case hour >= 15 && hour <= 18:
		rainProbability = 0.40
	case hour >= 0 && hour <= 5:
		rainProbability = 0.10
	}
	rainProbability *= 1.2

	var w hourWeather
	if g.rng.Float64() < rainProbability {
		intensity := g.rng.Float64()
		switch {
		case intensity < 0.5:
			w.rainCategory = models.RainLight
			w.precipitation = g.uniform(0.5, 2.5)
		case intensity < 0.8:
			w.rainCategory = models.RainModerate
			w.precipitation = g.uniform(2.5, 7.0)
		case intensity < 0.95:
			w.rainCategory = models.RainHeavy
			w.precipitation = g.uniform(7.0, 15.0)
		default:
			w.rainCategory = models.RainExtreme
			w.precipitation = g.uniform(15.0, 30.0)
		}
	} else {
		w.rainCategory = models.RainNone
		w.precipitation = 0
	}

	switch {
	case hour >= 5 && hour < 10:
		w.temperature = g.uniform(25, 29)
	case hour >= 10 && hour < 15:
		w.temperature = g.uniform(29, 33)
	case hour >= 15 && hour < 20:
		w.temperature = g.uniform(27, 31)
	default:
		w.temperature = g.uniform(24, 28)
	}

	return w
}

// Backfill generates readings from now-days up to now and persists them.
// Traffic rows are flushed whenever the buffer exceeds the flush threshold
// after a simulated day, and once more at the end; weather rows are flushed
// at the end in fixed-size chunks. A storage failure aborts the run; rows
// already flushed stay persisted and the run must be restarted.
func (g *Generator) Backfill(now time.Time) (*Summary, error) {
	start := now.AddDate(0, 0, -g.days)

	slotsPerDay := int(24 * time.Hour / g.interval)
	totalExpected := g.days * slotsPerDay * len(g.tables.Locations)
	log.Printf("Generating historical data: target %d traffic rows, %s to %s, %d locations",
		totalExpected, start.Format("2006-01-02"), now.Format("2006-01-02"), len(g.tables.Locations))

	var trafficBatch []models.TrafficReading
	var weatherBatch []models.WeatherReading
	summary := &Summary{}
	count := 0

	for day := start; day.Before(now); day = day.AddDate(0, 0, 1) {
		dayOfWeek := traffic.DayIndex(day)

		slot := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		endOfDay := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())

		// Weather changes hourly, not per 5-minute slot.
		weatherCache := make(map[int]hourWeather)

		for !slot.After(endOfDay) && slot.Before(now) {
			hour := slot.Hour()

			w, ok := weatherCache[hour]
			if !ok {
				w = g.simulateWeather(hour, dayOfWeek)
				weatherCache[hour] = w
			}

			rainFactor := g.tables.RainImpact[w.rainCategory]

			for _, loc := range g.tables.Locations {
				base := g.tables.VehiclePattern[hour]
				locationFactor := g.uniform(0.8, 1.2)

				var dayFactor float64
				if dayOfWeek >= 5 {
					dayFactor = g.uniform(0.6, 0.85)
				} else {
					dayFactor = g.uniform(0.9, 1.1)
				}

				vehicles := int(float64(base) * locationFactor * dayFactor * rainFactor)

				trafficBatch = append(trafficBatch, models.TrafficReading{
					Timestamp:    slot,
					Location:     loc.Name,
					VehicleCount: vehicles,
					Condition:    traffic.ClassifyCondition(g.tables.ConditionBands, vehicles),
					SpeedKMH:     traffic.ComputeSpeed(g.rng, vehicles, rainFactor),
					Hour:         hour,
					IsPeak:       traffic.IsPeakHour(hour),
					RainFactor:   rainFactor,
					DataSource:   models.SourceHistorical,
				})
				count++
			}

			// Weather is recorded hourly, one row per location.
			if slot.Minute() == 0 {
				for _, loc := range g.tables.Locations {
					weatherBatch = append(weatherBatch, models.WeatherReading{
						Timestamp:     slot,
						Location:      loc.Name,
						Temperature:   round1(w.temperature),
						Precipitation: round2(w.precipitation),
						Windspeed:     round1(g.uniform(5, 25)),
						WeatherCode:   weatherCode(w.rainCategory),
						WeatherDesc:   weatherDesc(w.rainCategory),
						RainCategory:  w.rainCategory,
					})
				}
			}

			if count%progressEvery == 0 {
				log.Printf("Backfill progress: %d / %d rows (%.1f%%)",
					count, totalExpected, float64(count)/float64(totalExpected)*100)
			}

			slot = slot.Add(g.interval)
		}

		if len(trafficBatch) > trafficFlushThreshold {
			if err := g.flushTraffic(&trafficBatch, summary); err != nil {
				return nil, err
			}
		}
	}

	if err := g.flushTraffic(&trafficBatch, summary); err != nil {
		return nil, err
	}

	log.Printf("Saving %d weather records...", len(weatherBatch))
	for i := 0; i < len(weatherBatch); i += weatherChunkSize {
		end := i + weatherChunkSize
		if end > len(weatherBatch) {
			end = len(weatherBatch)
		}
		if err := g.weather.InsertBatch(weatherBatch[i:end]); err != nil {
			return nil, fmt.Errorf("failed to persist weather batch: %w", err)
		}
		summary.WeatherRows += end - i
	}

	trafficTotal, err := g.traffic.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count traffic rows: %w", err)
	}
	weatherTotal, err := g.weather.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count weather rows: %w", err)
	}
	log.Printf("Backfill complete: %d traffic rows and %d weather rows written (totals: %d traffic, %d weather)",
		summary.TrafficRows, summary.WeatherRows, trafficTotal, weatherTotal)

	return summary, nil
}

func (g *Generator) flushTraffic(batch *[]models.TrafficReading, summary *Summary) error {
	if len(*batch) == 0 {
		return nil
	}
	if err := g.traffic.InsertBatch(*batch); err != nil {
		return fmt.Errorf("failed to persist traffic batch: %w", err)
	}
	rowsGenerated.Add(float64(len(*batch)))
	summary.TrafficRows += len(*batch)
	*batch = (*batch)[:0]
	return nil
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func weatherCode(cat models.RainCategory) int {
	if cat == models.RainNone {
		return 0
	}
	return 61
}

func weatherDesc(cat models.RainCategory) string {
	if cat == models.RainNone {
		return "Clear"
	}
	return "Rain"
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
