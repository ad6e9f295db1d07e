// Package analytics computes descriptive statistics over the full persisted
// traffic dataset. Every operation is read-only and recomputed on demand;
// the dataset is bounded by design, so there is no caching or incremental
// maintenance.
package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/jktraffic/traffic-backend-go/internal/config"
	"github.com/jktraffic/traffic-backend-go/internal/models"
	"github.com/jktraffic/traffic-backend-go/internal/traffic"
)

// Analytics error taxonomy. These are rendered as friendly messages by the
// API layer rather than treated as faults.
var (
	// ErrEmptyDataset signals that a query ran against zero rows.
	ErrEmptyDataset = errors.New("no traffic data available")

	// ErrNoSamples signals a prediction request for a location/hour slice
	// with no historical rows.
	ErrNoSamples = errors.New("no historical data for this hour")
)

// TrafficSource reads the persisted traffic dataset, newest first.
type TrafficSource interface {
	All() ([]models.TrafficReading, error)
	ByLocation(location string) ([]models.TrafficReading, error)
}

// Engine computes the aggregate views.
type Engine struct {
	source TrafficSource
	bands  []config.ConditionBand
}

// New creates an analytics engine. The condition threshold table is the same
// one the generator classifies with, so predictions are labeled consistently.
func New(source TrafficSource, bands []config.ConditionBand) *Engine {
	return &Engine{source: source, bands: bands}
}

// OverallStats summarizes the entire dataset.
func (e *Engine) OverallStats() (*models.OverallStats, error) {
	readings, err := e.source.All()
	if err != nil {
		return nil, fmt.Errorf("failed to load traffic data: %w", err)
	}
	if len(readings) == 0 {
		return nil, ErrEmptyDataset
	}

	vehicles := vehicleCounts(readings)
	speeds := speedValues(readings)

	locations := make(map[string]struct{})
	peak := 0
	rainy := 0
	for _, r := range readings {
		locations[r.Location] = struct{}{}
		if r.IsPeak {
			peak++
		}
		if r.RainFactor > 1.0 {
			rainy++
		}
	}

	return &models.OverallStats{
		TotalRecords:        len(readings),
		TotalLocations:      len(locations),
		AvgVehicles:         round1(stat.Mean(vehicles, nil)),
		MaxVehicles:         int(maxOf(vehicles)),
		MinVehicles:         int(minOf(vehicles)),
		AvgSpeed:            round1(stat.Mean(speeds, nil)),
		MostCommonCondition: mostCommonCondition(readings),
		PeakRecords:         peak,
		RainyRecords:        rainy,
	}, nil
}

// HourlyPattern groups the dataset by hour of day. An empty location means
// the whole dataset.
func (e *Engine) HourlyPattern(location string) ([]models.HourlyStat, error) {
	readings, err := e.load(location)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		vehicles []float64
		speeds   []float64
		max      int
	}
	buckets := make(map[int]*bucket)
	for _, r := range readings {
		b, ok := buckets[r.Hour]
		if !ok {
			b = &bucket{}
			buckets[r.Hour] = b
		}
		b.vehicles = append(b.vehicles, float64(r.VehicleCount))
		b.speeds = append(b.speeds, r.SpeedKMH)
		if r.VehicleCount > b.max {
			b.max = r.VehicleCount
		}
	}

	var pattern []models.HourlyStat
	for hour := 0; hour < 24; hour++ {
		b, ok := buckets[hour]
		if !ok {
			continue
		}
		pattern = append(pattern, models.HourlyStat{
			Hour:        hour,
			AvgVehicles: round1(stat.Mean(b.vehicles, nil)),
			MaxVehicles: b.max,
			AvgSpeed:    round1(stat.Mean(b.speeds, nil)),
			Count:       len(b.vehicles),
		})
	}

	return pattern, nil
}

// Rain-factor bucket labels, from driest to wettest.
var rainBucketLabels = []string{"None", "Light", "Moderate", "Heavy", "Extreme"}

func rainBucket(factor float64) string {
	switch {
	case factor <= 1.0:
		return "None"
	case factor <= 1.3:
		return "Light"
	case factor <= 1.6:
		return "Moderate"
	case factor <= 1.8:
		return "Heavy"
	default:
		return "Extreme"
	}
}

// RainCorrelation relates rain intensity to congestion: per-bucket aggregates
// plus the Pearson correlation between rain factor and vehicle count.
func (e *Engine) RainCorrelation() (*models.RainCorrelation, error) {
	readings, err := e.source.All()
	if err != nil {
		return nil, fmt.Errorf("failed to load traffic data: %w", err)
	}
	if len(readings) == 0 {
		return nil, ErrEmptyDataset
	}

	type bucket struct {
		vehicles []float64
		speeds   []float64
		max      int
	}
	buckets := make(map[string]*bucket)

	rainFactors := make([]float64, len(readings))
	vehicles := make([]float64, len(readings))
	for i, r := range readings {
		rainFactors[i] = r.RainFactor
		vehicles[i] = float64(r.VehicleCount)

		label := rainBucket(r.RainFactor)
		b, ok := buckets[label]
		if !ok {
			b = &bucket{}
			buckets[label] = b
		}
		b.vehicles = append(b.vehicles, float64(r.VehicleCount))
		b.speeds = append(b.speeds, r.SpeedKMH)
		if r.VehicleCount > b.max {
			b.max = r.VehicleCount
		}
	}

	var byCategory []models.RainBucketStat
	for _, label := range rainBucketLabels {
		b, ok := buckets[label]
		if !ok {
			continue
		}
		byCategory = append(byCategory, models.RainBucketStat{
			Category:    label,
			AvgVehicles: round1(stat.Mean(b.vehicles, nil)),
			MaxVehicles: b.max,
			AvgSpeed:    round1(stat.Mean(b.speeds, nil)),
			Count:       len(b.vehicles),
		})
	}

	coefficient := stat.Correlation(rainFactors, vehicles, nil)
	if math.IsNaN(coefficient) {
		coefficient = 0
	}

	return &models.RainCorrelation{
		Coefficient:     round3(coefficient),
		StatsByCategory: byCategory,
		Interpretation:  InterpretCorrelation(coefficient),
	}, nil
}

// InterpretCorrelation maps a coefficient to a qualitative label. The bands
// only grade positive strength; a strong negative correlation reads as
// negligible. Kept to match the established reporting semantics.
func InterpretCorrelation(coefficient float64) string {
	switch {
	case coefficient >= 0.7:
		return "Strong positive correlation: rain strongly increases congestion"
	case coefficient >= 0.4:
		return "Moderate positive correlation: rain noticeably increases congestion"
	case coefficient >= 0.2:
		return "Weak positive correlation: rain slightly increases congestion"
	default:
		return "Negligible correlation: rain has little effect on congestion"
	}
}

// LocationComparison aggregates per location, worst average congestion first.
func (e *Engine) LocationComparison() ([]models.LocationStat, error) {
	readings, err := e.source.All()
	if err != nil {
		return nil, fmt.Errorf("failed to load traffic data: %w", err)
	}
	if len(readings) == 0 {
		return nil, ErrEmptyDataset
	}

	type bucket struct {
		vehicles []float64
		speeds   []float64
		max      int
		min      int
		gridlock int
	}
	buckets := make(map[string]*bucket)
	for _, r := range readings {
		b, ok := buckets[r.Location]
		if !ok {
			b = &bucket{min: r.VehicleCount, max: r.VehicleCount}
			buckets[r.Location] = b
		}
		b.vehicles = append(b.vehicles, float64(r.VehicleCount))
		b.speeds = append(b.speeds, r.SpeedKMH)
		if r.VehicleCount > b.max {
			b.max = r.VehicleCount
		}
		if r.VehicleCount < b.min {
			b.min = r.VehicleCount
		}
		if r.Condition == models.ConditionGridlock {
			b.gridlock++
		}
	}

	comparison := make([]models.LocationStat, 0, len(buckets))
	for location, b := range buckets {
		total := len(b.vehicles)
		comparison = append(comparison, models.LocationStat{
			Location:      location,
			AvgVehicles:   round1(stat.Mean(b.vehicles, nil)),
			MaxVehicles:   b.max,
			MinVehicles:   b.min,
			AvgSpeed:      round1(stat.Mean(b.speeds, nil)),
			TotalRecords:  total,
			GridlockCount: b.gridlock,
			GridlockPct:   round1(float64(b.gridlock) / float64(total) * 100),
		})
	}

	sort.Slice(comparison, func(i, j int) bool {
		if comparison[i].AvgVehicles != comparison[j].AvgVehicles {
			return comparison[i].AvgVehicles > comparison[j].AvgVehicles
		}
		return comparison[i].Location < comparison[j].Location
	})

	return comparison, nil
}

// PredictTraffic projects the historical average for a location and hour.
// The range is mean ± one standard deviation. This is a statistical summary
// of past readings, not a fitted model.
func (e *Engine) PredictTraffic(location string, targetHour int) (*models.Prediction, error) {
	readings, err := e.source.ByLocation(location)
	if err != nil {
		return nil, fmt.Errorf("failed to load traffic data: %w", err)
	}
	if len(readings) == 0 {
		return nil, ErrEmptyDataset
	}

	var vehicles, speeds []float64
	for _, r := range readings {
		if r.Hour == targetHour {
			vehicles = append(vehicles, float64(r.VehicleCount))
			speeds = append(speeds, r.SpeedKMH)
		}
	}
	if len(vehicles) == 0 {
		return nil, ErrNoSamples
	}

	mean := stat.Mean(vehicles, nil)
	std := 0.0
	if len(vehicles) > 1 {
		std = stat.StdDev(vehicles, nil)
	}

	predictedAvg := int(mean)
	predictedMin := int(mean - std)
	if predictedMin < 0 {
		predictedMin = 0
	}

	return &models.Prediction{
		Location:           location,
		TargetHour:         targetHour,
		PredictedMin:       predictedMin,
		PredictedAvg:       predictedAvg,
		PredictedMax:       int(mean + std),
		PredictedSpeed:     round1(stat.Mean(speeds, nil)),
		PredictedCondition: traffic.ClassifyCondition(e.bands, predictedAvg),
		Confidence:         "Medium (based on historical averages)",
		SamplesUsed:        len(vehicles),
	}, nil
}

// WeekdayVsWeekend partitions the dataset into Mon-Fri and Sat-Sun. An empty
// partition reports zeros rather than an error.
func (e *Engine) WeekdayVsWeekend() (*models.DayTypeComparison, error) {
	readings, err := e.source.All()
	if err != nil {
		return nil, fmt.Errorf("failed to load traffic data: %w", err)
	}
	if len(readings) == 0 {
		return nil, ErrEmptyDataset
	}

	var weekday, weekend []models.TrafficReading
	for _, r := range readings {
		if traffic.IsWeekend(r.Timestamp) {
			weekend = append(weekend, r)
		} else {
			weekday = append(weekday, r)
		}
	}

	return &models.DayTypeComparison{
		Weekday: dayTypeStats("Weekday (Mon-Fri)", weekday),
		Weekend: dayTypeStats("Weekend (Sat-Sun)", weekend),
	}, nil
}

// TopCongestion returns the k readings with the largest vehicle counts. Ties
// keep the underlying storage order.
func (e *Engine) TopCongestion(k int) ([]models.TrafficReading, error) {
	readings, err := e.source.All()
	if err != nil {
		return nil, fmt.Errorf("failed to load traffic data: %w", err)
	}
	if len(readings) == 0 {
		return nil, ErrEmptyDataset
	}
	if k <= 0 {
		k = 10
	}

	top := make([]models.TrafficReading, len(readings))
	copy(top, readings)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].VehicleCount > top[j].VehicleCount
	})

	if len(top) > k {
		top = top[:k]
	}
	return top, nil
}

// CurrentStatus returns the most recent reading per location, ordered by
// location name.
func (e *Engine) CurrentStatus() ([]models.TrafficReading, error) {
	readings, err := e.source.All()
	if err != nil {
		return nil, fmt.Errorf("failed to load traffic data: %w", err)
	}
	if len(readings) == 0 {
		return nil, ErrEmptyDataset
	}

	latest := make(map[string]models.TrafficReading)
	for _, r := range readings {
		existing, ok := latest[r.Location]
		if !ok || r.Timestamp.After(existing.Timestamp) {
			latest[r.Location] = r
		}
	}

	status := make([]models.TrafficReading, 0, len(latest))
	for _, r := range latest {
		status = append(status, r)
	}
	sort.Slice(status, func(i, j int) bool {
		return status[i].Location < status[j].Location
	})

	return status, nil
}

func (e *Engine) load(location string) ([]models.TrafficReading, error) {
	var readings []models.TrafficReading
	var err error
	if location != "" {
		readings, err = e.source.ByLocation(location)
	} else {
		readings, err = e.source.All()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load traffic data: %w", err)
	}
	if len(readings) == 0 {
		return nil, ErrEmptyDataset
	}
	return readings, nil
}

// mostCommonCondition returns the modal condition; ties go to the condition
// encountered first in dataset order.
func mostCommonCondition(readings []models.TrafficReading) models.Condition {
	freq := make(map[models.Condition]int)
	firstSeen := make(map[models.Condition]int)
	for i, r := range readings {
		if _, ok := freq[r.Condition]; !ok {
			firstSeen[r.Condition] = i
		}
		freq[r.Condition]++
	}

	var best models.Condition
	bestCount := -1
	for cond, count := range freq {
		if count > bestCount || (count == bestCount && firstSeen[cond] < firstSeen[best]) {
			best = cond
			bestCount = count
		}
	}
	return best
}

func dayTypeStats(label string, readings []models.TrafficReading) models.DayTypeStats {
	s := models.DayTypeStats{Label: label, TotalRecords: len(readings)}
	if len(readings) == 0 {
		return s
	}
	s.AvgVehicles = round1(stat.Mean(vehicleCounts(readings), nil))
	s.AvgSpeed = round1(stat.Mean(speedValues(readings), nil))
	return s
}

func vehicleCounts(readings []models.TrafficReading) []float64 {
	values := make([]float64, len(readings))
	for i, r := range readings {
		values[i] = float64(r.VehicleCount)
	}
	return values
}

func speedValues(readings []models.TrafficReading) []float64 {
	values := make([]float64, len(readings))
	for i, r := range readings {
		values[i] = r.SpeedKMH
	}
	return values
}

func maxOf(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func minOf(values []float64) float64 {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
