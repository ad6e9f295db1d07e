// Package traffic holds the condition/speed model shared by the historical
// generator and the real-time simulation engine. Both produce readings with
// the same formulas; only the weather source differs.
package traffic

import (
	"math"
	"math/rand"
	"time"

	"github.com/jktraffic/traffic-backend-go/internal/config"
	"github.com/jktraffic/traffic-backend-go/internal/models"
)

const (
	maxSpeedKMH = 60.0
	minSpeedKMH = 5.0

	peakMorningStart = 6
	peakMorningEnd   = 9
	peakEveningStart = 16
	peakEveningEnd   = 19
)

// ClassifyCondition maps a vehicle count onto the ordered threshold table.
// Bands are half-open [Low, High); a count beyond the last band's upper
// bound still returns the last (worst) label, since multiplicative factors
// can push counts past the declared maximum.
func ClassifyCondition(bands []config.ConditionBand, vehicleCount int) models.Condition {
	for _, band := range bands {
		if vehicleCount >= band.Low && vehicleCount < band.High {
			return band.Label
		}
	}
	return bands[len(bands)-1].Label
}

// ComputeSpeed derives the average speed in km/h from density and rain.
// More vehicles and heavier rain both slow traffic; the result carries a
// small uniform perturbation and is clamped to [5, 60].
func ComputeSpeed(rng *rand.Rand, vehicleCount int, rainFactor float64) float64 {
	speed := maxSpeedKMH - float64(vehicleCount)/10.0
	speed /= rainFactor
	speed += uniform(rng, -3, 3)

	speed = math.Max(minSpeedKMH, math.Min(maxSpeedKMH, speed))
	return round1(speed)
}

// IsPeakHour reports whether the hour falls in the morning [6,9) or evening
// [16,19) congestion window.
func IsPeakHour(hour int) bool {
	morning := hour >= peakMorningStart && hour < peakMorningEnd
	evening := hour >= peakEveningStart && hour < peakEveningEnd
	return morning || evening
}

// DayIndex returns the day of week with Monday as 0 and Sunday as 6.
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	return DayIndex(t) >= 5
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
