package config

import (
	"github.com/golang/geo/s2"

	"github.com/jktraffic/traffic-backend-go/internal/models"
)

// Location is a monitored measurement point.
type Location struct {
	Name   string
	LatLng s2.LatLng
}

const earthRadiusKM = 6371.01

// DistanceKM returns the great-circle distance to another location in km.
func (l Location) DistanceKM(other Location) float64 {
	return l.LatLng.Distance(other.LatLng).Radians() * earthRadiusKM
}

// ConditionBand maps a half-open vehicle-count interval [Low, High) to a
// congestion condition. Bands must be listed in ascending order; counts
// beyond the last band's High fall back to the last band's label.
type ConditionBand struct {
	Label models.Condition
	Low   int
	High  int
}

// Tables bundles the immutable domain lookup tables. They are built once at
// startup and passed into the generator, simulation engine and analytics
// explicitly so tests can substitute smaller tables.
type Tables struct {
	Locations []Location

	// VehiclePattern holds the representative vehicle volume per hour of day.
	VehiclePattern [24]int

	// RainImpact maps a rain category to its congestion multiplier.
	RainImpact map[models.RainCategory]float64

	// ConditionBands is the ordered vehicle-count threshold table.
	ConditionBands []ConditionBand
}

// DefaultTables returns the production lookup tables for the Jakarta
// monitoring points.
func DefaultTables() *Tables {
	return &Tables{
		Locations: []Location{
			{Name: "Jakarta Pusat", LatLng: s2.LatLngFromDegrees(-6.2088, 106.8456)},
			{Name: "Jakarta Selatan", LatLng: s2.LatLngFromDegrees(-6.2614, 106.8456)},
			{Name: "Jakarta Utara", LatLng: s2.LatLngFromDegrees(-6.1361, 106.8513)},
			{Name: "Jakarta Timur", LatLng: s2.LatLngFromDegrees(-6.2297, 106.9012)},
			{Name: "Jakarta Barat", LatLng: s2.LatLngFromDegrees(-6.1847, 106.7513)},
		},
		VehiclePattern: [24]int{
			50, 40, 35, 30, 40, 80,
			200, 350, 400, 250, 180, 200,
			220, 200, 180, 200, 300,
			420, 380, 250, 180, 150,
			120, 80,
		},
		RainImpact: map[models.RainCategory]float64{
			models.RainNone:     1.0,
			models.RainLight:    1.3,
			models.RainModerate: 1.6,
			models.RainHeavy:    1.8,
			models.RainExtreme:  2.0,
		},
		ConditionBands: []ConditionBand{
			{Label: models.ConditionSmooth, Low: 0, High: 100},
			{Label: models.ConditionModerate, Low: 100, High: 200},
			{Label: models.ConditionHeavy, Low: 200, High: 350},
			{Label: models.ConditionVeryHeavy, Low: 350, High: 500},
			{Label: models.ConditionGridlock, Low: 500, High: 9999},
		},
	}
}

// LocationNames returns the configured location names in table order.
func (t *Tables) LocationNames() []string {
	names := make([]string, len(t.Locations))
	for i, loc := range t.Locations {
		names[i] = loc.Name
	}
	return names
}

// HasLocation reports whether name is a configured location.
func (t *Tables) HasLocation(name string) bool {
	for _, loc := range t.Locations {
		if loc.Name == name {
			return true
		}
	}
	return false
}
