package models

import "time"

// Condition is the qualitative congestion level derived from vehicle count.
type Condition string

const (
	ConditionSmooth    Condition = "Smooth"
	ConditionModerate  Condition = "Moderate"
	ConditionHeavy     Condition = "Heavy"
	ConditionVeryHeavy Condition = "VeryHeavy"
	ConditionGridlock  Condition = "Gridlock"
)

// RainCategory is the rain intensity bucket attached to weather readings.
type RainCategory string

const (
	RainNone     RainCategory = "none"
	RainLight    RainCategory = "light"
	RainModerate RainCategory = "moderate"
	RainHeavy    RainCategory = "heavy"
	RainExtreme  RainCategory = "extreme"
)

// Data source tags distinguish how a traffic reading was produced.
const (
	SourceHistorical = "historical_generated"
	SourceRealTime   = "real_time_simulated"
	SourceManual     = "manual_seed"
)

// TrafficReading is one simulated or observed traffic measurement. Readings
// are immutable once persisted; they are only ever inserted or bulk-cleared.
type TrafficReading struct {
	ID           int64     `json:"id" db:"id"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
	Location     string    `json:"location" db:"location"`
	VehicleCount int       `json:"vehicle_count" db:"vehicle_count"`
	Condition    Condition `json:"condition" db:"condition"`
	SpeedKMH     float64   `json:"speed_kmh" db:"speed_kmh"`
	Hour         int       `json:"hour" db:"hour"`
	IsPeak       bool      `json:"is_peak" db:"is_peak"`
	RainFactor   float64   `json:"rain_factor" db:"rain_factor"`
	DataSource   string    `json:"data_source" db:"data_source"`
}

// WeatherReading is one weather snapshot for a location.
type WeatherReading struct {
	ID            int64        `json:"id" db:"id"`
	Timestamp     time.Time    `json:"timestamp" db:"timestamp"`
	Location      string       `json:"location" db:"location"`
	Temperature   float64      `json:"temperature" db:"temperature"`
	Precipitation float64      `json:"precipitation" db:"precipitation"`
	Windspeed     float64      `json:"windspeed" db:"windspeed"`
	WeatherCode   int          `json:"weather_code" db:"weather_code"`
	WeatherDesc   string       `json:"weather_desc" db:"weather_desc"`
	RainCategory  RainCategory `json:"rain_category" db:"rain_category"`
}
