package models

// OverallStats is the dataset-wide summary.
type OverallStats struct {
	TotalRecords        int       `json:"total_records"`
	TotalLocations      int       `json:"total_locations"`
	AvgVehicles         float64   `json:"avg_vehicles"`
	MaxVehicles         int       `json:"max_vehicles"`
	MinVehicles         int       `json:"min_vehicles"`
	AvgSpeed            float64   `json:"avg_speed"`
	MostCommonCondition Condition `json:"most_common_condition"`
	PeakRecords         int       `json:"peak_records"`
	RainyRecords        int       `json:"rainy_records"`
}

// HourlyStat is one row of the hour-of-day traffic pattern.
type HourlyStat struct {
	Hour        int     `json:"hour"`
	AvgVehicles float64 `json:"avg_vehicles"`
	MaxVehicles int     `json:"max_vehicles"`
	AvgSpeed    float64 `json:"avg_speed"`
	Count       int     `json:"count"`
}

// RainBucketStat aggregates traffic over one rain-factor bucket.
type RainBucketStat struct {
	Category    string  `json:"category"`
	AvgVehicles float64 `json:"avg_vehicles"`
	MaxVehicles int     `json:"max_vehicles"`
	AvgSpeed    float64 `json:"avg_speed"`
	Count       int     `json:"count"`
}

// RainCorrelation relates rain intensity to congestion.
type RainCorrelation struct {
	Coefficient     float64          `json:"correlation_coefficient"`
	StatsByCategory []RainBucketStat `json:"stats_by_category"`
	Interpretation  string           `json:"interpretation"`
}

// LocationStat compares one location against the others.
type LocationStat struct {
	Location      string  `json:"location"`
	AvgVehicles   float64 `json:"avg_vehicles"`
	MaxVehicles   int     `json:"max_vehicles"`
	MinVehicles   int     `json:"min_vehicles"`
	AvgSpeed      float64 `json:"avg_speed"`
	TotalRecords  int     `json:"total_records"`
	GridlockCount int     `json:"gridlock_count"`
	GridlockPct   float64 `json:"gridlock_pct"`
}

// Prediction is the historical-average projection for a location and hour.
// It is a statistical summary of past readings, not a fitted model.
type Prediction struct {
	Location           string    `json:"location"`
	TargetHour         int       `json:"target_hour"`
	PredictedMin       int       `json:"predicted_vehicles_min"`
	PredictedAvg       int       `json:"predicted_vehicles_avg"`
	PredictedMax       int       `json:"predicted_vehicles_max"`
	PredictedSpeed     float64   `json:"predicted_speed"`
	PredictedCondition Condition `json:"predicted_condition"`
	Confidence         string    `json:"confidence"`
	SamplesUsed        int       `json:"samples_used"`
}

// DayTypeStats summarizes one partition of the weekday/weekend split.
type DayTypeStats struct {
	Label        string  `json:"label"`
	AvgVehicles  float64 `json:"avg_vehicles"`
	AvgSpeed     float64 `json:"avg_speed"`
	TotalRecords int     `json:"total_records"`
}

// DayTypeComparison contrasts weekday and weekend traffic.
type DayTypeComparison struct {
	Weekday DayTypeStats `json:"weekday"`
	Weekend DayTypeStats `json:"weekend"`
}
