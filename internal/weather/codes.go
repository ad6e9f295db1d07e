package weather

import "github.com/jktraffic/traffic-backend-go/internal/models"

type codeInfo struct {
	desc     string
	category models.RainCategory
}

// WMO weather interpretation codes as published by Open-Meteo.
var weatherCodes = map[int]codeInfo{
	0:  {"Clear sky", models.RainNone},
	1:  {"Mainly clear", models.RainNone},
	2:  {"Partly cloudy", models.RainNone},
	3:  {"Overcast", models.RainNone},
	45: {"Fog", models.RainNone},
	48: {"Depositing rime fog", models.RainNone},
	51: {"Light drizzle", models.RainLight},
	53: {"Moderate drizzle", models.RainLight},
	55: {"Dense drizzle", models.RainModerate},
	61: {"Light rain", models.RainLight},
	63: {"Moderate rain", models.RainModerate},
	65: {"Heavy rain", models.RainHeavy},
	66: {"Light freezing rain", models.RainModerate},
	67: {"Heavy freezing rain", models.RainHeavy},
	71: {"Light snow", models.RainLight},
	73: {"Moderate snow", models.RainModerate},
	75: {"Heavy snow", models.RainHeavy},
	80: {"Light rain showers", models.RainLight},
	81: {"Moderate rain showers", models.RainModerate},
	82: {"Violent rain showers", models.RainHeavy},
	95: {"Thunderstorm", models.RainExtreme},
	96: {"Thunderstorm with hail", models.RainExtreme},
	99: {"Thunderstorm with heavy hail", models.RainExtreme},
}

// DecodeWeatherCode maps a provider weather code to a human description and
// rain category. Unknown codes decode as dry conditions.
func DecodeWeatherCode(code int) (string, models.RainCategory) {
	info, ok := weatherCodes[code]
	if !ok {
		return "Unknown", models.RainNone
	}
	return info.desc, info.category
}
