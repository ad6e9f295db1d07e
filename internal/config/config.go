package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	WeatherAPIURL  string
	WeatherTimeout time.Duration

	HistoricalDays int
	DataInterval   time.Duration
}

// Load reads configuration from environment variables, falling back to
// development defaults.
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/traffic_bigdata.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	apiURL := os.Getenv("WEATHER_API_URL")
	if apiURL == "" {
		apiURL = "https://api.open-meteo.com/v1/forecast"
	}

	return &Config{
		Port:           port,
		DBPath:         dbPath,
		JWTSecret:      jwtSecret,
		WeatherAPIURL:  apiURL,
		WeatherTimeout: 10 * time.Second,
		HistoricalDays: envInt("HISTORICAL_DAYS", 30),
		DataInterval:   time.Duration(envInt("DATA_INTERVAL_MINUTES", 5)) * time.Minute,
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
