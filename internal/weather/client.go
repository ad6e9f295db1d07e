// Package weather fetches current conditions from the Open-Meteo forecast
// API. Open-Meteo needs no API key; a fetch failure is reported as an error
// for the caller to degrade on, never as a panic.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/jktraffic/traffic-backend-go/internal/config"
	"github.com/jktraffic/traffic-backend-go/internal/models"
)

// Client queries Open-Meteo for the configured locations.
type Client struct {
	baseURL   string
	http      *http.Client
	locations []config.Location
	now       func() time.Time
}

// NewClient creates a weather client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration, locations []config.Location) *Client {
	return &Client{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: timeout},
		locations: locations,
		now:       time.Now,
	}
}

type apiResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		Windspeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
	Hourly struct {
		Time          []string  `json:"time"`
		Precipitation []float64 `json:"precipitation"`
	} `json:"hourly"`
}

// Current fetches the current weather for one configured location.
func (c *Client) Current(ctx context.Context, location string) (*models.WeatherReading, error) {
	loc, ok := c.lookup(location)
	if !ok {
		return nil, fmt.Errorf("unknown location %q", location)
	}

	v := url.Values{}
	v.Set("latitude", fmt.Sprintf("%.4f", loc.LatLng.Lat.Degrees()))
	v.Set("longitude", fmt.Sprintf("%.4f", loc.LatLng.Lng.Degrees()))
	v.Set("current_weather", "true")
	v.Set("hourly", "temperature_2m,precipitation,windspeed_10m,weathercode")
	v.Set("timezone", "Asia/Jakarta")
	v.Set("forecast_days", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+v.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching weather for %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API returned status %d for %s", resp.StatusCode, location)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("error decoding weather response: %w", err)
	}

	now := c.now()
	desc, category := DecodeWeatherCode(payload.CurrentWeather.WeatherCode)

	return &models.WeatherReading{
		Timestamp:     now,
		Location:      location,
		Temperature:   payload.CurrentWeather.Temperature,
		Precipitation: c.precipitationAt(payload, now.Hour()),
		Windspeed:     payload.CurrentWeather.Windspeed,
		WeatherCode:   payload.CurrentWeather.WeatherCode,
		WeatherDesc:   desc,
		RainCategory:  category,
	}, nil
}

// CurrentAll fetches every configured location, skipping the ones that fail.
// Failures are logged; a partially-filled result is normal in degraded mode.
func (c *Client) CurrentAll(ctx context.Context) []models.WeatherReading {
	var readings []models.WeatherReading
	for _, loc := range c.locations {
		w, err := c.Current(ctx, loc.Name)
		if err != nil {
			log.Printf("weather unavailable for %s: %v", loc.Name, err)
			continue
		}
		readings = append(readings, *w)
	}
	return readings
}

// precipitationAt picks the hourly precipitation matching the given hour.
func (c *Client) precipitationAt(payload apiResponse, hour int) float64 {
	for i, raw := range payload.Hourly.Time {
		t, err := time.Parse("2006-01-02T15:04", raw)
		if err != nil {
			continue
		}
		if t.Hour() == hour && i < len(payload.Hourly.Precipitation) {
			return payload.Hourly.Precipitation[i]
		}
	}
	return 0
}

func (c *Client) lookup(name string) (config.Location, bool) {
	for _, loc := range c.locations {
		if loc.Name == name {
			return loc, true
		}
	}
	return config.Location{}, false
}
