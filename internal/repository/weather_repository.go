package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jktraffic/traffic-backend-go/internal/models"
)

// WeatherRepository handles database operations for weather readings
type WeatherRepository struct {
	db *sql.DB
}

// NewWeatherRepository creates a new weather repository
func NewWeatherRepository(db *sql.DB) *WeatherRepository {
	return &WeatherRepository{db: db}
}

// InsertBatch appends a batch of weather readings inside one transaction.
func (r *WeatherRepository) InsertBatch(readings []models.WeatherReading) error {
	if len(readings) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO weather_data
		(timestamp, location, temperature, precipitation, windspeed, weather_code, weather_desc, rain_category)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare weather insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range readings {
		_, err := stmt.Exec(
			w.Timestamp.Format(timeLayout),
			w.Location,
			w.Temperature,
			w.Precipitation,
			w.Windspeed,
			w.WeatherCode,
			w.WeatherDesc,
			string(w.RainCategory),
		)
		if err != nil {
			return fmt.Errorf("failed to insert weather reading: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit weather batch: %w", err)
	}

	weatherRowsInserted.Add(float64(len(readings)))
	return nil
}

// All returns every weather reading, newest first.
func (r *WeatherRepository) All() ([]models.WeatherReading, error) {
	return r.query(`SELECT id, timestamp, location, temperature, precipitation,
		windspeed, weather_code, weather_desc, rain_category
		FROM weather_data ORDER BY timestamp DESC`)
}

// LatestPerLocation returns the most recently inserted reading for each
// location, ordered by location name.
func (r *WeatherRepository) LatestPerLocation() ([]models.WeatherReading, error) {
	return r.query(`SELECT id, timestamp, location, temperature, precipitation,
		windspeed, weather_code, weather_desc, rain_category
		FROM weather_data
		WHERE id IN (SELECT MAX(id) FROM weather_data GROUP BY location)
		ORDER BY location`)
}

// Count returns the number of persisted weather readings.
func (r *WeatherRepository) Count() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM weather_data").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count weather readings: %w", err)
	}
	return count, nil
}

func (r *WeatherRepository) query(query string, args ...interface{}) ([]models.WeatherReading, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query weather readings: %w", err)
	}
	defer rows.Close()

	var readings []models.WeatherReading
	for rows.Next() {
		var w models.WeatherReading
		var ts string
		if err := rows.Scan(&w.ID, &ts, &w.Location, &w.Temperature, &w.Precipitation,
			&w.Windspeed, &w.WeatherCode, &w.WeatherDesc, &w.RainCategory); err != nil {
			return nil, fmt.Errorf("failed to scan weather reading: %w", err)
		}
		w.Timestamp, err = time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse weather timestamp %q: %w", ts, err)
		}
		readings = append(readings, w)
	}

	return readings, rows.Err()
}
