package database

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the record tables and their indexes. It is safe to call
// on every start.
func InitSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS traffic_data (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     TEXT NOT NULL,
			location      TEXT NOT NULL,
			vehicle_count INTEGER NOT NULL,
			condition     TEXT NOT NULL,
			speed_kmh     REAL,
			hour          INTEGER,
			is_peak       INTEGER DEFAULT 0,
			rain_factor   REAL DEFAULT 1.0,
			data_source   TEXT DEFAULT 'manual_seed'
		)`,
		`CREATE TABLE IF NOT EXISTS weather_data (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     TEXT NOT NULL,
			location      TEXT NOT NULL,
			temperature   REAL,
			precipitation REAL,
			windspeed     REAL,
			weather_code  INTEGER,
			weather_desc  TEXT,
			rain_category TEXT DEFAULT 'none'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_traffic_location ON traffic_data(location)`,
		`CREATE INDEX IF NOT EXISTS idx_traffic_hour ON traffic_data(hour)`,
		`CREATE INDEX IF NOT EXISTS idx_traffic_timestamp ON traffic_data(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_weather_location ON weather_data(location)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}
