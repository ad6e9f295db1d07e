package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jktraffic/traffic-backend-go/internal/database"
	"github.com/jktraffic/traffic-backend-go/internal/models"
)

// timeLayout is the canonical timestamp format stored in SQLite. The format
// sorts lexicographically in chronological order.
const timeLayout = "2006-01-02 15:04:05"

var (
	trafficRowsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "traffic_backend_traffic_rows_inserted_total",
		Help: "Total number of traffic readings persisted.",
	})
	weatherRowsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "traffic_backend_weather_rows_inserted_total",
		Help: "Total number of weather readings persisted.",
	})
)

// TrafficRepository handles database operations for traffic readings
type TrafficRepository struct {
	db *sql.DB
}

// NewTrafficRepository creates a new traffic repository
func NewTrafficRepository(db *sql.DB) *TrafficRepository {
	return &TrafficRepository{db: db}
}

// InsertBatch appends a batch of traffic readings inside one transaction.
// Batches of several thousand rows are expected; the prepared statement is
// reused across the whole batch.
func (r *TrafficRepository) InsertBatch(readings []models.TrafficReading) error {
	if len(readings) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO traffic_data
		(timestamp, location, vehicle_count, condition, speed_kmh, hour, is_peak, rain_factor, data_source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare traffic insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range readings {
		isPeak := 0
		if t.IsPeak {
			isPeak = 1
		}
		_, err := stmt.Exec(
			t.Timestamp.Format(timeLayout),
			t.Location,
			t.VehicleCount,
			string(t.Condition),
			t.SpeedKMH,
			t.Hour,
			isPeak,
			t.RainFactor,
			t.DataSource,
		)
		if err != nil {
			return fmt.Errorf("failed to insert traffic reading: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit traffic batch: %w", err)
	}

	trafficRowsInserted.Add(float64(len(readings)))
	return nil
}

// All returns every traffic reading, newest first.
func (r *TrafficRepository) All() ([]models.TrafficReading, error) {
	return r.query(`SELECT id, timestamp, location, vehicle_count, condition,
		speed_kmh, hour, is_peak, rain_factor, data_source
		FROM traffic_data ORDER BY timestamp DESC`)
}

// ByLocation returns the readings for one location, newest first.
func (r *TrafficRepository) ByLocation(location string) ([]models.TrafficReading, error) {
	return r.query(`SELECT id, timestamp, location, vehicle_count, condition,
		speed_kmh, hour, is_peak, rain_factor, data_source
		FROM traffic_data WHERE location = ? ORDER BY timestamp DESC`, location)
}

// Latest returns the most recent readings up to limit.
func (r *TrafficRepository) Latest(limit int) ([]models.TrafficReading, error) {
	return r.query(`SELECT id, timestamp, location, vehicle_count, condition,
		speed_kmh, hour, is_peak, rain_factor, data_source
		FROM traffic_data ORDER BY timestamp DESC LIMIT ?`, limit)
}

// ByTimeRange returns the readings between start and end, oldest first.
func (r *TrafficRepository) ByTimeRange(start, end time.Time) ([]models.TrafficReading, error) {
	return r.query(`SELECT id, timestamp, location, vehicle_count, condition,
		speed_kmh, hour, is_peak, rain_factor, data_source
		FROM traffic_data WHERE timestamp BETWEEN ? AND ? ORDER BY timestamp`,
		start.Format(timeLayout), end.Format(timeLayout))
}

// Count returns the number of persisted traffic readings.
func (r *TrafficRepository) Count() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM traffic_data").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count traffic readings: %w", err)
	}
	return count, nil
}

func (r *TrafficRepository) query(query string, args ...interface{}) ([]models.TrafficReading, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query traffic readings: %w", err)
	}
	defer rows.Close()

	var readings []models.TrafficReading
	for rows.Next() {
		var t models.TrafficReading
		var ts string
		var isPeak int
		if err := rows.Scan(&t.ID, &ts, &t.Location, &t.VehicleCount, &t.Condition,
			&t.SpeedKMH, &t.Hour, &isPeak, &t.RainFactor, &t.DataSource); err != nil {
			return nil, fmt.Errorf("failed to scan traffic reading: %w", err)
		}
		t.Timestamp, err = time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse traffic timestamp %q: %w", ts, err)
		}
		t.IsPeak = isPeak != 0
		readings = append(readings, t)
	}

	return readings, rows.Err()
}

// ClearAll deletes every traffic and weather reading. Destructive; used only
// for resets.
func ClearAll(db *sql.DB) error {
	return database.Transaction(db, func(tx *sql.Tx) error {
		for _, table := range []string{"traffic_data", "weather_data"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}
