package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/jktraffic/traffic-backend-go/internal/database"
	"github.com/jktraffic/traffic-backend-go/internal/models"
)

// testDB opens an in-memory SQLite database. The pool is pinned to a single
// connection because every in-memory connection gets its own database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.InitSchema(db); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}
	return db
}

func trafficReading(day, hour int, location string, vehicles int) models.TrafficReading {
	return models.TrafficReading{
		Timestamp:    time.Date(2026, 8, day, hour, 0, 0, 0, time.UTC),
		Location:     location,
		VehicleCount: vehicles,
		Condition:    models.ConditionModerate,
		SpeedKMH:     32.5,
		Hour:         hour,
		IsPeak:       hour == 7,
		RainFactor:   1.3,
		DataSource:   models.SourceHistorical,
	}
}

func TestTrafficInsertAndQuery(t *testing.T) {
	db := testDB(t)
	repo := NewTrafficRepository(db)

	batch := []models.TrafficReading{
		trafficReading(24, 7, "Jakarta Pusat", 150),
		trafficReading(24, 8, "Jakarta Pusat", 300),
		trafficReading(24, 7, "Jakarta Utara", 90),
	}
	if err := repo.InsertBatch(batch); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	all, err := repo.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d readings, want 3", len(all))
	}
	// Newest first.
	if all[0].Hour != 8 {
		t.Errorf("first reading hour = %d, want 8 (newest)", all[0].Hour)
	}

	// Round trip preserves every field.
	got := all[0]
	if got.Location != "Jakarta Pusat" || got.VehicleCount != 300 ||
		got.Condition != models.ConditionModerate || got.SpeedKMH != 32.5 ||
		got.IsPeak || got.RainFactor != 1.3 || got.DataSource != models.SourceHistorical {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if !got.Timestamp.Equal(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("timestamp = %v, want 2026-08-24 08:00:00", got.Timestamp)
	}
	if got.ID == 0 {
		t.Error("ID not assigned")
	}
}

func TestTrafficByLocation(t *testing.T) {
	db := testDB(t)
	repo := NewTrafficRepository(db)

	if err := repo.InsertBatch([]models.TrafficReading{
		trafficReading(24, 7, "Jakarta Pusat", 150),
		trafficReading(25, 7, "Jakarta Pusat", 180),
		trafficReading(24, 7, "Jakarta Utara", 90),
	}); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	readings, err := repo.ByLocation("Jakarta Pusat")
	if err != nil {
		t.Fatalf("ByLocation failed: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("got %d readings, want 2", len(readings))
	}
	if readings[0].Timestamp.Day() != 25 {
		t.Errorf("first reading day = %d, want 25 (newest)", readings[0].Timestamp.Day())
	}
}

func TestTrafficLatestLimit(t *testing.T) {
	db := testDB(t)
	repo := NewTrafficRepository(db)

	var batch []models.TrafficReading
	for hour := 0; hour < 10; hour++ {
		batch = append(batch, trafficReading(24, hour, "Jakarta Pusat", 50+hour))
	}
	if err := repo.InsertBatch(batch); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	latest, err := repo.Latest(3)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if len(latest) != 3 {
		t.Fatalf("got %d readings, want 3", len(latest))
	}
	if latest[0].Hour != 9 || latest[2].Hour != 7 {
		t.Errorf("latest hours = %d..%d, want 9..7", latest[0].Hour, latest[2].Hour)
	}
}

func TestTrafficByTimeRange(t *testing.T) {
	db := testDB(t)
	repo := NewTrafficRepository(db)

	if err := repo.InsertBatch([]models.TrafficReading{
		trafficReading(23, 12, "Jakarta Pusat", 100),
		trafficReading(24, 12, "Jakarta Pusat", 200),
		trafficReading(25, 12, "Jakarta Pusat", 300),
	}); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 24, 23, 59, 59, 0, time.UTC)
	readings, err := repo.ByTimeRange(start, end)
	if err != nil {
		t.Fatalf("ByTimeRange failed: %v", err)
	}
	if len(readings) != 1 || readings[0].VehicleCount != 200 {
		t.Errorf("readings = %+v, want only the 08-24 row", readings)
	}
}

func TestTrafficInsertEmptyBatch(t *testing.T) {
	repo := NewTrafficRepository(testDB(t))
	if err := repo.InsertBatch(nil); err != nil {
		t.Errorf("empty batch should be a no-op, got %v", err)
	}
}

func TestWeatherInsertAndLatestPerLocation(t *testing.T) {
	db := testDB(t)
	repo := NewWeatherRepository(db)

	stamp := func(hour int) time.Time {
		return time.Date(2026, 8, 24, hour, 0, 0, 0, time.UTC)
	}
	if err := repo.InsertBatch([]models.WeatherReading{
		{Timestamp: stamp(7), Location: "Jakarta Utara", Temperature: 27.5, Precipitation: 1.2,
			Windspeed: 10, WeatherCode: 61, WeatherDesc: "Light rain", RainCategory: models.RainLight},
		{Timestamp: stamp(7), Location: "Jakarta Pusat", Temperature: 28.0,
			WeatherCode: 0, WeatherDesc: "Clear sky", RainCategory: models.RainNone},
		{Timestamp: stamp(8), Location: "Jakarta Pusat", Temperature: 29.5,
			WeatherCode: 0, WeatherDesc: "Clear sky", RainCategory: models.RainNone},
	}); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	latest, err := repo.LatestPerLocation()
	if err != nil {
		t.Fatalf("LatestPerLocation failed: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("got %d readings, want 2", len(latest))
	}
	// Ordered by location name; Jakarta Pusat shows its most recent row.
	if latest[0].Location != "Jakarta Pusat" || latest[0].Temperature != 29.5 {
		t.Errorf("latest[0] = %+v, want Jakarta Pusat at 29.5", latest[0])
	}
	if latest[1].Location != "Jakarta Utara" || latest[1].RainCategory != models.RainLight {
		t.Errorf("latest[1] = %+v, want Jakarta Utara with light rain", latest[1])
	}
}

func TestWeatherAllNewestFirst(t *testing.T) {
	repo := NewWeatherRepository(testDB(t))

	if err := repo.InsertBatch([]models.WeatherReading{
		{Timestamp: time.Date(2026, 8, 24, 7, 0, 0, 0, time.UTC), Location: "Jakarta Pusat"},
		{Timestamp: time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC), Location: "Jakarta Pusat"},
		{Timestamp: time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC), Location: "Jakarta Pusat"},
	}); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	all, err := repo.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d readings, want 3", len(all))
	}
	if all[0].Timestamp.Hour() != 9 || all[2].Timestamp.Hour() != 7 {
		t.Errorf("order = %d..%d, want 9..7", all[0].Timestamp.Hour(), all[2].Timestamp.Hour())
	}
}

func TestClearAll(t *testing.T) {
	db := testDB(t)
	trafficRepo := NewTrafficRepository(db)
	weatherRepo := NewWeatherRepository(db)

	if err := trafficRepo.InsertBatch([]models.TrafficReading{
		trafficReading(24, 7, "Jakarta Pusat", 150),
	}); err != nil {
		t.Fatalf("traffic InsertBatch failed: %v", err)
	}
	if err := weatherRepo.InsertBatch([]models.WeatherReading{
		{Timestamp: time.Date(2026, 8, 24, 7, 0, 0, 0, time.UTC), Location: "Jakarta Pusat"},
	}); err != nil {
		t.Fatalf("weather InsertBatch failed: %v", err)
	}

	if err := ClearAll(db); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	if n, _ := trafficRepo.Count(); n != 0 {
		t.Errorf("traffic count after reset = %d, want 0", n)
	}
	if n, _ := weatherRepo.Count(); n != 0 {
		t.Errorf("weather count after reset = %d, want 0", n)
	}
}
