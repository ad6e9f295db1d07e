// Command backfill generates the historical synthetic dataset from the
// command line, without going through the API server.
package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/jktraffic/traffic-backend-go/internal/config"
	"github.com/jktraffic/traffic-backend-go/internal/database"
	"github.com/jktraffic/traffic-backend-go/internal/generator"
	"github.com/jktraffic/traffic-backend-go/internal/repository"
)

func main() {
	var (
		days     = flag.Int("days", 0, "number of historical days to generate (default from HISTORICAL_DAYS)")
		interval = flag.Duration("interval", 0, "interval between readings (default from DATA_INTERVAL_MINUTES)")
		seed     = flag.Int64("seed", 0, "random seed; 0 seeds from the clock")
		reset    = flag.Bool("reset", false, "clear all existing data before generating")
	)
	flag.Parse()

	cfg := config.Load()
	tables := config.DefaultTables()

	if *days <= 0 {
		*days = cfg.HistoricalDays
	}
	if *interval <= 0 {
		*interval = cfg.DataInterval
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.InitSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	if *reset {
		if err := repository.ClearAll(db); err != nil {
			log.Fatal("Failed to clear data:", err)
		}
		log.Printf("All existing data cleared")
	}

	rng := rand.New(rand.NewSource(*seed))
	gen := generator.New(tables, rng,
		repository.NewTrafficRepository(db),
		repository.NewWeatherRepository(db),
		*days, *interval)

	summary, err := gen.Backfill(time.Now())
	if err != nil {
		log.Fatal("Backfill failed:", err)
	}

	log.Printf("Done: %d traffic rows, %d weather rows", summary.TrafficRows, summary.WeatherRows)
}
