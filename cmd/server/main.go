package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/jktraffic/traffic-backend-go/internal/analytics"
	"github.com/jktraffic/traffic-backend-go/internal/api"
	"github.com/jktraffic/traffic-backend-go/internal/config"
	"github.com/jktraffic/traffic-backend-go/internal/database"
	"github.com/jktraffic/traffic-backend-go/internal/handler"
	"github.com/jktraffic/traffic-backend-go/internal/repository"
	"github.com/jktraffic/traffic-backend-go/internal/simulation"
	"github.com/jktraffic/traffic-backend-go/internal/weather"
)

func main() {
	cfg := config.Load()
	tables := config.DefaultTables()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.InitSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	trafficRepo := repository.NewTrafficRepository(db)
	weatherRepo := repository.NewWeatherRepository(db)

	weatherClient := weather.NewClient(cfg.WeatherAPIURL, cfg.WeatherTimeout, tables.Locations)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	engine := analytics.New(trafficRepo, tables.ConditionBands)
	simulator := simulation.New(tables, rng, weatherClient, trafficRepo, weatherRepo)

	router := api.SetupRouter(cfg, api.Handlers{
		Analytics:  handler.NewAnalyticsHandler(engine, tables),
		Traffic:    handler.NewTrafficHandler(trafficRepo, weatherRepo),
		Simulation: handler.NewSimulationHandler(simulator),
		Admin:      handler.NewAdminHandler(db, cfg, tables, trafficRepo, weatherRepo),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
