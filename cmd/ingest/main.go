package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/limosin/flight-search/internal/config"
	"github.com/limosin/flight-search/internal/db"
	"github.com/limosin/flight-search/internal/ingest"
	"github.com/limosin/flight-search/internal/logging"
)

func main() {
	dir := flag.String("dir", "./data", "directory containing airports.json, carriers.json, routes.json, schedules.json")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall ingestion timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logging.Close()

	orm, err := db.InitPostgresORM(cfg.PostgresDSN())
	if err != nil {
		logging.Fatal("failed to connect to postgres", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	loader := ingest.NewLoader(orm)
	stats, err := loader.Run(ctx, *dir)
	if err != nil {
		logging.Fatal("ingestion failed", "error", err)
	}

	logging.Info("ingestion complete",
		"airports", stats.Airports,
		"carriers", stats.Carriers,
		"routes", stats.Routes,
		"flights", stats.Flights,
		"instances", stats.Instances,
		"fares", stats.Fares,
	)
}
