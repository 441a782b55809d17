// Package main runs one flight-offer sweep: every tuple that is not cached yet
// is searched once and its raw response written to the output directory.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/flight-search/offer-sweeper/internal/adapter/amadeus"
	"github.com/flight-search/offer-sweeper/internal/adapter/filecache"
	"github.com/flight-search/offer-sweeper/internal/config"
	"github.com/flight-search/offer-sweeper/internal/infrastructure/logger"
	"github.com/flight-search/offer-sweeper/internal/sweep"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.MustLoad()
	log := logger.New(cfg.Logging)

	if err := cfg.ValidateForSweep(); err != nil {
		log.Error().Err(err).Msg("Invalid sweep configuration")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := amadeus.NewClient(cfg.AmadeusClientConfig(), amadeus.WithLogger(log))
	store := filecache.New(cfg.OutputDir())

	driver := sweep.NewDriver(client, store, sweep.Config{
		Params:    cfg.SweepParameters(),
		Itinerary: cfg.Itinerary(),
		Options:   cfg.SearchOptions(),
		Mode:      cfg.Sweep.Mode,
		DryRun:    cfg.Sweep.DryRun,
	}, log)

	log.Info().
		Str(logger.FieldMode, cfg.Sweep.Mode).
		Str("endpoint", client.Endpoint()).
		Str("output_dir", store.Dir()).
		Msg("Configuration loaded")

	report, err := driver.Run(ctx)
	if report != nil {
		log.Info().
			Str(logger.FieldRunID, report.RunID).
			Int("total", report.Total).
			Int("processed", report.Processed()).
			Int("skipped", report.Skipped).
			Int("saved", report.Saved).
			Int("failed", report.Failed).
			Int("planned", report.Planned).
			Dur("duration", report.Duration).
			Msg("Run summary")
	}
	if err != nil {
		log.Error().Err(err).Msg("Sweep halted")
		return 1
	}
	return 0
}
