package main

import (
	"fmt"
	"os"
	"time"

	"farm-tracker/internal/api"
	"farm-tracker/internal/cli"
	"farm-tracker/internal/clock"
	"farm-tracker/internal/config"
	"farm-tracker/internal/logging"
	"farm-tracker/internal/services"
)

// build opens the store and wires services once configuration is final.
func build(cfg *config.Config) (*cli.Runtime, error) {
	loc, err := cfg.LoadLocation()
	if err != nil {
		return nil, err
	}
	time.Local = loc

	logger := logging.Setup(cfg.Application.Verbose, os.Stderr)

	tables := services.DefaultNutrientTables()
	if cfg.Soil.ThresholdsFile != "" {
		tables, err = services.LoadNutrientTables(cfg.Soil.ThresholdsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load nutrient thresholds: %w", err)
		}
	}

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("environment", cfg.Application.Environment).
		Str("database", cfg.GetDatabasePath()).
		Msg("repository opened")

	clk := clock.System{}
	container := services.NewServiceContainer(repo, clk, logger, services.ContainerOptions{
		HoursPrecision:    cfg.Clock.HoursPrecision,
		OvertimeThreshold: cfg.Clock.OvertimeThreshold,
		NutrientTables:    tables,
		RecentTestDays:    cfg.Soil.RecentMaxAgeDays,
	})

	return &cli.Runtime{
		API:    api.NewBusinessAPI(container, clk),
		Clock:  clk,
		Logger: logger,
		Close:  repo.Close,
	}, nil
}
