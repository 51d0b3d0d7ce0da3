package services

import (
	"github.com/rs/zerolog"

	"farm-tracker/internal/clock"
	"farm-tracker/internal/repository/sqlite"
)

// ContainerOptions carries the tunables the services read from config.
type ContainerOptions struct {
	HoursPrecision    int
	OvertimeThreshold float64
	NutrientTables    NutrientTables // nil uses the defaults
	RecentTestDays    int
}

// NewServiceContainer wires every service over one repository and clock.
func NewServiceContainer(repo sqlite.Repository, clk clock.Clock, logger zerolog.Logger, opts ContainerOptions) *ServiceContainer {
	timeClock := NewTimeClockService(repo, clk, logger, opts.HoursPrecision)
	interpreter := NewSoilInterpreter(opts.NutrientTables, opts.RecentTestDays)

	return &ServiceContainer{
		TimeClock:   timeClock,
		Daily:       NewDailyTimeAggregator(timeClock, clk),
		Weekly:      NewWeeklyHoursCalculator(repo, clk, opts.OvertimeThreshold),
		Workers:     NewWorkerService(repo, clk, logger),
		Fields:      NewFieldService(repo, clk),
		SoilTests:   NewSoilTestService(repo, clk, interpreter, logger),
		Interpreter: interpreter,
	}
}
