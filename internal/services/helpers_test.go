package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"farm-tracker/internal/clock"
	"farm-tracker/internal/domain"
	"farm-tracker/internal/repository/sqlite"
)

// testEnv bundles an in-memory repository with services sharing one mock clock.
type testEnv struct {
	repo      *sqlite.SQLiteRepository
	clock     *clock.Mock
	timeClock TimeClockService
	daily     DailyTimeAggregator
	weekly    WeeklyHoursCalculator
	workers   WorkerService
	fields    FieldService
	soilTests SoilTestService
}

func setupTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clk := clock.NewMock(now)
	logger := zerolog.Nop()
	timeClock := NewTimeClockService(repo, clk, logger, 2)

	return &testEnv{
		repo:      repo,
		clock:     clk,
		timeClock: timeClock,
		daily:     NewDailyTimeAggregator(timeClock, clk),
		weekly:    NewWeeklyHoursCalculator(repo, clk, DefaultOvertimeThreshold),
		workers:   NewWorkerService(repo, clk, logger),
		fields:    NewFieldService(repo, clk),
		soilTests: NewSoilTestService(repo, clk, NewSoilInterpreter(nil, 0), logger),
	}
}

func (e *testEnv) onboard(t *testing.T, name string) *domain.Worker {
	t.Helper()
	w, err := e.workers.Onboard(context.Background(), domain.WorkerDraft{Name: name, Position: "Field Hand"})
	require.NoError(t, err)
	return w
}

// work records a closed block from..to for the worker.
func (e *testEnv) work(t *testing.T, workerID string, from, to time.Time) {
	t.Helper()
	ctx := context.Background()
	e.clock.Set(from)
	_, err := e.timeClock.ClockIn(ctx, workerID)
	require.NoError(t, err)
	e.clock.Set(to)
	_, err = e.timeClock.ClockOut(ctx, workerID)
	require.NoError(t, err)
}

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.Local)
}
