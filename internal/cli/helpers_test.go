package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"farm-tracker/internal/api"
	"farm-tracker/internal/clock"
	"farm-tracker/internal/domain"
	"farm-tracker/internal/repository/sqlite"
	"farm-tracker/internal/services"
)

// setupTestApp wires an App over an in-memory store and returns what it printed.
func setupTestApp(t *testing.T, now time.Time) (*App, *clock.Mock, *bytes.Buffer) {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clk := clock.NewMock(now)
	svc := services.NewServiceContainer(repo, clk, zerolog.Nop(), services.ContainerOptions{HoursPrecision: 2})
	out := &bytes.Buffer{}
	return NewApp(api.NewBusinessAPI(svc, clk), nil, clk, zerolog.Nop(), out), clk, out
}

func at(day, hour, min int) time.Time {
	return time.Date(2024, time.June, day, hour, min, 0, 0, time.Local)
}

func onboard(t *testing.T, app *App, name string) *domain.Worker {
	t.Helper()
	w, err := app.businessAPI.OnboardWorker(context.Background(), domain.WorkerDraft{Name: name, Position: "Picker"})
	require.NoError(t, err)
	return w
}

// mockBusinessAPI overrides single BusinessAPI methods; anything not
// overridden panics through the nil embedded interface.
type mockBusinessAPI struct {
	api.BusinessAPI
	clockOut       func(ctx context.Context, workerID string) (*api.ClockEvent, error)
	getWeekSummary func(ctx context.Context, workerID string, ref time.Time, offset int) (*services.WeeklySummary, error)
}

func (m *mockBusinessAPI) ClockOut(ctx context.Context, workerID string) (*api.ClockEvent, error) {
	return m.clockOut(ctx, workerID)
}

func (m *mockBusinessAPI) GetWeekSummary(ctx context.Context, workerID string, ref time.Time, offset int) (*services.WeeklySummary, error) {
	return m.getWeekSummary(ctx, workerID, ref, offset)
}
