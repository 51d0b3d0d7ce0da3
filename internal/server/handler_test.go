package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farm-tracker/internal/api"
	"farm-tracker/internal/clock"
	"farm-tracker/internal/domain"
	"farm-tracker/internal/errors"
	"farm-tracker/internal/repository/sqlite"
	"farm-tracker/internal/services"
)

type testServer struct {
	api    api.BusinessAPI
	clock  *clock.Mock
	router http.Handler
}

func setupTestServer(t *testing.T, now time.Time) *testServer {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clk := clock.NewMock(now)
	svc := services.NewServiceContainer(repo, clk, zerolog.Nop(), services.ContainerOptions{HoursPrecision: 2})
	businessAPI := api.NewBusinessAPI(svc, clk)

	return &testServer{
		api:    businessAPI,
		clock:  clk,
		router: NewRouter(businessAPI, clk, zerolog.Nop()),
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func at(day, hour, min int) time.Time {
	return time.Date(2024, time.June, day, hour, min, 0, 0, time.Local)
}

func TestHealth(t *testing.T) {
	s := setupTestServer(t, at(10, 7, 0))

	rec := s.do(t, http.MethodGet, "/api/v1/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestClockEndpoints(t *testing.T) {
	s := setupTestServer(t, at(10, 7, 0))
	worker, err := s.api.OnboardWorker(context.Background(), domain.WorkerDraft{Name: "Alice"})
	require.NoError(t, err)
	base := "/api/v1/workers/" + worker.ID

	t.Run("should clock in", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, base+"/clock-in", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var event api.ClockEvent
		decodeBody(t, rec, &event)
		assert.Equal(t, 1, event.Block.BlockNumber)
		assert.True(t, event.Block.IsActive)
	})

	t.Run("should clock out", func(t *testing.T) {
		s.clock.Set(at(10, 11, 30))
		rec := s.do(t, http.MethodPost, base+"/clock-out", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var event api.ClockEvent
		decodeBody(t, rec, &event)
		assert.Equal(t, 4.5, event.Block.HoursWorked)
	})

	t.Run("should return 409 when nothing is open", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, base+"/clock-out", nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
		var body errorResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "NO_OPEN_BLOCK", body.Code)
	})

	t.Run("should list blocks for a date", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, base+"/blocks?date=2024-06-10", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var blocks []domain.TimeBlock
		decodeBody(t, rec, &blocks)
		assert.Len(t, blocks, 1)
	})

	t.Run("should total the day", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, base+"/hours/day?date=2024-06-10", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var summary services.DaySummary
		decodeBody(t, rec, &summary)
		assert.Equal(t, 4.5, summary.TotalHours)
		assert.False(t, summary.IsClockedIn)
	})

	t.Run("should total the previous week", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, base+"/hours/week?date=2024-06-17&offset=-1", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var summary services.WeeklySummary
		decodeBody(t, rec, &summary)
		assert.Equal(t, 4.5, summary.TotalHours)
		assert.Len(t, summary.Days, 7)
		assert.Equal(t, 24, summary.WeekNumber)
	})
}

func TestErrorStatusCodes(t *testing.T) {
	s := setupTestServer(t, at(10, 7, 0))

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{name: "unknown worker", method: http.MethodPost, path: "/api/v1/workers/" + uuid.NewString() + "/clock-in", want: http.StatusNotFound},
		{name: "malformed worker id", method: http.MethodGet, path: "/api/v1/workers/abc", want: http.StatusBadRequest},
		{name: "bad date", method: http.MethodGet, path: "/api/v1/workers/" + uuid.NewString() + "/hours/day?date=10-06-2024", want: http.StatusBadRequest},
		{name: "bad offset", method: http.MethodGet, path: "/api/v1/workers/" + uuid.NewString() + "/hours/week?offset=x", want: http.StatusBadRequest},
		{name: "unknown soil test", method: http.MethodGet, path: "/api/v1/soil-tests/" + uuid.NewString() + "/report", want: http.StatusNotFound},
		{name: "wrong method", method: http.MethodGet, path: "/api/v1/workers/" + uuid.NewString() + "/clock-in", want: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, nil)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusCode(errors.NewNotFoundError("worker", "x")))
	assert.Equal(t, http.StatusConflict, StatusCode(errors.NewNoOpenBlockError("x", "2024-06-10")))
	assert.Equal(t, http.StatusBadRequest, StatusCode(errors.NewValidationError("bad", nil)))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.NewAmbiguousOpenStateError("x", "2024-06-10", 2)))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.NewDatabaseError("insert", nil)))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(fmt.Errorf("plain")))
}

func TestSoilEndpoints(t *testing.T) {
	s := setupTestServer(t, at(15, 9, 0))
	ctx := context.Background()
	farm, err := s.api.CreateFarm(ctx, domain.FarmDraft{Name: "Willow Creek"})
	require.NoError(t, err)
	field, err := s.api.CreateField(ctx, domain.FieldDraft{FarmID: farm.ID, Name: "North 40"})
	require.NoError(t, err)

	draft := domain.SoilTestDraft{
		FieldID: field.ID, TestDate: at(12, 0, 0),
		PH: 7.0, OrganicMatter: 4.0, Phosphorus: 20, Potassium: 150, CEC: 12,
	}
	rec := s.do(t, http.MethodPost, "/api/v1/soil-tests", draft)
	require.Equal(t, http.StatusCreated, rec.Code)
	var test domain.SoilTest
	decodeBody(t, rec, &test)

	rec = s.do(t, http.MethodGet, "/api/v1/soil-tests/"+test.ID+"/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report domain.SoilReport
	decodeBody(t, rec, &report)
	assert.Equal(t, domain.StatusGood, report.PHStatus)
	assert.Equal(t, domain.LevelMedium, report.NutrientLevels[domain.Phosphorus])

	rec = s.do(t, http.MethodGet, "/api/v1/fields/"+field.ID+"/soil-tests", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tests []domain.SoilTest
	decodeBody(t, rec, &tests)
	assert.Len(t, tests, 1)

	invalid := draft
	invalid.PH = 20
	rec = s.do(t, http.MethodPost, "/api/v1/soil-tests", invalid)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
