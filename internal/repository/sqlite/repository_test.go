package sqlite

import (
	"context"
	"testing"
	"time"

	apperrors "farm-tracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*SQLiteRepository, func()) {
	repo, err := New(":memory:")
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
	}

	return repo, cleanup
}

func createTestWorker(t *testing.T, repo *SQLiteRepository, id, name string) *Worker {
	w := &Worker{ID: id, Name: name, IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, repo.CreateWorker(context.Background(), w))
	return w
}

func createTestBlock(t *testing.T, repo *SQLiteRepository, workerID, date string, number int, active bool) *TimeBlock {
	clockIn, err := ParseDateFromDB(date)
	require.NoError(t, err)
	clockIn = clockIn.Add(time.Duration(6+number) * time.Hour)

	b := &TimeBlock{
		ID:          workerID + "-" + date + "-" + string(rune('0'+number)),
		WorkerID:    workerID,
		BlockDate:   date,
		BlockNumber: number,
		ClockInTime: clockIn,
		IsActive:    active,
	}
	b.Year, b.WeekNumber = clockIn.ISOWeek()
	if !active {
		out := clockIn.Add(time.Hour)
		b.ClockOutTime = &out
		b.HoursWorked = 1
	}
	require.NoError(t, repo.CreateTimeBlock(context.Background(), b))
	return b
}

func TestWorkerCRUD(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	hired := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	w := &Worker{
		ID:        "w-1",
		Name:      "Alice",
		Position:  "Harvest lead",
		Email:     "alice@example.com",
		HireDate:  &hired,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateWorker(ctx, w))

	got, err := repo.GetWorker(ctx, "w-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	require.NotNil(t, got.HireDate)
	assert.True(t, hired.Equal(*got.HireDate))

	got.IsActive = false
	got.Phone = "555-0100"
	require.NoError(t, repo.UpdateWorker(ctx, got))

	updated, err := repo.GetWorker(ctx, "w-1")
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "555-0100", updated.Phone)

	_, err = repo.GetWorker(ctx, "missing")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))

	err = repo.UpdateWorker(ctx, &Worker{ID: "missing", Name: "Nobody"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestListWorkers(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	createTestWorker(t, repo, "w-2", "Bob")
	createTestWorker(t, repo, "w-1", "Alice")
	carol := createTestWorker(t, repo, "w-3", "Carol")
	carol.IsActive = false
	require.NoError(t, repo.UpdateWorker(ctx, carol))

	all, err := repo.ListWorkers(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Alice", all[0].Name)
	assert.Equal(t, "Bob", all[1].Name)
	assert.Equal(t, "Carol", all[2].Name)

	active, err := repo.ListWorkers(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestTimeBlockRoundTrip(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	createTestWorker(t, repo, "w-1", "Alice")
	b := createTestBlock(t, repo, "w-1", "2024-01-15", 1, true)

	got, err := repo.GetTimeBlock(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.Nil(t, got.ClockOutTime)
	assert.Equal(t, b.ClockInTime.Unix(), got.ClockInTime.Unix())
	assert.Equal(t, 2024, got.Year)
	assert.Equal(t, 3, got.WeekNumber)

	out := got.ClockInTime.Add(90 * time.Minute)
	got.ClockOutTime = &out
	got.IsActive = false
	got.HoursWorked = 1.5
	require.NoError(t, repo.UpdateTimeBlock(ctx, got))

	closed, err := repo.GetTimeBlock(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, closed.IsActive)
	require.NotNil(t, closed.ClockOutTime)
	assert.Equal(t, out.Unix(), closed.ClockOutTime.Unix())
	assert.Equal(t, 1.5, closed.HoursWorked)

	_, err = repo.GetTimeBlock(ctx, "missing")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestTimeBlockConstraints(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	createTestWorker(t, repo, "w-1", "Alice")
	createTestBlock(t, repo, "w-1", "2024-01-15", 1, true)

	t.Run("Second open block on the same day is rejected", func(t *testing.T) {
		b := &TimeBlock{ID: "dup-open", WorkerID: "w-1", BlockDate: "2024-01-15", BlockNumber: 2, ClockInTime: time.Now(), IsActive: true}
		err := repo.CreateTimeBlock(ctx, b)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
	})

	t.Run("Block numbers are unique per day", func(t *testing.T) {
		b := &TimeBlock{ID: "dup-number", WorkerID: "w-1", BlockDate: "2024-01-15", BlockNumber: 1, ClockInTime: time.Now()}
		err := repo.CreateTimeBlock(ctx, b)
		assert.Error(t, err)
	})

	t.Run("Open block on another day is allowed", func(t *testing.T) {
		createTestBlock(t, repo, "w-1", "2024-01-16", 1, true)
	})

	t.Run("Unknown worker is rejected", func(t *testing.T) {
		b := &TimeBlock{ID: "orphan", WorkerID: "nobody", BlockDate: "2024-01-15", BlockNumber: 1, ClockInTime: time.Now()}
		assert.Error(t, repo.CreateTimeBlock(ctx, b))
	})
}

func TestSearchTimeBlocks(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	createTestWorker(t, repo, "w-1", "Alice")
	createTestWorker(t, repo, "w-2", "Bob")

	createTestBlock(t, repo, "w-1", "2024-01-16", 2, true)
	createTestBlock(t, repo, "w-1", "2024-01-16", 1, false)
	createTestBlock(t, repo, "w-1", "2024-01-15", 1, false)
	createTestBlock(t, repo, "w-1", "2024-01-22", 1, false)
	createTestBlock(t, repo, "w-2", "2024-01-16", 1, false)

	day := func(s string) *time.Time {
		d, err := ParseDateFromDB(s)
		require.NoError(t, err)
		return &d
	}

	tests := []struct {
		name     string
		opts     TimeBlockSearchOptions
		expected []string
	}{
		{
			name:     "Worker filter orders by date then number",
			opts:     TimeBlockSearchOptions{WorkerID: "w-1"},
			expected: []string{"2024-01-15/1", "2024-01-16/1", "2024-01-16/2", "2024-01-22/1"},
		},
		{
			name:     "Half-open date window",
			opts:     TimeBlockSearchOptions{WorkerID: "w-1", From: day("2024-01-15"), To: day("2024-01-22")},
			expected: []string{"2024-01-15/1", "2024-01-16/1", "2024-01-16/2"},
		},
		{
			name:     "Single day",
			opts:     TimeBlockSearchOptions{WorkerID: "w-1", From: day("2024-01-16"), To: day("2024-01-17")},
			expected: []string{"2024-01-16/1", "2024-01-16/2"},
		},
		{
			name:     "Active only",
			opts:     TimeBlockSearchOptions{WorkerID: "w-1", ActiveOnly: true},
			expected: []string{"2024-01-16/2"},
		},
		{
			name:     "No matches",
			opts:     TimeBlockSearchOptions{WorkerID: "w-2", From: day("2024-02-01")},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := repo.SearchTimeBlocks(ctx, tt.opts)
			require.NoError(t, err)

			got := make([]string, 0, len(blocks))
			for _, b := range blocks {
				got = append(got, b.BlockDate+"/"+string(rune('0'+b.BlockNumber)))
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFarmsAndFields(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	farm := &Farm{ID: "farm-1", Name: "Willow Creek", OwnerName: "Dana", Acreage: 320, CreatedAt: time.Now()}
	require.NoError(t, repo.CreateFarm(ctx, farm))
	require.NoError(t, repo.CreateFarm(ctx, &Farm{ID: "farm-2", Name: "Aspen Hill", CreatedAt: time.Now()}))

	farms, err := repo.ListFarms(ctx)
	require.NoError(t, err)
	require.Len(t, farms, 2)
	assert.Equal(t, "Aspen Hill", farms[0].Name)

	got, err := repo.GetFarm(ctx, "farm-1")
	require.NoError(t, err)
	assert.Equal(t, 320.0, got.Acreage)

	north := &Field{ID: "f-1", FarmID: "farm-1", Name: "North", Acreage: 40, CropType: "wheat", CreatedAt: time.Now()}
	require.NoError(t, repo.CreateField(ctx, north))
	require.NoError(t, repo.CreateField(ctx, &Field{ID: "f-2", FarmID: "farm-2", Name: "East", CreatedAt: time.Now()}))

	err = repo.CreateField(ctx, &Field{ID: "f-3", FarmID: "no-farm", Name: "Lost", CreatedAt: time.Now()})
	assert.Error(t, err)

	fields, err := repo.ListFields(ctx, "farm-1")
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "North", fields[0].Name)

	all, err := repo.ListFields(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	north.CropType = "barley"
	require.NoError(t, repo.UpdateField(ctx, north))
	updated, err := repo.GetField(ctx, "f-1")
	require.NoError(t, err)
	assert.Equal(t, "barley", updated.CropType)
}

func TestSoilTests(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.CreateFarm(ctx, &Farm{ID: "farm-1", Name: "Willow Creek", CreatedAt: time.Now()}))
	require.NoError(t, repo.CreateField(ctx, &Field{ID: "f-1", FarmID: "farm-1", Name: "North", CreatedAt: time.Now()}))

	ref := "LAB-7"
	older := &SoilTest{ID: "s-1", FieldID: "f-1", TestDate: time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC), PH: 6.2, CreatedAt: time.Now()}
	newer := &SoilTest{ID: "s-2", FieldID: "f-1", LabReference: &ref, TestDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), PH: 7.0, Phosphorus: 20, CreatedAt: time.Now()}
	require.NoError(t, repo.CreateSoilTest(ctx, older))
	require.NoError(t, repo.CreateSoilTest(ctx, newer))

	tests, err := repo.ListSoilTests(ctx, "f-1")
	require.NoError(t, err)
	require.Len(t, tests, 2)
	assert.Equal(t, "s-2", tests[0].ID)
	assert.Equal(t, "s-1", tests[1].ID)
	require.NotNil(t, tests[0].LabReference)
	assert.Equal(t, "LAB-7", *tests[0].LabReference)
	assert.Nil(t, tests[1].LabReference)

	older.PH = 6.5
	older.Notes = "resampled"
	require.NoError(t, repo.UpdateSoilTest(ctx, older))
	got, err := repo.GetSoilTest(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, 6.5, got.PH)
	assert.Equal(t, "resampled", got.Notes)

	err = repo.CreateSoilTest(ctx, &SoilTest{ID: "s-3", FieldID: "no-field", TestDate: time.Now(), CreatedAt: time.Now()})
	assert.Error(t, err)

	empty, err := repo.ListSoilTests(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestQueryTimeout(t *testing.T) {
	repo, err := NewWithOptions(":memory:", Options{QueryTimeout: time.Nanosecond})
	require.NoError(t, err)
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err = repo.ListWorkers(ctx, false)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeTimeout))
}
