package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farm-tracker/internal/domain"
	"farm-tracker/internal/errors"
)

func TestTimeClockService_ClockIn(t *testing.T) {
	t.Run("should open block 1 on the first clock-in of the day", func(t *testing.T) {
		// Arrange
		env := setupTestEnv(t, at(2024, time.June, 10, 7, 0))
		worker := env.onboard(t, "Alice")

		// Act
		block, err := env.timeClock.ClockIn(context.Background(), worker.ID)

		// Assert
		require.NoError(t, err)
		assert.NotEmpty(t, block.ID)
		assert.Equal(t, 1, block.BlockNumber)
		assert.True(t, block.IsOpen())
		assert.Equal(t, at(2024, time.June, 10, 0, 0), block.Date)
		assert.Equal(t, 24, block.WeekNumber)
		assert.Equal(t, 2024, block.Year)
	})

	t.Run("should return the open block when already clocked in", func(t *testing.T) {
		env := setupTestEnv(t, at(2024, time.June, 10, 7, 0))
		worker := env.onboard(t, "Alice")
		ctx := context.Background()

		first, err := env.timeClock.ClockIn(ctx, worker.ID)
		require.NoError(t, err)
		env.clock.Advance(30 * time.Minute)

		second, err := env.timeClock.ClockIn(ctx, worker.ID)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		blocks, err := env.timeClock.GetTimeBlocks(ctx, worker.ID, env.clock.Now())
		require.NoError(t, err)
		assert.Len(t, blocks, 1)
	})

	t.Run("should fail with not found for an unknown worker", func(t *testing.T) {
		env := setupTestEnv(t, at(2024, time.June, 10, 7, 0))

		block, err := env.timeClock.ClockIn(context.Background(), "missing")

		assert.Nil(t, block)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("should number blocks sequentially within a day", func(t *testing.T) {
		env := setupTestEnv(t, at(2024, time.June, 10, 7, 0))
		worker := env.onboard(t, "Alice")

		env.work(t, worker.ID, at(2024, time.June, 10, 7, 0), at(2024, time.June, 10, 9, 0))
		env.work(t, worker.ID, at(2024, time.June, 10, 10, 0), at(2024, time.June, 10, 12, 0))
		env.clock.Set(at(2024, time.June, 10, 13, 0))
		third, err := env.timeClock.ClockIn(context.Background(), worker.ID)

		require.NoError(t, err)
		assert.Equal(t, 3, third.BlockNumber)
	})

	t.Run("should start again at block 1 on a new day", func(t *testing.T) {
		env := setupTestEnv(t, at(2024, time.June, 10, 7, 0))
		worker := env.onboard(t, "Alice")
		env.work(t, worker.ID, at(2024, time.June, 10, 7, 0), at(2024, time.June, 10, 15, 0))

		env.clock.Set(at(2024, time.June, 11, 7, 0))
		block, err := env.timeClock.ClockIn(context.Background(), worker.ID)

		require.NoError(t, err)
		assert.Equal(t, 1, block.BlockNumber)
		assert.Equal(t, at(2024, time.June, 11, 0, 0), block.Date)
	})
}

func TestTimeClockService_ClockOut(t *testing.T) {
	t.Run("should close the open block with rounded hours", func(t *testing.T) {
		env := setupTestEnv(t, at(2024, time.June, 10, 7, 0))
		worker := env.onboard(t, "Alice")
		ctx := context.Background()

		_, err := env.timeClock.ClockIn(ctx, worker.ID)
		require.NoError(t, err)
		env.clock.Advance(4*time.Hour + 20*time.Minute)

		block, err := env.timeClock.ClockOut(ctx, worker.ID)

		require.NoError(t, err)
		assert.False(t, block.IsOpen())
		require.NotNil(t, block.ClockOutTime)
		assert.Equal(t, 4.33, block.HoursWorked)

		open, err := env.timeClock.IsClockedIn(ctx, worker.ID, env.clock.Now())
		require.NoError(t, err)
		assert.False(t, open)
	})

	t.Run("should report no open block when not clocked in", func(t *testing.T) {
		env := setupTestEnv(t, at(2024, time.June, 10, 7, 0))
		worker := env.onboard(t, "Alice")

		block, err := env.timeClock.ClockOut(context.Background(), worker.ID)

		assert.Nil(t, block)
		assert.True(t, errors.IsNoOpenBlock(err))
	})

	t.Run("should not close a block left open on a previous day", func(t *testing.T) {
		env := setupTestEnv(t, at(2024, time.June, 10, 16, 0))
		worker := env.onboard(t, "Alice")
		ctx := context.Background()
		_, err := env.timeClock.ClockIn(ctx, worker.ID)
		require.NoError(t, err)

		env.clock.Set(at(2024, time.June, 11, 8, 0))
		_, err = env.timeClock.ClockOut(ctx, worker.ID)

		assert.True(t, errors.IsNoOpenBlock(err))
		stale, err := env.timeClock.GetOpenBlock(ctx, worker.ID, at(2024, time.June, 10, 0, 0))
		require.NoError(t, err)
		assert.NotNil(t, stale)
	})
}

func TestTimeClockService_SplitShift(t *testing.T) {
	// Arrange
	env := setupTestEnv(t, at(2024, time.June, 10, 7, 0))
	worker := env.onboard(t, "Alice")
	ctx := context.Background()

	// Act
	env.work(t, worker.ID, at(2024, time.June, 10, 7, 0), at(2024, time.June, 10, 11, 30))
	env.work(t, worker.ID, at(2024, time.June, 10, 13, 0), at(2024, time.June, 10, 17, 0))

	// Assert
	blocks, err := env.timeClock.GetTimeBlocks(ctx, worker.ID, at(2024, time.June, 10, 12, 0))
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, 1, blocks[0].BlockNumber)
	assert.Equal(t, 4.5, blocks[0].HoursWorked)
	assert.Equal(t, 2, blocks[1].BlockNumber)
	assert.Equal(t, 4.0, blocks[1].HoursWorked)

	total, err := env.daily.TotalHoursForDay(ctx, worker.ID, at(2024, time.June, 10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 8.5, total)
}

func TestTimeClockService_ConcurrentClockIn(t *testing.T) {
	env := setupTestEnv(t, at(2024, time.June, 10, 7, 0))
	worker := env.onboard(t, "Alice")
	ctx := context.Background()

	const callers = 8
	ids := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			block, err := env.timeClock.ClockIn(ctx, worker.ID)
			if assert.NoError(t, err) {
				ids[i] = block.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids[1:] {
		assert.Equal(t, ids[0], id)
	}
	blocks, err := env.timeClock.GetTimeBlocks(ctx, worker.ID, env.clock.Now())
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
}

func TestTimeClockService_IsolatesWorkers(t *testing.T) {
	env := setupTestEnv(t, at(2024, time.June, 10, 7, 0))
	alice := env.onboard(t, "Alice")
	bob := env.onboard(t, "Bob")
	ctx := context.Background()

	_, err := env.timeClock.ClockIn(ctx, alice.ID)
	require.NoError(t, err)

	aliceIn, err := env.timeClock.IsClockedIn(ctx, alice.ID, env.clock.Now())
	require.NoError(t, err)
	bobIn, err := env.timeClock.IsClockedIn(ctx, bob.ID, env.clock.Now())
	require.NoError(t, err)

	assert.True(t, aliceIn)
	assert.False(t, bobIn)
}

func TestFindOpenBlock(t *testing.T) {
	day := at(2024, time.June, 10, 0, 0)
	closed := domain.NewTimeBlock("w1", 1, day.Add(7*time.Hour)).Close(day.Add(9*time.Hour), 2)
	open := domain.NewTimeBlock("w1", 2, day.Add(10*time.Hour))
	alsoOpen := domain.NewTimeBlock("w1", 3, day.Add(11*time.Hour))

	tests := []struct {
		name        string
		blocks      []domain.TimeBlock
		wantNumber  int
		wantErrType *errors.ErrorType
	}{
		{name: "should return nil for no blocks", blocks: nil},
		{name: "should return nil when every block is closed", blocks: []domain.TimeBlock{closed}},
		{name: "should return the single open block", blocks: []domain.TimeBlock{closed, open}, wantNumber: 2},
		{
			name:        "should report integrity error for two open blocks",
			blocks:      []domain.TimeBlock{closed, open, alsoOpen},
			wantErrType: ptrErrType(errors.ErrorTypeIntegrity),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findOpenBlock("w1", day, tt.blocks)

			if tt.wantErrType != nil {
				assert.True(t, errors.IsErrorType(err, *tt.wantErrType))
				assert.Equal(t, "AMBIGUOUS_OPEN_STATE", errors.GetErrorCode(err))
				return
			}
			require.NoError(t, err)
			if tt.wantNumber == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantNumber, got.BlockNumber)
		})
	}
}

func ptrErrType(t errors.ErrorType) *errors.ErrorType {
	return &t
}
