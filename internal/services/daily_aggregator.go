package services

import (
	"context"
	"time"

	"farm-tracker/internal/clock"
	"farm-tracker/internal/domain"
)

// dailyAggregatorImpl implements the DailyTimeAggregator interface
type dailyAggregatorImpl struct {
	timeClock TimeClockService
	clock     clock.Clock
}

// NewDailyTimeAggregator creates a new DailyTimeAggregator. Totals are
// computed on each call, so callers refresh a live display by calling again.
func NewDailyTimeAggregator(timeClock TimeClockService, clk clock.Clock) DailyTimeAggregator {
	return &dailyAggregatorImpl{timeClock: timeClock, clock: clk}
}

// TotalHoursForDay sums closed hours plus the live hours of an open block
func (d *dailyAggregatorImpl) TotalHoursForDay(ctx context.Context, workerID string, date time.Time) (float64, error) {
	blocks, err := d.timeClock.GetTimeBlocks(ctx, workerID, date)
	if err != nil {
		return 0, err
	}
	return SumBlockHours(blocks, d.clock.Now()), nil
}

// DaySummary returns the day's blocks with their total
func (d *dailyAggregatorImpl) DaySummary(ctx context.Context, workerID string, date time.Time) (*DaySummary, error) {
	blocks, err := d.timeClock.GetTimeBlocks(ctx, workerID, date)
	if err != nil {
		return nil, err
	}

	summary := &DaySummary{
		WorkerID:   workerID,
		Date:       domain.StartOfDay(date),
		Blocks:     blocks,
		TotalHours: SumBlockHours(blocks, d.clock.Now()),
	}
	for _, b := range blocks {
		if b.IsOpen() {
			summary.IsClockedIn = true
			break
		}
	}
	return summary, nil
}

// SumBlockHours adds stored hours of closed blocks and elapsed hours up to
// now of open ones. The result does not depend on block order.
func SumBlockHours(blocks []domain.TimeBlock, now time.Time) float64 {
	var total float64
	for _, b := range blocks {
		total += b.Hours(now)
	}
	return total
}
