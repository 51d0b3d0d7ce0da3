package services

import (
	"context"
	"math"
	"time"

	"farm-tracker/internal/clock"
	"farm-tracker/internal/domain"
	"farm-tracker/internal/errors"
	"farm-tracker/internal/repository/sqlite"
)

// DefaultOvertimeThreshold is the weekly hours at which overtime starts.
const DefaultOvertimeThreshold = 40.0

// weeklyHoursImpl implements the WeeklyHoursCalculator interface
type weeklyHoursImpl struct {
	repo      sqlite.Repository
	clock     clock.Clock
	mapper    *domain.Mapper
	threshold float64
}

// NewWeeklyHoursCalculator creates a new WeeklyHoursCalculator. A
// non-positive threshold falls back to DefaultOvertimeThreshold.
func NewWeeklyHoursCalculator(repo sqlite.Repository, clk clock.Clock, overtimeThreshold float64) WeeklyHoursCalculator {
	if overtimeThreshold <= 0 {
		overtimeThreshold = DefaultOvertimeThreshold
	}
	return &weeklyHoursImpl{
		repo:      repo,
		clock:     clk,
		mapper:    domain.NewMapper(),
		threshold: overtimeThreshold,
	}
}

// WeekStart returns local midnight of the Monday on or before ref
func (w *weeklyHoursImpl) WeekStart(ref time.Time) time.Time {
	return WeekStart(ref)
}

// WeekStart returns local midnight of the Monday on or before ref.
func WeekStart(ref time.Time) time.Time {
	day := domain.StartOfDay(ref)
	// Monday=0 ... Sunday=6
	idx := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -idx)
}

// PreviousWeek returns the Monday seven days before weekStart
func (w *weeklyHoursImpl) PreviousWeek(weekStart time.Time) time.Time {
	return WeekStart(weekStart).AddDate(0, 0, -7)
}

// NextWeek returns the Monday seven days after weekStart
func (w *weeklyHoursImpl) NextWeek(weekStart time.Time) time.Time {
	return WeekStart(weekStart).AddDate(0, 0, 7)
}

// IsOvertime reports whether totalHours reaches the threshold
func (w *weeklyHoursImpl) IsOvertime(totalHours float64) bool {
	return totalHours >= w.threshold
}

// TotalHoursForWeek sums every block in ref's week, open blocks at live hours
func (w *weeklyHoursImpl) TotalHoursForWeek(ctx context.Context, workerID string, ref time.Time) (float64, error) {
	start := WeekStart(ref)
	blocks, err := w.blocksInWeek(ctx, workerID, start)
	if err != nil {
		return 0, err
	}
	return SumBlockHours(blocks, w.clock.Now()), nil
}

// WeekSummary breaks ref's week down by day
func (w *weeklyHoursImpl) WeekSummary(ctx context.Context, workerID string, ref time.Time) (*WeeklySummary, error) {
	start := WeekStart(ref)
	blocks, err := w.blocksInWeek(ctx, workerID, start)
	if err != nil {
		return nil, err
	}

	now := w.clock.Now()
	byDay := make(map[string][]domain.TimeBlock, 7)
	for _, b := range blocks {
		key := sqlite.FormatDateForDB(b.Date)
		byDay[key] = append(byDay[key], b)
	}

	year, week := start.ISOWeek()
	summary := &WeeklySummary{
		WorkerID:   workerID,
		WeekStart:  start,
		WeekEnd:    start.AddDate(0, 0, 7),
		Year:       year,
		WeekNumber: week,
		Days:       make([]DayTotal, 7),
	}
	for i := range summary.Days {
		day := start.AddDate(0, 0, i)
		hours := SumBlockHours(byDay[sqlite.FormatDateForDB(day)], now)
		summary.Days[i] = DayTotal{Date: day, Hours: hours}
		summary.TotalHours += hours
	}
	summary.IsOvertime = w.IsOvertime(summary.TotalHours)
	summary.OvertimeHours = math.Max(0, summary.TotalHours-w.threshold)

	return summary, nil
}

func (w *weeklyHoursImpl) blocksInWeek(ctx context.Context, workerID string, start time.Time) ([]domain.TimeBlock, error) {
	end := start.AddDate(0, 0, 7)
	dbBlocks, err := w.repo.SearchTimeBlocks(ctx, sqlite.TimeBlockSearchOptions{
		WorkerID: workerID,
		From:     &start,
		To:       &end,
	})
	if err != nil {
		return nil, err
	}

	blocks, err := w.mapper.TimeBlock.FromDatabaseSlice(dbBlocks)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIntegrity, "stored time block is malformed")
	}
	return blocks, nil
}
