package domain

import (
	"math"
	"time"
)

// TimeBlock is one continuous work interval for a worker on a calendar day.
// Date is local midnight of the clock-in day.
type TimeBlock struct {
	ID           string     `json:"id"`
	WorkerID     string     `json:"worker_id"`
	Date         time.Time  `json:"date"`
	BlockNumber  int        `json:"block_number"`
	ClockInTime  time.Time  `json:"clock_in_time"`
	ClockOutTime *time.Time `json:"clock_out_time"`
	HoursWorked  float64    `json:"hours_worked"`
	IsActive     bool       `json:"is_active"`
	WeekNumber   int        `json:"week_number"`
	Year         int        `json:"year"`
}

// NewTimeBlock opens block number n for a worker at clockIn.
func NewTimeBlock(workerID string, n int, clockIn time.Time) TimeBlock {
	year, week := clockIn.Local().ISOWeek()
	return TimeBlock{
		WorkerID:    workerID,
		Date:        StartOfDay(clockIn),
		BlockNumber: n,
		ClockInTime: clockIn,
		IsActive:    true,
		WeekNumber:  week,
		Year:        year,
	}
}

// IsOpen reports whether the block has no clock-out yet.
func (b TimeBlock) IsOpen() bool {
	return b.IsActive && b.ClockOutTime == nil
}

// Close records the clock-out and the rounded hours worked. A clock-out
// earlier than the clock-in counts as zero hours.
func (b TimeBlock) Close(clockOut time.Time, precision int) TimeBlock {
	b.ClockOutTime = &clockOut
	b.IsActive = false
	b.HoursWorked = RoundHours(math.Max(0, clockOut.Sub(b.ClockInTime).Hours()), precision)
	return b
}

// Hours returns stored hours for a closed block and elapsed hours up to now
// for an open one. Live hours are never negative.
func (b TimeBlock) Hours(now time.Time) float64 {
	if !b.IsOpen() {
		return b.HoursWorked
	}
	return math.Max(0, now.Sub(b.ClockInTime).Hours())
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// RoundHours rounds h to the given number of decimal places.
// A negative precision leaves h untouched.
func RoundHours(h float64, precision int) float64 {
	if precision < 0 {
		return h
	}
	p := math.Pow(10, float64(precision))
	return math.Round(h*p) / p
}
