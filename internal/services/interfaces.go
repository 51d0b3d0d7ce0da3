package services

import (
	"context"
	"time"

	"farm-tracker/internal/domain"
)

// DaySummary is a worker's blocks and hours for one calendar day.
type DaySummary struct {
	WorkerID    string             `json:"worker_id"`
	Date        time.Time          `json:"date"`
	Blocks      []domain.TimeBlock `json:"blocks"`
	TotalHours  float64            `json:"total_hours"`
	IsClockedIn bool               `json:"is_clocked_in"`
}

// DayTotal is one day's hours within a week.
type DayTotal struct {
	Date  time.Time `json:"date"`
	Hours float64   `json:"hours"`
}

// WeeklySummary is a worker's hours for one Monday-to-Sunday week.
type WeeklySummary struct {
	WorkerID      string     `json:"worker_id"`
	WeekStart     time.Time  `json:"week_start"`
	WeekEnd       time.Time  `json:"week_end"` // exclusive
	Year          int        `json:"year"`
	WeekNumber    int        `json:"week_number"`
	Days          []DayTotal `json:"days"` // Monday first, always seven entries
	TotalHours    float64    `json:"total_hours"`
	IsOvertime    bool       `json:"is_overtime"`
	OvertimeHours float64    `json:"overtime_hours"`
}

// TimeClockService mediates every state change of a worker's time blocks.
type TimeClockService interface {
	// ClockIn opens a block for today, or returns the block already open.
	ClockIn(ctx context.Context, workerID string) (*domain.TimeBlock, error)
	// ClockOut closes today's open block. It fails with a no_open_block
	// error when there is nothing to close.
	ClockOut(ctx context.Context, workerID string) (*domain.TimeBlock, error)

	GetTimeBlocks(ctx context.Context, workerID string, date time.Time) ([]domain.TimeBlock, error)
	GetOpenBlock(ctx context.Context, workerID string, date time.Time) (*domain.TimeBlock, error)
	IsClockedIn(ctx context.Context, workerID string, date time.Time) (bool, error)
}

// DailyTimeAggregator totals a worker's hours for a calendar day.
type DailyTimeAggregator interface {
	TotalHoursForDay(ctx context.Context, workerID string, date time.Time) (float64, error)
	DaySummary(ctx context.Context, workerID string, date time.Time) (*DaySummary, error)
}

// WeeklyHoursCalculator totals hours over Monday-start weeks.
type WeeklyHoursCalculator interface {
	WeekStart(ref time.Time) time.Time
	TotalHoursForWeek(ctx context.Context, workerID string, ref time.Time) (float64, error)
	WeekSummary(ctx context.Context, workerID string, ref time.Time) (*WeeklySummary, error)
	IsOvertime(totalHours float64) bool
	PreviousWeek(weekStart time.Time) time.Time
	NextWeek(weekStart time.Time) time.Time
}

// WorkerService handles worker records.
type WorkerService interface {
	Onboard(ctx context.Context, draft domain.WorkerDraft) (*domain.Worker, error)
	Get(ctx context.Context, id string) (*domain.Worker, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Worker, error)
	Update(ctx context.Context, id string, draft domain.WorkerDraft) (*domain.Worker, error)
	Deactivate(ctx context.Context, id string) (*domain.Worker, error)
}

// FieldService handles farms and their fields.
type FieldService interface {
	CreateFarm(ctx context.Context, draft domain.FarmDraft) (*domain.Farm, error)
	ListFarms(ctx context.Context) ([]domain.Farm, error)
	CreateField(ctx context.Context, draft domain.FieldDraft) (*domain.Field, error)
	GetField(ctx context.Context, id string) (*domain.Field, error)
	UpdateField(ctx context.Context, id string, draft domain.FieldDraft) (*domain.Field, error)
	ListFields(ctx context.Context, farmID string) ([]domain.Field, error)
}

// SoilTestService records soil tests and produces interpreted reports.
type SoilTestService interface {
	Record(ctx context.Context, draft domain.SoilTestDraft) (*domain.SoilTest, error)
	Get(ctx context.Context, id string) (*domain.SoilTest, error)
	Update(ctx context.Context, id string, draft domain.SoilTestDraft) (*domain.SoilTest, error)
	ListForField(ctx context.Context, fieldID string) ([]domain.SoilTest, error)
	Report(ctx context.Context, id string) (*domain.SoilReport, error)
	LatestReport(ctx context.Context, fieldID string) (*domain.SoilReport, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeClock   TimeClockService
	Daily       DailyTimeAggregator
	Weekly      WeeklyHoursCalculator
	Workers     WorkerService
	Fields      FieldService
	SoilTests   SoilTestService
	Interpreter *SoilInterpreter
}
