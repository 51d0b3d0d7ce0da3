package api

import (
	"context"
	"time"

	"farm-tracker/internal/clock"
	"farm-tracker/internal/domain"
	"farm-tracker/internal/errors"
	"farm-tracker/internal/services"
	"farm-tracker/internal/validation"
)

// BusinessAPI is the single surface the presentation layers use
type BusinessAPI interface {
	// ========== Workers ==========

	OnboardWorker(ctx context.Context, draft domain.WorkerDraft) (*domain.Worker, error)
	GetWorker(ctx context.Context, id string) (*domain.Worker, error)
	ListWorkers(ctx context.Context, activeOnly bool) ([]domain.Worker, error)
	UpdateWorker(ctx context.Context, id string, draft domain.WorkerDraft) (*domain.Worker, error)
	DeactivateWorker(ctx context.Context, id string) (*domain.Worker, error)

	// ========== Time Clock ==========

	// ClockIn opens a block for today, or returns the block already open
	ClockIn(ctx context.Context, workerID string) (*ClockEvent, error)
	// ClockOut closes today's open block
	ClockOut(ctx context.Context, workerID string) (*ClockEvent, error)
	GetClockStatus(ctx context.Context, workerID string) (*ClockStatus, error)
	GetTimeBlocks(ctx context.Context, workerID string, date time.Time) ([]domain.TimeBlock, error)

	// ========== Hours ==========

	GetDaySummary(ctx context.Context, workerID string, date time.Time) (*services.DaySummary, error)
	// GetWeekSummary summarizes the week containing ref moved by offset weeks
	GetWeekSummary(ctx context.Context, workerID string, ref time.Time, offset int) (*services.WeeklySummary, error)
	GetTimesheet(ctx context.Context, workerID string, ref time.Time, offset int) (*Timesheet, error)

	// ========== Farms and Fields ==========

	CreateFarm(ctx context.Context, draft domain.FarmDraft) (*domain.Farm, error)
	ListFarms(ctx context.Context) ([]domain.Farm, error)
	CreateField(ctx context.Context, draft domain.FieldDraft) (*domain.Field, error)
	GetField(ctx context.Context, id string) (*domain.Field, error)
	UpdateField(ctx context.Context, id string, draft domain.FieldDraft) (*domain.Field, error)
	ListFields(ctx context.Context, farmID string) ([]domain.Field, error)
	GetFieldOverview(ctx context.Context, fieldID string) (*FieldOverview, error)

	// ========== Soil Tests ==========

	RecordSoilTest(ctx context.Context, draft domain.SoilTestDraft) (*domain.SoilTest, error)
	GetSoilTest(ctx context.Context, id string) (*domain.SoilTest, error)
	UpdateSoilTest(ctx context.Context, id string, draft domain.SoilTestDraft) (*domain.SoilTest, error)
	ListSoilTests(ctx context.Context, fieldID string) ([]domain.SoilTest, error)
	GetSoilReport(ctx context.Context, testID string) (*domain.SoilReport, error)
	GetLatestSoilReport(ctx context.Context, fieldID string) (*domain.SoilReport, error)
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	svc       *services.ServiceContainer
	clock     clock.Clock
	validator *validation.Validator
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(svc *services.ServiceContainer, clk clock.Clock) BusinessAPI {
	return &businessAPIImpl{
		svc:       svc,
		clock:     clk,
		validator: validation.NewValidator(),
	}
}

func (b *businessAPIImpl) checkID(field, id string) error {
	if err := b.validator.ValidateID(field, id); err != nil {
		return errors.NewValidationError("invalid "+field, err)
	}
	return nil
}

// ========== Workers ==========

func (b *businessAPIImpl) OnboardWorker(ctx context.Context, draft domain.WorkerDraft) (*domain.Worker, error) {
	return b.svc.Workers.Onboard(ctx, draft)
}

func (b *businessAPIImpl) GetWorker(ctx context.Context, id string) (*domain.Worker, error) {
	if err := b.checkID("worker ID", id); err != nil {
		return nil, err
	}
	return b.svc.Workers.Get(ctx, id)
}

func (b *businessAPIImpl) ListWorkers(ctx context.Context, activeOnly bool) ([]domain.Worker, error) {
	return b.svc.Workers.List(ctx, activeOnly)
}

func (b *businessAPIImpl) UpdateWorker(ctx context.Context, id string, draft domain.WorkerDraft) (*domain.Worker, error) {
	if err := b.checkID("worker ID", id); err != nil {
		return nil, err
	}
	return b.svc.Workers.Update(ctx, id, draft)
}

func (b *businessAPIImpl) DeactivateWorker(ctx context.Context, id string) (*domain.Worker, error) {
	if err := b.checkID("worker ID", id); err != nil {
		return nil, err
	}
	return b.svc.Workers.Deactivate(ctx, id)
}

// ========== Time Clock ==========

func (b *businessAPIImpl) ClockIn(ctx context.Context, workerID string) (*ClockEvent, error) {
	worker, err := b.GetWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	block, err := b.svc.TimeClock.ClockIn(ctx, workerID)
	if err != nil {
		return nil, err
	}
	return b.clockEvent(ctx, worker, block)
}

func (b *businessAPIImpl) ClockOut(ctx context.Context, workerID string) (*ClockEvent, error) {
	worker, err := b.GetWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	block, err := b.svc.TimeClock.ClockOut(ctx, workerID)
	if err != nil {
		return nil, err
	}
	return b.clockEvent(ctx, worker, block)
}

func (b *businessAPIImpl) clockEvent(ctx context.Context, worker *domain.Worker, block *domain.TimeBlock) (*ClockEvent, error) {
	hours, err := b.svc.Daily.TotalHoursForDay(ctx, worker.ID, block.Date)
	if err != nil {
		return nil, err
	}
	return &ClockEvent{Worker: worker, Block: block, DayHours: hours}, nil
}

func (b *businessAPIImpl) GetClockStatus(ctx context.Context, workerID string) (*ClockStatus, error) {
	worker, err := b.GetWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	now := b.clock.Now()
	day, err := b.svc.Daily.DaySummary(ctx, workerID, now)
	if err != nil {
		return nil, err
	}
	open, err := b.svc.TimeClock.GetOpenBlock(ctx, workerID, now)
	if err != nil {
		return nil, err
	}

	status := &ClockStatus{
		Worker:      worker,
		IsClockedIn: open != nil,
		OpenBlock:   open,
		DayHours:    day.TotalHours,
		BlockCount:  len(day.Blocks),
	}
	if open != nil {
		status.OpenSince = since(open.ClockInTime, now)
	}
	return status, nil
}

func (b *businessAPIImpl) GetTimeBlocks(ctx context.Context, workerID string, date time.Time) ([]domain.TimeBlock, error) {
	if err := b.checkID("worker ID", workerID); err != nil {
		return nil, err
	}
	return b.svc.TimeClock.GetTimeBlocks(ctx, workerID, date)
}

// ========== Hours ==========

func (b *businessAPIImpl) GetDaySummary(ctx context.Context, workerID string, date time.Time) (*services.DaySummary, error) {
	if _, err := b.GetWorker(ctx, workerID); err != nil {
		return nil, err
	}
	return b.svc.Daily.DaySummary(ctx, workerID, date)
}

func (b *businessAPIImpl) GetWeekSummary(ctx context.Context, workerID string, ref time.Time, offset int) (*services.WeeklySummary, error) {
	if _, err := b.GetWorker(ctx, workerID); err != nil {
		return nil, err
	}
	return b.svc.Weekly.WeekSummary(ctx, workerID, b.shiftWeek(ref, offset))
}

func (b *businessAPIImpl) GetTimesheet(ctx context.Context, workerID string, ref time.Time, offset int) (*Timesheet, error) {
	worker, err := b.GetWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	summary, err := b.svc.Weekly.WeekSummary(ctx, workerID, b.shiftWeek(ref, offset))
	if err != nil {
		return nil, err
	}

	sheet := &Timesheet{Worker: worker, Summary: summary, Days: make([]*services.DaySummary, 0, len(summary.Days))}
	for _, d := range summary.Days {
		day, err := b.svc.Daily.DaySummary(ctx, workerID, d.Date)
		if err != nil {
			return nil, err
		}
		sheet.Days = append(sheet.Days, day)
	}
	return sheet, nil
}

// shiftWeek moves from ref's week by offset weeks; negative goes back
func (b *businessAPIImpl) shiftWeek(ref time.Time, offset int) time.Time {
	week := b.svc.Weekly.WeekStart(ref)
	for ; offset < 0; offset++ {
		week = b.svc.Weekly.PreviousWeek(week)
	}
	for ; offset > 0; offset-- {
		week = b.svc.Weekly.NextWeek(week)
	}
	return week
}

// ========== Farms and Fields ==========

func (b *businessAPIImpl) CreateFarm(ctx context.Context, draft domain.FarmDraft) (*domain.Farm, error) {
	return b.svc.Fields.CreateFarm(ctx, draft)
}

func (b *businessAPIImpl) ListFarms(ctx context.Context) ([]domain.Farm, error) {
	return b.svc.Fields.ListFarms(ctx)
}

func (b *businessAPIImpl) CreateField(ctx context.Context, draft domain.FieldDraft) (*domain.Field, error) {
	if err := b.checkID("farm ID", draft.FarmID); err != nil {
		return nil, err
	}
	return b.svc.Fields.CreateField(ctx, draft)
}

func (b *businessAPIImpl) GetField(ctx context.Context, id string) (*domain.Field, error) {
	if err := b.checkID("field ID", id); err != nil {
		return nil, err
	}
	return b.svc.Fields.GetField(ctx, id)
}

func (b *businessAPIImpl) UpdateField(ctx context.Context, id string, draft domain.FieldDraft) (*domain.Field, error) {
	if err := b.checkID("field ID", id); err != nil {
		return nil, err
	}
	return b.svc.Fields.UpdateField(ctx, id, draft)
}

func (b *businessAPIImpl) ListFields(ctx context.Context, farmID string) ([]domain.Field, error) {
	if farmID != "" {
		if err := b.checkID("farm ID", farmID); err != nil {
			return nil, err
		}
	}
	return b.svc.Fields.ListFields(ctx, farmID)
}

func (b *businessAPIImpl) GetFieldOverview(ctx context.Context, fieldID string) (*FieldOverview, error) {
	field, err := b.GetField(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	tests, err := b.svc.SoilTests.ListForField(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	overview := &FieldOverview{Field: field, TestCount: len(tests)}
	if len(tests) > 0 {
		report := b.svc.Interpreter.Interpret(tests[0], b.clock.Now())
		overview.LatestReport = &report
	}
	return overview, nil
}

// ========== Soil Tests ==========

func (b *businessAPIImpl) RecordSoilTest(ctx context.Context, draft domain.SoilTestDraft) (*domain.SoilTest, error) {
	if err := b.checkID("field ID", draft.FieldID); err != nil {
		return nil, err
	}
	return b.svc.SoilTests.Record(ctx, draft)
}

func (b *businessAPIImpl) GetSoilTest(ctx context.Context, id string) (*domain.SoilTest, error) {
	if err := b.checkID("soil test ID", id); err != nil {
		return nil, err
	}
	return b.svc.SoilTests.Get(ctx, id)
}

func (b *businessAPIImpl) UpdateSoilTest(ctx context.Context, id string, draft domain.SoilTestDraft) (*domain.SoilTest, error) {
	if err := b.checkID("soil test ID", id); err != nil {
		return nil, err
	}
	return b.svc.SoilTests.Update(ctx, id, draft)
}

func (b *businessAPIImpl) ListSoilTests(ctx context.Context, fieldID string) ([]domain.SoilTest, error) {
	if err := b.checkID("field ID", fieldID); err != nil {
		return nil, err
	}
	return b.svc.SoilTests.ListForField(ctx, fieldID)
}

func (b *businessAPIImpl) GetSoilReport(ctx context.Context, testID string) (*domain.SoilReport, error) {
	if err := b.checkID("soil test ID", testID); err != nil {
		return nil, err
	}
	return b.svc.SoilTests.Report(ctx, testID)
}

func (b *businessAPIImpl) GetLatestSoilReport(ctx context.Context, fieldID string) (*domain.SoilReport, error) {
	if err := b.checkID("field ID", fieldID); err != nil {
		return nil, err
	}
	return b.svc.SoilTests.LatestReport(ctx, fieldID)
}
