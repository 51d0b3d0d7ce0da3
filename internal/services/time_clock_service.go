package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"farm-tracker/internal/clock"
	"farm-tracker/internal/domain"
	"farm-tracker/internal/errors"
	"farm-tracker/internal/repository/sqlite"
)

// timeClockServiceImpl implements the TimeClockService interface
type timeClockServiceImpl struct {
	repo      sqlite.Repository
	clock     clock.Clock
	mapper    *domain.Mapper
	logger    zerolog.Logger
	precision int
	locks     *workerLocks
}

// NewTimeClockService creates a new TimeClockService. hoursPrecision is the
// number of decimals kept when a closed block's hours are stored.
func NewTimeClockService(repo sqlite.Repository, clk clock.Clock, logger zerolog.Logger, hoursPrecision int) TimeClockService {
	return &timeClockServiceImpl{
		repo:      repo,
		clock:     clk,
		mapper:    domain.NewMapper(),
		logger:    logger.With().Str("component", "time_clock").Logger(),
		precision: hoursPrecision,
		locks:     newWorkerLocks(),
	}
}

// ClockIn opens a new block for today unless one is already open
func (s *timeClockServiceImpl) ClockIn(ctx context.Context, workerID string) (*domain.TimeBlock, error) {
	unlock := s.locks.lock(workerID)
	defer unlock()

	if _, err := s.repo.GetWorker(ctx, workerID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	blocks, err := s.GetTimeBlocks(ctx, workerID, now)
	if err != nil {
		return nil, err
	}

	open, err := findOpenBlock(workerID, now, blocks)
	if err != nil {
		return nil, err
	}
	if open != nil {
		s.logger.Debug().
			Str("worker_id", workerID).
			Str("block_id", open.ID).
			Msg("already clocked in")
		return open, nil
	}

	block := domain.NewTimeBlock(workerID, len(blocks)+1, now)
	block.ID = uuid.NewString()

	dbBlock := s.mapper.TimeBlock.ToDatabase(block)
	if err := s.repo.CreateTimeBlock(ctx, &dbBlock); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("worker_id", workerID).
		Str("block_id", block.ID).
		Int("block_number", block.BlockNumber).
		Time("clock_in", block.ClockInTime).
		Msg("clocked in")

	return &block, nil
}

// ClockOut closes today's open block
func (s *timeClockServiceImpl) ClockOut(ctx context.Context, workerID string) (*domain.TimeBlock, error) {
	unlock := s.locks.lock(workerID)
	defer unlock()

	now := s.clock.Now()
	blocks, err := s.GetTimeBlocks(ctx, workerID, now)
	if err != nil {
		return nil, err
	}

	open, err := findOpenBlock(workerID, now, blocks)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, errors.NewNoOpenBlockError(workerID, sqlite.FormatDateForDB(now))
	}

	closed := open.Close(now, s.precision)
	dbBlock := s.mapper.TimeBlock.ToDatabase(closed)
	if err := s.repo.UpdateTimeBlock(ctx, &dbBlock); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("worker_id", workerID).
		Str("block_id", closed.ID).
		Int("block_number", closed.BlockNumber).
		Float64("hours", closed.HoursWorked).
		Msg("clocked out")

	return &closed, nil
}

// GetTimeBlocks returns a worker's blocks for date's calendar day ordered by block number
func (s *timeClockServiceImpl) GetTimeBlocks(ctx context.Context, workerID string, date time.Time) ([]domain.TimeBlock, error) {
	day := domain.StartOfDay(date)
	next := day.AddDate(0, 0, 1)
	return s.searchBlocks(ctx, sqlite.TimeBlockSearchOptions{
		WorkerID: workerID,
		From:     &day,
		To:       &next,
	})
}

// GetOpenBlock returns the open block for date, or nil when there is none
func (s *timeClockServiceImpl) GetOpenBlock(ctx context.Context, workerID string, date time.Time) (*domain.TimeBlock, error) {
	blocks, err := s.GetTimeBlocks(ctx, workerID, date)
	if err != nil {
		return nil, err
	}
	return findOpenBlock(workerID, date, blocks)
}

// IsClockedIn reports whether the worker has an open block on date
func (s *timeClockServiceImpl) IsClockedIn(ctx context.Context, workerID string, date time.Time) (bool, error) {
	open, err := s.GetOpenBlock(ctx, workerID, date)
	if err != nil {
		return false, err
	}
	return open != nil, nil
}

func (s *timeClockServiceImpl) searchBlocks(ctx context.Context, opts sqlite.TimeBlockSearchOptions) ([]domain.TimeBlock, error) {
	dbBlocks, err := s.repo.SearchTimeBlocks(ctx, opts)
	if err != nil {
		return nil, err
	}

	blocks, err := s.mapper.TimeBlock.FromDatabaseSlice(dbBlocks)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIntegrity, "stored time block is malformed")
	}
	return blocks, nil
}

// findOpenBlock returns the single open block in blocks. More than one open
// block means the store is inconsistent.
func findOpenBlock(workerID string, date time.Time, blocks []domain.TimeBlock) (*domain.TimeBlock, error) {
	var open []domain.TimeBlock
	for _, b := range blocks {
		if b.IsOpen() {
			open = append(open, b)
		}
	}

	switch len(open) {
	case 0:
		return nil, nil
	case 1:
		return &open[0], nil
	default:
		return nil, errors.NewAmbiguousOpenStateError(workerID, sqlite.FormatDateForDB(date), len(open))
	}
}
