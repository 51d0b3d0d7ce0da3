package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"farm-tracker/internal/clock"
	"farm-tracker/internal/domain"
	"farm-tracker/internal/errors"
	"farm-tracker/internal/repository/sqlite"
	"farm-tracker/internal/validation"
)

// workerServiceImpl implements the WorkerService interface
type workerServiceImpl struct {
	repo      sqlite.Repository
	clock     clock.Clock
	mapper    *domain.Mapper
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewWorkerService creates a new WorkerService instance
func NewWorkerService(repo sqlite.Repository, clk clock.Clock, logger zerolog.Logger) WorkerService {
	return &workerServiceImpl{
		repo:      repo,
		clock:     clk,
		mapper:    domain.NewMapper(),
		validator: validation.NewValidator(),
		logger:    logger.With().Str("component", "workers").Logger(),
	}
}

// Onboard creates an active worker from draft
func (s *workerServiceImpl) Onboard(ctx context.Context, draft domain.WorkerDraft) (*domain.Worker, error) {
	draft = draft.Normalize()
	now := s.clock.Now()
	if err := s.validator.ValidateWorkerDraft(draft, now); err != nil {
		return nil, errors.NewValidationError("invalid worker", err)
	}

	worker := draft.Apply(domain.Worker{
		ID:        uuid.NewString(),
		IsActive:  true,
		CreatedAt: now,
	})

	dbWorker := s.mapper.Worker.ToDatabase(worker)
	if err := s.repo.CreateWorker(ctx, &dbWorker); err != nil {
		return nil, err
	}

	s.logger.Info().Str("worker_id", worker.ID).Str("name", worker.Name).Msg("worker onboarded")
	return &worker, nil
}

// Get retrieves a worker by ID
func (s *workerServiceImpl) Get(ctx context.Context, id string) (*domain.Worker, error) {
	dbWorker, err := s.repo.GetWorker(ctx, id)
	if err != nil {
		return nil, err
	}
	worker := s.mapper.Worker.FromDatabase(*dbWorker)
	return &worker, nil
}

// List returns workers ordered by name
func (s *workerServiceImpl) List(ctx context.Context, activeOnly bool) ([]domain.Worker, error) {
	dbWorkers, err := s.repo.ListWorkers(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return s.mapper.Worker.FromDatabaseSlice(dbWorkers), nil
}

// Update applies draft to the stored worker
func (s *workerServiceImpl) Update(ctx context.Context, id string, draft domain.WorkerDraft) (*domain.Worker, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	draft = draft.Normalize()
	if err := s.validator.ValidateWorkerDraft(draft, s.clock.Now()); err != nil {
		return nil, errors.NewValidationError("invalid worker", err)
	}

	updated := draft.Apply(*current)
	dbWorker := s.mapper.Worker.ToDatabase(updated)
	if err := s.repo.UpdateWorker(ctx, &dbWorker); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Deactivate marks a worker inactive. Time blocks are kept.
func (s *workerServiceImpl) Deactivate(ctx context.Context, id string) (*domain.Worker, error) {
	worker, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !worker.IsActive {
		return worker, nil
	}

	worker.IsActive = false
	dbWorker := s.mapper.Worker.ToDatabase(*worker)
	if err := s.repo.UpdateWorker(ctx, &dbWorker); err != nil {
		return nil, err
	}

	s.logger.Info().Str("worker_id", id).Msg("worker deactivated")
	return worker, nil
}
