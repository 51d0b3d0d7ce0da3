package services

import (
	"context"

	"github.com/google/uuid"

	"farm-tracker/internal/clock"
	"farm-tracker/internal/domain"
	"farm-tracker/internal/errors"
	"farm-tracker/internal/repository/sqlite"
	"farm-tracker/internal/validation"
)

// fieldServiceImpl implements the FieldService interface
type fieldServiceImpl struct {
	repo      sqlite.Repository
	clock     clock.Clock
	mapper    *domain.Mapper
	validator *validation.Validator
}

// NewFieldService creates a new FieldService instance
func NewFieldService(repo sqlite.Repository, clk clock.Clock) FieldService {
	return &fieldServiceImpl{
		repo:      repo,
		clock:     clk,
		mapper:    domain.NewMapper(),
		validator: validation.NewValidator(),
	}
}

func (s *fieldServiceImpl) CreateFarm(ctx context.Context, draft domain.FarmDraft) (*domain.Farm, error) {
	if err := s.validator.ValidateFarmDraft(draft); err != nil {
		return nil, errors.NewValidationError("invalid farm", err)
	}

	farm := draft.Apply(domain.Farm{ID: uuid.NewString(), CreatedAt: s.clock.Now()})
	dbFarm := s.mapper.Farm.FarmToDatabase(farm)
	if err := s.repo.CreateFarm(ctx, &dbFarm); err != nil {
		return nil, err
	}
	return &farm, nil
}

func (s *fieldServiceImpl) ListFarms(ctx context.Context) ([]domain.Farm, error) {
	dbFarms, err := s.repo.ListFarms(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Farm.FarmsFromDatabase(dbFarms), nil
}

// CreateField adds a field to an existing farm
func (s *fieldServiceImpl) CreateField(ctx context.Context, draft domain.FieldDraft) (*domain.Field, error) {
	if err := s.validator.ValidateFieldDraft(draft); err != nil {
		return nil, errors.NewValidationError("invalid field", err)
	}
	if _, err := s.repo.GetFarm(ctx, draft.FarmID); err != nil {
		return nil, err
	}

	field := draft.Apply(domain.Field{ID: uuid.NewString(), CreatedAt: s.clock.Now()})
	dbField := s.mapper.Farm.FieldToDatabase(field)
	if err := s.repo.CreateField(ctx, &dbField); err != nil {
		return nil, err
	}
	return &field, nil
}

func (s *fieldServiceImpl) GetField(ctx context.Context, id string) (*domain.Field, error) {
	dbField, err := s.repo.GetField(ctx, id)
	if err != nil {
		return nil, err
	}
	field := s.mapper.Farm.FieldFromDatabase(*dbField)
	return &field, nil
}

// UpdateField applies draft to a stored field; the owning farm never changes
func (s *fieldServiceImpl) UpdateField(ctx context.Context, id string, draft domain.FieldDraft) (*domain.Field, error) {
	current, err := s.GetField(ctx, id)
	if err != nil {
		return nil, err
	}

	draft.FarmID = current.FarmID
	if err := s.validator.ValidateFieldDraft(draft); err != nil {
		return nil, errors.NewValidationError("invalid field", err)
	}

	updated := draft.Apply(*current)
	dbField := s.mapper.Farm.FieldToDatabase(updated)
	if err := s.repo.UpdateField(ctx, &dbField); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListFields lists a farm's fields, or every field when farmID is empty
func (s *fieldServiceImpl) ListFields(ctx context.Context, farmID string) ([]domain.Field, error) {
	dbFields, err := s.repo.ListFields(ctx, farmID)
	if err != nil {
		return nil, err
	}
	return s.mapper.Farm.FieldsFromDatabase(dbFields), nil
}
