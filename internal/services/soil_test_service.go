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

// soilTestServiceImpl implements the SoilTestService interface
type soilTestServiceImpl struct {
	repo        sqlite.Repository
	clock       clock.Clock
	interpreter *SoilInterpreter
	mapper      *domain.Mapper
	validator   *validation.Validator
	logger      zerolog.Logger
}

// NewSoilTestService creates a new SoilTestService instance
func NewSoilTestService(repo sqlite.Repository, clk clock.Clock, interpreter *SoilInterpreter, logger zerolog.Logger) SoilTestService {
	return &soilTestServiceImpl{
		repo:        repo,
		clock:       clk,
		interpreter: interpreter,
		mapper:      domain.NewMapper(),
		validator:   validation.NewValidator(),
		logger:      logger.With().Str("component", "soil_tests").Logger(),
	}
}

// Record stores a new soil test for an existing field
func (s *soilTestServiceImpl) Record(ctx context.Context, draft domain.SoilTestDraft) (*domain.SoilTest, error) {
	now := s.clock.Now()
	if err := s.validator.ValidateSoilTestDraft(draft, now); err != nil {
		return nil, errors.NewValidationError("invalid soil test", err)
	}
	if _, err := s.repo.GetField(ctx, draft.FieldID); err != nil {
		return nil, err
	}

	test := draft.Apply(domain.SoilTest{ID: uuid.NewString(), CreatedAt: now})
	dbTest := s.mapper.SoilTest.ToDatabase(test)
	if err := s.repo.CreateSoilTest(ctx, &dbTest); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("soil_test_id", test.ID).
		Str("field_id", test.FieldID).
		Float64("ph", test.PH).
		Msg("soil test recorded")
	return &test, nil
}

func (s *soilTestServiceImpl) Get(ctx context.Context, id string) (*domain.SoilTest, error) {
	dbTest, err := s.repo.GetSoilTest(ctx, id)
	if err != nil {
		return nil, err
	}
	test := s.mapper.SoilTest.FromDatabase(*dbTest)
	return &test, nil
}

// Update replaces a test's values. The owning field never changes.
func (s *soilTestServiceImpl) Update(ctx context.Context, id string, draft domain.SoilTestDraft) (*domain.SoilTest, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	draft.FieldID = current.FieldID
	if err := s.validator.ValidateSoilTestDraft(draft, s.clock.Now()); err != nil {
		return nil, errors.NewValidationError("invalid soil test", err)
	}

	updated := draft.Apply(*current)
	dbTest := s.mapper.SoilTest.ToDatabase(updated)
	if err := s.repo.UpdateSoilTest(ctx, &dbTest); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListForField returns a field's tests, newest first
func (s *soilTestServiceImpl) ListForField(ctx context.Context, fieldID string) ([]domain.SoilTest, error) {
	dbTests, err := s.repo.ListSoilTests(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	return s.mapper.SoilTest.FromDatabaseSlice(dbTests), nil
}

// Report interprets a stored test as of now
func (s *soilTestServiceImpl) Report(ctx context.Context, id string) (*domain.SoilReport, error) {
	test, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	report := s.interpreter.Interpret(*test, s.clock.Now())
	return &report, nil
}

// LatestReport interprets the newest test of a field
func (s *soilTestServiceImpl) LatestReport(ctx context.Context, fieldID string) (*domain.SoilReport, error) {
	tests, err := s.ListForField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if len(tests) == 0 {
		return nil, errors.NewNotFoundError("soil test for field", fieldID)
	}
	report := s.interpreter.Interpret(tests[0], s.clock.Now())
	return &report, nil
}
