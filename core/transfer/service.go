package transfer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/goto/siphon/domain"
	"github.com/goto/siphon/pkg/log"
)

type Config struct {
	// PersistTimeout bounds the write of one batch
	PersistTimeout time.Duration `mapstructure:"persist_timeout" default:"5m"`
}

//go:generate mockery --name=fetcher --exported --with-expecter
type fetcher interface {
	FetchData(ctx context.Context, apiName, endpointName string, opts domain.FetchOptions) ([]domain.Record, error)
}

//go:generate mockery --name=preferenceService --exported --with-expecter
type preferenceService interface {
	GetPreferenceSet(ctx context.Context, entity string) (domain.FieldPreferenceSet, error)
}

type projector interface {
	ProjectAll(ctx context.Context, entity string, records []domain.Record, prefs domain.FieldPreferenceSet) ([]domain.Record, int)
}

//go:generate mockery --name=recordRepository --exported --with-expecter
type recordRepository interface {
	Persist(ctx context.Context, records []domain.Record, source string, progress domain.ProgressFunc) (int, error)
}

type ServiceDeps struct {
	Fetcher           fetcher
	PreferenceService preferenceService
	Projector         projector
	Repository        recordRepository
	Logger            log.Logger
	Config            Config
}

// Service moves the records of one endpoint into the sink: fetch, project, persist.
// At most one transfer runs per entity at a time.
type Service struct {
	fetcher     fetcher
	preferences preferenceService
	projector   projector
	repo        recordRepository
	logger      log.Logger
	config      Config
	validator   *validator.Validate

	mu         sync.Mutex
	inProgress map[string]bool
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		fetcher:     deps.Fetcher,
		preferences: deps.PreferenceService,
		projector:   deps.Projector,
		repo:        deps.Repository,
		logger:      deps.Logger,
		config:      deps.Config,
		validator:   validator.New(),
		inProgress:  map[string]bool{},
	}
}

func (s *Service) Run(ctx context.Context, req domain.TransferRequest, progress domain.ProgressFunc) (*domain.TransferResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidRequest)
	}

	entity := domain.EntityKey(req.ApiName, req.EndpointName)
	if !s.acquire(entity) {
		return nil, fmt.Errorf("%w: %s", ErrTransferInProgress, entity)
	}
	defer s.release(entity)

	result := &domain.TransferResult{
		ID:     uuid.New().String(),
		Entity: entity,
		Source: req.Source,
	}
	if result.Source == "" {
		result.Source = entity
	}
	ctx = log.WithMetadata(ctx, map[string]interface{}{
		"transfer_id": result.ID,
		"entity":      entity,
	})
	started := time.Now()
	s.logger.Info(ctx, "transfer started")

	records, err := s.fetcher.FetchData(ctx, req.ApiName, req.EndpointName, domain.FetchOptions{
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		MaxRecords: req.MaxRecords,
	})
	if err != nil {
		s.logger.Error(ctx, "transfer failed while fetching", "error", err)
		return nil, err
	}
	result.Fetched = len(records)

	prefs, err := s.preferences.GetPreferenceSet(ctx, entity)
	if err != nil {
		s.logger.Warn(ctx, "failed to load field preferences, keeping every field", "error", err)
		prefs = domain.FieldPreferenceSet{}
	}

	projected, fellBack := s.projector.ProjectAll(ctx, entity, records, prefs)
	result.FailOpenRecords = fellBack

	persistCtx := ctx
	if s.config.PersistTimeout > 0 {
		var cancel context.CancelFunc
		persistCtx, cancel = context.WithTimeout(ctx, s.config.PersistTimeout)
		defer cancel()
	}

	written, err := s.repo.Persist(persistCtx, projected, result.Source, progress)
	if err != nil {
		s.logger.Error(ctx, "transfer failed while persisting", "error", err)
		return nil, err
	}
	result.Written = written
	result.Duration = time.Since(started)

	s.logger.Info(ctx, "transfer finished",
		"fetched", result.Fetched,
		"written", result.Written,
		"fail_open_records", result.FailOpenRecords,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// InProgress reports whether a transfer is running for entity
func (s *Service) InProgress(entity string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inProgress[entity]
}

func (s *Service) acquire(entity string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inProgress[entity] {
		return false
	}
	s.inProgress[entity] = true
	return true
}

func (s *Service) release(entity string) {
	s.mu.Lock()
	delete(s.inProgress, entity)
	s.mu.Unlock()
}
