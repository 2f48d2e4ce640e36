package preference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goto/siphon/domain"
	"github.com/goto/siphon/pkg/log"
)

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	GetByField(ctx context.Context, entity, field string) (*domain.FieldPreference, error)
	List(ctx context.Context, entity string) ([]*domain.FieldPreference, error)
	Upsert(ctx context.Context, p *domain.FieldPreference) error
}

type ServiceDeps struct {
	Repository repository
	Logger     log.Logger
}

// Service manages per-entity field include/exclude flags.
// Reads fail open: an unknown field or an unreachable store means the field is included.
type Service struct {
	repo   repository
	logger log.Logger
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		repo:   deps.Repository,
		logger: deps.Logger,
	}
}

func (s *Service) IsFieldSelected(ctx context.Context, entity, field string) bool {
	p, err := s.repo.GetByField(ctx, entity, field)
	if err != nil {
		if !errors.Is(err, domain.ErrFieldPreferenceNotFound) {
			s.logger.Warn(ctx, "failed to read field preference, treating field as selected", "entity", entity, "field", field, "error", err)
		}
		return true
	}
	return p.Selected
}

func (s *Service) SetFieldPreference(ctx context.Context, entity, field string, selected bool) error {
	entity, field = strings.TrimSpace(entity), strings.TrimSpace(field)
	if entity == "" || field == "" {
		return ErrInvalidPreference
	}

	p := &domain.FieldPreference{Entity: entity, Field: field, Selected: selected}
	if err := s.repo.Upsert(ctx, p); err != nil {
		s.logger.Error(ctx, "failed to store field preference", "entity", entity, "field", field, "error", err)
		return fmt.Errorf("storing preference of %s.%s: %w", entity, field, err)
	}
	return nil
}

// GetPreferenceSet returns every stored flag of an entity
func (s *Service) GetPreferenceSet(ctx context.Context, entity string) (domain.FieldPreferenceSet, error) {
	prefs, err := s.List(ctx, entity)
	if err != nil {
		return nil, err
	}

	set := make(domain.FieldPreferenceSet, len(prefs))
	for _, p := range prefs {
		set[p.Field] = p.Selected
	}
	return set, nil
}

func (s *Service) List(ctx context.Context, entity string) ([]*domain.FieldPreference, error) {
	prefs, err := s.repo.List(ctx, entity)
	if err != nil {
		s.logger.Error(ctx, "failed to list field preferences", "entity", entity, "error", err)
		return nil, fmt.Errorf("listing preferences of %s: %w", entity, err)
	}
	return prefs, nil
}
