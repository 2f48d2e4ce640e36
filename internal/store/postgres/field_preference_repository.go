package postgres

import (
	"context"
	"errors"

	"github.com/goto/siphon/domain"
	"github.com/goto/siphon/internal/store/postgres/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FieldPreferenceRepository struct {
	db *gorm.DB
}

func NewFieldPreferenceRepository(db *gorm.DB) *FieldPreferenceRepository {
	return &FieldPreferenceRepository{db}
}

func (r *FieldPreferenceRepository) GetByField(ctx context.Context, entity, field string) (*domain.FieldPreference, error) {
	var m model.FieldPreference
	if err := r.db.WithContext(ctx).Where("entity = ? AND field = ?", entity, field).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFieldPreferenceNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

func (r *FieldPreferenceRepository) List(ctx context.Context, entity string) ([]*domain.FieldPreference, error) {
	var models []*model.FieldPreference
	if err := r.db.WithContext(ctx).Where("entity = ?", entity).Order("field").Find(&models).Error; err != nil {
		return nil, err
	}

	prefs := make([]*domain.FieldPreference, 0, len(models))
	for _, m := range models {
		prefs = append(prefs, m.ToDomain())
	}
	return prefs, nil
}

func (r *FieldPreferenceRepository) Upsert(ctx context.Context, p *domain.FieldPreference) error {
	m := &model.FieldPreference{}
	m.FromDomain(p)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entity"}, {Name: "field"}},
			DoUpdates: clause.AssignmentColumns([]string{"selected", "updated_at"}),
		}).Create(m).Error
	})
}
