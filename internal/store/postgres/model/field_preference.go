package model

import (
	"time"

	"github.com/goto/siphon/domain"
)

type FieldPreference struct {
	Entity    string    `gorm:"primaryKey;type:varchar(255)"`
	Field     string    `gorm:"primaryKey;type:varchar(255)"`
	Selected  bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (FieldPreference) TableName() string {
	return "field_preferences"
}

func (m *FieldPreference) FromDomain(p *domain.FieldPreference) {
	m.Entity = p.Entity
	m.Field = p.Field
	m.Selected = p.Selected
}

func (m *FieldPreference) ToDomain() *domain.FieldPreference {
	return &domain.FieldPreference{
		Entity:   m.Entity,
		Field:    m.Field,
		Selected: m.Selected,
	}
}
