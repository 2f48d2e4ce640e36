package model

import (
	"encoding/json"
	"fmt"

	"github.com/goto/siphon/domain"
	"gorm.io/datatypes"
)

// Record is a row of a sink table. The table name is chosen at runtime.
// Content is kept as text so the serialized key order and NUL characters survive.
type Record struct {
	ID            int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Content       datatypes.JSON `gorm:"column:content;type:text"`
	IngestionDate string         `gorm:"column:ingestion_date;type:char(8)"`
	Source        string         `gorm:"column:source;type:varchar(255)"`
}

func (m *Record) FromDomain(r domain.Record, ingestionDate, source string) error {
	content, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("serializing record: %w", err)
	}

	m.Content = datatypes.JSON(content)
	m.IngestionDate = ingestionDate
	m.Source = source
	return nil
}

func (m *Record) ToDomain() (*domain.StoredRecord, error) {
	var content domain.Record
	if err := json.Unmarshal(m.Content, &content); err != nil {
		return nil, fmt.Errorf("parsing content of record %d: %w", m.ID, err)
	}

	return &domain.StoredRecord{
		ID:            m.ID,
		Content:       content,
		IngestionDate: m.IngestionDate,
		Source:        m.Source,
	}, nil
}
