package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/goto/siphon/domain"
	"github.com/goto/siphon/internal/store/postgres/model"
	"github.com/goto/siphon/pkg/log"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	ingestionDateLayout = "20060102"
	maxSourceLength     = 255
)

var (
	ErrSourceTooLong    = fmt.Errorf("%w: source label exceeds %d characters", domain.ErrPersistence, maxSourceLength)
	ErrInvalidTableName = fmt.Errorf("%w: invalid sink table name", domain.ErrConfiguration)

	tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)
)

type PersistConfig struct {
	TableName string `mapstructure:"table_name" default:"raw_records"`
	// ProgressInterval is the number of records between two progress reports
	ProgressInterval int `mapstructure:"progress_interval" default:"10"`
	// Timeout bounds a whole batch, transaction included
	Timeout time.Duration `mapstructure:"timeout" default:"5m"`
}

type RecordRepositoryOption func(*RecordRepository)

// WithClock overrides the clock that stamps the ingestion date
func WithClock(now func() time.Time) RecordRepositoryOption {
	return func(r *RecordRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// RecordRepository writes record batches to a sink table, one row per record
type RecordRepository struct {
	db               *gorm.DB
	table            string
	progressInterval int
	logger           log.Logger
	now              func() time.Time
}

func NewRecordRepository(db *gorm.DB, cfg PersistConfig, logger log.Logger, opts ...RecordRepositoryOption) (*RecordRepository, error) {
	if !tableNamePattern.MatchString(cfg.TableName) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, cfg.TableName)
	}

	r := &RecordRepository{
		db:               db,
		table:            cfg.TableName,
		progressInterval: cfg.ProgressInterval,
		logger:           logger,
		now:              time.Now,
	}
	if r.progressInterval <= 0 {
		r.progressInterval = 10
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// Persist writes records in a single transaction and returns the number written.
// Any failure, cancellation of ctx included, rolls the whole batch back.
func (r *RecordRepository) Persist(ctx context.Context, records []domain.Record, source string, progress domain.ProgressFunc) (int, error) {
	if utf8.RuneCountInString(source) > maxSourceLength {
		return 0, ErrSourceTooLong
	}
	if progress == nil {
		progress = func(float64) {}
	}
	if len(records) == 0 {
		progress(1)
		return 0, nil
	}

	if err := r.ensureTable(ctx); err != nil {
		r.logger.Error(ctx, "failed to create sink table", "table", r.table, "error", err)
		return 0, fmt.Errorf("%w: creating table %s: %w", domain.ErrPersistence, r.table, err)
	}

	ingestionDate := r.now().Format(ingestionDateLayout)
	total := len(records)
	written := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, rec := range records {
			if err := ctx.Err(); err != nil {
				return err
			}

			m := &model.Record{}
			if err := m.FromDomain(rec, ingestionDate, source); err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			if err := tx.Table(r.table).Create(m).Error; err != nil {
				return fmt.Errorf("inserting record %d: %w", i, err)
			}
			written++

			if written%r.progressInterval == 0 && written < total {
				progress(float64(written) / float64(total))
			}
		}
		return nil
	})
	if err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) {
			r.logger.Error(ctx, "batch rolled back", "table", r.table, "source", source, "pg_code", pgError.Code, "error", err)
		} else {
			r.logger.Error(ctx, "batch rolled back", "table", r.table, "source", source, "error", err)
		}
		return 0, fmt.Errorf("%w: persisting %d records to %s: %w", domain.ErrPersistence, total, r.table, err)
	}

	progress(1)
	r.logger.Info(ctx, "batch persisted", "table", r.table, "source", source, "count", written)
	return written, nil
}

// ListBySource returns the stored rows of a source label in insertion order
func (r *RecordRepository) ListBySource(ctx context.Context, source string) ([]*domain.StoredRecord, error) {
	var models []*model.Record
	if err := r.db.WithContext(ctx).Table(r.table).Where("source = ?", source).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: listing %s: %w", domain.ErrPersistence, r.table, err)
	}

	records := make([]*domain.StoredRecord, 0, len(models))
	for _, m := range models {
		rec, err := m.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrParse, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *RecordRepository) CountBySource(ctx context.Context, source string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table(r.table).Where("source = ?", source).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: counting %s: %w", domain.ErrPersistence, r.table, err)
	}
	return count, nil
}

func (r *RecordRepository) ensureTable(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	content TEXT NOT NULL,
	ingestion_date CHAR(8) NOT NULL,
	source VARCHAR(255) NOT NULL
)`, pq.QuoteIdentifier(r.table))

	return r.db.WithContext(ctx).Exec(stmt).Error
}
