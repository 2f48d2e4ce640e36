package postgres_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goto/siphon/domain"
	"github.com/goto/siphon/internal/store/postgres"
	"github.com/goto/siphon/pkg/log"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
)

var (
	createTableQuery = regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "raw_records"`)
	insertQuery      = regexp.QuoteMeta(`INSERT INTO "raw_records" ("content","ingestion_date","source") VALUES ($1,$2,$3) RETURNING "id"`)
)

type capturingArg struct {
	value *string
}

func (a capturingArg) Match(v driver.Value) bool {
	switch val := v.(type) {
	case string:
		*a.value = val
	case []byte:
		*a.value = string(val)
	default:
		return false
	}
	return true
}

type RecordRepositoryTestSuite struct {
	suite.Suite
	mock       sqlmock.Sqlmock
	repository *postgres.RecordRepository
}

func TestRecordRepository(t *testing.T) {
	suite.Run(t, new(RecordRepositoryTestSuite))
}

func (s *RecordRepositoryTestSuite) SetupTest() {
	db, mock := newMockDB(s.T())
	s.mock = mock

	clock := func() time.Time { return time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC) }
	repo, err := postgres.NewRecordRepository(db, postgres.PersistConfig{TableName: "raw_records", ProgressInterval: 10}, log.NewNoop(), postgres.WithClock(clock))
	s.Require().NoError(err)
	s.repository = repo
}

func (s *RecordRepositoryTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func sampleRecords(n int) []domain.Record {
	records := make([]domain.Record, 0, n)
	for i := 0; i < n; i++ {
		r := domain.NewRecord()
		r.Set("id", int64(i+1))
		r.Set("name", "item")
		records = append(records, r)
	}
	return records
}

func (s *RecordRepositoryTestSuite) expectInserts(n int) {
	for i := 0; i < n; i++ {
		s.mock.ExpectQuery(insertQuery).
			WithArgs(sqlmock.AnyArg(), "20240115", "shop/orders").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(i + 1)))
	}
}

func (s *RecordRepositoryTestSuite) TestPersist() {
	s.Run("should write every record in one transaction and report progress", func() {
		s.SetupTest()
		s.mock.ExpectExec(createTableQuery).WillReturnResult(sqlmock.NewResult(0, 0))
		s.mock.ExpectBegin()
		s.expectInserts(25)
		s.mock.ExpectCommit()

		var fractions []float64
		written, err := s.repository.Persist(context.Background(), sampleRecords(25), "shop/orders", func(f float64) {
			fractions = append(fractions, f)
		})

		s.NoError(err)
		s.Equal(25, written)
		s.Equal([]float64{0.4, 0.8, 1}, fractions)
		s.NoError(s.mock.ExpectationsWereMet())
	})

	s.Run("should roll back the whole batch when an insert fails", func() {
		s.SetupTest()
		s.mock.ExpectExec(createTableQuery).WillReturnResult(sqlmock.NewResult(0, 0))
		s.mock.ExpectBegin()
		s.expectInserts(50)
		s.mock.ExpectQuery(insertQuery).WillReturnError(&pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type json"})
		s.mock.ExpectRollback()

		var fractions []float64
		written, err := s.repository.Persist(context.Background(), sampleRecords(100), "shop/orders", func(f float64) {
			fractions = append(fractions, f)
		})

		s.Zero(written)
		s.ErrorIs(err, domain.ErrPersistence)
		s.ErrorContains(err, "inserting record 50")
		var pgError *pgconn.PgError
		s.True(errors.As(err, &pgError))
		s.NotContains(fractions, 1.0)
		s.NoError(s.mock.ExpectationsWereMet())
	})

	s.Run("should roll back the whole batch when a record cannot be serialized", func() {
		s.SetupTest()
		records := sampleRecords(100)
		records[50].Set("channel", make(chan int))

		s.mock.ExpectExec(createTableQuery).WillReturnResult(sqlmock.NewResult(0, 0))
		s.mock.ExpectBegin()
		s.expectInserts(50)
		s.mock.ExpectRollback()

		written, err := s.repository.Persist(context.Background(), records, "shop/orders", nil)

		s.Zero(written)
		s.ErrorIs(err, domain.ErrPersistence)
		s.ErrorContains(err, "record 50")
		s.NoError(s.mock.ExpectationsWereMet())
	})

	s.Run("should roll back when the context is cancelled between records", func() {
		s.SetupTest()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s.mock.ExpectExec(createTableQuery).WillReturnResult(sqlmock.NewResult(0, 0))
		s.mock.ExpectBegin()
		s.expectInserts(10)
		s.mock.ExpectRollback()

		written, err := s.repository.Persist(ctx, sampleRecords(20), "shop/orders", func(float64) { cancel() })

		s.Zero(written)
		s.ErrorIs(err, domain.ErrPersistence)
		s.ErrorIs(err, context.Canceled)
	})

	s.Run("should reject a source label longer than 255 characters", func() {
		s.SetupTest()

		_, err := s.repository.Persist(context.Background(), sampleRecords(1), strings.Repeat("s", 256), nil)

		s.ErrorIs(err, postgres.ErrSourceTooLong)
		s.ErrorIs(err, domain.ErrPersistence)
	})

	s.Run("should count the source label in characters rather than bytes", func() {
		s.SetupTest()
		source := strings.Repeat("é", 200)
		s.mock.ExpectExec(createTableQuery).WillReturnResult(sqlmock.NewResult(0, 0))
		s.mock.ExpectBegin()
		s.mock.ExpectQuery(insertQuery).
			WithArgs(sqlmock.AnyArg(), "20240115", source).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
		s.mock.ExpectCommit()

		written, err := s.repository.Persist(context.Background(), sampleRecords(1), source, nil)

		s.NoError(err)
		s.Equal(1, written)
		s.NoError(s.mock.ExpectationsWereMet())
	})

	s.Run("should not touch the database for an empty batch", func() {
		s.SetupTest()

		var fractions []float64
		written, err := s.repository.Persist(context.Background(), nil, "shop/orders", func(f float64) {
			fractions = append(fractions, f)
		})

		s.NoError(err)
		s.Zero(written)
		s.Equal([]float64{1}, fractions)
	})

	s.Run("should fail when the table cannot be created", func() {
		s.SetupTest()
		s.mock.ExpectExec(createTableQuery).WillReturnError(errors.New("permission denied"))

		_, err := s.repository.Persist(context.Background(), sampleRecords(1), "shop/orders", nil)

		s.ErrorIs(err, domain.ErrPersistence)
		s.ErrorContains(err, "permission denied")
	})
}

func (s *RecordRepositoryTestSuite) TestPersistAndReadBack() {
	original := domain.NewRecord()
	original.Set("zeta", int64(42))
	original.Set("alpha", 2.5)
	original.Set("name", "Contoso")
	original.Set("active", true)
	original.Set("deleted_at", nil)
	original.Set("address", map[string]interface{}{"city": "Oslo", "zip": int64(150)})
	original.Set("tags", []interface{}{"a", int64(3)})

	var stored string
	s.mock.ExpectExec(createTableQuery).WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(insertQuery).
		WithArgs(capturingArg{value: &stored}, "20240115", "shop/orders").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	s.mock.ExpectCommit()

	written, err := s.repository.Persist(context.Background(), []domain.Record{original}, "shop/orders", nil)
	s.Require().NoError(err)
	s.Require().Equal(1, written)
	s.Require().NotEmpty(stored)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "raw_records" WHERE source = $1 ORDER BY id`)).
		WithArgs("shop/orders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "ingestion_date", "source"}).
			AddRow(int64(7), stored, "20240115", "shop/orders"))

	records, err := s.repository.ListBySource(context.Background(), "shop/orders")
	s.Require().NoError(err)
	s.Require().Len(records, 1)

	s.Equal(int64(7), records[0].ID)
	s.Equal("20240115", records[0].IngestionDate)
	s.Equal("shop/orders", records[0].Source)
	s.True(original.Equal(records[0].Content), "round-tripped record differs: %v", records[0].Content.Map())
	s.Equal(original.Keys(), records[0].Content.Keys())
}

func (s *RecordRepositoryTestSuite) TestCountBySource() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "raw_records" WHERE source = $1`)).
		WithArgs("shop/orders").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := s.repository.CountBySource(context.Background(), "shop/orders")

	s.NoError(err)
	s.Equal(int64(3), count)
}

func TestNewRecordRepository_InvalidTableName(t *testing.T) {
	db, _ := newMockDB(t)
	for _, name := range []string{"", "raw records", "public.raw", "1raw", `raw";drop`} {
		_, err := postgres.NewRecordRepository(db, postgres.PersistConfig{TableName: name}, log.NewNoop())
		if !errors.Is(err, postgres.ErrInvalidTableName) {
			t.Errorf("expected ErrInvalidTableName for %q, got %v", name, err)
		}
	}
}
