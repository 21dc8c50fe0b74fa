package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unicourse/planner-api/internal/catalog"
	"github.com/unicourse/planner-api/internal/models"
)

func newDatasetRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func sampleDataset() *models.Dataset {
	return &models.Dataset{
		ID:          "a39bd1ef-6f1a-4e1d-9c30-0a5d2a6d7e01",
		Hash:        "deadbeef",
		Filename:    "timetable.csv",
		RowCount:    2,
		CourseCount: 1,
		Terms:       pq.StringArray{"2025-26 Semester 1"},
		UploadedAt:  time.Now().UTC(),
	}
}

func TestDatasetRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newDatasetRepoMock(t)
	defer cleanup()
	repo := NewDatasetRepository(db)

	rows := []catalog.RawRow{
		{CourseCode: "COMP1001", Section: "1A"},
		{CourseCode: "COMP1001", Section: "1B"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO datasets").
		WithArgs("a39bd1ef-6f1a-4e1d-9c30-0a5d2a6d7e01", "deadbeef", "timetable.csv",
			2, 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO dataset_rows").
		WithArgs("a39bd1ef-6f1a-4e1d-9c30-0a5d2a6d7e01", 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO dataset_rows").
		WithArgs("a39bd1ef-6f1a-4e1d-9c30-0a5d2a6d7e01", 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Insert(context.Background(), sampleDataset(), rows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatasetRepositoryInsertRollsBackOnRowFailure(t *testing.T) {
	db, mock, cleanup := newDatasetRepoMock(t)
	defer cleanup()
	repo := NewDatasetRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO datasets").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO dataset_rows").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Insert(context.Background(), sampleDataset(), []catalog.RawRow{{CourseCode: "COMP1001"}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatasetRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newDatasetRepoMock(t)
	defer cleanup()
	repo := NewDatasetRepository(db)

	columns := []string{"id", "hash", "filename", "row_count", "course_count", "terms", "uploaded_at"}
	mock.ExpectQuery("SELECT id, hash, filename").
		WithArgs("ds-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("ds-1", "deadbeef", "timetable.csv", 2, 1, "{2025-26 Semester 1}", time.Now()))

	dataset, err := repo.GetByID(context.Background(), "ds-1")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", dataset.Hash)
	assert.Equal(t, []string{"2025-26 Semester 1"}, []string(dataset.Terms))
}

func TestDatasetRepositoryListRows(t *testing.T) {
	db, mock, cleanup := newDatasetRepoMock(t)
	defer cleanup()
	repo := NewDatasetRepository(db)

	payload, err := json.Marshal(catalog.RawRow{CourseCode: "COMP1001", Section: "1A", StartTime: "09:30"})
	require.NoError(t, err)
	mock.ExpectQuery("SELECT payload FROM dataset_rows").
		WithArgs("ds-1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	rows, err := repo.ListRows(context.Background(), "ds-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "COMP1001", rows[0].CourseCode)
	assert.Equal(t, "09:30", rows[0].StartTime)
}

func TestDatasetRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newDatasetRepoMock(t)
	defer cleanup()
	repo := NewDatasetRepository(db)

	mock.ExpectExec("DELETE FROM datasets").
		WithArgs("ds-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "ds-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
