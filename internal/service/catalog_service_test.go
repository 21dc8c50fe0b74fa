package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unicourse/planner-api/internal/catalog"
	"github.com/unicourse/planner-api/internal/dto"
	"github.com/unicourse/planner-api/internal/models"
	"github.com/unicourse/planner-api/internal/repository"
	appErrors "github.com/unicourse/planner-api/pkg/errors"
)

const sampleCSV = `TERM,ACAD_CAREER,COURSE CODE,CLASS SECTION,CLASS NUMBER,START DATE,END DATE,MON,TUE,WED,THU,FRI,SAT,SUN,VENUE,START TIME,END TIME,COURSE TITLE,OFFER DEPT,INSTRUCTOR
2025-26 Semester 1,UG,COMP1001,1A,1001,01/09/2025,30/11/2025,Y,,,,,,,CB-A,09:30,10:20,Introduction to Programming,Computer Science,"Chan, Tai Man"
2025-26 Semester 1,UG,CCHU9001,1A,1002,01/09/2025,30/11/2025,,Y,,,,,,KK-201,10:30,11:20,Food and Values,Common Core,"Lee, Siu Ming"
2025-26 Semester 2,UG,COMP1001,2A,1003,19/01/2026,30/04/2026,,,Y,,,,,CB-A,09:30,10:20,Introduction to Programming,Computer Science,"Chan, Tai Man"
`

type datasetRepoStub struct {
	inserted  *models.Dataset
	rows      []catalog.RawRow
	missing   bool
	deletedID string
}

func (s *datasetRepoStub) Insert(ctx context.Context, dataset *models.Dataset, rows []catalog.RawRow) error {
	s.inserted = dataset
	s.rows = rows
	return nil
}

func (s *datasetRepoStub) GetByID(ctx context.Context, id string) (*models.Dataset, error) {
	if s.missing || s.inserted == nil {
		return nil, sql.ErrNoRows
	}
	return s.inserted, nil
}

func (s *datasetRepoStub) List(ctx context.Context) ([]models.Dataset, error) {
	if s.inserted == nil {
		return nil, nil
	}
	return []models.Dataset{*s.inserted}, nil
}

func (s *datasetRepoStub) ListRows(ctx context.Context, datasetID string) ([]catalog.RawRow, error) {
	return s.rows, nil
}

func (s *datasetRepoStub) Delete(ctx context.Context, id string) error {
	s.deletedID = id
	return nil
}

func newCatalogService(persist bool, repo datasetRepository) *CatalogService {
	return NewCatalogService(repository.NewCatalogStore(0), repo, persist, nil, zap.NewNop())
}

func TestCatalogServiceUpload(t *testing.T) {
	svc := newCatalogService(false, nil)

	resp, err := svc.Upload(context.Background(), "timetable.csv", strings.NewReader(sampleCSV))

	require.NoError(t, err)
	assert.NotEmpty(t, resp.DatasetID)
	assert.NotEmpty(t, resp.Hash)
	assert.Equal(t, "timetable.csv", resp.Filename)
	assert.Equal(t, 3, resp.RowCount)
	assert.Equal(t, 2, resp.CourseCount)
	assert.Equal(t, []string{"2025-26 Semester 1", "2025-26 Semester 2"}, resp.Terms)
}

func TestCatalogServiceUploadRejectsEmpty(t *testing.T) {
	svc := newCatalogService(false, nil)

	header := strings.Split(sampleCSV, "\n")[0]
	_, err := svc.Upload(context.Background(), "timetable.csv", strings.NewReader(header+"\n"))

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceUploadPersists(t *testing.T) {
	repo := &datasetRepoStub{}
	svc := newCatalogService(true, repo)

	resp, err := svc.Upload(context.Background(), "timetable.csv", strings.NewReader(sampleCSV))

	require.NoError(t, err)
	require.NotNil(t, repo.inserted)
	assert.Equal(t, resp.DatasetID, repo.inserted.ID)
	assert.Len(t, repo.rows, 3)
}

func TestCatalogServiceEntryReloadsFromPersistence(t *testing.T) {
	repo := &datasetRepoStub{}
	svc := newCatalogService(true, repo)
	resp, err := svc.Upload(context.Background(), "timetable.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	// Simulate a restart by wiping the in-memory store.
	svc.store.Delete(resp.DatasetID)

	entry, err := svc.Entry(context.Background(), resp.DatasetID)
	require.NoError(t, err)
	assert.Equal(t, resp.DatasetID, entry.Dataset.ID)
	assert.Len(t, entry.Result.Courses, 2)
}

func TestCatalogServiceEntryNotFound(t *testing.T) {
	svc := newCatalogService(false, nil)

	_, err := svc.Entry(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceCoursesFilters(t *testing.T) {
	svc := newCatalogService(false, nil)
	resp, err := svc.Upload(context.Background(), "timetable.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	all, err := svc.Courses(context.Background(), resp.DatasetID, dto.CourseQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	commonCore := true
	cc, err := svc.Courses(context.Background(), resp.DatasetID, dto.CourseQuery{CommonCore: &commonCore})
	require.NoError(t, err)
	require.Len(t, cc, 1)
	assert.Equal(t, "CCHU9001", cc[0].Code)

	term2, err := svc.Courses(context.Background(), resp.DatasetID, dto.CourseQuery{Term: "2025-26 Semester 2"})
	require.NoError(t, err)
	require.Len(t, term2, 1)
	assert.Equal(t, "COMP1001", term2[0].Code)

	search, err := svc.Courses(context.Background(), resp.DatasetID, dto.CourseQuery{Search: "food"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "CCHU9001", search[0].Code)
}

func TestCatalogServiceDelete(t *testing.T) {
	repo := &datasetRepoStub{}
	svc := newCatalogService(true, repo)
	resp, err := svc.Upload(context.Background(), "timetable.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), resp.DatasetID))
	assert.Equal(t, resp.DatasetID, repo.deletedID)

	repo.missing = true
	_, err = svc.Entry(context.Background(), resp.DatasetID)
	assert.Error(t, err)
}
