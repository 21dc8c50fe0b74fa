package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/unicourse/planner-api/internal/catalog"
	"github.com/unicourse/planner-api/internal/dto"
	"github.com/unicourse/planner-api/internal/models"
	"github.com/unicourse/planner-api/internal/repository"
	appErrors "github.com/unicourse/planner-api/pkg/errors"
)

type datasetRepository interface {
	Insert(ctx context.Context, dataset *models.Dataset, rows []catalog.RawRow) error
	GetByID(ctx context.Context, id string) (*models.Dataset, error)
	List(ctx context.Context) ([]models.Dataset, error)
	ListRows(ctx context.Context, datasetID string) ([]catalog.RawRow, error)
	Delete(ctx context.Context, id string) error
}

type catalogMetrics interface {
	SetDatasetsLoaded(count int)
}

// CatalogService ingests timetable exports, keeps their normalized
// catalogs in memory, and optionally persists the raw rows so a restart
// reloads them.
type CatalogService struct {
	store    *repository.CatalogStore
	datasets datasetRepository
	metrics  catalogMetrics
	logger   *zap.Logger
	persist  bool
}

// NewCatalogService constructs the service. A nil dataset repository
// disables persistence regardless of the flag.
func NewCatalogService(store *repository.CatalogStore, datasets datasetRepository, persist bool, metrics catalogMetrics, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if datasets == nil {
		persist = false
	}
	return &CatalogService{
		store:    store,
		datasets: datasets,
		metrics:  metrics,
		logger:   logger,
		persist:  persist,
	}
}

// Upload decodes, normalizes, and registers one timetable export. The
// decoder is chosen by file extension; csv is the default.
func (s *CatalogService) Upload(ctx context.Context, filename string, r io.Reader) (*dto.UploadCatalogResponse, error) {
	rows, err := decodeUpload(filename, r)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"timetable file could not be parsed")
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "timetable file has no data rows")
	}

	result := catalog.Normalize(rows)
	if len(result.Courses) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			"no undergraduate courses survived filtering; check the export")
	}

	dataset := models.Dataset{
		ID:          uuid.NewString(),
		Hash:        catalog.Fingerprint(rows),
		Filename:    filepath.Base(filename),
		RowCount:    len(rows),
		CourseCount: len(result.Courses),
		Terms:       pq.StringArray(result.Terms),
		UploadedAt:  time.Now().UTC(),
	}

	if s.persist {
		if err := s.datasets.Insert(ctx, &dataset, rows); err != nil {
			return nil, fmt.Errorf("persist dataset: %w", err)
		}
	}

	s.store.Save(repository.CatalogEntry{Dataset: dataset, Result: result})
	if s.metrics != nil {
		s.metrics.SetDatasetsLoaded(len(s.store.List()))
	}
	s.logger.Info("dataset ingested",
		zap.String("datasetId", dataset.ID),
		zap.String("hash", dataset.Hash),
		zap.Int("rows", dataset.RowCount),
		zap.Int("courses", dataset.CourseCount),
	)

	return &dto.UploadCatalogResponse{
		DatasetID:   dataset.ID,
		Hash:        dataset.Hash,
		Filename:    dataset.Filename,
		RowCount:    dataset.RowCount,
		CourseCount: dataset.CourseCount,
		Terms:       result.Terms,
	}, nil
}

// Entry returns the loaded catalog for a dataset, reloading it from the
// database when persistence is enabled and the in-memory copy is gone.
func (s *CatalogService) Entry(ctx context.Context, datasetID string) (repository.CatalogEntry, error) {
	if entry, ok := s.store.Get(datasetID); ok {
		return entry, nil
	}
	if !s.persist {
		return repository.CatalogEntry{}, appErrors.Clone(appErrors.ErrNotFound,
			fmt.Sprintf("dataset %s is not loaded", datasetID))
	}

	dataset, err := s.datasets.GetByID(ctx, datasetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.CatalogEntry{}, appErrors.Clone(appErrors.ErrNotFound,
				fmt.Sprintf("dataset %s does not exist", datasetID))
		}
		return repository.CatalogEntry{}, fmt.Errorf("load dataset %s: %w", datasetID, err)
	}
	rows, err := s.datasets.ListRows(ctx, datasetID)
	if err != nil {
		return repository.CatalogEntry{}, fmt.Errorf("load dataset rows %s: %w", datasetID, err)
	}

	entry := repository.CatalogEntry{Dataset: *dataset, Result: catalog.Normalize(rows)}
	s.store.Save(entry)
	s.logger.Info("dataset reloaded from persistence", zap.String("datasetId", datasetID))
	return entry, nil
}

// Get returns the dataset header.
func (s *CatalogService) Get(ctx context.Context, datasetID string) (*dto.DatasetSummary, error) {
	entry, err := s.Entry(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	summary := datasetSummary(entry.Dataset)
	return &summary, nil
}

// List returns every known dataset header, newest first. With persistence
// the database is authoritative; otherwise the in-memory store is.
func (s *CatalogService) List(ctx context.Context) ([]dto.DatasetSummary, error) {
	var datasets []models.Dataset
	if s.persist {
		var err error
		datasets, err = s.datasets.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list datasets: %w", err)
		}
	} else {
		datasets = s.store.List()
	}

	summaries := make([]dto.DatasetSummary, 0, len(datasets))
	for _, dataset := range datasets {
		summaries = append(summaries, datasetSummary(dataset))
	}
	return summaries, nil
}

// Courses lists the selectable courses of a dataset, filtered by the
// query.
func (s *CatalogService) Courses(ctx context.Context, datasetID string, query dto.CourseQuery) ([]dto.CourseItem, error) {
	entry, err := s.Entry(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CourseItem, 0, len(entry.Result.Courses))
	for _, course := range entry.Result.Courses {
		if !matchesCourseQuery(course, query) {
			continue
		}
		items = append(items, dto.CourseItem{
			Code:          course.Code,
			Title:         course.Title,
			Department:    course.Department,
			Terms:         course.Terms,
			Sections:      course.Sections,
			SectionCount:  course.SectionCount,
			CommonCore:    course.CommonCore,
			WeeklySummary: course.WeeklySummary,
		})
	}
	return items, nil
}

// Delete removes a dataset from memory and, when enabled, from
// persistence.
func (s *CatalogService) Delete(ctx context.Context, datasetID string) error {
	if _, err := s.Entry(ctx, datasetID); err != nil {
		return err
	}
	if s.persist {
		if err := s.datasets.Delete(ctx, datasetID); err != nil {
			return fmt.Errorf("delete dataset %s: %w", datasetID, err)
		}
	}
	s.store.Delete(datasetID)
	if s.metrics != nil {
		s.metrics.SetDatasetsLoaded(len(s.store.List()))
	}
	s.logger.Info("dataset deleted", zap.String("datasetId", datasetID))
	return nil
}

func decodeUpload(filename string, r io.Reader) ([]catalog.RawRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return catalog.DecodeXLSX(r)
	default:
		return catalog.DecodeCSV(r)
	}
}

func datasetSummary(dataset models.Dataset) dto.DatasetSummary {
	return dto.DatasetSummary{
		DatasetID:   dataset.ID,
		Hash:        dataset.Hash,
		Filename:    dataset.Filename,
		RowCount:    dataset.RowCount,
		CourseCount: dataset.CourseCount,
		Terms:       []string(dataset.Terms),
		UploadedAt:  dataset.UploadedAt.UTC().Format(time.RFC3339),
	}
}

func matchesCourseQuery(course models.Course, query dto.CourseQuery) bool {
	if query.Term != "" && !course.OfferedIn(query.Term) {
		return false
	}
	if query.Department != "" && !strings.EqualFold(course.Department, query.Department) {
		return false
	}
	if query.CommonCore != nil && course.CommonCore != *query.CommonCore {
		return false
	}
	if query.Search != "" {
		needle := strings.ToLower(query.Search)
		if !strings.Contains(strings.ToLower(course.Code), needle) &&
			!strings.Contains(strings.ToLower(course.Title), needle) {
			return false
		}
	}
	return true
}
