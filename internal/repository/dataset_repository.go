package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/unicourse/planner-api/internal/catalog"
	"github.com/unicourse/planner-api/internal/models"
)

// DatasetRepository persists uploaded timetable datasets and their raw
// rows so a restart can reload every catalog without a re-upload.
type DatasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository constructs the repository.
func NewDatasetRepository(db *sqlx.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// Insert stores the dataset header and all raw rows in one transaction.
func (r *DatasetRepository) Insert(ctx context.Context, dataset *models.Dataset, rows []catalog.RawRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin dataset tx: %w", err)
	}

	const headerQuery = `INSERT INTO datasets (id, hash, filename, row_count, course_count, terms, uploaded_at)
VALUES (:id, :hash, :filename, :row_count, :course_count, :terms, :uploaded_at)`
	if _, err := tx.NamedExecContext(ctx, headerQuery, dataset); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert dataset: %w", err)
	}

	const rowQuery = `INSERT INTO dataset_rows (dataset_id, position, payload) VALUES ($1, $2, $3)`
	for i := range rows {
		payload, err := json.Marshal(rows[i])
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("marshal dataset row %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx, rowQuery, dataset.ID, i, payload); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert dataset row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit dataset tx: %w", err)
	}
	return nil
}

// GetByID fetches a dataset header.
func (r *DatasetRepository) GetByID(ctx context.Context, id string) (*models.Dataset, error) {
	const query = `SELECT id, hash, filename, row_count, course_count, terms, uploaded_at
FROM datasets WHERE id = $1`
	var dataset models.Dataset
	if err := r.db.GetContext(ctx, &dataset, query, id); err != nil {
		return nil, err
	}
	return &dataset, nil
}

// GetByHash fetches a dataset header by content hash.
func (r *DatasetRepository) GetByHash(ctx context.Context, hash string) (*models.Dataset, error) {
	const query = `SELECT id, hash, filename, row_count, course_count, terms, uploaded_at
FROM datasets WHERE hash = $1 ORDER BY uploaded_at DESC LIMIT 1`
	var dataset models.Dataset
	if err := r.db.GetContext(ctx, &dataset, query, hash); err != nil {
		return nil, err
	}
	return &dataset, nil
}

// List returns every dataset header, newest first.
func (r *DatasetRepository) List(ctx context.Context) ([]models.Dataset, error) {
	const query = `SELECT id, hash, filename, row_count, course_count, terms, uploaded_at
FROM datasets ORDER BY uploaded_at DESC`
	var datasets []models.Dataset
	if err := r.db.SelectContext(ctx, &datasets, query); err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return datasets, nil
}

// ListRows reloads the raw rows of a dataset in upload order.
func (r *DatasetRepository) ListRows(ctx context.Context, datasetID string) ([]catalog.RawRow, error) {
	const query = `SELECT payload FROM dataset_rows WHERE dataset_id = $1 ORDER BY position ASC`
	var payloads [][]byte
	if err := r.db.SelectContext(ctx, &payloads, query, datasetID); err != nil {
		return nil, fmt.Errorf("list dataset rows: %w", err)
	}

	rows := make([]catalog.RawRow, 0, len(payloads))
	for i, payload := range payloads {
		var row catalog.RawRow
		if err := json.Unmarshal(payload, &row); err != nil {
			return nil, fmt.Errorf("unmarshal dataset row %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Delete removes a dataset and, via cascade, its rows.
func (r *DatasetRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM datasets WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	return nil
}
