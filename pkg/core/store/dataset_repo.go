package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"financeagent/pkg/models"
)

// DatasetRepo handles storage of uploaded datasets and their normalized
// records.
//
// Schema assumption (created by EnsureSchema):
//
//	CREATE TABLE IF NOT EXISTS datasets (
//	  id TEXT PRIMARY KEY,
//	  name TEXT,
//	  filename TEXT,
//	  row_count INT,
//	  columns JSONB,
//	  uploaded_at TIMESTAMPTZ
//	);
//
//	CREATE TABLE IF NOT EXISTS financial_records (
//	  id BIGSERIAL PRIMARY KEY,
//	  dataset_id TEXT REFERENCES datasets(id) ON DELETE CASCADE,
//	  period TEXT,
//	  category TEXT,
//	  line_item TEXT,
//	  amount DOUBLE PRECISION
//	);
type DatasetRepo struct{}

// NewDatasetRepo creates a new repository instance.
func NewDatasetRepo() *DatasetRepo {
	return &DatasetRepo{}
}

// Save persists a dataset and its records in one transaction.
func (r *DatasetRepo) Save(ctx context.Context, dataset models.Dataset, records []models.FinancialRecord) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	columnsJSON, err := json.Marshal(dataset.Columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO datasets (id, name, filename, row_count, columns, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		dataset.ID, dataset.Name, dataset.Filename, dataset.RowCount, columnsJSON, dataset.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}

	for _, rec := range records {
		_, err = tx.Exec(ctx, `
			INSERT INTO financial_records (dataset_id, period, category, line_item, amount)
			VALUES ($1, $2, $3, $4, $5)`,
			dataset.ID, rec.Period, rec.Category, rec.LineItem, rec.Amount)
		if err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// List returns all datasets, newest first.
func (r *DatasetRepo) List(ctx context.Context) ([]models.Dataset, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `
		SELECT id, name, filename, row_count, columns, uploaded_at
		FROM datasets ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []models.Dataset
	for rows.Next() {
		var d models.Dataset
		var columnsJSON []byte
		if err := rows.Scan(&d.ID, &d.Name, &d.Filename, &d.RowCount, &columnsJSON, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		if err := json.Unmarshal(columnsJSON, &d.Columns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}

// Get loads one dataset's metadata.
func (r *DatasetRepo) Get(ctx context.Context, id string) (models.Dataset, error) {
	pool := GetPool()
	if pool == nil {
		return models.Dataset{}, fmt.Errorf("database pool not initialized")
	}

	var d models.Dataset
	var columnsJSON []byte
	err := pool.QueryRow(ctx, `
		SELECT id, name, filename, row_count, columns, uploaded_at
		FROM datasets WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Filename, &d.RowCount, &columnsJSON, &d.UploadedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return models.Dataset{}, fmt.Errorf("dataset not found: %s", id)
		}
		return models.Dataset{}, fmt.Errorf("failed to load dataset: %w", err)
	}
	if err := json.Unmarshal(columnsJSON, &d.Columns); err != nil {
		return models.Dataset{}, fmt.Errorf("failed to unmarshal columns: %w", err)
	}
	return d, nil
}

// LoadRecords returns all records of a dataset in insertion order.
func (r *DatasetRepo) LoadRecords(ctx context.Context, datasetID string) ([]models.FinancialRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `
		SELECT period, category, line_item, amount
		FROM financial_records WHERE dataset_id = $1 ORDER BY id`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	defer rows.Close()

	var records []models.FinancialRecord
	for rows.Next() {
		var rec models.FinancialRecord
		if err := rows.Scan(&rec.Period, &rec.Category, &rec.LineItem, &rec.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
