package ingest

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"financeagent/pkg/models"
)

// IngestFile parses an uploaded file and returns its dataset metadata
// plus the normalized records. Nothing is persisted here; the caller
// decides whether the result goes to storage.
func IngestFile(path string, filename string) (models.Dataset, []models.FinancialRecord, error) {
	table, err := ReadFile(path, filename)
	if err != nil {
		return models.Dataset{}, nil, err
	}

	records := Normalize(table)

	name := filename
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		name = filename[:idx]
	}

	dataset := models.Dataset{
		ID:         uuid.New().String(),
		Name:       name,
		Filename:   filename,
		RowCount:   len(table.Rows),
		Columns:    table.Columns,
		UploadedAt: time.Now().UTC(),
	}

	return dataset, records, nil
}
