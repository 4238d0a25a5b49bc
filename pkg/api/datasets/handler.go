package datasets

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"financeagent/pkg/core/ingest"
	"financeagent/pkg/core/store"
	"financeagent/pkg/models"
)

// Handler provides HTTP handlers for dataset upload and retrieval
type Handler struct {
	repo *store.DatasetRepo

	// Sub-resource handlers mounted under /api/datasets/{id}/...
	Analysis    http.HandlerFunc
	ChatHistory http.HandlerFunc
}

// NewHandler creates a new datasets handler
func NewHandler(repo *store.DatasetRepo) *Handler {
	return &Handler{repo: repo}
}

// UploadResponse is returned after a successful file ingestion
type UploadResponse struct {
	DatasetID string                   `json:"dataset_id"`
	Name      string                   `json:"name"`
	RowCount  int                      `json:"row_count"`
	Columns   []string                 `json:"columns"`
	Preview   []models.FinancialRecord `json:"preview"`
}

// DatasetDetail is the single-dataset response with a data preview
type DatasetDetail struct {
	models.Dataset
	Preview []models.FinancialRecord `json:"preview"`
}

var allowedExtensions = map[string]bool{
	".csv": true, ".xlsx": true, ".xls": true, ".html": true, ".htm": true,
}

// HandleUpload ingests an uploaded financial data file (POST /api/upload)
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		http.Error(w, "Only CSV, Excel and HTML files are supported", http.StatusBadRequest)
		return
	}

	// Spool to a temp file so the parsers can work from a path.
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		http.Error(w, "Failed to store upload", http.StatusInternalServerError)
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		http.Error(w, "Failed to store upload", http.StatusInternalServerError)
		return
	}
	tmp.Close()

	dataset, records, err := ingest.IngestFile(tmp.Name(), header.Filename)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to ingest file: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.repo.Save(r.Context(), dataset, records); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save dataset: %v", err), http.StatusInternalServerError)
		return
	}

	fmt.Printf("[Datasets] Uploaded %s: %d rows, %d records\n", header.Filename, dataset.RowCount, len(records))

	json.NewEncoder(w).Encode(UploadResponse{
		DatasetID: dataset.ID,
		Name:      dataset.Name,
		RowCount:  dataset.RowCount,
		Columns:   dataset.Columns,
		Preview:   previewOf(records, 5),
	})
}

// HandleList returns all datasets (GET /api/datasets)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	list, err := h.repo.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list datasets: %v", err), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Dataset{}
	}
	json.NewEncoder(w).Encode(list)
}

// HandleRoutes dispatches /api/datasets/{id} and its sub-resources.
// Registered on the "/api/datasets/" prefix.
func (h *Handler) HandleRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/datasets/")
	if rest == "" {
		h.HandleList(w, r)
		return
	}

	parts := strings.SplitN(rest, "/", 2)
	suffix := ""
	if len(parts) == 2 {
		suffix = parts[1]
	}

	switch suffix {
	case "":
		h.handleDetail(w, r, parts[0])
	case "analysis":
		if h.Analysis != nil {
			h.Analysis(w, r)
			return
		}
		http.NotFound(w, r)
	case "chat-history":
		if h.ChatHistory != nil {
			h.ChatHistory(w, r)
			return
		}
		http.NotFound(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleDetail returns one dataset plus a 10-row preview
func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request, id string) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dataset, err := h.repo.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "Dataset not found", http.StatusNotFound)
		return
	}

	records, err := h.repo.LoadRecords(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load records: %v", err), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(DatasetDetail{
		Dataset: dataset,
		Preview: previewOf(records, 10),
	})
}

// DatasetIDFromPath extracts the {id} segment from /api/datasets/{id}/...
func DatasetIDFromPath(path string) string {
	rest := strings.TrimPrefix(path, "/api/datasets/")
	return strings.SplitN(rest, "/", 2)[0]
}

func previewOf(records []models.FinancialRecord, limit int) []models.FinancialRecord {
	if len(records) > limit {
		records = records[:limit]
	}
	if records == nil {
		records = []models.FinancialRecord{}
	}
	return records
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
