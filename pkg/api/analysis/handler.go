package analysis

import (
	"encoding/json"
	"fmt"
	"net/http"

	"financeagent/pkg/api/datasets"
	"financeagent/pkg/core/finance"
	"financeagent/pkg/core/store"
)

// Handler runs the full analysis suite over one dataset's records
type Handler struct {
	repo *store.DatasetRepo
}

// NewHandler creates a new analysis handler
func NewHandler(repo *store.DatasetRepo) *Handler {
	return &Handler{repo: repo}
}

// AnalysisResponse bundles every engine's output for one dataset
type AnalysisResponse struct {
	DatasetID        string             `json:"dataset_id"`
	DatasetName      string             `json:"dataset_name"`
	Summary          finance.Summary    `json:"summary"`
	Ratios           finance.Ratios     `json:"ratios"`
	Trends           []finance.Trend    `json:"trends"`
	Anomalies        []finance.Anomaly  `json:"anomalies"`
	PeriodComparison finance.Comparison `json:"period_comparison"`
}

// HandleAnalysis serves GET /api/datasets/{id}/analysis
func (h *Handler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := datasets.DatasetIDFromPath(r.URL.Path)

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
	if len(records) == 0 {
		http.Error(w, "Dataset has no records", http.StatusBadRequest)
		return
	}

	trends := finance.ComputeTrends(records)
	if len(trends) > 10 {
		trends = trends[:10]
	}
	anomalies := finance.DetectAnomalies(records)
	if len(anomalies) > 10 {
		anomalies = anomalies[:10]
	}

	json.NewEncoder(w).Encode(AnalysisResponse{
		DatasetID:        dataset.ID,
		DatasetName:      dataset.Name,
		Summary:          finance.ComputeSummary(records),
		Ratios:           finance.ComputeRatios(records),
		Trends:           trends,
		Anomalies:        anomalies,
		PeriodComparison: finance.ComparePeriods(records, "", ""),
	})
}
