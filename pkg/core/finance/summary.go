package finance

import (
	"sort"

	"financeagent/pkg/models"
)

// ComputeSummary returns dataset-wide cardinalities and per-period totals.
func ComputeSummary(records []models.FinancialRecord) Summary {
	summary := Summary{
		Periods:       distinctPeriods(records),
		TotalByPeriod: make(map[string]float64),
	}

	seenCat := make(map[string]bool)
	totals := make(map[string]float64)
	for _, rec := range records {
		if rec.Category != "" && !seenCat[rec.Category] {
			seenCat[rec.Category] = true
			summary.Categories = append(summary.Categories, rec.Category)
		}
		totals[rec.Period] += rec.Amount
	}
	sort.Strings(summary.Categories)

	summary.LineItemCount = len(distinctLineItems(records))
	for period, total := range totals {
		summary.TotalByPeriod[period] = round2(total)
	}
	return summary
}
