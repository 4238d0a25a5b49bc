package tools

import (
	"strings"

	"financeagent/pkg/core/finance"
	"financeagent/pkg/models"
)

// queryKeywords are tested against line-item labels after the period and
// category axes, in this fixed priority order.
var queryKeywords = []string{
	"revenue", "income", "expense", "cost", "profit", "asset",
	"liability", "equity", "cash", "debt", "ebitda", "tax",
}

// ResolveQuery narrows the snapshot using up to three filters applied in
// order: the first known period label found as a substring of the query,
// then the first known category, then the first keyword matching line
// items. Known periods and categories are tried in sorted order so the
// outcome never depends on record iteration order. Axes without a match
// stay unfiltered.
func ResolveQuery(records []models.FinancialRecord, query string) []models.FinancialRecord {
	q := strings.ToLower(query)
	summary := finance.ComputeSummary(records)
	result := records

	for _, period := range summary.Periods {
		if strings.Contains(q, strings.ToLower(period)) {
			result = filterRecords(result, func(r models.FinancialRecord) bool {
				return r.Period == period
			})
			break
		}
	}

	for _, category := range summary.Categories {
		if strings.Contains(q, strings.ToLower(category)) {
			result = filterRecords(result, func(r models.FinancialRecord) bool {
				return r.Category == category
			})
			break
		}
	}

	for _, keyword := range queryKeywords {
		if strings.Contains(q, keyword) {
			result = filterRecords(result, func(r models.FinancialRecord) bool {
				return strings.Contains(strings.ToLower(r.LineItem), keyword)
			})
			break
		}
	}

	return result
}

func filterRecords(records []models.FinancialRecord, keep func(models.FinancialRecord) bool) []models.FinancialRecord {
	var out []models.FinancialRecord
	for _, rec := range records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// previewLineItems lists distinct labels in first-appearance order, capped.
func previewLineItems(records []models.FinancialRecord, limit int) []string {
	seen := make(map[string]bool)
	var items []string
	for _, rec := range records {
		if seen[rec.LineItem] {
			continue
		}
		seen[rec.LineItem] = true
		items = append(items, rec.LineItem)
		if len(items) == limit {
			break
		}
	}
	return items
}
