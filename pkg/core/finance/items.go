package finance

import (
	"math"
	"sort"
	"strings"

	"financeagent/pkg/models"
)

// NormalizeKey turns a free-form line-item label into the canonical lookup
// form: lowercased, trimmed, spaces and hyphens collapsed to underscores.
func NormalizeKey(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}

// BuildItemMap maps normalized line-item keys to amounts for a record
// subset. On key collisions the later record wins; this is a lookup table,
// not an aggregation.
func BuildItemMap(records []models.FinancialRecord) map[string]float64 {
	items := make(map[string]float64, len(records))
	for _, rec := range records {
		items[NormalizeKey(rec.LineItem)] = rec.Amount
	}
	return items
}

// aliasChains maps each financial concept to its acceptable canonical keys,
// in lookup priority order. Resolution takes the first key present in the
// item map, even if its value is zero. Kept as data so the chains are
// testable without touching the ratio code.
var aliasChains = map[string][]string{
	"revenue":             {"revenue", "total_revenue", "net_revenue", "sales"},
	"cogs":                {"cogs", "cost_of_goods_sold", "cost_of_revenue"},
	"net_income":          {"net_income", "net_profit", "net_earnings"},
	"operating_income":    {"operating_income", "operating_profit", "ebit"},
	"gross_profit":        {"gross_profit"},
	"ebitda":              {"ebitda"},
	"current_assets":      {"current_assets", "total_current_assets"},
	"current_liabilities": {"current_liabilities", "total_current_liabilities"},
	"cash":                {"cash", "cash_and_equivalents", "cash_and_cash_equivalents"},
	"inventory":           {"inventory", "inventories"},
	"total_assets":        {"total_assets"},
	"total_liabilities":   {"total_liabilities"},
	"total_equity":        {"total_equity", "shareholders_equity", "total_shareholders_equity"},
}

// resolveConcept walks the alias chain for a concept and returns the first
// present key's value. The boolean reports presence, not non-zero-ness.
func resolveConcept(items map[string]float64, concept string) (float64, bool) {
	for _, key := range aliasChains[concept] {
		if v, ok := items[key]; ok {
			return v, true
		}
	}
	return 0, false
}

// conceptValue is resolveConcept with a zero default for absent concepts.
func conceptValue(items map[string]float64, concept string) float64 {
	v, _ := resolveConcept(items, concept)
	return v
}

// distinctPeriods returns the sorted set of period labels in the snapshot.
// Ordering is plain lexicographic string comparison.
func distinctPeriods(records []models.FinancialRecord) []string {
	seen := make(map[string]bool)
	var periods []string
	for _, rec := range records {
		if !seen[rec.Period] {
			seen[rec.Period] = true
			periods = append(periods, rec.Period)
		}
	}
	sort.Strings(periods)
	return periods
}

// distinctLineItems returns the sorted set of raw line-item labels.
func distinctLineItems(records []models.FinancialRecord) []string {
	seen := make(map[string]bool)
	var items []string
	for _, rec := range records {
		if !seen[rec.LineItem] {
			seen[rec.LineItem] = true
			items = append(items, rec.LineItem)
		}
	}
	sort.Strings(items)
	return items
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
