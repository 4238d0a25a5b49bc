package finance

import (
	"math"
	"sort"

	"financeagent/pkg/models"
)

// ComparePeriods diffs two periods across the union of their line items.
// Empty period arguments default to the two lexicographically greatest
// periods. Items absent from a period are valued at 0. With fewer than 2
// distinct periods the result carries an error message instead of items.
func ComparePeriods(records []models.FinancialRecord, period1, period2 string) Comparison {
	periods := distinctPeriods(records)
	if len(periods) < 2 {
		return Comparison{Err: "Need at least 2 periods for comparison"}
	}

	p1 := period1
	if p1 == "" {
		p1 = periods[len(periods)-2]
	}
	p2 := period2
	if p2 == "" {
		p2 = periods[len(periods)-1]
	}

	// Last record wins per item within a period, same as the item map.
	values1 := make(map[string]float64)
	values2 := make(map[string]float64)
	for _, rec := range records {
		switch rec.Period {
		case p1:
			values1[rec.LineItem] = rec.Amount
		case p2:
			values2[rec.LineItem] = rec.Amount
		}
	}

	union := make(map[string]bool, len(values1)+len(values2))
	for item := range values1 {
		union[item] = true
	}
	for item := range values2 {
		union[item] = true
	}
	items := make([]string, 0, len(union))
	for item := range union {
		items = append(items, item)
	}
	sort.Strings(items)

	comparison := Comparison{Period1: p1, Period2: p2}
	for _, item := range items {
		v1 := values1[item]
		v2 := values2[item]
		entry := ComparisonItem{
			LineItem:       item,
			Period1Value:   round2(v1),
			Period2Value:   round2(v2),
			AbsoluteChange: round2(v2 - v1),
		}
		if v1 != 0 {
			pct := round2((v2 - v1) / math.Abs(v1) * 100)
			entry.PercentChange = &pct
		}
		comparison.Items = append(comparison.Items, entry)
	}

	sort.SliceStable(comparison.Items, func(i, j int) bool {
		return math.Abs(comparison.Items[i].AbsoluteChange) > math.Abs(comparison.Items[j].AbsoluteChange)
	})
	return comparison
}
