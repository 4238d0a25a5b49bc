package tools

import (
	"strings"
	"testing"

	"financeagent/pkg/models"
)

func rec(period, category, item string, amount float64) models.FinancialRecord {
	return models.FinancialRecord{Period: period, Category: category, LineItem: item, Amount: amount}
}

func sampleRecords() []models.FinancialRecord {
	return []models.FinancialRecord{
		rec("2023", "Income", "Revenue", 800),
		rec("2023", "Expense", "Operating Expenses", 300),
		rec("2024", "Income", "Revenue", 1000),
		rec("2024", "Expense", "Operating Expenses", 350),
		rec("2024", "Balance", "Total Assets", 5000),
	}
}

func TestResolveQueryPeriodThenKeyword(t *testing.T) {
	// "revenue for 2024" filters by the period label first, then by the
	// revenue keyword against line items.
	result := ResolveQuery(sampleRecords(), "revenue for 2024")
	if len(result) != 1 {
		t.Fatalf("expected 1 record, got %d", len(result))
	}
	if result[0].Period != "2024" || result[0].LineItem != "Revenue" {
		t.Errorf("unexpected record: %+v", result[0])
	}
}

func TestResolveQueryCategory(t *testing.T) {
	result := ResolveQuery(sampleRecords(), "show everything in the income category")
	// Category filter applies, then the "income" keyword also matches the
	// query and narrows line items containing "income": none do, so the
	// keyword filter empties nothing incorrectly. "Revenue" does not
	// contain "income", so the result is empty.
	if len(result) != 0 {
		t.Fatalf("expected keyword filter after category filter to empty the set, got %d", len(result))
	}

	// Without keyword interference the category filter stands alone.
	result = ResolveQuery(sampleRecords(), "balance sheet lines")
	if len(result) != 1 || result[0].LineItem != "Total Assets" {
		t.Errorf("expected the Balance category record, got %+v", result)
	}
}

func TestResolveQueryKeywordOnly(t *testing.T) {
	result := ResolveQuery(sampleRecords(), "what were our expenses")
	if len(result) != 2 {
		t.Fatalf("expected both expense rows, got %d", len(result))
	}
	for _, r := range result {
		if !strings.Contains(strings.ToLower(r.LineItem), "expense") {
			t.Errorf("unexpected record: %+v", r)
		}
	}
}

func TestResolveQueryNoFiltersMatched(t *testing.T) {
	// Nothing in the query matches any axis, so the set degrades to the
	// full snapshot.
	result := ResolveQuery(sampleRecords(), "tell me something interesting")
	if len(result) != len(sampleRecords()) {
		t.Errorf("expected the unfiltered snapshot back, got %d records", len(result))
	}
}

func TestRunQueryNoMatchPreview(t *testing.T) {
	// Period matches but the keyword filter wipes out the subset.
	out := runQuery(sampleRecords(), "2023 cash")
	if !strings.Contains(out, "No matching data found for query: 2023 cash") {
		t.Fatalf("expected the no-match banner, got %q", out)
	}
	if !strings.Contains(out, "Revenue") || !strings.Contains(out, "Total Assets") {
		t.Errorf("preview should list available line items, got %q", out)
	}
}

func TestPreviewLineItemsCap(t *testing.T) {
	var records []models.FinancialRecord
	for i := 0; i < 30; i++ {
		records = append(records, rec("2024", "", "Item "+strings.Repeat("x", i+1), 1))
	}
	items := previewLineItems(records, 20)
	if len(items) != 20 {
		t.Errorf("expected preview capped at 20, got %d", len(items))
	}
}
