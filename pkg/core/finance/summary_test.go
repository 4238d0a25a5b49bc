package finance

import (
	"testing"

	"financeagent/pkg/models"
)

func TestComputeSummary(t *testing.T) {
	records := []models.FinancialRecord{
		rec("2024", "Income", "Revenue", 1000.125),
		rec("2024", "", "Misc", 10),
		rec("2023", "Expense", "COGS", 400),
		rec("2023", "Income", "Revenue", 800),
	}

	summary := ComputeSummary(records)

	if len(summary.Periods) != 2 || summary.Periods[0] != "2023" || summary.Periods[1] != "2024" {
		t.Errorf("unexpected periods: %v", summary.Periods)
	}
	// Empty categories are dropped, the rest sorted.
	if len(summary.Categories) != 2 || summary.Categories[0] != "Expense" || summary.Categories[1] != "Income" {
		t.Errorf("unexpected categories: %v", summary.Categories)
	}
	if summary.LineItemCount != 3 {
		t.Errorf("expected 3 distinct line items, got %d", summary.LineItemCount)
	}
	// 2024 total = 1000.125 + 10 = 1010.125 -> 1010.13 after rounding.
	if got := summary.TotalByPeriod["2024"]; got != 1010.13 {
		t.Errorf("expected 2024 total 1010.13, got %f", got)
	}
	if got := summary.TotalByPeriod["2023"]; got != 1200 {
		t.Errorf("expected 2023 total 1200, got %f", got)
	}
}

func TestComputeSummaryEmpty(t *testing.T) {
	summary := ComputeSummary(nil)
	if len(summary.Periods) != 0 || summary.LineItemCount != 0 || len(summary.TotalByPeriod) != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}
