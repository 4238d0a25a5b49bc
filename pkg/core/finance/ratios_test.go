package finance

import (
	"testing"

	"financeagent/pkg/models"
)

func TestComputeRatiosLatestPeriod(t *testing.T) {
	// Only the 2024 slice should feed the ratios.
	records := []models.FinancialRecord{
		rec("2023", "Income", "Revenue", 500),
		rec("2023", "Income", "Net Income", 10),
		rec("2024", "Income", "Revenue", 1000),
		rec("2024", "Income", "Net Income", 100),
	}

	ratios := ComputeRatios(records)
	if ratios.Period != "2024" {
		t.Fatalf("expected latest period 2024, got %q", ratios.Period)
	}
	// net_margin = 100 / 1000 * 100 = 10.0
	if got := ratios.Values["net_margin"]; got != 10.0 {
		t.Errorf("expected net_margin 10.0, got %f", got)
	}
}

func TestComputeRatiosDerivedGrossProfit(t *testing.T) {
	records := []models.FinancialRecord{
		rec("2024", "", "Revenue", 1000),
		rec("2024", "", "COGS", 400),
	}

	ratios := ComputeRatios(records)
	// gross_profit = 1000 - 400 = 600, gross_margin = 60.0
	if got := ratios.Values["gross_margin"]; got != 60.0 {
		t.Errorf("expected derived gross_margin 60.0, got %f", got)
	}
}

func TestComputeRatiosZeroDenominatorOmitted(t *testing.T) {
	records := []models.FinancialRecord{
		rec("2024", "", "Revenue", 1000),
		rec("2024", "", "Current Assets", 300),
		rec("2024", "", "Current Liabilities", 0),
		rec("2024", "", "Cash", 100),
	}

	ratios := ComputeRatios(records)
	for _, name := range []string{"current_ratio", "quick_ratio", "cash_ratio"} {
		if _, ok := ratios.Values[name]; ok {
			t.Errorf("%s should not be emitted when current liabilities are zero", name)
		}
	}
}

func TestComputeRatiosZeroNumeratorOmitted(t *testing.T) {
	records := []models.FinancialRecord{
		rec("2024", "", "Revenue", 1000),
		rec("2024", "", "Operating Income", 0),
		rec("2024", "", "Total Equity", 400),
		rec("2024", "", "Total Liabilities", 200),
	}

	ratios := ComputeRatios(records)
	if _, ok := ratios.Values["operating_margin"]; ok {
		t.Error("operating_margin should be omitted for a zero numerator")
	}
	// debt_to_equity = 200 / 400 = 0.5 still comes through
	if got := ratios.Values["debt_to_equity"]; got != 0.5 {
		t.Errorf("expected debt_to_equity 0.5, got %f", got)
	}
	// return_on_equity needs net income, which never resolved
	if _, ok := ratios.Values["return_on_equity"]; ok {
		t.Error("return_on_equity should be omitted when net income is unresolved")
	}
}

func TestComputeRatiosAliasFallback(t *testing.T) {
	records := []models.FinancialRecord{
		rec("2024", "", "Sales", 2000),        // resolves via the revenue chain
		rec("2024", "", "Net Earnings", 300),  // resolves via the net_income chain
		rec("2024", "", "Total Assets", 5000), // direct key
	}

	ratios := ComputeRatios(records)
	// net_margin = 300 / 2000 * 100 = 15.0
	if got := ratios.Values["net_margin"]; got != 15.0 {
		t.Errorf("expected net_margin 15.0 via aliases, got %f", got)
	}
	// return_on_assets = 300 / 5000 * 100 = 6.0
	if got := ratios.Values["return_on_assets"]; got != 6.0 {
		t.Errorf("expected return_on_assets 6.0, got %f", got)
	}
}

func TestComputeRatiosEmptyDataset(t *testing.T) {
	ratios := ComputeRatios(nil)
	if ratios.Period != "" || len(ratios.Values) != 0 {
		t.Errorf("expected empty result for empty dataset, got %+v", ratios)
	}
}
