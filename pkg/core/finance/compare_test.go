package finance

import (
	"testing"

	"financeagent/pkg/models"
)

func TestComparePeriodsNeedsTwoPeriods(t *testing.T) {
	records := []models.FinancialRecord{rec("2024", "", "Revenue", 100)}
	result := ComparePeriods(records, "", "")
	if result.Err == "" {
		t.Fatal("expected an error result for a single period")
	}
	if result.Err != "Need at least 2 periods for comparison" {
		t.Errorf("unexpected error text: %q", result.Err)
	}
}

func TestComparePeriodsDefaults(t *testing.T) {
	records := []models.FinancialRecord{
		rec("2022", "", "Revenue", 80),
		rec("2023", "", "Revenue", 100),
		rec("2024", "", "Revenue", 130),
	}

	result := ComparePeriods(records, "", "")
	if result.Period1 != "2023" || result.Period2 != "2024" {
		t.Fatalf("defaults should be the two latest periods, got %s vs %s", result.Period1, result.Period2)
	}
	item := result.Items[0]
	// change = 130 - 100 = 30, pct = 30/100*100 = 30.0
	if item.AbsoluteChange != 30 {
		t.Errorf("expected absolute change 30, got %f", item.AbsoluteChange)
	}
	if item.PercentChange == nil || *item.PercentChange != 30.0 {
		t.Errorf("expected percent change 30.0, got %+v", item.PercentChange)
	}
}

func TestComparePeriodsUnionAndZeroFill(t *testing.T) {
	records := []models.FinancialRecord{
		rec("2023", "", "Revenue", 100),
		rec("2023", "", "Discontinued Ops", 20),
		rec("2024", "", "Revenue", 120),
		rec("2024", "", "New Segment", 45),
	}

	result := ComparePeriods(records, "2023", "2024")
	if len(result.Items) != 3 {
		t.Fatalf("expected union of 3 items, got %d", len(result.Items))
	}

	byItem := make(map[string]ComparisonItem)
	for _, item := range result.Items {
		byItem[item.LineItem] = item
	}
	// New Segment: 0 -> 45, percent change undefined.
	ns := byItem["New Segment"]
	if ns.AbsoluteChange != 45 || ns.PercentChange != nil {
		t.Errorf("zero baseline must give nil percent change: %+v", ns)
	}
	// Discontinued Ops: 20 -> 0, change -20, pct -100.
	do := byItem["Discontinued Ops"]
	if do.AbsoluteChange != -20 || do.PercentChange == nil || *do.PercentChange != -100.0 {
		t.Errorf("unexpected discontinued item diff: %+v", do)
	}
}

func TestComparePeriodsSwapNegates(t *testing.T) {
	records := []models.FinancialRecord{
		rec("2023", "", "Revenue", 100),
		rec("2024", "", "Revenue", 150),
	}

	fwd := ComparePeriods(records, "2023", "2024")
	rev := ComparePeriods(records, "2024", "2023")

	if fwd.Items[0].AbsoluteChange != -rev.Items[0].AbsoluteChange {
		t.Error("swapping periods must negate the absolute change")
	}
	// Forward: 50/100 = +50%. Reverse: -50/150 = -33.33%. The denominator
	// changes, so the percent is not a simple sign flip.
	if *fwd.Items[0].PercentChange != 50.0 {
		t.Errorf("expected +50.0, got %f", *fwd.Items[0].PercentChange)
	}
	if *rev.Items[0].PercentChange != -33.33 {
		t.Errorf("expected -33.33, got %f", *rev.Items[0].PercentChange)
	}
}

func TestComparePeriodsOrdering(t *testing.T) {
	records := []models.FinancialRecord{
		rec("2023", "", "Small Move", 100),
		rec("2024", "", "Small Move", 101),
		rec("2023", "", "Big Move", 100),
		rec("2024", "", "Big Move", 400),
	}

	result := ComparePeriods(records, "", "")
	if result.Items[0].LineItem != "Big Move" {
		t.Errorf("largest absolute change should sort first, got %q", result.Items[0].LineItem)
	}
}
