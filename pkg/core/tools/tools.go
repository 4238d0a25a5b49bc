package tools

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"financeagent/pkg/core/finance"
	"financeagent/pkg/models"
)

// ratioLabels fixes the display order and human labels of the ratio output.
var ratioLabels = []struct{ key, label string }{
	{"gross_margin", "Gross Margin"},
	{"operating_margin", "Operating Margin"},
	{"net_margin", "Net Margin"},
	{"ebitda_margin", "EBITDA Margin"},
	{"current_ratio", "Current Ratio"},
	{"quick_ratio", "Quick Ratio"},
	{"cash_ratio", "Cash Ratio"},
	{"debt_to_equity", "Debt to Equity"},
	{"debt_to_assets", "Debt to Assets"},
	{"return_on_equity", "Return on Equity (ROE)"},
	{"return_on_assets", "Return on Assets (ROA)"},
}

func runQuery(records []models.FinancialRecord, query string) string {
	filtered := ResolveQuery(records, query)
	if len(filtered) == 0 {
		items := previewLineItems(records, 20)
		return fmt.Sprintf("No matching data found for query: %s. Available line items: [%s]",
			query, strings.Join(items, ", "))
	}
	return renderRecords(filtered)
}

func runRatios(records []models.FinancialRecord) string {
	ratios := finance.ComputeRatios(records)
	if len(ratios.Values) == 0 {
		return "Could not compute ratios. Check that the dataset contains standard financial line items."
	}

	lines := []string{fmt.Sprintf("Financial Ratios (Period: %s):\n", ratios.Period)}
	for _, rl := range ratioLabels {
		v, ok := ratios.Values[rl.key]
		if !ok {
			continue
		}
		unit := "x"
		if strings.Contains(rl.key, "margin") || strings.Contains(rl.key, "return") {
			unit = "%"
		}
		lines = append(lines, fmt.Sprintf("  %s: %.2f%s", rl.label, v, unit))
	}
	return strings.Join(lines, "\n")
}

func runTrends(records []models.FinancialRecord) string {
	trends := finance.ComputeTrends(records)
	if len(trends) == 0 {
		return "Not enough periods to analyze trends (need at least 2)."
	}
	if len(trends) > 15 {
		trends = trends[:15]
	}

	lines := []string{"Trend Analysis:\n"}
	for _, tr := range trends {
		arrow := "→"
		switch tr.Direction {
		case finance.DirectionIncreasing:
			arrow = "↑"
		case finance.DirectionDecreasing:
			arrow = "↓"
		}
		lines = append(lines, fmt.Sprintf("  %s %s: %s (avg %+.1f%% per period)",
			arrow, tr.LineItem, tr.Direction, tr.AvgChangePct))

		periods := make([]string, 0, len(tr.ValuesByPeriod))
		for p := range tr.ValuesByPeriod {
			periods = append(periods, p)
		}
		sort.Strings(periods)
		for _, p := range periods {
			lines = append(lines, fmt.Sprintf("      %s: %s", p, formatAmount(tr.ValuesByPeriod[p])))
		}
	}
	return strings.Join(lines, "\n")
}

func runAnomalies(records []models.FinancialRecord) string {
	anomalies := finance.DetectAnomalies(records)
	if len(anomalies) == 0 {
		return "No significant anomalies detected in the financial data."
	}
	if len(anomalies) > 10 {
		anomalies = anomalies[:10]
	}

	lines := []string{"Anomaly Detection Results:\n"}
	for _, a := range anomalies {
		lines = append(lines, fmt.Sprintf("  [%s] %s\n      Amount: %s | Mean: %s | Z-Score: %.2f",
			strings.ToUpper(a.Severity), a.Description,
			formatAmount(a.Amount), formatAmount(a.Mean), a.ZScore))
	}
	return strings.Join(lines, "\n")
}

func runCompare(records []models.FinancialRecord, period1, period2 string) string {
	result := finance.ComparePeriods(records, period1, period2)
	if result.Err != "" {
		return result.Err
	}

	items := result.Items
	if len(items) > 20 {
		items = items[:20]
	}

	lines := []string{fmt.Sprintf("Period Comparison: %s vs %s\n", result.Period1, result.Period2)}
	lines = append(lines, fmt.Sprintf("%-30s %15s %15s %12s %10s",
		"Line Item", "Period 1", "Period 2", "Change", "% Change"))
	lines = append(lines, strings.Repeat("-", 85))

	for _, item := range items {
		pct := "N/A"
		if item.PercentChange != nil {
			pct = fmt.Sprintf("%+.1f%%", *item.PercentChange)
		}
		lines = append(lines, fmt.Sprintf("%-30s %15s %15s %12s %10s",
			item.LineItem,
			formatAmount(item.Period1Value),
			formatAmount(item.Period2Value),
			formatAmount(item.AbsoluteChange),
			pct))
	}
	return strings.Join(lines, "\n")
}

func runSummary(records []models.FinancialRecord) string {
	summary := finance.ComputeSummary(records)

	categories := "N/A"
	if len(summary.Categories) > 0 {
		categories = strings.Join(summary.Categories, ", ")
	}

	lines := []string{
		"Dataset Summary:",
		fmt.Sprintf("  Periods: %s", strings.Join(summary.Periods, ", ")),
		fmt.Sprintf("  Categories: %s", categories),
		fmt.Sprintf("  Line Items: %d", summary.LineItemCount),
		"\n  Totals by Period:",
	}
	for _, period := range summary.Periods {
		lines = append(lines, fmt.Sprintf("    %s: %s", period, formatAmount(summary.TotalByPeriod[period])))
	}
	return strings.Join(lines, "\n")
}

// renderRecords prints the record subset as an aligned table, one row per
// record in snapshot order.
func renderRecords(records []models.FinancialRecord) string {
	headers := []string{"period", "category", "line_item", "amount"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := []string{rec.Period, rec.Category, rec.LineItem, formatAmount(rec.Amount)}
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(cells)-1 {
				b.WriteString(fmt.Sprintf("%*s", widths[i], cell))
			} else {
				b.WriteString(fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		b.WriteString("\n")
	}
	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatAmount renders a value with thousands separators and 2 decimals.
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
