package tools

import (
	"financeagent/pkg/models"
)

// Tool is one agent-callable action. The description is what the
// orchestrating agent reads when deciding which action to invoke; Run is a
// pure function over the snapshot the registry was built with.
type Tool struct {
	Name        string
	Description string
	Args        []ArgSpec
	Run         func(args map[string]string) string
}

// ArgSpec documents a single optional string argument.
type ArgSpec struct {
	Name        string
	Description string
}

// NewRegistry binds the full action set to one record snapshot. One
// conversational turn gets one registry, so every call within the turn
// reads the same immutable data.
func NewRegistry(records []models.FinancialRecord) []Tool {
	return []Tool{
		{
			Name: "query_financial_data",
			Description: "Query the financial dataset. You can ask for specific line items, " +
				"periods, or categories. Supports queries like 'revenue for all periods', " +
				"'all items in 2024-Q1', 'operating expenses by period'.",
			Args: []ArgSpec{
				{Name: "query", Description: "A natural language description of what data to retrieve."},
			},
			Run: func(args map[string]string) string {
				return runQuery(records, args["query"])
			},
		},
		{
			Name: "calculate_financial_ratios",
			Description: "Calculate key financial ratios including profitability ratios " +
				"(gross margin, operating margin, net margin), liquidity ratios (current " +
				"ratio, quick ratio), and leverage ratios (debt-to-equity, return on " +
				"equity). Uses the most recent period's data.",
			Run: func(args map[string]string) string {
				return runRatios(records)
			},
		},
		{
			Name: "analyze_trends",
			Description: "Analyze period-over-period trends for all financial line items. " +
				"Shows which items are increasing, decreasing, or stable, along with the " +
				"average percentage change.",
			Run: func(args map[string]string) string {
				return runTrends(records)
			},
		},
		{
			Name: "detect_anomalies",
			Description: "Detect statistical anomalies in the financial data. Identifies " +
				"values that deviate significantly from the mean for each line item. Flags " +
				"items that are more than 1.5 standard deviations from average.",
			Run: func(args map[string]string) string {
				return runAnomalies(records)
			},
		},
		{
			Name: "compare_periods",
			Description: "Compare financial data between two periods side by side. Shows " +
				"absolute and percentage changes for each line item. If periods are not " +
				"specified, compares the two most recent periods.",
			Args: []ArgSpec{
				{Name: "period1", Description: "The first/earlier period to compare (e.g., '2023-Q3')."},
				{Name: "period2", Description: "The second/later period to compare (e.g., '2024-Q1')."},
			},
			Run: func(args map[string]string) string {
				return runCompare(records, args["period1"], args["period2"])
			},
		},
		{
			Name: "get_data_summary",
			Description: "Get a high-level summary of the financial dataset including " +
				"available periods, categories, line item count, and totals by period.",
			Run: func(args map[string]string) string {
				return runSummary(records)
			},
		},
	}
}

// Find returns the named tool or nil.
func Find(registry []Tool, name string) *Tool {
	for i := range registry {
		if registry[i].Name == name {
			return &registry[i]
		}
	}
	return nil
}
