package finance

// Trend direction labels.
const (
	DirectionIncreasing = "increasing"
	DirectionDecreasing = "decreasing"
	DirectionStable     = "stable"
)

// Anomaly severity labels.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// Ratios holds the derived ratios for the latest period. Values only
// contains entries whose numerator and denominator both resolved, so a
// partially populated map is a normal outcome.
type Ratios struct {
	Period string             `json:"period,omitempty"`
	Values map[string]float64 `json:"values"`
}

// PeriodChange is the percent change between two consecutive periods.
// ChangePct is nil when the earlier value was zero.
type PeriodChange struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	ChangePct *float64 `json:"change_pct"`
}

// Trend is the trajectory of one line item across the full period axis.
type Trend struct {
	LineItem       string             `json:"line_item"`
	Category       string             `json:"category"`
	ValuesByPeriod map[string]float64 `json:"values_by_period"`
	PeriodChanges  []PeriodChange     `json:"period_changes"`
	AvgChangePct   float64            `json:"avg_change_pct"`
	Direction      string             `json:"direction"`
}

// Anomaly is a single flagged observation.
type Anomaly struct {
	LineItem    string  `json:"line_item"`
	Category    string  `json:"category"`
	Period      string  `json:"period"`
	Amount      float64 `json:"amount"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	ZScore      float64 `json:"z_score"`
	Severity    string  `json:"severity"`
	Description string  `json:"description"`
}

// ComparisonItem is one line item diffed across the two compared periods.
// PercentChange is nil when the period-1 value was zero.
type ComparisonItem struct {
	LineItem       string   `json:"line_item"`
	Period1Value   float64  `json:"period_1_value"`
	Period2Value   float64  `json:"period_2_value"`
	AbsoluteChange float64  `json:"absolute_change"`
	PercentChange  *float64 `json:"percent_change"`
}

// Comparison is the side-by-side diff of two periods. Err carries the
// under-populated-dataset message instead of a Go error so callers can
// surface it directly.
type Comparison struct {
	Period1 string           `json:"period_1,omitempty"`
	Period2 string           `json:"period_2,omitempty"`
	Items   []ComparisonItem `json:"items,omitempty"`
	Err     string           `json:"error,omitempty"`
}

// Summary holds dataset-wide cardinalities and per-period totals.
type Summary struct {
	Periods       []string           `json:"periods"`
	Categories    []string           `json:"categories"`
	LineItemCount int                `json:"line_item_count"`
	TotalByPeriod map[string]float64 `json:"total_by_period"`
}
