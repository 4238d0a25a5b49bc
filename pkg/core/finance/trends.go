package finance

import (
	"math"
	"sort"

	"financeagent/pkg/models"
)

// ComputeTrends builds a period-over-period trajectory for every line item
// and classifies it as increasing, decreasing or stable.
//
// The period axis is the global sorted period set; items missing from a
// period are filled with 0 so every series length-matches the axis. Items
// observed fewer than twice are skipped. Percent change over a pair is nil
// when the earlier value is zero. Classification uses the unrounded average
// with a +/-2 band. Strongest movers sort first.
func ComputeTrends(records []models.FinancialRecord) []Trend {
	periods := distinctPeriods(records)
	if len(periods) < 2 {
		return nil
	}

	var trends []Trend
	for _, item := range distinctLineItems(records) {
		var (
			category  string
			count     int
			haveFirst bool
		)
		byPeriod := make(map[string]float64)
		for _, rec := range records {
			if rec.LineItem != item {
				continue
			}
			if !haveFirst {
				category = rec.Category
				haveFirst = true
			}
			byPeriod[rec.Period] = rec.Amount
			count++
		}
		if count < 2 {
			continue
		}

		values := make(map[string]float64, len(periods))
		for _, p := range periods {
			values[p] = round2(byPeriod[p])
		}

		changes := make([]PeriodChange, 0, len(periods)-1)
		var sum float64
		var nonNil int
		for i := 1; i < len(periods); i++ {
			prev := byPeriod[periods[i-1]]
			curr := byPeriod[periods[i]]
			change := PeriodChange{From: periods[i-1], To: periods[i]}
			if prev != 0 {
				pct := round2((curr - prev) / math.Abs(prev) * 100)
				change.ChangePct = &pct
				sum += pct
				nonNil++
			}
			changes = append(changes, change)
		}

		var avg float64
		if nonNil > 0 {
			avg = sum / float64(nonNil)
		}

		direction := DirectionStable
		if avg > 2 {
			direction = DirectionIncreasing
		} else if avg < -2 {
			direction = DirectionDecreasing
		}

		trends = append(trends, Trend{
			LineItem:       item,
			Category:       category,
			ValuesByPeriod: values,
			PeriodChanges:  changes,
			AvgChangePct:   round2(avg),
			Direction:      direction,
		})
	}

	sort.SliceStable(trends, func(i, j int) bool {
		return math.Abs(trends[i].AvgChangePct) > math.Abs(trends[j].AvgChangePct)
	})
	return trends
}
