package finance

import (
	"fmt"
	"math"
	"sort"

	"financeagent/pkg/models"
)

// DetectAnomalies flags observations that deviate from their line item's
// own history by more than 1.5 population standard deviations.
//
// Requires at least 3 distinct periods dataset-wide and at least 3
// observations per item. Items with zero variance are skipped. Severity is
// high above 2.5 sigma, medium otherwise. Largest deviations sort first.
func DetectAnomalies(records []models.FinancialRecord) []Anomaly {
	periods := distinctPeriods(records)
	if len(periods) < 3 {
		return nil
	}

	var anomalies []Anomaly
	for _, item := range distinctLineItems(records) {
		var obs []models.FinancialRecord
		for _, rec := range records {
			if rec.LineItem == item {
				obs = append(obs, rec)
			}
		}
		if len(obs) < 3 {
			continue
		}
		sort.SliceStable(obs, func(i, j int) bool { return obs[i].Period < obs[j].Period })

		var sum float64
		for _, rec := range obs {
			sum += rec.Amount
		}
		mean := sum / float64(len(obs))

		var variance float64
		for _, rec := range obs {
			d := rec.Amount - mean
			variance += d * d
		}
		std := math.Sqrt(variance / float64(len(obs)))
		if std == 0 {
			continue
		}

		for _, rec := range obs {
			z := (rec.Amount - mean) / std
			if math.Abs(z) <= 1.5 {
				continue
			}
			severity := SeverityMedium
			if math.Abs(z) > 2.5 {
				severity = SeverityHigh
			}
			side := "above"
			if z < 0 {
				side = "below"
			}
			anomalies = append(anomalies, Anomaly{
				LineItem: rec.LineItem,
				Category: rec.Category,
				Period:   rec.Period,
				Amount:   round2(rec.Amount),
				Mean:     round2(mean),
				StdDev:   round2(std),
				ZScore:   round2(z),
				Severity: severity,
				Description: fmt.Sprintf("%s in %s (%s average by %.1f std deviations)",
					rec.LineItem, rec.Period, side, math.Abs(z)),
			})
		}
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		return math.Abs(anomalies[i].ZScore) > math.Abs(anomalies[j].ZScore)
	})
	return anomalies
}
