package finance

import (
	"financeagent/pkg/models"
)

// ComputeRatios derives profitability, liquidity and leverage ratios from
// the lexicographically latest period of the snapshot.
//
// A ratio is emitted only when its denominator resolved to a nonzero value
// and its numerator driver resolved to a nonzero value. Everything else is
// omitted rather than fabricated, so partial output is the normal contract.
// Margins and returns are percentages; the rest are plain multiples.
func ComputeRatios(records []models.FinancialRecord) Ratios {
	ratios := Ratios{Values: make(map[string]float64)}
	if len(records) == 0 {
		return ratios
	}

	periods := distinctPeriods(records)
	latest := periods[len(periods)-1]
	ratios.Period = latest

	var slice []models.FinancialRecord
	for _, rec := range records {
		if rec.Period == latest {
			slice = append(slice, rec)
		}
	}
	items := BuildItemMap(slice)

	// Profitability (all relative to revenue)
	revenue := conceptValue(items, "revenue")
	cogs := conceptValue(items, "cogs")
	netIncome := conceptValue(items, "net_income")
	operatingIncome := conceptValue(items, "operating_income")
	ebitda := conceptValue(items, "ebitda")

	grossProfit, hasGP := resolveConcept(items, "gross_profit")
	if !hasGP && revenue != 0 && cogs != 0 {
		grossProfit = revenue - cogs
	}

	if revenue != 0 {
		if grossProfit != 0 {
			ratios.Values["gross_margin"] = round2(grossProfit / revenue * 100)
		}
		if operatingIncome != 0 {
			ratios.Values["operating_margin"] = round2(operatingIncome / revenue * 100)
		}
		if netIncome != 0 {
			ratios.Values["net_margin"] = round2(netIncome / revenue * 100)
		}
		if ebitda != 0 {
			ratios.Values["ebitda_margin"] = round2(ebitda / revenue * 100)
		}
	}

	// Liquidity (all relative to current liabilities)
	currentAssets := conceptValue(items, "current_assets")
	currentLiabilities := conceptValue(items, "current_liabilities")
	cash := conceptValue(items, "cash")
	inventory := conceptValue(items, "inventory")

	if currentLiabilities != 0 {
		if currentAssets != 0 {
			ratios.Values["current_ratio"] = round2(currentAssets / currentLiabilities)
			ratios.Values["quick_ratio"] = round2((currentAssets - inventory) / currentLiabilities)
		}
		if cash != 0 {
			ratios.Values["cash_ratio"] = round2(cash / currentLiabilities)
		}
	}

	// Leverage
	totalAssets := conceptValue(items, "total_assets")
	totalLiabilities := conceptValue(items, "total_liabilities")
	totalEquity := conceptValue(items, "total_equity")

	if totalEquity != 0 {
		if totalLiabilities != 0 {
			ratios.Values["debt_to_equity"] = round2(totalLiabilities / totalEquity)
		}
		if netIncome != 0 {
			ratios.Values["return_on_equity"] = round2(netIncome / totalEquity * 100)
		}
	}
	if totalAssets != 0 {
		if totalLiabilities != 0 {
			ratios.Values["debt_to_assets"] = round2(totalLiabilities / totalAssets)
		}
		if netIncome != 0 {
			ratios.Values["return_on_assets"] = round2(netIncome / totalAssets * 100)
		}
	}

	return ratios
}
