package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"financeagent/pkg/models"
)

// Normalize converts a raw table into financial records. Long format is
// detected first (an "amount" column plus recognizable period and item
// columns); otherwise the table is treated as wide format, where the
// first text column holds line items and every numeric column is a
// period.
func Normalize(table *Table) []models.FinancialRecord {
	if records := normalizeLong(table); records != nil {
		fmt.Printf("[Ingest] Normalized %d records (long format)\n", len(records))
		return records
	}

	records := normalizeWide(table)
	fmt.Printf("[Ingest] Normalized %d records (wide format)\n", len(records))
	return records
}

// normalizeLong handles tables with explicit period/line_item/amount
// columns. Returns nil when the table does not fit the shape.
func normalizeLong(table *Table) []models.FinancialRecord {
	colsLower := map[string]int{}
	for i, c := range table.Columns {
		colsLower[strings.ToLower(c)] = i
	}

	amountIdx, ok := colsLower["amount"]
	if !ok {
		return nil
	}

	periodIdx := firstIndex(colsLower, "period", "date", "year")
	itemIdx := firstIndex(colsLower, "line_item", "item", "account")
	categoryIdx := firstIndex(colsLower, "category", "type")

	if periodIdx < 0 || itemIdx < 0 {
		return nil
	}

	var records []models.FinancialRecord
	for _, row := range table.Rows {
		amount, _ := parseAmount(cell(row, amountIdx))
		category := ""
		if categoryIdx >= 0 {
			category = cell(row, categoryIdx)
		}
		records = append(records, models.FinancialRecord{
			Period:   cell(row, periodIdx),
			Category: category,
			LineItem: cell(row, itemIdx),
			Amount:   amount,
		})
	}
	return records
}

// normalizeWide handles one-row-per-item tables: the first text column
// is the line item, an optional second text column is the category, and
// each numeric column becomes a period.
func normalizeWide(table *Table) []models.FinancialRecord {
	textCols, numericCols := classifyColumns(table)
	if len(textCols) == 0 || len(numericCols) == 0 {
		return nil
	}

	itemIdx := textCols[0]
	categoryIdx := -1
	if len(textCols) > 1 {
		categoryIdx = textCols[1]
	}

	var records []models.FinancialRecord
	for _, row := range table.Rows {
		category := ""
		if categoryIdx >= 0 {
			category = cell(row, categoryIdx)
		}
		for _, periodIdx := range numericCols {
			amount, _ := parseAmount(cell(row, periodIdx))
			records = append(records, models.FinancialRecord{
				Period:   table.Columns[periodIdx],
				Category: category,
				LineItem: cell(row, itemIdx),
				Amount:   amount,
			})
		}
	}
	return records
}

// classifyColumns splits column indexes into text and numeric, judging
// each column by its cells: numeric when every non-empty cell parses as
// an amount.
func classifyColumns(table *Table) (textCols []int, numericCols []int) {
	for i := range table.Columns {
		numeric := false
		for _, row := range table.Rows {
			v := cell(row, i)
			if v == "" {
				continue
			}
			if _, ok := parseAmount(v); ok {
				numeric = true
			} else {
				numeric = false
				break
			}
		}
		if numeric {
			numericCols = append(numericCols, i)
		} else {
			textCols = append(textCols, i)
		}
	}
	return textCols, numericCols
}

// firstIndex returns the index of the first candidate column name that
// exists, or -1.
func firstIndex(cols map[string]int, candidates ...string) int {
	for _, c := range candidates {
		if i, ok := cols[c]; ok {
			return i
		}
	}
	return -1
}

// parseAmount reads a financial amount as exports format them: currency
// symbols, thousands commas, percent signs, and accountant's parentheses
// for negatives. Unparseable input yields 0.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.NewReplacer("$", "", ",", "", "%", "", " ", "").Replace(s)
	if s == "" || s == "-" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}
