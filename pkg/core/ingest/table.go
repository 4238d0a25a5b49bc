// Package ingest turns uploaded tabular files (CSV, Excel, HTML) into
// normalized financial records. Files arrive in one of two shapes: long
// format (explicit period/line_item/amount columns) or wide format (one
// row per line item, one numeric column per period).
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
)

// Table is a raw parsed grid: a header row plus data rows, all as text.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadFile parses path into a Table, dispatching on the filename's
// extension. Supported: .csv, .xlsx, .xls, .html, .htm.
func ReadFile(path string, filename string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx", ".xls":
		return ReadExcel(path)
	case ".html", ".htm":
		return ReadHTML(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filename)
	}
}

// ReadCSV parses a comma-separated file. Ragged rows are tolerated and
// padded against the header width during normalization.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return tableFromGrid(rows)
}

// ReadExcel parses the first sheet of a workbook.
func ReadExcel(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return tableFromGrid(rows)
}

// ReadHTML parses an HTML document and extracts the largest <table>,
// which in exported financial reports is almost always the data table.
func ReadHTML(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open HTML: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var best [][]string
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		var grid [][]string
		table.Find("tr").Each(func(j int, row *goquery.Selection) {
			var cells []string
			row.Find("td, th").Each(func(k int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			if len(cells) > 0 {
				grid = append(grid, cells)
			}
		})
		if len(grid) > len(best) {
			best = grid
		}
	})

	if len(best) == 0 {
		return nil, fmt.Errorf("no tables found in HTML document")
	}

	return tableFromGrid(best)
}

// tableFromGrid splits a raw grid into header + data rows, trimming
// whitespace from the header cells.
func tableFromGrid(grid [][]string) (*Table, error) {
	if len(grid) < 2 {
		return nil, fmt.Errorf("file needs a header row and at least one data row")
	}

	columns := make([]string, len(grid[0]))
	for i, c := range grid[0] {
		columns[i] = strings.TrimSpace(c)
	}

	return &Table{Columns: columns, Rows: grid[1:]}, nil
}

// cell returns the row value at column index i, or "" when the row is
// shorter than the header.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
