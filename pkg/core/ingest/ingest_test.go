package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTemp(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestIngestCSVLongFormat(t *testing.T) {
	csv := `period,category,line_item,amount
2024-Q1,Revenue,Product Revenue,"1,000.50"
2024-Q1,Expenses,COGS,$400
2024-Q2,Revenue,Product Revenue,(250)
`
	path := writeTemp(t, "report.csv", csv)

	dataset, records, err := IngestFile(path, "report.csv")
	if err != nil {
		t.Fatalf("IngestFile failed: %v", err)
	}

	if dataset.Name != "report" {
		t.Errorf("expected dataset name 'report', got %q", dataset.Name)
	}
	if dataset.RowCount != 3 {
		t.Errorf("expected row count 3, got %d", dataset.RowCount)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	// "1,000.50" parses with the thousands comma stripped.
	if records[0].Amount != 1000.50 {
		t.Errorf("expected 1000.50, got %v", records[0].Amount)
	}
	// "$400" drops the currency symbol.
	if records[1].Amount != 400 {
		t.Errorf("expected 400, got %v", records[1].Amount)
	}
	// "(250)" is accountant's notation for a negative.
	if records[2].Amount != -250 {
		t.Errorf("expected -250, got %v", records[2].Amount)
	}
	if records[1].Category != "Expenses" || records[1].LineItem != "COGS" {
		t.Errorf("unexpected record: %+v", records[1])
	}
}

func TestIngestCSVLongFormatAliases(t *testing.T) {
	// "year"/"account"/"type" are accepted aliases for period/line_item/category.
	csv := `year,type,account,amount
2023,Revenue,Sales,5000
2024,Revenue,Sales,6000
`
	path := writeTemp(t, "aliases.csv", csv)

	_, records, err := IngestFile(path, "aliases.csv")
	if err != nil {
		t.Fatalf("IngestFile failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Period != "2023" || records[0].LineItem != "Sales" || records[0].Category != "Revenue" {
		t.Errorf("alias columns not mapped: %+v", records[0])
	}
}

func TestIngestCSVWideFormat(t *testing.T) {
	// No "amount" column: first text column is the line item, the second
	// is the category, and the numeric columns become periods.
	csv := `Line Item,Category,2023,2024
Revenue,Income,1000,1500
COGS,Expenses,400,600
`
	path := writeTemp(t, "wide.csv", csv)

	_, records, err := IngestFile(path, "wide.csv")
	if err != nil {
		t.Fatalf("IngestFile failed: %v", err)
	}

	// 2 rows x 2 period columns = 4 records.
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	found := false
	for _, r := range records {
		if r.LineItem == "COGS" && r.Period == "2024" {
			found = true
			if r.Amount != 600 {
				t.Errorf("expected COGS 2024 = 600, got %v", r.Amount)
			}
			if r.Category != "Expenses" {
				t.Errorf("expected category Expenses, got %q", r.Category)
			}
		}
	}
	if !found {
		t.Error("missing record for COGS 2024")
	}
}

func TestIngestHTMLPicksLargestTable(t *testing.T) {
	html := `<html><body>
<table><tr><td>nav</td></tr><tr><td>links</td></tr></table>
<table>
  <tr><th>line_item</th><th>period</th><th>amount</th></tr>
  <tr><td>Revenue</td><td>2024</td><td>$2,500.00</td></tr>
  <tr><td>COGS</td><td>2024</td><td>(900)</td></tr>
</table>
</body></html>`
	path := writeTemp(t, "report.html", html)

	_, records, err := IngestFile(path, "report.html")
	if err != nil {
		t.Fatalf("IngestFile failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Amount != 2500 || records[1].Amount != -900 {
		t.Errorf("unexpected amounts: %v, %v", records[0].Amount, records[1].Amount)
	}
}

func TestIngestExcel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"period", "line_item", "amount"},
		{"2024-Q1", "Revenue", 1000.0},
		{"2024-Q2", "Revenue", 1200.0},
	}
	for i, row := range rows {
		cellRef, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("failed to build workbook: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}

	_, records, err := IngestFile(path, "report.xlsx")
	if err != nil {
		t.Fatalf("IngestFile failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].Period != "2024-Q2" || records[1].Amount != 1200 {
		t.Errorf("unexpected record: %+v", records[1])
	}
}

func TestIngestRejectsUnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "report.pdf", "not a table")
	if _, _, err := IngestFile(path, "report.pdf"); err == nil {
		t.Error("expected an error for unsupported file type")
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,234.56", 1234.56, true},
		{"$500", 500, true},
		{"(42)", -42, true},
		{"12.5%", 12.5, true},
		{"-", 0, false},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, c := range cases {
		got, ok := parseAmount(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("parseAmount(%q) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}
