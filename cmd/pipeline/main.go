package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"financeagent/pkg/core/ingest"
	"financeagent/pkg/core/tools"
)

// Offline analysis run: parse a financial data file and print every
// engine's report without a server, database, or LLM in the loop.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: pipeline <file.csv|file.xlsx|file.html>")
		os.Exit(1)
	}
	path := os.Args[1]

	dataset, records, err := ingest.IngestFile(path, filepath.Base(path))
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	fmt.Println("################################################################################")
	fmt.Println("                       FINANCIAL ANALYSIS REPORT")
	fmt.Printf("                       Source: %s (%d rows)\n", dataset.Filename, dataset.RowCount)
	fmt.Println("################################################################################")

	registry := tools.NewRegistry(records)
	sections := []struct {
		title string
		tool  string
		args  map[string]string
	}{
		{"[1] DATA SUMMARY", "get_data_summary", nil},
		{"[2] FINANCIAL RATIOS", "calculate_financial_ratios", nil},
		{"[3] TREND ANALYSIS", "analyze_trends", nil},
		{"[4] ANOMALY DETECTION", "detect_anomalies", nil},
		{"[5] PERIOD COMPARISON", "compare_periods", nil},
	}

	for _, s := range sections {
		tool := tools.Find(registry, s.tool)
		if tool == nil {
			log.Fatalf("missing tool: %s", s.tool)
		}
		fmt.Printf("\n%s\n\n", s.title)
		fmt.Println(tool.Run(s.args))
	}

	fmt.Println("\n[Done] Analysis Complete.")
}
