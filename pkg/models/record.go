package models

import (
	"time"
)

// FinancialRecord is one normalized line-item observation. Records are
// produced once by ingestion and treated as read-only everywhere else.
type FinancialRecord struct {
	Period   string  `json:"period"`    // opaque label, e.g. "2024-Q1" or "2023"
	Category string  `json:"category"`  // may be empty
	LineItem string  `json:"line_item"` // e.g. "Net Income"
	Amount   float64 `json:"amount"`
}

// Dataset describes one uploaded file and its stored records.
type Dataset struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Filename   string    `json:"filename"`
	RowCount   int       `json:"row_count"`
	Columns    []string  `json:"columns"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ChatMessage is one turn of a dataset conversation.
type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
