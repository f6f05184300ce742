// Package models defines data structures for extracted tables and their optimization.
package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Table represents a single table produced by extraction.
type Table struct {
	// ID is an opaque identifier assigned when the table enters a session.
	ID string `json:"id,omitempty"`
	// Name is the display name given by the extractor (e.g., "Prices (P2)").
	Name string `json:"name"`
	// Headers is the ordered list of column headers.
	Headers []string `json:"headers"`
	// Rows holds data rows; a nil cell is an empty value.
	// A row may be shorter than Headers, missing trailing cells are nil.
	Rows [][]*string `json:"rows"`
	// SourceFile is the uploaded file the table came from (optional).
	SourceFile string `json:"source_file,omitempty"`
	// Page is the declared 1-based page number (0 if unknown).
	Page int `json:"page,omitempty"`
	// Confidence is the extractor's confidence for this table.
	Confidence Confidence `json:"confidence"`
}

// Text returns a cell holding s.
func Text(s string) *string {
	return &s
}

// ColumnCount returns the number of headers.
func (t Table) ColumnCount() int {
	return len(t.Headers)
}

// Cell returns the cell at row r, column c, or nil when the cell is missing.
func (t Table) Cell(r, c int) *string {
	if r < 0 || r >= len(t.Rows) {
		return nil
	}
	row := t.Rows[r]
	if c < 0 || c >= len(row) {
		return nil
	}
	return row[c]
}

// DisplayName returns the table name, or "Table {i+1}" when it has none.
func (t Table) DisplayName(i int) string {
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("Table %d", i+1)
}

// NewTableID returns a fresh opaque table identifier.
func NewTableID() string {
	return uuid.NewString()
}

// AssignIDs returns a copy of tables where every table without an ID, or with
// an ID already used earlier in the list, gets a fresh one.
func AssignIDs(tables []Table) []Table {
	out := make([]Table, len(tables))
	copy(out, tables)
	seen := make(map[string]bool, len(out))
	for i := range out {
		if out[i].ID == "" || seen[out[i].ID] {
			out[i].ID = NewTableID()
		}
		seen[out[i].ID] = true
	}
	return out
}

// IndexByID maps table IDs to their positions in tables.
// Tables without an ID are skipped.
func IndexByID(tables []Table) map[string]int {
	idx := make(map[string]int, len(tables))
	for i, t := range tables {
		if t.ID != "" {
			idx[t.ID] = i
		}
	}
	return idx
}
