package models

import "time"

// AppliedChange is a recorded, undoable transformation of the table list.
type AppliedChange struct {
	// ID identifies the change within its history.
	ID string `json:"id"`
	// Type is the type of the applied suggestion.
	Type SuggestionType `json:"type"`
	// Title is the applied suggestion's title.
	Title string `json:"title"`
	// Description is a human-readable summary of the change.
	Description string `json:"description"`
	// Timestamp is when the change was applied.
	Timestamp time.Time `json:"timestamp"`
	// TablesBeforeCount is the table count before the change.
	TablesBeforeCount int `json:"tables_before_count"`
	// TablesAfterCount is the table count after the change.
	TablesAfterCount int `json:"tables_after_count"`
	// AffectedTableNames lists the first affected table names.
	AffectedTableNames []string `json:"affected_table_names"`
	// PreviousTables is a snapshot of the table list before the change.
	// It is owned by the history entry.
	PreviousTables []Table `json:"previous_tables"`
}
