package models

// Stats summarizes an analysis.
type Stats struct {
	// TotalTables is the number of analyzed tables.
	TotalTables int `json:"total_tables"`
	// UniqueStructures is the number of distinct exact signatures.
	UniqueStructures int `json:"unique_structures"`
	// SmallTables is the number of tables with few data rows.
	SmallTables int `json:"small_tables"`
	// PotentialMerges is an upper bound on the table-count reduction from all merge
	// suggestions. Tables appearing in several suggestions are counted each time.
	PotentialMerges int `json:"potential_merges"`
}

// AnalysisResult is the output of the suggestion generator.
type AnalysisResult struct {
	// Suggestions is ordered by priority, then generation order.
	Suggestions []Suggestion `json:"suggestions"`
	// Stats summarizes the analyzed list.
	Stats Stats `json:"stats"`
}

// Find returns the suggestion with the given ID.
func (r AnalysisResult) Find(id string) (Suggestion, bool) {
	for _, s := range r.Suggestions {
		if s.ID == id {
			return s, true
		}
	}
	return Suggestion{}, false
}
