package models

// SuggestionType identifies the transformation a suggestion proposes.
type SuggestionType string

const (
	// SuggestionCombineSimilar merges structurally similar tables.
	SuggestionCombineSimilar SuggestionType = "combine_similar"
	// SuggestionMergePricing merges pricing tables.
	SuggestionMergePricing SuggestionType = "merge_pricing"
	// SuggestionRemoveSmall removes tables with very few data rows.
	SuggestionRemoveSmall SuggestionType = "remove_small"
	// SuggestionConsolidateDetails merges tables sharing a structure or base name.
	SuggestionConsolidateDetails SuggestionType = "consolidate_details"
)

// IsRemoval reports whether applying the suggestion removes tables instead of merging them.
func (t SuggestionType) IsRemoval() bool {
	return t == SuggestionRemoveSmall
}

// Priority ranks suggestions for presentation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns 0 for high, 1 for medium and 2 for low priority.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Suggestion is a proposed, not yet applied, change to a table list.
// It is only valid for the table list it was generated from.
type Suggestion struct {
	// ID is unique within one analysis.
	ID string `json:"id"`
	// Type is the proposed transformation.
	Type SuggestionType `json:"type"`
	// Title is a short human-readable label.
	Title string `json:"title"`
	// Description explains the suggestion.
	Description string `json:"description"`
	// Impact describes the effect on the table count.
	Impact string `json:"impact"`
	// TableIndices are positions in the analyzed table list.
	TableIndices []int `json:"table_indices"`
	// TableIDs are the IDs of the same tables, when the tables carry IDs.
	TableIDs []string `json:"table_ids,omitempty"`
	// Priority ranks the suggestion.
	Priority Priority `json:"priority"`
}
