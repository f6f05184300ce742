package optimizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
)

// Thresholds holds the size limits used by the suggestion generator.
type Thresholds struct {
	// MinGroupSize is the smallest structure group worth merging.
	MinGroupSize int
	// HighPriorityGroupSize promotes detail-table merges to high priority.
	HighPriorityGroupSize int
	// SmallTableMaxRows is the largest data row count of a "small" table.
	SmallTableMaxRows int
	// MinSmallTables is the number of small tables needed for a removal suggestion.
	MinSmallTables int
	// NameFallbackMinTables enables name grouping when nothing else matched.
	NameFallbackMinTables int
	// NameFallbackMinGroup is the smallest name group worth consolidating.
	NameFallbackMinGroup int
	// NameFallbackMinBaseLen is the base name length a name group must exceed.
	NameFallbackMinBaseLen int
	// TwoColumnMinTables triggers the two-column catch-all suggestion.
	TwoColumnMinTables int
}

// DefaultThresholds returns default generator thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinGroupSize:           3,
		HighPriorityGroupSize:  5,
		SmallTableMaxRows:      2,
		MinSmallTables:         3,
		NameFallbackMinTables:  10,
		NameFallbackMinGroup:   2,
		NameFallbackMinBaseLen: 3,
		TwoColumnMinTables:     5,
	}
}

// Generator produces ranked optimization suggestions for a table list.
type Generator struct {
	keywords   Keywords
	classifier *Classifier
	thresholds Thresholds
}

// NewGenerator creates a generator using kw for classification.
func NewGenerator(kw Keywords, th Thresholds) *Generator {
	return &Generator{
		keywords:   kw,
		classifier: NewClassifier(kw),
		thresholds: th,
	}
}

// Analyze runs a default generator over tables.
func Analyze(tables []models.Table) models.AnalysisResult {
	return NewGenerator(DefaultKeywords(), DefaultThresholds()).Analyze(tables)
}

// group is a set of table indices sharing a key, in first-seen order.
type group struct {
	key     string
	members []int
}

func groupBy(indices []int, key func(i int) string) []group {
	var groups []group
	pos := make(map[string]int)
	for _, i := range indices {
		k := key(i)
		if p, ok := pos[k]; ok {
			groups[p].members = append(groups[p].members, i)
			continue
		}
		pos[k] = len(groups)
		groups = append(groups, group{key: k, members: []int{i}})
	}
	return groups
}

// Analyze returns the suggestions and statistics for tables.
// The result is deterministic for a given list.
func (g *Generator) Analyze(tables []models.Table) models.AnalysisResult {
	th := g.thresholds
	all := make([]int, len(tables))
	for i := range tables {
		all[i] = i
	}

	var suggestions []models.Suggestion

	// Exact structure groups.
	exact := groupBy(all, func(i int) string { return ExactSignature(tables[i]) })
	claimed := make(map[int]bool)
	for _, grp := range exact {
		if len(grp.members) < th.MinGroupSize {
			continue
		}
		suggestions = append(suggestions, g.exactGroupSuggestion(tables, grp.members))
		for _, i := range grp.members {
			claimed[i] = true
		}
	}

	// Fuzzy structure groups over what exact grouping left.
	var rest []int
	for _, i := range all {
		if !claimed[i] {
			rest = append(rest, i)
		}
	}
	for _, grp := range groupBy(rest, func(i int) string { return FuzzySignature(tables[i], g.keywords) }) {
		if len(grp.members) < th.MinGroupSize {
			continue
		}
		n := len(grp.members)
		switch grp.key {
		case FuzzyDetailPair:
			suggestions = append(suggestions, models.Suggestion{
				Type:         models.SuggestionCombineSimilar,
				Title:        fmt.Sprintf("Combine %d aspect/detail tables", n),
				Description:  fmt.Sprintf("%d tables pair aspects with details under slightly different headers. Combine them into one table with a Source column.", n),
				Impact:       mergeImpact(n),
				TableIndices: grp.members,
				Priority:     models.PriorityHigh,
			})
		case FuzzyKeyValue:
			suggestions = append(suggestions, models.Suggestion{
				Type:         models.SuggestionCombineSimilar,
				Title:        fmt.Sprintf("Combine %d key-value tables", n),
				Description:  fmt.Sprintf("%d two-column tables look like key-value lists. Combine them into one table with a Source column.", n),
				Impact:       mergeImpact(n),
				TableIndices: grp.members,
				Priority:     models.PriorityMedium,
			})
		}
	}

	// Small tables, over the whole list.
	var small []int
	for i, t := range tables {
		if len(t.Rows) <= th.SmallTableMaxRows {
			small = append(small, i)
		}
	}
	if len(small) >= th.MinSmallTables {
		suggestions = append(suggestions, models.Suggestion{
			Type:         models.SuggestionRemoveSmall,
			Title:        fmt.Sprintf("Remove %d small tables", len(small)),
			Description:  fmt.Sprintf("%d tables have %d or fewer data rows and are often extraction fragments.", len(small), th.SmallTableMaxRows),
			Impact:       fmt.Sprintf("%d fewer tables", len(small)),
			TableIndices: small,
			Priority:     models.PriorityLow,
		})
	}

	// Name-based fallback when structure found nothing.
	if len(suggestions) == 0 && len(tables) >= th.NameFallbackMinTables {
		names := groupBy(all, func(i int) string { return baseName(tables[i].Name) })
		for _, grp := range names {
			if len(grp.members) < th.NameFallbackMinGroup || len([]rune(grp.key)) <= th.NameFallbackMinBaseLen {
				continue
			}
			n := len(grp.members)
			suggestions = append(suggestions, models.Suggestion{
				Type:         models.SuggestionConsolidateDetails,
				Title:        fmt.Sprintf("Consolidate %d %q tables", n, tables[grp.members[0]].Name),
				Description:  fmt.Sprintf("%d tables share the name %q across pages.", n, grp.key),
				Impact:       mergeImpact(n),
				TableIndices: grp.members,
				Priority:     models.PriorityLow,
			})
		}
	}

	// Two-column catch-all.
	var twoCol []int
	for i, t := range tables {
		if len(t.Headers) == 2 {
			twoCol = append(twoCol, i)
		}
	}
	if len(twoCol) >= th.TwoColumnMinTables && !coversAtLeast(suggestions, th.TwoColumnMinTables) {
		n := len(twoCol)
		suggestions = append(suggestions, models.Suggestion{
			Type:         models.SuggestionCombineSimilar,
			Title:        fmt.Sprintf("Combine all %d two-column tables", n),
			Description:  fmt.Sprintf("The document has %d two-column tables. Combine them into one table with a Source column.", n),
			Impact:       mergeImpact(n),
			TableIndices: twoCol,
			Priority:     models.PriorityMedium,
		})
	}

	sort.SliceStable(suggestions, func(a, b int) bool {
		return suggestions[a].Priority.Rank() < suggestions[b].Priority.Rank()
	})
	for i := range suggestions {
		suggestions[i].ID = fmt.Sprintf("%s_%d", suggestions[i].Type, i+1)
		suggestions[i].TableIDs = tableIDs(tables, suggestions[i].TableIndices)
	}

	stats := models.Stats{
		TotalTables:      len(tables),
		UniqueStructures: len(exact),
		SmallTables:      len(small),
	}
	for _, s := range suggestions {
		if !s.Type.IsRemoval() {
			stats.PotentialMerges += len(s.TableIndices) - 1
		}
	}

	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}
	return models.AnalysisResult{Suggestions: suggestions, Stats: stats}
}

// exactGroupSuggestion classifies the group's first table and builds the matching suggestion.
func (g *Generator) exactGroupSuggestion(tables []models.Table, members []int) models.Suggestion {
	rep := tables[members[0]]
	n := len(members)
	columns := strings.Join(rep.Headers, ", ")

	s := models.Suggestion{
		Impact:       mergeImpact(n),
		TableIndices: members,
	}
	switch {
	case g.classifier.IsPricingTable(rep):
		s.Type = models.SuggestionMergePricing
		s.Title = fmt.Sprintf("Merge %d pricing tables", n)
		s.Description = fmt.Sprintf("%d tables with the columns %s contain prices. Merge them into one price list.", n, columns)
		s.Priority = models.PriorityHigh
	case g.classifier.IsDetailTable(rep):
		s.Type = models.SuggestionCombineSimilar
		s.Title = fmt.Sprintf("Combine %d detail tables", n)
		s.Description = fmt.Sprintf("%d tables with the columns %s list details. Combine them into one table with a Source column.", n, columns)
		s.Priority = models.PriorityMedium
		if n >= g.thresholds.HighPriorityGroupSize {
			s.Priority = models.PriorityHigh
		}
	default:
		s.Type = models.SuggestionConsolidateDetails
		s.Title = fmt.Sprintf("Consolidate %d tables with identical columns", n)
		s.Description = fmt.Sprintf("%d tables share the columns %s.", n, columns)
		s.Priority = models.PriorityMedium
	}
	return s
}

func mergeImpact(n int) string {
	return fmt.Sprintf("%d tables become 1", n)
}

func coversAtLeast(suggestions []models.Suggestion, n int) bool {
	for _, s := range suggestions {
		if len(s.TableIndices) >= n {
			return true
		}
	}
	return false
}

// tableIDs returns the IDs of the indexed tables, or nil if any of them has none.
func tableIDs(tables []models.Table, indices []int) []string {
	ids := make([]string, 0, len(indices))
	for _, i := range indices {
		if tables[i].ID == "" {
			return nil
		}
		ids = append(ids, tables[i].ID)
	}
	return ids
}
