package optimizer

import (
	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
)

const (
	// CombinedTableName is the name given to merged tables.
	CombinedTableName = "Combined Data"
	// SourceHeader is the column prepended to merged tables.
	SourceHeader = "Source"
)

// ApplyCombineSimilar merges the indexed tables into one table with a leading
// Source column and puts it at the position of the smallest index.
// Fewer than two indices, duplicates or out-of-range indices leave tables unchanged.
func ApplyCombineSimilar(tables []models.Table, indices []int) []models.Table {
	if len(indices) < 2 || !validIndices(tables, indices) {
		return tables
	}

	first := tables[indices[0]]
	headers := make([]string, 0, len(first.Headers)+1)
	headers = append(headers, SourceHeader)
	headers = append(headers, first.Headers...)

	var rows [][]*string
	confidence := 0.0
	for _, i := range indices {
		t := tables[i]
		label := sourceLabel(t, i)
		for _, row := range t.Rows {
			merged := make([]*string, 0, len(row)+1)
			merged = append(merged, models.Text(label))
			merged = append(merged, row...)
			rows = append(rows, merged)
		}
		confidence += t.Confidence.Value()
	}

	combined := models.Table{
		ID:         models.NewTableID(),
		Name:       CombinedTableName,
		Headers:    headers,
		Rows:       rows,
		SourceFile: first.SourceFile,
		Page:       first.Page,
		Confidence: models.Scalar(confidence / float64(len(indices))),
	}

	out := without(tables, indices)
	pos := minIndex(indices)
	if pos > len(out) {
		pos = len(out)
	}
	out = append(out, models.Table{})
	copy(out[pos+1:], out[pos:])
	out[pos] = combined
	return out
}

// ApplyRemoveSmall returns tables without the indexed ones, keeping the order of the rest.
// Duplicate or out-of-range indices leave tables unchanged.
func ApplyRemoveSmall(tables []models.Table, indices []int) []models.Table {
	if !validIndices(tables, indices) {
		return tables
	}
	return without(tables, indices)
}

// Apply dispatches s against tables by suggestion type.
// It reports false, returning tables unchanged, when s does not fit tables.
func Apply(s models.Suggestion, tables []models.Table) ([]models.Table, bool) {
	if len(s.TableIndices) == 0 || !validIndices(tables, s.TableIndices) {
		return tables, false
	}
	if s.Type.IsRemoval() {
		return ApplyRemoveSmall(tables, s.TableIndices), true
	}
	if len(s.TableIndices) < 2 {
		return tables, false
	}
	return ApplyCombineSimilar(tables, s.TableIndices), true
}

// Resolve rewrites the indices of s against tables using its table IDs.
// It reports false when any ID is no longer present; a suggestion without IDs is
// returned as is.
func Resolve(s models.Suggestion, tables []models.Table) (models.Suggestion, bool) {
	if len(s.TableIDs) == 0 {
		return s, validIndices(tables, s.TableIndices)
	}
	byID := models.IndexByID(tables)
	indices := make([]int, len(s.TableIDs))
	for k, id := range s.TableIDs {
		i, ok := byID[id]
		if !ok {
			return s, false
		}
		indices[k] = i
	}
	s.TableIndices = indices
	return s, true
}

func validIndices(tables []models.Table, indices []int) bool {
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(tables) || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}

func without(tables []models.Table, indices []int) []models.Table {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	out := make([]models.Table, 0, len(tables))
	for i, t := range tables {
		if !drop[i] {
			out = append(out, t)
		}
	}
	return out
}

func minIndex(indices []int) int {
	m := indices[0]
	for _, i := range indices[1:] {
		if i < m {
			m = i
		}
	}
	return m
}
