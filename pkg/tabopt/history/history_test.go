package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/optimizer"
)

func detailTables(n int) []models.Table {
	tables := make([]models.Table, n)
	for i := range tables {
		tables[i] = models.Table{
			Name:       fmt.Sprintf("Specs (P%d)", i+1),
			Headers:    []string{"Aspekt", "Detalj"},
			Rows:       [][]*string{{models.Text(fmt.Sprintf("a%d", i)), models.Text(fmt.Sprintf("d%d", i))}},
			Page:       i + 1,
			Confidence: models.Scalar(0.9),
		}
	}
	return models.AssignIDs(tables)
}

func suggestionOf(t *testing.T, tables []models.Table, typ models.SuggestionType) models.Suggestion {
	t.Helper()
	for _, s := range optimizer.Analyze(tables).Suggestions {
		if s.Type == typ {
			return s
		}
	}
	t.Fatalf("no %s suggestion", typ)
	return models.Suggestion{}
}

func TestApplyAndRecord(t *testing.T) {
	t.Run("Merge", func(t *testing.T) {
		m := NewManager()
		current := detailTables(4)
		s := suggestionOf(t, current, models.SuggestionCombineSimilar)

		next, ok := m.ApplyAndRecord(s, current)
		require.True(t, ok)
		require.Len(t, next, 1)

		change, ok := m.Last()
		require.True(t, ok)
		assert.NotEmpty(t, change.ID)
		assert.Equal(t, models.SuggestionCombineSimilar, change.Type)
		assert.Equal(t, s.Title, change.Title)
		assert.Equal(t, 4, change.TablesBeforeCount)
		assert.Equal(t, change.TablesBeforeCount-len(s.TableIndices)+1, change.TablesAfterCount)
		assert.Contains(t, change.Description, "Merged 4 tables")
		assert.Equal(t, []string{"Specs (P1)", "Specs (P2)", "Specs (P3)", "Specs (P4)"}, change.AffectedTableNames)
		assert.Equal(t, current, change.PreviousTables)
		assert.False(t, change.Timestamp.IsZero())
	})

	t.Run("Remove", func(t *testing.T) {
		m := NewManager()
		current := detailTables(4)
		s := suggestionOf(t, current, models.SuggestionRemoveSmall)

		next, ok := m.ApplyAndRecord(s, current)
		require.True(t, ok)
		assert.Empty(t, next)

		change, _ := m.Last()
		assert.Equal(t, change.TablesBeforeCount-len(s.TableIndices), change.TablesAfterCount)
		assert.Contains(t, change.Description, "Removed 4 tables")
	})

	t.Run("Stale suggestion", func(t *testing.T) {
		m := NewManager()
		current := detailTables(2)
		s := models.Suggestion{Type: models.SuggestionCombineSimilar, TableIndices: []int{0, 5}}

		next, ok := m.ApplyAndRecord(s, current)
		assert.False(t, ok)
		assert.Equal(t, current, next)
		assert.Equal(t, 0, m.Len())
	})
}

func TestApplyAndRecord_SnapshotIsIndependent(t *testing.T) {
	m := NewManager()
	current := detailTables(4)
	s := suggestionOf(t, current, models.SuggestionCombineSimilar)

	_, ok := m.ApplyAndRecord(s, current)
	require.True(t, ok)

	current[0].Headers[0] = "Mutated"
	current[1].Name = "Renamed"

	change, _ := m.Last()
	assert.Equal(t, "Aspekt", change.PreviousTables[0].Headers[0])
	assert.Equal(t, "Specs (P2)", change.PreviousTables[1].Name)
}

func TestAffectedNames(t *testing.T) {
	tables := make([]models.Table, 11)
	for i := range tables {
		if i != 1 {
			tables[i].Name = fmt.Sprintf("T%d", i)
		}
	}
	indices := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	names := affectedNames(tables, indices)
	assert.Equal(t, []string{"T0", "Table 2", "T2", "T3", "T4", "T5", "T6", "T7", "+3 more"}, names)

	assert.Equal(t, []string{"T3"}, affectedNames(tables, []int{3}))
}

func TestUndo(t *testing.T) {
	m := NewManager()
	original := detailTables(6)

	// Remove small tables, then merge whatever is left twice over.
	step1 := models.Suggestion{Type: models.SuggestionRemoveSmall, TableIndices: []int{5}}
	list1, ok := m.ApplyAndRecord(step1, original)
	require.True(t, ok)

	step2 := models.Suggestion{Type: models.SuggestionCombineSimilar, TableIndices: []int{0, 1}}
	list2, ok := m.ApplyAndRecord(step2, list1)
	require.True(t, ok)

	step3 := models.Suggestion{Type: models.SuggestionCombineSimilar, TableIndices: []int{1, 2}}
	_, ok = m.ApplyAndRecord(step3, list2)
	require.True(t, ok)
	require.Equal(t, 3, m.Len())

	changes := m.Changes()

	t.Run("Unknown id", func(t *testing.T) {
		restored, ok := m.Undo("missing")
		assert.False(t, ok)
		assert.Nil(t, restored)
		assert.Equal(t, 3, m.Len())
	})

	t.Run("Undo middle change truncates later ones", func(t *testing.T) {
		restored, ok := m.Undo(changes[1].ID)
		require.True(t, ok)
		assert.Equal(t, list1, restored)
		assert.Equal(t, 1, m.Len())

		_, ok = m.Undo(changes[2].ID)
		assert.False(t, ok, "truncated change must be unreachable")
	})

	t.Run("Undo last remaining change", func(t *testing.T) {
		restored, ok := m.Undo(changes[0].ID)
		require.True(t, ok)
		assert.Equal(t, original, restored)
		assert.Equal(t, 0, m.Len())
	})
}

func TestUndoAll(t *testing.T) {
	m := NewManager()

	_, ok := m.UndoAll()
	assert.False(t, ok, "empty history")

	original := detailTables(8)
	current := original
	for i := 0; i < 3; i++ {
		var applied bool
		current, applied = m.ApplyAndRecord(models.Suggestion{
			Type:         models.SuggestionCombineSimilar,
			TableIndices: []int{0, 1},
		}, current)
		require.True(t, applied)
	}
	require.Len(t, current, 5)

	restored, ok := m.UndoAll()
	require.True(t, ok)
	assert.Equal(t, original, restored)
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Changes())
}

func TestRestore(t *testing.T) {
	m := NewManager()
	current := detailTables(3)
	_, ok := m.ApplyAndRecord(models.Suggestion{Type: models.SuggestionRemoveSmall, TableIndices: []int{0}}, current)
	require.True(t, ok)

	restored := Restore(m.Changes())
	require.Equal(t, 1, restored.Len())

	tables, ok := restored.UndoAll()
	require.True(t, ok)
	assert.Equal(t, current, tables)
	assert.Equal(t, 1, m.Len(), "original history untouched")
}
