// Package history records applied suggestions as undoable snapshots.
package history

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/logging"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/optimizer"
)

// MaxAffectedNames is the number of table names kept in an AppliedChange.
const MaxAffectedNames = 8

// Manager holds the ordered list of applied changes.
// It is not safe for concurrent use.
type Manager struct {
	changes []models.AppliedChange
}

// NewManager returns an empty history.
func NewManager() *Manager {
	return &Manager{}
}

// Restore returns a history holding changes, oldest first.
func Restore(changes []models.AppliedChange) *Manager {
	m := &Manager{}
	m.changes = append(m.changes, changes...)
	return m
}

// Changes returns the recorded changes, oldest first.
// The snapshots are owned by the history and must not be modified.
func (m *Manager) Changes() []models.AppliedChange {
	out := make([]models.AppliedChange, len(m.changes))
	copy(out, m.changes)
	return out
}

// Len returns the number of recorded changes.
func (m *Manager) Len() int {
	return len(m.changes)
}

// Last returns the most recent change.
func (m *Manager) Last() (models.AppliedChange, bool) {
	if len(m.changes) == 0 {
		return models.AppliedChange{}, false
	}
	return m.changes[len(m.changes)-1], true
}

// ApplyAndRecord applies s to current and records the transition.
// It returns the new table list and true, or current and false when s does not
// fit current (stale indices or too few tables to merge).
func (m *Manager) ApplyAndRecord(s models.Suggestion, current []models.Table) ([]models.Table, bool) {
	next, ok := optimizer.Apply(s, current)
	if !ok {
		logging.Logger().Debug("suggestion not applicable", slog.String("suggestion", s.ID))
		return current, false
	}

	prev, err := snapshot(current)
	if err != nil {
		logging.Logger().Warn("snapshot failed", slog.String("suggestion", s.ID), slog.Any("error", err))
		return current, false
	}

	change := models.AppliedChange{
		ID:                 uuid.NewString(),
		Type:               s.Type,
		Title:              s.Title,
		Description:        describe(s),
		Timestamp:          time.Now(),
		TablesBeforeCount:  len(current),
		TablesAfterCount:   len(next),
		AffectedTableNames: affectedNames(current, s.TableIndices),
		PreviousTables:     prev,
	}
	m.changes = append(m.changes, change)

	logging.Logger().Debug("change recorded",
		slog.String("change", change.ID),
		slog.String("type", string(change.Type)),
		slog.Int("before", change.TablesBeforeCount),
		slog.Int("after", change.TablesAfterCount))
	return next, true
}

// Undo restores the table list captured before the change with the given ID and
// drops that change and every later one. It reports false if no change has that ID.
func (m *Manager) Undo(id string) ([]models.Table, bool) {
	for i, c := range m.changes {
		if c.ID != id {
			continue
		}
		m.changes = m.changes[:i:i]
		logging.Logger().Debug("change undone", slog.String("change", id), slog.Int("remaining", i))
		return c.PreviousTables, true
	}
	return nil, false
}

// UndoAll restores the table list captured before the first change and clears
// the history. It reports false if the history is empty.
func (m *Manager) UndoAll() ([]models.Table, bool) {
	if len(m.changes) == 0 {
		return nil, false
	}
	first := m.changes[0]
	m.changes = nil
	logging.Logger().Debug("all changes undone", slog.String("restored_to", first.ID))
	return first.PreviousTables, true
}

func snapshot(tables []models.Table) ([]models.Table, error) {
	var out []models.Table
	if err := deepcopy.Copy(&out, tables); err != nil {
		return nil, fmt.Errorf("copy tables: %w", err)
	}
	if out == nil {
		out = []models.Table{}
	}
	return out, nil
}

func describe(s models.Suggestion) string {
	n := len(s.TableIndices)
	if s.Type.IsRemoval() {
		return fmt.Sprintf("Removed %d tables", n)
	}
	return fmt.Sprintf("Merged %d tables into %q", n, optimizer.CombinedTableName)
}

// affectedNames returns the display names of the first MaxAffectedNames indexed
// tables, followed by a "+N more" entry when there are more.
func affectedNames(tables []models.Table, indices []int) []string {
	names := make([]string, 0, MaxAffectedNames+1)
	for k, i := range indices {
		if k == MaxAffectedNames {
			names = append(names, fmt.Sprintf("+%d more", len(indices)-MaxAffectedNames))
			break
		}
		names = append(names, tables[i].DisplayName(i))
	}
	return names
}
