package tabopt

import (
	"log/slog"
	"sync"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/history"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/logging"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/optimizer"
)

// Session owns the current table list and its change history.
// The current list is replaced, never modified, on every change.
// Session is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	generator *optimizer.Generator
	tables    []models.Table
	history   *history.Manager
}

// NewSession starts a session over tables. Tables without an ID get one.
func NewSession(tables []models.Table, opts Options) *Session {
	return RestoreSession(tables, nil, opts)
}

// RestoreSession resumes a session from a saved table list and history.
func RestoreSession(tables []models.Table, changes []models.AppliedChange, opts Options) *Session {
	return &Session{
		generator: optimizer.NewGenerator(opts.keywords(), opts.thresholds()),
		tables:    models.AssignIDs(tables),
		history:   history.Restore(changes),
	}
}

// Tables returns the current table list.
// The returned tables must be treated as read-only.
func (s *Session) Tables() []models.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tablesLocked()
}

func (s *Session) tablesLocked() []models.Table {
	out := make([]models.Table, len(s.tables))
	copy(out, s.tables)
	return out
}

// History returns the applied changes, oldest first.
func (s *Session) History() []models.AppliedChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Changes()
}

// Analyze returns suggestions for the current table list.
func (s *Session) Analyze() models.AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzeLocked()
}

func (s *Session) analyzeLocked() models.AnalysisResult {
	result := s.generator.Analyze(s.tables)
	logging.Logger().Debug("tables analyzed",
		slog.Int("tables", result.Stats.TotalTables),
		slog.Int("structures", result.Stats.UniqueStructures),
		slog.Int("suggestions", len(result.Suggestions)),
		slog.Int("potential_merges", result.Stats.PotentialMerges))
	return result
}

// Apply applies sg to the current list and records the change, returning the
// current list. Suggestions carrying table IDs are matched by ID; it reports
// false when sg is stale, leaving the session unchanged.
func (s *Session) Apply(sg models.Suggestion) ([]models.Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := s.applyLocked(sg)
	return s.tablesLocked(), applied
}

func (s *Session) applyLocked(sg models.Suggestion) bool {
	resolved, ok := optimizer.Resolve(sg, s.tables)
	if !ok {
		logging.Logger().Debug("stale suggestion ignored", slog.String("suggestion", sg.ID))
		return false
	}

	next, ok := s.history.ApplyAndRecord(resolved, s.tables)
	if !ok {
		return false
	}
	s.tables = next
	return true
}

// ApplyByID analyzes the current list and applies its suggestion with the given ID.
func (s *Session) ApplyByID(id string) (models.AppliedChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sg, found := s.analyzeLocked().Find(id)
	if !found || !s.applyLocked(sg) {
		return models.AppliedChange{}, ErrSuggestionNotFound
	}
	change, _ := s.history.Last()
	return change, nil
}

// Undo restores the list from before the change with the given ID and discards
// that change and all later ones. Unknown IDs are ignored and reported as false.
func (s *Session) Undo(changeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.history.Undo(changeID)
	if !ok {
		return false
	}
	s.tables = prev
	return true
}

// UndoAll restores the list from before the first change and clears the history.
// It reports false when there is nothing to undo.
func (s *Session) UndoAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.history.UndoAll()
	if !ok {
		return false
	}
	s.tables = prev
	return true
}
