// Package store persists optimization sessions in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/logging"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"

	_ "modernc.org/sqlite"
)

// ErrSessionNotFound indicates no session has the given name.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExists indicates a session with the given name already exists.
var ErrSessionExists = errors.New("session already exists")

// Current schema version
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS sessions (
    name       TEXT PRIMARY KEY,
    created_at INTEGER NOT NULL,      -- UnixNano
    updated_at INTEGER NOT NULL,      -- UnixNano
    tables     TEXT NOT NULL,         -- JSON []models.Table
    warnings   TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS changes (
    id              TEXT PRIMARY KEY,
    session         TEXT NOT NULL REFERENCES sessions(name) ON DELETE CASCADE,
    seq             INTEGER NOT NULL,
    type            TEXT NOT NULL,
    title           TEXT NOT NULL,
    description     TEXT NOT NULL,
    timestamp       INTEGER NOT NULL, -- UnixNano
    before_count    INTEGER NOT NULL,
    after_count     INTEGER NOT NULL,
    affected_names  TEXT NOT NULL,    -- JSON []string
    previous_tables TEXT NOT NULL     -- JSON []models.Table
);

CREATE INDEX IF NOT EXISTS idx_changes_session ON changes(session, seq);
`

// Config configures a Store.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string
	// BusyTimeout is how long a write waits for a lock.
	BusyTimeout time.Duration
}

// DefaultConfig returns the default configuration for the database at path.
func DefaultConfig(path string) Config {
	return Config{
		DBPath:      path,
		BusyTimeout: 5 * time.Second,
	}
}

// Session is a persisted session.
type Session struct {
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Tables    []models.Table
	Warnings  []string
	Changes   []models.AppliedChange
}

// Summary describes a persisted session without its tables.
type Summary struct {
	Name        string    `json:"name"`
	UpdatedAt   time.Time `json:"updated_at"`
	TableCount  int       `json:"table_count"`
	ChangeCount int       `json:"change_count"`
}

// Store is a SQLite-backed session store.
type Store struct {
	db *sql.DB
}

// Open opens the store at path with default settings.
func Open(path string) (*Store, error) {
	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig opens a store, creating the database and schema when needed.
func OpenWithConfig(config Config) (*Store, error) {
	if dir := filepath.Dir(config.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	dsn := config.DBPath +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(WAL)" +
		fmt.Sprintf("&_pragma=busy_timeout(%d)", config.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps pragmas and transactions on the same handle.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// checkSchemaVersion records the schema version of a new database and rejects newer ones.
func checkSchemaVersion(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
		if err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, schemaVersion)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create stores a new session with an empty history.
func (s *Store) Create(ctx context.Context, name string, tables []models.Table, warnings []string) error {
	if tables == nil {
		tables = []models.Table{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	tablesJSON, err := marshal(tables)
	if err != nil {
		return err
	}
	warningsJSON, err := marshal(warnings)
	if err != nil {
		return err
	}

	now := time.Now().UnixNano()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (name, created_at, updated_at, tables, warnings) VALUES (?, ?, ?, ?, ?) ON CONFLICT(name) DO NOTHING",
		name, now, now, tablesJSON, warningsJSON)
	if err != nil {
		return fmt.Errorf("failed to create session %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionExists, name)
	}

	logging.Logger().Debug("session created", slog.String("session", name), slog.Int("tables", len(tables)))
	return nil
}

// Save replaces the tables and history of an existing session.
func (s *Store) Save(ctx context.Context, name string, tables []models.Table, changes []models.AppliedChange) error {
	if tables == nil {
		tables = []models.Table{}
	}
	tablesJSON, err := marshal(tables)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE sessions SET tables = ?, updated_at = ? WHERE name = ?",
		tablesJSON, time.Now().UnixNano(), name)
	if err != nil {
		return fmt.Errorf("failed to update session %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, name)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM changes WHERE session = ?", name); err != nil {
		return fmt.Errorf("failed to clear history of %q: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO changes
		(id, session, seq, type, title, description, timestamp, before_count, after_count, affected_names, previous_tables)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for seq, c := range changes {
		names, err := marshal(c.AffectedTableNames)
		if err != nil {
			return err
		}
		prev, err := marshal(c.PreviousTables)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, c.ID, name, seq, string(c.Type), c.Title, c.Description,
			c.Timestamp.UnixNano(), c.TablesBeforeCount, c.TablesAfterCount, names, prev); err != nil {
			return fmt.Errorf("failed to store change %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session %q: %w", name, err)
	}

	logging.Logger().Debug("session saved",
		slog.String("session", name),
		slog.Int("tables", len(tables)),
		slog.Int("changes", len(changes)))
	return nil
}

// Load reads a session with its history.
func (s *Store) Load(ctx context.Context, name string) (*Session, error) {
	var (
		created, updated int64
		tablesJSON       string
		warningsJSON     string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at, tables, warnings FROM sessions WHERE name = ?", name).
		Scan(&created, &updated, &tablesJSON, &warningsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %q: %w", name, err)
	}

	sess := &Session{
		Name:      name,
		CreatedAt: time.Unix(0, created),
		UpdatedAt: time.Unix(0, updated),
		Changes:   []models.AppliedChange{},
	}
	if err := json.Unmarshal([]byte(tablesJSON), &sess.Tables); err != nil {
		return nil, fmt.Errorf("failed to decode tables of %q: %w", name, err)
	}
	if err := json.Unmarshal([]byte(warningsJSON), &sess.Warnings); err != nil {
		return nil, fmt.Errorf("failed to decode warnings of %q: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, type, title, description, timestamp,
		before_count, after_count, affected_names, previous_tables
		FROM changes WHERE session = ? ORDER BY seq`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load history of %q: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c     models.AppliedChange
			typ   string
			ts    int64
			names string
			prev  string
		)
		if err := rows.Scan(&c.ID, &typ, &c.Title, &c.Description, &ts,
			&c.TablesBeforeCount, &c.TablesAfterCount, &names, &prev); err != nil {
			return nil, fmt.Errorf("failed to scan change: %w", err)
		}
		c.Type = models.SuggestionType(typ)
		c.Timestamp = time.Unix(0, ts)
		if err := json.Unmarshal([]byte(names), &c.AffectedTableNames); err != nil {
			return nil, fmt.Errorf("failed to decode change %s: %w", c.ID, err)
		}
		if err := json.Unmarshal([]byte(prev), &c.PreviousTables); err != nil {
			return nil, fmt.Errorf("failed to decode change %s: %w", c.ID, err)
		}
		sess.Changes = append(sess.Changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history of %q: %w", name, err)
	}

	return sess, nil
}

// List returns summaries of all sessions, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT s.name, s.updated_at, COALESCE(json_array_length(s.tables), 0),
		(SELECT COUNT(*) FROM changes c WHERE c.session = s.name)
		FROM sessions s ORDER BY s.updated_at DESC, s.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			updated int64
		)
		if err := rows.Scan(&sum.Name, &updated, &sum.TableCount, &sum.ChangeCount); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sum.UpdatedAt = time.Unix(0, updated)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes a session and its history.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete session %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, name)
	}
	return nil
}

func marshal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode: %w", err)
	}
	return string(data), nil
}
