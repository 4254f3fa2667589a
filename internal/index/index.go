// Package index stores a backlog in a SQLite database so it can be queried
// without re-reading every task file.
//
// The database is derived data: every [Write] drops and recreates the
// schema inside one transaction, so readers see either the previous scan or
// the new one.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/calvinalkan/taskscan/internal/backlog"
	"github.com/calvinalkan/taskscan/internal/fs"
)

// schemaVersion is stored in SQLite's user_version pragma.
// Increment this whenever the schema changes (tables, columns, indices).
const schemaVersion = 1

// sqliteBusyTimeout is the time SQLite waits when the database is locked.
const sqliteBusyTimeout = 10000 // milliseconds

// Error variables for index operations.
var (
	ErrIndexNotFound  = errors.New("index not found")
	ErrSchemaMismatch = errors.New("index schema version mismatch")
)

func open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("open sqlite: path is empty")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		PRAGMA busy_timeout = %d;
		PRAGMA synchronous = FULL;
		PRAGMA temp_store = MEMORY;
	`, sqliteBusyTimeout))
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	return db, nil
}

// Write replaces the contents of the index at path with b and returns the
// number of rows written. Parent directories are created.
func Write(ctx context.Context, fsys fs.FS, path string, b *backlog.Backlog) (int, error) {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create index dir: %w", err)
	}

	db, err := open(ctx, path)
	if err != nil {
		return 0, err
	}

	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin rebuild txn: %w", err)
	}

	committed := false

	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := recreateSchema(ctx, tx); err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx, "INSERT INTO scan (generated_at) VALUES (?)", b.GeneratedAt.Format(backlog.TimestampLayout))
	if err != nil {
		return 0, fmt.Errorf("insert scan row: %w", err)
	}

	insertTask, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (
			uid,
			seq,
			project,
			file,
			line,
			task_id,
			title,
			priority,
			status,
			section,
			subsection,
			scope_depth
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}

	defer func() { _ = insertTask.Close() }()

	for i := range b.Items {
		t := &b.Items[i]

		taskID := sql.NullString{}
		if t.ID != nil {
			taskID = sql.NullString{String: *t.ID, Valid: true}
		}

		_, err = insertTask.ExecContext(
			ctx,
			t.UID,
			i,
			t.Project,
			t.File,
			t.Line,
			taskID,
			t.Title,
			string(t.Priority),
			string(t.Status),
			nullable(t.Scope.Section, t.Scope.Depth >= 1),
			nullable(t.Scope.Subsection, t.Scope.Depth >= 2),
			t.Scope.Depth,
		)
		if err != nil {
			return 0, fmt.Errorf("insert task %s (%s:%d): %w", t.UID, t.File, t.Line, err)
		}
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	if err != nil {
		return 0, fmt.Errorf("set user_version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit rebuild txn: %w", err)
	}

	committed = true

	return len(b.Items), nil
}

func nullable(s string, valid bool) sql.NullString {
	return sql.NullString{String: s, Valid: valid}
}

func recreateSchema(ctx context.Context, tx *sql.Tx) error {
	statements := []string{
		"DROP TABLE IF EXISTS tasks",
		"DROP TABLE IF EXISTS scan",
		`CREATE TABLE scan (
			generated_at TEXT NOT NULL
		)`,
		`CREATE TABLE tasks (
			uid TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			project TEXT NOT NULL,
			file TEXT NOT NULL,
			line INTEGER NOT NULL,
			task_id TEXT,
			title TEXT NOT NULL,
			priority TEXT NOT NULL,
			status TEXT NOT NULL,
			section TEXT,
			subsection TEXT,
			scope_depth INTEGER NOT NULL
		) WITHOUT ROWID`,
		"CREATE INDEX idx_status_priority ON tasks(status, priority)",
		"CREATE INDEX idx_project ON tasks(project)",
		"CREATE INDEX idx_seq ON tasks(seq)",
	}

	for i, stmt := range statements {
		_, err := tx.ExecContext(ctx, stmt)
		if err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}

	return nil
}

// openExisting opens an index written by [Write]. A missing file returns
// [ErrIndexNotFound] instead of creating an empty database.
func openExisting(ctx context.Context, fsys fs.FS, path string) (*sql.DB, error) {
	exists, err := fsys.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("stat index: %w", err)
	}

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, path)
	}

	db, err := open(ctx, path)
	if err != nil {
		return nil, err
	}

	var version int

	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("read user_version: %w", err)
	}

	if version != schemaVersion {
		_ = db.Close()

		return nil, fmt.Errorf("%w: have %d, want %d", ErrSchemaMismatch, version, schemaVersion)
	}

	return db, nil
}

// GeneratedAt returns the generation time of the scan stored at path.
func GeneratedAt(ctx context.Context, fsys fs.FS, path string) (time.Time, error) {
	db, err := openExisting(ctx, fsys, path)
	if err != nil {
		return time.Time{}, err
	}

	defer func() { _ = db.Close() }()

	var raw string

	if err := db.QueryRowContext(ctx, "SELECT generated_at FROM scan LIMIT 1").Scan(&raw); err != nil {
		return time.Time{}, fmt.Errorf("read scan row: %w", err)
	}

	ts, err := time.Parse(backlog.TimestampLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse generated_at %q: %w", raw, err)
	}

	return ts, nil
}
