package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"taskpad/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	position INTEGER PRIMARY KEY,
	text     TEXT    NOT NULL,
	done     INTEGER NOT NULL DEFAULT 0
)`

// SQLiteGateway stores the snapshot as rows of a single table, one row per
// task, ordered by position. Save rewrites the table in one transaction.
type SQLiteGateway struct {
	path string
	db   *sql.DB
}

func OpenSQLite(path string) (*SQLiteGateway, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &SQLiteGateway{path: path, db: db}, nil
}

func (g *SQLiteGateway) Path() string { return g.path }

func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

func (g *SQLiteGateway) migrate() error {
	var version int
	if err := g.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version > SnapshotVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	if _, err := g.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if version == 0 {
		if _, err := g.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SnapshotVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}

func (g *SQLiteGateway) Load() ([]models.Task, error) {
	if _, err := os.Stat(g.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Task{}, nil
		}
		return nil, &LoadError{Path: g.path, Err: fmt.Errorf("stat: %w", err)}
	}
	if err := g.migrate(); err != nil {
		return nil, &LoadError{Path: g.path, Err: err}
	}

	rows, err := g.db.Query(`SELECT text, done FROM tasks ORDER BY position`)
	if err != nil {
		return nil, &LoadError{Path: g.path, Err: fmt.Errorf("query tasks: %w", err)}
	}
	defer rows.Close()

	snap := Snapshot{Version: SnapshotVersion, Tasks: make([]Record, 0)}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Text, &r.Done); err != nil {
			return nil, &LoadError{Path: g.path, Err: fmt.Errorf("scan task: %w", err)}
		}
		snap.Tasks = append(snap.Tasks, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Path: g.path, Err: fmt.Errorf("iterate tasks: %w", err)}
	}
	if err := snap.Validate(); err != nil {
		return nil, &LoadError{Path: g.path, Err: err}
	}
	return snap.ToTasks(), nil
}

func (g *SQLiteGateway) Save(tasks []models.Task) error {
	if err := g.migrate(); err != nil {
		return &SaveError{Path: g.path, Err: err}
	}
	snap := NewSnapshot(tasks)

	tx, err := g.db.Begin()
	if err != nil {
		return &SaveError{Path: g.path, Err: fmt.Errorf("begin: %w", err)}
	}
	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		_ = tx.Rollback()
		return &SaveError{Path: g.path, Err: fmt.Errorf("clear tasks: %w", err)}
	}
	stmt, err := tx.Prepare(`INSERT INTO tasks (position, text, done) VALUES (?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return &SaveError{Path: g.path, Err: fmt.Errorf("prepare insert: %w", err)}
	}
	defer stmt.Close()

	for i, r := range snap.Tasks {
		if _, err := stmt.Exec(i+1, r.Text, r.Done); err != nil {
			_ = tx.Rollback()
			return &SaveError{Path: g.path, Err: fmt.Errorf("insert task %d: %w", i+1, err)}
		}
	}
	if err := tx.Commit(); err != nil {
		return &SaveError{Path: g.path, Err: fmt.Errorf("commit: %w", err)}
	}
	return nil
}
