package persistence

import (
	"path/filepath"
	"strings"

	"taskpad/internal/models"
)

// Gateway loads and stores the full ordered task list at a fixed location.
type Gateway interface {
	// Load returns the persisted list. A missing snapshot yields an empty
	// list and no error; anything unreadable yields a *LoadError.
	Load() ([]models.Task, error)
	// Save overwrites the snapshot with tasks, or returns a *SaveError.
	Save(tasks []models.Task) error
	Path() string
	Close() error
}

// Open picks a backend from the file extension: SQLite for .db/.sqlite/.sqlite3,
// YAML for .yaml/.yml and JSON for everything else (including tasks.dat).
func Open(path string) (Gateway, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path)
	case ".yaml", ".yml":
		return NewFileGateway(path, YAMLCodec{}), nil
	default:
		return NewFileGateway(path, JSONCodec{}), nil
	}
}
