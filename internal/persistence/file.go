package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"taskpad/internal/models"
)

// FileGateway keeps the snapshot in a single file encoded by a Codec.
type FileGateway struct {
	path  string
	codec Codec
}

func NewFileGateway(path string, codec Codec) *FileGateway {
	return &FileGateway{path: path, codec: codec}
}

func (g *FileGateway) Path() string { return g.path }

func (g *FileGateway) Codec() Codec { return g.codec }

func (g *FileGateway) Close() error { return nil }

func (g *FileGateway) Load() ([]models.Task, error) {
	b, err := os.ReadFile(g.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Task{}, nil
		}
		return nil, &LoadError{Path: g.path, Err: fmt.Errorf("read file: %w", err)}
	}
	snap, err := g.codec.Decode(b)
	if err != nil {
		return nil, &LoadError{Path: g.path, Err: err}
	}
	return snap.ToTasks(), nil
}

// Save writes to a temporary file next to the target and renames it into
// place, so a failed write never truncates the previous snapshot.
func (g *FileGateway) Save(tasks []models.Task) error {
	b, err := g.codec.Encode(NewSnapshot(tasks))
	if err != nil {
		return &SaveError{Path: g.path, Err: err}
	}
	if err := writeFileAtomic(g.path, b, 0o644); err != nil {
		return &SaveError{Path: g.path, Err: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
