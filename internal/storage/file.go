package storage

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/idilsaglam/mlcheck/internal/model"
)

const stateFileName = "state.json"

// FileBackend keeps the document as one JSON file in the data directory.
// Single file, human-readable, portable. No locking; fine for a local
// single-user tool.
type FileBackend struct {
	dir    string
	logger *slog.Logger
}

// NewFileBackend stores state.json under dir. The directory is created
// lazily on first save with owner-only permissions.
func NewFileBackend(dir string, logger *slog.Logger) *FileBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileBackend{dir: dir, logger: logger}
}

// DefaultDataDir returns ~/.mlcheck, or a path relative to the working
// directory if the home directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mlcheck"
	}
	return filepath.Join(home, ".mlcheck")
}

func (f *FileBackend) path() string {
	return filepath.Join(f.dir, stateFileName)
}

func (f *FileBackend) Load() (*model.ProjectsState, bool) {
	b, err := os.ReadFile(f.path())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			f.logger.Warn("read state file", "path", f.path(), "err", err)
		}
		return nil, false
	}
	return decodeState(b, f.logger)
}

func (f *FileBackend) Save(st *model.ProjectsState) {
	b, ok := encodeState(st, f.logger)
	if !ok {
		return
	}
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		f.logger.Error("create data dir", "dir", f.dir, "err", err)
		return
	}
	if err := os.WriteFile(f.path(), b, 0o600); err != nil {
		f.logger.Error("write state file", "path", f.path(), "err", err)
	}
}

func (f *FileBackend) Clear() {
	if err := os.Remove(f.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		f.logger.Warn("remove state file", "path", f.path(), "err", err)
	}
}
