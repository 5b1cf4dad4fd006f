// Package workspace locates a project on disk and guards it against
// concurrent watchers.
package workspace

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/apraga/scidataflow/internal/manifest"
	"github.com/apraga/scidataflow/internal/utils"
)

const (
	metadataDir = ".scidataflow"
	logsDir     = "logs"
	lockFile    = "scidataflow.lock"
)

var (
	ErrNoProject       = errors.New("no data manifest found in this or any parent directory")
	ErrWorkspaceLocked = errors.New("workspace locked by another process")
)

// Workspace is a project tree: the directory holding the data manifest
// and everything below it.
type Workspace struct {
	Root         string
	ManifestPath string
	MetadataDir  string
	LogsDir      string

	flock *flock.Flock
}

// Find walks upward from start until it reaches the directory containing
// the data manifest. ErrNoProject when the walk tops out.
func Find(start string) (*Workspace, error) {
	dir, err := utils.ResolvePath(start)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", start, err)
	}

	for {
		manifestPath := filepath.Join(dir, manifest.Filename)
		if utils.FileExists(manifestPath) {
			metaDir := filepath.Join(dir, metadataDir)
			return &Workspace{
				Root:         dir,
				ManifestPath: manifestPath,
				MetadataDir:  metaDir,
				LogsDir:      filepath.Join(metaDir, logsDir),
				flock:        flock.New(filepath.Join(metaDir, lockFile)),
			}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNoProject
		}
		dir = parent
	}
}

// Lock takes the exclusive workspace lock so that a second watcher
// cannot run in the same project. It does not block; a lock held
// elsewhere surfaces as ErrWorkspaceLocked.
func (w *Workspace) Lock() error {
	if err := utils.EnsureDir(w.MetadataDir); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", w.MetadataDir, err)
	}

	locked, err := w.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock workspace: %w", err)
	}
	if !locked {
		return ErrWorkspaceLocked
	}

	return nil
}

func (w *Workspace) Unlock() error {
	if !w.flock.Locked() {
		return nil
	}

	if err := w.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock workspace: %w", err)
	}
	return nil
}

// Rel converts an absolute path inside the workspace to its slash-form
// project-relative path.
func (w *Workspace) Rel(abs string) (string, error) {
	rel, err := filepath.Rel(w.Root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
