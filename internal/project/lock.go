package project

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"cropaway/internal/config"
	"cropaway/internal/services"
)

// ExportLock is an advisory file lock held for the duration of an export so
// two processes never render the same project concurrently.
type ExportLock struct {
	path string
	lock *flock.Flock
}

// NewExportLock builds the lock for the configured project directory without
// acquiring it.
func NewExportLock(cfg *config.Config) *ExportLock {
	path := filepath.Join(cfg.Paths.ProjectDir, "export.lock")
	return &ExportLock{path: path, lock: flock.New(path)}
}

// Acquire takes the lock, failing immediately when another export holds it.
func (l *ExportLock) Acquire() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire export lock: %w", err)
	}
	if !ok {
		return services.Wrap(services.ErrConflict, "project", "lock", fmt.Sprintf("another export holds %s", l.path), nil)
	}
	return nil
}

// Release drops the lock. Releasing an unheld lock is a no-op.
func (l *ExportLock) Release() error {
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release export lock: %w", err)
	}
	return nil
}

// Path returns the lock file location.
func (l *ExportLock) Path() string {
	return l.path
}
