package fsys

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"astrocopy/internal/stage"
)

// LockFileName is created inside the target root while a run copies into it.
const LockFileName = ".astrocopy.lock"

// Lock is an advisory lock held on a target root.
type Lock struct {
	path string
	lock *flock.Flock
}

// AcquireLock takes an exclusive, non-blocking lock on root. The root is
// created when missing.
func AcquireLock(root string) (*Lock, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, stage.Wrap(stage.ErrIO, "copy", "create target root", root, err)
	}
	path := filepath.Join(root, LockFileName)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, stage.Wrap(stage.ErrIO, "copy", "acquire lock", path, err)
	}
	if !ok {
		return nil, stage.Wrap(stage.ErrPrecondition, "copy", "acquire lock",
			fmt.Sprintf("another run is writing to %s", root), nil)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}
