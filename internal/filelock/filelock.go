// Package filelock guards a target directory so that two organize runs
// never move files out from under each other.
package filelock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process already holds the lock
var ErrLocked = errors.New("directory is being organized by another process")

// DirLock wraps a flock file lock for one target directory
type DirLock struct {
	flock *flock.Flock
	dir   string
	path  string
}

// ForDirectory returns the lock for dir. The lock file is named after a hash
// of the absolute path and lives in the OS temp directory, or in the user
// cache directory when dir is the temp directory itself, so it never shows
// up as an entry inside dir.
func ForDirectory(dir string) (*DirLock, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	lockDir, err := lockDirFor(absDir)
	if err != nil {
		return nil, err
	}
	return forDirectoryIn(lockDir, absDir), nil
}

func lockDirFor(absDir string) (string, error) {
	tmp := os.TempDir()
	if !sameDir(tmp, absDir) {
		return tmp, nil
	}

	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("no lock directory available for %s: %w", absDir, err)
	}
	lockDir := filepath.Join(cache, "folder-organizer")
	if sameDir(lockDir, absDir) {
		return "", fmt.Errorf("no lock directory available for %s", absDir)
	}
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create lock directory: %w", err)
	}
	return lockDir, nil
}

// sameDir compares two directories by path and, when both resolve, by their
// symlink-free location
func sameDir(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if a == b {
		return true
	}
	ra, errA := filepath.EvalSymlinks(a)
	rb, errB := filepath.EvalSymlinks(b)
	return errA == nil && errB == nil && ra == rb
}

func forDirectoryIn(lockDir, absDir string) *DirLock {
	sum := sha256.Sum256([]byte(filepath.Clean(absDir)))
	path := filepath.Join(lockDir, "folder-organizer-"+hex.EncodeToString(sum[:8])+".lock")
	return &DirLock{
		flock: flock.New(path),
		dir:   absDir,
		path:  path,
	}
}

// Path returns the lock file path
func (l *DirLock) Path() string {
	return l.path
}

// TryLock acquires the lock without blocking. It returns ErrLocked if the
// lock is held elsewhere.
func (l *DirLock) TryLock() error {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock on %s: %w", l.path, err)
	}
	if !acquired {
		return fmt.Errorf("%w: %s", ErrLocked, l.dir)
	}
	return nil
}

// Unlock releases the lock. The lock file stays in place: removing it would
// let a waiting process lock the unlinked file while another locks a fresh
// one at the same path.
func (l *DirLock) Unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}
