package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/folder-organizer/internal/platform"
)

var (
	// ErrNotExist is returned when the target directory does not exist
	ErrNotExist = errors.New("path does not exist")
	// ErrNotDirectory is returned when the target is not a directory
	ErrNotDirectory = errors.New("path is not a directory")
	// ErrProtected is returned for system directories that must never be reorganized
	ErrProtected = errors.New("refusing to organize protected path")
)

// PathValidator checks a directory before it is organized
type PathValidator struct {
	protectedPaths []string
}

// NewPathValidator creates a new PathValidator with the protected paths of
// the current platform
func NewPathValidator() *PathValidator {
	return &PathValidator{
		protectedPaths: platform.ProtectedPaths(platform.Detect()),
	}
}

// CleanInput trims whitespace and one layer of surrounding quotes, as left
// behind when a path is pasted from a file manager
func CleanInput(input string) string {
	s := strings.TrimSpace(input)
	s = strings.Trim(s, `"`)
	s = strings.Trim(s, `'`)
	return strings.TrimSpace(s)
}

// ValidateTarget checks that path names an existing, non-protected directory
// and returns it as a clean absolute path
func (pv *PathValidator) ValidateTarget(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrNotExist)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotExist, absPath)
		}
		return "", fmt.Errorf("failed to access %s: %w", absPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, absPath)
	}

	// Compare the resolved location so a symlink cannot point us at /usr
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve symlinks: %w", err)
	}

	if pv.IsProtectedPath(resolved) || pv.IsProtectedPath(absPath) {
		return "", fmt.Errorf("%w: %s", ErrProtected, absPath)
	}

	return absPath, nil
}

// IsProtectedPath reports whether path is a protected directory itself.
// Subdirectories such as /var/tmp/inbox stay allowed.
func (pv *PathValidator) IsProtectedPath(path string) bool {
	cleanPath := filepath.Clean(path)
	for _, protected := range pv.protectedPaths {
		if cleanPath == protected {
			return true
		}
	}
	return false
}

// AddProtectedPath adds a custom protected path
func (pv *PathValidator) AddProtectedPath(path string) {
	cleanPath := filepath.Clean(path)
	pv.protectedPaths = append(pv.protectedPaths, cleanPath)
}
