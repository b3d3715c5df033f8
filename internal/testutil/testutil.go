// Package testutil provides test helpers and fixtures for organizer tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// TestFixture holds the directory a test organizes
type TestFixture struct {
	T       *testing.T
	RootDir string // Root temp directory (auto-cleaned)
}

// NewFixture creates a new empty fixture directory
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	return &TestFixture{
		T:       t,
		RootDir: t.TempDir(),
	}
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file with specified content and returns its path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFiles creates empty files for every name
func (f *TestFixture) CreateFiles(names ...string) {
	f.T.Helper()
	for _, name := range names {
		f.CreateFile(name, []byte(name))
	}
}

// CreateDir creates a directory under the root and returns its path
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}
	return fullPath
}

// =============================================================================
// Assertion Helpers
// =============================================================================

// Path returns the absolute path of relPath under the root
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, relPath)
}

// Exists reports whether relPath exists
func (f *TestFixture) Exists(relPath string) bool {
	_, err := os.Lstat(f.Path(relPath))
	return err == nil
}

// AssertExists fails the test if relPath does not exist
func (f *TestFixture) AssertExists(relPath string) {
	f.T.Helper()
	if !f.Exists(relPath) {
		f.T.Errorf("expected %s to exist", relPath)
	}
}

// AssertNotExists fails the test if relPath exists
func (f *TestFixture) AssertNotExists(relPath string) {
	f.T.Helper()
	if f.Exists(relPath) {
		f.T.Errorf("expected %s to not exist", relPath)
	}
}

// AssertContent fails the test unless relPath holds want
func (f *TestFixture) AssertContent(relPath string, want string) {
	f.T.Helper()

	data, err := os.ReadFile(f.Path(relPath))
	if err != nil {
		f.T.Errorf("failed to read %s: %v", relPath, err)
		return
	}
	if string(data) != want {
		f.T.Errorf("%s content = %q, want %q", relPath, data, want)
	}
}

// List returns the sorted names directly inside relPath
func (f *TestFixture) List(relPath string) []string {
	f.T.Helper()

	entries, err := os.ReadDir(f.Path(relPath))
	if err != nil {
		f.T.Fatalf("failed to list %s: %v", relPath, err)
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)
	return names
}
