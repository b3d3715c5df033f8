package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// Platform represents the operating system platform
type Platform string

const (
	MacOS   Platform = "darwin"
	Linux   Platform = "linux"
	Unknown Platform = "unknown"
)

// Detect returns the current platform
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

var unixSystemDirs = []string{
	"/",
	"/bin",
	"/boot",
	"/dev",
	"/etc",
	"/lib",
	"/lib64",
	"/opt",
	"/proc",
	"/root",
	"/sbin",
	"/sys",
	"/usr",
	"/var",
}

var macOSSystemDirs = []string{
	"/System",
	"/Applications",
	"/Library",
	"/private",
	"/Volumes",
}

// ProtectedPaths returns the directories that must never be reorganized on
// the given platform. The user's home directory itself is included when it
// can be resolved: organizing it would sweep dotfiles into Others.
func ProtectedPaths(p Platform) []string {
	paths := append([]string{}, unixSystemDirs...)

	if p == MacOS {
		paths = append(paths, macOSSystemDirs...)
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Clean(home))
	}

	return paths
}
