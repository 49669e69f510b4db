// Package loader provides configuration file loading for glrnvim.
//
// The loader package reads the glrnvim YAML settings file, overlays
// GLRNVIM_* environment variables, and locates terminal configuration files
// from prioritized candidate lists.
package loader

import (
	"io/fs"
	"os"
)

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

var (
	_ Loader = (*YAMLLoader)(nil)
	_ Loader = (*EnvLoader)(nil)
)

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// IsRegularFile reports whether path exists in fsys and is a regular file.
func IsRegularFile(fsys FileSystem, path string) bool {
	if path == "" {
		return false
	}
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
