package backend

import (
	"path/filepath"
	"strings"

	"github.com/dshills/glrnvim/internal/config/loader"
)

// resolveExecutable returns the path of the terminal executable name.
//
// An explicit path is trusted as-is; a bad one fails at spawn time.
// Otherwise PATH is searched and, on darwin, the application bundles in
// /Applications and the home directory.
func resolveExecutable(sys System, explicit, name string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if sys.LookPath != nil {
		if path, err := sys.LookPath(name); err == nil {
			return path, nil
		}
	}

	if sys.GOOS == "darwin" {
		for _, path := range bundlePaths(sys, name) {
			if loader.IsRegularFile(sys.FS, path) {
				return path, nil
			}
		}
	}

	return "", &NotFoundError{Name: name}
}

// bundlePaths lists the darwin application bundle locations for name.
func bundlePaths(sys System, name string) []string {
	if name == "" {
		return nil
	}
	bundle := strings.ToUpper(name[:1]) + name[1:] + ".app"
	rel := filepath.Join(bundle, "Contents", "MacOS", name)

	paths := []string{filepath.Join("/Applications", rel)}
	if sys.Env != nil {
		if home, err := sys.Env.UserHomeDir(); err == nil && home != "" {
			paths = append(paths, filepath.Join(home, rel))
		}
	}
	return paths
}
