package loader

import (
	"os"
	"path/filepath"
	"slices"
)

// listVars hold a path list rather than a single path.
var listVars = []string{"XDG_CONFIG_DIRS"}

// Locate expands candidate path templates and returns the existing files.
//
// Every base candidate that resolves to a regular file is returned, in
// order. From priority only the first match is returned; later entries are
// never consulted once one matches. Base results come first.
//
// A template naming a list variable such as $XDG_CONFIG_DIRS stands for one
// candidate per list entry, in list order.
func Locate(fsys FileSystem, env Env, base, priority []string) []string {
	var found []string
	for _, tmpl := range base {
		for _, p := range ExpandCandidates(env, tmpl) {
			if IsRegularFile(fsys, p) {
				found = append(found, p)
			}
		}
	}
	for _, tmpl := range priority {
		for _, p := range ExpandCandidates(env, tmpl) {
			if IsRegularFile(fsys, p) {
				return append(found, p)
			}
		}
	}
	return found
}

// ExpandCandidates expands tmpl into concrete paths. An unset or empty list
// variable yields no paths.
func ExpandCandidates(env Env, tmpl string) []string {
	var list string
	os.Expand(tmpl, func(key string) string {
		if list == "" && slices.Contains(listVars, key) {
			list = key
		}
		return ""
	})
	if list == "" {
		return []string{Expand(env, tmpl)}
	}

	value, _ := env.LookupEnv(list)
	var paths []string
	for _, entry := range filepath.SplitList(value) {
		if entry == "" {
			continue
		}
		paths = append(paths, os.Expand(tmpl, func(key string) string {
			if key == list {
				return entry
			}
			v, _ := env.LookupEnv(key)
			return v
		}))
	}
	return paths
}
