package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads configuration from YAML files.
type YAMLLoader struct {
	fs   FileSystem
	path string
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads configuration from the configured path.
func (l *YAMLLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *YAMLLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return l.parse(path, data)
}

// parse parses YAML data into a map.
func (l *YAMLLoader) parse(source string, data []byte) (map[string]any, error) {
	config := make(map[string]any)
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, NewYAMLParseError(source, err)
	}

	return config, nil
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// NewYAMLParseError wraps a yaml.v3 error, extracting the line number
// from the message when present.
func NewYAMLParseError(path string, err error) *ParseError {
	pe := &ParseError{
		Path:    path,
		Message: err.Error(),
		Err:     err,
	}
	if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
	}
	return pe
}
