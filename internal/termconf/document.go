package termconf

import (
	"path/filepath"
	"strings"
)

// Overrides are the settings glrnvim layers over a terminal configuration.
type Overrides struct {
	// Fonts lists font families; only the first one is applied.
	Fonts []string

	// FontSize is the font size in points. Zero leaves the size untouched.
	FontSize uint8

	// ClearShortcuts drops the terminal's own shortcuts where supported.
	ClearShortcuts bool
}

// Family returns the font family to apply, if any.
func (o Overrides) Family() (string, bool) {
	if len(o.Fonts) == 0 {
		return "", false
	}
	return o.Fonts[0], true
}

// Document is a terminal configuration held in memory.
type Document interface {
	// Merge applies the overrides in place.
	Merge(o Overrides)

	// Encode renders the document in its native format.
	Encode() ([]byte, error)
}

// Format describes one native configuration format.
type Format struct {
	// Name is a short human-readable name.
	Name string

	// Ext is the file extension used for generated files, with the dot.
	Ext string

	// Parse parses file contents. path is used for error reporting.
	Parse func(path string, data []byte) (Document, error)

	// New returns an empty document.
	New func() Document
}

// Known formats.
var (
	TOML = Format{
		Name:  "toml",
		Ext:   ".toml",
		Parse: ParseTOML,
		New:   func() Document { return NewTOMLDocument() },
	}
	YAML = Format{
		Name:  "yaml",
		Ext:   ".yml",
		Parse: ParseYAML,
		New:   func() Document { return NewYAMLDocument() },
	}
	INI = Format{
		Name:  "ini",
		Ext:   ".ini",
		Parse: ParseINI,
		New:   func() Document { return NewINIDocument() },
	}
	Kitty = Format{
		Name:  "kitty",
		Ext:   ".conf",
		Parse: ParseKitty,
		New:   func() Document { return NewKittyDocument() },
	}
	Lua = Format{
		Name:  "lua",
		Ext:   ".lua",
		Parse: ParseLua,
		New:   func() Document { return NewLuaDocument() },
	}
)

// IsYAMLPath reports whether path has a YAML extension.
func IsYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}
