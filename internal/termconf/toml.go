package termconf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/glrnvim/internal/config/loader"
)

// TOMLDocument is an alacritty.toml configuration.
//
// Values round-trip through go-toml; comments are not kept and keys are
// written in sorted order.
type TOMLDocument struct {
	Root map[string]any
}

// NewTOMLDocument returns an empty TOML document.
func NewTOMLDocument() *TOMLDocument {
	return &TOMLDocument{Root: make(map[string]any)}
}

// ParseTOML parses alacritty.toml contents.
func ParseTOML(path string, data []byte) (Document, error) {
	root := make(map[string]any)
	if err := toml.Unmarshal(data, &root); err != nil {
		pe := &loader.ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return nil, pe
	}
	return &TOMLDocument{Root: root}, nil
}

// Merge sets font.size and font.normal.family and disables Ctrl+Z through
// keyboard.bindings.
func (d *TOMLDocument) Merge(o Overrides) {
	font := subTable(d.Root, "font")
	if o.FontSize > 0 {
		font["size"] = int64(o.FontSize)
	}
	if family, ok := o.Family(); ok {
		normal := subTable(font, "normal")
		normal["family"] = family
		font["normal"] = normal
	}
	switch {
	case len(font) > 0:
		d.Root["font"] = font
	case isTable(d.Root["font"]):
		delete(d.Root, "font")
	}

	keyboard := subTable(d.Root, "keyboard")
	keyboard["bindings"] = setSuspendBinding(keyboard["bindings"])
	d.Root["keyboard"] = keyboard
}

// Encode renders the document as TOML.
func (d *TOMLDocument) Encode() ([]byte, error) {
	out, err := toml.Marshal(d.Root)
	if err != nil {
		return nil, fmt.Errorf("encoding toml: %w", err)
	}
	return out, nil
}

// subTable returns m[key] as a table, or a new empty table when the key is
// missing or holds a non-table value.
func subTable(m map[string]any, key string) map[string]any {
	if t, ok := m[key].(map[string]any); ok {
		return t
	}
	return make(map[string]any)
}

func isTable(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// setSuspendBinding rebinds Control+Z in an alacritty binding list, appending
// a binding when none exists.
func setSuspendBinding(v any) []any {
	var bindings []any
	switch list := v.(type) {
	case []any:
		bindings = list
	case []map[string]any:
		for _, b := range list {
			bindings = append(bindings, b)
		}
	}

	for _, item := range bindings {
		b, ok := item.(map[string]any)
		if !ok || !isSuspendChord(b["key"], b["mods"]) {
			continue
		}
		neutralize(b)
		return bindings
	}

	return append(bindings, map[string]any{
		"key":    suspendKey,
		"mods":   suspendMods,
		"action": suspendAction,
	})
}

const (
	suspendKey    = "Z"
	suspendMods   = "Control"
	suspendAction = "None"
)

func isSuspendChord(key, mods any) bool {
	k, _ := key.(string)
	m, _ := mods.(string)
	return strings.EqualFold(k, suspendKey) && strings.EqualFold(m, suspendMods)
}

// neutralize replaces whatever a binding did with the no-op action.
func neutralize(b map[string]any) {
	delete(b, "chars")
	delete(b, "command")
	b["action"] = suspendAction
}
