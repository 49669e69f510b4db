package termconf

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/glrnvim/internal/config/loader"
)

// kittySuspendMap is a harmless action bound to ctrl+z. kitty's no_op
// does not stop the key from reaching the program.
const kittySuspendMap = "map ctrl+z change_font_size all 0"

// KittyDocument is a kitty.conf configuration: one setting per line,
// "name value". Lines are kept verbatim unless Merge rewrites them.
type KittyDocument struct {
	lines []string
}

// NewKittyDocument returns an empty kitty document.
func NewKittyDocument() *KittyDocument {
	return &KittyDocument{}
}

// ParseKitty parses kitty.conf contents. kitty ignores what it does not
// understand, so only undecodable text is rejected.
func ParseKitty(path string, data []byte) (Document, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		if !utf8.ValidString(line) {
			return nil, &loader.ParseError{
				Path:    path,
				Line:    i + 1,
				Message: "invalid UTF-8",
			}
		}
	}
	if len(lines) == 1 && lines[0] == "" {
		lines = nil
	}
	return &KittyDocument{lines: lines}, nil
}

// Merge sets font_family and font_size and maps ctrl+z to a harmless action.
// With ClearShortcuts the document starts with clear_all_shortcuts so the
// shortcuts of earlier config files do not reach the editor.
func (d *KittyDocument) Merge(o Overrides) {
	if o.ClearShortcuts {
		d.set("clear_all_shortcuts", "yes")
	}
	if family, ok := o.Family(); ok {
		d.set("font_family", family)
	}
	if o.FontSize > 0 {
		d.set("font_size", strconv.Itoa(int(o.FontSize)))
	}

	for i, line := range d.lines {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "map" && strings.EqualFold(fields[1], "ctrl+z") {
			d.lines[i] = kittySuspendMap
			return
		}
	}
	d.lines = append(d.lines, kittySuspendMap)
}

// set replaces every line assigning name, or appends one.
func (d *KittyDocument) set(name, value string) {
	line := name + " " + value
	found := false
	for i, l := range d.lines {
		fields := strings.Fields(l)
		if len(fields) > 0 && fields[0] == name {
			d.lines[i] = line
			found = true
		}
	}
	if !found {
		d.lines = append(d.lines, line)
	}
}

// Encode renders the document as kitty.conf.
func (d *KittyDocument) Encode() ([]byte, error) {
	var buf bytes.Buffer
	for _, l := range d.lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
