package termconf

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/dshills/glrnvim/internal/config/loader"
)

const (
	footMainSection = "main"
	footKeySection  = "key-bindings"
	footNoopKey     = "noop"
	footIncludeKey  = "include"
	footSuspend     = "Control+z"
	footDefaultFont = "monospace"
)

var iniOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	SkipUnrecognizableLines: false,
	KeyValueDelimiters:      "=",
}

// INIDocument is a foot.ini configuration.
//
// A parsed file is never re-serialized. The encoded document includes it
// from [main] and carries only the changed keys, which foot applies on top.
type INIDocument struct {
	user *ini.File // settings read from the discovered file
	out  *ini.File // what Encode writes
}

// NewINIDocument returns an empty INI document.
func NewINIDocument() *INIDocument {
	return &INIDocument{user: ini.Empty(iniOptions), out: ini.Empty(iniOptions)}
}

// ParseINI parses foot.ini contents.
func ParseINI(path string, data []byte) (Document, error) {
	f, err := ini.LoadSources(iniOptions, data)
	if err != nil {
		return nil, &loader.ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
	}
	out := ini.Empty(iniOptions)
	out.Section(footMainSection).Key(footIncludeKey).SetValue(path)
	return &INIDocument{user: f, out: out}, nil
}

// Merge rewrites the primary font of main.font and adds Control+z to the
// noop key bindings.
//
// Foot keeps family and size in one value, e.g. "Hack:size=12,Noto Emoji".
// Keys before the first section header belong to [main].
func (d *INIDocument) Merge(o Overrides) {
	current := d.userValue(footMainSection, "font")
	if sec, err := d.out.GetSection(footMainSection); err == nil && sec.HasKey("font") {
		current = sec.Key("font").String()
	}
	if font := footFont(current, o); font != current {
		d.out.Section(footMainSection).Key("font").SetValue(font)
	}

	noop := d.userValue(footKeySection, footNoopKey)
	if sec, err := d.out.GetSection(footKeySection); err == nil && sec.HasKey(footNoopKey) {
		noop = sec.Key(footNoopKey).String()
	}
	combos := strings.Fields(noop)
	for _, c := range combos {
		if strings.EqualFold(c, footSuspend) {
			return
		}
	}
	d.out.Section(footKeySection).Key(footNoopKey).SetValue(strings.Join(append(combos, footSuspend), " "))
}

// userValue reads a key from the discovered file. A [main] key may also sit
// before the first section header.
func (d *INIDocument) userValue(section, key string) string {
	if sec, err := d.user.GetSection(section); err == nil && sec.HasKey(key) {
		return sec.Key(key).String()
	}
	if section != footMainSection {
		return ""
	}
	if def, err := d.user.GetSection(ini.DefaultSection); err == nil && def.HasKey(key) {
		return def.Key(key).String()
	}
	return ""
}

// footFont applies the overrides to a foot font list.
func footFont(current string, o Overrides) string {
	family, hasFamily := o.Family()
	if current == "" && !hasFamily && o.FontSize == 0 {
		return ""
	}
	if current == "" {
		current = footDefaultFont
	}

	entries := strings.Split(current, ",")
	if hasFamily {
		// Keep the attributes of the old primary font, drop fallbacks.
		primary := family
		if _, attrs, ok := strings.Cut(strings.TrimSpace(entries[0]), ":"); ok {
			primary += ":" + attrs
		}
		entries = []string{primary}
	}
	if o.FontSize > 0 {
		for i, e := range entries {
			entries[i] = setFontAttr(e, "size", fmt.Sprint(o.FontSize))
		}
	}
	return strings.Join(entries, ",")
}

// setFontAttr sets a fontconfig-style attribute on "family:attr=value:...".
func setFontAttr(entry, attr, value string) string {
	parts := strings.Split(strings.TrimSpace(entry), ":")
	kept := parts[:1]
	for _, p := range parts[1:] {
		name, _, _ := strings.Cut(p, "=")
		// size and pixelsize are mutually exclusive
		if name == attr || name == "pixelsize" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(append(kept, attr+"="+value), ":")
}

// Encode renders the include line and the changed keys as INI.
func (d *INIDocument) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.out.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encoding ini: %w", err)
	}
	return buf.Bytes(), nil
}
