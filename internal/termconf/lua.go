package termconf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/gopher-lua/parse"

	"github.com/dshills/glrnvim/internal/config/loader"
)

// LuaDocument is a wezterm configuration.
//
// wezterm configs are programs, so the user's file is not rewritten. The
// document renders a chunk that runs the user's file (when Source is set),
// then overlays the generated settings on the table it returns.
type LuaDocument struct {
	// Source is the user's wezterm.lua, or "" to start from an empty table.
	Source string

	family   string
	fontSize uint8
	merged   bool
}

// NewLuaDocument returns a document that starts from an empty config table.
func NewLuaDocument() *LuaDocument {
	return &LuaDocument{}
}

// ParseLua checks wezterm.lua for syntax errors and returns a document
// that loads it.
func ParseLua(path string, data []byte) (Document, error) {
	if _, err := parse.Parse(bytes.NewReader(data), path); err != nil {
		pe := &loader.ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
		var lerr *parse.Error
		if errors.As(err, &lerr) {
			pe.Line, pe.Column = lerr.Pos.Line, lerr.Pos.Column
			pe.Message = lerr.Message
		}
		return nil, pe
	}
	return &LuaDocument{Source: path}, nil
}

// Merge records the font overrides and enables the ctrl+z rebinding.
func (d *LuaDocument) Merge(o Overrides) {
	if family, ok := o.Family(); ok {
		d.family = family
	}
	if o.FontSize > 0 {
		d.fontSize = o.FontSize
	}
	d.merged = true
}

// Encode renders the configuration chunk.
func (d *LuaDocument) Encode() ([]byte, error) {
	var b strings.Builder
	b.WriteString("local wezterm = require(\"wezterm\")\n")
	b.WriteString("local config = {}\n")

	if d.Source != "" {
		src := luaQuote(d.Source)
		fmt.Fprintf(&b, "local ok, user = pcall(dofile, %s)\n", src)
		b.WriteString("if ok and type(user) == \"table\" then\n")
		b.WriteString("  config = user\n")
		b.WriteString("else\n")
		fmt.Fprintf(&b, "  wezterm.log_warn(\"glrnvim: cannot load \" .. %s .. \": \" .. tostring(user))\n", src)
		b.WriteString("end\n")
	}

	if d.family != "" {
		fmt.Fprintf(&b, "config.font = wezterm.font(%s)\n", luaQuote(d.family))
	}
	if d.fontSize > 0 {
		fmt.Fprintf(&b, "config.font_size = %d\n", d.fontSize)
	}

	if d.merged {
		b.WriteString("config.keys = config.keys or {}\n")
		b.WriteString("for i = #config.keys, 1, -1 do\n")
		b.WriteString("  local k = config.keys[i]\n")
		b.WriteString("  if type(k) == \"table\" and k.key == \"z\" and k.mods == \"CTRL\" then\n")
		b.WriteString("    table.remove(config.keys, i)\n")
		b.WriteString("  end\n")
		b.WriteString("end\n")
		b.WriteString("table.insert(config.keys, { key = \"z\", mods = \"CTRL\", action = wezterm.action.Nop })\n")
	}

	b.WriteString("return config\n")
	return []byte(b.String()), nil
}

// luaQuote returns s as a double-quoted Lua string literal.
func luaQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, "\\%03d", c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
