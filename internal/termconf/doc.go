// Package termconf reads, merges and writes terminal emulator configuration
// files in their native formats.
//
// Each format parses into a Document. Merge applies the glrnvim overrides
// (font family, font size and a harmless Ctrl+Z binding) and touches
// nothing else; Encode renders the document back to text:
//
//	doc, err := termconf.TOML.Parse(path, data)
//	if err != nil {
//	    return err
//	}
//	doc.Merge(termconf.Overrides{Fonts: []string{"Hack"}, FontSize: 13})
//	out, err := doc.Encode()
//
// Supported formats:
//
//   - TOML: alacritty.toml
//   - YAML: alacritty.yml (legacy alacritty)
//   - INI: foot.ini
//   - Kitty: kitty.conf
//   - Lua: wezterm.lua
package termconf
