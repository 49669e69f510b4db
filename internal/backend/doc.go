// Package backend launches Neovim inside a supported terminal emulator.
//
// Each backend resolves its terminal executable, synthesizes a terminal
// configuration from the glrnvim settings (optionally layered over the
// user's own terminal configuration) and assembles the command line that
// starts the terminal running nvim.
//
// Backends:
//
//   - alacritty: TOML, or YAML when the user's config is still YAML
//   - kitty: kitty.conf, repeated --config flags
//   - wezterm: a Lua chunk that loads the user's wezterm.lua
//   - foot: foot.ini
//   - urxvt: command-line options only
//
// New selects the configured backend or probes all of them in order.
// The returned Backend owns the generated configuration file until Close.
//
//	b, err := backend.New(cfg, backend.DefaultSystem())
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//
//	cmd, err := b.Command()
package backend
