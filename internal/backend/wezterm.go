package backend

import (
	"github.com/dshills/glrnvim/internal/config"
	"github.com/dshills/glrnvim/internal/termconf"
)

var weztermSpec = termSpec{
	name:       config.BackendWezterm,
	exe:        "wezterm",
	configFlag: "--config-file",
	subcommand: []string{"start"},
	classFlag:  "--class",
	cwdFlag:    "--cwd",
	separator:  "--",
	format:     termconf.Lua,
	priority: []string{
		"$WEZTERM_CONFIG_FILE",
		"$XDG_CONFIG_HOME/wezterm/wezterm.lua",
		"$HOME/.config/wezterm/wezterm.lua",
		"$HOME/.wezterm.lua",
	},
}

func newWezterm(cfg *config.Config, sys System) (Backend, error) {
	b, err := newBase(weztermSpec, cfg, sys)
	if err != nil {
		return nil, err
	}
	return b, nil
}
