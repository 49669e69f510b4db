package backend

import (
	"github.com/dshills/glrnvim/internal/config"
	"github.com/dshills/glrnvim/internal/termconf"
)

// kitty merges repeated --config files itself. /etc/xdg/kitty/kitty.conf
// always applies; of the rest only the first existing one is read.
var kittySpec = termSpec{
	name:        config.BackendKitty,
	exe:         "kitty",
	configFlag:  "--config",
	multiConfig: true,
	classFlag:   "--class",
	classOn:     func(goos string) bool { return goos == "linux" },
	cwdFlag:     "--directory",
	format:      termconf.Kitty,
	base:        []string{"/etc/xdg/kitty/kitty.conf"},
	priority: []string{
		"$KITTY_CONFIG_DIRECTORY/kitty.conf",
		"$XDG_CONFIG_HOME/kitty/kitty.conf",
		"$HOME/.config/kitty/kitty.conf",
		"$XDG_CONFIG_DIRS/kitty/kitty.conf",
	},
}

func newKitty(cfg *config.Config, sys System) (Backend, error) {
	b, err := newBase(kittySpec, cfg, sys)
	if err != nil {
		return nil, err
	}
	return b, nil
}
