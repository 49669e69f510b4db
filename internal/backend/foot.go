package backend

import (
	"github.com/dshills/glrnvim/internal/config"
	"github.com/dshills/glrnvim/internal/termconf"
)

var footSpec = termSpec{
	name:       config.BackendFoot,
	exe:        "foot",
	configFlag: "--config",
	classFlag:  "--app-id",
	cwdFlag:    "--working-directory",
	format:     termconf.INI,
	priority: []string{
		"$XDG_CONFIG_HOME/foot/foot.ini",
		"$HOME/.config/foot/foot.ini",
		"$XDG_CONFIG_DIRS/foot/foot.ini",
		"/etc/xdg/foot/foot.ini",
	},
}

func newFoot(cfg *config.Config, sys System) (Backend, error) {
	b, err := newBase(footSpec, cfg, sys)
	if err != nil {
		return nil, err
	}
	return b, nil
}
