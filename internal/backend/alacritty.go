package backend

import (
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/dshills/glrnvim/internal/config"
	"github.com/dshills/glrnvim/internal/termconf"
)

var alacrittySpec = termSpec{
	name:       config.BackendAlacritty,
	exe:        "alacritty",
	configFlag: "--config-file",
	classFlag:  "--class",
	classOn:    func(goos string) bool { return goos != "darwin" },
	cwdFlag:    "--working-directory",
	separator:  "-e",
	format:     termconf.TOML,
	formatFor:  alacrittyFormat,
	priority:   alacrittyCandidates(),
}

// alacrittyCandidates lists the TOML locations, then their legacy YAML
// equivalents.
func alacrittyCandidates() []string {
	stems := []string{
		"$XDG_CONFIG_HOME/alacritty/alacritty",
		"$XDG_CONFIG_HOME/alacritty",
		"$HOME/.config/alacritty/alacritty",
		"$HOME/.alacritty",
	}
	var out []string
	for _, ext := range []string{".toml", ".yml"} {
		for _, s := range stems {
			out = append(out, s+ext)
		}
	}
	return out
}

func alacrittyFormat(path string) termconf.Format {
	if termconf.IsYAMLPath(path) {
		return termconf.YAML
	}
	return termconf.TOML
}

type alacritty struct {
	*base
	corrector *Corrector
}

func newAlacritty(cfg *config.Config, sys System) (Backend, error) {
	b, err := newBase(alacrittySpec, cfg, sys)
	if err != nil {
		return nil, err
	}
	a := &alacritty{base: b}
	if sys.GOOS == "darwin" {
		a.corrector = NewCorrector(newProcessTable())
	}
	return a, nil
}

// PostStart works around nvim starting with the wrong window size under
// alacritty on macOS by sending it SIGWINCH once it appears.
func (a *alacritty) PostStart(pid int) {
	if a.corrector == nil {
		return
	}
	editor := filepath.Base(a.cfg.NvimExePath)
	if err := a.corrector.Correct(pid, editor); err != nil {
		log.Warn("Could not resize editor window", "pid", pid, "editor", editor, "error", err)
	}
}
