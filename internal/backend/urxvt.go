package backend

import (
	"fmt"
	"strings"

	"github.com/dshills/glrnvim/internal/config"
)

// urxvt has no config file; fonts and the ctrl+z override are options.
var urxvtSpec = termSpec{
	name:      config.BackendUrxvt,
	exe:       "urxvt",
	classFlag: "-name",
	cwdFlag:   "-cd",
	separator: "-e",
}

type urxvt struct {
	*base
}

func newUrxvt(cfg *config.Config, sys System) (Backend, error) {
	b, err := newBase(urxvtSpec, cfg, sys)
	if err != nil {
		return nil, err
	}
	return &urxvt{base: b}, nil
}

// Command implements Backend.
func (u *urxvt) Command() (*Command, error) {
	if _, err := u.configFiles(); err != nil {
		return nil, err
	}
	extras := []string{"-keysym.C-z:", "builtin-string:"}
	if fn := urxvtFonts(u.cfg.Fonts, u.cfg.FontSize); fn != "" {
		extras = append(extras, "-fn", fn)
	}
	return u.command(nil, extras), nil
}

// urxvtFonts builds the -fn value. The size applies to the first font,
// the others are fallbacks.
func urxvtFonts(fonts []string, size uint8) string {
	parts := make([]string, 0, len(fonts))
	for i, f := range fonts {
		p := "xft:" + f
		if i == 0 && size > 0 {
			p += fmt.Sprintf(":size=%d", size)
		}
		parts = append(parts, p+":antialias=true")
	}
	return strings.Join(parts, ",")
}
