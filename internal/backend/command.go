package backend

import (
	"github.com/charmbracelet/log"

	"github.com/dshills/glrnvim/internal/config"
)

// command assembles the terminal invocation:
//
//	<exe> [configFlag file]... [subcommand] [class] [cwd] [extras] [separator] nvim CommonArgs
func (b *base) command(configFiles, extras []string) *Command {
	s := b.term
	var args []string

	for _, f := range configFiles {
		args = append(args, s.configFlag, f)
	}
	args = append(args, s.subcommand...)

	if s.classFlag != "" && (s.classOn == nil || s.classOn(b.sys.GOOS)) {
		args = append(args, s.classFlag, AppID)
	}

	if s.cwdFlag != "" {
		if wd, err := b.sys.Env.Getwd(); err == nil && wd != "" {
			args = append(args, s.cwdFlag, wd)
		} else {
			log.Debug("Working directory unavailable", "error", err)
		}
	}

	args = append(args, extras...)
	if s.separator != "" {
		args = append(args, s.separator)
	}

	editor := b.cfg.NvimExePath
	if editor == "" {
		editor = config.NvimName
	}
	args = append(args, editor)
	args = append(args, CommonArgs...)

	return &Command{Path: b.exe, Args: args}
}
