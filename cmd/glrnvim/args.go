package main

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/dshills/glrnvim/internal/config"
	"github.com/dshills/glrnvim/internal/config/loader"
)

const nofork = "--nofork"

// options are the arguments glrnvim handles itself.
type options struct {
	help     bool
	version  bool
	fork     bool
	nvimArgs []string
}

// parseArgs picks out glrnvim's own flags; the rest is passed to nvim.
func parseArgs(args []string) options {
	opts := options{fork: true}
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			opts.help = true
		case "-v", "--version":
			opts.version = true
		case nofork:
			opts.fork = false
		default:
			opts.nvimArgs = append(opts.nvimArgs, arg)
		}
	}
	return opts
}

// launchEnv returns the environment for the terminal, or nil to inherit.
// On macOS the variables of the launching terminal confuse nvim's
// terminal detection.
func launchEnv(environ []string, goos string) []string {
	if goos != "darwin" {
		return nil
	}
	env := make([]string, 0, len(environ))
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if name == "TERM_PROGRAM" || name == "TERM_PROGRAM_VERSION" {
			continue
		}
		env = append(env, kv)
	}
	return env
}

func nvimOutput(arg string) ([]byte, error) {
	out, err := exec.Command(config.NvimName, arg).Output()
	if err != nil {
		return nil, fmt.Errorf("running %s %s: %w", config.NvimName, arg, err)
	}
	return out, nil
}

func showVersion(w io.Writer) error {
	out, err := nvimOutput("-v")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "glrnvim %s\n\n%s", version, out)
	return nil
}

func showHelp(w io.Writer) error {
	out, err := nvimOutput("-h")
	if err != nil {
		return err
	}
	io.WriteString(w, rewriteHelp(string(out)))

	fmt.Fprintln(w)
	if paths := config.Paths(loader.OSEnv{}, runtime.GOOS); len(paths) > 0 {
		fmt.Fprintf(w, "Config file: %s\n", paths[0])
	}
	return nil
}

// rewriteHelp turns nvim's usage text into glrnvim's: the usage lines name
// glrnvim and the option list gains --nofork.
func rewriteHelp(help string) string {
	var buf bytes.Buffer
	buf.WriteString("Usage:\n")

	options := false
	for _, line := range strings.Split(strings.TrimRight(help, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "Usage:"):
		case strings.HasPrefix(line, "Options:"):
			options = true
			buf.WriteString(line + "\n")
			buf.WriteString("  " + nofork + "              Do not fork when starting GUI\n")
		case !options:
			buf.WriteString(strings.ReplaceAll(line, "nvim", "glrnvim") + "\n")
		default:
			buf.WriteString(line + "\n")
		}
	}
	return buf.String()
}
