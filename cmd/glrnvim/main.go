// Package main is the entry point for glrnvim.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/glrnvim/internal/backend"
	"github.com/dshills/glrnvim/internal/config"
	"github.com/dshills/glrnvim/internal/config/loader"
	"github.com/dshills/glrnvim/internal/process"
)

// Version information (set via ldflags during build).
var version = "dev"

// forkGrace bounds how long a forking launch keeps the generated terminal
// config around for the terminal to read.
const forkGrace = 2 * time.Second

// relayed are passed on to a terminal started without forking. SIGINT
// already reaches the whole foreground process group.
var relayed = []os.Signal{syscall.SIGTERM, syscall.SIGHUP}

// exitCode makes the command exit with a status without printing an error.
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	setupLogging(loader.OSEnv{})

	root := newRootCmd()
	root.SetArgs(args)

	err := root.Execute()
	var code exitCode
	switch {
	case err == nil:
		return 0
	case errors.As(err, &code):
		return int(code)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "glrnvim [options] [file ...]",
		Short: "Neovim in a terminal emulator, dressed as a GUI",
		// Everything except our own flags belongs to nvim.
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return launch(parseArgs(args))
		},
	}
}

// setupLogging configures the package logger from GLRNVIM_LOG.
func setupLogging(env loader.Env) {
	log.SetPrefix("glrnvim")
	log.SetReportTimestamp(false)
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		log.SetFormatter(log.LogfmtFormatter)
	}

	level, err := logLevel(loader.GetEnvOrDefault(env, "GLRNVIM_LOG", ""))
	log.SetLevel(level)
	if err != nil {
		log.Warn("Ignoring GLRNVIM_LOG", "error", err)
	}
}

// logLevel parses a level name. Empty means warn.
func logLevel(s string) (log.Level, error) {
	if s == "" {
		return log.WarnLevel, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.WarnLevel, err
	}
	return level, nil
}

func launch(opts options) error {
	switch {
	case opts.help:
		return showHelp(os.Stdout)
	case opts.version:
		return showVersion(os.Stdout)
	}

	env := loader.OSEnv{}
	cfg, path, err := config.Load(env, loader.DefaultFS(), runtime.GOOS)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if path != "" {
		log.Debug("Using config file", "path", path)
	} else {
		log.Debug("No config file found, using defaults")
	}

	if err := cfg.Complete(opts.fork, exec.LookPath); err != nil {
		if errors.Is(err, config.ErrNvimNotFound) {
			fmt.Fprintf(os.Stderr, "'%s' executable cannot be found.\n", config.NvimName)
			return exitCode(1)
		}
		return err
	}

	b, err := backend.New(cfg, backend.DefaultSystem())
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			log.Warn("Failed to remove generated terminal config", "error", err)
		}
	}()

	c, err := b.Command()
	if err != nil {
		return err
	}

	cmd := exec.Command(c.Path, append(c.Args, opts.nvimArgs...)...)
	cmd.Env = launchEnv(os.Environ(), runtime.GOOS)
	log.Debug("Starting terminal", "path", cmd.Path, "args", cmd.Args[1:])

	proc, err := process.Start(string(b.Name()), cmd, cfg.Fork)
	if err != nil {
		return err
	}
	if ps, ok := b.(backend.PostStarter); ok {
		ps.PostStart(proc.PID())
	}

	if cfg.Fork {
		proc.WaitTimeout(forkGrace)
		return nil
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, relayed...)
	defer signal.Stop(sigs)

	code, err := waitRelaying(proc, sigs)
	if err != nil {
		return err
	}
	if code != 0 {
		return exitCode(code)
	}
	return nil
}

// waitRelaying waits for proc to exit and passes every signal read from
// sigs on to it.
func waitRelaying(proc *process.Process, sigs <-chan os.Signal) (int, error) {
	for {
		select {
		case <-proc.Done():
			return proc.Wait()
		case sig := <-sigs:
			log.Debug("Relaying signal", "signal", sig, "pid", proc.PID())
			if err := proc.Signal(sig); err != nil {
				log.Debug("Could not relay signal", "signal", sig, "err", err)
			}
		}
	}
}
