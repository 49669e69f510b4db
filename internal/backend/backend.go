package backend

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/dshills/glrnvim/internal/config"
	"github.com/dshills/glrnvim/internal/config/loader"
)

// AppID is the window class or app id given to every terminal window.
const AppID = "glrnvim"

// CommonArgs follow the editor path in every command line.
var CommonArgs = []string{
	"--cmd", "let g:glrnvim_gui=1",
	"--cmd", "set termguicolors",
	"--cmd", "set title",
}

// Command is a ready-to-run terminal invocation.
type Command struct {
	// Path is the terminal executable.
	Path string

	// Args are the arguments, not including Path.
	Args []string
}

// Backend is one supported terminal emulator.
type Backend interface {
	// Name returns the backend name.
	Name() config.Backend

	// Command builds the terminal invocation, writing the generated
	// configuration file when one is needed.
	Command() (*Command, error)

	// Close removes the generated configuration file. It is safe to call
	// more than once.
	Close() error
}

// PostStarter is implemented by backends that need to act on the running
// terminal process.
type PostStarter interface {
	// PostStart is called once the terminal has started with pid.
	// Failures are logged, never returned.
	PostStart(pid int)
}

// System is the view of the running system used by backends.
type System struct {
	// GOOS is the target operating system, as runtime.GOOS.
	GOOS string

	// Env provides environment variables, working and home directories.
	Env loader.Env

	// FS is used for existence checks and reading terminal configs.
	FS loader.FileSystem

	// LookPath searches PATH for an executable.
	LookPath func(file string) (string, error)

	// TempDir holds generated configs. Empty means os.TempDir.
	TempDir string
}

// DefaultSystem returns the System of the running process.
func DefaultSystem() System {
	return System{
		GOOS:     runtime.GOOS,
		Env:      loader.OSEnv{},
		FS:       loader.DefaultFS(),
		LookPath: exec.LookPath,
	}
}

func (s System) tempDir() string {
	if s.TempDir != "" {
		return s.TempDir
	}
	return os.TempDir()
}

// constructor creates a backend, failing when its terminal is not installed.
type constructor func(cfg *config.Config, sys System) (Backend, error)

var constructors = map[config.Backend]constructor{
	config.BackendAlacritty: newAlacritty,
	config.BackendUrxvt:     newUrxvt,
	config.BackendKitty:     newKitty,
	config.BackendWezterm:   newWezterm,
	config.BackendFoot:      newFoot,
}

// New returns the configured backend. When none is configured every
// backend is tried in config.Backends order and the first whose terminal
// resolves is used.
func New(cfg *config.Config, sys System) (Backend, error) {
	if cfg.Backend != config.BackendNone {
		ctor, ok := constructors[cfg.Backend]
		if !ok {
			return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
		}
		return ctor(cfg, sys)
	}

	errs := []error{ErrNoBackend}
	for _, name := range config.Backends {
		b, err := constructors[name](cfg, sys)
		if err == nil {
			log.Debug("Selected terminal", "backend", name)
			return b, nil
		}
		log.Debug("Terminal not available", "backend", name, "error", err)
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}
