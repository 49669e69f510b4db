package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/dshills/glrnvim/internal/config/loader"
	"github.com/dshills/glrnvim/internal/config/schema"
)

// NvimName is the editor executable looked up on PATH.
const NvimName = "nvim"

// DefaultFontSize is applied when the terminal's own configuration is not loaded.
const DefaultFontSize uint8 = 12

// Backend names a supported terminal emulator.
type Backend string

const (
	BackendNone      Backend = ""
	BackendAlacritty Backend = "alacritty"
	BackendUrxvt     Backend = "urxvt"
	BackendKitty     Backend = "kitty"
	BackendWezterm   Backend = "wezterm"
	BackendFoot      Backend = "foot"
)

// Backends lists every supported backend in probing order.
var Backends = []Backend{BackendAlacritty, BackendUrxvt, BackendKitty, BackendWezterm, BackendFoot}

// ParseBackend parses a backend name case-insensitively.
// The empty string yields BackendNone.
func ParseBackend(s string) (Backend, error) {
	name := Backend(strings.ToLower(strings.TrimSpace(s)))
	if name == BackendNone {
		return BackendNone, nil
	}
	for _, b := range Backends {
		if b == name {
			return b, nil
		}
	}
	return BackendNone, fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// Config is the resolved glrnvim configuration.
type Config struct {
	// Backend selects the terminal. BackendNone probes all backends.
	Backend Backend `yaml:"backend"`

	// TermExePath overrides the terminal executable lookup.
	TermExePath string `yaml:"term_exe_path"`

	// TermConfigPath is passed to the terminal as its only config file.
	TermConfigPath string `yaml:"term_config_path"`

	// NvimExePath is the editor executable. Resolved from PATH when empty.
	NvimExePath string `yaml:"nvim_exe_path"`

	// LoadTermConf layers the generated settings over the terminal's own config.
	LoadTermConf bool `yaml:"load_term_conf"`

	// StrictTermConf makes a malformed discovered terminal config fatal.
	StrictTermConf bool `yaml:"strict_term_conf"`

	Fonts    []string `yaml:"fonts"`
	FontSize uint8    `yaml:"font_size"`

	// Fork returns immediately after the terminal starts.
	Fork bool `yaml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{}
}

// UserConfigDir returns the per-user configuration directory for goos,
// following the rules of os.UserConfigDir but reading through env.
func UserConfigDir(env loader.Env, goos string) (string, error) {
	switch goos {
	case "darwin":
		home, err := env.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if dir, ok := env.LookupEnv("XDG_CONFIG_HOME"); ok && filepath.IsAbs(dir) {
			return dir, nil
		}
		home, err := env.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config"), nil
	}
}

// Paths returns the candidate settings files, newest location first.
func Paths(env loader.Env, goos string) []string {
	dir, err := UserConfigDir(env, goos)
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(dir, "glrnvim", "config.yml"),
		filepath.Join(dir, "glrnvim.yml"),
	}
}

// Load reads the first existing settings file and overlays the environment.
// It returns the path that was read, or "" when defaults were used.
func Load(env loader.Env, fsys loader.FileSystem, goos string) (*Config, string, error) {
	var used string
	for _, path := range Paths(env, goos) {
		if loader.IsRegularFile(fsys, path) {
			used = path
			break
		}
	}

	// Later layers override earlier ones.
	var layers []loader.Loader
	if used != "" {
		layers = append(layers, loader.NewYAMLLoaderWithFS(fsys, used))
	}
	layers = append(layers, loader.NewEnvLoader(env, "GLRNVIM_"))

	merged := map[string]any{}
	for _, l := range layers {
		m, err := l.Load()
		if err != nil {
			return nil, used, err
		}
		merged = loader.DeepMerge(merged, loader.Clone(m))
	}

	res, err := schema.NewValidator(settingsSchema()).Validate(merged)
	if err != nil {
		return nil, used, fmt.Errorf("invalid settings: %w", err)
	}
	for _, key := range res.Unknown {
		log.Warn("Unknown setting", "key", key, "file", used)
	}
	for key, repl := range res.Deprecated {
		log.Warn("Deprecated setting", "key", key, "use", repl)
	}

	cfg, err := decode(merged)
	if err != nil {
		return nil, used, err
	}
	return cfg, used, cfg.Validate()
}

// decode converts a merged settings map into a Config.
func decode(settings map[string]any) (*Config, error) {
	// exe_path is the name used by older releases.
	if v, ok := settings["exe_path"]; ok {
		if _, set := settings["term_exe_path"]; !set {
			settings["term_exe_path"] = v
		}
		delete(settings, "exe_path")
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &loader.ParseError{Path: "<settings>", Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// Validate checks the backend name and the backend-required invariant.
func (c *Config) Validate() error {
	b, err := ParseBackend(string(c.Backend))
	if err != nil {
		return err
	}
	c.Backend = b

	if c.Backend == BackendNone {
		if c.TermExePath != "" {
			return fmt.Errorf("%w when term_exe_path is set", ErrBackendRequired)
		}
		if c.TermConfigPath != "" {
			return fmt.Errorf("%w when term_config_path is set", ErrBackendRequired)
		}
	}
	return nil
}

// Complete fills in values that depend on the running system.
func (c *Config) Complete(fork bool, lookPath func(string) (string, error)) error {
	c.Fork = fork

	if c.NvimExePath == "" {
		path, err := lookPath(NvimName)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrNvimNotFound, NvimName)
		}
		c.NvimExePath = path
	}

	if !c.LoadTermConf && c.FontSize == 0 {
		c.FontSize = DefaultFontSize
	}
	return nil
}
