package loader

import (
	"os"
	"strconv"
	"strings"
)

// Env gives access to process-wide state. Code that needs environment
// variables, the working directory or the home directory reads them through
// an Env so tests can substitute fixed values.
type Env interface {
	LookupEnv(key string) (string, bool)
	Environ() []string
	Getwd() (string, error)
	UserHomeDir() (string, error)
}

// OSEnv implements Env using the real process environment.
type OSEnv struct{}

func (OSEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (OSEnv) Environ() []string                   { return os.Environ() }
func (OSEnv) Getwd() (string, error)              { return os.Getwd() }
func (OSEnv) UserHomeDir() (string, error)        { return os.UserHomeDir() }

// StaticEnv is an Env backed by fixed values.
// An empty Dir or Home makes Getwd or UserHomeDir fail.
type StaticEnv struct {
	Vars map[string]string
	Dir  string
	Home string
}

func (e StaticEnv) LookupEnv(key string) (string, bool) {
	v, ok := e.Vars[key]
	return v, ok
}

func (e StaticEnv) Environ() []string {
	out := make([]string, 0, len(e.Vars))
	for k, v := range e.Vars {
		out = append(out, k+"="+v)
	}
	return out
}

func (e StaticEnv) Getwd() (string, error) {
	if e.Dir == "" {
		return "", os.ErrNotExist
	}
	return e.Dir, nil
}

func (e StaticEnv) UserHomeDir() (string, error) {
	if e.Home == "" {
		return "", os.ErrNotExist
	}
	return e.Home, nil
}

// Expand replaces $VAR and ${VAR} in s using env.
// Undefined variables expand to the empty string.
func Expand(env Env, s string) string {
	return os.Expand(s, func(key string) string {
		v, _ := env.LookupEnv(key)
		return v
	})
}

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	env     Env
	prefix  string            // Environment variable prefix (e.g., "GLRNVIM_")
	mapping map[string]string // Env var -> config key
	lists   map[string]bool   // config keys holding comma separated lists
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "GLRNVIM_").
func NewEnvLoader(env Env, prefix string) *EnvLoader {
	return &EnvLoader{
		env:     env,
		prefix:  prefix,
		mapping: defaultEnvMapping(),
		lists:   map[string]bool{"fonts": true},
	}
}

func defaultEnvMapping() map[string]string {
	return map[string]string{
		"GLRNVIM_BACKEND":        "backend",
		"GLRNVIM_TERM":           "term_exe_path",
		"GLRNVIM_TERM_CONFIG":    "term_config_path",
		"GLRNVIM_NVIM":           "nvim_exe_path",
		"GLRNVIM_FONTS":          "fonts",
		"GLRNVIM_FONT_SIZE":      "font_size",
		"GLRNVIM_LOAD_TERM_CONF": "load_term_conf",
	}
}

// Load reads environment variables and returns a configuration map.
// GLRNVIM_LOG is reserved for the log level and never reported.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for env, key := range l.mapping {
		if val, ok := l.env.LookupEnv(env); ok {
			config[key] = l.parseValue(key, val)
		}
	}

	for _, env := range l.env.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) || name == l.prefix+"LOG" {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}

		// GLRNVIM_STRICT_TERM_CONF -> strict_term_conf
		key := strings.ToLower(strings.TrimPrefix(name, l.prefix))
		config[key] = l.parseValue(key, value)
	}

	return config, nil
}

// parseValue attempts to parse the string value into an appropriate type.
func (l *EnvLoader) parseValue(key, s string) any {
	if l.lists[key] {
		var items []any
		for _, item := range strings.Split(s, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	}

	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	return s
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(env Env, key, defaultValue string) string {
	if val, ok := env.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultValue
}
