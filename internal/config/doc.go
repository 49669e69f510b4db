// Package config provides the glrnvim application configuration.
//
// Settings are read from a YAML file in the user's configuration directory
// and overlaid with GLRNVIM_* environment variables:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. glrnvim/config.yml      │  ← ~/.config/glrnvim/config.yml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The legacy location ~/.config/glrnvim.yml is still read when the new file
// does not exist. The merged settings are checked against a schema before
// they are decoded; unknown keys are logged and ignored.
//
// # Example
//
//	backend: alacritty
//	fonts:
//	  - JetBrains Mono
//	font_size: 13
//	load_term_conf: true
//
// # Basic Usage
//
//	cfg, path, err := config.Load(loader.OSEnv{}, loader.DefaultFS(), runtime.GOOS)
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Complete(fork, exec.LookPath); err != nil {
//	    return err
//	}
//
// Config is a plain value. It is built once per invocation and never
// modified after Complete.
package config
