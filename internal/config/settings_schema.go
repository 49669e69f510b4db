package config

import (
	"math"

	"github.com/dshills/glrnvim/internal/config/schema"
)

// settingsSchema describes the glrnvim settings file.
func settingsSchema() *schema.Schema {
	names := make([]string, len(Backends))
	for i, b := range Backends {
		names[i] = string(b)
	}

	return schema.Object(map[string]*schema.Schema{
		"backend":          schema.String("terminal emulator to launch").OneOf(names...),
		"term_exe_path":    schema.String("terminal executable"),
		"exe_path":         schema.String("terminal executable").DeprecatedBy("term_exe_path"),
		"term_config_path": schema.String("terminal config file used instead of the generated one"),
		"nvim_exe_path":    schema.String("nvim executable"),
		"load_term_conf":   schema.Boolean("layer settings over the terminal's own config"),
		"strict_term_conf": schema.Boolean("fail on a malformed terminal config"),
		"fonts":            schema.Array("font families, first one is used", schema.String("font family")),
		"font_size":        schema.Integer("font size in points", 0, math.MaxUint8),
	})
}
