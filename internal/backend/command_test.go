package backend

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/glrnvim/internal/config"
	"github.com/dshills/glrnvim/internal/config/loader"
)

// generated returns the single generated config in the temp dir, or "".
func generated(t *testing.T, sys System) string {
	t.Helper()
	entries, err := os.ReadDir(sys.TempDir)
	if err != nil {
		t.Fatal(err)
	}
	switch len(entries) {
	case 0:
		return ""
	case 1:
		return filepath.Join(sys.TempDir, entries[0].Name())
	default:
		t.Fatalf("temp dir holds %d files, want at most 1", len(entries))
		return ""
	}
}

func readGenerated(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading generated config: %v", err)
	}
	return string(data)
}

func buildCommand(t *testing.T, cfg *config.Config, sys System) *Command {
	t.Helper()
	b, err := New(cfg, sys)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	cmd, err := b.Command()
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	return cmd
}

// flagValues returns the value following every occurrence of flag.
func flagValues(args []string, flag string) []string {
	var out []string
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			out = append(out, args[i+1])
		}
	}
	return out
}

func withCommon(args ...string) []string {
	return append(args, CommonArgs...)
}

func TestCommand_Shapes(t *testing.T) {
	const nvim = "/usr/bin/nvim"

	tests := []struct {
		backend config.Backend
		goos    string
		ext     string
		want    func(tmp string) []string
	}{
		{config.BackendAlacritty, "linux", ".toml", func(tmp string) []string {
			return withCommon("--config-file", tmp, "--class", AppID, "--working-directory", "/work", "-e", nvim)
		}},
		{config.BackendAlacritty, "darwin", ".toml", func(tmp string) []string {
			return withCommon("--config-file", tmp, "--working-directory", "/work", "-e", nvim)
		}},
		{config.BackendKitty, "linux", ".conf", func(tmp string) []string {
			return withCommon("--config", tmp, "--class", AppID, "--directory", "/work", nvim)
		}},
		{config.BackendKitty, "darwin", ".conf", func(tmp string) []string {
			return withCommon("--config", tmp, "--directory", "/work", nvim)
		}},
		{config.BackendWezterm, "linux", ".lua", func(tmp string) []string {
			return withCommon("--config-file", tmp, "start", "--class", AppID, "--cwd", "/work", "--", nvim)
		}},
		{config.BackendFoot, "linux", ".ini", func(tmp string) []string {
			return withCommon("--config", tmp, "--app-id", AppID, "--working-directory", "/work", nvim)
		}},
		{config.BackendUrxvt, "linux", "", func(string) []string {
			return withCommon("-name", AppID, "-cd", "/work", "-keysym.C-z:", "builtin-string:", "-e", nvim)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend)+"/"+tt.goos, func(t *testing.T) {
			sys := testSystem(t, tt.goos, newMemFS(), string(tt.backend))
			cfg := testConfig(tt.backend)

			cmd := buildCommand(t, cfg, sys)

			if want := "/usr/bin/" + string(tt.backend); cmd.Path != want {
				t.Errorf("Path = %q, want %q", cmd.Path, want)
			}
			tmp := generated(t, sys)
			if got := filepath.Ext(tmp); got != tt.ext {
				t.Errorf("generated file %q has extension %q, want %q", tmp, got, tt.ext)
			}
			if want := tt.want(tmp); !reflect.DeepEqual(cmd.Args, want) {
				t.Errorf("Args =\n  %q\nwant\n  %q", cmd.Args, want)
			}
		})
	}
}

func TestCommand_ExplicitConfig(t *testing.T) {
	fsys := newMemFS()
	fsys.AddFile("/home/me/kitty-gui.conf", "font_size 20\n")
	fsys.AddFile("/etc/xdg/kitty/kitty.conf", "font_size 10\n")
	sys := testSystem(t, "linux", fsys, "kitty")

	cfg := testConfig(config.BackendKitty)
	cfg.TermConfigPath = "/home/me/kitty-gui.conf"
	cfg.LoadTermConf = true
	cfg.FontSize = 14

	cmd := buildCommand(t, cfg, sys)

	got := flagValues(cmd.Args, "--config")
	if len(got) != 1 || got[0] != cfg.TermConfigPath {
		t.Errorf("--config values = %q, want only %q", got, cfg.TermConfigPath)
	}
	if tmp := generated(t, sys); tmp != "" {
		t.Errorf("generated %q, want no generated config", tmp)
	}
}

func TestCommand_ExplicitConfigErrors(t *testing.T) {
	fsys := newMemFS()
	fsys.AddFile("/home/me/bad.toml", "[font\nsize = 1\n")
	fsys.AddFile("/home/me/bad.yml", "- not\n- a mapping\n")

	tests := []struct {
		path      string
		wantParse bool
	}{
		{"/home/me/bad.toml", true},
		{"/home/me/bad.yml", true},
		{"/home/me/missing.toml", false},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			sys := testSystem(t, "linux", fsys, "alacritty")
			cfg := testConfig(config.BackendAlacritty)
			cfg.TermConfigPath = tt.path

			b, err := New(cfg, sys)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			_, err = b.Command()
			if err == nil {
				t.Fatal("Command succeeded, want an error")
			}
			var pe *loader.ParseError
			if got := errors.As(err, &pe); got != tt.wantParse {
				t.Errorf("error = %v, ParseError = %v, want %v", err, got, tt.wantParse)
			}
		})
	}
}

func TestCommand_KittyLoadExisting(t *testing.T) {
	fsys := newMemFS()
	fsys.AddFile("/etc/xdg/kitty/kitty.conf", "font_size 10\n")
	fsys.AddFile("/home/me/.config/kitty/kitty.conf", "font_family Hack\n")
	fsys.AddFile("/xdg/dirs/kitty/kitty.conf", "font_family Other\n")
	sys := testSystem(t, "linux", fsys, "kitty")
	sys.Env = loader.StaticEnv{
		Vars: map[string]string{"HOME": "/home/me", "XDG_CONFIG_DIRS": "/xdg/dirs"},
		Dir:  "/work",
		Home: "/home/me",
	}

	cfg := testConfig(config.BackendKitty)
	cfg.LoadTermConf = true
	cfg.Fonts = []string{"Mono"}

	cmd := buildCommand(t, cfg, sys)

	tmp := generated(t, sys)
	want := []string{"/etc/xdg/kitty/kitty.conf", "/home/me/.config/kitty/kitty.conf", tmp}
	if got := flagValues(cmd.Args, "--config"); !reflect.DeepEqual(got, want) {
		t.Errorf("--config values = %q, want %q", got, want)
	}

	content := readGenerated(t, tmp)
	if !strings.HasPrefix(content, "clear_all_shortcuts yes\n") {
		t.Errorf("generated config does not clear shortcuts first:\n%s", content)
	}
	if !strings.Contains(content, "font_family Mono\n") {
		t.Errorf("generated config lacks the font:\n%s", content)
	}
}

func TestCommand_FootIncludesConfigDirsEntry(t *testing.T) {
	fsys := newMemFS()
	fsys.AddFile("/usr/local/etc/xdg/foot/foot.ini", "[main]\nword-delimiters=,`|:\"'()\nfont=Hack:size=10\n")
	sys := testSystem(t, "linux", fsys, "foot")
	sys.Env = loader.StaticEnv{
		Vars: map[string]string{"HOME": "/home/me", "XDG_CONFIG_DIRS": "/opt/xdg:/usr/local/etc/xdg"},
		Dir:  "/work",
		Home: "/home/me",
	}

	cfg := testConfig(config.BackendFoot)
	cfg.LoadTermConf = true
	cfg.FontSize = 14

	cmd := buildCommand(t, cfg, sys)

	tmp := generated(t, sys)
	if got := flagValues(cmd.Args, "--config"); !reflect.DeepEqual(got, []string{tmp}) {
		t.Errorf("--config values = %q, want only the generated file", got)
	}
	content := readGenerated(t, tmp)
	for _, want := range []string{"include", "/usr/local/etc/xdg/foot/foot.ini", "Hack:size=14", "Control+z"} {
		if !strings.Contains(content, want) {
			t.Errorf("generated config lacks %q:\n%s", want, content)
		}
	}
	if strings.Contains(content, "word-delimiters") {
		t.Errorf("generated config re-serializes untouched keys:\n%s", content)
	}
}

func TestCommand_AlacrittyLoadExisting(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		ext     string
		contain []string
	}{
		{
			name: "legacy yaml",
			files: map[string]string{
				"/home/me/.alacritty.yml": "colors:\n  primary:\n    background: 0x1d1f21\n",
			},
			ext:     ".yml",
			contain: []string{"background: '0x1d1f21'", "family: Mono", "key_bindings:"},
		},
		{
			name: "toml preferred over yaml",
			files: map[string]string{
				"/home/me/.alacritty.yml":                 "font:\n  size: 30\n",
				"/home/me/.config/alacritty/alacritty.toml": "[colors.primary]\nbackground = \"#1d1f21\"\n",
			},
			ext:     ".toml",
			contain: []string{"#1d1f21", "Mono", "bindings"},
		},
		{
			name:    "nothing found",
			files:   map[string]string{},
			ext:     ".toml",
			contain: []string{"Mono"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := newMemFS()
			for path, content := range tt.files {
				fsys.AddFile(path, content)
			}
			sys := testSystem(t, "linux", fsys, "alacritty")
			cfg := testConfig(config.BackendAlacritty)
			cfg.LoadTermConf = true
			cfg.Fonts = []string{"Mono"}

			cmd := buildCommand(t, cfg, sys)

			tmp := generated(t, sys)
			if got := flagValues(cmd.Args, "--config-file"); len(got) != 1 || got[0] != tmp {
				t.Errorf("--config-file values = %q, want only the generated file", got)
			}
			if filepath.Ext(tmp) != tt.ext {
				t.Errorf("generated %q, want extension %q", tmp, tt.ext)
			}
			content := readGenerated(t, tmp)
			for _, s := range tt.contain {
				if !strings.Contains(content, s) {
					t.Errorf("generated config lacks %q:\n%s", s, content)
				}
			}
		})
	}
}

func TestCommand_MalformedDiscoveredConfig(t *testing.T) {
	fsys := newMemFS()
	fsys.AddFile("/home/me/.alacritty.toml", "[font\nsize = 1\n")

	t.Run("lenient", func(t *testing.T) {
		sys := testSystem(t, "linux", fsys, "alacritty")
		cfg := testConfig(config.BackendAlacritty)
		cfg.LoadTermConf = true
		cfg.FontSize = 11

		buildCommand(t, cfg, sys)

		content := readGenerated(t, generated(t, sys))
		if !strings.Contains(content, "size = 11") {
			t.Errorf("generated config = %q, want the overrides on an empty document", content)
		}
	})

	t.Run("strict", func(t *testing.T) {
		sys := testSystem(t, "linux", fsys, "alacritty")
		cfg := testConfig(config.BackendAlacritty)
		cfg.LoadTermConf = true
		cfg.StrictTermConf = true

		b, err := New(cfg, sys)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		_, err = b.Command()
		var pe *loader.ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Command error = %v, want *loader.ParseError", err)
		}
		if pe.Path != "/home/me/.alacritty.toml" {
			t.Errorf("Path = %q", pe.Path)
		}
	})
}

func TestCommand_WeztermLoadExisting(t *testing.T) {
	fsys := newMemFS()
	fsys.AddFile("/home/me/.wezterm.lua", "return {}\n")
	fsys.AddFile("/custom/wez.lua", "return { font_size = 9 }\n")
	sys := testSystem(t, "linux", fsys, "wezterm")
	sys.Env = loader.StaticEnv{
		Vars: map[string]string{"HOME": "/home/me", "WEZTERM_CONFIG_FILE": "/custom/wez.lua"},
		Dir:  "/work",
		Home: "/home/me",
	}

	cfg := testConfig(config.BackendWezterm)
	cfg.LoadTermConf = true

	cmd := buildCommand(t, cfg, sys)

	tmp := generated(t, sys)
	if got := flagValues(cmd.Args, "--config-file"); len(got) != 1 || got[0] != tmp {
		t.Errorf("--config-file values = %q, want only the generated file", got)
	}
	content := readGenerated(t, tmp)
	if !strings.Contains(content, `dofile, "/custom/wez.lua"`) {
		t.Errorf("generated config does not load WEZTERM_CONFIG_FILE:\n%s", content)
	}
}

func TestCommand_NoWorkingDirectory(t *testing.T) {
	sys := testSystem(t, "linux", newMemFS(), "foot")
	sys.Env = loader.StaticEnv{Home: "/home/me"}

	cmd := buildCommand(t, testConfig(config.BackendFoot), sys)

	for _, a := range cmd.Args {
		if a == "--working-directory" {
			t.Errorf("Args = %q, want no working directory flag", cmd.Args)
		}
	}
}

func TestCommand_Repeated(t *testing.T) {
	sys := testSystem(t, "linux", newMemFS(), "kitty")
	b, err := New(testConfig(config.BackendKitty), sys)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer b.Close()

	if _, err := b.Command(); err != nil {
		t.Fatal(err)
	}
	cmd, err := b.Command()
	if err != nil {
		t.Fatal(err)
	}

	tmp := generated(t, sys)
	if got := flagValues(cmd.Args, "--config"); len(got) != 1 || got[0] != tmp {
		t.Errorf("--config values = %q, want the latest generated file %q", got, tmp)
	}
}

func TestCommand_UrxvtIgnoresConfigPath(t *testing.T) {
	sys := testSystem(t, "linux", newMemFS(), "urxvt")
	cfg := testConfig(config.BackendUrxvt)
	cfg.TermConfigPath = "/home/me/.Xresources"
	cfg.Fonts = []string{"Hack", "Noto Color Emoji"}
	cfg.FontSize = 12

	cmd := buildCommand(t, cfg, sys)

	want := "xft:Hack:size=12:antialias=true,xft:Noto Color Emoji:antialias=true"
	if got := flagValues(cmd.Args, "-fn"); len(got) != 1 || got[0] != want {
		t.Errorf("-fn = %q, want %q", got, want)
	}
	for _, a := range cmd.Args {
		if a == cfg.TermConfigPath {
			t.Errorf("Args = %q, want the config path ignored", cmd.Args)
		}
	}
}

func TestUrxvtFonts(t *testing.T) {
	tests := []struct {
		fonts []string
		size  uint8
		want  string
	}{
		{nil, 12, ""},
		{[]string{"Hack"}, 0, "xft:Hack:antialias=true"},
		{[]string{"Hack"}, 14, "xft:Hack:size=14:antialias=true"},
		{[]string{"Hack", "Emoji"}, 9, "xft:Hack:size=9:antialias=true,xft:Emoji:antialias=true"},
	}

	for _, tt := range tests {
		if got := urxvtFonts(tt.fonts, tt.size); got != tt.want {
			t.Errorf("urxvtFonts(%q, %d) = %q, want %q", tt.fonts, tt.size, got, tt.want)
		}
	}
}
