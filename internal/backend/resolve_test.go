package backend

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/glrnvim/internal/config/loader"
)

func TestResolveExecutable(t *testing.T) {
	fsys := newMemFS()
	fsys.AddFile("/home/me/Kitty.app/Contents/MacOS/kitty", "")

	tests := []struct {
		name     string
		goos     string
		explicit string
		exe      string
		want     string
		wantErr  bool
	}{
		{"explicit wins", "linux", "/opt/kitty/bin/kitty", "kitty", "/opt/kitty/bin/kitty", false},
		{"explicit not checked", "linux", "/nowhere/kitty", "kitty", "/nowhere/kitty", false},
		{"path lookup", "linux", "", "alacritty", "/usr/bin/alacritty", false},
		{"home bundle on darwin", "darwin", "", "kitty", "/home/me/Kitty.app/Contents/MacOS/kitty", false},
		{"no bundles off darwin", "linux", "", "kitty", "", true},
		{"not found", "darwin", "", "foot", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := testSystem(t, tt.goos, fsys, "alacritty")

			got, err := resolveExecutable(sys, tt.explicit, tt.exe)
			if tt.wantErr {
				if !errors.Is(err, ErrExecutableNotFound) {
					t.Errorf("error = %v, want ErrExecutableNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveExecutable failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveExecutable() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBundlePaths(t *testing.T) {
	sys := System{Env: loader.StaticEnv{Home: "/Users/me"}}

	got := bundlePaths(sys, "wezterm")
	want := []string{
		"/Applications/Wezterm.app/Contents/MacOS/wezterm",
		"/Users/me/Wezterm.app/Contents/MacOS/wezterm",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("bundlePaths() = %v, want %v", got, want)
	}
}

func TestBundlePaths_NoHome(t *testing.T) {
	sys := System{Env: loader.StaticEnv{}}

	got := bundlePaths(sys, "alacritty")
	if len(got) != 1 || got[0] != "/Applications/Alacritty.app/Contents/MacOS/alacritty" {
		t.Errorf("bundlePaths() = %v, want only the /Applications path", got)
	}
}
