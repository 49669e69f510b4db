package main

import (
	"os"
	"os/exec"
	"reflect"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/glrnvim/internal/process"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options
	}{
		{"nothing", nil, options{fork: true}},
		{"files", []string{"a.go", "+10"}, options{fork: true, nvimArgs: []string{"a.go", "+10"}}},
		{"nofork", []string{"--nofork", "-d", "a", "b"}, options{nvimArgs: []string{"-d", "a", "b"}}},
		{"help", []string{"-h"}, options{help: true, fork: true}},
		{"long help", []string{"x", "--help"}, options{help: true, fork: true, nvimArgs: []string{"x"}}},
		{"version", []string{"--version"}, options{version: true, fork: true}},
		{"nvim flags pass through", []string{"-V1", "--clean"}, options{fork: true, nvimArgs: []string{"-V1", "--clean"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseArgs(tt.args); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseArgs(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestLaunchEnv(t *testing.T) {
	environ := []string{"HOME=/Users/me", "TERM_PROGRAM=iTerm.app", "TERM_PROGRAM_VERSION=3.4", "TERM=xterm"}

	if got := launchEnv(environ, "linux"); got != nil {
		t.Errorf("launchEnv(linux) = %q, want nil to inherit", got)
	}

	want := []string{"HOME=/Users/me", "TERM=xterm"}
	if got := launchEnv(environ, "darwin"); !reflect.DeepEqual(got, want) {
		t.Errorf("launchEnv(darwin) = %q, want %q", got, want)
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    log.Level
		wantErr bool
	}{
		{"", log.WarnLevel, false},
		{"debug", log.DebugLevel, false},
		{"info", log.InfoLevel, false},
		{"error", log.ErrorLevel, false},
		{"loud", log.WarnLevel, true},
	}

	for _, tt := range tests {
		got, err := logLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("logLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("logLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRewriteHelp(t *testing.T) {
	help := `Usage:
  nvim [options] [file ...]

Options:
  --cmd <cmd>           Execute <cmd> before any config
  -h, --help            Print this help message

See ":help startup-options" for all options.
`
	got := rewriteHelp(help)

	want := `Usage:
  glrnvim [options] [file ...]

Options:
  --nofork              Do not fork when starting GUI
  --cmd <cmd>           Execute <cmd> before any config
  -h, --help            Print this help message

See ":help startup-options" for all options.
`
	if got != want {
		t.Errorf("rewriteHelp() =\n%s\nwant\n%s", got, want)
	}
	if strings.Count(got, "Usage:") != 1 {
		t.Error("usage header duplicated")
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(3).Error(); got != "exit status 3" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWaitRelaying(t *testing.T) {
	proc, err := process.Start("sleep", exec.Command("sleep", "10"), false)
	if err != nil {
		t.Fatalf("failed to start process: %v", err)
	}
	sigs := make(chan os.Signal, 1)
	sigs <- syscall.SIGTERM

	done := make(chan error, 1)
	go func() {
		_, err := waitRelaying(proc, sigs)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("waitRelaying returned %v", err)
		}
	case <-time.After(5 * time.Second):
		_ = proc.Cmd.Process.Kill()
		t.Fatal("SIGTERM was not relayed to the terminal")
	}
	if proc.State() != process.StateKilled {
		t.Errorf("state = %v, want %v", proc.State(), process.StateKilled)
	}
}

func TestWaitRelaying_ExitCode(t *testing.T) {
	proc, err := process.Start("sh", exec.Command("sh", "-c", "exit 4"), false)
	if err != nil {
		t.Fatalf("failed to start process: %v", err)
	}

	code, err := waitRelaying(proc, make(chan os.Signal))
	if err != nil {
		t.Fatalf("waitRelaying returned %v", err)
	}
	if code != 4 {
		t.Errorf("code = %d, want 4", code)
	}
}
