package main

// Notes:
// - run: we test dispatch, exit codes and the error/hint line through the
//   injected Environment. Command behavior is covered in each command's tests.
// - hasVerboseFlag, isPathLike: pure helpers tested with tables.
// - newLogger: we test level selection by checking Enabled, not output format.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRun_Dispatch - Command routing and exit codes
// ---------------------------------------------------------------------------

func TestRun_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "no arguments prints usage",
			args:       nil,
			wantCode:   ExitUsage,
			wantStderr: "Usage: md2note <command>",
		},
		{
			name:       "unknown command",
			args:       []string{"frobnicate"},
			wantCode:   ExitUsage,
			wantStderr: "Unknown command: frobnicate",
		},
		{
			name:       "version command",
			args:       []string{"version"},
			wantCode:   ExitSuccess,
			wantStdout: fmt.Sprintf("md2note %s\n", Version),
		},
		{
			name:       "version flag",
			args:       []string{"--version"},
			wantCode:   ExitSuccess,
			wantStdout: fmt.Sprintf("md2note %s\n", Version),
		},
		{
			name:       "help without command",
			args:       []string{"help"},
			wantCode:   ExitSuccess,
			wantStdout: "Commands:",
		},
		{
			name:       "help for publish",
			args:       []string{"help", "publish"},
			wantCode:   ExitSuccess,
			wantStdout: "Usage: md2note publish",
		},
		{
			name:       "help flag on a command",
			args:       []string{"convert", "--help"},
			wantCode:   ExitSuccess,
			wantStdout: "Usage: md2note convert",
		},
		{
			name:       "unknown flag",
			args:       []string{"lint", "--bogus"},
			wantCode:   ExitUsage,
			wantStderr: "unknown flag: --bogus",
		},
		{
			name:       "changed rejects arguments",
			args:       []string{"changed", "extra"},
			wantCode:   ExitUsage,
			wantStderr: "changed takes no arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t)
			code := run(context.Background(), tt.args, te.Environment)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, te.stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(te.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", te.stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(te.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", te.stderr.String(), tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRun_ErrorOutput - Error line, hints and environment warnings
// ---------------------------------------------------------------------------

func TestRun_ErrorOutput(t *testing.T) {
	t.Parallel()

	t.Run("config not found by name adds a hint", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		code := run(context.Background(), []string{"lint", "--config", "no-such-md2note-config"}, te.Environment)

		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		stderr := te.stderr.String()
		if !strings.HasPrefix(stderr, "error: loading config:") {
			t.Errorf("stderr = %q, want error prefix", stderr)
		}
		if !strings.Contains(stderr, "hint: use --config") {
			t.Errorf("stderr = %q, want config hint", stderr)
		}
	})

	t.Run("config from environment variable", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		te.vars[envConfigPath] = "./missing/config.yaml"
		code := run(context.Background(), []string{"changed"}, te.Environment)

		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(te.stderr.String(), "config file not found") {
			t.Errorf("stderr = %q, want config not found", te.stderr.String())
		}
	})

	t.Run("unknown lint rule lists available rules", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		code := run(context.Background(), []string{"lint", "--disable", "no-such-rule", "x.md"}, te.Environment)

		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(te.stderr.String(), "hint: available: heading-level") {
			t.Errorf("stderr = %q, want rule list hint", te.stderr.String())
		}
	})

	t.Run("unknown MD2NOTE variable warns", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		te.vars["MD2NOTE_RAWHTML"] = "drop"
		_ = run(context.Background(), []string{"version"}, te.Environment)

		if !strings.Contains(te.stderr.String(), "unknown environment variable MD2NOTE_RAWHTML") {
			t.Errorf("stderr = %q, want unknown variable warning", te.stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestHasVerboseFlag - Early verbose detection for maxprocs logging
// ---------------------------------------------------------------------------

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"convert", "a.md"}, false},
		{[]string{"convert", "-v", "a.md"}, true},
		{[]string{"publish", "--verbose"}, true},
		{[]string{"convert", "--", "-v"}, false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()
			if got := hasVerboseFlag(tt.args); got != tt.want {
				t.Errorf("hasVerboseFlag(%q) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsPathLike - Config name vs path detection
// ---------------------------------------------------------------------------

func TestIsPathLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"work", false},
		{"work.yaml", false},
		{"./work.yaml", true},
		{"/etc/md2note.yaml", true},
		{`C:\md2note.yaml`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := isPathLike(tt.input); got != tt.want {
				t.Errorf("isPathLike(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNewLogger - Level selection from --quiet and --verbose
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flags     commonFlags
		wantInfo  bool
		wantDebug bool
	}{
		{"default", commonFlags{}, true, false},
		{"quiet", commonFlags{quiet: true}, false, false},
		{"verbose", commonFlags{verbose: true}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger := newLogger(io.Discard, tt.flags)
			ctx := context.Background()
			if got := logger.Enabled(ctx, slog.LevelInfo); got != tt.wantInfo {
				t.Errorf("Info enabled = %v, want %v", got, tt.wantInfo)
			}
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("Debug enabled = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDefaultEnv - Production wiring
// ---------------------------------------------------------------------------

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()
	if env.Now == nil || env.Getenv == nil || env.Environ == nil {
		t.Fatal("DefaultEnv() left a function nil")
	}
	if env.Stdout == nil || env.Stderr == nil || env.Runner == nil || env.NewClient == nil {
		t.Fatal("DefaultEnv() left a dependency nil")
	}
	if env.Config == nil || env.Config.Articles.Dir != "articles" {
		t.Errorf("Config = %+v, want defaults", env.Config)
	}
}
