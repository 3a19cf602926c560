package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2note/internal/config"
	"github.com/alnah/go-md2note/internal/hints"
	"github.com/alnah/go-md2note/internal/lint"
	"github.com/alnah/go-md2note/internal/publish"
)

// ErrUsage indicates an unknown command or invalid flags.
var ErrUsage = errors.New("invalid usage")

// run dispatches args to a command and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr, env.Environ())

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "convert":
		err = runConvertCmd(ctx, rest, env)
	case "lint":
		err = runLintCmd(rest, env)
	case "changed":
		err = runChangedCmd(ctx, rest, env)
	case "publish":
		err = runPublishCmd(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2note %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		runHelp([]string{cmd}, env)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, "error: "+err.Error()+hintFor(err, env))
	}
	return exitCodeFor(err)
}

// parseFlags parses args with fs, keeping pflag silent so errors are
// reported once by run.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUsage, fs.Name(), err)
	}
	return fs.Args(), nil
}

// loadConfig reads the config file named by the flag or MD2NOTE_CONFIG and
// applies environment overrides. CLI flags are merged later by each command.
func loadConfig(flagConfig string, env *Environment) (*config.Config, *envConfig, error) {
	ec := loadEnvConfig(env.Getenv)

	name := flagConfig
	if name == "" {
		name = ec.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			env.configName = name
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(ec, cfg)
	env.Config = cfg
	return cfg, ec, nil
}

// newLogger builds the stderr logger for a command.
func newLogger(w io.Writer, f commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.quiet:
		level = slog.LevelWarn
	case f.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// hintFor returns an actionable hint for well-known failures, or "".
func hintFor(err error, env *Environment) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		if env.configName != "" && !isPathLike(env.configName) {
			return hints.ForConfigNotFound(config.SearchPaths(env.configName))
		}
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, publish.ErrNoCredentials):
		return hints.ForCredentials()
	case errors.Is(err, publish.ErrLogin):
		return hints.ForLogin(env.Getenv(envNoteCookie) != "")
	case errors.Is(err, publish.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, publish.ErrGitDiff):
		return hints.ForGitDiff()
	case errors.Is(err, lint.ErrUnknownRule):
		return hints.ForUnknownRule(ruleIDs())
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}

// ruleIDs lists the built-in lint rule IDs.
func ruleIDs() []string {
	rules := lint.DefaultRules()
	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID
	}
	return ids
}

// isPathLike reports whether a config argument is a path rather than a name.
func isPathLike(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
