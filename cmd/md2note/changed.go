package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-md2note/internal/config"
	"github.com/alnah/go-md2note/internal/publish"
)

// runChangedCmd parses flags and runs the changed command.
func runChangedCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseChangedFlags(args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: changed takes no arguments, got %q", ErrUsage, positional)
	}
	return runChanged(ctx, flags, env)
}

// runChanged prints the articles changed since the base revision, one per
// line, so the list can be piped into other commands.
func runChanged(ctx context.Context, flags *changedFlags, env *Environment) error {
	cfg, _, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeRevisionFlags(flags.base, flags.dir, cfg)

	files, err := publish.ChangedArticles(ctx, env.Runner, cfg.Articles.DiffBase, cfg.Articles.Dir)
	if err != nil {
		return err
	}

	for _, f := range files {
		fmt.Fprintln(env.Stdout, f)
	}
	if len(files) == 0 && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "no changed articles under %s since %s\n", cfg.Articles.Dir, cfg.Articles.DiffBase)
	}
	return nil
}

// mergeRevisionFlags applies --base and --dir over the config.
func mergeRevisionFlags(base, dir string, cfg *config.Config) {
	if base != "" {
		cfg.Articles.DiffBase = base
	}
	if dir != "" {
		cfg.Articles.Dir = dir
	}
}
