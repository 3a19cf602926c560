package main

import (
	"context"
	"fmt"

	md2note "github.com/alnah/go-md2note"
	"github.com/alnah/go-md2note/internal/config"
	"github.com/alnah/go-md2note/internal/publish"
)

// runPublishCmd parses flags and runs the publish command.
func runPublishCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePublishFlags(args)
	if err != nil {
		return err
	}
	return runPublish(ctx, positional, flags, env)
}

// runPublish converts and posts articles, either the files given as
// arguments or, with --changed, those touched since the base revision.
func runPublish(ctx context.Context, positionalArgs []string, flags *publishFlags, env *Environment) error {
	cfg, ec, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergePublishFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	files, err := resolvePublishFiles(ctx, positionalArgs, flags.changed, cfg, env)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !flags.common.quiet {
			fmt.Fprintln(env.Stderr, "nothing to publish")
		}
		return nil
	}

	conv, err := md2note.NewConverter(
		md2note.WithRawHTML(cfg.Convert.RawHTML),
		md2note.WithBaseURL(cfg.Convert.BaseURL),
	)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common)
	opts := []publish.Option{publish.WithLogger(logger), publish.WithDryRun(flags.dryRun)}

	var client publish.Client
	if !flags.dryRun {
		if err := ec.Auth.Validate(); err != nil {
			return err
		}
		client = env.NewClient(publish.ClientConfig{
			BaseURL:    cfg.Publish.BaseURL,
			Timeout:    cfg.Publish.TimeoutDuration(),
			Headless:   !cfg.Publish.Headful,
			BrowserBin: cfg.Publish.BrowserBin,
			NoSandbox:  cfg.Publish.NoSandbox,
			Logger:     logger,
		})
		defer func() { _ = client.Close() }()

		if err := client.Login(ctx, ec.Auth); err != nil {
			return err
		}
	}

	results, err := publish.NewPublisher(client, conv, opts...).PublishAll(ctx, files)
	printPublishResults(results, flags, env)
	if err != nil {
		return fmt.Errorf("published %d of %d article(s): %w", len(results), len(files), err)
	}
	return nil
}

// mergePublishFlags merges CLI flags into config. CLI values override config values.
func mergePublishFlags(flags *publishFlags, cfg *config.Config) {
	mergeRevisionFlags(flags.base, flags.dir, cfg)
	if flags.rawHTML != "" {
		cfg.Convert.RawHTML = flags.rawHTML
	}
	if flags.baseURL != "" {
		cfg.Convert.BaseURL = flags.baseURL
	}
	if flags.timeout != "" {
		cfg.Publish.Timeout = flags.timeout
	}
	if flags.headful {
		cfg.Publish.Headful = true
	}
}

// resolvePublishFiles returns the articles to publish in order.
func resolvePublishFiles(ctx context.Context, args []string, changed bool, cfg *config.Config, env *Environment) ([]string, error) {
	switch {
	case changed && len(args) > 0:
		return nil, fmt.Errorf("%w: --changed cannot be combined with file arguments", ErrUsage)
	case changed:
		return publish.ChangedArticles(ctx, env.Runner, cfg.Articles.DiffBase, cfg.Articles.Dir)
	case len(args) == 0:
		return nil, fmt.Errorf("%w: pass article files or --changed", ErrNoInput)
	}

	for _, arg := range args {
		if err := validateMarkdownExtension(arg); err != nil {
			return nil, err
		}
	}
	return args, nil
}

// printPublishResults prints one line per published (or dry-run) article.
func printPublishResults(results []publish.Result, flags *publishFlags, env *Environment) {
	if flags.common.quiet {
		return
	}
	for _, r := range results {
		if flags.dryRun {
			fmt.Fprintf(env.Stdout, "Would publish %s (%s)\n", r.File, r.Title)
			continue
		}
		fmt.Fprintf(env.Stdout, "Published %s: %s\n", r.File, r.URL)
	}
}
