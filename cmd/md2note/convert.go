package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	md2note "github.com/alnah/go-md2note"
	"github.com/alnah/go-md2note/internal/config"
)

// Sentinel errors for the convert command.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrWriteHTML        = errors.New("failed to write HTML file")
	ErrCreateOutputDir  = errors.New("failed to create output directory")
	ErrDialectViolation = errors.New("output leaves the editor dialect")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	check  bool // Run the dialect checker on every output
	stdout bool // Keep HTML in memory instead of writing files
}

// runConvertCmd parses flags and runs the convert command.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, _, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeConvertFlags(flags, cfg)
	if err := validateWorkers(cfg.Convert.Workers); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, cfg.Convert.OutputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	conv, err := md2note.NewConverter(
		md2note.WithRawHTML(cfg.Convert.RawHTML),
		md2note.WithBaseURL(cfg.Convert.BaseURL),
	)
	if err != nil {
		return err
	}

	params := &conversionParams{check: flags.check, stdout: flags.stdout}
	workers := resolveWorkers(cfg.Convert.Workers, len(files))
	results := convertBatch(ctx, conv, files, params, workers)

	// A single file reports its own error so the exit code reflects its cause.
	if len(results) == 1 && results[0].Err != nil {
		return fmt.Errorf("%s: %w", results[0].InputPath, results[0].Err)
	}

	failedCount := printResults(results, flags.common, params, env)
	if failedCount > 0 {
		return fmt.Errorf("%d of %d conversion(s) failed", failedCount, len(results))
	}
	return nil
}

// mergeConvertFlags merges CLI flags into config. CLI values override config values.
func mergeConvertFlags(flags *convertFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Convert.OutputDir = flags.output
	}
	if flags.workers > 0 {
		cfg.Convert.Workers = flags.workers
	}
	if flags.rawHTML != "" {
		cfg.Convert.RawHTML = flags.rawHTML
	}
	if flags.baseURL != "" {
		cfg.Convert.BaseURL = flags.baseURL
	}
}

// resolveInputPath returns the positional input, or the configured article
// directory when none is given and it exists.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	switch len(args) {
	case 0:
		if dir := cfg.Articles.Dir; dir != "" {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return dir, nil
			}
		}
		return "", fmt.Errorf("%w: pass a markdown file or directory", ErrNoInput)
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: convert takes one file or directory, got %d", ErrUsage, len(args))
	}
}

// checkOutput runs the dialect checker and folds violations into one error.
func checkOutput(html string) error {
	violations, err := md2note.Check(html)
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		return nil
	}
	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.String()
	}
	return fmt.Errorf("%w: %s", ErrDialectViolation, strings.Join(msgs, "; "))
}

// ensureOutputDir creates the parent directory of an output file.
func ensureOutputDir(outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
	}
	return nil
}
