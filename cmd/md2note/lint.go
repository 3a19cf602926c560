package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-md2note/internal/frontmatter"
	"github.com/alnah/go-md2note/internal/lint"
)

// ErrLintFailed indicates at least one error-severity finding.
var ErrLintFailed = errors.New("lint found errors")

// lintSummary counts findings across files.
type lintSummary struct {
	Files    int
	Errors   int
	Warnings int
}

// runLintCmd parses flags and runs the lint command.
func runLintCmd(args []string, env *Environment) error {
	flags, positional, err := parseLintFlags(args)
	if err != nil {
		return err
	}
	return runLint(positional, flags, env)
}

// runLint checks every markdown file named by args and prints one line per
// finding as "path:line: severity: text [rule]". Lines refer to the source
// file, front matter included. Warnings never fail the run.
func runLint(positionalArgs []string, flags *lintFlags, env *Environment) error {
	cfg, _, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}

	if err := lint.ValidateRuleIDs(flags.disable); err != nil {
		return fmt.Errorf("--disable: %w", err)
	}
	disabled := append(append([]string{}, cfg.Lint.Disable...), flags.disable...)
	linter := lint.New(lint.WithDisabled(disabled...))

	if len(positionalArgs) == 0 {
		dir, err := resolveInputPath(nil, cfg)
		if err != nil {
			return err
		}
		positionalArgs = []string{dir}
	}

	paths, err := discoverMarkdown(positionalArgs)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: no markdown files found", ErrNoInput)
	}

	var summary lintSummary
	for _, path := range paths {
		msgs, err := lintFile(linter, path)
		if errors.Is(err, ErrReadMarkdown) {
			return err
		}
		if err != nil {
			fmt.Fprintf(env.Stdout, "%s:1: error: %v [front-matter]\n", path, err)
			summary.Errors++
			summary.Files++
			continue
		}
		summary.Files++
		for _, m := range msgs {
			if m.Severity == lint.SeverityWarning {
				summary.Warnings++
				if flags.common.quiet {
					continue
				}
			} else {
				summary.Errors++
			}
			fmt.Fprintf(env.Stdout, "%s:%s\n", path, m)
		}
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "%d file(s) checked, %d error(s), %d warning(s)\n",
			summary.Files, summary.Errors, summary.Warnings)
	}

	if summary.Errors > 0 {
		return fmt.Errorf("%w: %d error(s) in %d file(s)", ErrLintFailed, summary.Errors, summary.Files)
	}
	return nil
}

// lintFile lints the body of one article and shifts message lines past the
// front matter.
func lintFile(linter *lint.Linter, path string) ([]lint.Message, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	article, err := frontmatter.Parse(string(content))
	if err != nil {
		return nil, err
	}

	msgs := linter.Lint(article.Body)
	for i := range msgs {
		msgs[i].Line += article.BodyLine - 1
	}
	return msgs, nil
}
