package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	rawHTML string
	baseURL string
	check   bool
	stdout  bool
}

// lintFlags holds flags for the lint command.
type lintFlags struct {
	common  commonFlags
	disable []string
}

// changedFlags holds flags for the changed command.
type changedFlags struct {
	common commonFlags
	base   string
	dir    string
}

// publishFlags holds flags for the publish command.
type publishFlags struct {
	common  commonFlags
	changed bool
	dryRun  bool
	base    string
	dir     string
	rawHTML string
	baseURL string
	timeout string
	headful bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed output")
}

// addConversionFlags adds flags that shape the HTML output.
func addConversionFlags(fs *flag.FlagSet, rawHTML, baseURL *string) {
	fs.StringVar(rawHTML, "raw-html", "", "raw HTML handling: keep, sanitize, drop")
	fs.StringVar(baseURL, "base-url", "", "base URL for relative image and link targets")
}

// addRevisionFlags adds flags that select changed articles.
func addRevisionFlags(fs *flag.FlagSet, base, dir *string) {
	fs.StringVar(base, "base", "", "revision to compare HEAD against (default HEAD~1)")
	fs.StringVar(dir, "dir", "", "article directory (default articles)")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.check, "check", false, "fail when output leaves the editor dialect")
	fs.BoolVar(&f.stdout, "stdout", false, "print HTML to stdout instead of writing files")
	addConversionFlags(fs, &f.rawHTML, &f.baseURL)
	addCommonFlags(fs, &f.common)

	rest, err := parseFlags(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// parseLintFlags parses lint command flags and returns positional args.
func parseLintFlags(args []string) (*lintFlags, []string, error) {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	f := &lintFlags{}

	fs.StringSliceVar(&f.disable, "disable", nil, "rule IDs to skip (comma-separated)")
	addCommonFlags(fs, &f.common)

	rest, err := parseFlags(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// parseChangedFlags parses changed command flags.
func parseChangedFlags(args []string) (*changedFlags, []string, error) {
	fs := flag.NewFlagSet("changed", flag.ContinueOnError)
	f := &changedFlags{}

	addRevisionFlags(fs, &f.base, &f.dir)
	addCommonFlags(fs, &f.common)

	rest, err := parseFlags(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// parsePublishFlags parses publish command flags and returns positional args.
func parsePublishFlags(args []string) (*publishFlags, []string, error) {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	f := &publishFlags{}

	fs.BoolVar(&f.changed, "changed", false, "publish articles changed since --base")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "convert without posting")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-step browser timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.headful, "headful", false, "show the browser window")
	addRevisionFlags(fs, &f.base, &f.dir)
	addConversionFlags(fs, &f.rawHTML, &f.baseURL)
	addCommonFlags(fs, &f.common)

	rest, err := parseFlags(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}
