package main

import (
	"fmt"
	"io"
	"strings"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2note <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown articles to note.com editor HTML")
	fmt.Fprintln(w, "  lint       Report markdown the editor cannot display")
	fmt.Fprintln(w, "  changed    List articles changed since a revision")
	fmt.Fprintln(w, "  publish    Convert and post articles to note.com")
	fmt.Fprintln(w, "  doctor     Check browser, git and credentials")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2note help <command>' for details on a specific command.")
}

// printCommonUsage prints flags shared by every command.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed output")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2note convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown articles to note.com editor HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (default: articles.dir from config)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --stdout              Print HTML instead of writing files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --raw-html <mode>     Raw HTML handling: keep, sanitize, drop")
	fmt.Fprintln(w, "      --base-url <url>      Resolve relative image and link targets")
	fmt.Fprintln(w, "      --check               Fail when output leaves the editor dialect")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printLintUsage prints usage for the lint command.
func printLintUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2note lint [files|dirs] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report markdown constructs the note.com editor cannot display.")
	fmt.Fprintln(w, "Exits 1 when any error is found; warnings never fail.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rules:")
	fmt.Fprintf(w, "  %s\n", strings.Join(ruleIDs(), ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Lint:")
	fmt.Fprintln(w, "      --disable <ids>       Rule IDs to skip (comma-separated)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printChangedUsage prints usage for the changed command.
func printChangedUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2note changed [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List markdown articles changed between a revision and HEAD.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Git:")
	fmt.Fprintln(w, "      --base <rev>          Revision to compare against (default HEAD~1)")
	fmt.Fprintln(w, "      --dir <path>          Article directory (default articles)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printPublishUsage prints usage for the publish command.
func printPublishUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2note publish [files] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert articles and post them to note.com in order.")
	fmt.Fprintln(w, "Stops at the first failure.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Selection:")
	fmt.Fprintln(w, "      --changed             Publish articles changed since --base")
	fmt.Fprintln(w, "      --base <rev>          Revision to compare against (default HEAD~1)")
	fmt.Fprintln(w, "      --dir <path>          Article directory (default articles)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "  -n, --dry-run             Convert without posting")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-step browser timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --headful             Show the browser window")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --raw-html <mode>     Raw HTML handling: keep, sanitize, drop")
	fmt.Fprintln(w, "      --base-url <url>      Resolve relative image and link targets")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Authentication (environment):")
	fmt.Fprintln(w, "  NOTE_COOKIE               Browser cookie header (preferred)")
	fmt.Fprintln(w, "  NOTE_EMAIL, NOTE_PASSWORD Login form credentials")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "lint":
		printLintUsage(env.Stdout)
	case "changed":
		printChangedUsage(env.Stdout)
	case "publish":
		printPublishUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: md2note doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check browser, git and credentials for publishing.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2note version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2note help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
