package main

import (
	"errors"
	"os"

	md2note "github.com/alnah/go-md2note"
	"github.com/alnah/go-md2note/internal/config"
	"github.com/alnah/go-md2note/internal/lint"
	"github.com/alnah/go-md2note/internal/publish"
)

// Exit codes for md2note CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful command
	ExitGeneral = 1 // General/unexpected error, lint or check findings
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, git failure
	ExitBrowser = 4 // Browser/note.com errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, publish.ErrBrowserConnect) ||
		errors.Is(err, publish.ErrLogin) ||
		errors.Is(err, publish.ErrPost) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2note.ErrInvalidRawHTMLMode) ||
		errors.Is(err, md2note.ErrInvalidBaseURL) ||
		errors.Is(err, md2note.ErrMissingTitle) ||
		errors.Is(err, md2note.ErrInvalidFrontMatter) ||
		errors.Is(err, lint.ErrUnknownRule) ||
		errors.Is(err, publish.ErrNoCredentials) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, publish.ErrGitDiff) {
		return ExitIO
	}

	return ExitGeneral
}
