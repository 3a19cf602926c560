package publish

import "errors"

// Sentinel errors for publishing.
var (
	ErrNoCredentials  = errors.New("no note.com credentials: set a cookie or an email and password")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrLogin          = errors.New("note.com login failed")
	ErrPost           = errors.New("posting article failed")
	ErrGitDiff        = errors.New("listing changed files failed")
	ErrClosed         = errors.New("client is closed")
)
