package md2note

import (
	"errors"

	"github.com/alnah/go-md2note/internal/frontmatter"
	"github.com/alnah/go-md2note/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrHTMLConversion     = pipeline.ErrHTMLConversion
	ErrInvalidRawHTMLMode = pipeline.ErrInvalidRawHTMLMode
	ErrInvalidBaseURL     = errors.New("invalid base URL")

	// Front matter errors.
	ErrMissingTitle       = frontmatter.ErrMissingTitle
	ErrInvalidFrontMatter = frontmatter.ErrInvalidFrontMatter
)
