package md2note

import (
	"github.com/alnah/go-md2note/internal/dialect"
	"github.com/alnah/go-md2note/internal/pipeline"
)

// Raw HTML modes accepted by WithRawHTML.
const (
	RawHTMLKeep     = string(pipeline.RawHTMLKeep)
	RawHTMLSanitize = string(pipeline.RawHTMLSanitize)
	RawHTMLDrop     = string(pipeline.RawHTMLDrop)
)

// Result is a converted article.
type Result struct {
	Title string
	Tags  []string
	// Meta holds the front matter keys other than title.
	Meta map[string]any
	HTML string
	// BodyLine is the 1-based line of the source file on which the body starts.
	BodyLine int
}

// Violation is a construct found outside the editor dialect.
type Violation = dialect.Violation

// Option configures a Converter.
type Option func(*converterConfig)

// converterConfig holds option values until NewConverter validates them.
type converterConfig struct {
	rawHTML string
	baseURL string
}

// WithRawHTML sets how HTML written directly in Markdown is handled:
// "keep" (default), "sanitize" or "drop".
func WithRawHTML(mode string) Option {
	return func(c *converterConfig) {
		c.rawHTML = mode
	}
}

// WithBaseURL resolves relative image and link targets against base, which
// must be an absolute http(s) URL. Empty leaves targets untouched.
func WithBaseURL(base string) Option {
	return func(c *converterConfig) {
		c.baseURL = base
	}
}
