package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// byteOrderMark is stripped when an editor saved the article with one.
const byteOrderMark = "\uFEFF"

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor prepares article bodies before parsing.
// It only touches encoding artefacts; blank lines and spacing are kept because
// they are significant inside code blocks.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown normalizes line endings and drops a leading BOM.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	return normalizeLineEndings(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// TrimPreNewlines removes a newline directly before every closing pre tag.
// The code-block pass already trims its text; this also covers pre elements
// that pass could not unwrap.
func TrimPreNewlines(htmlContent string) string {
	return strings.ReplaceAll(htmlContent, "\n</pre>", "</pre>")
}
