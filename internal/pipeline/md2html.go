package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-md2note/internal/htmltree"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to editor HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to the editor's HTML dialect using
// goldmark (pure Go). It holds no per-call state and is safe for concurrent
// use.
type GoldmarkConverter struct {
	md      goldmark.Markdown
	rawHTML RawHTMLMode
	policy  *bluemonday.Policy
	baseURL *url.URL
}

// ConverterOption configures a GoldmarkConverter.
type ConverterOption func(*GoldmarkConverter)

// WithRawHTMLMode sets how raw HTML in the Markdown source is handled.
func WithRawHTMLMode(mode RawHTMLMode) ConverterOption {
	return func(c *GoldmarkConverter) {
		c.rawHTML = mode
	}
}

// WithBaseURL resolves relative image and link targets against base.
func WithBaseURL(base *url.URL) ConverterOption {
	return func(c *GoldmarkConverter) {
		c.baseURL = base
	}
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions.
func NewGoldmarkConverter(opts ...ConverterOption) *GoldmarkConverter {
	c := &GoldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM, // Tables, strikethrough, autolinks, task lists
			),
		),
		rawHTML: RawHTMLKeep,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rawHTML == RawHTMLSanitize {
		c.policy = DialectPolicy()
	}
	return c
}

// ParseMarkdown parses content into a goldmark AST.
// Parsing never fails: constructs goldmark cannot read degrade to text.
func (c *GoldmarkConverter) ParseMarkdown(content string) (ast.Node, []byte) {
	source := []byte(content)
	return c.md.Parser().Parse(text.NewReader(source)), source
}

// BuildTree parses content and converts it to an HTML tree without
// normalizing it.
func (c *GoldmarkConverter) BuildTree(content string) *htmltree.Root {
	doc, source := c.ParseMarkdown(content)
	b := &treeBuilder{source: source}
	return b.build(doc)
}

// ToHTML converts Markdown content to an editor HTML fragment.
// Empty content yields an empty string. The context is only checked before
// work starts; conversion itself is bounded by input size.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	root := c.BuildTree(content)
	ApplyRawHTMLMode(root, c.rawHTML, c.policy)
	RewriteRelativeURLs(root, c.baseURL)
	Normalize(root)
	return TrimPreNewlines(htmltree.Render(root)), nil
}

// Renormalize reads editor HTML back into a tree and runs the normalization
// passes over it again. Output of ToHTML is a fixed point.
func (c *GoldmarkConverter) Renormalize(ctx context.Context, htmlContent string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	root, err := htmltree.ParseFragment(htmlContent)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	Normalize(root)
	return TrimPreNewlines(htmltree.Render(root)), nil
}
