package md2note

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/alnah/go-md2note/internal/dialect"
	"github.com/alnah/go-md2note/internal/frontmatter"
	"github.com/alnah/go-md2note/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ htmlConverter                 = (*pipeline.GoldmarkConverter)(nil)
)

// htmlConverter is the part of the pipeline the Converter drives.
type htmlConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
	Renormalize(ctx context.Context, htmlContent string) (string, error)
}

// Converter orchestrates the Markdown-to-editor-HTML pipeline.
// Create with NewConverter. It is safe for concurrent use.
type Converter struct {
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter htmlConverter
}

// NewConverter creates a Converter. Returns ErrInvalidRawHTMLMode or
// ErrInvalidBaseURL when an option value is rejected.
func NewConverter(opts ...Option) (*Converter, error) {
	var cfg converterConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	mode, err := pipeline.ParseRawHTMLMode(cfg.rawHTML)
	if err != nil {
		return nil, err
	}
	pipeOpts := []pipeline.ConverterOption{pipeline.WithRawHTMLMode(mode)}

	if cfg.baseURL != "" {
		base, err := parseBaseURL(cfg.baseURL)
		if err != nil {
			return nil, err
		}
		pipeOpts = append(pipeOpts, pipeline.WithBaseURL(base))
	}

	return &Converter{
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(pipeOpts...),
	}, nil
}

// parseBaseURL accepts absolute http(s) URLs. A missing trailing slash is
// added so the last path segment is treated as a directory.
func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q (must be an absolute http or https URL)", ErrInvalidBaseURL, raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// ToHTML converts a Markdown body (no front matter) to an editor HTML
// fragment. Empty input yields an empty string.
func (c *Converter) ToHTML(ctx context.Context, body string) (string, error) {
	md := c.preprocessor.PreprocessMarkdown(ctx, body)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	htmlContent, err := c.htmlConverter.ToHTML(ctx, md)
	if err != nil {
		return "", fmt.Errorf("converting to HTML: %w", err)
	}
	return htmlContent, nil
}

// Convert splits raw into front matter and body, then converts the body.
// Returns ErrMissingTitle or ErrInvalidFrontMatter for a bad header.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, raw string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	article, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, err
	}

	htmlContent, err := c.ToHTML(ctx, article.Body)
	if err != nil {
		return nil, err
	}

	return &Result{
		Title:    article.Title,
		Tags:     article.Tags,
		Meta:     article.Meta,
		HTML:     htmlContent,
		BodyLine: article.BodyLine,
	}, nil
}

// Renormalize parses HTML and runs the normalization passes over it again.
func (c *Converter) Renormalize(ctx context.Context, htmlContent string) (string, error) {
	return c.htmlConverter.Renormalize(ctx, htmlContent)
}

// Check reports every element, attribute or nesting in htmlContent that the
// editor does not accept. An empty slice means the fragment is clean.
func Check(htmlContent string) ([]Violation, error) {
	return dialect.Check(htmlContent)
}
