// Package publish delivers converted articles to note.com.
//
// It lists the articles a commit touched (ChangedArticles), converts each
// one, and posts it through a browser-driven Client. Publishing is
// sequential: the editor is a single page and note.com rate-limits posts.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alnah/go-md2note/internal/frontmatter"
)

// Converter turns a Markdown body into editor HTML.
type Converter interface {
	ToHTML(ctx context.Context, body string) (string, error)
}

// Publisher reads, converts and posts article files.
type Publisher struct {
	client   Client
	conv     Converter
	readFile func(name string) ([]byte, error)
	logger   *slog.Logger
	dryRun   bool
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger for progress messages.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithReadFile replaces os.ReadFile.
func WithReadFile(fn func(name string) ([]byte, error)) Option {
	return func(p *Publisher) {
		p.readFile = fn
	}
}

// WithDryRun converts every file without posting. The client may be nil.
func WithDryRun(dryRun bool) Option {
	return func(p *Publisher) {
		p.dryRun = dryRun
	}
}

// NewPublisher creates a Publisher posting through client.
func NewPublisher(client Client, conv Converter, opts ...Option) *Publisher {
	p := &Publisher{
		client:   client,
		conv:     conv,
		readFile: os.ReadFile,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PublishAll publishes files in order and stops at the first failure.
// Results for the files published before the failure are returned with the
// error.
func (p *Publisher) PublishAll(ctx context.Context, files []string) ([]Result, error) {
	results := make([]Result, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := p.publishOne(ctx, file)
		if err != nil {
			p.logger.Error("publish failed", "file", file, "error", err)
			return results, fmt.Errorf("%s: %w", file, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (p *Publisher) publishOne(ctx context.Context, file string) (Result, error) {
	raw, err := p.readFile(file)
	if err != nil {
		return Result{}, fmt.Errorf("reading article: %w", err)
	}

	article, err := frontmatter.Parse(string(raw))
	if err != nil {
		return Result{}, err
	}

	html, err := p.conv.ToHTML(ctx, article.Body)
	if err != nil {
		return Result{}, fmt.Errorf("converting article: %w", err)
	}

	if p.dryRun {
		p.logger.Info("dry run", "file", file, "title", article.Title, "html_bytes", len(html))
		return Result{File: file, Title: article.Title}, nil
	}

	res, err := p.client.Post(ctx, article.Title, html)
	if err != nil {
		return Result{}, err
	}
	res.File = file
	res.Title = article.Title
	p.logger.Info("published", "file", file, "title", article.Title, "url", res.URL)
	return res, nil
}
