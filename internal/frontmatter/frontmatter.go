// Package frontmatter splits an article file into its YAML metadata block and
// its Markdown body.
//
// An article starts with a line holding "---", followed by YAML, followed by
// a closing "---" (or "...") line. The block must carry a non-empty string
// title. Everything after the closing line is the body.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-md2note/internal/yamlutil"
)

// Sentinel errors for front matter parsing.
var (
	ErrMissingTitle       = errors.New("front matter requires a title")
	ErrInvalidFrontMatter = errors.New("invalid front matter")
)

const (
	delimiter    = "---"
	endDelimiter = "..."
	titleKey     = "title"
	tagsKey      = "tags"
)

// Article is a parsed article file.
type Article struct {
	Title string
	Body  string
	Tags  []string
	// BodyLine is the 1-based line of the file on which Body starts.
	BodyLine int
	// Meta holds every other front matter key, decoded as YAML values.
	Meta map[string]any
}

// Parse extracts front matter from raw. Line endings are normalized to \n
// and a leading byte order mark is ignored.
func Parse(raw string) (Article, error) {
	raw = strings.TrimPrefix(raw, "\uFEFF")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	block, body, bodyLine, found, err := split(raw)
	if err != nil {
		return Article{}, err
	}
	if !found {
		return Article{}, fmt.Errorf("%w: no front matter block", ErrMissingTitle)
	}

	meta := map[string]any{}
	if strings.TrimSpace(block) != "" {
		meta, err = yamlutil.DecodeMapping([]byte(block))
		if err != nil {
			return Article{}, fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
		}
	}

	title, err := takeTitle(meta)
	if err != nil {
		return Article{}, err
	}
	tags, err := takeTags(meta)
	if err != nil {
		return Article{}, err
	}

	return Article{Title: title, Body: body, Tags: tags, BodyLine: bodyLine, Meta: meta}, nil
}

// split separates the front matter block from the body. found is false when
// raw does not open with a delimiter line.
func split(raw string) (block, body string, bodyLine int, found bool, err error) {
	first, rest, ok := strings.Cut(raw, "\n")
	if strings.TrimRight(first, " \t") != delimiter {
		return "", "", 0, false, nil
	}
	if !ok {
		return "", "", 0, true, fmt.Errorf("%w: unterminated block", ErrInvalidFrontMatter)
	}

	var lines []string
	for {
		line, next, more := strings.Cut(rest, "\n")
		if closing := strings.TrimRight(line, " \t"); closing == delimiter || closing == endDelimiter {
			if !more {
				next = ""
			}
			// Opening and closing delimiters plus the block itself.
			return strings.Join(lines, "\n"), next, len(lines) + 3, true, nil
		}
		if !more {
			return "", "", 0, true, fmt.Errorf("%w: unterminated block", ErrInvalidFrontMatter)
		}
		lines = append(lines, line)
		rest = next
	}
}

func takeTitle(meta map[string]any) (string, error) {
	v, ok := meta[titleKey]
	if !ok || v == nil {
		return "", ErrMissingTitle
	}
	title, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: title must be a string, got %T", ErrInvalidFrontMatter, v)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrMissingTitle
	}
	delete(meta, titleKey)
	return title, nil
}

// takeTags accepts a sequence of strings or a single string.
func takeTags(meta map[string]any) ([]string, error) {
	v, ok := meta[tagsKey]
	if !ok || v == nil {
		delete(meta, tagsKey)
		return nil, nil
	}
	delete(meta, tagsKey)

	switch tags := v.(type) {
	case string:
		return []string{tags}, nil
	case []any:
		out := make([]string, 0, len(tags))
		for _, t := range tags {
			s, ok := t.(string)
			if !ok {
				return nil, fmt.Errorf("%w: tags must be strings, got %T", ErrInvalidFrontMatter, t)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: tags must be a list, got %T", ErrInvalidFrontMatter, v)
	}
}
