package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/alnah/go-md2note/internal/htmltree"
)

// ErrInvalidRawHTMLMode indicates an unknown raw HTML policy name.
var ErrInvalidRawHTMLMode = errors.New("invalid raw HTML mode")

// RawHTMLMode selects how HTML written directly in Markdown is handled.
type RawHTMLMode string

// Raw HTML modes.
const (
	RawHTMLKeep     RawHTMLMode = "keep"     // pass through verbatim
	RawHTMLSanitize RawHTMLMode = "sanitize" // strip everything outside the editor dialect
	RawHTMLDrop     RawHTMLMode = "drop"     // remove entirely
)

// ParseRawHTMLMode parses a mode name (case-insensitive). Empty means keep.
func ParseRawHTMLMode(s string) (RawHTMLMode, error) {
	switch RawHTMLMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", RawHTMLKeep:
		return RawHTMLKeep, nil
	case RawHTMLSanitize:
		return RawHTMLSanitize, nil
	case RawHTMLDrop:
		return RawHTMLDrop, nil
	}
	return "", fmt.Errorf("%w: %q (must be keep, sanitize, or drop)", ErrInvalidRawHTMLMode, s)
}

// DialectPolicy returns a bluemonday policy that only lets through the
// elements and attributes the editor accepts.
func DialectPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h2", "h3", "p", "b", "em", "s", "br",
		"ul", "ol", "li", "blockquote", "pre", "hr", "div",
		"table", "tr", "td", "th",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)
	return p
}

// ApplyRawHTMLMode rewrites every Raw node below root according to mode.
// Sanitized fragments that end up empty are removed.
func ApplyRawHTMLMode(root *htmltree.Root, mode RawHTMLMode, policy *bluemonday.Policy) {
	if mode == RawHTMLKeep || mode == "" {
		return
	}
	root.Children = filterRaw(root.Children, mode, policy)
}

func filterRaw(children []htmltree.Node, mode RawHTMLMode, policy *bluemonday.Policy) []htmltree.Node {
	// goldmark emits one Raw node per inline tag, so each opening tag is
	// sanitized apart from its closing tag. open tracks, per tag name,
	// whether each pending opener survived.
	open := map[string][]bool{}

	kept := children[:0]
	for _, n := range children {
		switch v := n.(type) {
		case *htmltree.Raw:
			if mode == RawHTMLDrop {
				continue
			}
			if !sanitizeRaw(v, policy, open) {
				continue
			}
		case *htmltree.Element:
			v.Children = filterRaw(v.Children, mode, policy)
		}
		kept = append(kept, n)
	}
	return kept
}

// tagPattern matches a lone opening or closing tag.
var tagPattern = regexp.MustCompile(`^<(/?)([a-zA-Z][a-zA-Z0-9-]*)[^<>]*?(/?)>$`)

// sanitizeRaw rewrites raw in place and reports whether it should be kept.
// A closing tag whose opener was removed is removed too.
func sanitizeRaw(raw *htmltree.Raw, policy *bluemonday.Policy, open map[string][]bool) bool {
	m := tagPattern.FindStringSubmatch(strings.TrimSpace(raw.HTML))
	if m == nil {
		raw.HTML = policy.Sanitize(raw.HTML)
		return strings.TrimSpace(raw.HTML) != ""
	}

	name := strings.ToLower(m[2])
	closing, selfClosing := m[1] == "/", m[3] == "/"
	if closing {
		if stack := open[name]; len(stack) > 0 {
			survived := stack[len(stack)-1]
			open[name] = stack[:len(stack)-1]
			if !survived {
				return false
			}
			raw.HTML = "</" + name + ">"
			return true
		}
		raw.HTML = policy.Sanitize(raw.HTML)
		return strings.TrimSpace(raw.HTML) != ""
	}

	raw.HTML = policy.Sanitize(raw.HTML)
	survived := strings.HasPrefix(raw.HTML, "<"+name)
	if !selfClosing && !htmltree.IsVoid(name) {
		open[name] = append(open[name], survived)
	}
	return survived
}
