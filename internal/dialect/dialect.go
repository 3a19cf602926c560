// Package dialect checks that an HTML fragment stays within the element and
// attribute vocabulary accepted by the note.com editor.
//
// The checker reads the fragment with goquery and reports:
//  1. Elements outside the vocabulary (h1, strong, span, ...)
//  2. Attributes the editor drops (class, id, style, event handlers)
//  3. Code blocks still nested as pre > code
package dialect

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Violation kinds.
const (
	KindElement   = "element"
	KindAttribute = "attribute"
	KindNesting   = "nesting"
)

// allowed maps each permitted element to its permitted attributes.
var allowed = map[string][]string{
	"h2": nil, "h3": nil, "p": nil, "b": nil, "em": nil, "s": nil, "br": nil,
	"a":   {"href"},
	"img": {"src", "alt"},
	"ul":  nil,
	"ol":  {"start"},
	"li":  nil, "blockquote": nil, "pre": nil, "hr": nil, "div": nil,
	"table": nil, "tr": nil, "td": nil, "th": nil,
}

// implied holds elements the HTML parser inserts on its own; they cannot be
// told apart from authored ones and are skipped.
var implied = map[string]bool{"tbody": true, "thead": true, "tfoot": true}

// Violation describes one departure from the editor vocabulary.
type Violation struct {
	Kind    string
	Element string
	Detail  string
}

func (v Violation) String() string {
	if v.Detail == "" {
		return fmt.Sprintf("%s: <%s>", v.Kind, v.Element)
	}
	return fmt.Sprintf("%s: <%s> %s", v.Kind, v.Element, v.Detail)
}

// Elements returns the sorted list of permitted element names.
func Elements() []string {
	return slices.Sorted(maps.Keys(allowed))
}

// Check parses htmlContent and returns element and attribute violations in
// document order, followed by nesting violations. An empty fragment has no
// violations.
func Check(htmlContent string) ([]Violation, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var violations []Violation
	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		if implied[name] {
			return
		}

		attrs, ok := allowed[name]
		if !ok {
			violations = append(violations, Violation{Kind: KindElement, Element: name})
			return
		}

		for _, attr := range s.Nodes[0].Attr {
			if !slices.Contains(attrs, attr.Key) {
				violations = append(violations, Violation{
					Kind:    KindAttribute,
					Element: name,
					Detail:  attr.Key,
				})
			}
		}
	})

	doc.Find("pre > code").Each(func(_ int, _ *goquery.Selection) {
		violations = append(violations, Violation{Kind: KindNesting, Element: "code", Detail: "inside pre"})
	})

	return violations, nil
}
