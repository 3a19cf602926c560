package pipeline

import (
	"strings"

	"github.com/alnah/go-md2note/internal/htmltree"
)

// Pass rewrites a tree in place.
type Pass func(root *htmltree.Root)

// passes is the fixed normalization order. The inline pass must run before
// the code-block pass and must leave block-level code wrappers alone.
var passes = []Pass{
	NormalizeHeadings,
	NormalizeInlineElements,
	NormalizeCodeBlocks,
	StripInterBlockWhitespace,
}

// Normalize applies every pass to root in order.
func Normalize(root *htmltree.Root) {
	for _, pass := range passes {
		pass(root)
	}
}

// NormalizeHeadings collapses heading levels onto the two ranks the editor
// supports: h1 becomes h2 and h4-h6 become h3.
func NormalizeHeadings(root *htmltree.Root) {
	htmltree.Walk(root, func(el *htmltree.Element) bool {
		switch level, _ := htmltree.IsHeading(el.Tag); {
		case level == 1:
			el.Tag = "h2"
		case level >= 4:
			el.Tag = "h3"
		}
		return true
	})
}

// NormalizeInlineElements renames strong to b and del to s, and replaces
// inline code with its flattened text. A code element that is the only child
// of a pre is a code block and is kept for NormalizeCodeBlocks.
func NormalizeInlineElements(root *htmltree.Root) {
	normalizeInline(nil, root.Children)
}

func normalizeInline(parent *htmltree.Element, children []htmltree.Node) {
	for i, n := range children {
		el, ok := n.(*htmltree.Element)
		if !ok {
			continue
		}
		switch el.Tag {
		case "strong":
			el.Tag = "b"
		case "del":
			el.Tag = "s"
		case "code":
			if !isCodeBlock(parent, el) {
				children[i] = htmltree.NewText(htmltree.TextContent(el))
				continue
			}
		}
		normalizeInline(el, el.Children)
	}
}

// isCodeBlock reports whether code is the sole child of a pre element.
func isCodeBlock(parent, code *htmltree.Element) bool {
	return parent != nil &&
		parent.Tag == "pre" &&
		len(parent.Children) == 1 &&
		parent.Children[0] == htmltree.Node(code)
}

// NormalizeCodeBlocks unwraps pre > code into a bare pre and trims trailing
// newlines from the resulting text. Any other pre shape is left as is.
func NormalizeCodeBlocks(root *htmltree.Root) {
	htmltree.Walk(root, func(el *htmltree.Element) bool {
		if el.Tag != "pre" || len(el.Children) != 1 {
			return true
		}
		code, ok := el.Children[0].(*htmltree.Element)
		if !ok || code.Tag != "code" {
			return true
		}

		el.Children = code.Children
		for _, c := range el.Children {
			if t, ok := c.(*htmltree.Text); ok {
				t.Value = strings.TrimRight(t.Value, "\n")
			}
		}
		return true
	})
}

// StripInterBlockWhitespace drops whitespace-only text that sits between
// block elements or between a block and the edge of its parent. Whitespace
// next to inline content is kept.
func StripInterBlockWhitespace(root *htmltree.Root) {
	root.Children = stripWhitespace(root.Children)
}

func stripWhitespace(children []htmltree.Node) []htmltree.Node {
	kept := make([]htmltree.Node, 0, len(children))
	for i, n := range children {
		if htmltree.IsBlank(n) &&
			blockOrEdge(children, i-1) &&
			blockOrEdge(children, i+1) {
			continue
		}
		kept = append(kept, n)
	}

	for _, n := range kept {
		if el, ok := n.(*htmltree.Element); ok {
			el.Children = stripWhitespace(el.Children)
		}
	}
	return kept
}

// blockOrEdge reports whether children[j] is a block element or lies
// outside the slice. Only immediate siblings count: a blank next to
// another blank is kept.
func blockOrEdge(children []htmltree.Node, j int) bool {
	if j < 0 || j >= len(children) {
		return true
	}
	return htmltree.IsBlock(children[j])
}
