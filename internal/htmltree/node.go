// Package htmltree is the HTML-shaped tree the conversion pipeline rewrites.
//
// The node set is closed: a Root holds the top-level children, and every
// child is an *Element, a *Text or a *Raw. Parents own their children
// exclusively, so the tree is acyclic and passes can rewrite child slices in
// place without back-pointers.
package htmltree

import "strings"

// Node is a child of a Root or an Element.
// The unexported method seals the set of implementations to this package.
type Node interface {
	node()
}

// Root is the top of a converted document.
type Root struct {
	Children []Node
}

// Element is a tag with attributes and ordered children.
type Element struct {
	Tag      string // lowercase tag name
	Attrs    []Attr
	Children []Node
}

// Text holds raw, unescaped character data.
type Text struct {
	Value string
}

// Raw holds HTML passed through verbatim from the Markdown source.
type Raw struct {
	HTML string
}

func (*Element) node() {}
func (*Text) node()    {}
func (*Raw) node()     {}

// Attr is a single attribute. Order carries no meaning but is kept stable so
// output is deterministic.
type Attr struct {
	Key string
	Val string
}

// NewElement creates an element with the given tag and children.
func NewElement(tag string, children ...Node) *Element {
	return &Element{Tag: tag, Children: children}
}

// NewText creates a text node.
func NewText(value string) *Text {
	return &Text{Value: value}
}

// Get returns the value of the attribute key and whether it is present.
func (e *Element) Get(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Set adds or replaces the attribute key.
func (e *Element) Set(key, val string) {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Val = val
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Val: val})
}

// Append adds children at the end of the element.
func (e *Element) Append(children ...Node) {
	e.Children = append(e.Children, children...)
}

// IsHeading reports whether tag is h1..h6 and returns its level.
func IsHeading(tag string) (int, bool) {
	if len(tag) != 2 || tag[0] != 'h' || tag[1] < '1' || tag[1] > '6' {
		return 0, false
	}
	return int(tag[1] - '0'), true
}

// blockTags are the elements treated as visually self-spacing.
var blockTags = map[string]bool{
	"p":          true,
	"ul":         true,
	"ol":         true,
	"li":         true,
	"blockquote": true,
	"pre":        true,
	"hr":         true,
	"div":        true,
	"table":      true,
}

// IsBlock reports whether n is a block-level element.
func IsBlock(n Node) bool {
	el, ok := n.(*Element)
	if !ok {
		return false
	}
	if _, ok := IsHeading(el.Tag); ok {
		return true
	}
	return blockTags[el.Tag]
}

// IsBlank reports whether n is a Text node containing only whitespace.
func IsBlank(n Node) bool {
	t, ok := n.(*Text)
	return ok && strings.TrimSpace(t.Value) == ""
}

// TextContent returns the concatenated text of n and its descendants.
// Raw HTML contributes nothing.
func TextContent(n Node) string {
	var b strings.Builder
	writeText(&b, n)
	return b.String()
}

func writeText(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Text:
		b.WriteString(v.Value)
	case *Element:
		for _, c := range v.Children {
			writeText(b, c)
		}
	case *Raw:
	}
}

// Walk visits every element below r in depth-first pre-order.
// Returning false from fn skips the element's children.
func Walk(r *Root, fn func(el *Element) bool) {
	walkNodes(r.Children, fn)
}

func walkNodes(nodes []Node, fn func(el *Element) bool) {
	for _, n := range nodes {
		el, ok := n.(*Element)
		if !ok {
			continue
		}
		if fn(el) {
			walkNodes(el.Children, fn)
		}
	}
}
