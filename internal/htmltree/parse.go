package htmltree

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrParseHTML indicates an HTML fragment could not be read back into a tree.
var ErrParseHTML = errors.New("HTML fragment parsing failed")

// tableSections are inserted implicitly by the HTML5 parser; the tree keeps
// rows directly under their table.
var tableSections = map[string]bool{
	"thead": true,
	"tbody": true,
	"tfoot": true,
}

// ParseFragment reads an HTML fragment, as produced by Render, back into a tree.
// Comments and doctype nodes are kept as Raw so they round-trip verbatim.
func ParseFragment(fragment string) (*Root, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseHTML, err)
	}

	root := &Root{}
	for _, n := range nodes {
		root.Children = append(root.Children, fromHTML(n, "")...)
	}
	return root, nil
}

func fromHTML(n *html.Node, parentTag string) []Node {
	switch n.Type {
	case html.TextNode:
		return []Node{&Text{Value: n.Data}}
	case html.ElementNode:
		if parentTag == "table" && tableSections[n.Data] {
			return childrenFromHTML(n, parentTag)
		}
		el := &Element{Tag: n.Data}
		for _, a := range n.Attr {
			el.Attrs = append(el.Attrs, Attr{Key: a.Key, Val: a.Val})
		}
		el.Children = childrenFromHTML(n, n.Data)
		return []Node{el}
	case html.CommentNode, html.DoctypeNode:
		var b strings.Builder
		if err := html.Render(&b, n); err != nil {
			return nil
		}
		return []Node{&Raw{HTML: b.String()}}
	}
	return nil
}

func childrenFromHTML(n *html.Node, tag string) []Node {
	var out []Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, fromHTML(c, tag)...)
	}
	return out
}
