package pipeline

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-md2note/internal/htmltree"
)

// newline is the separator the builder places between sibling blocks.
const newline = "\n"

// treeBuilder converts a goldmark AST into an htmltree.
// Block layout follows conventional Markdown serializers: sibling blocks are
// separated by newline text nodes, which the whitespace pass prunes later.
type treeBuilder struct {
	source []byte
}

// build converts a parsed document.
func (b *treeBuilder) build(doc ast.Node) *htmltree.Root {
	return &htmltree.Root{Children: wrap(b.blocks(doc), false)}
}

// blocks converts the block children of n.
func (b *treeBuilder) blocks(n ast.Node) []htmltree.Node {
	var out []htmltree.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, b.block(c)...)
	}
	return out
}

func (b *treeBuilder) block(n ast.Node) []htmltree.Node {
	switch v := n.(type) {
	case *ast.Heading:
		return one(htmltree.NewElement("h"+strconv.Itoa(v.Level), b.inlines(v)...))
	case *ast.Paragraph:
		return one(htmltree.NewElement("p", b.inlines(v)...))
	case *ast.TextBlock:
		return b.inlines(v)
	case *ast.Blockquote:
		return one(htmltree.NewElement("blockquote", wrap(b.blocks(v), true)...))
	case *ast.List:
		return one(b.list(v))
	case *ast.FencedCodeBlock:
		return one(b.codeBlock(v, string(v.Language(b.source))))
	case *ast.CodeBlock:
		return one(b.codeBlock(v, ""))
	case *ast.ThematicBreak:
		return one(htmltree.NewElement("hr"))
	case *ast.HTMLBlock:
		return b.htmlBlock(v)
	case *east.Table:
		return one(b.table(v))
	default:
		// Unknown blocks degrade to their content.
		return b.blocks(n)
	}
}

func (b *treeBuilder) list(l *ast.List) *htmltree.Element {
	tag := "ul"
	if l.IsOrdered() {
		tag = "ol"
	}
	el := htmltree.NewElement(tag)
	if l.IsOrdered() && l.Start != 1 {
		el.Set("start", strconv.Itoa(l.Start))
	}

	var items []htmltree.Node
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		if item, ok := c.(*ast.ListItem); ok {
			items = append(items, b.listItem(item, !l.IsTight))
		}
	}
	el.Children = wrap(items, true)
	return el
}

// listItem inlines tight paragraphs and separates other children with
// newlines, leading with one unless the item opens on tight text.
func (b *treeBuilder) listItem(item *ast.ListItem, loose bool) *htmltree.Element {
	li := htmltree.NewElement("li")

	var last ast.Node
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		_, tight := c.(*ast.TextBlock)
		if (loose || c != item.FirstChild() || !tight) && !isHTMLBlock(c) && !isHTMLBlock(last) {
			li.Append(htmltree.NewText(newline))
		}
		li.Append(b.block(c)...)
		last = c
	}
	if last != nil && !isHTMLBlock(last) {
		if _, tight := last.(*ast.TextBlock); loose || !tight {
			li.Append(htmltree.NewText(newline))
		}
	}
	return li
}

// isHTMLBlock reports whether n is a raw HTML block. Raw blocks get no
// newline separators: re-imported, they become elements and the newline
// would be pruned, so the output would not be stable.
func isHTMLBlock(n ast.Node) bool {
	_, ok := n.(*ast.HTMLBlock)
	return ok
}

func (b *treeBuilder) codeBlock(n ast.Node, language string) *htmltree.Element {
	code := htmltree.NewElement("code")
	if language != "" {
		code.Set("class", "language-"+language)
	}
	if content := b.lines(n); content != "" {
		code.Append(htmltree.NewText(content))
	}
	return htmltree.NewElement("pre", code)
}

func (b *treeBuilder) htmlBlock(n *ast.HTMLBlock) []htmltree.Node {
	var buf bytes.Buffer
	buf.WriteString(b.lines(n))
	if n.HasClosure() {
		buf.Write(n.ClosureLine.Value(b.source))
	}
	raw := strings.TrimRight(buf.String(), newline)
	if raw == "" {
		return nil
	}
	return one(&htmltree.Raw{HTML: raw})
}

// table maps GFM tables to table > tr > th|td; header cells become th.
func (b *treeBuilder) table(t *east.Table) *htmltree.Element {
	var rows []htmltree.Node
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		cellTag := "td"
		if _, ok := r.(*east.TableHeader); ok {
			cellTag = "th"
		}
		var cells []htmltree.Node
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, htmltree.NewElement(cellTag, b.inlines(c)...))
		}
		rows = append(rows, htmltree.NewElement("tr", wrap(cells, true)...))
	}
	return htmltree.NewElement("table", wrap(rows, true)...)
}

// lines concatenates the raw source lines of a block.
func (b *treeBuilder) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(b.source))
	}
	return buf.String()
}

// inlines converts the inline children of n.
func (b *treeBuilder) inlines(n ast.Node) []htmltree.Node {
	var out []htmltree.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, b.inline(c)...)
	}
	return out
}

func (b *treeBuilder) inline(n ast.Node) []htmltree.Node {
	switch v := n.(type) {
	case *ast.Text:
		return b.text(v)
	case *ast.String:
		return one(htmltree.NewText(string(v.Value)))
	case *ast.Emphasis:
		tag := "em"
		if v.Level == 2 {
			tag = "strong"
		}
		return one(htmltree.NewElement(tag, b.inlines(v)...))
	case *ast.CodeSpan:
		return one(htmltree.NewElement("code", htmltree.NewText(b.codeSpan(v))))
	case *ast.Link:
		a := htmltree.NewElement("a", b.inlines(v)...)
		a.Set("href", string(v.Destination))
		return one(a)
	case *ast.AutoLink:
		return one(b.autoLink(v))
	case *ast.Image:
		img := htmltree.NewElement("img")
		img.Set("src", string(v.Destination))
		img.Set("alt", htmltree.TextContent(htmltree.NewElement("span", b.inlines(v)...)))
		return one(img)
	case *ast.RawHTML:
		return one(&htmltree.Raw{HTML: b.segments(v.Segments)})
	case *east.Strikethrough:
		return one(htmltree.NewElement("del", b.inlines(v)...))
	case *east.TaskCheckBox:
		// The dialect has no form controls; keep the source marker.
		if v.IsChecked {
			return one(htmltree.NewText("[x] "))
		}
		return one(htmltree.NewText("[ ] "))
	default:
		return b.inlines(n)
	}
}

func (b *treeBuilder) text(t *ast.Text) []htmltree.Node {
	value := t.Segment.Value(b.source)
	if !t.IsRaw() {
		value = unescape(value)
	}

	out := []htmltree.Node{htmltree.NewText(string(value))}
	switch {
	case t.HardLineBreak():
		out = append(out, htmltree.NewElement("br"), htmltree.NewText(newline))
	case t.SoftLineBreak():
		out = append(out, htmltree.NewText(newline))
	}
	return out
}

// codeSpan returns the literal content of an inline code span.
// Line endings inside the span render as spaces.
func (b *treeBuilder) codeSpan(n *ast.CodeSpan) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			value := v.Segment.Value(b.source)
			if bytes.HasSuffix(value, []byte(newline)) {
				buf.Write(value[:len(value)-1])
				buf.WriteByte(' ')
				continue
			}
			buf.Write(value)
		case *ast.String:
			buf.Write(v.Value)
		}
	}
	return buf.String()
}

func (b *treeBuilder) autoLink(n *ast.AutoLink) *htmltree.Element {
	url := string(n.URL(b.source))
	label := string(n.Label(b.source))
	href := url
	if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
		href = "mailto:" + url
	}
	a := htmltree.NewElement("a", htmltree.NewText(label))
	a.Set("href", href)
	return a
}

func (b *treeBuilder) segments(segs *text.Segments) string {
	var buf bytes.Buffer
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		buf.Write(seg.Value(b.source))
	}
	return buf.String()
}

// unescape resolves backslash escapes and character references.
func unescape(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveEntityNames(value)
	return util.ResolveNumericReferences(value)
}

// wrap separates nodes with newline text; loose containers also get a
// leading and trailing newline. No newline is placed next to a Raw block.
func wrap(nodes []htmltree.Node, loose bool) []htmltree.Node {
	if len(nodes) == 0 {
		return nodes
	}
	out := make([]htmltree.Node, 0, len(nodes)*2+1)
	if loose && !isRaw(nodes[0]) {
		out = append(out, htmltree.NewText(newline))
	}
	for i, n := range nodes {
		if i > 0 && !isRaw(nodes[i-1]) && !isRaw(n) {
			out = append(out, htmltree.NewText(newline))
		}
		out = append(out, n)
	}
	if loose && !isRaw(nodes[len(nodes)-1]) {
		out = append(out, htmltree.NewText(newline))
	}
	return out
}

func isRaw(n htmltree.Node) bool {
	_, ok := n.(*htmltree.Raw)
	return ok
}

func one(n htmltree.Node) []htmltree.Node {
	return []htmltree.Node{n}
}
