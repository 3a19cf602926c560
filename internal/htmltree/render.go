package htmltree

import (
	"io"
	"strings"
)

// voidElements render without children and without a closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoid reports whether tag is rendered as a void element.
func IsVoid(tag string) bool {
	return voidElements[tag]
}

// Text escaping is limited to '&' and '<'; '>' and quotes stay literal.
var (
	textEscaper = strings.NewReplacer("&", "&#x26;", "<", "&#x3C;")
	attrEscaper = strings.NewReplacer("&", "&#x26;", `"`, "&#x22;")
)

// EscapeText escapes s for use as HTML character data.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// Render serializes the tree as an HTML fragment.
// An empty tree renders as the empty string.
func Render(r *Root) string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	_ = RenderTo(&b, r)
	return b.String()
}

// RenderTo writes the serialized tree to w.
func RenderTo(w io.Writer, r *Root) error {
	sw, ok := w.(io.StringWriter)
	if !ok {
		sw = &stringWriter{w: w}
	}
	for _, n := range r.Children {
		if err := renderNode(sw, n); err != nil {
			return err
		}
	}
	return nil
}

// stringWriter adapts an io.Writer lacking WriteString.
type stringWriter struct {
	w io.Writer
}

func (s *stringWriter) WriteString(str string) (int, error) {
	return io.WriteString(s.w, str)
}

func renderNode(w io.StringWriter, n Node) error {
	switch v := n.(type) {
	case *Text:
		_, err := w.WriteString(EscapeText(v.Value))
		return err
	case *Raw:
		_, err := w.WriteString(v.HTML)
		return err
	case *Element:
		return renderElement(w, v)
	}
	return nil
}

func renderElement(w io.StringWriter, el *Element) error {
	var open strings.Builder
	open.WriteString("<")
	open.WriteString(el.Tag)
	for _, a := range el.Attrs {
		open.WriteString(" ")
		open.WriteString(a.Key)
		open.WriteString(`="`)
		open.WriteString(attrEscaper.Replace(a.Val))
		open.WriteString(`"`)
	}
	open.WriteString(">")
	if _, err := w.WriteString(open.String()); err != nil {
		return err
	}

	if IsVoid(el.Tag) {
		return nil
	}

	for _, c := range el.Children {
		if err := renderNode(w, c); err != nil {
			return err
		}
	}
	_, err := w.WriteString("</" + el.Tag + ">")
	return err
}
