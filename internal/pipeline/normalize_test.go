package pipeline

// Notes:
// - Passes are tested on hand-built trees; each test renders the tree to keep
//   expectations readable.
// - Structural violations (pre with several children) are covered to pin the
//   "leave it alone" behavior of the code-block pass.

import (
	"testing"

	"github.com/alnah/go-md2note/internal/htmltree"
)

func el(tag string, children ...htmltree.Node) *htmltree.Element {
	return htmltree.NewElement(tag, children...)
}

func txt(s string) *htmltree.Text {
	return htmltree.NewText(s)
}

func root(children ...htmltree.Node) *htmltree.Root {
	return &htmltree.Root{Children: children}
}

// assertNoCodeElements fails if any code element survives normalization.
func assertNoCodeElements(t *testing.T, r *htmltree.Root) {
	t.Helper()
	htmltree.Walk(r, func(e *htmltree.Element) bool {
		if e.Tag == "code" {
			t.Errorf("code element survived normalization: %s", htmltree.Render(r))
		}
		return true
	})
}

// ---------------------------------------------------------------------------
// TestNormalizeHeadings
// ---------------------------------------------------------------------------

func TestNormalizeHeadings(t *testing.T) {
	t.Parallel()

	r := root(el("h1", txt("1")), el("h2", txt("2")), el("h3", txt("3")),
		el("h4", txt("4")), el("h5", txt("5")), el("h6", txt("6")),
		el("blockquote", el("h1", txt("nested"))))

	NormalizeHeadings(r)

	want := "<h2>1</h2><h2>2</h2><h3>3</h3><h3>4</h3><h3>5</h3><h3>6</h3><blockquote><h2>nested</h2></blockquote>"
	if got := htmltree.Render(r); got != want {
		t.Errorf("NormalizeHeadings()\n got: %q\nwant: %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestNormalizeInlineElements
// ---------------------------------------------------------------------------

func TestNormalizeInlineElements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   *htmltree.Root
		want string
	}{
		{
			name: "strong and del renamed",
			in:   root(el("p", el("strong", txt("b")), el("del", txt("s")))),
			want: "<p><b>b</b><s>s</s></p>",
		},
		{
			name: "nested strong inside em",
			in:   root(el("p", el("em", el("strong", txt("x"))))),
			want: "<p><em><b>x</b></em></p>",
		},
		{
			name: "inline code flattened to text",
			in:   root(el("p", txt("a "), el("code", txt("x<y")), txt(" b"))),
			want: "<p>a x&#x3C;y b</p>",
		},
		{
			name: "code with markup flattened",
			in:   root(el("p", el("code", el("em", txt("a")), txt("b")))),
			want: "<p>ab</p>",
		},
		{
			name: "code block left for code pass",
			in:   root(el("pre", el("code", txt("x\n")))),
			want: "<pre><code>x\n</code></pre>",
		},
		{
			name: "code in pre with siblings flattened",
			in:   root(el("pre", txt("a"), el("code", txt("b\n")))),
			want: "<pre>ab\n</pre>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			NormalizeInlineElements(tt.in)
			if got := htmltree.Render(tt.in); got != tt.want {
				t.Errorf("NormalizeInlineElements()\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNormalizeCodeBlocks
// ---------------------------------------------------------------------------

func TestNormalizeCodeBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   *htmltree.Root
		want string
	}{
		{
			name: "unwraps code and trims newlines",
			in:   root(el("pre", el("code", txt("x\n\n")))),
			want: "<pre>x</pre>",
		},
		{
			name: "keeps internal newlines",
			in:   root(el("pre", el("code", txt("a\n\nb\n")))),
			want: "<pre>a\n\nb</pre>",
		},
		{
			name: "empty code",
			in:   root(el("pre", el("code"))),
			want: "<pre></pre>",
		},
		{
			name: "pre with several children left alone",
			in:   root(el("pre", el("code", txt("a\n")), txt("b\n"))),
			want: "<pre><code>a\n</code>b\n</pre>",
		},
		{
			name: "pre with non-code child left alone",
			in:   root(el("pre", el("span", txt("a\n")))),
			want: "<pre><span>a\n</span></pre>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			NormalizeCodeBlocks(tt.in)
			if got := htmltree.Render(tt.in); got != tt.want {
				t.Errorf("NormalizeCodeBlocks()\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestStripInterBlockWhitespace
// ---------------------------------------------------------------------------

func TestStripInterBlockWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   *htmltree.Root
		want string
	}{
		{
			name: "between blocks",
			in:   root(el("p", txt("a")), txt("\n"), el("p", txt("b"))),
			want: "<p>a</p><p>b</p>",
		},
		{
			name: "leading and trailing at root",
			in:   root(txt("\n  "), el("h2", txt("t")), txt("\n")),
			want: "<h2>t</h2>",
		},
		{
			name: "inside container edges",
			in:   root(el("ul", txt("\n"), el("li", txt("a")), txt("\n"))),
			want: "<ul><li>a</li></ul>",
		},
		{
			name: "space between inline elements kept",
			in:   root(el("p", el("b", txt("a")), txt(" "), el("em", txt("b")))),
			want: "<p><b>a</b> <em>b</em></p>",
		},
		{
			name: "newline between text and nested list kept",
			in:   root(el("li", txt("a"), txt("\n"), el("ul", el("li", txt("b"))))),
			want: "<li>a\n<ul><li>b</li></ul></li>",
		},
		{
			name: "whitespace inside pre text untouched",
			in:   root(el("pre", txt("  x  "))),
			want: "<pre>  x  </pre>",
		},
		{
			name: "consecutive blanks between blocks kept",
			in:   root(el("p", txt("a")), txt(" "), txt("\n"), el("p", txt("b"))),
			want: "<p>a</p> \n<p>b</p>",
		},
		{
			name: "blank between block and raw kept",
			in:   root(el("p", txt("a")), txt("\n"), &htmltree.Raw{HTML: "<x>"}),
			want: "<p>a</p>\n<x>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			StripInterBlockWhitespace(tt.in)
			if got := htmltree.Render(tt.in); got != tt.want {
				t.Errorf("StripInterBlockWhitespace()\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}
