package dialect_test

// Notes:
// - TestCheck_ConverterOutput feeds real converter output through the
//   checker; it is the end-to-end guarantee that the pipeline stays inside
//   the vocabulary for every construct it knows.
// - Raw HTML is excluded from that test: it is passed through verbatim by
//   default and may contain anything.

import (
	"context"
	"slices"
	"testing"

	"github.com/alnah/go-md2note/internal/dialect"
	"github.com/alnah/go-md2note/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestCheck - Violation detection
// ---------------------------------------------------------------------------

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want []dialect.Violation
	}{
		{
			name: "empty fragment",
			html: "",
			want: nil,
		},
		{
			name: "clean fragment",
			html: `<h2>T</h2><p><b>b</b> <em>e</em> <s>s</s> <a href="x">a</a><br><img src="i.png" alt="i"></p><ol start="2"><li>x</li></ol><pre>code</pre><hr>`,
			want: nil,
		},
		{
			name: "table without explicit tbody",
			html: "<table><tr><th>A</th></tr><tr><td>1</td></tr></table>",
			want: nil,
		},
		{
			name: "forbidden heading",
			html: "<h1>T</h1>",
			want: []dialect.Violation{{Kind: dialect.KindElement, Element: "h1"}},
		},
		{
			name: "strong and del",
			html: "<p><strong>a</strong><del>b</del></p>",
			want: []dialect.Violation{
				{Kind: dialect.KindElement, Element: "strong"},
				{Kind: dialect.KindElement, Element: "del"},
			},
		},
		{
			name: "attribute on paragraph",
			html: `<p class="x">a</p>`,
			want: []dialect.Violation{{Kind: dialect.KindAttribute, Element: "p", Detail: "class"}},
		},
		{
			name: "link title",
			html: `<a href="x" title="t">a</a>`,
			want: []dialect.Violation{{Kind: dialect.KindAttribute, Element: "a", Detail: "title"}},
		},
		{
			name: "pre code nesting",
			html: "<pre><code>x</code></pre>",
			want: []dialect.Violation{
				{Kind: dialect.KindElement, Element: "code"},
				{Kind: dialect.KindNesting, Element: "code", Detail: "inside pre"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := dialect.Check(tt.html)
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Check(%q)\n got: %v\nwant: %v", tt.html, got, tt.want)
			}
		})
	}
}

func TestCheck_ConverterOutput(t *testing.T) {
	t.Parallel()

	markdown := "# Title\n\n" +
		"## Section\n\n" +
		"#### Deep\n\n" +
		"Some **bold**, *em*, ~~struck~~ and `code` with [a link](https://example.com).\n\n" +
		"![image](a.png)\n\n" +
		"- one\n- two\n  1. nested\n\n" +
		"3. three\n\n" +
		"> quote\n\n" +
		"```go\nfmt.Println(\"x\")\n```\n\n" +
		"    indented\n\n" +
		"| A | B |\n|---|---|\n| 1 | 2 |\n\n" +
		"- [x] done\n\n" +
		"line  \nbreak\n\n" +
		"---\n"

	html, err := pipeline.NewGoldmarkConverter().ToHTML(context.Background(), markdown)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}

	violations, err := dialect.Check(html)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(violations) > 0 {
		t.Errorf("converter output has violations: %v\nhtml: %s", violations, html)
	}
}

func TestCheck_SanitizedRawHTML(t *testing.T) {
	t.Parallel()

	markdown := "<div class=\"x\" onclick=\"y()\"><span>a</span><script>b</script></div>\n\ntext <kbd>k</kbd>"
	converter := pipeline.NewGoldmarkConverter(pipeline.WithRawHTMLMode(pipeline.RawHTMLSanitize))

	html, err := converter.ToHTML(context.Background(), markdown)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}

	violations, err := dialect.Check(html)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(violations) > 0 {
		t.Errorf("sanitized output has violations: %v\nhtml: %s", violations, html)
	}
}

func TestViolation_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    dialect.Violation
		want string
	}{
		{dialect.Violation{Kind: dialect.KindElement, Element: "h1"}, "element: <h1>"},
		{dialect.Violation{Kind: dialect.KindAttribute, Element: "p", Detail: "class"}, "attribute: <p> class"},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestElements(t *testing.T) {
	t.Parallel()

	got := dialect.Elements()
	if !slices.IsSorted(got) {
		t.Errorf("Elements() not sorted: %v", got)
	}
	for _, forbidden := range []string{"h1", "strong", "del", "code", "span"} {
		if slices.Contains(got, forbidden) {
			t.Errorf("Elements() contains %q", forbidden)
		}
	}
}
