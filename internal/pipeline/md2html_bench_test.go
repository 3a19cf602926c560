//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"
)

// BenchmarkToHTML measures the full Markdown to editor HTML path:
// parse, tree build, normalization passes and serialization.
func BenchmarkToHTML(b *testing.B) {
	converter := NewGoldmarkConverter()
	ctx := context.Background()

	inputs := []struct {
		name    string
		content string
	}{
		{"minimal", "## Hello\n\nWorld"},
		{"headings_all_levels", articleWithHeadings(30)},
		{"fenced_code", articleWithCode("go", 10, 20)},
		{"tables", articleWithTables(5, 10)},
		{"article_small", noteArticle(5)},
		{"article_medium", noteArticle(40)},
		{"article_large", noteArticle(200)},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(input.content)))

			for b.Loop() {
				if _, err := converter.ToHTML(ctx, input.content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkToHTML_RawHTMLModes compares the cost of keeping, sanitizing and
// dropping inline HTML.
func BenchmarkToHTML_RawHTMLModes(b *testing.B) {
	ctx := context.Background()
	content := articleWithRawHTML(50)

	for _, mode := range []RawHTMLMode{RawHTMLKeep, RawHTMLSanitize, RawHTMLDrop} {
		converter := NewGoldmarkConverter(WithRawHTMLMode(mode))
		b.Run(string(mode), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := converter.ToHTML(ctx, content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkToHTML_BaseURL measures relative target resolution.
func BenchmarkToHTML_BaseURL(b *testing.B) {
	base, err := url.Parse("https://cdn.example.com/posts/")
	if err != nil {
		b.Fatal(err)
	}
	converter := NewGoldmarkConverter(WithBaseURL(base))
	ctx := context.Background()
	content := articleWithImages(100)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := converter.ToHTML(ctx, content); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkToHTMLParallel measures a shared converter under concurrent use,
// as the CLI batch does.
func BenchmarkToHTMLParallel(b *testing.B) {
	converter := NewGoldmarkConverter()
	ctx := context.Background()
	content := noteArticle(20)

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := converter.ToHTML(ctx, content); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkRenormalize measures re-importing converter output.
func BenchmarkRenormalize(b *testing.B) {
	converter := NewGoldmarkConverter()
	ctx := context.Background()
	html, err := converter.ToHTML(ctx, noteArticle(50))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(html)))
	for b.Loop() {
		if _, err := converter.Renormalize(ctx, html); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkNormalize measures the normalization passes alone.
// Trees are rebuilt outside the timer because the passes mutate them.
func BenchmarkNormalize(b *testing.B) {
	converter := NewGoldmarkConverter()

	inputs := []struct {
		name    string
		content string
	}{
		{"headings", articleWithHeadings(60)},
		{"fenced_code", articleWithCode("python", 1, 200)},
		{"article_large", noteArticle(200)},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				b.StopTimer()
				root := converter.BuildTree(input.content)
				b.StartTimer()

				Normalize(root)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Article generators
// ---------------------------------------------------------------------------

// articleWithHeadings cycles through h1 to h6 so every heading mapping runs.
func articleWithHeadings(count int) string {
	var sb strings.Builder
	for i := range count {
		fmt.Fprintf(&sb, "%s Heading %d\n\nA short paragraph.\n\n", strings.Repeat("#", i%6+1), i+1)
	}
	return sb.String()
}

// articleWithCode emits fenced code blocks holding markup-like text.
func articleWithCode(lang string, blocks, lines int) string {
	var sb strings.Builder
	for i := range blocks {
		fmt.Fprintf(&sb, "## Listing %d\n\n```%s\n", i+1, lang)
		for j := range lines {
			fmt.Fprintf(&sb, "value_%d = compute(%d)  # <b>not markup</b>\n", j, j)
		}
		sb.WriteString("```\n\n")
	}
	return sb.String()
}

// articleWithTables emits GFM tables with inline formatting in cells.
func articleWithTables(tables, rows int) string {
	var sb strings.Builder
	for range tables {
		sb.WriteString("| Name | Score | Note |\n|------|------:|------|\n")
		for r := range rows {
			fmt.Fprintf(&sb, "| **row %d** | %d | ~~old~~ `new` |\n", r, r*10)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// articleWithRawHTML mixes inline and block HTML into paragraphs.
func articleWithRawHTML(paragraphs int) string {
	var sb strings.Builder
	for i := range paragraphs {
		fmt.Fprintf(&sb, "Paragraph %d with <span class=\"x\">inline</span> and <kbd>Ctrl</kbd>.\n\n", i)
		if i%5 == 0 {
			sb.WriteString("<div onclick=\"alert(1)\">\n<p>block html</p>\n</div>\n\n")
		}
	}
	return sb.String()
}

// articleWithImages emits relative, root-relative and absolute targets.
func articleWithImages(count int) string {
	var sb strings.Builder
	for i := range count {
		fmt.Fprintf(&sb, "![fig %d](images/fig%d.png) see [notes](../notes/%d.md) or [home](/) and [site](https://example.com/%d)\n\n", i, i, i, i)
	}
	return sb.String()
}

// noteArticle builds a typical post: title, lead, sections with lists,
// emphasis, a quote, code every third section and a table every fifth.
func noteArticle(sections int) string {
	var sb strings.Builder
	sb.WriteString("# Weekly notes\n\nLead paragraph with **bold**, *italic* and ~~struck~~ text.\n\n")

	for i := range sections {
		fmt.Fprintf(&sb, "## Section %d\n\n", i+1)
		sb.WriteString("Body text with a [link](https://example.com) and `inline code`.\n")
		sb.WriteString("Second line of the same paragraph.\n\n")
		sb.WriteString("- first\n- second\n  1. nested\n  2. items\n- third\n\n")
		sb.WriteString("> A quoted line.\n\n")

		if i%3 == 0 {
			sb.WriteString("```go\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n```\n\n")
		}
		if i%5 == 0 {
			sb.WriteString("| A | B |\n|---|---|\n| 1 | 2 |\n\n")
		}
	}
	return sb.String()
}
