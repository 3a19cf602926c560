// Package md2note converts Markdown articles to the HTML dialect accepted by
// the note.com editor.
//
// # Quick Start
//
// Create a converter and convert an article body:
//
//	conv, err := md2note.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	html, err := conv.ToHTML(ctx, "## Hello\n\nWorld")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// To convert a whole article file, including its YAML front matter, use
// Convert. The result carries the title, tags and remaining metadata next to
// the HTML:
//
//	result, err := conv.Convert(ctx, raw)
//	fmt.Println(result.Title, result.HTML)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (byte order mark, line endings)
//  2. Parsing via goldmark with GFM extensions
//  3. Raw HTML policy and relative URL resolution (both optional)
//  4. Normalization: headings, inline elements, code blocks, whitespace
//  5. Serialization to a compact HTML fragment
//
// The editor only knows h2 and h3 headings, has no inline code and wants
// code blocks as a bare pre element. Headings are clamped, inline markup
// outside the dialect is flattened to its text, and "pre > code" becomes
// "pre". The output never contains a code element.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2note.NewConverter(
//	    md2note.WithRawHTML("sanitize"),
//	    md2note.WithBaseURL("https://raw.githubusercontent.com/u/r/main/articles/"),
//	)
//
// A Converter holds no per-call state and is safe for concurrent use.
//
// # Checking Output
//
// Check reports every element, attribute or nesting outside the dialect.
// Renormalize reads HTML back and normalizes it again; output of ToHTML is
// a fixed point.
package md2note
