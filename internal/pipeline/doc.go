// Package pipeline implements the Markdown-to-editor-HTML conversion pipeline.
//
// Stages, in order:
//   - Markdown preprocessing (line endings, byte order mark)
//   - Parsing via goldmark with GFM extensions
//   - Tree building: goldmark AST to htmltree
//   - Optional raw HTML policy (keep, sanitize with bluemonday, drop)
//   - Optional relative URL resolution against a base URL
//   - Normalization passes: headings, inline elements, code blocks,
//     inter-block whitespace
//   - Serialization and a final newline cleanup before </pre>
//
// The normalization order is fixed. The inline pass flattens inline code to
// text but leaves the code element of a code block for the code-block pass.
package pipeline
