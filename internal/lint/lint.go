// Package lint reports Markdown constructs the note.com editor cannot
// display, before any conversion happens.
//
// Rules run on the same goldmark AST the converter builds from. Each message
// carries the rule id, a 1-based line in the linted source, a severity and a
// human-readable text.
package lint

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/alnah/go-md2note/internal/pipeline"
)

// ErrUnknownRule is returned when a rule id does not exist.
var ErrUnknownRule = errors.New("unknown lint rule")

// Severity grades a message.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule ids.
const (
	RuleHeadingLevel    = "heading-level"
	RuleNoStrikethrough = "no-strikethrough"
	RuleNoHTML          = "no-html"
	RuleNoTable         = "no-table"
	RuleCodeLanguage    = "code-language"
)

// Message is a single finding.
type Message struct {
	Rule     string
	Line     int
	Severity Severity
	Text     string
}

func (m Message) String() string {
	return fmt.Sprintf("%d: %s: %s [%s]", m.Line, m.Severity, m.Text, m.Rule)
}

// Rule inspects one AST node and returns a message text when it matches.
type Rule struct {
	ID       string
	Severity Severity
	Check    func(n ast.Node, source []byte) (string, bool)
}

// DefaultRules returns every built-in rule.
func DefaultRules() []Rule {
	return []Rule{
		{ID: RuleHeadingLevel, Severity: SeverityError, Check: checkHeadingLevel},
		{ID: RuleNoStrikethrough, Severity: SeverityError, Check: checkStrikethrough},
		{ID: RuleNoHTML, Severity: SeverityError, Check: checkHTML},
		{ID: RuleNoTable, Severity: SeverityError, Check: checkTable},
		{ID: RuleCodeLanguage, Severity: SeverityWarning, Check: checkCodeLanguage},
	}
}

// ValidateRuleIDs returns ErrUnknownRule for the first id that names no
// built-in rule.
func ValidateRuleIDs(ids []string) error {
	known := make(map[string]bool)
	for _, r := range DefaultRules() {
		known[r.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("%w: %q", ErrUnknownRule, id)
		}
	}
	return nil
}

// Linter runs a set of rules over Markdown bodies. It is safe for concurrent
// use.
type Linter struct {
	parser *pipeline.GoldmarkConverter
	rules  []Rule
}

// Option configures a Linter.
type Option func(*Linter)

// WithDisabled turns off the rules with the given ids.
func WithDisabled(ids ...string) Option {
	return func(l *Linter) {
		l.rules = slices.DeleteFunc(slices.Clone(l.rules), func(r Rule) bool {
			return slices.Contains(ids, r.ID)
		})
	}
}

// WithRules replaces the rule set.
func WithRules(rules ...Rule) Option {
	return func(l *Linter) {
		l.rules = rules
	}
}

// New creates a Linter with every built-in rule enabled.
func New(opts ...Option) *Linter {
	l := &Linter{
		parser: pipeline.NewGoldmarkConverter(),
		rules:  DefaultRules(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lint parses source and returns its messages ordered by line.
func (l *Linter) Lint(source string) []Message {
	doc, src := l.parser.ParseMarkdown(source)
	lines := newLineIndex(src)

	var msgs []Message
	last := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if off, ok := offset(n); ok {
			last = off
		}
		for _, r := range l.rules {
			if text, ok := r.Check(n, src); ok {
				msgs = append(msgs, Message{
					Rule:     r.ID,
					Line:     lines.line(last),
					Severity: r.Severity,
					Text:     text,
				})
			}
		}
		return ast.WalkContinue, nil
	})

	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Line < msgs[j].Line })
	return msgs
}

// HasErrors reports whether any message has error severity.
func HasErrors(msgs []Message) bool {
	for _, m := range msgs {
		if m.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Rules
// ---------------------------------------------------------------------------

func checkHeadingLevel(n ast.Node, _ []byte) (string, bool) {
	h, ok := n.(*ast.Heading)
	if !ok || h.Level == 2 || h.Level == 3 {
		return "", false
	}
	return fmt.Sprintf("h%d is not supported by the editor, use h2 or h3", h.Level), true
}

func checkStrikethrough(n ast.Node, _ []byte) (string, bool) {
	if _, ok := n.(*east.Strikethrough); !ok {
		return "", false
	}
	return "strikethrough is not supported by the editor", true
}

func checkHTML(n ast.Node, _ []byte) (string, bool) {
	switch n.(type) {
	case *ast.HTMLBlock, *ast.RawHTML:
		return "inline HTML is not supported by the editor", true
	}
	return "", false
}

func checkTable(n ast.Node, _ []byte) (string, bool) {
	if _, ok := n.(*east.Table); !ok {
		return "", false
	}
	return "tables are not supported by the editor", true
}

// checkCodeLanguage flags fence languages no chroma lexer recognizes; they
// usually point at a typo in the info string.
func checkCodeLanguage(n ast.Node, source []byte) (string, bool) {
	fcb, ok := n.(*ast.FencedCodeBlock)
	if !ok {
		return "", false
	}
	lang := strings.TrimSpace(string(fcb.Language(source)))
	if lang == "" || lexers.Get(lang) != nil {
		return "", false
	}
	return fmt.Sprintf("unknown code block language %q", lang), true
}

// ---------------------------------------------------------------------------
// Positions
// ---------------------------------------------------------------------------

// offset returns the byte offset where n starts in the source, searching
// descendants for nodes that carry no segment of their own.
func offset(n ast.Node) (int, bool) {
	switch v := n.(type) {
	case *ast.Text:
		return v.Segment.Start, true
	case *ast.RawHTML:
		if v.Segments.Len() > 0 {
			return v.Segments.At(0).Start, true
		}
	case *ast.FencedCodeBlock:
		if v.Info != nil {
			return v.Info.Segment.Start, true
		}
	}
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0).Start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off, ok := offset(c); ok {
			return off, true
		}
	}
	return 0, false
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

func newLineIndex(src []byte) lineIndex {
	starts := lineIndex{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (idx lineIndex) line(off int) int {
	return sort.Search(len(idx), func(i int) bool { return idx[i] > off })
}
