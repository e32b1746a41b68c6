// Package verify checks C# source with tree-sitter's C# grammar.
//
// Package syntax stops at the first problem in a file. verify reports every
// ERROR and MISSING node, bodies included, so generated code can be
// rejected before it reaches a compiler.
package verify

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/teranos/sharpgen/errors"
)

const (
	// DefaultMaxDiagnostics bounds the report on heavily malformed input.
	DefaultMaxDiagnostics = 50

	maxDepth      = 1000
	maxContextLen = 100
)

// Kind classifies a diagnostic.
type Kind string

const (
	KindSyntax  Kind = "syntax"
	KindMissing Kind = "missing"
)

// Diagnostic is one ERROR or MISSING node. Line is 1-based, Column is a
// 0-based byte offset, as tree-sitter reports it.
type Diagnostic struct {
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	Context    string `json:"context,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
	if d.Suggestion != "" {
		s += " (" + d.Suggestion + ")"
	}
	return s
}

// Report is the result of a syntax check.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	// Truncated is set when collection stopped at the diagnostic limit.
	Truncated bool `json:"truncated,omitempty"`
}

// Valid reports whether the source parsed without errors.
func (r *Report) Valid() bool {
	return len(r.Diagnostics) == 0
}

// Err returns nil for valid source, otherwise an error marked ErrSyntax
// listing every diagnostic.
func (r *Report) Err() error {
	if r.Valid() {
		return nil
	}
	lines := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		lines[i] = "  " + d.String()
	}
	err := errors.Newf("%d syntax error(s):\n%s", len(r.Diagnostics), strings.Join(lines, "\n"))
	if r.Truncated {
		err = errors.WithHint(err, "more errors were found; only the first ones are listed")
	}
	return errors.Mark(err, errors.ErrSyntax)
}

type options struct {
	maxDiagnostics int
}

// Option configures Syntax.
type Option func(*options)

// WithMaxDiagnostics caps the number of collected diagnostics. Values <= 0
// fall back to DefaultMaxDiagnostics.
func WithMaxDiagnostics(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDiagnostics = n
		}
	}
}

// Syntax parses src and collects its ERROR and MISSING nodes. The error
// return is reserved for failures of the parser itself, such as a
// cancelled context; invalid source yields a Report with diagnostics.
func Syntax(ctx context.Context, src []byte, opts ...Option) (*Report, error) {
	o := options{maxDiagnostics: DefaultMaxDiagnostics}
	for _, opt := range opts {
		opt(&o)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(csharp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrap(err, "tree-sitter parse")
	}
	defer tree.Close()

	return collect(tree.RootNode(), src, o), nil
}

// Tree collects the diagnostics of an already parsed tree. root must come
// from the C# grammar and src must be the bytes it was parsed from.
func Tree(root *sitter.Node, src []byte, opts ...Option) *Report {
	o := options{maxDiagnostics: DefaultMaxDiagnostics}
	for _, opt := range opts {
		opt(&o)
	}
	return collect(root, src, o)
}

func collect(root *sitter.Node, src []byte, o options) *Report {
	c := collector{src: src, max: o.maxDiagnostics}
	c.walk(root, 0)
	return &Report{Diagnostics: c.diags, Truncated: c.truncated}
}

type collector struct {
	src       []byte
	max       int
	diags     []Diagnostic
	truncated bool
}

func (c *collector) walk(node *sitter.Node, depth int) {
	if depth > maxDepth {
		return
	}
	if len(c.diags) >= c.max {
		c.truncated = true
		return
	}
	if node.IsError() || node.IsMissing() {
		c.diags = append(c.diags, c.diagnose(node))
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		c.walk(node.Child(i), depth+1)
	}
}

func (c *collector) diagnose(node *sitter.Node) Diagnostic {
	start, end := node.StartByte(), node.EndByte()
	if end > uint32(len(c.src)) {
		end = uint32(len(c.src))
	}
	var text string
	if end > start && end-start < maxContextLen {
		text = string(c.src[start:end])
	}

	point := node.StartPoint()
	d := Diagnostic{
		Line:    int(point.Row) + 1,
		Column:  int(point.Column),
		Kind:    KindSyntax,
		Message: "syntax error",
		Context: text,
	}
	switch {
	case node.IsMissing():
		d.Kind = KindMissing
		d.Message = "missing " + node.Type()
		d.Suggestion = suggest(node.Type())
	case text != "":
		d.Message = "unexpected " + truncate(strings.TrimSpace(text), 50)
	}
	return d
}

func suggest(nodeType string) string {
	switch nodeType {
	case "}", "]", ")":
		return fmt.Sprintf("add the closing '%s'", nodeType)
	case "{", "[", "(":
		return fmt.Sprintf("add the opening '%s'", nodeType)
	case ";":
		return "terminate the statement with ';'"
	}
	return fmt.Sprintf("add '%s'", nodeType)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
