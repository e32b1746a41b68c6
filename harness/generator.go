package harness

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/syntax"
)

// Generator produces C# sources from a set of input files.
type Generator interface {
	Name() string
	Generate(ctx context.Context, gc *Context) error
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc struct {
	GeneratorName string
	Fn            func(ctx context.Context, gc *Context) error
}

func (g GeneratorFunc) Name() string { return g.GeneratorName }

func (g GeneratorFunc) Generate(ctx context.Context, gc *Context) error {
	return g.Fn(ctx, gc)
}

// Severity of a generator diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Diagnostic is something a generator reports about its inputs.
type Diagnostic struct {
	ID       string
	Severity Severity
	Message  string
	// File and Pos locate the diagnostic; both are optional.
	File string
	Pos  syntax.Position
	// Generator is filled in by the pipeline.
	Generator string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	if d.File != "" {
		b.WriteString(d.File)
		if d.Pos.Line > 0 {
			b.WriteString(":" + d.Pos.String())
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Severity.String())
	if d.ID != "" {
		b.WriteString(" " + d.ID)
	}
	b.WriteString(": " + d.Message)
	return b.String()
}

// GeneratedSource is one file added by a generator.
type GeneratedSource struct {
	Hint      string
	Text      string
	Generator string
}

// Context is what a generator sees during one run. It is not safe for
// concurrent use.
type Context struct {
	generator   string
	files       []*syntax.File
	services    *Services
	sources     []GeneratedSource
	hints       map[string]bool
	diagnostics []Diagnostic
}

// Files returns the parsed inputs, including sources added by earlier
// generators in the pipeline.
func (c *Context) Files() []*syntax.File { return c.files }

// File returns the input with the given name.
func (c *Context) File(name string) (*syntax.File, bool) {
	for _, f := range c.files {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Services returns the collaborators shared by the pipeline.
func (c *Context) Services() *Services { return c.services }

// AddSource adds a generated file. A hint without the .cs extension gets
// one appended. Hints are unique within a run, case-insensitively.
func (c *Context) AddSource(hint, text string) error {
	hint, err := normalizeHint(hint)
	if err != nil {
		return err
	}
	key := strings.ToLower(hint)
	if c.hints[key] {
		return errors.InvalidOperationf("generator %s: source %q was already added", c.generator, hint)
	}
	c.hints[key] = true
	c.sources = append(c.sources, GeneratedSource{Hint: hint, Text: text, Generator: c.generator})
	return nil
}

// Report records a diagnostic.
func (c *Context) Report(d Diagnostic) {
	d.Generator = c.generator
	c.diagnostics = append(c.diagnostics, d)
}

func normalizeHint(hint string) (string, error) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return "", errors.InvalidArgumentf("source hint cannot be empty")
	}
	if strings.ContainsAny(hint, `/\:*?"<>|`) {
		return "", errors.InvalidArgumentf("source hint %q contains path or reserved characters", hint)
	}
	if path.Ext(hint) != ".cs" {
		hint += ".cs"
	}
	return hint, nil
}
