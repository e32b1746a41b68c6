package harness

import (
	"context"
	"strings"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/expect"
	"github.com/teranos/sharpgen/verify"
)

// Result holds what a pipeline run produced, in generation order.
type Result struct {
	Sources     []GeneratedSource
	Diagnostics []Diagnostic
}

// Source returns the text generated under hint. The .cs extension may be
// omitted.
func (r *Result) Source(hint string) (string, bool) {
	if g, ok := r.find(hint); ok {
		return g.Text, true
	}
	return "", false
}

func (r *Result) find(hint string) (GeneratedSource, bool) {
	want := strings.ToLower(strings.TrimSpace(hint))
	if !strings.HasSuffix(want, ".cs") {
		want += ".cs"
	}
	for _, g := range r.Sources {
		if strings.ToLower(g.Hint) == want {
			return g, true
		}
	}
	return GeneratedSource{}, false
}

// Hints lists the generated file names.
func (r *Result) Hints() []string {
	hints := make([]string, len(r.Sources))
	for i, g := range r.Sources {
		hints[i] = g.Hint
	}
	return hints
}

// HasErrors reports whether any generator reported an error diagnostic.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Verify checks every generated source with tree-sitter. The returned error
// joins one ErrSyntax error per invalid file.
func (r *Result) Verify(ctx context.Context, opts ...verify.Option) error {
	var errs []error
	for _, g := range r.Sources {
		report, err := verify.Syntax(ctx, []byte(g.Text), opts...)
		if err != nil {
			return errors.Wrapf(err, "verify %s", g.Hint)
		}
		if verr := report.Err(); verr != nil {
			errs = append(errs, errors.Wrapf(verr, "%s (from %s)", g.Hint, g.Generator))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// Expect parses the source generated under hint and returns expectations
// over it. A missing hint is reported through t.
func (r *Result) Expect(t expect.TestingT, hint string, opts ...expect.Option) *expect.SyntaxTreeExpectations {
	t.Helper()
	g, ok := r.find(hint)
	if !ok {
		t.Errorf("no generated source %q; generated: %s", hint, strings.Join(r.Hints(), ", "))
		t.FailNow()
	}
	name := g.Hint
	if name == "" {
		name = hint
	}
	opts = append([]expect.Option{expect.WithFilename(name)}, opts...)
	return expect.Source(t, g.Text, opts...)
}
