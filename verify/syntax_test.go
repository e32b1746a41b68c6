package verify

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sharpgen/errors"
)

func TestSyntax_Valid(t *testing.T) {
	src := `using System;

namespace Acme;

public sealed class Service : IDisposable
{
    private readonly int _count;

    public Service(int count) => _count = count;

    public int Next()
    {
        if (_count > 0)
        {
            return _count + 1;
        }
        return 0;
    }

    public void Dispose() { }
}
`
	report, err := Syntax(context.Background(), []byte(src))
	require.NoError(t, err)
	assert.True(t, report.Valid())
	assert.Empty(t, report.Diagnostics)
	assert.NoError(t, report.Err())
}

func TestSyntax_Invalid(t *testing.T) {
	src := "public class Broken\n{\n    public void Run()\n    {\n        var x = ;\n    }\n"
	report, err := Syntax(context.Background(), []byte(src))
	require.NoError(t, err)
	require.False(t, report.Valid())

	for _, d := range report.Diagnostics {
		assert.GreaterOrEqual(t, d.Line, 1)
		assert.NotEmpty(t, d.Message)
		assert.Contains(t, []Kind{KindSyntax, KindMissing}, d.Kind)
	}

	verr := report.Err()
	require.Error(t, verr)
	assert.True(t, errors.IsSyntaxError(verr))
	assert.Contains(t, verr.Error(), "syntax error(s)")
}

func TestSyntax_MaxDiagnostics(t *testing.T) {
	src := "class A { void M() { int = ; string = ; bool = ; } "
	report, err := Syntax(context.Background(), []byte(src), WithMaxDiagnostics(1))
	require.NoError(t, err)
	assert.False(t, report.Valid())
	assert.Len(t, report.Diagnostics, 1)
}

func TestTree(t *testing.T) {
	src := []byte("class A\n{\n    int M() => 1\n}\n")
	root, err := sitter.ParseCtx(context.Background(), src, csharp.GetLanguage())
	require.NoError(t, err)

	report := Tree(root, src)
	require.Len(t, report.Diagnostics, 1)
	d := report.Diagnostics[0]
	assert.Equal(t, KindMissing, d.Kind)
	assert.Equal(t, "missing ;", d.Message)
	assert.Equal(t, 3, d.Line)
	assert.Equal(t, 16, d.Column)
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Line: 3, Column: 8, Kind: KindMissing, Message: "missing ;", Suggestion: suggest(";")}
	assert.Equal(t, "3:8: missing ; (terminate the statement with ';')", d.String())

	d = Diagnostic{Line: 1, Column: 0, Kind: KindSyntax, Message: "unexpected ="}
	assert.Equal(t, "1:0: unexpected =", d.String())
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "add the closing '}'", suggest("}"))
	assert.Equal(t, "add the opening '('", suggest("("))
	assert.Equal(t, "add 'identifier'", suggest("identifier"))
}

func TestReport_TruncatedHint(t *testing.T) {
	r := &Report{Diagnostics: []Diagnostic{{Line: 1, Message: "syntax error"}}, Truncated: true}
	err := r.Err()
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "only the first ones are listed")
}
