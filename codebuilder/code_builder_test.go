package codebuilder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sharpgen/errors"
)

// assertSource compares rendered C# and prints a readable diff.
func assertSource(t *testing.T, want, got string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
}

func requireInvalidArgument(t *testing.T, fn func()) {
	t.Helper()
	err := Catch(fn)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err), "expected invalid argument, got %v", err)
}

func requireInvalidOperation(t *testing.T, fn func()) {
	t.Helper()
	err := Catch(fn)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidOperation(err), "expected invalid operation, got %v", err)
}

func TestCodeBuilder_Indentation(t *testing.T) {
	b := New()
	b.AppendLine("class A").
		OpenBlock().
		AppendLine("int x;").
		AppendLine("").
		Append("int ").Append("y;").AppendLine("").
		CloseBlock()

	assertSource(t, "class A\n{\n    int x;\n\n    int y;\n}\n", b.Build())
	assert.Equal(t, b.Build(), b.String())
	assert.Equal(t, b.Build(), b.Build(), "Build must be repeatable")
}

func TestCodeBuilder_IndentWidth(t *testing.T) {
	b := NewWithIndent(2)
	b.Indent().Indent().AppendLine("x")
	assert.Equal(t, "    x\n", b.Build())

	zero := NewWithIndent(0)
	zero.Indent().AppendLine("x")
	assert.Equal(t, "x\n", zero.Build())
	assert.Equal(t, 0, zero.IndentWidth())
}

func TestCodeBuilder_NegativeWidth(t *testing.T) {
	requireInvalidArgument(t, func() { NewWithIndent(-1) })
}

func TestCodeBuilder_OutdentClamps(t *testing.T) {
	b := New()
	b.Indent().Outdent().Outdent().Dedent().Outdent()
	assert.Equal(t, 0, b.Level())
	b.AppendLine("x")
	assert.Equal(t, "x\n", b.Build())

	b.Indent()
	assert.Equal(t, 1, b.Level())
}

func TestCodeBuilder_EmptyInput(t *testing.T) {
	b := New()
	b.Indent()
	b.Append("")
	b.AppendLine("")
	b.AppendLines("")
	assert.Equal(t, "\n", b.Build(), "empty line must not carry indentation")
}

func TestCodeBuilder_AppendLines(t *testing.T) {
	b := New()
	b.Indent().AppendLines("a;\n\nb;\n")
	assert.Equal(t, "    a;\n\n    b;\n", b.Build())
}

func TestCodeBuilder_AppendLinesKeepsVerbatimStrings(t *testing.T) {
	body := "var sql = @\"select *\n  from \"\"t\"\"\nwhere x\";\nreturn sql;"
	b := New()
	b.Indent().AppendLines(body)
	want := "    var sql = @\"select *\n  from \"\"t\"\"\nwhere x\";\n    return sql;\n"
	assert.Equal(t, want, b.Build())
}

func TestCodeBuilder_AppendLinesIndentsRawStrings(t *testing.T) {
	body := "var json = \"\"\"\n  {\"a\": 1}\n  \"\"\";\nvar s = \"//\";\nvar c = '\"';"
	b := New()
	b.Indent().AppendLines(body)
	want := "    var json = \"\"\"\n      {\"a\": 1}\n      \"\"\";\n    var s = \"//\";\n    var c = '\"';\n"
	assert.Equal(t, want, b.Build())
}

func TestLiteralState(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  literalState
	}{
		{"plain", []string{`x = "a";`}, literalState{}},
		{"verbatim open", []string{`x = @"a`}, literalState{inVerbatim: true}},
		{"interpolated verbatim", []string{`x = $@"{a}`}, literalState{inVerbatim: true}},
		{"verbatim closed", []string{`x = @"a`, `b"";c";`}, literalState{}},
		{"raw open", []string{`x = """`}, literalState{rawQuotes: 3}},
		{"raw closed", []string{`x = """`, `a "" b`, `""";`}, literalState{}},
		{"quote in comment", []string{`// @"`}, literalState{}},
		{"block comment", []string{`/* @"`, `*/ y = @"`}, literalState{inVerbatim: true}},
		{"escaped quote", []string{`x = "a\"@"; y = 1;`}, literalState{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st literalState
			for _, l := range tt.lines {
				st.scan(l)
			}
			assert.Equal(t, tt.want, st)
		})
	}
}

func TestCodeBuilder_AppendKeepsLinePosition(t *testing.T) {
	b := New()
	b.Indent().Append("var x = ").Append("1;").AppendLine("")
	assert.Equal(t, "    var x = 1;\n", b.Build())
}

func TestIndentScope_ReleaseOnce(t *testing.T) {
	b := New()
	b.Indent()
	scope := b.WithIndent()
	assert.Equal(t, 2, b.Level())

	scope.Release()
	scope.Release()
	scope.Release()
	assert.Equal(t, 1, b.Level())
}

func TestIndentScope_Defer(t *testing.T) {
	b := New()
	func() {
		scope := b.WithIndent()
		defer scope.Release()
		b.AppendLine("inner")
	}()
	b.AppendLine("outer")
	assert.Equal(t, "    inner\nouter\n", b.Build())
}

func TestCodeBuilder_GeneratedHeader(t *testing.T) {
	b := New()
	b.Indent().AppendGeneratedCodeHeader()
	assert.Equal(t, "    // <auto-generated/>\n    #nullable enable\n", b.Build())
}

func TestCodeBuilder_AppendNamespace(t *testing.T) {
	b := New()
	b.AppendNamespace("Acme.Models")
	assert.Equal(t, "namespace Acme.Models;\n", b.Build())

	requireInvalidArgument(t, func() { New().AppendNamespace(" ") })
	requireInvalidArgument(t, func() { New().AppendNamespace("Acme..Models") })
}

func TestCodeBlockBuilder(t *testing.T) {
	body := NewBlock().
		AddComment("guard").
		AddIf("value is null", func(b *CodeBlockBuilder) {
			b.AddThrow("ArgumentNullException", "nameof(value)")
		}).
		AddElseIf("value.Length == 0", func(b *CodeBlockBuilder) {
			b.AddReturn("")
		}).
		AddElse(func(b *CodeBlockBuilder) {
			b.AddStatement("Count++")
		}).
		AddBlankLine().
		AddVariable("var", "total", "0").
		AddForEach("item", "items", func(b *CodeBlockBuilder) {
			b.AddStatement("total += item;")
		}).
		AddReturn("total").
		Build()

	want := `// guard
if (value is null)
{
    throw new ArgumentNullException(nameof(value));
}
else if (value.Length == 0)
{
    return;
}
else
{
    Count++;
}

var total = 0;
foreach (var item in items)
{
    total += item;
}
return total;`
	assertSource(t, want, body)
}

func TestCodeBlockBuilder_ElseWithoutIf(t *testing.T) {
	requireInvalidOperation(t, func() { NewBlock().AddElse(nil) })
	requireInvalidOperation(t, func() {
		NewBlock().AddIf("a", nil).AddStatement("x").AddElse(nil)
	})
	requireInvalidOperation(t, func() { NewBlock().AddElseIf("a", nil) })
	requireInvalidArgument(t, func() { NewBlock().AddStatement("  ") })
}

func TestCodeBlockBuilder_StatementTerminator(t *testing.T) {
	body := NewBlock().
		AddStatement("a()").
		AddStatement("b();").
		AddStatement("var f = () => { }").
		Build()
	assert.Equal(t, "a();\nb();\nvar f = () => { }", body)
}

func TestCatch(t *testing.T) {
	assert.NoError(t, Catch(func() {}))

	err := Catch(func() { NewField("", "int") })
	assert.True(t, errors.IsInvalidArgument(err))

	assert.PanicsWithValue(t, "boom", func() {
		_ = Catch(func() { panic("boom") })
	})
}

func TestModifierTokens(t *testing.T) {
	mods := Partial | Async | Static | Override | Readonly | Sealed
	assert.Equal(t, []string{"static", "sealed", "override", "readonly", "async", "partial"}, mods.Tokens())
	assert.Equal(t, "static sealed override readonly async partial", mods.String())
	assert.True(t, mods.Has(Static|Async))
	assert.False(t, mods.Has(Abstract))
}

func TestParseAccess(t *testing.T) {
	tests := map[string]Access{
		"public":             Public,
		"protected internal": ProtectedInternal,
		"internal protected": ProtectedInternal,
		"private  protected": PrivateProtected,
	}
	for in, want := range tests {
		got, ok := ParseAccess(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseAccess("friend")
	assert.False(t, ok)

	m, ok := ParseModifier("readonly")
	assert.True(t, ok)
	assert.Equal(t, Readonly, m)
	_, ok = ParseModifier("public")
	assert.False(t, ok)

	m, ok = ParseModifier("new")
	assert.True(t, ok)
	assert.Equal(t, Shadow, m)
	assert.Equal(t, "new static readonly", (Readonly | Static | Shadow).String())
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"plain"`, Quote("plain"))
	assert.Equal(t, `"a \"b\" \\ c\n"`, Quote("a \"b\" \\ c\n"))
}
