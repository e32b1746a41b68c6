package codebuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/sharpgen/xmldoc"
)

func TestFieldBuilder(t *testing.T) {
	tests := []struct {
		name  string
		field *FieldBuilder
		want  string
	}{
		{"default private", NewField("_count", "int"), "private int _count;"},
		{"readonly", NewField("x", "int").MakePrivate().MakeReadOnly(), "private readonly int x;"},
		{"const", NewField("Max", "int").MakePublic().MakeConst("10"), "public const int Max = 10;"},
		{
			"static readonly with initializer",
			NewField("Instance", "Foo").MakeStatic().MakeReadOnly().WithInitializer("new Foo()"),
			"private static readonly Foo Instance = new Foo();",
		},
		{"protected internal", NewField("value", "string?").MakeProtectedInternal(), "protected internal string? value;"},
		{"volatile", NewField("_running", "bool").MakeVolatile(), "private volatile bool _running;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.Build())
		})
	}
}

func TestFieldBuilder_Validation(t *testing.T) {
	requireInvalidArgument(t, func() { NewField("", "int") })
	requireInvalidArgument(t, func() { NewField("  ", "int") })
	requireInvalidArgument(t, func() { NewField("x", " ") })
	requireInvalidArgument(t, func() { NewField("1x", "int") })
	requireInvalidArgument(t, func() { NewField("x", "int").WithInitializer("") })

	// @ escapes keywords
	assert.Equal(t, "private int @class;", NewField("@class", "int").Build())
}

func TestFieldBuilder_ConstConflicts(t *testing.T) {
	requireInvalidOperation(t, func() { NewField("x", "int").MakeConst("1").WithInitializer("2") })
	requireInvalidOperation(t, func() { NewField("x", "int").WithInitializer("2").MakeConst("1") })
	requireInvalidOperation(t, func() { NewField("x", "int").MakeStatic().MakeConst("1") })
	requireInvalidOperation(t, func() { NewField("x", "int").MakeReadOnly().MakeConst("1") })
	requireInvalidOperation(t, func() { NewField("x", "int").MakeConst("1").MakeStatic() })
	requireInvalidOperation(t, func() { NewField("x", "int").MakeConst("1").MakeReadOnly() })
	requireInvalidOperation(t, func() { NewField("x", "int").WithInitializer("1").WithInitializer("2") })
}

func TestFieldBuilder_DocsAndAttributes(t *testing.T) {
	f := NewField("_cache", "Dictionary<string, int>").
		WithSummary("Lookup cache.").
		WithAttribute("NonSerialized").
		WithInitializer("new()")

	want := `/// <summary>
/// Lookup cache.
/// </summary>
[NonSerialized]
private Dictionary<string, int> _cache = new();`
	assertSource(t, want, f.Build())
}

func TestPropertyBuilder(t *testing.T) {
	tests := []struct {
		name string
		prop *PropertyBuilder
		want string
	}{
		{"auto", NewProperty("Name", "string"), "public string Name { get; set; }"},
		{"read-only", NewProperty("Name", "string").MakeReadOnly(), "public string Name { get; }"},
		{"init", NewProperty("Name", "string").WithInitSetter(), "public string Name { get; init; }"},
		{"private set", NewProperty("Name", "string").WithPrivateSetter(), "public string Name { get; private set; }"},
		{
			"required init",
			NewProperty("Id", "Guid").MakeRequired().WithInitSetter(),
			"public required Guid Id { get; init; }",
		},
		{
			"initializer",
			NewProperty("Tags", "List<string>").WithInitializer("new()"),
			"public List<string> Tags { get; set; } = new();",
		},
		{"expression body", NewProperty("Full", "string").WithExpressionBody("$\"{First} {Last}\""), "public string Full => $\"{First} {Last}\";"},
		{"static virtual", NewProperty("Count", "int").MakeStatic().MakeReadOnly(), "public static int Count { get; }"},
		{"override", NewProperty("Name", "string").MakeOverride().MakeReadOnly(), "public override string Name { get; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.prop.Build())
		})
	}
}

func TestPropertyBuilder_AccessorBodies(t *testing.T) {
	p := NewProperty("Name", "string").
		WithGetter("return _name;").
		WithSetter("_name = value ?? throw new ArgumentNullException(nameof(value));")

	want := `public string Name
{
    get
    {
        return _name;
    }
    set
    {
        _name = value ?? throw new ArgumentNullException(nameof(value));
    }
}`
	assertSource(t, want, p.Build())

	expr := NewProperty("Name", "string").
		WithGetterExpression("_name").
		WithPrivateSetter().
		WithSetterExpression("_name = value")
	assertSource(t, "public string Name\n{\n    get => _name;\n    private set => _name = value;\n}", expr.Build())

	getOnly := NewProperty("Name", "string").MakeReadOnly().WithGetterExpression("_name;")
	assertSource(t, "public string Name\n{\n    get => _name;\n}", getOnly.Build())
}

func TestPropertyBuilder_Conflicts(t *testing.T) {
	requireInvalidOperation(t, func() { NewProperty("A", "int").WithExpressionBody("1").WithGetter("return 1;") })
	requireInvalidOperation(t, func() { NewProperty("A", "int").WithGetter("return 1;").WithExpressionBody("1") })
	requireInvalidOperation(t, func() { NewProperty("A", "int").WithExpressionBody("1").WithInitializer("2") })
	requireInvalidOperation(t, func() { NewProperty("A", "int").WithInitializer("2").WithExpressionBody("1") })
	requireInvalidOperation(t, func() { NewProperty("A", "int").WithSetter("x = value;").MakeReadOnly() })
	requireInvalidOperation(t, func() { NewProperty("A", "int").MakeReadOnly().WithInitSetter() })
	requireInvalidOperation(t, func() { NewProperty("A", "int").MakeAbstract().WithGetter("return 1;") })
	requireInvalidOperation(t, func() { NewProperty("A", "int").MakeVirtual().MakeOverride() })
	requireInvalidArgument(t, func() { NewProperty("A", "") })
}

func TestMethodBuilder_DefaultBody(t *testing.T) {
	want := `public void Run()
{
    throw new NotImplementedException();
}`
	assertSource(t, want, NewMethod("Run", "").Build())
	assert.Equal(t, "void", NewMethod("Run", "").ReturnType())
}

func TestMethodBuilder(t *testing.T) {
	tests := []struct {
		name   string
		method *MethodBuilder
		want   string
	}{
		{
			"expression body",
			NewMethod("Add", "int").AddParameter("a", "int").AddParameter("b", "int").WithExpressionBody("a + b"),
			"public int Add(int a, int b) => a + b;",
		},
		{
			"abstract",
			NewMethod("Area", "double").MakeProtected().MakeAbstract(),
			"protected abstract double Area();",
		},
		{
			"no implementation",
			NewMethod("Load", "Task").WithNoImplementation(),
			"public Task Load();",
		},
		{
			"partial",
			NewMethod("OnChanged", "void").MakePrivate().MakePartial(),
			"private partial void OnChanged();",
		},
		{
			"generic with constraints",
			NewMethod("Map", "TOut").
				AddTypeParameter("TIn").
				AddTypeParameter("TOut").
				AddTypeConstraint("TOut", "class", "new()").
				AddParameter("input", "TIn").
				WithNoImplementation(),
			"public TOut Map<TIn, TOut>(TIn input) where TOut : class, new();",
		},
		{
			"parameter modifiers",
			NewMethod("TryParse", "bool").
				MakeStatic().
				AddParameterWithModifier("text", "string", "in").
				AddParameterWithModifier("value", "int", "out").
				AddParamsParameter("formats", "string[]").
				WithExpressionBody("int.TryParse(text, out value)"),
			"public static bool TryParse(in string text, out int value, params string[] formats) => int.TryParse(text, out value);",
		},
		{
			"extension",
			NewMethod("IsBlank", "bool").MakeStatic().
				AddParameterWithModifier("s", "string?", "this").
				WithExpressionBody("string.IsNullOrWhiteSpace(s)"),
			"public static bool IsBlank(this string? s) => string.IsNullOrWhiteSpace(s);",
		},
		{
			"canonical modifier order",
			NewMethod("RunAsync", "Task").MakeAsync().MakeOverride().MakeSealed().MakeProtected().WithExpressionBody("Task.CompletedTask"),
			"protected sealed override async Task RunAsync() => Task.CompletedTask;",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.method.Build())
		})
	}
}

func TestMethodBuilder_DefaultValues(t *testing.T) {
	m := NewMethod("Take", "void").
		AddParameter("source", "IEnumerable<int>").
		AddParameterWithDefault("count", "int", "10").
		WithBody("")

	assertSource(t, "public void Take(IEnumerable<int> source, int count)\n{\n}", m.Build())

	m.EmitDefaultValues()
	assertSource(t, "public void Take(IEnumerable<int> source, int count = 10)\n{\n}", m.Build())

	params := m.Parameters()
	assert.Len(t, params, 2)
	assert.True(t, params[1].HasDefault)
	assert.Equal(t, "10", params[1].Default)
}

func TestMethodBuilder_BodyBuilder(t *testing.T) {
	m := NewMethod("Sum", "int").
		AddParameter("values", "int[]").
		WithBodyBuilder(func(b *CodeBlockBuilder) {
			b.AddVariable("var", "total", "0").
				AddForEach("v", "values", func(b *CodeBlockBuilder) { b.AddStatement("total += v") }).
				AddReturn("total")
		})

	want := `public int Sum(int[] values)
{
    var total = 0;
    foreach (var v in values)
    {
        total += v;
    }
    return total;
}`
	assertSource(t, want, m.Build())
}

func TestMethodBuilder_Documentation(t *testing.T) {
	m := NewMethod("Divide", "double").
		WithSummary("Divides two numbers.").
		WithParamDoc("a", "The dividend.").
		WithParamDoc("b", "The divisor.").
		WithReturnsDoc("The quotient.").
		WithExceptionDoc("DivideByZeroException", "When b is zero.").
		WithAttribute("Pure").
		AddParameter("a", "double").
		AddParameter("b", "double").
		WithExpressionBody("a / b")

	want := `/// <summary>
/// Divides two numbers.
/// </summary>
/// <param name="a">The dividend.</param>
/// <param name="b">The divisor.</param>
/// <returns>The quotient.</returns>
/// <exception cref="DivideByZeroException">When b is zero.</exception>
[Pure]
public double Divide(double a, double b) => a / b;`
	assertSource(t, want, m.Build())
}

func TestMethodBuilder_DocumentationProvider(t *testing.T) {
	p := xmldoc.NewAutoProvider("GetOrders", xmldoc.ElementMethod)
	m := NewMethod("GetOrders", "IReadOnlyList<Order>").WithDocumentation(p).WithNoImplementation()
	assertSource(t, "/// <summary>\n/// Get orders.\n/// </summary>\npublic IReadOnlyList<Order> GetOrders();", m.Build())

	auto := NewProperty("FirstName", "string").WithAutoDocumentation()
	assertSource(t, "/// <summary>\n/// Gets or sets the first name.\n/// </summary>\npublic string FirstName { get; set; }", auto.Build())
}

func TestMethodBuilder_Conflicts(t *testing.T) {
	requireInvalidOperation(t, func() { NewMethod("M", "void").WithBody("").WithExpressionBody("x") })
	requireInvalidOperation(t, func() { NewMethod("M", "void").WithExpressionBody("x").WithBody("") })
	requireInvalidOperation(t, func() { NewMethod("M", "void").WithBody("").WithNoImplementation() })
	requireInvalidOperation(t, func() { NewMethod("M", "void").WithNoImplementation().WithBody("") })
	requireInvalidOperation(t, func() { NewMethod("M", "void").MakeAbstract().WithBody("") })
	requireInvalidOperation(t, func() { NewMethod("M", "void").WithBody("").MakeAbstract() })
	requireInvalidOperation(t, func() { NewMethod("M", "void").MakeAbstract().MakeSealed() })
	requireInvalidOperation(t, func() { NewMethod("M", "void").AddTypeConstraint("T", "class") })
	requireInvalidOperation(t, func() { NewMethod("M", "void").AddTypeParameter("T").AddTypeParameter("T") })
	requireInvalidArgument(t, func() { NewMethod("M", "void").AddParameterWithModifier("x", "int", "byref") })
	requireInvalidArgument(t, func() { NewMethod("", "void") })
	requireInvalidArgument(t, func() { NewMethod("M", "   ") })
}

func TestMethodBuilder_DuplicateParameter(t *testing.T) {
	requireInvalidOperation(t, func() {
		NewMethod("M", "void").AddParameter("x", "int").AddParameter("x", "string")
	})
	requireInvalidOperation(t, func() {
		NewMethod("M", "void").AddParamsParameter("rest", "int[]").AddParameter("x", "int")
	})
	requireInvalidOperation(t, func() {
		NewMethod("M", "void").AddParameter("x", "int").AddParameterWithModifier("s", "string", "this")
	})
}

func TestConstructorBuilder(t *testing.T) {
	assertSource(t, "public Person()\n{\n}", NewConstructor("Person").Build())

	c := NewConstructor("Person").
		AddParameter("name", "string").
		WithBaseCall("name").
		WithBody("Name = name;")
	assertSource(t, "public Person(string name) : base(name)\n{\n    Name = name;\n}", c.Build())

	this := NewConstructor("Person").MakeInternal().WithThisCall(`"unknown"`)
	assertSource(t, "internal Person() : this(\"unknown\")\n{\n}", this.Build())

	expr := NewConstructor("Point").AddParameter("x", "int").WithExpressionBody("X = x")
	assert.Equal(t, "public Point(int x) => X = x;", expr.Build())

	static := NewConstructor("Registry").MakeStatic().WithBody("Default = new();")
	assertSource(t, "static Registry()\n{\n    Default = new();\n}", static.Build())

	defaults := NewConstructor("Page").AddParameterWithDefault("size", "int", "20")
	assert.Contains(t, defaults.Build(), "public Page(int size)\n")
	assert.Contains(t, defaults.EmitDefaultValues().Build(), "public Page(int size = 20)\n")
}

func TestConstructorBuilder_Initializers(t *testing.T) {
	requireInvalidOperation(t, func() {
		NewConstructor("TestClass").WithThisCall("arg").WithBaseCall("arg")
	})
	requireInvalidOperation(t, func() {
		NewConstructor("TestClass").WithBaseCall("arg").WithThisCall("arg")
	})
	requireInvalidOperation(t, func() {
		NewConstructor("TestClass").WithBaseCall().WithBaseCall()
	})
	requireInvalidOperation(t, func() {
		NewConstructor("TestClass").AddParameter("a", "int").AddParameter("a", "int")
	})
	requireInvalidOperation(t, func() { NewConstructor("T").AddParameter("a", "int").MakeStatic() })
	requireInvalidOperation(t, func() { NewConstructor("T").MakeStatic().AddParameter("a", "int") })
	requireInvalidOperation(t, func() { NewConstructor("T").MakeStatic().WithBaseCall() })
	requireInvalidOperation(t, func() { NewConstructor("T").WithBody("").WithExpressionBody("x = 1") })
	requireInvalidOperation(t, func() { NewConstructor("T").WithExpressionBody("x = 1").WithExpressionBody("x = 2") })
	requireInvalidOperation(t, func() { NewConstructor("T").MakeStatic().MakePrivate() })
	requireInvalidOperation(t, func() { NewConstructor("T").MakeStatic().WithAccess(Internal) })
	assertSource(t, "static T()\n{\n}", NewConstructor("T").MakeStatic().WithAccess(AccessDefault).Build())
}

func TestEnumBuilder(t *testing.T) {
	e := NewEnum("ErrorCode").AddValue("None", 0).AddValue("NotFound", 404)
	want := `public enum ErrorCode
{
    None = 0,
    NotFound = 404
}`
	assertSource(t, want, e.Build())
	assert.Equal(t, []string{"None", "NotFound"}, e.ValueNames())
}

func TestEnumBuilder_Flags(t *testing.T) {
	e := NewEnum("Access").
		MakeInternal().
		WithFlags().
		WithFlags().
		WithBaseType("byte").
		AddValueWithSummary("None", 0, "No access.").
		AddValue("Read", 1).
		AddValue("Write", 2).
		AddExpressionValue("All", "Read | Write").
		AddImplicitValue("Next").
		WithValueAttribute("All", Attribute("Description", `"everything"`))

	want := `[Flags]
internal enum Access : byte
{
    /// <summary>
    /// No access.
    /// </summary>
    None = 0,
    Read = 1,
    Write = 2,
    [Description("everything")]
    All = Read | Write,
    Next
}`
	assertSource(t, want, e.Build())
}

func TestEnumBuilder_Validation(t *testing.T) {
	requireInvalidOperation(t, func() { NewEnum("E").AddValue("A", 1).AddImplicitValue("A") })
	requireInvalidArgument(t, func() { NewEnum("E").WithBaseType("string") })
	requireInvalidOperation(t, func() { NewEnum("E").WithValueAttribute("Missing", Attribute("X")) })
	requireInvalidArgument(t, func() { NewEnum("E").AddImplicitValue("") })
}

func TestAttributeBuilder(t *testing.T) {
	assert.Equal(t, "[Serializable]", NewAttribute("Serializable").Build())
	assert.Equal(t, "[Flags]", NewAttribute("[Flags]").Build())
	assert.Equal(t, `[JsonPropertyName("id")]`, NewAttribute("JsonPropertyName").AddStringArgument("id").Build())
	assert.Equal(t,
		`[Obsolete("Use V2", DiagnosticId = "SG001")]`,
		NewAttribute("Obsolete").AddStringArgument("Use V2").AddNamedArgument("DiagnosticId", `"SG001"`).Build())
	assert.Equal(t, "[return: NotNull]", NewAttribute("NotNull").WithTarget("return").Build())
	assert.Equal(t, "[Generic<int>]", NewAttribute("Generic<int>").Build())

	requireInvalidArgument(t, func() { NewAttribute("") })
	requireInvalidArgument(t, func() { NewAttribute("Flags").AddArgument(" ") })
	requireInvalidArgument(t, func() { NewField("x", "int").AddAttribute(nil) })
}

func TestDirectiveBuilder(t *testing.T) {
	assert.Equal(t, "#endif", NewDirective().Build())

	d := NewDirective().
		If("DEBUG", `Console.WriteLine("debug");`).
		ElseIf("TRACE", "").
		Else("// release")
	assertSource(t, "#if DEBUG\nConsole.WriteLine(\"debug\");\n#elif TRACE\n#else\n// release\n#endif", d.Build())
	assert.Equal(t, d.Build(), d.Build())

	elifOnly := NewDirective().ElseIf("NET8_0_OR_GREATER", "using System.Frozen;")
	assert.Equal(t, "#elif NET8_0_OR_GREATER\nusing System.Frozen;\n#endif", elifOnly.Build())
}

func TestDirectiveBuilder_States(t *testing.T) {
	requireInvalidOperation(t, func() { NewDirective().If("A", "").If("B", "") })
	requireInvalidOperation(t, func() { NewDirective().ElseIf("A", "").If("B", "") })
	requireInvalidOperation(t, func() { NewDirective().Else("").ElseIf("B", "") })
	requireInvalidOperation(t, func() { NewDirective().If("A", "").Else("").Else("") })
	requireInvalidArgument(t, func() { NewDirective().If("  ", "") })
	requireInvalidArgument(t, func() { NewDirective().ElseIf("", "") })
}

func TestBuildIsIdempotent(t *testing.T) {
	builders := []interface{ Build() string }{
		NewField("x", "int"),
		NewProperty("P", "int"),
		NewMethod("M", "void").AddParameter("a", "int"),
		NewConstructor("C").WithBaseCall("1"),
		NewEnum("E").AddImplicitValue("A"),
		NewClass("C").AddMethod(NewMethod("M", "void")),
		NewInterface("I").AddMethod(NewMethod("M", "void")),
		NewRecord("R").AddParameter("A", "int"),
		NewNamespace("N").AddType(NewClass("C")),
		NewDirective().If("X", "y"),
	}
	for _, b := range builders {
		first := b.Build()
		assert.Equal(t, first, b.Build())
	}
}
