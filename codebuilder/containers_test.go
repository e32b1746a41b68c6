package codebuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassBuilder(t *testing.T) {
	c := NewClass("Repository").
		MakeSealed().
		AddTypeParameter("T").
		AddTypeConstraint("T", "class").
		WithBaseClass("RepositoryBase").
		AddInterface("IDisposable").
		AddField(NewField("_items", "List<T>").MakeReadOnly().WithInitializer("new()")).
		AddConstructor(NewConstructor("Repository")).
		AddProperty(NewProperty("Count", "int").WithExpressionBody("_items.Count")).
		AddMethod(NewMethod("Dispose", "void").WithBody("_items.Clear();"))

	want := `public sealed class Repository<T> : RepositoryBase, IDisposable where T : class
{
    private readonly List<T> _items = new();

    public Repository()
    {
    }

    public int Count => _items.Count;

    public void Dispose()
    {
        _items.Clear();
    }
}`
	assertSource(t, want, c.Build())
	assert.Equal(t, 4, c.MemberCount())
}

func TestClassBuilder_Empty(t *testing.T) {
	assertSource(t, "public class Empty\n{\n}", NewClass("Empty").Build())
	assertSource(t, "internal static partial class Extensions\n{\n}",
		NewClass("Extensions").MakeInternal().MakeStatic().MakePartial().Build())
}

func TestClassBuilder_NestedMembers(t *testing.T) {
	c := NewClass("Outer").
		AddNestedType(NewEnum("Kind").AddImplicitValue("A")).
		AddMember(NewDirective().If("DEBUG", "public int Debug;")).
		AddMember(Raw("// raw\nint y;"))

	want := `public class Outer
{
    public enum Kind
    {
        A
    }

    #if DEBUG
    public int Debug;
    #endif

    // raw
    int y;
}`
	assertSource(t, want, c.Build())
}

func TestClassBuilder_Documentation(t *testing.T) {
	c := NewClass("OrderService").WithAutoDocumentation().WithAttribute("Serializable")
	want := `/// <summary>
/// Represents an order service.
/// </summary>
[Serializable]
public class OrderService
{
}`
	assertSource(t, want, c.Build())

	generic := NewClass("Box").AddTypeParameter("T").WithSummary("Holds a value.").WithTypeParamDoc("T", "The value type.")
	assert.Contains(t, generic.Build(), "/// </summary>\n/// <typeparam name=\"T\">The value type.</typeparam>\npublic class Box<T>")
}

func TestClassBuilder_Validation(t *testing.T) {
	requireInvalidArgument(t, func() { NewClass("") })
	requireInvalidArgument(t, func() { NewClass("Bad Name") })
	requireInvalidArgument(t, func() { NewClass("A").AddConstructor(NewConstructor("B")) })
	requireInvalidArgument(t, func() { NewClass("A").AddField(nil) })
	requireInvalidArgument(t, func() { NewClass("A").AddMember(nil) })
	requireInvalidOperation(t, func() { NewClass("A").WithBaseClass("B").WithBaseClass("C") })
	requireInvalidOperation(t, func() { NewClass("A").AddInterface("I").AddInterface("I") })
	requireInvalidOperation(t, func() { NewClass("A").MakeAbstract().MakeSealed() })
}

func TestClassBuilder_IndentWidthPropagates(t *testing.T) {
	ns := NewNamespace("Acme").
		UseBlockScope().
		WithIndentWidth(2).
		AddType(NewClass("A").AddField(NewField("x", "int")))

	assertSource(t, "namespace Acme\n{\n  public class A\n  {\n    private int x;\n  }\n}\n", ns.Build())
}

func TestInterfaceBuilder(t *testing.T) {
	i := NewInterface("IRepository").
		AddTypeParameter("out T").
		AddBaseInterface("IDisposable").
		AddMethod(NewMethod("Get", "T").AddParameter("id", "int")).
		AddProperty(NewProperty("Count", "int").MakeReadOnly()).
		AddMethod(NewMethod("Describe", "string").WithExpressionBody(`"repository"`)).
		AddMethod(NewMethod("Create", "IRepository<T>").MakeStatic().MakeAbstract())

	want := `public interface IRepository<out T> : IDisposable
{
    T Get(int id);

    int Count { get; }

    string Describe() => "repository";

    static abstract IRepository<T> Create();
}`
	assertSource(t, want, i.Build())
}

func TestInterfaceBuilder_Validation(t *testing.T) {
	requireInvalidOperation(t, func() { NewInterface("I").AddBaseInterface("IA").AddBaseInterface("IA") })
	requireInvalidOperation(t, func() { NewInterface("I").AddTypeParameter("in T").AddTypeParameter("T") })
	requireInvalidArgument(t, func() { NewInterface("I").AddMethod(nil) })
}

func TestRecordBuilder(t *testing.T) {
	tests := []struct {
		name   string
		record *RecordBuilder
		want   string
	}{
		{
			"positional",
			NewRecord("Person").AddParameter("Name", "string").AddParameterWithDefault("Age", "int", "0"),
			"public record Person(string Name, int Age = 0);",
		},
		{
			"readonly record struct",
			NewRecord("Point").MakeStruct().MakeReadOnly().AddParameter("X", "double").AddParameter("Y", "double"),
			"public readonly record struct Point(double X, double Y);",
		},
		{
			"record class",
			NewRecord("Token").WithClassKeyword().WithEmptyParameterList(),
			"public record class Token();",
		},
		{
			"generic",
			NewRecord("Page").AddTypeParameter("T").AddTypeConstraint("T", "notnull").AddParameter("Items", "IReadOnlyList<T>"),
			"public record Page<T>(IReadOnlyList<T> Items) where T : notnull;",
		},
		{"bare", NewRecord("Marker"), "public record Marker;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.Build())
		})
	}
}

func TestRecordBuilder_WithMembers(t *testing.T) {
	r := NewRecord("Employee").
		AddParameter("Name", "string").
		AddParameter("Salary", "decimal").
		WithBaseRecord("Person", "Name").
		AddInterface("IComparable<Employee>").
		AddMethod(NewMethod("CompareTo", "int").
			AddParameter("other", "Employee?").
			WithExpressionBody("Salary.CompareTo(other?.Salary ?? 0)"))

	want := `public record Employee(string Name, decimal Salary) : Person(Name), IComparable<Employee>
{
    public int CompareTo(Employee? other) => Salary.CompareTo(other?.Salary ?? 0);
}`
	assertSource(t, want, r.Build())
	require.Len(t, r.PrimaryParameters(), 2)
	assert.Equal(t, "Salary", r.PrimaryParameters()[1].Name)
}

func TestRecordBuilder_ParameterAttributes(t *testing.T) {
	r := NewRecord("Dto").AddParameterSpec(Parameter{
		Name:       "Id",
		Type:       "string",
		Attributes: []*AttributeBuilder{NewAttribute("JsonPropertyName").WithTarget("property").AddStringArgument("id")},
	})
	assert.Equal(t, `public record Dto([property: JsonPropertyName("id")] string Id);`, r.Build())
}

func TestRecordBuilder_Validation(t *testing.T) {
	requireInvalidOperation(t, func() { NewRecord("R").MakeStruct().MakeAbstract() })
	requireInvalidOperation(t, func() { NewRecord("R").MakeSealed().MakeStruct() })
	requireInvalidOperation(t, func() { NewRecord("R").MakeReadOnly() })
	requireInvalidOperation(t, func() { NewRecord("R").WithClassKeyword().MakeStruct() })
	requireInvalidOperation(t, func() { NewRecord("R").MakeStruct().WithBaseRecord("Base") })
	requireInvalidOperation(t, func() { NewRecord("R").WithBaseRecord("A").WithBaseRecord("B") })
	requireInvalidOperation(t, func() { NewRecord("R").AddParameter("A", "int").AddParameter("A", "int") })
	requireInvalidArgument(t, func() { NewRecord("R").AddParameterSpec(Parameter{Name: "A", Type: "int", Modifier: "ref"}) })
	requireInvalidArgument(t, func() { NewRecord("R").AddConstructor(NewConstructor("Other")) })
}

func TestNamespaceBuilder(t *testing.T) {
	ns := NewNamespace("Acme.Models").
		WithGeneratedHeader().
		AddUsing("System").
		AddUsing("using System;").
		AddUsing("System.Collections.Generic").
		AddType(NewEnum("Status").AddValue("Active", 1)).
		AddType(NewRecord("Person").AddParameter("Name", "string"))

	want := `// <auto-generated/>
#nullable enable

using System;
using System.Collections.Generic;

namespace Acme.Models;

public enum Status
{
    Active = 1
}

public record Person(string Name);
`
	assertSource(t, want, ns.Build())
	assert.Equal(t, ns.Build(), ns.String())
	assert.True(t, ns.IsFileScoped())
	assert.Equal(t, 2, ns.TypeCount())
}

func TestNamespaceBuilder_DuplicateUsings(t *testing.T) {
	ns := NewNamespace("Acme").AddUsings("System.Linq", "using System.Linq;", "  System.Linq  ", "static System.Math")
	assert.Equal(t, []string{"System.Linq", "static System.Math"}, ns.Usings())
	assertSource(t, "using System.Linq;\nusing static System.Math;\n\nnamespace Acme;\n", ns.Build())
}

func TestNamespaceBuilder_Empty(t *testing.T) {
	assert.Equal(t, "namespace Acme;\n", NewNamespace("Acme").Build())
	assert.Equal(t, "namespace Acme\n{\n}\n", NewNamespace("Acme").UseBlockScope().Build())
}

func TestNamespaceBuilder_Validation(t *testing.T) {
	requireInvalidArgument(t, func() { NewNamespace("") })
	requireInvalidArgument(t, func() { NewNamespace("Acme..Models") })
	requireInvalidArgument(t, func() { NewNamespace("Acme").AddUsing(" ; ") })
	requireInvalidArgument(t, func() { NewNamespace("Acme").AddType(nil) })
	requireInvalidArgument(t, func() { NewNamespace("Acme").WithIndentWidth(-2) })
}

func TestNormalizeUsing(t *testing.T) {
	tests := map[string]string{
		"System":                         "System",
		"using System;":                  "System",
		"  using   System.Text ;":        "System.Text",
		"using Json = System.Text.Json;": "Json = System.Text.Json",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeUsing(in), in)
	}
}
