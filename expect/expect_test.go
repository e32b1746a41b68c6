package expect_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/expect"
	"github.com/teranos/sharpgen/syntax"
)

// recordingT captures what an expectation tree reports instead of failing
// the surrounding test.
type recordingT struct {
	errors   []string
	failNows int
}

func (r *recordingT) Helper() {}

func (r *recordingT) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) FailNow() { r.failNows++ }

const serviceSource = `using System;

namespace Acme;

public class Service : IDisposable
{
    public int X;

    public void Save() { }

    public void Load() { }

    void IDisposable.Dispose() { }
}
`

func TestFailFast_StopsAtFirstFailure(t *testing.T) {
	rt := &recordingT{}
	tree := expect.Source(rt, serviceSource)

	called := false
	tree.HasClass("Service", func(c *expect.ClassExpectations) {
		c.IsInternal().IsSealed().HasField("X", func(*expect.FieldExpectations) { called = true })
	}).HasEnum("Missing")

	require.Len(t, rt.errors, 1)
	assert.Equal(t, 1, rt.failNows)
	assert.Equal(t, `class Service: expected to be internal, found access "public"`, rt.errors[0])
	assert.False(t, called, "navigation after a failure must not run callbacks")
	assert.True(t, tree.Failed())

	err := tree.Verify()
	var aerr *expect.AssertionError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, "class Service", aerr.Declaration)
	assert.Equal(t, "to be internal", aerr.Expected)
	assert.True(t, errors.Is(err, errors.ErrAssertion))
	assert.Len(t, rt.errors, 1, "Verify does not report twice")
}

func TestAccumulate_CollectsUntilVerify(t *testing.T) {
	rt := &recordingT{}
	tree := expect.Source(rt, serviceSource, expect.WithMode(expect.Accumulate))

	tree.HasClass("Service", func(c *expect.ClassExpectations) {
		c.IsInternal().
			IsSealed().
			HasField("X", func(f *expect.FieldExpectations) { f.HasType("string") })
	}).HasEnum("Missing")

	assert.Empty(t, rt.errors)
	assert.True(t, tree.Failed())

	err := tree.Verify()
	var eerr *expect.ExpectationError
	require.True(t, errors.As(err, &eerr))
	require.Len(t, eerr.Failures, 4)
	assert.Equal(t, "field Service.X", eerr.Failures[2].Declaration)
	assert.Equal(t, "type string", eerr.Failures[2].Expected)
	assert.Equal(t, "type int", eerr.Failures[2].Actual)
	assert.True(t, errors.Is(err, errors.ErrExpectation))

	require.Len(t, rt.errors, 1)
	assert.Equal(t, 1, rt.failNows)
	assert.Contains(t, rt.errors[0], "4 expectation(s) not met:")
	assert.Contains(t, rt.errors[0], "file source.cs: expected an enum named Missing, found enums none")

	assert.NoError(t, tree.Verify(), "reported failures are cleared")
}

func TestFailureMessages(t *testing.T) {
	tests := []struct {
		name  string
		check func(*expect.SyntaxTreeExpectations)
		want  string
	}{
		{
			"missing method lists candidates",
			func(e *expect.SyntaxTreeExpectations) {
				e.HasClass("Service", func(c *expect.ClassExpectations) { c.HasMethod("Delete") })
			},
			"class Service: expected a method named Delete, found methods Save, Load, Dispose",
		},
		{
			"missing class",
			func(e *expect.SyntaxTreeExpectations) { e.HasClass("Other") },
			"file source.cs: expected a class named Other, found classes Service",
		},
		{
			"base type",
			func(e *expect.SyntaxTreeExpectations) {
				e.HasClass("Service", func(c *expect.ClassExpectations) { c.ImplementsInterface("IComparable") })
			},
			"class Service: expected to implement IComparable, found base list IDisposable",
		},
		{
			"using",
			func(e *expect.SyntaxTreeExpectations) { e.HasUsing("System.Linq") },
			"file source.cs: expected using System.Linq, found usings System",
		},
		{
			"constructor lookup",
			func(e *expect.SyntaxTreeExpectations) {
				e.HasClass("Service", func(c *expect.ClassExpectations) { c.HasConstructor([]string{"int"}) })
			},
			"class Service: expected a constructor Service(int), found constructors none",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := &recordingT{}
			tt.check(expect.Source(rt, serviceSource))
			require.Len(t, rt.errors, 1)
			assert.Equal(t, tt.want, rt.errors[0])
		})
	}
}

func TestSource_ParseError(t *testing.T) {
	rt := &recordingT{}
	tree := expect.Source(rt, "class {", expect.WithFilename("Broken.cs"))
	tree.HasClass("A")

	require.Len(t, rt.errors, 1)
	assert.Contains(t, rt.errors[0], "Broken.cs: expected source that parses, found Broken.cs:1:1")
}

func TestNamespaceShapes(t *testing.T) {
	braced := `using System;

namespace Outer
{
    using static System.Math;

    namespace Inner
    {
        internal class Helper
        {
            class Node { }
        }
    }
}
`
	fileScoped := `namespace Outer.Inner;

using static System.Math;

internal class Helper
{
    class Node { }
}
`
	for name, src := range map[string]string{"braced": braced, "file-scoped": fileScoped} {
		t.Run(name, func(t *testing.T) {
			expect.Source(t, src).
				HasUsing("using static System.Math;").
				HasNoUsing("System.Linq").
				HasNamespace("Outer.Inner", func(ns *expect.NamespaceExpectations) {
					ns.HasClass("Helper", func(c *expect.ClassExpectations) {
						c.IsInternal().HasNestedClass("Node", func(n *expect.ClassExpectations) { n.IsPrivate() })
					}).HasTypeCount(2)
				}).
				HasClass("Node", func(c *expect.ClassExpectations) { c.IsPrivate() })
		})
	}

	expect.Source(t, fileScoped).IsFileScoped()
}

func TestMemberExpectations(t *testing.T) {
	src := `namespace Acme;

[Serializable]
public abstract partial class Shape<T> : ShapeBase, IComparable<Shape<T>> where T : struct
{
    /// <summary>The shape name.</summary>
    public string Name { get; private set; } = "shape";

    public int Sides => 0;

    public required Guid Id { get; init; }

    protected static readonly Dictionary<string, int> Cache = new();

    public const int Max = 10;

    protected Shape(string name) : base(name) { Name = name; }

    public Shape(int sides, string name = "any") : this(name) { }

    /// <summary>Computes the area.</summary>
    /// <param name="scale">Scale factor.</param>
    public abstract double Area(double scale, params int[] dims);

    public virtual async Task<bool> SaveAsync(CancellationToken ct = default)
    {
        await Task.Yield();
        return true;
    }

    public static bool IsBlank(this string? s) => string.IsNullOrWhiteSpace(s);

    void IDisposable.Dispose() { }
}
`
	expect.Source(t, src).HasClass("Shape", func(c *expect.ClassExpectations) {
		c.IsPublic().IsAbstract().IsPartial().DoesNotHaveModifier("sealed").
			HasAttribute("SerializableAttribute").
			HasTypeParameter("T").
			HasBaseType("ShapeBase").
			ImplementsInterface("IComparable<Shape<T>>").
			HasConstructorCount(2).
			HasMemberCount(11).
			HasNoMethod("Perimeter").
			HasNoProperty("Color").
			HasProperty("Name", func(p *expect.PropertyExpectations) {
				p.HasType("String").IsAutoProperty().HasGetter().HasSetter().
					HasAccessorAccess("set", "private").
					HasInitializerValue(`"shape"`).
					HasSummary("The shape name.")
			}).
			HasProperty("Sides", func(p *expect.PropertyExpectations) {
				p.HasType("Int32").IsReadOnly().HasGetter().HasExpressionBodyContaining("0")
			}).
			HasProperty("Id", func(p *expect.PropertyExpectations) {
				p.IsRequired().HasInitSetter().DoesNotHaveModifier("static")
			}).
			HasField("Cache", func(f *expect.FieldExpectations) {
				f.IsProtected().IsStatic().IsReadOnly().
					HasType("System.Collections.Generic.Dictionary<String, Int32>").
					HasInitializerValue("new()")
			}).
			HasField("Max", func(f *expect.FieldExpectations) {
				f.IsConst().HasInitializer().HasInitializerValue("10")
			}).
			HasConstructor([]string{"string"}, func(ctor *expect.ConstructorExpectations) {
				ctor.IsProtected().HasBaseCall("name").HasBodyContaining("Name = name;")
			}).
			HasConstructor([]string{"int", "string"}, func(ctor *expect.ConstructorExpectations) {
				ctor.HasThisCall().HasThisCall("name").HasParameterCount(2).
					HasParameter("name", func(p *expect.ParameterExpectations) {
						p.HasType("string").HasDefaultValue().HasDefaultValueOf(`"any"`)
					}).
					HasParameter("sides", func(p *expect.ParameterExpectations) { p.HasNoDefaultValue() })
			}).
			HasMethod("Area", func(m *expect.MethodExpectations) {
				m.IsAbstract().HasNoBody().HasReturnType("Double").
					HasParameterTypes("double", "int[]").
					HasSummary("Computes the area.").
					HasDocTag("param", "Scale").
					HasDocParam("scale").
					HasParameter("dims", func(p *expect.ParameterExpectations) { p.IsParams() })
			}).
			HasMethod("SaveAsync", func(m *expect.MethodExpectations) {
				m.IsVirtual().IsAsync().HasReturnType("Task<Boolean>").HasBody().
					HasBodyContaining("return true;").
					HasParameter("ct", func(p *expect.ParameterExpectations) { p.HasDefaultValueOf("default") })
			}).
			HasMethod("IsBlank", func(m *expect.MethodExpectations) {
				m.IsStatic().IsExtension().HasExpressionBody().
					HasExpressionBodyContaining("IsNullOrWhiteSpace").
					HasParameter("s", func(p *expect.ParameterExpectations) { p.HasType("string").HasModifier("this") })
			}).
			HasMethod("Dispose", func(m *expect.MethodExpectations) {
				m.ImplementsExplicitly("IDisposable").HasAccess("").IsVoid().HasNoParameters()
			})
	})
}

func TestEnumValues(t *testing.T) {
	src := `[Flags]
enum Level : byte
{
    Low,
    Mid = 5,
    [Description("high")]
    High,
    Max = 0x10,
    Mask = Low | Mid,
}
`
	expect.Source(t, src).HasEnum("Level", func(e *expect.EnumExpectations) {
		e.IsInternal().HasFlagsAttribute().HasBaseType("Byte").HasValueCount(5).
			HasValues("Low", "Mid", "High").
			HasValue("Low", func(v *expect.EnumValueExpectations) { v.HasValue(0).HasNoExplicitValue() }).
			HasValue("Mid", func(v *expect.EnumValueExpectations) { v.HasValue(5).HasExplicitValue() }).
			HasValue("High", func(v *expect.EnumValueExpectations) {
				v.HasValue(6).HasAttribute("Description", `"high"`)
			}).
			HasValue("Max", func(v *expect.EnumValueExpectations) { v.HasValue(16) }).
			HasValue("Mask", func(v *expect.EnumValueExpectations) { v.HasValueText("Low|Mid") })
	})

	rt := &recordingT{}
	expect.Source(rt, src).HasEnum("Level", func(e *expect.EnumExpectations) {
		e.HasValue("Mask", func(v *expect.EnumValueExpectations) { v.HasValue(5) })
	})
	require.Len(t, rt.errors, 1)
	assert.Equal(t, `enum value Level.Mask: expected value 5, found expression "Low | Mid"`, rt.errors[0])
}

func TestEnumDefaultBaseType(t *testing.T) {
	expect.Source(t, "public enum Color { Red }").HasEnum("Color", func(e *expect.EnumExpectations) {
		e.IsPublic().HasBaseType("int").HasBaseType("System.Int32")
	})
}

func TestInterfaceAndRecord(t *testing.T) {
	src := `public interface IStore<in TKey, out TValue> : IDisposable
{
    TValue Get(TKey key);
    int Count { get; }
}

public record Person(string Name, int Age = 0);

public readonly record struct Point(double X, double Y);

public record class Employee(string Name, decimal Salary) : Person(Name)
{
    public string Title { get; init; } = "";
}

public delegate void Changed(object sender);
`
	expect.Source(t, src).
		HasInterface("IStore", func(i *expect.InterfaceExpectations) {
			i.IsPublic().Extends("IDisposable").HasTypeParameter("TKey").
				HasVariantTypeParameter("TKey", "in").
				HasVariantTypeParameter("TValue", "out").
				HasMethod("Get", func(m *expect.MethodExpectations) { m.IsPublic().HasNoBody().HasReturnType("TValue") }).
				HasProperty("Count", func(p *expect.PropertyExpectations) { p.IsPublic().IsReadOnly() })
		}).
		HasRecord("Person", func(r *expect.RecordExpectations) {
			r.IsRecordClass().HasPrimaryConstructorParameterCount(2).
				HasPrimaryConstructorParameterTypes("string", "int").
				HasPrimaryConstructorParameter("Age", func(p *expect.ParameterExpectations) { p.HasDefaultValueOf("0") })
		}).
		HasRecord("Point", func(r *expect.RecordExpectations) { r.IsRecordStruct().IsReadOnly() }).
		HasRecord("Employee", func(r *expect.RecordExpectations) {
			r.IsRecordClass().HasBaseType("Person").HasBaseRecordArguments("Name").
				HasProperty("Title", func(p *expect.PropertyExpectations) { p.HasInitSetter() })
		}).
		HasDelegate("Changed").
		HasNoType("Customer").
		HasTypeCount(5)
}

func TestFactory(t *testing.T) {
	file := syntax.MustParse("a.cs", serviceSource)
	svc := file.FileScopedNamespace().Types[0]

	f := expect.NewFactory(t)
	f.Class(svc).IsPublic().HasMethod("Save")
	f.Method(svc.Method("Load")).IsPublic().HasBody()
	f.Field(svc.Field("X")).HasType("int")
	f.File(file).HasNamespace("Acme")
	assert.False(t, f.Failed())
	assert.NoError(t, f.Verify())

	rt := &recordingT{}
	af := expect.NewFactory(rt, expect.WithMode(expect.Accumulate))
	af.Class(svc).IsStatic()
	af.Field(svc.Field("X")).IsConst()
	err := af.Verify()
	var eerr *expect.ExpectationError
	require.True(t, errors.As(err, &eerr))
	assert.Len(t, eerr.Failures, 2)
}
