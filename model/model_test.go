package model

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/expect"
	"github.com/teranos/sharpgen/langversion"
)

func plainOptions() RenderOptions {
	opts := DefaultRenderOptions()
	opts.GeneratedHeader = false
	return opts
}

func TestLoad_FormatsAgree(t *testing.T) {
	y, err := Load(filepath.Join("testdata", "orders.yaml"))
	require.NoError(t, err)
	tm, err := Load(filepath.Join("testdata", "orders.toml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("testdata", "orders.yaml"), y.Path)
	order := y.Types[len(y.Types)-1]
	require.Len(t, order.Properties, 1)
	assert.Equal(t, "string?", order.Properties[0].Type)
	y.Path, tm.Path = "", ""
	if diff := cmp.Diff(y, tm); diff != "" {
		t.Errorf("YAML and TOML models differ (-yaml +toml):\n%s", diff)
	}

	ys, err := y.Render(DefaultRenderOptions())
	require.NoError(t, err)
	ts, err := tm.Render(DefaultRenderOptions())
	require.NoError(t, err)
	assert.Equal(t, ys, ts)
}

func TestRender_Orders(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "orders.yaml"))
	require.NoError(t, err)
	src, err := f.Render(DefaultRenderOptions())
	require.NoError(t, err)

	assert.Contains(t, src, "// <auto-generated/>")
	expect.Source(t, src, expect.WithFilename("orders.g.cs")).
		IsFileScoped().
		HasNamespace("Acme.Orders").
		HasUsing("System.Threading.Tasks").
		HasTypeCount(4).
		HasEnum("ErrorCode", func(e *expect.EnumExpectations) {
			e.HasValue("None", func(v *expect.EnumValueExpectations) { v.HasValue(0) }).
				HasValue("NotFound", func(v *expect.EnumValueExpectations) { v.HasValue(404) })
		}).
		HasInterface("IOrderService", func(i *expect.InterfaceExpectations) {
			i.HasMethod("GetAsync", func(m *expect.MethodExpectations) {
				m.HasNoBody().HasReturnType("Task<Order?>")
			})
		}).
		HasClass("OrderService", func(c *expect.ClassExpectations) {
			c.IsPublic().IsSealed().HasSummary("Looks up orders.").
				ImplementsInterface("IOrderService").
				HasField("_store", func(f *expect.FieldExpectations) { f.IsPrivate().IsReadOnly() }).
				HasConstructor([]string{"IStore"}).
				HasMethod("GetAsync", func(m *expect.MethodExpectations) { m.IsAsync().HasBodyContaining("FindAsync") })
		}).
		HasRecord("Order", func(r *expect.RecordExpectations) {
			r.HasPrimaryConstructorParameterTypes("Guid", "decimal").
				HasProperty("Note", func(p *expect.PropertyExpectations) { p.HasInitSetter() })
		})
}

func TestRender_Text(t *testing.T) {
	f := &File{
		Namespace: "Acme",
		Types: []Type{{
			Kind:   KindEnum,
			Name:   "Status",
			Values: []EnumValue{{Name: "Open", Value: int64Ptr(1)}, {Name: "Closed"}},
		}},
	}
	src, err := f.Render(plainOptions())
	require.NoError(t, err)
	want := "namespace Acme;\n\npublic enum Status\n{\n    Open = 1,\n    Closed\n}\n"
	if diff := cmp.Diff(want, src); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}

	opts := plainOptions()
	opts.IndentWidth = 2
	src, err = f.Render(opts)
	require.NoError(t, err)
	assert.Contains(t, src, "\n  Open = 1,\n")
}

func TestRender_LanguageVersionGates(t *testing.T) {
	record := &File{Namespace: "Acme", Types: []Type{{Kind: KindRecord, Name: "Point", Parameters: []Parameter{{Name: "X", Type: "int"}}}}}

	opts := plainOptions()
	opts.LangVersion = langversion.MustParse("8.0")
	_, err := record.Render(opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFeature))
	assert.Contains(t, err.Error(), "render record Point")

	record.Types[0].Struct = true
	opts.LangVersion = langversion.MustParse("9.0")
	_, err = record.Render(opts)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFeature))

	// The file's own lang_version wins over the options.
	record.LangVersion = "10.0"
	_, err = record.Render(opts)
	require.NoError(t, err)

	required := &File{Namespace: "Acme", Types: []Type{{
		Kind:       KindClass,
		Name:       "User",
		Properties: []Property{{Name: "Name", Type: "string", Modifiers: []string{"required"}}},
	}}}
	opts.LangVersion = langversion.MustParse("10.0")
	_, err = required.Render(opts)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFeature))

	dim := &File{Namespace: "Acme", Types: []Type{{
		Kind:    KindInterface,
		Name:    "IGreeter",
		Methods: []Method{{Name: "Greet", Returns: "string", Expression: `"hi"`}},
	}}}
	opts.LangVersion = langversion.MustParse("7.3")
	_, err = dim.Render(opts)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFeature))
}

func TestRender_OldVersionUsesBlockNamespace(t *testing.T) {
	f := &File{Namespace: "Acme", Types: []Type{{Kind: KindClass, Name: "Empty"}}}
	opts := DefaultRenderOptions()
	opts.LangVersion = langversion.MustParse("7.3")
	src, err := f.Render(opts)
	require.NoError(t, err)
	assert.Contains(t, src, "namespace Acme\n{\n")
	assert.NotContains(t, src, "#nullable")
}

func TestRender_BuilderErrors(t *testing.T) {
	dup := &File{Namespace: "Acme", Types: []Type{{
		Kind:    KindClass,
		Name:    "Calc",
		Methods: []Method{{Name: "Add", Returns: "int", Parameters: []Parameter{{Name: "a", Type: "int"}, {Name: "a", Type: "int"}}}},
	}}}
	_, err := dup.Render(plainOptions())
	require.Error(t, err)
	assert.True(t, errors.IsInvalidOperation(err))
	assert.Contains(t, err.Error(), "render class Calc")

	badMod := &File{Namespace: "Acme", Types: []Type{{Kind: KindClass, Name: "C", Modifiers: []string{"readonly"}}}}
	_, err = badMod.Render(plainOptions())
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestValidate(t *testing.T) {
	f := &File{
		Namespace: "Acme..Orders",
		Types: []Type{
			{Kind: "struct", Name: "S"},
			{Kind: KindEnum, Name: "E"},
			{Kind: KindClass, Name: "C", Access: "friend", Values: []EnumValue{{Name: "X"}},
				Fields:     []Field{{Name: "a"}, {Name: "a", Type: "int"}},
				Properties: []Property{{Name: "P", Type: "int", Setter: "maybe"}}},
			{Kind: KindClass, Name: "C"},
		},
	}
	err := f.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	msg := err.Error()
	for _, want := range []string{
		`namespace "Acme..Orders" is not a dotted identifier`,
		`unknown kind "struct"`,
		"enum E: no values",
		`class C: unknown access "friend"`,
		"class C: only enums have values",
		"class C.a: missing type",
		"class C: member a declared more than once",
		`class C.P: unknown setter "maybe"`,
		"class C: declared more than once",
	} {
		assert.Contains(t, msg, want)
	}

	require.NoError(t, (&File{Namespace: "Acme", Types: []Type{{Kind: KindClass, Name: "Ok"}}}).Validate())
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(".yaml", []byte("namespace: Acme\nbogus: 1\n"))
	assert.Error(t, err)

	_, err = Decode(".toml", []byte("namespace = \"Acme\"\nbogus = 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown TOML keys: bogus")

	_, err = Decode(".json", []byte("{}"))
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = Load(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}

func TestOutputName(t *testing.T) {
	f := &File{Path: "models/orders.yaml", Types: []Type{{Name: "Order"}}}
	assert.Equal(t, "orders.g.cs", f.OutputName(".g.cs"))
	f.Path = ""
	assert.Equal(t, "Order.cs", f.OutputName(".cs"))
	assert.Equal(t, "Model.cs", (&File{}).OutputName(".cs"))

	assert.True(t, IsModelFile("a/b.YML"))
	assert.False(t, IsModelFile("a/b.cs"))
}

func int64Ptr(n int64) *int64 { return &n }
