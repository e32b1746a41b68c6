package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sharpgen/codebuilder"
	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/expect"
	"github.com/teranos/sharpgen/syntax"
)

const orderInput = `namespace Shop;

public partial class Order
{
    public int Id { get; set; }
    public string Customer { get; set; }
}
`

// dtoGenerator emits one record per partial class it finds in the inputs.
func dtoGenerator() Generator {
	return GeneratorFunc{
		GeneratorName: "dto",
		Fn: func(ctx context.Context, gc *Context) error {
			for _, f := range gc.Files() {
				for _, ns := range f.Namespaces {
					for _, td := range ns.Types {
						if td.Kind != syntax.KindClass || !td.Modifiers.Has("partial") {
							continue
						}
						rec := codebuilder.NewRecord(td.Name + "Dto")
						for _, p := range td.Properties() {
							rec.AddParameter(p.Name, p.Type.String())
						}
						src := codebuilder.NewNamespace(ns.Name).AddType(rec).Build()
						if err := gc.AddSource(td.Name+"Dto.g", src); err != nil {
							return err
						}
					}
				}
			}
			return nil
		},
	}
}

func TestRunGenerator(t *testing.T) {
	res, err := RunGenerator(context.Background(), dtoGenerator(), "Order.cs", orderInput)
	require.NoError(t, err)

	assert.Equal(t, []string{"OrderDto.g.cs"}, res.Hints())
	src, ok := res.Source("OrderDto.g")
	require.True(t, ok)
	assert.Contains(t, src, "public record OrderDto(int Id, string Customer);")

	res.Expect(t, "OrderDto.g.cs").
		HasNamespace("Shop").
		HasRecord("OrderDto", func(r *expect.RecordExpectations) {
			r.IsPublic().HasPrimaryConstructorParameterTypes("int", "string")
		})

	require.NoError(t, res.Verify(context.Background()))
}

func TestPipeline_LaterGeneratorsSeeEarlierOutput(t *testing.T) {
	var seen []string
	summary := GeneratorFunc{
		GeneratorName: "summary",
		Fn: func(ctx context.Context, gc *Context) error {
			for _, f := range gc.Files() {
				seen = append(seen, f.Name)
			}
			_, ok := gc.File("OrderDto.g.cs")
			if !ok {
				gc.Report(Diagnostic{ID: "SG001", Severity: SeverityError, Message: "dto missing"})
			}
			return gc.AddSource("Summary", "namespace Shop;\n\npublic static class Summary\n{\n}\n")
		},
	}

	res, err := NewPipeline().
		Add(dtoGenerator(), summary).
		WithSource("Order.cs", orderInput).
		Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Order.cs", "OrderDto.g.cs"}, seen)
	assert.Equal(t, []string{"OrderDto.g.cs", "Summary.cs"}, res.Hints())
	assert.False(t, res.HasErrors())
	assert.Equal(t, "summary", res.Sources[1].Generator)
}

func TestPipeline_StopsAtGeneratorError(t *testing.T) {
	ran := false
	failing := GeneratorFunc{GeneratorName: "failing", Fn: func(ctx context.Context, gc *Context) error {
		gc.Report(Diagnostic{Severity: SeverityError, Message: "cannot continue", File: "Order.cs", Pos: syntax.Position{Line: 3}})
		return errors.New("boom")
	}}
	after := GeneratorFunc{GeneratorName: "after", Fn: func(ctx context.Context, gc *Context) error {
		ran = true
		return nil
	}}

	res, err := NewPipeline().Add(failing, after).WithSource("Order.cs", orderInput).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generator failing")
	assert.False(t, ran)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "failing", res.Diagnostics[0].Generator)
	assert.True(t, res.HasErrors())
	assert.Equal(t, "Order.cs:3:1: error: cannot continue", res.Diagnostics[0].String())
}

func TestPipeline_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	first := GeneratorFunc{GeneratorName: "first", Fn: func(ctx context.Context, gc *Context) error {
		cancel()
		return gc.AddSource("A", "class A { }")
	}}
	second := GeneratorFunc{GeneratorName: "second", Fn: func(ctx context.Context, gc *Context) error {
		t.Fatal("second generator must not run")
		return nil
	}}

	res, err := NewPipeline().Add(first, second).Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []string{"A.cs"}, res.Hints())
}

func TestPipeline_Errors(t *testing.T) {
	_, err := NewPipeline().Run(context.Background())
	assert.True(t, errors.IsInvalidOperation(err))

	_, err = RunGenerator(context.Background(), dtoGenerator(), "Broken.cs", "class {")
	require.Error(t, err)
	assert.True(t, errors.IsSyntaxError(err))

	_, err = RunGenerator(context.Background(), dtoGenerator(), "OnlyName.cs")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestContext_AddSource(t *testing.T) {
	dup := GeneratorFunc{GeneratorName: "dup", Fn: func(ctx context.Context, gc *Context) error {
		if err := gc.AddSource("Model", "class Model { }"); err != nil {
			return err
		}
		return gc.AddSource("model.cs", "class Model { }")
	}}
	_, err := RunGenerator(context.Background(), dup)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidOperation(err))

	for _, hint := range []string{"", "  ", "dir/File", `C:\x`, "a*b"} {
		_, err := normalizeHint(hint)
		assert.True(t, errors.IsInvalidArgument(err), "hint %q", hint)
	}
	hint, err := normalizeHint(" File.g ")
	require.NoError(t, err)
	assert.Equal(t, "File.g.cs", hint)
}

func TestResult_Verify(t *testing.T) {
	res := &Result{Sources: []GeneratedSource{
		{Hint: "Good.cs", Text: "class Good { }", Generator: "g"},
		{Hint: "Bad.cs", Text: "class Bad { void M( }", Generator: "g"},
	}}
	err := res.Verify(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsSyntaxError(err))
	assert.Contains(t, err.Error(), "Bad.cs (from g)")
	assert.NotContains(t, err.Error(), "Good.cs")
}

type recordingT struct {
	errors   []string
	failNows int
}

func (r *recordingT) Helper() {}
func (r *recordingT) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, format)
}
func (r *recordingT) FailNow() { r.failNows++ }

func TestResult_ExpectMissingHint(t *testing.T) {
	rt := &recordingT{}
	res := &Result{Sources: []GeneratedSource{{Hint: "A.cs", Text: "class A { }"}}}
	res.Expect(rt, "B.cs")
	assert.Equal(t, 1, rt.failNows)
	require.NotEmpty(t, rt.errors)
}

func TestServices(t *testing.T) {
	s := NewServices()
	require.NoError(t, s.Register("naming", codebuilder.Quote))
	require.NoError(t, s.Register("prefix", "Acme"))

	assert.True(t, errors.IsInvalidOperation(s.Register("prefix", "Other")))
	assert.True(t, errors.IsInvalidArgument(s.Register("", "x")))
	assert.True(t, errors.IsInvalidArgument(s.Register("nil", nil)))
	assert.Equal(t, []string{"naming", "prefix"}, s.Names())

	assert.Equal(t, "Acme", MustLookup[string](s, "prefix"))
	v, ok := LookupAs[int](s, "prefix")
	assert.False(t, ok)
	assert.Zero(t, v)

	assert.PanicsWithError(t, "service prefix has type string", func() { MustLookup[int](s, "prefix") })
	assert.Panics(t, func() { MustLookup[string](s, "missing") })
}

func TestPipeline_SharesServices(t *testing.T) {
	s := NewServices()
	require.NoError(t, s.Register("prefix", "Acme"))
	gen := GeneratorFunc{GeneratorName: "svc", Fn: func(ctx context.Context, gc *Context) error {
		name := MustLookup[string](gc.Services(), "prefix") + "Marker"
		return gc.AddSource(name, codebuilder.NewClass(name).MakeStatic().Build())
	}}

	res, err := NewPipeline().Add(gen).WithServices(s).Run(context.Background())
	require.NoError(t, err)
	res.Expect(t, "AcmeMarker").HasClass("AcmeMarker", func(c *expect.ClassExpectations) {
		c.IsPublic().IsStatic()
	})
}
