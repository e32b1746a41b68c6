package expect

import (
	"github.com/teranos/sharpgen/syntax"
)

// Factory creates expectations that share one reporter, so Verify on any
// of them covers all.
type Factory struct {
	root     *node
	filename string
}

// NewFactory creates a factory reporting to t.
func NewFactory(t TestingT, opts ...Option) *Factory {
	o := buildOptions(opts)
	return &Factory{
		root:     &node{r: &reporter{t: t, mode: o.mode}, desc: o.filename},
		filename: o.filename,
	}
}

// Source parses src and returns expectations over the tree. A parse error
// is reported as a failure and the returned expectations wrap an empty
// file.
func (f *Factory) Source(src string) *SyntaxTreeExpectations {
	f.root.r.t.Helper()
	file, err := syntax.Parse(f.filename, src)
	if err != nil {
		f.root.fail("source that parses", err.Error())
		file = &syntax.File{Name: f.filename, Source: src}
	}
	return f.File(file)
}

// File wraps an already parsed tree.
func (f *Factory) File(file *syntax.File) *SyntaxTreeExpectations {
	return newSyntaxTreeExpectations(f.root.child("file "+file.Name), file)
}

// Namespace wraps one namespace declaration.
func (f *Factory) Namespace(ns *syntax.Namespace) *NamespaceExpectations {
	return newNamespaceExpectations(f.root.child("namespace "+ns.Name), ns)
}

// Class wraps a class or struct declaration.
func (f *Factory) Class(decl *syntax.TypeDecl) *ClassExpectations {
	return newClassExpectations(f.root.child(decl.Kind.String()+" "+decl.Name), decl, "internal")
}

// Interface wraps an interface declaration.
func (f *Factory) Interface(decl *syntax.TypeDecl) *InterfaceExpectations {
	return newInterfaceExpectations(f.root.child("interface "+decl.Name), decl, "internal")
}

// Record wraps a record declaration.
func (f *Factory) Record(decl *syntax.TypeDecl) *RecordExpectations {
	return newRecordExpectations(f.root.child("record "+decl.Name), decl, "internal")
}

// Enum wraps an enum declaration.
func (f *Factory) Enum(decl *syntax.TypeDecl) *EnumExpectations {
	return newEnumExpectations(f.root.child("enum "+decl.Name), decl, "internal")
}

// Method wraps a method declared in a class.
func (f *Factory) Method(m *syntax.Method) *MethodExpectations {
	return newMethodExpectations(f.root.child("method "+m.Name), m, "private")
}

// Property wraps a property declared in a class.
func (f *Factory) Property(p *syntax.Property) *PropertyExpectations {
	return newPropertyExpectations(f.root.child("property "+p.Name), p, "private")
}

// Field wraps a field declared in a class.
func (f *Factory) Field(fd *syntax.Field) *FieldExpectations {
	return newFieldExpectations(f.root.child("field "+fd.Name), fd, "private")
}

// Constructor wraps a constructor declared in a class.
func (f *Factory) Constructor(c *syntax.Constructor) *ConstructorExpectations {
	return newConstructorExpectations(f.root.child("constructor "+c.Name), c, "private")
}

// Parameter wraps one parameter.
func (f *Factory) Parameter(p *syntax.Parameter) *ParameterExpectations {
	return &ParameterExpectations{node: f.root.child("parameter " + p.Name), decl: p}
}

// Verify reports the failures collected in Accumulate mode as one
// ExpectationError.
func (f *Factory) Verify() error {
	f.root.r.t.Helper()
	return f.root.Verify()
}

// Failed reports whether any expectation created by f has failed.
func (f *Factory) Failed() bool { return f.root.Failed() }

// Source parses src and returns expectations over it.
func Source(t TestingT, src string, opts ...Option) *SyntaxTreeExpectations {
	t.Helper()
	return NewFactory(t, opts...).Source(src)
}

// File wraps an already parsed tree.
func File(t TestingT, file *syntax.File, opts ...Option) *SyntaxTreeExpectations {
	t.Helper()
	return NewFactory(t, opts...).File(file)
}
