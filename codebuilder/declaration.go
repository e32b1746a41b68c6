package codebuilder

import (
	"strings"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/xmldoc"
)

// Member is a declaration that can be placed in a type or a namespace.
type Member interface {
	Build() string
	render(w *CodeBuilder, ctx renderCtx)
}

func buildMember(m Member, ctx renderCtx) string {
	w := New()
	m.render(w, ctx)
	return strings.TrimSuffix(w.Build(), "\n")
}

// declaration holds what every builder shares: identity, accessibility,
// modifiers, attributes and documentation. B is the concrete builder type
// returned by the chained setters.
type declaration[B any] struct {
	self    B
	kind    string
	name    string
	access  Access
	mods    Modifier
	attrs   []*AttributeBuilder
	doc     xmldoc.Doc
	docKind string
	// checkAccess, when set, vets an access level before it is stored.
	checkAccess func(Access)
}

func (d *declaration[B]) init(self B, kind, name, docKind string) {
	d.self = self
	d.kind = kind
	d.name = name
	d.docKind = docKind
}

// Name returns the declared name.
func (d *declaration[B]) Name() string { return d.name }

// Access returns the explicitly set access level, or AccessDefault.
func (d *declaration[B]) Access() Access { return d.access }

// Modifiers returns the non-access modifiers set so far.
func (d *declaration[B]) Modifiers() Modifier { return d.mods }

// WithAccess sets the access level.
func (d *declaration[B]) WithAccess(a Access) B {
	if a < AccessDefault || a > PrivateProtected {
		panic(errors.InvalidArgumentf("unknown access level %d for %s %s", int(a), d.kind, d.name))
	}
	if d.checkAccess != nil {
		d.checkAccess(a)
	}
	d.access = a
	return d.self
}

func (d *declaration[B]) MakePublic() B            { return d.WithAccess(Public) }
func (d *declaration[B]) MakePrivate() B           { return d.WithAccess(Private) }
func (d *declaration[B]) MakeProtected() B         { return d.WithAccess(Protected) }
func (d *declaration[B]) MakeInternal() B          { return d.WithAccess(Internal) }
func (d *declaration[B]) MakeProtectedInternal() B { return d.WithAccess(ProtectedInternal) }
func (d *declaration[B]) MakePrivateProtected() B  { return d.WithAccess(PrivateProtected) }

// WithAttribute adds [name(args...)] on its own line.
func (d *declaration[B]) WithAttribute(name string, args ...string) B {
	return d.AddAttribute(Attribute(name, args...))
}

// AddAttribute adds a prepared attribute.
func (d *declaration[B]) AddAttribute(a *AttributeBuilder) B {
	if a == nil {
		panic(errors.InvalidArgumentf("attribute for %s %s cannot be nil", d.kind, d.name))
	}
	d.attrs = append(d.attrs, a)
	return d.self
}

func (d *declaration[B]) hasAttribute(name string) bool {
	for _, a := range d.attrs {
		if a.name == name || a.name == name+"Attribute" {
			return true
		}
	}
	return false
}

// WithSummary sets the <summary> text.
func (d *declaration[B]) WithSummary(text string) B {
	requireText(d.kind+" summary", text)
	d.doc.SetSummary(text)
	return d.self
}

// WithRemarks sets the <remarks> text.
func (d *declaration[B]) WithRemarks(text string) B {
	requireText(d.kind+" remarks", text)
	d.doc.SetRemarks(text)
	return d.self
}

// WithDocumentation takes the summary from a documentation provider.
func (d *declaration[B]) WithDocumentation(p xmldoc.Provider) B {
	d.doc.SetFromManager(xmldoc.NewManager(p))
	return d.self
}

// WithAutoDocumentation derives a summary from the declaration's name.
func (d *declaration[B]) WithAutoDocumentation() B {
	return d.WithDocumentation(xmldoc.NewAutoProvider(d.name, d.docKind))
}

// WithInheritDoc emits <inheritdoc/>.
func (d *declaration[B]) WithInheritDoc() B {
	d.doc.SetInheritDoc()
	return d.self
}

// writeLeading writes documentation then one attribute per line.
func (d *declaration[B]) writeLeading(w *CodeBuilder) {
	for _, line := range d.doc.Lines() {
		w.AppendLine(line)
	}
	for _, a := range d.attrs {
		w.AppendLine(a.Build())
	}
}

func (d *declaration[B]) conflict(format string, args ...interface{}) {
	panic(errors.InvalidOperationf("%s %s: "+format, append([]interface{}{d.kind, d.name}, args...)...))
}

// setModifier adds m, rejecting combinations C# never allows.
func (d *declaration[B]) setModifier(m Modifier) {
	exclusive := [][2]Modifier{
		{Abstract, Sealed},
		{Abstract, Virtual},
		{Virtual, Override},
		{Const, Static},
		{Const, Readonly},
		{Const, Volatile},
		{Readonly, Volatile},
	}
	for _, pair := range exclusive {
		a, b := pair[0], pair[1]
		if (m == a && d.mods.Has(b)) || (m == b && d.mods.Has(a)) {
			other := b
			if m == b {
				other = a
			}
			d.conflict("cannot be both %s and %s", other, m)
		}
	}
	d.mods |= m
}

// Raw returns a Member rendering text verbatim, re-indented to its position.
func Raw(text string) Member {
	return rawMember(text)
}

type rawMember string

func (r rawMember) Build() string { return string(r) }

func (r rawMember) render(w *CodeBuilder, _ renderCtx) {
	w.AppendLines(string(r))
}
