package codebuilder

import (
	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/xmldoc"
)

// ClassBuilder renders a class and its members, separated by blank lines.
type ClassBuilder struct {
	declaration[*ClassBuilder]
	bases      baseList
	typeParams typeParameters
	body       typeBody
}

// NewClass panics when name is blank.
func NewClass(name string) *ClassBuilder {
	requireName("class", name)
	c := &ClassBuilder{}
	c.init(c, "class", name, xmldoc.ElementClass)
	return c
}

func (c *ClassBuilder) owner() string { return "class " + c.name }

func (c *ClassBuilder) MakeStatic() *ClassBuilder   { c.setModifier(Static); return c }
func (c *ClassBuilder) MakeAbstract() *ClassBuilder { c.setModifier(Abstract); return c }
func (c *ClassBuilder) MakeSealed() *ClassBuilder   { c.setModifier(Sealed); return c }
func (c *ClassBuilder) MakePartial() *ClassBuilder  { c.setModifier(Partial); return c }
func (c *ClassBuilder) MakeNew() *ClassBuilder      { c.setModifier(Shadow); return c }

// WithBaseClass sets the base class. It can be set once.
func (c *ClassBuilder) WithBaseClass(name string) *ClassBuilder {
	c.bases.setBase(c.owner(), name)
	return c
}

// AddInterface appends an implemented interface; duplicates panic.
func (c *ClassBuilder) AddInterface(name string) *ClassBuilder {
	c.bases.addInterface(c.owner(), name)
	return c
}

// AddTypeParameter declares a generic type parameter.
func (c *ClassBuilder) AddTypeParameter(name string) *ClassBuilder {
	c.typeParams.add(c.owner(), name)
	return c
}

// AddTypeConstraint adds `where name : constraints`.
func (c *ClassBuilder) AddTypeConstraint(name string, constraints ...string) *ClassBuilder {
	c.typeParams.constrain(c.owner(), name, constraints...)
	return c
}

// WithTypeParamDoc documents a type parameter.
func (c *ClassBuilder) WithTypeParamDoc(name, text string) *ClassBuilder {
	requireName("documented type parameter", name)
	c.doc.AddTypeParam(name, text)
	return c
}

func (c *ClassBuilder) AddField(f *FieldBuilder) *ClassBuilder       { return c.AddMember(nilMember(f)) }
func (c *ClassBuilder) AddProperty(p *PropertyBuilder) *ClassBuilder { return c.AddMember(nilMember(p)) }
func (c *ClassBuilder) AddMethod(m *MethodBuilder) *ClassBuilder     { return c.AddMember(nilMember(m)) }

// AddConstructor appends a constructor; its name must match the class.
func (c *ClassBuilder) AddConstructor(ctor *ConstructorBuilder) *ClassBuilder {
	if ctor != nil && ctor.name != c.name {
		panic(errors.InvalidArgumentf("constructor %s does not belong to class %s", ctor.name, c.name))
	}
	return c.AddMember(nilMember(ctor))
}

// AddNestedType appends a nested class, interface, record or enum.
func (c *ClassBuilder) AddNestedType(t Member) *ClassBuilder {
	return c.AddMember(t)
}

// AddMember appends any member, including Raw text and directives.
func (c *ClassBuilder) AddMember(m Member) *ClassBuilder {
	c.body.add(c.owner(), m)
	return c
}

// MemberCount returns the number of members added.
func (c *ClassBuilder) MemberCount() int { return len(c.body.members) }

// Build renders the class.
func (c *ClassBuilder) Build() string {
	return buildMember(c, renderCtx{})
}

func (c *ClassBuilder) render(w *CodeBuilder, _ renderCtx) {
	c.writeLeading(w)
	w.AppendLine(modifierPrefix(c.access, Public, c.mods, renderCtx{}) +
		"class " + c.name + c.typeParams.list() + c.bases.render() + c.typeParams.where())
	w.OpenBlock()
	c.body.render(w, renderCtx{})
	w.CloseBlock()
}

// nilMember maps a typed nil pointer to a nil interface so AddMember can
// reject it.
func nilMember[T interface {
	Member
	comparable
}](m T) Member {
	var zero T
	if m == zero {
		return nil
	}
	return m
}
