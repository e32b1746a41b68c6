package codebuilder

import (
	"github.com/teranos/sharpgen/xmldoc"
)

// InterfaceBuilder renders an interface. Members render in interface
// context: no access modifier unless set, and signatures end in `;` unless a
// body was given.
type InterfaceBuilder struct {
	declaration[*InterfaceBuilder]
	bases      baseList
	typeParams typeParameters
	body       typeBody
}

// NewInterface panics when name is blank.
func NewInterface(name string) *InterfaceBuilder {
	requireName("interface", name)
	i := &InterfaceBuilder{}
	i.init(i, "interface", name, xmldoc.ElementInterface)
	return i
}

func (i *InterfaceBuilder) owner() string { return "interface " + i.name }

// MakePartial adds partial.
func (i *InterfaceBuilder) MakePartial() *InterfaceBuilder {
	i.setModifier(Partial)
	return i
}

// AddBaseInterface appends an inherited interface; duplicates panic.
func (i *InterfaceBuilder) AddBaseInterface(name string) *InterfaceBuilder {
	i.bases.addInterface(i.owner(), name)
	return i
}

// AddTypeParameter declares a type parameter; "in T" and "out T" set variance.
func (i *InterfaceBuilder) AddTypeParameter(name string) *InterfaceBuilder {
	i.typeParams.add(i.owner(), name)
	return i
}

// AddTypeConstraint adds `where name : constraints`.
func (i *InterfaceBuilder) AddTypeConstraint(name string, constraints ...string) *InterfaceBuilder {
	i.typeParams.constrain(i.owner(), name, constraints...)
	return i
}

func (i *InterfaceBuilder) AddMethod(m *MethodBuilder) *InterfaceBuilder {
	return i.AddMember(nilMember(m))
}

func (i *InterfaceBuilder) AddProperty(p *PropertyBuilder) *InterfaceBuilder {
	return i.AddMember(nilMember(p))
}

// AddMember appends any member.
func (i *InterfaceBuilder) AddMember(m Member) *InterfaceBuilder {
	i.body.add(i.owner(), m)
	return i
}

// Build renders the interface.
func (i *InterfaceBuilder) Build() string {
	return buildMember(i, renderCtx{})
}

func (i *InterfaceBuilder) render(w *CodeBuilder, _ renderCtx) {
	i.writeLeading(w)
	w.AppendLine(modifierPrefix(i.access, Public, i.mods, renderCtx{}) +
		"interface " + i.name + i.typeParams.list() + i.bases.render() + i.typeParams.where())
	w.OpenBlock()
	i.body.render(w, renderCtx{inInterface: true})
	w.CloseBlock()
}
