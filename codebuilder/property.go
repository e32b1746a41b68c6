package codebuilder

import (
	"strings"

	"github.com/teranos/sharpgen/xmldoc"
)

type setterKind int

const (
	setterSet setterKind = iota
	setterNone
	setterInit
)

// accessor is one get/set/init accessor. An accessor without body or
// expression renders as `get;`.
type accessor struct {
	access Access
	body   string
	expr   string
	custom bool
}

func (a accessor) hasImplementation() bool {
	return a.custom
}

// PropertyBuilder renders a property. The default is an auto-property with
// get and set accessors.
type PropertyBuilder struct {
	declaration[*PropertyBuilder]
	typ         string
	getter      accessor
	setter      accessor
	setKind     setterKind
	readOnlySet bool
	exprBody    string
	initializer string
}

// NewProperty panics when name or typ is blank.
func NewProperty(name, typ string) *PropertyBuilder {
	requireName("property", name)
	requireType("property "+name, typ)
	p := &PropertyBuilder{typ: strings.TrimSpace(typ)}
	p.init(p, "property", name, xmldoc.ElementProperty)
	return p
}

// Type returns the property type.
func (p *PropertyBuilder) Type() string { return p.typ }

func (p *PropertyBuilder) MakeStatic() *PropertyBuilder   { p.setModifier(Static); return p }
func (p *PropertyBuilder) MakeVirtual() *PropertyBuilder  { p.setModifier(Virtual); return p }
func (p *PropertyBuilder) MakeOverride() *PropertyBuilder { p.setModifier(Override); return p }
func (p *PropertyBuilder) MakeSealed() *PropertyBuilder   { p.setModifier(Sealed); return p }
func (p *PropertyBuilder) MakeRequired() *PropertyBuilder { p.setModifier(Required); return p }
func (p *PropertyBuilder) MakeNew() *PropertyBuilder      { p.setModifier(Shadow); return p }

// MakeAbstract adds abstract. Abstract properties cannot have accessor bodies.
func (p *PropertyBuilder) MakeAbstract() *PropertyBuilder {
	if p.hasCustomAccessors() || p.exprBody != "" {
		p.conflict("abstract property cannot have accessor bodies")
	}
	p.setModifier(Abstract)
	return p
}

func (p *PropertyBuilder) hasCustomAccessors() bool {
	return p.getter.hasImplementation() || p.setter.hasImplementation()
}

// MakeReadOnly removes the setter: `{ get; }`.
func (p *PropertyBuilder) MakeReadOnly() *PropertyBuilder {
	if p.setter.hasImplementation() {
		p.conflict("has a setter body; cannot be read-only")
	}
	p.setKind = setterNone
	p.readOnlySet = true
	return p
}

// WithInitSetter replaces set with init.
func (p *PropertyBuilder) WithInitSetter() *PropertyBuilder {
	p.requireSettable("init")
	p.setKind = setterInit
	return p
}

// WithPrivateSetter makes the setter private: `{ get; private set; }`.
func (p *PropertyBuilder) WithPrivateSetter() *PropertyBuilder {
	p.requireSettable("private set")
	p.setter.access = Private
	return p
}

func (p *PropertyBuilder) requireSettable(what string) {
	if p.readOnlySet {
		p.conflict("is read-only; cannot add %s", what)
	}
	if p.exprBody != "" {
		p.conflict("has an expression body; cannot add %s", what)
	}
}

func (p *PropertyBuilder) requireAccessorBody(what string) {
	if p.exprBody != "" {
		p.conflict("has an expression body; cannot add a %s body", what)
	}
	if p.mods.Has(Abstract) {
		p.conflict("is abstract; cannot add a %s body", what)
	}
	if p.initializer != "" {
		p.conflict("has an initializer; cannot add a %s body", what)
	}
}

// WithGetter sets the getter's statement body.
func (p *PropertyBuilder) WithGetter(body string) *PropertyBuilder {
	p.requireAccessorBody("getter")
	p.getter = accessor{access: p.getter.access, body: body, custom: true}
	return p
}

// WithGetterExpression renders `get => expr;`.
func (p *PropertyBuilder) WithGetterExpression(expr string) *PropertyBuilder {
	requireText("getter expression of "+p.name, expr)
	p.requireAccessorBody("getter")
	p.getter = accessor{access: p.getter.access, expr: strings.TrimSuffix(strings.TrimSpace(expr), ";"), custom: true}
	return p
}

// WithSetter sets the setter's statement body.
func (p *PropertyBuilder) WithSetter(body string) *PropertyBuilder {
	p.requireSettable("a setter")
	p.requireAccessorBody("setter")
	p.setter = accessor{access: p.setter.access, body: body, custom: true}
	return p
}

// WithSetterExpression renders `set => expr;`.
func (p *PropertyBuilder) WithSetterExpression(expr string) *PropertyBuilder {
	requireText("setter expression of "+p.name, expr)
	p.requireSettable("a setter")
	p.requireAccessorBody("setter")
	p.setter = accessor{access: p.setter.access, expr: strings.TrimSuffix(strings.TrimSpace(expr), ";"), custom: true}
	return p
}

// WithExpressionBody renders `Type Name => expr;`.
func (p *PropertyBuilder) WithExpressionBody(expr string) *PropertyBuilder {
	requireText("expression body of "+p.name, expr)
	if p.hasCustomAccessors() {
		p.conflict("has accessor bodies; cannot add an expression body")
	}
	if p.initializer != "" {
		p.conflict("has an initializer; cannot add an expression body")
	}
	if p.mods.Has(Abstract) {
		p.conflict("is abstract; cannot add an expression body")
	}
	p.exprBody = strings.TrimSuffix(strings.TrimSpace(expr), ";")
	return p
}

// WithInitializer renders `{ get; set; } = expr;` on an auto-property.
func (p *PropertyBuilder) WithInitializer(expr string) *PropertyBuilder {
	requireText("initializer of "+p.name, expr)
	if p.exprBody != "" || p.hasCustomAccessors() {
		p.conflict("only auto-properties can have an initializer")
	}
	p.initializer = strings.TrimSuffix(strings.TrimSpace(expr), ";")
	return p
}

// Build renders the property.
func (p *PropertyBuilder) Build() string {
	return buildMember(p, renderCtx{})
}

func (p *PropertyBuilder) render(w *CodeBuilder, ctx renderCtx) {
	p.writeLeading(w)
	signature := modifierPrefix(p.access, Public, p.mods, ctx) + p.typ + " " + p.name

	if p.exprBody != "" {
		w.AppendLine(signature + " => " + p.exprBody + ";")
		return
	}

	if !p.hasCustomAccessors() {
		parts := []string{"get;"}
		if kw := p.setterKeyword(); kw != "" {
			parts = append(parts, kw+";")
		}
		line := signature + " { " + strings.Join(parts, " ") + " }"
		if p.initializer != "" {
			line += " = " + p.initializer + ";"
		}
		w.AppendLine(line)
		return
	}

	w.AppendLine(signature)
	w.OpenBlock()
	writeAccessor(w, "get", p.getter)
	if kw := p.setterKeyword(); kw != "" {
		writeAccessor(w, kw, p.setter)
	}
	w.CloseBlock()
}

// setterKeyword returns "set", "init", "private set", ... or "" for none.
func (p *PropertyBuilder) setterKeyword() string {
	var kw string
	switch p.setKind {
	case setterNone:
		return ""
	case setterInit:
		kw = "init"
	default:
		kw = "set"
	}
	if p.setter.access != AccessDefault {
		kw = p.setter.access.String() + " " + kw
	}
	return kw
}

func writeAccessor(w *CodeBuilder, keyword string, a accessor) {
	switch {
	case a.expr != "":
		w.AppendLine(keyword + " => " + a.expr + ";")
	case a.custom:
		w.AppendLine(keyword)
		w.OpenBlock()
		w.AppendLines(a.body)
		w.CloseBlock()
	default:
		w.AppendLine(keyword + ";")
	}
}
