package codebuilder

import (
	"strings"

	"github.com/teranos/sharpgen/xmldoc"
)

// FieldBuilder renders a field declaration. Fields are private unless an
// access level is set.
type FieldBuilder struct {
	declaration[*FieldBuilder]
	typ         string
	initializer string
}

// NewField panics when name or typ is blank.
func NewField(name, typ string) *FieldBuilder {
	requireName("field", name)
	requireType("field "+name, typ)
	f := &FieldBuilder{typ: strings.TrimSpace(typ)}
	f.init(f, "field", name, xmldoc.ElementField)
	return f
}

// Type returns the field type.
func (f *FieldBuilder) Type() string { return f.typ }

// MakeStatic adds static.
func (f *FieldBuilder) MakeStatic() *FieldBuilder {
	f.setModifier(Static)
	return f
}

// MakeReadOnly adds readonly.
func (f *FieldBuilder) MakeReadOnly() *FieldBuilder {
	f.setModifier(Readonly)
	return f
}

// MakeVolatile adds volatile.
func (f *FieldBuilder) MakeVolatile() *FieldBuilder {
	f.setModifier(Volatile)
	return f
}

// MakeNew adds new, hiding an inherited member.
func (f *FieldBuilder) MakeNew() *FieldBuilder {
	f.setModifier(Shadow)
	return f
}

// MakeConst turns the field into a constant with the given value. It
// conflicts with static, readonly and an earlier initializer.
func (f *FieldBuilder) MakeConst(value string) *FieldBuilder {
	requireText("const value of "+f.name, value)
	if f.initializer != "" {
		f.conflict("cannot be const after an initializer was set")
	}
	f.setModifier(Const)
	f.initializer = strings.TrimSpace(value)
	return f
}

// WithInitializer sets `= expr`. It conflicts with MakeConst.
func (f *FieldBuilder) WithInitializer(expr string) *FieldBuilder {
	requireText("initializer of "+f.name, expr)
	if f.mods.Has(Const) {
		f.conflict("const value is already set; cannot add an initializer")
	}
	if f.initializer != "" {
		f.conflict("initializer is already set")
	}
	f.initializer = strings.TrimSpace(expr)
	return f
}

// Build renders the field.
func (f *FieldBuilder) Build() string {
	return buildMember(f, renderCtx{})
}

func (f *FieldBuilder) render(w *CodeBuilder, ctx renderCtx) {
	f.writeLeading(w)
	line := modifierPrefix(f.access, Private, f.mods, ctx) + f.typ + " " + f.name
	if f.initializer != "" {
		line += " = " + f.initializer
	}
	w.AppendLine(line + ";")
}
