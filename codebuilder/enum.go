package codebuilder

import (
	"strconv"
	"strings"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/xmldoc"
)

// enumBaseTypes are the integral types an enum may derive from.
var enumBaseTypes = map[string]bool{
	"byte": true, "sbyte": true, "short": true, "ushort": true,
	"int": true, "uint": true, "long": true, "ulong": true,
	"Byte": true, "SByte": true, "Int16": true, "UInt16": true,
	"Int32": true, "UInt32": true, "Int64": true, "UInt64": true,
	"System.Byte": true, "System.SByte": true, "System.Int16": true, "System.UInt16": true,
	"System.Int32": true, "System.UInt32": true, "System.Int64": true, "System.UInt64": true,
}

type enumValue struct {
	name  string
	value string
	doc   xmldoc.Doc
	attrs []*AttributeBuilder
}

// EnumBuilder renders an enum.
type EnumBuilder struct {
	declaration[*EnumBuilder]
	baseType string
	values   []*enumValue
}

// NewEnum panics when name is blank.
func NewEnum(name string) *EnumBuilder {
	requireName("enum", name)
	e := &EnumBuilder{}
	e.init(e, "enum", name, xmldoc.ElementEnum)
	return e
}

// WithBaseType sets the underlying integral type.
func (e *EnumBuilder) WithBaseType(typ string) *EnumBuilder {
	typ = strings.TrimSpace(typ)
	requireType("enum "+e.name+" base", typ)
	if !enumBaseTypes[typ] {
		panic(errors.InvalidArgumentf("enum %s: base type %s is not an integral type", e.name, typ))
	}
	e.baseType = typ
	return e
}

// WithFlags adds [Flags].
func (e *EnumBuilder) WithFlags() *EnumBuilder {
	if e.hasAttribute("Flags") || e.hasAttribute("System.Flags") {
		return e
	}
	return e.WithAttribute("Flags")
}

func (e *EnumBuilder) add(name, value string) *enumValue {
	requireName("enum value", name)
	for _, v := range e.values {
		if v.name == name {
			panic(errors.InvalidOperationf("enum %s already has a value named %s", e.name, name))
		}
	}
	v := &enumValue{name: name, value: value}
	e.values = append(e.values, v)
	return v
}

// AddValue appends `Name = n`.
func (e *EnumBuilder) AddValue(name string, n int64) *EnumBuilder {
	e.add(name, strconv.FormatInt(n, 10))
	return e
}

// AddImplicitValue appends a value without an explicit number.
func (e *EnumBuilder) AddImplicitValue(name string) *EnumBuilder {
	e.add(name, "")
	return e
}

// AddExpressionValue appends `Name = expr`, e.g. "Read | Write".
func (e *EnumBuilder) AddExpressionValue(name, expr string) *EnumBuilder {
	requireText("enum value expression", expr)
	e.add(name, strings.TrimSpace(expr))
	return e
}

// AddValueWithSummary appends `Name = n` documented with summary.
func (e *EnumBuilder) AddValueWithSummary(name string, n int64, summary string) *EnumBuilder {
	requireText("enum value summary", summary)
	v := e.add(name, strconv.FormatInt(n, 10))
	v.doc.SetSummary(summary)
	return e
}

// WithValueAttribute attaches an attribute to an existing value.
func (e *EnumBuilder) WithValueAttribute(valueName string, a *AttributeBuilder) *EnumBuilder {
	if a == nil {
		panic(errors.InvalidArgumentf("attribute for enum value %s.%s cannot be nil", e.name, valueName))
	}
	for _, v := range e.values {
		if v.name == valueName {
			v.attrs = append(v.attrs, a)
			return e
		}
	}
	panic(errors.InvalidOperationf("enum %s has no value named %s", e.name, valueName))
}

// ValueNames returns the value names in order.
func (e *EnumBuilder) ValueNames() []string {
	out := make([]string, len(e.values))
	for i, v := range e.values {
		out[i] = v.name
	}
	return out
}

// Build renders the enum.
func (e *EnumBuilder) Build() string {
	return buildMember(e, renderCtx{})
}

func (e *EnumBuilder) render(w *CodeBuilder, _ renderCtx) {
	e.writeLeading(w)
	header := modifierPrefix(e.access, Public, e.mods, renderCtx{}) + "enum " + e.name
	if e.baseType != "" {
		header += " : " + e.baseType
	}
	w.AppendLine(header)
	w.OpenBlock()
	for i, v := range e.values {
		for _, line := range v.doc.Lines() {
			w.AppendLine(line)
		}
		for _, a := range v.attrs {
			w.AppendLine(a.Build())
		}
		line := v.name
		if v.value != "" {
			line += " = " + v.value
		}
		if i < len(e.values)-1 {
			line += ","
		}
		w.AppendLine(line)
	}
	w.CloseBlock()
}
