package codebuilder

import (
	"strings"

	"github.com/teranos/sharpgen/xmldoc"
)

// NotImplementedBody is the statement rendered for methods without a body.
const NotImplementedBody = "throw new NotImplementedException();"

// MethodBuilder renders a method.
//
// Without WithBody, WithExpressionBody or WithNoImplementation the method
// throws NotImplementedException, except inside an interface or when abstract,
// where only the signature is emitted.
type MethodBuilder struct {
	declaration[*MethodBuilder]
	returnType   string
	params       parameterList
	typeParams   typeParameters
	body         string
	hasBody      bool
	exprBody     string
	noImpl       bool
	emitDefaults bool
}

// NewMethod returns a method builder. An empty return type means void.
func NewMethod(name, returnType string) *MethodBuilder {
	requireName("method", name)
	if returnType == "" {
		returnType = "void"
	}
	requireType("method "+name+" return", returnType)
	m := &MethodBuilder{returnType: strings.TrimSpace(returnType)}
	m.init(m, "method", name, xmldoc.ElementMethod)
	return m
}

// ReturnType returns the declared return type.
func (m *MethodBuilder) ReturnType() string { return m.returnType }

// Parameters returns a copy of the parameter list.
func (m *MethodBuilder) Parameters() []Parameter {
	return append([]Parameter(nil), m.params.params...)
}

func (m *MethodBuilder) MakeStatic() *MethodBuilder   { m.setModifier(Static); return m }
func (m *MethodBuilder) MakeVirtual() *MethodBuilder  { m.setModifier(Virtual); return m }
func (m *MethodBuilder) MakeOverride() *MethodBuilder { m.setModifier(Override); return m }
func (m *MethodBuilder) MakeSealed() *MethodBuilder   { m.setModifier(Sealed); return m }
func (m *MethodBuilder) MakeAsync() *MethodBuilder    { m.setModifier(Async); return m }
func (m *MethodBuilder) MakeNew() *MethodBuilder      { m.setModifier(Shadow); return m }
func (m *MethodBuilder) MakePartial() *MethodBuilder  { m.setModifier(Partial); return m }
func (m *MethodBuilder) MakeExtern() *MethodBuilder   { m.setModifier(Extern); return m }

// MakeAbstract adds abstract; the method renders without a body.
func (m *MethodBuilder) MakeAbstract() *MethodBuilder {
	if m.hasBody || m.exprBody != "" {
		m.conflict("abstract method cannot have a body")
	}
	m.setModifier(Abstract)
	return m
}

// AddParameter appends `type name`.
func (m *MethodBuilder) AddParameter(name, typ string) *MethodBuilder {
	m.params.add(m.owner(), Parameter{Name: name, Type: strings.TrimSpace(typ)})
	return m
}

// AddParameterWithDefault appends a parameter with a default value. The
// default is only rendered after EmitDefaultValues.
func (m *MethodBuilder) AddParameterWithDefault(name, typ, defaultValue string) *MethodBuilder {
	m.params.add(m.owner(), Parameter{Name: name, Type: strings.TrimSpace(typ), Default: strings.TrimSpace(defaultValue), HasDefault: true})
	return m
}

// AddParamsParameter appends `params type name`. No parameter may follow it.
func (m *MethodBuilder) AddParamsParameter(name, typ string) *MethodBuilder {
	return m.AddParameterWithModifier(name, typ, "params")
}

// AddParameterWithModifier appends a ref, out, in, params or this parameter.
func (m *MethodBuilder) AddParameterWithModifier(name, typ, modifier string) *MethodBuilder {
	m.params.add(m.owner(), Parameter{Name: name, Type: strings.TrimSpace(typ), Modifier: modifier})
	return m
}

// AddParameterSpec appends a fully described parameter.
func (m *MethodBuilder) AddParameterSpec(p Parameter) *MethodBuilder {
	m.params.add(m.owner(), p)
	return m
}

// EmitDefaultValues renders `= value` for parameters with defaults.
func (m *MethodBuilder) EmitDefaultValues() *MethodBuilder {
	m.emitDefaults = true
	return m
}

// AddTypeParameter declares a generic type parameter.
func (m *MethodBuilder) AddTypeParameter(name string) *MethodBuilder {
	m.typeParams.add(m.owner(), name)
	return m
}

// AddTypeConstraint adds `where name : constraints`.
func (m *MethodBuilder) AddTypeConstraint(name string, constraints ...string) *MethodBuilder {
	m.typeParams.constrain(m.owner(), name, constraints...)
	return m
}

func (m *MethodBuilder) owner() string {
	return "method " + m.name
}

func (m *MethodBuilder) requireNoImplementationState(what string) {
	switch {
	case m.hasBody:
		m.conflict("already has a body; cannot set %s", what)
	case m.exprBody != "":
		m.conflict("already has an expression body; cannot set %s", what)
	case m.noImpl:
		m.conflict("is marked as having no implementation; cannot set %s", what)
	}
}

// WithBody sets the statements of the body. An empty body renders `{ }`.
func (m *MethodBuilder) WithBody(body string) *MethodBuilder {
	m.requireNoImplementationState("a body")
	if m.mods.Has(Abstract) {
		m.conflict("is abstract; cannot have a body")
	}
	m.body = body
	m.hasBody = true
	return m
}

// WithBodyBuilder builds the body with a CodeBlockBuilder.
func (m *MethodBuilder) WithBodyBuilder(fn func(*CodeBlockBuilder)) *MethodBuilder {
	b := NewBlock()
	if fn != nil {
		fn(b)
	}
	return m.WithBody(b.Build())
}

// WithExpressionBody renders `=> expr;`.
func (m *MethodBuilder) WithExpressionBody(expr string) *MethodBuilder {
	requireText("expression body of "+m.name, expr)
	m.requireNoImplementationState("an expression body")
	if m.mods.Has(Abstract) {
		m.conflict("is abstract; cannot have an expression body")
	}
	m.exprBody = strings.TrimSuffix(strings.TrimSpace(expr), ";")
	return m
}

// WithNoImplementation renders the signature followed by `;`.
func (m *MethodBuilder) WithNoImplementation() *MethodBuilder {
	m.requireNoImplementationState("no implementation")
	m.noImpl = true
	return m
}

// WithParamDoc documents a parameter.
func (m *MethodBuilder) WithParamDoc(name, text string) *MethodBuilder {
	requireName("documented parameter", name)
	m.doc.AddParam(name, text)
	return m
}

// WithTypeParamDoc documents a type parameter.
func (m *MethodBuilder) WithTypeParamDoc(name, text string) *MethodBuilder {
	requireName("documented type parameter", name)
	m.doc.AddTypeParam(name, text)
	return m
}

// WithReturnsDoc sets <returns>.
func (m *MethodBuilder) WithReturnsDoc(text string) *MethodBuilder {
	requireText("returns documentation of "+m.name, text)
	m.doc.SetReturns(text)
	return m
}

// WithExceptionDoc adds an <exception> entry.
func (m *MethodBuilder) WithExceptionDoc(exceptionType, text string) *MethodBuilder {
	requireType("documented exception", exceptionType)
	m.doc.AddException(exceptionType, text)
	return m
}

// Build renders the method outside of any interface.
func (m *MethodBuilder) Build() string {
	return buildMember(m, renderCtx{})
}

func (m *MethodBuilder) signature(ctx renderCtx) string {
	return modifierPrefix(m.access, Public, m.mods, ctx) +
		m.returnType + " " + m.name + m.typeParams.list() +
		m.params.render(m.emitDefaults) + m.typeParams.where()
}

func (m *MethodBuilder) render(w *CodeBuilder, ctx renderCtx) {
	m.writeLeading(w)
	sig := m.signature(ctx)

	switch {
	case m.exprBody != "":
		w.AppendLine(sig + " => " + m.exprBody + ";")
	case m.hasBody:
		w.AppendLine(sig)
		w.OpenBlock()
		w.AppendLines(m.body)
		w.CloseBlock()
	case m.noImpl, m.mods.Has(Abstract), m.mods.Has(Extern), m.mods.Has(Partial), ctx.inInterface:
		w.AppendLine(sig + ";")
	default:
		w.AppendLine(sig)
		w.OpenBlock()
		w.AppendLine(NotImplementedBody)
		w.CloseBlock()
	}
}
