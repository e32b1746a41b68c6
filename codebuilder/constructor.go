package codebuilder

import (
	"strings"

	"github.com/teranos/sharpgen/xmldoc"
)

// ConstructorBuilder renders an instance or static constructor. Without a
// body it renders an empty block.
type ConstructorBuilder struct {
	declaration[*ConstructorBuilder]
	params       parameterList
	initKind     string
	initArgs     []string
	body         string
	hasBody      bool
	exprBody     string
	emitDefaults bool
}

// NewConstructor returns a constructor for className.
func NewConstructor(className string) *ConstructorBuilder {
	requireName("constructor class", className)
	c := &ConstructorBuilder{}
	c.init(c, "constructor", className, xmldoc.ElementConstructor)
	c.checkAccess = func(a Access) {
		if a != AccessDefault && c.mods.Has(Static) {
			c.conflict("static constructor cannot have an access modifier")
		}
	}
	return c
}

// Parameters returns a copy of the parameter list.
func (c *ConstructorBuilder) Parameters() []Parameter {
	return append([]Parameter(nil), c.params.params...)
}

func (c *ConstructorBuilder) owner() string {
	return "constructor " + c.name
}

// MakeStatic turns this into a static constructor, which takes no parameters,
// access modifier or initializer.
func (c *ConstructorBuilder) MakeStatic() *ConstructorBuilder {
	switch {
	case len(c.params.params) > 0:
		c.conflict("static constructor cannot have parameters")
	case c.access != AccessDefault:
		c.conflict("static constructor cannot have an access modifier")
	case c.initKind != "":
		c.conflict("static constructor cannot call %s", c.initKind)
	}
	c.setModifier(Static)
	return c
}

func (c *ConstructorBuilder) addParameter(p Parameter) *ConstructorBuilder {
	if c.mods.Has(Static) {
		c.conflict("static constructor cannot have parameters")
	}
	c.params.add(c.owner(), p)
	return c
}

// AddParameter appends `type name`.
func (c *ConstructorBuilder) AddParameter(name, typ string) *ConstructorBuilder {
	return c.addParameter(Parameter{Name: name, Type: strings.TrimSpace(typ)})
}

// AddParameterWithDefault appends a parameter with a default value. The
// default is only rendered after EmitDefaultValues.
func (c *ConstructorBuilder) AddParameterWithDefault(name, typ, defaultValue string) *ConstructorBuilder {
	return c.addParameter(Parameter{Name: name, Type: strings.TrimSpace(typ), Default: strings.TrimSpace(defaultValue), HasDefault: true})
}

// AddParamsParameter appends `params type name`.
func (c *ConstructorBuilder) AddParamsParameter(name, typ string) *ConstructorBuilder {
	return c.AddParameterWithModifier(name, typ, "params")
}

// AddParameterWithModifier appends a ref, out, in or params parameter.
func (c *ConstructorBuilder) AddParameterWithModifier(name, typ, modifier string) *ConstructorBuilder {
	if strings.TrimSpace(modifier) == "this" {
		c.conflict("constructors cannot take a this parameter")
	}
	return c.addParameter(Parameter{Name: name, Type: strings.TrimSpace(typ), Modifier: modifier})
}

// EmitDefaultValues renders `= value` for parameters with defaults.
func (c *ConstructorBuilder) EmitDefaultValues() *ConstructorBuilder {
	c.emitDefaults = true
	return c
}

// WithBaseCall renders `: base(args)`. A constructor has at most one initializer.
func (c *ConstructorBuilder) WithBaseCall(args ...string) *ConstructorBuilder {
	return c.withInitializer("base", args)
}

// WithThisCall renders `: this(args)`.
func (c *ConstructorBuilder) WithThisCall(args ...string) *ConstructorBuilder {
	return c.withInitializer("this", args)
}

func (c *ConstructorBuilder) withInitializer(kind string, args []string) *ConstructorBuilder {
	if c.initKind != "" {
		c.conflict("already calls %s(...); cannot also call %s(...)", c.initKind, kind)
	}
	if c.mods.Has(Static) {
		c.conflict("static constructor cannot call %s", kind)
	}
	for _, a := range args {
		requireText(kind+" call argument", a)
	}
	c.initKind = kind
	c.initArgs = append([]string(nil), args...)
	return c
}

// WithBody sets the statements of the body.
func (c *ConstructorBuilder) WithBody(body string) *ConstructorBuilder {
	if c.exprBody != "" {
		c.conflict("already has an expression body; cannot set a body")
	}
	if c.hasBody {
		c.conflict("body is already set")
	}
	c.body = body
	c.hasBody = true
	return c
}

// WithBodyBuilder builds the body with a CodeBlockBuilder.
func (c *ConstructorBuilder) WithBodyBuilder(fn func(*CodeBlockBuilder)) *ConstructorBuilder {
	b := NewBlock()
	if fn != nil {
		fn(b)
	}
	return c.WithBody(b.Build())
}

// WithExpressionBody renders `=> expr;`.
func (c *ConstructorBuilder) WithExpressionBody(expr string) *ConstructorBuilder {
	requireText("expression body of "+c.name, expr)
	if c.hasBody {
		c.conflict("already has a body; cannot set an expression body")
	}
	if c.exprBody != "" {
		c.conflict("expression body is already set")
	}
	c.exprBody = strings.TrimSuffix(strings.TrimSpace(expr), ";")
	return c
}

// WithParamDoc documents a parameter.
func (c *ConstructorBuilder) WithParamDoc(name, text string) *ConstructorBuilder {
	requireName("documented parameter", name)
	c.doc.AddParam(name, text)
	return c
}

// Build renders the constructor.
func (c *ConstructorBuilder) Build() string {
	return buildMember(c, renderCtx{})
}

func (c *ConstructorBuilder) render(w *CodeBuilder, ctx renderCtx) {
	c.writeLeading(w)

	var sig string
	if c.mods.Has(Static) {
		sig = "static " + c.name + "()"
	} else {
		sig = modifierPrefix(c.access, Public, c.mods, ctx) + c.name + c.params.render(c.emitDefaults)
	}
	if c.initKind != "" {
		sig += " : " + c.initKind + "(" + strings.Join(c.initArgs, ", ") + ")"
	}

	if c.exprBody != "" {
		w.AppendLine(sig + " => " + c.exprBody + ";")
		return
	}
	w.AppendLine(sig)
	w.OpenBlock()
	w.AppendLines(c.body)
	w.CloseBlock()
}
