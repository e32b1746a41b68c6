package syntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

var declKinds = map[string]DeclKind{
	"class_declaration":     KindClass,
	"struct_declaration":    KindStruct,
	"interface_declaration": KindInterface,
	"record_declaration":    KindRecord,
	"enum_declaration":      KindEnum,
	"delegate_declaration":  KindDelegate,
}

func isTypeDeclaration(nodeType string) bool {
	_, ok := declKinds[nodeType]
	return ok
}

func (b *builder) typeDecl(n *sitter.Node) (*TypeDecl, *ParseError) {
	kind := declKinds[n.Type()]
	decl := &TypeDecl{
		Kind:       kind,
		Name:       b.text(n.ChildByFieldName("name")),
		Modifiers:  b.modifiers(n),
		Attributes: b.attributes(n),
		Doc:        b.docBefore(n),
		Range:      b.span(n),
	}
	if kind == KindRecord {
		decl.RecordClass = hasToken(n, "class")
		decl.RecordStruct = hasToken(n, "struct")
	}

	var body *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		var perr *ParseError
		switch child.Type() {
		case "type_parameter_list":
			decl.TypeParameters = b.typeParameters(child)
		case "parameter_list":
			decl.Parameters, perr = b.parameters(child)
			decl.HasParameterList = true
		case "base_list":
			decl.BaseTypes, perr = b.baseList(child)
		case "type_parameter_constraints_clause":
			var c *Constraint
			if c, perr = b.constraint(child); c != nil {
				decl.Constraints = append(decl.Constraints, c)
			}
		case "declaration_list", "enum_member_declaration_list":
			body = child
		}
		if perr != nil {
			return nil, perr
		}
	}

	if kind == KindDelegate {
		ret, perr := b.typeOf(n.ChildByFieldName("type"))
		if perr != nil {
			return nil, perr
		}
		decl.ReturnType = ret
		return decl, nil
	}
	if body == nil {
		return decl, nil
	}
	if kind == KindEnum {
		decl.EnumValues = b.enumValues(body)
		return decl, nil
	}
	members, perr := b.members(body, decl)
	if perr != nil {
		return nil, perr
	}
	decl.Members = members
	return decl, nil
}

func (b *builder) typeParameters(n *sitter.Node) []*TypeParameter {
	var out []*TypeParameter
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() != "type_parameter" {
			continue
		}
		tp := &TypeParameter{Name: b.text(child.ChildByFieldName("name")), Attributes: b.attributes(child)}
		switch {
		case hasToken(child, "in"):
			tp.Variance = "in"
		case hasToken(child, "out"):
			tp.Variance = "out"
		}
		out = append(out, tp)
	}
	return out
}

func (b *builder) baseList(n *sitter.Node) ([]*BaseType, *ParseError) {
	var out []*BaseType
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		if child.Type() == "primary_constructor_base_type" {
			t, perr := b.typeOf(child.ChildByFieldName("type"))
			if perr != nil {
				return nil, perr
			}
			out = append(out, &BaseType{Type: t, Args: b.arguments(childOfType(child, "argument_list")), HasArgs: true})
			continue
		}
		t, perr := b.typeOf(child)
		if perr != nil {
			return nil, perr
		}
		out = append(out, &BaseType{Type: t})
	}
	return out, nil
}

func (b *builder) constraint(n *sitter.Node) (*Constraint, *ParseError) {
	c := &Constraint{}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "identifier":
			if c.TypeParameter == "" {
				c.TypeParameter = b.text(child)
			}
		case "type_parameter_constraint":
			if typ := child.ChildByFieldName("type"); typ != nil {
				t, perr := b.typeOf(typ)
				if perr != nil {
					return nil, perr
				}
				c.Clauses = append(c.Clauses, t.String())
				continue
			}
			c.Clauses = append(c.Clauses, strings.Join(strings.Fields(b.text(child)), ""))
		}
	}
	return c, nil
}

// arguments returns the source of each argument in an argument_list.
func (b *builder) arguments(n *sitter.Node) []string {
	if n == nil {
		return nil
	}
	args := []string{}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child.Type() == "argument" {
			args = append(args, strings.TrimSpace(b.text(child)))
		}
	}
	return args
}

// parameters reads a parameter_list or bracketed_parameter_list. A params
// array is not wrapped in a parameter node; its pieces are direct children
// of the list.
func (b *builder) parameters(n *sitter.Node) ([]*Parameter, *ParseError) {
	out := []*Parameter{}
	var pending *Parameter
	var pendingAttrs []*Attribute
	var pendingStart uint32
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		field := n.FieldNameForChild(i)
		switch {
		case child.Type() == "parameter":
			p, perr := b.parameter(child)
			if perr != nil {
				return nil, perr
			}
			out = append(out, p)
		case child.Type() == "attribute_list":
			if pendingAttrs == nil {
				pendingStart = child.StartByte()
			}
			pendingAttrs = append(pendingAttrs, b.attributeList(child)...)
		case child.Type() == "params":
			if pendingAttrs == nil {
				pendingStart = child.StartByte()
			}
			pending = &Parameter{Modifiers: Modifiers{"params"}, Attributes: pendingAttrs}
			pendingAttrs = nil
		case pending != nil && field == "type":
			t, perr := b.typeOf(child)
			if perr != nil {
				return nil, perr
			}
			pending.Type = t
		case pending != nil && field == "name":
			pending.Name = b.text(child)
			pending.Range = b.lines.span(pendingStart, child.EndByte())
			out = append(out, pending)
			pending = nil
		}
	}
	return out, nil
}

func (b *builder) parameter(n *sitter.Node) (*Parameter, *ParseError) {
	p := &Parameter{
		Name:       b.text(n.ChildByFieldName("name")),
		Modifiers:  b.modifiers(n),
		Attributes: b.attributes(n),
		Range:      b.span(n),
	}
	if hasToken(n, "params") {
		p.Modifiers = append(Modifiers{"params"}, p.Modifiers...)
	}
	t, perr := b.typeOf(n.ChildByFieldName("type"))
	if perr != nil {
		return nil, perr
	}
	p.Type = t
	if eq := tokenChild(n, "="); eq != nil {
		p.Default, p.HasDefault = b.between(eq.EndByte(), n.EndByte()), true
	}
	return p, nil
}

func (b *builder) enumValues(n *sitter.Node) []*EnumValue {
	var out []*EnumValue
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() != "enum_member_declaration" {
			continue
		}
		v := &EnumValue{
			Name:       b.text(child.ChildByFieldName("name")),
			Attributes: b.attributes(child),
			Doc:        b.docBefore(child),
			Range:      b.span(child),
		}
		if value := child.ChildByFieldName("value"); value != nil {
			v.Value, v.HasValue = strings.TrimSpace(b.text(value)), true
		}
		out = append(out, v)
	}
	return out
}

// members reads a declaration_list. Preprocessor sections are flattened.
func (b *builder) members(n *sitter.Node, owner *TypeDecl) ([]Member, *ParseError) {
	var out []Member
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		var (
			ms   []Member
			m    Member
			perr *ParseError
		)
		switch child.Type() {
		case "preproc_if", "preproc_elif", "preproc_else":
			ms, perr = b.members(child, owner)
		case "field_declaration":
			ms, perr = b.fields(child, false)
		case "event_field_declaration":
			ms, perr = b.fields(child, true)
		case "property_declaration", "indexer_declaration", "event_declaration":
			m, perr = b.property(child)
		case "method_declaration", "operator_declaration", "conversion_operator_declaration", "destructor_declaration":
			m, perr = b.method(child)
		case "constructor_declaration":
			m, perr = b.constructor(child)
		default:
			if !isTypeDeclaration(child.Type()) {
				continue
			}
			m, perr = b.typeDecl(child)
		}
		if perr != nil {
			return nil, perr
		}
		if m != nil {
			out = append(out, m)
		}
		out = append(out, ms...)
	}
	return out, nil
}

// fields splits `int a, b;` into one Field per declarator.
func (b *builder) fields(n *sitter.Node, event bool) ([]Member, *ParseError) {
	decl := childOfType(n, "variable_declaration")
	if decl == nil {
		return nil, b.errorAt(n, "field declaration without declarators")
	}
	typ, perr := b.typeOf(decl.ChildByFieldName("type"))
	if perr != nil {
		return nil, perr
	}
	mods, attrs, doc := b.modifiers(n), b.attributes(n), b.docBefore(n)

	var out []Member
	for i := 0; i < int(decl.ChildCount()); i++ {
		v := decl.Child(i)
		if v.Type() != "variable_declarator" {
			continue
		}
		f := &Field{
			Name:       b.text(v.ChildByFieldName("name")),
			Type:       typ,
			Modifiers:  mods,
			Attributes: attrs,
			Doc:        doc,
			Event:      event,
			Range:      b.span(n),
		}
		if eq := tokenChild(v, "="); eq != nil {
			f.Initializer, f.HasInitializer = b.between(eq.EndByte(), v.EndByte()), true
		}
		out = append(out, f)
	}
	return out, nil
}

func (b *builder) property(n *sitter.Node) (*Property, *ParseError) {
	p := &Property{
		Name:              b.text(n.ChildByFieldName("name")),
		Modifiers:         b.modifiers(n),
		Attributes:        b.attributes(n),
		Doc:               b.docBefore(n),
		Event:             n.Type() == "event_declaration",
		ExplicitInterface: b.explicitInterface(n),
		Range:             b.span(n),
	}
	t, perr := b.typeOf(n.ChildByFieldName("type"))
	if perr != nil {
		return nil, perr
	}
	p.Type = t

	if n.Type() == "indexer_declaration" {
		p.Name = "this"
		if p.Parameters, perr = b.parameters(n.ChildByFieldName("parameters")); perr != nil {
			return nil, perr
		}
	}
	if accessors := n.ChildByFieldName("accessors"); accessors != nil {
		p.HasAccessorList = true
		for i := 0; i < int(accessors.ChildCount()); i++ {
			if child := accessors.Child(i); child.Type() == "accessor_declaration" {
				p.Accessors = append(p.Accessors, b.accessor(child))
			}
		}
	}
	if value := n.ChildByFieldName("value"); value != nil {
		if value.Type() == "arrow_expression_clause" {
			p.ExpressionBody, p.HasExpressionBody = b.arrowBody(value), true
		} else {
			p.Initializer, p.HasInitializer = strings.TrimSpace(b.text(value)), true
		}
	}
	return p, nil
}

func (b *builder) accessor(n *sitter.Node) *Accessor {
	a := &Accessor{
		Keyword:    b.text(n.ChildByFieldName("name")),
		Modifiers:  b.modifiers(n),
		Attributes: b.attributes(n),
	}
	a.Body, a.HasBody, a.ExpressionBody, a.HasExpressionBody = b.body(n.ChildByFieldName("body"))
	return a
}

func (b *builder) method(n *sitter.Node) (*Method, *ParseError) {
	m := &Method{
		Name:              b.text(n.ChildByFieldName("name")),
		Modifiers:         b.modifiers(n),
		Attributes:        b.attributes(n),
		Doc:               b.docBefore(n),
		ExplicitInterface: b.explicitInterface(n),
		Range:             b.span(n),
	}
	var perr *ParseError
	switch n.Type() {
	case "method_declaration":
		m.ReturnType, perr = b.typeOf(n.ChildByFieldName("returns"))
	case "operator_declaration":
		m.ReturnType, perr = b.typeOf(n.ChildByFieldName("type"))
		m.Name = "operator " + b.text(n.ChildByFieldName("operator"))
	case "conversion_operator_declaration":
		m.ReturnType, perr = b.typeOf(n.ChildByFieldName("type"))
		kind := "implicit"
		if hasToken(n, "explicit") {
			kind = "explicit"
		}
		if perr == nil {
			m.Name = kind + " operator " + m.ReturnType.String()
		}
	case "destructor_declaration":
		m.Name = "~" + m.Name
	}
	if perr != nil {
		return nil, perr
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "type_parameter_list":
			m.TypeParameters = b.typeParameters(child)
		case "type_parameter_constraints_clause":
			c, perr := b.constraint(child)
			if perr != nil {
				return nil, perr
			}
			m.Constraints = append(m.Constraints, c)
		}
	}
	if m.Parameters, perr = b.parameters(n.ChildByFieldName("parameters")); perr != nil {
		return nil, perr
	}
	m.Body, m.HasBody, m.ExpressionBody, m.HasExpressionBody = b.body(n.ChildByFieldName("body"))
	return m, nil
}

func (b *builder) constructor(n *sitter.Node) (*Constructor, *ParseError) {
	c := &Constructor{
		Name:       b.text(n.ChildByFieldName("name")),
		Modifiers:  b.modifiers(n),
		Attributes: b.attributes(n),
		Doc:        b.docBefore(n),
		Range:      b.span(n),
	}
	var perr *ParseError
	if c.Parameters, perr = b.parameters(n.ChildByFieldName("parameters")); perr != nil {
		return nil, perr
	}
	if init := childOfType(n, "constructor_initializer"); init != nil {
		kind := "base"
		if hasToken(init, "this") {
			kind = "this"
		}
		c.Initializer = &ConstructorInitializer{Kind: kind, Args: b.arguments(childOfType(init, "argument_list"))}
	}
	c.Body, c.HasBody, c.ExpressionBody, c.HasExpressionBody = b.body(n.ChildByFieldName("body"))
	return c, nil
}

func (b *builder) explicitInterface(n *sitter.Node) string {
	spec := childOfType(n, "explicit_interface_specifier")
	if spec == nil || spec.NamedChildCount() == 0 {
		return ""
	}
	return b.typeName(spec.NamedChild(0))
}

// body splits a block or arrow clause into its text forms. A nil node is a
// declaration ending in `;`.
func (b *builder) body(n *sitter.Node) (text string, hasBody bool, expr string, hasExpr bool) {
	switch {
	case n == nil:
	case n.Type() == "block":
		open, close := tokenChild(n, "{"), lastTokenChild(n, "}")
		if open != nil && close != nil {
			text = b.between(open.EndByte(), close.StartByte())
		}
		hasBody = true
	case n.Type() == "arrow_expression_clause":
		expr, hasExpr = b.arrowBody(n), true
	}
	return text, hasBody, expr, hasExpr
}

func (b *builder) arrowBody(n *sitter.Node) string {
	arrow := tokenChild(n, "=>")
	if arrow == nil {
		return strings.TrimSpace(b.text(n))
	}
	return b.between(arrow.EndByte(), n.EndByte())
}

// tokenChild returns the first anonymous child spelled token.
func tokenChild(n *sitter.Node, token string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); !child.IsNamed() && child.Type() == token {
			return child
		}
	}
	return nil
}

func lastTokenChild(n *sitter.Node, token string) *sitter.Node {
	for i := int(n.ChildCount()) - 1; i >= 0; i-- {
		if child := n.Child(i); !child.IsNamed() && child.Type() == token {
			return child
		}
	}
	return nil
}
