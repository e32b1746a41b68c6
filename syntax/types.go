package syntax

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/teranos/sharpgen/verify"
)

// TypeKind discriminates TypeExpr.
type TypeKind int

const (
	TypeIdentifier TypeKind = iota
	TypePredefined
	TypeQualified
	TypeGeneric
	TypeNullable
	TypeArray
	TypeTuple
	TypePointer
)

func (k TypeKind) String() string {
	switch k {
	case TypeIdentifier:
		return "identifier"
	case TypePredefined:
		return "predefined"
	case TypeQualified:
		return "qualified"
	case TypeGeneric:
		return "generic"
	case TypeNullable:
		return "nullable"
	case TypeArray:
		return "array"
	case TypeTuple:
		return "tuple"
	case TypePointer:
		return "pointer"
	}
	return "unknown"
}

// TypeExpr is a type as written in source.
//
//	Identifier, Predefined  Name
//	Generic                 Name, Args
//	Qualified               Left, Right (Right is Identifier or Generic)
//	Nullable, Pointer       Elem
//	Array                   Elem, Rank
//	Tuple                   Args, Names (empty strings for unnamed elements)
type TypeExpr struct {
	Kind  TypeKind
	Name  string
	Args  []*TypeExpr
	Names []string
	Left  *TypeExpr
	Right *TypeExpr
	Elem  *TypeExpr
	Rank  int
	// Qualifier is "::" when Left is an extern alias such as global.
	Qualifier string
}

// predefinedTypes are the C# keywords that name types.
var predefinedTypes = map[string]bool{
	"bool": true, "byte": true, "sbyte": true, "char": true, "decimal": true,
	"double": true, "float": true, "int": true, "uint": true, "nint": true,
	"nuint": true, "long": true, "ulong": true, "short": true, "ushort": true,
	"object": true, "string": true, "void": true, "dynamic": true,
}

// IsPredefinedType reports whether name is a type keyword such as int.
func IsPredefinedType(name string) bool {
	return predefinedTypes[name]
}

// String renders the type in canonical form: no spaces except after commas
// and between tuple element types and names.
func (t *TypeExpr) String() string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *TypeExpr) write(sb *strings.Builder) {
	switch t.Kind {
	case TypeIdentifier, TypePredefined:
		sb.WriteString(t.Name)
	case TypeGeneric:
		sb.WriteString(t.Name)
		sb.WriteByte('<')
		if len(t.Args) > 0 && t.Args[0] == nil {
			// unbound: Dictionary<,>
			sb.WriteString(strings.Repeat(",", len(t.Args)-1))
		} else {
			for i, a := range t.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				a.write(sb)
			}
		}
		sb.WriteByte('>')
	case TypeQualified:
		t.Left.write(sb)
		if t.Qualifier != "" {
			sb.WriteString(t.Qualifier)
		} else {
			sb.WriteByte('.')
		}
		t.Right.write(sb)
	case TypeNullable:
		t.Elem.write(sb)
		sb.WriteByte('?')
	case TypePointer:
		t.Elem.write(sb)
		sb.WriteByte('*')
	case TypeArray:
		t.Elem.write(sb)
		sb.WriteByte('[')
		sb.WriteString(strings.Repeat(",", t.Rank-1))
		sb.WriteByte(']')
	case TypeTuple:
		sb.WriteByte('(')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			a.write(sb)
			if i < len(t.Names) && t.Names[i] != "" {
				sb.WriteString(" " + t.Names[i])
			}
		}
		sb.WriteByte(')')
	}
}

// Rightmost returns the last segment of a qualified name, or t itself.
func (t *TypeExpr) Rightmost() *TypeExpr {
	for t != nil && t.Kind == TypeQualified {
		t = t.Right
	}
	return t
}

// IsNullable reports whether the outermost type is T?.
func (t *TypeExpr) IsNullable() bool {
	return t != nil && t.Kind == TypeNullable
}

// typeWrap* wrap a standalone type so the grammar sees it in field position.
const (
	typeWrapPrefix = "class __T { "
	typeWrapSuffix = " __f; }"
)

// ParseType parses a standalone type such as "Dictionary<string, int?>[]".
func ParseType(text string) (*TypeExpr, error) {
	text = strings.TrimSpace(text)
	src := typeWrapPrefix + text + typeWrapSuffix
	content := []byte(src)
	tree, err := parseTree(context.Background(), content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	b := newBuilder("", src, content)
	invalid := func() error {
		at := b.lines.position(len(typeWrapPrefix))
		return newParseError("", Range{Start: at, End: at}, text, "invalid type %q", text)
	}
	if text == "" || !verify.Tree(tree.RootNode(), content, verify.WithMaxDiagnostics(1)).Valid() {
		return nil, invalid()
	}
	field := findNode(tree.RootNode(), "variable_declaration", 0)
	if field == nil {
		return nil, invalid()
	}
	typ := field.ChildByFieldName("type")
	if typ == nil || int(typ.StartByte()) != len(typeWrapPrefix) || int(typ.EndByte()) != len(typeWrapPrefix)+len(text) {
		return nil, invalid()
	}
	t, perr := b.typeOf(typ)
	if perr != nil {
		return nil, perr
	}
	return t, nil
}

// MustParseType is ParseType for literals known to be valid; it panics on error.
func MustParseType(text string) *TypeExpr {
	t, err := ParseType(text)
	if err != nil {
		panic(err)
	}
	return t
}

// typeName renders a name node (namespace, attribute, using target) in
// canonical form.
func (b *builder) typeName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	t, perr := b.typeOf(n)
	if perr != nil {
		return strings.Join(strings.Fields(b.text(n)), "")
	}
	return t.String()
}

// typeOf converts a type node of the C# grammar.
func (b *builder) typeOf(n *sitter.Node) (*TypeExpr, *ParseError) {
	if n == nil {
		return nil, nil
	}
	switch n.Type() {
	case "predefined_type":
		return &TypeExpr{Kind: TypePredefined, Name: b.text(n)}, nil
	case "identifier", "implicit_type":
		return &TypeExpr{Kind: TypeIdentifier, Name: b.text(n)}, nil
	case "generic_name":
		return b.genericType(n)
	case "qualified_name":
		left, perr := b.typeOf(n.ChildByFieldName("qualifier"))
		if perr != nil {
			return nil, perr
		}
		right, perr := b.typeOf(n.ChildByFieldName("name"))
		if perr != nil {
			return nil, perr
		}
		return &TypeExpr{Kind: TypeQualified, Left: left, Right: right}, nil
	case "alias_qualified_name":
		left, perr := b.typeOf(n.ChildByFieldName("alias"))
		if perr != nil {
			return nil, perr
		}
		right, perr := b.typeOf(n.ChildByFieldName("name"))
		if perr != nil {
			return nil, perr
		}
		return &TypeExpr{Kind: TypeQualified, Left: left, Right: right, Qualifier: "::"}, nil
	case "nullable_type":
		elem, perr := b.typeOf(n.ChildByFieldName("type"))
		if perr != nil {
			return nil, perr
		}
		return &TypeExpr{Kind: TypeNullable, Elem: elem}, nil
	case "pointer_type":
		elem, perr := b.typeOf(n.ChildByFieldName("type"))
		if perr != nil {
			return nil, perr
		}
		return &TypeExpr{Kind: TypePointer, Elem: elem}, nil
	case "array_type":
		elem, perr := b.typeOf(n.ChildByFieldName("type"))
		if perr != nil {
			return nil, perr
		}
		rank := 1
		if spec := n.ChildByFieldName("rank"); spec != nil {
			for i := 0; i < int(spec.ChildCount()); i++ {
				if spec.Child(i).Type() == "," {
					rank++
				}
			}
		}
		return &TypeExpr{Kind: TypeArray, Elem: elem, Rank: rank}, nil
	case "tuple_type":
		return b.tupleType(n)
	}
	return nil, b.errorAt(n, "unsupported type %s", n.Type())
}

func (b *builder) genericType(n *sitter.Node) (*TypeExpr, *ParseError) {
	g := &TypeExpr{Kind: TypeGeneric}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "identifier":
			g.Name = b.text(child)
		case "type_argument_list":
			commas := 0
			for j := 0; j < int(child.ChildCount()); j++ {
				arg := child.Child(j)
				switch {
				case arg.Type() == ",":
					commas++
				case arg.IsNamed() && arg.Type() != "comment":
					t, perr := b.typeOf(arg)
					if perr != nil {
						return nil, perr
					}
					g.Args = append(g.Args, t)
				}
			}
			// unbound: Dictionary<,>
			if len(g.Args) == 0 {
				g.Args = make([]*TypeExpr, commas+1)
			}
		}
	}
	return g, nil
}

func (b *builder) tupleType(n *sitter.Node) (*TypeExpr, *ParseError) {
	t := &TypeExpr{Kind: TypeTuple}
	hasName := false
	for i := 0; i < int(n.ChildCount()); i++ {
		elem := n.Child(i)
		if elem.Type() != "tuple_element" {
			continue
		}
		et, perr := b.typeOf(elem.ChildByFieldName("type"))
		if perr != nil {
			return nil, perr
		}
		name := b.text(elem.ChildByFieldName("name"))
		hasName = hasName || name != ""
		t.Args = append(t.Args, et)
		t.Names = append(t.Names, name)
	}
	if len(t.Args) < 2 {
		return nil, b.errorAt(n, "a tuple type needs at least two elements")
	}
	if !hasName {
		t.Names = nil
	}
	return t, nil
}

// findNode returns the first node of the given type, depth first.
func findNode(n *sitter.Node, typ string, depth int) *sitter.Node {
	if n == nil || depth > maxDepth {
		return nil
	}
	if n.Type() == typ {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := findNode(n.Child(i), typ, depth+1); found != nil {
			return found
		}
	}
	return nil
}
