package syntax

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/verify"
)

const maxDepth = 1000

// Parse reads the declarations of one C# source file.
func Parse(filename, src string) (*File, error) {
	return ParseContext(context.Background(), filename, src)
}

// ParseContext is Parse with cancellation.
func ParseContext(ctx context.Context, filename, src string) (*File, error) {
	content := []byte(src)
	tree, err := parseTree(ctx, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	b := newBuilder(filename, src, content)
	root := tree.RootNode()
	if perr := b.firstError(root); perr != nil {
		return nil, perr
	}

	f := &File{Name: filename, Source: src}
	b.file = f
	b.collectDirectives(root, 0)
	f.Directives = b.directives

	scope := nsScope{usings: &f.Usings, namespaces: &f.Namespaces, types: &f.Types}
	if perr := b.namespaceBody(root, scope); perr != nil {
		return nil, perr
	}
	return f, nil
}

// MustParse is Parse for sources known to be valid; it panics on error.
func MustParse(filename, src string) *File {
	f, err := Parse(filename, src)
	if err != nil {
		panic(err)
	}
	return f
}

func parseTree(ctx context.Context, content []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(csharp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, errors.Wrap(err, "tree-sitter parse")
	}
	return tree, nil
}

// builder turns a tree-sitter concrete syntax tree into a File.
type builder struct {
	filename   string
	src        string
	content    []byte
	lines      *lineIndex
	file       *File
	directives []string
}

func newBuilder(filename, src string, content []byte) *builder {
	return &builder{filename: filename, src: src, content: content, lines: newLineIndex(src)}
}

func (b *builder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(b.content)
}

// between returns the trimmed source from the end of from to the start of to.
func (b *builder) between(from, to uint32) string {
	if to < from {
		return ""
	}
	return strings.TrimSpace(b.src[from:to])
}

func (b *builder) span(n *sitter.Node) Range {
	return b.lines.span(n.StartByte(), n.EndByte())
}

func (b *builder) errorAt(n *sitter.Node, format string, args ...interface{}) *ParseError {
	token := b.text(n)
	if i := strings.IndexByte(token, '\n'); i >= 0 {
		token = token[:i]
	}
	return newParseError(b.filename, b.span(n), strings.TrimSpace(token), format, args...)
}

// firstError reports the first ERROR or MISSING node of the tree.
func (b *builder) firstError(root *sitter.Node) *ParseError {
	report := verify.Tree(root, b.content, verify.WithMaxDiagnostics(1))
	if report.Valid() {
		return nil
	}
	d := report.Diagnostics[0]
	at := b.lines.at(d.Line, d.Column)
	token := d.Context
	if i := strings.IndexByte(token, '\n'); i >= 0 {
		token = token[:i]
	}
	perr := newParseError(b.filename, Range{Start: at, End: at}, strings.TrimSpace(token), "%s", d.Message)
	if d.Suggestion != "" {
		perr.WithSuggestion(d.Suggestion)
	}
	return perr
}

// collectDirectives records every preprocessor line in source order.
func (b *builder) collectDirectives(n *sitter.Node, depth int) {
	if depth > maxDepth {
		return
	}
	if !n.IsNamed() && strings.HasPrefix(n.Type(), "#") {
		start := int(n.StartByte())
		end := strings.IndexByte(b.src[start:], '\n')
		if end < 0 {
			end = len(b.src) - start
		}
		b.directives = append(b.directives, strings.TrimSpace(b.src[start:start+end]))
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		b.collectDirectives(n.Child(i), depth+1)
	}
}

// nsScope is where namespace-level declarations go.
type nsScope struct {
	usings     *[]*Using
	namespaces *[]*Namespace
	types      *[]*TypeDecl
}

// namespaceBody reads the children of a compilation unit, namespace body or
// preprocessor section. Everything after a file-scoped namespace belongs to it.
func (b *builder) namespaceBody(n *sitter.Node, scope nsScope) *ParseError {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "using_directive":
			*scope.usings = append(*scope.usings, b.using(child))
		case "global_attribute":
			if b.file != nil {
				b.file.Attributes = append(b.file.Attributes, b.globalAttributes(child)...)
			}
		case "namespace_declaration":
			ns, perr := b.namespace(child)
			if perr != nil {
				return perr
			}
			*scope.namespaces = append(*scope.namespaces, ns)
		case "file_scoped_namespace_declaration":
			ns := &Namespace{Name: b.typeName(child.ChildByFieldName("name")), FileScoped: true}
			*scope.namespaces = append(*scope.namespaces, ns)
			scope = nsScope{usings: &ns.Usings, namespaces: &ns.Namespaces, types: &ns.Types}
			ns.Range = Range{Start: b.lines.position(int(child.StartByte())), End: b.lines.position(int(n.EndByte()))}
		case "preproc_if", "preproc_elif", "preproc_else":
			if perr := b.namespaceBody(child, scope); perr != nil {
				return perr
			}
		case "global_statement":
			return b.errorAt(child, "statement outside a type").
				WithSuggestion("members must be declared inside a class, struct, interface or record")
		default:
			if !isTypeDeclaration(child.Type()) {
				continue
			}
			decl, perr := b.typeDecl(child)
			if perr != nil {
				return perr
			}
			*scope.types = append(*scope.types, decl)
		}
	}
	return nil
}

func (b *builder) namespace(n *sitter.Node) (*Namespace, *ParseError) {
	ns := &Namespace{Name: b.typeName(n.ChildByFieldName("name")), Range: b.span(n)}
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil, b.errorAt(n, "namespace %s has no body", ns.Name).
			WithSuggestion("a namespace name is followed by { or ;")
	}
	inner := nsScope{usings: &ns.Usings, namespaces: &ns.Namespaces, types: &ns.Types}
	if perr := b.namespaceBody(body, inner); perr != nil {
		return nil, perr
	}
	return ns, nil
}

func (b *builder) using(n *sitter.Node) *Using {
	u := &Using{Range: b.span(n)}
	alias := n.ChildByFieldName("name")
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch {
		case child.Type() == "global":
			u.Global = true
		case child.Type() == "static":
			u.Static = true
		case child.IsNamed() && child.Type() != "comment" && (alias == nil || !child.Equal(alias)):
			u.Name = b.typeName(child)
		}
	}
	if alias != nil {
		u.Alias = b.text(alias)
	}
	return u
}

func (b *builder) globalAttributes(n *sitter.Node) []*Attribute {
	target := ""
	var out []*Attribute
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "assembly", "module":
			target = child.Type()
		case "attribute":
			out = append(out, b.attribute(child, ""))
		}
	}
	for _, a := range out {
		a.Target = target
	}
	return out
}

// attributes reads every attribute_list child of n.
func (b *builder) attributes(n *sitter.Node) []*Attribute {
	var out []*Attribute
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child.Type() == "attribute_list" {
			out = append(out, b.attributeList(child)...)
		}
	}
	return out
}

func (b *builder) attributeList(n *sitter.Node) []*Attribute {
	target := ""
	var out []*Attribute
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "attribute_target_specifier":
			target = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(b.text(child)), ":"))
		case "attribute":
			out = append(out, b.attribute(child, target))
		}
	}
	return out
}

func (b *builder) attribute(n *sitter.Node, target string) *Attribute {
	a := &Attribute{Target: target, Name: b.typeName(n.ChildByFieldName("name")), Range: b.span(n)}
	for i := 0; i < int(n.ChildCount()); i++ {
		list := n.Child(i)
		if list.Type() != "attribute_argument_list" {
			continue
		}
		a.Args = []string{}
		for j := 0; j < int(list.ChildCount()); j++ {
			if arg := list.Child(j); arg.Type() == "attribute_argument" {
				a.Args = append(a.Args, strings.TrimSpace(b.text(arg)))
			}
		}
	}
	return a
}

// docBefore collects the `///` comments directly preceding n.
func (b *builder) docBefore(n *sitter.Node) *Doc {
	var lines []string
	for prev := n.PrevSibling(); prev != nil && prev.Type() == "comment"; prev = prev.PrevSibling() {
		text := strings.TrimSpace(b.text(prev))
		if strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////") {
			lines = append([]string{text}, lines...)
		}
	}
	return newDoc(lines)
}

func (b *builder) modifiers(n *sitter.Node) Modifiers {
	var mods Modifiers
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child.Type() == "modifier" {
			mods = append(mods, strings.TrimSpace(b.text(child)))
		}
	}
	return mods
}

// childOfType returns the first direct child of the given node type.
func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child.Type() == typ {
			return child
		}
	}
	return nil
}

// hasToken reports whether n has an anonymous child spelled token.
func hasToken(n *sitter.Node, token string) bool {
	return tokenChild(n, token) != nil
}
