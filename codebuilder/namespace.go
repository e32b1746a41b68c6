package codebuilder

import (
	"strings"

	"github.com/teranos/sharpgen/errors"
)

// NamespaceBuilder renders a complete source file: optional generated-code
// header, using directives, the namespace and its types.
type NamespaceBuilder struct {
	name        string
	usings      []string
	types       []Member
	header      bool
	blockScope  bool
	indentWidth int
}

// NewNamespace panics when name is not a dotted identifier.
func NewNamespace(name string) *NamespaceBuilder {
	name = strings.TrimSpace(name)
	requireQualifiedName("namespace", name)
	return &NamespaceBuilder{name: name, indentWidth: DefaultIndentWidth}
}

// Name returns the namespace name.
func (n *NamespaceBuilder) Name() string { return n.name }

// NormalizeUsing strips an optional leading `using` and trailing `;`.
func NormalizeUsing(directive string) string {
	directive = strings.TrimSpace(directive)
	directive = strings.TrimSuffix(directive, ";")
	directive = strings.TrimSpace(directive)
	if rest, ok := strings.CutPrefix(directive, "using "); ok {
		directive = rest
	}
	return strings.Join(strings.Fields(directive), " ")
}

// AddUsing adds a using directive. "System", "using System" and
// "using System;" are the same directive; repeats are ignored.
func (n *NamespaceBuilder) AddUsing(directive string) *NamespaceBuilder {
	u := NormalizeUsing(directive)
	if u == "" {
		panic(errors.InvalidArgumentf("namespace %s: using directive cannot be empty", n.name))
	}
	for _, existing := range n.usings {
		if existing == u {
			return n
		}
	}
	n.usings = append(n.usings, u)
	return n
}

// AddUsings adds several using directives.
func (n *NamespaceBuilder) AddUsings(directives ...string) *NamespaceBuilder {
	for _, d := range directives {
		n.AddUsing(d)
	}
	return n
}

// Usings returns the normalized directives in insertion order.
func (n *NamespaceBuilder) Usings() []string {
	return append([]string(nil), n.usings...)
}

// AddType appends a class, interface, record, enum or raw member.
func (n *NamespaceBuilder) AddType(t Member) *NamespaceBuilder {
	if t == nil {
		panic(errors.InvalidArgumentf("namespace %s: type cannot be nil", n.name))
	}
	n.types = append(n.types, t)
	return n
}

// TypeCount returns the number of types added.
func (n *NamespaceBuilder) TypeCount() int { return len(n.types) }

// WithGeneratedHeader emits // <auto-generated/> and #nullable enable first.
func (n *NamespaceBuilder) WithGeneratedHeader() *NamespaceBuilder {
	n.header = true
	return n
}

// UseBlockScope renders `namespace X { ... }` instead of `namespace X;`.
func (n *NamespaceBuilder) UseBlockScope() *NamespaceBuilder {
	n.blockScope = true
	return n
}

// IsFileScoped reports whether the namespace renders as `namespace X;`.
func (n *NamespaceBuilder) IsFileScoped() bool { return !n.blockScope }

// WithIndentWidth sets the spaces per indent level; negative widths panic.
func (n *NamespaceBuilder) WithIndentWidth(width int) *NamespaceBuilder {
	if width < 0 {
		panic(errors.InvalidArgumentf("indent width must be >= 0, got %d", width))
	}
	n.indentWidth = width
	return n
}

// Build renders the file. The result ends with a newline.
func (n *NamespaceBuilder) Build() string {
	w := NewWithIndent(n.indentWidth)
	if n.header {
		w.AppendGeneratedCodeHeader()
		w.AppendLine("")
	}
	if len(n.usings) > 0 {
		for _, u := range n.usings {
			w.AppendLine("using " + u + ";")
		}
		w.AppendLine("")
	}

	if n.blockScope {
		w.AppendLine("namespace " + n.name)
		w.OpenBlock()
		n.renderTypes(w)
		w.CloseBlock()
		return w.Build()
	}

	w.AppendNamespace(n.name)
	if len(n.types) > 0 {
		w.AppendLine("")
	}
	n.renderTypes(w)
	return w.Build()
}

func (n *NamespaceBuilder) renderTypes(w *CodeBuilder) {
	for i, t := range n.types {
		if i > 0 {
			w.AppendLine("")
		}
		t.render(w, renderCtx{})
	}
}

// String is an alias for Build.
func (n *NamespaceBuilder) String() string {
	return n.Build()
}
