package codebuilder

import (
	"strings"

	"github.com/teranos/sharpgen/errors"
)

// CodeBlockBuilder builds the statements of a body. Build returns the lines
// without the enclosing braces; member builders add those.
type CodeBlockBuilder struct {
	w      *CodeBuilder
	lastIf bool
}

// NewBlock returns an empty statement builder.
func NewBlock() *CodeBlockBuilder {
	return &CodeBlockBuilder{w: New()}
}

// AppendLine writes one raw line.
func (b *CodeBlockBuilder) AppendLine(line string) *CodeBlockBuilder {
	b.lastIf = false
	b.w.AppendLines(line)
	if line == "" {
		b.w.AppendLine("")
	}
	return b
}

// AddBlankLine writes an empty line.
func (b *CodeBlockBuilder) AddBlankLine() *CodeBlockBuilder {
	b.lastIf = false
	b.w.AppendLine("")
	return b
}

// AddStatement writes stmt, terminating it with `;` when it does not end in
// `;` or `}`.
func (b *CodeBlockBuilder) AddStatement(stmt string) *CodeBlockBuilder {
	requireText("statement", stmt)
	stmt = strings.TrimRight(stmt, " \t\n")
	if !strings.HasSuffix(stmt, ";") && !strings.HasSuffix(stmt, "}") {
		stmt += ";"
	}
	return b.AppendLine(stmt)
}

// AddVariable writes `type name = expr;`. Use "var" for an implicit type.
func (b *CodeBlockBuilder) AddVariable(typ, name, expr string) *CodeBlockBuilder {
	requireType("variable "+name, typ)
	requireName("variable", name)
	requireText("initializer of "+name, expr)
	return b.AddStatement(typ + " " + name + " = " + expr)
}

// AddReturn writes `return expr;`, or `return;` for an empty expr.
func (b *CodeBlockBuilder) AddReturn(expr string) *CodeBlockBuilder {
	if isBlank(expr) {
		return b.AppendLine("return;")
	}
	return b.AddStatement("return " + strings.TrimSuffix(strings.TrimSpace(expr), ";"))
}

// AddThrow writes `throw new Type(args);`.
func (b *CodeBlockBuilder) AddThrow(exceptionType string, args ...string) *CodeBlockBuilder {
	requireType("exception", exceptionType)
	return b.AddStatement("throw new " + exceptionType + "(" + strings.Join(args, ", ") + ")")
}

// AddComment writes a // comment, one per line of text.
func (b *CodeBlockBuilder) AddComment(text string) *CodeBlockBuilder {
	for _, line := range splitLines(text) {
		if line == "" {
			b.AppendLine("//")
			continue
		}
		b.AppendLine("// " + line)
	}
	return b
}

// AddBlock writes header, then fn's statements inside braces.
func (b *CodeBlockBuilder) AddBlock(header string, fn func(*CodeBlockBuilder)) *CodeBlockBuilder {
	requireText("block header", header)
	b.AppendLine(header)
	b.body(fn)
	return b
}

func (b *CodeBlockBuilder) body(fn func(*CodeBlockBuilder)) {
	b.w.OpenBlock()
	if fn != nil {
		fn(b)
	}
	b.w.CloseBlock()
}

// AddIf writes an if statement.
func (b *CodeBlockBuilder) AddIf(condition string, fn func(*CodeBlockBuilder)) *CodeBlockBuilder {
	requireText("if condition", condition)
	b.AddBlock("if ("+condition+")", fn)
	b.lastIf = true
	return b
}

// AddElseIf continues the preceding AddIf.
func (b *CodeBlockBuilder) AddElseIf(condition string, fn func(*CodeBlockBuilder)) *CodeBlockBuilder {
	requireText("else if condition", condition)
	if !b.lastIf {
		panic(errors.InvalidOperationf("else if (%s) must follow an if statement", condition))
	}
	b.AddBlock("else if ("+condition+")", fn)
	b.lastIf = true
	return b
}

// AddElse closes the preceding AddIf or AddElseIf.
func (b *CodeBlockBuilder) AddElse(fn func(*CodeBlockBuilder)) *CodeBlockBuilder {
	if !b.lastIf {
		panic(errors.InvalidOperationf("else must follow an if statement"))
	}
	b.AddBlock("else", fn)
	return b
}

// AddForEach writes `foreach (var item in collection)`.
func (b *CodeBlockBuilder) AddForEach(item, collection string, fn func(*CodeBlockBuilder)) *CodeBlockBuilder {
	requireName("foreach variable", item)
	requireText("foreach collection", collection)
	return b.AddBlock("foreach (var "+item+" in "+collection+")", fn)
}

// AddUsing writes a using statement scoping resource.
func (b *CodeBlockBuilder) AddUsing(resource string, fn func(*CodeBlockBuilder)) *CodeBlockBuilder {
	requireText("using resource", resource)
	return b.AddBlock("using ("+resource+")", fn)
}

// Build returns the statements, one per line, without a trailing newline.
func (b *CodeBlockBuilder) Build() string {
	return strings.TrimSuffix(b.w.Build(), "\n")
}

// String is an alias for Build.
func (b *CodeBlockBuilder) String() string {
	return b.Build()
}
