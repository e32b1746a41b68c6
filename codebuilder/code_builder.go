package codebuilder

import (
	"strings"

	"github.com/teranos/sharpgen/errors"
)

// DefaultIndentWidth is the number of spaces per indent level used by New.
const DefaultIndentWidth = 4

// Markers written by AppendGeneratedCodeHeader.
const (
	AutoGeneratedMarker = "// <auto-generated/>"
	NullableEnable      = "#nullable enable"
)

// CodeBuilder accumulates lines of text with a tracked indent level.
type CodeBuilder struct {
	sb          strings.Builder
	width       int
	level       int
	atLineStart bool
}

// New returns a CodeBuilder indenting by DefaultIndentWidth spaces.
func New() *CodeBuilder {
	return NewWithIndent(DefaultIndentWidth)
}

// NewWithIndent returns a CodeBuilder indenting by width spaces per level.
// A width of 0 disables indentation; a negative width panics.
func NewWithIndent(width int) *CodeBuilder {
	if width < 0 {
		panic(errors.InvalidArgumentf("indent width must be >= 0, got %d", width))
	}
	return &CodeBuilder{width: width, atLineStart: true}
}

// IndentWidth returns the number of spaces per level.
func (b *CodeBuilder) IndentWidth() int { return b.width }

// Level returns the current indent level.
func (b *CodeBuilder) Level() int { return b.level }

func (b *CodeBuilder) writeIndent() {
	if b.atLineStart {
		b.sb.WriteString(strings.Repeat(" ", b.level*b.width))
		b.atLineStart = false
	}
}

// Append writes text, indenting it when the builder is at the start of a line.
// Empty text is a no-op.
func (b *CodeBuilder) Append(text string) *CodeBuilder {
	if text == "" {
		return b
	}
	b.writeIndent()
	b.sb.WriteString(text)
	b.atLineStart = strings.HasSuffix(text, "\n")
	return b
}

// AppendLine writes text followed by a newline. An empty text produces an
// empty line without trailing whitespace.
func (b *CodeBuilder) AppendLine(text string) *CodeBuilder {
	if text != "" {
		b.writeIndent()
		b.sb.WriteString(text)
	}
	b.sb.WriteByte('\n')
	b.atLineStart = true
	return b
}

// AppendLines writes each line of text with AppendLine. One trailing newline
// in text is ignored. Lines that continue a verbatim string (@"...") are
// written as-is, since indenting them would change the string's value. Raw
// string lines ("""...""") are indented with the rest: the compiler strips
// the closing delimiter's indentation from every content line.
func (b *CodeBuilder) AppendLines(text string) *CodeBuilder {
	if text == "" {
		return b
	}
	var st literalState
	for _, line := range splitLines(text) {
		if st.inVerbatim {
			b.sb.WriteString(line)
			b.sb.WriteByte('\n')
			b.atLineStart = true
		} else {
			b.AppendLine(line)
		}
		st.scan(line)
	}
	return b
}

// literalState tracks string literals and comments that span lines.
type literalState struct {
	inVerbatim bool
	rawQuotes  int
	inComment  bool
}

func (st *literalState) scan(line string) {
	for i := 0; i < len(line); {
		switch {
		case st.inComment:
			j := strings.Index(line[i:], "*/")
			if j < 0 {
				return
			}
			st.inComment = false
			i += j + 2
		case st.inVerbatim:
			j := strings.IndexByte(line[i:], '"')
			if j < 0 {
				return
			}
			i += j + 1
			if i < len(line) && line[i] == '"' {
				i++
				continue
			}
			st.inVerbatim = false
		case st.rawQuotes > 0:
			j := strings.IndexByte(line[i:], '"')
			if j < 0 {
				return
			}
			n := quoteRun(line, i+j)
			i += j + n
			if n >= st.rawQuotes {
				st.rawQuotes = 0
			}
		default:
			i = st.scanCode(line, i)
		}
	}
}

// scanCode advances past one token of ordinary code and returns the next offset.
func (st *literalState) scanCode(line string, i int) int {
	c := line[i]
	switch {
	case strings.HasPrefix(line[i:], "//"):
		return len(line)
	case strings.HasPrefix(line[i:], "/*"):
		st.inComment = true
		return i + 2
	case c == '"':
		n := quoteRun(line, i)
		switch {
		case isVerbatimPrefix(line[:i]):
			st.inVerbatim = true
			return i + 1
		case n >= 3:
			st.rawQuotes = n
			return i + n
		}
		return skipQuoted(line, i, '"')
	case c == '\'':
		return skipQuoted(line, i, '\'')
	}
	return i + 1
}

func isVerbatimPrefix(before string) bool {
	return strings.HasSuffix(before, "@") || strings.HasSuffix(before, "@$")
}

func quoteRun(line string, i int) int {
	n := 0
	for i+n < len(line) && line[i+n] == '"' {
		n++
	}
	return n
}

// skipQuoted returns the offset after the literal opened by quote at i.
func skipQuoted(line string, i int, quote byte) int {
	for j := i + 1; j < len(line); j++ {
		switch line[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}
	return len(line)
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// Indent increases the indent level by one.
func (b *CodeBuilder) Indent() *CodeBuilder {
	b.level++
	return b
}

// Outdent decreases the indent level by one, never below zero.
func (b *CodeBuilder) Outdent() *CodeBuilder {
	if b.level > 0 {
		b.level--
	}
	return b
}

// Dedent is an alias for Outdent.
func (b *CodeBuilder) Dedent() *CodeBuilder {
	return b.Outdent()
}

// OpenBlock writes `{` and indents.
func (b *CodeBuilder) OpenBlock() *CodeBuilder {
	return b.AppendLine("{").Indent()
}

// CloseBlock outdents and writes `}`.
func (b *CodeBuilder) CloseBlock() *CodeBuilder {
	return b.Outdent().AppendLine("}")
}

// IndentScope undoes one Indent when released.
type IndentScope struct {
	b        *CodeBuilder
	released bool
}

// WithIndent indents and returns a scope whose Release outdents exactly once.
//
//	scope := b.WithIndent()
//	defer scope.Release()
func (b *CodeBuilder) WithIndent() *IndentScope {
	b.Indent()
	return &IndentScope{b: b}
}

// Release outdents the first time it is called; later calls do nothing.
func (s *IndentScope) Release() {
	if s.released {
		return
	}
	s.released = true
	s.b.Outdent()
}

// AppendGeneratedCodeHeader writes the auto-generated marker and enables
// nullable reference types.
func (b *CodeBuilder) AppendGeneratedCodeHeader() *CodeBuilder {
	return b.AppendLine(AutoGeneratedMarker).AppendLine(NullableEnable)
}

// AppendNamespace writes a file-scoped namespace declaration.
func (b *CodeBuilder) AppendNamespace(name string) *CodeBuilder {
	requireQualifiedName("namespace", name)
	return b.AppendLine("namespace " + name + ";")
}

// Build returns the accumulated text.
func (b *CodeBuilder) Build() string {
	return b.sb.String()
}

// String is an alias for Build.
func (b *CodeBuilder) String() string {
	return b.Build()
}
