// Package xmldoc formats and reads C# XML documentation comments.
//
// The Format functions emit `///` lines verbatim: callers are responsible for
// escaping `<` and `&` when their text needs it.
package xmldoc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Prefix starts every documentation comment line.
const Prefix = "///"

// FormatSummary wraps text in a <summary> block. Each line of a multi-line
// text gets its own prefix.
func FormatSummary(text string) string {
	return formatBlock("summary", text)
}

// FormatRemarks wraps text in a <remarks> block.
func FormatRemarks(text string) string {
	return formatBlock("remarks", text)
}

func formatBlock(tag, text string) string {
	var sb strings.Builder
	sb.WriteString(Prefix + " <" + tag + ">\n")
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString(prefixed(strings.TrimRight(line, "\r")))
		sb.WriteByte('\n')
	}
	sb.WriteString(Prefix + " </" + tag + ">")
	return sb.String()
}

func prefixed(line string) string {
	if line == "" {
		return Prefix
	}
	return Prefix + " " + line
}

// FormatParam returns a single <param> line.
func FormatParam(name, description string) string {
	return Prefix + ` <param name="` + name + `">` + description + "</param>"
}

// FormatTypeParam returns a single <typeparam> line.
func FormatTypeParam(name, description string) string {
	return Prefix + ` <typeparam name="` + name + `">` + description + "</typeparam>"
}

// FormatReturns returns a single <returns> line.
func FormatReturns(description string) string {
	return Prefix + " <returns>" + description + "</returns>"
}

// FormatException returns a single <exception> line.
func FormatException(exceptionType, description string) string {
	return Prefix + ` <exception cref="` + exceptionType + `">` + description + "</exception>"
}

// FormatInheritDoc returns the <inheritdoc/> line.
func FormatInheritDoc() string {
	return Prefix + " <inheritdoc/>"
}

// SplitPascalCase inserts a space before every upper-case rune except the
// first. Acronym runs are not coalesced: "XMLHttpRequest" becomes
// "X M L Http Request".
func SplitPascalCase(text string) string {
	if text == "" {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(text) + len(text)/2)
	for i, r := range text {
		if i > 0 && unicode.IsUpper(r) {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// CapitalizeFirst upper-cases the first rune only.
func CapitalizeFirst(text string) string {
	return mapFirst(text, unicode.ToUpper)
}

// ToLowerCaseFirst lower-cases the first rune only.
func ToLowerCaseFirst(text string) string {
	return mapFirst(text, unicode.ToLower)
}

func mapFirst(text string, fn func(rune) rune) string {
	if text == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(text)
	return string(fn(r)) + text[size:]
}
