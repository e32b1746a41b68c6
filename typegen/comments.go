package typegen

import (
	"go/ast"
	"strings"
)

// ExtractFieldComment extracts and formats the comment from a field.
// It prefers doc comments (before the field) over inline comments (after the field).
func ExtractFieldComment(field *ast.Field) string {
	if text := commentText(field.Doc); text != "" {
		return text
	}
	return commentText(field.Comment)
}

// commentText flattens a comment group to one line. Directive lines such
// as //typegen:skip are dropped.
func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.Join(strings.Fields(cg.Text()), " ")
}

// hasDirective reports whether cg holds the line //name.
func hasDirective(cg *ast.CommentGroup, name string) bool {
	if cg == nil {
		return false
	}
	for _, c := range cg.List {
		if strings.TrimSpace(strings.TrimPrefix(c.Text, "//")) == name {
			return true
		}
	}
	return false
}
