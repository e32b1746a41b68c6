package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/spf13/cobra"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/syntax"
)

// OutlineCmd prints the declarations of a C# file
var OutlineCmd = &cobra.Command{
	Use:   "outline FILE",
	Short: "Print the declaration tree of a C# file",
	Long: `Print namespaces, types and members of a C# file as the expectation
API sees them. Useful when an expectation does not find a declaration.

Examples:
  sharpgen outline Orders.g.cs
  sharpgen outline Orders.g.cs --json`,
	Args: cobra.ExactArgs(1),
	RunE: runOutline,
}

// OutlineNode is one declaration in the outline.
type OutlineNode struct {
	Kind     string         `json:"kind"`
	Name     string         `json:"name"`
	Detail   string         `json:"detail,omitempty"`
	Line     int            `json:"line,omitempty"`
	Children []*OutlineNode `json:"children,omitempty"`
}

func runOutline(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", args[0])
	}
	f, err := syntax.Parse(args[0], string(src))
	if err != nil {
		return err
	}
	root := buildOutline(f)

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), root)
	}
	return pterm.DefaultTree.WithRoot(putils.TreeFromLeveledList(leveled(root))).Render()
}

// buildOutline converts a parsed file to an outline rooted at the file.
func buildOutline(f *syntax.File) *OutlineNode {
	root := &OutlineNode{Kind: "file", Name: f.Name}
	if len(f.Usings) > 0 {
		names := make([]string, len(f.Usings))
		for i, u := range f.Usings {
			names[i] = u.Text()
		}
		root.Detail = "using " + strings.Join(names, ", ")
	}
	for _, t := range f.Types {
		root.Children = append(root.Children, typeNode(t))
	}
	for _, ns := range f.Namespaces {
		root.Children = append(root.Children, namespaceNode(ns))
	}
	return root
}

func namespaceNode(ns *syntax.Namespace) *OutlineNode {
	n := &OutlineNode{Kind: "namespace", Name: ns.Name, Line: ns.Range.Start.Line}
	if ns.FileScoped {
		n.Detail = "file-scoped"
	}
	for _, t := range ns.Types {
		n.Children = append(n.Children, typeNode(t))
	}
	for _, child := range ns.Namespaces {
		n.Children = append(n.Children, namespaceNode(child))
	}
	return n
}

func typeNode(t *syntax.TypeDecl) *OutlineNode {
	n := &OutlineNode{
		Kind:   t.Kind.String(),
		Name:   t.Name,
		Detail: t.Modifiers.String(),
		Line:   t.Range.Start.Line,
	}
	for _, v := range t.EnumValues {
		n.Children = append(n.Children, &OutlineNode{Kind: "value", Name: v.Name, Line: v.Range.Start.Line})
	}
	for _, m := range t.Members {
		if nested, ok := m.(*syntax.TypeDecl); ok {
			n.Children = append(n.Children, typeNode(nested))
			continue
		}
		n.Children = append(n.Children, &OutlineNode{
			Kind: m.MemberKind(),
			Name: m.MemberName(),
			Line: m.Span().Start.Line,
		})
	}
	return n
}

func leveled(root *OutlineNode) pterm.LeveledList {
	var list pterm.LeveledList
	var walk func(n *OutlineNode, level int)
	walk = func(n *OutlineNode, level int) {
		list = append(list, pterm.LeveledListItem{Level: level, Text: n.label()})
		for _, c := range n.Children {
			walk(c, level+1)
		}
	}
	walk(root, 0)
	return list
}

func (n *OutlineNode) label() string {
	text := fmt.Sprintf("%s %s", n.Kind, n.Name)
	if n.Detail != "" {
		text += " (" + n.Detail + ")"
	}
	if n.Line > 0 {
		text += pterm.Gray(fmt.Sprintf("  :%d", n.Line))
	}
	return text
}
