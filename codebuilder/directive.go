package codebuilder

import (
	"strings"

	"github.com/teranos/sharpgen/errors"
)

type directiveState int

const (
	directiveEmpty directiveState = iota
	directiveHasIf
	directiveHasElseIf
	directiveHasElse
)

type directiveBranch struct {
	keyword   string
	condition string
	body      string
}

// DirectiveBuilder renders an #if/#elif/#else/#endif chain.
type DirectiveBuilder struct {
	state    directiveState
	branches []directiveBranch
}

// NewDirective returns an empty chain. Its Build output is "#endif".
func NewDirective() *DirectiveBuilder {
	return &DirectiveBuilder{}
}

// If opens the chain. It is only legal on an empty builder.
func (d *DirectiveBuilder) If(condition, body string) *DirectiveBuilder {
	requireText("#if condition", condition)
	if d.state != directiveEmpty {
		panic(errors.InvalidOperationf("#if %s: directive already has a branch; use ElseIf", condition))
	}
	d.branches = append(d.branches, directiveBranch{"#if", strings.TrimSpace(condition), body})
	d.state = directiveHasIf
	return d
}

// ElseIf appends an #elif branch. It does not require a preceding If.
func (d *DirectiveBuilder) ElseIf(condition, body string) *DirectiveBuilder {
	requireText("#elif condition", condition)
	if d.state == directiveHasElse {
		panic(errors.InvalidOperationf("#elif %s cannot follow #else", condition))
	}
	d.branches = append(d.branches, directiveBranch{"#elif", strings.TrimSpace(condition), body})
	d.state = directiveHasElseIf
	return d
}

// Else appends the final #else branch.
func (d *DirectiveBuilder) Else(body string) *DirectiveBuilder {
	if d.state == directiveHasElse {
		panic(errors.InvalidOperationf("directive already has an #else branch"))
	}
	d.branches = append(d.branches, directiveBranch{keyword: "#else", body: body})
	d.state = directiveHasElse
	return d
}

// Build renders the chain; the result always ends with #endif.
func (d *DirectiveBuilder) Build() string {
	return buildMember(d, renderCtx{})
}

func (d *DirectiveBuilder) render(w *CodeBuilder, _ renderCtx) {
	for _, b := range d.branches {
		if b.condition != "" {
			w.AppendLine(b.keyword + " " + b.condition)
		} else {
			w.AppendLine(b.keyword)
		}
		w.AppendLines(b.body)
	}
	w.AppendLine("#endif")
}
