package codebuilder

import (
	"strings"

	"github.com/teranos/sharpgen/errors"
)

// typeBody holds the members of a class, interface or record.
type typeBody struct {
	members []Member
}

func (t *typeBody) add(owner string, m Member) {
	if m == nil {
		panic(errors.InvalidArgumentf("%s: member cannot be nil", owner))
	}
	t.members = append(t.members, m)
}

func (t *typeBody) render(w *CodeBuilder, ctx renderCtx) {
	for i, m := range t.members {
		if i > 0 {
			w.AppendLine("")
		}
		m.render(w, ctx)
	}
}

// baseList is the `: Base, IOne, ITwo` part of a type header.
type baseList struct {
	base       string
	interfaces []string
}

func (b *baseList) setBase(owner, base string) {
	requireType(owner+" base", base)
	if b.base != "" {
		panic(errors.InvalidOperationf("%s already derives from %s", owner, b.base))
	}
	b.base = strings.TrimSpace(base)
}

func (b *baseList) addInterface(owner, name string) {
	requireType(owner+" interface", name)
	name = strings.TrimSpace(name)
	for _, existing := range b.interfaces {
		if existing == name {
			panic(errors.InvalidOperationf("%s already implements %s", owner, name))
		}
	}
	b.interfaces = append(b.interfaces, name)
}

func (b *baseList) render() string {
	var all []string
	if b.base != "" {
		all = append(all, b.base)
	}
	all = append(all, b.interfaces...)
	if len(all) == 0 {
		return ""
	}
	return " : " + strings.Join(all, ", ")
}
