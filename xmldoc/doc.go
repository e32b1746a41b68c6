package xmldoc

import (
	"strings"
)

// Doc accumulates the documentation of one declaration. The zero value is
// empty and renders nothing.
type Doc struct {
	summary      string
	summaryBlock string
	remarks      string
	typeParams   []entry
	params       []entry
	returns      string
	exceptions   []entry
	inherit      bool
}

type entry struct {
	name, text string
}

// SetSummary replaces the summary text.
func (d *Doc) SetSummary(text string) {
	d.summary = text
	d.summaryBlock = ""
}

// SetFromManager uses the manager's generated summary block.
func (d *Doc) SetFromManager(m *Manager) {
	d.summary = m.Provider().Documentation()
	d.summaryBlock = m.GenerateDocumentation()
}

// Summary returns the plain summary text.
func (d *Doc) Summary() string { return d.summary }

// SetRemarks replaces the remarks text.
func (d *Doc) SetRemarks(text string) { d.remarks = text }

// AddParam documents a parameter; a second call for the same name replaces
// the text in place.
func (d *Doc) AddParam(name, text string) {
	d.params = upsert(d.params, name, text)
}

// AddTypeParam documents a type parameter.
func (d *Doc) AddTypeParam(name, text string) {
	d.typeParams = upsert(d.typeParams, name, text)
}

// SetReturns replaces the returns text.
func (d *Doc) SetReturns(text string) { d.returns = text }

// AddException appends an exception entry. Multiple entries for one type are kept.
func (d *Doc) AddException(exceptionType, text string) {
	d.exceptions = append(d.exceptions, entry{exceptionType, text})
}

// SetInheritDoc renders <inheritdoc/> in place of a summary.
func (d *Doc) SetInheritDoc() { d.inherit = true }

func upsert(entries []entry, name, text string) []entry {
	for i := range entries {
		if entries[i].name == name {
			entries[i].text = text
			return entries
		}
	}
	return append(entries, entry{name, text})
}

// IsEmpty reports whether nothing has been documented.
func (d *Doc) IsEmpty() bool {
	return d.summary == "" && d.summaryBlock == "" && d.remarks == "" &&
		len(d.typeParams) == 0 && len(d.params) == 0 && d.returns == "" &&
		len(d.exceptions) == 0 && !d.inherit
}

// Lines renders the documentation as `///` lines in the order summary,
// remarks, typeparams, params, returns, exceptions.
func (d *Doc) Lines() []string {
	if d == nil || d.IsEmpty() {
		return nil
	}
	var lines []string
	if d.inherit {
		lines = append(lines, FormatInheritDoc())
	}
	switch {
	case d.summaryBlock != "":
		lines = append(lines, strings.Split(d.summaryBlock, "\n")...)
	case d.summary != "":
		lines = append(lines, strings.Split(FormatSummary(d.summary), "\n")...)
	}
	if d.remarks != "" {
		lines = append(lines, strings.Split(FormatRemarks(d.remarks), "\n")...)
	}
	for _, e := range d.typeParams {
		lines = append(lines, FormatTypeParam(e.name, e.text))
	}
	for _, e := range d.params {
		lines = append(lines, FormatParam(e.name, e.text))
	}
	if d.returns != "" {
		lines = append(lines, FormatReturns(d.returns))
	}
	for _, e := range d.exceptions {
		lines = append(lines, FormatException(e.name, e.text))
	}
	return lines
}

// String joins Lines with newlines.
func (d *Doc) String() string {
	return strings.Join(d.Lines(), "\n")
}
