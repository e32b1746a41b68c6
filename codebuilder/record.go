package codebuilder

import (
	"strings"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/xmldoc"
)

type recordKind int

const (
	recordDefault recordKind = iota
	recordClass
	recordStruct
)

// RecordBuilder renders a record with optional primary constructor
// parameters. A record without members ends in `;`.
type RecordBuilder struct {
	declaration[*RecordBuilder]
	kind       recordKind
	params     parameterList
	hasParams  bool
	baseRecord string
	baseArgs   []string
	bases      baseList
	typeParams typeParameters
	body       typeBody
}

// NewRecord panics when name is blank.
func NewRecord(name string) *RecordBuilder {
	requireName("record", name)
	r := &RecordBuilder{}
	r.init(r, "record", name, xmldoc.ElementRecord)
	return r
}

func (r *RecordBuilder) owner() string { return "record " + r.name }

// MakeStruct renders `record struct`.
func (r *RecordBuilder) MakeStruct() *RecordBuilder {
	switch {
	case r.kind == recordClass:
		r.conflict("is already a record class")
	case r.mods.Has(Abstract) || r.mods.Has(Sealed):
		r.conflict("a record struct cannot be abstract or sealed")
	case r.baseRecord != "":
		r.conflict("a record struct cannot derive from %s", r.baseRecord)
	}
	r.kind = recordStruct
	return r
}

// WithClassKeyword renders `record class`.
func (r *RecordBuilder) WithClassKeyword() *RecordBuilder {
	if r.kind == recordStruct {
		r.conflict("is already a record struct")
	}
	r.kind = recordClass
	return r
}

// IsStruct reports whether this is a record struct.
func (r *RecordBuilder) IsStruct() bool { return r.kind == recordStruct }

func (r *RecordBuilder) MakeAbstract() *RecordBuilder {
	r.requireClass("abstract")
	r.setModifier(Abstract)
	return r
}

func (r *RecordBuilder) MakeSealed() *RecordBuilder {
	r.requireClass("sealed")
	r.setModifier(Sealed)
	return r
}

func (r *RecordBuilder) MakePartial() *RecordBuilder { r.setModifier(Partial); return r }

// MakeReadOnly renders `readonly record struct`; call MakeStruct first.
func (r *RecordBuilder) MakeReadOnly() *RecordBuilder {
	if r.kind != recordStruct {
		r.conflict("only record structs can be readonly")
	}
	r.setModifier(Readonly)
	return r
}

func (r *RecordBuilder) requireClass(mod string) {
	if r.kind == recordStruct {
		r.conflict("a record struct cannot be %s", mod)
	}
}

// AddParameter appends a primary constructor parameter.
func (r *RecordBuilder) AddParameter(name, typ string) *RecordBuilder {
	return r.AddParameterSpec(Parameter{Name: name, Type: strings.TrimSpace(typ)})
}

// AddParameterWithDefault appends a primary constructor parameter with a
// default. Record defaults are always rendered.
func (r *RecordBuilder) AddParameterWithDefault(name, typ, defaultValue string) *RecordBuilder {
	return r.AddParameterSpec(Parameter{Name: name, Type: strings.TrimSpace(typ), Default: strings.TrimSpace(defaultValue), HasDefault: true})
}

// AddParameterSpec appends a fully described primary constructor parameter,
// e.g. one carrying [property: JsonPropertyName("id")].
func (r *RecordBuilder) AddParameterSpec(p Parameter) *RecordBuilder {
	if p.Modifier != "" && p.Modifier != "in" {
		panic(errors.InvalidArgumentf("%s: primary parameter %s cannot be %s", r.owner(), p.Name, p.Modifier))
	}
	r.params.add(r.owner(), p)
	r.hasParams = true
	return r
}

// WithEmptyParameterList renders `()` even without parameters.
func (r *RecordBuilder) WithEmptyParameterList() *RecordBuilder {
	r.hasParams = true
	return r
}

// PrimaryParameters returns a copy of the primary constructor parameters.
func (r *RecordBuilder) PrimaryParameters() []Parameter {
	return append([]Parameter(nil), r.params.params...)
}

// WithBaseRecord sets the base record and the arguments passed to it.
func (r *RecordBuilder) WithBaseRecord(name string, args ...string) *RecordBuilder {
	requireType(r.owner()+" base", name)
	if r.kind == recordStruct {
		r.conflict("a record struct cannot derive from %s", name)
	}
	if r.baseRecord != "" {
		r.conflict("already derives from %s", r.baseRecord)
	}
	for _, a := range args {
		requireText("base record argument", a)
	}
	r.baseRecord = strings.TrimSpace(name)
	r.baseArgs = append([]string(nil), args...)
	return r
}

// AddInterface appends an implemented interface; duplicates panic.
func (r *RecordBuilder) AddInterface(name string) *RecordBuilder {
	r.bases.addInterface(r.owner(), name)
	return r
}

// AddTypeParameter declares a generic type parameter.
func (r *RecordBuilder) AddTypeParameter(name string) *RecordBuilder {
	r.typeParams.add(r.owner(), name)
	return r
}

// AddTypeConstraint adds `where name : constraints`.
func (r *RecordBuilder) AddTypeConstraint(name string, constraints ...string) *RecordBuilder {
	r.typeParams.constrain(r.owner(), name, constraints...)
	return r
}

// WithParamDoc documents a primary constructor parameter.
func (r *RecordBuilder) WithParamDoc(name, text string) *RecordBuilder {
	requireName("documented parameter", name)
	r.doc.AddParam(name, text)
	return r
}

func (r *RecordBuilder) AddField(f *FieldBuilder) *RecordBuilder       { return r.AddMember(nilMember(f)) }
func (r *RecordBuilder) AddProperty(p *PropertyBuilder) *RecordBuilder { return r.AddMember(nilMember(p)) }
func (r *RecordBuilder) AddMethod(m *MethodBuilder) *RecordBuilder     { return r.AddMember(nilMember(m)) }

// AddConstructor appends a constructor; its name must match the record.
func (r *RecordBuilder) AddConstructor(ctor *ConstructorBuilder) *RecordBuilder {
	if ctor != nil && ctor.name != r.name {
		panic(errors.InvalidArgumentf("constructor %s does not belong to record %s", ctor.name, r.name))
	}
	return r.AddMember(nilMember(ctor))
}

// AddMember appends any member.
func (r *RecordBuilder) AddMember(m Member) *RecordBuilder {
	r.body.add(r.owner(), m)
	return r
}

// Build renders the record.
func (r *RecordBuilder) Build() string {
	return buildMember(r, renderCtx{})
}

func (r *RecordBuilder) header() string {
	var sb strings.Builder
	sb.WriteString(modifierPrefix(r.access, Public, r.mods, renderCtx{}))
	sb.WriteString("record ")
	switch r.kind {
	case recordClass:
		sb.WriteString("class ")
	case recordStruct:
		sb.WriteString("struct ")
	}
	sb.WriteString(r.name + r.typeParams.list())
	if r.hasParams {
		// primary parameters always show their defaults
		sb.WriteString(r.params.render(true))
	}

	var bases []string
	if r.baseRecord != "" {
		base := r.baseRecord
		if len(r.baseArgs) > 0 {
			base += "(" + strings.Join(r.baseArgs, ", ") + ")"
		}
		bases = append(bases, base)
	}
	bases = append(bases, r.bases.interfaces...)
	if len(bases) > 0 {
		sb.WriteString(" : " + strings.Join(bases, ", "))
	}
	sb.WriteString(r.typeParams.where())
	return sb.String()
}

func (r *RecordBuilder) render(w *CodeBuilder, _ renderCtx) {
	r.writeLeading(w)
	if len(r.body.members) == 0 {
		w.AppendLine(r.header() + ";")
		return
	}
	w.AppendLine(r.header())
	w.OpenBlock()
	r.body.render(w, renderCtx{})
	w.CloseBlock()
}
