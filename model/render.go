package model

import (
	"path/filepath"
	"strings"

	"github.com/teranos/sharpgen/codebuilder"
	"github.com/teranos/sharpgen/config"
	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/langversion"
	"github.com/teranos/sharpgen/logger"
)

// RenderOptions control how a model becomes text.
type RenderOptions struct {
	LangVersion     langversion.Version
	IndentWidth     int
	GeneratedHeader bool
	FileScoped      bool
}

// OptionsFromConfig maps the render section of a configuration.
func OptionsFromConfig(rc config.RenderConfig) (RenderOptions, error) {
	v, err := langversion.Parse(rc.LangVersion)
	if err != nil {
		return RenderOptions{}, errors.Wrap(err, "render.lang_version")
	}
	return RenderOptions{
		LangVersion:     v,
		IndentWidth:     rc.IndentWidth,
		GeneratedHeader: rc.GeneratedHeader,
		FileScoped:      rc.FileScopedNamespaces,
	}, nil
}

// DefaultRenderOptions matches the configuration defaults.
func DefaultRenderOptions() RenderOptions {
	opts, err := OptionsFromConfig(config.Default().Render)
	if err != nil {
		panic(errors.AssertionFailedf("default render options: %v", err))
	}
	return opts
}

// OutputName is the file name the model renders to: the model file's base
// name, or the first type's name, followed by suffix.
func (f *File) OutputName(suffix string) string {
	base := strings.TrimSuffix(filepath.Base(f.Path), filepath.Ext(f.Path))
	if f.Path == "" || base == "" {
		base = "Model"
		if len(f.Types) > 0 {
			base = f.Types[0].Name
		}
	}
	return base + suffix
}

// Render validates the model and builds it. Features the language version
// lacks are reported as ErrUnsupportedFeature errors, builder misuse as
// ErrInvalidArgument or ErrInvalidOperation errors.
func (f *File) Render(opts RenderOptions) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}
	version := opts.LangVersion
	if f.LangVersion != "" {
		v, err := langversion.Parse(f.LangVersion)
		if err != nil {
			return "", errors.Wrap(err, "lang_version")
		}
		version = v
	}
	r := &renderer{version: version}

	var out string
	err := codebuilder.Catch(func() {
		ns := codebuilder.NewNamespace(f.Namespace).WithIndentWidth(opts.IndentWidth).AddUsings(f.Usings...)
		if opts.GeneratedHeader {
			if version.Supports(langversion.NullableReferences) {
				ns.WithGeneratedHeader()
			} else {
				logger.Logger.Debugw("skipping generated header: #nullable needs C# 8",
					logger.FieldLangVersion, version.String())
			}
		}
		if !opts.FileScoped || !version.Supports(langversion.FileScopedNamespace) {
			ns.UseBlockScope()
		}
		for _, t := range f.Types {
			r.where = t.Kind + " " + t.Name
			m := r.typeDecl(t)
			if r.err != nil {
				return
			}
			ns.AddType(m)
		}
		out = ns.Build()
	})
	if err == nil {
		err = r.err
	}
	if err != nil {
		return "", errors.Wrapf(err, "render %s", r.where)
	}

	logger.Logger.Debugw("rendered model",
		logger.FieldNamespace, f.Namespace,
		logger.FieldCount, len(f.Types),
		logger.FieldLangVersion, version.String(),
		logger.FieldSize, len(out))
	return out, nil
}

// renderer carries the first gate failure. Builder misuse panics and is
// recovered by Render.
type renderer struct {
	version langversion.Version
	where   string
	err     error
}

func (r *renderer) require(f langversion.Feature) bool {
	if r.err != nil {
		return false
	}
	if err := langversion.Check(r.version, f); err != nil {
		r.err = err
		return false
	}
	return true
}

func (r *renderer) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *renderer) typeDecl(t Type) codebuilder.Member {
	switch t.Kind {
	case KindClass:
		return r.class(t)
	case KindInterface:
		return r.iface(t)
	case KindRecord:
		return r.record(t)
	default:
		return r.enum(t)
	}
}

// modifiers applies keywords through the setters a builder accepts.
func (r *renderer) modifiers(where string, keywords []string, setters map[string]func()) {
	for _, kw := range keywords {
		set, ok := setters[kw]
		if !ok {
			r.fail(errors.InvalidArgumentf("%s: modifier %q is not supported here", where, kw))
			return
		}
		if kw == "required" && !r.require(langversion.RequiredMembers) {
			return
		}
		set()
	}
}

func access(s string) codebuilder.Access {
	a, _ := codebuilder.ParseAccess(s)
	return a
}

func (r *renderer) attributes(attrs []Attribute, add func(name string, args ...string)) {
	for _, a := range attrs {
		if strings.Contains(a.Name, "<") && !r.require(langversion.GenericAttributes) {
			return
		}
		add(a.Name, a.Args...)
	}
}

func (r *renderer) class(t Type) codebuilder.Member {
	c := codebuilder.NewClass(t.Name).WithAccess(access(t.Access))
	r.modifiers(r.where, t.Modifiers, map[string]func(){
		"static":   func() { c.MakeStatic() },
		"abstract": func() { c.MakeAbstract() },
		"sealed":   func() { c.MakeSealed() },
		"partial":  func() { c.MakePartial() },
		"new":      func() { c.MakeNew() },
	})
	r.attributes(t.Attributes, func(name string, args ...string) { c.WithAttribute(name, args...) })
	if t.Summary != "" {
		c.WithSummary(t.Summary)
	}
	if t.Base != "" {
		c.WithBaseClass(t.Base)
	}
	for _, i := range t.Interfaces {
		c.AddInterface(i)
	}
	for _, tp := range t.TypeParameters {
		c.AddTypeParameter(tp)
	}
	for _, fd := range t.Fields {
		c.AddField(r.field(fd))
	}
	for _, p := range t.Properties {
		c.AddProperty(r.property(p))
	}
	for _, ctor := range t.Constructors {
		c.AddConstructor(r.constructor(t.Name, ctor))
	}
	for _, m := range t.Methods {
		c.AddMethod(r.method(m, false))
	}
	return c
}

func (r *renderer) iface(t Type) codebuilder.Member {
	i := codebuilder.NewInterface(t.Name).WithAccess(access(t.Access))
	r.modifiers(r.where, t.Modifiers, map[string]func(){
		"partial": func() { i.MakePartial() },
	})
	r.attributes(t.Attributes, func(name string, args ...string) { i.WithAttribute(name, args...) })
	if t.Summary != "" {
		i.WithSummary(t.Summary)
	}
	for _, b := range append(nonEmpty(t.Base), t.Interfaces...) {
		i.AddBaseInterface(b)
	}
	for _, tp := range t.TypeParameters {
		i.AddTypeParameter(tp)
	}
	for _, p := range t.Properties {
		i.AddProperty(r.property(p))
	}
	for _, m := range t.Methods {
		i.AddMethod(r.method(m, true))
	}
	return i
}

func (r *renderer) record(t Type) codebuilder.Member {
	if !r.require(langversion.Records) {
		return nil
	}
	rec := codebuilder.NewRecord(t.Name).WithAccess(access(t.Access))
	if t.Struct {
		if !r.require(langversion.RecordStructs) {
			return nil
		}
		rec.MakeStruct()
	}
	r.modifiers(r.where, t.Modifiers, map[string]func(){
		"abstract": func() { rec.MakeAbstract() },
		"sealed":   func() { rec.MakeSealed() },
		"partial":  func() { rec.MakePartial() },
		"readonly": func() { rec.MakeReadOnly() },
	})
	r.attributes(t.Attributes, func(name string, args ...string) { rec.WithAttribute(name, args...) })
	if t.Summary != "" {
		rec.WithSummary(t.Summary)
	}
	for _, p := range t.Parameters {
		rec.AddParameterSpec(codebuilder.Parameter{
			Name:       p.Name,
			Type:       p.Type,
			Modifier:   p.Modifier,
			Default:    p.Default,
			HasDefault: p.Default != "",
		})
		if p.Summary != "" {
			rec.WithParamDoc(p.Name, p.Summary)
		}
	}
	if t.Base != "" {
		rec.WithBaseRecord(t.Base, t.BaseArgs...)
	}
	for _, i := range t.Interfaces {
		rec.AddInterface(i)
	}
	for _, tp := range t.TypeParameters {
		rec.AddTypeParameter(tp)
	}
	for _, fd := range t.Fields {
		rec.AddField(r.field(fd))
	}
	for _, p := range t.Properties {
		rec.AddProperty(r.property(p))
	}
	for _, ctor := range t.Constructors {
		rec.AddConstructor(r.constructor(t.Name, ctor))
	}
	for _, m := range t.Methods {
		rec.AddMethod(r.method(m, false))
	}
	return rec
}

func (r *renderer) enum(t Type) codebuilder.Member {
	e := codebuilder.NewEnum(t.Name).WithAccess(access(t.Access))
	r.attributes(t.Attributes, func(name string, args ...string) { e.WithAttribute(name, args...) })
	if t.Summary != "" {
		e.WithSummary(t.Summary)
	}
	if t.Base != "" {
		e.WithBaseType(t.Base)
	}
	if t.Flags {
		e.WithFlags()
	}
	for _, v := range t.Values {
		switch {
		case v.Value != nil && v.Summary != "":
			e.AddValueWithSummary(v.Name, *v.Value, v.Summary)
		case v.Value != nil:
			e.AddValue(v.Name, *v.Value)
		case v.Expression != "":
			e.AddExpressionValue(v.Name, v.Expression)
		default:
			e.AddImplicitValue(v.Name)
		}
	}
	return e
}

func (r *renderer) field(fd Field) *codebuilder.FieldBuilder {
	b := codebuilder.NewField(fd.Name, fd.Type).WithAccess(access(fd.Access))
	r.modifiers(r.where+"."+fd.Name, fd.Modifiers, map[string]func(){
		"static":   func() { b.MakeStatic() },
		"readonly": func() { b.MakeReadOnly() },
		"volatile": func() { b.MakeVolatile() },
		"new":      func() { b.MakeNew() },
	})
	r.attributes(fd.Attributes, func(name string, args ...string) { b.WithAttribute(name, args...) })
	if fd.Summary != "" {
		b.WithSummary(fd.Summary)
	}
	if fd.Const != "" {
		b.MakeConst(fd.Const)
	}
	if fd.Initializer != "" {
		b.WithInitializer(fd.Initializer)
	}
	return b
}

func (r *renderer) property(p Property) *codebuilder.PropertyBuilder {
	b := codebuilder.NewProperty(p.Name, p.Type).WithAccess(access(p.Access))
	r.modifiers(r.where+"."+p.Name, p.Modifiers, map[string]func(){
		"static":   func() { b.MakeStatic() },
		"virtual":  func() { b.MakeVirtual() },
		"override": func() { b.MakeOverride() },
		"sealed":   func() { b.MakeSealed() },
		"abstract": func() { b.MakeAbstract() },
		"required": func() { b.MakeRequired() },
		"new":      func() { b.MakeNew() },
	})
	r.attributes(p.Attributes, func(name string, args ...string) { b.WithAttribute(name, args...) })
	if p.Summary != "" {
		b.WithSummary(p.Summary)
	}
	switch p.Setter {
	case "init":
		if r.require(langversion.InitAccessors) {
			b.WithInitSetter()
		}
	case "private":
		b.WithPrivateSetter()
	case "none":
		b.MakeReadOnly()
	}
	if p.Expression != "" && r.require(langversion.ExpressionBodies) {
		b.WithExpressionBody(p.Expression)
	}
	if p.Initializer != "" {
		b.WithInitializer(p.Initializer)
	}
	return b
}

func (r *renderer) constructor(typeName string, c Constructor) *codebuilder.ConstructorBuilder {
	b := codebuilder.NewConstructor(typeName).WithAccess(access(c.Access))
	if c.Static {
		b.MakeStatic()
	}
	if c.Summary != "" {
		b.WithSummary(c.Summary)
	}
	for _, p := range c.Parameters {
		switch {
		case p.Default != "":
			b.AddParameterWithDefault(p.Name, p.Type, p.Default)
		case p.Modifier != "":
			b.AddParameterWithModifier(p.Name, p.Type, p.Modifier)
		default:
			b.AddParameter(p.Name, p.Type)
		}
		if p.Summary != "" {
			b.WithParamDoc(p.Name, p.Summary)
		}
	}
	if c.EmitDefaults {
		b.EmitDefaultValues()
	}
	switch c.Initializer {
	case "base":
		b.WithBaseCall(c.Args...)
	case "this":
		b.WithThisCall(c.Args...)
	}
	if c.Body != "" {
		b.WithBody(c.Body)
	}
	return b
}

func (r *renderer) method(m Method, inInterface bool) *codebuilder.MethodBuilder {
	b := codebuilder.NewMethod(m.Name, m.Returns).WithAccess(access(m.Access))
	r.modifiers(r.where+"."+m.Name, m.Modifiers, map[string]func(){
		"static":   func() { b.MakeStatic() },
		"virtual":  func() { b.MakeVirtual() },
		"override": func() { b.MakeOverride() },
		"sealed":   func() { b.MakeSealed() },
		"async":    func() { b.MakeAsync() },
		"abstract": func() { b.MakeAbstract() },
		"partial":  func() { b.MakePartial() },
		"extern":   func() { b.MakeExtern() },
		"new":      func() { b.MakeNew() },
	})
	r.attributes(m.Attributes, func(name string, args ...string) { b.WithAttribute(name, args...) })
	if m.Summary != "" {
		b.WithSummary(m.Summary)
	}
	if m.ReturnsDoc != "" {
		b.WithReturnsDoc(m.ReturnsDoc)
	}
	for _, tp := range m.TypeParameters {
		b.AddTypeParameter(tp)
	}
	for _, p := range m.Parameters {
		b.AddParameterSpec(codebuilder.Parameter{
			Name:       p.Name,
			Type:       p.Type,
			Modifier:   p.Modifier,
			Default:    p.Default,
			HasDefault: p.Default != "",
		})
		if p.Summary != "" {
			b.WithParamDoc(p.Name, p.Summary)
		}
	}
	if m.EmitDefaults {
		b.EmitDefaultValues()
	}

	hasImpl := m.Body != "" || m.Expression != ""
	if inInterface && hasImpl && !r.require(langversion.DefaultInterfaceImpls) {
		return b
	}
	switch {
	case m.Expression != "":
		if r.require(langversion.ExpressionBodies) {
			b.WithExpressionBody(m.Expression)
		}
	case m.Body != "":
		b.WithBody(m.Body)
	}
	return b
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
