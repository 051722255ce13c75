package decl

import (
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/imports"
	"github.com/teranos/poet/poet"
)

// Options are render settings applied where a document does not set its own.
type Options struct {
	Indent      string
	Policy      imports.WildcardPolicy
	SkipBuiltin bool
	Logger      *zap.SugaredLogger
}

// Load reads the document at path and builds its file.
func Load(path string, opts Options) (*poet.File, error) {
	doc, err := Read(path)
	if err != nil {
		return nil, err
	}
	f, err := doc.Build(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return f, nil
}

// Build turns the document into a file.
func (d *Document) Build(opts Options) (*poet.File, error) {
	spec, err := buildType(d.Type, nil)
	if err != nil {
		return nil, err
	}

	b := poet.NewFile(d.Package, spec)
	if opts.Logger != nil {
		b.Logger(opts.Logger)
	}

	indent := opts.Indent
	if d.Indent != "" {
		indent = d.Indent
	}
	if indent != "" {
		b.Indent(indent)
	}

	skip := opts.SkipBuiltin
	if d.SkipBuiltin != nil {
		skip = *d.SkipBuiltin
	}
	b.SkipBuiltinImports(skip)

	policy := opts.Policy
	if d.Wildcard != "" {
		if policy, err = imports.ParseWildcardPolicy(d.Wildcard); err != nil {
			return nil, err
		}
	}
	b.WildcardPolicy(policy)

	if d.Comment != "" {
		b.AddFileComment("$L", strings.TrimRight(d.Comment, "\n"))
	}
	for _, imp := range d.Imports {
		if imp.Threshold != nil {
			b.AddImport(imp.Name, poet.WithWildcardThreshold(*imp.Threshold))
		} else {
			b.AddImport(imp.Name)
		}
	}
	for _, h := range d.WildcardHints {
		b.AddImportWildcardHint(h.Namespace, h.Threshold)
	}
	for _, s := range d.StaticImports {
		class, member, err := splitStatic(s)
		if err != nil {
			return nil, err
		}
		b.AddStaticImport(class, member)
	}
	return b.Build()
}

// splitStatic splits "java.util.Collections.emptyList" into the class and
// the member.
func splitStatic(target string) (poet.ClassName, string, error) {
	i := strings.LastIndex(target, ".")
	if i <= 0 || i == len(target)-1 {
		return poet.ClassName{}, "", errors.WithHint(
			errors.NewConfigurationError("invalid static import %q", target),
			"static imports name a class and a member, e.g. java.util.Collections.emptyList")
	}
	class, err := poet.BestGuess(target[:i])
	if err != nil {
		return poet.ClassName{}, "", err
	}
	return class, target[i+1:], nil
}

func buildType(t Type, outerVars []string) (*poet.TypeSpec, error) {
	kind, err := parseKind(t.Kind)
	if err != nil {
		return nil, err
	}
	b := poet.NewType(kind, t.Name)

	vars := append([]string(nil), outerVars...)
	for _, tv := range t.TypeVariables {
		vars = append(vars, tv.Name)
	}
	for _, tv := range t.TypeVariables {
		v, err := typeVariable(tv, vars)
		if err != nil {
			return nil, err
		}
		b.AddTypeVariable(v)
	}

	mods, err := parseModifiers(t.Modifiers)
	if err != nil {
		return nil, err
	}
	b.AddModifiers(mods...)
	if t.Javadoc != "" {
		b.AddJavadoc("$L", javadocText(t.Javadoc))
	}
	for _, a := range t.Annotations {
		spec, err := annotation(a, vars)
		if err != nil {
			return nil, err
		}
		b.AddAnnotation(spec)
	}
	if t.Superclass != "" {
		sc, err := poet.ParseTypeName(t.Superclass, vars...)
		if err != nil {
			return nil, err
		}
		b.Superclass(sc)
	}
	for _, i := range t.Interfaces {
		it, err := poet.ParseTypeName(i, vars...)
		if err != nil {
			return nil, err
		}
		b.AddSuperinterface(it)
	}
	for _, c := range t.EnumConstants {
		args, err := codeArgs(c.Format, c.Args, vars)
		if err != nil {
			return nil, err
		}
		b.AddEnumConstant(c.Name, c.Format, args...)
	}
	for _, f := range t.Fields {
		spec, err := field(f, vars)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", f.Name)
		}
		b.AddField(spec)
	}
	if len(t.StaticBlock) > 0 {
		block, err := codeBlock(t.StaticBlock, vars)
		if err != nil {
			return nil, errors.Wrap(err, "static block")
		}
		b.AddStaticBlock(block)
	}
	if len(t.Initializer) > 0 {
		block, err := codeBlock(t.Initializer, vars)
		if err != nil {
			return nil, errors.Wrap(err, "initializer block")
		}
		b.AddInitializerBlock(block)
	}
	for _, m := range t.Methods {
		spec, err := method(m, kind, vars)
		if err != nil {
			name := m.Name
			if m.Constructor {
				name = "constructor"
			}
			return nil, errors.Wrapf(err, "method %s", name)
		}
		b.AddMethod(spec)
	}
	for _, nested := range t.Types {
		spec, err := buildType(nested, vars)
		if err != nil {
			return nil, errors.Wrapf(err, "type %s", nested.Name)
		}
		b.AddType(spec)
	}
	for _, o := range t.Originating {
		b.AddOriginatingElement(o)
	}
	return b.Build()
}

func parseKind(kind string) (poet.Kind, error) {
	switch strings.ToLower(kind) {
	case "", "class":
		return poet.KindClass, nil
	case "interface":
		return poet.KindInterface, nil
	case "enum":
		return poet.KindEnum, nil
	}
	return 0, errors.WithHint(
		errors.NewConfigurationError("unknown type kind %q", kind),
		"kind is one of class, interface, enum")
}

func typeVariable(tv TypeVariable, vars []string) (poet.TypeVariableName, error) {
	bounds := make([]poet.TypeName, 0, len(tv.Bounds))
	for _, s := range tv.Bounds {
		t, err := poet.ParseTypeName(s, vars...)
		if err != nil {
			return poet.TypeVariableName{}, err
		}
		bounds = append(bounds, t)
	}
	return poet.TypeVariable(tv.Name, bounds...)
}

func annotation(a Annotation, vars []string) (poet.AnnotationSpec, error) {
	class, err := poet.ParseClassName(a.Type)
	if err != nil {
		return poet.AnnotationSpec{}, err
	}
	b := poet.NewAnnotationBuilder(class)
	for _, m := range a.Members {
		args, err := codeArgs(m.Format, m.Args, vars)
		if err != nil {
			return poet.AnnotationSpec{}, err
		}
		b.AddMember(m.Name, m.Format, args...)
	}
	return b.Build()
}

func annotations(list []Annotation, vars []string) ([]poet.AnnotationSpec, error) {
	out := make([]poet.AnnotationSpec, 0, len(list))
	for _, a := range list {
		spec, err := annotation(a, vars)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

func field(f Field, vars []string) (poet.FieldSpec, error) {
	t, err := poet.ParseTypeName(f.Type, vars...)
	if err != nil {
		return poet.FieldSpec{}, err
	}
	mods, err := parseModifiers(f.Modifiers)
	if err != nil {
		return poet.FieldSpec{}, err
	}
	b := poet.NewField(t, f.Name, mods...)
	if f.Javadoc != "" {
		b.AddJavadoc("$L", javadocText(f.Javadoc))
	}
	anns, err := annotations(f.Annotations, vars)
	if err != nil {
		return poet.FieldSpec{}, err
	}
	for _, a := range anns {
		b.AddAnnotation(a)
	}
	if f.Init != "" {
		args, err := codeArgs(f.Init, f.InitArgs, vars)
		if err != nil {
			return poet.FieldSpec{}, err
		}
		b.Initializer(f.Init, args...)
	}
	return b.Build()
}

func method(m Method, kind poet.Kind, outerVars []string) (poet.MethodSpec, error) {
	var b *poet.MethodBuilder
	if m.Constructor {
		b = poet.NewConstructor()
	} else {
		b = poet.NewMethod(m.Name)
	}

	vars := append([]string(nil), outerVars...)
	for _, tv := range m.TypeVariables {
		vars = append(vars, tv.Name)
	}
	for _, tv := range m.TypeVariables {
		v, err := typeVariable(tv, vars)
		if err != nil {
			return poet.MethodSpec{}, err
		}
		b.AddTypeVariable(v)
	}

	mods, err := parseModifiers(m.Modifiers)
	if err != nil {
		return poet.MethodSpec{}, err
	}
	// Interface methods without a body are abstract unless marked otherwise.
	if kind == poet.KindInterface && len(m.Body) == 0 && !hasAny(mods, poet.Static, poet.Default, poet.Private) {
		if !hasAny(mods, poet.Abstract) {
			mods = append(mods, poet.Abstract)
		}
	}
	b.AddModifiers(mods...)

	if m.Javadoc != "" {
		b.AddJavadoc("$L", javadocText(m.Javadoc))
	}
	anns, err := annotations(m.Annotations, vars)
	if err != nil {
		return poet.MethodSpec{}, err
	}
	for _, a := range anns {
		b.AddAnnotation(a)
	}
	if m.Returns != "" && !m.Constructor {
		rt, err := poet.ParseTypeName(m.Returns, vars...)
		if err != nil {
			return poet.MethodSpec{}, err
		}
		b.Returns(rt)
	}
	for _, p := range m.Parameters {
		t, err := poet.ParseTypeName(p.Type, vars...)
		if err != nil {
			return poet.MethodSpec{}, err
		}
		var pm []poet.Modifier
		if p.Final {
			pm = append(pm, poet.Final)
		}
		param, err := poet.NewParameter(t, p.Name, pm...)
		if err != nil {
			return poet.MethodSpec{}, err
		}
		pa, err := annotations(p.Annotations, vars)
		if err != nil {
			return poet.MethodSpec{}, err
		}
		b.AddParameter(param.WithAnnotations(pa...))
	}
	b.Varargs(m.Varargs)
	for _, e := range m.Throws {
		t, err := poet.ParseTypeName(e, vars...)
		if err != nil {
			return poet.MethodSpec{}, err
		}
		b.AddException(t)
	}
	if len(m.Body) > 0 {
		body, err := codeBlock(m.Body, vars)
		if err != nil {
			return poet.MethodSpec{}, err
		}
		b.AddCodeBlock(body)
	}
	if m.Default != "" {
		b.DefaultValue("$L", m.Default)
	}
	return b.Build()
}

func hasAny(mods []poet.Modifier, want ...poet.Modifier) bool {
	for _, m := range mods {
		for _, w := range want {
			if m == w {
				return true
			}
		}
	}
	return false
}

func codeBlock(stmts []Statement, vars []string) (poet.CodeBlock, error) {
	b := poet.NewCodeBlockBuilder()
	for i, s := range stmts {
		var format string
		switch {
		case s.Statement != "":
			format = s.Statement
		case s.Code != "":
			format = s.Code
		case s.Comment != "":
			format = s.Comment
		case s.Begin != "":
			format = s.Begin
		case s.Next != "":
			format = s.Next
		}
		args, err := codeArgs(format, s.Args, vars)
		if err != nil {
			return poet.CodeBlock{}, errors.Wrapf(err, "statement %d", i+1)
		}
		switch {
		case s.Statement != "":
			b.AddStatement(format, args...)
		case s.Code != "":
			b.Add(format, args...)
		case s.Comment != "":
			b.AddComment(format, args...)
		case s.Begin != "":
			b.BeginControlFlow(format, args...)
		case s.Next != "":
			b.NextControlFlow(format, args...)
		case s.End:
			b.EndControlFlow()
		default:
			return poet.CodeBlock{}, errors.WithHint(
				errors.NewConfigurationError("statement %d is empty", i+1),
				"set one of statement, code, comment, begin, next, end")
		}
	}
	return b.Build()
}

// codeArgs converts document arguments for format: $T arguments parse as
// types, everything else passes through as text.
func codeArgs(format string, raw []string, vars []string) ([]interface{}, error) {
	out := make([]interface{}, 0, len(raw))
	next := 0
	for i := 0; i < len(format)-1 && next < len(raw); i++ {
		if format[i] != '$' {
			continue
		}
		i++
		switch format[i] {
		case 'T':
			t, err := poet.ParseTypeName(raw[next], vars...)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
			next++
		case 'L', 'S', 'N':
			out = append(out, raw[next])
			next++
		}
	}
	for ; next < len(raw); next++ {
		out = append(out, raw[next])
	}
	return out, nil
}

func javadocText(s string) string {
	return strings.TrimRight(s, "\n") + "\n"
}
