package poet

import (
	"strings"

	"github.com/teranos/poet/errors"
)

// Kind is the flavor of a type declaration.
type Kind int

const (
	KindClass Kind = iota
	KindInterface
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	default:
		return "class"
	}
}

func (k Kind) implicitFieldModifiers() modifierSet {
	if k == KindInterface {
		return newModifierSet(Public, Static, Final)
	}
	return nil
}

func (k Kind) implicitMethodModifiers() modifierSet {
	if k == KindInterface {
		return newModifierSet(Public, Abstract)
	}
	return nil
}

func (k Kind) implicitTypeModifiers() modifierSet {
	if k == KindInterface {
		return newModifierSet(Public, Static)
	}
	return nil
}

func (k Kind) asMemberModifiers() modifierSet {
	if k == KindInterface || k == KindEnum {
		return newModifierSet(Static)
	}
	return nil
}

// EnumConstant is one constant of an enum declaration.
type EnumConstant struct {
	Name        string
	Javadoc     CodeBlock
	Annotations []AnnotationSpec
	Arguments   CodeBlock
}

// TypeSpec is a class, interface, or enum declaration. A built TypeSpec is
// never modified.
type TypeSpec struct {
	Kind                Kind
	Name                string
	Javadoc             CodeBlock
	Annotations         []AnnotationSpec
	TypeVariables       []TypeVariableName
	Superclass          TypeName
	Superinterfaces     []TypeName
	EnumConstants       []EnumConstant
	Fields              []FieldSpec
	StaticBlock         CodeBlock
	InitializerBlock    CodeBlock
	Methods             []MethodSpec
	Types               []*TypeSpec
	OriginatingElements []string

	modifiers   modifierSet
	nestedNames map[string]bool
}

// HasModifier reports whether m was declared on the type.
func (t *TypeSpec) HasModifier(m Modifier) bool { return t.modifiers[m] }

// Modifiers returns the declared modifiers in canonical order.
func (t *TypeSpec) Modifiers() []Modifier { return t.modifiers.sorted() }

func (t *TypeSpec) declaresNested(simple string) bool { return t.nestedNames[simple] }

// AllOriginatingElements returns the originating elements of t and of every
// type nested in it.
func (t *TypeSpec) AllOriginatingElements() []string {
	out := append([]string(nil), t.OriginatingElements...)
	for _, nested := range t.Types {
		out = append(out, nested.AllOriginatingElements()...)
	}
	return out
}

func (t *TypeSpec) emit(w *CodeWriter, implicit modifierSet) error {
	w.pushTypeVariables(t.TypeVariables)
	defer w.popTypeVariables()

	w.emitJavadoc(t.Javadoc)
	w.emitAnnotations(t.Annotations, false)
	w.emitModifiers(t.modifiers, implicit.union(t.Kind.asMemberModifiers()))
	w.emitAndIndent(t.Kind.String() + " " + t.Name)
	w.emitTypeVariables(t.TypeVariables)

	extends, implements := t.Superinterfaces, []TypeName(nil)
	if t.Kind != KindInterface {
		extends, implements = nil, t.Superinterfaces
		if t.Superclass != nil && !isObject(t.Superclass) {
			extends = []TypeName{t.Superclass}
		}
	}
	emitTypeList(w, " extends", extends)
	emitTypeList(w, " implements", implements)
	w.emitAndIndent(" {\n")

	w.pushType(t)
	w.indentBy(1)
	first := true
	separate := func() {
		if !first {
			w.emitAndIndent("\n")
		}
		first = false
	}

	needsSeparator := t.Kind == KindEnum && (len(t.Fields) > 0 || len(t.Methods) > 0 || len(t.Types) > 0)
	for i, c := range t.EnumConstants {
		separate()
		w.emitJavadoc(c.Javadoc)
		w.emitAnnotations(c.Annotations, false)
		w.emitAndIndent(c.Name)
		if !c.Arguments.IsEmpty() {
			w.emitAndIndent("(")
			w.emitCode(c.Arguments)
			w.emitAndIndent(")")
		}
		switch {
		case i < len(t.EnumConstants)-1:
			w.emitAndIndent(",\n")
		case !needsSeparator:
			w.emitAndIndent("\n")
		}
	}
	if needsSeparator {
		w.emitAndIndent(";\n")
	}

	for _, f := range t.Fields {
		if f.HasModifier(Static) {
			separate()
			f.emit(w, t.Kind.implicitFieldModifiers())
		}
	}
	if !t.StaticBlock.IsEmpty() {
		separate()
		w.emitCode(t.StaticBlock)
	}
	for _, f := range t.Fields {
		if !f.HasModifier(Static) {
			separate()
			f.emit(w, t.Kind.implicitFieldModifiers())
		}
	}
	if !t.InitializerBlock.IsEmpty() {
		separate()
		w.emitCode(t.InitializerBlock)
	}
	for _, m := range t.Methods {
		if m.IsConstructor() {
			separate()
			m.emit(w, t.Name, t.Kind.implicitMethodModifiers())
		}
	}
	for _, m := range t.Methods {
		if !m.IsConstructor() {
			separate()
			m.emit(w, t.Name, t.Kind.implicitMethodModifiers())
		}
	}
	for _, nested := range t.Types {
		separate()
		if err := nested.emit(w, t.Kind.implicitTypeModifiers()); err != nil {
			return err
		}
	}

	w.unindentBy(1)
	w.popType()
	w.emitAndIndent("}\n")
	return w.Err()
}

func emitTypeList(w *CodeWriter, keyword string, types []TypeName) {
	for i, t := range types {
		if i == 0 {
			w.emitAndIndent(keyword + " ")
		} else {
			w.emitAndIndent(", ")
		}
		t.emit(w)
	}
}

// String renders the declaration with fully qualified names.
func (t *TypeSpec) String() string {
	var b strings.Builder
	w := newCodeWriter(&b, "  ", nil)
	_ = t.emit(w, nil)
	return b.String()
}

// TypeBuilder accumulates a TypeSpec.
type TypeBuilder struct {
	spec        TypeSpec
	javadoc     *CodeBlockBuilder
	staticBlock *CodeBlockBuilder
	initBlock   *CodeBlockBuilder
	err         error
}

// NewClass starts a class declaration.
func NewClass(name string) *TypeBuilder { return newTypeBuilder(KindClass, name) }

// NewInterface starts an interface declaration.
func NewInterface(name string) *TypeBuilder { return newTypeBuilder(KindInterface, name) }

// NewEnum starts an enum declaration.
func NewEnum(name string) *TypeBuilder { return newTypeBuilder(KindEnum, name) }

// NewType starts a declaration of the given kind.
func NewType(kind Kind, name string) *TypeBuilder { return newTypeBuilder(kind, name) }

func newTypeBuilder(kind Kind, name string) *TypeBuilder {
	b := &TypeBuilder{
		spec:        TypeSpec{Kind: kind, Name: name, modifiers: newModifierSet()},
		javadoc:     NewCodeBlockBuilder(),
		staticBlock: NewCodeBlockBuilder(),
		initBlock:   NewCodeBlockBuilder(),
	}
	if !IsIdentifier(name) {
		b.err = errors.NewConfigurationError("invalid type name %q", name)
	}
	return b
}

func (b *TypeBuilder) fail(err error) *TypeBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// AddJavadoc appends to the type's javadoc.
func (b *TypeBuilder) AddJavadoc(format string, args ...interface{}) *TypeBuilder {
	b.javadoc.Add(format, args...)
	return b
}

// AddAnnotation appends an annotation.
func (b *TypeBuilder) AddAnnotation(a AnnotationSpec) *TypeBuilder {
	b.spec.Annotations = append(b.spec.Annotations, a)
	return b
}

// AddModifiers adds declaration modifiers.
func (b *TypeBuilder) AddModifiers(modifiers ...Modifier) *TypeBuilder {
	for _, m := range modifiers {
		b.spec.modifiers[m] = true
	}
	return b
}

// AddTypeVariable declares a type parameter.
func (b *TypeBuilder) AddTypeVariable(v TypeVariableName) *TypeBuilder {
	b.spec.TypeVariables = append(b.spec.TypeVariables, v)
	return b
}

// Superclass sets the extended class. Interfaces and enums have none.
func (b *TypeBuilder) Superclass(t TypeName) *TypeBuilder {
	if b.spec.Kind != KindClass {
		return b.fail(errors.NewConfigurationError("only classes have superclasses, not %s %s", b.spec.Kind, b.spec.Name))
	}
	if b.spec.Superclass != nil {
		return b.fail(errors.NewConfigurationError("superclass of %s already set to %s", b.spec.Name, b.spec.Superclass))
	}
	b.spec.Superclass = t
	return b
}

// AddSuperinterface appends an implemented (or, for interfaces, extended) interface.
func (b *TypeBuilder) AddSuperinterface(t TypeName) *TypeBuilder {
	b.spec.Superinterfaces = append(b.spec.Superinterfaces, t)
	return b
}

// AddEnumConstant appends an enum constant, with optional constructor arguments.
func (b *TypeBuilder) AddEnumConstant(name string, format string, args ...interface{}) *TypeBuilder {
	if b.spec.Kind != KindEnum {
		return b.fail(errors.NewConfigurationError("%s is not an enum", b.spec.Name))
	}
	if !IsIdentifier(name) {
		return b.fail(errors.NewConfigurationError("invalid enum constant %q", name))
	}
	c := EnumConstant{Name: name}
	if format != "" {
		a, err := NewCodeBlock(format, args...)
		if err != nil {
			return b.fail(err)
		}
		c.Arguments = a
	}
	b.spec.EnumConstants = append(b.spec.EnumConstants, c)
	return b
}

// AddField appends a field.
func (b *TypeBuilder) AddField(f FieldSpec) *TypeBuilder {
	b.spec.Fields = append(b.spec.Fields, f)
	return b
}

// AddMethod appends a method or constructor.
func (b *TypeBuilder) AddMethod(m MethodSpec) *TypeBuilder {
	b.spec.Methods = append(b.spec.Methods, m)
	return b
}

// AddType nests a type declaration.
func (b *TypeBuilder) AddType(t *TypeSpec) *TypeBuilder {
	b.spec.Types = append(b.spec.Types, t)
	return b
}

// AddStaticBlock appends code to the static initializer.
func (b *TypeBuilder) AddStaticBlock(c CodeBlock) *TypeBuilder {
	b.staticBlock.AddCode(c)
	return b
}

// AddInitializerBlock appends code to the instance initializer.
func (b *TypeBuilder) AddInitializerBlock(c CodeBlock) *TypeBuilder {
	b.initBlock.AddCode(c)
	return b
}

// AddOriginatingElement associates the type with a source element, for hosts
// that track incremental builds.
func (b *TypeBuilder) AddOriginatingElement(element string) *TypeBuilder {
	b.spec.OriginatingElements = append(b.spec.OriginatingElements, element)
	return b
}

// Build returns the declaration or the first error recorded.
func (b *TypeBuilder) Build() (*TypeSpec, error) {
	if b.err != nil {
		return nil, b.err
	}
	spec := b.spec
	var err error
	if spec.Javadoc, err = b.javadoc.Build(); err != nil {
		return nil, err
	}
	if spec.StaticBlock, err = wrapBlock(b.staticBlock, "static {\n$>"); err != nil {
		return nil, err
	}
	if spec.InitializerBlock, err = wrapBlock(b.initBlock, "{\n$>"); err != nil {
		return nil, err
	}

	if spec.Kind == KindEnum && len(spec.EnumConstants) == 0 {
		return nil, errors.NewConfigurationError("enum %s requires at least one constant", spec.Name)
	}
	spec.nestedNames = make(map[string]bool, len(spec.Types))
	for _, nested := range spec.Types {
		if nested.Name == spec.Name {
			return nil, errors.NewConfigurationError("%s has a nested type with its own name", spec.Name)
		}
		if spec.nestedNames[nested.Name] {
			return nil, errors.NewConfigurationError("%s declares nested type %s twice", spec.Name, nested.Name)
		}
		spec.nestedNames[nested.Name] = true
	}
	for _, m := range spec.Methods {
		switch {
		case spec.Kind == KindInterface && m.IsConstructor():
			return nil, errors.NewConfigurationError("interface %s cannot have constructors", spec.Name)
		case spec.Kind == KindClass && m.HasModifier(Abstract) && !spec.modifiers[Abstract]:
			return nil, errors.NewConfigurationError("non-abstract type %s cannot declare abstract method %s", spec.Name, m.Name)
		}
	}

	spec.Annotations = append([]AnnotationSpec(nil), b.spec.Annotations...)
	spec.TypeVariables = append([]TypeVariableName(nil), b.spec.TypeVariables...)
	spec.Superinterfaces = append([]TypeName(nil), b.spec.Superinterfaces...)
	spec.EnumConstants = append([]EnumConstant(nil), b.spec.EnumConstants...)
	spec.Fields = append([]FieldSpec(nil), b.spec.Fields...)
	spec.Methods = append([]MethodSpec(nil), b.spec.Methods...)
	spec.Types = append([]*TypeSpec(nil), b.spec.Types...)
	spec.OriginatingElements = append([]string(nil), b.spec.OriginatingElements...)
	spec.modifiers = newModifierSet(b.spec.modifiers.sorted()...)
	return &spec, nil
}

func wrapBlock(body *CodeBlockBuilder, open string) (CodeBlock, error) {
	if body.IsEmpty() {
		return body.Build()
	}
	inner, err := body.Build()
	if err != nil {
		return CodeBlock{}, err
	}
	return NewCodeBlockBuilder().Add(open).AddCode(inner).Add("$<}\n").Build()
}
