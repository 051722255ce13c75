package poet

import "github.com/teranos/poet/errors"

// FieldSpec is a field declaration.
type FieldSpec struct {
	Type        TypeName
	Name        string
	Javadoc     CodeBlock
	Annotations []AnnotationSpec
	Initializer CodeBlock
	modifiers   modifierSet
}

// HasModifier reports whether m was declared on the field.
func (f FieldSpec) HasModifier(m Modifier) bool { return f.modifiers[m] }

// Modifiers returns the declared modifiers in canonical order.
func (f FieldSpec) Modifiers() []Modifier { return f.modifiers.sorted() }

func (f FieldSpec) emit(w *CodeWriter, implicit modifierSet) {
	w.emitJavadoc(f.Javadoc)
	w.emitAnnotations(f.Annotations, false)
	w.emitModifiers(f.modifiers, implicit)
	w.emit("$T $L", f.Type, f.Name)
	if !f.Initializer.IsEmpty() {
		w.emitAndIndent(" = ")
		w.emitCode(f.Initializer)
	}
	w.emitAndIndent(";\n")
}

// FieldBuilder accumulates a FieldSpec.
type FieldBuilder struct {
	spec    FieldSpec
	javadoc *CodeBlockBuilder
	init    *CodeBlockBuilder
	err     error
}

// NewField starts a field of type t.
func NewField(t TypeName, name string, modifiers ...Modifier) *FieldBuilder {
	b := &FieldBuilder{
		spec:    FieldSpec{Type: t, Name: name, modifiers: newModifierSet(modifiers...)},
		javadoc: NewCodeBlockBuilder(),
		init:    NewCodeBlockBuilder(),
	}
	switch {
	case t == nil:
		b.err = errors.NewConfigurationError("field %s has no type", name)
	case !IsIdentifier(name):
		b.err = errors.NewConfigurationError("invalid field name %q", name)
	}
	return b
}

// AddJavadoc appends to the field's javadoc.
func (b *FieldBuilder) AddJavadoc(format string, args ...interface{}) *FieldBuilder {
	b.javadoc.Add(format, args...)
	return b
}

// AddAnnotation appends an annotation.
func (b *FieldBuilder) AddAnnotation(a AnnotationSpec) *FieldBuilder {
	b.spec.Annotations = append(b.spec.Annotations, a)
	return b
}

// AddModifiers adds declaration modifiers.
func (b *FieldBuilder) AddModifiers(modifiers ...Modifier) *FieldBuilder {
	for _, m := range modifiers {
		b.spec.modifiers[m] = true
	}
	return b
}

// Initializer sets the initializer expression. It may be set once.
func (b *FieldBuilder) Initializer(format string, args ...interface{}) *FieldBuilder {
	if !b.init.IsEmpty() && b.err == nil {
		b.err = errors.NewConfigurationError("initializer of %s was already set", b.spec.Name)
	}
	b.init.Add(format, args...)
	return b
}

// Build returns the field or the first error recorded.
func (b *FieldBuilder) Build() (FieldSpec, error) {
	if b.err != nil {
		return FieldSpec{}, b.err
	}
	javadoc, err := b.javadoc.Build()
	if err != nil {
		return FieldSpec{}, err
	}
	init, err := b.init.Build()
	if err != nil {
		return FieldSpec{}, err
	}
	spec := b.spec
	spec.Javadoc = javadoc
	spec.Initializer = init
	spec.Annotations = append([]AnnotationSpec(nil), b.spec.Annotations...)
	spec.modifiers = newModifierSet(b.spec.modifiers.sorted()...)
	return spec, nil
}
