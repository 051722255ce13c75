package poet

import "github.com/teranos/poet/errors"

const constructorName = "<init>"

// MethodSpec is a method or constructor declaration.
type MethodSpec struct {
	Name          string
	Javadoc       CodeBlock
	Annotations   []AnnotationSpec
	TypeVariables []TypeVariableName
	ReturnType    TypeName
	Parameters    []ParameterSpec
	Varargs       bool
	Exceptions    []TypeName
	Code          CodeBlock
	DefaultValue  CodeBlock
	modifiers     modifierSet
}

// IsConstructor reports whether m declares a constructor.
func (m MethodSpec) IsConstructor() bool { return m.Name == constructorName }

// HasModifier reports whether mod was declared on the method.
func (m MethodSpec) HasModifier(mod Modifier) bool { return m.modifiers[mod] }

// Modifiers returns the declared modifiers in canonical order.
func (m MethodSpec) Modifiers() []Modifier { return m.modifiers.sorted() }

func (m MethodSpec) emit(w *CodeWriter, enclosingName string, implicit modifierSet) {
	w.emitJavadoc(m.Javadoc)
	w.emitAnnotations(m.Annotations, false)
	w.emitModifiers(m.modifiers, implicit)

	if len(m.TypeVariables) > 0 {
		w.emitTypeVariables(m.TypeVariables)
		w.emitAndIndent(" ")
	}
	w.pushTypeVariables(m.TypeVariables)
	defer w.popTypeVariables()

	if m.IsConstructor() {
		w.emitAndIndent(enclosingName + "(")
	} else {
		w.emit("$T $L(", m.ReturnType, m.Name)
	}
	for i, p := range m.Parameters {
		if i > 0 {
			w.emitAndIndent(", ")
		}
		p.emit(w, m.Varargs && i == len(m.Parameters)-1)
	}
	w.emitAndIndent(")")

	if !m.DefaultValue.IsEmpty() {
		w.emitAndIndent(" default ")
		w.emitCode(m.DefaultValue)
	}

	for i, e := range m.Exceptions {
		if i == 0 {
			w.emitAndIndent(" throws ")
		} else {
			w.emitAndIndent(", ")
		}
		e.emit(w)
	}

	switch {
	case m.HasModifier(Abstract):
		w.emitAndIndent(";\n")
	case m.HasModifier(Native):
		w.emitCode(m.Code)
		w.emitAndIndent(";\n")
	default:
		w.emitAndIndent(" {\n")
		w.indentBy(1)
		w.emitCodeLines(m.Code)
		w.unindentBy(1)
		w.emitAndIndent("}\n")
	}
}

// MethodBuilder accumulates a MethodSpec.
type MethodBuilder struct {
	spec    MethodSpec
	javadoc *CodeBlockBuilder
	code    *CodeBlockBuilder
	def     *CodeBlockBuilder
	err     error
}

// NewMethod starts a method returning void.
func NewMethod(name string) *MethodBuilder {
	b := newMethodBuilder(name)
	b.spec.ReturnType = Void
	if !IsIdentifier(name) {
		b.err = errors.NewConfigurationError("invalid method name %q", name)
	}
	return b
}

// NewConstructor starts a constructor.
func NewConstructor() *MethodBuilder {
	return newMethodBuilder(constructorName)
}

func newMethodBuilder(name string) *MethodBuilder {
	return &MethodBuilder{
		spec:    MethodSpec{Name: name, modifiers: newModifierSet()},
		javadoc: NewCodeBlockBuilder(),
		code:    NewCodeBlockBuilder(),
		def:     NewCodeBlockBuilder(),
	}
}

func (b *MethodBuilder) fail(err error) *MethodBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// AddJavadoc appends to the method's javadoc.
func (b *MethodBuilder) AddJavadoc(format string, args ...interface{}) *MethodBuilder {
	b.javadoc.Add(format, args...)
	return b
}

// AddAnnotation appends an annotation.
func (b *MethodBuilder) AddAnnotation(a AnnotationSpec) *MethodBuilder {
	b.spec.Annotations = append(b.spec.Annotations, a)
	return b
}

// AddModifiers adds declaration modifiers.
func (b *MethodBuilder) AddModifiers(modifiers ...Modifier) *MethodBuilder {
	for _, m := range modifiers {
		b.spec.modifiers[m] = true
	}
	return b
}

// AddTypeVariable declares a method type parameter.
func (b *MethodBuilder) AddTypeVariable(v TypeVariableName) *MethodBuilder {
	b.spec.TypeVariables = append(b.spec.TypeVariables, v)
	return b
}

// Returns sets the return type.
func (b *MethodBuilder) Returns(t TypeName) *MethodBuilder {
	if b.spec.IsConstructor() {
		return b.fail(errors.NewConfigurationError("constructors have no return type"))
	}
	if t == nil {
		return b.fail(errors.NewConfigurationError("method %s has a nil return type", b.spec.Name))
	}
	b.spec.ReturnType = t
	return b
}

// AddParameter appends a parameter.
func (b *MethodBuilder) AddParameter(p ParameterSpec) *MethodBuilder {
	b.spec.Parameters = append(b.spec.Parameters, p)
	return b
}

// AddNewParameter builds and appends a parameter.
func (b *MethodBuilder) AddNewParameter(t TypeName, name string, modifiers ...Modifier) *MethodBuilder {
	p, err := NewParameter(t, name, modifiers...)
	if err != nil {
		return b.fail(err)
	}
	return b.AddParameter(p)
}

// Varargs marks the last parameter as variadic.
func (b *MethodBuilder) Varargs(varargs bool) *MethodBuilder {
	b.spec.Varargs = varargs
	return b
}

// AddException declares a thrown type.
func (b *MethodBuilder) AddException(t TypeName) *MethodBuilder {
	b.spec.Exceptions = append(b.spec.Exceptions, t)
	return b
}

// AddCode appends raw code to the body.
func (b *MethodBuilder) AddCode(format string, args ...interface{}) *MethodBuilder {
	b.code.Add(format, args...)
	return b
}

// AddCodeBlock appends a prepared block to the body.
func (b *MethodBuilder) AddCodeBlock(c CodeBlock) *MethodBuilder {
	b.code.AddCode(c)
	return b
}

// AddStatement appends a statement to the body.
func (b *MethodBuilder) AddStatement(format string, args ...interface{}) *MethodBuilder {
	b.code.AddStatement(format, args...)
	return b
}

// AddComment appends a line comment to the body.
func (b *MethodBuilder) AddComment(format string, args ...interface{}) *MethodBuilder {
	b.code.AddComment(format, args...)
	return b
}

// BeginControlFlow opens a block in the body.
func (b *MethodBuilder) BeginControlFlow(controlFlow string, args ...interface{}) *MethodBuilder {
	b.code.BeginControlFlow(controlFlow, args...)
	return b
}

// NextControlFlow continues a block in the body.
func (b *MethodBuilder) NextControlFlow(controlFlow string, args ...interface{}) *MethodBuilder {
	b.code.NextControlFlow(controlFlow, args...)
	return b
}

// EndControlFlow closes a block in the body.
func (b *MethodBuilder) EndControlFlow() *MethodBuilder {
	b.code.EndControlFlow()
	return b
}

// DefaultValue sets the default of an annotation type element.
func (b *MethodBuilder) DefaultValue(format string, args ...interface{}) *MethodBuilder {
	b.def.Add(format, args...)
	return b
}

// Build returns the method or the first error recorded.
func (b *MethodBuilder) Build() (MethodSpec, error) {
	if b.err != nil {
		return MethodSpec{}, b.err
	}
	spec := b.spec
	var err error
	if spec.Javadoc, err = b.javadoc.Build(); err != nil {
		return MethodSpec{}, err
	}
	if spec.Code, err = b.code.Build(); err != nil {
		return MethodSpec{}, err
	}
	if spec.DefaultValue, err = b.def.Build(); err != nil {
		return MethodSpec{}, err
	}

	if spec.Varargs {
		if len(spec.Parameters) == 0 {
			return MethodSpec{}, errors.NewConfigurationError("varargs method %s has no parameters", spec.Name)
		}
		if _, ok := spec.Parameters[len(spec.Parameters)-1].Type.(ArrayTypeName); !ok {
			return MethodSpec{}, errors.NewConfigurationError("last parameter of varargs method %s must be an array", spec.Name)
		}
	}
	if spec.modifiers[Abstract] && !spec.Code.IsEmpty() {
		return MethodSpec{}, errors.NewConfigurationError("abstract method %s cannot have code", spec.Name)
	}
	if spec.IsConstructor() && spec.modifiers[Abstract] {
		return MethodSpec{}, errors.NewConfigurationError("constructors cannot be abstract")
	}

	spec.Annotations = append([]AnnotationSpec(nil), b.spec.Annotations...)
	spec.TypeVariables = append([]TypeVariableName(nil), b.spec.TypeVariables...)
	spec.Parameters = append([]ParameterSpec(nil), b.spec.Parameters...)
	spec.Exceptions = append([]TypeName(nil), b.spec.Exceptions...)
	spec.modifiers = newModifierSet(b.spec.modifiers.sorted()...)
	return spec, nil
}
