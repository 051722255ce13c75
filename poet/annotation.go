package poet

import (
	"strings"

	"github.com/teranos/poet/errors"
)

type annotationMember struct {
	name   string
	values []CodeBlock
}

// AnnotationSpec is an annotation use such as @Override or @Named("x").
type AnnotationSpec struct {
	Type    ClassName
	members []annotationMember
}

// NewAnnotation returns a member-less annotation of type t.
func NewAnnotation(t ClassName) AnnotationSpec {
	return AnnotationSpec{Type: t}
}

// AnnotationBuilder accumulates annotation members in insertion order.
type AnnotationBuilder struct {
	spec AnnotationSpec
	err  error
}

// NewAnnotationBuilder starts an annotation of type t.
func NewAnnotationBuilder(t ClassName) *AnnotationBuilder {
	return &AnnotationBuilder{spec: AnnotationSpec{Type: t}}
}

// AddMember appends a value to member name. Repeated calls for the same name
// produce an array value.
func (b *AnnotationBuilder) AddMember(name, format string, args ...interface{}) *AnnotationBuilder {
	if b.err != nil {
		return b
	}
	if !IsIdentifier(name) {
		b.err = errors.NewConfigurationError("invalid annotation member name %q", name)
		return b
	}
	value, err := NewCodeBlock(format, args...)
	if err != nil {
		b.err = err
		return b
	}
	for i := range b.spec.members {
		if b.spec.members[i].name == name {
			b.spec.members[i].values = append(b.spec.members[i].values, value)
			return b
		}
	}
	b.spec.members = append(b.spec.members, annotationMember{name: name, values: []CodeBlock{value}})
	return b
}

// Build returns the annotation or the first error recorded.
func (b *AnnotationBuilder) Build() (AnnotationSpec, error) {
	if b.err != nil {
		return AnnotationSpec{}, b.err
	}
	spec := b.spec
	spec.members = append([]annotationMember(nil), b.spec.members...)
	return spec, nil
}

func (a AnnotationSpec) emit(w *CodeWriter, inline bool) {
	whitespace, separator := "\n", ",\n"
	if inline {
		whitespace, separator = "", ", "
	}

	switch {
	case len(a.members) == 0:
		w.emit("@$T", a.Type)
	case len(a.members) == 1 && a.members[0].name == "value":
		w.emit("@$T(", a.Type)
		emitAnnotationValues(w, whitespace, separator, a.members[0].values)
		w.emitAndIndent(")")
	default:
		w.emit("@$T("+whitespace, a.Type)
		w.indentBy(2)
		for i, m := range a.members {
			w.emitAndIndent(m.name + " = ")
			emitAnnotationValues(w, whitespace, separator, m.values)
			if i < len(a.members)-1 {
				w.emitAndIndent(separator)
			}
		}
		w.unindentBy(2)
		w.emitAndIndent(whitespace + ")")
	}
}

func emitAnnotationValues(w *CodeWriter, whitespace, separator string, values []CodeBlock) {
	if len(values) == 1 {
		w.indentBy(2)
		w.emitCode(values[0])
		w.unindentBy(2)
		return
	}
	w.emitAndIndent("{" + whitespace)
	w.indentBy(2)
	for i, v := range values {
		if i > 0 {
			w.emitAndIndent(separator)
		}
		w.emitCode(v)
	}
	w.unindentBy(2)
	w.emitAndIndent(whitespace + "}")
}

func (a AnnotationSpec) String() string {
	var b strings.Builder
	w := newCodeWriter(&b, "  ", nil)
	a.emit(w, true)
	return b.String()
}
