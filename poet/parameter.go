package poet

import "github.com/teranos/poet/errors"

// ParameterSpec is a method or constructor parameter.
type ParameterSpec struct {
	Type        TypeName
	Name        string
	Annotations []AnnotationSpec
	modifiers   modifierSet
}

// NewParameter returns a parameter. Only final is a legal parameter modifier.
func NewParameter(t TypeName, name string, modifiers ...Modifier) (ParameterSpec, error) {
	if t == nil {
		return ParameterSpec{}, errors.NewConfigurationError("parameter %s has no type", name)
	}
	if !IsIdentifier(name) {
		return ParameterSpec{}, errors.NewConfigurationError("invalid parameter name %q", name)
	}
	for _, m := range modifiers {
		if m != Final {
			return ParameterSpec{}, errors.NewConfigurationError("unexpected parameter modifier %s", m)
		}
	}
	return ParameterSpec{Type: t, Name: name, modifiers: newModifierSet(modifiers...)}, nil
}

// WithAnnotations returns a copy of p carrying additional annotations.
func (p ParameterSpec) WithAnnotations(annotations ...AnnotationSpec) ParameterSpec {
	out := p
	out.Annotations = append(append([]AnnotationSpec(nil), p.Annotations...), annotations...)
	return out
}

func (p ParameterSpec) emit(w *CodeWriter, varargs bool) {
	w.emitAnnotations(p.Annotations, true)
	w.emitModifiers(p.modifiers, nil)
	if arr, ok := p.Type.(ArrayTypeName); ok && varargs {
		w.emit("$T... $L", arr.Component, p.Name)
		return
	}
	w.emit("$T $L", p.Type, p.Name)
}
