package poet

import (
	"strings"

	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/imports"
)

// TypeName is any Java type that can appear in a declaration or a $T
// placeholder.
type TypeName interface {
	emit(w *CodeWriter)
	String() string
}

func typeString(t TypeName) string {
	var b strings.Builder
	w := newCodeWriter(&b, "  ", nil)
	t.emit(w)
	return b.String()
}

// PrimitiveType is one of the Java primitive types or void.
type PrimitiveType struct {
	keyword string
}

func (p PrimitiveType) emit(w *CodeWriter) { w.emitAndIndent(p.keyword) }
func (p PrimitiveType) String() string   { return p.keyword }

// Primitive types.
var (
	Void    = PrimitiveType{"void"}
	Boolean = PrimitiveType{"boolean"}
	Byte    = PrimitiveType{"byte"}
	Short   = PrimitiveType{"short"}
	Int     = PrimitiveType{"int"}
	Long    = PrimitiveType{"long"}
	Char    = PrimitiveType{"char"}
	Float   = PrimitiveType{"float"}
	Double  = PrimitiveType{"double"}
)

var primitives = map[string]PrimitiveType{
	"void": Void, "boolean": Boolean, "byte": Byte, "short": Short, "int": Int,
	"long": Long, "char": Char, "float": Float, "double": Double,
}

// ClassName is a fully qualified class reference, possibly nested.
type ClassName struct {
	packageName string
	simpleNames []string
}

// Frequently referenced built-in classes.
var (
	ObjectClass = ClassName{packageName: imports.BuiltinNamespace, simpleNames: []string{"Object"}}
	StringClass = ClassName{packageName: imports.BuiltinNamespace, simpleNames: []string{"String"}}
)

// NewClassName returns the class packageName.simpleName, nested further by
// each of nested.
func NewClassName(packageName, simpleName string, nested ...string) (ClassName, error) {
	if !IsPackageName(packageName) {
		return ClassName{}, errors.NewConfigurationError("invalid package name %q", packageName)
	}
	names := append([]string{simpleName}, nested...)
	for _, n := range names {
		if !IsIdentifier(n) {
			return ClassName{}, errors.NewConfigurationError("invalid class name %q", n)
		}
	}
	return ClassName{packageName: packageName, simpleNames: names}, nil
}

// MustClassName is like NewClassName but panics on invalid input. Use it for
// names known at compile time.
func MustClassName(packageName, simpleName string, nested ...string) ClassName {
	c, err := NewClassName(packageName, simpleName, nested...)
	if err != nil {
		panic(err)
	}
	return c
}

// BestGuess splits a canonical name like "java.util.Map.Entry" into package
// and class parts, treating lowercase leading segments as the package.
func BestGuess(canonical string) (ClassName, error) {
	parts := strings.Split(canonical, ".")
	i := 0
	for i < len(parts) && parts[i] != "" && startsLower(parts[i]) {
		i++
	}
	if i == len(parts) {
		return ClassName{}, errors.NewConfigurationError("couldn't make a guess for %s", canonical)
	}
	for _, p := range parts[i:] {
		if p == "" || !startsUpper(p) {
			return ClassName{}, errors.NewConfigurationError("couldn't make a guess for %s", canonical)
		}
	}
	return NewClassName(strings.Join(parts[:i], "."), parts[i], parts[i+1:]...)
}

// PackageName returns the package, or "" for the default package.
func (c ClassName) PackageName() string { return c.packageName }

// SimpleName returns the innermost simple name.
func (c ClassName) SimpleName() string { return c.simpleNames[len(c.simpleNames)-1] }

// SimpleNames returns the nesting chain, outermost first.
func (c ClassName) SimpleNames() []string { return append([]string(nil), c.simpleNames...) }

// EnclosingClassName returns the class this one is nested in.
func (c ClassName) EnclosingClassName() (ClassName, bool) {
	if len(c.simpleNames) < 2 {
		return ClassName{}, false
	}
	return ClassName{packageName: c.packageName, simpleNames: c.simpleNames[:len(c.simpleNames)-1]}, true
}

// TopLevelClassName returns the outermost class.
func (c ClassName) TopLevelClassName() ClassName {
	return ClassName{packageName: c.packageName, simpleNames: c.simpleNames[:1]}
}

// NestedClass returns a class nested inside c.
func (c ClassName) NestedClass(name string) (ClassName, error) {
	if !IsIdentifier(name) {
		return ClassName{}, errors.NewConfigurationError("invalid class name %q", name)
	}
	return ClassName{packageName: c.packageName, simpleNames: append(c.SimpleNames(), name)}, nil
}

// CanonicalName returns the dotted name, e.g. "java.util.Map.Entry".
func (c ClassName) CanonicalName() string {
	return c.Qualified().Canonical()
}

// Qualified converts c to the import planner's name form.
func (c ClassName) Qualified() imports.Name {
	return imports.NewName(c.packageName, c.simpleNames...)
}

// Equal compares by canonical name.
func (c ClassName) Equal(other ClassName) bool {
	return c.CanonicalName() == other.CanonicalName()
}

func (c ClassName) String() string { return c.CanonicalName() }

func (c ClassName) emit(w *CodeWriter) { w.emitAndIndent(w.lookupName(c)) }

// ArrayTypeName is an array of a component type.
type ArrayTypeName struct {
	Component TypeName
}

// ArrayOf returns component[].
func ArrayOf(component TypeName) ArrayTypeName {
	return ArrayTypeName{Component: component}
}

func (a ArrayTypeName) emit(w *CodeWriter) {
	a.Component.emit(w)
	w.emitAndIndent("[]")
}

func (a ArrayTypeName) String() string { return typeString(a) }

// ParameterizedTypeName is a generic class applied to type arguments.
type ParameterizedTypeName struct {
	Raw       ClassName
	Arguments []TypeName
}

// ParameterizedOf returns raw<args...>.
func ParameterizedOf(raw ClassName, args ...TypeName) (ParameterizedTypeName, error) {
	if len(args) == 0 {
		return ParameterizedTypeName{}, errors.NewConfigurationError("no type arguments for %s", raw)
	}
	for _, a := range args {
		if p, ok := a.(PrimitiveType); ok {
			return ParameterizedTypeName{}, errors.NewConfigurationError("invalid type argument %s for %s", p, raw)
		}
	}
	return ParameterizedTypeName{Raw: raw, Arguments: args}, nil
}

func (p ParameterizedTypeName) emit(w *CodeWriter) {
	p.Raw.emit(w)
	w.emitAndIndent("<")
	for i, a := range p.Arguments {
		if i > 0 {
			w.emitAndIndent(", ")
		}
		a.emit(w)
	}
	w.emitAndIndent(">")
}

func (p ParameterizedTypeName) String() string { return typeString(p) }

// WildcardTypeName is "?", "? extends T", or "? super T".
type WildcardTypeName struct {
	Upper TypeName
	Lower TypeName
}

// SubtypeOf returns "? extends upper".
func SubtypeOf(upper TypeName) WildcardTypeName { return WildcardTypeName{Upper: upper} }

// SupertypeOf returns "? super lower".
func SupertypeOf(lower TypeName) WildcardTypeName { return WildcardTypeName{Lower: lower} }

func (wc WildcardTypeName) emit(w *CodeWriter) {
	switch {
	case wc.Lower != nil:
		w.emitAndIndent("? super ")
		wc.Lower.emit(w)
	case wc.Upper != nil && !isObject(wc.Upper):
		w.emitAndIndent("? extends ")
		wc.Upper.emit(w)
	default:
		w.emitAndIndent("?")
	}
}

func (wc WildcardTypeName) String() string { return typeString(wc) }

// TypeVariableName is a type parameter such as T, optionally bounded.
type TypeVariableName struct {
	Name   string
	Bounds []TypeName
}

// TypeVariable returns a type variable with optional bounds.
func TypeVariable(name string, bounds ...TypeName) (TypeVariableName, error) {
	if !IsIdentifier(name) {
		return TypeVariableName{}, errors.NewConfigurationError("invalid type variable %q", name)
	}
	var kept []TypeName
	for _, b := range bounds {
		if !isObject(b) {
			kept = append(kept, b)
		}
	}
	return TypeVariableName{Name: name, Bounds: kept}, nil
}

func (v TypeVariableName) emit(w *CodeWriter) { w.emitAndIndent(v.Name) }
func (v TypeVariableName) String() string   { return v.Name }

func isObject(t TypeName) bool {
	c, ok := t.(ClassName)
	return ok && c.Equal(ObjectClass)
}

func startsLower(s string) bool {
	return s[0] >= 'a' && s[0] <= 'z'
}

func startsUpper(s string) bool {
	return (s[0] >= 'A' && s[0] <= 'Z') || s[0] == '$' || s[0] == '_'
}
