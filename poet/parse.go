package poet

import (
	"strings"
	"unicode"

	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/imports"
)

// builtinSimpleNames are java.lang classes commonly written unqualified.
var builtinSimpleNames = map[string]bool{
	"AutoCloseable": true, "Boolean": true, "Byte": true, "Character": true,
	"CharSequence": true, "Class": true, "Comparable": true, "Deprecated": true,
	"Double": true, "Enum": true, "Error": true, "Exception": true, "Float": true,
	"FunctionalInterface": true, "IllegalArgumentException": true,
	"IllegalStateException": true, "Integer": true, "Iterable": true, "Long": true,
	"Math": true, "NullPointerException": true, "Number": true, "Object": true,
	"Override": true, "Runnable": true, "RuntimeException": true, "SafeVarargs": true,
	"Short": true, "String": true, "StringBuilder": true, "SuppressWarnings": true,
	"System": true, "Thread": true, "Throwable": true,
	"UnsupportedOperationException": true, "Void": true,
}

// ParseTypeName reads a Java type expression such as "int", "String[]",
// "java.util.Map<demo.a.Alpha, ? extends demo.b.Beta>" or "T".
//
// Unqualified names listed in typeVariables parse as type variables.
// Other unqualified names resolve to java.lang when they name a well-known
// java.lang class, and to the default package otherwise.
func ParseTypeName(s string, typeVariables ...string) (TypeName, error) {
	p := &typeParser{src: s, vars: make(map[string]bool, len(typeVariables))}
	for _, v := range typeVariables {
		p.vars[v] = true
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.fail("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

// ParseClassName reads a class reference, applying the same resolution rules
// as ParseTypeName.
func ParseClassName(s string) (ClassName, error) {
	t, err := ParseTypeName(s)
	if err != nil {
		return ClassName{}, err
	}
	c, ok := t.(ClassName)
	if !ok {
		return ClassName{}, errors.NewConfigurationError("%q is not a class name", s)
	}
	return c, nil
}

type typeParser struct {
	src  string
	pos  int
	vars map[string]bool
}

func (p *typeParser) fail(format string, args ...interface{}) error {
	return errors.WithDetailf(errors.NewConfigurationError(format, args...), "parsing type %q", p.src)
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) peek(tok string) bool {
	p.skipSpace()
	return strings.HasPrefix(p.src[p.pos:], tok)
}

func (p *typeParser) accept(tok string) bool {
	if p.peek(tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *typeParser) dottedName() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r == '.' || r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			p.pos++
			continue
		}
		break
	}
	return strings.TrimSuffix(p.src[start:p.pos], ".")
}

func (p *typeParser) parseType() (TypeName, error) {
	if p.accept("?") {
		switch {
		case p.accept("extends "):
			bound, err := p.parseType()
			if err != nil {
				return nil, err
			}
			return SubtypeOf(bound), nil
		case p.accept("super "):
			bound, err := p.parseType()
			if err != nil {
				return nil, err
			}
			return SupertypeOf(bound), nil
		}
		return SubtypeOf(ObjectClass), nil
	}

	name := p.dottedName()
	if name == "" {
		return nil, p.fail("expected a type at offset %d", p.pos)
	}

	t, err := p.named(name)
	if err != nil {
		return nil, err
	}
	for p.accept("[]") {
		t = ArrayOf(t)
	}
	return t, nil
}

func (p *typeParser) named(name string) (TypeName, error) {
	if prim, ok := primitives[name]; ok {
		return prim, nil
	}
	if p.vars[name] {
		return TypeVariableName{Name: name}, nil
	}
	c, err := p.className(name)
	if err != nil {
		return nil, err
	}
	if !p.accept("<") {
		return c, nil
	}
	var args []TypeName
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.accept(">") {
			break
		}
		if !p.accept(",") {
			return nil, p.fail("expected ',' or '>' at offset %d", p.pos)
		}
	}
	return ParameterizedOf(c, args...)
}

func (p *typeParser) className(name string) (ClassName, error) {
	if !strings.Contains(name, ".") {
		if builtinSimpleNames[name] {
			return NewClassName(imports.BuiltinNamespace, name)
		}
		return NewClassName("", name)
	}
	return BestGuess(name)
}
