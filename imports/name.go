package imports

import "strings"

// Name is a qualified name: a namespace plus the ordered simple names nested
// inside it. Names compare by their canonical text.
type Name struct {
	Namespace string
	Nested    []string
}

// NewName builds a Name. The nested slice is copied.
func NewName(namespace string, nested ...string) Name {
	return Name{Namespace: namespace, Nested: append([]string(nil), nested...)}
}

// Canonical joins the namespace and nested names with dots, e.g. "demo.a.Outer.Inner".
func (n Name) Canonical() string {
	simple := strings.Join(n.Nested, ".")
	if n.Namespace == "" {
		return simple
	}
	if simple == "" {
		return n.Namespace
	}
	return n.Namespace + "." + simple
}

// SimpleName returns the innermost simple name.
func (n Name) SimpleName() string {
	if len(n.Nested) == 0 {
		return ""
	}
	return n.Nested[len(n.Nested)-1]
}

// TopLevel returns the outermost enclosing name in the same namespace.
func (n Name) TopLevel() Name {
	if len(n.Nested) <= 1 {
		return n
	}
	return NewName(n.Namespace, n.Nested[0])
}

func (n Name) String() string {
	return n.Canonical()
}

// Compare orders names by canonical text.
func Compare(a, b Name) int {
	return strings.Compare(a.Canonical(), b.Canonical())
}

// BuiltinNamespace is implicitly visible in every Java compilation unit.
const BuiltinNamespace = "java.lang"

// Wildcard returns the wildcard import target for a namespace.
func Wildcard(namespace string) string {
	return namespace + ".*"
}
