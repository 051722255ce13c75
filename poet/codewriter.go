package poet

import (
	"io"
	"strings"

	"github.com/teranos/poet/imports"
)

// CodeWriter emits Java source for a declaration tree while tracking
// indentation, comment prefixes, and how each class reference is spelled.
//
// A CodeWriter runs in one of three modes. While collecting, it records every
// class the body could import. While rendering with a plan, it writes short
// names for everything the plan makes available. Without either, every class
// outside the current package is written fully qualified.
type CodeWriter struct {
	out io.Writer
	err error

	indent          string
	indentLevel     int
	javadoc         bool
	comment         bool
	trailingNewline bool

	packages      []string
	typeStack     []*TypeSpec
	typeVariables []map[string]bool

	staticImports          map[string]bool
	staticImportClassNames map[string]bool

	plan      *imports.Plan
	collector *referenceCollector
}

func newCodeWriter(out io.Writer, indent string, staticImports []string) *CodeWriter {
	w := &CodeWriter{
		out:                    out,
		indent:                 indent,
		trailingNewline:        true,
		staticImports:          make(map[string]bool, len(staticImports)),
		staticImportClassNames: make(map[string]bool, len(staticImports)),
	}
	for _, s := range staticImports {
		w.staticImports[s] = true
		if dot := strings.LastIndexByte(s, '.'); dot > 0 {
			w.staticImportClassNames[s[:dot]] = true
		}
	}
	return w
}

// newCollectingWriter returns a writer for the dry pass.
func newCollectingWriter(out io.Writer, indent string, staticImports []string) *CodeWriter {
	w := newCodeWriter(out, indent, staticImports)
	w.collector = newReferenceCollector()
	return w
}

// newPlannedWriter returns a writer for the final pass.
func newPlannedWriter(out io.Writer, indent string, staticImports []string, plan *imports.Plan) *CodeWriter {
	w := newCodeWriter(out, indent, staticImports)
	w.plan = plan
	return w
}

// Err returns the first write error.
func (w *CodeWriter) Err() error { return w.err }

func (w *CodeWriter) write(s string) {
	if w.err != nil || s == "" {
		return
	}
	_, w.err = io.WriteString(w.out, s)
}

func (w *CodeWriter) pushPackage(name string) { w.packages = append(w.packages, name) }

func (w *CodeWriter) popPackage() { w.packages = w.packages[:len(w.packages)-1] }

func (w *CodeWriter) currentPackage() string {
	if len(w.packages) == 0 {
		return ""
	}
	return w.packages[len(w.packages)-1]
}

func (w *CodeWriter) pushType(t *TypeSpec) { w.typeStack = append(w.typeStack, t) }

func (w *CodeWriter) popType() { w.typeStack = w.typeStack[:len(w.typeStack)-1] }

func (w *CodeWriter) pushTypeVariables(vars []TypeVariableName) {
	names := make(map[string]bool, len(vars))
	for _, v := range vars {
		names[v.Name] = true
	}
	w.typeVariables = append(w.typeVariables, names)
}

func (w *CodeWriter) popTypeVariables() { w.typeVariables = w.typeVariables[:len(w.typeVariables)-1] }

func (w *CodeWriter) maskedByTypeVariable(simple string) bool {
	for _, vars := range w.typeVariables {
		if vars[simple] {
			return true
		}
	}
	return false
}

func (w *CodeWriter) indentBy(levels int) { w.indentLevel += levels }

func (w *CodeWriter) unindentBy(levels int) {
	if w.indentLevel-levels < 0 {
		w.indentLevel = 0
		return
	}
	w.indentLevel -= levels
}

// emit renders a format string fixed at compile time.
func (w *CodeWriter) emit(format string, args ...interface{}) {
	w.emitCode(MustCodeBlock(format, args...))
}

func (w *CodeWriter) emitCode(code CodeBlock) {
	var deferred *ClassName
	a := 0

	for i, part := range code.parts {
		switch part {
		case "$L":
			w.emitLiteral(code.args[a])
			a++
		case "$N":
			w.emitAndIndent(code.args[a].(string))
			a++
		case "$S":
			if s, ok := code.args[a].(string); ok {
				w.emitAndIndent(javaStringLiteral(s))
			} else {
				w.emitAndIndent("null")
			}
			a++
		case "$T":
			t := code.args[a].(TypeName)
			a++
			if c, ok := t.(ClassName); ok && i+1 < len(code.parts) &&
				!strings.HasPrefix(code.parts[i+1], "$") && w.staticImportClassNames[c.CanonicalName()] {
				deferred = &c
				continue
			}
			t.emit(w)
		case "$$":
			w.emitAndIndent("$")
		case "$>":
			w.indentBy(1)
		case "$<":
			w.unindentBy(1)
		default:
			if deferred != nil {
				if strings.HasPrefix(part, ".") && w.emitStaticImportMember(deferred.CanonicalName(), part) {
					deferred = nil
					continue
				}
				deferred.emit(w)
				deferred = nil
			}
			w.emitAndIndent(part)
		}
	}
}

// emitCodeLines emits code and ends it with a newline if it didn't have one.
func (w *CodeWriter) emitCodeLines(code CodeBlock) {
	w.emitCode(code)
	if !w.trailingNewline {
		w.emitAndIndent("\n")
	}
}

func (w *CodeWriter) emitLiteral(v interface{}) {
	switch lit := v.(type) {
	case CodeBlock:
		w.emitCode(lit)
	case *TypeSpec:
		lit.emit(w, nil)
	case AnnotationSpec:
		lit.emit(w, true)
	case nil:
		w.emitAndIndent("null")
	default:
		w.emitAndIndent(literalString(v))
	}
}

// emitStaticImportMember writes ".member..." without the class qualifier when
// the member is statically imported.
func (w *CodeWriter) emitStaticImportMember(canonical, part string) bool {
	rest := part[1:]
	member := leadingIdentifier(rest)
	if member == "" {
		return false
	}
	if !w.staticImports[canonical+"."+member] && !w.staticImports[canonical+".*"] {
		return false
	}
	w.emitAndIndent(rest)
	return true
}

func leadingIdentifier(s string) string {
	for i, r := range s {
		if r == '_' || r == '$' || isLetter(r) || (i > 0 && isDigit(r)) {
			continue
		}
		return s[:i]
	}
	return s
}

func (w *CodeWriter) emitComment(code CodeBlock) {
	w.trailingNewline = true
	w.comment = true
	w.emitCode(code)
	w.emitAndIndent("\n")
	w.comment = false
}

func (w *CodeWriter) emitJavadoc(code CodeBlock) {
	if code.IsEmpty() {
		return
	}
	w.emitAndIndent("/**\n")
	w.javadoc = true
	w.emitCodeLines(code)
	w.javadoc = false
	w.emitAndIndent(" */\n")
}

func (w *CodeWriter) emitAnnotations(annotations []AnnotationSpec, inline bool) {
	for _, a := range annotations {
		a.emit(w, inline)
		if inline {
			w.emitAndIndent(" ")
		} else {
			w.emitAndIndent("\n")
		}
	}
}

// emitModifiers writes modifiers in canonical order, leaving out implicit ones.
func (w *CodeWriter) emitModifiers(modifiers, implicit modifierSet) {
	for _, m := range modifiers.sorted() {
		if implicit[m] {
			continue
		}
		w.emitAndIndent(string(m))
		w.emitAndIndent(" ")
	}
}

func (w *CodeWriter) emitTypeVariables(vars []TypeVariableName) {
	if len(vars) == 0 {
		return
	}
	w.emitAndIndent("<")
	for i, v := range vars {
		if i > 0 {
			w.emitAndIndent(", ")
		}
		w.emitAndIndent(v.Name)
		for j, b := range v.Bounds {
			if j == 0 {
				w.emitAndIndent(" extends ")
			} else {
				w.emitAndIndent(" & ")
			}
			b.emit(w)
		}
	}
	w.emitAndIndent(">")
}

// lookupName returns the shortest spelling of c that resolves to c at the
// current position, and records c as a candidate import while collecting.
func (w *CodeWriter) lookupName(c ClassName) string {
	if w.maskedByTypeVariable(c.TopLevelClassName().SimpleName()) {
		return c.CanonicalName()
	}

	resolvedOther := false
	for cur, ok := c, true; ok; cur, ok = cur.EnclosingClassName() {
		resolved, found := w.resolve(cur.SimpleName())
		if !found {
			continue
		}
		if resolved.Equal(cur) {
			return strings.Join(c.simpleNames[len(cur.simpleNames)-1:], ".")
		}
		resolvedOther = true
	}
	if resolvedOther {
		return c.CanonicalName()
	}

	if c.packageName == w.currentPackage() {
		if w.collector != nil {
			w.collector.reference(c.TopLevelClassName().SimpleName())
		}
		return strings.Join(c.simpleNames, ".")
	}

	if w.collector != nil && !w.javadoc {
		w.collector.importable(c)
	}
	return c.CanonicalName()
}

// resolve finds the class a simple name denotes at the current position:
// a type nested in an enclosing declaration, the top-level declaration, or an
// imported class.
func (w *CodeWriter) resolve(simple string) (ClassName, bool) {
	for i := len(w.typeStack) - 1; i >= 0; i-- {
		if w.typeStack[i].declaresNested(simple) {
			return w.stackClassName(i, simple), true
		}
	}
	if len(w.typeStack) > 0 && w.typeStack[0].Name == simple {
		return ClassName{packageName: w.currentPackage(), simpleNames: []string{simple}}, true
	}
	if n, ok := w.plan.Lookup(simple); ok {
		return ClassName{packageName: n.Namespace, simpleNames: n.Nested}, true
	}
	return ClassName{}, false
}

func (w *CodeWriter) stackClassName(depth int, simple string) ClassName {
	names := make([]string, 0, depth+2)
	for i := 0; i <= depth; i++ {
		names = append(names, w.typeStack[i].Name)
	}
	return ClassName{packageName: w.currentPackage(), simpleNames: append(names, simple)}
}

// emitAndIndent writes s, inserting indentation and comment prefixes at the
// start of each non-empty line.
func (w *CodeWriter) emitAndIndent(s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			if (w.javadoc || w.comment) && w.trailingNewline {
				w.emitIndentation()
				if w.javadoc {
					w.write(" *")
				} else {
					w.write("//")
				}
			}
			w.write("\n")
			w.trailingNewline = true
		}
		if line == "" {
			continue
		}
		if w.trailingNewline {
			w.emitIndentation()
			if w.javadoc {
				w.write(" * ")
			} else if w.comment {
				w.write("// ")
			}
		}
		w.write(line)
		w.trailingNewline = false
	}
}

func (w *CodeWriter) emitIndentation() {
	for i := 0; i < w.indentLevel; i++ {
		w.write(w.indent)
	}
}
