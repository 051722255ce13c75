package poet

import (
	"fmt"
	"strings"

	"github.com/teranos/poet/errors"
)

// CodeBlock is a fragment of Java code built from a format string.
//
// Placeholders:
//
//	$L  literal, emitted as is (nested CodeBlocks and specs are emitted)
//	$S  string, emitted as a quoted Java literal; nil becomes null
//	$T  type, emitted as a short name when imported
//	$N  name of a field, method, parameter or type
//	$$  a dollar sign
//	$>  increase indentation
//	$<  decrease indentation
type CodeBlock struct {
	parts []string
	args  []interface{}
}

// NewCodeBlock builds a code block from one format string.
func NewCodeBlock(format string, args ...interface{}) (CodeBlock, error) {
	b := NewCodeBlockBuilder()
	b.Add(format, args...)
	return b.Build()
}

// MustCodeBlock is like NewCodeBlock but panics on a malformed format.
func MustCodeBlock(format string, args ...interface{}) CodeBlock {
	cb, err := NewCodeBlock(format, args...)
	if err != nil {
		panic(err)
	}
	return cb
}

// IsEmpty reports whether the block renders to nothing.
func (c CodeBlock) IsEmpty() bool { return len(c.parts) == 0 }

// ToBuilder returns a builder seeded with this block.
func (c CodeBlock) ToBuilder() *CodeBlockBuilder {
	return &CodeBlockBuilder{
		parts: append([]string(nil), c.parts...),
		args:  append([]interface{}(nil), c.args...),
	}
}

// String renders the block with every type fully qualified.
func (c CodeBlock) String() string {
	var b strings.Builder
	w := newCodeWriter(&b, "  ", nil)
	w.emitCode(c)
	return b.String()
}

// CodeBlockBuilder accumulates a CodeBlock. The first malformed call is kept
// and returned by Build; later calls are ignored.
type CodeBlockBuilder struct {
	parts []string
	args  []interface{}
	err   error
}

// NewCodeBlockBuilder returns an empty builder.
func NewCodeBlockBuilder() *CodeBlockBuilder {
	return &CodeBlockBuilder{}
}

// Add appends a formatted fragment.
func (b *CodeBlockBuilder) Add(format string, args ...interface{}) *CodeBlockBuilder {
	if b.err != nil {
		return b
	}
	parts, vals, err := parseFormat(format, args)
	if err != nil {
		b.err = err
		return b
	}
	b.parts = append(b.parts, parts...)
	b.args = append(b.args, vals...)
	return b
}

// AddCode appends another block.
func (b *CodeBlockBuilder) AddCode(c CodeBlock) *CodeBlockBuilder {
	b.parts = append(b.parts, c.parts...)
	b.args = append(b.args, c.args...)
	return b
}

// AddStatement appends format followed by ";" and a newline.
func (b *CodeBlockBuilder) AddStatement(format string, args ...interface{}) *CodeBlockBuilder {
	return b.Add(format+";\n", args...)
}

// AddComment appends a line comment.
func (b *CodeBlockBuilder) AddComment(format string, args ...interface{}) *CodeBlockBuilder {
	return b.Add("// "+format+"\n", args...)
}

// BeginControlFlow opens a block such as "if (x)" or "for (...)".
func (b *CodeBlockBuilder) BeginControlFlow(controlFlow string, args ...interface{}) *CodeBlockBuilder {
	return b.Add(controlFlow+" {\n$>", args...)
}

// NextControlFlow closes the open block and starts another, as in "else".
func (b *CodeBlockBuilder) NextControlFlow(controlFlow string, args ...interface{}) *CodeBlockBuilder {
	return b.Add("$<} "+controlFlow+" {\n$>", args...)
}

// EndControlFlow closes the open block.
func (b *CodeBlockBuilder) EndControlFlow() *CodeBlockBuilder {
	return b.Add("$<}\n")
}

// Indent increases indentation for following lines.
func (b *CodeBlockBuilder) Indent() *CodeBlockBuilder { return b.Add("$>") }

// Unindent decreases indentation for following lines.
func (b *CodeBlockBuilder) Unindent() *CodeBlockBuilder { return b.Add("$<") }

// IsEmpty reports whether nothing was added.
func (b *CodeBlockBuilder) IsEmpty() bool { return len(b.parts) == 0 }

// Err returns the first error recorded by the builder.
func (b *CodeBlockBuilder) Err() error { return b.err }

// Build returns the block, or the first error recorded while adding to it.
func (b *CodeBlockBuilder) Build() (CodeBlock, error) {
	if b.err != nil {
		return CodeBlock{}, b.err
	}
	return CodeBlock{
		parts: append([]string(nil), b.parts...),
		args:  append([]interface{}(nil), b.args...),
	}, nil
}

// parseFormat splits format into literal runs and placeholders, checking each
// argument against its placeholder. Only placeholders that consume an argument
// contribute to the returned values.
func parseFormat(format string, args []interface{}) ([]string, []interface{}, error) {
	var parts []string
	var vals []interface{}
	next := 0

	for p := 0; p < len(format); {
		if format[p] != '$' {
			end := strings.IndexByte(format[p+1:], '$')
			if end < 0 {
				end = len(format)
			} else {
				end += p + 1
			}
			parts = append(parts, format[p:end])
			p = end
			continue
		}
		if p+1 >= len(format) {
			return nil, nil, errors.NewConfigurationError("dangling $ at the end of %q", format)
		}
		c := format[p+1]
		p += 2
		switch c {
		case '$', '>', '<':
			parts = append(parts, "$"+string(c))
			continue
		case 'L', 'S', 'T', 'N':
		default:
			return nil, nil, errors.NewConfigurationError("invalid placeholder $%c in %q", c, format)
		}

		if next >= len(args) {
			return nil, nil, errors.NewConfigurationError("format %q needs more than %d arguments", format, len(args))
		}
		v, err := formatArg(c, args[next])
		if err != nil {
			return nil, nil, err
		}
		next++
		parts = append(parts, "$"+string(c))
		vals = append(vals, v)
	}

	if next != len(args) {
		return nil, nil, errors.NewConfigurationError("format %q uses %d of %d arguments", format, next, len(args))
	}
	return parts, vals, nil
}

func formatArg(c byte, arg interface{}) (interface{}, error) {
	switch c {
	case 'N':
		return argToName(arg)
	case 'S':
		return argToString(arg), nil
	case 'T':
		return argToType(arg)
	default:
		return arg, nil
	}
}

func argToName(arg interface{}) (string, error) {
	switch v := arg.(type) {
	case string:
		return v, nil
	case ParameterSpec:
		return v.Name, nil
	case FieldSpec:
		return v.Name, nil
	case MethodSpec:
		return v.Name, nil
	case *TypeSpec:
		return v.Name, nil
	case CodeBlock:
		return v.String(), nil
	}
	return "", errors.NewConfigurationError("expected a name but was %T", arg)
}

func argToString(arg interface{}) interface{} {
	switch v := arg.(type) {
	case nil:
		return nil
	case string:
		return v
	case CodeBlock:
		return v.String()
	}
	return fmt.Sprint(arg)
}

func argToType(arg interface{}) (TypeName, error) {
	if t, ok := arg.(TypeName); ok && t != nil {
		return t, nil
	}
	return nil, errors.NewConfigurationError("expected a type but was %T", arg)
}

// javaStringLiteral quotes s as a Java string literal.
func javaStringLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
