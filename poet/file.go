package poet

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/imports"
	"github.com/teranos/poet/logger"
)

// DefaultIndent is the indentation unit used unless Indent is called.
const DefaultIndent = "  "

// File is one Java compilation unit: a package and its top-level type plus
// the import configuration. A File is immutable; every render of it produces
// the same text.
type File struct {
	packageName   string
	typeSpec      *TypeSpec
	fileComment   CodeBlock
	registrations *imports.Registrations
	staticImports []string
	skipBuiltin   bool
	policy        imports.WildcardPolicy
	indent        string
	log           *zap.SugaredLogger

	textOnce sync.Once
	text     string
	textErr  error
}

// PackageName returns the file's package, "" for the default package.
func (f *File) PackageName() string { return f.packageName }

// TypeSpec returns the top-level declaration.
func (f *File) TypeSpec() *TypeSpec { return f.typeSpec }

// QualifiedName returns the canonical name of the top-level type, e.g.
// "demo.app.Greeter".
func (f *File) QualifiedName() string {
	if f.packageName == "" {
		return f.typeSpec.Name
	}
	return f.packageName + "." + f.typeSpec.Name
}

// ToBuilder returns a builder carrying every setting of f.
func (f *File) ToBuilder() *FileBuilder {
	b := NewFile(f.packageName, f.typeSpec)
	b.fileComment = f.fileComment.ToBuilder()
	b.registrations = f.registrations.Clone()
	b.staticImports = append([]string(nil), f.staticImports...)
	b.skipBuiltin = f.skipBuiltin
	b.policy = f.policy
	b.indent = f.indent
	b.log = f.log
	return b
}

// ImportOption configures an explicit import registration.
type ImportOption func(*imports.Registration)

// WithWildcardThreshold switches the registration's namespace to the wildcard
// form once n distinct names from it are referenced.
func WithWildcardThreshold(n int) ImportOption {
	return func(r *imports.Registration) {
		r.Threshold = n
		r.HasThreshold = true
	}
}

// FileBuilder accumulates a File.
//
// Configuration mistakes such as a duplicate import registration are
// recorded by the call that makes them. Err reports the first one right away
// and Build refuses to produce a File while one is pending.
type FileBuilder struct {
	packageName   string
	typeSpec      *TypeSpec
	fileComment   *CodeBlockBuilder
	registrations *imports.Registrations
	staticImports []string
	skipBuiltin   bool
	policy        imports.WildcardPolicy
	indent        string
	log           *zap.SugaredLogger
	err           error
}

// NewFile starts a file declaring typeSpec in packageName.
func NewFile(packageName string, typeSpec *TypeSpec) *FileBuilder {
	b := &FileBuilder{
		packageName:   packageName,
		typeSpec:      typeSpec,
		fileComment:   NewCodeBlockBuilder(),
		registrations: imports.NewRegistrations(),
		policy:        imports.WildcardDisabled,
		indent:        DefaultIndent,
	}
	switch {
	case typeSpec == nil:
		b.err = errors.NewConfigurationError("file in package %q has no type", packageName)
	case !IsPackageName(packageName):
		b.err = errors.NewConfigurationError("invalid package name %q", packageName)
	}
	return b
}

func (b *FileBuilder) fail(err error) *FileBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Err returns the first configuration error recorded so far.
func (b *FileBuilder) Err() error { return b.err }

// AddFileComment appends to the comment written above the package clause.
func (b *FileBuilder) AddFileComment(format string, args ...interface{}) *FileBuilder {
	b.fileComment.Add(format, args...)
	if err := b.fileComment.Err(); err != nil {
		b.fail(err)
	}
	return b
}

// AddImport registers an explicit import. The name is emitted as written
// unless the planner already handles it as a referenced namespace.
func (b *FileBuilder) AddImport(name string, opts ...ImportOption) *FileBuilder {
	r := imports.Explicit(name)
	for _, opt := range opts {
		opt(&r)
	}
	if err := b.registrations.Add(r); err != nil {
		b.fail(err)
	}
	return b
}

// AddImportWildcardHint asks for namespace to be imported with a wildcard
// once threshold distinct names from it are referenced. The hint itself is
// never written out.
func (b *FileBuilder) AddImportWildcardHint(namespace string, threshold int) *FileBuilder {
	if err := b.registrations.Add(imports.Hint(namespace, threshold)); err != nil {
		b.fail(err)
	}
	return b
}

// AddStaticImport imports members of class statically. "*" imports them all.
func (b *FileBuilder) AddStaticImport(class ClassName, names ...string) *FileBuilder {
	if len(names) == 0 {
		return b.fail(errors.NewConfigurationError("no members to import statically from %s", class))
	}
	for _, n := range names {
		if n != "*" && !IsIdentifier(n) {
			return b.fail(errors.NewConfigurationError("invalid static import member %q of %s", n, class))
		}
		target := class.CanonicalName() + "." + n
		if !containsString(b.staticImports, target) {
			b.staticImports = append(b.staticImports, target)
		}
	}
	return b
}

// SkipBuiltinImports leaves java.lang classes unimported and unqualified.
func (b *FileBuilder) SkipBuiltinImports(skip bool) *FileBuilder {
	b.skipBuiltin = skip
	return b
}

// WildcardPolicy sets the file-wide wildcard policy.
func (b *FileBuilder) WildcardPolicy(p imports.WildcardPolicy) *FileBuilder {
	b.policy = p
	return b
}

// Indent sets the indentation unit.
func (b *FileBuilder) Indent(indent string) *FileBuilder {
	b.indent = indent
	return b
}

// Logger sets the logger used for render and output events.
func (b *FileBuilder) Logger(log *zap.SugaredLogger) *FileBuilder {
	b.log = log
	return b
}

// Build freezes the configuration into a File.
func (b *FileBuilder) Build() (*File, error) {
	if b.err != nil {
		return nil, b.err
	}
	comment, err := b.fileComment.Build()
	if err != nil {
		return nil, err
	}
	log := b.log
	if log == nil {
		log = logger.ComponentLogger("poet.render")
	}
	statics := append([]string(nil), b.staticImports...)
	sort.Strings(statics)
	return &File{
		packageName:   b.packageName,
		typeSpec:      b.typeSpec,
		fileComment:   comment,
		registrations: b.registrations.Clone(),
		staticImports: statics,
		skipBuiltin:   b.skipBuiltin,
		policy:        b.policy,
		indent:        b.indent,
		log:           log,
	}, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func packagePath(packageName string) []string {
	if packageName == "" {
		return nil
	}
	return strings.Split(packageName, ".")
}
