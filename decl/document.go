// Package decl reads declaration documents, YAML or TOML descriptions of one
// Java source file, and turns them into poet files.
//
// A minimal document:
//
//	version: "1.0"
//	package: demo.app
//	type:
//	  kind: class
//	  name: Greeter
//	  modifiers: [public]
//	  fields:
//	    - name: first
//	      type: demo.a.Alpha
//	      modifiers: [private]
package decl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/poet/errors"
)

// Format is the syntax of a declaration document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the document format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.WithHint(
		errors.NewConfigurationError("unsupported declaration document %s", path),
		"use a .yaml, .yml or .toml file")
}

// Document is one declaration document.
type Document struct {
	Version       string         `yaml:"version" toml:"version"`
	Package       string         `yaml:"package" toml:"package"`
	Comment       string         `yaml:"comment" toml:"comment"`
	Indent        string         `yaml:"indent" toml:"indent"`
	SkipBuiltin   *bool          `yaml:"skip_builtin" toml:"skip_builtin"`
	Wildcard      string         `yaml:"wildcard" toml:"wildcard"`
	Imports       []Import       `yaml:"imports" toml:"imports"`
	WildcardHints []WildcardHint `yaml:"wildcard_hints" toml:"wildcard_hints"`
	StaticImports []string       `yaml:"static_imports" toml:"static_imports"`
	Type          Type           `yaml:"type" toml:"type"`
}

// Import is an explicit import registration.
type Import struct {
	Name      string `yaml:"name" toml:"name"`
	Threshold *int   `yaml:"threshold" toml:"threshold"`
}

// WildcardHint asks for a namespace wildcard once Threshold names are used.
type WildcardHint struct {
	Namespace string `yaml:"namespace" toml:"namespace"`
	Threshold int    `yaml:"threshold" toml:"threshold"`
}

// Type declares a class, interface or enum.
type Type struct {
	Kind          string         `yaml:"kind" toml:"kind"`
	Name          string         `yaml:"name" toml:"name"`
	Javadoc       string         `yaml:"javadoc" toml:"javadoc"`
	Modifiers     []string       `yaml:"modifiers" toml:"modifiers"`
	Annotations   []Annotation   `yaml:"annotations" toml:"annotations"`
	TypeVariables []TypeVariable `yaml:"type_variables" toml:"type_variables"`
	Superclass    string         `yaml:"superclass" toml:"superclass"`
	Interfaces    []string       `yaml:"interfaces" toml:"interfaces"`
	EnumConstants []EnumConstant `yaml:"enum_constants" toml:"enum_constants"`
	Fields        []Field        `yaml:"fields" toml:"fields"`
	StaticBlock   []Statement    `yaml:"static_block" toml:"static_block"`
	Initializer   []Statement    `yaml:"initializer" toml:"initializer"`
	Methods       []Method       `yaml:"methods" toml:"methods"`
	Types         []Type         `yaml:"types" toml:"types"`
	Originating   []string       `yaml:"originating" toml:"originating"`
}

// TypeVariable declares a type parameter such as T extends Comparable<T>.
type TypeVariable struct {
	Name   string   `yaml:"name" toml:"name"`
	Bounds []string `yaml:"bounds" toml:"bounds"`
}

// Annotation is an annotation use.
type Annotation struct {
	Type    string   `yaml:"type" toml:"type"`
	Members []Member `yaml:"members" toml:"members"`
}

// Member is one annotation member value. Repeating a name builds an array.
type Member struct {
	Name   string   `yaml:"name" toml:"name"`
	Format string   `yaml:"format" toml:"format"`
	Args   []string `yaml:"args" toml:"args"`
}

// EnumConstant is an enum constant with optional constructor arguments.
type EnumConstant struct {
	Name   string   `yaml:"name" toml:"name"`
	Format string   `yaml:"format" toml:"format"`
	Args   []string `yaml:"args" toml:"args"`
}

// Field declares a field.
type Field struct {
	Name        string       `yaml:"name" toml:"name"`
	Type        string       `yaml:"type" toml:"type"`
	Javadoc     string       `yaml:"javadoc" toml:"javadoc"`
	Modifiers   []string     `yaml:"modifiers" toml:"modifiers"`
	Annotations []Annotation `yaml:"annotations" toml:"annotations"`
	Init        string       `yaml:"init" toml:"init"`
	InitArgs    []string     `yaml:"init_args" toml:"init_args"`
}

// Method declares a method, or a constructor when Constructor is set.
type Method struct {
	Name          string         `yaml:"name" toml:"name"`
	Constructor   bool           `yaml:"constructor" toml:"constructor"`
	Javadoc       string         `yaml:"javadoc" toml:"javadoc"`
	Modifiers     []string       `yaml:"modifiers" toml:"modifiers"`
	Annotations   []Annotation   `yaml:"annotations" toml:"annotations"`
	TypeVariables []TypeVariable `yaml:"type_variables" toml:"type_variables"`
	Returns       string         `yaml:"returns" toml:"returns"`
	Parameters    []Parameter    `yaml:"parameters" toml:"parameters"`
	Varargs       bool           `yaml:"varargs" toml:"varargs"`
	Throws        []string       `yaml:"throws" toml:"throws"`
	Body          []Statement    `yaml:"body" toml:"body"`
	Default       string         `yaml:"default" toml:"default"`
}

// Parameter declares a method parameter.
type Parameter struct {
	Name        string       `yaml:"name" toml:"name"`
	Type        string       `yaml:"type" toml:"type"`
	Final       bool         `yaml:"final" toml:"final"`
	Annotations []Annotation `yaml:"annotations" toml:"annotations"`
}

// Statement is one body entry. Exactly one of Statement, Code, Comment,
// Begin, Next or End is set; Args feed the format's placeholders, with $T
// arguments parsed as types.
type Statement struct {
	Statement string   `yaml:"statement" toml:"statement"`
	Code      string   `yaml:"code" toml:"code"`
	Comment   string   `yaml:"comment" toml:"comment"`
	Begin     string   `yaml:"begin" toml:"begin"`
	Next      string   `yaml:"next" toml:"next"`
	End       bool     `yaml:"end" toml:"end"`
	Args      []string `yaml:"args" toml:"args"`
}

// Parse decodes a document. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.NewConfigurationError("invalid YAML document"), err.Error())
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(errors.NewConfigurationError("invalid TOML document"), err.Error())
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.NewConfigurationError("unknown keys in TOML document: %s", strings.Join(keys, ", "))
		}
	default:
		return nil, errors.NewConfigurationError("unsupported document format %q", format)
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Read loads the document at path.
func Read(path string) (*Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return doc, nil
}
