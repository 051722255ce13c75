package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across poet.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Rendering
	FieldPackage       = "package"
	FieldType          = "type"
	FieldNamespaces    = "namespaces"
	FieldImportLines   = "import_lines"
	FieldStaticImports = "static_imports"
	FieldWildcards     = "wildcards"

	// Files and sinks
	FieldFile     = "file"
	FieldPath     = "path"
	FieldBytes    = "bytes"
	FieldArtifact = "artifact"
	FieldElement  = "element"

	// Manifest schema
	FieldMigration = "migration"
	FieldVersion   = "version"
	FieldApplied   = "applied"

	// Errors
	FieldError = "error"

	// Counts and timing
	FieldCount      = "count"
	FieldTotal      = "total"
	FieldDurationMS = "duration_ms"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Filer struct {
//	    log *zap.SugaredLogger
//	}
//
//	func New(root string) *Filer {
//	    return &Filer{
//	        log: logger.ComponentLogger("filer"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	fileLogger := logger.ChildLogger(baseLogger, "file", name)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
