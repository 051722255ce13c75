// Package errors provides error handling for poet.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for CLI users
//
// Usage:
//
//	// Configuration mistakes are raised by the builder call itself
//	return errors.NewConfigurationError("duplicate import %s", name)
//
//	// Sink failures keep the original cause reachable
//	if err := w.Close(); err != nil {
//	    return errors.WrapEmission(err, "close source file")
//	}
//
//	// Check errors
//	if errors.IsConfigurationError(err) {
//	    // fix the builder input, retrying will not help
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// GetStack returns the reportable stack trace attached to an error, if any.
var GetStack = crdb.GetReportableStackTrace

// AssertionFailedf reports a broken internal invariant.
var AssertionFailedf = crdb.AssertionFailedf

// Sentinel errors for the two failure classes of the rendering pipeline.
// Use these with errors.Is() for type-safe error checking.
var (
	// ErrConfiguration indicates malformed builder input: a duplicate import
	// registration, an empty required argument, an out of range threshold,
	// or an output root that is not a directory. Raised at configuration
	// time, never deferred to render time.
	ErrConfiguration = New("invalid configuration")

	// ErrEmission indicates a failure while writing rendered text to a sink
	// (disk full, permission denied, toolchain rejection).
	ErrEmission = New("emission failed")
)

// NewConfigurationError creates a configuration error with a formatted message
func NewConfigurationError(format string, args ...interface{}) error {
	return Wrap(ErrConfiguration, Newf(format, args...).Error())
}

// WrapEmission marks err as an emission failure while keeping err itself
// reachable through Is/As.
func WrapEmission(err error, context string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrap(err, context), ErrEmission)
}

// IsConfigurationError checks if an error is or wraps ErrConfiguration
func IsConfigurationError(err error) bool {
	return err != nil && Is(err, ErrConfiguration)
}

// IsEmissionFailure checks if an error is or wraps ErrEmission
func IsEmissionFailure(err error) bool {
	return err != nil && Is(err, ErrEmission)
}
