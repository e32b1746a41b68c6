// Package errors provides error handling for sharpgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for users of the builders and expectations
//   - Marking, so every failure can be classified with errors.Is
//
// Usage:
//
//	// Reject a bad builder argument
//	panic(errors.InvalidArgumentf("parameter name cannot be empty"))
//
//	// Wrap with context
//	if err := model.Validate(); err != nil {
//	    return errors.Wrap(err, "invalid model")
//	}
//
//	// Classify
//	if errors.IsInvalidOperation(err) {
//	    // conflicting builder state
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
	Join         = crdb.Join
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
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

// AssertionFailedf reports a broken internal invariant.
var AssertionFailedf = crdb.AssertionFailedf

// Sentinel errors classifying every failure sharpgen produces.
// Wrap or Mark these to add context while preserving the kind.
var (
	// ErrInvalidArgument indicates a null, empty, whitespace or duplicate
	// argument passed to a builder
	ErrInvalidArgument = New("invalid argument")

	// ErrInvalidOperation indicates a builder call that conflicts with state
	// that was already set (e.g. a base call after a this call)
	ErrInvalidOperation = New("invalid operation")

	// ErrAssertion indicates a structural expectation that does not hold
	ErrAssertion = New("assertion failed")

	// ErrExpectation indicates one or more accumulated expectation failures
	ErrExpectation = New("expectations not met")

	// ErrSyntax indicates source text that could not be parsed
	ErrSyntax = New("syntax error")

	// ErrUnsupportedFeature indicates a language feature that the configured
	// language version does not provide
	ErrUnsupportedFeature = New("unsupported language feature")

	// ErrNotFound indicates the requested declaration or resource does not exist
	ErrNotFound = New("not found")
)

// InvalidArgumentf creates an error marked as ErrInvalidArgument.
func InvalidArgumentf(format string, args ...interface{}) error {
	return Mark(crdb.NewWithDepthf(1, format, args...), ErrInvalidArgument)
}

// InvalidOperationf creates an error marked as ErrInvalidOperation.
func InvalidOperationf(format string, args ...interface{}) error {
	return Mark(crdb.NewWithDepthf(1, format, args...), ErrInvalidOperation)
}

// UnsupportedFeaturef creates an error marked as ErrUnsupportedFeature.
func UnsupportedFeaturef(format string, args ...interface{}) error {
	return Mark(crdb.NewWithDepthf(1, format, args...), ErrUnsupportedFeature)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Mark(crdb.NewWithDepthf(1, format, args...), ErrNotFound)
}

// IsInvalidArgument checks if an error is or wraps ErrInvalidArgument
func IsInvalidArgument(err error) bool {
	return err != nil && Is(err, ErrInvalidArgument)
}

// IsInvalidOperation checks if an error is or wraps ErrInvalidOperation
func IsInvalidOperation(err error) bool {
	return err != nil && Is(err, ErrInvalidOperation)
}

// IsSyntaxError checks if an error is or wraps ErrSyntax
func IsSyntaxError(err error) bool {
	return err != nil && Is(err, ErrSyntax)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}
