// Package oaserrors provides structured error types for oasv.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ParseError: a document that cannot be decoded into its dialect's
//     typed model (malformed document)
//   - ShapeConflictError: a schema node claiming more than one shape
//   - ReferenceError: $ref resolution failures and circular chains
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.As
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("api.yaml"))
//	if err != nil {
//	    var refErr *oaserrors.ReferenceError
//	    if errors.As(err, &refErr) {
//	        if refErr.IsCircular {
//	            // Handle circular reference specifically
//	        }
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrMalformedDocument indicates a document that failed structural
	// construction for its targeted dialect.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrShapeConflict indicates a schema node claiming more than one shape.
	ErrShapeConflict = errors.New("schema shape conflict")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a circular $ref chain was detected.
	ErrCircularReference = errors.New("circular reference")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to construct a typed document from input.
// This includes YAML/JSON deserialization errors and missing required
// top-level fields for the targeted dialect.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "malformed document"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// ShapeConflictError represents a schema node that declares more than one
// mutually exclusive shape (e.g., both array items and object properties,
// or a $ref combined with structural keywords).
type ShapeConflictError struct {
	// Path is the structural location of the conflicting schema node
	Path string
	// Shapes names the conflicting shapes, e.g. ["array", "object"]
	Shapes []string
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ShapeConflictError) Error() string {
	msg := "schema shape conflict"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if len(e.Shapes) > 0 {
		msg += ": node declares"
		for i, s := range e.Shapes {
			if i > 0 {
				msg += " and"
			}
			msg += " " + s
		}
		msg += " shape"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
// A shape conflict is also a malformed-document condition.
func (e *ShapeConflictError) Is(target error) bool {
	return target == ErrShapeConflict || target == ErrMalformedDocument
}

// Reference failure classifications for ReferenceError.RefType.
const (
	// RefTypeNotFound means the referenced component does not exist
	RefTypeNotFound = "not-found"
	// RefTypeExternal means the reference targets another document,
	// which is never dereferenced
	RefTypeExternal = "external"
	// RefTypeMalformed means the reference token does not match a
	// supported reference grammar
	RefTypeMalformed = "malformed"
	// RefTypeCircular means the reference chain revisits itself
	RefTypeCircular = "circular"
)

// ReferenceError represents a failure to resolve a $ref.
// This includes missing component names and circular reference chains.
type ReferenceError struct {
	// Ref is the reference token that failed to resolve
	Ref string
	// RefType classifies the failure, one of the RefType constants
	RefType string
	// IsCircular is true if this error is due to a circular reference chain
	IsCircular bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularReference when IsCircular is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrCircularReference && e.IsCircular
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
