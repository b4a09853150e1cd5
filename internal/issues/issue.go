// Package issues provides the issue type collected by the validator.
package issues

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/oaskit/oasv/internal/severity"
)

// Kind identifies which validation rule an issue violates.
// The set is closed: every issue the validator can produce carries
// exactly one of these kinds.
type Kind int

const (
	// KindUnresolvedReference indicates a $ref that does not resolve to a
	// component in the document (or an external reference when external
	// references are required).
	KindUnresolvedReference Kind = iota

	// KindCyclicReference indicates a $ref chain that revisited a token
	// during a single resolution walk.
	KindCyclicReference

	// KindDuplicateIdentifier indicates an identifier that must be unique
	// within its scope but is not (operationId, parameter name/location,
	// tag name).
	KindDuplicateIdentifier

	// KindUndeclaredTag indicates an operation tag that is absent from the
	// document's top-level tags list.
	KindUndeclaredTag

	// KindUndeclaredSecurityScheme indicates a security requirement naming
	// a scheme that is not declared in the security schemes container.
	KindUndeclaredSecurityScheme

	// KindEmptyComposition indicates a oneOf/anyOf/allOf keyword with no
	// member schemas.
	KindEmptyComposition

	// KindDanglingRequiredProperty indicates a required-property name that
	// does not exist among the schema's declared properties.
	KindDanglingRequiredProperty

	// KindMissingField indicates a required field that is absent or empty.
	KindMissingField

	// KindInvalidValue indicates a field whose value the OAS
	// specification does not allow
	// (bad status code, bad path template, misplaced discriminator, ...).
	KindInvalidValue

	// KindInvalidURL indicates a URL-shaped field that does not parse as
	// an http(s) URL.
	KindInvalidURL

	// KindMalformedReference indicates a reference token that is neither a
	// well-formed internal pointer nor a syntactically valid external
	// URL or file path.
	KindMalformedReference

	// KindUnusedComponent indicates a component that is never referenced
	// anywhere in the document.
	KindUnusedComponent
)

var kindNames = map[Kind]string{
	KindUnresolvedReference:      "unresolved-reference",
	KindCyclicReference:          "cyclic-reference",
	KindDuplicateIdentifier:      "duplicate-identifier",
	KindUndeclaredTag:            "undeclared-tag",
	KindUndeclaredSecurityScheme: "undeclared-security-scheme",
	KindEmptyComposition:         "empty-composition",
	KindDanglingRequiredProperty: "dangling-required-property",
	KindMissingField:             "missing-field",
	KindInvalidValue:             "invalid-value",
	KindInvalidURL:               "invalid-url",
	KindMalformedReference:       "malformed-reference",
	KindUnusedComponent:          "unused-component",
}

// String returns the stable machine-readable name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

var titleCaser = cases.Title(language.English)

// Label returns a human-readable label for the kind, e.g.
// "Unresolved Reference" for KindUnresolvedReference.
func (k Kind) Label() string {
	return titleCaser.String(strings.ReplaceAll(k.String(), "-", " "))
}

// Issue represents a single problem found during validation.
type Issue struct {
	// Path is the structural location of the problematic field
	// (e.g., "paths./pets.get.responses.200")
	Path string
	// Kind identifies the violated rule
	Kind Kind
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Field is the specific field name that has the issue
	Field string
	// Value is the problematic value (optional)
	Value any
	// SpecRef is the URL to the relevant section of the OAS specification (optional)
	SpecRef string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	result := fmt.Sprintf("%s %s [%s]: %s", symbol, i.Path, i.Kind.Label(), i.Message)
	if i.SpecRef != "" {
		result += fmt.Sprintf("\n    Spec: %s", i.SpecRef)
	}
	return result
}
