// Package oasv provides parsing and semantic validation for OpenAPI
// Specification (OAS) documents.
//
// oasv parses OAS 2.0 (Swagger), OAS 3.0.x, and OAS 3.1.x documents into
// strongly typed in-memory models and validates them beyond structural
// parsing: reference resolvability, identifier uniqueness, declared-vs-used
// consistency, and schema well-formedness.
//
// The library consists of two primary packages:
//
//   - parser: decode a document into its dialect's typed model
//   - validator: walk a parsed document and collect every rule violation
//
// # Quick Start
//
// Parse a specification:
//
//	import "github.com/oaskit/oasv/parser"
//
//	p := parser.New()
//	result, err := p.Parse("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Version: %s\n", result.Version)
//
// Validate it:
//
//	import "github.com/oaskit/oasv/validator"
//
//	v := validator.New()
//	result, err := v.Validate("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !result.Valid {
//		fmt.Printf("Found %d errors\n", result.ErrorCount)
//	}
//
// Validation strictness is tuned through a combinable set of opt-out rule
// flags; the empty set means full strict validation:
//
//	result, err := validator.ValidateWithOptions(
//		validator.WithFilePath("openapi.yaml"),
//		validator.WithIgnore(validator.IgnoreMissingTags|validator.IgnoreExternalReferences),
//	)
//
// # Error Handling
//
// Parse failures are fatal and returned immediately: a document must be
// structurally coherent before validation is meaningful. Validation
// failures never stop traversal; every issue is collected and returned in
// one pass. Structured error types live in the oaserrors package and
// support errors.Is / errors.As.
package oasv

import "fmt"

var (
	// version is set via ldflags during release builds.
	// Development builds report "dev".
	version = "dev"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// UserAgent returns the User-Agent string to use
func UserAgent() string {
	return fmt.Sprintf("oasv/%s", version)
}
