// Package parser provides OpenAPI specification parsing for OAS 2.0
// (Swagger), OAS 3.0.x, and OAS 3.1.x documents in YAML or JSON format.
//
// The parser decodes a document into a dialect-specific typed model:
// OAS 2.0 documents become *OAS2Document, OAS 3.x documents become
// *OAS3Document. The dialect is detected from the root "swagger" or
// "openapi" field before decoding.
//
// # Basic Usage
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if doc, ok := result.OAS3Document(); ok {
//	    fmt.Println("API:", doc.Info.Title, doc.Info.Version)
//	}
//
// Parsing is strict about construction but lenient about content: a
// document that decodes into its dialect's model parses successfully even
// when it contains dangling references or unused components. Those are
// surfaced by the validator package. Structure validation (missing
// required root fields, invalid status codes, schema shape conflicts) is
// enabled by default and accumulates in ParseResult.Errors rather than
// aborting the parse.
//
// # Reference Resolution
//
// RefResolver resolves local $ref tokens against the parsed document
// without performing any I/O. External references are classified
// syntactically and never fetched:
//
//	resolver := parser.NewRefResolver(doc)
//	schema, err := resolver.ResolveSchema("#/components/schemas/Pet")
//
// All exported types are safe for concurrent reads after parsing
// completes; no global state is shared between Parser instances.
package parser
