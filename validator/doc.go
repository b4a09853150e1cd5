// Package validator provides semantic validation for parsed OpenAPI
// documents across OAS 2.0 (Swagger), OAS 3.0.x, and OAS 3.1.x.
//
// Validation is not fail-fast: every enabled rule runs over the whole
// document and the result carries the full list of findings, split into
// errors (spec violations) and warnings (best practice issues). A
// document is Valid when no errors were found; warnings alone never fail
// validation.
//
// # Basic Usage
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, issue := range result.Errors {
//	    fmt.Println(issue)
//	}
//
// When the caller has already parsed the document, WithParsed skips the
// second parse:
//
//	parsed, _ := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	result, err := validator.ValidateWithOptions(validator.WithParsed(parsed))
//
// # Rule Opt-Outs
//
// All rules run by default. Individual rule families are disabled with
// the Ignore flags, which combine with bitwise OR and are
// order-independent and idempotent:
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithFilePath("openapi.yaml"),
//	    validator.WithIgnore(validator.IgnoreMissingTags|validator.IgnoreUnusedComponents),
//	)
//
// Validation is deterministic: the same document with the same options
// produces the same issues.
package validator
