package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.yaml.in/yaml/v4"

	"github.com/oaskit/oasv/internal/httputil"
	"github.com/oaskit/oasv/oaserrors"
)

// Parser handles OpenAPI specification parsing
type Parser struct {
	// ValidateStructure determines whether to perform basic structure validation
	ValidateStructure bool
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		ValidateStructure: true,
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// SourceFormat represents the format of the source OpenAPI specification file
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains the parsed OpenAPI specification and metadata.
// This structure provides both the raw parsed data and version-specific
// typed representations of the OpenAPI document.
//
// Callers should treat ParseResult as read-only after parsing. Modifying
// the returned document may lead to unexpected behavior if the document is
// shared across multiple operations.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name of the method
	// and end in '.yaml' or '.json' based on the detected format
	SourcePath string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the detected OAS version string (e.g., "2.0", "3.0.3", "3.1.0")
	Version string
	// Data contains the raw parsed data as a map
	Data map[string]any
	// Document contains the version-specific parsed document:
	// - *OAS2Document for OpenAPI 2.0
	// - *OAS3Document for OpenAPI 3.x
	Document any
	// Errors contains any structure validation errors encountered
	Errors []error
	// Warnings contains non-fatal issues encountered while parsing
	Warnings []string
	// OASVersion is the enumerated version of the OpenAPI specification
	OASVersion OASVersion
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
}

// OAS2Document returns the parsed document as an OAS2Document if the specification
// is version 2.0 (Swagger), and a boolean indicating whether the type assertion succeeded.
//
// Example:
//
//	result, _ := parser.ParseWithOptions(parser.WithFilePath("swagger.yaml"))
//	if doc, ok := result.OAS2Document(); ok {
//	    fmt.Println("API Title:", doc.Info.Title)
//	}
func (pr *ParseResult) OAS2Document() (*OAS2Document, bool) {
	doc, ok := pr.Document.(*OAS2Document)
	return doc, ok
}

// OAS3Document returns the parsed document as an OAS3Document if the specification
// is version 3.x, and a boolean indicating whether the type assertion succeeded.
func (pr *ParseResult) OAS3Document() (*OAS3Document, bool) {
	doc, ok := pr.Document.(*OAS3Document)
	return doc, ok
}

// IsOAS2 returns true if the parsed document is an OpenAPI 2.0 (Swagger) specification.
func (pr *ParseResult) IsOAS2() bool {
	return pr.OASVersion == OASVersion20
}

// IsOAS3 returns true if the parsed document is an OpenAPI 3.x specification
// (including 3.0.x and 3.1.x).
func (pr *ParseResult) IsOAS3() bool {
	switch pr.OASVersion.Series() {
	case Series30, Series31:
		return true
	default:
		return false
	}
}

// Parse parses an OpenAPI specification from a local file path.
// Remote locations are intentionally not fetched; load the bytes yourself
// and use ParseBytes if the document lives behind a URL.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := os.ReadFile(specPath)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}

	res, err := p.parseBytes(data)
	if err != nil {
		return nil, err
	}

	res.SourcePath = specPath
	res.LoadTime = loadTime
	res.SourceSize = int64(len(data))

	// Prefer the file extension for format detection, falling back to content
	if format := detectFormatFromPath(specPath); format != SourceFormatUnknown {
		res.SourceFormat = format
	}

	return res, nil
}

// ParseReader parses an OpenAPI specification from an io.Reader
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseReader.yaml or ParseReader.json
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(r)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	res, err := p.parseBytes(data)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	res.SourceSize = int64(len(data))
	if res.SourceFormat == SourceFormatJSON {
		res.SourcePath = "ParseReader.json"
	} else {
		res.SourcePath = "ParseReader.yaml"
	}
	return res, nil
}

// ParseBytes parses an OpenAPI specification from a byte slice
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseBytes.yaml or ParseBytes.json
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parseBytes(data)
	if err != nil {
		return nil, err
	}
	res.SourceSize = int64(len(data))
	if res.SourceFormat == SourceFormatJSON {
		res.SourcePath = "ParseBytes.json"
	} else {
		res.SourcePath = "ParseBytes.yaml"
	}
	return res, nil
}

// parseBytes performs the shared parse pipeline: decode to a generic map,
// detect the dialect, decode to the version-specific document, then run
// structure validation when enabled.
func (p *Parser) parseBytes(data []byte) (*ParseResult, error) {
	result := &ParseResult{
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}
	result.SourceFormat = detectFormatFromContent(data)

	// First pass: parse to generic map to detect OAS version.
	// YAML is a superset of JSON, so a single decode path handles both.
	var rawData map[string]any
	if err := yaml.Unmarshal(data, &rawData); err != nil {
		return nil, &oaserrors.ParseError{
			Message: "failed to parse YAML/JSON",
			Cause:   err,
		}
	}
	result.Data = rawData

	version, err := p.detectVersion(rawData)
	if err != nil {
		return nil, err
	}
	result.Version = version

	doc, oasVersion, err := p.parseVersionSpecific(data, version)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.OASVersion = oasVersion
	p.log().Debug("parsed document", "version", version, "format", result.SourceFormat)

	if p.ValidateStructure {
		validationErrors := p.validateStructure(result)
		result.Errors = append(result.Errors, validationErrors...)
	}

	return result, nil
}

// detectVersion determines the OAS version string from the raw data
func (p *Parser) detectVersion(data map[string]any) (string, error) {
	// Check for OAS 2.0 (Swagger)
	if swagger, ok := data["swagger"].(string); ok {
		return swagger, nil
	}

	// Check for OAS 3.x
	if openapi, ok := data["openapi"].(string); ok {
		return openapi, nil
	}

	return "", &oaserrors.ParseError{
		Message: "unable to detect OpenAPI version: document must contain either 'swagger: \"2.0\"' (for OAS 2.0) or 'openapi: \"3.x.x\"' (for OAS 3.x) at the root level",
	}
}

// parseVersionSpecific parses the data into a version-specific structure
func (p *Parser) parseVersionSpecific(data []byte, version string) (any, OASVersion, error) {
	v, ok := ParseVersion(version)
	if !ok {
		return nil, Unknown, &oaserrors.ParseError{
			Message: fmt.Sprintf("unsupported OpenAPI version: %s (only 2.0, 3.0.x and 3.1.x are supported)", version),
		}
	}
	switch v.Series() {
	case Series20:
		var doc OAS2Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, Unknown, &oaserrors.ParseError{
				Message: "failed to parse OAS 2.0 document structure",
				Cause:   err,
			}
		}
		doc.OASVersion = v
		return &doc, v, nil

	case Series30, Series31:
		var doc OAS3Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, Unknown, &oaserrors.ParseError{
				Message: fmt.Sprintf("failed to parse OAS %s document structure", version),
				Cause:   err,
			}
		}
		doc.OASVersion = v
		return &doc, v, nil

	default:
		return nil, Unknown, &oaserrors.ParseError{
			Message: fmt.Sprintf("unsupported OpenAPI version: %s (only 2.0, 3.0.x and 3.1.x are supported)", version),
		}
	}
}

// validateStructure performs basic structure validation
func (p *Parser) validateStructure(result *ParseResult) []error {
	errors := make([]error, 0)

	switch {
	case result.OASVersion == OASVersion20:
		doc, ok := result.Document.(*OAS2Document)
		if !ok {
			errors = append(errors, fmt.Errorf("parser: internal error: document type mismatch for OAS 2.0 (expected *OAS2Document, got %T)", result.Document))
			return errors
		}
		errors = append(errors, p.validateOAS2(doc)...)

	case result.OASVersion.IsValid():
		doc, ok := result.Document.(*OAS3Document)
		if !ok {
			errors = append(errors, fmt.Errorf("parser: internal error: document type mismatch for OAS 3.x (expected *OAS3Document, got %T)", result.Document))
			return errors
		}
		errors = append(errors, p.validateOAS3(doc)...)

	default:
		errors = append(errors, fmt.Errorf("parser: unsupported OpenAPI version: %s (only versions 2.0 and 3.x are supported)", result.Version))
	}

	// Each schema node must declare at most one shape
	WalkSchemas(result.Document, func(path string, s *Schema) {
		if err := s.CheckShape(path); err != nil {
			errors = append(errors, err)
		}
	})

	return errors
}

// validateOAS2 validates an OAS 2.0 document
func (p *Parser) validateOAS2(doc *OAS2Document) []error {
	errors := make([]error, 0)

	if doc.Swagger == "" {
		errors = append(errors, fmt.Errorf("oas 2.0: missing required root field 'swagger': must be set to \"2.0\""))
	} else if doc.Swagger != "2.0" {
		errors = append(errors, fmt.Errorf("oas 2.0: invalid 'swagger' field value: expected \"2.0\", got \"%s\"", doc.Swagger))
	}

	errors = append(errors, p.validateInfo(doc.Info, "2.0")...)

	if doc.Paths == nil {
		errors = append(errors, fmt.Errorf("oas 2.0: missing required root field 'paths': Paths object is required per spec (https://spec.openapis.org/oas/v2.0.html#pathsObject)"))
	} else {
		errors = append(errors, p.validatePaths(doc.Paths, OASVersion20)...)
	}

	return errors
}

// validateOAS3 validates an OAS 3.x document
func (p *Parser) validateOAS3(doc *OAS3Document) []error {
	errors := make([]error, 0)
	version := doc.OASVersion

	if doc.OpenAPI == "" {
		errors = append(errors, fmt.Errorf("oas 3.x: missing required root field 'openapi': must be set to a valid 3.x version (e.g., \"3.0.3\", \"3.1.0\")"))
	}

	errors = append(errors, p.validateInfo(doc.Info, version.String())...)

	switch version.Series() {
	case Series30:
		if doc.Paths == nil {
			errors = append(errors, fmt.Errorf("oas %s: missing required root field 'paths': Paths object is required in OAS 3.0.x (https://spec.openapis.org/oas/v3.0.0.html#paths-object)", version))
		}
		if len(doc.Webhooks) > 0 {
			errors = append(errors, fmt.Errorf("oas %s: 'webhooks' field is only supported in OAS 3.1.0 and later", version))
		}
	case Series31:
		// In OAS 3.1+, either paths or webhooks must be present
		if doc.Paths == nil && len(doc.Webhooks) == 0 {
			errors = append(errors, fmt.Errorf("oas %s: document must have either 'paths' or 'webhooks': at least one is required in OAS 3.1+", version))
		}
	}

	if doc.Paths != nil {
		errors = append(errors, p.validatePaths(doc.Paths, version)...)
	}
	if len(doc.Webhooks) > 0 && version.Series() == Series31 {
		errors = append(errors, p.validateWebhooks(doc.Webhooks, version)...)
	}

	return errors
}

func (p *Parser) validateInfo(info *Info, version string) []error {
	errors := make([]error, 0)
	if info == nil {
		errors = append(errors, fmt.Errorf("oas %s: missing required root field 'info': Info object is required per spec", version))
	} else {
		if info.Title == "" {
			errors = append(errors, fmt.Errorf("oas %s: missing required field 'info.title': Info object must have a title per spec", version))
		}
		if info.Version == "" {
			errors = append(errors, fmt.Errorf("oas %s: missing required field 'info.version': Info object must have a version string per spec", version))
		}
	}
	return errors
}

func (p *Parser) validatePaths(paths Paths, version OASVersion) []error {
	errors := make([]error, 0)

	for pathPattern, pathItem := range paths {
		if pathItem == nil {
			continue
		}

		if pathPattern != "" && pathPattern[0] != '/' {
			errors = append(errors, fmt.Errorf("oas %s: invalid path pattern 'paths.%s': path must begin with '/'", version, pathPattern))
		}

		errors = append(errors, p.validatePathItem(pathItem, "paths."+pathPattern, version)...)
	}

	return errors
}

// validateWebhooks validates webhooks structure (OAS 3.1+).
// Webhook names don't have the same pattern requirements as paths
// (they don't need to start with '/').
func (p *Parser) validateWebhooks(webhooks map[string]*PathItem, version OASVersion) []error {
	errors := make([]error, 0)

	for webhookName, pathItem := range webhooks {
		if pathItem == nil {
			continue
		}
		errors = append(errors, p.validatePathItem(pathItem, "webhooks."+webhookName, version)...)
	}

	return errors
}

func (p *Parser) validatePathItem(pathItem *PathItem, path string, version OASVersion) []error {
	errors := make([]error, 0)
	operations := GetOperations(pathItem, version)

	for method, op := range operations {
		if op == nil {
			continue
		}

		opPath := fmt.Sprintf("%s.%s", path, method)
		errors = append(errors, p.validateOperation(op, opPath, version)...)
	}

	return errors
}

func (p *Parser) validateOperation(op *Operation, opPath string, version OASVersion) []error {
	errors := make([]error, 0)

	if op.Responses == nil {
		errors = append(errors, fmt.Errorf("oas %s: missing required field '%s.responses': Operation must have a responses object", version, opPath))
	} else {
		for code := range op.Responses.Codes {
			if !httputil.ValidateStatusCode(code) {
				errors = append(errors, fmt.Errorf("oas %s: invalid status code '%s' in '%s.responses': must be a valid HTTP status code (e.g., \"200\", \"404\") or wildcard pattern (e.g., \"2XX\")", version, code, opPath))
			}
		}
	}

	for i, param := range op.Parameters {
		if param == nil {
			continue
		}
		errors = append(errors, p.validateParameter(param, opPath, i, version)...)
	}

	// Validate requestBody if present (skip if it's a $ref)
	if op.RequestBody != nil && op.RequestBody.Ref == "" {
		if len(op.RequestBody.Content) == 0 {
			errors = append(errors, fmt.Errorf("oas %s: missing required field '%s.requestBody.content': RequestBody must have at least one media type", version, opPath))
		}
	}

	return errors
}

func (p *Parser) validateParameter(param *Parameter, opPath string, index int, version OASVersion) []error {
	errors := make([]error, 0)
	paramPath := fmt.Sprintf("%s.parameters[%d]", opPath, index)

	// Skip validation for $ref parameters - they reference definitions elsewhere
	if param.Ref != "" {
		return errors
	}

	var validLocations map[string]bool
	if version == OASVersion20 {
		validLocations = map[string]bool{
			ParamInQuery:    true,
			ParamInHeader:   true,
			ParamInPath:     true,
			ParamInFormData: true,
			ParamInBody:     true,
		}
	} else {
		validLocations = map[string]bool{
			ParamInQuery:  true,
			ParamInHeader: true,
			ParamInPath:   true,
			ParamInCookie: true,
		}
	}

	if param.Name == "" {
		errors = append(errors, fmt.Errorf("oas %s: missing required field '%s.name': Parameter must have a name", version, paramPath))
	}
	if param.In == "" {
		errors = append(errors, fmt.Errorf("oas %s: missing required field '%s.in': Parameter must specify a location", version, paramPath))
	} else if !validLocations[param.In] {
		errors = append(errors, fmt.Errorf("oas %s: invalid value for '%s.in': \"%s\" is not a valid parameter location", version, paramPath, param.In))
	}

	// Path parameters must be required
	if param.In == ParamInPath && !param.Required {
		errors = append(errors, fmt.Errorf("oas %s: invalid parameter '%s': path parameters must have 'required: true' per spec", version, paramPath))
	}

	return errors
}

// detectFormatFromPath detects the source format from a file extension
func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent detects the source format by inspecting the first
// non-whitespace byte. JSON documents begin with '{' (the root of an OAS
// document is always an object).
func detectFormatFromContent(data []byte) SourceFormat {
	for _, r := range string(data) {
		if unicode.IsSpace(r) {
			continue
		}
		if r == '{' {
			return SourceFormatJSON
		}
		return SourceFormatYAML
	}
	return SourceFormatUnknown
}
