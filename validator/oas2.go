package validator

import (
	"fmt"
	"strings"

	"github.com/oaskit/oasv/internal/httputil"
	"github.com/oaskit/oasv/parser"
)

// validateOAS2 performs OAS 2.0 specific validation
func (v *Validator) validateOAS2(doc *parser.OAS2Document, result *ValidationResult) {
	baseURL := "https://spec.openapis.org/oas/v2.0.html"

	v.validateOAS2Info(doc, result, baseURL)
	v.validateOAS2Host(doc, result, baseURL)

	declaredTags := v.collectDeclaredTags(doc.Tags, result, baseURL)

	v.validateOAS2Paths(doc, declaredTags, result, baseURL)
	v.validateOAS2Definitions(doc, result, baseURL)
	v.validateOAS2Parameters(doc, result, baseURL)
	v.validateOAS2Responses(doc, result, baseURL)
	v.validateOAS2Security(doc, result, baseURL)
	v.validateOAS2PathParameterConsistency(doc, result, baseURL)
	v.validateOAS2OperationIds(doc, result, baseURL)
	v.validateExternalDocs(doc.ExternalDocs, "externalDocs", result, baseURL)
	v.validateOAS2Refs(doc, result, baseURL)
}

// validateOAS2Info validates the info object in OAS 2.0
func (v *Validator) validateOAS2Info(doc *parser.OAS2Document, result *ValidationResult, baseURL string) {
	if doc.Info == nil {
		v.addError(result, KindMissingField, "info", "Document must have an info object",
			withSpecRef(fmt.Sprintf("%s#info-object", baseURL)),
			withField("info"),
		)
		return
	}
	v.validateInfoObject(doc.Info, result, baseURL, false)
}

// validateOAS2Host validates host, basePath and schemes
func (v *Validator) validateOAS2Host(doc *parser.OAS2Document, result *ValidationResult, baseURL string) {
	// host is a bare host[:port], not a URL
	if doc.Host != "" && strings.Contains(doc.Host, "/") {
		v.addError(result, KindInvalidValue, "host",
			fmt.Sprintf("Host must not include a path or scheme: %s", doc.Host),
			withSpecRef(fmt.Sprintf("%s#swagger-object", baseURL)),
			withField("host"),
			withValue(doc.Host),
		)
	}

	if doc.BasePath != "" && !strings.HasPrefix(doc.BasePath, "/") {
		v.addError(result, KindInvalidValue, "basePath", "basePath must start with '/'",
			withSpecRef(fmt.Sprintf("%s#swagger-object", baseURL)),
			withField("basePath"),
			withValue(doc.BasePath),
		)
	}

	for i, scheme := range doc.Schemes {
		switch scheme {
		case "http", "https", "ws", "wss":
		default:
			v.addError(result, KindInvalidValue, fmt.Sprintf("schemes[%d]", i),
				fmt.Sprintf("Invalid scheme '%s': must be one of http, https, ws, wss", scheme),
				withSpecRef(fmt.Sprintf("%s#swagger-object", baseURL)),
				withValue(scheme),
			)
		}
	}
}

// validateOAS2OperationIds validates that operationIds are unique across the document
func (v *Validator) validateOAS2OperationIds(doc *parser.OAS2Document, result *ValidationResult, baseURL string) {
	operationIds := make(map[string]string) // map of operationId -> path where first seen

	for _, pathPattern := range sortedKeys(doc.Paths) {
		pathItem := doc.Paths[pathPattern]
		if pathItem == nil {
			continue
		}

		operations := parser.GetOperations(pathItem, parser.OASVersion20)
		v.checkDuplicateOperationIds(operations, "paths", pathPattern, operationIds, result, baseURL)
	}
}

// validateOAS2Paths validates paths in OAS 2.0
func (v *Validator) validateOAS2Paths(doc *parser.OAS2Document, declaredTags map[string]bool, result *ValidationResult, baseURL string) {
	for _, pathPattern := range sortedKeys(doc.Paths) {
		pathItem := doc.Paths[pathPattern]
		if pathItem == nil {
			continue
		}

		pathPrefix := fmt.Sprintf("paths.%s", pathPattern)

		if !strings.HasPrefix(pathPattern, "/") {
			v.addError(result, KindInvalidValue, pathPrefix, "Path must start with '/'",
				withSpecRef(fmt.Sprintf("%s#paths-object", baseURL)),
				withValue(pathPattern),
			)
		}

		if err := validatePathTemplate(pathPattern); err != nil {
			v.addError(result, KindInvalidValue, pathPrefix, fmt.Sprintf("Invalid path template: %s", err),
				withSpecRef(fmt.Sprintf("%s#paths-object", baseURL)),
				withValue(pathPattern),
			)
		}

		checkTrailingSlash(v, pathPattern, result, baseURL)

		v.validateParameterUniqueness(pathItem.Parameters, pathPrefix, result, baseURL)

		// TRACE is not part of the 2.0 dialect
		if pathItem.Trace != nil {
			v.addError(result, KindInvalidValue, fmt.Sprintf("%s.trace", pathPrefix),
				"TRACE method is only supported in OAS 3.0+, not in OAS 2.0",
				withSpecRef(fmt.Sprintf("%s#path-item-object", baseURL)),
				withField("trace"),
			)
		}

		operations := parser.GetOperations(pathItem, parser.OASVersion20)
		for _, method := range sortedKeys(operations) {
			op := operations[method]
			if op == nil {
				continue
			}

			opPath := fmt.Sprintf("%s.%s", pathPrefix, method)
			v.validateOAS2Operation(op, opPath, result, baseURL)
			v.validateOperationTags(op, opPath, declaredTags, result, baseURL)

			// Warning: recommend description
			if v.IncludeWarnings && op.Description == "" && op.Summary == "" {
				v.addWarning(result, KindMissingField, opPath,
					"Operation should have a description or summary for better documentation",
					withSpecRef(fmt.Sprintf("%s#operation-object", baseURL)),
					withField("description"),
				)
			}
		}
	}
}

// validateOAS2Operation validates an operation in OAS 2.0
func (v *Validator) validateOAS2Operation(op *parser.Operation, path string, result *ValidationResult, baseURL string) {
	if op.Responses == nil {
		v.addError(result, KindMissingField, path, "Operation must have a responses object",
			withSpecRef(fmt.Sprintf("%s#operation-object", baseURL)),
			withField("responses"),
		)
	}

	v.validateResponseStatusCodes(op.Responses, path, result, baseURL)
	v.validateResponseDescriptions(op.Responses, path, result, baseURL)

	// Response body schemas
	if op.Responses != nil {
		check := func(resp *parser.Response, respPath string) {
			if resp != nil && resp.Ref == "" && resp.Schema != nil {
				v.validateSchema(resp.Schema, fmt.Sprintf("%s.schema", respPath), parser.OASVersion20, result)
			}
		}
		check(op.Responses.Default, fmt.Sprintf("%s.responses.default", path))
		for _, code := range sortedKeys(op.Responses.Codes) {
			check(op.Responses.Codes[code], fmt.Sprintf("%s.responses.%s", path, code))
		}
	}

	v.validateParameterUniqueness(op.Parameters, path, result, baseURL)

	// Body parameter rules: at most one, and body excludes formData
	bodyCount := 0
	hasFormData := false
	for i, param := range op.Parameters {
		if param == nil || param.Ref != "" {
			continue
		}
		paramPath := fmt.Sprintf("%s.parameters[%d]", path, i)
		switch param.In {
		case parser.ParamInBody:
			bodyCount++
			if param.Schema == nil {
				v.addError(result, KindMissingField, paramPath, "Body parameter must have a schema",
					withSpecRef(fmt.Sprintf("%s#parameter-object", baseURL)),
					withField("schema"),
				)
			} else {
				v.validateSchema(param.Schema, fmt.Sprintf("%s.schema", paramPath), parser.OASVersion20, result)
			}
		case parser.ParamInFormData:
			hasFormData = true
		}
		if param.In != parser.ParamInBody && param.Type == "" {
			v.addError(result, KindMissingField, paramPath, "Non-body parameter must have a type",
				withSpecRef(fmt.Sprintf("%s#parameter-object", baseURL)),
				withField("type"),
			)
		}
	}
	if bodyCount > 1 {
		v.addError(result, KindInvalidValue, path,
			fmt.Sprintf("Operation has %d body parameters; at most one is allowed", bodyCount),
			withSpecRef(fmt.Sprintf("%s#parameter-object", baseURL)),
		)
	}
	if bodyCount > 0 && hasFormData {
		v.addError(result, KindInvalidValue, path,
			"Operation cannot have both body and formData parameters",
			withSpecRef(fmt.Sprintf("%s#parameter-object", baseURL)),
		)
	}

	// Validate consumes/produces media types
	for i, mediaType := range op.Consumes {
		if !httputil.IsValidMediaType(mediaType) {
			v.addError(result, KindInvalidValue, fmt.Sprintf("%s.consumes[%d]", path, i),
				fmt.Sprintf("Invalid media type: %s", mediaType),
				withSpecRef(fmt.Sprintf("%s#operation-object", baseURL)),
				withValue(mediaType),
			)
		}
	}
	for i, mediaType := range op.Produces {
		if !httputil.IsValidMediaType(mediaType) {
			v.addError(result, KindInvalidValue, fmt.Sprintf("%s.produces[%d]", path, i),
				fmt.Sprintf("Invalid media type: %s", mediaType),
				withSpecRef(fmt.Sprintf("%s#operation-object", baseURL)),
				withValue(mediaType),
			)
		}
	}
}

// validateOAS2Definitions validates schema definitions in OAS 2.0
func (v *Validator) validateOAS2Definitions(doc *parser.OAS2Document, result *ValidationResult, _ string) {
	for _, name := range sortedKeys(doc.Definitions) {
		schema := doc.Definitions[name]
		v.validateSchemaName(name, "definitions", result)
		if schema == nil {
			continue
		}
		path := fmt.Sprintf("definitions.%s", name)
		v.validateSchema(schema, path, parser.OASVersion20, result)
	}
}

// validateOAS2Parameters validates parameters definitions in OAS 2.0
func (v *Validator) validateOAS2Parameters(doc *parser.OAS2Document, result *ValidationResult, baseURL string) {
	for _, name := range sortedKeys(doc.Parameters) {
		param := doc.Parameters[name]
		if param == nil || param.Ref != "" {
			continue
		}
		path := fmt.Sprintf("parameters.%s", name)

		// Body parameters must have a schema
		if param.In == parser.ParamInBody && param.Schema == nil {
			v.addError(result, KindMissingField, path, "Body parameter must have a schema",
				withSpecRef(fmt.Sprintf("%s#parameter-object", baseURL)),
				withField("schema"),
			)
		}

		// Non-body parameters must have a type
		if param.In != parser.ParamInBody && param.Type == "" {
			v.addError(result, KindMissingField, path, "Non-body parameter must have a type",
				withSpecRef(fmt.Sprintf("%s#parameter-object", baseURL)),
				withField("type"),
			)
		}

		if param.In == parser.ParamInPath && !param.Required {
			v.addError(result, KindInvalidValue, path, "Path parameters must have required: true",
				withSpecRef(fmt.Sprintf("%s#parameter-object", baseURL)),
				withField("required"),
			)
		}
	}
}

// validateOAS2Responses validates response definitions in OAS 2.0
func (v *Validator) validateOAS2Responses(doc *parser.OAS2Document, result *ValidationResult, baseURL string) {
	for _, name := range sortedKeys(doc.Responses) {
		response := doc.Responses[name]
		if response == nil {
			continue
		}
		path := fmt.Sprintf("responses.%s", name)

		if response.Ref == "" && response.Description == "" {
			v.addError(result, KindMissingField, path, "Response must have a description",
				withSpecRef(fmt.Sprintf("%s#response-object", baseURL)),
				withField("description"),
			)
		}

		if response.Schema != nil {
			v.validateSchema(response.Schema, fmt.Sprintf("%s.schema", path), parser.OASVersion20, result)
		}
	}
}

// validateOAS2Security validates security definitions and requirements in OAS 2.0
func (v *Validator) validateOAS2Security(doc *parser.OAS2Document, result *ValidationResult, baseURL string) {
	// Root-level security requirements reference existing definitions
	for i, secReq := range doc.Security {
		for _, schemeName := range sortedKeys(secReq) {
			if _, exists := doc.SecurityDefinitions[schemeName]; !exists {
				v.addError(result, KindUndeclaredSecurityScheme, fmt.Sprintf("security[%d].%s", i, schemeName),
					fmt.Sprintf("Security requirement references undefined security scheme: %s", schemeName),
					withSpecRef(fmt.Sprintf("%s#security-requirement-object", baseURL)),
					withValue(schemeName),
				)
			}
		}
	}

	// Operation-level security requirements
	for _, pathPattern := range sortedKeys(doc.Paths) {
		pathItem := doc.Paths[pathPattern]
		if pathItem == nil {
			continue
		}
		operations := parser.GetOperations(pathItem, parser.OASVersion20)
		for _, method := range sortedKeys(operations) {
			op := operations[method]
			if op == nil {
				continue
			}
			for i, secReq := range op.Security {
				for _, schemeName := range sortedKeys(secReq) {
					if _, exists := doc.SecurityDefinitions[schemeName]; !exists {
						v.addError(result, KindUndeclaredSecurityScheme,
							fmt.Sprintf("paths.%s.%s.security[%d].%s", pathPattern, method, i, schemeName),
							fmt.Sprintf("Security requirement references undefined security scheme: %s", schemeName),
							withSpecRef(fmt.Sprintf("%s#security-requirement-object", baseURL)),
							withValue(schemeName),
						)
					}
				}
			}
		}
	}

	// Validate security definitions
	for _, name := range sortedKeys(doc.SecurityDefinitions) {
		secDef := doc.SecurityDefinitions[name]
		if secDef == nil {
			continue
		}
		path := fmt.Sprintf("securityDefinitions.%s", name)

		if secDef.Type == "" {
			v.addError(result, KindMissingField, path, "Security scheme must have a type",
				withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
				withField("type"),
			)
			continue
		}

		switch secDef.Type {
		case "basic":
			// No further fields required
		case "apiKey":
			if secDef.Name == "" {
				v.addError(result, KindMissingField, path, "API key security scheme must have a name",
					withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
					withField("name"),
				)
			}
			if secDef.In == "" {
				v.addError(result, KindMissingField, path, "API key security scheme must specify 'in' (query or header)",
					withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
					withField("in"),
				)
			}
		case "oauth2":
			v.validateOAS2OAuth2(secDef, path, result, baseURL)
		default:
			v.addError(result, KindInvalidValue, path,
				fmt.Sprintf("Unknown security scheme type: %s", secDef.Type),
				withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
				withField("type"),
				withValue(secDef.Type),
			)
		}
	}
}

// validateOAS2OAuth2 validates flow-specific fields of an OAS 2.0 oauth2 scheme
func (v *Validator) validateOAS2OAuth2(secDef *parser.SecurityScheme, path string, result *ValidationResult, baseURL string) {
	if secDef.Flow == "" {
		v.addError(result, KindMissingField, path, "OAuth2 security scheme must have a flow",
			withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
			withField("flow"),
		)
		return
	}

	switch secDef.Flow {
	case "implicit", "accessCode":
		if secDef.AuthorizationURL == "" {
			v.addError(result, KindMissingField, path,
				fmt.Sprintf("OAuth2 flow '%s' requires authorizationUrl", secDef.Flow),
				withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
				withField("authorizationUrl"),
			)
		} else if !isValidURL(secDef.AuthorizationURL) {
			v.addError(result, KindInvalidURL, path,
				fmt.Sprintf("Invalid URL format for authorizationUrl: %s", secDef.AuthorizationURL),
				withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
				withField("authorizationUrl"),
				withValue(secDef.AuthorizationURL),
			)
		}
	case "password", "application":
		// tokenUrl checked below
	default:
		v.addError(result, KindInvalidValue, path,
			fmt.Sprintf("Unknown OAuth2 flow: %s", secDef.Flow),
			withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
			withField("flow"),
			withValue(secDef.Flow),
		)
		return
	}

	if secDef.Flow == "password" || secDef.Flow == "application" || secDef.Flow == "accessCode" {
		if secDef.TokenURL == "" {
			v.addError(result, KindMissingField, path,
				fmt.Sprintf("OAuth2 flow '%s' requires tokenUrl", secDef.Flow),
				withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
				withField("tokenUrl"),
			)
		} else if !isValidURL(secDef.TokenURL) {
			v.addError(result, KindInvalidURL, path,
				fmt.Sprintf("Invalid URL format for tokenUrl: %s", secDef.TokenURL),
				withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
				withField("tokenUrl"),
				withValue(secDef.TokenURL),
			)
		}
	}
}

// validateOAS2PathParameterConsistency checks that path parameters match the path template
func (v *Validator) validateOAS2PathParameterConsistency(doc *parser.OAS2Document, result *ValidationResult, baseURL string) {
	for _, pathPattern := range sortedKeys(doc.Paths) {
		pathItem := doc.Paths[pathPattern]
		if pathItem == nil {
			continue
		}

		pathParams := extractPathParameters(pathPattern)
		operations := parser.GetOperations(pathItem, parser.OASVersion20)

		for _, method := range sortedKeys(operations) {
			op := operations[method]
			if op == nil {
				continue
			}

			declaredParams := make(map[string]bool)

			for i, param := range pathItem.Parameters {
				if param != nil && param.In == parser.ParamInPath {
					declaredParams[param.Name] = true

					if !param.Required {
						v.addError(result, KindInvalidValue, fmt.Sprintf("paths.%s.parameters[%d]", pathPattern, i),
							"Path parameters must have required: true",
							withSpecRef(fmt.Sprintf("%s#parameter-object", baseURL)),
							withField("required"),
						)
					}
				}
			}

			for i, param := range op.Parameters {
				if param != nil && param.In == parser.ParamInPath {
					declaredParams[param.Name] = true

					if !param.Required {
						v.addError(result, KindInvalidValue, fmt.Sprintf("paths.%s.%s.parameters[%d]", pathPattern, method, i),
							"Path parameters must have required: true",
							withSpecRef(fmt.Sprintf("%s#parameter-object", baseURL)),
							withField("required"),
						)
					}
				}
			}

			// Verify all path template parameters are declared
			for _, paramName := range sortedKeys(pathParams) {
				if !declaredParams[paramName] {
					v.addError(result, KindMissingField, fmt.Sprintf("paths.%s.%s", pathPattern, method),
						fmt.Sprintf("Path template references parameter '{%s}' but it is not declared in parameters", paramName),
						withSpecRef(fmt.Sprintf("%s#path-item-object", baseURL)),
						withValue(paramName),
					)
				}
			}

			// Warn about declared path parameters not in template
			for _, paramName := range sortedKeys(declaredParams) {
				if !pathParams[paramName] {
					v.addWarning(result, KindInvalidValue, fmt.Sprintf("paths.%s.%s", pathPattern, method),
						fmt.Sprintf("Parameter '%s' is declared as path parameter but not used in path template", paramName),
						withSpecRef(fmt.Sprintf("%s#path-item-object", baseURL)),
						withValue(paramName),
					)
				}
			}
		}
	}
}
