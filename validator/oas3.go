package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/oaskit/oasv/internal/httputil"
	"github.com/oaskit/oasv/parser"
)

// validateOAS3 performs OAS 3.x specific validation
func (v *Validator) validateOAS3(doc *parser.OAS3Document, result *ValidationResult) {
	version := doc.OpenAPI
	var baseURL string

	// Determine the correct spec URL based on version
	switch doc.OASVersion {
	case parser.OASVersion300:
		baseURL = "https://spec.openapis.org/oas/v3.0.0.html"
	case parser.OASVersion301:
		baseURL = "https://spec.openapis.org/oas/v3.0.1.html"
	case parser.OASVersion302:
		baseURL = "https://spec.openapis.org/oas/v3.0.2.html"
	case parser.OASVersion303:
		baseURL = "https://spec.openapis.org/oas/v3.0.3.html"
	case parser.OASVersion304:
		baseURL = "https://spec.openapis.org/oas/v3.0.4.html"
	case parser.OASVersion310:
		baseURL = "https://spec.openapis.org/oas/v3.1.0.html"
	case parser.OASVersion311:
		baseURL = "https://spec.openapis.org/oas/v3.1.1.html"
	default:
		baseURL = fmt.Sprintf("https://spec.openapis.org/oas/v%s.html", version)
	}

	v.validateOAS3Info(doc, result, baseURL)
	v.validateOAS3Servers(doc, result, baseURL)

	declaredTags := v.collectDeclaredTags(doc.Tags, result, baseURL)

	v.validateOAS3Paths(doc, declaredTags, result, baseURL)
	v.validateOAS3Components(doc, result, baseURL)
	v.validateOAS3Webhooks(doc, declaredTags, result, baseURL)
	v.validateOAS3PathParameterConsistency(doc, result, baseURL)
	v.validateOAS3SecurityRequirements(doc, result, baseURL)
	v.validateOAS3OperationIds(doc, result, baseURL)
	v.validateExternalDocs(doc.ExternalDocs, "externalDocs", result, baseURL)
	v.validateOAS3Refs(doc, result, baseURL)
}

// forEachOAS3Operation invokes fn for every operation under paths and
// webhooks, with its document path prefix.
func forEachOAS3Operation(doc *parser.OAS3Document, fn func(opPath string, op *parser.Operation)) {
	for _, pathPattern := range sortedKeys(doc.Paths) {
		pathItem := doc.Paths[pathPattern]
		if pathItem == nil {
			continue
		}
		operations := parser.GetOperations(pathItem, doc.OASVersion)
		for _, method := range sortedKeys(operations) {
			if op := operations[method]; op != nil {
				fn(fmt.Sprintf("paths.%s.%s", pathPattern, method), op)
			}
		}
	}
	for _, webhookName := range sortedKeys(doc.Webhooks) {
		pathItem := doc.Webhooks[webhookName]
		if pathItem == nil {
			continue
		}
		operations := parser.GetOperations(pathItem, doc.OASVersion)
		for _, method := range sortedKeys(operations) {
			if op := operations[method]; op != nil {
				fn(fmt.Sprintf("webhooks.%s.%s", webhookName, method), op)
			}
		}
	}
}

// validateOAS3Info validates the info object in OAS 3.x
func (v *Validator) validateOAS3Info(doc *parser.OAS3Document, result *ValidationResult, baseURL string) {
	if doc.Info == nil {
		v.addError(result, KindMissingField, "info", "Document must have an info object",
			withSpecRef(fmt.Sprintf("%s#info-object", baseURL)),
			withField("info"),
		)
		return
	}
	validateSPDX := doc.OASVersion.Series() == parser.Series31
	v.validateInfoObject(doc.Info, result, baseURL, validateSPDX)
}

// validateOAS3OperationIds validates that operationIds are unique across the document
func (v *Validator) validateOAS3OperationIds(doc *parser.OAS3Document, result *ValidationResult, baseURL string) {
	operationIds := make(map[string]string) // map of operationId -> path where first seen

	for _, pathPattern := range sortedKeys(doc.Paths) {
		pathItem := doc.Paths[pathPattern]
		if pathItem == nil {
			continue
		}
		operations := parser.GetOperations(pathItem, doc.OASVersion)
		v.checkDuplicateOperationIds(operations, "paths", pathPattern, operationIds, result, baseURL)
	}

	// Webhooks share the same operationId namespace (OAS 3.1+)
	for _, webhookName := range sortedKeys(doc.Webhooks) {
		pathItem := doc.Webhooks[webhookName]
		if pathItem == nil {
			continue
		}
		operations := parser.GetOperations(pathItem, doc.OASVersion)
		v.checkDuplicateOperationIds(operations, "webhooks", webhookName, operationIds, result, baseURL)
	}
}

// validateOAS3Servers validates server objects in OAS 3.x
func (v *Validator) validateOAS3Servers(doc *parser.OAS3Document, result *ValidationResult, baseURL string) {
	for i, server := range doc.Servers {
		if server == nil {
			continue
		}
		path := fmt.Sprintf("servers[%d]", i)

		if server.URL == "" {
			v.addError(result, KindMissingField, path, "Server must have a url",
				withSpecRef(fmt.Sprintf("%s#server-object", baseURL)),
				withField("url"),
			)
		} else if !isTemplatedURL(server.URL) && !isValidURL(server.URL) {
			v.addError(result, KindInvalidURL, path,
				fmt.Sprintf("Invalid URL format for server url: %s", server.URL),
				withSpecRef(fmt.Sprintf("%s#server-object", baseURL)),
				withField("url"),
				withValue(server.URL),
			)
		}

		// Validate server variables
		for _, varName := range sortedKeys(server.Variables) {
			varObj := server.Variables[varName]
			varPath := fmt.Sprintf("%s.variables.%s", path, varName)

			if varObj.Default == "" {
				v.addError(result, KindMissingField, varPath, "Server variable must have a default value",
					withSpecRef(fmt.Sprintf("%s#server-variable-object", baseURL)),
					withField("default"),
				)
			}

			// If enum is specified, default must be in enum
			if len(varObj.Enum) > 0 && !slices.Contains(varObj.Enum, varObj.Default) {
				v.addError(result, KindInvalidValue, varPath,
					fmt.Sprintf("Server variable default value '%s' must be one of the enum values", varObj.Default),
					withSpecRef(fmt.Sprintf("%s#server-variable-object", baseURL)),
					withField("default"),
					withValue(varObj.Default),
				)
			}
		}

		// Variables named in the URL template must be declared
		for _, varName := range sortedKeys(extractPathParameters(server.URL)) {
			if _, ok := server.Variables[varName]; !ok {
				v.addError(result, KindMissingField, path,
					fmt.Sprintf("Server URL references variable '{%s}' but it is not declared in variables", varName),
					withSpecRef(fmt.Sprintf("%s#server-object", baseURL)),
					withValue(varName),
				)
			}
		}
	}
}

// validateOAS3Paths validates paths in OAS 3.x
func (v *Validator) validateOAS3Paths(doc *parser.OAS3Document, declaredTags map[string]bool, result *ValidationResult, baseURL string) {
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

		operations := parser.GetOperations(pathItem, doc.OASVersion)
		for _, method := range sortedKeys(operations) {
			op := operations[method]
			if op == nil {
				continue
			}

			opPath := fmt.Sprintf("%s.%s", pathPrefix, method)
			v.validateOAS3Operation(op, opPath, doc.OASVersion, result, baseURL)
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

// validateOAS3Operation validates an operation in OAS 3.x
func (v *Validator) validateOAS3Operation(op *parser.Operation, path string, version parser.OASVersion, result *ValidationResult, baseURL string) {
	if op.Responses == nil {
		v.addError(result, KindMissingField, path, "Operation must have a responses object",
			withSpecRef(fmt.Sprintf("%s#operation-object", baseURL)),
			withField("responses"),
		)
	}

	if op.RequestBody != nil {
		v.validateOAS3RequestBody(op.RequestBody, fmt.Sprintf("%s.requestBody", path), version, result, baseURL)
	}

	v.validateParameterUniqueness(op.Parameters, path, result, baseURL)

	for i, param := range op.Parameters {
		if param == nil || param.Ref != "" {
			continue
		}
		v.validateOAS3Parameter(param, fmt.Sprintf("%s.parameters[%d]", path, i), version, result, baseURL)
	}

	v.validateResponseStatusCodes(op.Responses, path, result, baseURL)
	v.validateResponseDescriptions(op.Responses, path, result, baseURL)

	if op.Responses != nil {
		if op.Responses.Default != nil {
			v.validateOAS3ResponseContent(op.Responses.Default, fmt.Sprintf("%s.responses.default", path), version, result, baseURL)
		}
		for _, code := range sortedKeys(op.Responses.Codes) {
			v.validateOAS3ResponseContent(op.Responses.Codes[code], fmt.Sprintf("%s.responses.%s", path, code), version, result, baseURL)
		}
	}
}

// validateOAS3Parameter validates a concrete (non-$ref) parameter
func (v *Validator) validateOAS3Parameter(param *parser.Parameter, path string, version parser.OASVersion, result *ValidationResult, baseURL string) {
	hasSchema := param.Schema != nil
	hasContent := len(param.Content) > 0

	if !hasSchema && !hasContent {
		v.addError(result, KindMissingField, path, "Parameter must have either a schema or content",
			withSpecRef(fmt.Sprintf("%s#parameter-object", baseURL)),
		)
	}
	if hasSchema && hasContent {
		v.addError(result, KindInvalidValue, path, "Parameter must not have both schema and content",
			withSpecRef(fmt.Sprintf("%s#parameter-object", baseURL)),
		)
	}

	if hasSchema {
		v.validateSchema(param.Schema, fmt.Sprintf("%s.schema", path), version, result)
	}
}

// validateOAS3ResponseContent validates media types and schemas of a response
func (v *Validator) validateOAS3ResponseContent(resp *parser.Response, path string, version parser.OASVersion, result *ValidationResult, baseURL string) {
	if resp == nil || resp.Ref != "" {
		return
	}
	for _, mediaType := range sortedKeys(resp.Content) {
		mediaTypeObj := resp.Content[mediaType]
		mediaTypePath := fmt.Sprintf("%s.content.%s", path, mediaType)

		if !httputil.IsValidMediaType(mediaType) {
			v.addError(result, KindInvalidValue, mediaTypePath, fmt.Sprintf("Invalid media type: %s", mediaType),
				withSpecRef(fmt.Sprintf("%s#response-object", baseURL)),
				withValue(mediaType),
			)
		}

		if mediaTypeObj != nil && mediaTypeObj.Schema != nil {
			v.validateSchema(mediaTypeObj.Schema, fmt.Sprintf("%s.schema", mediaTypePath), version, result)
		}
	}
}

// validateOAS3RequestBody validates a request body in OAS 3.x
func (v *Validator) validateOAS3RequestBody(requestBody *parser.RequestBody, path string, version parser.OASVersion, result *ValidationResult, baseURL string) {
	if requestBody == nil {
		return
	}

	// Skip validation if this is a $ref
	if requestBody.Ref != "" {
		return
	}

	// RequestBody must have content
	if len(requestBody.Content) == 0 {
		v.addError(result, KindMissingField, path, "RequestBody must have a content object with at least one media type",
			withSpecRef(fmt.Sprintf("%s#request-body-object", baseURL)),
			withField("content"),
		)
		return
	}

	for _, mediaType := range sortedKeys(requestBody.Content) {
		mediaTypeObj := requestBody.Content[mediaType]
		mediaTypePath := fmt.Sprintf("%s.content.%s", path, mediaType)

		if !httputil.IsValidMediaType(mediaType) {
			v.addError(result, KindInvalidValue, mediaTypePath, fmt.Sprintf("Invalid media type: %s", mediaType),
				withSpecRef(fmt.Sprintf("%s#request-body-object", baseURL)),
				withValue(mediaType),
			)
		}

		if mediaTypeObj != nil && mediaTypeObj.Schema != nil {
			v.validateSchema(mediaTypeObj.Schema, fmt.Sprintf("%s.schema", mediaTypePath), version, result)
		}
	}
}

// validateOAS3Components validates components in OAS 3.x
func (v *Validator) validateOAS3Components(doc *parser.OAS3Document, result *ValidationResult, baseURL string) {
	if doc.Components == nil {
		return
	}

	// Validate schemas
	for _, name := range sortedKeys(doc.Components.Schemas) {
		schema := doc.Components.Schemas[name]
		v.validateSchemaName(name, "components.schemas", result)
		if schema == nil {
			continue
		}
		path := fmt.Sprintf("components.schemas.%s", name)
		v.validateSchema(schema, path, doc.OASVersion, result)
	}

	// Validate responses
	for _, name := range sortedKeys(doc.Components.Responses) {
		response := doc.Components.Responses[name]
		if response == nil {
			continue
		}
		path := fmt.Sprintf("components.responses.%s", name)

		if response.Ref == "" && response.Description == "" {
			v.addError(result, KindMissingField, path, "Response must have a description",
				withSpecRef(fmt.Sprintf("%s#response-object", baseURL)),
				withField("description"),
			)
		}
		v.validateOAS3ResponseContent(response, path, doc.OASVersion, result, baseURL)
	}

	// Validate request bodies
	for _, name := range sortedKeys(doc.Components.RequestBodies) {
		requestBody := doc.Components.RequestBodies[name]
		if requestBody == nil {
			continue
		}
		path := fmt.Sprintf("components.requestBodies.%s", name)
		v.validateOAS3RequestBody(requestBody, path, doc.OASVersion, result, baseURL)
	}

	// Validate parameters
	for _, name := range sortedKeys(doc.Components.Parameters) {
		param := doc.Components.Parameters[name]
		if param == nil || param.Ref != "" {
			continue
		}
		path := fmt.Sprintf("components.parameters.%s", name)

		v.validateOAS3Parameter(param, path, doc.OASVersion, result, baseURL)

		// Path parameters must have required: true
		if param.In == parser.ParamInPath && !param.Required {
			v.addError(result, KindInvalidValue, path, "Path parameters must have required: true",
				withSpecRef(fmt.Sprintf("%s#parameter-object", baseURL)),
				withField("required"),
			)
		}
	}

	// Validate security schemes
	for _, name := range sortedKeys(doc.Components.SecuritySchemes) {
		secScheme := doc.Components.SecuritySchemes[name]
		if secScheme == nil {
			continue
		}
		path := fmt.Sprintf("components.securitySchemes.%s", name)
		v.validateOAS3SecurityScheme(secScheme, path, result, baseURL)
	}
}

// validateOAS3SecurityScheme validates a security scheme in OAS 3.x
func (v *Validator) validateOAS3SecurityScheme(scheme *parser.SecurityScheme, path string, result *ValidationResult, baseURL string) {
	if scheme.Ref != "" {
		return
	}
	if scheme.Type == "" {
		v.addError(result, KindMissingField, path, "Security scheme must have a type",
			withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
			withField("type"),
		)
		return
	}

	switch scheme.Type {
	case "apiKey":
		if scheme.Name == "" {
			v.addError(result, KindMissingField, path, "API key security scheme must have a name",
				withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
				withField("name"),
			)
		}
		if scheme.In == "" {
			v.addError(result, KindMissingField, path, "API key security scheme must specify 'in' (query, header, or cookie)",
				withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
				withField("in"),
			)
		}
	case "http":
		if scheme.Scheme == "" {
			v.addError(result, KindMissingField, path, "HTTP security scheme must have a scheme (e.g., 'basic', 'bearer')",
				withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
				withField("scheme"),
			)
		}
	case "oauth2":
		if scheme.Flows == nil {
			v.addError(result, KindMissingField, path, "OAuth2 security scheme must have flows",
				withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
				withField("flows"),
			)
		} else {
			v.validateOAuth2Flows(scheme.Flows, path, result, baseURL)
		}
	case "openIdConnect":
		if scheme.OpenIDConnectURL == "" {
			v.addError(result, KindMissingField, path, "OpenID Connect security scheme must have openIdConnectUrl",
				withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
				withField("openIdConnectUrl"),
			)
		} else if !isValidURL(scheme.OpenIDConnectURL) {
			v.addError(result, KindInvalidURL, path,
				fmt.Sprintf("Invalid URL format for openIdConnectUrl: %s", scheme.OpenIDConnectURL),
				withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
				withField("openIdConnectUrl"),
				withValue(scheme.OpenIDConnectURL),
			)
		}
	default:
		v.addError(result, KindInvalidValue, path,
			fmt.Sprintf("Unknown security scheme type: %s", scheme.Type),
			withSpecRef(fmt.Sprintf("%s#security-scheme-object", baseURL)),
			withField("type"),
			withValue(scheme.Type),
		)
	}
}

// validateOAuth2Flows validates OAuth2 flows in OAS 3.x
func (v *Validator) validateOAuth2Flows(flows *parser.OAuthFlows, path string, result *ValidationResult, baseURL string) {
	type urlCheck struct {
		value string
		field string
	}
	checkFlow := func(flowPath string, scopes map[string]string, required []urlCheck) {
		for _, c := range required {
			if c.value == "" {
				v.addError(result, KindMissingField, flowPath,
					fmt.Sprintf("OAuth flow must have %s", c.field),
					withSpecRef(fmt.Sprintf("%s#oauth-flows-object", baseURL)),
					withField(c.field),
				)
			} else if !isValidURL(c.value) {
				v.addError(result, KindInvalidURL, flowPath,
					fmt.Sprintf("Invalid URL format for %s: %s", c.field, c.value),
					withSpecRef(fmt.Sprintf("%s#oauth-flows-object", baseURL)),
					withField(c.field),
					withValue(c.value),
				)
			}
		}
		if scopes == nil {
			v.addError(result, KindMissingField, flowPath, "OAuth flow must have a scopes map",
				withSpecRef(fmt.Sprintf("%s#oauth-flows-object", baseURL)),
				withField("scopes"),
			)
		}
	}

	if flows.Implicit != nil {
		checkFlow(fmt.Sprintf("%s.flows.implicit", path), flows.Implicit.Scopes, []urlCheck{
			{flows.Implicit.AuthorizationURL, "authorizationUrl"},
		})
	}
	if flows.Password != nil {
		checkFlow(fmt.Sprintf("%s.flows.password", path), flows.Password.Scopes, []urlCheck{
			{flows.Password.TokenURL, "tokenUrl"},
		})
	}
	if flows.ClientCredentials != nil {
		checkFlow(fmt.Sprintf("%s.flows.clientCredentials", path), flows.ClientCredentials.Scopes, []urlCheck{
			{flows.ClientCredentials.TokenURL, "tokenUrl"},
		})
	}
	if flows.AuthorizationCode != nil {
		checkFlow(fmt.Sprintf("%s.flows.authorizationCode", path), flows.AuthorizationCode.Scopes, []urlCheck{
			{flows.AuthorizationCode.AuthorizationURL, "authorizationUrl"},
			{flows.AuthorizationCode.TokenURL, "tokenUrl"},
		})
	}
}

// validateOAS3Webhooks validates webhooks in OAS 3.1+
func (v *Validator) validateOAS3Webhooks(doc *parser.OAS3Document, declaredTags map[string]bool, result *ValidationResult, baseURL string) {
	if len(doc.Webhooks) == 0 {
		return
	}

	// The parser rejects webhooks below 3.1 during structure validation;
	// repeat the check for documents constructed in code.
	if doc.OASVersion.Series() != parser.Series31 {
		v.addError(result, KindInvalidValue, "webhooks",
			fmt.Sprintf("Webhooks are only supported in OAS 3.1+, but document is version %s", doc.OASVersion),
			withField("webhooks"),
		)
		return
	}

	for _, webhookName := range sortedKeys(doc.Webhooks) {
		pathItem := doc.Webhooks[webhookName]
		if pathItem == nil {
			continue
		}

		pathPrefix := fmt.Sprintf("webhooks.%s", webhookName)

		if webhookName == "" {
			v.addError(result, KindInvalidValue, "webhooks", "Webhook name cannot be empty",
				withField("name"),
			)
		}

		v.validateParameterUniqueness(pathItem.Parameters, pathPrefix, result, baseURL)

		operations := parser.GetOperations(pathItem, doc.OASVersion)
		for _, method := range sortedKeys(operations) {
			op := operations[method]
			if op == nil {
				continue
			}

			opPath := fmt.Sprintf("%s.%s", pathPrefix, method)
			v.validateOAS3Operation(op, opPath, doc.OASVersion, result, baseURL)
			v.validateOperationTags(op, opPath, declaredTags, result, baseURL)
		}
	}
}

// validateOAS3PathParameterConsistency checks that path parameters match the path template
func (v *Validator) validateOAS3PathParameterConsistency(doc *parser.OAS3Document, result *ValidationResult, baseURL string) {
	for _, pathPattern := range sortedKeys(doc.Paths) {
		pathItem := doc.Paths[pathPattern]
		if pathItem == nil {
			continue
		}

		pathParams := extractPathParameters(pathPattern)
		operations := parser.GetOperations(pathItem, doc.OASVersion)

		for _, method := range sortedKeys(operations) {
			op := operations[method]
			if op == nil {
				continue
			}

			declaredParams := make(map[string]bool)

			// Path-level parameters apply to every operation
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

// validateOAS3SecurityRequirements validates security requirements reference existing schemes
func (v *Validator) validateOAS3SecurityRequirements(doc *parser.OAS3Document, result *ValidationResult, baseURL string) {
	availableSchemes := make(map[string]bool)
	if doc.Components != nil {
		for name := range doc.Components.SecuritySchemes {
			availableSchemes[name] = true
		}
	}

	// Root-level security requirements
	for i, secReq := range doc.Security {
		for _, schemeName := range sortedKeys(secReq) {
			if !availableSchemes[schemeName] {
				v.addError(result, KindUndeclaredSecurityScheme, fmt.Sprintf("security[%d].%s", i, schemeName),
					fmt.Sprintf("Security requirement references undefined security scheme: %s", schemeName),
					withSpecRef(fmt.Sprintf("%s#security-requirement-object", baseURL)),
					withValue(schemeName),
				)
			}
		}
	}

	// Operation-level security requirements
	forEachOAS3Operation(doc, func(opPath string, op *parser.Operation) {
		for i, secReq := range op.Security {
			for _, schemeName := range sortedKeys(secReq) {
				if !availableSchemes[schemeName] {
					v.addError(result, KindUndeclaredSecurityScheme, fmt.Sprintf("%s.security[%d].%s", opPath, i, schemeName),
						fmt.Sprintf("Security requirement references undefined security scheme: %s", schemeName),
						withSpecRef(fmt.Sprintf("%s#security-requirement-object", baseURL)),
						withValue(schemeName),
					)
				}
			}
		}
	})
}
