package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/oaskit/oasv/oaserrors"
	"github.com/oaskit/oasv/parser"
)

// refContext carries the state of a reference validation pass: the set of
// resolvable reference strings and the set of references actually used
// anywhere in the document.
type refContext struct {
	valid map[string]bool
	used  map[string]bool
}

func newRefContext(valid map[string]bool) *refContext {
	return &refContext{
		valid: valid,
		used:  make(map[string]bool),
	}
}

// validateRef validates that a $ref string points to a valid location in the document
func (v *Validator) validateRef(ref, path string, refs *refContext, result *ValidationResult, baseURL string) {
	if ref == "" {
		return
	}

	refs.used[ref] = true

	// External references are classified syntactically and never fetched.
	// An unresolvable reference fails validation unless opted out.
	if parser.IsExternalRef(ref) {
		if !v.Ignore.Has(IgnoreExternalReferences) {
			v.addError(result, KindUnresolvedReference, path,
				fmt.Sprintf("$ref '%s' targets another document and was not resolved", ref),
				withSpecRef(baseURL),
				withField("$ref"),
				withValue(ref),
			)
		}
		return
	}

	if !parser.IsLocalRef(ref) {
		v.addError(result, KindMalformedReference, path,
			fmt.Sprintf("$ref '%s' is not a valid reference", ref),
			withSpecRef(baseURL),
			withField("$ref"),
			withValue(ref),
		)
		return
	}

	// Local refs must follow the component reference grammar
	if _, ok := parser.ParseLocalRef(ref); !ok {
		v.addError(result, KindMalformedReference, path,
			fmt.Sprintf("$ref '%s' does not follow the component reference format", ref),
			withSpecRef(baseURL),
			withField("$ref"),
			withValue(ref),
		)
		return
	}

	if !refs.valid[ref] {
		v.addError(result, KindUnresolvedReference, path,
			fmt.Sprintf("$ref '%s' does not resolve to a component in the document", ref),
			withSpecRef(baseURL),
			withField("$ref"),
			withValue(ref),
		)
	}
}

// buildOAS2ValidRefs builds a map of all valid $ref paths in an OAS 2.0 document
func buildOAS2ValidRefs(doc *parser.OAS2Document) map[string]bool {
	validRefs := make(map[string]bool)

	for name := range doc.Definitions {
		validRefs[fmt.Sprintf("#/definitions/%s", name)] = true
	}
	for name := range doc.Parameters {
		validRefs[fmt.Sprintf("#/parameters/%s", name)] = true
	}
	for name := range doc.Responses {
		validRefs[fmt.Sprintf("#/responses/%s", name)] = true
	}
	for name := range doc.SecurityDefinitions {
		validRefs[fmt.Sprintf("#/securityDefinitions/%s", name)] = true
	}

	return validRefs
}

// buildOAS3ValidRefs builds a map of all valid $ref paths in an OAS 3.x document
func buildOAS3ValidRefs(doc *parser.OAS3Document) map[string]bool {
	validRefs := make(map[string]bool)

	if doc.Components == nil {
		return validRefs
	}

	for name := range doc.Components.Schemas {
		validRefs[fmt.Sprintf("#/components/schemas/%s", name)] = true
	}
	for name := range doc.Components.Responses {
		validRefs[fmt.Sprintf("#/components/responses/%s", name)] = true
	}
	for name := range doc.Components.Parameters {
		validRefs[fmt.Sprintf("#/components/parameters/%s", name)] = true
	}
	for name := range doc.Components.Examples {
		validRefs[fmt.Sprintf("#/components/examples/%s", name)] = true
	}
	for name := range doc.Components.RequestBodies {
		validRefs[fmt.Sprintf("#/components/requestBodies/%s", name)] = true
	}
	for name := range doc.Components.Headers {
		validRefs[fmt.Sprintf("#/components/headers/%s", name)] = true
	}
	for name := range doc.Components.SecuritySchemes {
		validRefs[fmt.Sprintf("#/components/securitySchemes/%s", name)] = true
	}
	for name := range doc.Components.Links {
		validRefs[fmt.Sprintf("#/components/links/%s", name)] = true
	}
	for name := range doc.Components.Callbacks {
		validRefs[fmt.Sprintf("#/components/callbacks/%s", name)] = true
	}
	for name := range doc.Components.PathItems {
		validRefs[fmt.Sprintf("#/components/pathItems/%s", name)] = true
	}

	return validRefs
}

// validateSchemaRefs recursively validates all $ref values in a schema
func (v *Validator) validateSchemaRefs(schema *parser.Schema, path string, refs *refContext, result *ValidationResult, baseURL string) {
	if schema == nil {
		return
	}

	if schema.Ref != "" {
		v.validateRef(schema.Ref, path, refs, result, baseURL)
	}

	for _, propName := range sortedKeys(schema.Properties) {
		if propSchema := schema.Properties[propName]; propSchema != nil {
			v.validateSchemaRefs(propSchema, fmt.Sprintf("%s.properties.%s", path, propName), refs, result, baseURL)
		}
	}

	if schema.AdditionalProperties != nil && schema.AdditionalProperties.Schema != nil {
		v.validateSchemaRefs(schema.AdditionalProperties.Schema, fmt.Sprintf("%s.additionalProperties", path), refs, result, baseURL)
	}

	if schema.Items != nil {
		v.validateSchemaRefs(schema.Items, fmt.Sprintf("%s.items", path), refs, result, baseURL)
	}

	for i, subSchema := range schema.AllOf {
		if subSchema != nil {
			v.validateSchemaRefs(subSchema, fmt.Sprintf("%s.allOf[%d]", path, i), refs, result, baseURL)
		}
	}
	for i, subSchema := range schema.AnyOf {
		if subSchema != nil {
			v.validateSchemaRefs(subSchema, fmt.Sprintf("%s.anyOf[%d]", path, i), refs, result, baseURL)
		}
	}
	for i, subSchema := range schema.OneOf {
		if subSchema != nil {
			v.validateSchemaRefs(subSchema, fmt.Sprintf("%s.oneOf[%d]", path, i), refs, result, baseURL)
		}
	}

	if schema.Not != nil {
		v.validateSchemaRefs(schema.Not, fmt.Sprintf("%s.not", path), refs, result, baseURL)
	}

	for _, name := range sortedKeys(schema.Defs) {
		if defSchema := schema.Defs[name]; defSchema != nil {
			v.validateSchemaRefs(defSchema, fmt.Sprintf("%s.$defs.%s", path, name), refs, result, baseURL)
		}
	}
}

// validateParameterRef validates a parameter's $ref if present
func (v *Validator) validateParameterRef(param *parser.Parameter, path string, refs *refContext, result *ValidationResult, baseURL string) {
	if param == nil {
		return
	}

	if param.Ref != "" {
		v.validateRef(param.Ref, path, refs, result, baseURL)
	}

	if param.Schema != nil {
		v.validateSchemaRefs(param.Schema, fmt.Sprintf("%s.schema", path), refs, result, baseURL)
	}
	for _, mediaType := range sortedKeys(param.Content) {
		if mediaTypeObj := param.Content[mediaType]; mediaTypeObj != nil && mediaTypeObj.Schema != nil {
			v.validateSchemaRefs(mediaTypeObj.Schema, fmt.Sprintf("%s.content.%s.schema", path, mediaType), refs, result, baseURL)
		}
	}
}

// validateOperationResponses validates all responses for an operation.
// This handles both default and status code responses.
func (v *Validator) validateOperationResponses(op *parser.Operation, opPath string, refs *refContext, result *ValidationResult, baseURL string) {
	if op.Responses == nil {
		return
	}
	if op.Responses.Default != nil {
		v.validateResponseRef(op.Responses.Default, fmt.Sprintf("%s.responses.default", opPath), refs, result, baseURL)
	}
	for _, code := range sortedKeys(op.Responses.Codes) {
		if response := op.Responses.Codes[code]; response != nil {
			v.validateResponseRef(response, fmt.Sprintf("%s.responses.%s", opPath, code), refs, result, baseURL)
		}
	}
}

// validateResponseRef validates a response's $ref if present
func (v *Validator) validateResponseRef(response *parser.Response, path string, refs *refContext, result *ValidationResult, baseURL string) {
	if response == nil {
		return
	}

	if response.Ref != "" {
		v.validateRef(response.Ref, path, refs, result, baseURL)
	}

	// OAS 2.0 response schema
	if response.Schema != nil {
		v.validateSchemaRefs(response.Schema, fmt.Sprintf("%s.schema", path), refs, result, baseURL)
	}

	// Content schemas (OAS 3.x)
	for _, mediaType := range sortedKeys(response.Content) {
		if mediaTypeObj := response.Content[mediaType]; mediaTypeObj != nil && mediaTypeObj.Schema != nil {
			v.validateSchemaRefs(mediaTypeObj.Schema, fmt.Sprintf("%s.content.%s.schema", path, mediaType), refs, result, baseURL)
		}
	}

	for _, headerName := range sortedKeys(response.Headers) {
		if header := response.Headers[headerName]; header != nil {
			headerPath := fmt.Sprintf("%s.headers.%s", path, headerName)
			if header.Ref != "" {
				v.validateRef(header.Ref, headerPath, refs, result, baseURL)
			}
			if header.Schema != nil {
				v.validateSchemaRefs(header.Schema, fmt.Sprintf("%s.schema", headerPath), refs, result, baseURL)
			}
		}
	}

	// Links (OAS 3.x)
	for _, linkName := range sortedKeys(response.Links) {
		if link := response.Links[linkName]; link != nil && link.Ref != "" {
			v.validateRef(link.Ref, fmt.Sprintf("%s.links.%s", path, linkName), refs, result, baseURL)
		}
	}
}

// validateRequestBodyRef validates a request body's $ref if present
func (v *Validator) validateRequestBodyRef(requestBody *parser.RequestBody, path string, refs *refContext, result *ValidationResult, baseURL string) {
	if requestBody == nil {
		return
	}

	if requestBody.Ref != "" {
		v.validateRef(requestBody.Ref, path, refs, result, baseURL)
	}

	for _, mediaType := range sortedKeys(requestBody.Content) {
		if mediaTypeObj := requestBody.Content[mediaType]; mediaTypeObj != nil && mediaTypeObj.Schema != nil {
			v.validateSchemaRefs(mediaTypeObj.Schema, fmt.Sprintf("%s.content.%s.schema", path, mediaType), refs, result, baseURL)
		}
	}
}

// validateOAS2Refs validates all $ref values in an OAS 2.0 document and
// reports components that are never referenced.
func (v *Validator) validateOAS2Refs(doc *parser.OAS2Document, result *ValidationResult, baseURL string) {
	refs := newRefContext(buildOAS2ValidRefs(doc))

	for _, name := range sortedKeys(doc.Definitions) {
		if schema := doc.Definitions[name]; schema != nil {
			v.validateSchemaRefs(schema, fmt.Sprintf("definitions.%s", name), refs, result, baseURL)
		}
	}
	for _, name := range sortedKeys(doc.Parameters) {
		if param := doc.Parameters[name]; param != nil {
			v.validateParameterRef(param, fmt.Sprintf("parameters.%s", name), refs, result, baseURL)
		}
	}
	for _, name := range sortedKeys(doc.Responses) {
		if response := doc.Responses[name]; response != nil {
			v.validateResponseRef(response, fmt.Sprintf("responses.%s", name), refs, result, baseURL)
		}
	}

	for _, pathPattern := range sortedKeys(doc.Paths) {
		pathItem := doc.Paths[pathPattern]
		if pathItem == nil {
			continue
		}

		pathPrefix := fmt.Sprintf("paths.%s", pathPattern)

		for i, param := range pathItem.Parameters {
			if param != nil {
				v.validateParameterRef(param, fmt.Sprintf("%s.parameters[%d]", pathPrefix, i), refs, result, baseURL)
			}
		}

		operations := parser.GetOperations(pathItem, parser.OASVersion20)
		for _, method := range sortedKeys(operations) {
			op := operations[method]
			if op == nil {
				continue
			}

			opPath := fmt.Sprintf("%s.%s", pathPrefix, method)

			for i, param := range op.Parameters {
				if param != nil {
					v.validateParameterRef(param, fmt.Sprintf("%s.parameters[%d]", opPath, i), refs, result, baseURL)
				}
			}

			v.validateOperationResponses(op, opPath, refs, result, baseURL)
		}
	}

	// Security definitions are used through security requirements, not $ref
	markSecuritySchemeUsage(doc.Security, "#/securityDefinitions/", refs)
	for _, pathItem := range doc.Paths {
		if pathItem == nil {
			continue
		}
		for _, op := range parser.GetOperations(pathItem, parser.OASVersion20) {
			if op != nil {
				markSecuritySchemeUsage(op.Security, "#/securityDefinitions/", refs)
			}
		}
	}

	v.reportUnusedComponents(refs, result, baseURL)
	v.validateOAS2SchemaCycles(doc, result, baseURL)
}

// validateOAS3Refs validates all $ref values in an OAS 3.x document and
// reports components that are never referenced.
func (v *Validator) validateOAS3Refs(doc *parser.OAS3Document, result *ValidationResult, baseURL string) {
	refs := newRefContext(buildOAS3ValidRefs(doc))

	if doc.Components != nil {
		for _, name := range sortedKeys(doc.Components.Schemas) {
			if schema := doc.Components.Schemas[name]; schema != nil {
				v.validateSchemaRefs(schema, fmt.Sprintf("components.schemas.%s", name), refs, result, baseURL)
			}
		}
		for _, name := range sortedKeys(doc.Components.Parameters) {
			if param := doc.Components.Parameters[name]; param != nil {
				v.validateParameterRef(param, fmt.Sprintf("components.parameters.%s", name), refs, result, baseURL)
			}
		}
		for _, name := range sortedKeys(doc.Components.Responses) {
			if response := doc.Components.Responses[name]; response != nil {
				v.validateResponseRef(response, fmt.Sprintf("components.responses.%s", name), refs, result, baseURL)
			}
		}
		for _, name := range sortedKeys(doc.Components.RequestBodies) {
			if requestBody := doc.Components.RequestBodies[name]; requestBody != nil {
				v.validateRequestBodyRef(requestBody, fmt.Sprintf("components.requestBodies.%s", name), refs, result, baseURL)
			}
		}
		for _, name := range sortedKeys(doc.Components.Headers) {
			if header := doc.Components.Headers[name]; header != nil {
				headerPath := fmt.Sprintf("components.headers.%s", name)
				if header.Ref != "" {
					v.validateRef(header.Ref, headerPath, refs, result, baseURL)
				}
				if header.Schema != nil {
					v.validateSchemaRefs(header.Schema, fmt.Sprintf("%s.schema", headerPath), refs, result, baseURL)
				}
			}
		}
	}

	for _, pathPattern := range sortedKeys(doc.Paths) {
		pathItem := doc.Paths[pathPattern]
		if pathItem == nil {
			continue
		}

		pathPrefix := fmt.Sprintf("paths.%s", pathPattern)

		if pathItem.Ref != "" {
			v.validateRef(pathItem.Ref, pathPrefix, refs, result, baseURL)
		}

		for i, param := range pathItem.Parameters {
			if param != nil {
				v.validateParameterRef(param, fmt.Sprintf("%s.parameters[%d]", pathPrefix, i), refs, result, baseURL)
			}
		}

		v.validatePathItemOperationRefs(pathItem, pathPrefix, doc.OASVersion, refs, result, baseURL)
	}

	// Webhooks (OAS 3.1+)
	for _, webhookName := range sortedKeys(doc.Webhooks) {
		pathItem := doc.Webhooks[webhookName]
		if pathItem == nil {
			continue
		}

		pathPrefix := fmt.Sprintf("webhooks.%s", webhookName)

		if pathItem.Ref != "" {
			v.validateRef(pathItem.Ref, pathPrefix, refs, result, baseURL)
		}

		v.validatePathItemOperationRefs(pathItem, pathPrefix, doc.OASVersion, refs, result, baseURL)
	}

	// Security schemes are used through security requirements, not $ref
	markSecuritySchemeUsage(doc.Security, "#/components/securitySchemes/", refs)
	forEachOAS3Operation(doc, func(_ string, op *parser.Operation) {
		markSecuritySchemeUsage(op.Security, "#/components/securitySchemes/", refs)
	})

	v.reportUnusedComponents(refs, result, baseURL)
	v.validateOAS3SchemaCycles(doc, result, baseURL)
}

// validatePathItemOperationRefs validates $ref values within all operations of a PathItem.
// This is used by both paths and webhooks validation to avoid code duplication.
func (v *Validator) validatePathItemOperationRefs(pathItem *parser.PathItem, pathPrefix string, version parser.OASVersion, refs *refContext, result *ValidationResult, baseURL string) {
	operations := parser.GetOperations(pathItem, version)
	for _, method := range sortedKeys(operations) {
		op := operations[method]
		if op == nil {
			continue
		}

		opPath := fmt.Sprintf("%s.%s", pathPrefix, method)

		for i, param := range op.Parameters {
			if param != nil {
				v.validateParameterRef(param, fmt.Sprintf("%s.parameters[%d]", opPath, i), refs, result, baseURL)
			}
		}

		if op.RequestBody != nil {
			v.validateRequestBodyRef(op.RequestBody, fmt.Sprintf("%s.requestBody", opPath), refs, result, baseURL)
		}

		v.validateOperationResponses(op, opPath, refs, result, baseURL)
	}
}

// markSecuritySchemeUsage records security scheme names appearing in
// security requirements as used, under the given container prefix.
func markSecuritySchemeUsage(reqs []parser.SecurityRequirement, prefix string, refs *refContext) {
	for _, req := range reqs {
		for schemeName := range req {
			refs.used[prefix+schemeName] = true
		}
	}
}

// reportUnusedComponents warns about declared components that no $ref or
// security requirement targets. Sorted for deterministic output.
func (v *Validator) reportUnusedComponents(refs *refContext, result *ValidationResult, baseURL string) {
	if v.Ignore.Has(IgnoreUnusedComponents) {
		return
	}

	var unused []string
	for ref := range refs.valid {
		if !refs.used[ref] {
			unused = append(unused, ref)
		}
	}
	sort.Strings(unused)

	for _, ref := range unused {
		path := strings.ReplaceAll(strings.TrimPrefix(ref, "#/"), "/", ".")
		v.addWarning(result, KindUnusedComponent, path,
			fmt.Sprintf("Component '%s' is declared but never referenced", ref),
			withSpecRef(baseURL),
			withValue(ref),
		)
	}
}

// validateOAS2SchemaCycles reports definitions whose reference chains
// never reach a concrete schema.
func (v *Validator) validateOAS2SchemaCycles(doc *parser.OAS2Document, result *ValidationResult, baseURL string) {
	resolver := parser.NewRefResolver(doc)
	names := make([]string, 0, len(doc.Definitions))
	for name, schema := range doc.Definitions {
		if schema != nil && schema.Ref != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		v.checkSchemaCycle(resolver, fmt.Sprintf("#/definitions/%s", name), fmt.Sprintf("definitions.%s", name), result, baseURL)
	}
}

// validateOAS3SchemaCycles reports component schemas whose reference
// chains never reach a concrete schema.
func (v *Validator) validateOAS3SchemaCycles(doc *parser.OAS3Document, result *ValidationResult, baseURL string) {
	if doc.Components == nil {
		return
	}
	resolver := parser.NewRefResolver(doc)
	names := make([]string, 0, len(doc.Components.Schemas))
	for name, schema := range doc.Components.Schemas {
		if schema != nil && schema.Ref != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		v.checkSchemaCycle(resolver, fmt.Sprintf("#/components/schemas/%s", name), fmt.Sprintf("components.schemas.%s", name), result, baseURL)
	}
}

// checkSchemaCycle runs the resolver over one top-level alias schema. A
// schema that references itself through properties or composition members
// is fine; only a pure alias loop can never terminate.
func (v *Validator) checkSchemaCycle(resolver *parser.RefResolver, ref, path string, result *ValidationResult, baseURL string) {
	_, err := resolver.ResolveSchema(ref)
	if err == nil {
		return
	}

	var refErr *oaserrors.ReferenceError
	if errors.As(err, &refErr) && refErr.IsCircular {
		v.addError(result, KindCyclicReference, path,
			fmt.Sprintf("Schema reference chain starting at '%s' is circular and never reaches a concrete schema", ref),
			withSpecRef(baseURL),
			withField("$ref"),
			withValue(ref),
		)
	}
	// Unresolved targets are reported by the ref pass, not here
}
