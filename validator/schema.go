package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oaskit/oasv/parser"
)

// componentNameRegex is the fixed-field name grammar for component keys.
var componentNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// validateSchemaName checks that a component key follows the fixed-field
// name grammar.
func (v *Validator) validateSchemaName(name, pathPrefix string, result *ValidationResult) {
	if name == "" {
		v.addError(result, KindInvalidValue, pathPrefix, "schema name cannot be empty",
			withField("name"),
			withValue(""),
		)
		return
	}
	if !componentNameRegex.MatchString(name) {
		v.addError(result, KindInvalidValue, fmt.Sprintf("%s.%s", pathPrefix, name),
			fmt.Sprintf("schema name %q must match %s", name, componentNameRegex.String()),
			withField("name"),
			withValue(name),
		)
	}
}

// validateSchema performs schema validation appropriate to the document's
// OAS version.
func (v *Validator) validateSchema(schema *parser.Schema, path string, version parser.OASVersion, result *ValidationResult) {
	v.validateSchemaWithVisited(schema, path, version, result, make(map[*parser.Schema]bool))
}

// validateSchemaWithVisited performs schema validation with cycle protection.
// The visited set guards against documents constructed in code that embed a
// node inside its own members; decoded documents are always finite trees.
func (v *Validator) validateSchemaWithVisited(schema *parser.Schema, path string, version parser.OASVersion, result *ValidationResult, visited map[*parser.Schema]bool) {
	if schema == nil {
		return
	}

	if visited[schema] {
		return
	}
	visited[schema] = true

	// Bound nesting depth to prevent resource exhaustion
	depth := strings.Count(path, ".")
	if depth > maxSchemaNestingDepth {
		v.addError(result, KindInvalidValue, path,
			fmt.Sprintf("Schema nesting depth (%d) exceeds maximum allowed (%d)", depth, maxSchemaNestingDepth),
			withSpecRef(getJSONSchemaRef()),
		)
		return
	}

	// A node defined via $ref carries no local keywords worth checking;
	// the reference itself is verified by the ref pass.
	if schema.Ref != "" {
		return
	}

	v.validateSchemaDialect(schema, path, version, result)
	v.validateComposition(schema, path, result)

	if len(schema.Enum) > 0 {
		v.validateEnumValues(schema, path, result)
	}

	v.validateSchemaTypeConstraints(schema, path, version, result)
	v.validateRequiredProperties(schema, path, result)

	if schema.Discriminator != nil {
		if schema.Discriminator.PropertyName == "" {
			v.addError(result, KindMissingField, fmt.Sprintf("%s.discriminator", path),
				"Discriminator must have a propertyName",
				withField("propertyName"),
			)
		}
		if kind := schema.Kind(); kind != parser.KindObject && kind != parser.KindComposed {
			v.addError(result, KindInvalidValue, fmt.Sprintf("%s.discriminator", path),
				fmt.Sprintf("Discriminator is only allowed on object or composed schemas, not %s schemas", kind),
				withField("discriminator"),
			)
		}
	}

	v.validateNestedSchemas(schema, path, version, result, visited)
}

// validateSchemaDialect reports keywords that do not belong to the
// document's dialect.
func (v *Validator) validateSchemaDialect(schema *parser.Schema, path string, version parser.OASVersion, result *ValidationResult) {
	series := version.Series()

	if series == parser.Series20 {
		if schema.AnyOf != nil {
			v.addError(result, KindInvalidValue, path, "anyOf is not supported in OAS 2.0",
				withField("anyOf"),
			)
		}
		if schema.OneOf != nil {
			v.addError(result, KindInvalidValue, path, "oneOf is not supported in OAS 2.0",
				withField("oneOf"),
			)
		}
		if schema.Not != nil {
			v.addError(result, KindInvalidValue, path, "not is not supported in OAS 2.0",
				withField("not"),
			)
		}
		if schema.Nullable {
			v.addError(result, KindInvalidValue, path, "nullable is not supported in OAS 2.0",
				withField("nullable"),
			)
		}
	}

	// nullable was removed in 3.1 in favor of type arrays
	if series == parser.Series31 && schema.Nullable {
		v.addWarning(result, KindInvalidValue, path,
			"nullable was removed in OAS 3.1; use a type array with \"null\" instead",
			withField("nullable"),
		)
	}

	// Type arrays are a 3.1 feature
	if _, isArray := schema.Type.([]any); isArray && series != parser.Series31 {
		v.addError(result, KindInvalidValue, path,
			fmt.Sprintf("type arrays are only supported in OAS 3.1+, but document is version %s", version),
			withField("type"),
			withValue(schema.Type),
		)
	}
}

// validateComposition reports composition keywords that are present but
// empty. An empty member list matches nothing useful and is always a
// mistake in the source document.
func (v *Validator) validateComposition(schema *parser.Schema, path string, result *ValidationResult) {
	check := func(members []*parser.Schema, keyword string) {
		if members != nil && len(members) == 0 {
			v.addError(result, KindEmptyComposition, path,
				fmt.Sprintf("%s must have at least one member schema", keyword),
				withSpecRef(getJSONSchemaRef()),
				withField(keyword),
			)
		}
	}
	check(schema.AllOf, "allOf")
	check(schema.AnyOf, "anyOf")
	check(schema.OneOf, "oneOf")
}

// validateEnumValues validates that enum values match the declared type
func (v *Validator) validateEnumValues(schema *parser.Schema, path string, result *ValidationResult) {
	typ, ok := schema.TypeString()
	if !ok {
		return
	}

	for i, enumVal := range schema.Enum {
		enumPath := fmt.Sprintf("%s.enum[%d]", path, i)

		// Null members are permitted for nullable schemas
		if enumVal == nil {
			continue
		}

		switch typ {
		case "string":
			if _, ok := enumVal.(string); !ok {
				v.addError(result, KindInvalidValue, enumPath,
					fmt.Sprintf("Enum value must be a string (found %T)", enumVal),
					withSpecRef(getJSONSchemaRef()),
					withField("enum"),
					withValue(enumVal),
				)
			}
		case "integer":
			switch n := enumVal.(type) {
			case int, int32, int64:
				// Valid integer
			case float64:
				if n != float64(int64(n)) {
					v.addError(result, KindInvalidValue, enumPath,
						fmt.Sprintf("Enum value must be an integer (found %v)", enumVal),
						withSpecRef(getJSONSchemaRef()),
						withField("enum"),
						withValue(enumVal),
					)
				}
			default:
				v.addError(result, KindInvalidValue, enumPath,
					fmt.Sprintf("Enum value must be an integer (found %T)", enumVal),
					withSpecRef(getJSONSchemaRef()),
					withField("enum"),
					withValue(enumVal),
				)
			}
		case "number":
			switch enumVal.(type) {
			case int, int32, int64, float32, float64:
				// Valid number
			default:
				v.addError(result, KindInvalidValue, enumPath,
					fmt.Sprintf("Enum value must be a number (found %T)", enumVal),
					withSpecRef(getJSONSchemaRef()),
					withField("enum"),
					withValue(enumVal),
				)
			}
		case "boolean":
			if _, ok := enumVal.(bool); !ok {
				v.addError(result, KindInvalidValue, enumPath,
					fmt.Sprintf("Enum value must be a boolean (found %T)", enumVal),
					withSpecRef(getJSONSchemaRef()),
					withField("enum"),
					withValue(enumVal),
				)
			}
		case "null":
			v.addError(result, KindInvalidValue, enumPath, "Enum value must be null",
				withSpecRef(getJSONSchemaRef()),
				withField("enum"),
				withValue(enumVal),
			)
		}
	}
}

// validateSchemaTypeConstraints validates type-specific constraints for a schema
func (v *Validator) validateSchemaTypeConstraints(schema *parser.Schema, path string, version parser.OASVersion, result *ValidationResult) {
	typ, ok := schema.TypeString()
	if !ok {
		return
	}

	switch typ {
	case "array":
		// 3.1 follows JSON Schema 2020-12 where items is optional
		if schema.Items == nil && version.Series() != parser.Series31 {
			v.addError(result, KindMissingField, path, "Array schema must have 'items' defined",
				withSpecRef(getJSONSchemaRef()),
				withField("items"),
			)
		}
		if schema.MinItems != nil && schema.MaxItems != nil && *schema.MinItems > *schema.MaxItems {
			v.addError(result, KindInvalidValue, path,
				fmt.Sprintf("minItems (%d) cannot be greater than maxItems (%d)", *schema.MinItems, *schema.MaxItems),
				withSpecRef(getJSONSchemaRef()),
			)
		}
	case "string":
		if schema.MinLength != nil && schema.MaxLength != nil && *schema.MinLength > *schema.MaxLength {
			v.addError(result, KindInvalidValue, path,
				fmt.Sprintf("minLength (%d) cannot be greater than maxLength (%d)", *schema.MinLength, *schema.MaxLength),
				withSpecRef(getJSONSchemaRef()),
			)
		}
	case "number", "integer":
		if schema.Minimum != nil && schema.Maximum != nil && *schema.Minimum > *schema.Maximum {
			v.addError(result, KindInvalidValue, path,
				fmt.Sprintf("minimum (%v) cannot be greater than maximum (%v)", *schema.Minimum, *schema.Maximum),
				withSpecRef(getJSONSchemaRef()),
			)
		}
	case "object":
		if schema.MinProperties != nil && schema.MaxProperties != nil && *schema.MinProperties > *schema.MaxProperties {
			v.addError(result, KindInvalidValue, path,
				fmt.Sprintf("minProperties (%d) cannot be greater than maxProperties (%d)", *schema.MinProperties, *schema.MaxProperties),
				withSpecRef(getJSONSchemaRef()),
			)
		}
	}
}

// validateRequiredProperties reports required property names that cannot
// be satisfied by the schema's declared properties. Schemas that compose
// other schemas or allow additional properties may satisfy the name
// elsewhere, so only self-contained object schemas are checked.
func (v *Validator) validateRequiredProperties(schema *parser.Schema, path string, result *ValidationResult) {
	if len(schema.Required) == 0 {
		return
	}
	if schema.HasComposition() || schema.AdditionalProperties != nil {
		return
	}

	for _, reqField := range schema.Required {
		if _, exists := schema.Properties[reqField]; !exists {
			v.addError(result, KindDanglingRequiredProperty, path,
				fmt.Sprintf("Required property '%s' not found in properties", reqField),
				withSpecRef(getJSONSchemaRef()),
				withField("required"),
				withValue(reqField),
			)
		}
	}
}

// validateNestedSchemas validates all nested schemas (properties, items, composition members, $defs)
func (v *Validator) validateNestedSchemas(schema *parser.Schema, path string, version parser.OASVersion, result *ValidationResult, visited map[*parser.Schema]bool) {
	for _, propName := range sortedKeys(schema.Properties) {
		propSchema := schema.Properties[propName]
		if propSchema == nil {
			continue
		}
		propPath := fmt.Sprintf("%s.properties.%s", path, propName)
		v.validateSchemaWithVisited(propSchema, propPath, version, result, visited)
	}

	if schema.AdditionalProperties != nil && schema.AdditionalProperties.Schema != nil {
		addPropsPath := fmt.Sprintf("%s.additionalProperties", path)
		v.validateSchemaWithVisited(schema.AdditionalProperties.Schema, addPropsPath, version, result, visited)
	}

	if schema.Items != nil {
		itemsPath := fmt.Sprintf("%s.items", path)
		v.validateSchemaWithVisited(schema.Items, itemsPath, version, result, visited)
	}

	for i, subSchema := range schema.AllOf {
		if subSchema == nil {
			continue
		}
		v.validateSchemaWithVisited(subSchema, fmt.Sprintf("%s.allOf[%d]", path, i), version, result, visited)
	}

	for i, subSchema := range schema.OneOf {
		if subSchema == nil {
			continue
		}
		v.validateSchemaWithVisited(subSchema, fmt.Sprintf("%s.oneOf[%d]", path, i), version, result, visited)
	}

	for i, subSchema := range schema.AnyOf {
		if subSchema == nil {
			continue
		}
		v.validateSchemaWithVisited(subSchema, fmt.Sprintf("%s.anyOf[%d]", path, i), version, result, visited)
	}

	if schema.Not != nil {
		v.validateSchemaWithVisited(schema.Not, fmt.Sprintf("%s.not", path), version, result, visited)
	}

	for _, name := range sortedKeys(schema.Defs) {
		defSchema := schema.Defs[name]
		if defSchema == nil {
			continue
		}
		v.validateSchemaWithVisited(defSchema, fmt.Sprintf("%s.$defs.%s", path, name), version, result, visited)
	}
}
