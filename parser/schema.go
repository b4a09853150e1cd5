package parser

import (
	"github.com/oaskit/oasv/oaserrors"
)

// Schema represents a JSON-Schema-like type description.
// Supports OAS 2.0, OAS 3.0, and OAS 3.1 keyword sets. A schema node
// mirrors the source document one-to-one; composition member order is
// preserved for diagnostics. Self-reference is only representable through
// the Ref field, never by embedding a node inside its own members, so the
// decoded tree is always finite.
type Schema struct {
	// JSON Schema Core
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`

	// Metadata
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Examples    []any  `yaml:"examples,omitempty" json:"examples,omitempty"` // OAS 3.1+

	// Type validation
	Type  any   `yaml:"type,omitempty" json:"type,omitempty"` // string, or []string in OAS 3.1+
	Enum  []any `yaml:"enum,omitempty" json:"enum,omitempty"`
	Const any   `yaml:"const,omitempty" json:"const,omitempty"` // OAS 3.1+

	// Numeric validation
	MultipleOf       *float64 `yaml:"multipleOf,omitempty" json:"multipleOf,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	ExclusiveMaximum any      `yaml:"exclusiveMaximum,omitempty" json:"exclusiveMaximum,omitempty"` // bool in 2.0/3.0, number in 3.1+
	Minimum          *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	ExclusiveMinimum any      `yaml:"exclusiveMinimum,omitempty" json:"exclusiveMinimum,omitempty"` // bool in 2.0/3.0, number in 3.1+

	// String validation
	MaxLength *int   `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength *int   `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Array validation
	Items       *Schema `yaml:"items,omitempty" json:"items,omitempty"`
	MaxItems    *int    `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinItems    *int    `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	UniqueItems bool    `yaml:"uniqueItems,omitempty" json:"uniqueItems,omitempty"`

	// Object validation
	Properties           map[string]*Schema    `yaml:"properties,omitempty" json:"properties,omitempty"`
	AdditionalProperties *AdditionalProperties `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"`
	Required             []string              `yaml:"required,omitempty" json:"required,omitempty"`
	MaxProperties        *int                  `yaml:"maxProperties,omitempty" json:"maxProperties,omitempty"`
	MinProperties        *int                  `yaml:"minProperties,omitempty" json:"minProperties,omitempty"`

	// Schema composition. Member order is preserved for diagnostics.
	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty" json:"anyOf,omitempty"` // OAS 3.0+
	OneOf []*Schema `yaml:"oneOf,omitempty" json:"oneOf,omitempty"` // OAS 3.0+
	Not   *Schema   `yaml:"not,omitempty" json:"not,omitempty"`     // OAS 3.0+

	// OAS specific extensions
	Nullable      bool           `yaml:"nullable,omitempty" json:"nullable,omitempty"`           // OAS 3.0 only (type: [T, "null"] in 3.1+)
	Discriminator *Discriminator `yaml:"discriminator,omitempty" json:"discriminator,omitempty"` // OAS 3.0+
	ReadOnly      bool           `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	WriteOnly     bool           `yaml:"writeOnly,omitempty" json:"writeOnly,omitempty"` // OAS 3.0+
	XML           *XML           `yaml:"xml,omitempty" json:"xml,omitempty"`
	ExternalDocs  *ExternalDocs  `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Example       any            `yaml:"example,omitempty" json:"example,omitempty"`
	Deprecated    bool           `yaml:"deprecated,omitempty" json:"deprecated,omitempty"` // OAS 3.0+

	// Format, e.g. "date-time", "email", "uri"
	Format string `yaml:"format,omitempty" json:"format,omitempty"`

	// OAS 3.1+ additions
	Defs map[string]*Schema `yaml:"$defs,omitempty" json:"$defs,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// AdditionalProperties holds the additionalProperties keyword, which is
// either a boolean or a schema in the source document. Exactly one of the
// two fields is set after decoding.
type AdditionalProperties struct {
	Allowed *bool
	Schema  *Schema
}

// UnmarshalYAML decodes either boolean or schema form.
func (a *AdditionalProperties) UnmarshalYAML(unmarshal func(any) error) error {
	var b bool
	if err := unmarshal(&b); err == nil {
		a.Allowed = &b
		return nil
	}
	var s Schema
	if err := unmarshal(&s); err != nil {
		return err
	}
	a.Schema = &s
	return nil
}

// MarshalYAML emits the original boolean or schema form.
func (a *AdditionalProperties) MarshalYAML() (any, error) {
	if a.Allowed != nil {
		return *a.Allowed, nil
	}
	return a.Schema, nil
}

// Discriminator represents a discriminator for polymorphism (OAS 3.0+)
type Discriminator struct {
	PropertyName string            `yaml:"propertyName" json:"propertyName"`
	Mapping      map[string]string `yaml:"mapping,omitempty" json:"mapping,omitempty"`
	Extra        map[string]any    `yaml:",inline" json:"-"`
}

// XML represents metadata for XML encoding
type XML struct {
	Name      string         `yaml:"name,omitempty" json:"name,omitempty"`
	Namespace string         `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Prefix    string         `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Attribute bool           `yaml:"attribute,omitempty" json:"attribute,omitempty"`
	Wrapped   bool           `yaml:"wrapped,omitempty" json:"wrapped,omitempty"`
	Extra     map[string]any `yaml:",inline" json:"-"`
}

// SchemaKind classifies a schema node into exactly one active variant.
type SchemaKind int

const (
	// KindAny is a schema with no type information (matches anything)
	KindAny SchemaKind = iota
	// KindReference is a node whose content lives behind a $ref token
	KindReference
	// KindComposed is a node using a composition keyword (allOf/anyOf/oneOf)
	KindComposed
	// KindObject is an object-shaped node
	KindObject
	// KindArray is an array-shaped node
	KindArray
	// KindPrimitive is a string/number/integer/boolean/null node
	KindPrimitive
)

// String returns the variant name.
func (k SchemaKind) String() string {
	switch k {
	case KindReference:
		return "reference"
	case KindComposed:
		return "composed"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindPrimitive:
		return "primitive"
	default:
		return "any"
	}
}

// TypeString returns the declared type when it is a single string.
// For OAS 3.1 type arrays of the form [T, "null"] the non-null entry is
// returned. Returns false when no single type can be derived.
func (s *Schema) TypeString() (string, bool) {
	switch t := s.Type.(type) {
	case string:
		return t, true
	case []any:
		var nonNull []string
		for _, v := range t {
			ts, ok := v.(string)
			if !ok {
				return "", false
			}
			if ts != "null" {
				nonNull = append(nonNull, ts)
			}
		}
		if len(nonNull) == 1 {
			return nonNull[0], true
		}
	}
	return "", false
}

// HasComposition reports whether any composition keyword is present.
func (s *Schema) HasComposition() bool {
	return s.AllOf != nil || s.AnyOf != nil || s.OneOf != nil
}

// Kind classifies the node. Classification precedence: reference, then
// composition, then declared or inferred type. Exactly one variant is
// active per node; malformed hybrids are rejected by CheckShape before
// classification matters.
func (s *Schema) Kind() SchemaKind {
	switch {
	case s.Ref != "":
		return KindReference
	case s.HasComposition():
		return KindComposed
	}

	if t, ok := s.TypeString(); ok {
		switch t {
		case "object":
			return KindObject
		case "array":
			return KindArray
		case "string", "number", "integer", "boolean", "null":
			return KindPrimitive
		}
	}

	// Infer from structural keywords when type is absent.
	switch {
	case len(s.Properties) > 0 || s.AdditionalProperties != nil:
		return KindObject
	case s.Items != nil:
		return KindArray
	default:
		return KindAny
	}
}

// CheckShape verifies the node declares at most one shape. Malformed
// combinations, such as a node claiming both array and object shape, fail
// with a ShapeConflictError. The check is applied to a single node only;
// callers walk nested schemas themselves.
func (s *Schema) CheckShape(path string) error {
	t, hasType := s.TypeString()

	if hasType {
		if t == "array" && len(s.Properties) > 0 {
			return &oaserrors.ShapeConflictError{Path: path, Shapes: []string{"array", "object"}}
		}
		if t == "object" && s.Items != nil {
			return &oaserrors.ShapeConflictError{Path: path, Shapes: []string{"object", "array"}}
		}
		if isPrimitiveType(t) && (len(s.Properties) > 0 || s.Items != nil) {
			other := "object"
			if s.Items != nil {
				other = "array"
			}
			return &oaserrors.ShapeConflictError{Path: path, Shapes: []string{"primitive", other}}
		}
	}

	// Items alongside properties is ambiguous even without a declared type.
	if !hasType && s.Items != nil && len(s.Properties) > 0 {
		return &oaserrors.ShapeConflictError{Path: path, Shapes: []string{"array", "object"}}
	}

	return nil
}

func isPrimitiveType(t string) bool {
	switch t {
	case "string", "number", "integer", "boolean", "null":
		return true
	default:
		return false
	}
}
