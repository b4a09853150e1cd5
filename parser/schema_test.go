package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yaml.in/yaml/v4"

	"github.com/oaskit/oasv/oaserrors"
)

func TestSchemaKind(t *testing.T) {
	tests := []struct {
		name     string
		schema   *Schema
		expected SchemaKind
	}{
		{"empty", &Schema{}, KindAny},
		{"reference", &Schema{Ref: "#/components/schemas/Pet"}, KindReference},
		{"allOf", &Schema{AllOf: []*Schema{{}}}, KindComposed},
		{"anyOf", &Schema{AnyOf: []*Schema{{}}}, KindComposed},
		{"oneOf", &Schema{OneOf: []*Schema{{}}}, KindComposed},
		{"declared object", &Schema{Type: "object"}, KindObject},
		{"declared array", &Schema{Type: "array"}, KindArray},
		{"string", &Schema{Type: "string"}, KindPrimitive},
		{"integer", &Schema{Type: "integer"}, KindPrimitive},
		{"null", &Schema{Type: "null"}, KindPrimitive},
		{"nullable 3.1 string", &Schema{Type: []any{"string", "null"}}, KindPrimitive},
		{"inferred object", &Schema{Properties: map[string]*Schema{"a": {}}}, KindObject},
		{"inferred array", &Schema{Items: &Schema{Type: "string"}}, KindArray},
		// Reference wins over everything else
		{"ref with type", &Schema{Ref: "#/components/schemas/Pet", Type: "object"}, KindReference},
		// Composition wins over declared type
		{"allOf with type", &Schema{AllOf: []*Schema{{}}, Type: "object"}, KindComposed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.schema.Kind())
		})
	}
}

func TestSchemaTypeString(t *testing.T) {
	tests := []struct {
		name     string
		typ      any
		expected string
		ok       bool
	}{
		{"plain string", "string", "string", true},
		{"type array with null", []any{"string", "null"}, "string", true},
		{"null first", []any{"null", "integer"}, "integer", true},
		{"multiple non-null", []any{"string", "integer"}, "", false},
		{"absent", nil, "", false},
		{"non-string member", []any{42}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Schema{Type: tt.typ}
			got, ok := s.TypeString()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSchemaCheckShape(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		wantErr bool
		shapes  []string
	}{
		{
			name:   "plain object",
			schema: &Schema{Type: "object", Properties: map[string]*Schema{"a": {Type: "string"}}},
		},
		{
			name:   "plain array",
			schema: &Schema{Type: "array", Items: &Schema{Type: "string"}},
		},
		{
			name:    "array with properties",
			schema:  &Schema{Type: "array", Properties: map[string]*Schema{"a": {}}},
			wantErr: true,
			shapes:  []string{"array", "object"},
		},
		{
			name:    "object with items",
			schema:  &Schema{Type: "object", Items: &Schema{}},
			wantErr: true,
			shapes:  []string{"object", "array"},
		},
		{
			name:    "string with properties",
			schema:  &Schema{Type: "string", Properties: map[string]*Schema{"a": {}}},
			wantErr: true,
			shapes:  []string{"primitive", "object"},
		},
		{
			name:    "integer with items",
			schema:  &Schema{Type: "integer", Items: &Schema{}},
			wantErr: true,
			shapes:  []string{"primitive", "array"},
		},
		{
			name:    "typeless items and properties",
			schema:  &Schema{Items: &Schema{}, Properties: map[string]*Schema{"a": {}}},
			wantErr: true,
			shapes:  []string{"array", "object"},
		},
		{
			name:   "typeless with only items",
			schema: &Schema{Items: &Schema{Type: "string"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.CheckShape("components.schemas.T")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var shapeErr *oaserrors.ShapeConflictError
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, "components.schemas.T", shapeErr.Path)
			assert.Equal(t, tt.shapes, shapeErr.Shapes)
		})
	}
}

func TestAdditionalPropertiesUnmarshal(t *testing.T) {
	t.Run("boolean form", func(t *testing.T) {
		var s Schema
		require.NoError(t, yaml.Unmarshal([]byte("type: object\nadditionalProperties: false\n"), &s))
		require.NotNil(t, s.AdditionalProperties)
		require.NotNil(t, s.AdditionalProperties.Allowed)
		assert.False(t, *s.AdditionalProperties.Allowed)
		assert.Nil(t, s.AdditionalProperties.Schema)
	})

	t.Run("schema form", func(t *testing.T) {
		var s Schema
		require.NoError(t, yaml.Unmarshal([]byte("type: object\nadditionalProperties:\n  type: string\n"), &s))
		require.NotNil(t, s.AdditionalProperties)
		assert.Nil(t, s.AdditionalProperties.Allowed)
		require.NotNil(t, s.AdditionalProperties.Schema)
		assert.Equal(t, "string", s.AdditionalProperties.Schema.Type)
	})
}

func TestWalkSchemas(t *testing.T) {
	doc := &OAS3Document{
		OASVersion: OASVersion303,
		Components: &Components{
			Schemas: map[string]*Schema{
				"Pet": {
					Type: "object",
					Properties: map[string]*Schema{
						"name": {Type: "string"},
						"tags": {Type: "array", Items: &Schema{Type: "string"}},
					},
				},
				"Union": {
					OneOf: []*Schema{
						{Ref: "#/components/schemas/Pet"},
						{Type: "null"},
					},
				},
			},
		},
		Paths: Paths{
			"/pets": &PathItem{
				Get: &Operation{
					Responses: &Responses{
						Codes: map[string]*Response{
							"200": {
								Description: "OK",
								Content: map[string]*MediaType{
									"application/json": {Schema: &Schema{Ref: "#/components/schemas/Pet"}},
								},
							},
						},
					},
				},
			},
		},
	}

	visited := make(map[string]bool)
	WalkSchemas(doc, func(path string, s *Schema) {
		visited[path] = true
	})

	expected := []string{
		"components.schemas.Pet",
		"components.schemas.Pet.properties.name",
		"components.schemas.Pet.properties.tags",
		"components.schemas.Pet.properties.tags.items",
		"components.schemas.Union",
		"components.schemas.Union.oneOf[0]",
		"components.schemas.Union.oneOf[1]",
		"paths./pets.get.responses.200.content.application/json.schema",
	}
	for _, path := range expected {
		assert.True(t, visited[path], "expected walk to visit %s", path)
	}
}
