package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaskit/oasv/oaserrors"
)

func TestRefClassification(t *testing.T) {
	assert.True(t, IsLocalRef("#/components/schemas/Pet"))
	assert.True(t, IsLocalRef("#/definitions/Pet"))
	assert.False(t, IsLocalRef("other.yaml#/components/schemas/Pet"))
	assert.False(t, IsLocalRef("https://example.com/api.yaml"))
	assert.False(t, IsLocalRef(""))

	assert.True(t, IsExternalRef("other.yaml#/components/schemas/Pet"))
	assert.True(t, IsExternalRef("https://example.com/api.yaml"))
	assert.True(t, IsExternalRef("./schemas/pet.json"))
	assert.False(t, IsExternalRef("#/components/schemas/Pet"))
	assert.False(t, IsExternalRef(""))
}

func TestParseLocalRef(t *testing.T) {
	tests := []struct {
		ref      string
		expected LocalRef
		ok       bool
	}{
		{"#/definitions/Pet", LocalRef{Container: "definitions", Name: "Pet"}, true},
		{"#/parameters/limit", LocalRef{Container: "parameters", Name: "limit"}, true},
		{"#/responses/NotFound", LocalRef{Container: "responses", Name: "NotFound"}, true},
		{"#/securityDefinitions/api_key", LocalRef{Container: "securityDefinitions", Name: "api_key"}, true},
		{"#/components/schemas/Pet", LocalRef{Container: "components", Kind: "schemas", Name: "Pet"}, true},
		{"#/components/requestBodies/PetBody", LocalRef{Container: "components", Kind: "requestBodies", Name: "PetBody"}, true},
		{"#/components/securitySchemes/oauth", LocalRef{Container: "components", Kind: "securitySchemes", Name: "oauth"}, true},
		// JSON Pointer escapes in the name segment
		{"#/components/schemas/a~1b", LocalRef{Container: "components", Kind: "schemas", Name: "a/b"}, true},
		{"#/components/schemas/a~0b", LocalRef{Container: "components", Kind: "schemas", Name: "a~b"}, true},
		// Unsupported forms
		{"#/components/schemas", LocalRef{}, false},
		{"#/components/widgets/Pet", LocalRef{}, false},
		{"#/paths/~1pets/get", LocalRef{}, false},
		{"#/foo/Bar", LocalRef{}, false},
		{"#Pet", LocalRef{}, false},
		{"", LocalRef{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, ok := ParseLocalRef(tt.ref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func testOAS3Doc() *OAS3Document {
	return &OAS3Document{
		OASVersion: OASVersion303,
		Components: &Components{
			Schemas: map[string]*Schema{
				"Pet":      {Type: "object", Properties: map[string]*Schema{"name": {Type: "string"}}},
				"Dog":      {Ref: "#/components/schemas/Pet"},
				"Puppy":    {Ref: "#/components/schemas/Dog"},
				"Loop":     {Ref: "#/components/schemas/Loop"},
				"PingPong": {Ref: "#/components/schemas/PongPing"},
				"PongPing": {Ref: "#/components/schemas/PingPong"},
			},
			Parameters: map[string]*Parameter{
				"limit": {Name: "limit", In: "query", Schema: &Schema{Type: "integer"}},
			},
		},
	}
}

func TestResolveOneHop(t *testing.T) {
	r := NewRefResolver(testOAS3Doc())

	target, err := r.Resolve("#/components/schemas/Pet")
	require.NoError(t, err)
	schema, ok := target.(*Schema)
	require.True(t, ok)
	assert.Equal(t, "object", schema.Type)

	target, err = r.Resolve("#/components/parameters/limit")
	require.NoError(t, err)
	param, ok := target.(*Parameter)
	require.True(t, ok)
	assert.Equal(t, "limit", param.Name)
}

func TestResolveNotFound(t *testing.T) {
	r := NewRefResolver(testOAS3Doc())
	_, err := r.Resolve("#/components/schemas/Missing")
	require.Error(t, err)

	var refErr *oaserrors.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, oaserrors.RefTypeNotFound, refErr.RefType)
	assert.ErrorIs(t, err, oaserrors.ErrReference)
	assert.NotErrorIs(t, err, oaserrors.ErrCircularReference)
}

func TestResolveExternal(t *testing.T) {
	r := NewRefResolver(testOAS3Doc())
	_, err := r.Resolve("other.yaml#/components/schemas/Pet")
	require.Error(t, err)

	var refErr *oaserrors.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, oaserrors.RefTypeExternal, refErr.RefType)
}

func TestResolveMalformed(t *testing.T) {
	r := NewRefResolver(testOAS3Doc())
	_, err := r.Resolve("#/components/widgets/Pet")
	require.Error(t, err)

	var refErr *oaserrors.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, oaserrors.RefTypeMalformed, refErr.RefType)
}

func TestResolveSchemaChain(t *testing.T) {
	r := NewRefResolver(testOAS3Doc())

	// Puppy -> Dog -> Pet
	schema, err := r.ResolveSchema("#/components/schemas/Puppy")
	require.NoError(t, err)
	assert.Equal(t, "object", schema.Type)
	assert.Contains(t, schema.Properties, "name")
}

func TestResolveSchemaCircular(t *testing.T) {
	r := NewRefResolver(testOAS3Doc())

	tests := []string{
		"#/components/schemas/Loop",
		"#/components/schemas/PingPong",
	}
	for _, ref := range tests {
		t.Run(ref, func(t *testing.T) {
			_, err := r.ResolveSchema(ref)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrCircularReference)

			var refErr *oaserrors.ReferenceError
			require.ErrorAs(t, err, &refErr)
			assert.True(t, refErr.IsCircular)
		})
	}
}

func TestResolveSchemaOAS2(t *testing.T) {
	doc := &OAS2Document{
		OASVersion: OASVersion20,
		Definitions: map[string]*Schema{
			"Pet":   {Type: "object"},
			"Alias": {Ref: "#/definitions/Pet"},
		},
	}
	r := NewRefResolver(doc)

	schema, err := r.ResolveSchema("#/definitions/Alias")
	require.NoError(t, err)
	assert.Equal(t, "object", schema.Type)

	// 3.x grammar does not resolve against a 2.0 document
	_, err = r.Resolve("#/components/schemas/Pet")
	require.Error(t, err)
	var refErr *oaserrors.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, oaserrors.RefTypeNotFound, refErr.RefType)
}
