package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaskit/oasv/oaserrors"
)

const minimalOAS2 = `
swagger: "2.0"
info:
  title: Test API
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: OK
`

const minimalOAS30 = `
openapi: 3.0.3
info:
  title: Test API
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: OK
`

const minimalOAS31 = `
openapi: 3.1.0
info:
  title: Test API
  version: 1.0.0
webhooks:
  newPet:
    post:
      responses:
        "200":
          description: OK
`

func TestParseBytesOAS2(t *testing.T) {
	p := New()
	result, err := p.ParseBytes([]byte(minimalOAS2))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "2.0", result.Version)
	assert.Equal(t, OASVersion20, result.OASVersion)
	assert.True(t, result.IsOAS2())
	assert.False(t, result.IsOAS3())
	assert.Empty(t, result.Errors)

	doc, ok := result.OAS2Document()
	require.True(t, ok)
	assert.Equal(t, "Test API", doc.Info.Title)
	require.Contains(t, doc.Paths, "/pets")
	require.NotNil(t, doc.Paths["/pets"].Get)
	assert.Equal(t, "listPets", doc.Paths["/pets"].Get.OperationID)
}

func TestParseBytesOAS3(t *testing.T) {
	p := New()
	result, err := p.ParseBytes([]byte(minimalOAS30))
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", result.Version)
	assert.Equal(t, OASVersion303, result.OASVersion)
	assert.True(t, result.IsOAS3())
	assert.Empty(t, result.Errors)

	doc, ok := result.OAS3Document()
	require.True(t, ok)
	assert.Equal(t, "Test API", doc.Info.Title)

	resp := doc.Paths["/pets"].Get.Responses
	require.NotNil(t, resp)
	require.Contains(t, resp.Codes, "200")
	assert.Equal(t, "OK", resp.Codes["200"].Description)
}

func TestParseBytesOAS31Webhooks(t *testing.T) {
	p := New()
	result, err := p.ParseBytes([]byte(minimalOAS31))
	require.NoError(t, err)

	assert.Equal(t, OASVersion310, result.OASVersion)
	assert.Empty(t, result.Errors)

	doc, ok := result.OAS3Document()
	require.True(t, ok)
	require.Contains(t, doc.Webhooks, "newPet")
	assert.NotNil(t, doc.Webhooks["newPet"].Post)
}

func TestParseBytesJSON(t *testing.T) {
	data := `{
  "openapi": "3.0.0",
  "info": {"title": "JSON API", "version": "1.0.0"},
  "paths": {}
}`
	p := New()
	result, err := p.ParseBytes([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, "ParseBytes.json", result.SourcePath)
	assert.Equal(t, OASVersion300, result.OASVersion)
}

func TestParseReader(t *testing.T) {
	p := New()
	result, err := p.ParseReader(strings.NewReader(minimalOAS30))
	require.NoError(t, err)
	assert.Equal(t, "ParseReader.yaml", result.SourcePath)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, int64(len(minimalOAS30)), result.SourceSize)
}

func TestParseMalformedYAML(t *testing.T) {
	p := New()
	_, err := p.ParseBytes([]byte("openapi: 3.0.0\n  bad indent: ["))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrMalformedDocument)
}

func TestParseMissingVersionField(t *testing.T) {
	p := New()
	_, err := p.ParseBytes([]byte("info:\n  title: No Version\n  version: 1.0.0\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrMalformedDocument)
	assert.Contains(t, err.Error(), "unable to detect OpenAPI version")
}

func TestParseUnsupportedVersion(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"swagger 1.2", "swagger: \"1.2\"\ninfo:\n  title: t\n  version: v\n"},
		{"openapi 4.0", "openapi: 4.0.0\ninfo:\n  title: t\n  version: v\n"},
		{"openapi 3.2", "openapi: 3.2.0\ninfo:\n  title: t\n  version: v\n"},
	}
	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseBytes([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrMalformedDocument)
		})
	}
}

func TestParseStructureValidation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "missing info title",
			doc:     "openapi: 3.0.0\ninfo:\n  version: 1.0.0\npaths: {}\n",
			wantErr: "info.title",
		},
		{
			name:    "missing paths in 3.0",
			doc:     "openapi: 3.0.0\ninfo:\n  title: t\n  version: v\n",
			wantErr: "paths",
		},
		{
			name:    "webhooks rejected in 3.0",
			doc:     "openapi: 3.0.0\ninfo:\n  title: t\n  version: v\npaths: {}\nwebhooks:\n  hook: {}\n",
			wantErr: "webhooks",
		},
		{
			name:    "path must begin with slash",
			doc:     "openapi: 3.0.0\ninfo:\n  title: t\n  version: v\npaths:\n  pets: {}\n",
			wantErr: "must begin with '/'",
		},
		{
			name:    "missing responses",
			doc:     "openapi: 3.0.0\ninfo:\n  title: t\n  version: v\npaths:\n  /pets:\n    get:\n      operationId: listPets\n",
			wantErr: "responses",
		},
		{
			name:    "path parameter not required",
			doc:     "openapi: 3.0.0\ninfo:\n  title: t\n  version: v\npaths:\n  /pets/{id}:\n    get:\n      parameters:\n        - name: id\n          in: path\n      responses:\n        \"200\":\n          description: OK\n",
			wantErr: "required: true",
		},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.ParseBytes([]byte(tt.doc))
			require.NoError(t, err)
			require.NotEmpty(t, result.Errors)

			found := false
			for _, e := range result.Errors {
				if strings.Contains(e.Error(), tt.wantErr) {
					found = true
					break
				}
			}
			assert.True(t, found, "expected an error containing %q, got %v", tt.wantErr, result.Errors)
		})
	}
}

func TestParseShapeConflict(t *testing.T) {
	doc := `
openapi: 3.0.0
info:
  title: t
  version: v
paths: {}
components:
  schemas:
    Broken:
      type: array
      properties:
        name:
          type: string
`
	p := New()
	result, err := p.ParseBytes([]byte(doc))
	require.NoError(t, err)
	require.NotEmpty(t, result.Errors)

	var shapeErr *oaserrors.ShapeConflictError
	found := false
	for _, e := range result.Errors {
		if errors.As(e, &shapeErr) {
			found = true
			break
		}
	}
	require.True(t, found)
	assert.Equal(t, "components.schemas.Broken", shapeErr.Path)
	assert.ErrorIs(t, shapeErr, oaserrors.ErrMalformedDocument)
}

func TestParseInvalidStatusCode(t *testing.T) {
	doc := `
openapi: 3.0.0
info:
  title: t
  version: v
paths:
  /pets:
    get:
      responses:
        "999":
          description: nope
`
	p := New()
	_, err := p.ParseBytes([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status code")
}

func TestParseStructureValidationDisabled(t *testing.T) {
	doc := "openapi: 3.0.0\ninfo:\n  version: 1.0.0\npaths: {}\n"
	p := &Parser{ValidateStructure: false}
	result, err := p.ParseBytes([]byte(doc))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
}

func TestParseDeterministic(t *testing.T) {
	p := New()
	first, err := p.ParseBytes([]byte(minimalOAS30))
	require.NoError(t, err)
	second, err := p.ParseBytes([]byte(minimalOAS30))
	require.NoError(t, err)

	assert.Equal(t, first.Version, second.Version)
	assert.Equal(t, first.OASVersion, second.OASVersion)
	assert.Equal(t, len(first.Errors), len(second.Errors))
	assert.Equal(t, first.Document, second.Document)
}

func TestParseWithOptions(t *testing.T) {
	t.Run("bytes source", func(t *testing.T) {
		result, err := ParseWithOptions(WithBytes([]byte(minimalOAS30)))
		require.NoError(t, err)
		assert.Equal(t, OASVersion303, result.OASVersion)
	})

	t.Run("source name override", func(t *testing.T) {
		result, err := ParseWithOptions(
			WithBytes([]byte(minimalOAS30)),
			WithSourceName("pets-api"),
		)
		require.NoError(t, err)
		assert.Equal(t, "pets-api", result.SourcePath)
	})

	t.Run("no source", func(t *testing.T) {
		_, err := ParseWithOptions()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must specify an input source")
	})

	t.Run("multiple sources", func(t *testing.T) {
		_, err := ParseWithOptions(
			WithBytes([]byte(minimalOAS30)),
			WithReader(strings.NewReader(minimalOAS30)),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one input source")
	})

	t.Run("nil reader", func(t *testing.T) {
		_, err := ParseWithOptions(WithReader(nil))
		require.Error(t, err)
	})
}

func TestDetectFormatFromContent(t *testing.T) {
	assert.Equal(t, SourceFormatJSON, detectFormatFromContent([]byte("  {\"openapi\": \"3.0.0\"}")))
	assert.Equal(t, SourceFormatYAML, detectFormatFromContent([]byte("openapi: 3.0.0")))
	assert.Equal(t, SourceFormatUnknown, detectFormatFromContent([]byte("   ")))
}
