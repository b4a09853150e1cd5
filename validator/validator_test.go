package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaskit/oasv/internal/issues"
	"github.com/oaskit/oasv/parser"
)

const minimalValidOAS30 = `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
tags:
  - name: pets
paths:
  /pets:
    get:
      summary: List pets
      operationId: listPets
      tags:
        - pets
      responses:
        "200":
          description: OK
`

const minimalValidOAS2 = `
swagger: "2.0"
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      operationId: listPets
      produces:
        - application/json
      responses:
        "200":
          description: OK
          schema:
            $ref: '#/definitions/Pet'
definitions:
  Pet:
    type: object
    properties:
      name:
        type: string
`

func TestValidateMinimalDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"oas 3.0", minimalValidOAS30},
		{"oas 2.0", minimalValidOAS2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateWithOptions(WithBytes([]byte(tt.doc)))
			require.NoError(t, err)
			assert.True(t, result.Valid, "unexpected errors: %v", result.Errors)
			assert.Zero(t, result.ErrorCount)
		})
	}
}

func TestValidateWebhookDocument(t *testing.T) {
	doc := `
openapi: 3.1.0
info:
  title: Petstore Events
  version: 1.0.0
webhooks:
  newPet:
    post:
      summary: Notify about a new pet
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
      responses:
        "200":
          description: Acknowledged
components:
  schemas:
    Pet:
      type: object
      required:
        - name
      properties:
        name:
          type: string
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.True(t, result.Valid, "unexpected errors: %v", result.Errors)

	// Pet is referenced by the webhook, so it is not unused
	assert.Empty(t, result.IssuesOfKind(KindUnusedComponent))
}

func TestValidateWebhookMissingSchema(t *testing.T) {
	doc := `
openapi: 3.1.0
info:
  title: Petstore Events
  version: 1.0.0
webhooks:
  newPet:
    post:
      summary: Notify about a new pet
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
      responses:
        "200":
          description: Acknowledged
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	unresolved := result.IssuesOfKind(KindUnresolvedReference)
	require.Len(t, unresolved, 1)
	assert.Equal(t, "webhooks.newPet.post.requestBody.content.application/json.schema", unresolved[0].Path)
}

func TestValidateDuplicateOperationID(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      operationId: listPets
      responses:
        "200":
          description: OK
  /toys:
    get:
      summary: List toys
      operationId: listPets
      responses:
        "200":
          description: OK
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	dups := result.IssuesOfKind(KindDuplicateIdentifier)
	require.Len(t, dups, 1)
	assert.Equal(t, "paths./toys.get", dups[0].Path)
	assert.Contains(t, dups[0].Message, "first seen at paths./pets.get")
	assert.Equal(t, "listPets", dups[0].Value)

	// Opting out suppresses the issue
	result, err = ValidateWithOptions(
		WithBytes([]byte(doc)),
		WithIgnore(IgnoreNonUniqueOperationIDs),
	)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.IssuesOfKind(KindDuplicateIdentifier))
}

func TestValidateSelfReferentialSchema(t *testing.T) {
	// A schema that references itself through properties is a valid
	// recursive type, not a cycle error.
	doc := `
openapi: 3.0.3
info:
  title: Trees
  version: 1.0.0
paths:
  /nodes:
    get:
      summary: Get the root node
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Node'
components:
  schemas:
    Node:
      type: object
      properties:
        value:
          type: string
        children:
          type: array
          items:
            $ref: '#/components/schemas/Node'
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.True(t, result.Valid, "unexpected errors: %v", result.Errors)
	assert.Empty(t, result.IssuesOfKind(KindCyclicReference))
}

func TestValidateAliasCycle(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Broken
  version: 1.0.0
paths:
  /things:
    get:
      summary: List things
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Loop'
components:
  schemas:
    Loop:
      $ref: '#/components/schemas/Loop'
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	cycles := result.IssuesOfKind(KindCyclicReference)
	require.Len(t, cycles, 1)
	assert.Equal(t, "components.schemas.Loop", cycles[0].Path)
}

func TestValidateUnresolvedReference(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Missing'
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	unresolved := result.IssuesOfKind(KindUnresolvedReference)
	require.Len(t, unresolved, 1)
	assert.Equal(t, "#/components/schemas/Missing", unresolved[0].Value)
	assert.Equal(t, SeverityError, unresolved[0].Severity)

	// IgnoreExternalReferences only affects external refs
	result, err = ValidateWithOptions(
		WithBytes([]byte(doc)),
		WithIgnore(IgnoreExternalReferences),
	)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Len(t, result.IssuesOfKind(KindUnresolvedReference), 1)
}

func TestValidateMalformedReference(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/widgets/Pet'
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Len(t, result.IssuesOfKind(KindMalformedReference), 1)
}

func TestValidateExternalReference(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: 'shared.yaml#/components/schemas/Pet'
`
	// External refs are never fetched; an unresolvable one fails validation
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	external := result.IssuesOfKind(KindUnresolvedReference)
	require.Len(t, external, 1)
	assert.Equal(t, SeverityError, external[0].Severity)
	assert.Equal(t, "shared.yaml#/components/schemas/Pet", external[0].Value)

	result, err = ValidateWithOptions(
		WithBytes([]byte(doc)),
		WithIgnore(IgnoreExternalReferences),
	)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.IssuesOfKind(KindUnresolvedReference))
}

func TestValidateUndeclaredTag(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
tags:
  - name: pets
paths:
  /pets:
    get:
      summary: List pets
      tags:
        - store
      responses:
        "200":
          description: OK
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.True(t, result.Valid)

	undeclared := result.IssuesOfKind(KindUndeclaredTag)
	require.Len(t, undeclared, 1)
	assert.Equal(t, "store", undeclared[0].Value)

	result, err = ValidateWithOptions(
		WithBytes([]byte(doc)),
		WithIgnore(IgnoreMissingTags),
	)
	require.NoError(t, err)
	assert.Empty(t, result.IssuesOfKind(KindUndeclaredTag))
}

func TestValidateDuplicateTagNames(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
tags:
  - name: pets
  - name: pets
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Len(t, result.IssuesOfKind(KindDuplicateIdentifier), 1)
}

func TestValidateUnusedComponent(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
components:
  schemas:
    Orphan:
      type: object
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.True(t, result.Valid)

	unused := result.IssuesOfKind(KindUnusedComponent)
	require.Len(t, unused, 1)
	assert.Equal(t, "components.schemas.Orphan", unused[0].Path)
	assert.Equal(t, SeverityWarning, unused[0].Severity)

	result, err = ValidateWithOptions(
		WithBytes([]byte(doc)),
		WithIgnore(IgnoreUnusedComponents),
	)
	require.NoError(t, err)
	assert.Empty(t, result.IssuesOfKind(KindUnusedComponent))
}

func TestValidateDanglingRequiredProperty(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet:
      type: object
      required:
        - id
      properties:
        name:
          type: string
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	dangling := result.IssuesOfKind(KindDanglingRequiredProperty)
	require.Len(t, dangling, 1)
	assert.Equal(t, "components.schemas.Pet", dangling[0].Path)
	assert.Equal(t, "id", dangling[0].Value)
}

func TestValidateDanglingRequiredAllowedWithComposition(t *testing.T) {
	// Required names may be satisfied by composed member schemas
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Dog'
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
    Dog:
      allOf:
        - $ref: '#/components/schemas/Pet'
      required:
        - name
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.Empty(t, result.IssuesOfKind(KindDanglingRequiredProperty))
}

func TestValidateEmptyComposition(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Empty'
components:
  schemas:
    Empty:
      allOf: []
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	empty := result.IssuesOfKind(KindEmptyComposition)
	require.Len(t, empty, 1)
	assert.Equal(t, "components.schemas.Empty", empty[0].Path)
}

func TestValidatePathParameterConsistency(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets/{petId}:
    get:
      summary: Get a pet
      responses:
        "200":
          description: OK
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	var found bool
	for _, e := range result.Errors {
		if e.Kind == issues.KindMissingField && e.Value == "petId" {
			found = true
		}
	}
	assert.True(t, found, "expected an issue for the undeclared {petId} parameter")
}

func TestValidateUndeclaredSecurityScheme(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
security:
  - apiKey: []
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	undeclared := result.IssuesOfKind(KindUndeclaredSecurityScheme)
	require.Len(t, undeclared, 1)
	assert.Equal(t, "apiKey", undeclared[0].Value)
}

func TestValidateInvalidURL(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
  contact:
    url: not a url
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Len(t, result.IssuesOfKind(KindInvalidURL), 1)

	result, err = ValidateWithOptions(
		WithBytes([]byte(doc)),
		WithIgnore(IgnoreInvalidURLs),
	)
	require.NoError(t, err)
	assert.Empty(t, result.IssuesOfKind(KindInvalidURL))
	assert.True(t, result.Valid)
}

func TestValidateTemplatedServerURL(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
servers:
  - url: https://{region}.example.com/v1
    variables:
      region:
        default: us-east-1
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.True(t, result.Valid, "unexpected errors: %v", result.Errors)
}

func TestValidateServerVariableUndeclared(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
servers:
  - url: https://{region}.example.com/v1
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateIgnoreEmptyRequiredFields(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: ""
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
`
	// Structure validation off so only the validator's own rule fires
	result, err := ValidateWithOptions(
		WithBytes([]byte(doc)),
		WithValidateStructure(false),
	)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.IssuesOfKind(KindMissingField))

	result, err = ValidateWithOptions(
		WithBytes([]byte(doc)),
		WithValidateStructure(false),
		WithIgnore(IgnoreEmptyRequiredFields),
	)
	require.NoError(t, err)
	assert.Empty(t, result.IssuesOfKind(KindMissingField))
}

func TestValidateOAS2Document(t *testing.T) {
	doc := `
swagger: "2.0"
info:
  title: Petstore
  version: 1.0.0
securityDefinitions:
  api_key:
    type: apiKey
    name: X-API-Key
    in: header
security:
  - api_key: []
paths:
  /pets:
    post:
      summary: Create a pet
      operationId: createPet
      consumes:
        - application/json
      parameters:
        - name: pet
          in: body
          required: true
          schema:
            $ref: '#/definitions/Pet'
      responses:
        "201":
          description: Created
definitions:
  Pet:
    type: object
    required:
      - name
    properties:
      name:
        type: string
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.True(t, result.Valid, "unexpected errors: %v", result.Errors)
}

func TestValidateOAS2BodyParameterRules(t *testing.T) {
	doc := `
swagger: "2.0"
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    post:
      summary: Create a pet
      parameters:
        - name: a
          in: body
          schema:
            type: object
        - name: b
          in: body
          schema:
            type: object
      responses:
        "201":
          description: Created
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	var found bool
	for _, e := range result.Errors {
		if e.Kind == issues.KindInvalidValue && e.Path == "paths./pets.post" {
			found = true
		}
	}
	assert.True(t, found, "expected an issue for multiple body parameters")
}

func TestValidateNullableInOAS31(t *testing.T) {
	doc := `
openapi: 3.1.0
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
          nullable: true
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	// nullable in 3.1 is a warning, not an error
	assert.True(t, result.Valid)

	var found bool
	for _, w := range result.Warnings {
		if w.Field == "nullable" {
			found = true
		}
	}
	assert.True(t, found, "expected a warning about nullable in 3.1")
}

func TestValidateTypeArrayInOAS30(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: [string, "null"]
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateIncludeWarnings(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      responses:
        "200":
          description: OK
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	// Operation has neither description nor summary
	assert.NotZero(t, result.WarningCount)

	result, err = ValidateWithOptions(
		WithBytes([]byte(doc)),
		WithIncludeWarnings(false),
	)
	require.NoError(t, err)
	assert.Zero(t, result.WarningCount)
	assert.Nil(t, result.Warnings)
}

func TestValidateDeterminism(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      operationId: listPets
      responses:
        "200":
          description: OK
  /toys:
    get:
      summary: List toys
      operationId: listPets
      responses:
        "200":
          description: OK
components:
  schemas:
    OrphanA:
      type: object
    OrphanB:
      type: object
`
	first, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	second, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)

	assert.Equal(t, first.ErrorCount, second.ErrorCount)
	assert.Equal(t, first.WarningCount, second.WarningCount)
	assert.Equal(t, first.Errors, second.Errors)
	assert.Equal(t, first.Warnings, second.Warnings)
	assert.Equal(t, first.IssuesOfKind(KindDuplicateIdentifier), second.IssuesOfKind(KindDuplicateIdentifier))
	assert.Equal(t, first.IssuesOfKind(KindUnusedComponent), second.IssuesOfKind(KindUnusedComponent))
}

func TestValidateConfigErrors(t *testing.T) {
	_, err := ValidateWithOptions()
	require.Error(t, err)

	_, err = ValidateWithOptions(
		WithBytes([]byte(minimalValidOAS30)),
		WithFilePath("openapi.yaml"),
	)
	require.Error(t, err)

	_, err = ValidateWithOptions(WithParsed(nil))
	require.Error(t, err)
}

func TestValidateParsedInput(t *testing.T) {
	result, err := ValidateWithOptions(WithBytes([]byte(minimalValidOAS30)))
	require.NoError(t, err)
	require.True(t, result.Valid)

	// Re-validating the parsed document gives the same outcome
	parsed, perr := parser.ParseWithOptions(parser.WithBytes([]byte(minimalValidOAS30)))
	require.NoError(t, perr)
	again, err := New().ValidateParsed(*parsed)
	require.NoError(t, err)
	assert.True(t, again.Valid)
	assert.Equal(t, result.Version, again.Version)
}

func TestValidateDuplicateParameters(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
        - name: limit
          in: query
          schema:
            type: string
      responses:
        "200":
          description: OK
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	dups := result.IssuesOfKind(KindDuplicateIdentifier)
	require.Len(t, dups, 1)
	assert.Equal(t, "paths./pets.get.parameters[1]", dups[0].Path)
	assert.Contains(t, dups[0].Message, "first seen at paths./pets.get.parameters[0]")
	assert.Equal(t, "limit", dups[0].Value)
}

func TestValidateParameterOverrideIsNotDuplicate(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    parameters:
      - name: limit
        in: query
        schema:
          type: integer
    get:
      summary: List pets
      parameters:
        - name: limit
          in: query
          schema:
            type: string
      responses:
        "200":
          description: OK
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.IssuesOfKind(KindDuplicateIdentifier))
}

func TestValidateComponentNameGrammar(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/bad name'
components:
  schemas:
    bad name:
      type: object
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	invalid := result.IssuesOfKind(KindInvalidValue)
	require.NotEmpty(t, invalid)
	assert.Equal(t, "components.schemas.bad name", invalid[0].Path)
	assert.Equal(t, "bad name", invalid[0].Value)
}

func TestValidateDiscriminatorShape(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                type: string
                discriminator:
                  propertyName: petType
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	invalid := result.IssuesOfKind(KindInvalidValue)
	require.Len(t, invalid, 1)
	assert.Equal(t, "paths./pets.get.responses.200.content.application/json.schema.discriminator", invalid[0].Path)
	assert.Equal(t, "discriminator", invalid[0].Field)
}

func TestValidateDiscriminatorOnComposedSchema(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                oneOf:
                  - $ref: '#/components/schemas/Cat'
                  - $ref: '#/components/schemas/Dog'
                discriminator:
                  propertyName: petType
components:
  schemas:
    Cat:
      type: object
      properties:
        petType:
          type: string
    Dog:
      type: object
      properties:
        petType:
          type: string
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.IssuesOfKind(KindInvalidValue))
}

func TestValidateUndeclaredTagWithoutTagList(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      tags:
        - store
      responses:
        "200":
          description: OK
`
	result, err := ValidateWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)

	undeclared := result.IssuesOfKind(KindUndeclaredTag)
	require.Len(t, undeclared, 1)
	assert.Equal(t, "paths./pets.get", undeclared[0].Path)
	assert.Equal(t, "store", undeclared[0].Value)

	result, err = ValidateWithOptions(
		WithBytes([]byte(doc)),
		WithIgnore(IgnoreMissingTags),
	)
	require.NoError(t, err)
	assert.Empty(t, result.IssuesOfKind(KindUndeclaredTag))
}
