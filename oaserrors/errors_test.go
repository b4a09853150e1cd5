package oaserrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	t.Run("message formatting", func(t *testing.T) {
		err := &ParseError{
			Path:    "api.yaml",
			Line:    12,
			Column:  3,
			Message: "missing required field 'info'",
		}
		assert.Equal(t, "malformed document in api.yaml at line 12, column 3: missing required field 'info'", err.Error())
	})

	t.Run("matches sentinel", func(t *testing.T) {
		err := &ParseError{Message: "bad"}
		assert.ErrorIs(t, err, ErrMalformedDocument)
		assert.NotErrorIs(t, err, ErrReference)
	})

	t.Run("unwraps cause", func(t *testing.T) {
		cause := errors.New("yaml: unmarshal error")
		err := &ParseError{Message: "decode failed", Cause: cause}
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "yaml: unmarshal error")
	})

	t.Run("survives wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("parser: %w", &ParseError{Message: "bad"})
		assert.ErrorIs(t, wrapped, ErrMalformedDocument)

		var parseErr *ParseError
		require.ErrorAs(t, wrapped, &parseErr)
		assert.Equal(t, "bad", parseErr.Message)
	})
}

func TestShapeConflictError(t *testing.T) {
	err := &ShapeConflictError{
		Path:   "components.schemas.Pet",
		Shapes: []string{"array", "object"},
	}
	assert.Equal(t, "schema shape conflict at components.schemas.Pet: node declares array and object shape", err.Error())
	assert.ErrorIs(t, err, ErrShapeConflict)
	// A shape conflict makes the whole document malformed.
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestReferenceError(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		err := &ReferenceError{
			Ref:     "#/components/schemas/Missing",
			RefType: "local",
			Message: "not found",
		}
		assert.Equal(t, "reference error: #/components/schemas/Missing: not found", err.Error())
		assert.ErrorIs(t, err, ErrReference)
		assert.NotErrorIs(t, err, ErrCircularReference)
	})

	t.Run("circular", func(t *testing.T) {
		err := &ReferenceError{
			Ref:        "#/components/schemas/A",
			RefType:    "local",
			IsCircular: true,
		}
		assert.Equal(t, "circular reference: #/components/schemas/A", err.Error())
		assert.ErrorIs(t, err, ErrReference)
		assert.ErrorIs(t, err, ErrCircularReference)
	})
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Option:  "input source",
		Message: "must specify exactly one input source",
	}
	assert.Equal(t, "configuration error for input source: must specify exactly one input source", err.Error())
	assert.ErrorIs(t, err, ErrConfig)
}
