package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsHas(t *testing.T) {
	opts := IgnoreMissingTags | IgnoreUnusedComponents

	assert.True(t, opts.Has(IgnoreMissingTags))
	assert.True(t, opts.Has(IgnoreUnusedComponents))
	assert.True(t, opts.Has(IgnoreMissingTags|IgnoreUnusedComponents))
	assert.False(t, opts.Has(IgnoreInvalidURLs))
	assert.False(t, opts.Has(IgnoreMissingTags|IgnoreInvalidURLs))

	// Zero value has nothing set
	assert.False(t, Options(0).Has(IgnoreMissingTags))
	assert.True(t, Options(0).Has(0))
}

func TestOptionsCombination(t *testing.T) {
	a := IgnoreMissingTags | IgnoreExternalReferences
	b := IgnoreExternalReferences | IgnoreMissingTags

	// Order-independent and idempotent
	assert.Equal(t, a, b)
	assert.Equal(t, a, a|IgnoreMissingTags)
	assert.Equal(t, a, a|a)
}

func TestOptionsString(t *testing.T) {
	tests := []struct {
		opts Options
		want string
	}{
		{0, "none"},
		{IgnoreMissingTags, "IgnoreMissingTags"},
		{IgnoreMissingTags | IgnoreUnusedComponents, "IgnoreMissingTags|IgnoreUnusedComponents"},
		{
			IgnoreExternalReferences | IgnoreNonUniqueOperationIDs | IgnoreEmptyRequiredFields,
			"IgnoreExternalReferences|IgnoreNonUniqueOperationIDs|IgnoreEmptyRequiredFields",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.opts.String())
	}
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		name string
		want Options
		ok   bool
	}{
		{"IgnoreMissingTags", IgnoreMissingTags, true},
		{"ignore-missing-tags", IgnoreMissingTags, true},
		{"IgnoreExternalReferences", IgnoreExternalReferences, true},
		{"ignore-external-references", IgnoreExternalReferences, true},
		{"ignore-invalid-urls", IgnoreInvalidURLs, true},
		{"IgnoreNonUniqueOperationIDs", IgnoreNonUniqueOperationIDs, true},
		{"ignore-non-unique-operation-ids", IgnoreNonUniqueOperationIDs, true},
		{"ignore-unused-components", IgnoreUnusedComponents, true},
		{"ignore-empty-required-fields", IgnoreEmptyRequiredFields, true},
		{"ignore-everything", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseOption(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOptionRoundTrip(t *testing.T) {
	// Every named flag parses back from both of its spellings
	for _, entry := range optionNames {
		got, ok := ParseOption(entry.name)
		require.True(t, ok, entry.name)
		assert.Equal(t, entry.flag, got)

		got, ok = ParseOption(kebabCase(entry.name))
		require.True(t, ok, kebabCase(entry.name))
		assert.Equal(t, entry.flag, got)
	}
}

func TestApplyOptionsDefaults(t *testing.T) {
	cfg, err := applyOptions(WithBytes([]byte("openapi: 3.0.3")))
	require.NoError(t, err)

	assert.True(t, cfg.includeWarnings)
	assert.True(t, cfg.validateStructure)
	assert.False(t, cfg.strictMode)
	assert.Equal(t, Options(0), cfg.ignore)
}

func TestApplyOptionsInputSources(t *testing.T) {
	_, err := applyOptions()
	assert.Error(t, err)

	_, err = applyOptions(WithFilePath("a.yaml"), WithBytes([]byte("x")))
	assert.Error(t, err)

	_, err = applyOptions(WithBytes(nil))
	assert.Error(t, err)
}

func TestApplyOptionsIgnoreAccumulates(t *testing.T) {
	cfg, err := applyOptions(
		WithBytes([]byte("x")),
		WithIgnore(IgnoreMissingTags),
		WithIgnore(IgnoreUnusedComponents),
		WithIgnore(IgnoreMissingTags),
	)
	require.NoError(t, err)
	assert.Equal(t, IgnoreMissingTags|IgnoreUnusedComponents, cfg.ignore)
}

func TestKebabCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"IgnoreMissingTags", "ignore-missing-tags"},
		{"IgnoreExternalReferences", "ignore-external-references"},
		{"IgnoreInvalidURLs", "ignore-invalid-urls"},
		{"IgnoreNonUniqueOperationIDs", "ignore-non-unique-operation-ids"},
		{"IgnoreUnusedComponents", "ignore-unused-components"},
		{"IgnoreEmptyRequiredFields", "ignore-empty-required-fields"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, kebabCase(tt.in))
	}
}
