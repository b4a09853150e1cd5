package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaskit/oasv/validator"
)

func TestParseIgnoreFlags(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    validator.Options
		wantErr bool
	}{
		{"empty", nil, 0, false},
		{"kebab", []string{"ignore-missing-tags"}, validator.IgnoreMissingTags, false},
		{"without prefix", []string{"missing-tags"}, validator.IgnoreMissingTags, false},
		{"constant name", []string{"IgnoreUnusedComponents"}, validator.IgnoreUnusedComponents, false},
		{"acronym", []string{"invalid-urls"}, validator.IgnoreInvalidURLs, false},
		{"acronym with prefix", []string{"ignore-non-unique-operation-ids"}, validator.IgnoreNonUniqueOperationIDs, false},
		{
			"multiple",
			[]string{"missing-tags", "external-references"},
			validator.IgnoreMissingTags | validator.IgnoreExternalReferences,
			false,
		},
		{"duplicate", []string{"missing-tags", "missing-tags"}, validator.IgnoreMissingTags, false},
		{"unknown", []string{"everything"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIgnoreFlags(tt.values)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
