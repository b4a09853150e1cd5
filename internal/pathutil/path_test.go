package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathParamRegex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"no params", "/pets", nil},
		{"single param", "/pets/{petId}", []string{"petId"}},
		{"multiple params", "/pets/{petId}/owners/{ownerId}", []string{"petId", "ownerId"}},
		{"adjacent params", "/{a}{b}", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := PathParamRegex.FindAllStringSubmatch(tt.input, -1)
			var names []string
			for _, m := range matches {
				names = append(names, m[1])
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}
