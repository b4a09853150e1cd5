package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected OASVersion
		ok       bool
	}{
		{"2.0", OASVersion20, true},
		{"3.0.0", OASVersion300, true},
		{"3.0.3", OASVersion303, true},
		{"3.0.4", OASVersion304, true},
		{"3.1.0", OASVersion310, true},
		{"3.1.1", OASVersion311, true},
		// Future patch releases map to the closest known version
		{"3.0.9", OASVersion304, true},
		{"3.1.7", OASVersion311, true},
		// Pre-release suffixes are stripped
		{"3.1.0-rc1", OASVersion310, true},
		{"3.0.0+build.1", OASVersion300, true},
		// Unsupported
		{"1.2", Unknown, false},
		{"2.1", Unknown, false},
		{"3.2.0", Unknown, false},
		{"4.0.0", Unknown, false},
		{"banana", Unknown, false},
		{"", Unknown, false},
		{"3", Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, ok := ParseVersion(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestOASVersionSeries(t *testing.T) {
	assert.Equal(t, Series20, OASVersion20.Series())
	assert.Equal(t, Series30, OASVersion300.Series())
	assert.Equal(t, Series30, OASVersion304.Series())
	assert.Equal(t, Series31, OASVersion310.Series())
	assert.Equal(t, Series31, OASVersion311.Series())
	assert.Equal(t, SeriesUnknown, Unknown.Series())
}

func TestOASVersionString(t *testing.T) {
	assert.Equal(t, "2.0", OASVersion20.String())
	assert.Equal(t, "3.0.3", OASVersion303.String())
	assert.Equal(t, "3.1.0", OASVersion310.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.True(t, OASVersion311.IsValid())
	assert.False(t, Unknown.IsValid())
}
