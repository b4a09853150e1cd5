package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected bool
	}{
		{"default keyword", "default", true},
		{"extension x-custom", "x-custom", true},
		{"wildcard 1XX", "1XX", true},
		{"wildcard 5XX", "5XX", true},
		{"invalid wildcard 0XX", "0XX", false},
		{"invalid wildcard 6XX", "6XX", false},
		{"partial wildcard 2X", "2X", false},
		{"partial wildcard 20X", "20X", false},
		{"valid 100", "100", true},
		{"valid 200", "200", true},
		{"valid 418", "418", true},
		{"valid 599", "599", true},
		{"invalid 099", "099", false},
		{"invalid 600", "600", false},
		{"too long", "2000", false},
		{"not numeric", "2ab", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateStatusCode(tt.code))
		})
	}
}

func TestIsValidMediaType(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		expected  bool
	}{
		{"json", "application/json", true},
		{"full wildcard", "*/*", true},
		{"type wildcard", "application/*", true},
		{"wildcard type with subtype", "*/json", false},
		{"with parameter", "application/json; charset=utf-8", true},
		{"vendor tree", "application/vnd.api+json", true},
		{"missing subtype", "application/", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidMediaType(tt.mediaType))
		})
	}
}
