package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		expected string
	}{
		{"error", SeverityError, "error"},
		{"warning", SeverityWarning, "warning"},
		{"info", SeverityInfo, "info"},
		{"unknown value", Severity(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.severity.String())
		})
	}
}

func TestSeverityOrdering(t *testing.T) {
	// Error is the zero value so a zero-initialized Issue defaults to the
	// strictest severity.
	assert.Equal(t, Severity(0), SeverityError)
	assert.Less(t, SeverityError, SeverityWarning)
	assert.Less(t, SeverityWarning, SeverityInfo)
}
