package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oaskit/oasv/internal/severity"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name        string
		issue       Issue
		contains    []string
		notContains []string
	}{
		{
			name: "error severity with basic fields",
			issue: Issue{
				Path:     "paths./pets.get",
				Kind:     KindMissingField,
				Message:  "Missing required field",
				Severity: severity.SeverityError,
			},
			contains:    []string{"✗", "paths./pets.get", "[Missing Field]", "Missing required field"},
			notContains: []string{"Spec:"},
		},
		{
			name: "warning severity",
			issue: Issue{
				Path:     "components.schemas.Pet",
				Kind:     KindUnusedComponent,
				Message:  "component is never referenced",
				Severity: severity.SeverityWarning,
			},
			contains: []string{"⚠", "components.schemas.Pet", "[Unused Component]"},
		},
		{
			name: "info severity with spec ref",
			issue: Issue{
				Path:     "servers[0]",
				Kind:     KindInvalidURL,
				Message:  "url is not absolute",
				Severity: severity.SeverityInfo,
				SpecRef:  "https://spec.openapis.org/oas/v3.1.0.html#server-object",
			},
			contains: []string{"ℹ", "Spec: https://spec.openapis.org/oas/v3.1.0.html#server-object"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.issue.String()
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.notContains {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unresolved-reference", KindUnresolvedReference.String())
	assert.Equal(t, "cyclic-reference", KindCyclicReference.String())
	assert.Equal(t, "duplicate-identifier", KindDuplicateIdentifier.String())
	assert.Equal(t, "dangling-required-property", KindDanglingRequiredProperty.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "Unresolved Reference", KindUnresolvedReference.Label())
	assert.Equal(t, "Empty Composition", KindEmptyComposition.Label())
	assert.Equal(t, "Undeclared Security Scheme", KindUndeclaredSecurityScheme.Label())
}
