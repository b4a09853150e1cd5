// This file implements format validation helpers for URLs, emails, and
// SPDX license identifiers used during OAS document validation.

package validator

import (
	"net/url"
	"strings"

	"github.com/oaskit/oasv/internal/stringutil"
)

// getJSONSchemaRef returns the JSON Schema specification reference URL
func getJSONSchemaRef() string {
	return "https://www.ietf.org/archive/id/draft-bhutton-json-schema-01.html"
}

// isValidURL performs URL validation using standard library's url.Parse
// Validates contact.url, externalDocs.url, license.url, and OAuth URLs
func isValidURL(s string) bool {
	if s == "" {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	// Accept http/https schemes, or relative URLs starting with /
	// Reject bare strings without proper URL structure
	if u.Scheme == "http" || u.Scheme == "https" {
		return true
	}
	if u.Scheme == "" && strings.HasPrefix(s, "/") {
		return true
	}
	return false
}

// isTemplatedURL reports whether a URL contains server variable
// placeholders like {region}. Templated server URLs are not parseable
// until substitution, so URL format checks skip them.
func isTemplatedURL(s string) bool {
	return strings.Contains(s, "{")
}

// isValidEmail validates an email address by delegating to [stringutil.IsValidEmail].
// Validates contact.email in the info object.
// Empty is valid because this field is optional.
func isValidEmail(s string) bool {
	if s == "" {
		return true
	}
	return stringutil.IsValidEmail(s)
}

// validateSPDXLicense validates SPDX license identifier (basic validation)
// Used to validate license.identifier in the info object (OAS 3.1+)
func validateSPDXLicense(identifier string) bool {
	if identifier == "" {
		return true
	}
	// Basic validation. A complete implementation would check the full
	// SPDX license list.
	return !strings.Contains(identifier, " ")
}
