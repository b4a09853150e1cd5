// Package httputil provides HTTP-related validation utilities and constants.
package httputil

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// HTTP status code boundaries
const (
	statusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	minStatusCode    = 100 // Minimum valid HTTP status code
	maxStatusCode    = 599 // Maximum valid HTTP status code
	wildcardChar     = 'X' // Wildcard character in status code patterns (e.g., "2XX")
)

// HTTP method constants, lowercase as they appear as Path Item fields
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
)

// ValidateStatusCode checks if a status code string is valid as a responses key.
// Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == "default" {
		return true
	}

	if strings.HasPrefix(code, "x-") {
		return true
	}

	if len(code) != statusCodeLength {
		return false
	}

	// Wildcard patterns (e.g., "2XX", "4XX")
	if code[1] == wildcardChar && code[2] == wildcardChar {
		return code[0] >= '1' && code[0] <= '5'
	}

	statusCode, err := strconv.Atoi(code)
	return err == nil && statusCode >= minStatusCode && statusCode <= maxStatusCode
}

// IsStandardStatusCode reports whether code is a numeric status code
// defined in the HTTP RFCs. Wildcards, "default" and extension keys are
// not standard codes.
func IsStandardStatusCode(code string) bool {
	statusCode, err := strconv.Atoi(code)
	if err != nil {
		return false
	}
	return http.StatusText(statusCode) != ""
}

// IsValidMediaType validates a media type string according to RFC 2045/2046.
// Handles wildcards (*/* and type/*) and rejects invalid combinations (*/subtype).
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}

	// A wildcard type with a concrete subtype is not a valid range
	if strings.HasPrefix(mediaType, "*/") {
		return false
	}

	if strings.HasSuffix(mediaType, "/*") {
		parts := strings.Split(mediaType, "/")
		return len(parts) == 2 && parts[0] != "" && parts[0] != "*"
	}

	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}
