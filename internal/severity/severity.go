// Package severity provides severity level constants for issues reported
// by the validator package.
//
// The severity levels are ordered from most to least severe:
// Error < Warning < Info (by enum value).
package severity

// Severity indicates the severity level of an issue found during validation.
type Severity int

const (
	// SeverityError indicates a spec violation that makes the document invalid.
	SeverityError Severity = iota

	// SeverityWarning indicates a best-practice violation or recommendation
	// that doesn't prevent processing but should be addressed.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}
