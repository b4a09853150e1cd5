package validator

import (
	"errors"
	"fmt"
	"time"

	"github.com/oaskit/oasv/internal/issues"
	"github.com/oaskit/oasv/internal/severity"
	"github.com/oaskit/oasv/oaserrors"
	"github.com/oaskit/oasv/parser"
)

// Severity indicates the severity level of a validation issue
type Severity = severity.Severity

const (
	// SeverityError indicates a spec violation that makes the document invalid
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a best practice violation or recommendation
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
)

// Kind identifies which validation rule an issue violates
type Kind = issues.Kind

// Issue kind aliases, re-exported for callers filtering results.
const (
	KindUnresolvedReference      = issues.KindUnresolvedReference
	KindCyclicReference          = issues.KindCyclicReference
	KindDuplicateIdentifier      = issues.KindDuplicateIdentifier
	KindUndeclaredTag            = issues.KindUndeclaredTag
	KindUndeclaredSecurityScheme = issues.KindUndeclaredSecurityScheme
	KindEmptyComposition         = issues.KindEmptyComposition
	KindDanglingRequiredProperty = issues.KindDanglingRequiredProperty
	KindMissingField             = issues.KindMissingField
	KindInvalidValue             = issues.KindInvalidValue
	KindInvalidURL               = issues.KindInvalidURL
	KindMalformedReference       = issues.KindMalformedReference
	KindUnusedComponent          = issues.KindUnusedComponent
)

const (
	// defaultErrorCapacity is the initial capacity for error slices
	defaultErrorCapacity = 10
	// defaultWarningCapacity is the initial capacity for warning slices
	defaultWarningCapacity = 10

	// maxSchemaNestingDepth bounds nested schema validation to prevent
	// stack overflow on pathological documents
	maxSchemaNestingDepth = 100
)

// ValidationError represents a single validation issue
type ValidationError = issues.Issue

// ValidationResult contains the results of validating an OpenAPI specification
type ValidationResult struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool
	// Version is the detected OAS version string
	Version string
	// OASVersion is the enumerated OAS version
	OASVersion parser.OASVersion
	// Errors contains all validation errors
	Errors []ValidationError
	// Warnings contains all validation warnings
	Warnings []ValidationError
	// ErrorCount is the total number of errors
	ErrorCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Document contains the validated document
	// (*parser.OAS2Document or *parser.OAS3Document)
	Document any
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat parser.SourceFormat
	// SourcePath is the original source path from the parsed document
	SourcePath string
}

// IssuesOfKind returns all errors and warnings carrying the given kind,
// errors first.
func (r *ValidationResult) IssuesOfKind(kind Kind) []ValidationError {
	var matched []ValidationError
	for _, e := range r.Errors {
		if e.Kind == kind {
			matched = append(matched, e)
		}
	}
	for _, w := range r.Warnings {
		if w.Kind == kind {
			matched = append(matched, w)
		}
	}
	return matched
}

// Validator handles OpenAPI specification validation
type Validator struct {
	// IncludeWarnings determines whether to include best practice warnings
	IncludeWarnings bool
	// StrictMode enables stricter validation beyond what the OAS
	// specification requires
	StrictMode bool
	// ValidateStructure controls whether the parser performs basic structure validation.
	// When true (default), the parser validates required fields and correct types.
	// When false, parsing is more lenient and skips structure validation.
	ValidateStructure bool
	// Ignore is the set of rules to opt out of. The zero value enables
	// every rule.
	Ignore Options
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger parser.Logger
}

// New creates a new Validator instance with default settings
func New() *Validator {
	return &Validator{
		IncludeWarnings:   true,
		StrictMode:        false,
		ValidateStructure: true,
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (v *Validator) log() parser.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return parser.NopLogger{}
}

// ValidateWithOptions validates an OpenAPI specification using functional options.
// This provides a flexible, extensible API that combines input source selection
// and configuration in a single function call.
//
// Example:
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithFilePath("openapi.yaml"),
//	    validator.WithIgnore(validator.IgnoreMissingTags),
//	)
func ValidateWithOptions(opts ...Option) (*ValidationResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, &oaserrors.ConfigError{
			Option:  "validator",
			Message: "invalid options",
			Cause:   err,
		}
	}

	v := &Validator{
		IncludeWarnings:   cfg.includeWarnings,
		StrictMode:        cfg.strictMode,
		ValidateStructure: cfg.validateStructure,
		Ignore:            cfg.ignore,
		Logger:            cfg.logger,
	}

	// Parsed input is checked first as it's the preferred high-performance path
	switch {
	case cfg.parsed != nil:
		return v.ValidateParsed(*cfg.parsed)
	case cfg.bytes != nil:
		return v.ValidateBytes(cfg.bytes)
	default:
		// cfg.filePath must be non-nil here (validated by applyOptions)
		return v.Validate(*cfg.filePath)
	}
}

// suppressed reports whether issues of the given kind are opted out by
// the validator's Ignore flags. Kinds whose suppression depends on
// context (duplicate operationIds, external references) are guarded at
// their call sites instead.
func (v *Validator) suppressed(kind Kind) bool {
	switch kind {
	case KindUndeclaredTag:
		return v.Ignore.Has(IgnoreMissingTags)
	case KindInvalidURL:
		return v.Ignore.Has(IgnoreInvalidURLs)
	case KindUnusedComponent:
		return v.Ignore.Has(IgnoreUnusedComponents)
	case KindMissingField:
		return v.Ignore.Has(IgnoreEmptyRequiredFields)
	default:
		return false
	}
}

// addError appends a validation error unless its kind is suppressed.
func (v *Validator) addError(result *ValidationResult, kind Kind, path, message string, opts ...func(*ValidationError)) {
	if v.suppressed(kind) {
		return
	}
	err := ValidationError{
		Path:     path,
		Kind:     kind,
		Message:  message,
		Severity: SeverityError,
	}
	for _, opt := range opts {
		opt(&err)
	}
	result.Errors = append(result.Errors, err)
}

// addWarning appends a validation warning unless its kind is suppressed.
func (v *Validator) addWarning(result *ValidationResult, kind Kind, path, message string, opts ...func(*ValidationError)) {
	if v.suppressed(kind) {
		return
	}
	warn := ValidationError{
		Path:     path,
		Kind:     kind,
		Message:  message,
		Severity: SeverityWarning,
	}
	for _, opt := range opts {
		opt(&warn)
	}
	result.Warnings = append(result.Warnings, warn)
}

// withField sets the Field on a ValidationError.
func withField(field string) func(*ValidationError) {
	return func(e *ValidationError) { e.Field = field }
}

// withValue sets the Value on a ValidationError.
func withValue(value any) func(*ValidationError) {
	return func(e *ValidationError) { e.Value = value }
}

// withSpecRef sets the SpecRef on a ValidationError.
func withSpecRef(ref string) func(*ValidationError) {
	return func(e *ValidationError) { e.SpecRef = ref }
}

// ValidateParsed validates an already parsed OpenAPI specification
func (v *Validator) ValidateParsed(parseResult parser.ParseResult) (*ValidationResult, error) {
	result := &ValidationResult{
		Version:      parseResult.Version,
		OASVersion:   parseResult.OASVersion,
		Errors:       make([]ValidationError, 0, defaultErrorCapacity),
		Warnings:     make([]ValidationError, 0, defaultWarningCapacity),
		LoadTime:     parseResult.LoadTime,
		SourceSize:   parseResult.SourceSize,
		Document:     parseResult.Document,
		SourceFormat: parseResult.SourceFormat,
		SourcePath:   parseResult.SourcePath,
	}

	// Carry structure validation findings from the parser into the result
	for _, parseErr := range parseResult.Errors {
		result.Errors = append(result.Errors, parseIssue(parseErr))
	}
	for _, warning := range parseResult.Warnings {
		result.Warnings = append(result.Warnings, ValidationError{
			Path:     "document",
			Kind:     KindInvalidValue,
			Message:  warning,
			Severity: SeverityWarning,
		})
	}

	// Perform additional validation based on OAS version.
	// Check both version and document type to ensure consistency.
	if parseResult.IsOAS2() {
		if doc, ok := parseResult.OAS2Document(); ok {
			v.validateOAS2(doc, result)
		} else {
			return nil, fmt.Errorf("validator: failed to cast document to OAS2Document")
		}
	} else if parseResult.IsOAS3() {
		if doc, ok := parseResult.OAS3Document(); ok {
			v.validateOAS3(doc, result)
		} else {
			return nil, fmt.Errorf("validator: failed to cast document to OAS3Document")
		}
	} else {
		// in reality this should never happen, since the parser would have errored as well
		return nil, fmt.Errorf("validator: unsupported OAS version: %s", parseResult.OASVersion)
	}

	result.ErrorCount = len(result.Errors)
	result.WarningCount = len(result.Warnings)
	result.Valid = result.ErrorCount == 0

	if !v.IncludeWarnings {
		result.Warnings = nil
		result.WarningCount = 0
	}

	v.log().Debug("validation complete",
		"version", result.Version,
		"errors", result.ErrorCount,
		"warnings", result.WarningCount,
	)

	return result, nil
}

// parseIssue converts a parser structure validation error into an issue,
// preserving the schema path for shape conflicts.
func parseIssue(err error) ValidationError {
	var shapeErr *oaserrors.ShapeConflictError
	if errors.As(err, &shapeErr) {
		return ValidationError{
			Path:     shapeErr.Path,
			Kind:     KindInvalidValue,
			Message:  shapeErr.Error(),
			Severity: SeverityError,
		}
	}
	return ValidationError{
		Path:     "document",
		Kind:     KindInvalidValue,
		Message:  err.Error(),
		Severity: SeverityError,
	}
}

// Validate validates an OpenAPI specification file
func (v *Validator) Validate(specPath string) (*ValidationResult, error) {
	p := parser.New()
	p.ValidateStructure = v.ValidateStructure
	p.Logger = v.Logger

	parseResult, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("validator: failed to parse specification: %w", err)
	}

	return v.ValidateParsed(*parseResult)
}

// ValidateBytes validates an OpenAPI specification from a byte slice
func (v *Validator) ValidateBytes(data []byte) (*ValidationResult, error) {
	p := parser.New()
	p.ValidateStructure = v.ValidateStructure
	p.Logger = v.Logger

	parseResult, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("validator: failed to parse specification: %w", err)
	}

	return v.ValidateParsed(*parseResult)
}
