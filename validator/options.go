package validator

import (
	"fmt"
	"strings"

	"github.com/oaskit/oasv/internal/options"
	"github.com/oaskit/oasv/parser"
)

// Options is a bit set of validation rules to opt out of. The zero value
// enables every rule (full strict validation). Combine flags with the
// bitwise OR operator; the combination is order-independent and
// idempotent:
//
//	v := validator.New()
//	v.Ignore = validator.IgnoreMissingTags | validator.IgnoreUnusedComponents
type Options uint32

const (
	// IgnoreMissingTags suppresses issues for operation tags that are not
	// declared in the document's top-level tags list.
	IgnoreMissingTags Options = 1 << iota

	// IgnoreExternalReferences suppresses issues for $ref tokens that
	// target other documents. External references are never dereferenced
	// either way; this flag only controls whether their presence is
	// reported.
	IgnoreExternalReferences

	// IgnoreInvalidURLs suppresses issues for URL-shaped fields that do
	// not parse (contact, license, external docs, server and OAuth URLs).
	IgnoreInvalidURLs

	// IgnoreNonUniqueOperationIDs suppresses duplicate operationId issues.
	IgnoreNonUniqueOperationIDs

	// IgnoreUnusedComponents suppresses issues for components that are
	// never referenced anywhere in the document.
	IgnoreUnusedComponents

	// IgnoreEmptyRequiredFields suppresses issues for required text
	// fields that are present but empty (info.title, response
	// descriptions, and similar).
	IgnoreEmptyRequiredFields
)

// optionNames maps each flag to its stable name, used by String.
var optionNames = []struct {
	flag Options
	name string
}{
	{IgnoreMissingTags, "IgnoreMissingTags"},
	{IgnoreExternalReferences, "IgnoreExternalReferences"},
	{IgnoreInvalidURLs, "IgnoreInvalidURLs"},
	{IgnoreNonUniqueOperationIDs, "IgnoreNonUniqueOperationIDs"},
	{IgnoreUnusedComponents, "IgnoreUnusedComponents"},
	{IgnoreEmptyRequiredFields, "IgnoreEmptyRequiredFields"},
}

// Has reports whether every flag in mask is set.
func (o Options) Has(mask Options) bool {
	return o&mask == mask
}

// String returns the set flags joined with "|", or "none".
func (o Options) String() string {
	var names []string
	for _, entry := range optionNames {
		if o.Has(entry.flag) {
			names = append(names, entry.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseOption returns the flag named by s, matching the constant names
// above as well as their kebab-case forms used by the CLI (e.g.
// "ignore-missing-tags").
func ParseOption(s string) (Options, bool) {
	for _, entry := range optionNames {
		if s == entry.name || s == kebabCase(entry.name) {
			return entry.flag, true
		}
	}
	return 0, false
}

// kebabCase converts a constant name to its CLI spelling. A word break
// falls before each uppercase character that follows a lowercase one, so
// acronym runs stay together: "IgnoreInvalidURLs" becomes
// "ignore-invalid-urls", "IgnoreNonUniqueOperationIDs" becomes
// "ignore-non-unique-operation-ids".
func kebabCase(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
			prevLower = false
		} else {
			b.WriteRune(r)
			prevLower = true
		}
	}
	return b.String()
}

// Option is a function that configures a validate operation
type Option func(*validateConfig) error

// validateConfig holds configuration for a validate operation
type validateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	bytes    []byte
	parsed   *parser.ParseResult

	// Configuration options
	includeWarnings   bool
	strictMode        bool
	validateStructure bool
	ignore            Options
	logger            parser.Logger
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		includeWarnings:   true,
		validateStructure: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"validator: must specify an input source (use WithFilePath, WithBytes, or WithParsed)",
		"validator: must specify exactly one input source",
		cfg.filePath != nil, cfg.bytes != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a local file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *validateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *validateConfig) error {
		if data == nil {
			return fmt.Errorf("validator: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithParsed specifies an already-parsed document as the input source.
// This is the preferred high-performance path when the caller has
// already invoked the parser.
func WithParsed(parsed *parser.ParseResult) Option {
	return func(cfg *validateConfig) error {
		if parsed == nil {
			return fmt.Errorf("validator: parsed result cannot be nil")
		}
		cfg.parsed = parsed
		return nil
	}
}

// WithIgnore adds rule opt-out flags to the validation run. May be given
// multiple times; flags accumulate.
func WithIgnore(flags Options) Option {
	return func(cfg *validateConfig) error {
		cfg.ignore |= flags
		return nil
	}
}

// WithIncludeWarnings enables or disables warnings in the result
// Default: true
func WithIncludeWarnings(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.includeWarnings = enabled
		return nil
	}
}

// WithStrictMode enables stricter validation beyond what the OAS
// specification requires
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithValidateStructure controls whether the parser performs basic
// structure validation when the input is a file path or byte slice
// Default: true
func WithValidateStructure(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.validateStructure = enabled
		return nil
	}
}

// WithLogger sets a structured logger for debug output during validation.
func WithLogger(l parser.Logger) Option {
	return func(cfg *validateConfig) error {
		cfg.logger = l
		return nil
	}
}
