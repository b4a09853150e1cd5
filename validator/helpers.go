package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oaskit/oasv/internal/httputil"
	"github.com/oaskit/oasv/parser"
)

// sortedKeys returns the keys of m in sorted order for deterministic
// iteration.
func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// validateInfoObject validates the info object fields shared between OAS 2.0 and 3.x.
// Set validateSPDX to true for OAS 3.1+ to validate the SPDX license identifier.
func (v *Validator) validateInfoObject(info *parser.Info, result *ValidationResult, baseURL string, validateSPDX bool) {
	if info.Title == "" {
		v.addError(result, KindMissingField, "info.title", "Info object must have a non-empty title",
			withSpecRef(fmt.Sprintf("%s#info-object", baseURL)),
			withField("title"),
		)
	}

	if info.Version == "" {
		v.addError(result, KindMissingField, "info.version", "Info object must have a non-empty version",
			withSpecRef(fmt.Sprintf("%s#info-object", baseURL)),
			withField("version"),
		)
	}

	// Validate contact information if present
	if info.Contact != nil {
		if info.Contact.URL != "" && !isValidURL(info.Contact.URL) {
			v.addError(result, KindInvalidURL, "info.contact.url", fmt.Sprintf("Invalid URL format: %s", info.Contact.URL),
				withSpecRef(fmt.Sprintf("%s#contact-object", baseURL)),
				withField("url"),
				withValue(info.Contact.URL),
			)
		}
		if info.Contact.Email != "" && !isValidEmail(info.Contact.Email) {
			v.addError(result, KindInvalidValue, "info.contact.email", fmt.Sprintf("Invalid email format: %s", info.Contact.Email),
				withSpecRef(fmt.Sprintf("%s#contact-object", baseURL)),
				withField("email"),
				withValue(info.Contact.Email),
			)
		}
	}

	// Validate license information if present
	if info.License != nil {
		if info.License.URL != "" && !isValidURL(info.License.URL) {
			v.addError(result, KindInvalidURL, "info.license.url", fmt.Sprintf("Invalid URL format: %s", info.License.URL),
				withSpecRef(fmt.Sprintf("%s#license-object", baseURL)),
				withField("url"),
				withValue(info.License.URL),
			)
		}
		// SPDX license identifier validation (OAS 3.1+)
		if validateSPDX && info.License.Identifier != "" && !validateSPDXLicense(info.License.Identifier) {
			v.addError(result, KindInvalidValue, "info.license.identifier", fmt.Sprintf("Invalid SPDX license identifier format: %s", info.License.Identifier),
				withSpecRef(fmt.Sprintf("%s#license-object", baseURL)),
				withField("identifier"),
				withValue(info.License.Identifier),
			)
		}
	}
}

// validateExternalDocs validates an external documentation object.
func (v *Validator) validateExternalDocs(docs *parser.ExternalDocs, path string, result *ValidationResult, baseURL string) {
	if docs == nil {
		return
	}
	if docs.URL == "" {
		v.addError(result, KindMissingField, path, "External documentation must have a url",
			withSpecRef(fmt.Sprintf("%s#external-documentation-object", baseURL)),
			withField("url"),
		)
		return
	}
	if !isValidURL(docs.URL) {
		v.addError(result, KindInvalidURL, path, fmt.Sprintf("Invalid URL format: %s", docs.URL),
			withSpecRef(fmt.Sprintf("%s#external-documentation-object", baseURL)),
			withField("url"),
			withValue(docs.URL),
		)
	}
}

// validateResponseStatusCodes validates HTTP status codes in an operation's responses.
// This helper is shared by both OAS 2.0 and OAS 3.x operation validators.
func (v *Validator) validateResponseStatusCodes(responses *parser.Responses, path string, result *ValidationResult, baseURL string) {
	if responses == nil {
		return
	}

	hasSuccess := responses.Default != nil
	for _, code := range sortedKeys(responses.Codes) {
		// The parser already rejects invalid keys; re-check here for
		// documents constructed in code.
		if !httputil.ValidateStatusCode(code) {
			v.addError(result, KindInvalidValue, fmt.Sprintf("%s.responses.%s", path, code),
				fmt.Sprintf("Invalid HTTP status code: %s", code),
				withSpecRef(fmt.Sprintf("%s#responses-object", baseURL)),
				withValue(code),
			)
		} else if v.StrictMode && code != "default" && !strings.HasPrefix(code, "x-") &&
			!strings.HasSuffix(code, "XX") && !httputil.IsStandardStatusCode(code) {
			v.addWarning(result, KindInvalidValue, fmt.Sprintf("%s.responses.%s", path, code),
				fmt.Sprintf("Non-standard HTTP status code: %s (not defined in HTTP RFCs)", code),
				withSpecRef(fmt.Sprintf("%s#responses-object", baseURL)),
				withValue(code),
			)
		}

		if strings.HasPrefix(code, "2") || code == "default" {
			hasSuccess = true
		}
	}
	if !hasSuccess && v.StrictMode {
		v.addWarning(result, KindMissingField, fmt.Sprintf("%s.responses", path),
			"Operation should define at least one successful response (2XX or default)",
			withSpecRef(fmt.Sprintf("%s#responses-object", baseURL)),
		)
	}
}

// validateResponseDescriptions checks that each response carries a
// description, which every OAS dialect requires. Responses
// defined via $ref are exempt.
func (v *Validator) validateResponseDescriptions(responses *parser.Responses, path string, result *ValidationResult, baseURL string) {
	if responses == nil {
		return
	}
	check := func(resp *parser.Response, respPath string) {
		if resp == nil || resp.Ref != "" {
			return
		}
		if resp.Description == "" {
			v.addError(result, KindMissingField, respPath, "Response must have a description",
				withSpecRef(fmt.Sprintf("%s#response-object", baseURL)),
				withField("description"),
			)
		}
	}
	if responses.Default != nil {
		check(responses.Default, fmt.Sprintf("%s.responses.default", path))
	}
	for _, code := range sortedKeys(responses.Codes) {
		check(responses.Codes[code], fmt.Sprintf("%s.responses.%s", path, code))
	}
}

// checkDuplicateOperationIds checks for duplicate operationIds in a set of operations
// and reports errors when found. Updates the operationIds map as it processes operations.
func (v *Validator) checkDuplicateOperationIds(
	operations map[string]*parser.Operation,
	pathType string,
	pathPattern string,
	operationIds map[string]string,
	result *ValidationResult,
	baseURL string,
) {
	if v.Ignore.Has(IgnoreNonUniqueOperationIDs) {
		return
	}

	// Sorted for deterministic first-seen attribution
	methods := make([]string, 0, len(operations))
	for method := range operations {
		methods = append(methods, method)
	}
	sort.Strings(methods)

	for _, method := range methods {
		op := operations[method]
		if op == nil || op.OperationID == "" {
			continue
		}

		opPath := fmt.Sprintf("%s.%s.%s", pathType, pathPattern, method)

		if firstSeenAt, exists := operationIds[op.OperationID]; exists {
			v.addError(result, KindDuplicateIdentifier, opPath,
				fmt.Sprintf("Duplicate operationId '%s' (first seen at %s)", op.OperationID, firstSeenAt),
				withSpecRef(fmt.Sprintf("%s#operation-object", baseURL)),
				withField("operationId"),
				withValue(op.OperationID),
			)
		} else {
			operationIds[op.OperationID] = opPath
		}
	}
}

// validateParameterUniqueness reports parameters repeating a (name, in)
// pair within one parameter list. Operation-level parameters overriding a
// path-level parameter with the same pair are legal and not checked here;
// $ref parameters have no local identity and are skipped.
func (v *Validator) validateParameterUniqueness(params []*parser.Parameter, path string, result *ValidationResult, baseURL string) {
	seen := make(map[string]int, len(params))
	for i, param := range params {
		if param == nil || param.Ref != "" {
			continue
		}
		key := param.In + ":" + param.Name
		if first, exists := seen[key]; exists {
			v.addError(result, KindDuplicateIdentifier, fmt.Sprintf("%s.parameters[%d]", path, i),
				fmt.Sprintf("Duplicate parameter '%s' in '%s' (first seen at %s.parameters[%d])", param.Name, param.In, path, first),
				withSpecRef(fmt.Sprintf("%s#parameter-object", baseURL)),
				withField("name"),
				withValue(param.Name),
			)
			continue
		}
		seen[key] = i
	}
}

// validateOperationTags checks that every tag named by an operation is
// declared in the document's top-level tags list. Operations cannot
// introduce tags of their own; an absent top-level list declares nothing.
func (v *Validator) validateOperationTags(op *parser.Operation, opPath string, declaredTags map[string]bool, result *ValidationResult, baseURL string) {
	for _, tag := range op.Tags {
		if !declaredTags[tag] {
			v.addWarning(result, KindUndeclaredTag, opPath,
				fmt.Sprintf("Operation references tag '%s' that is not declared in the top-level tags list", tag),
				withSpecRef(fmt.Sprintf("%s#operation-object", baseURL)),
				withField("tags"),
				withValue(tag),
			)
		}
	}
}

// collectDeclaredTags builds the set of declared tag names and reports
// duplicate declarations.
func (v *Validator) collectDeclaredTags(tags []*parser.Tag, result *ValidationResult, baseURL string) map[string]bool {
	declared := make(map[string]bool, len(tags))
	for i, tag := range tags {
		if tag == nil {
			continue
		}
		if tag.Name == "" {
			v.addError(result, KindMissingField, fmt.Sprintf("tags[%d]", i), "Tag must have a name",
				withSpecRef(fmt.Sprintf("%s#tag-object", baseURL)),
				withField("name"),
			)
			continue
		}
		if declared[tag.Name] {
			v.addError(result, KindDuplicateIdentifier, fmt.Sprintf("tags[%d]", i),
				fmt.Sprintf("Duplicate tag name '%s'", tag.Name),
				withSpecRef(fmt.Sprintf("%s#tag-object", baseURL)),
				withField("name"),
				withValue(tag.Name),
			)
			continue
		}
		declared[tag.Name] = true
	}
	return declared
}
