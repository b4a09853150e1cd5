package parser

import (
	"fmt"
	"strings"

	"github.com/oaskit/oasv/oaserrors"
)

// defaultMaxRefDepth bounds $ref chain traversal so that resolution
// terminates on pathological inputs even before cycle detection fires.
const defaultMaxRefDepth = 100

// IsLocalRef reports whether ref points inside the same document.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#/")
}

// IsExternalRef reports whether ref targets another document (a file path
// or URL, with or without a fragment). External references are classified
// syntactically and never fetched.
func IsExternalRef(ref string) bool {
	return ref != "" && !strings.HasPrefix(ref, "#")
}

// LocalRef is a decomposed local reference token.
type LocalRef struct {
	// Container is the top-level section the reference points into, e.g.
	// "definitions" or "components".
	Container string
	// Kind is the component kind for 3.x references ("schemas",
	// "parameters", ...). Empty for 2.0 references, whose containers
	// already imply the kind.
	Kind string
	// Name is the referenced component name.
	Name string
}

// ParseLocalRef decomposes a local reference into its container, kind and
// name. Supported grammars:
//
//	#/definitions/<name>            (OAS 2.0 schemas)
//	#/parameters/<name>             (OAS 2.0)
//	#/responses/<name>              (OAS 2.0)
//	#/securityDefinitions/<name>    (OAS 2.0)
//	#/components/<kind>/<name>      (OAS 3.x)
//
// Returns false for anything else, including refs with JSON Pointer
// escapes in unsupported positions or too few segments.
func ParseLocalRef(ref string) (LocalRef, bool) {
	if !IsLocalRef(ref) {
		return LocalRef{}, false
	}
	parts := strings.Split(ref[2:], "/")
	for i, part := range parts {
		parts[i] = unescapeJSONPointer(part)
	}

	switch {
	case len(parts) == 2:
		switch parts[0] {
		case "definitions", "parameters", "responses", "securityDefinitions":
			return LocalRef{Container: parts[0], Name: parts[1]}, true
		}
	case len(parts) == 3 && parts[0] == "components":
		switch parts[1] {
		case "schemas", "responses", "parameters", "examples", "requestBodies",
			"headers", "securitySchemes", "links", "callbacks", "pathItems":
			return LocalRef{Container: parts[0], Kind: parts[1], Name: parts[2]}, true
		}
	}
	return LocalRef{}, false
}

// unescapeJSONPointer reverses the JSON Pointer escapes: ~1 is '/', ~0 is '~'.
// Order matters: ~1 first, otherwise "~01" would turn into "/".
func unescapeJSONPointer(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

// RefResolver resolves local $ref tokens against a parsed document.
// It never performs I/O: external references fail with a ReferenceError
// marked RefTypeExternal, leaving the decision of how to treat them to the
// caller.
//
// A resolver is safe for concurrent use as long as the underlying document
// is not mutated.
type RefResolver struct {
	doc any
	// MaxDepth is the maximum length of a $ref chain followed by
	// ResolveSchema. Zero means defaultMaxRefDepth.
	MaxDepth int
}

// NewRefResolver creates a resolver over a parsed document
// (*OAS2Document or *OAS3Document).
func NewRefResolver(doc any) *RefResolver {
	return &RefResolver{doc: doc}
}

// maxDepth returns the configured chain bound.
func (r *RefResolver) maxDepth() int {
	if r.MaxDepth > 0 {
		return r.MaxDepth
	}
	return defaultMaxRefDepth
}

// Resolve resolves a single local reference one hop, returning the target
// component. The returned value is one of the typed component pointers
// (*Schema, *Parameter, *Response, ...) depending on the ref kind.
func (r *RefResolver) Resolve(ref string) (any, error) {
	if IsExternalRef(ref) {
		return nil, &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: oaserrors.RefTypeExternal,
			Message: "external references are not dereferenced",
		}
	}

	local, ok := ParseLocalRef(ref)
	if !ok {
		return nil, &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: oaserrors.RefTypeMalformed,
			Message: "reference does not match a supported local reference form",
		}
	}

	target, found := r.lookup(local)
	if !found {
		return nil, &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: oaserrors.RefTypeNotFound,
			Message: "referenced component does not exist",
		}
	}
	return target, nil
}

// ResolveSchema resolves a schema reference, following $ref chains until a
// non-reference schema node is reached. Chains revisiting a ref already on
// the current resolution path fail with a circular ReferenceError.
func (r *RefResolver) ResolveSchema(ref string) (*Schema, error) {
	visited := make(map[string]bool)
	current := ref

	for depth := 0; depth < r.maxDepth(); depth++ {
		if visited[current] {
			return nil, &oaserrors.ReferenceError{
				Ref:        ref,
				RefType:    oaserrors.RefTypeCircular,
				IsCircular: true,
				Message:    fmt.Sprintf("reference chain revisits %q", current),
			}
		}
		visited[current] = true

		target, err := r.Resolve(current)
		if err != nil {
			return nil, err
		}
		schema, ok := target.(*Schema)
		if !ok {
			return nil, &oaserrors.ReferenceError{
				Ref:     ref,
				RefType: oaserrors.RefTypeNotFound,
				Message: fmt.Sprintf("reference target is not a schema (got %T)", target),
			}
		}
		if schema.Ref == "" {
			return schema, nil
		}
		current = schema.Ref
	}

	return nil, &oaserrors.ReferenceError{
		Ref:     ref,
		RefType: oaserrors.RefTypeCircular,
		Message: fmt.Sprintf("reference chain exceeds maximum depth of %d", r.maxDepth()),
	}
}

// lookup finds a decomposed local reference's target in the document.
func (r *RefResolver) lookup(local LocalRef) (any, bool) {
	switch doc := r.doc.(type) {
	case *OAS2Document:
		return lookupOAS2(doc, local)
	case *OAS3Document:
		return lookupOAS3(doc, local)
	default:
		return nil, false
	}
}

func lookupOAS2(doc *OAS2Document, local LocalRef) (any, bool) {
	switch local.Container {
	case "definitions":
		if s, ok := doc.Definitions[local.Name]; ok && s != nil {
			return s, true
		}
	case "parameters":
		if p, ok := doc.Parameters[local.Name]; ok && p != nil {
			return p, true
		}
	case "responses":
		if resp, ok := doc.Responses[local.Name]; ok && resp != nil {
			return resp, true
		}
	case "securityDefinitions":
		if s, ok := doc.SecurityDefinitions[local.Name]; ok && s != nil {
			return s, true
		}
	}
	return nil, false
}

func lookupOAS3(doc *OAS3Document, local LocalRef) (any, bool) {
	if local.Container != "components" || doc.Components == nil {
		return nil, false
	}
	c := doc.Components
	switch local.Kind {
	case "schemas":
		if s, ok := c.Schemas[local.Name]; ok && s != nil {
			return s, true
		}
	case "responses":
		if resp, ok := c.Responses[local.Name]; ok && resp != nil {
			return resp, true
		}
	case "parameters":
		if p, ok := c.Parameters[local.Name]; ok && p != nil {
			return p, true
		}
	case "examples":
		if e, ok := c.Examples[local.Name]; ok && e != nil {
			return e, true
		}
	case "requestBodies":
		if rb, ok := c.RequestBodies[local.Name]; ok && rb != nil {
			return rb, true
		}
	case "headers":
		if h, ok := c.Headers[local.Name]; ok && h != nil {
			return h, true
		}
	case "securitySchemes":
		if s, ok := c.SecuritySchemes[local.Name]; ok && s != nil {
			return s, true
		}
	case "links":
		if l, ok := c.Links[local.Name]; ok && l != nil {
			return l, true
		}
	case "callbacks":
		if cb, ok := c.Callbacks[local.Name]; ok && cb != nil {
			return cb, true
		}
	case "pathItems":
		if pi, ok := c.PathItems[local.Name]; ok && pi != nil {
			return pi, true
		}
	}
	return nil, false
}
