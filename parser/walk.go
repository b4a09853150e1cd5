package parser

import "fmt"

// SchemaVisitor is invoked for every schema node encountered during a walk.
// The path argument is a dotted document path such as
// "components.schemas.Pet.properties.name".
type SchemaVisitor func(path string, schema *Schema)

// WalkSchemas visits every schema node in the document, including nested
// subschemas under properties, items, composition keywords, and $defs.
// Parents are visited before their children. The decoded tree is finite
// (self-reference exists only as $ref strings), so the walk terminates
// without cycle tracking.
//
// The doc argument must be a *OAS2Document or *OAS3Document; other types
// are ignored.
func WalkSchemas(doc any, visit SchemaVisitor) {
	switch d := doc.(type) {
	case *OAS2Document:
		walkOAS2Schemas(d, visit)
	case *OAS3Document:
		walkOAS3Schemas(d, visit)
	}
}

func walkOAS2Schemas(doc *OAS2Document, visit SchemaVisitor) {
	for name, schema := range doc.Definitions {
		walkSchema("definitions."+name, schema, visit)
	}
	for name, param := range doc.Parameters {
		walkParameterSchema("parameters."+name, param, visit)
	}
	for name, resp := range doc.Responses {
		walkResponseSchemas("responses."+name, resp, visit)
	}
	walkPathsSchemas(doc.Paths, OASVersion20, visit)
}

func walkOAS3Schemas(doc *OAS3Document, visit SchemaVisitor) {
	if c := doc.Components; c != nil {
		for name, schema := range c.Schemas {
			walkSchema("components.schemas."+name, schema, visit)
		}
		for name, param := range c.Parameters {
			walkParameterSchema("components.parameters."+name, param, visit)
		}
		for name, resp := range c.Responses {
			walkResponseSchemas("components.responses."+name, resp, visit)
		}
		for name, rb := range c.RequestBodies {
			walkRequestBodySchemas("components.requestBodies."+name, rb, visit)
		}
		for name, hdr := range c.Headers {
			walkHeaderSchema("components.headers."+name, hdr, visit)
		}
		for name, pi := range c.PathItems {
			walkPathItemSchemas("components.pathItems."+name, pi, doc.OASVersion, visit)
		}
		for name, cb := range c.Callbacks {
			walkCallbackSchemas("components.callbacks."+name, cb, doc.OASVersion, visit)
		}
	}
	walkPathsSchemas(doc.Paths, doc.OASVersion, visit)
	for name, pi := range doc.Webhooks {
		walkPathItemSchemas("webhooks."+name, pi, doc.OASVersion, visit)
	}
}

func walkPathsSchemas(paths Paths, version OASVersion, visit SchemaVisitor) {
	for pattern, pi := range paths {
		walkPathItemSchemas("paths."+pattern, pi, version, visit)
	}
}

func walkPathItemSchemas(path string, pi *PathItem, version OASVersion, visit SchemaVisitor) {
	if pi == nil {
		return
	}
	for i, param := range pi.Parameters {
		walkParameterSchema(fmt.Sprintf("%s.parameters[%d]", path, i), param, visit)
	}
	for method, op := range GetOperations(pi, version) {
		if op == nil {
			continue
		}
		opPath := path + "." + method
		for i, param := range op.Parameters {
			walkParameterSchema(fmt.Sprintf("%s.parameters[%d]", opPath, i), param, visit)
		}
		walkRequestBodySchemas(opPath+".requestBody", op.RequestBody, visit)
		if op.Responses != nil {
			walkResponseSchemas(opPath+".responses.default", op.Responses.Default, visit)
			for code, resp := range op.Responses.Codes {
				walkResponseSchemas(opPath+".responses."+code, resp, visit)
			}
		}
	}
}

func walkCallbackSchemas(path string, cb *Callback, version OASVersion, visit SchemaVisitor) {
	if cb == nil {
		return
	}
	for expr, pi := range *cb {
		walkPathItemSchemas(path+"."+expr, pi, version, visit)
	}
}

func walkParameterSchema(path string, param *Parameter, visit SchemaVisitor) {
	if param == nil {
		return
	}
	walkSchema(path+".schema", param.Schema, visit)
	for mt, media := range param.Content {
		walkMediaTypeSchema(path+".content."+mt, media, visit)
	}
}

func walkRequestBodySchemas(path string, rb *RequestBody, visit SchemaVisitor) {
	if rb == nil {
		return
	}
	for mt, media := range rb.Content {
		walkMediaTypeSchema(path+".content."+mt, media, visit)
	}
}

func walkResponseSchemas(path string, resp *Response, visit SchemaVisitor) {
	if resp == nil {
		return
	}
	walkSchema(path+".schema", resp.Schema, visit)
	for mt, media := range resp.Content {
		walkMediaTypeSchema(path+".content."+mt, media, visit)
	}
	for name, hdr := range resp.Headers {
		walkHeaderSchema(path+".headers."+name, hdr, visit)
	}
}

func walkHeaderSchema(path string, hdr *Header, visit SchemaVisitor) {
	if hdr == nil {
		return
	}
	walkSchema(path+".schema", hdr.Schema, visit)
	for mt, media := range hdr.Content {
		walkMediaTypeSchema(path+".content."+mt, media, visit)
	}
}

func walkMediaTypeSchema(path string, media *MediaType, visit SchemaVisitor) {
	if media == nil {
		return
	}
	walkSchema(path+".schema", media.Schema, visit)
}

// walkSchema recurses into a schema node and its subschemas.
func walkSchema(path string, s *Schema, visit SchemaVisitor) {
	if s == nil {
		return
	}
	visit(path, s)

	for name, prop := range s.Properties {
		walkSchema(path+".properties."+name, prop, visit)
	}
	walkSchema(path+".items", s.Items, visit)
	if s.AdditionalProperties != nil {
		walkSchema(path+".additionalProperties", s.AdditionalProperties.Schema, visit)
	}
	for i, member := range s.AllOf {
		walkSchema(fmt.Sprintf("%s.allOf[%d]", path, i), member, visit)
	}
	for i, member := range s.AnyOf {
		walkSchema(fmt.Sprintf("%s.anyOf[%d]", path, i), member, visit)
	}
	for i, member := range s.OneOf {
		walkSchema(fmt.Sprintf("%s.oneOf[%d]", path, i), member, visit)
	}
	walkSchema(path+".not", s.Not, visit)
	for name, def := range s.Defs {
		walkSchema(path+".$defs."+name, def, visit)
	}
}
