package docs

import (
	"encoding/json"
	"strings"

	"github.com/juju/errors"
	"github.com/wI2L/fizz/openapi"

	"github.com/gamegeeks/gamegeeks/pkg/utils"
)

// Schema is a component schema whose properties may carry an example.
// Its Properties shadow the ones of the embedded fizz schema.
type Schema struct {
	*openapi.SchemaOrRef
	Properties map[string]*Property `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Property is a schema property and its example value
type Property struct {
	*openapi.SchemaOrRef
	Example interface{} `json:"example,omitempty" yaml:"example,omitempty"`
}

// SchemasWithExamples wraps the component schemas, setting on each property
// of a schema the matching field of the example registered under its name
func SchemasWithExamples(schemas map[string]*openapi.SchemaOrRef, examples map[string]interface{}) (map[string]*Schema, error) {
	out := make(map[string]*Schema, len(schemas))
	for name, s := range schemas {
		sch := &Schema{SchemaOrRef: s}
		out[name] = sch
		if s == nil || s.Schema == nil || len(s.Schema.Properties) == 0 {
			continue
		}

		var fields map[string]interface{}
		if ex, ok := examples[name]; ok {
			raw, err := utils.JSONMarshal(ex)
			if err != nil {
				return nil, errors.Annotatef(err, "failed to marshal example of %q", name)
			}
			if err := json.Unmarshal(raw, &fields); err != nil {
				return nil, errors.Annotatef(err, "example of %q is not an object", name)
			}
		}
		sch.Properties = make(map[string]*Property, len(s.Schema.Properties))
		for prop, ps := range s.Schema.Properties {
			sch.Properties[prop] = &Property{SchemaOrRef: ps, Example: fields[prop]}
		}
	}
	return out, nil
}

// ApplyExamples sets the example of every request and response media type
// whose schema is one of the named components, or an array of one.
// Media types that already carry an example are left alone.
func ApplyExamples(paths openapi.Paths, examples map[string]interface{}) {
	if len(examples) == 0 {
		return
	}
	for _, item := range paths {
		for _, mo := range operations(item) {
			if rb := mo.op.RequestBody; rb != nil {
				for _, mt := range rb.Content {
					applyExample(mt, examples)
				}
			}
			for _, r := range mo.op.Responses {
				if r == nil || r.Response == nil {
					continue
				}
				for _, mt := range r.Response.Content {
					if mt != nil {
						applyExample(mt.MediaType, examples)
					}
				}
			}
		}
	}
}

func applyExample(mt *openapi.MediaType, examples map[string]interface{}) {
	if mt == nil || mt.Example != nil || mt.Schema == nil {
		return
	}
	if name, ok := refName(mt.Schema); ok {
		if ex, ok := examples[name]; ok {
			mt.Example = ex
		}
		return
	}
	if s := mt.Schema.Schema; s != nil && s.Type == "array" && s.Items != nil {
		if name, ok := refName(s.Items); ok {
			if ex, ok := examples[name]; ok {
				mt.Example = []interface{}{ex}
			}
		}
	}
}

// refName returns the component name a schema refers to
func refName(s *openapi.SchemaOrRef) (string, bool) {
	if s == nil || s.Reference == nil || !strings.HasPrefix(s.Reference.Ref, schemasRefPrefix) {
		return "", false
	}
	return strings.TrimPrefix(s.Reference.Ref, schemasRefPrefix), true
}
