package docs

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/juju/errors"
	"github.com/wI2L/fizz/openapi"

	"github.com/gamegeeks/gamegeeks/pkg/jsonschema"
	"github.com/gamegeeks/gamegeeks/pkg/utils"
)

// checkURL identifies the components resource while it is compiled
const checkURL = "https://gamegeeks.local/components.json"

// Check asserts that every reference of the document resolves:
// operation responses must name a catalog response, and every schema
// referenced by a response must exist and compile. Examples are
// validated against the schema of their media type.
func Check(doc *Document) error {
	if doc == nil || doc.OpenAPI == nil || doc.Components == nil || doc.Components.Components == nil {
		return errors.NotValidf("incomplete API document")
	}
	components := doc.Components.Components

	c := &checker{
		responses: components.Responses,
		schemas:   make(map[string]struct{}),
	}
	for name, r := range components.Responses {
		if r == nil || r.Response == nil {
			return errors.NotValidf("response %q is not inlined", name)
		}
		c.collectContent(r.Response.Content)
	}
	for path, item := range doc.Paths {
		for _, mo := range operations(item) {
			if err := c.collectOperation(mo.op); err != nil {
				return errors.Annotatef(err, "%s %s", mo.method, path)
			}
		}
	}

	raw, err := utils.JSONMarshal(map[string]interface{}{
		"components": map[string]interface{}{"schemas": components.Schemas},
	})
	if err != nil {
		return errors.Annotate(err, "failed to marshal schemas")
	}
	compiler, err := jsonschema.NewCompiler(checkURL, raw)
	if err != nil {
		return err
	}

	validators := make(map[string]jsonschema.ValidateFunc, len(c.schemas))
	for _, name := range c.schemaNames() {
		if _, ok := components.Schemas[name]; !ok {
			return errors.NotFoundf("schema %q", name)
		}
		v, err := compiler.Validator("/components/schemas/" + name)
		if err != nil {
			return err
		}
		validators[name] = v
	}

	for _, ex := range c.examples {
		v, ok := validators[ex.schema]
		if !ok {
			continue
		}
		doc, err := decodeExample(ex.value)
		if err != nil {
			return err
		}
		if ex.array {
			items, ok := doc.([]interface{})
			if !ok {
				return errors.NotValidf("example of %s array", ex.schema)
			}
			for _, item := range items {
				if err := v(item); err != nil {
					return errors.Annotatef(err, "invalid example of %s", ex.schema)
				}
			}
			continue
		}
		if err := v(doc); err != nil {
			return errors.Annotatef(err, "invalid example of %s", ex.schema)
		}
	}
	return nil
}

type checker struct {
	responses map[string]*openapi.ResponseOrRef
	schemas   map[string]struct{}
	examples  []example
}

type example struct {
	schema string
	array  bool
	value  interface{}
}

func (c *checker) collectOperation(op *openapi.Operation) error {
	if rb := op.RequestBody; rb != nil {
		for _, mt := range rb.Content {
			c.collectMediaType(mt)
		}
	}
	for code, r := range op.Responses {
		if r == nil {
			continue
		}
		if r.Reference != nil {
			name := strings.TrimPrefix(r.Reference.Ref, responsesRefPrefix)
			if _, ok := c.responses[name]; !ok || name == r.Reference.Ref {
				return errors.NotFoundf("response %q of status %s", r.Reference.Ref, code)
			}
			continue
		}
		if r.Response != nil {
			c.collectContent(r.Response.Content)
		}
	}
	return nil
}

func (c *checker) collectContent(content map[string]*openapi.MediaTypeOrRef) {
	for _, mt := range content {
		if mt != nil {
			c.collectMediaType(mt.MediaType)
		}
	}
}

func (c *checker) collectMediaType(mt *openapi.MediaType) {
	if mt == nil || mt.Schema == nil {
		return
	}
	if name, ok := refName(mt.Schema); ok {
		c.schemas[name] = struct{}{}
		if mt.Example != nil {
			c.examples = append(c.examples, example{schema: name, value: mt.Example})
		}
		return
	}
	if s := mt.Schema.Schema; s != nil && s.Items != nil {
		if name, ok := refName(s.Items); ok {
			c.schemas[name] = struct{}{}
			if mt.Example != nil {
				c.examples = append(c.examples, example{schema: name, array: true, value: mt.Example})
			}
		}
	}
}

func (c *checker) schemaNames() []string {
	names := make([]string, 0, len(c.schemas))
	for name := range c.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// decodeExample turns an example into the generic shape the validators expect
func decodeExample(v interface{}) (interface{}, error) {
	raw, err := utils.JSONMarshal(v)
	if err != nil {
		return nil, errors.Annotate(err, "failed to marshal example")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Annotate(err, "failed to decode example")
	}
	return doc, nil
}
