package jsonschema

import (
	"bytes"
	"encoding/json"

	"github.com/juju/errors"
	"github.com/santhosh-tekuri/jsonschema"

	"github.com/gamegeeks/gamegeeks/pkg/utils"
)

const (
	draft7 = "http://json-schema.org/draft-07/schema#"
	draft6 = "http://json-schema.org/draft-06/schema#"
	draft4 = "http://json-schema.org/draft-04/schema#"
)

// ValidateFunc is jsonschema validator
type ValidateFunc func(interface{}) error

// Compiler compiles schemas out of a single JSON document,
// so that local references ("#/...") resolve against it
type Compiler struct {
	url      string
	compiler *jsonschema.Compiler
}

// NewCompiler registers document under url, normalizing its "$schema" version
func NewCompiler(url string, document json.RawMessage) (*Compiler, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(computeVersion(document))); err != nil {
		return nil, errors.Annotatef(err, "invalid json schema resource %q", url)
	}
	return &Compiler{url: url, compiler: compiler}, nil
}

// Validator compiles the schema found at pointer (a JSON pointer
// within the document, such as "/components/schemas/Foo")
func (c *Compiler) Validator(pointer string) (ValidateFunc, error) {
	schema, err := c.compiler.Compile(c.url + "#" + pointer)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to compile %q", pointer)
	}
	return schema.ValidateInterface, nil
}

// computeVersion compute the json schema version following theses rules:
//      - "$schema" is used if present
//      - "version" is used if "$schema" is absent
//      - if "version" is absent, fallback to draft7
func computeVersion(rawSchema json.RawMessage) json.RawMessage {
	var m map[string]interface{}
	if err := json.Unmarshal(rawSchema, &m); err != nil {
		return rawSchema
	}

	if _, ok := m["$schema"]; ok {
		return rawSchema
	}

	var version float64
	if v, ok := m["version"]; ok {
		version, _ = v.(float64)
		delete(m, "version")
	}

	switch version {
	case 6:
		m["$schema"] = draft6
	case 4:
		m["$schema"] = draft4
	case 7:
		fallthrough
	default:
		m["$schema"] = draft7
	}

	newSchema, err := utils.JSONMarshal(&m)
	if err != nil {
		return rawSchema
	}
	return newSchema
}
