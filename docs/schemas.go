package docs

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/juju/errors"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/wI2L/fizz/openapi"

	"github.com/gamegeeks/gamegeeks/models/problem"
)

// SchemasOf derives the component schemas of the given models, and of
// every named type they reference, the same way fizz does for handlers.
func SchemasOf(models ...interface{}) (map[string]*openapi.SchemaOrRef, error) {
	gen, err := NewGenerator()
	if err != nil {
		return nil, err
	}
	for i, m := range models {
		_, err := gen.AddOperation(fmt.Sprintf("/schema/%d", i), http.MethodGet, "", nil, reflect.TypeOf(m), &openapi.OperationInfo{
			ID:         fmt.Sprintf("schema%d", i),
			StatusCode: http.StatusOK,
		})
		if err != nil {
			return nil, errors.Annotatef(err, "failed to derive schema of %T", m)
		}
	}
	if errs := gen.Errors(); len(errs) > 0 {
		return nil, errors.Annotatef(errs[0], "failed to derive schemas")
	}
	return gen.API().Components.Schemas, nil
}

// ProblemSchemas returns the schemas of the problem body and its field violations
func ProblemSchemas() (map[string]*openapi.SchemaOrRef, error) {
	return SchemasOf(problem.ProblemModel{}, problem.FieldViolationModel{})
}

// NewGenerator returns an OpenAPI generator configured like the one
// fizz builds from the tonic tags
func NewGenerator() (*openapi.Generator, error) {
	gen, err := openapi.NewGenerator(&openapi.SpecGenConfig{
		ValidatorTag:      tonic.ValidationTag,
		PathLocationTag:   tonic.PathTag,
		QueryLocationTag:  tonic.QueryTag,
		HeaderLocationTag: tonic.HeaderTag,
		EnumTag:           tonic.EnumTag,
		DefaultTag:        tonic.DefaultTag,
	})
	if err != nil {
		return nil, err
	}
	gen.UseFullSchemaNames(false)
	return gen, nil
}
