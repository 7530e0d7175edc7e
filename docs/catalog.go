// Package docs completes the OpenAPI document generated by fizz from the
// registered routes: it adds the API metadata, a catalog of reusable error
// responses, the problem body schemas and the security scheme, then makes
// every operation declare the standard error responses for its method.
package docs

import (
	"net/http"
	"strconv"

	"github.com/wI2L/fizz/openapi"

	"github.com/gamegeeks/gamegeeks/models/problem"
)

// JSONMediaType is the media type of every documented error body
const JSONMediaType = "application/json"

const (
	schemasRefPrefix   = "#/components/schemas/"
	responsesRefPrefix = "#/components/responses/"
)

// Names of the reusable responses of the catalog
const (
	BadRequestResponse          = "BadRequestResponse"
	NotFoundResponse            = "NotFoundResponse"
	NotAcceptableResponse       = "NotAcceptableResponse"
	InternalServerErrorResponse = "InternalServerErrorResponse"
	UnauthorizedResponse        = "UnauthorizedResponse"
)

type catalogEntry struct {
	name        string
	status      int
	description string
	problem     bool
}

var catalog = []catalogEntry{
	{BadRequestResponse, http.StatusBadRequest, "Invalid data", true},
	{NotFoundResponse, http.StatusNotFound, "Resource not found", true},
	{NotAcceptableResponse, http.StatusNotAcceptable, "Not acceptable", true},
	{InternalServerErrorResponse, http.StatusInternalServerError, "System error", true},
	{UnauthorizedResponse, http.StatusUnauthorized, "Unauthorized", false},
}

// NewInfo returns the top-level metadata of the API document
func NewInfo(title, version, description string) *openapi.Info {
	return &openapi.Info{
		Title:       title,
		Version:     version,
		Description: description,
	}
}

// ResponseCatalog returns the reusable error responses, keyed by name.
// Every entry but the unauthorized one carries a problem body.
func ResponseCatalog() map[string]*openapi.ResponseOrRef {
	responses := make(map[string]*openapi.ResponseOrRef, len(catalog))
	for _, e := range catalog {
		r := &openapi.Response{Description: e.description}
		if e.problem {
			r.Content = ProblemContent()
		}
		responses[e.name] = &openapi.ResponseOrRef{Response: r}
	}
	return responses
}

// CatalogName returns the name of the catalog entry documenting a status code
func CatalogName(code string) (string, bool) {
	for _, e := range catalog {
		if strconv.Itoa(e.status) == code {
			return e.name, true
		}
	}
	return "", false
}

// ProblemContent returns a fresh JSON content map referencing the problem schema
func ProblemContent() map[string]*openapi.MediaTypeOrRef {
	return map[string]*openapi.MediaTypeOrRef{
		JSONMediaType: {MediaType: &openapi.MediaType{
			Schema: &openapi.SchemaOrRef{Reference: &openapi.Reference{
				Ref: schemasRefPrefix + problem.SchemaName,
			}},
		}},
	}
}

func responseRef(name string) *openapi.ResponseOrRef {
	return &openapi.ResponseOrRef{Reference: &openapi.Reference{Ref: responsesRefPrefix + name}}
}
