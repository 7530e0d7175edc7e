package docs

import (
	"net/http"
	"strings"

	"github.com/wI2L/fizz/openapi"
)

// successCode is never altered by the enrichment
const successCode = "200"

// RequiredCodes returns the error status codes an operation must document.
// DELETE and PATCH only get 500, like every method but GET, POST and PUT.
func RequiredCodes(method string) []string {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodPost, http.MethodPut:
		return []string{"400", "404", "406", "500", "401"}
	}
	return []string{"500"}
}

// MergeResponses makes responses declare every code of codes.
// A missing code gets a reference to its catalog entry. An existing entry
// keeps its identity, but its content is replaced by the problem body unless
// it is the success entry or a bare reference.
func MergeResponses(responses openapi.Responses, codes []string) openapi.Responses {
	if responses == nil {
		responses = make(openapi.Responses, len(codes))
	}
	for _, code := range codes {
		if existing := responses[code]; existing != nil {
			if code != successCode && existing.Response != nil {
				existing.Response.Content = ProblemContent()
			}
			continue
		}
		if name, ok := CatalogName(code); ok {
			responses[code] = responseRef(name)
		}
	}
	return responses
}

// Enrich applies MergeResponses to every operation of the paths,
// with the codes required by the operation's method.
func Enrich(paths openapi.Paths) {
	for _, item := range paths {
		for _, mo := range operations(item) {
			mo.op.Responses = MergeResponses(mo.op.Responses, RequiredCodes(mo.method))
		}
	}
}

type methodOperation struct {
	method string
	op     *openapi.Operation
}

// operations lists the operations declared on a path item
func operations(item *openapi.PathItem) []methodOperation {
	if item == nil {
		return nil
	}
	all := []methodOperation{
		{http.MethodGet, item.GET},
		{http.MethodPut, item.PUT},
		{http.MethodPost, item.POST},
		{http.MethodDelete, item.DELETE},
		{http.MethodOptions, item.OPTIONS},
		{http.MethodHead, item.HEAD},
		{http.MethodPatch, item.PATCH},
		{http.MethodTrace, item.TRACE},
	}
	ret := all[:0]
	for _, mo := range all {
		if mo.op != nil {
			ret = append(ret, mo)
		}
	}
	return ret
}
