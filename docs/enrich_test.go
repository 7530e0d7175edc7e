package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wI2L/fizz/openapi"

	"github.com/gamegeeks/gamegeeks/docs"
)

func problemContentJSON() string {
	return `{"application/json":{"schema":{"$ref":"#/components/schemas/ProblemModel"}}}`
}

func okResponse() *openapi.ResponseOrRef {
	return &openapi.ResponseOrRef{Response: &openapi.Response{
		Description: "OK",
		Content: map[string]*openapi.MediaTypeOrRef{
			"application/json": {MediaType: &openapi.MediaType{
				Schema: &openapi.SchemaOrRef{Reference: &openapi.Reference{Ref: "#/components/schemas/PlatformModel"}},
			}},
		},
	}}
}

func TestRequiredCodes(t *testing.T) {
	full := []string{"400", "404", "406", "500", "401"}

	td.Cmp(t, docs.RequiredCodes("GET"), full)
	td.Cmp(t, docs.RequiredCodes("post"), full)
	td.Cmp(t, docs.RequiredCodes("PUT"), full)
	td.Cmp(t, docs.RequiredCodes("DELETE"), []string{"500"})
	td.Cmp(t, docs.RequiredCodes("PATCH"), []string{"500"})
	td.Cmp(t, docs.RequiredCodes("HEAD"), []string{"500"})
}

func TestResponseCatalog(t *testing.T) {
	catalog := docs.ResponseCatalog()
	require.Len(t, catalog, 5)

	for name, desc := range map[string]string{
		docs.BadRequestResponse:          "Invalid data",
		docs.NotFoundResponse:            "Resource not found",
		docs.NotAcceptableResponse:       "Not acceptable",
		docs.InternalServerErrorResponse: "System error",
	} {
		r := catalog[name]
		require.NotNil(t, r, name)
		assert.Equal(t, desc, r.Response.Description)

		b, err := json.Marshal(r.Response.Content)
		require.NoError(t, err)
		assert.JSONEq(t, problemContentJSON(), string(b))
	}

	unauthorized := catalog[docs.UnauthorizedResponse]
	require.NotNil(t, unauthorized)
	assert.Equal(t, "Unauthorized", unauthorized.Response.Description)
	assert.Empty(t, unauthorized.Response.Content)

	name, ok := docs.CatalogName("406")
	assert.True(t, ok)
	assert.Equal(t, docs.NotAcceptableResponse, name)
	_, ok = docs.CatalogName("409")
	assert.False(t, ok)
}

func TestProblemContentIsFresh(t *testing.T) {
	a, b := docs.ProblemContent(), docs.ProblemContent()
	a["application/json"].MediaType.Example = "changed"
	assert.Nil(t, b["application/json"].MediaType.Example)
}

func TestMergeResponsesGET(t *testing.T) {
	ok := okResponse()
	got := docs.MergeResponses(openapi.Responses{"200": ok}, docs.RequiredCodes("GET"))

	td.Cmp(t, got, td.Map(openapi.Responses{}, td.MapEntries{
		"200": td.Shallow(ok),
		"400": &openapi.ResponseOrRef{Reference: &openapi.Reference{Ref: "#/components/responses/BadRequestResponse"}},
		"404": &openapi.ResponseOrRef{Reference: &openapi.Reference{Ref: "#/components/responses/NotFoundResponse"}},
		"406": &openapi.ResponseOrRef{Reference: &openapi.Reference{Ref: "#/components/responses/NotAcceptableResponse"}},
		"500": &openapi.ResponseOrRef{Reference: &openapi.Reference{Ref: "#/components/responses/InternalServerErrorResponse"}},
		"401": &openapi.ResponseOrRef{Reference: &openapi.Reference{Ref: "#/components/responses/UnauthorizedResponse"}},
	}))

	b, err := json.Marshal(got["200"])
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/PlatformModel"}}}}`,
		string(b))
}

func TestMergeResponsesOverridesExistingContent(t *testing.T) {
	custom := &openapi.ResponseOrRef{Response: &openapi.Response{
		Description: "Name already taken or malformed",
		Content: map[string]*openapi.MediaTypeOrRef{
			"text/plain": {MediaType: &openapi.MediaType{Schema: &openapi.SchemaOrRef{Schema: &openapi.Schema{Type: "string"}}}},
		},
	}}
	got := docs.MergeResponses(openapi.Responses{
		"201": okResponse(),
		"400": custom,
	}, docs.RequiredCodes("POST"))

	require.Len(t, got, 6)
	assert.Same(t, custom, got["400"])
	assert.Equal(t, "Name already taken or malformed", got["400"].Response.Description)

	b, err := json.Marshal(got["400"].Response.Content)
	require.NoError(t, err)
	assert.JSONEq(t, problemContentJSON(), string(b))

	assert.Equal(t, "#/components/responses/NotFoundResponse", got["404"].Reference.Ref)
}

func TestMergeResponsesKeepsSuccessEntry(t *testing.T) {
	ok := okResponse()
	got := docs.MergeResponses(openapi.Responses{"200": ok}, []string{"200", "500"})

	assert.Same(t, ok, got["200"])
	assert.Equal(t, "#/components/schemas/PlatformModel",
		got["200"].Response.Content["application/json"].MediaType.Schema.Reference.Ref)
}

func TestMergeResponsesKeepsReferences(t *testing.T) {
	ref := &openapi.ResponseOrRef{Reference: &openapi.Reference{Ref: "#/components/responses/Custom"}}
	got := docs.MergeResponses(openapi.Responses{"500": ref}, []string{"500"})

	assert.Same(t, ref, got["500"])
	assert.Nil(t, got["500"].Response)
}

func TestMergeResponsesDELETE(t *testing.T) {
	noContent := &openapi.ResponseOrRef{Response: &openapi.Response{Description: "No Content"}}
	got := docs.MergeResponses(openapi.Responses{"204": noContent}, docs.RequiredCodes("DELETE"))

	td.Cmp(t, got, td.Map(openapi.Responses{}, td.MapEntries{
		"204": td.Shallow(noContent),
		"500": &openapi.ResponseOrRef{Reference: &openapi.Reference{Ref: "#/components/responses/InternalServerErrorResponse"}},
	}))
}

func TestMergeResponsesAllocatesNilMap(t *testing.T) {
	got := docs.MergeResponses(nil, []string{"500"})
	require.NotNil(t, got)
	assert.Len(t, got, 1)
}

func TestEnrich(t *testing.T) {
	paths := openapi.Paths{
		"/v1/platforms": {
			GET:    &openapi.Operation{ID: "list", Responses: openapi.Responses{"200": okResponse()}},
			PATCH:  &openapi.Operation{ID: "patch"},
			DELETE: &openapi.Operation{ID: "delete", Responses: openapi.Responses{"204": {Response: &openapi.Response{Description: "No Content"}}}},
		},
		"/nil": nil,
	}

	docs.Enrich(paths)
	first, err := json.Marshal(paths)
	require.NoError(t, err)

	docs.Enrich(paths)
	second, err := json.Marshal(paths)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))

	item := paths["/v1/platforms"]
	assert.Len(t, item.GET.Responses, 6)
	td.Cmp(t, item.PATCH.Responses, td.Map(openapi.Responses{}, td.MapEntries{
		"500": &openapi.ResponseOrRef{Reference: &openapi.Reference{Ref: "#/components/responses/InternalServerErrorResponse"}},
	}))
	td.Cmp(t, item.DELETE.Responses, td.MapEach(td.NotNil()))
	assert.Len(t, item.DELETE.Responses, 2)
}

func TestSchemasWithExamples(t *testing.T) {
	schemas := map[string]*openapi.SchemaOrRef{
		"PlatformModel": {Schema: &openapi.Schema{
			Type: "object",
			Properties: map[string]*openapi.SchemaOrRef{
				"name":  {Schema: &openapi.Schema{Type: "string"}},
				"extra": {Schema: &openapi.Schema{Type: "string"}},
			},
		}},
		"Alias": {Reference: &openapi.Reference{Ref: "#/components/schemas/PlatformModel"}},
	}
	out, err := docs.SchemasWithExamples(schemas, map[string]interface{}{
		"PlatformModel": map[string]string{"name": "PC"},
	})
	require.NoError(t, err)

	require.Contains(t, out, "PlatformModel")
	assert.Equal(t, "PC", out["PlatformModel"].Properties["name"].Example)
	assert.Nil(t, out["PlatformModel"].Properties["extra"].Example)
	assert.Same(t, schemas["PlatformModel"].Schema.Properties["name"], out["PlatformModel"].Properties["name"].SchemaOrRef)
	assert.Nil(t, out["Alias"].Properties)

	_, err = docs.SchemasWithExamples(schemas, map[string]interface{}{"PlatformModel": "PC"})
	assert.Error(t, err)
}
