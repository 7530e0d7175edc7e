package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"github.com/maxatome/go-testdeep/td"
	"github.com/stretchr/testify/assert"

	"github.com/gamegeeks/gamegeeks/models/problem"
)

func testContext(path string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	return c
}

func TestProblemErrHook(t *testing.T) {
	for _, tc := range []struct {
		err    error
		status int
		detail string
	}{
		{errors.NotFoundf("No such platform: %s", "abc"), 404, "No such platform: abc not found"},
		{errors.NotValidf("name"), 400, "name not valid"},
		{errors.AlreadyExistsf("Platform %q", "PC"), 409, `Platform "PC" already exists`},
		{errors.Annotate(errors.NotFoundf("platform"), "Failed to load platform"), 404, "Failed to load platform: platform not found"},
		{errors.New("pq: connection refused"), 500, ""},
	} {
		status, payload := problemErrHook(testContext("/v1/platforms/abc"), tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		td.Cmp(t, payload, &problem.ProblemModel{
			Type:     problem.DefaultType,
			Title:    http.StatusText(tc.status),
			Status:   tc.status,
			Detail:   tc.detail,
			Instance: "/v1/platforms/abc",
		})
	}
}

func TestProblemErrHookKeepsProblems(t *testing.T) {
	p := problem.New(http.StatusNotAcceptable, "Supported media types: application/json")
	status, payload := problemErrHook(testContext("/v1/platforms"), p)
	assert.Equal(t, http.StatusNotAcceptable, status)
	assert.Same(t, p, payload)
}

func TestNegotiateFormat(t *testing.T) {
	for accept, format := range map[string]string{
		"":                                    jsonFormat,
		"*/*":                                 jsonFormat,
		"application/json":                    jsonFormat,
		"application/*":                       jsonFormat,
		"application/x-yaml":                  yamlFormat,
		"application/yaml":                    yamlFormat,
		"text/html, application/x-yaml;q=0.5": yamlFormat,
		"text/html":                           "",
		"application/xml":                     "",
		"application/json;q=0":                "",
	} {
		assert.Equal(t, format, negotiateFormat(accept), accept)
	}
}

func TestNormalizeMaxBodyBytes(t *testing.T) {
	assert.EqualValues(t, defaultMaxBodyBytes, normalizeMaxBodyBytes(0))
	assert.EqualValues(t, lowerLimitMaxBodyBytes, normalizeMaxBodyBytes(1))
	assert.EqualValues(t, upperLimitMaxBodyBytes, normalizeMaxBodyBytes(1<<40))
	assert.EqualValues(t, 4096, normalizeMaxBodyBytes(4096))
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "name", snakeCase("Name"))
	assert.Equal(t, "page_size", snakeCase("PageSize"))
	assert.Equal(t, "id", snakeCase("ID"))
}
