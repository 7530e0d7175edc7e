package problem_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamegeeks/gamegeeks/models/problem"
)

func TestNew(t *testing.T) {
	p := problem.New(http.StatusNotFound, "No such platform").WithInstance("/v1/platforms/abc")

	assert.Equal(t, "about:blank", p.Type)
	assert.Equal(t, "Not Found", p.Title)
	assert.Equal(t, 404, p.Status)
	assert.Equal(t, "No such platform", p.Error())
	assert.Equal(t, "/v1/platforms/abc", p.Instance)
}

func TestErrorFallsBackToTitle(t *testing.T) {
	p := problem.New(http.StatusInternalServerError, "")
	assert.Equal(t, "Internal Server Error", p.Error())
}

func TestJSONShape(t *testing.T) {
	p := problem.New(http.StatusBadRequest, "").AddViolation("name", "required")

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"about:blank","title":"Bad Request","status":400,"violations":[{"field":"name","message":"required"}]}`,
		string(b))
}
