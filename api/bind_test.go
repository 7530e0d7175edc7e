package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindTarget struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func bindContext(method, body string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, "/v1/platforms", strings.NewReader(body))
	return c
}

func TestBodyBinder(t *testing.T) {
	b := newBodyBinder(0)

	var fromJSON bindTarget
	require.NoError(t, b.hook(bindContext(http.MethodPost, `{"name":"PC","description":"Desktops"}`), &fromJSON))
	assert.Equal(t, bindTarget{Name: "PC", Description: "Desktops"}, fromJSON)

	var fromYAML bindTarget
	require.NoError(t, b.hook(bindContext(http.MethodPut, "name: Switch\ndescription: Hybrid\n"), &fromYAML))
	assert.Equal(t, bindTarget{Name: "Switch", Description: "Hybrid"}, fromYAML)

	empty := bindTarget{Name: "kept"}
	require.NoError(t, b.hook(bindContext(http.MethodPost, ""), &empty))
	assert.Equal(t, "kept", empty.Name)

	ignored := bindTarget{}
	require.NoError(t, b.hook(bindContext(http.MethodDelete, `{"name":"PC"}`), &ignored))
	assert.Empty(t, ignored.Name)

	assert.Error(t, b.hook(bindContext(http.MethodPost, `{"name":`), &bindTarget{}))
}

func TestBodyBinderMaxBytes(t *testing.T) {
	b := newBodyBinder(1)
	require.EqualValues(t, lowerLimitMaxBodyBytes, b.maxBytes)

	body := `{"name":"` + strings.Repeat("a", lowerLimitMaxBodyBytes) + `"}`
	assert.Error(t, b.hook(bindContext(http.MethodPost, body), &bindTarget{}))
}
