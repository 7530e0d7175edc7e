package api

import (
	"github.com/ghodss/yaml"
	"github.com/gin-gonic/gin"
	"github.com/markusthoemmes/goautoneg"
)

const (
	acceptHeader = "Accept"
	jsonFormat   = "json"
	yamlFormat   = "x-yaml"

	jsonMediaType = "application/" + jsonFormat
	yamlMediaType = "application/" + yamlFormat
)

// negotiateFormat returns the output format preferred by the Accept header:
// json or x-yaml, json when the header is absent, and "" when the client
// accepts neither.
func negotiateFormat(header string) string {
	if header == "" {
		return jsonFormat
	}
	for _, format := range goautoneg.ParseAccept(header) {
		if format.Q <= 0 {
			continue
		}
		switch {
		case format.Type == "*":
			return jsonFormat
		case format.Type != "application":
			continue
		}
		switch format.SubType {
		case "*", jsonFormat:
			return jsonFormat
		case yamlFormat, "yaml":
			return yamlFormat
		}
	}
	return ""
}

// yamljsonRenderHook will render output regarding the Accept request header
// in JSON or YAML format.
func yamljsonRenderHook(c *gin.Context, statusCode int, payload interface{}) {
	var status int
	if c.Writer.Written() {
		status = c.Writer.Status()
	} else {
		status = statusCode
	}
	if payload == nil {
		c.String(status, "")
		return
	}
	if negotiateFormat(c.Request.Header.Get(acceptHeader)) == yamlFormat {
		yamlOutput, err := yaml.Marshal(payload)
		if err != nil {
			_ = c.Error(err)
			c.JSON(500, newProblem(c, 500, ""))
			return
		}
		c.Data(status, yamlMediaType, yamlOutput)
	} else if gin.IsDebugging() {
		c.IndentedJSON(status, payload)
	} else {
		c.JSON(status, payload)
	}
}
