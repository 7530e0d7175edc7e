package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ghodss/yaml"
	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
)

// Request body size limits, configurable through server_options.max_body_bytes
const (
	defaultMaxBodyBytes    = 256 * 1024
	upperLimitMaxBodyBytes = 10 * 1024 * 1024
	lowerLimitMaxBodyBytes = 1024
)

// bodyBinder reads platform payloads sent as JSON or YAML: YAML is a
// superset of JSON, so one decoder serves both content types.
// Bodies above maxBytes are rejected.
type bodyBinder struct {
	maxBytes int64
}

func newBodyBinder(maxBodyBytes int64) bodyBinder {
	return bodyBinder{maxBytes: normalizeMaxBodyBytes(maxBodyBytes)}
}

// Name implements binding.Binding
func (bodyBinder) Name() string { return "yaml-or-json" }

// Bind implements binding.Binding. An empty body leaves obj untouched.
func (b bodyBinder) Bind(req *http.Request, obj interface{}) error {
	defer req.Body.Close()

	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return errors.Annotate(err, "failed to read request body")
	}
	if len(raw) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(raw, obj, useNumber); err != nil {
		return errors.Annotate(err, "error parsing request body")
	}
	return nil
}

// hook is the tonic bind hook: query, path and header parameters are
// bound by tonic itself, only write requests carry a body
func (b bodyBinder) hook(c *gin.Context, obj interface{}) error {
	switch c.Request.Method {
	case http.MethodGet, http.MethodDelete, http.MethodHead:
		return nil
	}
	if c.Request.ContentLength == 0 {
		return nil
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, b.maxBytes)
	return c.ShouldBindWith(obj, b)
}

func normalizeMaxBodyBytes(maxBodyBytes int64) int64 {
	switch {
	case maxBodyBytes == 0:
		return defaultMaxBodyBytes
	case maxBodyBytes > upperLimitMaxBodyBytes:
		return upperLimitMaxBodyBytes
	case maxBodyBytes < lowerLimitMaxBodyBytes:
		return lowerLimitMaxBodyBytes
	}
	return maxBodyBytes
}

func useNumber(dec *json.Decoder) *json.Decoder {
	dec.UseNumber()
	return dec
}
