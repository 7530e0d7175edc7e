package api

import (
	"fmt"
	"net/http"
	"strconv"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/loopfz/gadgeto/tonic/utils/jujerr"

	"github.com/gamegeeks/gamegeeks/models/problem"
)

// problemErrHook renders every handler error as a problem body.
// Statuses follow the juju error kinds; internal error details are
// logged but never returned to the caller.
func problemErrHook(c *gin.Context, e error) (int, interface{}) {
	var p *problem.ProblemModel
	switch err := errors.Cause(e).(type) {
	case *problem.ProblemModel:
		p = err
	case tonic.BindError:
		p = newProblem(c, http.StatusBadRequest, err.Error())
		for _, fe := range err.ValidationErrors() {
			p.AddViolation(snakeCase(fe.Field()), fmt.Sprintf("failed on the '%s' validation", fe.Tag()))
		}
	default:
		status, _ := jujerr.ErrHook(c, e)
		detail := e.Error()
		if status == http.StatusInternalServerError {
			detail = ""
		}
		p = newProblem(c, status, detail)
	}
	problemCounter.WithLabelValues(strconv.Itoa(p.Status)).Inc()
	return p.Status, p
}

func newProblem(c *gin.Context, status int, detail string) *problem.ProblemModel {
	return problem.New(status, detail).WithInstance(c.Request.URL.Path)
}

// abortWithProblem stops the handler chain with a problem body,
// for failures detected outside of tonic handlers
func abortWithProblem(c *gin.Context, err error) {
	_ = c.Error(err)
	code, p := problemErrHook(c, err)
	c.AbortWithStatusJSON(code, p)
}

// snakeCase turns a Go field name into its JSON counterpart
func snakeCase(s string) string {
	out := make([]rune, 0, len(s)+4)
	var prev rune
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && !unicode.IsUpper(prev) {
				out = append(out, '_')
			}
			prev = r
			r = unicode.ToLower(r)
		} else {
			prev = r
		}
		out = append(out, r)
	}
	return string(out)
}
