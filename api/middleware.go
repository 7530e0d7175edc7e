package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
	"github.com/wI2L/fizz"

	"github.com/gamegeeks/gamegeeks/api/handler"
	"github.com/gamegeeks/gamegeeks/models/platform"
	"github.com/gamegeeks/gamegeeks/pkg/auth"
)

var requestIDHeader = http.CanonicalHeaderKey("X-Request-Id")

func auditLogsMiddleware(c *gin.Context) {
	now := time.Now()
	c.Next()
	requestDuration := time.Since(now)

	// Unescape the querystring for readability.
	q, _ := url.QueryUnescape(c.Request.URL.RawQuery)

	fields := logrus.Fields{
		"status":       c.Writer.Status(),
		"method":       c.Request.Method,
		"path":         c.Request.URL.Path,
		"query":        q,
		"user_agent":   c.Request.UserAgent(),
		"duration":     requestDuration.Seconds(),
		"duration_ms":  requestDuration.Milliseconds(),
		"request_host": c.Request.Host,
		"remote_ip":    c.ClientIP(),
		"request_id":   c.Request.Header.Get(requestIDHeader),
		"log_type":     "api",
	}
	if op, _ := fizz.OperationFromContext(c); op != nil {
		fields["action"] = op.ID
	}
	if user := c.GetString(auth.IdentityProviderCtxKey); user != "" {
		fields["user"] = user
	}

	errs := c.Errors.Errors()

	if len(errs) > 0 {
		fields["success"] = false
		logrus.WithFields(fields).WithError(
			errors.New(strings.Join(errs, "\n")),
		).Error("error")
	} else {
		fields["success"] = true
		logrus.WithFields(fields).Info("success")
	}
}

func ajaxHeadersMiddleware(c *gin.Context) {
	//Specifies a URI that may access the resource.
	//For requests without credentials, the server may specify '*' as a wildcard,
	//thereby allowing any origin to access the resource.
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE")

	//Used in response to a preflight request to indicate which HTTP headers can be used when making the actual request.
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")

	//Lets a server whitelist headers that browsers are allowed to access.
	c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Type,Link,X-Paging-PageSize")

	c.Next()
}

func authMiddleware(authProvider auth.Provider) func(c *gin.Context) {
	if authProvider != nil {
		return func(c *gin.Context) {
			user, err := authProvider(c.Request)
			if err != nil {
				if errors.IsUnauthorized(err) {
					c.Header("WWW-Authenticate", `Basic realm="Authorization Required"`)
				}
				problemCounter.WithLabelValues("401").Inc()
				_ = c.AbortWithError(http.StatusUnauthorized, err)
				return
			}
			c.Set(auth.IdentityProviderCtxKey, user)
			c.Next()
		}
	}
	return func(c *gin.Context) { c.Next() }
}

// acceptMiddleware rejects requests whose Accept header
// admits none of the rendered formats
func acceptMiddleware(c *gin.Context) {
	accept := c.Request.Header.Get(acceptHeader)
	if negotiateFormat(accept) == "" {
		abortWithProblem(c, newProblem(c, http.StatusNotAcceptable,
			"Supported media types: "+jsonMediaType+", "+yamlMediaType))
		return
	}
	c.Next()
}

func storeMiddleware(store platform.Store) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.Set(handler.StoreCtxKey, store)
		c.Next()
	}
}

func notFoundHandler(c *gin.Context) {
	abortWithProblem(c, errors.NotFoundf("Route %s %s", c.Request.Method, c.Request.URL.Path))
}
