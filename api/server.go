package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ghodss/yaml"
	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/loopfz/gadgeto/zesty"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/wI2L/fizz"
	"golang.org/x/sync/errgroup"

	"github.com/gamegeeks/gamegeeks"
	"github.com/gamegeeks/gamegeeks/api/handler"
	"github.com/gamegeeks/gamegeeks/docs"
	"github.com/gamegeeks/gamegeeks/models/platform"
	"github.com/gamegeeks/gamegeeks/models/problem"
	"github.com/gamegeeks/gamegeeks/pkg/auth"
	"github.com/gamegeeks/gamegeeks/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the http handler that exposes the Game Geeks REST API
// and its generated documentation
type Server struct {
	httpHandler    *fizz.Fizz
	authMiddleware func(*gin.Context)
	store          platform.Store
	dbName         string
	maxBodyBytes   int64
	docOptions     docs.Options

	doc     *docs.Document
	docJSON []byte
	docYAML []byte
	uiPage  []byte
}

// NewServer returns a new Server serving the platforms of store
func NewServer(store platform.Store) *Server {
	return &Server{
		authMiddleware: func(c *gin.Context) { c.Next() }, // default no-op middleware
		store:          store,
		docOptions: docs.Options{
			Info: docs.NewInfo(gamegeeks.DocsTitle, gamegeeks.DocsVersion, gamegeeks.DocsDescription),
			Examples: map[string]interface{}{
				platform.SchemaName: platform.Example,
			},
		},
	}
}

// WithAuth configures the Server's auth middleware
// it receives an authProvider function capable of extracting a caller's identity from an *http.Request
// the authProvider function also has discretion to deny authorization for a request by returning an error
func (s *Server) WithAuth(authProvider auth.Provider) {
	if authProvider != nil {
		s.authMiddleware = authMiddleware(authProvider)
	}
}

// WithDatabase makes the ping route check the zesty DB registered under dbName
func (s *Server) WithDatabase(dbName string) {
	s.dbName = dbName
}

// WithConfig applies the document metadata, the OAuth endpoints
// and the server options of the service configuration
func (s *Server) WithConfig(cfg *gamegeeks.Cfg) {
	if cfg == nil {
		return
	}
	s.docOptions.Info = docs.NewInfo(cfg.Docs.Title, cfg.Docs.Version, cfg.Docs.Description)
	s.docOptions.OAuth = docs.OAuthFlow{
		AuthorizationURL: cfg.OAuth.AuthorizationURL,
		TokenURL:         cfg.OAuth.TokenURL,
		Scopes:           cfg.OAuth.Scopes,
	}
	s.maxBodyBytes = cfg.ServerOptions.MaxBodyBytes
}

// ListenAndServe launches an http server and stays blocked until
// ctx is cancelled, then shuts the server down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	hdl, err := s.Handler(ctx)
	if err != nil {
		return err
	}
	srv := &http.Server{Addr: fmt.Sprintf(":%d", gamegeeks.FPort), Handler: hdl}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logrus.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Handler returns the underlying http.Handler of a Server
func (s *Server) Handler(ctx context.Context) (http.Handler, error) {
	if err := s.build(ctx); err != nil {
		return nil, err
	}
	return s.httpHandler, nil
}

// Document returns the enriched API document
func (s *Server) Document(ctx context.Context) (*docs.Document, error) {
	if err := s.build(ctx); err != nil {
		return nil, err
	}
	return s.doc, nil
}

// build registers all routes and their corresponding handlers for the Server's API,
// then generates the API document once every route is known
func (s *Server) build(ctx context.Context) error {
	if s.httpHandler != nil {
		return nil
	}

	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery(), auditLogsMiddleware)
	ginEngine.NoRoute(notFoundHandler)

	for _, path := range []string{"/", "/swagger", "/swagger-ui", "/swagger-ui.html"} {
		ginEngine.GET(path, func(c *gin.Context) {
			c.Redirect(http.StatusFound, docs.UIPath)
		})
	}
	ginEngine.GET(docs.UIPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", s.uiPage)
	})
	ginEngine.GET(docs.SpecPath, func(c *gin.Context) {
		c.Data(http.StatusOK, jsonMediaType, s.docJSON)
	})
	ginEngine.GET(docs.SpecYAMLPath, func(c *gin.Context) {
		c.Data(http.StatusOK, yamlMediaType, s.docYAML)
	})

	collectMetrics(ctx, s.store)
	ginEngine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router := fizz.NewFromEngine(ginEngine)
	router.Generator().UseFullSchemaNames(false)

	router.Use(ajaxHeadersMiddleware, storeMiddleware(s.store))

	tonic.SetErrorHook(problemErrHook)
	tonic.SetBindHook(newBodyBinder(s.maxBodyBytes).hook)
	tonic.SetRenderHook(yamljsonRenderHook, jsonMediaType)

	authRoutes := router.Group("/v1", "platforms", "Gaming platforms: authentication is required", s.authMiddleware, acceptMiddleware)
	{
		authRoutes.GET("/platforms",
			[]fizz.OperationOption{
				fizz.Summary("List platforms"),
				fizz.Description("Platforms are ordered by id. Use the link header to fetch the next page."),
			},
			tonic.Handler(handler.ListPlatforms, 200))
		authRoutes.GET("/platforms/:id",
			[]fizz.OperationOption{
				fizz.Summary("Get platform details"),
			},
			tonic.Handler(handler.GetPlatform, 200))
		authRoutes.POST("/platforms",
			[]fizz.OperationOption{
				fizz.Summary("Create a platform"),
				fizz.Response("409", "Name already taken", problem.ProblemModel{}, nil, nil),
			},
			tonic.Handler(handler.CreatePlatform, 201))
		authRoutes.PUT("/platforms/:id",
			[]fizz.OperationOption{
				fizz.Summary("Edit a platform"),
				fizz.Response("409", "Name already taken", problem.ProblemModel{}, nil, nil),
			},
			tonic.Handler(handler.UpdatePlatform, 200))
		authRoutes.DELETE("/platforms/:id",
			[]fizz.OperationOption{
				fizz.Summary("Delete a platform"),
			},
			tonic.Handler(handler.DeletePlatform, 204))
	}

	router.GET("/unsecured/mon/ping",
		[]fizz.OperationOption{
			fizz.Summary("Assert that the service is running and can talk to it's data backend"),
		},
		s.pingHandler)

	if errs := router.Errors(); len(errs) > 0 {
		return errors.Annotate(errs[0], "failed to document routes")
	}
	if err := s.buildDocument(router); err != nil {
		return err
	}

	s.httpHandler = router
	return nil
}

func (s *Server) buildDocument(router *fizz.Fizz) (err error) {
	defer errors.DeferredAnnotatef(&err, "Failed to build API document")

	s.doc, err = docs.Build(router.Generator(), s.docOptions)
	if err != nil {
		return err
	}
	if s.docJSON, err = utils.JSONMarshal(s.doc); err != nil {
		return err
	}
	if s.docYAML, err = yaml.JSONToYAML(s.docJSON); err != nil {
		return err
	}
	s.uiPage, err = docs.UIPage(s.doc.Info.Title, docs.SpecPath, s.docOptions.OAuth.Scopes)
	return err
}

func (s *Server) pingHandler(c *gin.Context) {
	if s.dbName != "" {
		if err := pingDB(s.dbName); err != nil {
			c.String(http.StatusInternalServerError, "")
			_ = c.Error(err)
			return
		}
	}
	c.String(http.StatusOK, "pong")
}

func pingDB(dbName string) error {
	dbp, err := zesty.NewDBProvider(dbName)
	if err != nil {
		return err
	}
	i, err := dbp.DB().SelectInt(`SELECT 1`)
	if err != nil {
		return err
	}
	if i != 1 {
		return fmt.Errorf("Unexpected value %d", i)
	}
	return nil
}
