package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	formatters "github.com/fabienm/go-logrus-formatters"
	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"github.com/loopfz/gadgeto/zesty"
	"github.com/ovh/configstore"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gamegeeks/gamegeeks"
	"github.com/gamegeeks/gamegeeks/api"
	"github.com/gamegeeks/gamegeeks/db"
	"github.com/gamegeeks/gamegeeks/models/platform"
	"github.com/gamegeeks/gamegeeks/pkg/auth"
)

const (
	defaultPort       = 8080
	defaultLogsFormat = "text"

	envHTTPPort   = "SERVER_PORT"
	envDebug      = "DEBUG"
	envLogsFormat = "LOGS_FORMAT"
)

var (
	store *configstore.Store
	cfg   *gamegeeks.Cfg
)

//nolint:errcheck
func init() {
	viper.BindEnv(envHTTPPort)
	viper.BindEnv(envDebug)
	viper.BindEnv(envLogsFormat)

	flags := rootCmd.PersistentFlags()

	flags.UintVar(&gamegeeks.FPort, "http-port", defaultPort, "HTTP port to expose")
	flags.BoolVar(&gamegeeks.FDebug, "debug", false, "Run server in debug mode")
	flags.StringVar(&gamegeeks.FLogsFormat, "logs-format", defaultLogsFormat, "Format of the logs (text or gelf)")

	viper.BindPFlag(envHTTPPort, flags.Lookup("http-port"))
	viper.BindPFlag(envDebug, flags.Lookup("debug"))
	viper.BindPFlag(envLogsFormat, flags.Lookup("logs-format"))
}

var rootCmd = &cobra.Command{
	Use:   "gamegeeks",
	Short: "Game Geeks API, the gaming platforms catalog\n\n",
	Long: "Game Geeks API exposes the catalog of gaming platforms over HTTP.\n" +
		"It serves its own OpenAPI document, enriched with the error responses\n" +
		"every operation may return, and a Swagger UI to browse it.\n",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		gamegeeks.FPort = viper.GetUint(envHTTPPort)
		gamegeeks.FDebug = viper.GetBool(envDebug)
		gamegeeks.FLogsFormat = viper.GetString(envLogsFormat)

		// Logger.
		var formatter log.Formatter
		switch gamegeeks.FLogsFormat {
		case "text":
			textFormatter := new(log.TextFormatter)
			textFormatter.TimestampFormat = time.RFC3339
			textFormatter.FullTimestamp = true
			formatter = textFormatter
		case "gelf":
			hostname, _ := os.Hostname()
			formatter = formatters.NewGelf(hostname)
		default:
			return errors.NotValidf("logs format %q", gamegeeks.FLogsFormat)
		}
		log.SetOutput(os.Stderr)
		log.SetFormatter(formatter)

		if gamegeeks.FDebug {
			log.SetLevel(log.DebugLevel)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		store = configstore.DefaultStore
		store.InitFromEnvironment()

		var err error
		cfg, err = gamegeeks.Config(store)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if gamegeeks.FPort > 65535 || gamegeeks.FPort == 0 {
			return errors.New("Incorrect HTTP port range")
		}

		authProvider, err := auth.BasicAuthProvider(store)
		if err != nil {
			return err
		}

		server, err := newServer()
		if err != nil {
			return err
		}
		server.WithAuth(authProvider)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if err := server.ListenAndServe(ctx); err != nil {
			return err
		}
		log.Info("Bye!")
		return nil
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

// newServer picks the platform store: postgres when the configstore
// holds a connection string, an in-memory store otherwise
func newServer() (*api.Server, error) {
	var server *api.Server
	switch err := db.Init(store); {
	case err == db.ErrNotConfigured:
		log.Warn("No database configured, platforms are kept in memory")
		server = api.NewServer(platform.NewMemoryStore())
	case err != nil:
		return nil, err
	default:
		dbp, err := zesty.NewDBProvider(gamegeeks.DBName)
		if err != nil {
			return nil, err
		}
		server = api.NewServer(platform.NewSQLStore(dbp))
		server.WithDatabase(gamegeeks.DBName)
	}
	server.WithConfig(cfg)
	return server, nil
}
